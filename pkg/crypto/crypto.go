package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword menghasilkan digest bcrypt dengan salt acak.
// Dua kali hash untuk password yang sama menghasilkan digest berbeda.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword membandingkan plaintext dengan digest yang tersimpan.
// Digest yang rusak atau bukan bcrypt dianggap tidak cocok, bukan error.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
