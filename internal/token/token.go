package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"task-management/internal/apperrors"
)

// Issuer menerbitkan dan memverifikasi bearer token JWT (HS256).
// Secret key bersifat process-wide: diisi sekali saat startup dan tidak
// pernah dirotasi selama proses hidup.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl}
}

// Issue membuat token JWT yang berisi username dan expired time.
func (i *Issuer) Issue(username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": now.Add(i.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify memvalidasi signature dan expiry lalu mengembalikan username
// yang tertanam di token. Kegagalan dipetakan ke salah satu dari
// ErrMalformedToken, ErrBadSignature, atau ErrTokenExpired.
func (i *Issuer) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) {
			switch {
			case vErr.Errors&jwt.ValidationErrorMalformed != 0:
				return "", apperrors.ErrMalformedToken
			case vErr.Errors&jwt.ValidationErrorExpired != 0:
				// Expiry adalah batas keras: token yang sudah lewat
				// tidak pernah valid lagi
				return "", apperrors.ErrTokenExpired
			case vErr.Errors&jwt.ValidationErrorSignatureInvalid != 0:
				return "", apperrors.ErrBadSignature
			}
		}
		return "", apperrors.ErrMalformedToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", apperrors.ErrMalformedToken
	}
	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return "", apperrors.ErrMalformedToken
	}
	return username, nil
}
