package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Hello adalah endpoint test tanpa autentikasi.
func Hello(c *fiber.Ctx) error {
	return c.SendString("Hello, user!")
}

// UserTest adalah endpoint test yang hanya bisa diakses dengan token.
func UserTest(c *fiber.Ctx) error {
	return c.SendString("User API is working!")
}
