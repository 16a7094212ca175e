// Package security provides password hashing and verification using bcrypt.
// Hashing is invoked explicitly where a password is actually supplied; there
// is no save-hook magic anywhere in the persistence path.
package security

import (
	"log"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword takes a plaintext password and returns its bcrypt hash.
func HashPassword(password string) string {
	passwordBytes := []byte(password)
	hash, err := bcrypt.GenerateFromPassword(passwordBytes, bcrypt.DefaultCost)
	if err != nil {
		log.Print(err.Error())
	}
	return string(hash)
}

// CheckPassword compares a bcrypt hashed password with its possible plaintext
// equivalent. It returns nil on success, or an error when they do not match.
func CheckPassword(hashedPassword, userPassword string) error {
	hashedPasswordBytes := []byte(hashedPassword)
	userPasswordBytes := []byte(userPassword)

	return bcrypt.CompareHashAndPassword(hashedPasswordBytes, userPasswordBytes)
}
