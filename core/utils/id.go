package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, 7)
	if err != nil {
		return ""
	}
	return id
}

// GenerateTransactionRef builds a payment transaction reference, e.g. TXN-20250102-a1B2c3D4
func GenerateTransactionRef() string {
	suffix, err := gonanoid.Generate(idAlphabet, 8)
	if err != nil {
		suffix = GenerateID()
	}
	return fmt.Sprintf("TXN-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}

// GenerateRandomString generates a cryptographically secure random string
func GenerateRandomString(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to nanoid if crypto/rand fails
		id, _ := gonanoid.Generate(idAlphabet, length)
		return id
	}
	return base64.URLEncoding.EncodeToString(bytes)[:length]
}
