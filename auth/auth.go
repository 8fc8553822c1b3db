// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrAdminDisabled   = errors.New("admin key not configured")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// ValidateAdminKey compares the provided key with the configured one in
// constant time. An empty configured key disables admin operations.
func ValidateAdminKey(provided, configured string) error {
	if configured == "" {
		return ErrAdminDisabled
	}
	// Compare digests so the comparison does not leak the key length
	p := sha256.Sum256([]byte(provided))
	c := sha256.Sum256([]byte(configured))
	if !hmac.Equal(p[:], c[:]) {
		return ErrInvalidAdminKey
	}
	return nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
