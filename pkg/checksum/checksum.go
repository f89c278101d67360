// Package checksum provides content hashing used to verify copied files.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
)

// ErrHashMismatch is returned when a file does not hash to the expected value.
var ErrHashMismatch = errors.New("hash mismatch")

// Sum computes the hex-encoded SHA-256 hash of data.
func Sum(data []byte) string {
	hash := sha256.Sum256(data)

	return hex.EncodeToString(hash[:])
}

// SumFile computes the hash of the file at path.
func SumFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Sum(data), nil
}

// Verify checks that the file at path hashes to want.
func Verify(path, want string) error {
	got, err := SumFile(path)
	if err != nil {
		return err
	}

	if got != want {
		return fmt.Errorf("%w: %s: expected %s, got %s", ErrHashMismatch, path, want, got)
	}

	return nil
}
