// Copyright 2026 The Wox Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash computes the digest of the running shell binary,
// reported by the control socket's "status" operation so the backend
// can verify which build of the shell it is talking to.
package binhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// HashFile computes the SHA256 digest of the file at path. The file is
// streamed through the hash function in chunks (via io.Copy) to keep
// memory usage constant regardless of file size.
func HashFile(path string) ([32]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return [32]byte{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return [32]byte{}, fmt.Errorf("hashing %s: %w", path, err)
	}

	var digest [32]byte
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// FormatDigest returns the hex-encoded string representation of a
// SHA256 digest. This is the canonical format used in status responses
// and log output.
func FormatDigest(digest [32]byte) string {
	return hex.EncodeToString(digest[:])
}

// Self hashes the currently running executable. Returns the hex digest
// or an error when the executable path cannot be resolved (possible on
// exotic platforms, or when the binary was deleted after launch).
func Self() (string, error) {
	executablePath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolving own executable: %w", err)
	}
	digest, err := HashFile(executablePath)
	if err != nil {
		return "", err
	}
	return FormatDigest(digest), nil
}
