// Package secrets encrypts saved connection passwords at rest.
//
// The key is derived from the local user name plus a fixed salt, so a
// copied metadata database is not readable on another account. This is
// obfuscation against casual reads, not a substitute for an OS keychain.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"os/user"
)

const keySalt = "pgscope_encryption_salt_v1"

var (
	// ErrInvalidFormat is returned when the ciphertext envelope is not
	// base64(nonce || ciphertext).
	ErrInvalidFormat = errors.New("invalid encrypted data format")

	// ErrDecryptFailed is returned when authentication of the ciphertext
	// fails, typically because it was produced under another account.
	ErrDecryptFailed = errors.New("decryption failed")
)

// deriveKey builds the 32-byte AES key from machine-local identity.
func deriveKey() [32]byte {
	name := ""
	if u, err := user.Current(); err == nil {
		name = u.Username
	}
	if name == "" {
		name = os.Getenv("USER")
	}
	if name == "" {
		name = "default_user"
	}
	return sha256.Sum256([]byte(name + keySalt))
}

// Encrypt seals the password with AES-256-GCM and returns
// base64(nonce || ciphertext).
func Encrypt(password string) (string, error) {
	key := deriveKey()
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return "", fmt.Errorf("encryption failed: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("encryption failed: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("encryption failed: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(password), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt.
func Decrypt(encrypted string) (string, error) {
	combined, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", ErrInvalidFormat
	}

	key := deriveKey()
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return "", ErrDecryptFailed
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", ErrDecryptFailed
	}

	if len(combined) < gcm.NonceSize() {
		return "", ErrInvalidFormat
	}
	nonce, ciphertext := combined[:gcm.NonceSize()], combined[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrDecryptFailed
	}
	return string(plaintext), nil
}
