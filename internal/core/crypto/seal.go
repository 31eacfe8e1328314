// Package crypto seals profile credentials for storage at rest.
//
// Sealed values are AES-256-GCM ciphertexts under a key stretched from the
// operator's passphrase with argon2id. Every sealed value carries its own
// salt and nonce, so the passphrase is the only secret to manage and two
// seals of the same plaintext never produce the same bytes.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrPassphraseEmpty is returned when sealing or opening without a passphrase.
	ErrPassphraseEmpty = errors.New("passphrase must not be empty")

	// ErrKeyTooShort is returned when the sealing key is too short.
	ErrKeyTooShort = errors.New("sealing key must be at least 32 bytes")

	// ErrInvalidCiphertext is returned when a sealed value is too short to
	// carry its salt and nonce.
	ErrInvalidCiphertext = errors.New("invalid ciphertext: too short")

	// ErrDecryptionFailed is returned when opening fails (wrong passphrase
	// or corrupted data).
	ErrDecryptionFailed = errors.New("decryption failed: wrong passphrase or corrupted data")
)

// =============================================================================
// Key Derivation
// =============================================================================

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32

	// SaltSize is the per-value salt length in bytes.
	SaltSize = 16

	// argon2id cost parameters, per the x/crypto/argon2 recommendation for
	// interactive key derivation.
	argonTime    = 1
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
)

// DeriveKey stretches a passphrase into an AES-256 key with argon2id.
// Deterministic: the same passphrase and salt always produce the same key.
func DeriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, KeySize)
}

// NewSalt returns a fresh random salt for key derivation.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("read salt: %w", err)
	}
	return salt, nil
}

// =============================================================================
// AES-256-GCM Primitives
// =============================================================================

// Encrypt encrypts plaintext under the given key. The key must be at least
// 32 bytes; only the first 32 are used.
//
// The ciphertext layout is: nonce (12 bytes) || encrypted data || auth tag.
func Encrypt(plaintext, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt reverses Encrypt. It fails with ErrDecryptionFailed when the key
// is wrong or the data was tampered with.
func Decrypt(ciphertext, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, ErrInvalidCiphertext
	}

	nonce, sealed := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) < KeySize {
		return nil, ErrKeyTooShort
	}
	block, err := aes.NewCipher(key[:KeySize])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// =============================================================================
// Passphrase Sealing
// =============================================================================

// Seal encrypts plaintext under a passphrase and returns a self-contained
// base64 blob: salt (16 bytes) || nonce (12 bytes) || encrypted data.
// The salt is fresh per call, so no key material is reused across values.
//
// Example:
//
//	sealed, err := crypto.Seal([]byte(cfg.DBPassword), passphrase)
//	// store sealed in the profile row
func Seal(plaintext []byte, passphrase string) (string, error) {
	if passphrase == "" {
		return "", ErrPassphraseEmpty
	}

	salt, err := NewSalt()
	if err != nil {
		return "", err
	}

	ciphertext, err := Encrypt(plaintext, DeriveKey(passphrase, salt))
	if err != nil {
		return "", err
	}

	blob := make([]byte, 0, len(salt)+len(ciphertext))
	blob = append(blob, salt...)
	blob = append(blob, ciphertext...)
	return base64.StdEncoding.EncodeToString(blob), nil
}

// Open decrypts a blob produced by Seal.
func Open(sealed string, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrPassphraseEmpty
	}

	blob, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCiphertext, "not base64")
	}
	if len(blob) < SaltSize {
		return nil, ErrInvalidCiphertext
	}

	salt, ciphertext := blob[:SaltSize], blob[SaltSize:]
	return Decrypt(ciphertext, DeriveKey(passphrase, salt))
}
