// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/crypto/pbkdf2"
)

// DefaultIterations is the pbkdf2 work factor used when encrypting.
const DefaultIterations = 600000

// MaxIterations caps the pbkdf2 work factor accepted from an encrypted
// document header.
const MaxIterations = 10000000

const keyProviderPrefix = "key_provider.pbkdf2."

// ErrNoKeyProvider is returned when an encrypted document carries no pbkdf2
// key provider header.
var ErrNoKeyProvider = errors.New("no pbkdf2 key provider in encrypted document")

// envelope is the OpenTofu-style wrapper around an encrypted document.
type envelope struct {
	Meta          map[string]string `json:"meta"`
	EncryptedData string            `json:"encrypted_data"`
	Version       string            `json:"encryption_version,omitempty"`
}

type keyProvider struct {
	Salt       string `json:"salt"`
	Iterations int    `json:"iterations"`
	HashFunc   string `json:"hash_function"`
	KeyLength  int    `json:"key_length"`
}

// IsEncrypted reports whether data is an encrypted snapshot envelope.
func IsEncrypted(data []byte) bool {
	return gjson.ValidBytes(data) && gjson.GetBytes(data, "encrypted_data").Exists()
}

// Decrypt unwraps an encrypted snapshot using passphrase.
func Decrypt(data []byte, passphrase string) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse encrypted document: %w", err)
	}

	var encoded string
	for k, v := range env.Meta {
		if strings.HasPrefix(k, keyProviderPrefix) {
			encoded = v
			break
		}
	}
	if encoded == "" {
		return nil, ErrNoKeyProvider
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode key provider config: %w", err)
	}
	var kp keyProvider
	if err := json.Unmarshal(raw, &kp); err != nil {
		return nil, fmt.Errorf("failed to parse key provider config: %w", err)
	}

	if err := kp.validate(); err != nil {
		return nil, err
	}

	salt, err := base64.StdEncoding.DecodeString(kp.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	h, err := hashFunc(kp.HashFunc)
	if err != nil {
		return nil, err
	}

	key := pbkdf2.Key([]byte(passphrase), salt, kp.Iterations, kp.KeyLength, h)

	ciphertext, err := base64.StdEncoding.DecodeString(env.EncryptedData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf(
			"ciphertext too short: expected at least %d bytes, got %d",
			nonceSize,
			len(ciphertext),
		)
	}

	plaintext, err := aesGCM.Open(nil, ciphertext[:nonceSize], ciphertext[nonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}

// Encrypt wraps plain in an envelope Decrypt understands. Salt and nonce are
// read from r, normally crypto/rand.Reader. iterations <= 0 selects
// DefaultIterations; more than MaxIterations is an error.
func Encrypt(plain []byte, passphrase string, iterations int, r io.Reader) ([]byte, error) {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	if iterations > MaxIterations {
		return nil, fmt.Errorf("invalid iterations %d: must be at most %d", iterations, MaxIterations)
	}

	salt := make([]byte, 32)
	if _, err := io.ReadFull(r, salt); err != nil {
		return nil, fmt.Errorf("failed to read salt: %w", err)
	}

	kp := keyProvider{
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Iterations: iterations,
		HashFunc:   "sha512",
		KeyLength:  32,
	}
	key := pbkdf2.Key([]byte(passphrase), salt, kp.Iterations, kp.KeyLength, sha512.New)

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(r, nonce); err != nil {
		return nil, fmt.Errorf("failed to read nonce: %w", err)
	}

	kpJSON, err := json.Marshal(kp)
	if err != nil {
		return nil, err
	}

	return json.MarshalIndent(envelope{
		Meta: map[string]string{
			keyProviderPrefix + "keydiff": base64.StdEncoding.EncodeToString(kpJSON),
		},
		EncryptedData: base64.StdEncoding.EncodeToString(aesGCM.Seal(nonce, nonce, plain, nil)),
		Version:       "v0",
	}, "", "  ")
}

func (kp keyProvider) validate() error {
	switch kp.KeyLength {
	case 16, 24, 32:
	default:
		return fmt.Errorf("invalid key length %d: must be 16, 24 or 32", kp.KeyLength)
	}
	if kp.Iterations <= 0 || kp.Iterations > MaxIterations {
		return fmt.Errorf("invalid iterations %d: must be between 1 and %d", kp.Iterations, MaxIterations)
	}
	return nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}

func hashFunc(name string) (func() hash.Hash, error) {
	switch name {
	case "", "sha512":
		return sha512.New, nil
	case "sha256":
		return sha256.New, nil
	default:
		return nil, fmt.Errorf("unsupported hash function %q", name)
	}
}
