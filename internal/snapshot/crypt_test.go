// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package snapshot

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt(t *testing.T) {
	plain := []byte(`[{"id":"Section 0","cells":[{"id":"key0","value":"value 1"}]}]`)

	doc, err := Encrypt(plain, "s3cret", 1000, rand.Reader)
	require.NoError(t, err)
	assert.True(t, IsEncrypted(doc))
	assert.False(t, bytes.Contains(doc, []byte("Section 0")))

	got, err := Decrypt(doc, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, plain, got)

	sections, err := Parse(got, "")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "key0", sections[0].Cells[0].ID)

	_, err = Decrypt(doc, "wrong")
	assert.ErrorContains(t, err, "failed to decrypt")
}

func TestIsEncrypted(t *testing.T) {
	assert.False(t, IsEncrypted([]byte(`[]`)))
	assert.False(t, IsEncrypted([]byte("- id: a\n")))
	assert.True(t, IsEncrypted([]byte(`{"encrypted_data":"x"}`)))
}

func TestDecrypt_Errors(t *testing.T) {
	kpWith := func(hash string, iterations, keyLength int) string {
		b, _ := json.Marshal(keyProvider{Salt: "c2FsdA==", Iterations: iterations, HashFunc: hash, KeyLength: keyLength})
		return base64.StdEncoding.EncodeToString(b)
	}
	kp := func(hash string) string { return kpWith(hash, 1, 32) }
	withKP := func(encoded string) string {
		return `{"meta":{"key_provider.pbkdf2.x":"` + encoded + `"},"encrypted_data":"AA=="}`
	}

	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{name: "not json", doc: `{`, wantErr: "failed to parse"},
		{name: "no provider", doc: `{"meta":{},"encrypted_data":"AA=="}`, wantErr: ErrNoKeyProvider.Error()},
		{name: "bad provider", doc: `{"meta":{"key_provider.pbkdf2.x":"!!"},"encrypted_data":"AA=="}`, wantErr: "key provider"},
		{name: "bad hash", doc: `{"meta":{"key_provider.pbkdf2.x":"` + kp("md5") + `"},"encrypted_data":"AA=="}`, wantErr: "unsupported hash"},
		{name: "negative key length", doc: withKP(kpWith("sha512", 1, -100)), wantErr: "invalid key length -100"},
		{name: "zero key length", doc: withKP(kpWith("sha512", 1, 0)), wantErr: "invalid key length"},
		{name: "odd key length", doc: withKP(kpWith("sha512", 1, 20)), wantErr: "invalid key length"},
		{name: "zero iterations", doc: withKP(kpWith("sha512", 0, 32)), wantErr: "invalid iterations"},
		{name: "negative iterations", doc: withKP(kpWith("sha512", -5, 32)), wantErr: "invalid iterations"},
		{name: "huge iterations", doc: withKP(kpWith("sha512", MaxIterations+1, 32)), wantErr: "invalid iterations"},
		{name: "short", doc: `{"meta":{"key_provider.pbkdf2.x":"` + kp("sha256") + `"},"encrypted_data":"AA=="}`, wantErr: "too short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt([]byte(tt.doc), "pw")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestEncrypt_ShortRandom(t *testing.T) {
	_, err := Encrypt([]byte("x"), "pw", 1, bytes.NewReader(make([]byte, 4)))
	assert.ErrorContains(t, err, "salt")
}

func TestEncrypt_TooManyIterations(t *testing.T) {
	_, err := Encrypt([]byte("x"), "pw", MaxIterations+1, rand.Reader)
	assert.ErrorContains(t, err, "invalid iterations")
}
