// Package cryptox holds the symmetric primitives used by the local cache:
// Argon2id key derivation and AES-GCM sealing of JSON documents.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/trainingportal/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	// KeySize is the AES-256 key length produced by DeriveKey.
	KeySize = 32
	// SaltSize is the length of the random salt stored with passphrase blobs.
	SaltSize = 16
	// NonceSize is the AES-GCM standard nonce length.
	NonceSize = 12

	formatVersion byte = 1
)

// ErrMalformed is returned when a sealed blob is truncated or has an
// unknown format version.
var ErrMalformed = errors.New("malformed ciphertext")

// DeriveKey stretches a passphrase into an AES-256 key with Argon2id.
func DeriveKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeySize)
}

// EncryptEntry serializes entry to JSON and encrypts it with AES-GCM under
// key (16, 24 or 32 bytes). A fresh random nonce is generated per call and
// returned next to the ciphertext.
func EncryptEntry(entry any, key []byte) (ciphertext, nonce []byte, err error) {
	plaintext, err := json.Marshal(entry)
	if err != nil {
		return nil, nil, err
	}

	nonce = make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	return aesgcm.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// DecryptEntry reverses EncryptEntry and unmarshals the JSON into v.
func DecryptEntry(ciphertext, nonce, key []byte, v any) error {
	aesgcm, err := newGCM(key)
	if err != nil {
		return err
	}
	if len(nonce) != aesgcm.NonceSize() {
		return ErrMalformed
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return err
	}

	return json.Unmarshal(plaintext, v)
}

// SealWithPassphrase encrypts entry under a key derived from passphrase and
// returns a self-contained blob: version || salt || nonce || ciphertext.
//
// A passphrase embedded in a client binary only keeps values unreadable to
// casual inspection of the storage file. It is not a confidentiality
// boundary against anyone who holds the binary or its configuration.
func SealWithPassphrase(entry any, passphrase []byte) ([]byte, error) {
	salt := common.GenerateRandByteArray(SaltSize)
	key := DeriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	ciphertext, nonce, err := EncryptEntry(entry, key)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 1+SaltSize+NonceSize+len(ciphertext))
	out = append(out, formatVersion)
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, ciphertext...)
	return out, nil
}

// OpenWithPassphrase decrypts a blob produced by SealWithPassphrase into v.
func OpenWithPassphrase(blob []byte, passphrase []byte, v any) error {
	if len(blob) < 1+SaltSize+NonceSize || blob[0] != formatVersion {
		return ErrMalformed
	}
	salt := blob[1 : 1+SaltSize]
	nonce := blob[1+SaltSize : 1+SaltSize+NonceSize]
	ciphertext := blob[1+SaltSize+NonceSize:]

	key := DeriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	return DecryptEntry(ciphertext, nonce, key, v)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
