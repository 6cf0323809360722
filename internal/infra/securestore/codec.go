package securestore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"

	"github.com/vietddude/walletd/internal/core/fault"
)

// Codec transforms values before they hit the backend. Encode and Decode
// must be inverses of each other.
type Codec interface {
	Encode(plain []byte) ([]byte, error)
	Decode(stored []byte) ([]byte, error)
}

// -----------------------------------------------------------------------------
// Obfuscating codec
// -----------------------------------------------------------------------------

// ObfuscatingCodec is a reversible base64 transform. It is NOT cryptography
// and offers no confidentiality; it only keeps casual readers out of the
// persisted payload. Use AEADCodec for anything that matters.
type ObfuscatingCodec struct{}

func (ObfuscatingCodec) Encode(plain []byte) ([]byte, error) {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(plain)))
	base64.StdEncoding.Encode(out, plain)
	return out, nil
}

func (ObfuscatingCodec) Decode(stored []byte) ([]byte, error) {
	out := make([]byte, base64.StdEncoding.DecodedLen(len(stored)))
	n, err := base64.StdEncoding.Decode(out, stored)
	if err != nil {
		return nil, fmt.Errorf("failed to decode entry: %w", err)
	}
	return out[:n], nil
}

// -----------------------------------------------------------------------------
// AEAD codec
// -----------------------------------------------------------------------------

const (
	saltSize = 16
	keySize  = 32
	scryptN  = 1 << 15
	scryptR  = 8
	scryptP  = 1
)

// AEADCodec encrypts values with AES-256-GCM using a key stretched from a
// user secret with scrypt. Each Encode uses a fresh salt and nonce, so the
// same plaintext never produces the same ciphertext twice. Decode fails with
// an encryption fault on tamper or a wrong secret.
type AEADCodec struct {
	secret []byte
}

func NewAEADCodec(secret string) *AEADCodec {
	return &AEADCodec{secret: []byte(secret)}
}

func (c *AEADCodec) aead(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(c.secret, salt, scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return nil, fmt.Errorf("key derivation failed: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (c *AEADCodec) Encode(plain []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fault.Wrap(fault.CodeEncryption, "failed to generate salt", err)
	}

	gcm, err := c.aead(salt)
	if err != nil {
		return nil, fault.Wrap(fault.CodeEncryption, "failed to initialize cipher", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fault.Wrap(fault.CodeEncryption, "failed to generate nonce", err)
	}

	out := make([]byte, 0, saltSize+len(nonce)+len(plain)+gcm.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, plain, nil)
	return out, nil
}

func (c *AEADCodec) Decode(stored []byte) ([]byte, error) {
	if len(stored) < saltSize {
		return nil, fault.New(fault.CodeEncryption, "stored entry is truncated", "")
	}
	salt, rest := stored[:saltSize], stored[saltSize:]

	gcm, err := c.aead(salt)
	if err != nil {
		return nil, fault.Wrap(fault.CodeEncryption, "failed to initialize cipher", err)
	}
	if len(rest) < gcm.NonceSize() {
		return nil, fault.New(fault.CodeEncryption, "stored entry is truncated", "")
	}

	nonce, ciphertext := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fault.Wrap(fault.CodeEncryption, "stored entry failed authentication", err)
	}
	return plain, nil
}
