// Package cipher implements passphrase-based authenticated encryption for
// file payloads. Blobs are self-contained: the salt and nonce needed for
// decryption travel inside the blob, so the passphrase is the only external
// secret. A wrong passphrase always fails the GCM integrity check and is
// reported as errs.ErrInvalidPassphrase, never as corrupted plaintext.
package cipher

import (
	"bytes"
	"crypto/aes"
	gocipher "crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/argon2"

	"SkyVault/config"
	"SkyVault/internal/errs"
)

var blobMagic = []byte("SKV")

const (
	blobVersion = 1
	saltSize    = 16
	nonceSize   = 12
	keySize     = 32

	headerSize = 3 + 1 + saltSize + nonceSize
)

// default argon2id cost, used when config has not been initialized
const (
	defaultArgonTime    = 1
	defaultArgonMemory  = 64 * 1024
	defaultArgonThreads = 4
)

// deriveKey derives an AES-256 key from the passphrase with argon2id.
func deriveKey(passphrase string, salt []byte) []byte {
	t := config.AppConfig.Argon2Time
	if t == 0 {
		t = defaultArgonTime
	}
	m := config.AppConfig.Argon2MemoryKiB
	if m == 0 {
		m = defaultArgonMemory
	}
	p := config.AppConfig.Argon2Threads
	if p == 0 {
		p = defaultArgonThreads
	}
	return argon2.IDKey([]byte(passphrase), salt, t, m, p, keySize)
}

// Encrypt seals plaintext under a key derived from the passphrase. The
// returned blob carries magic, version, salt and nonce ahead of the
// AES-GCM ciphertext.
func Encrypt(plaintext []byte, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("%w: empty passphrase", errs.ErrValidation)
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}
	aesgcm, err := gocipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	blob := make([]byte, 0, headerSize+len(plaintext)+aesgcm.Overhead())
	blob = append(blob, blobMagic...)
	blob = append(blob, blobVersion)
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = aesgcm.Seal(blob, nonce, plaintext, nil)
	return blob, nil
}

// Decrypt opens a blob produced by Encrypt. It fails with
// errs.ErrInvalidPassphrase when the passphrase does not match and with
// errs.ErrValidation when the blob is not one of ours.
func Decrypt(blob []byte, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("%w: empty passphrase", errs.ErrValidation)
	}
	if len(blob) < headerSize || !bytes.Equal(blob[:3], blobMagic) {
		return nil, fmt.Errorf("%w: not an encrypted blob", errs.ErrValidation)
	}
	if blob[3] != blobVersion {
		return nil, fmt.Errorf("%w: unsupported blob version %d", errs.ErrValidation, blob[3])
	}

	salt := blob[4 : 4+saltSize]
	nonce := blob[4+saltSize : headerSize]
	ciphertext := blob[headerSize:]

	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}
	aesgcm, err := gocipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		// GCM reports a single opaque error for any integrity failure.
		return nil, errs.ErrInvalidPassphrase
	}
	return plaintext, nil
}
