package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
)

// Sizes of the key material handled by this package
const (
	KeyLength  = 32            // 256 bits for AES-256
	SaltLength = 32            // 256 bits of KDF salt
	BlockSize  = aes.BlockSize // AES block size
	IVLength   = aes.BlockSize // one block of CBC IV
)

// Cipher encrypts and decrypts data with an externally supplied key and IV.
// The caller owns IV generation, so stored blobs can carry the IV next to
// the ciphertext.
type Cipher interface {
	// Encrypt encrypts the plaintext using the provided key and IV
	Encrypt(plaintext []byte, key []byte, iv []byte) ([]byte, error)
	// Decrypt decrypts the ciphertext using the provided key and IV
	Decrypt(ciphertext []byte, key []byte, iv []byte) ([]byte, error)
}

// AESCBCCipher implements the Cipher interface using AES-256 in CBC mode with
// PKCS#7 padding. CBC carries no authentication tag: decrypting with the
// wrong key usually fails the padding check but is not guaranteed to, and a
// tampered ciphertext can decrypt without error. Callers that need integrity
// must layer it on top.
type AESCBCCipher struct{}

// NewAESCBCCipher creates a new AESCBCCipher instance
func NewAESCBCCipher() *AESCBCCipher {
	return &AESCBCCipher{}
}

// Encrypt encrypts the plaintext using AES-256-CBC with the provided key and IV
func (c *AESCBCCipher) Encrypt(plaintext []byte, key []byte, iv []byte) ([]byte, error) {
	// Validate key and IV lengths
	if len(key) != KeyLength {
		return nil, errors.New("invalid key length")
	}
	if len(iv) != IVLength {
		return nil, errors.New("invalid IV length")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	padded := padPKCS7(plaintext, BlockSize)

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return ciphertext, nil
}

// Decrypt decrypts the ciphertext using AES-256-CBC with the provided key and IV
func (c *AESCBCCipher) Decrypt(ciphertext []byte, key []byte, iv []byte) ([]byte, error) {
	// Validate key and IV lengths
	if len(key) != KeyLength {
		return nil, errors.New("invalid key length")
	}
	if len(iv) != IVLength {
		return nil, errors.New("invalid IV length")
	}

	// CBC ciphertext is always at least one full block
	if len(ciphertext) == 0 || len(ciphertext)%BlockSize != 0 {
		return nil, NewDecryptionFailedError("ciphertext is not a positive multiple of the block size")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := unpadPKCS7(padded, BlockSize)
	if err != nil {
		return nil, NewDecryptionFailedError("invalid padding")
	}

	return plaintext, nil
}

// padPKCS7 appends PKCS#7 padding up to a multiple of the block size
func padPKCS7(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

// unpadPKCS7 validates and strips PKCS#7 padding
func unpadPKCS7(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded data length")
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, errors.New("invalid padding length")
	}

	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, errors.New("inconsistent padding bytes")
		}
	}

	return data[:len(data)-padLen], nil
}
