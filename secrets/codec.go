package secrets

import (
	"encoding/base64"
	"fmt"

	"github.com/vishnuprabha404/passquarium/encryption"
)

// Format identifies which encryption scheme produced a stored blob
type Format int

const (
	// FormatUnknown means the blob matches no known layout
	FormatUnknown Format = iota
	// FormatLegacy is the old per-record scheme: salt ‖ iv ‖ ciphertext,
	// with the key derived from the master password for every record
	FormatLegacy
	// FormatCurrent is the vault-key scheme: iv ‖ ciphertext under the
	// session vault key
	FormatCurrent
)

func (f Format) String() string {
	switch f {
	case FormatLegacy:
		return "legacy"
	case FormatCurrent:
		return "current"
	default:
		return "unknown"
	}
}

// Format tags written as the first byte of every new blob. Salt, IV and CBC
// ciphertext are all block-size multiples, so a tagged blob's length is
// congruent to 1 modulo the block size while untagged blobs from older
// versions are congruent to 0. The two can never be confused.
const (
	formatTagLegacy  byte = 0x01
	formatTagCurrent byte = 0x02
)

const (
	legacyHeaderLength  = encryption.SaltLength + encryption.IVLength
	currentHeaderLength = encryption.IVLength

	// Untagged blobs predate the format tag and fall back to the historical
	// length heuristic: anything that could hold a legacy header plus one
	// ciphertext block is read as legacy. The heuristic misreads large
	// current blobs, which is exactly why new writes carry a tag.
	minUntaggedLegacyLength  = legacyHeaderLength + encryption.BlockSize
	minUntaggedCurrentLength = currentHeaderLength + encryption.BlockSize
)

// Codec converts between plaintext passwords and the base64 blob strings
// held in secret records. It understands both on-disk formats; migrating a
// record means decoding it as legacy and re-encoding it as current.
type Codec interface {
	// EncodeCurrent encrypts the plaintext under the session vault key and
	// returns a current-format blob
	EncodeCurrent(plaintext []byte, vaultKey []byte) (string, error)
	// DecodeCurrent decrypts a current-format blob with the session vault key
	DecodeCurrent(blob string, vaultKey []byte) ([]byte, error)
	// EncodeLegacy encrypts the plaintext with a key derived from the master
	// password, using a fresh salt, and returns a legacy-format blob
	EncodeLegacy(plaintext []byte, masterPassword string) (string, error)
	// DecodeLegacy decrypts a legacy-format blob by re-deriving its
	// per-record key from the master password
	DecodeLegacy(blob string, masterPassword string) ([]byte, error)
	// DetectFormat classifies a stored blob
	DetectFormat(blob string) Format
	// IsLegacyFormat reports whether the blob is in the legacy format
	IsLegacyFormat(blob string) bool
}

type codec struct {
	deriver encryption.KeyDeriver
	cipher  encryption.Cipher
	random  encryption.RandomSource
}

func NewCodec(deriver encryption.KeyDeriver, cipher encryption.Cipher, random encryption.RandomSource) *codec {
	return &codec{
		deriver: deriver,
		cipher:  cipher,
		random:  random,
	}
}

func (c *codec) EncodeCurrent(plaintext []byte, vaultKey []byte) (string, error) {
	iv, err := c.random.Bytes(encryption.IVLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate IV: %w", err)
	}

	ciphertext, err := c.cipher.Encrypt(plaintext, vaultKey, iv)
	if err != nil {
		return "", err
	}

	blob := make([]byte, 0, 1+len(iv)+len(ciphertext))
	blob = append(blob, formatTagCurrent)
	blob = append(blob, iv...)
	blob = append(blob, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

func (c *codec) DecodeCurrent(blob string, vaultKey []byte) ([]byte, error) {
	data, err := decodeBase64(blob)
	if err != nil {
		return nil, err
	}

	payload, err := currentPayload(data)
	if err != nil {
		return nil, err
	}

	iv := payload[:encryption.IVLength]
	ciphertext := payload[encryption.IVLength:]

	return c.cipher.Decrypt(ciphertext, vaultKey, iv)
}

func (c *codec) EncodeLegacy(plaintext []byte, masterPassword string) (string, error) {
	salt, err := c.random.Bytes(encryption.SaltLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key, err := c.deriver.DeriveKey([]byte(masterPassword), salt)
	if err != nil {
		return "", err
	}

	iv, err := c.random.Bytes(encryption.IVLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate IV: %w", err)
	}

	ciphertext, err := c.cipher.Encrypt(plaintext, key, iv)
	if err != nil {
		return "", err
	}

	blob := make([]byte, 0, 1+len(salt)+len(iv)+len(ciphertext))
	blob = append(blob, formatTagLegacy)
	blob = append(blob, salt...)
	blob = append(blob, iv...)
	blob = append(blob, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

func (c *codec) DecodeLegacy(blob string, masterPassword string) ([]byte, error) {
	data, err := decodeBase64(blob)
	if err != nil {
		return nil, err
	}

	payload, err := legacyPayload(data)
	if err != nil {
		return nil, err
	}

	salt := payload[:encryption.SaltLength]
	iv := payload[encryption.SaltLength:legacyHeaderLength]
	ciphertext := payload[legacyHeaderLength:]

	// The legacy scheme pays the full derivation cost for every record
	key, err := c.deriver.DeriveKey([]byte(masterPassword), salt)
	if err != nil {
		return nil, err
	}

	return c.cipher.Decrypt(ciphertext, key, iv)
}

func (c *codec) DetectFormat(blob string) Format {
	data, err := decodeBase64(blob)
	if err != nil {
		return FormatUnknown
	}
	return detectFormat(data)
}

func (c *codec) IsLegacyFormat(blob string) bool {
	return c.DetectFormat(blob) == FormatLegacy
}

// decodeBase64 decodes a stored blob string
func decodeBase64(blob string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, NewInvalidFormatError("blob is not valid base64")
	}
	return data, nil
}

// detectFormat classifies raw blob bytes by tag, falling back to the length
// heuristic for untagged data
func detectFormat(data []byte) Format {
	if len(data) == 0 {
		return FormatUnknown
	}

	if len(data)%encryption.BlockSize == 1 {
		payload := data[1:]
		switch data[0] {
		case formatTagLegacy:
			if len(payload) >= legacyHeaderLength {
				return FormatLegacy
			}
		case formatTagCurrent:
			if len(payload) >= currentHeaderLength {
				return FormatCurrent
			}
		}
		return FormatUnknown
	}

	if len(data)%encryption.BlockSize != 0 {
		return FormatUnknown
	}

	switch {
	case len(data) >= minUntaggedLegacyLength:
		return FormatLegacy
	case len(data) >= minUntaggedCurrentLength:
		return FormatCurrent
	default:
		return FormatUnknown
	}
}

// currentPayload strips an optional format tag and validates that the data
// can hold a current-format header
func currentPayload(data []byte) ([]byte, error) {
	payload := data
	if len(data)%encryption.BlockSize == 1 {
		if data[0] != formatTagCurrent {
			return nil, NewInvalidFormatError("blob is not in the current format")
		}
		payload = data[1:]
	} else if len(data)%encryption.BlockSize != 0 {
		return nil, NewInvalidFormatError("blob length matches no known layout")
	}

	if len(payload) < currentHeaderLength {
		return nil, NewInvalidFormatError("blob is too short for the current format")
	}

	return payload, nil
}

// legacyPayload strips an optional format tag and validates that the data
// can hold a legacy-format header
func legacyPayload(data []byte) ([]byte, error) {
	payload := data
	if len(data)%encryption.BlockSize == 1 {
		if data[0] != formatTagLegacy {
			return nil, NewInvalidFormatError("blob is not in the legacy format")
		}
		payload = data[1:]
	} else if len(data)%encryption.BlockSize != 0 {
		return nil, NewInvalidFormatError("blob length matches no known layout")
	}

	if len(payload) < legacyHeaderLength {
		return nil, NewInvalidFormatError("blob is too short for the legacy format")
	}

	return payload, nil
}
