// Package passwords generates random passwords and scores password strength.
package passwords

import (
	"errors"
	"strings"

	"github.com/sethvargo/go-diceware/diceware"

	"github.com/vishnuprabha404/passquarium/encryption"
)

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()-_=+[]{};:,.<>?"
)

// Classes selects which character classes a generated password draws from.
type Classes struct {
	Upper   bool
	Lower   bool
	Digits  bool
	Symbols bool
}

// DefaultClasses enables every character class.
func DefaultClasses() Classes {
	return Classes{Upper: true, Lower: true, Digits: true, Symbols: true}
}

func (c Classes) alphabet() string {
	var sb strings.Builder
	if c.Upper {
		sb.WriteString(upperChars)
	}
	if c.Lower {
		sb.WriteString(lowerChars)
	}
	if c.Digits {
		sb.WriteString(digitChars)
	}
	if c.Symbols {
		sb.WriteString(symbolChars)
	}
	return sb.String()
}

// Generator produces random passwords and passphrases.
type Generator interface {
	// Generate returns a random password of the given length drawn uniformly
	// from the enabled character classes. Characters are selected
	// independently, so every enabled class is available but not guaranteed
	// to appear.
	Generate(length int, classes Classes) (string, error)
	// GeneratePassphrase returns a hyphen-separated passphrase of random
	// dictionary words.
	GeneratePassphrase(words int) (string, error)
}

type generator struct {
	random encryption.RandomSource
}

// NewGenerator creates a new password generator backed by the given random
// source. If random is nil, the system random source is used.
func NewGenerator(random encryption.RandomSource) *generator {

	if random == nil {
		random = encryption.NewSystemRandom()
	}

	return &generator{
		random: random,
	}
}

func (g *generator) Generate(length int, classes Classes) (string, error) {
	if length <= 0 {
		return "", errors.New("password length must be positive")
	}

	alphabet := classes.alphabet()
	if len(alphabet) == 0 {
		return "", errors.New("at least one character class must be enabled")
	}

	// Rejection sampling keeps the selection uniform; reducing a byte
	// modulo the alphabet size directly would favor the low characters
	limit := 256 - 256%len(alphabet)

	result := make([]byte, 0, length)
	for len(result) < length {
		buf, err := g.random.Bytes(length)
		if err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			result = append(result, alphabet[int(b)%len(alphabet)])
			if len(result) == length {
				break
			}
		}
	}

	return string(result), nil
}

func (g *generator) GeneratePassphrase(words int) (string, error) {
	if words <= 0 {
		return "", errors.New("word count must be positive")
	}

	list, err := diceware.Generate(words)
	if err != nil {
		return "", err
	}

	return strings.Join(list, "-"), nil
}
