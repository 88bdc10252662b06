package passwords

import (
	"strings"
	"unicode"
)

// Strength is a coarse password strength rating from very weak to very
// strong. It is advisory feedback for the user, not a security guarantee.
type Strength int

const (
	StrengthVeryWeak Strength = iota
	StrengthWeak
	StrengthFair
	StrengthStrong
	StrengthVeryStrong
)

func (s Strength) String() string {
	switch s {
	case StrengthVeryWeak:
		return "very weak"
	case StrengthWeak:
		return "weak"
	case StrengthFair:
		return "fair"
	case StrengthStrong:
		return "strong"
	case StrengthVeryStrong:
		return "very strong"
	default:
		return "unknown"
	}
}

// weakPatterns are substrings that flag a password as guessable regardless
// of its other properties.
var weakPatterns = []string{"password", "123", "abc"}

// Score rates a password by length and character variety, with penalties
// for common weak patterns.
func Score(password string) Strength {
	score := 0

	length := len([]rune(password))
	if length >= 8 {
		score++
	}
	if length >= 12 {
		score++
	}

	var hasUpper, hasLower, hasDigit, hasOther bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasOther = true
		}
	}
	if hasUpper && hasLower {
		score++
	}
	if hasDigit {
		score++
	}
	if hasOther {
		score++
	}

	lowered := strings.ToLower(password)
	for _, pattern := range weakPatterns {
		if strings.Contains(lowered, pattern) {
			score--
		}
	}

	if score < 0 {
		score = 0
	}
	if score > int(StrengthVeryStrong) {
		score = int(StrengthVeryStrong)
	}

	return Strength(score)
}
