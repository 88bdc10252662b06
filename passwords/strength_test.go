package passwords

import "testing"

func TestScore(t *testing.T) {
	testCases := []struct {
		password string
		expected Strength
	}{
		{"", StrengthVeryWeak},
		{"short", StrengthVeryWeak},
		{"abc", StrengthVeryWeak},
		{"password123", StrengthVeryWeak},
		{"abc123", StrengthVeryWeak},
		{"aaaaaaaa", StrengthWeak},
		{"passwordPASSWORD123abc", StrengthWeak},
		{"AAAAbbbb", StrengthFair},
		{"Abcdef12", StrengthFair},
		{"correct horse battery staple", StrengthStrong},
		{"Tr0ub4dor&3", StrengthVeryStrong},
		{"Str0ng&Secure+Vault", StrengthVeryStrong},
	}

	for _, tc := range testCases {
		if got := Score(tc.password); got != tc.expected {
			t.Errorf("Score(%q) = %s, expected %s", tc.password, got, tc.expected)
		}
	}
}

func TestScore_PenaltiesClampAtZero(t *testing.T) {
	// Two penalties against a single point must not go negative
	if got := Score("abc123"); got != StrengthVeryWeak {
		t.Errorf("Expected very weak, got %s", got)
	}
}

func TestStrength_String(t *testing.T) {
	testCases := []struct {
		strength Strength
		expected string
	}{
		{StrengthVeryWeak, "very weak"},
		{StrengthWeak, "weak"},
		{StrengthFair, "fair"},
		{StrengthStrong, "strong"},
		{StrengthVeryStrong, "very strong"},
		{Strength(99), "unknown"},
	}

	for _, tc := range testCases {
		if got := tc.strength.String(); got != tc.expected {
			t.Errorf("Strength(%d).String() = %q, expected %q", tc.strength, got, tc.expected)
		}
	}
}
