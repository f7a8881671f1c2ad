package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"billing@acme.example",
		"first.last+tag@sub.domain.co",
	}
	for _, email := range valid {
		require.True(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"not-an-address",
		"missing@tld",
		"@nobody.example",
		"spaces in@address.example",
	}
	for _, email := range invalid {
		require.False(t, ValidateEmail(email), email)
	}
}

func TestSanitizeInput(t *testing.T) {
	require.Equal(t, "hello", SanitizeInput("  hello  "))
	require.Equal(t, "ab", SanitizeInput("a\x00b"))
}
