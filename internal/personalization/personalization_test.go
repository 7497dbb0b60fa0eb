package personalization

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reason(t *testing.T, err error) Reason {
	t.Helper()
	var rej *RejectionError
	require.True(t, errors.As(err, &rej), "expected RejectionError, got %v", err)
	return rej.Reason
}

func TestLatinPolicy(t *testing.T) {
	p := LatinPolicy

	assert.NoError(t, p.Validate(""))
	assert.NoError(t, p.Validate("Hello, World!"))
	assert.NoError(t, p.Validate("Tom & Jerry's 10th"))
	assert.NoError(t, p.Validate(strings.Repeat("a", 50)))

	assert.Equal(t, ReasonTooLong, reason(t, p.Validate(strings.Repeat("a", 51))))
	assert.Equal(t, ReasonDisallowedCharacters, reason(t, p.Validate("héllo")))
	assert.Equal(t, ReasonDisallowedCharacters, reason(t, p.Validate("50%")))
	assert.Equal(t, ReasonDisallowedCharacters, reason(t, p.Validate("مرحبا")))
}

func TestUnicodePolicy(t *testing.T) {
	p := UnicodePolicy

	assert.NoError(t, p.Validate("héllo"))
	assert.NoError(t, p.Validate("مرحبا"))
	assert.NoError(t, p.Validate("Joyeux anniversaire, Éloïse!"))
	assert.Equal(t, ReasonDisallowedCharacters, reason(t, p.Validate("<script>")))
	assert.Equal(t, ReasonTooLong, reason(t, p.Validate(strings.Repeat("é", 51))))
	assert.NoError(t, p.Validate(strings.Repeat("é", 50)), "length counts code points")
}

func TestNormalize(t *testing.T) {
	got, err := LatinPolicy.Normalize("  Happy Anniversary  ")
	require.NoError(t, err)
	assert.Equal(t, "Happy Anniversary", got)

	got, err = LatinPolicy.Normalize("   ")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = LatinPolicy.Normalize("naïve")
	assert.Error(t, err)
}

func TestPolicyByName(t *testing.T) {
	assert.Equal(t, "unicode", PolicyByName("Unicode").Name)
	assert.Equal(t, "latin", PolicyByName("latin").Name)
	assert.Equal(t, "latin", PolicyByName("").Name)
}

func TestRejectionMessages(t *testing.T) {
	err := LatinPolicy.Validate(strings.Repeat("x", 60))
	assert.EqualError(t, err, "text must be 50 characters or less")
}
