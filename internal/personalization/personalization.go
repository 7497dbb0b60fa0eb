// Package personalization validates engraving text.
package personalization

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const MaxLength = 50

type Reason string

const (
	ReasonTooLong              Reason = "too_long"
	ReasonDisallowedCharacters Reason = "disallowed_characters"
)

type RejectionError struct {
	Reason Reason
	Limit  int
}

func (e *RejectionError) Error() string {
	switch e.Reason {
	case ReasonTooLong:
		return fmt.Sprintf("text must be %d characters or less", e.Limit)
	case ReasonDisallowedCharacters:
		return "only letters, numbers, and basic punctuation allowed"
	}
	return string(e.Reason)
}

// Policy decides which engraving texts are accepted. Length is counted in
// code points.
type Policy struct {
	Name      string
	MaxLength int
	Allowed   *regexp.Regexp
}

var (
	// LatinPolicy accepts ASCII letters, digits, spaces and - ' . , ! ? &.
	LatinPolicy = Policy{
		Name:      "latin",
		MaxLength: MaxLength,
		Allowed:   regexp.MustCompile(`^[A-Za-z0-9 \-'.,!?&]+$`),
	}
	// UnicodePolicy additionally accepts letters and marks of any script,
	// which covers the French and Arabic storefronts.
	UnicodePolicy = Policy{
		Name:      "unicode",
		MaxLength: MaxLength,
		Allowed:   regexp.MustCompile(`^[\p{L}\p{M}\p{Nd} \-'.,!?&]+$`),
	}
)

// PolicyByName returns LatinPolicy for unknown names.
func PolicyByName(name string) Policy {
	if strings.EqualFold(strings.TrimSpace(name), UnicodePolicy.Name) {
		return UnicodePolicy
	}
	return LatinPolicy
}

// Validate accepts the empty string, which clears personalization.
func (p Policy) Validate(raw string) error {
	if raw == "" {
		return nil
	}
	if n := utf8.RuneCountInString(raw); n > p.MaxLength {
		return &RejectionError{Reason: ReasonTooLong, Limit: p.MaxLength}
	}
	if p.Allowed != nil && !p.Allowed.MatchString(raw) {
		return &RejectionError{Reason: ReasonDisallowedCharacters, Limit: p.MaxLength}
	}
	return nil
}

// Normalize validates raw and returns it trimmed. An empty result means no
// personalization.
func (p Policy) Normalize(raw string) (string, error) {
	if err := p.Validate(raw); err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}
