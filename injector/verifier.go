package injector

import (
	"fmt"
	"regexp"

	"gopkg.in/errgo.v1"
)

// Verifier checks that a configuration value has the expected shape before
// it is written into a page.
type Verifier struct {
	// Name is the variable the value was read from, used in diagnostics.
	Name string
	// Pattern must match the whole value.
	Pattern *regexp.Regexp
	// ExpectedFormat is a human-readable rendition of Pattern.
	ExpectedFormat string

	appsScript bool
}

// NewVerifier returns a Verifier for the given pattern. The pattern is
// always anchored at both ends, so a match is a match of the full value.
func NewVerifier(name string, pattern string, expectedFormat string) (*Verifier, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern for %s: %w", name, err)
	}
	return &Verifier{
		Name:           name,
		Pattern:        re,
		ExpectedFormat: expectedFormat,
		appsScript:     pattern == DefaultPattern,
	}, nil
}

// Verify returns an ErrInvalidConfiguration if value does not match the
// pattern. The message only names Apps Script when the default pattern is
// in use.
func (v Verifier) Verify(value string) error {
	if v.Pattern.MatchString(value) {
		return nil
	}
	if v.appsScript {
		return errgo.WithCausef(nil, ErrInvalidConfiguration, "%s does not look like a valid Google Apps Script Web App URL", v.Name)
	}
	if v.ExpectedFormat != "" {
		return errgo.WithCausef(nil, ErrInvalidConfiguration, "%s does not match the expected format %s", v.Name, v.ExpectedFormat)
	}
	return errgo.WithCausef(nil, ErrInvalidConfiguration, "%s does not match the expected format", v.Name)
}
