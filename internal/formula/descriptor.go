// Package formula renders, parses and validates generated Homebrew formulae.
//
// A formula is a flat record: one release of a pre-built binary, described by
// its version, download URL and SHA-256 digest, plus the name of the file that
// `bin.install` copies into the Homebrew bin directory.
package formula

import (
	"strings"
	"unicode"
)

// Descriptor describes one published build of a tool. Descriptors are values:
// the helpers in this package return modified copies and never mutate.
type Descriptor struct {
	Name        string
	Version     string
	Description string
	Homepage    string
	URL         string
	SHA256      string
	// Binary is the file copied by `bin.install`. Empty means Name.
	Binary string
	// Source is the template path quoted in the DO NOT EDIT comment.
	Source string
}

// WithDefaults returns d with Binary and Source filled in when they are empty.
func (d Descriptor) WithDefaults() Descriptor {
	if d.Binary == "" {
		d.Binary = d.Name
	}
	if d.Source == "" {
		d.Source = DefaultSource(d.Name)
	}
	return d
}

// DefaultSource returns the conventional template path for the named formula.
func DefaultSource(name string) string {
	return "./etc/brew/" + name + ".rb.in"
}

// ClassName returns the Ruby class name Homebrew expects for the named
// formula, e.g. "expend" -> "Expend" and "foo-bar" -> "FooBar".
func ClassName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == '+'
	})

	var b strings.Builder
	for _, part := range parts {
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}
