// Package naming converts user-entered component names between the naming
// conventions used by generated components.
//
// Two forms are derived from a raw name:
//   - dashed: kebab-case, used for directory names, file names and the
//     markup selector (FooBar -> foo-bar)
//   - classified: Pascal-case, used for the class name (foo-bar -> FooBar)
package naming

import (
	"errors"
	"strings"
	"unicode"
)

// ErrEmptyName indicates a blank component name.
var ErrEmptyName = errors.New("component name cannot be empty")

// Name is a component name together with its derived forms.
type Name struct {
	Raw        string
	Dashed     string
	Classified string
}

// Parse derives both identifier forms from a raw name.
// Returns ErrEmptyName if raw is empty or whitespace only.
func Parse(raw string) (Name, error) {
	if strings.TrimSpace(raw) == "" {
		return Name{}, ErrEmptyName
	}
	return Name{
		Raw:        raw,
		Dashed:     Dasherize(raw),
		Classified: Classify(raw),
	}, nil
}

// Dasherize inserts a dash before every uppercase letter except one in the
// first position, then lowercases the whole string.
//
// Transformation rules:
//   - FooBar -> foo-bar
//   - fooBar -> foo-bar
//   - foo-bar -> foo-bar (unchanged)
//   - HTMLView -> h-t-m-l-view (acronyms are not grouped)
//
// Digits and existing separators pass through untouched.
func Dasherize(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if unicode.IsUpper(r) && i != 0 {
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Classify uppercases the first character, then removes every run of dashes,
// underscores and whitespace, uppercasing the character that follows the run.
// A run at the end of the string is dropped.
//
// Transformation rules:
//   - foo-bar -> FooBar
//   - foo_bar baz -> FooBarBaz
//   - foo -> Foo
//   - foo- -> Foo
func Classify(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)
	if !isLineTerminator(runes[0]) {
		runes[0] = unicode.ToUpper(runes[0])
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(runes); {
		if !isSeparator(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}
		j := i
		for j < len(runes) && isSeparator(runes[j]) {
			j++
		}
		if j < len(runes) {
			b.WriteRune(unicode.ToUpper(runes[j]))
			j++
		}
		i = j
	}
	return b.String()
}

func isSeparator(r rune) bool {
	return r == '-' || r == '_' || r == '\uFEFF' || unicode.IsSpace(r)
}

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}
