// Package rewrite patches the decorator metadata of a component class source.
//
// A component source is modelled as a text with four recognized metadata
// fields: the selector, the template URL, the style URL list and the class
// declaration. Each field is located by its first textual occurrence; all
// other bytes are passed through unchanged. Fields that cannot be located
// are reported rather than skipped.
//
// Example usage:
//
//	code, err := rewrite.PrepareComponentCode(src, rewrite.Options{
//	    Selector:    "user-card",
//	    TemplateURL: "./user-card.component.html",
//	    StyleURL:    "./user-card.component.scss",
//	    ClassName:   "UserCard",
//	})
//	var missing *rewrite.MissingFieldsError
//	if errors.As(err, &missing) {
//	    // code still carries the fields that were found
//	}
package rewrite

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultClassSuffix is appended to the class name in the class declaration.
const DefaultClassSuffix = "Component"

// ErrFieldNotFound indicates a metadata field is absent from the source.
var ErrFieldNotFound = errors.New("metadata field not found")

// MissingFieldsError lists the fields PrepareComponentCode could not rewrite.
type MissingFieldsError struct {
	Fields []Field
}

func (e *MissingFieldsError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.String()
	}
	return fmt.Sprintf("%s: %s", ErrFieldNotFound, strings.Join(names, ", "))
}

// Is reports whether target is ErrFieldNotFound.
func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrFieldNotFound
}

// Options are the target values written into a component source.
type Options struct {
	Selector    string
	TemplateURL string
	StyleURL    string
	// ClassName is the classified component name without suffix.
	ClassName string
	// ClassSuffix defaults to DefaultClassSuffix when empty.
	ClassSuffix string
}

func (o Options) value(field Field) string {
	switch field {
	case FieldSelector:
		return o.Selector
	case FieldTemplateURL:
		return o.TemplateURL
	case FieldStyleURLs:
		return o.StyleURL
	case FieldClass:
		suffix := o.ClassSuffix
		if suffix == "" {
			suffix = DefaultClassSuffix
		}
		return o.ClassName + suffix
	}
	return ""
}

// Document is a mutable component source.
type Document struct {
	text string
}

// NewDocument wraps src for field updates.
func NewDocument(src string) *Document {
	return &Document{text: src}
}

// Set replaces the first occurrence of field with value.
// The document is unchanged when the field is absent.
func (d *Document) Set(field Field, value string) error {
	m, ok := find(d.text, field)
	if !ok {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, field)
	}
	d.text = d.text[:m.Start] + render(field, value) + d.text[m.End:]
	return nil
}

// String returns the current source text.
func (d *Document) String() string {
	return d.text
}

// PrepareComponentCode rewrites the selector, templateUrl, styleUrls and class
// declaration of src. Fields are applied in that order, each against the text
// produced so far.
//
// When one or more fields are absent the returned text still carries every
// rewrite that applied, and the error is a *MissingFieldsError.
func PrepareComponentCode(src string, opts Options) (string, error) {
	doc := NewDocument(src)

	var missing []Field
	for _, field := range Fields {
		if err := doc.Set(field, opts.value(field)); err != nil {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return doc.String(), &MissingFieldsError{Fields: missing}
	}
	return doc.String(), nil
}
