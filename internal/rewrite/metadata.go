package rewrite

import "strings"

// Metadata is the set of recognized fields read from a component source.
type Metadata struct {
	Selector    string   `json:"selector,omitempty"`
	TemplateURL string   `json:"templateUrl,omitempty"`
	StyleURLs   []string `json:"styleUrls,omitempty"`
	ClassName   string   `json:"className,omitempty"`

	matches map[Field]Match
}

// Parse locates every recognized field in src and extracts its value.
// Parse never fails; absent fields are reported by Missing.
func Parse(src string) *Metadata {
	m := &Metadata{matches: make(map[Field]Match, len(Fields))}

	for _, field := range Fields {
		match, ok := find(src, field)
		if !ok {
			continue
		}
		m.matches[field] = match

		switch field {
		case FieldSelector:
			m.Selector = quotedValue(strings.TrimPrefix(match.Text, "selector:"))
		case FieldTemplateURL:
			m.TemplateURL = quotedValue(strings.TrimPrefix(match.Text, "templateUrl:"))
		case FieldStyleURLs:
			m.StyleURLs = styleList(strings.TrimPrefix(match.Text, "styleUrls"))
		case FieldClass:
			m.ClassName = identifier(strings.TrimPrefix(match.Text, "export class"))
		}
	}

	return m
}

// Has reports whether field was found.
func (m *Metadata) Has(field Field) bool {
	_, ok := m.matches[field]
	return ok
}

// Match returns the location of field in the parsed source.
func (m *Metadata) Match(field Field) (Match, bool) {
	match, ok := m.matches[field]
	return match, ok
}

// Missing returns the fields that were not found, in rewrite order.
func (m *Metadata) Missing() []Field {
	var missing []Field
	for _, field := range Fields {
		if !m.Has(field) {
			missing = append(missing, field)
		}
	}
	return missing
}

// styleList extracts the quoted entries of the first bracketed list in s.
func styleList(s string) []string {
	start := strings.IndexByte(s, '[')
	if start < 0 {
		return quotedValues(s)
	}
	end := strings.IndexByte(s[start:], ']')
	if end < 0 {
		return quotedValues(s[start+1:])
	}
	return quotedValues(s[start+1 : start+end])
}
