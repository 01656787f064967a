package rewrite

import (
	"regexp"
	"strings"
)

// Field identifies one of the recognized component metadata fields.
type Field int

const (
	FieldSelector Field = iota
	FieldTemplateURL
	FieldStyleURLs
	FieldClass
)

// Fields lists every recognized field in rewrite order.
var Fields = []Field{FieldSelector, FieldTemplateURL, FieldStyleURLs, FieldClass}

func (f Field) String() string {
	switch f {
	case FieldSelector:
		return "selector"
	case FieldTemplateURL:
		return "templateUrl"
	case FieldStyleURLs:
		return "styleUrls"
	case FieldClass:
		return "class"
	default:
		return "unknown"
	}
}

// lineChar matches any character except a line terminator.
const lineChar = `[^\n\r\x{2028}\x{2029}]`

// Each pattern matches from the field keyword to the last terminator on the
// same line. Only the first occurrence in a document is ever used.
var fieldPatterns = map[Field]*regexp.Regexp{
	FieldSelector:    regexp.MustCompile(`selector:` + lineChar + `*,`),
	FieldTemplateURL: regexp.MustCompile(`templateUrl:` + lineChar + `*,`),
	FieldStyleURLs:   regexp.MustCompile(`styleUrls` + lineChar + `*,`),
	FieldClass:       regexp.MustCompile(`export class` + lineChar + `*\{`),
}

// Match is the location of a field in a source text.
type Match struct {
	Field Field
	Start int
	End   int
	Text  string
}

// find returns the first occurrence of field in src.
func find(src string, field Field) (Match, bool) {
	loc := fieldPatterns[field].FindStringIndex(src)
	if loc == nil {
		return Match{}, false
	}
	return Match{
		Field: field,
		Start: loc[0],
		End:   loc[1],
		Text:  src[loc[0]:loc[1]],
	}, true
}

// render returns the replacement text for field.
func render(field Field, value string) string {
	switch field {
	case FieldSelector:
		return "selector: '" + value + "',"
	case FieldTemplateURL:
		return "templateUrl: '" + value + "',"
	case FieldStyleURLs:
		return "styleUrls: ['" + value + "'],"
	case FieldClass:
		return "export class " + value + " {"
	}
	return ""
}

// quotedValue returns the first quoted string in s, or the text up to the
// first comma when s holds no quotes.
func quotedValue(s string) string {
	values := quotedValues(s)
	if len(values) > 0 {
		return values[0]
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// quotedValues returns every single-, double- or backtick-quoted string in s.
func quotedValues(s string) []string {
	var values []string
	for i := 0; i < len(s); i++ {
		q := s[i]
		if q != '\'' && q != '"' && q != '`' {
			continue
		}
		end := strings.IndexByte(s[i+1:], q)
		if end < 0 {
			break
		}
		values = append(values, s[i+1:i+1+end])
		i += end + 1
	}
	return values
}

// identifier returns the leading identifier of s after skipping spaces.
func identifier(s string) string {
	s = strings.TrimLeft(s, " \t")
	end := 0
	for end < len(s) {
		c := s[end]
		if c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			end++
			continue
		}
		break
	}
	return s[:end]
}
