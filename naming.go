package dossier

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// separator joins words in field names.
const separator = "_"

var (
	// A capitalized word preceded by anything: "HTTPResponse" splits before "Response".
	wordBoundary = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	// An uppercase letter after a lowercase letter or digit: "isRoot" splits before "R".
	caseBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// ToCamelCase converts a field name to its mapping key. The first non-empty
// segment is lowercased, later segments get an uppercase first letter, and
// empty segments (consecutive separators) keep a literal separator.
//
//	email_address -> emailAddress
//	_private      -> _private
func ToCamelCase(name string) string {
	segments := strings.Split(name, separator)

	var b strings.Builder
	b.Grow(len(name))

	first := true
	for _, seg := range segments {
		if seg == "" {
			b.WriteString(separator)
			continue
		}
		if first {
			b.WriteString(strings.ToLower(seg))
			first = false
			continue
		}
		b.WriteString(upperFirst(seg))
	}
	return b.String()
}

// FromCamelCase converts a mapping key back to a field name.
//
//	isRoot             -> is_root
//	getHTTPResponse    -> get_http_response
//	emailAddress       -> email_address
func FromCamelCase(key string) string {
	s := wordBoundary.ReplaceAllString(key, "${1}"+separator+"${2}")
	s = caseBoundary.ReplaceAllString(s, "${1}"+separator+"${2}")
	return strings.ToLower(s)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
