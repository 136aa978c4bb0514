package dossier

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// String renders r as TypeName(v1, v2, name=v3). Keyword-only fields are
// rendered with their name; a field equal to its default is omitted when
// the field hides its default.
func (r *Record) String() string {
	if r == nil {
		return "null"
	}

	var b strings.Builder
	b.WriteString(r.typ.name)
	b.WriteByte('(')

	first := true
	for i, f := range r.typ.fields {
		v := r.values[i]
		if f.hasDefault && f.hideDefault && v.Equal(ValueOf(f.def)) {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false

		if f.KeywordOnly() {
			b.WriteString(f.name)
			b.WriteByte('=')
		}
		b.WriteString(v.String())
	}

	b.WriteByte(')')
	return b.String()
}

// quote renders s single-quoted, switching to double quotes when s holds a
// single quote and no double quote.
func quote(s string) string {
	q := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteRune(q)
	for _, r := range s {
		switch {
		case r == q || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case !unicode.IsPrint(r):
			esc := strconv.QuoteRuneToASCII(r)
			b.WriteString(esc[1 : len(esc)-1])
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune(q)
	return b.String()
}

func fmtValue(v any) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}
