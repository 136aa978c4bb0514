package dossier

import (
	"strings"
	"unicode"
)

// MaskType names a content-aware masking rule for the Mask field action.
type MaskType string

// Mask types.
const (
	MaskSSN   MaskType = "ssn"   // 123-45-6789 -> ***-**-6789
	MaskEmail MaskType = "email" // alice@example.com -> a***@example.com
	MaskPhone MaskType = "phone" // (555) 123-4567 -> (***) ***-4567
	MaskCard  MaskType = "card"  // 4111111111111111 -> ************1111
	MaskName  MaskType = "name"  // John Smith -> J*** S****
)

// Masker partially obscures a field value on Send.
type Masker interface {
	Mask(value string) string
}

// MaskerFunc adapts a function to the Masker interface.
type MaskerFunc func(value string) string

// Mask calls f(value).
func (f MaskerFunc) Mask(value string) string { return f(value) }

// SSNMasker keeps the last four digits of a Social Security Number.
func SSNMasker() Masker {
	return MaskerFunc(func(value string) string {
		last4, ok := lastFourDigits(value)
		if !ok {
			return stars(value)
		}
		return "***-**-" + last4
	})
}

// EmailMasker keeps the first character of the local part and the domain.
func EmailMasker() Masker {
	return MaskerFunc(func(value string) string {
		at := strings.LastIndex(value, "@")
		if at < 1 {
			return stars(value)
		}
		return value[:1] + "***" + value[at:]
	})
}

// PhoneMasker keeps the last four digits and the area code parentheses.
func PhoneMasker() Masker {
	return MaskerFunc(func(value string) string {
		last4, ok := lastFourDigits(value)
		if !ok {
			return stars(value)
		}
		n := len(digitsOf(value))
		switch {
		case n >= 10 && strings.HasPrefix(value, "("):
			return "(***) ***-" + last4
		case n >= 10:
			return "***-***-" + last4
		default:
			return "***-" + last4
		}
	})
}

// CardMasker keeps the last four digits of a card number, following the
// grouping separator of the input if it has one.
func CardMasker() Masker {
	return MaskerFunc(func(value string) string {
		last4, ok := lastFourDigits(value)
		if !ok {
			return stars(value)
		}
		hidden := len(digitsOf(value)) - 4

		var sep string
		switch {
		case strings.Contains(value, " "):
			sep = " "
		case strings.Contains(value, "-"):
			sep = "-"
		default:
			return strings.Repeat("*", hidden) + last4
		}

		groups := make([]string, (hidden+3)/4, (hidden+3)/4+1)
		for i := range groups {
			groups[i] = "****"
		}
		return strings.Join(append(groups, last4), sep)
	})
}

// NameMasker keeps the first letter of each word.
func NameMasker() Masker {
	return MaskerFunc(func(value string) string {
		words := strings.Fields(value)
		for i, w := range words {
			r := []rune(w)
			words[i] = string(r[0]) + strings.Repeat("*", len(r)-1)
		}
		return strings.Join(words, " ")
	})
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func lastFourDigits(s string) (string, bool) {
	d := digitsOf(s)
	if len(d) < 4 {
		return "", false
	}
	return d[len(d)-4:], true
}

func stars(s string) string {
	return strings.Repeat("*", len(s))
}

func builtinMaskers() map[MaskType]Masker {
	return map[MaskType]Masker{
		MaskSSN:   SSNMasker(),
		MaskEmail: EmailMasker(),
		MaskPhone: PhoneMasker(),
		MaskCard:  CardMasker(),
		MaskName:  NameMasker(),
	}
}
