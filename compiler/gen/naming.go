package gen

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/resgen/compiler/load"
)

// exported returns s with its first letter in title case.
func exported(s string) string {
	if s == "" {
		return s
	}
	_, n := utf8.DecodeRuneInString(s)
	return cases.Title(language.Und, cases.NoLower).String(s[:n]) + s[n:]
}

// unexported lowers the leading upper-case run of s, keeping the first
// letter of a following word:
//
//	Tim2     => tim2
//	PWMTimer => pwmTimer
//	USB      => usb
func unexported(s string) string {
	rs := []rune(s)
	n := 0
	for n < len(rs) && unicode.IsUpper(rs[n]) {
		n++
	}
	if n > 1 && n < len(rs) && unicode.IsLower(rs[n]) {
		n--
	}
	for i := range n {
		rs[i] = unicode.ToLower(rs[i])
	}
	if s = string(rs); token.IsKeyword(s) {
		s = "_" + s
	}
	return s
}

// visible cases name to the given visibility.
func visible(name string, v load.Visibility) string {
	if v.Exported() {
		return exported(name)
	}
	return unexported(name)
}

// aliasName returns the default alias name of a field.
//
//	tim2   => Tim2
//	usb_dm => UsbDm
func aliasName(field string, v load.Visibility) string {
	return visible(inflect.Camelize(field), v)
}

// snake converts a record name into its canonical snake_case form.
//
//	UsbResources => usb_resources
//	USBResources => usb_resources
//	I2SResources => i2s_resources
func snake(s string) string {
	var (
		b  strings.Builder
		rs = []rune(s)
	)
	for i, r := range rs {
		if i > 0 && unicode.IsUpper(r) {
			prev := rs[i-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if prev != '_' && (unicode.IsLower(prev) || nextLower && unicode.IsUpper(prev)) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// extractorName returns the Go identifier of the extractor of a record.
func extractorName(record string, v load.Visibility) string {
	return visible("Extract"+exported(record), v)
}
