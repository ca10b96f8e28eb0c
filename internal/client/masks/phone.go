// Package masks formats raw keystrokes into display masks.
package masks

import "strings"

const maxPhoneDigits = 11

// FormatPhone re-applies the Brazilian phone mask to raw, which may be
// partial input or an already formatted value:
//
//	""            -> ""
//	"1"           -> "(1"
//	"11987"       -> "(11) 987"
//	"11987654321" -> "(11) 98765-4321"
//
// Non-digits are dropped and digits past the eleventh are ignored, so
// FormatPhone(FormatPhone(x)) == FormatPhone(x).
func FormatPhone(raw string) string {
	digits := make([]byte, 0, maxPhoneDigits)
	for i := 0; i < len(raw) && len(digits) < maxPhoneDigits; i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}

	n := len(digits)
	var b strings.Builder
	switch {
	case n == 0:
		return ""
	case n <= 2:
		b.WriteByte('(')
		b.Write(digits)
	case n <= 7:
		b.WriteByte('(')
		b.Write(digits[:2])
		b.WriteString(") ")
		b.Write(digits[2:])
	default:
		b.WriteByte('(')
		b.Write(digits[:2])
		b.WriteString(") ")
		b.Write(digits[2:7])
		b.WriteByte('-')
		b.Write(digits[7:])
	}
	return b.String()
}
