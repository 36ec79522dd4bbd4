package shelf

import (
	"strings"
	"unicode"
)

// NormalizeQuery trims the query and collapses whitespace into single
// spaces. A "+" between two letters or digits is the API's word separator
// and becomes a space; any other "+" is kept, so "C++" survives.
// A blank query normalizes to "".
func NormalizeQuery(raw string) string {
	r := []rune(raw)
	for i := 1; i < len(r)-1; i++ {
		if r[i] == '+' && isWordRune(r[i-1]) && isWordRune(r[i+1]) {
			r[i] = ' '
		}
	}
	return strings.Join(strings.Fields(string(r)), " ")
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
