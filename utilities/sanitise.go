package utilities

import "strings"

// CleanName strips symbols that are "ugly" in listings and break some
// clients when browsing; slashes, colons and trademark style marks
var badRunes = map[rune]bool{'/': true, '\\': true, ':': true, '™': true, '®': true, '©': true}

func CleanName(s string) string {
	var out strings.Builder
	out.Grow(len(s))
	for _, r := range s {
		if !badRunes[r] {
			out.WriteRune(r)
		}
	}
	return out.String()
}
