// Package wordlist loads word and line pools from text files.
package wordlist

import "unicode"

// Typeable reports whether every rune in s can be entered as a single
// printable keystroke. Tabs and other control characters are rejected.
func Typeable(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != ' ' && !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
