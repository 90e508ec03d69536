// Package tools provides the field-format massaging and validation helpers
// used around the request dispatcher: credential masking, timestamp and
// multivalue normalization of article records, and small file utilities.
package tools

import "unicode"

// DefaultMaskSuffix is the number of trailing characters left visible by
// MaskWordDefault.
const DefaultMaskSuffix = 4

const maskRune = '*'

// MaskWord replaces all alphanumeric characters of word with the mask
// character, except for the trailing keepSuffix characters which are kept
// verbatim. Non-alphanumeric characters are preserved. Words of four
// characters or fewer are returned unchanged, so a fully masked user key
// never leaks more than its tail.
func MaskWord(word string, keepSuffix int) string {
	runes := []rune(word)
	if len(runes) <= DefaultMaskSuffix {
		return word
	}
	if keepSuffix < 0 {
		keepSuffix = 0
	}

	cut := len(runes) - keepSuffix
	for i := 0; i < cut; i++ {
		if unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) {
			runes[i] = maskRune
		}
	}
	return string(runes)
}

// MaskWordDefault masks word keeping the last four characters visible.
func MaskWordDefault(word string) string {
	return MaskWord(word, DefaultMaskSuffix)
}
