// Package morse implements the Morse fractionation ciphers, Morbit and Pollux.
package morse

import (
	"strings"

	"github.com/xkilldash9x/cryptograms/internal/cipher"
)

// alphabet is International Morse for a through z.
var alphabet = [26]string{
	".-", "-...", "-.-.", "-..", ".", "..-.", "--.", "....", "..", ".---", "-.-", ".-..", "--",
	"-.", "---", ".--.", "--.-", ".-.", "...", "-", "..-", "...-", ".--", "-..-", "-.--", "--..",
}

// Rand is the randomness both ciphers draw from.
type Rand = cipher.Rand

// Encode returns the Morse code for an ASCII letter of either case.
func Encode(b byte) (string, bool) {
	switch {
	case 'a' <= b && b <= 'z':
		return alphabet[b-'a'], true
	case 'A' <= b && b <= 'Z':
		return alphabet[b-'A'], true
	}
	return "", false
}

// words splits s on whitespace and Morse encodes each word letter by letter. Characters that
// are not letters are ignored and words left empty are dropped.
func words(s string) [][]string {
	var out [][]string
	for _, field := range strings.Fields(s) {
		var letters []string
		for i := 0; i < len(field); i++ {
			if code, ok := Encode(field[i]); ok {
				letters = append(letters, code)
			}
		}
		if len(letters) > 0 {
			out = append(out, letters)
		}
	}
	return out
}
