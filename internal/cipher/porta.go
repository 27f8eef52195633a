package cipher

import (
	"github.com/xkilldash9x/cryptograms/api/schemas"
)

// portaTableau holds the 13 reciprocal alphabets. Row i is selected by key letters 2i and 2i+1.
var portaTableau = [13]string{
	"nopqrstuvwxyzabcdefghijklm",
	"opqrstuvwxyznmabcdefghijkl",
	"pqrstuvwxyznolmabcdefghijk",
	"qrstuvwxyznopklmabcdefghij",
	"rstuvwxyznopqjklmabcdefghi",
	"stuvwxyznopqrijklmabcdefgh",
	"tuvwxyznopqrshijklmabcdefg",
	"uvwxyznopqrstghijklmabcdef",
	"vwxyznopqrstufghijklmabcde",
	"wxyznopqrstuvefghijklmabcd",
	"xyznopqrstuvwdefghijklmabc",
	"yznopqrstuvwxcdefghijklmab",
	"znopqrstuvwxybcdefghijklma",
}

// Porta is a polyalphabetic cipher over a fixed 13 row tableau. Unlike the other ciphers,
// anything that is not a letter is dropped from the output. The key repeats over the letters of
// the plaintext only. With no usable key a word is drawn from words.
func Porta(s string, key *string, words WordPicker, r Rand) schemas.CipherResult {
	k := lettersOnly(resolveKey(key, words, r))
	text := lettersOnly(s)
	if len(k) == 0 {
		// Nothing to key the tableau with; the first row is the rot13 alphabet.
		k = []byte{'a'}
	}

	out := make([]byte, len(text))
	for i, b := range text {
		kv := int(k[i%len(k)] - 'a')
		row := (kv - kv%2) / 2
		out[i] = portaTableau[row][b-'a']
	}

	return schemas.CipherResult{
		Ciphertext: string(out),
		Key:        schemas.StringPtr(string(k)),
	}
}
