package cipher

import (
	"strconv"
	"strings"

	"github.com/xkilldash9x/cryptograms/api/schemas"
)

// patristocratBlock is the width of the letter groups in Patristocrat style output.
const patristocratBlock = 5

// Identity returns the plaintext unchanged.
func Identity(s string) schemas.CipherResult {
	return schemas.CipherResult{Ciphertext: s}
}

// Rot13 shifts each letter by 13. It is its own inverse.
func Rot13(s string) schemas.CipherResult {
	m := shiftMapping(13)
	return schemas.CipherResult{Ciphertext: string(m.apply(s, true))}
}

// Caesar shifts every letter by a random, nonzero amount. The shift is returned as the key.
func Caesar(s string, r Rand) schemas.CipherResult {
	shift := 0
	for shift == 0 {
		shift = r.IntN(alphabetSize)
	}
	m := shiftMapping(shift)
	return schemas.CipherResult{
		Ciphertext: string(m.apply(s, true)),
		Key:        schemas.StringPtr(strconv.Itoa(shift)),
	}
}

// Aristocrat is a monoalphabetic substitution with a random derangement of the alphabet.
// Spacing, punctuation and case are preserved. The key is the ciphertext alphabet.
func Aristocrat(s string, r Rand) schemas.CipherResult {
	m := aristocratMapping(r)
	return schemas.CipherResult{
		Ciphertext: string(m.apply(s, true)),
		Key:        schemas.StringPtr(string(m[:])),
	}
}

// Patristocrat uses the same mapping as Aristocrat but drops everything except letters and
// regroups the ciphertext into blocks of five.
func Patristocrat(s string, r Rand) schemas.CipherResult {
	m := aristocratMapping(r)
	return schemas.CipherResult{
		Ciphertext: chunk(m.apply(s, false), patristocratBlock),
		Key:        schemas.StringPtr(string(m[:])),
	}
}

// PatristocratK1 keys the plaintext alphabet. With no key, a word is drawn from words.
func PatristocratK1(s string, key *string, words WordPicker, r Rand) schemas.CipherResult {
	k := resolveKey(key, words, r)
	m := k1Mapping(k)
	return schemas.CipherResult{
		Ciphertext: chunk(m.apply(s, false), patristocratBlock),
		Key:        schemas.StringPtr(k),
	}
}

// PatristocratK2 keys the ciphertext alphabet. With no key, a word is drawn from words.
func PatristocratK2(s string, key *string, words WordPicker, r Rand) schemas.CipherResult {
	k := resolveKey(key, words, r)
	m := k2Mapping(k)
	return schemas.CipherResult{
		Ciphertext: chunk(m.apply(s, false), patristocratBlock),
		Key:        schemas.StringPtr(k),
	}
}

// aristocratMapping shuffles the alphabet until no letter maps to itself.
func aristocratMapping(r Rand) mapping {
	m := mapping(alphabet)
	shuffle := func() {
		r.Shuffle(alphabetSize, func(i, j int) { m[i], m[j] = m[j], m[i] })
	}
	shuffle()
	for !m.isDerangement() {
		shuffle()
	}
	return m
}

// k1Mapping: the keyed alphabet is the plaintext side and lines up with the straight
// alphabet on the ciphertext side. Fixed points are removed by rotating left, which keeps the
// key's ordering intact.
func k1Mapping(key string) mapping {
	keyed := keyedAlphabet(key)
	m := keyed.inverse()
	for !m.isDerangement() {
		m.rotateLeft()
	}
	return m
}

// k2Mapping is the mirror of k1Mapping: the keyed alphabet is the ciphertext side and fixed
// points are removed by rotating right.
func k2Mapping(key string) mapping {
	m := keyedAlphabet(key)
	for !m.isDerangement() {
		m.rotateRight()
	}
	return m
}

// resolveKey lowercases a supplied key or draws a dictionary word when there is none.
func resolveKey(key *string, words WordPicker, r Rand) string {
	if key != nil && len(lettersOnly(*key)) > 0 {
		return strings.ToLower(*key)
	}
	if words == nil {
		return ""
	}
	return strings.ToLower(words.Pick(r))
}

// chunk joins b into space separated groups of n bytes. The last group keeps whatever is left.
func chunk(b []byte, n int) string {
	if len(b) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(b) + len(b)/n)
	for i := 0; i < len(b); i += n {
		if i > 0 {
			sb.WriteByte(' ')
		}
		end := min(i+n, len(b))
		sb.Write(b[i:end])
	}
	return sb.String()
}
