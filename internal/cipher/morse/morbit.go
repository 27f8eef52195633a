package morse

import (
	"sort"
	"strings"

	"github.com/xkilldash9x/cryptograms/api/schemas"
)

const morbitKeyLength = 9

// bigrams are the nine ordered pairs of Morse marks, in the order their digits are assigned.
var bigrams = [morbitKeyLength]string{"..", ".-", "./", "-.", "--", "-/", "/.", "/-", "//"}

// Morbit writes the plaintext in Morse, with "/" between letters and "//" between words, and
// replaces every pair of marks with a digit. The digit of each pair is the rank of the
// corresponding key character. A key of the wrong length is repeated or cut to nine characters;
// without a key nine random letters are used.
func Morbit(s string, key *string, r Rand) schemas.CipherResult {
	k := morbitKey(key, r)
	ranks := rankKey(k)

	table := make(map[string]byte, morbitKeyLength)
	for i, pair := range bigrams {
		table[pair] = byte('1' + ranks[i])
	}

	stream := morbitStream(s)
	out := make([]byte, 0, len(stream)/2+1)
	for i := 0; i < len(stream); i += 2 {
		pair := [2]byte{stream[i], '/'}
		if i+1 < len(stream) {
			pair[1] = stream[i+1]
		}
		out = append(out, table[string(pair[:])])
	}

	return schemas.CipherResult{
		Ciphertext: string(out),
		Key:        schemas.StringPtr(k),
	}
}

func morbitStream(s string) string {
	encoded := words(s)
	joined := make([]string, len(encoded))
	for i, letters := range encoded {
		joined[i] = strings.Join(letters, "/")
	}
	return strings.Join(joined, "//")
}

func morbitKey(key *string, r Rand) string {
	if key == nil || *key == "" {
		b := make([]byte, morbitKeyLength)
		for i := range b {
			b[i] = byte('a' + r.IntN(26))
		}
		return string(b)
	}

	k := strings.ToLower(*key)
	if len(k) == morbitKeyLength {
		return k
	}
	return strings.Repeat(k, morbitKeyLength/len(k)+1)[:morbitKeyLength]
}

// rankKey returns, for each key position, the rank of its character. Ties keep key order.
func rankKey(key string) []int {
	order := make([]int, len(key))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return key[order[a]] < key[order[b]] })

	ranks := make([]int, len(key))
	for rank, pos := range order {
		ranks[pos] = rank
	}
	return ranks
}
