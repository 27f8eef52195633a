// Package cipher implements the classical ciphers used to encode cryptograms: the substitution
// family (rot13, Caesar, Aristocrat, Patristocrat and its keyed K1/K2 variants), the Hill
// matrix cipher and the Porta tableau cipher. The Morse based ciphers live in cipher/morse.
//
// Everything here operates on ASCII bytes. Non-ASCII input is passed through or dropped
// according to each cipher's rules but never interpreted.
package cipher

const alphabetSize = 26

// alphabet is the plain lowercase alphabet in order.
var alphabet = [alphabetSize]byte{
	'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm',
	'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z',
}

// caseBit is the single bit that differs between an ASCII letter's upper and lower case forms.
const caseBit = 1 << 5

// Rand is the source of randomness the ciphers draw from. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// WordPicker hands out a random word from a corpus. It is used by ciphers that fall back to a
// dictionary key when none is supplied.
type WordPicker interface {
	Pick(r Rand) string
}

// mapping is a plaintext to ciphertext substitution: mapping[i] is the lowercase ciphertext
// letter for the i-th letter of the alphabet.
type mapping [alphabetSize]byte

func isLetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func toLower(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b | caseBit
	}
	return b
}

// letterIndex returns the zero based alphabet position of an ASCII letter of either case.
func letterIndex(b byte) int {
	return int(toLower(b) - 'a')
}

// matchCase returns b with its case bit copied from ref.
func matchCase(b, ref byte) byte {
	return b&^caseBit | ref&caseBit
}

// shiftLetter moves a letter amount places through the alphabet, wrapping around and keeping
// its case. Negative amounts shift backwards.
func shiftLetter(b byte, amount int) byte {
	shifted := (letterIndex(b) + amount%alphabetSize + alphabetSize) % alphabetSize
	return matchCase(alphabet[shifted], b)
}

// shiftMapping builds the mapping of a plain shift cipher.
func shiftMapping(amount int) mapping {
	var m mapping
	for i := range m {
		m[i] = shiftLetter(alphabet[i], amount)
	}
	return m
}

// apply substitutes every letter of s through m, matching the case of the source letter.
// Non-letters are passed through when keep is true and dropped otherwise.
func (m *mapping) apply(s string, keep bool) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		b := s[i]
		if isLetter(b) {
			out = append(out, matchCase(m[letterIndex(b)], b))
		} else if keep {
			out = append(out, b)
		}
	}
	return out
}

// isBijection reports whether every letter of the alphabet appears exactly once.
func (m *mapping) isBijection() bool {
	var seen [alphabetSize]bool
	for _, b := range m {
		if b < 'a' || b > 'z' || seen[b-'a'] {
			return false
		}
		seen[b-'a'] = true
	}
	return true
}

// isDerangement reports whether no letter maps to itself.
func (m *mapping) isDerangement() bool {
	for i, b := range m {
		if alphabet[i] == b {
			return false
		}
	}
	return true
}

// rotateLeft moves every entry one slot towards the front, wrapping the first to the end.
func (m *mapping) rotateLeft() {
	first := m[0]
	copy(m[:], m[1:])
	m[alphabetSize-1] = first
}

// rotateRight moves every entry one slot towards the end, wrapping the last to the front.
func (m *mapping) rotateRight() {
	last := m[alphabetSize-1]
	copy(m[1:], m[:alphabetSize-1])
	m[0] = last
}

// inverse returns the decryption mapping.
func (m *mapping) inverse() mapping {
	var inv mapping
	for i, b := range m {
		inv[b-'a'] = alphabet[i]
	}
	return inv
}

// keyedAlphabet places the unique letters of key first, in order of first occurrence, followed by
// the rest of the alphabet in ascending order. Non-letters in the key are ignored.
func keyedAlphabet(key string) mapping {
	var (
		m    mapping
		used [alphabetSize]bool
		n    int
	)
	for i := 0; i < len(key); i++ {
		if !isLetter(key[i]) {
			continue
		}
		idx := letterIndex(key[i])
		if used[idx] {
			continue
		}
		used[idx] = true
		m[n] = alphabet[idx]
		n++
	}
	for idx, b := range alphabet {
		if !used[idx] {
			m[n] = b
			n++
		}
	}
	return m
}

// lettersOnly lowercases s and strips everything that is not an ASCII letter.
func lettersOnly(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if isLetter(s[i]) {
			out = append(out, toLower(s[i]))
		}
	}
	return out
}
