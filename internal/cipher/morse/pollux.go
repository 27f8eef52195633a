package morse

import (
	"strings"

	"github.com/xkilldash9x/cryptograms/api/schemas"
)

// polluxGroups assigns three digits each to the separator, the dash and the dot. The tenth
// digit is left unused.
type polluxGroups struct {
	null [3]byte
	dash [3]byte
	dot  [3]byte
}

func newPolluxGroups(r Rand) polluxGroups {
	digits := []byte("0123456789")
	r.Shuffle(len(digits), func(i, j int) { digits[i], digits[j] = digits[j], digits[i] })

	var g polluxGroups
	copy(g.null[:], digits[0:3])
	copy(g.dash[:], digits[3:6])
	copy(g.dot[:], digits[6:9])
	return g
}

func pick(group [3]byte, r Rand) byte {
	return group[r.IntN(len(group))]
}

// Pollux replaces each Morse mark with a random digit from that mark's group. One separator
// digit goes between letters and two between words. No key is returned: the digit groups are
// many to one and the puzzle is meant to be solved, not decoded.
func Pollux(s string, r Rand) schemas.CipherResult {
	g := newPolluxGroups(r)

	var sb strings.Builder
	for wi, letters := range words(s) {
		if wi > 0 {
			sb.WriteByte(pick(g.null, r))
			sb.WriteByte(pick(g.null, r))
		}
		for li, code := range letters {
			if li > 0 {
				sb.WriteByte(pick(g.null, r))
			}
			for i := 0; i < len(code); i++ {
				if code[i] == '-' {
					sb.WriteByte(pick(g.dash, r))
				} else {
					sb.WriteByte(pick(g.dot, r))
				}
			}
		}
	}

	return schemas.CipherResult{Ciphertext: sb.String()}
}
