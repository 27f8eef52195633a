package cryptarithm

import "strconv"

// assignment maps letters to digits during the search. digit[l] is -1 for an unassigned letter
// and letter[d] is 0 for an unused digit.
type assignment struct {
	digit  [26]int8
	letter [10]byte
}

func newAssignment() assignment {
	var a assignment
	for i := range a.digit {
		a.digit[i] = -1
	}
	return a
}

func (a *assignment) set(l byte, d int) {
	a.digit[l-'a'] = int8(d)
	a.letter[d] = l
}

func (a *assignment) clear(l byte) {
	d := a.digit[l-'a']
	a.digit[l-'a'] = -1
	a.letter[d] = 0
}

// value spells word as a decimal number.
func (a *assignment) value(word string) int {
	n := 0
	for i := 0; i < len(word); i++ {
		n = n*10 + int(a.digit[word[i]-'a'])
	}
	return n
}

// rejection says why a word did not fit a pattern.
type rejection int

const (
	accepted rejection = iota
	rejectLength
	rejectFixed
	rejectGroup
)

// Pattern describes the words that can spell a sum under a partial letter to digit assignment.
//
// A digit of the sum that is already assigned pins its letter at that position. The other
// digits are free: every position holding the same free digit must carry the same letter, that
// letter must not be one of the assigned letters, and different free digits need different
// letters.
type Pattern struct {
	length int
	fixed  []byte
	groups [][]int
	used   [26]bool
}

// NewPattern builds the pattern of sum under digits, a map from lowercase letters to digits.
func NewPattern(sum int, digits map[byte]int) *Pattern {
	a := newAssignment()
	for l, d := range digits {
		a.set(l, d)
	}
	return newPattern(sum, &a)
}

func newPattern(sum int, a *assignment) *Pattern {
	s := strconv.Itoa(sum)
	p := &Pattern{
		length: len(s),
		fixed:  make([]byte, len(s)),
	}
	for i, d := range a.digit {
		p.used[i] = d >= 0
	}

	var groupOf [10]int
	for i := 0; i < len(s); i++ {
		d := s[i] - '0'
		if l := a.letter[d]; l != 0 {
			p.fixed[i] = l
			continue
		}
		if groupOf[d] == 0 {
			p.groups = append(p.groups, nil)
			groupOf[d] = len(p.groups)
		}
		g := groupOf[d] - 1
		p.groups[g] = append(p.groups[g], i)
	}
	return p
}

// Len is the number of letters a matching word has.
func (p *Pattern) Len() int {
	return p.length
}

// Matches reports whether word spells the sum.
func (p *Pattern) Matches(word string) bool {
	return p.check(word) == accepted
}

func (p *Pattern) check(word string) rejection {
	if len(word) != p.length {
		return rejectLength
	}
	for i, l := range p.fixed {
		c := word[i]
		if c < 'a' || c > 'z' {
			return rejectFixed
		}
		if l != 0 && c != l {
			return rejectFixed
		}
		if l == 0 && p.used[c-'a'] {
			return rejectFixed
		}
	}

	seen := p.used
	for _, positions := range p.groups {
		l := word[positions[0]]
		for _, pos := range positions[1:] {
			if word[pos] != l {
				return rejectGroup
			}
		}
		if seen[l-'a'] {
			return rejectGroup
		}
		seen[l-'a'] = true
	}
	return accepted
}
