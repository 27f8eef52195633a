// Package corpus provides the read-only word list and quotation book shared by the ciphers and
// the cryptarithm solver. Both are built once and never mutated afterwards.
package corpus

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xkilldash9x/cryptograms/internal/cipher"
)

// Default bounds of the word length window, inclusive.
const (
	DefaultMinWordLength = 4
	DefaultMaxWordLength = 7
)

// ErrEmptyCorpus is returned when no word survives filtering. Callers should fail fast on it.
var ErrEmptyCorpus = errors.New("word corpus is empty")

//go:embed data/words.txt
var defaultWords []byte

// WordList is an immutable list of lowercase ASCII words within a length window.
type WordList struct {
	words []string
}

// NewWordList lowercases, filters and deduplicates words. Only purely alphabetic words with a
// length in [minLen, maxLen] are kept, in their original order.
func NewWordList(words []string, minLen, maxLen int) (*WordList, error) {
	seen := make(map[string]struct{}, len(words))
	kept := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if len(w) < minLen || len(w) > maxLen || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		kept = append(kept, w)
	}
	if len(kept) == 0 {
		return nil, ErrEmptyCorpus
	}
	return &WordList{words: kept}, nil
}

// ReadWordList reads one word per line. Blank lines and lines starting with '#' are skipped.
func ReadWordList(r io.Reader, minLen, maxLen int) (*WordList, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return NewWordList(words, minLen, maxLen)
}

// LoadWordList reads the word list at path, or the embedded default list when path is empty.
func LoadWordList(path string, minLen, maxLen int) (*WordList, error) {
	if path == "" {
		return ReadWordList(bytes.NewReader(defaultWords), minLen, maxLen)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %q: %w", path, err)
	}
	defer f.Close()
	return ReadWordList(f, minLen, maxLen)
}

// Len returns the number of words.
func (l *WordList) Len() int {
	return len(l.words)
}

// Words returns a copy of the words.
func (l *WordList) Words() []string {
	return append([]string(nil), l.words...)
}

// Pick returns a uniformly random word.
func (l *WordList) Pick(r cipher.Rand) string {
	return l.words[r.IntN(len(l.words))]
}

// Sample returns up to k distinct words chosen uniformly without replacement.
func (l *WordList) Sample(r cipher.Rand, k int) []string {
	n := len(l.words)
	k = min(k, n)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	out := make([]string, k)
	for i := 0; i < k; i++ {
		j := i + r.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = l.words[idx[i]]
	}
	return out
}

func isAlpha(w string) bool {
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}
