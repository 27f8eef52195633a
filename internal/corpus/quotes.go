package corpus

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	json "github.com/json-iterator/go"

	"github.com/xkilldash9x/cryptograms/api/schemas"
	"github.com/xkilldash9x/cryptograms/internal/cipher"
)

// ErrNoQuote is returned when no quotation falls in the requested length bucket.
var ErrNoQuote = errors.New("no quotation of the requested length")

//go:embed data/quotes.json
var defaultQuotes []byte

// Quote is a quotation and its attribution, if known.
type Quote struct {
	Text   string  `json:"quote"`
	Author *string `json:"author,omitempty"`
}

// QuoteBook is an immutable set of quotations.
type QuoteBook struct {
	quotes []Quote
}

// NewQuoteBook keeps the non-empty quotations.
func NewQuoteBook(quotes []Quote) *QuoteBook {
	kept := make([]Quote, 0, len(quotes))
	for _, q := range quotes {
		if q.Text != "" {
			kept = append(kept, q)
		}
	}
	return &QuoteBook{quotes: kept}
}

// ParseQuoteBook decodes a JSON array of {"quote": ..., "author": ...} objects.
func ParseQuoteBook(data []byte) (*QuoteBook, error) {
	var quotes []Quote
	if err := json.Unmarshal(data, &quotes); err != nil {
		return nil, fmt.Errorf("failed to decode quotes: %w", err)
	}
	return NewQuoteBook(quotes), nil
}

// LoadQuoteBook reads the quotes file at path, or the embedded default book when path is empty.
func LoadQuoteBook(path string) (*QuoteBook, error) {
	if path == "" {
		return ParseQuoteBook(defaultQuotes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quotes file %q: %w", path, err)
	}
	return ParseQuoteBook(data)
}

// Len returns the number of quotations.
func (b *QuoteBook) Len() int {
	return len(b.quotes)
}

// Fetch picks a random quotation whose byte length falls within the bucket.
func (b *QuoteBook) Fetch(length schemas.Length, r cipher.Rand) (Quote, error) {
	lo, hi := length.Bounds()
	var candidates []Quote
	for _, q := range b.quotes {
		if n := len(q.Text); lo <= n && n < hi {
			candidates = append(candidates, q)
		}
	}
	if len(candidates) == 0 {
		return Quote{}, fmt.Errorf("%w: %s (%d to %d bytes)", ErrNoQuote, length, lo, hi)
	}
	return candidates[r.IntN(len(candidates))], nil
}
