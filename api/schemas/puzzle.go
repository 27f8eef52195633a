package schemas

import (
	"fmt"
	"strings"
	"time"
)

// -- Puzzle Schemas --

// Length buckets quotations by their size in bytes. Ranges are start inclusive, end exclusive.
type Length string

const (
	// LengthShort covers quotations from 60 to 90 bytes.
	LengthShort Length = "short"
	// LengthMedium covers quotations from 90 to 120 bytes.
	LengthMedium Length = "medium"
	// LengthLong covers quotations from 120 to 150 bytes.
	LengthLong Length = "long"
)

// Bounds returns the byte range [min, max) of the bucket.
func (l Length) Bounds() (int, int) {
	switch l {
	case LengthShort:
		return 60, 90
	case LengthLong:
		return 120, 150
	default:
		return 90, 120
	}
}

// ParseLength resolves a length bucket name case-insensitively.
func ParseLength(name string) (Length, error) {
	switch Length(strings.ToLower(strings.TrimSpace(name))) {
	case LengthShort:
		return LengthShort, nil
	case LengthMedium:
		return LengthMedium, nil
	case LengthLong:
		return LengthLong, nil
	}
	return "", fmt.Errorf("unknown length %q (expected short, medium or long)", name)
}

// Cryptogram is the public view of a generated puzzle. The plaintext is never part of it;
// it is retrieved separately with the token.
type Cryptogram struct {
	Ciphertext string     `json:"ciphertext"`
	Type       CipherType `json:"type"`
	Length     Length     `json:"length"`
	Author     *string    `json:"author,omitempty"`
	Token      string     `json:"token"`
}

// PuzzleRecord is the persisted answer behind a cryptogram token.
type PuzzleRecord struct {
	Token     string     `json:"token"`
	Type      CipherType `json:"type"`
	Plaintext string     `json:"plaintext"`
	Key       *string    `json:"key,omitempty"`
	Author    *string    `json:"author,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
