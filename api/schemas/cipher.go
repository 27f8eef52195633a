package schemas

import (
	"fmt"
	"strings"
)

// -- Cipher Schemas --

// CipherType selects the cipher used to encode a cryptogram.
type CipherType string

const (
	CipherIdentity       CipherType = "identity"
	CipherRot13          CipherType = "rot13"
	CipherCaesar         CipherType = "caesar"
	CipherAristocrat     CipherType = "aristocrat"
	CipherPatristocrat   CipherType = "patristocrat"
	CipherPatristocratK1 CipherType = "patristocrat_k1"
	CipherPatristocratK2 CipherType = "patristocrat_k2"
	CipherHill           CipherType = "hill"
	CipherMorbit         CipherType = "morbit"
	CipherPollux         CipherType = "pollux"
	CipherPorta          CipherType = "porta"
	CipherCryptarithm    CipherType = "cryptarithm"
)

// CipherTypes lists every supported cipher in a stable order.
var CipherTypes = []CipherType{
	CipherIdentity,
	CipherRot13,
	CipherCaesar,
	CipherAristocrat,
	CipherPatristocrat,
	CipherPatristocratK1,
	CipherPatristocratK2,
	CipherHill,
	CipherMorbit,
	CipherPollux,
	CipherPorta,
	CipherCryptarithm,
}

// ParseCipherType resolves a cipher name case-insensitively. Dashes are accepted in place of
// underscores so "patristocrat-k1" works on the command line.
func ParseCipherType(name string) (CipherType, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for _, t := range CipherTypes {
		if string(t) == normalized {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown cipher type %q", name)
}

// CipherRequest is a single encryption request handed to the engine.
type CipherRequest struct {
	Plaintext string     `json:"plaintext"`
	Type      CipherType `json:"type"`
	// Key is optional. Ciphers that need one draw it themselves when it is nil.
	Key *string `json:"key,omitempty"`
}

// CipherResult is what a cipher produces: the ciphertext and the key actually used, if any.
type CipherResult struct {
	Ciphertext string  `json:"ciphertext"`
	Key        *string `json:"key,omitempty"`
}

// StringPtr is a small helper for optional string fields.
func StringPtr(s string) *string {
	return &s
}
