// File: internal/server/types.go
package server

import (
	"github.com/xkilldash9x/cryptograms/api/schemas"
)

// APIVersion is reported by GET /api/v1/version.
const APIVersion = "0.1"

// Response is the envelope of every JSON response.
type Response struct {
	Status string      `json:"status"` // "success" or "error"
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// CreateCryptogramRequest is the body of POST /api/v1/cryptograms. Every field is optional.
type CreateCryptogramRequest struct {
	Plaintext *string `json:"plaintext,omitempty"`
	// Length is short, medium or long. Case-insensitive.
	Length *string `json:"length,omitempty"`
	// Type is one of the cipher names, e.g. "hill". Case-insensitive.
	Type *string `json:"type,omitempty"`
	Key  *string `json:"key,omitempty"`
}

// AnswerResponse is returned by GET /api/v1/cryptograms/{token}/answer.
type AnswerResponse struct {
	Token     string             `json:"token"`
	Type      schemas.CipherType `json:"type"`
	Plaintext string             `json:"plaintext"`
	Key       *string            `json:"key,omitempty"`
	Author    *string            `json:"author,omitempty"`
}
