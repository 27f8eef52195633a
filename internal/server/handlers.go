// File: internal/server/handlers.go
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/cryptograms/api/schemas"
	"github.com/xkilldash9x/cryptograms/internal/cipher"
	"github.com/xkilldash9x/cryptograms/internal/corpus"
	"github.com/xkilldash9x/cryptograms/internal/cryptarithm"
	"github.com/xkilldash9x/cryptograms/internal/engine"
	"github.com/xkilldash9x/cryptograms/internal/service"
	"github.com/xkilldash9x/cryptograms/internal/store"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxBodyBytes caps request bodies; plaintexts are quotation sized.
const maxBodyBytes = 64 << 10

// Puzzles is the slice of *service.PuzzleService the handlers need.
type Puzzles interface {
	Generate(ctx context.Context, req service.GenerateRequest) (*schemas.Cryptogram, error)
	Reveal(ctx context.Context, token string) (schemas.PuzzleRecord, error)
}

// Handlers manages the HTTP request handling for the puzzle API.
type Handlers struct {
	log     *zap.Logger
	puzzles Puzzles
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(logger *zap.Logger, puzzles Puzzles) *Handlers {
	return &Handlers{
		log:     logger.Named("handlers"),
		puzzles: puzzles,
	}
}

// RegisterRoutes sets up the routing for the puzzle API.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	// Health check endpoint (unversioned)
	r.Get("/healthz", h.HandleHealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/version", h.HandleVersion)
		r.Post("/cryptograms", h.HandleCreateCryptogram)
		r.Get("/cryptograms/{token}/answer", h.HandleGetAnswer)
	})
}

// HandleHealthCheck is a simple handler to confirm the server is responsive.
func (h *Handlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handlers) HandleVersion(w http.ResponseWriter, r *http.Request) {
	h.respondWithSuccess(w, http.StatusOK, map[string]string{"version": APIVersion})
}

// HandleCreateCryptogram generates a puzzle. An empty body asks for all defaults.
func (h *Handlers) HandleCreateCryptogram(w http.ResponseWriter, r *http.Request) {
	var body CreateCryptogramRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		h.respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	req, err := toGenerateRequest(body)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	cg, err := h.puzzles.Generate(r.Context(), req)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	h.respondWithSuccess(w, http.StatusCreated, cg)
}

// HandleGetAnswer reveals the plaintext and key behind a token.
func (h *Handlers) HandleGetAnswer(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	rec, err := h.puzzles.Reveal(r.Context(), token)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	h.respondWithSuccess(w, http.StatusOK, AnswerResponse{
		Token:     rec.Token,
		Type:      rec.Type,
		Plaintext: rec.Plaintext,
		Key:       rec.Key,
		Author:    rec.Author,
	})
}

func toGenerateRequest(body CreateCryptogramRequest) (service.GenerateRequest, error) {
	req := service.GenerateRequest{Plaintext: body.Plaintext, Key: body.Key}
	if body.Type != nil {
		t, err := schemas.ParseCipherType(*body.Type)
		if err != nil {
			return req, err
		}
		req.Type = &t
	}
	if body.Length != nil {
		l, err := schemas.ParseLength(*body.Length)
		if err != nil {
			return req, err
		}
		req.Length = &l
	}
	return req, nil
}

// respondWithServiceError maps domain errors to status codes. Client mistakes keep their
// message; anything unexpected is logged and hidden.
func (h *Handlers) respondWithServiceError(w http.ResponseWriter, err error) {
	var cerr *cipher.Error
	switch {
	case errors.As(err, &cerr):
		h.respondWithError(w, http.StatusBadRequest, cerr.Error())
	case errors.Is(err, engine.ErrUnknownCipher):
		h.respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		h.respondWithError(w, http.StatusNotFound, "Puzzle not found.")
	case errors.Is(err, corpus.ErrNoQuote):
		h.respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, cryptarithm.ErrExhaustedSearch), errors.Is(err, context.DeadlineExceeded):
		h.respondWithError(w, http.StatusServiceUnavailable, "No cryptarithm was found in time, try again.")
	default:
		h.log.Error("Request failed", zap.Error(err))
		h.respondWithError(w, http.StatusInternalServerError, "Internal error.")
	}
}

// respondWithError sends a standardized JSON error response.
func (h *Handlers) respondWithError(w http.ResponseWriter, statusCode int, message string) {
	h.respond(w, statusCode, Response{Status: "error", Error: message})
}

// respondWithSuccess sends a standardized JSON success response.
func (h *Handlers) respondWithSuccess(w http.ResponseWriter, statusCode int, data interface{}) {
	h.respond(w, statusCode, Response{Status: "success", Data: data})
}

func (h *Handlers) respond(w http.ResponseWriter, statusCode int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Error("Failed to encode response", zap.Error(err))
	}
}
