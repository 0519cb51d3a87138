package api

import (
	"github.com/joaointech/Plinko-incinerator/internal/engine"
	"github.com/joaointech/Plinko-incinerator/internal/games"
	"github.com/joaointech/Plinko-incinerator/internal/store"
)

// EngineError represents a structured error response with context.
type EngineError struct {
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// Error implements the error interface.
func (e EngineError) Error() string {
	return e.Message
}

// Error types with proper categorization
const (
	// Input validation errors
	ErrTypeInvalidSeed   = "invalid_seed"
	ErrTypeInvalidParams = "invalid_params"
	ErrTypeValidation    = "validation_error"

	// Game-related errors
	ErrTypeGameNotFound = "game_not_found"

	// System errors
	ErrTypeInternal           = "internal_error"
	ErrTypeServiceUnavailable = "service_unavailable"
)

// ErrorCategory represents error categories for monitoring.
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryGame       ErrorCategory = "game"
	CategorySystem     ErrorCategory = "system"
)

// GetErrorCategory returns the category for an error type.
func GetErrorCategory(errType string) ErrorCategory {
	switch errType {
	case ErrTypeInvalidSeed, ErrTypeInvalidParams, ErrTypeValidation:
		return CategoryValidation
	case ErrTypeGameNotFound:
		return CategoryGame
	default:
		return CategorySystem
	}
}

// VerifyRequest asks the engine to recompute an outcome and compare it to a
// claimed one. A false result is a normal answer, distinct from a malformed
// request.
type VerifyRequest struct {
	Game    string        `json:"game,omitempty"`
	Seeds   engine.Seeds  `json:"seeds"`
	Nonce   uint64        `json:"nonce"`
	Rows    int           `json:"rows"`
	Risk    string        `json:"risk"`
	Claimed games.Outcome `json:"claimed"`
}

// VerifyResponse carries the verification verdict plus the independently
// derived outcome for debugging.
type VerifyResponse struct {
	Verified      bool          `json:"verified"`
	Derived       games.Outcome `json:"derived"`
	EngineVersion string        `json:"engine_version"`
}

// SeedHashRequest asks for the commitment of a server seed.
type SeedHashRequest struct {
	ServerSeed string `json:"server_seed"`
}

// SeedHashResponse carries the commitment.
type SeedHashResponse struct {
	Hash          string `json:"hash"`
	EngineVersion string `json:"engine_version"`
}

// GamesResponse lists the registered games.
type GamesResponse struct {
	Games         []games.GameSpec `json:"games"`
	EngineVersion string           `json:"engine_version"`
}

// OutcomesResponse is a page of the audit log.
type OutcomesResponse struct {
	store.OutcomesList
	EngineVersion string `json:"engine_version"`
}
