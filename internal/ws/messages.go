package ws

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/joaointech/Plinko-incinerator/internal/games"
)

// Message is the envelope for every frame in both directions. Data holds
// the type-specific payload.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Client-to-server message types.
const (
	MsgPlay          = "play"
	MsgRotateSeed    = "rotate_seed"
	MsgSetClientSeed = "set_client_seed"
	MsgVerify        = "verify"
)

// Server-to-client message types.
const (
	MsgSession       = "session"
	MsgPlayResult    = "play_result"
	MsgSeedRotated   = "seed_rotated"
	MsgClientSeedSet = "client_seed_set"
	MsgVerifyResult  = "verify_result"
	MsgError         = "error"
)

// Error codes carried in ErrorResponse.
const (
	CodeInvalidInput        = "invalid_input"
	CodeInsufficientBalance = "insufficient_balance"
	CodeInternal            = "internal_error"
)

// PlayRequest asks for one bet to be resolved against the session state.
type PlayRequest struct {
	BetAmount decimal.Decimal `json:"betAmount"`
	Risk      string          `json:"risk"`
	Rows      int             `json:"rows"`
}

// SetClientSeedRequest installs a player-chosen client seed. An empty seed
// asks the server to generate one.
type SetClientSeedRequest struct {
	ClientSeed string `json:"clientSeed"`
}

// VerifyRequest replays an outcome from revealed inputs over the same
// connection the play happened on.
type VerifyRequest struct {
	ServerSeed string        `json:"serverSeed"`
	ClientSeed string        `json:"clientSeed"`
	Nonce      uint64        `json:"nonce"`
	Rows       int           `json:"rows"`
	Risk       string        `json:"risk"`
	Claimed    games.Outcome `json:"claimed"`
}

// PlayResponse reports a resolved play, including the commitment active
// when the outcome was derived.
type PlayResponse struct {
	Path           []int           `json:"path"`
	Bin            int             `json:"binIndex"`
	Multiplier     float64         `json:"multiplier"`
	BetAmount      decimal.Decimal `json:"betAmount"`
	WinAmount      decimal.Decimal `json:"winAmount"`
	Balance        decimal.Decimal `json:"balance"`
	Nonce          uint64          `json:"nonce"`
	ServerSeedHash string          `json:"serverSeedHash"`
}

// SeedRotatedResponse reveals the superseded server seed and publishes the
// next commitment.
type SeedRotatedResponse struct {
	RevealedServerSeed string `json:"revealedServerSeed"`
	ServerSeedHash     string `json:"serverSeedHash"`
	Nonce              uint64 `json:"nonce"`
}

// ClientSeedSetResponse echoes the seed now in effect.
type ClientSeedSetResponse struct {
	ClientSeed string `json:"clientSeed"`
	Nonce      uint64 `json:"nonce"`
}

// VerifyResponse carries the verification verdict.
type VerifyResponse struct {
	Verified bool          `json:"verified"`
	Derived  games.Outcome `json:"derived"`
}

// ErrorResponse reports a rejected request. The session survives the
// error; only the offending request is discarded.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
