package store

import (
	"time"
)

// DB is the outcome audit log interface.
type DB interface {
	Close() error
	Ping() error
	Migrate() error
	SaveOutcome(o *OutcomeRecord) error
	GetOutcome(id string) (*OutcomeRecord, error)
	ListOutcomes(query OutcomesQuery) (*OutcomesList, error)
}

// OutcomeRecord is one resolved play as persisted for audit. The raw server
// seed is never stored, only its hash; the seed itself surfaces to the
// player through rotation. Bet and win amounts are decimal strings to keep
// the stored values exact.
type OutcomeRecord struct {
	ID             string    `json:"id" db:"id"`
	SessionID      string    `json:"session_id" db:"session_id"`
	ServerSeedHash string    `json:"server_seed_hash" db:"server_seed_hash"`
	ClientSeed     string    `json:"client_seed" db:"client_seed"`
	Nonce          uint64    `json:"nonce" db:"nonce"`
	Rows           int       `json:"rows" db:"row_count"`
	Risk           string    `json:"risk" db:"risk"`
	PathJSON       string    `json:"path_json" db:"path_json"`
	Bin            int       `json:"bin" db:"bin"`
	Multiplier     float64   `json:"multiplier" db:"multiplier"`
	BetAmount      string    `json:"bet_amount" db:"bet_amount"`
	WinAmount      string    `json:"win_amount" db:"win_amount"`
	EngineVersion  string    `json:"engine_version" db:"engine_version"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// OutcomesQuery represents query parameters for listing outcomes.
type OutcomesQuery struct {
	SessionID string `json:"session_id,omitempty"`
	Page      int    `json:"page"`
	PerPage   int    `json:"perPage"`
}

// OutcomesList represents a paginated outcomes response.
type OutcomesList struct {
	Outcomes   []OutcomeRecord `json:"outcomes"`
	TotalCount int             `json:"totalCount"`
	Page       int             `json:"page"`
	PerPage    int             `json:"perPage"`
	TotalPages int             `json:"totalPages"`
}
