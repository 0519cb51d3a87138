package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteDB implements the DB interface using SQLite.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (or creates) the database at path.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *SQLiteDB) Ping() error {
	return s.db.Ping()
}

// Migrate creates the schema.
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS outcomes (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			server_seed_hash TEXT NOT NULL,
			client_seed TEXT NOT NULL,
			nonce INTEGER NOT NULL,
			row_count INTEGER NOT NULL,
			risk TEXT NOT NULL,
			path_json TEXT NOT NULL,
			bin INTEGER NOT NULL,
			multiplier REAL NOT NULL,
			bet_amount TEXT NOT NULL,
			win_amount TEXT NOT NULL,
			engine_version TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_session ON outcomes(session_id, nonce)`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_created_at ON outcomes(created_at DESC)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// SaveOutcome appends one resolved play to the audit log.
func (s *SQLiteDB) SaveOutcome(o *OutcomeRecord) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO outcomes (
		id, session_id, server_seed_hash, client_seed, nonce, row_count, risk,
		path_json, bin, multiplier, bet_amount, win_amount, engine_version, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.Exec(query,
		o.ID, o.SessionID, o.ServerSeedHash, o.ClientSeed, o.Nonce, o.Rows,
		o.Risk, o.PathJSON, o.Bin, o.Multiplier, o.BetAmount, o.WinAmount,
		o.EngineVersion, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save outcome: %w", err)
	}

	return nil
}

// GetOutcome retrieves a single outcome by id.
func (s *SQLiteDB) GetOutcome(id string) (*OutcomeRecord, error) {
	query := `SELECT id, session_id, server_seed_hash, client_seed, nonce, row_count,
		risk, path_json, bin, multiplier, bet_amount, win_amount, engine_version, created_at
	FROM outcomes WHERE id = ?`

	var o OutcomeRecord
	err := s.db.QueryRow(query, id).Scan(
		&o.ID, &o.SessionID, &o.ServerSeedHash, &o.ClientSeed, &o.Nonce, &o.Rows,
		&o.Risk, &o.PathJSON, &o.Bin, &o.Multiplier, &o.BetAmount, &o.WinAmount,
		&o.EngineVersion, &o.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("outcome not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get outcome: %w", err)
	}

	return &o, nil
}

// ListOutcomes returns a page of the audit log, newest first, optionally
// filtered by session.
func (s *SQLiteDB) ListOutcomes(query OutcomesQuery) (*OutcomesList, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	perPage := query.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 25
	}

	where := ""
	args := []interface{}{}
	if query.SessionID != "" {
		where = " WHERE session_id = ?"
		args = append(args, query.SessionID)
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM outcomes"+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count outcomes: %w", err)
	}

	listQuery := `SELECT id, session_id, server_seed_hash, client_seed, nonce, row_count,
		risk, path_json, bin, multiplier, bet_amount, win_amount, engine_version, created_at
	FROM outcomes` + where + ` ORDER BY created_at DESC, nonce DESC LIMIT ? OFFSET ?`
	listArgs := append(args, perPage, (page-1)*perPage)

	rows, err := s.db.Query(listQuery, listArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to list outcomes: %w", err)
	}
	defer rows.Close()

	outcomes := []OutcomeRecord{}
	for rows.Next() {
		var o OutcomeRecord
		if err := rows.Scan(
			&o.ID, &o.SessionID, &o.ServerSeedHash, &o.ClientSeed, &o.Nonce, &o.Rows,
			&o.Risk, &o.PathJSON, &o.Bin, &o.Multiplier, &o.BetAmount, &o.WinAmount,
			&o.EngineVersion, &o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate outcomes: %w", err)
	}

	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	return &OutcomesList{
		Outcomes:   outcomes,
		TotalCount: total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}, nil
}
