package store

import (
	"testing"
	"time"
)

func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()

	db, err := NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func testOutcome(sessionID string, nonce uint64) *OutcomeRecord {
	return &OutcomeRecord{
		SessionID:      sessionID,
		ServerSeedHash: "hash_" + sessionID,
		ClientSeed:     "client_" + sessionID,
		Nonce:          nonce,
		Rows:           8,
		Risk:           "medium",
		PathJSON:       "[0,0,0,0,1,0,0,1]",
		Bin:            4,
		Multiplier:     3,
		BetAmount:      "10",
		WinAmount:      "30",
		EngineVersion:  "dev",
	}
}

func TestSaveAndGetOutcome(t *testing.T) {
	db := newTestDB(t)

	o := testOutcome("session1", 0)
	if err := db.SaveOutcome(o); err != nil {
		t.Fatalf("SaveOutcome() error: %v", err)
	}
	if o.ID == "" {
		t.Fatal("SaveOutcome did not assign an id")
	}

	got, err := db.GetOutcome(o.ID)
	if err != nil {
		t.Fatalf("GetOutcome() error: %v", err)
	}

	if got.SessionID != o.SessionID {
		t.Errorf("session id %q, want %q", got.SessionID, o.SessionID)
	}
	if got.Nonce != o.Nonce {
		t.Errorf("nonce %d, want %d", got.Nonce, o.Nonce)
	}
	if got.PathJSON != o.PathJSON {
		t.Errorf("path json %q, want %q", got.PathJSON, o.PathJSON)
	}
	if got.Bin != o.Bin || got.Multiplier != o.Multiplier {
		t.Errorf("bin/multiplier %d/%f, want %d/%f", got.Bin, got.Multiplier, o.Bin, o.Multiplier)
	}
	if got.BetAmount != "10" || got.WinAmount != "30" {
		t.Errorf("amounts %s/%s, want 10/30", got.BetAmount, got.WinAmount)
	}
}

func TestGetOutcomeMissing(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.GetOutcome("nope"); err == nil {
		t.Error("GetOutcome returned no error for a missing id")
	}
}

func TestListOutcomes(t *testing.T) {
	db := newTestDB(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := uint64(0); i < 3; i++ {
		o := testOutcome("session1", i)
		o.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if err := db.SaveOutcome(o); err != nil {
			t.Fatalf("SaveOutcome() error: %v", err)
		}
	}
	other := testOutcome("session2", 0)
	other.CreatedAt = base.Add(time.Hour)
	if err := db.SaveOutcome(other); err != nil {
		t.Fatalf("SaveOutcome() error: %v", err)
	}

	all, err := db.ListOutcomes(OutcomesQuery{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("ListOutcomes() error: %v", err)
	}
	if all.TotalCount != 4 {
		t.Errorf("total count %d, want 4", all.TotalCount)
	}
	if len(all.Outcomes) != 4 {
		t.Errorf("listed %d outcomes, want 4", len(all.Outcomes))
	}
	if all.Outcomes[0].SessionID != "session2" {
		t.Errorf("newest outcome session %q, want session2", all.Outcomes[0].SessionID)
	}

	filtered, err := db.ListOutcomes(OutcomesQuery{SessionID: "session1", Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("ListOutcomes(filtered) error: %v", err)
	}
	if filtered.TotalCount != 3 {
		t.Errorf("filtered total %d, want 3", filtered.TotalCount)
	}
	for _, o := range filtered.Outcomes {
		if o.SessionID != "session1" {
			t.Errorf("filter leaked session %q", o.SessionID)
		}
	}

	paged, err := db.ListOutcomes(OutcomesQuery{Page: 2, PerPage: 3})
	if err != nil {
		t.Fatalf("ListOutcomes(paged) error: %v", err)
	}
	if len(paged.Outcomes) != 1 {
		t.Errorf("page 2 has %d outcomes, want 1", len(paged.Outcomes))
	}
	if paged.TotalPages != 2 {
		t.Errorf("total pages %d, want 2", paged.TotalPages)
	}
}

func TestListOutcomesEmpty(t *testing.T) {
	db := newTestDB(t)

	list, err := db.ListOutcomes(OutcomesQuery{})
	if err != nil {
		t.Fatalf("ListOutcomes() error: %v", err)
	}
	if list.TotalCount != 0 || len(list.Outcomes) != 0 {
		t.Errorf("empty db listed %d outcomes (total %d)", len(list.Outcomes), list.TotalCount)
	}
	if list.Page != 1 || list.TotalPages != 1 {
		t.Errorf("empty db pagination page=%d totalPages=%d, want 1/1", list.Page, list.TotalPages)
	}
}
