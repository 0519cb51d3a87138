package api

import (
	"fmt"

	"github.com/joaointech/Plinko-incinerator/internal/games"
)

// ValidateVerifyRequest validates a verify request and returns any
// validation errors. Shape problems are caller errors; a claimed outcome
// that simply does not match is not — that distinction is what keeps a
// "false" verdict separate from a rejected request.
func ValidateVerifyRequest(req *VerifyRequest) error {
	if req.Seeds.Server == "" {
		return fmt.Errorf("server seed is required")
	}
	if req.Seeds.Client == "" {
		return fmt.Errorf("client seed is required")
	}

	if err := games.ValidateRows(req.Rows); err != nil {
		return err
	}

	if _, err := games.ParseRiskTier(req.Risk); err != nil {
		return err
	}

	if len(req.Claimed.Path) != req.Rows {
		return fmt.Errorf("claimed path has %d entries, want %d", len(req.Claimed.Path), req.Rows)
	}
	for i, d := range req.Claimed.Path {
		if d != 0 && d != 1 {
			return fmt.Errorf("claimed path entry %d is %d, want 0 or 1", i, d)
		}
	}

	return nil
}
