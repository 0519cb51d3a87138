package games

import (
	"fmt"
	"math"

	"github.com/joaointech/Plinko-incinerator/internal/engine"
)

// BinCount is the number of terminal bins. It is fixed at 17 for every row
// count, matching the 18-edge physical board the payout tables were built
// for. Together with the floor-and-clamp scaling below it is part of the
// frozen outcome format; changing either invalidates every recorded outcome.
const BinCount = 17

const (
	// MinRows and MaxRows bound the supported board heights (8/12/16 are the
	// configurations the client offers).
	MinRows = 8
	MaxRows = 16
)

// RiskTier selects which payout table governs a play.
type RiskTier string

const (
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

// ParseRiskTier validates a wire-format risk string.
func ParseRiskTier(s string) (RiskTier, error) {
	switch RiskTier(s) {
	case RiskLow, RiskMedium, RiskHigh:
		return RiskTier(s), nil
	}
	return "", fmt.Errorf("unknown risk tier %q", s)
}

// Outcome is the immutable result of one resolved play and the unit of
// verification. Path entries are 0 (left) and 1 (right) so the wire format
// stays stable across languages.
type Outcome struct {
	ClientSeed     string  `json:"clientSeed"`
	ServerSeed     string  `json:"serverSeed,omitempty"`
	ServerSeedHash string  `json:"serverSeedHash"`
	Nonce          uint64  `json:"nonce"`
	Path           []int   `json:"path"`
	Bin            int     `json:"binIndex"`
	Multiplier     float64 `json:"multiplier"`
}

// ValidateRows checks that rows is within the supported board range.
func ValidateRows(rows int) error {
	if rows < MinRows || rows > MaxRows {
		return fmt.Errorf("rows must be between %d and %d, got %d", MinRows, MaxRows, rows)
	}
	return nil
}

// DerivePath draws one digest sample per row and maps it to a direction:
// 1 (right) when the sample is >= 0.5, else 0 (left). Row i samples at
// nonce+i, so every row is an independently seeded function of the play's
// base nonce.
func DerivePath(seeds engine.Seeds, nonce uint64, rows int) []int {
	path := make([]int, rows)
	for i := 0; i < rows; i++ {
		if engine.Sample(seeds.Server, seeds.Client, nonce+uint64(i)) >= 0.5 {
			path[i] = 1
		}
	}
	return path
}

// FoldToBin folds a path into its terminal bin index. The signed offset
// (-1 per left, +1 per right) is normalized into [0, 2*rows] and scaled onto
// the fixed 17-bin board with truncation, not rounding. The clamp absorbs
// the extreme all-right path, where the scaled value reaches BinCount
// exactly.
func FoldToBin(path []int) int {
	offset := 0
	for _, d := range path {
		if d == 1 {
			offset++
		} else {
			offset--
		}
	}

	normalized := offset + len(path)
	scale := float64(BinCount) / float64(2*len(path))
	bin := int(math.Floor(float64(normalized) * scale))

	if bin < 0 {
		bin = 0
	}
	if bin > BinCount-1 {
		bin = BinCount - 1
	}
	return bin
}

// Resolve derives the full outcome for one play. Inputs are validated before
// any sample is drawn.
func Resolve(seeds engine.Seeds, nonce uint64, rows int, risk RiskTier) (Outcome, error) {
	if err := ValidateRows(rows); err != nil {
		return Outcome{}, err
	}
	if _, err := ParseRiskTier(string(risk)); err != nil {
		return Outcome{}, err
	}

	path := DerivePath(seeds, nonce, rows)
	bin := FoldToBin(path)

	return Outcome{
		ClientSeed:     seeds.Client,
		ServerSeedHash: engine.HashSeed(seeds.Server),
		Nonce:          nonce,
		Path:           path,
		Bin:            bin,
		Multiplier:     Multiplier(risk, bin),
	}, nil
}

// Verify recomputes the outcome for the given inputs and compares it against
// the claimed one: element-wise path equality plus exact bin and multiplier
// equality. False is a normal answer, not an error; errors are reserved for
// inputs that could never have produced an outcome at all.
func Verify(seeds engine.Seeds, nonce uint64, rows int, risk RiskTier, claimed Outcome) (bool, error) {
	derived, err := Resolve(seeds, nonce, rows, risk)
	if err != nil {
		return false, err
	}

	if derived.Bin != claimed.Bin || derived.Multiplier != claimed.Multiplier {
		return false, nil
	}
	if len(derived.Path) != len(claimed.Path) {
		return false, nil
	}
	for i := range derived.Path {
		if derived.Path[i] != claimed.Path[i] {
			return false, nil
		}
	}
	return true, nil
}
