package games

// GameSpec describes a registered game.
type GameSpec struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MetricLabel string `json:"metric_label"`
}

// Game is a provably fair game the server can resolve and verify.
type Game interface {
	Spec() GameSpec

	// SamplesNeeded returns how many digest samples one play consumes for
	// the given board height.
	SamplesNeeded(rows int) int
}

// PlinkoGame implements the fixed-board Plinko game.
type PlinkoGame struct{}

// Spec returns metadata about the Plinko game.
func (g *PlinkoGame) Spec() GameSpec {
	return GameSpec{
		ID:          "plinko",
		Name:        "Plinko",
		MetricLabel: "multiplier",
	}
}

// SamplesNeeded returns one sample per board row.
func (g *PlinkoGame) SamplesNeeded(rows int) int {
	return rows
}

var gameRegistry = make(map[string]Game)

// RegisterGame adds a game to the registry.
func RegisterGame(game Game) {
	gameRegistry[game.Spec().ID] = game
}

// GetGame retrieves a game by id.
func GetGame(id string) (Game, bool) {
	game, exists := gameRegistry[id]
	return game, exists
}

// ListGames returns the specs of all registered games.
func ListGames() []GameSpec {
	specs := make([]GameSpec, 0, len(gameRegistry))
	for _, game := range gameRegistry {
		specs = append(specs, game.Spec())
	}
	return specs
}

func init() {
	RegisterGame(&PlinkoGame{})
}
