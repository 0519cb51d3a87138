package engine

// Seeds pairs the server-held secret seed with the player-supplied seed.
// Both are treated as opaque ASCII strings; do NOT hex-decode before hashing.
type Seeds struct {
	Server string `json:"server"`
	Client string `json:"client"`
}
