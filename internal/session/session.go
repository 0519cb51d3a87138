package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/joaointech/Plinko-incinerator/internal/engine"
	"github.com/joaointech/Plinko-incinerator/internal/games"
)

var (
	// ErrInvalidBet rejects non-positive bet amounts.
	ErrInvalidBet = errors.New("bet amount must be positive")

	// ErrInsufficientBalance rejects bets exceeding the session balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Session owns the per-connection fairness triple (server seed, client seed,
// nonce) and the session balance. One session belongs to exactly one
// connection and is discarded when that connection closes. All methods
// serialize on the session mutex so a play is one atomic
// read-derive-advance unit even if the host handles requests concurrently.
type Session struct {
	mu sync.Mutex

	id             string
	serverSeed     string
	serverSeedHash string
	clientSeed     string
	nonce          uint64
	balance        decimal.Decimal
}

// State is the publicly disclosable snapshot of a session. It never carries
// the active server seed, only its commitment.
type State struct {
	ID             string          `json:"id"`
	ServerSeedHash string          `json:"serverSeedHash"`
	ClientSeed     string          `json:"clientSeed"`
	Nonce          uint64          `json:"nonce"`
	Balance        decimal.Decimal `json:"balance"`
}

// PlayResult couples the derived outcome with the balance movement of the
// play.
type PlayResult struct {
	Outcome   games.Outcome
	BetAmount decimal.Decimal
	WinAmount decimal.Decimal
	Balance   decimal.Decimal
}

// New creates a session with fresh seeds and the given starting balance.
// Entropy failure aborts session creation.
func New(startingBalance decimal.Decimal) (*Session, error) {
	serverSeed, err := engine.GenerateServerSeed()
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	clientSeed, err := engine.GenerateClientSeed()
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &Session{
		id:             uuid.New().String(),
		serverSeed:     serverSeed,
		serverSeedHash: engine.HashSeed(serverSeed),
		clientSeed:     clientSeed,
		balance:        startingBalance,
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Snapshot returns the current disclosable state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		ID:             s.id,
		ServerSeedHash: s.serverSeedHash,
		ClientSeed:     s.clientSeed,
		Nonce:          s.nonce,
		Balance:        s.balance,
	}
}

// Play resolves one bet. Validation runs before any derivation, so a
// rejected bet never burns a nonce. On success the balance moves by
// -bet + bet*multiplier and the nonce advances by exactly 1.
func (s *Session) Play(bet decimal.Decimal, risk games.RiskTier, rows int) (PlayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !bet.IsPositive() {
		return PlayResult{}, ErrInvalidBet
	}
	if bet.GreaterThan(s.balance) {
		return PlayResult{}, ErrInsufficientBalance
	}

	seeds := engine.Seeds{Server: s.serverSeed, Client: s.clientSeed}
	outcome, err := games.Resolve(seeds, s.nonce, rows, risk)
	if err != nil {
		return PlayResult{}, err
	}

	win := bet.Mul(decimal.NewFromFloat(outcome.Multiplier))
	s.balance = s.balance.Sub(bet).Add(win)
	s.nonce++

	return PlayResult{
		Outcome:   outcome,
		BetAmount: bet,
		WinAmount: win,
		Balance:   s.balance,
	}, nil
}

// RotateSeed supersedes the server seed, revealing the outgoing one so the
// player can check it against the previously published commitment. The
// nonce resets to 0 under the new pairing.
func (s *Session) RotateSeed() (revealedSeed, newHash string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := engine.GenerateServerSeed()
	if err != nil {
		return "", "", fmt.Errorf("rotate seed: %w", err)
	}

	revealedSeed = s.serverSeed
	s.serverSeed = next
	s.serverSeedHash = engine.HashSeed(next)
	s.nonce = 0

	return revealedSeed, s.serverSeedHash, nil
}

// SetClientSeed installs a player-supplied seed, generating one when the
// input is empty. The nonce resets to 0.
func (s *Session) SetClientSeed(seed string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seed == "" {
		generated, err := engine.GenerateClientSeed()
		if err != nil {
			return "", fmt.Errorf("set client seed: %w", err)
		}
		seed = generated
	}

	s.clientSeed = seed
	s.nonce = 0

	return seed, nil
}
