package ws

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"

	"github.com/joaointech/Plinko-incinerator/internal/api"
	"github.com/joaointech/Plinko-incinerator/internal/engine"
	"github.com/joaointech/Plinko-incinerator/internal/games"
	"github.com/joaointech/Plinko-incinerator/internal/session"
	"github.com/joaointech/Plinko-incinerator/internal/store"
)

// Handler upgrades connections and runs one session per connection. Each
// connection gets fresh seeds and its own balance; nothing is shared
// between connections and nothing survives a disconnect.
type Handler struct {
	upgrader        websocket.Upgrader
	db              store.DB
	startingBalance decimal.Decimal
	logger          *log.Logger
}

// NewHandler creates a websocket handler. db may be nil, which disables
// the outcome audit log. allowedOrigin "*" accepts any origin.
func NewHandler(db store.DB, startingBalance decimal.Decimal, allowedOrigin string) *Handler {
	return &Handler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "*" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		},
		db:              db,
		startingBalance: startingBalance,
		logger:          log.New(os.Stdout, "[WS] ", log.LstdFlags),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("upgrade_failed error=%q", err)
		return
	}
	defer conn.Close()

	sess, err := session.New(h.startingBalance)
	if err != nil {
		h.logger.Printf("session_create_failed error=%q", err)
		return
	}

	h.logger.Printf("session_opened session=%s remote=%s", sess.ID(), r.RemoteAddr)
	defer h.logger.Printf("session_closed session=%s", sess.ID())

	if err := h.send(conn, MsgSession, sess.Snapshot()); err != nil {
		return
	}

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Printf("read_failed session=%s error=%q", sess.ID(), err)
			}
			return
		}
		if err := h.handleMessage(conn, sess, &msg); err != nil {
			return
		}
	}
}

// handleMessage dispatches one frame. A non-nil return tears the
// connection down; request-level failures are reported to the client and
// return nil.
func (h *Handler) handleMessage(conn *websocket.Conn, sess *session.Session, msg *Message) error {
	switch msg.Type {
	case MsgPlay:
		return h.handlePlay(conn, sess, msg.Data)
	case MsgRotateSeed:
		return h.handleRotateSeed(conn, sess)
	case MsgSetClientSeed:
		return h.handleSetClientSeed(conn, sess, msg.Data)
	case MsgVerify:
		return h.handleVerify(conn, msg.Data)
	default:
		return h.sendError(conn, CodeInvalidInput, "unknown message type: "+msg.Type)
	}
}

func (h *Handler) handlePlay(conn *websocket.Conn, sess *session.Session, data json.RawMessage) error {
	var req PlayRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return h.sendError(conn, CodeInvalidInput, "malformed play request")
	}

	risk, err := games.ParseRiskTier(req.Risk)
	if err != nil {
		return h.sendError(conn, CodeInvalidInput, err.Error())
	}

	result, err := sess.Play(req.BetAmount, risk, req.Rows)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrInsufficientBalance):
			return h.sendError(conn, CodeInsufficientBalance, err.Error())
		default:
			return h.sendError(conn, CodeInvalidInput, err.Error())
		}
	}

	h.logger.Printf(
		"play_resolved session=%s nonce=%d rows=%d risk=%s bin=%d multiplier=%g",
		sess.ID(), result.Outcome.Nonce, req.Rows, risk, result.Outcome.Bin, result.Outcome.Multiplier,
	)

	h.recordOutcome(sess.ID(), req.Rows, string(risk), result)

	return h.send(conn, MsgPlayResult, PlayResponse{
		Path:           result.Outcome.Path,
		Bin:            result.Outcome.Bin,
		Multiplier:     result.Outcome.Multiplier,
		BetAmount:      result.BetAmount,
		WinAmount:      result.WinAmount,
		Balance:        result.Balance,
		Nonce:          result.Outcome.Nonce,
		ServerSeedHash: result.Outcome.ServerSeedHash,
	})
}

func (h *Handler) handleRotateSeed(conn *websocket.Conn, sess *session.Session) error {
	revealed, newHash, err := sess.RotateSeed()
	if err != nil {
		return h.sendError(conn, CodeInternal, "seed rotation failed")
	}

	h.logger.Printf("seed_rotated session=%s revealed_hash=%s new_hash=%s",
		sess.ID(), engine.HashSeed(revealed), newHash)

	return h.send(conn, MsgSeedRotated, SeedRotatedResponse{
		RevealedServerSeed: revealed,
		ServerSeedHash:     newHash,
		Nonce:              0,
	})
}

func (h *Handler) handleSetClientSeed(conn *websocket.Conn, sess *session.Session, data json.RawMessage) error {
	var req SetClientSeedRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return h.sendError(conn, CodeInvalidInput, "malformed set_client_seed request")
	}

	seed, err := sess.SetClientSeed(req.ClientSeed)
	if err != nil {
		return h.sendError(conn, CodeInternal, "client seed update failed")
	}

	h.logger.Printf("client_seed_set session=%s", sess.ID())

	return h.send(conn, MsgClientSeedSet, ClientSeedSetResponse{
		ClientSeed: seed,
		Nonce:      0,
	})
}

func (h *Handler) handleVerify(conn *websocket.Conn, data json.RawMessage) error {
	var req VerifyRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return h.sendError(conn, CodeInvalidInput, "malformed verify request")
	}

	seeds := engine.Seeds{Server: req.ServerSeed, Client: req.ClientSeed}
	verified, err := games.Verify(seeds, req.Nonce, req.Rows, games.RiskTier(req.Risk), req.Claimed)
	if err != nil {
		return h.sendError(conn, CodeInvalidInput, err.Error())
	}

	derived, err := games.Resolve(seeds, req.Nonce, req.Rows, games.RiskTier(req.Risk))
	if err != nil {
		return h.sendError(conn, CodeInvalidInput, err.Error())
	}

	return h.send(conn, MsgVerifyResult, VerifyResponse{
		Verified: verified,
		Derived:  derived,
	})
}

// recordOutcome appends the play to the audit log. Persistence failures
// are logged and never surface to the player; the play already resolved.
func (h *Handler) recordOutcome(sessionID string, rows int, risk string, result session.PlayResult) {
	if h.db == nil {
		return
	}

	pathJSON, err := json.Marshal(result.Outcome.Path)
	if err != nil {
		h.logger.Printf("outcome_encode_failed session=%s error=%q", sessionID, err)
		return
	}

	record := &store.OutcomeRecord{
		SessionID:      sessionID,
		ServerSeedHash: result.Outcome.ServerSeedHash,
		ClientSeed:     result.Outcome.ClientSeed,
		Nonce:          result.Outcome.Nonce,
		Rows:           rows,
		Risk:           risk,
		PathJSON:       string(pathJSON),
		Bin:            result.Outcome.Bin,
		Multiplier:     result.Outcome.Multiplier,
		BetAmount:      result.BetAmount.String(),
		WinAmount:      result.WinAmount.String(),
		EngineVersion:  api.EngineVersion,
	}
	if err := h.db.SaveOutcome(record); err != nil {
		h.logger.Printf("outcome_save_failed session=%s error=%q", sessionID, err)
	}
}

func (h *Handler) send(conn *websocket.Conn, msgType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Printf("encode_failed type=%s error=%q", msgType, err)
		return err
	}
	return conn.WriteJSON(Message{Type: msgType, Data: data})
}

func (h *Handler) sendError(conn *websocket.Conn, code, message string) error {
	return h.send(conn, MsgError, ErrorResponse{Code: code, Message: message})
}
