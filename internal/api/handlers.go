package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/joaointech/Plinko-incinerator/internal/engine"
	"github.com/joaointech/Plinko-incinerator/internal/games"
	"github.com/joaointech/Plinko-incinerator/internal/store"
)

// handleVerify recomputes an outcome from the revealed inputs and compares
// it to the claimed one.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "Invalid JSON format", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if err := ValidateVerifyRequest(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}

	if req.Game != "" {
		if _, exists := games.GetGame(req.Game); !exists {
			s.writeError(w, r, http.StatusBadRequest, ErrTypeGameNotFound, fmt.Sprintf("Game '%s' not found", req.Game), map[string]interface{}{
				"available_games": games.ListGames(),
			})
			return
		}
	}

	// Log hashes only, never raw seeds.
	s.logger.Printf(
		"verify_request server_hash=%s client_seed=%s nonce=%d rows=%d risk=%s",
		engine.HashSeed(req.Seeds.Server), req.Seeds.Client, req.Nonce, req.Rows, req.Risk,
	)

	derived, err := games.Resolve(req.Seeds, req.Nonce, req.Rows, games.RiskTier(req.Risk))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeInvalidParams, err.Error(), nil)
		return
	}

	verified, err := games.Verify(req.Seeds, req.Nonce, req.Rows, games.RiskTier(req.Risk), req.Claimed)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeInvalidParams, err.Error(), nil)
		return
	}

	s.logger.Printf("verify_completed nonce=%d verified=%t bin=%d", req.Nonce, verified, derived.Bin)

	s.writeJSON(w, http.StatusOK, VerifyResponse{
		Verified:      verified,
		Derived:       derived,
		EngineVersion: EngineVersion,
	})
}

// handleSeedHash returns the SHA-256 commitment of a server seed.
func (s *Server) handleSeedHash(w http.ResponseWriter, r *http.Request) {
	var req SeedHashRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "Invalid JSON format", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if req.ServerSeed == "" {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeInvalidSeed, "server_seed is required", nil)
		return
	}

	hash := engine.HashSeed(req.ServerSeed)
	s.logger.Printf("seed_hash_request hash=%s", hash)

	s.writeJSON(w, http.StatusOK, SeedHashResponse{
		Hash:          hash,
		EngineVersion: EngineVersion,
	})
}

// handleListGames lists the registered games.
func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, GamesResponse{
		Games:         games.ListGames(),
		EngineVersion: EngineVersion,
	})
}

// handleListOutcomes serves a page of the outcome audit log.
func (s *Server) handleListOutcomes(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.writeError(w, r, http.StatusServiceUnavailable, ErrTypeServiceUnavailable, "outcome audit log is disabled", nil)
		return
	}

	query := store.OutcomesQuery{
		SessionID: r.URL.Query().Get("session_id"),
	}
	if v := r.URL.Query().Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "page must be a positive integer", nil)
			return
		}
		query.Page = page
	}
	if v := r.URL.Query().Get("per_page"); v != "" {
		perPage, err := strconv.Atoi(v)
		if err != nil || perPage < 1 {
			s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "per_page must be a positive integer", nil)
			return
		}
		query.PerPage = perPage
	}

	list, err := s.db.ListOutcomes(query)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, "failed to list outcomes", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	s.writeJSON(w, http.StatusOK, OutcomesResponse{
		OutcomesList:  *list,
		EngineVersion: EngineVersion,
	})
}
