package api

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/joaointech/Plinko-incinerator/internal/store"
)

// Server handles the HTTP surface: stateless verification, commitment
// hashing, and the outcome audit log. The stateful play channel lives on
// the websocket handler mounted at /ws.
type Server struct {
	db        store.DB
	ws        http.Handler
	logger    *log.Logger
	startTime time.Time
}

// NewServer creates a new API server. db and ws may be nil; the dependent
// endpoints then report unavailable.
func NewServer(db store.DB, ws http.Handler) *Server {
	return &Server{
		db:        db,
		ws:        ws,
		logger:    log.New(os.Stdout, "[API] ", log.LstdFlags|log.Lshortfile),
		startTime: time.Now(),
	}
}

// Routes sets up the HTTP routes with proper middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.corsMiddleware)

	r.Get("/health", s.handleHealthCheck)
	r.Get("/health/ready", s.handleReadiness)
	r.Get("/health/live", s.handleLiveness)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/verify", s.handleVerify)
		r.Post("/seed/hash", s.handleSeedHash)
		r.Get("/games", s.handleListGames)
		r.Get("/outcomes", s.handleListOutcomes)
	})

	if s.ws != nil {
		r.Handle("/ws", s.ws)
	}

	return r
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response with proper headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Engine-Version", EngineVersion)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// writeError writes a structured error response.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, errType, message string, context map[string]interface{}) {
	requestID := middleware.GetReqID(r.Context())

	s.logger.Printf(
		"error_occurred type=%s category=%s status=%d request_id=%s path=%s message=%q",
		errType, GetErrorCategory(errType), status, requestID, r.URL.Path, message,
	)

	w.Header().Set("X-Error-Type", errType)
	s.writeJSON(w, status, EngineError{
		Type:      errType,
		Message:   message,
		Context:   context,
		RequestID: requestID,
	})
}
