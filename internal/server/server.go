package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/calebtran/interview-agent/internal/db"

	"github.com/google/uuid"
)

// Orchestrator is the slice of engine behavior the handlers call.
// *interview.Engine satisfies it; tests use a fake.
type Orchestrator interface {
	Start(ctx context.Context, sessionID uuid.UUID) error
	Interact(ctx context.Context, sessionID, stepID uuid.UUID, message string) (string, error)
	Complete(ctx context.Context, sessionID, stepID uuid.UUID) (string, error)
	Close(ctx context.Context, sessionID uuid.UUID) error
	RequestResearch(ctx context.Context, sessionID uuid.UUID) error
	AddURLContext(ctx context.Context, sessionID uuid.UUID, url string) (*db.ContextData, error)
	AddRedditContext(ctx context.Context, sessionID uuid.UUID, query string) (*db.ContextData, error)
}

// SessionStore is the persistence the handlers use directly for CRUD.
type SessionStore interface {
	CreateSession(ctx context.Context, userID uuid.UUID) (*db.Session, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*db.Session, error)
	ListSessionsByUser(ctx context.Context, userID uuid.UUID) ([]db.Session, error)
	UpdateSessionFields(ctx context.Context, sessionID uuid.UUID, update db.SessionUpdate) (*db.Session, error)
	GetStep(ctx context.Context, stepID uuid.UUID) (*db.Step, error)
	ListSteps(ctx context.Context, sessionID uuid.UUID) ([]db.Step, error)
	ListContext(ctx context.Context, sessionID uuid.UUID) ([]db.ContextData, error)
	SaveResume(ctx context.Context, userID uuid.UUID, filePath, parsedContent string) (*db.Resume, error)
}

// Server is the HTTP API over the orchestration engine.
type Server struct {
	httpServer  *http.Server
	store       SessionStore
	engine      Orchestrator
	authHandler *AuthHandler
	jwtService  *JWTService
	extractor   TextExtractor
	closers     []func()
}

// New assembles the server. closers run after graceful shutdown, in order.
func New(port string, store SessionStore, engine Orchestrator, authHandler *AuthHandler, jwtService *JWTService, closers ...func()) *Server {
	s := &Server{
		store:       store,
		engine:      engine,
		authHandler: authHandler,
		jwtService:  jwtService,
		extractor:   PlainTextExtractor{},
		closers:     closers,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	auth := s.requireAuth

	mux.Handle("POST /sessions", auth(s.handleCreateSession))
	mux.Handle("GET /sessions", auth(s.handleListSessions))
	mux.Handle("GET /sessions/{id}", auth(s.handleGetSession))
	mux.Handle("PATCH /sessions/{id}", auth(s.handleUpdateSession))
	mux.Handle("POST /sessions/{id}/start", auth(s.handleStartSession))
	mux.Handle("POST /sessions/{id}/close", auth(s.handleCloseSession))
	mux.Handle("POST /sessions/{id}/resume", auth(s.handleUploadResume))

	mux.Handle("GET /sessions/{id}/steps", auth(s.handleListSteps))
	mux.Handle("GET /sessions/{id}/steps/{step_id}", auth(s.handleGetStep))
	mux.Handle("POST /sessions/{id}/steps/{step_id}/interact", auth(s.handleInteract))
	mux.Handle("POST /sessions/{id}/steps/{step_id}/complete", auth(s.handleCompleteStep))

	mux.Handle("POST /sessions/{id}/research", auth(s.handleRequestResearch))
	mux.Handle("GET /sessions/{id}/research/status", auth(s.handleResearchStatus))

	mux.Handle("GET /context/{id}", auth(s.handleListContext))
	mux.Handle("POST /context/{id}/add-url", auth(s.handleAddURLContext))
	mux.Handle("POST /context/{id}/add-reddit", auth(s.handleAddRedditContext))

	return mux
}

// Handler exposes the fully wrapped route tree.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening and blocks until an interrupt, then shuts down
// gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	for _, closer := range s.closers {
		closer()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// pathUUID parses a path parameter as a UUID. Writes a 400 and returns
// false on failure.
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}
