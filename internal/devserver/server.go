// Package devserver is an in-memory implementation of the flashcard
// backend API. It backs `flashiz serve` for offline use and the client's
// integration tests. Data lives only as long as the process.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/flashiz/internal/models"
	"github.com/abhisek/flashiz/internal/session"
)

// DefaultTokenTTL is how long issued tokens stay valid.
const DefaultTokenTTL = 30 * 24 * time.Hour

// Server serves the backend API.
type Server struct {
	store    *memStore
	secret   []byte
	tokenTTL time.Duration
	validate *validator.Validate
	logger   *zap.Logger
	router   chi.Router
}

type Option func(*Server)

func WithLogger(l *zap.Logger) Option { return func(s *Server) { s.logger = l } }

func WithTokenTTL(d time.Duration) Option { return func(s *Server) { s.tokenTTL = d } }

// WithClock replaces time.Now for token issue and record dates.
func WithClock(now func() time.Time) Option { return func(s *Server) { s.store.nowFunc = now } }

// WithDecks preloads decks.
func WithDecks(decks ...models.Deck) Option {
	return func(s *Server) {
		for _, d := range decks {
			s.store.createDeck(d)
		}
	}
}

// New creates a Server signing tokens with secret.
func New(secret string, opts ...Option) *Server {
	s := &Server{
		store:    newMemStore(),
		secret:   []byte(secret),
		tokenTTL: DefaultTokenTTL,
		validate: validator.New(),
		logger:   zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.recoveryMiddleware)
	r.Use(s.loggingMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/register", s.handleRegister)
		r.Post("/users/login", s.handleLogin)
		r.With(s.protect).Get("/users/me", s.handleMe)

		r.Get("/decks", s.handleListDecks)
		r.Post("/decks", s.handleCreateDeck)
		r.Get("/decks/{id}", s.handleGetDeck)
		r.Post("/decks/{id}/cards", s.handleAddCards)

		r.Group(func(r chi.Router) {
			r.Use(s.protect)
			r.Get("/stats/user", s.handleUserStats)
			r.Get("/stats/deck/{name}", s.handleDeckStats)
			r.Post("/stats", s.handleRecordStats)
			r.Delete("/stats/reset", s.handleResetStats)
		})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("dev backend listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type deckRequest struct {
	Name  string        `json:"name" validate:"required"`
	Cards []models.Card `json:"cards" validate:"dive"`
}

type cardsRequest struct {
	Cards []models.Card `json:"cards" validate:"required,min=1,dive"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !s.decode(w, r, &req, "Please provide name, a valid email and a password of at least 6 characters") {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	user, err := s.store.addUser(req.Name, req.Email, hash)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decode(w, r, &req, "Please provide email and password") {
		return
	}
	u, ok := s.store.userByEmail(req.Email)
	if !ok || bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	token, err := s.issueToken(u.ID)
	if err != nil {
		s.logger.Error("sign token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	writeJSON(w, http.StatusOK, models.LoginResponse{Token: token, User: u.User})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, _ := s.store.userByID(userIDFrom(r.Context()))
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.listDecks())
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.deck(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var req deckRequest
	if !s.decode(w, r, &req, "Deck name is required and every card needs a front and a back") {
		return
	}
	d := s.store.createDeck(models.Deck{Name: req.Name, Cards: req.Cards})
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleAddCards(w http.ResponseWriter, r *http.Request) {
	var req cardsRequest
	if !s.decode(w, r, &req, "Please provide at least one card with a front and a back") {
		return
	}
	d, err := s.store.addCards(chi.URLParam(r, "id"), req.Cards)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.userStats(userIDFrom(r.Context()), ""))
}

func (s *Server) handleDeckStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.userStats(userIDFrom(r.Context()), chi.URLParam(r, "name")))
}

func (s *Server) handleRecordStats(w http.ResponseWriter, r *http.Request) {
	var req models.RecordStatsRequest
	if !s.decode(w, r, &req, "Please provide deck, totalCards and correct") {
		return
	}
	e := s.store.addStat(userIDFrom(r.Context()), models.StatsEntry{
		Deck:       req.Deck,
		TotalCards: req.TotalCards,
		Correct:    req.Correct,
		Accuracy:   session.Accuracy(req.Correct, req.TotalCards),
	})
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleResetStats(w http.ResponseWriter, r *http.Request) {
	n := s.store.resetStats(userIDFrom(r.Context()))
	s.logger.Info("stats reset", zap.String("user", userIDFrom(r.Context())), zap.Int("records", n))
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Statistics reset successfully"})
}

// decode reads a JSON body into v and validates it, writing a 400 with msg
// when either step fails.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any, msg string) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		s.logger.Debug("validation failed", zap.Error(err))
		writeError(w, http.StatusBadRequest, msg)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.MessageResponse{Message: msg})
}
