// Package api is the HTTP client for the flashcard backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/flashiz/internal/models"
)

// DefaultBaseURL is used when no backend URL is configured.
const DefaultBaseURL = "http://localhost:5000"

// TokenSource supplies the bearer token for authenticated calls. An empty
// token with a nil error means "not logged in"; the request is then sent
// without an Authorization header and the backend decides.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// Client talks to the flashcard backend.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	retry   RetryConfig
	timeout time.Duration
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithTimeout bounds each HTTP request. Zero means no timeout. It applies
// on top of any client given to WithHTTPClient without modifying it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRetry enables bounded retries for GET requests.
func WithRetry(cfg RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

// WithLogger sets the request logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		retry:   DefaultRetryConfig(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// BaseURL returns the backend root this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var user models.User
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/users/register", body: body,
		op: "register", fallback: "Registration failed"}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a token and the user profile.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp models.LoginResponse
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/users/login", body: body,
		op: "login", fallback: "Login failed"}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the profile of the token's owner.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/users/me", auth: true,
		op: "profile", fallback: "Failed to fetch profile"}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListDecks returns all decks.
func (c *Client) ListDecks(ctx context.Context) ([]models.Deck, error) {
	var decks []models.Deck
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/decks",
		op: "list decks", fallback: "Failed to fetch decks"}, &decks); err != nil {
		return nil, err
	}
	return decks, nil
}

// GetDeck returns a single deck with its cards.
func (c *Client) GetDeck(ctx context.Context, id string) (*models.Deck, error) {
	var deck models.Deck
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/decks/" + url.PathEscape(id),
		op: "get deck", fallback: "Failed to fetch deck"}, &deck); err != nil {
		return nil, err
	}
	return &deck, nil
}

// CreateDeck creates a new deck with the given cards.
func (c *Client) CreateDeck(ctx context.Context, name string, cards []models.Card) (*models.Deck, error) {
	body := struct {
		Name  string        `json:"name"`
		Cards []models.Card `json:"cards"`
	}{Name: name, Cards: cards}
	var deck models.Deck
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/decks", body: body,
		op: "create deck", fallback: "Failed to create deck"}, &deck); err != nil {
		return nil, err
	}
	return &deck, nil
}

// AddCards appends cards to an existing deck and returns the updated deck.
func (c *Client) AddCards(ctx context.Context, deckID string, cards []models.Card) (*models.Deck, error) {
	body := struct {
		Cards []models.Card `json:"cards"`
	}{Cards: cards}
	var deck models.Deck
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/decks/" + url.PathEscape(deckID) + "/cards",
		body: body, op: "add cards", fallback: "Failed to add cards"}, &deck); err != nil {
		return nil, err
	}
	return &deck, nil
}

// UserStats returns every stats record of the current user.
func (c *Client) UserStats(ctx context.Context) ([]models.StatsEntry, error) {
	var entries []models.StatsEntry
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/stats/user", auth: true,
		op: "user stats", fallback: "Failed to fetch statistics"}, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// DeckStats returns the current user's stats records for one deck name.
func (c *Client) DeckStats(ctx context.Context, deckName string) ([]models.StatsEntry, error) {
	var entries []models.StatsEntry
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/stats/deck/" + url.PathEscape(deckName), auth: true,
		op: "deck stats", fallback: "Failed to fetch deck statistics"}, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// RecordStats stores the summary of a completed quiz.
func (c *Client) RecordStats(ctx context.Context, req models.RecordStatsRequest) (*models.StatsEntry, error) {
	var entry models.StatsEntry
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/stats", body: req, auth: true,
		op: "record stats", fallback: "Failed to record statistics"}, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ResetStats deletes every stats record of the current user.
func (c *Client) ResetStats(ctx context.Context) (string, error) {
	var resp models.MessageResponse
	if err := c.do(ctx, call{method: http.MethodDelete, path: "/api/stats/reset", auth: true,
		op: "reset stats", fallback: "Failed to reset statistics"}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

type call struct {
	method   string
	path     string
	body     any
	auth     bool
	op       string
	fallback string
}

func (c *Client) do(ctx context.Context, cl call, out any) error {
	var payload []byte
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", cl.op, err)
		}
		payload = b
	}

	var token string
	if cl.auth && c.tokens != nil {
		t, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("load token: %w", err)
		}
		token = t
	}

	attempt := func() error { return c.send(ctx, cl, payload, token, out) }
	if cl.method != http.MethodGet {
		return attempt()
	}
	return withRetry(ctx, c.retry, attempt)
}

func (c *Client) send(ctx context.Context, cl call, payload []byte, token string, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", cl.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed",
			zap.String("op", cl.op),
			zap.String("method", cl.method),
			zap.String("path", cl.path),
			zap.Error(err),
		)
		return &Error{Op: cl.op, Message: cl.fallback, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("backend request",
		zap.String("op", cl.op),
		zap.String("method", cl.method),
		zap.String("path", cl.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: cl.op, Status: resp.StatusCode, Message: cl.fallback, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := cl.fallback
		var body models.MessageResponse
		if json.Unmarshal(data, &body) == nil && body.Message != "" {
			msg = body.Message
		}
		return &Error{Op: cl.op, Status: resp.StatusCode, Message: msg}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Op: cl.op, Status: resp.StatusCode, Message: cl.fallback,
			Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
