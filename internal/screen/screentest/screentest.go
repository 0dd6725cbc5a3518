// Package screentest provides in-memory services and key helpers for
// driving screens in tests.
package screentest

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashiz/internal/api"
	"github.com/abhisek/flashiz/internal/assist"
	"github.com/abhisek/flashiz/internal/auth"
	"github.com/abhisek/flashiz/internal/models"
	"github.com/abhisek/flashiz/internal/screen"
	"github.com/abhisek/flashiz/internal/session"
	"github.com/abhisek/flashiz/internal/stats"
	"github.com/abhisek/flashiz/internal/store"
)

// KeyPress builds a printable key press.
func KeyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// SpecialKey builds a non-printable key press such as tea.KeyEnter.
func SpecialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// CtrlKey builds ctrl+r style presses.
func CtrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

// Type sends each rune of text to update.
func Type(s screen.Screen, text string) screen.Screen {
	for _, r := range text {
		s, _ = s.Update(KeyPress(r))
	}
	return s
}

// Exec runs cmd and returns the message it produced, flattening batches
// and sequences into their first non-nil message. Tick commands are not
// special: they block for their duration.
func Exec(cmd tea.Cmd) tea.Msg {
	msgs := ExecAll(cmd)
	if len(msgs) == 0 {
		return nil
	}
	return msgs[0]
}

// ExecAll runs cmd and every command nested inside batches or sequences.
func ExecAll(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch m := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, ExecAll(c)...)
		}
		return out
	}
	if seq, ok := asSequence(msg); ok {
		var out []tea.Msg
		for _, c := range seq {
			out = append(out, ExecAll(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// MemKV is a map-backed store.KV.
type MemKV struct {
	mu sync.Mutex
	m  map[string]string
}

func NewMemKV() *MemKV {
	return &MemKV{m: map[string]string{}}
}

func (k *MemKV) Get(_ context.Context, key string) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.m[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return v, nil
}

func (k *MemKV) Set(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.m[key] = value
	return nil
}

func (k *MemKV) Clear(_ context.Context, keys ...string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, key := range keys {
		delete(k.m, key)
	}
	return nil
}

// FakeAPI stands in for the backend client. Set the *Err fields to make
// the matching calls fail.
type FakeAPI struct {
	mu sync.Mutex

	Decks    []models.Deck
	Entries  []models.StatsEntry
	Recorded []models.RecordStatsRequest
	Created  []string

	LoginErr    error
	RegisterErr error
	ListErr     error
	GetErr      error
	SaveErr     error
	StatsErr    error
	RecordErr   error
	ResetErr    error
}

func (f *FakeAPI) Login(_ context.Context, email, _ string) (*models.LoginResponse, error) {
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return &models.LoginResponse{Token: "tok", User: models.User{ID: "u1", Name: "Ada", Email: email}}, nil
}

func (f *FakeAPI) Register(_ context.Context, name, email, _ string) (*models.User, error) {
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	return &models.User{ID: "u2", Name: name, Email: email}, nil
}

func (f *FakeAPI) ListDecks(context.Context) ([]models.Deck, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Decks, nil
}

func (f *FakeAPI) GetDeck(_ context.Context, id string) (*models.Deck, error) {
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	for i := range f.Decks {
		if f.Decks[i].ID == id {
			d := f.Decks[i]
			return &d, nil
		}
	}
	return nil, &api.Error{Status: 404, Message: "Deck not found"}
}

func (f *FakeAPI) CreateDeck(_ context.Context, name string, cards []models.Card) (*models.Deck, error) {
	if f.SaveErr != nil {
		return nil, f.SaveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	d := models.Deck{ID: fmt.Sprintf("d%d", len(f.Decks)+1), Name: name, Cards: cards}
	f.Decks = append(f.Decks, d)
	f.Created = append(f.Created, name)
	return &d, nil
}

func (f *FakeAPI) AddCards(_ context.Context, id string, cards []models.Card) (*models.Deck, error) {
	if f.SaveErr != nil {
		return nil, f.SaveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Decks {
		if f.Decks[i].ID == id {
			f.Decks[i].Cards = append(f.Decks[i].Cards, cards...)
			d := f.Decks[i]
			return &d, nil
		}
	}
	return nil, &api.Error{Status: 404, Message: "Deck not found"}
}

func (f *FakeAPI) UserStats(context.Context) ([]models.StatsEntry, error) {
	if f.StatsErr != nil {
		return nil, f.StatsErr
	}
	return f.Entries, nil
}

func (f *FakeAPI) DeckStats(_ context.Context, name string) ([]models.StatsEntry, error) {
	if f.StatsErr != nil {
		return nil, f.StatsErr
	}
	var out []models.StatsEntry
	for _, e := range f.Entries {
		if e.Deck == name {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *FakeAPI) RecordStats(_ context.Context, req models.RecordStatsRequest) (*models.StatsEntry, error) {
	if f.RecordErr != nil {
		return nil, f.RecordErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Recorded = append(f.Recorded, req)
	e := models.StatsEntry{
		Deck:       req.Deck,
		TotalCards: req.TotalCards,
		Correct:    req.Correct,
		Accuracy:   session.Accuracy(req.Correct, req.TotalCards),
		Date:       time.Now().UTC(),
	}
	f.Entries = append(f.Entries, e)
	return &e, nil
}

func (f *FakeAPI) ResetStats(context.Context) (string, error) {
	if f.ResetErr != nil {
		return "", f.ResetErr
	}
	f.Entries = nil
	return "Statistics reset successfully", nil
}

// MemHistory is an in-memory attempt history.
type MemHistory struct {
	mu       sync.Mutex
	Attempts []models.Attempt
}

func (h *MemHistory) Append(_ context.Context, a models.Attempt) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Attempts = append(h.Attempts, a)
	return nil
}

func (h *MemHistory) List(context.Context, store.QueryOpts) ([]models.Attempt, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]models.Attempt(nil), h.Attempts...), nil
}

func (h *MemHistory) Clear(context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Attempts = nil
	return nil
}

// Env bundles services wired to in-memory fakes.
type Env struct {
	Services *screen.Services
	API      *FakeAPI
	KV       *MemKV
	History  *MemHistory
}

// NewEnv wires services with zero reveal and transition delays.
func NewEnv() *Env {
	fake := &FakeAPI{}
	kv := NewMemKV()
	hist := &MemHistory{}
	svc := &screen.Services{
		Auth:     auth.NewManager(fake, kv, nil),
		Decks:    fake,
		Writer:   fake,
		Stats:    stats.NewService(fake, hist, nil),
		Recorder: session.NewRecorder(hist, fake, nil),
		History:  hist,
		Assist:   assist.New(nil, nil),
	}
	return &Env{Services: svc, API: fake, KV: kv, History: hist}
}

// SignIn stores a session as if the user had logged in.
func (e *Env) SignIn() {
	_ = e.KV.Set(context.Background(), auth.KeyToken, "tok")
	_ = e.KV.Set(context.Background(), auth.KeyUser, `{"_id":"u1","name":"Ada","email":"ada@example.com"}`)
}

// Unauthorized is the error the backend returns for a rejected token.
func Unauthorized() error {
	return &api.Error{Status: 401, Message: "Not authorized, token failed"}
}

var cmdType = reflect.TypeOf(tea.Cmd(nil))

// asSequence unpacks the unexported slice type produced by tea.Sequence.
func asSequence(msg tea.Msg) ([]tea.Cmd, bool) {
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Slice || v.Type().Elem() != cmdType {
		return nil, false
	}
	out := make([]tea.Cmd, v.Len())
	for i := range out {
		out[i], _ = v.Index(i).Interface().(tea.Cmd)
	}
	return out, true
}
