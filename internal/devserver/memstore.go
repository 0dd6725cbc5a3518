package devserver

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/flashiz/internal/models"
)

var (
	errUserExists   = errors.New("User already exists")
	errDeckNotFound = errors.New("Deck not found")
)

type userRecord struct {
	models.User
	PasswordHash []byte
}

type statRecord struct {
	models.StatsEntry
	UserID string
}

// memStore holds all backend data in memory.
type memStore struct {
	mu      sync.RWMutex
	users   map[string]*userRecord // by email
	byID    map[string]*userRecord
	decks   []*models.Deck
	stats   []statRecord
	nowFunc func() time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[string]*userRecord),
		byID:    make(map[string]*userRecord),
		nowFunc: time.Now,
	}
}

func (s *memStore) addUser(name, email string, hash []byte) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[email]; ok {
		return models.User{}, errUserExists
	}
	u := &userRecord{User: models.User{ID: uuid.NewString(), Name: name, Email: email}, PasswordHash: hash}
	s.users[email] = u
	s.byID[u.ID] = u
	return u.User, nil
}

func (s *memStore) userByEmail(email string) (*userRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[email]
	return u, ok
}

func (s *memStore) userByID(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return models.User{}, false
	}
	return u.User, true
}

func cloneDeck(d *models.Deck) models.Deck {
	out := *d
	out.Cards = slices.Clone(d.Cards)
	return out
}

func (s *memStore) listDecks() []models.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Deck, len(s.decks))
	for i, d := range s.decks {
		out[i] = cloneDeck(d)
	}
	return out
}

func (s *memStore) findDeck(id string) *models.Deck {
	for _, d := range s.decks {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func (s *memStore) deck(id string) (models.Deck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := s.findDeck(id)
	if d == nil {
		return models.Deck{}, errDeckNotFound
	}
	return cloneDeck(d), nil
}

func (s *memStore) createDeck(d models.Deck) models.Deck {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = uuid.NewString()
	d.Cards = slices.Clone(d.Cards)
	s.decks = append(s.decks, &d)
	return cloneDeck(&d)
}

func (s *memStore) addCards(id string, cards []models.Card) (models.Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.findDeck(id)
	if d == nil {
		return models.Deck{}, errDeckNotFound
	}
	d.Cards = append(d.Cards, cards...)
	return cloneDeck(d), nil
}

func (s *memStore) addStat(userID string, e models.StatsEntry) models.StatsEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = uuid.NewString()
	e.Date = s.nowFunc().UTC()
	s.stats = append(s.stats, statRecord{StatsEntry: e, UserID: userID})
	return e
}

// userStats returns the user's records oldest first, optionally for one
// deck name.
func (s *memStore) userStats(userID, deck string) []models.StatsEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.StatsEntry{}
	for _, r := range s.stats {
		if r.UserID == userID && (deck == "" || r.Deck == deck) {
			out = append(out, r.StatsEntry)
		}
	}
	return out
}

func (s *memStore) resetStats(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.stats)
	s.stats = slices.DeleteFunc(s.stats, func(r statRecord) bool { return r.UserID == userID })
	return before - len(s.stats)
}
