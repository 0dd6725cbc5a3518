// Package deck builds new cards and decks before they are sent to the
// backend: the create-deck form's draft, and decks imported from JSON files.
package deck

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/flashiz/internal/models"
)

// MinWrongAnswers is how many non-empty wrong answers a new card needs.
const MinWrongAnswers = 2

// MaxWrongAnswers is how many wrong answer inputs the form offers.
const MaxWrongAnswers = 3

var (
	ErrIncompleteCard = errors.New("Please fill front, back, and at least 2 wrong answers")
	ErrNoCards        = errors.New("Please add at least one card before saving.")
	ErrNoTarget       = errors.New("Enter a new deck name or choose an existing deck")
	ErrNothingPreview = errors.New("No cards to preview")
)

// Backend is the part of the API used to save a draft.
type Backend interface {
	CreateDeck(ctx context.Context, name string, cards []models.Card) (*models.Deck, error)
	AddCards(ctx context.Context, deckID string, cards []models.Card) (*models.Deck, error)
}

// Draft collects cards for a new deck or for an existing one.
type Draft struct {
	// Name, when set, creates a new deck on save.
	Name string
	// TargetID is the existing deck cards are added to when Name is empty.
	TargetID string

	cards   []models.Card
	preview int
}

// NewCard builds a card from form input. Blank wrong answers are dropped.
func NewCard(front, back string, wrongAnswers []string) (models.Card, error) {
	f := sanitizeOptional(front)
	b := sanitizeOptional(back)
	var wrong []string
	for _, w := range wrongAnswers {
		if w = sanitizeOptional(w); w != "" {
			wrong = append(wrong, w)
		}
	}
	if f == "" || b == "" || len(wrong) < MinWrongAnswers {
		return models.Card{}, ErrIncompleteCard
	}
	return models.Card{Front: f, Back: b, WrongAnswers: wrong}, nil
}

// AddCard validates and appends a card.
func (d *Draft) AddCard(front, back string, wrongAnswers []string) error {
	c, err := NewCard(front, back, wrongAnswers)
	if err != nil {
		return err
	}
	d.cards = append(d.cards, c)
	return nil
}

// RemoveCard drops the card at i. Out-of-range indexes are ignored.
func (d *Draft) RemoveCard(i int) bool {
	if i < 0 || i >= len(d.cards) {
		return false
	}
	d.cards = append(d.cards[:i], d.cards[i+1:]...)
	if d.preview >= len(d.cards) {
		d.preview = 0
	}
	return true
}

// Cards returns the drafted cards.
func (d *Draft) Cards() []models.Card {
	return d.cards
}

// Clone returns a copy that shares no card storage with d, so it can be
// saved from another goroutine.
func (d *Draft) Clone() *Draft {
	c := *d
	c.cards = append([]models.Card(nil), d.cards...)
	return &c
}

// Len is the number of drafted cards.
func (d *Draft) Len() int {
	return len(d.cards)
}

// Preview returns the card under the preview cursor.
func (d *Draft) Preview() (models.Card, int, error) {
	if len(d.cards) == 0 {
		return models.Card{}, 0, ErrNothingPreview
	}
	return d.cards[d.preview], d.preview, nil
}

// Rewind moves the preview cursor to the first card.
func (d *Draft) Rewind() {
	d.preview = 0
}

// NextPreview moves the preview cursor forward, wrapping around.
func (d *Draft) NextPreview() {
	if n := len(d.cards); n > 0 {
		d.preview = (d.preview + 1) % n
	}
}

// PrevPreview moves the preview cursor back, wrapping around.
func (d *Draft) PrevPreview() {
	if n := len(d.cards); n > 0 {
		d.preview = (d.preview - 1 + n) % n
	}
}

// Save sends the draft and returns the success notification. A non-empty
// Name creates a new deck; otherwise the cards go to TargetID. The draft
// and the name are cleared on success.
func (d *Draft) Save(ctx context.Context, be Backend) (string, error) {
	if len(d.cards) == 0 {
		return "", ErrNoCards
	}
	n := len(d.cards)

	var msg string
	switch {
	case d.Name != "":
		name, err := Sanitize(d.Name)
		if err != nil {
			return "", fmt.Errorf("deck name: %w", err)
		}
		deck, err := be.CreateDeck(ctx, name, d.cards)
		if err != nil {
			return "", err
		}
		msg = fmt.Sprintf("New deck %q created with %d card(s)!", deck.Name, n)
	case d.TargetID != "":
		deck, err := be.AddCards(ctx, d.TargetID, d.cards)
		if err != nil {
			return "", err
		}
		msg = fmt.Sprintf("Added %d card(s) to %q deck!", n, deck.Name)
	default:
		return "", ErrNoTarget
	}

	d.cards = nil
	d.preview = 0
	d.Name = ""
	return msg, nil
}

// SaveErrorMessage formats a failed save for display.
func SaveErrorMessage(msg string) string {
	if msg == "" {
		msg = "Failed to save deck"
	}
	return "Error: " + msg
}
