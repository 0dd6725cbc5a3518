// Package models defines the wire and record types shared by the client,
// the quiz engine, the local store and the reference backend.
package models

import "time"

// Card is a single question/answer pair inside a deck.
type Card struct {
	Front        string   `json:"front" validate:"required"`
	Back         string   `json:"back" validate:"required"`
	WrongAnswers []string `json:"wrongAnswers,omitempty"`
	Hint         string   `json:"hint,omitempty"`
}

// Deck is a named, ordered collection of cards.
type Deck struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
	Cards       []Card `json:"cards"`
}

// User is the authenticated account as returned by the backend.
type User struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResponse is the body returned by a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// StatsEntry is one remote statistics record: the summary of a single
// completed quiz as stored by the backend.
type StatsEntry struct {
	ID         string    `json:"_id,omitempty"`
	Deck       string    `json:"deck"`
	TotalCards int       `json:"totalCards"`
	Correct    int       `json:"correct"`
	Accuracy   int       `json:"accuracy"`
	Date       time.Time `json:"date"`
}

// RecordStatsRequest is the body posted after a quiz completes.
type RecordStatsRequest struct {
	Deck       string `json:"deck" validate:"required"`
	TotalCards int    `json:"totalCards" validate:"gte=1"`
	Correct    int    `json:"correct" validate:"gte=0,ltefield=TotalCards"`
}

// Attempt is the locally cached record of one completed quiz. It carries
// more detail than the remote StatsEntry and is never modified after it
// is written.
type Attempt struct {
	ID         string    `json:"id"`
	DeckID     string    `json:"deckId"`
	DeckName   string    `json:"deckName"`
	TotalCards int       `json:"totalCards"`
	Correct    int       `json:"correct"`
	Accuracy   int       `json:"accuracy"`
	TimeTaken  int       `json:"timeTaken"`
	BestStreak int       `json:"bestStreak"`
	HintsUsed  int       `json:"hintsUsed"`
	Date       time.Time `json:"date"`
}

// StatsEntry converts the attempt to the remote record shape. Used when the
// local history stands in for the remote stats.
func (a Attempt) StatsEntry() StatsEntry {
	return StatsEntry{
		ID:         a.ID,
		Deck:       a.DeckName,
		TotalCards: a.TotalCards,
		Correct:    a.Correct,
		Accuracy:   a.Accuracy,
		Date:       a.Date,
	}
}

// MessageResponse is the generic {message} body used for errors and for
// acknowledgements such as a stats reset.
type MessageResponse struct {
	Message string `json:"message"`
}
