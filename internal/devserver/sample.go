package devserver

import "github.com/abhisek/flashiz/internal/models"

// SampleDecks returns a few small decks for trying the client against an
// empty backend.
func SampleDecks() []models.Deck {
	return []models.Deck{
		{
			Name:        "World Capitals",
			Description: "Match each country with its capital city.",
			Difficulty:  "easy",
			Cards: []models.Card{
				{Front: "France", Back: "Paris", WrongAnswers: []string{"Lyon", "Marseille", "Nice"}},
				{Front: "Japan", Back: "Tokyo", WrongAnswers: []string{"Osaka", "Kyoto", "Nagoya"}},
				{Front: "Australia", Back: "Canberra", WrongAnswers: []string{"Sydney", "Melbourne", "Perth"}, Hint: "Purpose-built in the 1910s"},
				{Front: "Canada", Back: "Ottawa", WrongAnswers: []string{"Toronto", "Montreal"}},
				{Front: "Brazil", Back: "Brasília"},
			},
		},
		{
			Name:       "Go Basics",
			Difficulty: "medium",
			Cards: []models.Card{
				{Front: "Keyword that starts a goroutine", Back: "go", WrongAnswers: []string{"async", "spawn", "thread"}},
				{Front: "Zero value of a map", Back: "nil", WrongAnswers: []string{"map[]", "0", "empty map"}},
				{Front: "Built-in for appending to a slice", Back: "append", WrongAnswers: []string{"push", "add"}},
				{Front: "Statement that runs at function return", Back: "defer"},
			},
		},
	}
}
