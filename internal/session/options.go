package session

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/abhisek/flashiz/internal/models"
)

// OptionCount is the number of choices shown for every question.
const OptionCount = 4

const distractorCount = OptionCount - 1

// ValidWrongAnswers returns the stored wrong answers that are non-empty
// after trimming, in their stored order.
func ValidWrongAnswers(answers []string) []string {
	var out []string
	for _, a := range answers {
		if strings.TrimSpace(a) != "" {
			out = append(out, a)
		}
	}
	return out
}

// BuildOptions returns the four choices for the card at index: its back plus
// three distractors, in random order. Distractors come from the card's own
// wrong answers first, then from the backs of other cards in the deck, and
// finally from numbered placeholders so there are always four options.
func BuildOptions(deck *models.Deck, index int, rng *rand.Rand) []string {
	if deck == nil || index < 0 || index >= len(deck.Cards) {
		return nil
	}

	card := deck.Cards[index]
	correct := card.Back
	stored := ValidWrongAnswers(card.WrongAnswers)

	var distractors []string
	if len(stored) >= distractorCount {
		distractors = slices.Clone(stored[:distractorCount])
	} else {
		distractors = slices.Clone(stored)

		var candidates []string
		for i, c := range deck.Cards {
			if i == index || c.Back == correct || strings.TrimSpace(c.Back) == "" {
				continue
			}
			candidates = append(candidates, c.Back)
		}
		shuffle(candidates, rng)

		for _, c := range candidates {
			if len(distractors) == distractorCount {
				break
			}
			if slices.Contains(distractors, c) {
				continue
			}
			distractors = append(distractors, c)
		}

		for n := 1; len(distractors) < distractorCount; n++ {
			distractors = append(distractors, fmt.Sprintf("Alternative option %d", n))
		}
	}

	options := make([]string, 0, OptionCount)
	options = append(options, correct)
	options = append(options, distractors...)
	shuffle(options, rng)
	return options
}

// shuffle is an in-place Fisher-Yates shuffle.
func shuffle(s []string, rng *rand.Rand) {
	swap := func(i, j int) { s[i], s[j] = s[j], s[i] }
	if rng == nil {
		rand.Shuffle(len(s), swap)
		return
	}
	rng.Shuffle(len(s), swap)
}
