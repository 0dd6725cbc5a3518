package assist

import (
	"fmt"
	"strings"

	"github.com/abhisek/flashiz/internal/models"
)

const hintSystemPrompt = `You help a student studying with flashcards. Give a hint that makes the answer easier to recall. Never state the answer or any word of it.`

const distractorSystemPrompt = `You write multiple-choice flashcards. Given a question and its correct answer, write wrong answers that a student who half-knows the material could mistake for the right one. Each must be clearly wrong, distinct from the others and from the correct answer.`

func hintUserMessage(deckName string, card models.Card) string {
	var b strings.Builder
	if deckName != "" {
		fmt.Fprintf(&b, "Deck: %s\n", deckName)
	}
	fmt.Fprintf(&b, "Question: %s\n", card.Front)
	fmt.Fprintf(&b, "Answer (do not reveal): %s\n", card.Back)
	return b.String()
}

func distractorUserMessage(front, back string, existing []string, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\nCorrect answer: %s\n", front, back)
	if len(existing) > 0 {
		fmt.Fprintf(&b, "Already used wrong answers (do not repeat): %s\n", strings.Join(existing, "; "))
	}
	fmt.Fprintf(&b, "Write %d wrong answers.\n", n)
	return b.String()
}
