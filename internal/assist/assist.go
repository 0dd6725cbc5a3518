// Package assist produces study aids for cards: hints during a quiz and
// wrong-answer suggestions while authoring. A language model is used when
// one is configured; hints always have a fallback.
package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/abhisek/flashiz/internal/llm"
	"github.com/abhisek/flashiz/internal/models"
)

// ErrUnavailable is returned for suggestions when no model is configured.
var ErrUnavailable = errors.New("suggestions need an LLM provider")

// Source says where a hint came from.
type Source string

const (
	SourceCard        Source = "card"
	SourceModel       Source = "model"
	SourceFirstLetter Source = "first-letter"
)

type Hint struct {
	Text   string
	Source Source
}

// Assistant generates hints and distractors. The zero provider is valid.
type Assistant struct {
	provider llm.Provider
	logger   *zap.Logger
}

// New creates an Assistant. provider may be nil.
func New(provider llm.Provider, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{provider: provider, logger: logger}
}

// Enabled reports whether a model is configured.
func (a *Assistant) Enabled() bool {
	return a != nil && a.provider != nil
}

// FirstLetterHint is the hint shown for cards without one.
func FirstLetterHint(answer string) string {
	r, _ := utf8.DecodeRuneInString(answer)
	if r == utf8.RuneError {
		return `First letter: ""`
	}
	return fmt.Sprintf("First letter: %q", string(r))
}

// Hint returns the card's own hint, else a model hint, else the first
// letter of the answer. A model hint that leaks the answer is discarded.
// It never fails.
func (a *Assistant) Hint(ctx context.Context, deckName string, card models.Card) Hint {
	if h := strings.TrimSpace(card.Hint); h != "" {
		return Hint{Text: h, Source: SourceCard}
	}
	if a.Enabled() {
		text, err := a.modelHint(ctx, deckName, card)
		if err == nil {
			return Hint{Text: text, Source: SourceModel}
		}
		a.logger.Warn("model hint failed, using first letter", zap.Error(err))
	}
	return Hint{Text: FirstLetterHint(card.Back), Source: SourceFirstLetter}
}

func (a *Assistant) modelHint(ctx context.Context, deckName string, card models.Card) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeHint)
	resp, err := a.provider.Generate(ctx, llm.Prompt(hintSystemPrompt, hintUserMessage(deckName, card), HintSchema, 128))
	if err != nil {
		return "", err
	}
	var out struct {
		Hint string `json:"hint"`
	}
	if err := resp.Decode(&out); err != nil {
		return "", err
	}
	text := strings.TrimSpace(out.Hint)
	if text == "" {
		return "", fmt.Errorf("empty hint")
	}
	if answer := strings.TrimSpace(card.Back); answer != "" &&
		strings.Contains(strings.ToLower(text), strings.ToLower(answer)) {
		return "", fmt.Errorf("hint reveals the answer")
	}
	return text, nil
}

// SuggestDistractors asks the model for up to n wrong answers for a card
// being authored. Suggestions equal to the correct answer, to an existing
// wrong answer, or to each other are removed.
func (a *Assistant) SuggestDistractors(ctx context.Context, front, back string, existing []string, n int) ([]string, error) {
	if !a.Enabled() {
		return nil, ErrUnavailable
	}
	if n <= 0 {
		return nil, nil
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeDistractors)
	resp, err := a.provider.Generate(ctx, llm.Prompt(distractorSystemPrompt, distractorUserMessage(front, back, existing, n), DistractorSchema, 256))
	if err != nil {
		return nil, fmt.Errorf("suggest distractors: %w", err)
	}
	var out struct {
		Distractors []string `json:"distractors"`
	}
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}

	seen := map[string]bool{normalize(back): true}
	for _, e := range existing {
		seen[normalize(e)] = true
	}
	var picked []string
	for _, d := range out.Distractors {
		d = strings.TrimSpace(d)
		key := normalize(d)
		if d == "" || seen[key] {
			continue
		}
		seen[key] = true
		picked = append(picked, d)
		if len(picked) == n {
			break
		}
	}
	return picked, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
