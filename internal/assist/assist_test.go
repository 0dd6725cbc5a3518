package assist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashiz/internal/llm"
	"github.com/abhisek/flashiz/internal/models"
)

var paris = models.Card{Front: "Capital of France?", Back: "Paris"}

func TestFirstLetterHint(t *testing.T) {
	assert.Equal(t, `First letter: "P"`, FirstLetterHint("Paris"))
	assert.Equal(t, `First letter: "É"`, FirstLetterHint("École"))
	assert.Equal(t, `First letter: ""`, FirstLetterHint(""))
}

func TestHint_CardHintWins(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(`{"hint":"model"}`))
	a := New(mock, nil)

	card := paris
	card.Hint = "City of light"
	h := a.Hint(context.Background(), "Capitals", card)
	assert.Equal(t, Hint{Text: "City of light", Source: SourceCard}, h)
	assert.Zero(t, mock.CallCount())
}

func TestHint_Model(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(`{"hint":"Home of the Eiffel Tower"}`))
	h := New(mock, nil).Hint(context.Background(), "Capitals", paris)

	assert.Equal(t, Hint{Text: "Home of the Eiffel Tower", Source: SourceModel}, h)
	require.Equal(t, 1, mock.CallCount())
	call := mock.Calls[0]
	assert.Equal(t, HintSchema, call.Schema)
	assert.Contains(t, call.Messages[0].Content, "Deck: Capitals")
}

func TestHint_FallsBackToFirstLetter(t *testing.T) {
	tests := map[string]llm.MockResponse{
		"provider error":  {Err: errors.New("down")},
		"leaks answer":    llm.MockJSON(`{"hint":"It is paris"}`),
		"schema mismatch": llm.MockJSON(`{"clue":"x"}`),
	}
	for name, resp := range tests {
		t.Run(name, func(t *testing.T) {
			h := New(llm.NewMockProvider(resp), nil).Hint(context.Background(), "", paris)
			assert.Equal(t, Hint{Text: `First letter: "P"`, Source: SourceFirstLetter}, h)
		})
	}
}

func TestHint_NoProvider(t *testing.T) {
	a := New(nil, nil)
	assert.False(t, a.Enabled())
	assert.Equal(t, SourceFirstLetter, a.Hint(context.Background(), "", paris).Source)
}

func TestSuggestDistractors(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(`{"distractors":["Lyon","paris","Nice"," Lyon ","Marseille","Toulouse"]}`))
	got, err := New(mock, nil).SuggestDistractors(context.Background(), paris.Front, paris.Back, []string{"Nice"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lyon", "Marseille"}, got)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "do not repeat): Nice")
}

func TestSuggestDistractors_Unavailable(t *testing.T) {
	_, err := New(nil, nil).SuggestDistractors(context.Background(), "q", "a", nil, 3)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSuggestDistractors_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("down")})
	_, err := New(mock, nil).SuggestDistractors(context.Background(), "q", "a", nil, 3)
	assert.Error(t, err)
}
