package deck

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashiz/internal/models"
)

type fakeBackend struct {
	created map[string][]models.Card
	added   map[string][]models.Card
	err     error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{created: map[string][]models.Card{}, added: map[string][]models.Card{}}
}

func (f *fakeBackend) CreateDeck(_ context.Context, name string, cards []models.Card) (*models.Deck, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created[name] = cards
	return &models.Deck{ID: "d-new", Name: name, Cards: cards}, nil
}

func (f *fakeBackend) AddCards(_ context.Context, id string, cards []models.Card) (*models.Deck, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.added[id] = cards
	return &models.Deck{ID: id, Name: "Capitals", Cards: cards}, nil
}

func TestSanitize(t *testing.T) {
	got, err := Sanitize("  <b>Paris</b> & <script>x()</script>Lyon ")
	require.NoError(t, err)
	assert.Equal(t, "Paris & Lyon", got)

	_, err = Sanitize("<script>alert(1)</script>")
	assert.Error(t, err)
}

func TestNewCard(t *testing.T) {
	tests := []struct {
		name  string
		front string
		back  string
		wrong []string
		ok    bool
	}{
		{"complete", "2+2", "4", []string{"3", "5", "6"}, true},
		{"two wrong answers", "2+2", "4", []string{"3", "", "5"}, true},
		{"one wrong answer", "2+2", "4", []string{"3", "", " "}, false},
		{"no front", "", "4", []string{"3", "5"}, false},
		{"no back", "2+2", "", []string{"3", "5"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCard(tt.front, tt.back, tt.wrong)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrIncompleteCard)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.back, c.Back)
			assert.NotContains(t, c.WrongAnswers, "")
		})
	}
}

func TestDraft_RemoveAndPreview(t *testing.T) {
	var d Draft
	_, _, err := d.Preview()
	assert.ErrorIs(t, err, ErrNothingPreview)

	require.NoError(t, d.AddCard("a", "1", []string{"2", "3"}))
	require.NoError(t, d.AddCard("b", "2", []string{"1", "3"}))
	require.NoError(t, d.AddCard("c", "3", []string{"1", "2"}))

	d.PrevPreview()
	c, i, err := d.Preview()
	require.NoError(t, err)
	assert.Equal(t, 2, i)
	assert.Equal(t, "c", c.Front)

	d.NextPreview()
	_, i, _ = d.Preview()
	assert.Equal(t, 0, i)

	d.NextPreview()
	d.Rewind()
	_, i, _ = d.Preview()
	assert.Equal(t, 0, i)

	assert.True(t, d.RemoveCard(1))
	assert.False(t, d.RemoveCard(5))
	assert.Equal(t, []string{"a", "c"}, []string{d.Cards()[0].Front, d.Cards()[1].Front})
}

func TestDraft_SaveEmpty(t *testing.T) {
	d := Draft{Name: "Capitals"}
	_, err := d.Save(context.Background(), newFakeBackend())
	assert.ErrorIs(t, err, ErrNoCards)
	assert.Equal(t, "Please add at least one card before saving.", err.Error())
}

func TestDraft_SaveNewDeck(t *testing.T) {
	be := newFakeBackend()
	d := Draft{Name: "Capitals", TargetID: "d-old"}
	require.NoError(t, d.AddCard("France", "Paris", []string{"Lyon", "Nice"}))

	msg, err := d.Save(context.Background(), be)
	require.NoError(t, err)
	assert.Equal(t, `New deck "Capitals" created with 1 card(s)!`, msg)
	assert.Len(t, be.created["Capitals"], 1)
	assert.Empty(t, be.added)
	assert.Zero(t, d.Len())
	assert.Empty(t, d.Name)
}

func TestDraft_SaveToExisting(t *testing.T) {
	be := newFakeBackend()
	d := Draft{TargetID: "d-old"}
	require.NoError(t, d.AddCard("France", "Paris", []string{"Lyon", "Nice"}))
	require.NoError(t, d.AddCard("Italy", "Rome", []string{"Milan", "Turin"}))

	msg, err := d.Save(context.Background(), be)
	require.NoError(t, err)
	assert.Equal(t, `Added 2 card(s) to "Capitals" deck!`, msg)
	assert.Len(t, be.added["d-old"], 2)
}

func TestDraft_SaveFailureKeepsCards(t *testing.T) {
	be := newFakeBackend()
	be.err = errors.New("Deck not found")
	d := Draft{TargetID: "missing"}
	require.NoError(t, d.AddCard("France", "Paris", []string{"Lyon", "Nice"}))

	_, err := d.Save(context.Background(), be)
	require.Error(t, err)
	assert.Equal(t, 1, d.Len())
	assert.Equal(t, "Error: Deck not found", SaveErrorMessage(err.Error()))
	assert.Equal(t, "Error: Failed to save deck", SaveErrorMessage(""))
}

func TestDraft_SaveNoTarget(t *testing.T) {
	var d Draft
	require.NoError(t, d.AddCard("France", "Paris", []string{"Lyon", "Nice"}))
	_, err := d.Save(context.Background(), newFakeBackend())
	assert.ErrorIs(t, err, ErrNoTarget)
}

func TestImport(t *testing.T) {
	d, err := Import(strings.NewReader(`{
		"name": "Capitals <i>EU</i>",
		"difficulty": "easy",
		"cards": [
			{"front": "France", "back": "Paris", "wrongAnswers": ["Lyon", ""]},
			{"front": "Italy", "back": "Rome", "hint": "R"}
		]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "Capitals EU", d.Name)
	assert.Equal(t, "easy", d.Difficulty)
	require.Len(t, d.Cards, 2)
	assert.Equal(t, []string{"Lyon"}, d.Cards[0].WrongAnswers)
	assert.Equal(t, "R", d.Cards[1].Hint)
}

func TestImport_Invalid(t *testing.T) {
	tests := map[string]string{
		"not json":     `{`,
		"no cards":     `{"name": "x", "cards": []}`,
		"no name":      `{"cards": [{"front": "a", "back": "b"}]}`,
		"card no back": `{"name": "x", "cards": [{"front": "a"}]}`,
		"wrong type":   `{"name": "x", "cards": [{"front": "a", "back": 3}]}`,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Import(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestDraft_CloneIsIndependent(t *testing.T) {
	d := Draft{Name: "Capitals"}
	require.NoError(t, d.AddCard("France", "Paris", []string{"Lyon", "Nice"}))

	c := d.Clone()
	_, err := c.Save(context.Background(), newFakeBackend())
	require.NoError(t, err)

	assert.Zero(t, c.Len())
	assert.Equal(t, 1, d.Len())
	assert.Equal(t, "Capitals", d.Name)
}
