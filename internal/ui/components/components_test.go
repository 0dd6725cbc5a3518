package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMultiChoice_NumberKeyPicks(t *testing.T) {
	mc := NewMultiChoice([]string{"a", "b", "c", "d"})
	mc, _ = mc.Update(keyPress('3'))

	require.True(t, mc.Picked())
	assert.Equal(t, "c", mc.Value())
	assert.Equal(t, 2, mc.Selected)
}

func TestMultiChoice_OutOfRangeNumberIgnored(t *testing.T) {
	mc := NewMultiChoice([]string{"a", "b"})
	mc, _ = mc.Update(keyPress('4'))
	assert.False(t, mc.Picked())
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	mc := NewMultiChoice([]string{"a", "b", "c"})
	mc, _ = mc.Update(specialKey(tea.KeyDown))
	mc, _ = mc.Update(specialKey(tea.KeyDown))
	mc, _ = mc.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 2, mc.Selected)

	mc, _ = mc.Update(specialKey(tea.KeyUp))
	mc, _ = mc.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, "b", mc.Value())
}

func TestMultiChoice_IgnoresInputAfterPick(t *testing.T) {
	mc := NewMultiChoice([]string{"a", "b"})
	mc, _ = mc.Update(keyPress('1'))
	mc, _ = mc.Update(keyPress('2'))
	assert.Equal(t, "a", mc.Value())
}

func TestMultiChoice_Reveal(t *testing.T) {
	mc := NewMultiChoice([]string{"Paris", "Rome", "Oslo", "Bern"})
	mc, _ = mc.Update(keyPress('2'))
	mc.Reveal("Paris")

	assert.True(t, mc.Revealed)
	assert.Equal(t, 0, mc.Answer)
	view := mc.View()
	assert.Contains(t, view, "✓")
	assert.Contains(t, view, "✗")
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, '▁', sparkRune(0))
	assert.Equal(t, '█', sparkRune(100))
	assert.Equal(t, '█', sparkRune(140))
	assert.Equal(t, '▁', sparkRune(-5))

	assert.Empty(t, Sparkline(nil, 10))
	assert.NotEmpty(t, Sparkline([]int{10, 90}, 10))
}

func TestMenu_SkipsDisabled(t *testing.T) {
	called := ""
	m := NewMenu([]MenuItem{
		{Label: "One", Action: func() tea.Cmd { called = "one"; return nil }},
		{Label: "Two", Disabled: true},
		{Label: "Three", Action: func() tea.Cmd { called = "three"; return nil }},
	})
	m, _ = m.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 2, m.Selected)

	m, _ = m.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, "three", called)

	item, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "Three", item.Label)
}

func TestTextInput_Masked(t *testing.T) {
	in := NewTextInput("Password", "", true, 0)
	in.Focus()
	in, _ = in.Update(keyPress('s'))
	in, _ = in.Update(keyPress('e'))

	assert.Equal(t, "se", in.Value())
	assert.NotContains(t, in.View(), "se")

	in.Reset()
	assert.Empty(t, in.Value())
}

func TestMenu_NumberKeyActivates(t *testing.T) {
	called := ""
	m := NewMenu([]MenuItem{
		{Label: "One", Action: func() tea.Cmd { called = "one"; return nil }},
		{Label: "Two", Disabled: true, Action: func() tea.Cmd { called = "two"; return nil }},
		{Label: "Three", Action: func() tea.Cmd { called = "three"; return nil }},
	})

	m, _ = m.Update(keyPress('2'))
	assert.Empty(t, called)
	assert.Equal(t, 0, m.Selected)

	m, _ = m.Update(keyPress('3'))
	assert.Equal(t, "three", called)
	assert.Equal(t, 2, m.Selected)

	m, _ = m.Update(keyPress('9'))
	assert.Equal(t, 2, m.Selected)
	assert.Contains(t, m.View(), "3. Three")
}

func TestButton_View(t *testing.T) {
	assert.Contains(t, NewButton("Try Again", false).WithKey("R").View(), "[R] Try Again")
	assert.Contains(t, NewButton("Sign In", true).View(), "▸ Sign In")
	assert.NotContains(t, NewButton("Sign In", false).View(), "▸")
}
