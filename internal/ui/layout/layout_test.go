package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(MinWidth-1, MinHeight))
	assert.True(t, IsTooSmall(MinWidth, MinHeight-1))
	assert.False(t, IsTooSmall(MinWidth, MinHeight))
}

func TestIsCompact(t *testing.T) {
	assert.True(t, IsCompact(CompactWidth-1, 40))
	assert.True(t, IsCompact(120, CompactHeight-1))
	assert.False(t, IsCompact(CompactWidth, CompactHeight))
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Dashboard", "Ada", 100)
	assert.Contains(t, h, "flashiz")
	assert.Contains(t, h, "Dashboard")
	assert.Contains(t, h, "● Ada")

	h = RenderHeader("Sign In", "", 100)
	assert.Contains(t, h, "○ signed out")
}

func TestRenderFooter(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}, {Key: "Enter", Description: "Select"}}, 80)
	assert.Contains(t, f, "Esc")
	assert.Contains(t, f, "Select")
}

func TestRenderFrame_BodyGetsRemainingHeight(t *testing.T) {
	header := RenderHeader("T", "", 80)
	footer := RenderFooter(nil, 80)

	var gotW, gotH int
	out := RenderFrame(header, footer, 80, 30, func(w, h int) string {
		gotW, gotH = w, h
		return "body"
	})

	assert.Equal(t, 80, gotW)
	assert.Equal(t, 30-lipgloss.Height(header)-lipgloss.Height(footer), gotH)
	assert.Equal(t, 30, lipgloss.Height(out))
	assert.True(t, strings.Contains(out, "body"))
}
