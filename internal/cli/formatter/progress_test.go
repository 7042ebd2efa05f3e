package formatter

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestRenderCompactBar(t *testing.T) {
	tests := []struct {
		name    string
		pct     int
		width   int
		dim     bool
		filled  int
		visible int
	}{
		{"0% normal", 0, 10, false, 0, 10},
		{"50% normal", 50, 10, false, 5, 10},
		{"100% normal", 100, 10, false, 10, 10},
		{"50% dimmed", 50, 10, true, 5, 10},
		{"over 100% clamps", 150, 10, false, 10, 10},
		{"negative clamps", -50, 10, false, 0, 10},
		{"tiny width clamps to 2", 50, 1, false, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderCompactBar(tt.pct, tt.width, tt.dim)
			assert.Equal(t, tt.visible, lipgloss.Width(got))
			assert.Equal(t, tt.filled, strings.Count(got, filledBlock))
			assert.NotContains(t, got, "%")
		})
	}
}

func TestRenderProgress(t *testing.T) {
	got := RenderProgress(45, 20)
	assert.Contains(t, got, " 45%")
	assert.True(t, strings.HasPrefix(got, "["))

	assert.Contains(t, RenderProgress(250, 10), "100%")
}

func TestProgressStyle(t *testing.T) {
	assert.Equal(t, StyleRed.Render("x"), ProgressStyle(10).Render("x"))
	assert.Equal(t, StyleYellow.Render("x"), ProgressStyle(50).Render("x"))
	assert.Equal(t, StyleGreen.Render("x"), ProgressStyle(90).Render("x"))
}
