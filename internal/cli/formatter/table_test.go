package formatter

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestRenderTableAligned(t *testing.T) {
	out := RenderTableAligned([]string{"NAME", "MIN"}, [][]string{
		{"Design", "5"},
		{"Build", "120"},
		{"short"},
	}, 1)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)

	// Every row spans the same visible width.
	for _, l := range lines[:4] {
		assert.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(l), l)
	}
	assert.True(t, strings.HasSuffix(lines[2], "  5"))
	assert.True(t, strings.HasSuffix(lines[3], "120"))
	assert.Contains(t, lines[1], "─")
}
