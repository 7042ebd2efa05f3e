package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░]  45%.
func RenderProgress(percent int, width int) string {
	percent = clampPercent(percent)
	bar := RenderCompactBar(percent, width, false)
	return fmt.Sprintf("[%s] %3d%%", bar, percent)
}

// RenderCompactBar renders only the blocks. A dimmed bar is left unstyled
// apart from the muted color.
func RenderCompactBar(percent int, width int, dim bool) string {
	percent = clampPercent(percent)
	if width < 2 {
		width = 2
	}
	filled := percent * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	if dim {
		return StyleDim.Render(bar)
	}
	return ProgressStyle(percent).Render(bar)
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
