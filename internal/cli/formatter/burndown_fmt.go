package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/estimator/internal/burndown"
)

// FormatBurnDown renders the ideal and actual series side by side, one row
// per work day, with a bar for each value.
func FormatBurnDown(c burndown.Chart, width int) string {
	if c.EstimatedWorkDays == 0 && len(c.Actual) <= 1 {
		return Dim("Nothing to chart: no estimate and no work days.") + "\n"
	}

	ideal := make(map[int]int, len(c.Ideal))
	last := 0
	for _, p := range c.Ideal {
		ideal[p.Day] = p.Value
		last = max(last, p.Day)
	}
	actual := make(map[int]int, len(c.Actual))
	for _, p := range c.Actual {
		actual[p.Day] = p.Value
		last = max(last, p.Day)
	}

	rows := make([][]string, 0, last+1)
	for day := 0; day <= last; day++ {
		row := []string{fmt.Sprintf("%d", day), "", "", "", ""}
		if v, ok := ideal[day]; ok {
			row[1] = fmt.Sprintf("%d", v)
			row[2] = RenderCompactBar(v, width, true)
		}
		if v, ok := actual[day]; ok {
			row[3] = fmt.Sprintf("%d", v)
			row[4] = RenderCompactBar(v, width, false)
		}
		rows = append(rows, row)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %d\n\n", StyleDim.Render("Estimated work days:"), c.EstimatedWorkDays))
	b.WriteString(RenderTableAligned([]string{"DAY", "IDEAL", "", "ACTUAL", ""}, rows, 0, 1, 3))
	return b.String()
}
