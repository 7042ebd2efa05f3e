package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/estimator/internal/domain"
)

// FormatWorkDays renders the work-day ledger as a table, oldest first.
func FormatWorkDays(days []domain.WorkDay, now time.Time) string {
	if len(days) == 0 {
		return Dim("No work days logged.") + "\n"
	}
	rows := make([][]string, 0, len(days))
	for i, d := range days {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			StyleDim.Render(fmt.Sprintf("#%d", d.ID)),
			d.Date.Format("Mon Jan 2, 2006"),
			RelativeDateFrom(d.Date, domain.DayOf(now)),
			FormatSnapshot(d.Snapshot),
		})
	}
	return RenderTableAligned([]string{"DAY", "ID", "DATE", "WHEN", "SNAPSHOT"}, rows, 0, 4)
}

// FormatSnapshot renders a work-day snapshot, or "--" when none was recorded.
func FormatSnapshot(v int) string {
	if v == domain.SnapshotNotRecorded {
		return Dim("--")
	}
	return fmt.Sprintf("%d", v)
}

// FormatWorkDayLogged confirms a newly logged day.
func FormatWorkDayLogged(d domain.WorkDay) string {
	var b strings.Builder
	b.WriteString(StyleGreen.Render("✔ "))
	b.WriteString(fmt.Sprintf("Logged work day #%d on %s, snapshot %s\n", d.ID, d.Date.Format("2006-01-02"), FormatSnapshot(d.Snapshot)))
	return b.String()
}
