package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/settings"
)

// FormatVersions lists saved project versions, in the order given.
func FormatVersions(versions []domain.ProjectVersion, now time.Time) string {
	if len(versions) == 0 {
		return Dim("No saved versions.") + "\n"
	}
	rows := make([][]string, 0, len(versions))
	for _, v := range versions {
		rows = append(rows, []string{
			fmt.Sprintf("%d", v.ID),
			v.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			Dim(HumanTimestampFrom(v.CreatedAt, now)),
		})
	}
	return RenderTableAligned([]string{"VERSION", "SAVED", ""}, rows, 0)
}

// FormatHistory lists the archived states of one task, oldest first.
func FormatHistory(rows []domain.ArchiveRow, unit settings.TimeUnit) string {
	if len(rows) == 0 {
		return Dim("No archived history.") + "\n"
	}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		deleted := ""
		if r.IsDeleted {
			deleted = StyleRed.Render("deleted")
		}
		out = append(out, []string{
			fmt.Sprintf("%d", r.ProjectVersionID),
			r.ArchivedAt.Local().Format("2006-01-02 15:04:05"),
			r.Description,
			FormatMinutes(r.EstimatedMinutes, unit),
			FormatMinutes(r.TimeSpentMinutes, unit),
			fmt.Sprintf("%d%%", r.PercentComplete),
			deleted,
		})
	}
	return RenderTableAligned([]string{"VERSION", "ARCHIVED", "DESCRIPTION", "EST", "SPENT", "DONE", ""}, out, 0, 3, 4, 5)
}
