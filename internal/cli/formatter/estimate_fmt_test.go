package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/estimator/internal/burndown"
	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree(t *testing.T) *domain.Tree {
	t.Helper()
	tree, err := domain.NewTree(domain.NewTaskNode(1, "Website"))
	require.NoError(t, err)

	design := domain.NewTaskNode(2, "Design")
	require.NoError(t, design.SetEstimatedMinutes(60))
	require.NoError(t, design.SetTimeSpentMinutes(60))
	require.NoError(t, design.SetPercentComplete(100))
	require.NoError(t, tree.AddChild(1, design))

	build := domain.NewTaskNode(3, "Build")
	require.NoError(t, build.SetEstimatedMinutes(120))
	require.NoError(t, build.SetMinimumMinutes(90))
	require.NoError(t, build.SetMaximumMinutes(240))
	require.NoError(t, tree.AddChild(1, build))

	scrap := domain.NewTaskNode(4, "Scrapped")
	require.NoError(t, tree.AddChild(1, scrap))
	require.NoError(t, tree.Delete(4))
	return tree
}

func TestFormatEstimate(t *testing.T) {
	tree := sampleTree(t)

	out := FormatEstimate(tree.Root(), settings.Minutes)
	assert.Contains(t, out, "Website")
	assert.Contains(t, out, "Design")
	assert.Contains(t, out, "Build")
	assert.NotContains(t, out, "Scrapped")
	assert.Contains(t, out, "180m")
	assert.Contains(t, out, "└─ ")
	assert.Contains(t, out, "✔ ")

	hours := FormatEstimate(tree.Root(), settings.Hours)
	assert.Contains(t, hours, "3.00h")
}

func TestFormatEstimate_NoProject(t *testing.T) {
	assert.Contains(t, FormatEstimate(nil, settings.Minutes), "No project open")
}

func TestFormatTask(t *testing.T) {
	tree := sampleTree(t)
	n, err := tree.Node(3)
	require.NoError(t, err)

	out := FormatTask(n, settings.Minutes)
	assert.Contains(t, out, "#3")
	assert.Contains(t, out, "Build")
	assert.Contains(t, out, "leaf")
	assert.Contains(t, out, "240m")
	assert.Contains(t, out, "Parent")

	root := FormatTask(tree.Root(), settings.Minutes)
	assert.Contains(t, root, "branch")
	assert.NotContains(t, root, "Parent")
}

func TestRenderTree_Connectors(t *testing.T) {
	out := RenderTree([]TreeItem{
		{Title: "root", Level: 0},
		{Title: "a", Level: 1},
		{Title: "a1", Level: 2, IsLast: true},
		{Title: "b", Level: 1, IsLast: true, Detail: "x"},
		{Title: "b1", Level: 2, IsLast: true},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[1], treeBranch))
	assert.True(t, strings.HasPrefix(lines[2], treePipe+treeCorner))
	assert.True(t, strings.HasPrefix(lines[3], treeCorner))
	assert.Contains(t, lines[3], "[ x ]")
	assert.True(t, strings.HasPrefix(lines[4], treeSpace+treeCorner))
}

func TestFormatWorkDays(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	days := []domain.WorkDay{
		{ID: 7, Date: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), Snapshot: 40},
		{ID: 8, Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), Snapshot: domain.SnapshotNotRecorded},
	}
	out := FormatWorkDays(days, now)
	assert.Contains(t, out, "#7")
	assert.Contains(t, out, "Yesterday")
	assert.Contains(t, out, "Today")
	assert.Contains(t, out, "40")
	assert.Contains(t, out, "--")

	assert.Contains(t, FormatWorkDays(nil, now), "No work days")
}

func TestFormatBurnDown(t *testing.T) {
	c := burndown.Project(burndown.Input{
		EstimatedMinutes:  900,
		MinutesPerWorkDay: 450,
		Days:              []domain.WorkDay{{ID: 1, Snapshot: 30}},
	})
	out := FormatBurnDown(c, 10)
	assert.Contains(t, out, "Estimated work days:")
	assert.Contains(t, out, "IDEAL")
	assert.Contains(t, out, "30")

	assert.Contains(t, FormatBurnDown(burndown.Chart{}, 10), "Nothing to chart")
}

func TestFormatVersionsAndHistory(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	out := FormatVersions([]domain.ProjectVersion{{ID: 2, CreatedAt: now.Add(-time.Hour)}, {ID: 1, CreatedAt: now.Add(-48 * time.Hour)}}, now)
	assert.Contains(t, out, "1h ago")
	assert.Contains(t, out, "VERSION")

	hist := FormatHistory([]domain.ArchiveRow{{
		ProjectVersionID: 2,
		TaskRow:          domain.TaskRow{ID: 3, Description: "Build v1", EstimatedMinutes: 90, IsDeleted: true},
		ArchivedAt:       now,
	}}, settings.Minutes)
	assert.Contains(t, hist, "Build v1")
	assert.Contains(t, hist, "90m")
	assert.Contains(t, hist, "deleted")

	assert.Contains(t, FormatHistory(nil, settings.Minutes), "No archived history")
}
