package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/settings"
)

// FormatEstimate renders the live task tree under root followed by a summary
// of the rolled-up totals. Deleted tasks are hidden.
func FormatEstimate(root *domain.TaskNode, unit settings.TimeUnit) string {
	if root == nil {
		return Dim("No project open.")
	}

	var items []TreeItem
	var visit func(n *domain.TaskNode, level int, last bool)
	visit = func(n *domain.TaskNode, level int, last bool) {
		items = append(items, TreeItem{
			Title:   n.Description(),
			ID:      n.ID(),
			Level:   level,
			IsLast:  last,
			Percent: n.PercentComplete(),
			Change:  ChangeBadge(n.Flags()),
			Detail:  fmt.Sprintf("%s est · %s spent", FormatMinutes(n.EstimatedMinutes(), unit), FormatMinutes(n.TimeSpentMinutes(), unit)),
		})
		children := liveChildren(n)
		for i, c := range children {
			visit(c, level+1, i == len(children)-1)
		}
	}
	visit(root, 0, true)

	var b strings.Builder
	b.WriteString(RenderTree(items))
	b.WriteString("\n")
	b.WriteString(RenderProgress(root.PercentComplete(), 24))
	b.WriteString(fmt.Sprintf("  %s estimated (%s to %s), %s spent\n",
		Bold(FormatMinutes(root.EstimatedMinutes(), unit)),
		FormatMinutes(root.MinimumMinutes(), unit),
		FormatMinutes(root.MaximumMinutes(), unit),
		FormatMinutes(root.TimeSpentMinutes(), unit)))
	return b.String()
}

// FormatTask renders a single task's fields.
func FormatTask(n *domain.TaskNode, unit settings.TimeUnit) string {
	kind := "leaf"
	if !n.IsLeaf() {
		kind = "branch (derived)"
	}
	rows := [][]string{
		{"ID", fmt.Sprintf("#%d", n.ID())},
		{"Description", n.Description()},
		{"Kind", kind},
		{"Estimated", FormatMinutes(n.EstimatedMinutes(), unit)},
		{"Minimum", FormatMinutes(n.MinimumMinutes(), unit)},
		{"Maximum", FormatMinutes(n.MaximumMinutes(), unit)},
		{"Time spent", FormatMinutes(n.TimeSpentMinutes(), unit)},
		{"Complete", RenderProgress(n.PercentComplete(), 16)},
	}
	if n.ParentID() != 0 {
		rows = append(rows, []string{"Parent", fmt.Sprintf("#%d", n.ParentID())})
	}
	if n.Flags() != domain.Unchanged {
		rows = append(rows, []string{"Unsaved", n.Flags().String()})
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%s %s\n", StyleDim.Render(fmt.Sprintf("%-12s", r[0])), r[1]))
	}
	return b.String()
}

func liveChildren(n *domain.TaskNode) []*domain.TaskNode {
	var out []*domain.TaskNode
	for _, c := range n.Children() {
		if !c.IsDeleted() {
			out = append(out, c)
		}
	}
	return out
}
