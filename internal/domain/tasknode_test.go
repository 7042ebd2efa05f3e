package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(t *testing.T, id int, est, pct int) *TaskNode {
	t.Helper()
	n := NewTaskNode(id, "leaf")
	require.NoError(t, n.SetEstimatedMinutes(est))
	require.NoError(t, n.SetPercentComplete(pct))
	n.SetFlags(Unchanged)
	return n
}

func newTestTree(t *testing.T) *Tree {
	t.Helper()
	tree, err := NewTree(NewTaskNode(1, "root"))
	require.NoError(t, err)
	require.NoError(t, tree.AddChild(1, NewTaskNode(2, "design")))
	require.NoError(t, tree.AddChild(2, leaf(t, 3, 60, 50)))
	require.NoError(t, tree.AddChild(2, leaf(t, 4, 90, 20)))
	require.NoError(t, tree.AddChild(1, leaf(t, 5, 30, 100)))
	return tree
}

func TestRollup_SumsChildrenRecursively(t *testing.T) {
	tree := newTestTree(t)
	n3, _ := tree.Node(3)
	require.NoError(t, n3.SetMinimumMinutes(30))
	require.NoError(t, n3.SetMaximumMinutes(80))
	require.NoError(t, n3.SetTimeSpentMinutes(40))

	root := tree.Root()
	design, _ := tree.Node(2)
	assert.Equal(t, 150, design.EstimatedMinutes())
	assert.Equal(t, 180, root.EstimatedMinutes())
	assert.Equal(t, 30, root.MinimumMinutes())
	assert.Equal(t, 80, root.MaximumMinutes())
	assert.Equal(t, 40, root.TimeSpentMinutes())
}

func TestRollup_WeightedPercentComplete(t *testing.T) {
	tree := newTestTree(t)
	design, _ := tree.Node(2)
	// 50*60/150 = 20, 20*90/150 = 12
	assert.Equal(t, 32, design.PercentComplete())
	// design: 32*150/180 = 26 (26.67 truncated), leaf 5: 100*30/180 = 16 (16.67 truncated)
	assert.Equal(t, 42, tree.Root().PercentComplete())
}

func TestRollup_ZeroEstimateGivesZeroPercent(t *testing.T) {
	tree, err := NewTree(NewTaskNode(1, "root"))
	require.NoError(t, err)
	require.NoError(t, tree.AddChild(1, leaf(t, 2, 0, 80)))
	assert.Equal(t, 0, tree.Root().PercentComplete())
	assert.Equal(t, 0, tree.Root().EstimatedMinutes())
}

func TestRollup_ObservesLeafMutationImmediately(t *testing.T) {
	tree := newTestTree(t)
	n4, _ := tree.Node(4)
	require.NoError(t, n4.SetEstimatedMinutes(120))
	assert.Equal(t, 210, tree.Root().EstimatedMinutes())
}

func TestSetters_MarkModifiedUnlessAdded(t *testing.T) {
	n := NewTaskNode(7, "x")
	n.SetDescription("y")
	assert.Equal(t, Modified, n.Flags())

	added := NewTaskNode(8, "x")
	added.SetFlags(Added)
	require.NoError(t, added.SetEstimatedMinutes(10))
	assert.Equal(t, Added, added.Flags())
}

func TestSetters_SameValueIsNotAChange(t *testing.T) {
	n := NewTaskNode(7, "x")
	n.SetDescription("x")
	require.NoError(t, n.SetEstimatedMinutes(0))
	assert.Equal(t, Unchanged, n.Flags())
}

func TestSetters_BranchFieldsAreDerived(t *testing.T) {
	tree := newTestTree(t)
	design, _ := tree.Node(2)
	err := design.SetEstimatedMinutes(10)
	assert.ErrorIs(t, err, ErrBranchField)
	design.SetDescription("renamed")
	assert.Equal(t, "renamed", design.Description())
}

func TestSetPercentComplete_RejectsOutOfRange(t *testing.T) {
	n := NewTaskNode(1, "x")
	assert.Error(t, n.SetPercentComplete(101))
	assert.Error(t, n.SetPercentComplete(-1))
}

func TestClone_IsDetached(t *testing.T) {
	tree := newTestTree(t)
	var notified int
	tree.OnChange(func(*TaskNode) { notified++ })

	design, _ := tree.Node(2)
	c := design.Clone()
	require.Len(t, c.Children(), 2)
	assert.Equal(t, design.ID(), c.ID())
	assert.Equal(t, design.Flags(), c.Flags())

	require.NoError(t, c.Children()[0].SetEstimatedMinutes(999))
	c.SetDescription("edited copy")

	n3, _ := tree.Node(3)
	assert.Equal(t, 60, n3.EstimatedMinutes())
	assert.Equal(t, "design", design.Description())
	assert.Equal(t, 0, notified)
}

func TestUpdateFrom_AppliesThroughSetters(t *testing.T) {
	tree := newTestTree(t)
	var notified []int
	tree.OnChange(func(n *TaskNode) { notified = append(notified, n.ID()) })

	n3, _ := tree.Node(3)
	edit := n3.Clone()
	require.NoError(t, edit.SetEstimatedMinutes(75))
	edit.SetDescription("write tests")

	require.NoError(t, n3.UpdateFrom(edit))
	assert.Equal(t, 75, n3.EstimatedMinutes())
	assert.Equal(t, "write tests", n3.Description())
	assert.Equal(t, Modified, n3.Flags())
	assert.NotEmpty(t, notified)
}

func TestUpdateFrom_RejectsDifferentTask(t *testing.T) {
	tree := newTestTree(t)
	n3, _ := tree.Node(3)
	n4, _ := tree.Node(4)
	assert.Error(t, n3.UpdateFrom(n4.Clone()))
}

func TestRow_WritesRollupsForBranches(t *testing.T) {
	tree := newTestTree(t)
	design, _ := tree.Node(2)
	row := design.Row()
	assert.Equal(t, 2, row.ID)
	assert.Equal(t, 1, row.ParentID)
	assert.Equal(t, 150, row.EstimatedMinutes)
	assert.Equal(t, 32, row.PercentComplete)
	assert.False(t, row.IsDeleted)
}

func TestRow_LeavesOutDeletedChildren(t *testing.T) {
	tree := newTestTree(t)
	require.NoError(t, tree.Delete(4))
	design, _ := tree.Node(2)

	// Live reads still count the pending delete.
	assert.Equal(t, 150, design.EstimatedMinutes())

	row := design.Row()
	assert.Equal(t, 60, row.EstimatedMinutes)
	assert.Equal(t, 50, row.PercentComplete)
	assert.Equal(t, 90, tree.Root().Row().EstimatedMinutes)
}
