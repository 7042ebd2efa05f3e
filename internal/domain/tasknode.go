package domain

import "fmt"

// TaskNode is one estimate item. Leaf tasks hold the raw effort fields;
// branch tasks derive them from their children on every read.
type TaskNode struct {
	id          int
	parentID    int
	description string
	depth       int
	children    []*TaskNode
	flags       ChangeFlags

	minimumMin   int
	maximumMin   int
	estimatedMin int
	timeSpentMin int
	percent      int

	owner *Tree
}

// NewTaskNode creates a detached, unchanged leaf task.
func NewTaskNode(id int, description string) *TaskNode {
	return &TaskNode{id: id, description: description}
}

// NodeFromRow creates a detached, unchanged task carrying a stored row's
// values. Raw fields of rows that turn out to be branches are kept but never
// read back.
func NodeFromRow(r TaskRow) *TaskNode {
	return &TaskNode{
		id:           r.ID,
		parentID:     r.ParentID,
		description:  r.Description,
		minimumMin:   r.MinimumMinutes,
		maximumMin:   r.MaximumMinutes,
		estimatedMin: r.EstimatedMinutes,
		timeSpentMin: r.TimeSpentMinutes,
		percent:      r.PercentComplete,
	}
}

func (n *TaskNode) ID() int { return n.id }
func (n *TaskNode) ParentID() int { return n.parentID }
func (n *TaskNode) Description() string { return n.description }
func (n *TaskNode) Depth() int { return n.depth }
func (n *TaskNode) Flags() ChangeFlags { return n.flags }
func (n *TaskNode) IsLeaf() bool { return len(n.children) == 0 }
func (n *TaskNode) IsDeleted() bool { return n.flags.Has(Deleted) }
func (n *TaskNode) SetFlags(f ChangeFlags) { n.flags = f }

// Children returns the ordered child tasks. The slice is a copy; the tasks
// are live.
func (n *TaskNode) Children() []*TaskNode {
	out := make([]*TaskNode, len(n.children))
	copy(out, n.children)
	return out
}

func (n *TaskNode) MinimumMinutes() int {
	return n.rollup(n.minimumMin, (*TaskNode).MinimumMinutes)
}

func (n *TaskNode) MaximumMinutes() int {
	return n.rollup(n.maximumMin, (*TaskNode).MaximumMinutes)
}

func (n *TaskNode) EstimatedMinutes() int {
	return n.rollup(n.estimatedMin, (*TaskNode).EstimatedMinutes)
}

func (n *TaskNode) TimeSpentMinutes() int {
	return n.rollup(n.timeSpentMin, (*TaskNode).TimeSpentMinutes)
}

// PercentComplete of a branch is the estimate-weighted average of its
// children, each child's share truncated to a whole percent.
func (n *TaskNode) PercentComplete() int {
	if n.IsLeaf() {
		return n.percent
	}
	total := n.EstimatedMinutes()
	if total == 0 {
		return 0
	}
	result := 0
	for _, c := range n.children {
		result += c.PercentComplete() * c.EstimatedMinutes() / total
	}
	return result
}

func (n *TaskNode) rollup(raw int, field func(*TaskNode) int) int {
	if n.IsLeaf() {
		return raw
	}
	sum := 0
	for _, c := range n.children {
		sum += field(c)
	}
	return sum
}

func (n *TaskNode) SetDescription(s string) {
	if n.description == s {
		return
	}
	n.description = s
	n.changed()
}

func (n *TaskNode) SetMinimumMinutes(v int) error { return n.setLeaf(&n.minimumMin, v) }
func (n *TaskNode) SetMaximumMinutes(v int) error { return n.setLeaf(&n.maximumMin, v) }
func (n *TaskNode) SetEstimatedMinutes(v int) error {
	return n.setLeaf(&n.estimatedMin, v)
}
func (n *TaskNode) SetTimeSpentMinutes(v int) error {
	return n.setLeaf(&n.timeSpentMin, v)
}

func (n *TaskNode) SetPercentComplete(v int) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("percent complete %d out of range 0-100", v)
	}
	return n.setLeaf(&n.percent, v)
}

func (n *TaskNode) setLeaf(field *int, v int) error {
	if !n.IsLeaf() {
		return fmt.Errorf("task %d: %w", n.id, ErrBranchField)
	}
	if *field == v {
		return nil
	}
	*field = v
	n.changed()
	return nil
}

// changed marks the task modified unless it has never been saved, then tells
// the owning tree.
func (n *TaskNode) changed() {
	if !n.flags.Has(Added) {
		n.flags |= Modified
	}
	if n.owner != nil && n.owner.onChange != nil {
		n.owner.onChange(n)
	}
}

// UpdateFrom copies an edited copy's values onto this task through the
// setters, so change tracking sees the edit. Leaf fields are copied only while
// this task is a leaf.
func (n *TaskNode) UpdateFrom(edited *TaskNode) error {
	if edited == nil || edited == n {
		return nil
	}
	if edited.id != n.id {
		return fmt.Errorf("applying task %d onto task %d: id mismatch", edited.id, n.id)
	}
	n.SetDescription(edited.description)
	if !n.IsLeaf() {
		return nil
	}
	for _, f := range []struct {
		set func(int) error
		v   int
	}{
		{n.SetMinimumMinutes, edited.MinimumMinutes()},
		{n.SetMaximumMinutes, edited.MaximumMinutes()},
		{n.SetEstimatedMinutes, edited.EstimatedMinutes()},
		{n.SetTimeSpentMinutes, edited.TimeSpentMinutes()},
		{n.SetPercentComplete, edited.PercentComplete()},
	} {
		if err := f.set(f.v); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a detached deep copy: same id and flags, copied children,
// and no link back to the live tree, so edits on it stay local until applied.
func (n *TaskNode) Clone() *TaskNode {
	c := *n
	c.owner = nil
	c.children = nil
	if len(n.children) > 0 {
		c.children = make([]*TaskNode, 0, len(n.children))
		for _, child := range n.children {
			c.children = append(c.children, child.Clone())
		}
	}
	return &c
}

// Row is the flat persisted form. Branch values are written as their rollups
// over the children that outlive the next save, so children flagged deleted
// are left out.
func (n *TaskNode) Row() TaskRow {
	r := TaskRow{
		ID:          n.id,
		ParentID:    n.parentID,
		Description: n.description,
		IsDeleted:   n.IsDeleted(),
	}
	if n.IsLeaf() {
		r.EstimatedMinutes = n.estimatedMin
		r.MinimumMinutes = n.minimumMin
		r.MaximumMinutes = n.maximumMin
		r.PercentComplete = n.percent
		r.TimeSpentMinutes = n.timeSpentMin
		return r
	}
	var live []TaskRow
	for _, c := range n.children {
		if c.IsDeleted() {
			continue
		}
		cr := c.Row()
		live = append(live, cr)
		r.EstimatedMinutes += cr.EstimatedMinutes
		r.MinimumMinutes += cr.MinimumMinutes
		r.MaximumMinutes += cr.MaximumMinutes
		r.TimeSpentMinutes += cr.TimeSpentMinutes
	}
	if r.EstimatedMinutes > 0 {
		for _, cr := range live {
			r.PercentComplete += cr.PercentComplete * cr.EstimatedMinutes / r.EstimatedMinutes
		}
	}
	return r
}

// hasLiveChild reports whether any child is not flagged deleted.
func (n *TaskNode) hasLiveChild() bool {
	for _, c := range n.children {
		if !c.IsDeleted() {
			return true
		}
	}
	return false
}

// clearLeafFields zeroes the raw effort fields and marks the task modified
// unless it has never been saved. Listeners are not told.
func (n *TaskNode) clearLeafFields() {
	n.minimumMin, n.maximumMin, n.estimatedMin, n.timeSpentMin, n.percent = 0, 0, 0, 0, 0
	if !n.flags.Has(Added) {
		n.flags |= Modified
	}
}

// setDepth assigns depths top-down from this task.
func (n *TaskNode) setDepth(depth int) {
	n.depth = depth
	for _, c := range n.children {
		c.setDepth(depth + 1)
	}
}
