package domain

import "fmt"

// Tree owns a rooted set of tasks and indexes them by id.
type Tree struct {
	root     *TaskNode
	index    map[int]*TaskNode
	onChange func(*TaskNode)
}

// NewTree adopts root and its whole subtree. Ids must be unique.
func NewTree(root *TaskNode) (*Tree, error) {
	if root == nil {
		return nil, fmt.Errorf("new tree: %w", ErrStructuralIntegrity)
	}
	t := &Tree{root: root, index: make(map[int]*TaskNode)}
	root.parentID = 0
	if err := t.adopt(root); err != nil {
		return nil, err
	}
	root.setDepth(0)
	return t, nil
}

func (t *Tree) adopt(n *TaskNode) error {
	if _, dup := t.index[n.id]; dup {
		return fmt.Errorf("duplicate task id %d: %w", n.id, ErrStructuralIntegrity)
	}
	t.index[n.id] = n
	n.owner = t
	for _, c := range n.children {
		c.parentID = n.id
		if err := t.adopt(c); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) Root() *TaskNode { return t.root }

func (t *Tree) Len() int { return len(t.index) }

// Node looks a task up by id.
func (t *Tree) Node(id int) (*TaskNode, error) {
	n, ok := t.index[id]
	if !ok {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return n, nil
}

// Parent returns the task's parent, or nil for the root.
func (t *Tree) Parent(n *TaskNode) *TaskNode {
	if n == t.root {
		return nil
	}
	return t.index[n.parentID]
}

// OnChange registers the hook called after any task field changes.
func (t *Tree) OnChange(fn func(*TaskNode)) { t.onChange = fn }

// MaxID returns the highest task id in the tree.
func (t *Tree) MaxID() int {
	highest := 0
	for id := range t.index {
		if id > highest {
			highest = id
		}
	}
	return highest
}

// AddChild appends child under the task with parentID and reassigns depths
// below the parent.
func (t *Tree) AddChild(parentID int, child *TaskNode) error {
	parent, err := t.Node(parentID)
	if err != nil {
		return fmt.Errorf("adding child: %w", err)
	}
	if _, dup := t.index[child.id]; dup {
		return fmt.Errorf("adding child: duplicate task id %d: %w", child.id, ErrStructuralIntegrity)
	}
	child.parentID = parent.id
	if err := t.adopt(child); err != nil {
		return err
	}
	parent.children = append(parent.children, child)
	parent.setDepth(parent.depth)
	if t.onChange != nil {
		t.onChange(child)
	}
	return nil
}

// Delete flags the task and every descendant as deleted. The tasks stay in
// the tree until the next save reconciles them.
func (t *Tree) Delete(id int) error {
	n, err := t.Node(id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if n == t.root {
		return ErrRootDelete
	}
	markDeleted(n)
	if t.onChange != nil {
		t.onChange(n)
	}
	return nil
}

func markDeleted(n *TaskNode) {
	n.flags |= Deleted
	for _, c := range n.children {
		markDeleted(c)
	}
}

// CollapseEmptied readies live branches whose children are all flagged
// deleted to become leaves once the save prunes those children. Their raw
// fields are zeroed and they are marked modified, so the stored row matches
// the empty leaf left in memory. It returns the affected ids.
func (t *Tree) CollapseEmptied() []int {
	var ids []int
	_ = t.Walk(func(n *TaskNode) error {
		if n.IsDeleted() || n.IsLeaf() || n.hasLiveChild() {
			return nil
		}
		n.clearLeafFields()
		ids = append(ids, n.id)
		return nil
	})
	return ids
}

// Walk visits tasks in pre-order, parents before children, children in
// their stored order.
func (t *Tree) Walk(fn func(*TaskNode) error) error {
	return walk(t.root, fn)
}

func walk(n *TaskNode, fn func(*TaskNode) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// Prune detaches every non-root task matching remove, together with its
// subtree, and returns the detached ids.
func (t *Tree) Prune(remove func(*TaskNode) bool) []int {
	var removed []int
	var prune func(n *TaskNode)
	prune = func(n *TaskNode) {
		kept := n.children[:0]
		for _, c := range n.children {
			if remove(c) {
				_ = walk(c, func(d *TaskNode) error {
					delete(t.index, d.id)
					d.owner = nil
					removed = append(removed, d.id)
					return nil
				})
				continue
			}
			prune(c)
			kept = append(kept, c)
		}
		for i := len(kept); i < len(n.children); i++ {
			n.children[i] = nil
		}
		n.children = kept
	}
	prune(t.root)
	return removed
}
