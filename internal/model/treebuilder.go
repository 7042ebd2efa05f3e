package model

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/estimator/internal/domain"
)

// Rebuild turns flat active rows into a tree. Exactly one row must carry the
// root's parent id of 0 and every other row's parent must be among the rows.
// All tasks come back unchanged; children are ordered by id.
func Rebuild(rows []domain.TaskRow) (*domain.Tree, error) {
	nodes := make(map[int]*domain.TaskNode, len(rows))
	ordered := make([]domain.TaskRow, len(rows))
	copy(ordered, rows)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	var root *domain.TaskNode
	for _, r := range ordered {
		if _, dup := nodes[r.ID]; dup {
			return nil, fmt.Errorf("rebuilding tree: duplicate task id %d: %w", r.ID, domain.ErrStructuralIntegrity)
		}
		n := domain.NodeFromRow(r)
		nodes[r.ID] = n
		if r.ParentID == 0 {
			if root != nil {
				return nil, fmt.Errorf("rebuilding tree: tasks %d and %d both have no parent: %w",
					root.ID(), r.ID, domain.ErrStructuralIntegrity)
			}
			root = n
		}
	}
	if root == nil {
		return nil, fmt.Errorf("rebuilding tree: missing root: %w", domain.ErrStructuralIntegrity)
	}
	for _, r := range ordered {
		if r.ParentID == 0 {
			continue
		}
		if _, ok := nodes[r.ParentID]; !ok {
			return nil, fmt.Errorf("rebuilding tree: task %d has unknown parent %d: %w",
				r.ID, r.ParentID, domain.ErrStructuralIntegrity)
		}
	}

	tree, err := domain.NewTree(root)
	if err != nil {
		return nil, fmt.Errorf("rebuilding tree: %w", err)
	}
	// Parents are attached before their children regardless of id order.
	children := make(map[int][]domain.TaskRow)
	for _, r := range ordered {
		if r.ParentID != 0 {
			children[r.ParentID] = append(children[r.ParentID], r)
		}
	}
	var attach func(parentID int) error
	attach = func(parentID int) error {
		for _, r := range children[parentID] {
			if err := tree.AddChild(parentID, nodes[r.ID]); err != nil {
				return fmt.Errorf("rebuilding tree: %w", err)
			}
			if err := attach(r.ID); err != nil {
				return err
			}
		}
		return nil
	}
	if err := attach(root.ID()); err != nil {
		return nil, err
	}
	if tree.Len() != len(ordered) {
		return nil, fmt.Errorf("rebuilding tree: %d of %d tasks unreachable from root: %w",
			len(ordered)-tree.Len(), len(ordered), domain.ErrStructuralIntegrity)
	}
	return tree, nil
}

// Flatten lists the tree in pre-order as persisted rows.
func Flatten(tree *domain.Tree) []domain.TaskRow {
	rows := make([]domain.TaskRow, 0, tree.Len())
	_ = tree.Walk(func(n *domain.TaskNode) error {
		rows = append(rows, n.Row())
		return nil
	})
	return rows
}
