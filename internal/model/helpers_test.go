package model_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/model"
	"github.com/stretchr/testify/require"
)

func slogTo(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// mustTree rebuilds the model's live tree from its rows.
func mustTree(t *testing.T, m *model.Model) *domain.Tree {
	t.Helper()
	root := m.Root()
	require.NotNil(t, root)
	tree, err := domain.NewTree(root.Clone())
	require.NoError(t, err)
	return tree
}
