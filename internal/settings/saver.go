package settings

import (
	"context"
	"sync"

	"github.com/alexanderramin/estimator/internal/latest"
)

// Saver writes settings in the background. A new save supersedes one that
// has not finished.
type Saver struct {
	path   string
	runner *latest.Runner[struct{}]

	// write serializes file writes; a superseded job skips its write.
	write sync.Mutex
}

// NewSaver reports each completed save's error to onDone, which may be nil.
func NewSaver(path string, onDone func(error)) *Saver {
	return &Saver{
		path: path,
		runner: latest.New(func(_ struct{}, err error) {
			if onDone != nil {
				onDone(err)
			}
		}),
	}
}

// Save snapshots s and writes it asynchronously.
func (sv *Saver) Save(ctx context.Context, s *Settings) {
	snapshot := s.Clone()
	sv.runner.Submit(ctx, func(ctx context.Context) (struct{}, error) {
		sv.write.Lock()
		defer sv.write.Unlock()
		if err := ctx.Err(); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, Save(sv.path, snapshot)
	})
}

// Wait blocks until pending saves finish.
func (sv *Saver) Wait() { sv.runner.Wait() }
