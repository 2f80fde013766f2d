package tui

import (
	"context"
	"sync"

	"github.com/dhabedank/lumina/internal/wizard"
)

// writeQueue serializes store writes. Every snapshot is numbered when it is
// dispatched; a snapshot older than the last one committed is dropped, so
// the store always ends on the newest state.
type writeQueue struct {
	store Persister

	mu      sync.Mutex
	issued  uint64
	written uint64

	pending sync.WaitGroup
}

func newWriteQueue(store Persister) *writeQueue {
	return &writeQueue{store: store}
}

// submit starts writing e and returns a channel that receives the result.
// Must be called from the program loop so numbering follows dispatch order.
func (q *writeQueue) submit(ctx context.Context, e wizard.PersistEffect) <-chan error {
	q.issued++
	gen := q.issued
	done := make(chan error, 1)

	q.pending.Add(1)
	go func() {
		defer q.pending.Done()
		q.mu.Lock()
		defer q.mu.Unlock()

		if gen < q.written {
			done <- nil
			return
		}
		// Quitting cancels ctx; the last snapshot still has to land.
		err := q.store.Save(context.WithoutCancel(ctx), e.History, e.Saved, e.User)
		if err == nil {
			q.written = gen
		}
		done <- err
	}()
	return done
}

// flush blocks until every submitted write has finished.
func (q *writeQueue) flush() {
	q.pending.Wait()
}
