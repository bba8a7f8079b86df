package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
)

type stubRepo struct {
	mu       sync.Mutex
	inserted []string
	err      error
	block    chan struct{}
}

func (r *stubRepo) Insert(_ context.Context, l *domain.Lookup) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.inserted = append(r.inserted, l.ID)
	return nil
}

func (r *stubRepo) FindByID(context.Context, string) (*domain.Lookup, error) {
	return nil, domain.ErrLookupNotFound
}

func (r *stubRepo) ListRecent(context.Context, int) ([]*domain.Lookup, error) {
	return nil, nil
}

func (r *stubRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.inserted)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestRecorder_PersistsLookups(t *testing.T) {
	repo := &stubRepo{}
	rec := NewRecorder(3, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	for i := range 20 {
		rec.Record(domain.Lookup{ID: fmt.Sprintf("lookup-%d", i)})
	}

	waitFor(t, func() bool { return repo.count() == 20 })
}

func TestRecorder_ShardIndexIsStable(t *testing.T) {
	rec := NewRecorder(8, &stubRepo{}, zerolog.Nop())

	for _, id := range []string{"a", "b", "0d6f1b7e-8a77-4b6f-9b0e-9d6bb1f4c0de"} {
		first := rec.shardIndex(id)
		if first < 0 || first >= 8 {
			t.Fatalf("shard %d out of range", first)
		}
		if rec.shardIndex(id) != first {
			t.Errorf("expected stable shard for %q", id)
		}
	}
}

func TestRecorder_DefaultWorkers(t *testing.T) {
	rec := NewRecorder(0, &stubRepo{}, zerolog.Nop())
	if len(rec.workers) != defaultWorkers {
		t.Errorf("expected %d workers, got %d", defaultWorkers, len(rec.workers))
	}
}

func TestRecorder_DropsWhenSaturated(t *testing.T) {
	repo := &stubRepo{}
	rec := NewRecorder(1, repo, zerolog.Nop()) // not started: nothing drains

	done := make(chan struct{})
	go func() {
		for i := range channelBuffer + 10 {
			rec.Record(domain.Lookup{ID: fmt.Sprintf("lookup-%d", i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record blocked on a full channel")
	}
	if len(rec.workers[0]) != channelBuffer {
		t.Errorf("expected a full buffer, got %d", len(rec.workers[0]))
	}
}

func TestRecorder_InsertErrorsAreNonFatal(t *testing.T) {
	repo := &stubRepo{err: errors.New("mongo unavailable")}
	rec := NewRecorder(1, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	rec.Start(ctx)

	rec.Record(domain.Lookup{ID: "a"})
	rec.Record(domain.Lookup{ID: "b"})

	cancel()
	rec.Wait()
}

func TestRecorder_DrainsOnShutdown(t *testing.T) {
	repo := &stubRepo{block: make(chan struct{})}
	rec := NewRecorder(1, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	rec.Start(ctx)

	for i := range 5 {
		rec.Record(domain.Lookup{ID: fmt.Sprintf("lookup-%d", i)})
	}
	cancel()
	close(repo.block)
	rec.Wait()

	if repo.count() != 5 {
		t.Errorf("expected all buffered lookups persisted, got %d", repo.count())
	}
}
