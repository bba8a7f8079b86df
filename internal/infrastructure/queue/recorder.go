package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
	"github.com/iss-spotter/iss-spotter/internal/core/ports"
	"github.com/iss-spotter/iss-spotter/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	insertTimeout  = 5 * time.Second
)

// Recorder persists finished lookups off the request path. Lookups are
// routed to a fixed set of workers by hashing the lookup id.
type Recorder struct {
	workers []chan domain.Lookup
	repo    ports.LookupRepository
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewRecorder creates a Recorder with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewRecorder(numWorkers int, repo ports.LookupRepository, log zerolog.Logger) *Recorder {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	r := &Recorder{
		workers: make([]chan domain.Lookup, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan domain.Lookup, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Workers drain their channel and stop
// once ctx is cancelled; Wait blocks until they have.
func (r *Recorder) Start(ctx context.Context) {
	for i, ch := range r.workers {
		r.wg.Add(1)
		go r.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has stopped.
func (r *Recorder) Wait() {
	r.wg.Wait()
}

// Record enqueues a lookup. It never blocks: when the worker's channel is
// full the lookup is dropped.
func (r *Recorder) Record(lookup domain.Lookup) {
	id := r.shardIndex(lookup.ID)
	select {
	case r.workers[id] <- lookup:
		metrics.RecorderQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(r.workers[id])))
	default:
		metrics.RecorderDroppedTotal.Inc()
		r.log.Warn().Str("lookup_id", lookup.ID).Int("worker_id", id).Msg("recorder saturated, lookup dropped")
	}
}

// shardIndex maps a lookup id deterministically to a worker index.
func (r *Recorder) shardIndex(id string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return int(h.Sum32() % uint32(len(r.workers)))
}

func (r *Recorder) runWorker(ctx context.Context, id int, ch <-chan domain.Lookup) {
	defer r.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			r.drain(id, ch)
			return
		case lookup := <-ch:
			metrics.RecorderQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			r.persist(context.WithoutCancel(ctx), id, lookup)
		}
	}
}

// drain persists whatever is still buffered when shutdown begins.
func (r *Recorder) drain(id int, ch <-chan domain.Lookup) {
	for {
		select {
		case lookup := <-ch:
			r.persist(context.Background(), id, lookup)
		default:
			return
		}
	}
}

func (r *Recorder) persist(ctx context.Context, id int, lookup domain.Lookup) {
	ctx, cancel := context.WithTimeout(ctx, insertTimeout)
	defer cancel()

	if err := r.repo.Insert(ctx, &lookup); err != nil {
		metrics.RecorderErrorsTotal.Inc()
		r.log.Error().Err(err).
			Str("lookup_id", lookup.ID).
			Int("worker_id", id).
			Msg("lookup persistence failed")
	}
}
