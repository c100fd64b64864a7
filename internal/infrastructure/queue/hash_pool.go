package queue

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/taskhub/internal/api/metrics"
)

const channelBuffer = 256

// ErrPoolStopped is returned for work submitted after the pool shut down.
var ErrPoolStopped = errors.New("hash pool stopped")

// Hasher is the synchronous password primitive the pool runs on its workers.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

type jobKind string

const (
	jobHash   jobKind = "hash"
	jobVerify jobKind = "verify"
)

type job struct {
	ctx       context.Context
	kind      jobKind
	plaintext string
	hash      string
	result    chan jobResult
}

type jobResult struct {
	hash string
	ok   bool
	err  error
}

// HashPool runs bcrypt work on a fixed set of workers so request goroutines
// only wait for a result. All workers share one job channel.
type HashPool struct {
	hasher  Hasher
	workers int
	jobs    chan job
	done    chan struct{}
	once    sync.Once
	log     zerolog.Logger
}

// NewHashPool creates a HashPool with numWorkers workers.
// If numWorkers <= 0, runtime.NumCPU() is used.
func NewHashPool(numWorkers int, hasher Hasher, log zerolog.Logger) *HashPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &HashPool{
		hasher:  hasher,
		workers: numWorkers,
		jobs:    make(chan job, channelBuffer),
		done:    make(chan struct{}),
		log:     log,
	}
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled,
// after which every submission fails with ErrPoolStopped.
func (p *HashPool) Start(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			p.runWorker(ctx, id)
		}(i)
	}
	go func() {
		<-ctx.Done()
		wg.Wait()
		p.once.Do(func() { close(p.done) })
		p.drain()
	}()
	p.log.Info().Int("workers", p.workers).Msg("hash pool started")
}

// Hash implements ports.PasswordHasher.
func (p *HashPool) Hash(ctx context.Context, plaintext string) (string, error) {
	res, err := p.submit(ctx, job{kind: jobHash, plaintext: plaintext})
	if err != nil {
		return "", err
	}
	return res.hash, res.err
}

// Verify implements ports.PasswordHasher. A cancelled or stopped
// submission returns the error, never a mismatch.
func (p *HashPool) Verify(ctx context.Context, plaintext, hash string) (bool, error) {
	res, err := p.submit(ctx, job{kind: jobVerify, plaintext: plaintext, hash: hash})
	if err != nil {
		p.log.Warn().Err(err).Msg("password verify abandoned")
		return false, err
	}
	return res.ok, nil
}

func (p *HashPool) submit(ctx context.Context, j job) (jobResult, error) {
	j.ctx = ctx
	j.result = make(chan jobResult, 1)

	select {
	case <-p.done:
		return jobResult{}, ErrPoolStopped
	default:
	}

	metrics.HashQueueDepth.Inc()
	select {
	case p.jobs <- j:
	case <-ctx.Done():
		metrics.HashQueueDepth.Dec()
		return jobResult{}, ctx.Err()
	case <-p.done:
		metrics.HashQueueDepth.Dec()
		return jobResult{}, ErrPoolStopped
	}

	select {
	case res := <-j.result:
		return res, nil
	case <-ctx.Done():
		return jobResult{}, ctx.Err()
	case <-p.done:
		return jobResult{}, ErrPoolStopped
	}
}

func (p *HashPool) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-p.jobs:
			metrics.HashQueueDepth.Dec()
			// The caller already gave up; skip the expensive work.
			if j.ctx.Err() != nil {
				continue
			}
			j.result <- p.run(j, id)
		}
	}
}

// drain discards jobs left in the buffer after the workers exited. Their
// callers are released by done.
func (p *HashPool) drain() {
	for {
		select {
		case <-p.jobs:
			metrics.HashQueueDepth.Dec()
		default:
			return
		}
	}
}

func (p *HashPool) run(j job, id int) jobResult {
	start := time.Now()
	defer func() {
		metrics.HashDuration.WithLabelValues(string(j.kind)).Observe(time.Since(start).Seconds())
	}()

	switch j.kind {
	case jobHash:
		hash, err := p.hasher.Hash(j.plaintext)
		if err != nil {
			p.log.Error().Err(err).Int("worker_id", id).Msg("password hash failed")
		}
		return jobResult{hash: hash, err: err}
	default:
		return jobResult{ok: p.hasher.Verify(j.plaintext, j.hash)}
	}
}
