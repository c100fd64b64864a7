package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/taskhub/internal/api/metrics"
	"github.com/99minutos/taskhub/internal/core/security"
)

type countingHasher struct {
	calls atomic.Int32
	block chan struct{}
}

func (h *countingHasher) Hash(plaintext string) (string, error) {
	h.calls.Add(1)
	if h.block != nil {
		<-h.block
	}
	return "hashed:" + plaintext, nil
}

func (h *countingHasher) Verify(plaintext, hash string) bool {
	h.calls.Add(1)
	return hash == "hashed:"+plaintext
}

func TestHashPool_RoundTripWithBcrypt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := NewHashPool(2, security.NewBcryptHasher(4), zerolog.Nop())
	pool.Start(ctx)

	hash, err := pool.Hash(ctx, "Str0ng!Pass")
	require.NoError(t, err)
	ok, err := pool.Verify(ctx, "Str0ng!Pass", hash)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = pool.Verify(ctx, "wrong", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPool_ConcurrentCallers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := &countingHasher{}
	pool := NewHashPool(3, h, zerolog.Nop())
	pool.Start(ctx)

	var wg sync.WaitGroup
	hashes := make([]string, 50)
	errs := make([]error, 50)
	for i := range hashes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hashes[i], errs[i] = pool.Hash(ctx, "pw")
		}(i)
	}
	wg.Wait()

	for i := range hashes {
		require.NoError(t, errs[i])
		require.Equal(t, "hashed:pw", hashes[i])
	}
	require.Equal(t, int32(50), h.calls.Load())
}

func TestHashPool_CallerCancellation(t *testing.T) {
	poolCtx, stop := context.WithCancel(context.Background())
	defer stop()

	h := &countingHasher{block: make(chan struct{})}
	defer close(h.block)

	pool := NewHashPool(1, h, zerolog.Nop())
	pool.Start(poolCtx)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := pool.Hash(ctx, "pw")
	require.True(t, errors.Is(err, context.DeadlineExceeded))
	ok, err := pool.Verify(ctx, "pw", "hashed:pw")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.False(t, ok)
}

func TestHashPool_Stopped(t *testing.T) {
	poolCtx, stop := context.WithCancel(context.Background())
	pool := NewHashPool(1, &countingHasher{}, zerolog.Nop())
	pool.Start(poolCtx)
	stop()

	require.Eventually(t, func() bool {
		_, err := pool.Hash(context.Background(), "pw")
		return errors.Is(err, ErrPoolStopped)
	}, time.Second, 5*time.Millisecond)
}

func TestHashPool_VerifyAfterStopIsAnError(t *testing.T) {
	poolCtx, stop := context.WithCancel(context.Background())
	pool := NewHashPool(1, &countingHasher{}, zerolog.Nop())
	pool.Start(poolCtx)
	stop()

	require.Eventually(t, func() bool {
		ok, err := pool.Verify(context.Background(), "pw", "hashed:pw")
		return !ok && errors.Is(err, ErrPoolStopped)
	}, time.Second, 5*time.Millisecond)
}

func TestHashPool_QueueDepthSettlesAfterStop(t *testing.T) {
	before := queueDepth(t)

	poolCtx, stop := context.WithCancel(context.Background())
	h := &countingHasher{block: make(chan struct{})}
	pool := NewHashPool(1, h, zerolog.Nop())
	pool.Start(poolCtx)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = pool.Hash(context.Background(), "pw")
		}()
	}
	// One job is held by the blocked worker, the rest wait in the buffer.
	require.Eventually(t, func() bool { return queueDepth(t) == before+4 }, time.Second, 5*time.Millisecond)

	stop()
	close(h.block)
	wg.Wait()

	require.Eventually(t, func() bool { return queueDepth(t) == before }, time.Second, 5*time.Millisecond)
}

func queueDepth(t *testing.T) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, metrics.HashQueueDepth.Write(&m))
	return m.GetGauge().GetValue()
}

func TestNewHashPool_DefaultWorkers(t *testing.T) {
	pool := NewHashPool(0, &countingHasher{}, zerolog.Nop())
	require.Positive(t, pool.workers)
}
