package research

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/camorent/internal/model"
)

type countingResearcher struct {
	calls atomic.Int32
	res   model.ResearchResult
	gate  chan struct{}
}

func (c *countingResearcher) Research(context.Context, string) model.ResearchResult {
	c.calls.Add(1)
	if c.gate != nil {
		<-c.gate
	}
	return c.res
}

func goodResult() model.ResearchResult {
	return model.ResearchResult{
		Specifications: map[string]any{"sensor": "45MP"},
		Pricing:        map[string]any{"market_price": "$3,899"},
		Images:         []string{"https://shop.test/r5.jpg"},
		Confidence:     ConfidenceBasic,
		Source:         SourceBasic,
	}
}

func TestCachedMemoryHit(t *testing.T) {
	inner := &countingResearcher{res: goodResult()}
	c := &Cached{Next: inner, Store: NewMemoryStore(time.Minute, time.Minute), TTL: time.Minute}

	first := c.Research(context.Background(), "Canon EOS R5 specifications")
	second := c.Research(context.Background(), "  canon   eos r5 SPECIFICATIONS ")

	assert.Equal(t, int32(1), inner.calls.Load())
	assert.Equal(t, goodResult(), first)
	assert.Equal(t, goodResult(), second)
}

func TestCachedSkipsFailures(t *testing.T) {
	inner := &countingResearcher{res: FailedResult(context.DeadlineExceeded)}
	c := &Cached{Next: inner, Store: NewMemoryStore(time.Minute, time.Minute), TTL: time.Minute}

	c.Research(context.Background(), "Canon EOS R5")
	c.Research(context.Background(), "Canon EOS R5")
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestCachedEmptyQueryBypasses(t *testing.T) {
	inner := &countingResearcher{res: EmptyQueryResult()}
	c := &Cached{Next: inner, Store: NewMemoryStore(time.Minute, time.Minute), TTL: time.Minute}

	res := c.Research(context.Background(), "  ")
	assert.InDelta(t, ConfidenceFailed, res.Confidence, 1e-9)
	c.Research(context.Background(), "")
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestCachedCollapsesConcurrentLookups(t *testing.T) {
	inner := &countingResearcher{res: goodResult(), gate: make(chan struct{})}
	c := &Cached{Next: inner, Store: NewMemoryStore(time.Minute, time.Minute), TTL: time.Minute}

	const callers = 8
	var wg sync.WaitGroup
	results := make([]model.ResearchResult, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = c.Research(context.Background(), "Sony A7 IV")
		}()
	}

	require.Eventually(t, func() bool { return inner.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(inner.gate)
	wg.Wait()

	assert.LessOrEqual(t, inner.calls.Load(), int32(callers))
	for _, r := range results {
		assert.Equal(t, goodResult(), r)
	}
}

type ctxResearcher struct {
	calls atomic.Int32
	gate  chan struct{}
}

func (c *ctxResearcher) Research(ctx context.Context, _ string) model.ResearchResult {
	c.calls.Add(1)
	select {
	case <-ctx.Done():
		return FailedResult(ctx.Err())
	case <-c.gate:
		return goodResult()
	}
}

func TestCachedCallerCancelDoesNotFailOthers(t *testing.T) {
	inner := &ctxResearcher{gate: make(chan struct{})}
	c := &Cached{Next: inner, Store: NewMemoryStore(time.Minute, time.Minute), TTL: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan model.ResearchResult, 1)
	go func() { first <- c.Research(ctx, "Canon EOS R5") }()
	require.Eventually(t, func() bool { return inner.calls.Load() == 1 }, time.Second, time.Millisecond)

	second := make(chan model.ResearchResult, 1)
	go func() { second <- c.Research(context.Background(), "Canon EOS R5") }()
	time.Sleep(20 * time.Millisecond)

	cancel()
	res := <-first
	assert.Equal(t, SourceFailed, res.Source)

	close(inner.gate)
	assert.Equal(t, goodResult(), <-second)
	assert.Equal(t, int32(1), inner.calls.Load())

	// The shared lookup still filled the cache.
	assert.Equal(t, goodResult(), c.Research(context.Background(), "canon eos r5"))
	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestCachedRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, "camorent:research:")
	inner := &countingResearcher{res: goodResult()}
	c := &Cached{Next: inner, Store: store, TTL: time.Hour}

	c.Research(context.Background(), "Nikon Z9")
	assert.True(t, mr.Exists("camorent:research:nikon z9"))
	assert.Equal(t, time.Hour, mr.TTL("camorent:research:nikon z9"))

	res := c.Research(context.Background(), "nikon z9")
	assert.Equal(t, int32(1), inner.calls.Load())
	assert.Equal(t, goodResult(), res)

	mr.FastForward(2 * time.Hour)
	c.Research(context.Background(), "nikon z9")
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestCachedRedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	inner := &countingResearcher{res: goodResult()}
	c := &Cached{Next: inner, Store: NewRedisStore(client, "p:"), TTL: time.Hour}

	res := c.Research(context.Background(), "Nikon Z9")
	assert.Equal(t, goodResult(), res)
	assert.Equal(t, int32(1), inner.calls.Load())
}
