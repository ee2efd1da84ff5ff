package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type report struct {
	Total string
	Rows  []string
}

func TestKey(t *testing.T) {
	assert.Equal(t, "report:u1:g3:day-book:2024-01-01:2024-01-31", Key("u1", 3, "day-book", "2024-01-01", "2024-01-31"))
	assert.Equal(t, "report:u1:g0:trial-balance", Key("u1", 0, "trial-balance"))
}

func TestMemoryStore_GenerationBump(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(8, time.Minute)

	gen, err := store.Generation(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), gen)

	require.NoError(t, store.Bump(ctx, "u1"))
	gen, _ = store.Generation(ctx, "u1")
	assert.Equal(t, uint64(1), gen)

	other, _ := store.Generation(ctx, "u2")
	require.NoError(t, store.Bump(ctx, "u1"))
	again, _ := store.Generation(ctx, "u2")
	assert.Equal(t, other, again, "bumping one owner leaves the others alone")
}

func TestMemoryStore_EvictedGenerationNeverRepeats(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(16, time.Minute, 2)

	require.NoError(t, store.Bump(ctx, "u1"))
	stale, _ := store.Generation(ctx, "u1")
	require.NoError(t, store.Set(ctx, Key("u1", stale, "r"), []byte("old")))

	require.NoError(t, store.Bump(ctx, "u2"))
	require.NoError(t, store.Bump(ctx, "u3"))
	assert.Equal(t, 2, store.generations.Len())

	gen, _ := store.Generation(ctx, "u1")
	assert.Greater(t, gen, stale)
	_, ok, _ := store.Get(ctx, Key("u1", gen, "r"))
	assert.False(t, ok)
}

func TestMemoryStore_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(2, time.Minute)

	require.NoError(t, store.Set(ctx, "a", []byte("1")))
	require.NoError(t, store.Set(ctx, "b", []byte("2")))
	require.NoError(t, store.Set(ctx, "c", []byte("3")))

	_, ok, _ := store.Get(ctx, "a")
	assert.False(t, ok)
	v, ok, _ := store.Get(ctx, "c")
	assert.True(t, ok)
	assert.Equal(t, []byte("3"), v)
	assert.Equal(t, 2, store.Len())
}

func TestFetch_MemoizesUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	reports := NewReports(NewMemoryStore(16, time.Minute))
	calls := 0
	load := func(context.Context) (report, error) {
		calls++
		return report{Total: "700.00", Rows: []string{"cash", "bank"}}, nil
	}

	first, err := Fetch(ctx, reports, "u1", "trial-balance", nil, load)
	require.NoError(t, err)
	second, err := Fetch(ctx, reports, "u1", "trial-balance", nil, load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	require.NoError(t, reports.Invalidate(ctx, "u1"))
	_, err = Fetch(ctx, reports, "u1", "trial-balance", nil, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestFetch_FilterSeparatesEntries(t *testing.T) {
	ctx := context.Background()
	reports := NewReports(NewMemoryStore(16, time.Minute))
	calls := 0
	load := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	a, _ := Fetch(ctx, reports, "u1", "day-book", []string{"2024-01"}, load)
	b, _ := Fetch(ctx, reports, "u1", "day-book", []string{"2024-02"}, load)
	c, _ := Fetch(ctx, reports, "u2", "day-book", []string{"2024-01"}, load)

	assert.Equal(t, []int{1, 2, 3}, []int{a, b, c})
}

func TestFetch_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	reports := NewReports(NewMemoryStore(16, time.Minute))
	boom := errors.New("db down")
	calls := 0
	load := func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, boom
		}
		return 42, nil
	}

	_, err := Fetch(ctx, reports, "u1", "r", nil, load)
	assert.ErrorIs(t, err, boom)

	v, err := Fetch(ctx, reports, "u1", "r", nil, load)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestFetch_SharesConcurrentLoads(t *testing.T) {
	ctx := context.Background()
	reports := NewReports(NewMemoryStore(16, time.Minute))
	var calls int32
	release := make(chan struct{})
	load := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 7, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Fetch(ctx, reports, "u1", "r", nil, load)
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, 7, r)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(8))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(1))
}

func TestFetch_LoadIgnoresCallerCancellation(t *testing.T) {
	reports := NewReports(NewMemoryStore(16, time.Minute))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var loadErr error
	load := func(loadCtx context.Context) (int, error) {
		cancel()
		loadErr = loadCtx.Err()
		return 11, nil
	}
	_, _ = Fetch(ctx, reports, "u1", "r", nil, load)
	require.NoError(t, loadErr)

	v, err := Fetch(context.Background(), reports, "u1", "r", nil, func(context.Context) (int, error) {
		return 0, errors.New("should be served from the cache")
	})
	require.NoError(t, err)
	assert.Equal(t, 11, v)
}

func TestFetch_CancelledWaiterDoesNotFailOthers(t *testing.T) {
	reports := NewReports(NewMemoryStore(16, time.Minute))
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	load := func(context.Context) (int, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		return 5, nil
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := Fetch(firstCtx, reports, "u1", "r", nil, load)
		firstErr <- err
	}()
	<-started

	type result struct {
		v   int
		err error
	}
	second := make(chan result, 1)
	go func() {
		v, err := Fetch(context.Background(), reports, "u1", "r", nil, load)
		second <- result{v, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, 5, got.v)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetch_NilReportsCallsLoad(t *testing.T) {
	v, err := Fetch(context.Background(), nil, "u1", "r", nil, func(context.Context) (string, error) {
		return "fresh", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
	assert.NoError(t, (*Reports)(nil).Invalidate(context.Background(), "u1"))
}
