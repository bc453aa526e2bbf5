package task

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_CancelsPreviousOfSameKind(t *testing.T) {
	r := NewRegistry(context.Background())

	first, h1 := r.Start(Search)
	second, h2 := r.Start(Search)

	assert.ErrorIs(t, first.Err(), context.Canceled, "superseded search must be cancelled")
	assert.NoError(t, second.Err(), "new search must not be cancelled")
	assert.False(t, r.Current(h1))
	assert.True(t, r.Current(h2))
}

func TestStart_KindsAreIndependent(t *testing.T) {
	r := NewRegistry(context.Background())

	search, hs := r.Start(Search)
	flights, hf := r.Start(Flights)

	assert.NoError(t, search.Err())
	assert.NoError(t, flights.Err())
	assert.True(t, r.Current(hs))
	assert.True(t, r.Current(hf))
}

func TestFinish_OnlyReleasesCurrent(t *testing.T) {
	r := NewRegistry(context.Background())

	_, h1 := r.Start(Favorites)
	ctx2, h2 := r.Start(Favorites)

	r.Finish(h1)
	assert.True(t, r.Current(h2), "finishing a stale handle must not drop the newer task")
	assert.NoError(t, ctx2.Err())

	r.Finish(h2)
	assert.False(t, r.Current(h2))
	assert.False(t, r.Running(Favorites))
	assert.ErrorIs(t, ctx2.Err(), context.Canceled)
}

func TestCancel(t *testing.T) {
	r := NewRegistry(context.Background())

	search, hs := r.Start(Search)
	flights, _ := r.Start(Flights)

	r.Cancel(Search, Favorites)
	assert.ErrorIs(t, search.Err(), context.Canceled)
	assert.False(t, r.Current(hs))
	assert.NoError(t, flights.Err())
}

func TestCancelAll(t *testing.T) {
	r := NewRegistry(context.Background())

	var ctxs []context.Context
	for _, k := range []Kind{Search, Flights, Favorites} {
		ctx, _ := r.Start(k)
		ctxs = append(ctxs, ctx)
	}
	r.CancelAll()

	for _, ctx := range ctxs {
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
	}
	assert.False(t, r.Running(Search))
}

func TestParentCancellationEndsTasks(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	r := NewRegistry(parent)

	ctx, _ := r.Start(Search)
	cancel()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.Equal(t, parent, r.Context())
}

func TestStart_ConcurrentLastWins(t *testing.T) {
	r := NewRegistry(context.Background())

	var (
		mu      sync.Mutex
		handles []Handle
		wg      sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, h := r.Start(Search)
			mu.Lock()
			handles = append(handles, h)
			mu.Unlock()
		}()
	}
	wg.Wait()

	current := 0
	var max uint64
	for _, h := range handles {
		if r.Current(h) {
			current++
		}
		if h.Seq > max {
			max = h.Seq
		}
	}
	require.Equal(t, 1, current, "exactly one search may be current")
	assert.True(t, r.Current(Handle{Kind: Search, Seq: max}))
}
