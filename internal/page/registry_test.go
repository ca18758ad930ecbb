package page

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letsjoyn/portfolio/internal/section"
)

func TestRegistry_MountAndGet(t *testing.T) {
	r := NewRegistry()
	defer r.Close()
	v := newTestView(t, clockwork.NewFakeClockAt(afternoon), section.All(), 0)

	require.NoError(t, r.Mount(context.Background(), v))

	got, ok := r.Get(v.ID)
	require.True(t, ok)
	assert.Same(t, v, got)
	assert.Equal(t, "2:05 PM", got.Clock())
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_DuplicateMount(t *testing.T) {
	r := NewRegistry()
	defer r.Close()
	v := newTestView(t, clockwork.NewFakeClockAt(afternoon), section.All(), 0)

	require.NoError(t, r.Mount(context.Background(), v))
	assert.True(t, errors.Is(r.Mount(context.Background(), v), ErrViewExists))
}

func TestRegistry_AttachOnce(t *testing.T) {
	r := NewRegistry()
	defer r.Close()
	v := newTestView(t, clockwork.NewFakeClockAt(afternoon), section.All(), 0)
	require.NoError(t, r.Mount(context.Background(), v))

	events, err := r.Attach(v.ID)
	require.NoError(t, err)
	assert.NotNil(t, events)

	_, err = r.Attach(v.ID)
	assert.ErrorIs(t, err, ErrAlreadyAttached)

	_, err = r.Attach("missing")
	assert.ErrorIs(t, err, ErrViewNotFound)
}

func TestRegistry_Unmount(t *testing.T) {
	r := NewRegistry()
	v := newTestView(t, clockwork.NewFakeClockAt(afternoon), section.All(), 0)
	require.NoError(t, r.Mount(context.Background(), v))

	require.NoError(t, r.Unmount(v.ID))
	assert.ErrorIs(t, r.Unmount(v.ID), ErrViewNotFound)

	_, ok := r.Get(v.ID)
	assert.False(t, ok)
	drain(v.Events())
	_, open := <-v.Events()
	assert.False(t, open)
}

func TestRegistry_SweepEvictsUnattachedViews(t *testing.T) {
	fake := clockwork.NewFakeClockAt(afternoon)
	r := NewRegistry(
		WithRegistryClock(fake),
		WithStaleAfter(time.Minute),
		WithSweepInterval(10*time.Second),
	)
	defer r.Close()

	viewClock := clockwork.NewFakeClockAt(afternoon)
	idle := newTestView(t, viewClock, section.All(), 0)
	live := newTestView(t, viewClock, section.All(), 0)
	require.NoError(t, r.Mount(context.Background(), idle))
	require.NoError(t, r.Mount(context.Background(), live))
	_, err := r.Attach(live.ID)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	require.NoError(t, fake.BlockUntilContext(waitCtx, 1))
	fake.Advance(2 * time.Minute)

	assert.Eventually(t, func() bool {
		return r.Len() == 1
	}, 2*time.Second, 10*time.Millisecond)

	_, ok := r.Get(live.ID)
	assert.True(t, ok, "attached view must survive the sweep")
	_, ok = r.Get(idle.ID)
	assert.False(t, ok)
}

func TestRegistry_CloseUnmountsAll(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 3; i++ {
		v := newTestView(t, clockwork.NewFakeClockAt(afternoon), section.All(), 0)
		require.NoError(t, r.Mount(context.Background(), v))
	}

	r.Close()

	assert.Equal(t, 0, r.Len())
}
