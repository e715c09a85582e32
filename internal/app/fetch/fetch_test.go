package fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFetchesOnceThenServesSnapshot(t *testing.T) {
	snaps := NewSnapshots(time.Minute)
	calls := 0
	list := func(context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	first, err := Load(context.Background(), snaps, "u1:students", false, list)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, first)

	// Filter/search interactions hit the snapshot, not the service.
	second, err := Load(context.Background(), snaps, "u1:students", false, list)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestLoadRefreshBypassesSnapshot(t *testing.T) {
	snaps := NewSnapshots(time.Minute)
	calls := 0
	list := func(context.Context) ([]int, error) {
		calls++
		return []int{calls}, nil
	}

	_, err := Load(context.Background(), snaps, "k", false, list)
	require.NoError(t, err)
	got, err := Load(context.Background(), snaps, "k", true, list)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, got)
	assert.Equal(t, 2, calls)
}

func TestLoadErrorLeavesSnapshotUntouched(t *testing.T) {
	snaps := NewSnapshots(time.Minute)
	boom := errors.New("network down")

	_, err := Load(context.Background(), snaps, "k", false, func(context.Context) ([]string, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	_, ok := snaps.Get("k")
	assert.False(t, ok)
}

func TestStaleFetchCannotCommit(t *testing.T) {
	snaps := NewSnapshots(time.Minute)

	slow := snaps.Begin("k")
	fast := snaps.Begin("k")

	// The later fetch completes first and publishes.
	require.True(t, snaps.Commit("k", fast, []string{"fresh"}))

	// The earlier fetch resolves late; its result must be discarded.
	assert.False(t, snaps.Commit("k", slow, []string{"stale"}))

	v, ok := snaps.Get("k")
	require.True(t, ok)
	assert.Equal(t, []string{"fresh"}, v)
}

func TestInvalidateForcesRefetch(t *testing.T) {
	snaps := NewSnapshots(time.Minute)
	calls := 0
	list := func(context.Context) ([]string, error) {
		calls++
		return []string{"x"}, nil
	}

	_, err := Load(context.Background(), snaps, "k", false, list)
	require.NoError(t, err)

	snaps.Invalidate("k")

	_, err = Load(context.Background(), snaps, "k", false, list)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestSnapshotShapeMismatchRefetches(t *testing.T) {
	snaps := NewSnapshots(time.Minute)
	gen := snaps.Begin("k")
	require.True(t, snaps.Commit("k", gen, []int{1}))

	got, err := Load(context.Background(), snaps, "k", false, func(context.Context) ([]string, error) {
		return []string{"typed"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"typed"}, got)
}
