package charts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-advisor/poker"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore()
	require.NoError(t, err)
	return store
}

func TestBucketRoundsUp(t *testing.T) {
	store := newStore(t)

	tests := []struct {
		stackBB float64
		want    int
	}{
		{stackBB: 1, want: 3},
		{stackBB: 3, want: 3},
		{stackBB: 3.5, want: 5},
		{stackBB: 4, want: 5},
		{stackBB: 5, want: 5},
		{stackBB: 9, want: 10},
		{stackBB: 10, want: 10},
		{stackBB: 14.9, want: 15},
		{stackBB: 15, want: 15},
		{stackBB: 40, want: 15}, // clamp to the largest bucket
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, store.Bucket(tt.stackBB), "stack %.1fBB", tt.stackBB)
	}
}

func TestPushThresholdMonotoneInStack(t *testing.T) {
	store := newStore(t)
	buckets := store.Buckets()
	require.NotEmpty(t, buckets)

	for _, pos := range Positions {
		prev := -1.0
		for _, bucket := range buckets {
			threshold, got, ok := store.PushThreshold(pos, float64(bucket))
			require.True(t, ok, "missing %s threshold at %dBB", pos, bucket)
			assert.Equal(t, bucket, got)
			assert.GreaterOrEqual(t, threshold, prev,
				"%s threshold must not loosen from deeper stacks", pos)
			prev = threshold
		}
	}
}

func TestPushThresholdMonotoneAcrossPositions(t *testing.T) {
	store := newStore(t)

	// Later action means wider shoving: BTN loosest through UTG tightest.
	order := []Position{BTN, SB, BB, CO, MP, UTG}
	for _, bucket := range store.Buckets() {
		prev := -1.0
		for _, pos := range order {
			threshold, _, ok := store.PushThreshold(pos, float64(bucket))
			require.True(t, ok)
			assert.GreaterOrEqual(t, threshold, prev,
				"threshold order broken at %dBB for %s", bucket, pos)
			prev = threshold
		}
	}
}

func TestCallThresholdTighterThanPush(t *testing.T) {
	store := newStore(t)

	// Calling a shove needs a stronger hand than shoving first.
	for _, bucket := range store.Buckets() {
		push, _, ok := store.PushThreshold(BTN, float64(bucket))
		require.True(t, ok)
		call, _, ok := store.CallThreshold(BTN, float64(bucket))
		require.True(t, ok)
		assert.GreaterOrEqual(t, call, push, "bucket %d", bucket)
	}
}

func TestHandStrength(t *testing.T) {
	store := newStore(t)

	aa, ok := store.HandStrength(poker.Class{High: poker.Ace, Low: poker.Ace})
	require.True(t, ok)
	assert.Equal(t, 1.0, aa)

	kk, ok := store.HandStrength(poker.Class{High: poker.King, Low: poker.King})
	require.True(t, ok)
	assert.Greater(t, aa, kk)

	// Trash offsuit hands are absent from the table.
	_, ok = store.HandStrength(poker.Class{High: poker.Nine, Low: poker.Five})
	assert.False(t, ok)
}

func TestPushRange(t *testing.T) {
	store := newStore(t)

	classes := store.PushRange(BTN, 10)
	require.NotEmpty(t, classes)
	assert.Equal(t, "AA", classes[0].String(), "strongest class first")

	threshold, _, ok := store.PushThreshold(BTN, 10)
	require.True(t, ok)
	for _, class := range classes {
		strength, ok := store.HandStrength(class)
		require.True(t, ok)
		assert.GreaterOrEqual(t, strength, threshold)
	}

	wider := store.PushRange(BTN, 3)
	assert.Greater(t, len(wider), len(classes), "shorter stacks shove wider")
}

func TestOpeningCharts(t *testing.T) {
	store := newStore(t)

	for _, pos := range []Position{UTG, MP, CO, BTN, SB} {
		chart, ok := store.Opening("6max", pos)
		require.True(t, ok, "missing %s opening chart", pos)
		assert.Greater(t, chart.RaiseSize, 1.0)
		assert.NotEmpty(t, chart.Raise)
	}

	// The big blind never opens.
	_, ok := store.Opening("6max", BB)
	assert.False(t, ok)

	_, ok = store.Opening("9max", UTG)
	assert.False(t, ok, "only 6max defaults ship")

	utg, _ := store.Opening("6max", UTG)
	btn, _ := store.Opening("6max", BTN)
	assert.Greater(t, len(btn.Raise), len(utg.Raise), "button opens wider than UTG")
}

func TestThreeBetCharts(t *testing.T) {
	store := newStore(t)

	chart, ok := store.ThreeBet("6max", UTG)
	require.True(t, ok)
	assert.NotEmpty(t, chart.Value)
	assert.NotEmpty(t, chart.Bluff)
	assert.NotEmpty(t, chart.Call)

	aa := poker.Class{High: poker.Ace, Low: poker.Ace}
	found := false
	for _, c := range chart.Value {
		if c == aa {
			found = true
		}
	}
	assert.True(t, found, "AA must be a value 3-bet vs any open")
}

func TestLoadDirReplacesCharts(t *testing.T) {
	store := newStore(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "rankings.json"),
		[]byte(`{"AA": 0.5}`), 0o644))

	require.NoError(t, store.LoadDir(dir))

	aa, ok := store.HandStrength(poker.Class{High: poker.Ace, Low: poker.Ace})
	require.True(t, ok)
	assert.Equal(t, 0.5, aa)

	// Files absent from the directory keep their embedded defaults.
	_, _, ok = store.PushThreshold(BTN, 10)
	assert.True(t, ok)
}

func TestLoadDirRejectsBadData(t *testing.T) {
	store := newStore(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "rankings.json"),
		[]byte(`{"not-a-hand": 0.5}`), 0o644))

	err := store.LoadDir(dir)
	require.ErrorIs(t, err, ErrBadChart)

	// The failed load must not disturb the existing set.
	aa, ok := store.HandStrength(poker.Class{High: poker.Ace, Low: poker.Ace})
	require.True(t, ok)
	assert.Equal(t, 1.0, aa)
}

func TestLoadDirRejectsMismatchedBuckets(t *testing.T) {
	store := newStore(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "pushfold.json"),
		[]byte(`{"push": {"5": {"BTN": 0.3}}, "call": {"8": {"BTN": 0.5}}}`), 0o644))

	assert.ErrorIs(t, store.LoadDir(dir), ErrBadChart)
}
