package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollFiresOnlyOnChange(t *testing.T) {
	var changed atomic.Bool
	var calls atomic.Int32
	w, err := New(filepath.Join(t.TempDir(), "dados.csv"), func(ctx context.Context, reason string) error {
		assert.Equal(t, "poll", reason)
		calls.Add(1)
		return nil
	}, Options{Changed: func() (bool, error) { return changed.Load(), nil }})
	require.NoError(t, err)

	fired, err := w.Poll(context.Background())
	require.NoError(t, err)
	assert.False(t, fired)

	changed.Store(true)
	fired, err = w.Poll(context.Background())
	require.NoError(t, err)
	assert.True(t, fired)
	assert.Equal(t, int32(1), calls.Load())

	st := w.Stats()
	assert.Equal(t, 2, st.Polls)
	assert.Equal(t, 1, st.Reloads)
}

func TestPollErrorsAreCounted(t *testing.T) {
	w, err := New("x.csv", func(context.Context, string) error { return errors.New("bad data") },
		Options{Changed: func() (bool, error) { return true, nil }})
	require.NoError(t, err)
	_, err = w.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, w.Stats().Errors)

	w2, err := New("x.csv", func(context.Context, string) error { return nil },
		Options{Changed: func() (bool, error) { return false, os.ErrNotExist }})
	require.NoError(t, err)
	_, err = w2.Poll(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFlushDebounces(t *testing.T) {
	var calls atomic.Int32
	w, err := New("x.csv", func(context.Context, string) error {
		calls.Add(1)
		return nil
	}, Options{Debounce: time.Second})
	require.NoError(t, err)

	now := time.Now()
	w.pending = now
	w.flush(context.Background(), now.Add(500*time.Millisecond))
	assert.Equal(t, int32(0), calls.Load())
	w.flush(context.Background(), now.Add(2*time.Second))
	assert.Equal(t, int32(1), calls.Load())
	w.flush(context.Background(), now.Add(3*time.Second))
	assert.Equal(t, int32(1), calls.Load(), "pending cleared after firing")
}

func TestStartStop(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "dados.csv")
	require.NoError(t, os.WriteFile(src, []byte("Equipe\nT1\n"), 0o644))
	w, err := New(src, func(context.Context, string) error { return nil }, Options{Interval: time.Hour})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Start(context.Background()))
	w.Stop()
	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not exit")
	}
	w.Stop()
}

func TestNewRejectsNilCallback(t *testing.T) {
	_, err := New("x.csv", nil, Options{})
	require.Error(t, err)
}
