package expiry

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/WorkSlot-BookingService/pkg/logger"
)

type countingSweeper struct {
	calls   atomic.Int32
	expired int
	err     error
	lastNow atomic.Value
}

func (s *countingSweeper) Execute(_ context.Context, now time.Time) (int, error) {
	s.calls.Add(1)
	s.lastNow.Store(now)
	return s.expired, s.err
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func TestNewWorker_InvalidSchedule(t *testing.T) {
	_, err := NewWorker(&countingSweeper{}, "every minute please", logger.NewNop())

	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestRunOnce(t *testing.T) {
	sweeper := &countingSweeper{expired: 3}
	w, err := NewWorker(sweeper, "@every 60s", logger.NewNop())
	require.NoError(t, err)

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	w.timeProvider = fixedTime{now}

	expired, err := w.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, expired)
	assert.Equal(t, now, sweeper.lastNow.Load())
}

func TestRunOnce_Error(t *testing.T) {
	sweeper := &countingSweeper{err: errors.New("db down")}
	w, err := NewWorker(sweeper, "@every 60s", logger.NewNop())
	require.NoError(t, err)

	_, err = w.RunOnce(context.Background())

	assert.Error(t, err)
}

func TestStartStop(t *testing.T) {
	sweeper := &countingSweeper{}
	w, err := NewWorker(sweeper, "@every 1s", logger.NewNop())
	require.NoError(t, err)

	w.Start()
	assert.Eventually(t, func() bool { return sweeper.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	w.Stop(ctx)

	calls := sweeper.calls.Load()
	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, calls, sweeper.calls.Load())
}
