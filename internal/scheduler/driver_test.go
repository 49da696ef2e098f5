package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-reminder-dispatch/internal/app"
	"github.com/KasumiMercury/primind-reminder-dispatch/internal/scheduler"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

type blockingSweeper struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32

	mu    sync.Mutex
	times []time.Time
	ctxs  []context.Context
	err   error
}

func newBlockingSweeper() *blockingSweeper {
	return &blockingSweeper{
		started: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
}

// instantSweeper returns a sweeper whose sweeps never block.
func instantSweeper() *blockingSweeper {
	s := newBlockingSweeper()
	close(s.release)

	return s
}

func (s *blockingSweeper) RunSweep(ctx context.Context, now time.Time) (app.SweepReport, error) {
	s.calls.Add(1)

	s.mu.Lock()
	s.times = append(s.times, now)
	s.ctxs = append(s.ctxs, ctx)
	err := s.err
	s.mu.Unlock()

	s.started <- struct{}{}
	<-s.release

	return app.SweepReport{StartedAt: now, FinishedAt: now}, err
}

type countingOverrun struct {
	n atomic.Int32
}

func (c *countingOverrun) RecordOverrun(_ context.Context) {
	c.n.Add(1)
}

type stubLocker struct {
	ok  bool
	err error

	released atomic.Int32
}

func (l *stubLocker) TryLock(_ context.Context) (func(), bool, error) {
	if l.err != nil || !l.ok {
		return nil, false, l.err
	}

	return func() { l.released.Add(1) }, true, nil
}

func TestTickUsesInjectedClockSuccess(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, time.June, 10, 9, 0, 30, 0, time.UTC)}
	sweeper := instantSweeper()
	driver := scheduler.NewDriver(sweeper, scheduler.DriverConfig{Clock: clock})

	_, err := driver.Tick(context.Background())
	require.NoError(t, err)

	clock.Advance(time.Minute)

	_, err = driver.Tick(context.Background())
	require.NoError(t, err)

	require.Len(t, sweeper.times, 2)
	assert.Equal(t, time.Date(2025, time.June, 10, 9, 0, 30, 0, time.UTC), sweeper.times[0])
	assert.Equal(t, time.Date(2025, time.June, 10, 9, 1, 30, 0, time.UTC), sweeper.times[1])
}

func TestTickOverlapError(t *testing.T) {
	sweeper := newBlockingSweeper()
	overrun := &countingOverrun{}
	driver := scheduler.NewDriver(sweeper, scheduler.DriverConfig{Overrun: overrun})

	errc := make(chan error, 1)
	go func() {
		_, err := driver.Tick(context.Background())
		errc <- err
	}()

	<-sweeper.started

	_, err := driver.Tick(context.Background())
	assert.ErrorIs(t, err, scheduler.ErrSweepInProgress)
	assert.Equal(t, int32(1), overrun.n.Load())

	close(sweeper.release)
	require.NoError(t, <-errc)
	assert.Equal(t, int32(1), sweeper.calls.Load())

	_, err = driver.Tick(context.Background())
	assert.NoError(t, err)
}

func TestTickDetachesSweepFromCallerCancellation(t *testing.T) {
	sweeper := instantSweeper()
	driver := scheduler.NewDriver(sweeper, scheduler.DriverConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := driver.Tick(ctx)

	require.NoError(t, err)
	require.Len(t, sweeper.ctxs, 1)
	assert.NoError(t, sweeper.ctxs[0].Err())
}

func TestTickPropagatesSweepError(t *testing.T) {
	sweeper := instantSweeper()
	sweeper.err = app.ErrStoreUnavailable
	driver := scheduler.NewDriver(sweeper, scheduler.DriverConfig{})

	_, err := driver.Tick(context.Background())

	assert.ErrorIs(t, err, app.ErrStoreUnavailable)
}

func TestTickRemoteLocker(t *testing.T) {
	tests := []struct {
		name          string
		locker        *stubLocker
		expectedErr   error
		expectedCalls int32
		expectRelease bool
	}{
		{
			name:          "acquired",
			locker:        &stubLocker{ok: true},
			expectedCalls: 1,
			expectRelease: true,
		},
		{
			name:          "held by another replica",
			locker:        &stubLocker{ok: false},
			expectedErr:   scheduler.ErrSweepInProgress,
			expectedCalls: 0,
		},
		{
			name:          "lock backend down",
			locker:        &stubLocker{err: errors.New("redis: connection refused")},
			expectedCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sweeper := instantSweeper()
			driver := scheduler.NewDriver(sweeper, scheduler.DriverConfig{Locker: tt.locker})

			_, err := driver.Tick(context.Background())

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
			case tt.locker.err != nil:
				assert.ErrorIs(t, err, tt.locker.err)
			default:
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.expectedCalls, sweeper.calls.Load())

			if tt.expectRelease {
				assert.Equal(t, int32(1), tt.locker.released.Load())
			}
		})
	}
}

func TestStopWaitsForInFlightSweep(t *testing.T) {
	sweeper := newBlockingSweeper()
	driver := scheduler.NewDriver(sweeper, scheduler.DriverConfig{})

	tickDone := make(chan error, 1)
	go func() {
		_, err := driver.Tick(context.Background())
		tickDone <- err
	}()

	<-sweeper.started

	stopDone := make(chan error, 1)
	go func() {
		stopDone <- driver.Stop(context.Background())
	}()

	select {
	case <-stopDone:
		t.Fatal("Stop returned while a sweep was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(sweeper.release)

	require.NoError(t, <-tickDone)
	require.NoError(t, <-stopDone)

	_, err := driver.Tick(context.Background())
	assert.ErrorIs(t, err, scheduler.ErrDriverStopped)
}

func TestStopDeadlineError(t *testing.T) {
	sweeper := newBlockingSweeper()
	driver := scheduler.NewDriver(sweeper, scheduler.DriverConfig{})

	go func() {
		_, _ = driver.Tick(context.Background())
	}()

	<-sweeper.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := driver.Stop(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(sweeper.release)
}

func TestStartFiresPeriodically(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping real-time scheduler test in short mode")
	}

	sweeper := instantSweeper()
	driver := scheduler.NewDriver(sweeper, scheduler.DriverConfig{Interval: time.Second})

	driver.Start()
	driver.Start()

	select {
	case <-sweeper.started:
	case <-time.After(3 * time.Second):
		t.Fatal("no tick fired")
	}

	require.NoError(t, driver.Stop(context.Background()))
	assert.GreaterOrEqual(t, sweeper.calls.Load(), int32(1))
}

func TestLocalLockerSuccess(t *testing.T) {
	locker := scheduler.NewLocalLocker()

	release, ok, err := locker.TryLock(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = locker.TryLock(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	release()
	release()

	release2, ok, err := locker.TryLock(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	release2()
}
