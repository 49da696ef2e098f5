package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/KasumiMercury/primind-reminder-dispatch/internal/app"
)

const DefaultInterval = time.Minute

var (
	ErrSweepInProgress = errors.New("sweep already in progress")
	ErrDriverStopped   = errors.New("driver stopped")
)

type Sweeper interface {
	RunSweep(ctx context.Context, now time.Time) (app.SweepReport, error)
}

type OverrunRecorder interface {
	RecordOverrun(ctx context.Context)
}

type DriverConfig struct {
	Interval time.Duration
	Clock    Clock
	// Locker is an optional cross-process guard taken after the in-process one.
	Locker  Locker
	Overrun OverrunRecorder
	Logger  cron.Logger
}

// Driver fires a sweep on a fixed interval. At most one sweep runs at a time;
// a tick that arrives while a sweep is running is skipped and logged as an
// overrun.
type Driver struct {
	sweeper  Sweeper
	clock    Clock
	interval time.Duration
	local    *LocalLocker
	remote   Locker
	overrun  OverrunRecorder
	cron     *cron.Cron

	mu       sync.Mutex
	started  bool
	stopped  bool
	inFlight sync.WaitGroup
}

func NewDriver(sweeper Sweeper, cfg DriverConfig) *Driver {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = cron.DiscardLogger
	}

	return &Driver{
		sweeper:  sweeper,
		clock:    clock,
		interval: interval,
		local:    NewLocalLocker(),
		remote:   cfg.Locker,
		overrun:  cfg.Overrun,
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger)),
		),
	}
}

func (d *Driver) Interval() time.Duration {
	return d.interval
}

// Start schedules the periodic tick. It is a no-op when already started.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started || d.stopped {
		return
	}

	d.cron.Schedule(cron.Every(d.interval), cron.FuncJob(d.runScheduled))
	d.cron.Start()
	d.started = true

	slog.Info("tick driver started",
		slog.String("event", "scheduler.start"),
		slog.Duration("interval", d.interval),
	)
}

// Stop prevents further ticks and waits for an in-flight sweep to finish or
// for ctx to be done, whichever comes first.
func (d *Driver) Stop(ctx context.Context) error {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	cronDone := d.cron.Stop()

	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		d.inFlight.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("tick driver stopped",
			slog.String("event", "scheduler.stop"),
		)

		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for in-flight sweep: %w", ctx.Err())
	}
}

// Tick runs one sweep now. The sweep is detached from ctx cancellation so a
// started sweep always completes.
func (d *Driver) Tick(ctx context.Context) (app.SweepReport, error) {
	release, ok, _ := d.local.TryLock(ctx)
	if !ok {
		d.recordOverrun(ctx)

		return app.SweepReport{}, ErrSweepInProgress
	}
	defer release()

	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()

		return app.SweepReport{}, ErrDriverStopped
	}

	d.inFlight.Add(1)
	d.mu.Unlock()

	defer d.inFlight.Done()

	ctx = context.WithoutCancel(ctx)

	if d.remote != nil {
		releaseRemote, ok, err := d.remote.TryLock(ctx)
		if err != nil {
			return app.SweepReport{}, fmt.Errorf("acquire sweep lock: %w", err)
		}

		if !ok {
			d.recordOverrun(ctx)

			return app.SweepReport{}, ErrSweepInProgress
		}
		defer releaseRemote()
	}

	return d.sweeper.RunSweep(ctx, d.clock.Now())
}

func (d *Driver) runScheduled() {
	ctx := context.Background()

	if _, err := d.Tick(ctx); err != nil {
		switch {
		case errors.Is(err, ErrSweepInProgress), errors.Is(err, ErrDriverStopped):
		case errors.Is(err, app.ErrStoreUnavailable):
			slog.WarnContext(ctx, "sweep aborted, retrying on next tick",
				slog.String("event", "scheduler.tick.abort"),
				slog.String("error", err.Error()),
			)
		default:
			slog.ErrorContext(ctx, "tick failed",
				slog.String("event", "scheduler.tick.fail"),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (d *Driver) recordOverrun(ctx context.Context) {
	slog.WarnContext(ctx, "previous sweep still running, tick skipped",
		slog.String("event", "scheduler.tick.overrun"),
	)

	if d.overrun != nil {
		d.overrun.RecordOverrun(ctx)
	}
}
