package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/KasumiMercury/primind-reminder-dispatch/internal/domain"
)

const (
	DefaultConcurrency = 8
	DefaultSendTimeout = 30 * time.Second

	tracerName = "reminder-dispatch"
)

type Outcome string

const (
	// OutcomeSkipped means the reminder was not due on this sweep.
	OutcomeSkipped Outcome = "skipped"
	OutcomeSent    Outcome = "sent"
	OutcomeFailed  Outcome = "failed"
	// OutcomeUnrecorded means the notification went out but the watermark
	// write failed, so the next due tick may send it again.
	OutcomeUnrecorded Outcome = "unrecorded"
	// OutcomeInvalid means the stored row could not be read at all.
	OutcomeInvalid Outcome = "invalid"
)

type DispatchResult struct {
	ReminderID string
	UserID     string
	Outcome    Outcome
	Err        error
}

// SweepReport summarizes one RunSweep. Attempted counts due reminders that
// were handed to the notifier; Unrecorded is a subset of Sent. Invalid rows
// are never attempted.
type SweepReport struct {
	Attempted  int              `json:"attempted"`
	Sent       int              `json:"sent"`
	Failed     int              `json:"failed"`
	Skipped    int              `json:"skipped"`
	Unrecorded int              `json:"unrecorded"`
	Invalid    int              `json:"invalid"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Results    []DispatchResult `json:"-"`
}

func (r *SweepReport) add(result DispatchResult) {
	r.Results = append(r.Results, result)

	switch result.Outcome {
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeSent:
		r.Attempted++
		r.Sent++
	case OutcomeUnrecorded:
		r.Attempted++
		r.Sent++
		r.Unrecorded++
	case OutcomeFailed:
		r.Attempted++
		r.Failed++
	case OutcomeInvalid:
		r.Invalid++
	}
}

// SweepObserver receives every finished sweep, including aborted ones.
type SweepObserver interface {
	ObserveSweep(ctx context.Context, report SweepReport, err error)
}

type DispatcherConfig struct {
	Window      domain.DueWindow
	Concurrency int
	SendTimeout time.Duration
	// Fallback is the zone used for empty or unknown reminder timezones.
	Fallback *time.Location
	Observer SweepObserver
}

type Dispatcher struct {
	repo     domain.ReminderRepository
	notifier Notifier
	resolver *domain.TimezoneResolver

	window      domain.DueWindow
	concurrency int
	sendTimeout time.Duration
	observer    SweepObserver
	tracer      trace.Tracer
}

func NewDispatcher(repo domain.ReminderRepository, notifier Notifier, cfg DispatcherConfig) *Dispatcher {
	window := cfg.Window
	if window.IsZero() {
		window = domain.MustDueWindow(domain.DefaultDueWindow)
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	sendTimeout := cfg.SendTimeout
	if sendTimeout <= 0 {
		sendTimeout = DefaultSendTimeout
	}

	return &Dispatcher{
		repo:        repo,
		notifier:    notifier,
		resolver:    domain.NewTimezoneResolver(cfg.Fallback),
		window:      window,
		concurrency: concurrency,
		sendTimeout: sendTimeout,
		observer:    cfg.Observer,
		tracer:      otel.Tracer(tracerName),
	}
}

// RunSweep evaluates every active reminder against now and notifies the due
// ones. Per-item failures are reported in the result, never returned; the
// only error is ErrStoreUnavailable when the reminders cannot be loaded.
// FinishedAt is StartedAt plus the measured run time, so the pair gives the
// sweep duration even when now is not the current time.
func (d *Dispatcher) RunSweep(ctx context.Context, now time.Time) (SweepReport, error) {
	now = now.UTC()
	report := SweepReport{StartedAt: now}
	began := time.Now()

	ctx, span := d.tracer.Start(ctx, "reminder.sweep",
		trace.WithAttributes(attribute.String("sweep.now", now.Format(time.RFC3339))),
	)
	defer span.End()

	reminders, err := d.repo.LoadActiveReminders(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load active reminders, sweep aborted",
			slog.String("event", "sweep.abort"),
			slog.String("error", err.Error()),
		)

		span.RecordError(err)
		span.SetStatus(codes.Error, "store unavailable")

		report.FinishedAt = now.Add(time.Since(began))
		sweepErr := fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		d.observe(ctx, report, sweepErr)

		return report, sweepErr
	}

	results := make([]DispatchResult, len(reminders))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)

	for i := range reminders {
		g.Go(func() error {
			results[i] = d.dispatchOne(gctx, reminders[i], now)

			return nil
		})
	}

	// Workers never return an error; Wait only joins them.
	_ = g.Wait()

	for _, r := range results {
		report.add(r)
	}

	report.FinishedAt = now.Add(time.Since(began))

	span.SetAttributes(
		attribute.Int("sweep.loaded", len(reminders)),
		attribute.Int("sweep.attempted", report.Attempted),
		attribute.Int("sweep.sent", report.Sent),
		attribute.Int("sweep.failed", report.Failed),
		attribute.Int("sweep.invalid", report.Invalid),
	)

	slog.InfoContext(ctx, "sweep finished",
		slog.String("event", "sweep.finish"),
		slog.Int("loaded", len(reminders)),
		slog.Int("attempted", report.Attempted),
		slog.Int("sent", report.Sent),
		slog.Int("failed", report.Failed),
		slog.Int("unrecorded", report.Unrecorded),
		slog.Int("invalid", report.Invalid),
		slog.Duration("duration", report.FinishedAt.Sub(report.StartedAt)),
	)

	d.observe(ctx, report, nil)

	return report, nil
}

func (d *Dispatcher) observe(ctx context.Context, report SweepReport, err error) {
	if d.observer != nil {
		d.observer.ObserveSweep(ctx, report, err)
	}
}

func (d *Dispatcher) dispatchOne(ctx context.Context, r domain.ScheduledReminder, now time.Time) (result DispatchResult) {
	if r.Invalid != nil {
		slog.ErrorContext(ctx, "unusable reminder row, not dispatched",
			slog.String("event", "reminder.invalid"),
			slog.String("reminder_id", r.RawID),
			slog.String("user_id", r.RawUserID),
			slog.String("error", r.Invalid.Error()),
		)

		return DispatchResult{
			ReminderID: r.RawID,
			UserID:     r.RawUserID,
			Outcome:    OutcomeInvalid,
			Err:        r.Invalid,
		}
	}

	result = DispatchResult{
		ReminderID: r.ReminderID.String(),
		UserID:     r.UserID.String(),
		Outcome:    OutcomeSkipped,
	}

	defer func() {
		if rec := recover(); rec != nil {
			slog.ErrorContext(ctx, "panic while dispatching reminder",
				slog.String("event", "app.panic"),
				slog.String("reminder_id", result.ReminderID),
				slog.Any("error", rec),
			)

			result.Outcome = OutcomeFailed
			result.Err = fmt.Errorf("%w: panic: %v", ErrInternalError, rec)
		}
	}()

	resolution := d.resolver.Resolve(now, r.Timezone)
	if resolution.FellBack {
		slog.WarnContext(ctx, "invalid reminder timezone, using fallback",
			slog.String("event", "reminder.timezone.fallback"),
			slog.String("reminder_id", result.ReminderID),
			slog.String("timezone", r.Timezone),
			slog.String("fallback", resolution.Zone.String()),
		)
	}

	tod, malformed := domain.ClampTimeOfDayString(r.TimeOfDay)
	if malformed {
		slog.WarnContext(ctx, "malformed reminder time of day, clamped",
			slog.String("event", "reminder.time_of_day.clamp"),
			slog.String("reminder_id", result.ReminderID),
			slog.String("time_of_day", r.TimeOfDay),
			slog.String("clamped", tod.String()),
		)
	}

	if !domain.IsDue(resolution.Local, tod.Hour(), tod.Minute(), r.LastSent, resolution.Zone, d.window) {
		return result
	}

	ctx, span := d.tracer.Start(ctx, "reminder.dispatch",
		trace.WithAttributes(
			attribute.String("reminder.id", result.ReminderID),
			attribute.String("user.id", result.UserID),
		),
	)
	defer span.End()

	// The send and its watermark must not be cut short by the caller going
	// away mid-item; only the per-item deadline applies.
	itemCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.sendTimeout)
	defer cancel()

	recipient := Recipient{
		Email:       r.Contact.Email(),
		DisplayName: r.Contact.DisplayName(),
	}
	nctx := NotificationContext{
		ReminderID:  result.ReminderID,
		UserID:      result.UserID,
		TimeOfDay:   tod.String(),
		Timezone:    resolution.Zone.String(),
		LocalDate:   resolution.Local.Format(time.DateOnly),
		RequestedAt: now,
	}

	if err := d.notifier.Notify(itemCtx, recipient, nctx); err != nil {
		slog.ErrorContext(ctx, "failed to deliver reminder",
			slog.String("event", "reminder.notify.fail"),
			slog.String("reminder_id", result.ReminderID),
			slog.String("user_id", result.UserID),
			slog.String("error", err.Error()),
		)

		span.RecordError(err)
		span.SetStatus(codes.Error, "notification delivery failed")

		result.Outcome = OutcomeFailed
		result.Err = err

		return result
	}

	if err := d.repo.MarkSent(itemCtx, r.ReminderID, now); err != nil {
		slog.ErrorContext(ctx, "reminder sent but watermark not recorded, a duplicate send is possible",
			slog.String("event", "reminder.mark_sent.fail"),
			slog.String("reminder_id", result.ReminderID),
			slog.String("user_id", result.UserID),
			slog.String("error", err.Error()),
		)

		span.RecordError(err)

		result.Outcome = OutcomeUnrecorded
		result.Err = err

		return result
	}

	slog.InfoContext(ctx, "reminder sent",
		slog.String("event", "reminder.sent"),
		slog.String("reminder_id", result.ReminderID),
		slog.String("user_id", result.UserID),
		slog.String("local_date", nctx.LocalDate),
	)

	result.Outcome = OutcomeSent

	return result
}
