package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/KasumiMercury/primind-reminder-dispatch/internal/app"
)

// SweepMetrics counts dispatch outcomes per sweep and the ticks that were
// dropped because the previous sweep was still running.
type SweepMetrics struct {
	sweeps    metric.Int64Counter
	reminders metric.Int64Counter
	overruns  metric.Int64Counter
	duration  metric.Float64Histogram
}

func NewSweepMetrics(meter metric.Meter) (*SweepMetrics, error) {
	sweeps, err := meter.Int64Counter("reminder.sweep.count",
		metric.WithDescription("Number of sweeps run, by status"),
	)
	if err != nil {
		return nil, err
	}

	reminders, err := meter.Int64Counter("reminder.dispatch.count",
		metric.WithDescription("Number of due reminders handled, by outcome"),
	)
	if err != nil {
		return nil, err
	}

	overruns, err := meter.Int64Counter("reminder.sweep.overrun.count",
		metric.WithDescription("Number of ticks skipped because a sweep was in progress"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram("reminder.sweep.duration",
		metric.WithDescription("Wall time of a sweep"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &SweepMetrics{
		sweeps:    sweeps,
		reminders: reminders,
		overruns:  overruns,
		duration:  duration,
	}, nil
}

func (m *SweepMetrics) ObserveSweep(ctx context.Context, report app.SweepReport, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}

	m.sweeps.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))

	if !report.FinishedAt.IsZero() {
		m.duration.Record(ctx, report.FinishedAt.Sub(report.StartedAt).Seconds(),
			metric.WithAttributes(attribute.String("status", status)))
	}

	m.addOutcome(ctx, app.OutcomeSent, report.Sent-report.Unrecorded)
	m.addOutcome(ctx, app.OutcomeUnrecorded, report.Unrecorded)
	m.addOutcome(ctx, app.OutcomeFailed, report.Failed)
	m.addOutcome(ctx, app.OutcomeInvalid, report.Invalid)
}

func (m *SweepMetrics) RecordOverrun(ctx context.Context) {
	m.overruns.Add(ctx, 1)
}

func (m *SweepMetrics) addOutcome(ctx context.Context, outcome app.Outcome, n int) {
	if n <= 0 {
		return
	}

	m.reminders.Add(ctx, int64(n), metric.WithAttributes(attribute.String("outcome", string(outcome))))
}
