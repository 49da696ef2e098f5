package logging

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// CronLogger routes robfig/cron's scheduler logs to slog. Info output from
// cron is per-wakeup chatter and is logged at debug.
type CronLogger struct {
	logger *slog.Logger
}

var _ cron.Logger = (*CronLogger)(nil)

func NewCronLogger(logger *slog.Logger) *CronLogger {
	if logger == nil {
		logger = slog.Default()
	}

	return &CronLogger{logger: logger.With(slog.String("module", string(ModuleScheduler)))}
}

func (l *CronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *CronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append([]any{"error", err}, keysAndValues...)...)
}
