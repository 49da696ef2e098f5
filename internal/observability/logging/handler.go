package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

type HandlerConfig struct {
	Level         slog.Level
	Service       ServiceInfo
	Environment   Environment
	GCPProjectID  string
	DefaultModule Module
}

// ContextHandler adds the request id, module and service attributes carried
// by the context to every record.
type ContextHandler struct {
	inner         slog.Handler
	projectID     string
	defaultModule Module
}

func NewHandler(w io.Writer, cfg HandlerConfig) *ContextHandler {
	attrs := []slog.Attr{}
	if cfg.Service.Name != "" {
		attrs = append(attrs, slog.Group("service",
			slog.String("name", cfg.Service.Name),
			slog.String("version", cfg.Service.Version),
			slog.String("revision", cfg.Service.Revision),
		))
	}

	if cfg.Environment != "" {
		attrs = append(attrs, slog.String("env", string(cfg.Environment)))
	}

	inner := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       cfg.Level,
		ReplaceAttr: replaceAttr,
	}).WithAttrs(attrs)

	return &ContextHandler{
		inner:         inner,
		projectID:     cfg.GCPProjectID,
		defaultModule: cfg.DefaultModule,
	}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	if id := RequestID(ctx); id != "" {
		record.AddAttrs(slog.String("request_id", id))
	}

	module := ModuleFrom(ctx)
	if module == "" {
		module = h.defaultModule
	}

	if module != "" {
		record.AddAttrs(slog.String("module", string(module)))
	}

	record.AddAttrs(gcpTraceAttrs(ctx, h.projectID)...)

	return h.inner.Handle(ctx, record)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{inner: h.inner.WithAttrs(attrs), projectID: h.projectID, defaultModule: h.defaultModule}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{inner: h.inner.WithGroup(name), projectID: h.projectID, defaultModule: h.defaultModule}
}

// ParseLevel maps LOG_LEVEL values; unknown values mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
