package logging

import (
	"context"
	"regexp"

	"github.com/google/uuid"
)

type Module string

const (
	ModuleReminder  Module = "reminder"
	ModuleScheduler Module = "scheduler"
	ModuleSweep     Module = "sweep"
	ModuleStore     Module = "store"
	ModuleNotify    Module = "notify"
)

type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type contextKey int

const (
	requestIDKey contextKey = iota
	moduleKey
)

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// ValidateAndExtractRequestID returns the incoming id when it is safe to log,
// otherwise a fresh UUIDv7.
func ValidateAndExtractRequestID(id string) string {
	if requestIDPattern.MatchString(id) {
		return id
	}

	return uuid.Must(uuid.NewV7()).String()
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}

	return ""
}

func WithModule(ctx context.Context, module Module) context.Context {
	return context.WithValue(ctx, moduleKey, module)
}

func ModuleFrom(ctx context.Context) Module {
	if m, ok := ctx.Value(moduleKey).(Module); ok {
		return m
	}

	return ""
}

func withDefaultModule(ctx context.Context, module Module) context.Context {
	if ModuleFrom(ctx) != "" {
		return ctx
	}

	return WithModule(ctx, module)
}
