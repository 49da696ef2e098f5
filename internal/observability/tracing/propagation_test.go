package tracing

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

const traceparent = "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"

func TestPropagationRoundTrip(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{ServiceName: "test"})
	require.NoError(t, err)

	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	provider.SetGlobal()

	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)
	req.Header.Set("traceparent", traceparent)

	ctx := ExtractFromHTTPRequest(context.Background(), req)
	inbound := trace.SpanContextFromContext(ctx)
	require.True(t, inbound.IsValid())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", inbound.TraceID().String())

	carrier := map[string]string{}
	InjectToMap(ctx, carrier)
	assert.Equal(t, traceparent, carrier["traceparent"])

	restored := trace.SpanContextFromContext(ExtractFromMap(context.Background(), carrier))
	assert.Equal(t, inbound.TraceID(), restored.TraceID())
	assert.Equal(t, inbound.SpanID(), restored.SpanID())
}
