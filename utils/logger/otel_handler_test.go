package logger

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

type exportedRecord struct {
	body     string
	severity log.Severity
	attrs    map[string]log.Value
}

// memoryExporter copies what it needs out of each record; the SDK reuses them.
type memoryExporter struct {
	mu      sync.Mutex
	records []exportedRecord
}

func (e *memoryExporter) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range records {
		out := exportedRecord{
			body:     r.Body().AsString(),
			severity: r.Severity(),
			attrs:    map[string]log.Value{},
		}
		r.WalkAttributes(func(kv log.KeyValue) bool {
			out.attrs[kv.Key] = kv.Value
			return true
		})
		e.records = append(e.records, out)
	}
	return nil
}

func (e *memoryExporter) Shutdown(context.Context) error   { return nil }
func (e *memoryExporter) ForceFlush(context.Context) error { return nil }

func newTestOTelHandler(t *testing.T, level slog.Level) (*OTelHandler, *memoryExporter) {
	t.Helper()
	exp := &memoryExporter{}
	lp := sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exp)))
	t.Cleanup(func() { _ = lp.Shutdown(context.Background()) })
	return &OTelHandler{logger: lp.Logger("test"), level: level}, exp
}

func TestOTelHandler_ExportsRecord(t *testing.T) {
	h, exp := newTestOTelHandler(t, slog.LevelInfo)

	ctx := WithProductCode(WithRequestID(context.Background(), "req-1"), "prh-business-identity-data-product")
	slog.New(h).With("component", "broker").WithGroup("upstream").
		WarnContext(ctx, "broker request failed", "status", 502, "latency", 1500*time.Millisecond, "retry", false)

	require.Len(t, exp.records, 1)
	rec := exp.records[0]
	assert.Equal(t, "broker request failed", rec.body)
	assert.Equal(t, log.SeverityWarn, rec.severity)
	assert.Equal(t, "req-1", rec.attrs["request_id"].AsString())
	assert.Equal(t, "prh-business-identity-data-product", rec.attrs["sample.product.code"].AsString())
	assert.Equal(t, "broker", rec.attrs["component"].AsString())
	assert.Equal(t, int64(502), rec.attrs["upstream.status"].AsInt64())
	assert.Equal(t, int64(1500), rec.attrs["upstream.latency"].AsInt64())
	assert.False(t, rec.attrs["upstream.retry"].AsBool())
}

func TestOTelHandler_RespectsLevel(t *testing.T) {
	h, exp := newTestOTelHandler(t, slog.LevelWarn)

	logger := slog.New(h)
	logger.Info("dropped")
	logger.Error("kept")

	require.Len(t, exp.records, 1)
	assert.Equal(t, "kept", exp.records[0].body)
	assert.Equal(t, log.SeverityError, exp.records[0].severity)
}

func TestOTelHandler_WithAttrsDoesNotLeak(t *testing.T) {
	h, exp := newTestOTelHandler(t, slog.LevelInfo)

	base := slog.New(h).With("a", "1")
	base.With("b", "2").Info("first")
	base.With("c", "3").Info("second")

	require.Len(t, exp.records, 2)
	assert.Contains(t, exp.records[1].attrs, "c")
	assert.NotContains(t, exp.records[1].attrs, "b")
}

func TestOTelHandler_GroupValue(t *testing.T) {
	h, exp := newTestOTelHandler(t, slog.LevelInfo)

	slog.New(h).Info("grouped", slog.Group("req", "method", "GET"))

	require.Len(t, exp.records, 1)
	v := exp.records[0].attrs["req"]
	require.Equal(t, log.KindMap, v.Kind())
	kvs := v.AsMap()
	require.Len(t, kvs, 1)
	assert.Equal(t, "method", kvs[0].Key)
	assert.Equal(t, "GET", kvs[0].Value.AsString())
}
