package logger

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName names the OTel logger records are emitted through.
const instrumentationName = "sample-app"

// OTelHandler is a slog.Handler that exports records through the global
// OpenTelemetry logger provider.
type OTelHandler struct {
	logger log.Logger
	// attrs are resolved against the groups open when they were added
	attrs  []log.KeyValue
	groups []string
	level  slog.Level
}

// NewOTelHandler creates a handler for records at or above level.
func NewOTelHandler(level slog.Level) *OTelHandler {
	return &OTelHandler{
		logger: global.GetLoggerProvider().Logger(instrumentationName),
		level:  level,
	}
}

func (h *OTelHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *OTelHandler) Handle(ctx context.Context, r slog.Record) error {
	var rec log.Record
	rec.SetTimestamp(r.Time)
	rec.SetBody(log.StringValue(r.Message))
	rec.SetSeverity(otelSeverity(r.Level))
	rec.SetSeverityText(r.Level.String())

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		rec.AddAttributes(
			log.String("trace_id", sc.TraceID().String()),
			log.String("span_id", sc.SpanID().String()),
		)
	}
	for _, attr := range contextAttrs(ctx) {
		rec.AddAttributes(otelKeyValue("", attr))
	}

	rec.AddAttributes(h.attrs...)
	prefix := h.prefix()
	r.Attrs(func(a slog.Attr) bool {
		rec.AddAttributes(otelKeyValue(prefix, a))
		return true
	})

	h.logger.Emit(ctx, rec)
	return nil
}

func (h *OTelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	prefix := h.prefix()
	clone := *h
	clone.attrs = slices.Clip(h.attrs)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, otelKeyValue(prefix, a))
	}
	return &clone
}

func (h *OTelHandler) prefix() string {
	return strings.Join(h.groups, ".")
}

func (h *OTelHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(slices.Clip(h.groups), name)
	return &clone
}

func otelSeverity(level slog.Level) log.Severity {
	switch {
	case level >= slog.LevelError:
		return log.SeverityError
	case level >= slog.LevelWarn:
		return log.SeverityWarn
	case level >= slog.LevelInfo:
		return log.SeverityInfo
	default:
		return log.SeverityDebug
	}
}

// otelKeyValue flattens group nesting into dotted keys.
func otelKeyValue(prefix string, a slog.Attr) log.KeyValue {
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	return log.KeyValue{Key: key, Value: otelValue(a.Value.Resolve())}
}

func otelValue(v slog.Value) log.Value {
	switch v.Kind() {
	case slog.KindString:
		return log.StringValue(v.String())
	case slog.KindInt64:
		return log.Int64Value(v.Int64())
	case slog.KindUint64:
		return log.Int64Value(int64(v.Uint64()))
	case slog.KindFloat64:
		return log.Float64Value(v.Float64())
	case slog.KindBool:
		return log.BoolValue(v.Bool())
	case slog.KindDuration:
		return log.Int64Value(v.Duration().Milliseconds())
	case slog.KindGroup:
		group := v.Group()
		kvs := make([]log.KeyValue, 0, len(group))
		for _, a := range group {
			kvs = append(kvs, otelKeyValue("", a))
		}
		return log.MapValue(kvs...)
	default:
		return log.StringValue(v.String())
	}
}
