package internal

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/AnatoleLucet/opdoc"

// Diagnostic kinds recorded on the opdoc.diagnostics counter.
const (
	DiagDuplicateComponentID = "duplicate_component_id"
	DiagUnknownExpression    = "unknown_expression"
	DiagMissingComponent     = "missing_component"
	DiagUnsettled            = "unsettled_dependencies"
)

type instruments struct {
	frames      metric.Int64Counter
	frameOps    metric.Int64Histogram
	applyErrors metric.Int64Counter
	diagnostics metric.Int64Counter
	patched     metric.Int64Counter
}

func newInstruments(mp metric.MeterProvider, logger *slog.Logger) *instruments {
	meter := mp.Meter(instrumentationName)
	i := &instruments{}
	var err error

	if i.frames, err = meter.Int64Counter("opdoc.frames",
		metric.WithDescription("Paint passes run")); err != nil {
		logger.Warn("create instrument", "name", "opdoc.frames", "error", err)
		i.frames = noop.Int64Counter{}
	}

	if i.frameOps, err = meter.Int64Histogram("opdoc.frame.ops",
		metric.WithDescription("Operations executed per paint pass"),
		metric.WithUnit("{operation}")); err != nil {
		logger.Warn("create instrument", "name", "opdoc.frame.ops", "error", err)
		i.frameOps = noop.Int64Histogram{}
	}

	if i.applyErrors, err = meter.Int64Counter("opdoc.apply.errors",
		metric.WithDescription("Operations that failed to apply")); err != nil {
		logger.Warn("create instrument", "name", "opdoc.apply.errors", "error", err)
		i.applyErrors = noop.Int64Counter{}
	}

	if i.diagnostics, err = meter.Int64Counter("opdoc.diagnostics",
		metric.WithDescription("Non-fatal document diagnostics")); err != nil {
		logger.Warn("create instrument", "name", "opdoc.diagnostics", "error", err)
		i.diagnostics = noop.Int64Counter{}
	}

	if i.patched, err = meter.Int64Counter("opdoc.patched",
		metric.WithDescription("Operations refreshed from delta documents")); err != nil {
		logger.Warn("create instrument", "name", "opdoc.patched", "error", err)
		i.patched = noop.Int64Counter{}
	}

	return i
}

func (i *instruments) frame(ops int) {
	ctx := context.Background()
	i.frames.Add(ctx, 1)
	i.frameOps.Record(ctx, int64(ops))
}

func (i *instruments) applyError(kind string) {
	i.applyErrors.Add(context.Background(), 1, metric.WithAttributes(attribute.String("op", kind)))
}

func (i *instruments) diagnostic(kind string) {
	i.diagnostics.Add(context.Background(), 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (i *instruments) patch(n int) {
	if n > 0 {
		i.patched.Add(context.Background(), int64(n))
	}
}
