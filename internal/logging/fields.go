package logging

import (
	"context"
	"log/slog"
	"strings"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldBatchID identifies the batch a log line belongs to.
	FieldBatchID = "batch_id"
	// FieldItemID is the uuid of a review item.
	FieldItemID = "item_id"
	// FieldItemSeq is the 1-based position of an item within its batch.
	FieldItemSeq = "item_seq"
	FieldBucket  = "bucket"
	FieldLabel   = "label"
	FieldScore   = "score"
	// FieldOp names the operator command being applied.
	FieldOp = "op"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step to the operator.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
)

type batchIDKey struct{}

// WithBatchID returns a context carrying the batch identifier.
func WithBatchID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, batchIDKey{}, strings.TrimSpace(id))
}

// BatchIDFromContext returns the batch identifier stored in ctx, if any.
func BatchIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(batchIDKey{}).(string)
	return id, ok && id != ""
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if id, ok := BatchIDFromContext(ctx); ok {
		return logger.With(slog.String(FieldBatchID, id))
	}
	return logger
}
