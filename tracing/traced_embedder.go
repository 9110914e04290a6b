package tracing

import (
	"context"

	"github.com/hailp-vn38/embedkit"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/hailp-vn38/embedkit/tracing"

// TracedEmbedder wraps an Embedder with OTEL tracing. Every call opens one
// client span; errors are recorded on the span and returned unchanged.
type TracedEmbedder struct {
	next   embedkit.Embedder
	tracer trace.Tracer
}

var _ embedkit.Embedder = (*TracedEmbedder)(nil)

type Option func(*TracedEmbedder)

// WithTracerProvider uses tp instead of the globally installed provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(t *TracedEmbedder) {
		t.tracer = tp.Tracer(tracerName)
	}
}

// NewTracedEmbedder wraps next so every embedding call is traced.
func NewTracedEmbedder(next embedkit.Embedder, opts ...Option) *TracedEmbedder {
	t := &TracedEmbedder{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Embedder returns the wrapped Embedder.
func (t *TracedEmbedder) Embedder() embedkit.Embedder {
	return t.next
}

func (t *TracedEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	ctx, span := t.tracer.Start(ctx, "embedkit.embed",
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	vector, err := t.next.Embed(ctx, text)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("embeddings.dimension", len(vector)))

	return vector, nil
}

func (t *TracedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	ctx, span := t.tracer.Start(ctx, "embedkit.embed_batch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.Int("embeddings.inputs", len(texts))),
	)
	defer span.End()

	vectors, err := t.next.EmbedBatch(ctx, texts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if len(vectors) > 0 {
		span.SetAttributes(attribute.Int("embeddings.dimension", len(vectors[0])))
	}

	return vectors, nil
}
