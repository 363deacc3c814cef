package handlerwrapper

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	"github.com/Rxriddqd/iddqd/app/observability"
	"github.com/Rxriddqd/iddqd/app/shared/attr"
)

// Result is one outbound message produced by a handler: a payload routed to
// a topic via message metadata.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// WrapTransformingTyped adapts a typed transformation handler
// (payload in, results out) into a watermill HandlerFunc. It decodes the
// message payload as JSON, threads the correlation ID into the context, and
// encodes every result into a message whose destination topic is carried in
// the "subject" metadata key for the event bus publisher to resolve.
//
// Malformed payloads are logged and dropped rather than returned as errors,
// so a poison message cannot wedge the subscription.
func WrapTransformingTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics observability.HandlerMetrics,
	handler func(ctx context.Context, payload *T) ([]Result, error),
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx := msg.Context()
		if id := middleware.MessageCorrelationID(msg); id != "" {
			ctx = attr.WithCorrelationID(ctx, id)
		}
		ctx, span := tracer.Start(ctx, handlerName)
		defer span.End()

		metrics.RecordHandlerAttempt(ctx, handlerName)
		start := time.Now()
		defer func() {
			metrics.RecordHandlerDuration(ctx, handlerName, time.Since(start))
		}()

		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			logger.ErrorContext(ctx, "Dropping malformed event payload",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.Error(err),
			)
			metrics.RecordHandlerFailure(ctx, handlerName)
			return nil, nil
		}

		resultSet, err := handler(ctx, &payload)
		if err != nil {
			logger.ErrorContext(ctx, "Handler failed",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.Error(err),
			)
			metrics.RecordHandlerFailure(ctx, handlerName)
			span.RecordError(err)
			return nil, err
		}

		out := make([]*message.Message, 0, len(resultSet))
		for _, r := range resultSet {
			body, err := json.Marshal(r.Payload)
			if err != nil {
				logger.ErrorContext(ctx, "Failed to encode result payload",
					attr.ExtractCorrelationID(ctx),
					attr.String("handler", handlerName),
					attr.String("topic", r.Topic),
					attr.Error(err),
				)
				metrics.RecordHandlerFailure(ctx, handlerName)
				return nil, err
			}

			m := message.NewMessage(watermill.NewUUID(), body)
			m.SetContext(ctx)
			m.Metadata.Set("subject", r.Topic)
			m.Metadata.Set("handler", handlerName)
			for k, v := range r.Metadata {
				m.Metadata.Set(k, v)
			}
			out = append(out, m)
		}

		metrics.RecordHandlerSuccess(ctx, handlerName)
		return out, nil
	}
}

// CommonMetadata stamps module provenance and a processing timestamp onto
// every message a handler produces.
func CommonMetadata(module string) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			produced, err := h(msg)
			for _, m := range produced {
				m.Metadata.Set("module", module)
				if m.Metadata.Get("processed_at") == "" {
					m.Metadata.Set("processed_at", time.Now().UTC().Format(time.RFC3339))
				}
			}
			return produced, err
		}
	}
}
