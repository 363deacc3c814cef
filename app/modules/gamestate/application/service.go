package gamestateservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Rxriddqd/iddqd/app/observability"
	"github.com/Rxriddqd/iddqd/app/shared/attr"
	"github.com/Rxriddqd/iddqd/app/shared/results"
)

// GameStore is the storage surface the manager needs. Satisfied by the
// storage façade, which is fail-soft: every method degrades to false on an
// infrastructure fault, so this service never sees an error value.
type GameStore interface {
	SaveGameState(ctx context.Context, gameID string, state any) bool
	LoadGameState(ctx context.Context, gameID string, dest any) bool
	WriteBackup(ctx context.Context, name string, v any) bool
	AppendEventLog(ctx context.Context, logType string, event any) bool
}

// GameStateService implements the Service interface: a generic
// pending→active→{completed,cancelled} lifecycle for mini-games that do not
// need the tournament engine.
type GameStateService struct {
	store   GameStore
	logger  *slog.Logger
	metrics observability.GameStateMetrics
	tracer  trace.Tracer

	now func() time.Time
}

// NewGameStateService creates a new GameStateService.
func NewGameStateService(
	store GameStore,
	logger *slog.Logger,
	metrics observability.GameStateMetrics,
	tracer trace.Tracer,
) *GameStateService {
	return &GameStateService{
		store:   store,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		now:     time.Now,
	}
}

type operationFunc func(ctx context.Context) results.OperationResult

// withTelemetry wraps an operation with tracing, metrics, and panic
// recovery. The game-state tier is fail-soft end to end, so operations
// return no error; failures are payloads.
func (s *GameStateService) withTelemetry(
	ctx context.Context,
	operationName string,
	gameID string,
	op operationFunc,
) (result results.OperationResult) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("game_id", gameID),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("game_id", gameID),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			result = results.OperationResult{}
		}
	}()

	result = op(ctx)
	if result.Failure != nil {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("game_id", gameID),
			attr.Any("failure_type", fmt.Sprintf("%T", result.Failure)),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		return result
	}

	s.metrics.RecordOperationSuccess(ctx, operationName)
	return result
}
