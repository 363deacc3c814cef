package tournamentservice

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	tournamentdb "github.com/Rxriddqd/iddqd/app/modules/tournament/infrastructure/repositories"
	"github.com/Rxriddqd/iddqd/app/observability"
	"github.com/Rxriddqd/iddqd/app/shared/attr"
	"github.com/Rxriddqd/iddqd/app/shared/results"
)

// TournamentService implements the Service interface.
type TournamentService struct {
	repo    tournamentdb.Repository
	logger  *slog.Logger
	metrics observability.TournamentMetrics
	tracer  trace.Tracer

	// now and draw are injected for deterministic tests.
	now  func() time.Time
	draw func(maxRoll int) int
}

// NewTournamentService creates a new TournamentService.
func NewTournamentService(
	repo tournamentdb.Repository,
	logger *slog.Logger,
	metrics observability.TournamentMetrics,
	tracer trace.Tracer,
) *TournamentService {
	return &TournamentService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		now:     time.Now,
		draw: func(maxRoll int) int {
			return rand.IntN(maxRoll) + 1
		},
	}
}

// operationFunc is the signature for service operation functions.
type operationFunc func(ctx context.Context) (results.OperationResult, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic
// recovery. A returned error is an infrastructure fault; a Failure payload
// with a nil error is an expected domain outcome.
func (s *TournamentService) withTelemetry(
	ctx context.Context,
	operationName string,
	tournamentID string,
	op operationFunc,
) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("tournament_id", tournamentID),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("tournament_id", tournamentID),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			result = results.OperationResult{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("tournament_id", tournamentID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.Failure != nil {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("tournament_id", tournamentID),
			attr.Any("failure_type", fmt.Sprintf("%T", result.Failure)),
		)
	}

	if result.Success != nil {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("tournament_id", tournamentID),
			attr.Any("success_type", fmt.Sprintf("%T", result.Success)),
		)
	}

	s.metrics.RecordOperationSuccess(ctx, operationName)
	return result, nil
}
