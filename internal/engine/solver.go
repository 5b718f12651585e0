package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/piwi3910/PlateCut/internal/model"
)

// ErrUnknownAlgorithm is returned when a solver is requested for an algorithm
// the engine does not implement.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Solver is the uniform entry point for every algorithm.
type Solver interface {
	Algorithm() model.Algorithm
	Solve(ctx context.Context, pieces []model.Piece) (model.Result, error)
}

// cuttingFunc is the common signature of the cutting solvers.
type cuttingFunc func(ctx context.Context, settings model.Settings, pieces []model.Piece) (model.Result, error)

var cuttingSolvers = map[model.Algorithm]cuttingFunc{
	model.AlgorithmBruteForce:     SolveExhaustive,
	model.AlgorithmBranchAndBound: SolveBranchAndBound,
	model.AlgorithmBestFit:        SolveBestFit,
	model.AlgorithmGenetic:        SolveGenetic,
	model.AlgorithmPartitionOrder: SolvePartitionOrder,
}

// Option configures a solver.
type Option func(*solver)

// WithLogger sets the logger used for run summaries, timeouts and skipped orderings.
func WithLogger(l *slog.Logger) Option {
	return func(s *solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTracer overrides the tracer used for solver spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *solver) {
		if t != nil {
			s.tracer = t
		}
	}
}

type solver struct {
	alg      model.Algorithm
	settings model.Settings
	logger   *slog.Logger
	tracer   trace.Tracer

	cutting   cuttingFunc
	partition PartitionFunc
}

// NewSolver returns the solver for alg configured with settings.
func NewSolver(alg model.Algorithm, settings model.Settings, opts ...Option) (Solver, error) {
	s := &solver{
		alg:      alg,
		settings: settings,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:   otel.Tracer("platecut/engine"),
	}
	if fn, ok := cuttingSolvers[alg]; ok {
		s.cutting = fn
	} else if fn, ok := partitionSolvers[alg]; ok {
		s.partition = fn
	} else {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
	}

	if s.cutting != nil {
		if err := settings.Validate(); err != nil {
			return nil, fmt.Errorf("invalid settings: %w", err)
		}
	}

	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *solver) Algorithm() model.Algorithm { return s.alg }

// Solve runs the algorithm on the pieces. Partition algorithms use the piece weights.
func (s *solver) Solve(ctx context.Context, pieces []model.Piece) (model.Result, error) {
	runID := uuid.New().String()

	ctx, span := s.tracer.Start(ctx, "Solver.Solve", trace.WithAttributes(
		attribute.String("solver.algorithm", string(s.alg)),
		attribute.String("solver.run_id", runID),
		attribute.Int("solver.pieces", len(pieces)),
	))
	defer span.End()

	logger := s.logger.With("run_id", runID, "algorithm", s.alg)
	ctx = contextWithLogger(ctx, logger)
	logger.Debug("solver started", "pieces", len(pieces))

	start := time.Now()
	var (
		res model.Result
		err error
	)
	if s.cutting != nil {
		res, err = s.cutting(ctx, s.settings, pieces)
	} else {
		res = partitionResult(s.alg, s.partition(model.Weights(pieces)), len(pieces))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "solve failed")
		logger.Debug("solver failed", "error", err)
		return model.Result{}, err
	}

	res.RunID = runID
	res.Algorithm = s.alg
	res.Elapsed = time.Since(start)

	span.SetAttributes(
		attribute.Float64("solver.cost", res.Cost),
		attribute.Int("solver.units", res.Units),
		attribute.Int64("solver.effort", res.Effort),
		attribute.Bool("solver.timed_out", res.TimedOut),
	)
	logger.Debug("solver finished",
		"cost", res.Cost, "units", res.Units, "effort", res.Effort,
		"pruned", res.Pruned, "skipped", res.Skipped, "elapsed", res.Elapsed)
	return res, nil
}

func partitionResult(alg model.Algorithm, pr model.PartitionResult, items int) model.Result {
	return model.Result{
		Algorithm: alg,
		Cost:      pr.Difference,
		Units:     items,
		Group1:    pr.Group1,
		Group2:    pr.Group2,
		Effort:    pr.Effort,
	}
}

// Solve is a convenience wrapper around NewSolver for settings.Algorithm.
func Solve(ctx context.Context, settings model.Settings, pieces []model.Piece, opts ...Option) (model.Result, error) {
	s, err := NewSolver(settings.Algorithm, settings, opts...)
	if err != nil {
		return model.Result{}, err
	}
	return s.Solve(ctx, pieces)
}
