// Package service is the application layer in front of the search
// strategies. It validates requests, runs them, and logs and traces each
// search. The CLI and the HTTP adapter both go through it.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/internal/ctxlog"
	"github.com/pdrpinto/gridsearch/internal/scenario"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/pdrpinto/gridsearch/internal/service"

// ErrInvalidRequest wraps every validation failure, so adapters can tell a
// bad request from an internal error.
var ErrInvalidRequest = errors.New("invalid search request")

// Request is one search to run. An empty Strategy uses the service default.
type Request struct {
	Scenario scenario.Scenario
	Strategy gridsearch.Strategy
}

// Response is the outcome of one Request.
type Response struct {
	RequestID string
	Strategy  gridsearch.Strategy
	Result    gridsearch.Result
	PathCost  int
	Duration  time.Duration
}

// BatchItem is one entry of a SolveBatch call.
type BatchItem struct {
	Response Response
	Err      error
}

// Service runs search requests.
type Service struct {
	searchers       map[gridsearch.Strategy]gridsearch.Searcher
	defaultStrategy gridsearch.Strategy
	workers         int
	tracer          trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithDefaultStrategy sets the strategy used when a request names none.
func WithDefaultStrategy(strategy gridsearch.Strategy) Option {
	return func(s *Service) { s.defaultStrategy = strategy }
}

// WithWorkers bounds how many requests SolveBatch runs at once.
func WithWorkers(workers int) Option {
	return func(s *Service) { s.workers = workers }
}

// WithTracerProvider replaces the global tracer provider.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(s *Service) { s.tracer = provider.Tracer(tracerName) }
}

// New creates a service that knows every strategy in gridsearch.Strategies.
func New(options ...Option) *Service {
	s := &Service{
		searchers:       make(map[gridsearch.Strategy]gridsearch.Searcher),
		defaultStrategy: gridsearch.StrategyInformed,
		workers:         4,
		tracer:          otel.Tracer(tracerName),
	}
	for _, strategy := range gridsearch.Strategies() {
		searcher, _ := gridsearch.New(strategy)
		s.searchers[strategy] = searcher
	}
	for _, option := range options {
		option(s)
	}
	if s.workers < 1 {
		s.workers = 1
	}
	return s
}

// DefaultStrategy is the strategy used for requests that name none.
func (s *Service) DefaultStrategy() gridsearch.Strategy { return s.defaultStrategy }

func (s *Service) searcher(strategy gridsearch.Strategy) (gridsearch.Strategy, gridsearch.Searcher, error) {
	if strategy == "" {
		strategy = s.defaultStrategy
	}
	searcher, ok := s.searchers[strategy]
	if !ok {
		return strategy, nil, fmt.Errorf("%w: %w: %q", ErrInvalidRequest, gridsearch.ErrUnknownStrategy, string(strategy))
	}
	return strategy, searcher, nil
}

// Solve validates the request and runs it. "No path" is not an error: it
// comes back as a Response whose Result.Found is false.
func (s *Service) Solve(ctx context.Context, req Request) (Response, error) {
	grid, err := validate(req)
	if err != nil {
		return Response{}, err
	}
	return s.solve(ctx, grid, req)
}

func validate(req Request) (*gridsearch.Grid, error) {
	grid, err := req.Scenario.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return grid, nil
}

func (s *Service) solve(ctx context.Context, grid *gridsearch.Grid, req Request) (Response, error) {
	strategy, searcher, err := s.searcher(req.Strategy)
	if err != nil {
		return Response{}, err
	}
	resp := s.observe(ctx, "gridsearch.Search", grid, req, strategy, func(trace.Span) gridsearch.Result {
		return searcher.Search(grid, req.Scenario.Start, req.Scenario.Goal)
	})
	return resp, nil
}

// observe runs search under a new request id, a span named spanName and the
// request's log lines, and wraps its result in a Response.
func (s *Service) observe(
	ctx context.Context,
	spanName string,
	grid *gridsearch.Grid,
	req Request,
	strategy gridsearch.Strategy,
	search func(span trace.Span) gridsearch.Result,
) Response {
	requestID := uuid.NewString()
	logger := ctxlog.FromContext(ctx).With("request_id", requestID, "strategy", string(strategy))

	_, span := s.tracer.Start(ctx, spanName, trace.WithAttributes(
		attribute.String("gridsearch.request_id", requestID),
		attribute.String("gridsearch.strategy", string(strategy)),
		attribute.String("gridsearch.scenario", req.Scenario.Name),
		attribute.Int("gridsearch.rows", grid.Rows()),
		attribute.Int("gridsearch.cols", grid.Cols()),
	))
	defer span.End()

	logger.Debug("Search started",
		"op", spanName,
		"scenario", req.Scenario.Name,
		"start", req.Scenario.Start.String(),
		"goal", req.Scenario.Goal.String(),
	)
	began := time.Now()
	result := search(span)
	elapsed := time.Since(began)

	span.SetAttributes(
		attribute.Bool("gridsearch.found", result.Found),
		attribute.Int("gridsearch.explored", result.ExploredCount),
		attribute.Int("gridsearch.path_cost", result.Path.Cost()),
	)
	span.SetStatus(codes.Ok, "")

	if result.Found {
		logger.Info("Path found",
			"explored", result.ExploredCount,
			"path_cost", result.Path.Cost(),
			"dur", elapsed,
		)
	} else {
		logger.Info("No path found", "explored", result.ExploredCount, "dur", elapsed)
	}

	return Response{
		RequestID: requestID,
		Strategy:  strategy,
		Result:    result,
		PathCost:  result.Path.Cost(),
		Duration:  elapsed,
	}
}

// TraceResponse is the outcome of Trace: the final Response plus the change
// made by every step.
type TraceResponse struct {
	Response
	Steps []gridsearch.StepDelta
}

// Trace validates the request and runs it step by step, recording what each
// step opened and closed. It is logged and traced like Solve.
func (s *Service) Trace(ctx context.Context, req Request) (TraceResponse, error) {
	grid, err := validate(req)
	if err != nil {
		return TraceResponse{}, err
	}
	strategy, _, err := s.searcher(req.Strategy)
	if err != nil {
		return TraceResponse{}, err
	}
	stepper, err := gridsearch.NewStepper(grid, req.Scenario.Start, req.Scenario.Goal, strategy)
	if err != nil {
		return TraceResponse{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	var steps []gridsearch.StepDelta
	resp := s.observe(ctx, "gridsearch.Trace", grid, req, strategy, func(span trace.Span) gridsearch.Result {
		for !stepper.Done() {
			steps = append(steps, stepper.Advance())
		}
		span.SetAttributes(attribute.Int("gridsearch.steps", len(steps)))
		result, _ := stepper.Result()
		return result
	})
	return TraceResponse{Response: resp, Steps: steps}, nil
}

// Compare runs every strategy on the same request concurrently. The grid is
// built once and shared read-only by all of them. Responses follow the order
// of gridsearch.Strategies.
func (s *Service) Compare(ctx context.Context, req Request) ([]Response, error) {
	grid, err := validate(req)
	if err != nil {
		return nil, err
	}

	strategies := gridsearch.Strategies()
	responses := make([]Response, len(strategies))
	g, gctx := errgroup.WithContext(ctx)
	for i, strategy := range strategies {
		g.Go(func() error {
			r := req
			r.Strategy = strategy
			resp, err := s.solve(gctx, grid, r)
			if err != nil {
				return err
			}
			responses[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return responses, nil
}

// SolveBatch runs requests on at most the configured number of workers.
// Each item carries its own error; the call itself only fails when ctx is
// done before every request has run.
func (s *Service) SolveBatch(ctx context.Context, reqs []Request) ([]BatchItem, error) {
	items := make([]BatchItem, len(reqs))
	g := new(errgroup.Group)
	g.SetLimit(s.workers)

	for i, req := range reqs {
		if err := ctx.Err(); err != nil {
			_ = g.Wait()
			return items, err
		}
		g.Go(func() error {
			resp, err := s.Solve(ctx, req)
			items[i] = BatchItem{Response: resp, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return items, ctx.Err()
}
