package gridsearch

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var ErrUnknownStrategy = errors.New("unknown search strategy")

// Searcher finds a shortest path between two passable cells of a grid.
// Implementations keep no state between calls and never modify the grid.
type Searcher interface {
	Search(grid *Grid, start, goal Position) Result
}

var (
	_ Searcher = Informed{}
	_ Searcher = FrontierPropagation{}
)

// Strategy names a Searcher implementation.
type Strategy string

const (
	StrategyInformed Strategy = "astar"
	StrategyFrontier Strategy = "frontier"
)

// Strategies lists every known strategy in a stable order.
func Strategies() []Strategy {
	return []Strategy{StrategyInformed, StrategyFrontier}
}

// ParseStrategy accepts a strategy name, case-insensitively, plus a few
// common aliases.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "astar", "a*", "informed":
		return StrategyInformed, nil
	case "frontier", "bfs", "propagation", "backward":
		return StrategyFrontier, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// New returns the Searcher for a strategy.
func New(strategy Strategy) (Searcher, error) {
	switch strategy {
	case StrategyInformed:
		return Informed{}, nil
	case StrategyFrontier:
		return FrontierPropagation{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, string(strategy))
}

// Options defines parameters for Search and SearchAll.
type Options struct {
	Strategy        Strategy
	NumberOfWorkers int
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithStrategy selects the search strategy. The default is StrategyInformed.
func WithStrategy(strategy Strategy) Option {
	return func(options *Options) { options.Strategy = strategy }
}

// WithWorkers specifies how many goroutines SearchAll runs queries on.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{
		Strategy:        StrategyInformed,
		NumberOfWorkers: runtime.NumCPU(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	return searchOptions
}

// Search validates start and goal against grid and runs the selected
// strategy. Only precondition violations are errors; an unreachable goal is
// reported through Result.Found.
func Search(grid *Grid, start, goal Position, options ...Option) (Result, error) {
	searchOptions := applyOptions(options)
	searcher, err := New(searchOptions.Strategy)
	if err != nil {
		return Result{}, err
	}
	if err := grid.Validate(start, goal); err != nil {
		return Result{}, err
	}
	return searcher.Search(grid, start, goal), nil
}
