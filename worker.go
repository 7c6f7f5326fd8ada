package gridsearch

import (
	"context"
	"sync"
)

// Query is one start/goal pair to search on a shared grid.
type Query struct {
	Start Position
	Goal  Position
}

// QueryResult pairs a query's outcome with its index in the input slice.
type QueryResult struct {
	Index  int
	Query  Query
	Result Result
	Err    error
}

// SearchAll runs every query against the same grid on a pool of worker
// goroutines and returns the results in input order. The grid is only read,
// so no coordination between workers is needed beyond the channels.
// A query whose start or goal fails validation gets a non-nil Err.
func SearchAll(ctx context.Context, grid *Grid, queries []Query, options ...Option) ([]QueryResult, error) {
	searchOptions := applyOptions(options)
	searcher, err := New(searchOptions.Strategy)
	if err != nil {
		return nil, err
	}

	taskChannel := make(chan int)
	resultChannel := make(chan QueryResult)

	var workers sync.WaitGroup
	for i := 0; i < searchOptions.NumberOfWorkers; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for index := range taskChannel {
				query := queries[index]
				out := QueryResult{Index: index, Query: query}
				if out.Err = grid.Validate(query.Start, query.Goal); out.Err == nil {
					out.Result = searcher.Search(grid, query.Start, query.Goal)
				}
				select {
				case resultChannel <- out:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(taskChannel)
		for index := range queries {
			if ctx.Err() != nil {
				return
			}
			select {
			case taskChannel <- index:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		workers.Wait()
		close(resultChannel)
	}()

	results := make([]QueryResult, len(queries))
	received := 0
	for out := range resultChannel {
		results[out.Index] = out
		received++
	}
	if received < len(queries) {
		return results, ctx.Err()
	}
	return results, nil
}
