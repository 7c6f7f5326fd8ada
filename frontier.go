package gridsearch

import "github.com/pdrpinto/gridsearch/internal"

// FrontierPropagation is the goal-directed, uninformed strategy: a
// breadth-first expansion that starts at the goal and stops when it reaches
// the start. The zero value is ready to use.
type FrontierPropagation struct{}

// Search finds a shortest path from start to goal. start and goal must be
// passable; see Grid.Validate.
func (FrontierPropagation) Search(grid *Grid, start, goal Position) Result {
	run := newFrontierRun(grid, start, goal)
	for !run.done {
		run.step()
	}
	return run.result
}

// discovery is a reached position with its path from the goal (goal first).
type discovery struct {
	position Position
	path     Path
}

// frontierRun holds the working state of one frontier propagation.
type frontierRun struct {
	grid  *Grid
	start Position
	goal  Position

	// pending is kept in discovery order so every generation is processed
	// in the same order on every run.
	pending  []discovery
	explored map[Position]bool

	current Position
	done    bool
	result  Result
	changes *stepChanges
}

func newFrontierRun(grid *Grid, start, goal Position) *frontierRun {
	return &frontierRun{
		grid:     grid,
		start:    start,
		goal:     goal,
		pending:  []discovery{{position: goal, path: Path{goal}}},
		explored: map[Position]bool{goal: true},
		current:  goal,
	}
}

// step processes one whole generation. Positions discovered while the
// generation runs are only examined in the next call, so every position at
// distance k from the goal is checked before any at distance k+1.
func (run *frontierRun) step() {
	if run.done {
		return
	}
	run.changes.reset()
	if len(run.pending) == 0 {
		run.finish(Result{ExploredCount: len(run.explored)})
		return
	}

	generation := run.pending
	var next []discovery
	for _, entry := range generation {
		run.current = entry.position
		run.changes.close(entry.position)
		if entry.position == run.start {
			path := make(Path, len(entry.path))
			copy(path, entry.path)
			internal.Reverse(path)
			run.finish(Result{Path: path, Found: true, ExploredCount: len(run.explored)})
			return
		}
		for _, neighbor := range run.grid.Neighbors(entry.position) {
			if run.explored[neighbor] {
				continue
			}
			run.explored[neighbor] = true
			run.changes.open(neighbor)
			path := make(Path, len(entry.path), len(entry.path)+1)
			copy(path, entry.path)
			next = append(next, discovery{position: neighbor, path: append(path, neighbor)})
		}
	}
	run.pending = next
}

func (run *frontierRun) finish(result Result) {
	run.done = true
	run.result = result
	run.pending = nil
}

func (run *frontierRun) open() map[Position]bool {
	m := make(map[Position]bool, len(run.pending))
	for _, entry := range run.pending {
		m[entry.position] = true
	}
	return m
}

// closed returns the explored positions that have already been expanded.
func (run *frontierRun) closed() map[Position]bool {
	pending := run.open()
	m := make(map[Position]bool, len(run.explored))
	for p := range run.explored {
		if !pending[p] {
			m[p] = true
		}
	}
	return m
}
