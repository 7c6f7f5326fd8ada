package gridsearch

import "sort"

// StepSnapshot exposes the per-iteration state of a search. Open and Closed
// are sorted in row-major order.
type StepSnapshot struct {
	Current       Position
	Open          []Position
	Closed        []Position
	Done          bool
	Found         bool
	Path          Path
	ExploredCount int
	StepIndex     int
}

// StepDelta is what one step changed: the positions it added to the frontier
// (Opened) and the positions it expanded (Closed), both sorted in row-major
// order. Replaying the deltas of a run rebuilds every StepSnapshot, while the
// total size of all deltas stays linear in the number of cells.
type StepDelta struct {
	Current       Position
	Opened        []Position
	Closed        []Position
	Done          bool
	Found         bool
	Path          Path
	ExploredCount int
	StepIndex     int
}

// stepChanges collects the positions opened and closed by the current step.
// A nil *stepChanges records nothing, which is how Search runs.
type stepChanges struct {
	opened []Position
	closed []Position
}

func (c *stepChanges) reset() {
	if c != nil {
		c.opened, c.closed = nil, nil
	}
}

func (c *stepChanges) open(p Position) {
	if c != nil {
		c.opened = append(c.opened, p)
	}
}

func (c *stepChanges) close(p Position) {
	if c != nil {
		c.closed = append(c.closed, p)
	}
}

// Stepper runs a search one step at a time to drive UIs or debugging tools.
// For StrategyInformed a step closes one position; for StrategyFrontier a
// step processes one whole generation. Running a Stepper until Done yields
// the same Result as the strategy's Search.
//
// Step returns full snapshots and costs time proportional to the frontier
// size on every call; Advance returns only what changed.
type Stepper struct {
	strategy  Strategy
	informed  *informedRun
	frontier  *frontierRun
	changes   *stepChanges
	stepCount int
}

// NewStepper creates a stepper for the given strategy. Like Search it does
// not validate start and goal.
func NewStepper(grid *Grid, start, goal Position, strategy Strategy) (*Stepper, error) {
	s := &Stepper{strategy: strategy, changes: &stepChanges{}}
	switch strategy {
	case StrategyInformed:
		s.informed = newInformedRun(grid, start, goal)
		s.informed.changes = s.changes
	case StrategyFrontier:
		s.frontier = newFrontierRun(grid, start, goal)
		s.frontier.changes = s.changes
	default:
		_, err := New(strategy)
		return nil, err
	}
	return s, nil
}

// Strategy returns the strategy this stepper runs.
func (s *Stepper) Strategy() Strategy { return s.strategy }

// Done reports whether the search has terminated.
func (s *Stepper) Done() bool {
	if s.informed != nil {
		return s.informed.done
	}
	return s.frontier.done
}

func (s *Stepper) advance() {
	s.stepCount++
	if s.informed != nil {
		s.informed.step()
	} else {
		s.frontier.step()
	}
}

// Step advances the search and returns a snapshot. Once the search is done
// further calls return the final snapshot without advancing.
func (s *Stepper) Step() StepSnapshot {
	if !s.Done() {
		s.advance()
	}
	return s.snapshot()
}

// Advance advances the search and returns the changes made by that step.
// Once the search is done further calls return the final state with no
// opened or closed positions.
func (s *Stepper) Advance() StepDelta {
	var opened, closed []Position
	if !s.Done() {
		s.advance()
		opened = sortPositions(s.changes.opened)
		closed = sortPositions(s.changes.closed)
	}
	current, done, result := s.status()
	return StepDelta{
		Current:       current,
		Opened:        opened,
		Closed:        closed,
		Done:          done,
		Found:         result.Found,
		Path:          clonePath(result.Path),
		ExploredCount: result.ExploredCount,
		StepIndex:     s.stepCount,
	}
}

// Result returns the final result, or false while the search is still running.
func (s *Stepper) Result() (Result, bool) {
	if !s.Done() {
		return Result{}, false
	}
	if s.informed != nil {
		return s.informed.result, true
	}
	return s.frontier.result, true
}

// Run steps until done and returns every snapshot taken.
func (s *Stepper) Run() []StepSnapshot {
	var snapshots []StepSnapshot
	for !s.Done() {
		snapshots = append(snapshots, s.Step())
	}
	return snapshots
}

// status returns the current position, whether the search is done, and the
// result so far. Before termination only ExploredCount is set.
func (s *Stepper) status() (Position, bool, Result) {
	if s.informed != nil {
		run := s.informed
		if run.done {
			return run.current, true, run.result
		}
		return run.current, false, Result{ExploredCount: len(run.closed)}
	}
	run := s.frontier
	if run.done {
		return run.current, true, run.result
	}
	return run.current, false, Result{ExploredCount: len(run.explored)}
}

func (s *Stepper) snapshot() StepSnapshot {
	var open, closed map[Position]bool
	if s.informed != nil {
		open, closed = s.informed.open(), s.informed.closed
	} else {
		open, closed = s.frontier.open(), s.frontier.closed()
	}
	current, done, result := s.status()
	return StepSnapshot{
		Current:       current,
		Open:          sortedKeys(open),
		Closed:        sortedKeys(closed),
		Done:          done,
		Found:         result.Found,
		Path:          clonePath(result.Path),
		ExploredCount: result.ExploredCount,
		StepIndex:     s.stepCount,
	}
}

func sortedKeys(m map[Position]bool) []Position {
	keys := make([]Position, 0, len(m))
	for p, ok := range m {
		if ok {
			keys = append(keys, p)
		}
	}
	return sortPositions(keys)
}

// sortPositions sorts ps in place in row-major order and returns it.
func sortPositions(ps []Position) []Position {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Less(ps[j]) })
	return ps
}

func clonePath(p Path) Path {
	if p == nil {
		return nil
	}
	c := make(Path, len(p))
	copy(c, p)
	return c
}
