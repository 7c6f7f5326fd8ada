package gridsearch

import (
	"container/heap"

	"github.com/pdrpinto/gridsearch/internal"
)

// Informed is the heuristic best-first (A*) strategy with a Manhattan
// distance heuristic. The zero value is ready to use.
type Informed struct{}

// Search finds a shortest path from start to goal. start and goal must be
// passable; see Grid.Validate.
func (Informed) Search(grid *Grid, start, goal Position) Result {
	run := newInformedRun(grid, start, goal)
	for !run.done {
		run.step()
	}
	return run.result
}

// informedRun holds the working state of one A* search. Search drives it to
// completion; Stepper drives it one expansion at a time.
type informedRun struct {
	grid  *Grid
	start Position
	goal  Position

	// Every position is queued at most once: a better score updates the
	// queued item in place. Positions leave openSet only by being closed.
	openSet  PriorityQueue
	queued   map[Position]*PriorityQueueItem
	cameFrom map[Position]Position
	closed   map[Position]bool

	current Position
	done    bool
	result  Result
	changes *stepChanges
}

func newInformedRun(grid *Grid, start, goal Position) *informedRun {
	run := &informedRun{
		grid:     grid,
		start:    start,
		goal:     goal,
		openSet:  make(PriorityQueue, 0),
		queued:   make(map[Position]*PriorityQueueItem),
		cameFrom: make(map[Position]Position),
		closed:   make(map[Position]bool),
		current:  start,
	}
	heap.Init(&run.openSet)
	run.push(&PriorityQueueItem{
		Position: start,
		GScore:   0,
		FCost:    run.heuristic(start),
	})
	return run
}

func (run *informedRun) heuristic(p Position) int {
	return p.Manhattan(run.goal)
}

func (run *informedRun) push(item *PriorityQueueItem) {
	heap.Push(&run.openSet, item)
	run.queued[item.Position] = item
	run.changes.open(item.Position)
}

// step closes one position.
func (run *informedRun) step() {
	if run.done {
		return
	}
	run.changes.reset()
	if run.openSet.Len() == 0 {
		run.finish(Result{ExploredCount: len(run.closed)})
		return
	}

	currentItem := heap.Pop(&run.openSet).(*PriorityQueueItem)
	current := currentItem.Position
	delete(run.queued, current)
	run.current = current
	run.closed[current] = true
	run.changes.close(current)

	if current == run.goal {
		run.finish(Result{
			Path:          internal.ReconstructPath(run.cameFrom, current, run.start),
			Found:         true,
			ExploredCount: len(run.closed),
		})
		return
	}

	for _, neighbor := range run.grid.Neighbors(current) {
		if run.closed[neighbor] {
			continue
		}
		tentativeG := currentItem.GScore + 1
		if item, ok := run.queued[neighbor]; ok {
			if tentativeG >= item.GScore {
				continue
			}
			run.cameFrom[neighbor] = current
			item.GScore = tentativeG
			item.FCost = tentativeG + run.heuristic(neighbor)
			heap.Fix(&run.openSet, item.IndexInQueue)
			continue
		}
		run.cameFrom[neighbor] = current
		run.push(&PriorityQueueItem{
			Position: neighbor,
			GScore:   tentativeG,
			FCost:    tentativeG + run.heuristic(neighbor),
		})
	}
}

func (run *informedRun) finish(result Result) {
	run.done = true
	run.result = result
}

// open returns the queued positions.
func (run *informedRun) open() map[Position]bool {
	m := make(map[Position]bool, len(run.openSet))
	for _, item := range run.openSet {
		m[item.Position] = true
	}
	return m
}
