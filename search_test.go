package gridsearch

import (
	"container/heap"
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var strategies = []struct {
	name     string
	searcher Searcher
}{
	{"informed", Informed{}},
	{"frontier", FrontierPropagation{}},
}

func mustGrid(t *testing.T, rows, cols int, blocked ...Position) *Grid {
	t.Helper()
	g, err := NewGrid(rows, cols, blocked...)
	require.NoError(t, err)
	return g
}

// bfsDistance is the unweighted shortest distance from start to goal, or -1.
func bfsDistance(g *Grid, start, goal Position) int {
	dist := map[Position]int{start: 0}
	queue := []Position{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == goal {
			return dist[cur]
		}
		for _, n := range g.Neighbors(cur) {
			if _, seen := dist[n]; !seen {
				dist[n] = dist[cur] + 1
				queue = append(queue, n)
			}
		}
	}
	return -1
}

func TestSearch_AroundBlockedCenter(t *testing.T) {
	g := mustGrid(t, 3, 3, Position{1, 1})
	want := Path{{0, 0}, {0, 1}, {0, 2}, {1, 2}, {2, 2}}

	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			res := s.searcher.Search(g, Position{0, 0}, Position{2, 2})
			require.True(t, res.Found)
			assert.Equal(t, 4, res.Path.Cost())
			assert.True(t, res.Path.Valid(g))
			if diff := cmp.Diff(want, res.Path); diff != "" {
				t.Errorf("path mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, 8, res.ExploredCount)
		})
	}
}

func TestSearch_StraightCorridor(t *testing.T) {
	g := mustGrid(t, 1, 5)
	want := Path{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}}

	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			res := s.searcher.Search(g, Position{0, 0}, Position{0, 4})
			require.True(t, res.Found)
			if diff := cmp.Diff(want, res.Path); diff != "" {
				t.Errorf("path mismatch (-want +got):\n%s", diff)
			}
			assert.LessOrEqual(t, res.ExploredCount, 5)
		})
	}
}

func TestSearch_StartEqualsGoal(t *testing.T) {
	g := mustGrid(t, 4, 4, Position{1, 1})
	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			res := s.searcher.Search(g, Position{2, 3}, Position{2, 3})
			require.True(t, res.Found)
			assert.Equal(t, Path{{2, 3}}, res.Path)
			assert.Equal(t, 0, res.Path.Cost())
			assert.GreaterOrEqual(t, res.ExploredCount, 1)
		})
	}
}

func TestSearch_WallSeparatesStartAndGoal(t *testing.T) {
	// Column 1 is a full wall: three cells on the start side, six on the goal side.
	g := mustGrid(t, 3, 4, Position{0, 1}, Position{1, 1}, Position{2, 1})
	start, goal := Position{1, 0}, Position{1, 3}

	informed := Informed{}.Search(g, start, goal)
	assert.False(t, informed.Found)
	assert.Nil(t, informed.Path)
	assert.Equal(t, 3, informed.ExploredCount, "informed search explores the start's side")

	frontier := FrontierPropagation{}.Search(g, start, goal)
	assert.False(t, frontier.Found)
	assert.Nil(t, frontier.Path)
	assert.Equal(t, 6, frontier.ExploredCount, "frontier propagation explores the goal's side")
}

func TestInformed_TieBreakIsPositional(t *testing.T) {
	// (0,1) and (1,0) share the same f; the row-major smaller one wins.
	g := mustGrid(t, 2, 2)
	res := Informed{}.Search(g, Position{0, 0}, Position{1, 1})
	require.True(t, res.Found)
	assert.Equal(t, Path{{0, 0}, {0, 1}, {1, 1}}, res.Path)
	assert.Equal(t, 4, res.ExploredCount)
}

func TestPriorityQueue_Less(t *testing.T) {
	q := PriorityQueue{
		{Position: Position{1, 0}, FCost: 4},
		{Position: Position{0, 2}, FCost: 4},
		{Position: Position{0, 1}, FCost: 5},
		{Position: Position{0, 2}, FCost: 3},
	}
	assert.True(t, q.Less(1, 0), "same f, lower row first")
	assert.True(t, q.Less(0, 2), "lower f first")
	assert.True(t, q.Less(3, 1), "lower f beats same position")
	assert.False(t, q.Less(0, 1))
}

func TestPriorityQueue_FixReordersUpdatedItem(t *testing.T) {
	q := make(PriorityQueue, 0)
	a := &PriorityQueueItem{Position: Position{0, 0}, GScore: 1, FCost: 5}
	b := &PriorityQueueItem{Position: Position{0, 1}, GScore: 3, FCost: 6}
	c := &PriorityQueueItem{Position: Position{2, 2}, GScore: 4, FCost: 7}
	for _, item := range []*PriorityQueueItem{a, b, c} {
		heap.Push(&q, item)
	}

	c.GScore, c.FCost = 1, 4
	heap.Fix(&q, c.IndexInQueue)

	first := heap.Pop(&q).(*PriorityQueueItem)
	assert.Same(t, c, first)
	assert.Equal(t, -1, first.IndexInQueue)
	assert.Equal(t, 1, first.GScore)
	assert.Same(t, a, heap.Pop(&q).(*PriorityQueueItem))
}

func TestInformed_QueueHoldsEachPositionOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		g := randomGrid(rng, 8, 8, 0.25)
		start, ok := randomFreeCell(rng, g)
		if !ok {
			continue
		}
		goal, _ := randomFreeCell(rng, g)

		run := newInformedRun(g, start, goal)
		for !run.done {
			run.step()
			require.Len(t, run.queued, run.openSet.Len())
			for idx, item := range run.openSet {
				require.Equal(t, idx, item.IndexInQueue)
				require.Same(t, item, run.queued[item.Position])
				require.False(t, run.closed[item.Position], "closed position %s still queued", item.Position)
				require.Equal(t, item.GScore+item.Position.Manhattan(goal), item.FCost)
			}
		}
		want := Informed{}.Search(g, start, goal)
		assert.Equal(t, want, run.result)
	}
}

func randomGrid(rng *rand.Rand, rows, cols int, density float64) *Grid {
	var blocked []Position
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if rng.Float64() < density {
				blocked = append(blocked, Position{r, c})
			}
		}
	}
	g, _ := NewGrid(rows, cols, blocked...)
	return g
}

func randomFreeCell(rng *rand.Rand, g *Grid) (Position, bool) {
	for i := 0; i < 100; i++ {
		p := Position{rng.Intn(g.Rows()), rng.Intn(g.Cols())}
		if g.Passable(p) {
			return p, true
		}
	}
	return Position{}, false
}

func TestSearch_MatchesBFSBaseline(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		g := randomGrid(rng, 2+rng.Intn(12), 2+rng.Intn(12), 0.3)
		start, ok1 := randomFreeCell(rng, g)
		goal, ok2 := randomFreeCell(rng, g)
		if !ok1 || !ok2 {
			continue
		}
		want := bfsDistance(g, start, goal)

		for _, s := range strategies {
			res := s.searcher.Search(g, start, goal)
			name := fmt.Sprintf("case %d %s %s->%s", i, s.name, start, goal)
			if want < 0 {
				assert.False(t, res.Found, name)
				assert.Nil(t, res.Path, name)
				continue
			}
			require.True(t, res.Found, name)
			assert.Equal(t, want, res.Path.Cost(), name)
			assert.True(t, res.Path.Valid(g), name)
			assert.Equal(t, start, res.Path[0], name)
			assert.Equal(t, goal, res.Path[len(res.Path)-1], name)
		}
	}
}

func TestSearch_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := randomGrid(rng, 15, 15, 0.25)
	start, _ := randomFreeCell(rng, g)
	goal, _ := randomFreeCell(rng, g)

	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			first := s.searcher.Search(g, start, goal)
			for i := 0; i < 10; i++ {
				if diff := cmp.Diff(first, s.searcher.Search(g, start, goal)); diff != "" {
					t.Fatalf("run %d differs (-first +got):\n%s", i, diff)
				}
			}
		})
	}
}

func TestSearch_ConcurrentOnSharedGrid(t *testing.T) {
	g := mustGrid(t, 20, 20, Position{5, 5}, Position{5, 6}, Position{5, 7}, Position{10, 3})
	start, goal := Position{0, 0}, Position{19, 19}
	want := map[string]Result{}
	for _, s := range strategies {
		want[s.name] = s.searcher.Search(g, start, goal)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 32; i++ {
		s := strategies[i%len(strategies)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			if diff := cmp.Diff(want[s.name], s.searcher.Search(g, start, goal)); diff != "" {
				errs <- diff
			}
		}()
	}
	wg.Wait()
	close(errs)
	for diff := range errs {
		t.Errorf("concurrent search differs:\n%s", diff)
	}
}

func TestSearchFunc_ValidatesAndSelectsStrategy(t *testing.T) {
	g := mustGrid(t, 3, 3, Position{1, 1})

	_, err := Search(g, Position{1, 1}, Position{2, 2})
	require.ErrorIs(t, err, ErrBlockedStart)

	_, err = Search(g, Position{0, 0}, Position{2, 2}, WithStrategy("dijkstra"))
	require.ErrorIs(t, err, ErrUnknownStrategy)

	res, err := Search(g, Position{0, 0}, Position{2, 2}, WithStrategy(StrategyFrontier))
	require.NoError(t, err)
	assert.Equal(t, FrontierPropagation{}.Search(g, Position{0, 0}, Position{2, 2}), res)
}

func TestParseStrategy(t *testing.T) {
	for in, want := range map[string]Strategy{
		"":         StrategyInformed,
		"A*":       StrategyInformed,
		" astar ":  StrategyInformed,
		"frontier": StrategyFrontier,
		"BFS":      StrategyFrontier,
	} {
		got, err := ParseStrategy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseStrategy("greedy")
	require.ErrorIs(t, err, ErrUnknownStrategy)

	for _, s := range Strategies() {
		searcher, err := New(s)
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	}
}

func TestSearchAll(t *testing.T) {
	g := mustGrid(t, 3, 3, Position{1, 1})
	queries := []Query{
		{Start: Position{0, 0}, Goal: Position{2, 2}},
		{Start: Position{1, 1}, Goal: Position{2, 2}},
		{Start: Position{2, 0}, Goal: Position{2, 0}},
		{Start: Position{0, 2}, Goal: Position{2, 0}},
	}

	results, err := SearchAll(context.Background(), g, queries, WithWorkers(3), WithStrategy(StrategyFrontier))
	require.NoError(t, err)
	require.Len(t, results, len(queries))

	for i, out := range results {
		assert.Equal(t, i, out.Index)
		assert.Equal(t, queries[i], out.Query)
	}
	assert.Equal(t, 4, results[0].Result.Path.Cost())
	require.ErrorIs(t, results[1].Err, ErrBlockedStart)
	assert.Equal(t, Path{{2, 0}}, results[2].Result.Path)
	assert.Equal(t, 4, results[3].Result.Path.Cost())
}

func TestSearchAll_Canceled(t *testing.T) {
	g := mustGrid(t, 3, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	queries := make([]Query, 50)
	results, err := SearchAll(ctx, g, queries, WithWorkers(2))
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, len(queries))
	for _, r := range results {
		assert.Zero(t, r.Result.ExploredCount, "no query runs on a canceled context")
	}
}
