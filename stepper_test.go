package gridsearch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepper_MatchesSearch(t *testing.T) {
	grids := []struct {
		name        string
		grid        *Grid
		start, goal Position
	}{
		{"blocked center", mustGrid(t, 3, 3, Position{1, 1}), Position{0, 0}, Position{2, 2}},
		{"walled off", mustGrid(t, 3, 4, Position{0, 1}, Position{1, 1}, Position{2, 1}), Position{1, 0}, Position{1, 3}},
		{"same cell", mustGrid(t, 2, 2), Position{1, 1}, Position{1, 1}},
	}
	for _, tc := range grids {
		for _, strategy := range Strategies() {
			t.Run(tc.name+"/"+string(strategy), func(t *testing.T) {
				searcher, err := New(strategy)
				require.NoError(t, err)
				want := searcher.Search(tc.grid, tc.start, tc.goal)

				stepper, err := NewStepper(tc.grid, tc.start, tc.goal, strategy)
				require.NoError(t, err)
				snapshots := stepper.Run()
				require.NotEmpty(t, snapshots)

				got, done := stepper.Result()
				require.True(t, done)
				if diff := cmp.Diff(want, got); diff != "" {
					t.Fatalf("stepper result mismatch (-search +stepper):\n%s", diff)
				}

				last := snapshots[len(snapshots)-1]
				assert.True(t, last.Done)
				assert.Equal(t, want.Found, last.Found)
				assert.Equal(t, want.ExploredCount, last.ExploredCount)
				assert.Equal(t, len(snapshots), last.StepIndex)
			})
		}
	}
}

func TestStepper_InformedSnapshots(t *testing.T) {
	g := mustGrid(t, 1, 3)
	stepper, err := NewStepper(g, Position{0, 0}, Position{0, 2}, StrategyInformed)
	require.NoError(t, err)

	_, done := stepper.Result()
	assert.False(t, done)

	first := stepper.Step()
	assert.Equal(t, Position{0, 0}, first.Current)
	assert.Equal(t, []Position{{0, 0}}, first.Closed)
	assert.Equal(t, []Position{{0, 1}}, first.Open)
	assert.False(t, first.Done)
	assert.Equal(t, 1, first.ExploredCount)

	stepper.Step()
	final := stepper.Step()
	assert.True(t, final.Done)
	assert.True(t, final.Found)
	assert.Equal(t, Path{{0, 0}, {0, 1}, {0, 2}}, final.Path)

	// stepping a finished search does not advance it
	again := stepper.Step()
	assert.Equal(t, final.StepIndex, again.StepIndex)
}

func TestStepper_FrontierGenerations(t *testing.T) {
	g := mustGrid(t, 3, 3)
	stepper, err := NewStepper(g, Position{0, 0}, Position{1, 1}, StrategyFrontier)
	require.NoError(t, err)

	first := stepper.Step()
	assert.Equal(t, []Position{{1, 1}}, first.Closed)
	assert.Equal(t, []Position{{0, 1}, {1, 0}, {1, 2}, {2, 1}}, first.Open)
	assert.Equal(t, 5, first.ExploredCount)

	stepper.Step()
	final := stepper.Step()
	assert.True(t, final.Done)
	require.True(t, final.Found)
	assert.Equal(t, 2, final.Path.Cost())
	assert.Equal(t, 3, final.StepIndex)
}

func TestNewStepper_UnknownStrategy(t *testing.T) {
	_, err := NewStepper(mustGrid(t, 1, 1), Position{}, Position{}, "dfs")
	require.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestStepper_AdvanceReplaysSnapshots(t *testing.T) {
	grids := []struct {
		name        string
		grid        *Grid
		start, goal Position
	}{
		{"blocked center", mustGrid(t, 3, 3, Position{1, 1}), Position{0, 0}, Position{2, 2}},
		{"walled off", mustGrid(t, 3, 4, Position{0, 1}, Position{1, 1}, Position{2, 1}), Position{1, 0}, Position{1, 3}},
		{"open field", mustGrid(t, 5, 6, Position{2, 2}, Position{2, 3}, Position{3, 2}), Position{4, 0}, Position{0, 5}},
	}
	for _, tc := range grids {
		for _, strategy := range Strategies() {
			t.Run(tc.name+"/"+string(strategy), func(t *testing.T) {
				full, err := NewStepper(tc.grid, tc.start, tc.goal, strategy)
				require.NoError(t, err)
				deltas, err := NewStepper(tc.grid, tc.start, tc.goal, strategy)
				require.NoError(t, err)

				open := map[Position]bool{tc.start: true}
				if strategy == StrategyFrontier {
					open = map[Position]bool{tc.goal: true}
				}
				closed := map[Position]bool{}

				for !full.Done() {
					snap := full.Step()
					delta := deltas.Advance()
					require.Equal(t, snap.StepIndex, delta.StepIndex)
					require.Equal(t, snap.Done, delta.Done)
					assert.Equal(t, snap.Current, delta.Current)
					assert.Equal(t, snap.ExploredCount, delta.ExploredCount)

					for _, p := range delta.Closed {
						closed[p] = true
						delete(open, p)
					}
					for _, p := range delta.Opened {
						open[p] = true
					}
					if snap.Done {
						assert.Equal(t, snap.Found, delta.Found)
						assert.Equal(t, snap.Path, delta.Path)
						continue
					}
					if diff := cmp.Diff(snap.Open, sortedKeys(open)); diff != "" {
						t.Fatalf("step %d open mismatch (-snapshot +replayed):\n%s", snap.StepIndex, diff)
					}
					if diff := cmp.Diff(snap.Closed, sortedKeys(closed)); diff != "" {
						t.Fatalf("step %d closed mismatch (-snapshot +replayed):\n%s", snap.StepIndex, diff)
					}
				}
				assert.True(t, deltas.Done())

				// advancing a finished search reports the final state only
				again := deltas.Advance()
				assert.True(t, again.Done)
				assert.Empty(t, again.Opened)
				assert.Empty(t, again.Closed)
			})
		}
	}
}

func TestStepper_AdvanceSizeIsLinear(t *testing.T) {
	// The goal is sealed into its corner, so both strategies exhaust one side.
	g := mustGrid(t, 100, 100, Position{98, 99}, Position{99, 98})
	for _, strategy := range Strategies() {
		t.Run(string(strategy), func(t *testing.T) {
			stepper, err := NewStepper(g, Position{0, 0}, Position{99, 99}, strategy)
			require.NoError(t, err)

			points := 0
			for !stepper.Done() {
				d := stepper.Advance()
				points += len(d.Opened) + len(d.Closed) + len(d.Path)
			}
			res, _ := stepper.Result()
			assert.False(t, res.Found)
			assert.LessOrEqual(t, points, 2*g.Rows()*g.Cols())
		})
	}
}
