package main

import (
	"fmt"
	"io"

	"github.com/pdrpinto/gridsearch/internal/render"
	"github.com/pdrpinto/gridsearch/internal/scenario"
	"github.com/pdrpinto/gridsearch/internal/service"
	"github.com/spf13/cobra"
)

func newSolveCmd(a *app) *cobra.Command {
	var (
		in       scenarioFlags
		strategy string
		showGrid bool
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find a shortest path for one or more scenarios",
		Example: `  gridsearch solve --rows 3 --cols 3 --block 1,1 --start 0,0 --goal 2,2
  gridsearch solve --scenario maze.hcl --name detour --strategy frontier --grid
  gridsearch solve --scenario ./scenarios`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := parseStrategyFlag(strategy)
			if err != nil {
				return err
			}
			scenarios, err := in.scenarios(cmd)
			if err != nil {
				return err
			}
			switch {
			case len(scenarios) == 1:
				if err := in.override(&scenarios[0]); err != nil {
					return err
				}
			case in.start != "" || in.goal != "":
				return fmt.Errorf("%w: %s holds %d scenarios", errOverrideNeedsOne, in.path, len(scenarios))
			}

			reqs := make([]service.Request, len(scenarios))
			for i, s := range scenarios {
				reqs[i] = service.Request{Scenario: s, Strategy: st}
			}
			items, err := a.svc.SolveBatch(cmd.Context(), reqs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			theme := render.DefaultTheme()
			var failed int
			for i, item := range items {
				if len(items) > 1 {
					fmt.Fprintf(out, "== %s\n", scenarios[i].Name)
				}
				if item.Err != nil {
					failed++
					fmt.Fprintf(out, "Invalid scenario: %v\n", item.Err)
					continue
				}
				writeResponse(out, theme, scenarios[i], item.Response, showGrid)
			}
			if failed > 0 {
				if len(items) == 1 {
					return items[0].Err
				}
				return fmt.Errorf("%d of %d scenarios were invalid", failed, len(items))
			}
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&strategy, "strategy", "", "astar|frontier (default from config)")
	cmd.Flags().BoolVar(&showGrid, "grid", false, "render the grid with the path")
	return cmd
}

func writeResponse(out io.Writer, theme *render.Theme, s scenario.Scenario, resp service.Response, showGrid bool) {
	if showGrid {
		g, err := s.Grid()
		if err == nil {
			fmt.Fprintln(out, theme.Report(resp.Strategy, g, s.Start, s.Goal, resp.Result))
			return
		}
	}
	fmt.Fprintf(out, "Strategy: %s\n", resp.Strategy)
	fmt.Fprint(out, render.Text(resp.Result))
}
