package main

import (
	"fmt"
	"os"

	"github.com/pdrpinto/gridsearch/internal/render"
	"github.com/pdrpinto/gridsearch/internal/scenario"
	"github.com/pdrpinto/gridsearch/internal/service"
	"github.com/spf13/cobra"
)

func newRandomCmd(a *app) *cobra.Command {
	var (
		opts     = scenario.DefaultRandomOptions()
		strategy string
		showGrid bool
		outFile  string
	)
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Generate a grid with clustered walls and solve it",
		Example: `  gridsearch random --seed 42 --grid
  gridsearch random --rows 10 --cols 10 --density 0.4 --out walls.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := parseStrategyFlag(strategy)
			if err != nil {
				return err
			}
			s, err := scenario.Random(opts)
			if err != nil {
				return err
			}
			if outFile != "" {
				data, err := scenario.MarshalYAML([]scenario.Scenario{s})
				if err != nil {
					return err
				}
				if err := os.WriteFile(outFile, data, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", outFile, err)
				}
			}

			resp, err := a.svc.Solve(cmd.Context(), service.Request{Scenario: s, Strategy: st})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Start: %s Goal: %s Blocked: %d\n", s.Start, s.Goal, len(s.Blocked))
			writeResponse(out, render.DefaultTheme(), s, resp, showGrid)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&opts.Rows, "rows", opts.Rows, "number of rows")
	flags.IntVar(&opts.Cols, "cols", opts.Cols, "number of columns")
	flags.IntVar(&opts.Clusters, "clusters", opts.Clusters, "number of wall clusters")
	flags.IntVar(&opts.Steps, "steps", opts.Steps, "random walk length per cluster")
	flags.Float64Var(&opts.Density, "density", opts.Density, "chance that a walked cell becomes a wall")
	flags.Uint64Var(&opts.Seed, "seed", 1, "random seed")
	flags.StringVar(&strategy, "strategy", "", "astar|frontier (default from config)")
	flags.BoolVar(&showGrid, "grid", false, "render the grid with the path")
	flags.StringVarP(&outFile, "out", "o", "", "also write the generated scenario as YAML")
	return cmd
}
