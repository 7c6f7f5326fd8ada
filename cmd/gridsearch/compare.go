package main

import (
	"fmt"

	"github.com/pdrpinto/gridsearch/internal/render"
	"github.com/pdrpinto/gridsearch/internal/service"
	"github.com/spf13/cobra"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		in       scenarioFlags
		showGrid bool
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run every strategy on one scenario and print the results side by side",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := in.scenario(cmd)
			if err != nil {
				return err
			}
			responses, err := a.svc.Compare(cmd.Context(), service.Request{Scenario: s})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			theme := render.DefaultTheme()
			for i, resp := range responses {
				if i > 0 {
					fmt.Fprintln(out)
				}
				writeResponse(out, theme, s, resp, showGrid)
			}
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().BoolVar(&showGrid, "grid", false, "render the grid with each path")
	return cmd
}
