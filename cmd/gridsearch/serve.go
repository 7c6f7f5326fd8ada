package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/pdrpinto/gridsearch/internal/ctxlog"
	"github.com/pdrpinto/gridsearch/internal/httpapi"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Addr
			}
			ctx := cmd.Context()
			logger := ctxlog.FromContext(ctx)
			srv := httpapi.NewServer(addr, httpapi.New(a.svc, logger), logger)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", addr, "strategy", a.cfg.Strategy)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
