package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/screenflow/pkg/api"
	"github.com/matzehuels/screenflow/pkg/config"
	"github.com/matzehuels/screenflow/pkg/engine"
	"github.com/matzehuels/screenflow/pkg/service"
)

// serveCommand creates the serve command for running the HTTP API server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		listen     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the screen graph HTTP API server",
		Long: `Run the screen graph HTTP API server.

The server exposes screens, transitions, path queries, layout results and
rendered diagrams over HTTP. Storage and caching backends are selected via
a TOML config file and environment variables (GRAPH_FILE, MONGO_URI,
REDIS_ADDR); without configuration it uses a local file store and no cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), configPath, listen)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to TOML config file")
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (overrides config)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, configPath, listen string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.Listen = listen
	}

	st, err := cfg.OpenStore(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close(context.Background())

	ca, err := cfg.OpenCache(ctx)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer ca.Close()

	svc, err := service.New(ctx, st, c.Logger)
	if err != nil {
		return err
	}

	srv := api.NewServer(api.Config{
		Service: svc,
		Engine:  engine.New(ca, nil, c.Logger),
		Cache:   ca,
		Logger:  c.Logger,
		Layout: engine.Options{
			OrderingEpochs: cfg.Layout.OrderingEpochs,
			ComponentGap:   cfg.Layout.ComponentGap,
		},
	})

	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("server listening", "addr", cfg.Listen, "store", cfg.Store.Backend, "cache", cfg.Cache.Backend)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		c.Logger.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
