package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/vasudevanv/porespy/internal/api"
	"github.com/vasudevanv/porespy/pkg/cache"
	"github.com/vasudevanv/porespy/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	redisURL string // redis cache backend
	noCache  bool   // disable caching entirely
}

// serveCommand creates the serve command running the HTTP packing API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}
	if c.Config.Addr != "" {
		opts.addr = c.Config.Addr
	}
	opts.redisURL = c.Config.RedisURL

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP packing API",
		Long: `Run the HTTP packing API.

Endpoints:
  POST /v1/pack        run the packing pipeline
  GET  /v1/formats     list export formats
  GET  /v1/generators  list input generators
  GET  /healthz        health check

With --redis, results are cached in redis so multiple replicas share one
cache; otherwise the local file cache is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", opts.redisURL, "redis URL for the shared cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	store, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	server := &http.Server{
		Addr:              opts.addr,
		Handler:           api.NewServer(runner, c.Logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("serving packing API", "addr", opts.addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// serveCache picks the cache backend for the server: redis when configured,
// the local file cache otherwise.
func (c *CLI) serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisURL != "" {
		store, err := cache.NewRedisCache(ctx, opts.redisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache", "url", opts.redisURL)
		return store, nil
	}
	return c.newCache(false)
}
