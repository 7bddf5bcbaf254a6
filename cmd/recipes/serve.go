package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rohankatakam/recipegraph/internal/config"
	"github.com/rohankatakam/recipegraph/internal/metrics"
	"github.com/rohankatakam/recipegraph/internal/recipe"
	"github.com/rohankatakam/recipegraph/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Starts the REST API on the configured listen address (default :3000).
The Neo4j connection pool is created once and shared by every request.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("listen", "", "listen address (overrides server.listen_addr)")
	serveCmd.Flags().Bool("open-docs", false, "open the interactive API docs in a browser at startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.Server.ListenAddr = listen
	}

	client, err := connect(ctx, config.ValidationContextServe)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Close(closeCtx); err != nil {
			logger.WithError(err).Warn("failed to close neo4j client")
		}
	}()

	recorder := metrics.NewRecorder()
	client.SetObserver(recorder)

	srv, err := server.New(server.Config{
		ListenAddr:   cfg.Server.ListenAddr,
		CORSOrigins:  cfg.Server.CORSOrigins,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		RateLimit:    cfg.Server.RateLimit,
		RateBurst:    cfg.Server.RateBurst,
		Version:      Version,
	}, server.Deps{
		Recipes: recipe.NewService(client, logger),
		Health:  client,
		Metrics: recorder,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})
	g.Go(func() error {
		client.WatchPoolHealth(gctx, cfg.Health.Interval)
		return nil
	})
	if openDocs, _ := cmd.Flags().GetBool("open-docs"); openDocs {
		target := docsURL(cfg.Server.ListenAddr)
		if err := browser.OpenURL(target); err != nil {
			logger.WithError(err).WithField("url", target).Warn("failed to open browser")
		}
	}

	return g.Wait()
}

// docsURL points at the huma docs page for a listen address such as ":3000"
func docsURL(listenAddr string) string {
	host, port, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return "http://localhost:3000/docs"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/docs"
}
