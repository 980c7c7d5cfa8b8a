package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/robinrobin1706/space-biology/internal/analytics"
	"github.com/robinrobin1706/space-biology/internal/realtime"
	"github.com/robinrobin1706/space-biology/internal/seed"
	"github.com/robinrobin1706/space-biology/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalogue API server",
	Long: `Start the REST API and WebSocket push channel.

An empty store is seeded with the bundled catalogue unless --seed=false.
Recent data points are broadcast to connected clients on the
SPACEBIO_BROADCAST_SCHEDULE cron schedule.

Examples:
  spacebio serve              # Listen on SPACEBIO_ADDR (default :8080)
  spacebio serve --port 3000  # Listen on :3000`,
	RunE: runServe,
}

var (
	servePort int
	serveSeed bool
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides SPACEBIO_ADDR)")
	serveCmd.Flags().BoolVar(&serveSeed, "seed", true, "Seed an empty store with the bundled catalogue")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := newLogger(os.Stderr, levelFromEnv(), true)

	app, err := NewAppContext(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(context.Background()); err != nil {
			logger.Warn("failed to close resources", "error", err)
		}
	}()

	cfg := app.Config
	if servePort > 0 {
		cfg.Addr = fmt.Sprintf(":%d", servePort)
	}

	if serveSeed {
		catalogue, err := seed.Load()
		if err != nil {
			return err
		}
		if _, err := seed.Apply(ctx, app.Store, catalogue, timeNow(), logger); err != nil {
			return err
		}
	}

	service := analytics.NewService(
		app.Store.Experiments,
		app.Store.DataPoints,
		app.Store.Snapshots,
		app.Metrics,
		analytics.NewAggregator(timeNow, cfg.InsightLines()),
		logger,
	)

	hub := realtime.NewHub(realtime.DefaultSendBuffer, logger)
	broadcaster := realtime.NewBroadcaster(hub, app.Store.DataPoints, app.Metrics, cfg.Realtime.Window, logger)

	server := web.NewServer(web.Config{
		Addr:             cfg.Addr,
		ShutdownTimeout:  cfg.ShutdownTimeout,
		QualityThreshold: cfg.QualityThreshold,
	}, app.Store, service, app.Metrics, realtime.Handler(hub, logger), logger)

	if err := broadcaster.Start(cfg.Realtime.Schedule); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		<-broadcaster.Stop().Done()
		return nil
	})

	logger.Info("spacebio started", "addr", cfg.Addr, "store", cfg.Store)
	return g.Wait()
}
