// Package server wires the directory service together: it opens the
// configured key-value backend, builds repositories and services, reconciles
// the indexes and runs the HTTP API, the gRPC health endpoint and the
// background scheduler until the process is signalled.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/freelancehub/internal/logging"
	"github.com/dmitrijs2005/freelancehub/internal/server/config"
	"github.com/dmitrijs2005/freelancehub/internal/server/httpapi"
	"github.com/dmitrijs2005/freelancehub/internal/server/kv"
	"github.com/dmitrijs2005/freelancehub/internal/server/metrics"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/directory"
	"github.com/dmitrijs2005/freelancehub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/freelancehub/internal/server/scheduler"
	"github.com/dmitrijs2005/freelancehub/internal/server/services"

	gs "github.com/dmitrijs2005/freelancehub/internal/server/grpc"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	store     kv.Store
	metrics   *metrics.Metrics
	directory *directory.Directory
	debug     *services.DebugService
	router    http.Handler
	grpc      *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.New(c.LogLevel, c.LogFormat, os.Stdout)

	raw, err := kv.Open(ctx, kv.Options{
		Backend:     c.StoreBackend,
		DataDir:     c.DataDir,
		DatabaseDSN: c.DatabaseDSN,
		RedisURL:    c.RedisURL,
	})
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	m := metrics.New()
	if ps, ok := raw.(*kv.PebbleStore); ok {
		if err := m.Register(metrics.NewPebbleCollector(ps.Metrics)); err != nil {
			_ = raw.Close()
			return nil, fmt.Errorf("metrics init error: %w", err)
		}
	}
	store := kv.Instrument(raw, m)

	rm := repomanager.NewKVRepositoryManager(store)
	dir := directory.New(rm.Freelancers(), rm.Clients(), rm.Indexes(), c.DirectoryScanFallback, logger)
	ds := services.NewDebugService(rm, logger)

	h := httpapi.NewHandler(
		services.NewFreelancerService(rm, logger),
		services.NewClientService(rm, logger),
		services.NewJobService(rm, logger),
		services.NewAuthService(dir, c, logger),
		ds,
		logger,
	)
	router := httpapi.NewRouter(h, httpapi.RouterOptions{
		Prefix:    c.RoutePrefix,
		JWTSecret: []byte(c.SecretKey),
		Metrics:   m,
	}, logger)

	logger.Info(ctx, "store opened", "backend", c.StoreBackend)

	return &App{
		config:    c,
		logger:    logger,
		store:     store,
		metrics:   m,
		directory: dir,
		debug:     ds,
		router:    router,
		grpc:      gs.NewGRPCServer(c.GRPCAddr, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// prepare seeds demo data when asked and reconciles the indexes once before
// serving, so numbers written by an older build resolve through the index.
func (app *App) prepare(ctx context.Context) error {
	if app.config.SeedDemoData {
		out, err := app.debug.InitDemoData(ctx)
		if err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		app.logger.Info(ctx, "demo data", "created", out.Created)
	}

	scheduler.RunReindex(ctx, app.directory, app.metrics, app.logger)
	scheduler.ProbeHealth(ctx, app.store, app.grpc, app.logger)
	return nil
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.HTTPAddr, app.router, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpc.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	defer func() {
		if err := app.store.Close(); err != nil {
			app.logger.Error(ctx, "store close", "error", err)
		}
	}()

	if err := app.prepare(ctx); err != nil {
		return err
	}

	sched := scheduler.New(app.logger)
	if err := sched.AddHealthProbe(ctx, app.config.HealthCheckInterval, app.store, app.grpc); err != nil {
		return err
	}
	if err := sched.AddReindex(ctx, app.config.ReindexInterval, app.directory, app.metrics); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.GRPCAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
	return nil
}
