// Package server initializes and runs the pagescout application: it opens
// the database, applies migrations, wires the services and runs the HTTP
// API and the gRPC health endpoint until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/pagescout/internal/logging"
	"github.com/dmitrijs2005/pagescout/internal/server/auth"
	"github.com/dmitrijs2005/pagescout/internal/server/config"
	"github.com/dmitrijs2005/pagescout/internal/server/extraction"
	"github.com/dmitrijs2005/pagescout/internal/server/fetcher"
	"github.com/dmitrijs2005/pagescout/internal/server/httpapi"
	"github.com/dmitrijs2005/pagescout/internal/server/metrics"
	"github.com/dmitrijs2005/pagescout/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/pagescout/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	gs "github.com/dmitrijs2005/pagescout/internal/server/grpc"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	httpServer  *httpapi.Server
	grpcServer  *gs.GRPCServer
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	f, err := fetcher.New(fetcher.Options{
		ProxyURL: c.RenderProxyURL,
		APIKey:   c.RenderProxyAPIKey,
		Timeout:  c.FetchTimeout,
		MaxBytes: c.MaxContentBytes,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	x := extraction.New(extraction.Options{
		Mock:    c.LLMMock,
		BaseURL: c.LLMBaseURL,
		APIKey:  c.LLMAPIKey,
		Model:   c.LLMModel,
		Timeout: c.LLMTimeout,
	})
	if c.LLMMock {
		logger.Warn(context.Background(), "LLM mock mode is on, analyze returns a canned record")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	rm := repomanager.NewPostgresRepositoryManager()
	tokens := auth.NewTokenService([]byte(c.SecretKey), c.TokenValidityDuration)

	hs := httpapi.New(httpapi.Deps{
		Users:          services.NewUserService(db, rm, tokens, c.PasswordHashCost),
		Agents:         services.NewAgentService(db, rm, c),
		Products:       services.NewProductService(db, rm),
		Analyzer:       services.NewAnalyzeService(tokens, f, x, logger, m, analyzeTimeout(c.RequestTimeout)),
		Tokens:         tokens,
		Ping:           db.PingContext,
		Logger:         logger,
		Metrics:        m,
		Gatherer:       reg,
		RequestTimeout: c.RequestTimeout,
	})

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		repomanager: rm,
		httpServer:  hs,
		grpcServer:  gs.NewGRPCServer(c.GRPCAddr, logger, db.PingContext),
	}, nil
}

const analyzeHeadroom = 5 * time.Second

// analyzeTimeout bounds an analyze run strictly below the router's request
// timeout, so a run that times out answers before the Timeout middleware
// writes its own 504.
func analyzeTimeout(request time.Duration) time.Duration {
	if request > 2*analyzeHeadroom {
		return request - analyzeHeadroom
	}
	return request / 2
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

// Run applies migrations and serves until ctx is cancelled, a signal
// arrives or one of the servers fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...")

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("db init error: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	run := func(name string, fn func(context.Context) error) {
		defer wg.Done()
		if err := fn(ctx); err != nil {
			app.logger.Error(ctx, name+" server failed", "error", err.Error())
			mu.Lock()
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			mu.Unlock()
			cancelFunc()
		}
	}

	wg.Add(2)
	go run("http", func(ctx context.Context) error { return app.httpServer.Run(ctx, app.config.HTTPAddr) })
	go run("grpc", app.grpcServer.Run)
	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
	return errors.Join(errs...)
}
