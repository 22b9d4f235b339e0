// Package httpapi exposes the pagescout services over HTTP with chi.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/pagescout/internal/logging"
	"github.com/dmitrijs2005/pagescout/internal/server/metrics"
	"github.com/dmitrijs2005/pagescout/internal/server/models"
	"github.com/dmitrijs2005/pagescout/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxBodyBytes bounds every JSON request body.
const MaxBodyBytes = 1 << 20

type UserService interface {
	Signup(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

type AgentService interface {
	List(ctx context.Context) ([]models.Agent, error)
	Create(ctx context.Context, agentName, prompt, imageURL string) (*models.Agent, error)
	PresignImageUpload(ctx context.Context) (*services.ImageUpload, error)
}

type ProductService interface {
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, name string, price *models.Price, description string) (*models.Product, error)
}

type Analyzer interface {
	Authorize(ctx context.Context, token string) (string, error)
	AnalyzeFor(ctx context.Context, username, targetURL string) (*models.ExtractedRecord, error)
}

// Deps are the collaborators of a Server. Ping and Gatherer are optional.
type Deps struct {
	Users          UserService
	Agents         AgentService
	Products       ProductService
	Analyzer       Analyzer
	Tokens         services.TokenVerifier
	Ping           func(ctx context.Context) error
	Logger         logging.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	RequestTimeout time.Duration
}

type Server struct {
	users          UserService
	agents         AgentService
	products       ProductService
	analyzer       Analyzer
	tokens         services.TokenVerifier
	ping           func(ctx context.Context) error
	logger         logging.Logger
	metrics        *metrics.Metrics
	gatherer       prometheus.Gatherer
	requestTimeout time.Duration
}

func New(d Deps) *Server {
	g := d.Gatherer
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return &Server{
		users:          d.Users,
		agents:         d.Agents,
		products:       d.Products,
		analyzer:       d.Analyzer,
		tokens:         d.Tokens,
		ping:           d.Ping,
		logger:         d.Logger.With("module", "http_server"),
		metrics:        d.Metrics,
		gatherer:       g,
		requestTimeout: d.RequestTimeout,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	if s.requestTimeout > 0 {
		r.Use(middleware.Timeout(s.requestTimeout))
	}

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Post("/signup", s.handleSignup)
	r.Post("/login", s.handleLogin)
	r.Post("/analyze", s.handleAnalyze)

	r.Group(func(r chi.Router) {
		r.Use(s.RequireToken)

		r.Get("/agents", s.handleListAgents)
		r.Post("/agents", s.handleCreateAgent)
		r.Post("/agents/images", s.handlePresignAgentImage)

		r.Get("/products", s.handleListProducts)
		r.Post("/products", s.handleCreateProduct)
	})

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
