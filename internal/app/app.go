package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/OlixIgnacious/indian-startups-transformations/internal/config"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/dataprocessing"
	apierrors "github.com/OlixIgnacious/indian-startups-transformations/internal/errors"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/exporter"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/infrastructure"
	customMiddleware "github.com/OlixIgnacious/indian-startups-transformations/internal/middleware"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/services"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/storage"
	handlers "github.com/OlixIgnacious/indian-startups-transformations/internal/transport/http"
	"github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.PipelineMetrics
	Sink          *storage.SQLSink
	Exporter      *exporter.Exporter
	Services      *ServiceContainer
	errorHandler  *apierrors.ErrorHandler
}

// ServiceContainer holds all application services
type ServiceContainer struct {
	Transform  *services.TransformService
	Vocabulary *services.VocabularyService
	Health     *services.HealthService
}

// ProcessorOptions maps the pipeline and column sections onto processor options
func ProcessorOptions(cfg *config.Config) dataprocessing.Options {
	return dataprocessing.Options{
		Outlier:           cfg.Pipeline.Outlier,
		Strict:            cfg.Pipeline.Strict,
		NormalizeMissing:  cfg.Pipeline.NormalizeMissing,
		MissingTokens:     cfg.Pipeline.MissingTokens,
		StripNameSuffixes: cfg.Pipeline.StripNameSuffixes,
		Aliases:           cfg.Columns.Aliases,
	}
}

// ExportOptions maps the pipeline section onto exporter options
func ExportOptions(cfg *config.Config) exporter.Options {
	return exporter.Options{
		BOM:        cfg.Pipeline.WriteBOM,
		Records:    cfg.Pipeline.WriteRecords,
		Breakdowns: cfg.Pipeline.Breakdowns,
	}
}

// NewApplication wires telemetry, the optional SQL sink, the services and
// the router. Close or Stop must be called to release them.
func NewApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.NewPipelineMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	a := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: providers,
		Metrics:       metrics,
		Exporter:      exporter.NewExporter(logger, ExportOptions(cfg)),
		errorHandler:  apierrors.NewErrorHandler(logger, cfg.Telemetry.Environment == "development"),
	}

	var (
		sink   services.Sink
		pinger services.Pinger
	)
	if cfg.Storage.Enabled() {
		a.Sink, err = storage.Open(ctx, cfg.Storage, logger, metrics)
		if err != nil {
			_ = providers.Shutdown(ctx)
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
		sink, pinger = a.Sink, a.Sink
	}

	processor := dataprocessing.NewProcessor(logger, ProcessorOptions(cfg), metrics)
	a.Services = &ServiceContainer{
		Transform:  services.NewTransformService(processor, sink, logger),
		Vocabulary: services.NewVocabularyService(),
		Health:     services.NewHealthService(contracts.Version, pinger, logger),
	}

	a.setupRouter()
	return a, nil
}

// TransformFile runs one input file through the pipeline and writes its
// output files. It returns the run result and the paths written.
func (a *Application) TransformFile(ctx context.Context, inputPath string) (*dataprocessing.Result, []string, error) {
	ctx = infrastructure.EnsureTraceID(ctx)

	result, err := a.Services.Transform.TransformFile(ctx, inputPath)
	if err != nil {
		return nil, nil, err
	}

	paths := config.ResolveOutputPaths(inputPath, a.Config.Pipeline.OutputDir)
	written, err := a.Exporter.Export(ctx, paths, exporter.Output{
		Table:   result.Table,
		Records: result.Records,
		Report:  result.Report,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("export run %s: %w", result.RunID, err)
	}

	return result, written, nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()
	r.Use(customMiddleware.RequestID)

	// Order: RequestID, Telemetry, Logger, Recovery, RateLimit
	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.Telemetry(a.OTelProviders.Tracer, a.Metrics))
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(apierrors.RecoveryMiddleware(a.errorHandler))

		if a.Config.Server.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Server.RateLimit.RPS,
				a.Config.Server.RateLimit.Burst,
				a.Logger,
				a.errorHandler,
			).Handler)
		}

		healthHandler := handlers.NewHealthHandler(a.Services.Health, a.Logger)
		r.Get("/healthz", healthHandler.HealthCheck)
		r.Get("/version", healthHandler.Version)

		a.setupAPIRoutes(r)
	})

	// Scrapes bypass the request middleware
	r.Handle("/metrics", handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP, a.errorHandler))

	r.NotFound(a.errorHandler.NotFound)
	r.MethodNotAllowed(a.errorHandler.MethodNotAllowed)

	a.Router = r
}

// setupAPIRoutes configures the /api/v1 endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		transformHandler := handlers.NewTransformHandler(a.Services.Transform, a.Config.Server.MaxBodyBytes, a.Logger, a.errorHandler)
		r.Mount("/transform", transformHandler.Routes())

		vocabularyHandler := handlers.NewVocabularyHandler(a.Services.Vocabulary, a.Logger, a.errorHandler)
		r.Mount("/vocabularies", vocabularyHandler.Routes())
		r.With(
			customMiddleware.BodyLimit(a.Config.Server.MaxBodyBytes),
			customMiddleware.ContentTypeValidator(a.errorHandler, "application/json"),
		).Post("/canonicalize", vocabularyHandler.Canonicalize)

		if a.Sink != nil {
			r.Mount("/runs", handlers.NewRunsHandler(a.Sink, a.Logger, a.errorHandler).Routes())
		}
	})
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start starts the HTTP server in the background. A listener failure
// cancels ctx through cancel.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.createServer()

	a.Logger.InfoContext(ctx, "Starting server",
		slog.String("version", contracts.Version),
		slog.Int("port", a.Config.Server.Port),
		slog.Bool("storage", a.Sink != nil),
		slog.Bool("rate_limit", a.Config.Server.RateLimit.Enabled))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	return nil
}

// Stop gracefully stops the server and releases every resource
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if a.Server != nil {
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("server shutdown: %w", err))
		}
	}
	if err := a.Close(shutdownCtx); err != nil {
		errs = append(errs, err)
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return errors.Join(errs...)
}

// Close releases the sink and flushes telemetry
func (a *Application) Close(ctx context.Context) error {
	var errs []error
	if a.Sink != nil {
		if err := a.Sink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage close: %w", err))
		}
	}
	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Run serves until ctx is cancelled or the process receives SIGINT or SIGTERM
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	<-ctx.Done()
	a.Logger.Info("Received shutdown signal")

	return a.Stop(context.WithoutCancel(ctx))
}
