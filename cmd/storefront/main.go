package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GlintPay/storefront/api"
	"github.com/GlintPay/storefront/backend/setup"
	"github.com/GlintPay/storefront/catalog"
	"github.com/GlintPay/storefront/config"
	"github.com/GlintPay/storefront/gateway"
	"github.com/GlintPay/storefront/health"
	"github.com/GlintPay/storefront/logging"
	"github.com/GlintPay/storefront/metrics"
	"github.com/GlintPay/storefront/orders"
	"github.com/GlintPay/storefront/upload"
	"github.com/caarlos0/env/v6"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"
	"golang.org/x/sync/errgroup"
)

const serviceName = "storefront"

var envConfig = config.Configuration{}

func main() {
	logging.Setup(os.Stdout)

	if err := env.Parse(&envConfig); err != nil {
		log.Fatal().Msgf("Configuration loading failed: %+v", err)
	}

	appConfig, err := config.Load(envConfig)
	if err != nil {
		log.Fatal().Stack().Err(err).Msg("Configuration loading failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	////////////////////////////////////////////

	backends, err := setup.Init(ctx, appConfig)
	if err != nil {
		log.Warn().Err(err).Msg("Some backends are unavailable")
	}
	defer backends.Close()

	if len(backends) == 0 {
		log.Warn().Msg("No storage backend is configured: defaults will be served and nothing can be saved")
	} else {
		log.Info().Msgf("Storage backends, in priority order: %v", backends.Names())
	}

	////////////////////////////////////////////

	traceShutdown, e := setupTracing(ctx, appConfig)
	if e != nil {
		log.Fatal().Stack().Err(e).Msg("Trace setup failed")
	}
	defer traceShutdown()

	m := metrics.New(prometheus.DefaultRegisterer, serviceName)
	gw := gateway.New(backends, appConfig, m)

	routing, err := setupServices(ctx, appConfig, gw, m)
	if err != nil {
		log.Fatal().Stack().Err(err).Msg("Service setup failed")
	}

	router := setupRouter(appConfig, routing)
	setupHealthCheck(router, gw)

	////////////////////////////////////////////

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", appConfig.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Msgf("Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err = g.Wait(); err != nil {
		log.Error().Stack().Err(err).Msg("server stopped")
	}
}

func setupServices(ctx context.Context, appConfig config.ApplicationConfiguration, gw *gateway.Gateway, m *metrics.Metrics) (*api.Routing, error) {
	orderService, err := orders.New(gw, appConfig, m)
	if err != nil {
		return nil, err
	}

	uploads, err := upload.New(ctx, appConfig)
	if err != nil {
		return nil, err
	}

	auth, err := api.NewAuth(appConfig.Admin)
	if err != nil {
		return nil, err
	}

	return &api.Routing{
		ServerName: serviceName,

		AppConfig: appConfig,
		Gateway:   gw,
		Orders:    orderService,
		Catalog:   &catalog.Service{Documents: gw},
		Uploads:   uploads,
		Auth:      auth,
	}, nil
}

var emptyShutdown = func() {}

func setupTracing(ctx context.Context, config config.ApplicationConfiguration) (func(), error) {
	if !config.Tracing.Enabled {
		return emptyShutdown, nil
	}

	if config.Tracing.Endpoint == "" {
		return emptyShutdown, fmt.Errorf("missing tracing endpoint")
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
		),
	)
	if err != nil {
		return emptyShutdown, fmt.Errorf("failed to create resource: %w", err)
	}

	traceExporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithEndpoint(config.Tracing.Endpoint),
	)
	if err != nil {
		return emptyShutdown, fmt.Errorf("failed to create trace exporter %v", err)
	}

	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(config.Tracing.SamplerFraction)),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	log.Info().Msgf("OpenTelemetry export is enabled, to: %s", config.Tracing.Endpoint)

	return func() {
		// the signal context is already done by now
		if err = tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error().Stack().Err(err).Msg("failed to shutdown TracerProvider")
		}
	}, nil
}

func setupRouter(config config.ApplicationConfiguration, routing *api.Routing) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.StripSlashes)
	router.Use(middleware.Recoverer)

	if config.Server.LogRequests {
		router.Use(logging.RequestLogger(serviceName))
	}

	routing.ParentRouter = router

	router.Route("/", func(r chi.Router) {
		if e := routing.SetupFunctionalRoutes(r); e != nil {
			log.Fatal().Stack().Err(e).Msg("route setup failed")
		}
	})

	if len(config.Prometheus.Path) > 0 {
		log.Info().Msgf("Registering metrics endpoint at: %s", config.Prometheus.Path)
		router.Handle(config.Prometheus.Path, promhttp.Handler())
	}

	return router
}

func setupHealthCheck(router *chi.Mux, gw *gateway.Gateway) {
	healthChk := health.New(
		health.WithChiMux(router),
		health.WithReadinessCheck("storage", func() error {
			return gw.Check(context.Background())
		}),
	)
	healthChk.StartListening()
}
