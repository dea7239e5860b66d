package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-social-dashboard/components/dashboard"
	"github.com/goliatone/go-social-dashboard/components/dashboard/gorouter"
	"github.com/goliatone/go-social-dashboard/components/dashboard/httpapi"
	dashboardpkg "github.com/goliatone/go-social-dashboard/pkg/dashboard"
)

const shutdownTimeout = 5 * time.Second

type serveCmd struct {
	Addr      string `help:"Listen address (overrides http.addr)."`
	Transport string `enum:"router,http" default:"router" help:"HTTP stack: go-router on fiber, or net/http."`
}

func (cmd *serveCmd) Run(ctx context.Context, g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	if cmd.Addr != "" {
		cfg.HTTP.Addr = cmd.Addr
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var telemetry dashboard.Telemetry = dashboard.NewLogrusTelemetry(logger.WithField("component", "dashboard"))
	broadcast := dashboard.NewBroadcastHook()
	hooks := []dashboard.RefreshHook{broadcast}
	if cfg.Metrics.Enabled {
		metrics, err := dashboard.NewPrometheusTelemetry(cfg.Metrics.Namespace, nil)
		if err != nil {
			return err
		}
		telemetry = dashboard.MultiTelemetry(telemetry, metrics)
		hooks = append(hooks, metrics)
		go serveMetrics(ctx, cfg.Metrics.Addr, logger)
	}
	service, buffer, err := newService(cfg, telemetry, nil, hooks...)
	if err != nil {
		return err
	}
	service.AddRefreshHook(&dashboard.NotificationsHook{
		Client:  logNotifier{logger: logger.WithField("component", "notifications")},
		Buffer:  buffer,
		Channel: "log",
	})

	renderer, err := dashboard.NewTemplateRenderer()
	if err != nil {
		return err
	}
	controller := dashboard.NewController(dashboard.ControllerOptions{
		Service:  service,
		Renderer: renderer,
		Charts:   dashboardpkg.ChartRendererFromConfig(cfg),
		APIBase:  cfg.HTTP.BasePath + "/dashboard",
	})
	executor := httpapi.NewCommandExecutor(controller, telemetry)

	if err := service.Mount(ctx); err != nil {
		return err
	}
	defer service.Unmount(context.Background())

	logger.WithFields(logrus.Fields{
		"addr":      cfg.HTTP.Addr,
		"base_path": cfg.HTTP.BasePath,
		"transport": cmd.Transport,
		"interval":  cfg.RefreshInterval.String(),
	}).Info("dashboard server starting")

	if cmd.Transport == "http" {
		return serveHTTP(ctx, cfg.HTTP.Addr, newHTTPMux(cfg.HTTP.BasePath, controller, httpapi.NewHandlers(executor), broadcast), logger)
	}
	return serveRouter(ctx, cfg.HTTP.Addr, cfg.HTTP.BasePath, controller, executor, broadcast, logger)
}

func serveRouter(ctx context.Context, addr, base string, controller *dashboard.Controller, executor httpapi.Executor, broadcast *dashboard.BroadcastHook, logger logrus.FieldLogger) error {
	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: controller,
		API:        executor,
		Broadcast:  broadcast,
		BasePath:   base,
	}); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.Serve(addr) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("dashboard server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func serveHTTP(ctx context.Context, addr string, handler http.Handler, logger logrus.FieldLogger) error {
	server := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	logger.Info("dashboard server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func serveMetrics(ctx context.Context, addr string, logger logrus.FieldLogger) {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	logger.WithField("addr", addr).Info("metrics listener starting")
	if err := serveHTTP(ctx, addr, mux, logger); err != nil {
		logger.WithError(err).Error("metrics listener failed")
	}
}

// newHTTPMux exposes the dashboard over net/http with the same paths as the
// go-router transport, plus an SSE stream.
func newHTTPMux(base string, controller *dashboard.Controller, handlers *httpapi.Handlers, broadcast *dashboard.BroadcastHook) *http.ServeMux {
	prefix := base + "/dashboard"
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+prefix, func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := controller.RenderTemplate(r.Context(), &buf); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
	})
	mux.HandleFunc("GET "+prefix+"/_state", handlers.HandleViewState)
	mux.HandleFunc("GET "+prefix+"/notifications", handlers.HandleNotifications)
	mux.HandleFunc("POST "+prefix+"/theme", handlers.HandleToggleTheme)
	mux.HandleFunc("POST "+prefix+"/notifications", handlers.HandleToggleNotifications)
	mux.HandleFunc("POST "+prefix+"/metric", handlers.HandleSelectMetric)
	mux.HandleFunc("POST "+prefix+"/refresh", handlers.HandleRefresh)
	mux.HandleFunc("GET "+prefix+"/ws", broadcast.ServeWebSocket)
	mux.HandleFunc("GET "+prefix+"/events", broadcast.ServeSSE)
	return mux
}
