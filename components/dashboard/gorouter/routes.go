package gorouter

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-social-dashboard/components/dashboard"
	"github.com/goliatone/go-social-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-social-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-social-dashboard/components/dashboard/queries"
)

// DefaultBasePath is the group prefix used when Config.BasePath is empty.
const DefaultBasePath = "/social"

// Config wires go-router with the dashboard controller, API, and hooks.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *dashboard.Controller
	API        httpapi.Executor
	Broadcast  *dashboard.BroadcastHook
	Validator  *httpapi.PayloadValidator
	BasePath   string
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	HTML          string
	State         string
	Theme         string
	Feed          string
	Notifications string
	Metric        string
	Refresh       string
	WebSocket     string
}

// registrar is the subset of router.Router used to mount routes.
type registrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	WebSocket(path string, cfg router.WebSocketConfig, handler func(router.WebSocketContext) error) router.RouteInfo
}

// Register mounts dashboard routes (HTML, JSON, REST, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	base := cfg.BasePath
	if base == "" {
		base = DefaultBasePath
	}
	mount(cfg.Router.Group(base), cfg.Controller, cfg.API, cfg.Broadcast, cfg.Validator, defaultRouteConfig(cfg.Routes))
	return nil
}

func mount(r registrar, controller *dashboard.Controller, api httpapi.Executor, broadcast *dashboard.BroadcastHook, validator *httpapi.PayloadValidator, routes RouteConfig) {
	r.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		var buf bytes.Buffer
		if err := controller.RenderTemplate(ctx.Context(), &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	r.Get(routes.State, router.WrapHandler(func(ctx router.Context) error {
		state, err := controller.ViewState(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, state)
	}))

	if api != nil {
		if validator == nil {
			validator = httpapi.NewPayloadValidator()
		}
		registerAPI(r, api, validator, routes)
	}

	if broadcast != nil {
		registerWebSocket(r, broadcast, routes.WebSocket)
	}
}

func registerAPI(r registrar, api httpapi.Executor, validator *httpapi.PayloadValidator, routes RouteConfig) {
	state := func(ctx router.Context) error {
		view, err := api.ViewState(ctx.Context())
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, view)
	}

	r.Get(routes.Feed, router.WrapHandler(func(ctx router.Context) error {
		input := queries.NotificationsInput{}
		if raw := ctx.Query("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				return respondError(ctx, http.StatusBadRequest, errors.New("limit must be a non-negative integer"))
			}
			input.Limit = limit
		}
		items, err := api.Notifications(ctx.Context(), input)
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, items)
	}))

	r.Post(routes.Theme, router.WrapHandler(func(ctx router.Context) error {
		if err := api.ToggleTheme(ctx.Context(), commands.ToggleThemeInput{}); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return state(ctx)
	}))

	r.Post(routes.Notifications, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ToggleNotificationsInput
		if err := validator.Decode(httpapi.SchemaNotifications, ctx.Body(), &payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		if err := api.ToggleNotifications(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return state(ctx)
	}))

	r.Post(routes.Metric, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SelectMetricInput
		if err := validator.Decode(httpapi.SchemaMetric, ctx.Body(), &payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		if err := api.SelectMetric(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return state(ctx)
	}))

	r.Post(routes.Refresh, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.RefreshDashboardInput
		if err := validator.Decode(httpapi.SchemaRefresh, ctx.Body(), &payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		if err := api.Refresh(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusAccepted, map[string]string{"status": "refreshed"})
	}))
}

func registerWebSocket(r registrar, hook *dashboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/dashboard"
	}
	if routes.State == "" {
		routes.State = "/dashboard/_state"
	}
	if routes.Feed == "" {
		routes.Feed = "/dashboard/notifications"
	}
	if routes.Theme == "" {
		routes.Theme = "/dashboard/theme"
	}
	if routes.Notifications == "" {
		routes.Notifications = "/dashboard/notifications"
	}
	if routes.Metric == "" {
		routes.Metric = "/dashboard/metric"
	}
	if routes.Refresh == "" {
		routes.Refresh = "/dashboard/refresh"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/dashboard/ws"
	}
	return routes
}
