package gorouter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	router "github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-social-dashboard/components/dashboard"
	"github.com/goliatone/go-social-dashboard/components/dashboard/httpapi"
)

func TestRegisterValidatesConfig(t *testing.T) {
	err := Register(Config[struct{}]{})
	if err == nil {
		t.Fatalf("expected error when router/controller missing")
	}
}

func TestMountRegistersRoutes(t *testing.T) {
	mock := newMockRouter()
	controller, _ := newController(t)
	mount(mock, controller, httpapi.NewCommandExecutor(controller, nil), dashboard.NewBroadcastHook(), nil, defaultRouteConfig(RouteConfig{}))

	for _, key := range []string{
		"GET:/dashboard",
		"GET:/dashboard/_state",
		"GET:/dashboard/notifications",
		"POST:/dashboard/theme",
		"POST:/dashboard/notifications",
		"POST:/dashboard/metric",
		"POST:/dashboard/refresh",
	} {
		_, ok := mock.routes[key]
		assert.True(t, ok, "expected route %s", key)
	}
	_, ok := mock.ws["/dashboard/ws"]
	assert.True(t, ok, "expected websocket route")
}

func TestHTMLRouteRendersTemplate(t *testing.T) {
	mock := newMockRouter()
	controller, renderer := newController(t)
	mount(mock, controller, nil, nil, nil, defaultRouteConfig(RouteConfig{}))

	ctx := newMockContext(nil)
	if err := mock.routes["GET:/dashboard"](ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if len(ctx.body) == 0 {
		t.Fatalf("expected response body")
	}
	if renderer.calls == 0 {
		t.Fatalf("renderer not invoked")
	}
	assert.Equal(t, "text/html; charset=utf-8", ctx.headers["Content-Type"])
}

func TestThemeRouteTogglesAndReturnsState(t *testing.T) {
	mock := newMockRouter()
	controller, _ := newController(t)
	mount(mock, controller, httpapi.NewCommandExecutor(controller, nil), nil, nil, defaultRouteConfig(RouteConfig{}))

	ctx := newMockContext(nil)
	require.NoError(t, mock.routes["POST:/dashboard/theme"](ctx))
	require.Equal(t, http.StatusOK, ctx.status)

	var state map[string]any
	require.NoError(t, json.Unmarshal(ctx.body, &state))
	assert.Equal(t, "dark", state["theme"])
	assert.Equal(t, dashboard.ThemeDark, controller.Service().Theme())
}

func TestMetricRouteStatuses(t *testing.T) {
	mock := newMockRouter()
	controller, _ := newController(t)
	mount(mock, controller, httpapi.NewCommandExecutor(controller, nil), nil, nil, defaultRouteConfig(RouteConfig{}))
	handler := mock.routes["POST:/dashboard/metric"]

	ctx := newMockContext([]byte(`{"metric":"posts"}`))
	require.NoError(t, handler(ctx))
	assert.Equal(t, http.StatusOK, ctx.status)
	assert.Equal(t, dashboard.MetricPosts, controller.Service().Snapshot().Metric)

	ctx = newMockContext([]byte(`{"metric":"reach"}`))
	require.NoError(t, handler(ctx))
	assert.Equal(t, http.StatusUnprocessableEntity, ctx.status)

	ctx = newMockContext([]byte(`{"metric":`))
	require.NoError(t, handler(ctx))
	assert.Equal(t, http.StatusBadRequest, ctx.status)
}

func TestRefreshRouteAddsNotification(t *testing.T) {
	mock := newMockRouter()
	controller, _ := newController(t)
	mount(mock, controller, httpapi.NewCommandExecutor(controller, nil), nil, nil, defaultRouteConfig(RouteConfig{}))

	before := len(controller.Service().Notifications())
	ctx := newMockContext(nil)
	require.NoError(t, mock.routes["POST:/dashboard/refresh"](ctx))
	assert.Equal(t, http.StatusAccepted, ctx.status)
	assert.Len(t, controller.Service().Notifications(), before+1)
}

func TestNotificationsFeedRoute(t *testing.T) {
	mock := newMockRouter()
	controller, _ := newController(t)
	mount(mock, controller, httpapi.NewCommandExecutor(controller, nil), nil, nil, defaultRouteConfig(RouteConfig{}))

	ctx := newMockContext(nil)
	ctx.query = map[string]string{"limit": "1"}
	require.NoError(t, mock.routes["GET:/dashboard/notifications"](ctx))
	require.Equal(t, http.StatusOK, ctx.status)
	var items []dashboard.Notification
	require.NoError(t, json.Unmarshal(ctx.body, &items))
	assert.Len(t, items, 1)
}

func newController(t *testing.T) (*dashboard.Controller, *stubRenderer) {
	t.Helper()
	source := dashboard.NewStaticSource([]dashboard.TimeSeriesPoint{
		{Date: "1/1/2025", Followers: 5000, Engagement: 1000, Posts: 10},
		{Date: "1/2/2025", Followers: 5100, Engagement: 1100, Posts: 11},
	}, nil)
	service := dashboard.NewService(dashboard.Options{Source: source, Days: 2, Ticker: silentTicker})
	require.NoError(t, service.Mount(context.Background()))
	t.Cleanup(func() { service.Unmount(context.Background()) })

	renderer := &stubRenderer{}
	return dashboard.NewController(dashboard.ControllerOptions{
		Service:  service,
		Renderer: renderer,
		Charts:   dashboard.NewChartRenderer(dashboard.WithChartCache(nil)),
	}), renderer
}

// --- Test helpers ---

func silentTicker(time.Duration) (<-chan time.Time, func()) {
	return make(chan time.Time), func() {}
}

type mockRouter struct {
	routes map[string]router.HandlerFunc
	ws     map[string]func(router.WebSocketContext) error
}

func newMockRouter() *mockRouter {
	return &mockRouter{
		routes: map[string]router.HandlerFunc{},
		ws:     map[string]func(router.WebSocketContext) error{},
	}
}

func (m *mockRouter) Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.routes[string(router.GET)+":"+path] = handler
	return mockRouteInfo{}
}

func (m *mockRouter) Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo {
	m.routes[string(router.POST)+":"+path] = handler
	return mockRouteInfo{}
}

func (m *mockRouter) WebSocket(path string, cfg router.WebSocketConfig, handler func(router.WebSocketContext) error) router.RouteInfo {
	m.ws[path] = handler
	return mockRouteInfo{}
}

type mockRouteInfo struct {
	router.RouteInfo
}

// baseContext lets mockContext embed router.Context without a field named
// Context colliding with the Context method.
type baseContext interface {
	router.Context
}

// mockContext overrides the router.Context methods the handlers touch.
type mockContext struct {
	baseContext
	ctx     context.Context
	headers map[string]string
	request []byte
	query   map[string]string
	body    []byte
	status  int
}

func newMockContext(request []byte) *mockContext {
	return &mockContext{
		ctx:     context.Background(),
		headers: map[string]string{},
		request: request,
	}
}

func (m *mockContext) Context() context.Context {
	return m.ctx
}

func (m *mockContext) SetHeader(k, v string) router.Context {
	m.headers[k] = v
	return m
}

func (m *mockContext) Send(b []byte) error {
	m.body = append([]byte{}, b...)
	return nil
}

func (m *mockContext) JSON(code int, v any) error {
	m.status = code
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.body = data
	return nil
}

func (m *mockContext) Body() []byte { return m.request }

func (m *mockContext) Query(name string, defaultValue ...string) string {
	if v, ok := m.query[name]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

type stubRenderer struct {
	calls int
}

func (s *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	s.calls++
	if len(out) > 0 && out[0] != nil {
		out[0].Write([]byte("ok"))
	}
	return "ok", nil
}
