package dashboard

import (
	"context"
	"errors"
	"io"
)

// DefaultTemplate is the page template name.
const DefaultTemplate = "dashboard"

var errMissingService = errors.New("dashboard: service not configured")

// ControllerOptions wires the collaborators used to render the dashboard.
type ControllerOptions struct {
	Service  *Service
	Renderer Renderer
	Charts   *ChartRenderer
	Template string
	Title    string
	APIBase  string
}

// Controller turns service state into view payloads and rendered pages.
type Controller struct {
	service  *Service
	renderer Renderer
	charts   *ChartRenderer
	template string
	title    string
	apiBase  string
}

// NewController wires the service into a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.Charts == nil {
		opts.Charts = NewChartRenderer()
	}
	if opts.Template == "" {
		opts.Template = DefaultTemplate
	}
	if opts.Title == "" {
		opts.Title = "Social Dashboard"
	}
	return &Controller{
		service:  opts.Service,
		renderer: opts.Renderer,
		charts:   opts.Charts,
		template: opts.Template,
		title:    opts.Title,
		apiBase:  opts.APIBase,
	}
}

// Service exposes the underlying service.
func (c *Controller) Service() *Service {
	return c.service
}

// ViewState returns the current view state.
func (c *Controller) ViewState(_ context.Context) (ViewState, error) {
	if c.service == nil {
		return ViewState{}, errMissingService
	}
	return BuildViewState(c.service.Snapshot(), c.service.ScheduledPosts()), nil
}

// PagePayload builds the template data, including rendered chart markup.
func (c *Controller) PagePayload(ctx context.Context) (map[string]any, error) {
	state, err := c.ViewState(ctx)
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"title":              c.title,
		"api_base":           c.apiBase,
		"theme":              string(state.Theme),
		"dark":               state.Theme.Dark(),
		"theme_style":        state.ThemeSelection.CSSVariablesInline(),
		"show_notifications": state.ShowNotifications,
		"unread":             state.Unread,
		"revision":           state.Revision,
		"metric":             string(state.Metric),
	}

	cards := make([]map[string]any, len(state.Cards))
	for i, card := range state.Cards {
		cards[i] = map[string]any{
			"title":    card.Title,
			"value":    card.FormattedValue(),
			"icon":     card.Icon,
			"trend_up": card.TrendUp(),
			"trend":    card.TrendLabel(),
		}
	}
	payload["cards"] = cards

	options := make([]map[string]any, len(state.MetricOptions))
	for i, opt := range state.MetricOptions {
		options[i] = map[string]any{
			"value":    string(opt.Value),
			"label":    opt.Label,
			"selected": opt.Selected,
		}
	}
	payload["metric_options"] = options

	legend := make([]map[string]any, len(state.Legend))
	for i, entry := range state.Legend {
		legend[i] = map[string]any{"name": entry.Name, "color": entry.Color}
	}
	payload["legend"] = legend

	notifications := make([]map[string]any, len(state.Notifications))
	for i, n := range state.Notifications {
		notifications[i] = map[string]any{"id": n.ID, "message": n.Message, "time": n.Time}
	}
	payload["notifications"] = notifications

	if len(state.TimeSeries) > 0 {
		area, err := c.charts.AreaChart(state.Snapshot, state.ThemeSelection)
		if err != nil {
			return nil, err
		}
		payload["area_chart"] = area
	}
	if len(state.Engagement) > 0 {
		pie, err := c.charts.PieChart(state.Snapshot, state.ThemeSelection)
		if err != nil {
			return nil, err
		}
		payload["pie_chart"] = pie
	}
	return payload, nil
}

// RenderTemplate renders the dashboard page into out.
func (c *Controller) RenderTemplate(ctx context.Context, out io.Writer) error {
	if c.renderer == nil {
		return errors.New("dashboard: renderer not configured")
	}
	payload, err := c.PagePayload(ctx)
	if err != nil {
		return err
	}
	_, err = c.renderer.Render(c.template, payload, out)
	return err
}
