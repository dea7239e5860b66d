package dashboard

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	defaultChartHeight = "300px"
	// AreaColor is the stroke/fill of the growth chart.
	AreaColor = "#0088FE"
)

// ChartPalette colors the pie slices and legend, by index modulo length.
var ChartPalette = []string{"#0088FE", "#00C49F", "#FFBB28", "#FF8042"}

// PaletteColor returns the palette entry for a slice index.
func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return ChartPalette[i%len(ChartPalette)]
}

// ChartRenderer renders server-side echarts HTML for the dashboard charts.
type ChartRenderer struct {
	cache      RenderCache
	assetsHost string
	height     string
}

// ChartRendererOption customizes renderer behavior.
type ChartRendererOption func(*ChartRenderer)

// WithChartCache injects a render cache. A nil cache disables caching.
func WithChartCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// WithChartHeight overrides the chart height (CSS length).
func WithChartHeight(height string) ChartRendererOption {
	return func(r *ChartRenderer) {
		if height != "" {
			r.height = height
		}
	}
}

// NewChartRenderer builds a renderer with a short-lived cache.
func NewChartRenderer(options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{
		cache:  NewChartCache(DefaultRefreshInterval),
		height: defaultChartHeight,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// AreaChart plots the selected metric of the snapshot's time series.
func (r *ChartRenderer) AreaChart(snapshot Snapshot, theme ThemeSelection) (string, error) {
	if len(snapshot.TimeSeries) == 0 {
		return "", fmt.Errorf("dashboard: area chart requires time series data")
	}
	metric := snapshot.Metric
	if _, err := ParseMetric(string(metric)); err != nil {
		metric = MetricFollowers
	}
	key := fmt.Sprintf("area:%s:%d:%s:%s", snapshot.SessionID, snapshot.Revision, metric, theme.ChartTheme)
	return r.cached(key, func() (string, error) {
		xAxis := make([]string, len(snapshot.TimeSeries))
		data := make([]opts.LineData, len(snapshot.TimeSeries))
		for i, point := range snapshot.TimeSeries {
			xAxis[i] = point.Date
			data[i] = opts.LineData{Name: point.Date, Value: point.Value(metric)}
		}
		line := charts.NewLine()
		line.SetGlobalOptions(r.globalOptions("Growth Analytics", theme)...)
		line.SetXAxis(xAxis)
		line.AddSeries(metric.Label(), data)
		line.SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Color: AreaColor, Opacity: 0.4}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: AreaColor}),
		)
		return renderChart(line)
	})
}

// PieChart renders the engagement breakdown as a ring.
func (r *ChartRenderer) PieChart(snapshot Snapshot, theme ThemeSelection) (string, error) {
	if len(snapshot.Engagement) == 0 {
		return "", fmt.Errorf("dashboard: pie chart requires engagement data")
	}
	key := fmt.Sprintf("pie:%s:%d:%s", snapshot.SessionID, snapshot.Revision, theme.ChartTheme)
	return r.cached(key, func() (string, error) {
		data := make([]opts.PieData, len(snapshot.Engagement))
		for i, slice := range snapshot.Engagement {
			data[i] = opts.PieData{Name: slice.Name, Value: slice.Value}
		}
		pie := charts.NewPie()
		pie.SetGlobalOptions(r.globalOptions("Engagement Distribution", theme)...)
		// go-echarts reverses the color slice in place.
		pie.SetGlobalOptions(charts.WithColorsOpts(opts.Colors(slices.Clone(ChartPalette))))
		pie.AddSeries("Engagement", data)
		pie.SetSeriesOptions(charts.WithPieChartOpts(opts.PieChart{Radius: []string{"30%", "50%"}}))
		return renderChart(pie)
	})
}

func (r *ChartRenderer) cached(key string, render func() (string, error)) (string, error) {
	if r.cache == nil {
		return render()
	}
	return r.cache.GetOrRender(key, render)
}

func (r *ChartRenderer) globalOptions(title string, theme ThemeSelection) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  theme.ChartTheme,
		Width:  "100%",
		Height: r.height,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
