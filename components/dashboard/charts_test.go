package dashboard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		SessionID: "s1",
		Revision:  1,
		TimeSeries: []TimeSeriesPoint{
			{Date: "1/1/2025", Followers: 5100, Engagement: 1100, Posts: 12},
			{Date: "1/2/2025", Followers: 5200, Engagement: 1200, Posts: 14},
		},
		Engagement: []EngagementSlice{
			{Name: "Likes", Value: 4800},
			{Name: "Comments", Value: 2400},
			{Name: "Shares", Value: 1600},
			{Name: "Saves", Value: 800},
		},
		Metric: MetricFollowers,
	}
}

func TestAreaChartRenders(t *testing.T) {
	r := NewChartRenderer()
	html, err := r.AreaChart(sampleSnapshot(), SelectTheme(ThemeLight))
	require.NoError(t, err)
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "Growth Analytics")
	assert.Contains(t, html, AreaColor)
}

func TestPieChartRenders(t *testing.T) {
	r := NewChartRenderer(WithChartHeight("240px"))
	html, err := r.PieChart(sampleSnapshot(), SelectTheme(ThemeDark))
	require.NoError(t, err)
	assert.Contains(t, html, "Engagement Distribution")
	assert.Contains(t, html, "Likes")
	assert.Contains(t, html, "240px")
}

func TestChartsRequireData(t *testing.T) {
	r := NewChartRenderer()
	_, err := r.AreaChart(Snapshot{}, SelectTheme(ThemeLight))
	assert.Error(t, err)
	_, err = r.PieChart(Snapshot{}, SelectTheme(ThemeLight))
	assert.Error(t, err)
}

func TestAreaChartCachedPerRevisionAndMetric(t *testing.T) {
	cache := NewChartCache(DefaultRefreshInterval)
	r := NewChartRenderer(WithChartCache(cache))
	snapshot := sampleSnapshot()
	theme := SelectTheme(ThemeLight)

	_, err := r.AreaChart(snapshot, theme)
	require.NoError(t, err)
	_, err = r.AreaChart(snapshot, theme)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	snapshot.Metric = MetricPosts
	_, err = r.AreaChart(snapshot, theme)
	require.NoError(t, err)
	snapshot.Revision++
	_, err = r.AreaChart(snapshot, theme)
	require.NoError(t, err)
	assert.Equal(t, 3, cache.Len())
}

func TestChartAssetsHost(t *testing.T) {
	r := NewChartRenderer(WithChartAssetsHost("https://cdn.example.com/echarts/"), WithChartCache(nil))
	html, err := r.PieChart(sampleSnapshot(), SelectTheme(ThemeLight))
	require.NoError(t, err)
	assert.True(t, strings.Contains(html, "https://cdn.example.com/echarts/"))
}

func TestPaletteColorWraps(t *testing.T) {
	assert.Equal(t, "#0088FE", PaletteColor(0))
	assert.Equal(t, "#FF8042", PaletteColor(3))
	assert.Equal(t, "#0088FE", PaletteColor(4))
}

func TestPieChartLeavesPaletteOrder(t *testing.T) {
	r := NewChartRenderer(WithChartCache(nil))
	snapshot := sampleSnapshot()
	for i := 0; i < 3; i++ {
		snapshot.Revision = uint64(i + 1)
		_, err := r.PieChart(snapshot, SelectTheme(ThemeLight))
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"#0088FE", "#00C49F", "#FFBB28", "#FF8042"}, ChartPalette)
	assert.Equal(t, "#0088FE", PaletteColor(0))

	legend := BuildViewState(snapshot, 12).Legend
	require.Len(t, legend, 4)
	assert.Equal(t, "#0088FE", legend[0].Color)
}
