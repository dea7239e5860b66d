package dashboard

// MetricOption is a selector button of the growth chart.
type MetricOption struct {
	Value    Metric `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// LegendEntry pairs an engagement category with its palette color.
type LegendEntry struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ViewState is everything the view layer needs to render one frame.
type ViewState struct {
	Snapshot
	ThemeSelection ThemeSelection `json:"theme_selection"`
	Cards          []MetricCard   `json:"cards"`
	MetricOptions  []MetricOption `json:"metric_options"`
	Legend         []LegendEntry  `json:"legend"`
	Unread         bool           `json:"unread"`
}

// BuildViewState derives the render data from a snapshot. It is pure: the same
// snapshot always yields the same view state.
func BuildViewState(snapshot Snapshot, scheduledPosts int) ViewState {
	options := make([]MetricOption, len(Metrics))
	for i, m := range Metrics {
		options[i] = MetricOption{Value: m, Label: m.Label(), Selected: m == snapshot.Metric}
	}
	legend := make([]LegendEntry, len(snapshot.Engagement))
	for i, slice := range snapshot.Engagement {
		legend[i] = LegendEntry{Name: slice.Name, Color: PaletteColor(i)}
	}
	return ViewState{
		Snapshot:       snapshot,
		ThemeSelection: SelectTheme(snapshot.Theme),
		Cards:          BuildMetricCards(snapshot, scheduledPosts),
		MetricOptions:  options,
		Legend:         legend,
		Unread:         len(snapshot.Notifications) > 0,
	}
}
