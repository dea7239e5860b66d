package dashboard

import (
	"math"
	"strconv"
	"strings"
)

// MetricCard is one tile of the metrics grid.
type MetricCard struct {
	Title string  `json:"title"`
	Value int     `json:"value"`
	Icon  string  `json:"icon"`
	Trend float64 `json:"trend"`
}

// TrendUp reports whether the trend is positive.
func (c MetricCard) TrendUp() bool {
	return c.Trend > 0
}

// TrendLabel renders the absolute trend, e.g. "2.1% vs last week".
func (c MetricCard) TrendLabel() string {
	return strconv.FormatFloat(math.Abs(c.Trend), 'f', -1, 64) + "% vs last week"
}

// FormattedValue groups thousands with commas.
func (c MetricCard) FormattedValue() string {
	return formatThousands(c.Value)
}

// BuildMetricCards derives the metric grid from a snapshot: the latest value
// of each tracked metric plus the scheduled-post count.
func BuildMetricCards(snapshot Snapshot, scheduledPosts int) []MetricCard {
	latest, _ := snapshot.Latest()
	return []MetricCard{
		{Title: "Total Followers", Value: latest.Followers, Icon: "users", Trend: 5.2},
		{Title: "Engagement Rate", Value: latest.Engagement, Icon: "message-circle", Trend: -2.1},
		{Title: "Total Posts", Value: latest.Posts, Icon: "share-2", Trend: 3.8},
		{Title: "Scheduled Posts", Value: scheduledPosts, Icon: "calendar", Trend: 1.5},
	}
}

func formatThousands(value int) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	digits := strconv.Itoa(value)
	if len(digits) <= 3 {
		return sign + digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}
