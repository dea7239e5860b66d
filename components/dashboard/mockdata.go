package dashboard

import (
	"math/rand/v2"
	"sync"
	"time"
)

// DateLayout formats time-series date labels.
const DateLayout = "1/2/2006"

// IntRange is a half-open integer interval [Min, Max).
type IntRange struct {
	Min int
	Max int
}

func (r IntRange) draw(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	if rng == nil {
		return r.Min + rand.IntN(r.Max-r.Min)
	}
	return r.Min + rng.IntN(r.Max-r.Min)
}

// Contains reports whether v lies in [Min, Max).
func (r IntRange) Contains(v int) bool {
	return v >= r.Min && v < r.Max
}

var (
	FollowersRange  = IntRange{Min: 5000, Max: 6000}
	EngagementRange = IntRange{Min: 1000, Max: 1500}
	PostsRange      = IntRange{Min: 10, Max: 30}
)

// EngagementCategory pairs a category with its value bounds.
type EngagementCategory struct {
	Name  string
	Range IntRange
}

// EngagementCategories is the fixed pie breakdown, centred on the demo
// distribution 4800/2400/1600/800.
var EngagementCategories = []EngagementCategory{
	{Name: "Likes", Range: IntRange{Min: 4000, Max: 5600}},
	{Name: "Comments", Range: IntRange{Min: 2000, Max: 2800}},
	{Name: "Shares", Range: IntRange{Min: 1200, Max: 2000}},
	{Name: "Saves", Range: IntRange{Min: 600, Max: 1000}},
}

// GenerateTimeSeries returns `days` points ending today, oldest first.
func GenerateTimeSeries(days int) []TimeSeriesPoint {
	return generateTimeSeries(time.Now(), days, nil)
}

// GenerateEngagement returns a freshly drawn engagement breakdown.
func GenerateEngagement() []EngagementSlice {
	return generateEngagement(nil)
}

func generateTimeSeries(now time.Time, days int, rng *rand.Rand) []TimeSeriesPoint {
	if days < 1 {
		return []TimeSeriesPoint{}
	}
	points := make([]TimeSeriesPoint, days)
	for i := range points {
		at := now.AddDate(0, 0, -(days - 1 - i))
		points[i] = TimeSeriesPoint{
			Date:       at.Format(DateLayout),
			Followers:  FollowersRange.draw(rng),
			Engagement: EngagementRange.draw(rng),
			Posts:      PostsRange.draw(rng),
		}
	}
	return points
}

func generateEngagement(rng *rand.Rand) []EngagementSlice {
	slices := make([]EngagementSlice, len(EngagementCategories))
	for i, category := range EngagementCategories {
		slices[i] = EngagementSlice{Name: category.Name, Value: category.Range.draw(rng)}
	}
	return slices
}

// RandomSource draws uniform mock data. A zero seed uses the global generator.
type RandomSource struct {
	mu    sync.Mutex
	rng   *rand.Rand
	clock Clock
}

// RandomSourceOption customizes a RandomSource.
type RandomSourceOption func(*RandomSource)

// WithSeed makes the source reproducible.
func WithSeed(seed uint64) RandomSourceOption {
	return func(s *RandomSource) {
		if seed != 0 {
			s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		}
	}
}

// WithSourceClock anchors date labels to the given clock.
func WithSourceClock(clock Clock) RandomSourceOption {
	return func(s *RandomSource) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewRandomSource builds the default mock data source.
func NewRandomSource(opts ...RandomSourceOption) *RandomSource {
	s := &RandomSource{clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TimeSeries implements DataSource.
func (s *RandomSource) TimeSeries(days int) []TimeSeriesPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return generateTimeSeries(s.clock(), days, s.rng)
}

// Engagement implements DataSource.
func (s *RandomSource) Engagement() []EngagementSlice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return generateEngagement(s.rng)
}

// NewStaticSource returns a source that always serves the provided datasets.
// A longer series keeps its newest points; a shorter one is padded by
// repeating its last point.
func NewStaticSource(series []TimeSeriesPoint, engagement []EngagementSlice) DataSource {
	return staticSource{series: cloneSeries(series), engagement: cloneSlices(engagement)}
}

type staticSource struct {
	series     []TimeSeriesPoint
	engagement []EngagementSlice
}

func (s staticSource) TimeSeries(days int) []TimeSeriesPoint {
	if days < 1 {
		return []TimeSeriesPoint{}
	}
	series := s.series
	if len(series) > days {
		series = series[len(series)-days:]
	}
	out := make([]TimeSeriesPoint, days)
	for i := range out {
		switch {
		case i < len(series):
			out[i] = series[i]
		case len(series) > 0:
			out[i] = series[len(series)-1]
		}
	}
	return out
}

func (s staticSource) Engagement() []EngagementSlice {
	out := make([]EngagementSlice, len(EngagementCategories))
	for i, category := range EngagementCategories {
		out[i] = EngagementSlice{Name: category.Name}
		for _, slice := range s.engagement {
			if slice.Name == category.Name && slice.Value >= 0 {
				out[i].Value = slice.Value
			}
		}
	}
	return out
}
