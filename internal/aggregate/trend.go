package aggregate

import (
	"encoding/json"
	"time"

	"github.com/yourname/healthcoach/internal"
)

type Trend int

const (
	NoData Trend = iota
	Improving
	StableOrDeclining
	Decreasing
	StableOrIncreasing
	MoreActive
	StableOrLessActive
	StableOrWorsening
)

var trendNames = map[Trend]string{
	NoData:             "No data",
	Improving:          "Improving",
	StableOrDeclining:  "Stable or declining",
	Decreasing:         "Decreasing",
	StableOrIncreasing: "Stable or increasing",
	MoreActive:         "More active",
	StableOrLessActive: "Stable or less active",
	StableOrWorsening:  "Stable or worsening",
}

func (t Trend) String() string {
	if s, ok := trendNames[t]; ok {
		return s
	}
	return "Unknown"
}

func (t Trend) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// polarity: whether a higher last bucket is the good direction, and the
// labels for the moved and not-moved outcomes.
type polarity struct {
	higherIsMove bool
	moved        Trend
	stable       Trend
}

var polarities = map[internal.Metric]polarity{
	internal.MetricWater:    {true, Improving, StableOrDeclining},
	internal.MetricSleep:    {true, Improving, StableOrDeclining},
	internal.MetricCalories: {false, Decreasing, StableOrIncreasing},
	internal.MetricWorkout:  {true, MoreActive, StableOrLessActive},
	internal.MetricStress:   {false, Improving, StableOrWorsening},
}

// Classify compares the first and last daily buckets only. This is a
// two-point comparison, not a slope: a dip in between is invisible.
func Classify(m internal.Metric, totals []DayTotal) Trend {
	p := polarities[m]
	if len(totals) == 0 {
		return NoData
	}
	if len(totals) < 2 {
		return p.stable
	}
	first, last := totals[0].Value, totals[len(totals)-1].Value
	if p.higherIsMove && last > first || !p.higherIsMove && last < first {
		return p.moved
	}
	return p.stable
}

// Trends classifies every metric of rec over the trailing window.
func Trends(rec *internal.UserRecord, now time.Time, days int) map[internal.Metric]Trend {
	window := Window(rec, now, days)
	out := make(map[internal.Metric]Trend, len(window))
	for m, entries := range window {
		out[m] = Classify(m, DailyTotals(m, entries))
	}
	return out
}
