// Package aggregate derives daily rollups, window summaries and
// week-over-week trend labels from metric logs. Everything here is pure.
package aggregate

import (
	"sort"
	"time"

	"github.com/yourname/healthcoach/internal"
)

// DefaultWindowDays is the trailing window used by summaries and trends.
const DefaultWindowDays = 7

type DayTotal struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

type Summary struct {
	AvgWaterPerDay  float64 `json:"avg_water_per_day"`
	AvgSleepPerDay  float64 `json:"avg_sleep_per_day"`
	TotalCalories   float64 `json:"total_calories"`
	WorkoutSessions int     `json:"workout_sessions"`
	AvgStressPerDay float64 `json:"avg_stress_per_day"`
}

// WindowStart is the first day included in a window of days ending at now.
func WindowStart(now time.Time, days int) time.Time {
	return internal.DateOf(now).AddDate(0, 0, -days)
}

// WindowEntries keeps entries dated on or after start, preserving order.
func WindowEntries(log internal.MetricLog, start time.Time) internal.MetricLog {
	out := internal.MetricLog{}
	for _, e := range log {
		if !e.Date.Before(start) {
			out = append(out, e)
		}
	}
	return out
}

// DailyTotals buckets entries by date in ascending order. Numeric metrics
// are summed, workouts are counted. Days without entries are omitted.
func DailyTotals(m internal.Metric, entries internal.MetricLog) []DayTotal {
	byDay := make(map[time.Time]float64)
	for _, e := range entries {
		d := internal.DateOf(e.Date)
		if m.Numeric() {
			byDay[d] += e.Amount
		} else {
			byDay[d]++
		}
	}
	out := make([]DayTotal, 0, len(byDay))
	for d, v := range byDay {
		out = append(out, DayTotal{Date: d, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Summarize computes the window summary. Averages divide by the number of
// distinct days with data, not the window length.
func Summarize(window map[internal.Metric]internal.MetricLog) Summary {
	return Summary{
		AvgWaterPerDay:  perDay(window[internal.MetricWater]),
		AvgSleepPerDay:  perDay(window[internal.MetricSleep]),
		TotalCalories:   total(window[internal.MetricCalories]),
		WorkoutSessions: len(window[internal.MetricWorkout]),
		AvgStressPerDay: perDay(window[internal.MetricStress]),
	}
}

// Window slices every log of rec to the trailing window ending at now.
func Window(rec *internal.UserRecord, now time.Time, days int) map[internal.Metric]internal.MetricLog {
	start := WindowStart(now, days)
	out := make(map[internal.Metric]internal.MetricLog, len(internal.Metrics))
	for _, m := range internal.Metrics {
		out[m] = WindowEntries(rec.Log(m), start)
	}
	return out
}

// TodayTotal sums the metric's amounts logged on the same day as now.
func TodayTotal(log internal.MetricLog, now time.Time) float64 {
	today := internal.DateOf(now)
	var sum float64
	for _, e := range log {
		if e.Date.Equal(today) {
			sum += e.Amount
		}
	}
	return sum
}

func total(entries internal.MetricLog) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.Amount
	}
	return sum
}

func perDay(entries internal.MetricLog) float64 {
	days := make(map[time.Time]struct{})
	for _, e := range entries {
		days[internal.DateOf(e.Date)] = struct{}{}
	}
	if len(days) == 0 {
		return 0
	}
	return total(entries) / float64(len(days))
}
