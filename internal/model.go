package internal

import "time"

// DateLayout is the day-resolution layout used in log tokens.
const DateLayout = "2006-01-02"

type Metric string

const (
	MetricWater    Metric = "water"
	MetricSleep    Metric = "sleep"
	MetricCalories Metric = "calories"
	MetricWorkout  Metric = "workout"
	MetricStress   Metric = "stress"
)

// Metrics lists every tracked metric in display order.
var Metrics = []Metric{MetricWater, MetricSleep, MetricCalories, MetricWorkout, MetricStress}

// Numeric reports whether entries of the metric carry a numeric amount.
// Workout entries carry a free-text description instead.
func (m Metric) Numeric() bool {
	return m != MetricWorkout
}

// LogEntry is a single metric observation. Date is always UTC midnight.
type LogEntry struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount,omitempty"`
	Text   string    `json:"text,omitempty"`
	Extra  string    `json:"extra,omitempty"` // e.g. meal description
}

// MetricLog is an append-only sequence of entries for one metric.
type MetricLog []LogEntry

type UserRecord struct {
	UserID       uint64    `json:"user_id"`
	Name         string    `json:"name"`
	WeightKg     float64   `json:"weight_kg"`
	HeightCm     float64   `json:"height_cm"`
	Goal         string    `json:"goal"`
	Reminders    []string  `json:"reminders,omitempty"`
	Progress     string    `json:"progress,omitempty"`
	Feedback     []string  `json:"feedback,omitempty"`
	Conversation string    `json:"conversation,omitempty"`
	Water        MetricLog `json:"water,omitempty"`
	Sleep        MetricLog `json:"sleep,omitempty"`
	Calories     MetricLog `json:"calories,omitempty"`
	Workout      MetricLog `json:"workout,omitempty"`
	Stress       MetricLog `json:"stress,omitempty"`
}

// Log returns the record's log for m.
func (r *UserRecord) Log(m Metric) MetricLog {
	switch m {
	case MetricWater:
		return r.Water
	case MetricSleep:
		return r.Sleep
	case MetricCalories:
		return r.Calories
	case MetricWorkout:
		return r.Workout
	case MetricStress:
		return r.Stress
	}
	return nil
}

// SetLog replaces the record's log for m.
func (r *UserRecord) SetLog(m Metric, log MetricLog) {
	switch m {
	case MetricWater:
		r.Water = log
	case MetricSleep:
		r.Sleep = log
	case MetricCalories:
		r.Calories = log
	case MetricWorkout:
		r.Workout = log
	case MetricStress:
		r.Stress = log
	}
}

type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

type ReminderSpec struct {
	Text string    `json:"text"`
	At   TimeOfDay `json:"at"`
}

// DateOf truncates t to its calendar day, expressed as UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
