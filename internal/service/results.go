package service

import (
	"time"

	"github.com/yourname/healthcoach/internal"
	"github.com/yourname/healthcoach/internal/aggregate"
	"github.com/yourname/healthcoach/internal/goal"
)

type HelpResult struct {
	Commands []string `json:"commands"`
}

type ProfileResult struct {
	Name     string  `json:"name"`
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
	Goal     string  `json:"goal"`
	Created  bool    `json:"created"`
}

type ReminderResult struct {
	Reminder string `json:"reminder"`
}

type ProgressResult struct {
	Progress string `json:"progress"`
	Updated  bool   `json:"updated"`
}

type BMIResult struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
}

type TipResult struct {
	Tip string `json:"tip"`
}

type QuoteResult struct {
	Quote string `json:"quote"`
}

// NoteResult acknowledges feedback and issue reports.
type NoteResult struct {
	Note  string `json:"note"`
	Issue bool   `json:"issue"`
}

// LogResult describes an appended metric entry. TodayTotal is the sum of
// the metric's amounts for the entry's day, including the new one.
type LogResult struct {
	Metric     internal.Metric   `json:"metric"`
	Entry      internal.LogEntry `json:"entry"`
	TodayTotal float64           `json:"today_total,omitempty"`
	Nudge      bool              `json:"nudge"`
	Skipped    int               `json:"skipped,omitempty"`
}

type QuizResult struct {
	Question string `json:"question"`
}

type QuizAnswerResult struct {
	Hours   int  `json:"hours"`
	InRange bool `json:"in_range"`
}

type ChatResult struct {
	Topic     Topic                   `json:"topic"`
	Advice    string                  `json:"advice"`
	Due       []internal.ReminderSpec `json:"due_reminders,omitempty"`
	Persisted bool                    `json:"persisted"`
	Skipped   int                     `json:"skipped,omitempty"`
	Quiz      *QuizAnswerResult       `json:"quiz,omitempty"`
}

type ExportResult struct {
	Filename string `json:"filename"`
	CSV      []byte `json:"csv"`
}

type SummaryResult struct {
	WindowStart time.Time         `json:"window_start"`
	Summary     aggregate.Summary `json:"summary"`
	BMI         float64           `json:"bmi"`
	Skipped     int               `json:"skipped,omitempty"`
}

type MetricTrend struct {
	Metric internal.Metric `json:"metric"`
	Trend  aggregate.Trend `json:"trend"`
}

type TrendResult struct {
	WindowStart time.Time     `json:"window_start"`
	Trends      []MetricTrend `json:"trends"`
	Skipped     int           `json:"skipped,omitempty"`
}

type GoalResult struct {
	goal.Report
	Skipped int `json:"skipped,omitempty"`
}
