package codec

import (
	"fmt"
	"strconv"

	"github.com/yourname/healthcoach/internal"
)

// Columns is the persisted column order of a user row.
var Columns = []string{
	"user_id", "name", "weight", "height", "goal", "reminders", "progress", "feedback",
	"conversation", "water_log", "sleep_log", "calorie_log", "workout_log", "stress_log",
}

// Row is a user record in its persisted text form, one string per column.
type Row struct {
	UserID       uint64
	Name         string
	Weight       string
	Height       string
	Goal         string
	Reminders    string
	Progress     string
	Feedback     string
	Conversation string
	WaterLog     string
	SleepLog     string
	CalorieLog   string
	WorkoutLog   string
	StressLog    string
}

// Values returns the row in Columns order.
func (r Row) Values() []string {
	return []string{
		strconv.FormatUint(r.UserID, 10), r.Name, r.Weight, r.Height, r.Goal, r.Reminders,
		r.Progress, r.Feedback, r.Conversation, r.WaterLog, r.SleepLog, r.CalorieLog,
		r.WorkoutLog, r.StressLog,
	}
}

// RowFromValues builds a Row from values in Columns order.
func RowFromValues(values []string) (Row, error) {
	if len(values) != len(Columns) {
		return Row{}, fmt.Errorf("%w: expected %d columns, got %d", internal.ErrMalformedEntry, len(Columns), len(values))
	}
	id, err := strconv.ParseUint(values[0], 10, 64)
	if err != nil {
		return Row{}, fmt.Errorf("%w: bad user id %q", internal.ErrMalformedEntry, values[0])
	}
	return Row{
		UserID:       id,
		Name:         values[1],
		Weight:       values[2],
		Height:       values[3],
		Goal:         values[4],
		Reminders:    values[5],
		Progress:     values[6],
		Feedback:     values[7],
		Conversation: values[8],
		WaterLog:     values[9],
		SleepLog:     values[10],
		CalorieLog:   values[11],
		WorkoutLog:   values[12],
		StressLog:    values[13],
	}, nil
}

func EncodeRecord(rec *internal.UserRecord) Row {
	return Row{
		UserID:       rec.UserID,
		Name:         rec.Name,
		Weight:       formatFloat(rec.WeightKg),
		Height:       formatFloat(rec.HeightCm),
		Goal:         rec.Goal,
		Reminders:    EncodeList(rec.Reminders),
		Progress:     rec.Progress,
		Feedback:     EncodeList(rec.Feedback),
		Conversation: rec.Conversation,
		WaterLog:     EncodeLog(rec.Water),
		SleepLog:     EncodeLog(rec.Sleep),
		CalorieLog:   EncodeLog(rec.Calories),
		WorkoutLog:   EncodeLog(rec.Workout),
		StressLog:    EncodeLog(rec.Stress),
	}
}

// DecodeRecord rebuilds a record from its row. The second result counts
// log tokens and profile numbers that failed to parse and were dropped.
func DecodeRecord(row Row) (*internal.UserRecord, int) {
	rec := &internal.UserRecord{
		UserID:       row.UserID,
		Name:         row.Name,
		Goal:         row.Goal,
		Reminders:    DecodeList(row.Reminders),
		Progress:     row.Progress,
		Feedback:     DecodeList(row.Feedback),
		Conversation: row.Conversation,
	}
	skipped := 0
	var ok bool
	if rec.WeightKg, ok = parseFloat(row.Weight); !ok {
		skipped++
	}
	if rec.HeightCm, ok = parseFloat(row.Height); !ok {
		skipped++
	}

	logs := map[internal.Metric]string{
		internal.MetricWater:    row.WaterLog,
		internal.MetricSleep:    row.SleepLog,
		internal.MetricCalories: row.CalorieLog,
		internal.MetricWorkout:  row.WorkoutLog,
		internal.MetricStress:   row.StressLog,
	}
	for m, s := range logs {
		log, n := DecodeLog(m, s)
		rec.SetLog(m, log)
		skipped += n
	}
	return rec, skipped
}

func formatFloat(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
