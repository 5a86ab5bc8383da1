// Package render turns service results into the chat replies users see.
package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yourname/healthcoach/internal"
	"github.com/yourname/healthcoach/internal/aggregate"
	"github.com/yourname/healthcoach/internal/goal"
	"github.com/yourname/healthcoach/internal/service"
)

const profileFirst = "Set your profile first with /profile"

var trendLabels = map[internal.Metric]struct{ title, noun string }{
	internal.MetricWater:    {"Water Intake", "water"},
	internal.MetricSleep:    {"Sleep", "sleep"},
	internal.MetricCalories: {"Calories", "calorie"},
	internal.MetricWorkout:  {"Workouts", "workout"},
	internal.MetricStress:   {"Stress", "stress"},
}

// Text renders a result returned by service.Coach.Dispatch.
func Text(v any) (string, error) {
	switch r := v.(type) {
	case service.HelpResult:
		return "Welcome to your AI Health Coach! Available commands: /" +
			strings.Join(r.Commands, ", /") + ". Ask about symptoms, diet, or exercise!", nil
	case service.TipResult:
		return "Health Tip: " + r.Tip, nil
	case service.QuoteResult:
		return "Motivational Quote: " + r.Quote, nil
	case *service.ProfileResult:
		return fmt.Sprintf("Profile set: %s, %skg, %scm, Goal: %s", r.Name, decimal(r.WeightKg), decimal(r.HeightCm), r.Goal), nil
	case *service.ReminderResult:
		return "Reminder set: " + r.Reminder, nil
	case *service.ProgressResult:
		return progress(r), nil
	case *service.BMIResult:
		return fmt.Sprintf("Your BMI: %.1f (%s)", r.BMI, r.Category), nil
	case *service.NoteResult:
		if r.Issue {
			return "Issue reported. We'll look into it!", nil
		}
		return "Thank you for your feedback!", nil
	case *service.LogResult:
		return logged(r), nil
	case *service.QuizResult:
		return r.Question, nil
	case *service.ChatResult:
		return chat(r), nil
	case *service.ExportResult:
		return string(r.CSV), nil
	case *service.SummaryResult:
		return summary(r), nil
	case *service.TrendResult:
		return trends(r), nil
	case *service.GoalResult:
		return goalProgress(r), nil
	}
	return "", fmt.Errorf("render: unsupported result %T", v)
}

// Error renders err as a reply. Storage failures are not shown verbatim.
func Error(err error) string {
	var appErr *internal.AppError
	switch {
	case errors.Is(err, internal.ErrNotFound):
		return profileFirst
	case errors.Is(err, internal.ErrInvalidArgument):
		return strings.TrimPrefix(err.Error(), internal.ErrInvalidArgument.Error()+": ")
	case errors.As(err, &appErr):
		return appErr.Message
	}
	return "Something went wrong, please try again later."
}

func progress(r *service.ProgressResult) string {
	if r.Updated {
		return "Progress updated: " + r.Progress
	}
	if r.Progress == "" {
		return "Your progress: No progress recorded. Update with /update_progress!"
	}
	return "Your progress: " + r.Progress
}

func logged(r *service.LogResult) string {
	var b strings.Builder
	switch r.Metric {
	case internal.MetricWater:
		fmt.Fprintf(&b, "Logged %sml of water. Today's total: %sml. Aim for %dml!", number(r.Entry.Amount), number(r.TodayTotal), service.WaterDailyGoalMl)
		if r.Nudge {
			b.WriteString(" Try to drink more water today!")
		}
	case internal.MetricSleep:
		fmt.Fprintf(&b, "Logged %s hours of sleep. Aim for 7-9 hours!", decimal(r.Entry.Amount))
		if r.Nudge {
			b.WriteString(" Try to get more rest tonight.")
		}
	case internal.MetricCalories:
		fmt.Fprintf(&b, "Logged %s calories for %s. Today's total: %s calories.", number(r.Entry.Amount), r.Entry.Extra, number(r.TodayTotal))
		if r.Nudge {
			b.WriteString(" Consider lighter meals to balance your intake.")
		}
	case internal.MetricWorkout:
		fmt.Fprintf(&b, "Logged workout: %s. Great job! Try varying workouts for balance.", r.Entry.Text)
	case internal.MetricStress:
		fmt.Fprintf(&b, "Logged stress level: %s/5.", number(r.Entry.Amount))
		if r.Nudge {
			b.WriteString(" Try a 5-minute deep breathing exercise.")
		}
	}
	return b.String()
}

func chat(r *service.ChatResult) string {
	var b strings.Builder
	b.WriteString(r.Advice)
	for _, d := range r.Due {
		b.WriteString("\nReminder: ")
		b.WriteString(d.Text)
	}
	return b.String()
}

func summary(r *service.SummaryResult) string {
	s := r.Summary
	return fmt.Sprintf("Health Summary (Last %d Days):\n"+
		"- Avg Water: %.1fml/day (Goal: %dml)\n"+
		"- Avg Sleep: %.1fhrs/day (Goal: 7-9hrs)\n"+
		"- Total Calories: %skcal\n"+
		"- Workouts: %d sessions\n"+
		"- Avg Stress: %.1f/5\n"+
		"- Current BMI: %.1f",
		aggregate.DefaultWindowDays,
		s.AvgWaterPerDay, service.WaterDailyGoalMl,
		s.AvgSleepPerDay,
		number(s.TotalCalories),
		s.WorkoutSessions,
		s.AvgStressPerDay,
		r.BMI)
}

func trends(r *service.TrendResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Weekly Trends (Last %d Days):\n", aggregate.DefaultWindowDays)
	for _, mt := range r.Trends {
		label := trendLabels[mt.Metric]
		text := mt.Trend.String()
		if mt.Trend == aggregate.NoData {
			text = "No " + label.noun + " data"
		}
		fmt.Fprintf(&b, "- %s: %s\n", label.title, text)
	}
	b.WriteString("Use /health_summary for detailed metrics!")
	return b.String()
}

func goalProgress(r *service.GoalResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Goal Progress (Goal: %s)\n", r.Goal)
	switch r.Kind {
	case goal.KindWeightLoss:
		if r.WeightChangeKg != nil {
			fmt.Fprintf(&b, "- Weight Change: %skg\n", decimal(*r.WeightChangeKg))
			fmt.Fprintf(&b, "- Tip: %s\n", r.Tip)
		} else {
			b.WriteString("- No valid weight change logged. Update with /update_progress.\n")
		}
	case goal.KindFitness:
		fmt.Fprintf(&b, "- Workouts (Last %d Days): %d\n", aggregate.DefaultWindowDays, r.WorkoutsLast7Days)
		fmt.Fprintf(&b, "- Tip: %s\n", r.Tip)
	default:
		b.WriteString("- Custom goal detected. Update progress with /update_progress.\n")
	}
	b.WriteString("Keep logging data for better insights!")
	return b.String()
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// decimal always shows a fractional part, so 70 renders as "70.0".
func decimal(v float64) string {
	s := number(v)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
