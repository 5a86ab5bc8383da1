package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yourname/healthcoach/internal"
)

// Dispatch routes a command name (with or without the leading slash) to
// its operation. Unknown commands are invalid arguments.
func (c *Coach) Dispatch(ctx context.Context, userID uint64, now time.Time, command string, args []string) (any, error) {
	switch strings.TrimPrefix(strings.ToLower(command), "/") {
	case "start", "help":
		return c.Start(), nil
	case "profile":
		return c.SetProfile(ctx, userID, now, args)
	case "remind":
		return c.AddReminder(ctx, userID, now, args)
	case "progress":
		return c.Progress(ctx, userID, now)
	case "update_progress":
		return c.UpdateProgress(ctx, userID, now, args)
	case "bmi":
		return c.BMI(ctx, userID, now)
	case "health_tip":
		return c.HealthTip(), nil
	case "motivate":
		return c.Motivate(), nil
	case "feedback":
		return c.Feedback(ctx, userID, now, args)
	case "report_issue":
		return c.ReportIssue(ctx, userID, now, args)
	case "log_water":
		return c.LogWater(ctx, userID, now, args)
	case "log_sleep":
		return c.LogSleep(ctx, userID, now, args)
	case "log_calories":
		return c.LogCalories(ctx, userID, now, args)
	case "log_workout":
		return c.LogWorkout(ctx, userID, now, args)
	case "log_stress":
		return c.LogStress(ctx, userID, now, args)
	case "health_quiz":
		return c.HealthQuiz(ctx, userID, now)
	case "export_data":
		return c.ExportData(ctx, userID, now)
	case "health_summary":
		return c.HealthSummary(ctx, userID, now)
	case "weekly_trend":
		return c.WeeklyTrend(ctx, userID, now)
	case "goal_progress":
		return c.GoalProgress(ctx, userID, now)
	case "wearable_data":
		return c.WearableData(ctx, userID, now, args)
	case "message", "chat":
		return c.Message(ctx, userID, now, joinArgs(args))
	}
	return nil, fmt.Errorf("%w: unknown command %q", internal.ErrInvalidArgument, command)
}
