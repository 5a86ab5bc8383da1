package service

import (
	"context"
	"time"

	"github.com/yourname/healthcoach/internal"
	"github.com/yourname/healthcoach/internal/aggregate"
	"github.com/yourname/healthcoach/internal/codec"
)

const (
	usageLogWater    = "/log_water <ml>"
	usageLogSleep    = "/log_sleep <hours>"
	usageLogCalories = "/log_calories <calories> <meal>"
	usageLogWorkout  = "/log_workout <description>"
	usageLogStress   = "/log_stress <1-5>"
)

func (c *Coach) LogWater(ctx context.Context, userID uint64, now time.Time, args []string) (*LogResult, error) {
	if len(args) == 0 {
		return nil, invalid(usageLogWater, nil)
	}
	ml, err := parseWhole(args[0], usageLogWater)
	if err != nil {
		return nil, err
	}
	req := WaterRequest{Ml: ml}
	if err := check(&req, usageLogWater); err != nil {
		return nil, err
	}
	entry := internal.LogEntry{Date: internal.DateOf(now), Amount: float64(req.Ml)}
	return c.appendEntry(ctx, userID, now, internal.MetricWater, entry, func(total float64) bool {
		return total < WaterNudgeBelowMl
	})
}

func (c *Coach) LogSleep(ctx context.Context, userID uint64, now time.Time, args []string) (*LogResult, error) {
	if len(args) == 0 {
		return nil, invalid(usageLogSleep, nil)
	}
	hours, err := parseDecimal(args[0], usageLogSleep)
	if err != nil {
		return nil, err
	}
	req := SleepRequest{Hours: hours}
	if err := check(&req, usageLogSleep); err != nil {
		return nil, err
	}
	entry := internal.LogEntry{Date: internal.DateOf(now), Amount: req.Hours}
	return c.appendEntry(ctx, userID, now, internal.MetricSleep, entry, func(float64) bool {
		return req.Hours < SleepNudgeBelowHrs
	})
}

func (c *Coach) LogCalories(ctx context.Context, userID uint64, now time.Time, args []string) (*LogResult, error) {
	if len(args) < 2 {
		return nil, invalid(usageLogCalories, nil)
	}
	kcal, err := parseWhole(args[0], usageLogCalories)
	if err != nil {
		return nil, err
	}
	req := CaloriesRequest{Calories: kcal, Meal: joinArgs(args[1:])}
	if err := check(&req, usageLogCalories); err != nil {
		return nil, err
	}
	entry := internal.LogEntry{Date: internal.DateOf(now), Amount: float64(req.Calories), Extra: req.Meal}
	return c.appendEntry(ctx, userID, now, internal.MetricCalories, entry, func(total float64) bool {
		return total > CaloriesNudgeAbove
	})
}

func (c *Coach) LogWorkout(ctx context.Context, userID uint64, now time.Time, args []string) (*LogResult, error) {
	req := WorkoutRequest{Description: joinArgs(args)}
	if err := check(&req, usageLogWorkout); err != nil {
		return nil, err
	}
	entry := internal.LogEntry{Date: internal.DateOf(now), Text: req.Description}
	return c.appendEntry(ctx, userID, now, internal.MetricWorkout, entry, nil)
}

func (c *Coach) LogStress(ctx context.Context, userID uint64, now time.Time, args []string) (*LogResult, error) {
	if len(args) == 0 {
		return nil, invalid(usageLogStress, nil)
	}
	level, err := parseWhole(args[0], usageLogStress)
	if err != nil {
		return nil, err
	}
	req := StressRequest{Level: level}
	if err := check(&req, usageLogStress); err != nil {
		return nil, err
	}
	entry := internal.LogEntry{Date: internal.DateOf(now), Amount: float64(req.Level)}
	return c.appendEntry(ctx, userID, now, internal.MetricStress, entry, func(float64) bool {
		return req.Level >= StressNudgeFrom
	})
}

// appendEntry appends to the metric's log under the user's lock and reports
// the day's running total. nudge, when set, decides whether the reply
// should carry the metric's advice.
func (c *Coach) appendEntry(ctx context.Context, userID uint64, now time.Time, m internal.Metric, entry internal.LogEntry, nudge func(total float64) bool) (*LogResult, error) {
	res := &LogResult{Metric: m, Entry: entry}
	skipped, err := c.store.Update(ctx, userID, func(rec *internal.UserRecord) error {
		log := codec.Append(rec.Log(m), entry)
		rec.SetLog(m, log)
		if m.Numeric() {
			res.TodayTotal = aggregate.TodayTotal(log, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Skipped = skipped
	if nudge != nil {
		res.Nudge = nudge(res.TodayTotal)
	}
	c.logger.Debugf("user %d logged %s: %+v", userID, m, entry)
	return res, nil
}
