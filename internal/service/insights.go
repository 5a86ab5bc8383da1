package service

import (
	"context"
	"time"

	"github.com/yourname/healthcoach/internal"
	"github.com/yourname/healthcoach/internal/aggregate"
)

// HealthSummary aggregates the trailing window ending at now. BMI is zero
// when the profile lacks a usable height.
func (c *Coach) HealthSummary(ctx context.Context, userID uint64, now time.Time) (*SummaryResult, error) {
	rec, skipped, err := c.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := &SummaryResult{
		WindowStart: aggregate.WindowStart(now, aggregate.DefaultWindowDays),
		Summary:     aggregate.Summarize(aggregate.Window(rec, now, aggregate.DefaultWindowDays)),
		Skipped:     skipped,
	}
	if rec.HeightCm > 0 {
		res.BMI, _ = BMI(rec.WeightKg, rec.HeightCm)
	}
	return res, nil
}

// WeeklyTrend classifies each metric over the trailing window, in the fixed
// metric order.
func (c *Coach) WeeklyTrend(ctx context.Context, userID uint64, now time.Time) (*TrendResult, error) {
	rec, skipped, err := c.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	trends := aggregate.Trends(rec, now, aggregate.DefaultWindowDays)
	res := &TrendResult{
		WindowStart: aggregate.WindowStart(now, aggregate.DefaultWindowDays),
		Trends:      make([]MetricTrend, 0, len(internal.Metrics)),
		Skipped:     skipped,
	}
	for _, m := range internal.Metrics {
		res.Trends = append(res.Trends, MetricTrend{Metric: m, Trend: trends[m]})
	}
	return res, nil
}
