package service

import (
	"context"
	"time"

	"github.com/yourname/healthcoach/internal/goal"
)

func (c *Coach) GoalProgress(ctx context.Context, userID uint64, now time.Time) (*GoalResult, error) {
	rec, skipped, err := c.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &GoalResult{Report: goal.Evaluate(rec, now), Skipped: skipped}, nil
}
