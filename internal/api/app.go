package api

import (
	"context"
	"time"

	"github.com/yourname/healthcoach/internal"
	"github.com/yourname/healthcoach/internal/service"
)

// Commander is the command surface the handlers drive; *service.Coach
// satisfies it.
type Commander interface {
	Dispatch(ctx context.Context, userID uint64, now time.Time, command string, args []string) (any, error)
	Message(ctx context.Context, userID uint64, now time.Time, text string) (*service.ChatResult, error)
	ExportData(ctx context.Context, userID uint64, now time.Time) (*service.ExportResult, error)
}

type App interface {
	Logger() internal.Logger
	Coach() Commander
	Now() time.Time
}

type app struct {
	logger internal.Logger
	coach  Commander
	now    func() time.Time
}

// NewApp wires a commander into the handlers. now defaults to the UTC wall
// clock.
func NewApp(coach Commander, logger internal.Logger, now func() time.Time) App {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &app{logger: logger, coach: coach, now: now}
}

func (a *app) Logger() internal.Logger { return a.logger }
func (a *app) Coach() Commander        { return a.coach }
func (a *app) Now() time.Time          { return a.now() }
