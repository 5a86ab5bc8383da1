package reminder

import (
	"context"
	"time"

	"github.com/yourname/healthcoach/internal"
)

// Lister returns every stored user record and the number of malformed
// tokens dropped while decoding them.
type Lister interface {
	ListAll(ctx context.Context) ([]*internal.UserRecord, int, error)
}

// Notify delivers one due reminder. Delivery is best effort.
type Notify func(ctx context.Context, userID uint64, r internal.ReminderSpec)

// Poller checks every user's reminders once per tick and hands the ones due
// in the current minute to Notify. A failed listing is retried after
// Backoff until the next tick would be missed.
type Poller struct {
	Source   Lister
	Notify   Notify
	Interval time.Duration
	Backoff  time.Duration
	Now      func() time.Time
	Logger   internal.Logger
}

// Run polls until ctx is cancelled and then returns ctx.Err().
func (p *Poller) Run(ctx context.Context) error {
	interval := p.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	p.Logger.Infof("reminder poller started, interval=%s", interval)
	for {
		select {
		case <-ctx.Done():
			p.Logger.Info("reminder poller stopped")
			return ctx.Err()
		case <-t.C:
			p.pollWithRetry(ctx, interval)
		}
	}
}

func (p *Poller) pollWithRetry(ctx context.Context, interval time.Duration) {
	backoff := p.Backoff
	if backoff <= 0 {
		backoff = interval / 4
	}
	deadline := time.Now().Add(interval - backoff)
	for attempt := 1; ; attempt++ {
		err := p.Poll(ctx)
		if err == nil {
			return
		}
		p.Logger.Warnf("reminder poll attempt %d failed: %v", attempt, err)
		if time.Now().Add(backoff).After(deadline) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
	}
}

// Poll runs a single pass over all users.
func (p *Poller) Poll(ctx context.Context) error {
	now := time.Now().UTC()
	if p.Now != nil {
		now = p.Now()
	}
	recs, skipped, err := p.Source.ListAll(ctx)
	if err != nil {
		return err
	}
	if skipped > 0 {
		p.Logger.Warnf("reminder poll skipped %d malformed log tokens", skipped)
	}
	for _, rec := range recs {
		due, bad := Due(rec.Reminders, now)
		if bad > 0 {
			p.Logger.Debugf("user %d has %d malformed reminders", rec.UserID, bad)
		}
		for _, r := range due {
			p.Notify(ctx, rec.UserID, r)
		}
	}
	return nil
}
