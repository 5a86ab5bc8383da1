package service

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/yourname/healthcoach/internal"
	"github.com/yourname/healthcoach/internal/codec"
)

// RecordStore is the part of storage.Store the coach needs.
type RecordStore interface {
	Get(ctx context.Context, userID uint64) (*internal.UserRecord, int, error)
	Update(ctx context.Context, userID uint64, fn func(rec *internal.UserRecord) error) (int, error)
	UpdateOrCreate(ctx context.Context, userID uint64, fn func(rec *internal.UserRecord) error) (int, error)
	Export(ctx context.Context, userID uint64) (codec.Row, error)
}

// Coach implements one operation per user command. Every operation takes
// the caller's notion of now so time-dependent results are reproducible.
type Coach struct {
	store  RecordStore
	logger internal.Logger
	pick   func(n int) int
}

type Option func(*Coach)

// WithPicker replaces the random choice used for tips and quotes.
func WithPicker(pick func(n int) int) Option {
	return func(c *Coach) { c.pick = pick }
}

func NewCoach(store RecordStore, logger internal.Logger, opts ...Option) *Coach {
	c := &Coach{store: store, logger: logger, pick: rand.IntN}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Coach) Start() HelpResult {
	return HelpResult{Commands: append([]string(nil), Commands...)}
}

func (c *Coach) HealthTip() TipResult {
	return TipResult{Tip: tips[c.pick(len(tips))]}
}

func (c *Coach) Motivate() QuoteResult {
	return QuoteResult{Quote: quotes[c.pick(len(quotes))]}
}

// appendTurns adds lines to a newline-joined transcript.
func appendTurns(conv string, lines ...string) string {
	all := lines
	if conv != "" {
		all = append([]string{conv}, lines...)
	}
	return strings.Join(all, "\n")
}

func lastLine(conv string) string {
	if i := strings.LastIndex(conv, "\n"); i >= 0 {
		return conv[i+1:]
	}
	return conv
}
