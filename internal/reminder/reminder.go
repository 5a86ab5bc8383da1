// Package reminder parses stored "<task> at HH:MM" reminders and decides
// which of them fall on the current minute.
package reminder

import (
	"fmt"
	"strings"
	"time"

	"github.com/yourname/healthcoach/internal"
)

const sep = " at "

// Format builds the stored reminder text for a task and clock time.
func Format(task, at string) string {
	return strings.TrimSpace(task) + sep + strings.TrimSpace(at)
}

// Parse splits a stored reminder on its last " at " and validates the
// 24-hour clock time that follows.
func Parse(raw string) (internal.ReminderSpec, error) {
	i := strings.LastIndex(raw, sep)
	if i < 0 {
		return internal.ReminderSpec{}, fmt.Errorf("%w: reminder %q has no time", internal.ErrMalformedEntry, raw)
	}
	at, err := time.Parse("15:04", strings.TrimSpace(raw[i+len(sep):]))
	if err != nil {
		return internal.ReminderSpec{}, fmt.Errorf("%w: reminder %q: %v", internal.ErrMalformedEntry, raw, err)
	}
	return internal.ReminderSpec{
		Text: raw,
		At:   internal.TimeOfDay{Hour: at.Hour(), Minute: at.Minute()},
	}, nil
}

// Due returns reminders whose time equals now's hour and minute. There is
// no catch-up: a reminder is only due during the exact minute it targets.
// Malformed reminders are skipped and counted.
func Due(reminders []string, now time.Time) ([]internal.ReminderSpec, int) {
	var (
		due     []internal.ReminderSpec
		skipped int
	)
	for _, raw := range reminders {
		if raw == "" {
			continue
		}
		spec, err := Parse(raw)
		if err != nil {
			skipped++
			continue
		}
		if spec.At.Hour == now.Hour() && spec.At.Minute == now.Minute() {
			due = append(due, spec)
		}
	}
	return due, skipped
}
