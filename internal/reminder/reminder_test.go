package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/healthcoach/internal"
)

func at(h, m, s int) time.Time {
	return time.Date(2024, 5, 1, h, m, s, 0, time.Local)
}

func TestDueExactMinute(t *testing.T) {
	reminders := []string{"drink water at 09:00"}

	due, skipped := Due(reminders, at(9, 0, 0))
	require.Len(t, due, 1)
	assert.Zero(t, skipped)
	assert.Equal(t, "drink water at 09:00", due[0].Text)
	assert.Equal(t, internal.TimeOfDay{Hour: 9, Minute: 0}, due[0].At)

	due, _ = Due(reminders, at(9, 0, 59))
	assert.Len(t, due, 1)

	due, _ = Due(reminders, at(9, 1, 0))
	assert.Empty(t, due)
}

func TestDueSkipsMalformed(t *testing.T) {
	reminders := []string{"stretch at 25:00", "no time here", "", "meds at 21:30", "walk at 21:30"}
	due, skipped := Due(reminders, at(21, 30, 0))
	assert.Len(t, due, 2)
	assert.Equal(t, 2, skipped)
}

func TestParseUsesLastAt(t *testing.T) {
	spec, err := Parse("look at the sky at 07:05")
	require.NoError(t, err)
	assert.Equal(t, internal.TimeOfDay{Hour: 7, Minute: 5}, spec.At)

	_, err = Parse("call mom at noon")
	assert.ErrorIs(t, err, internal.ErrMalformedEntry)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "drink water at 09:00", Format(" drink water ", "09:00"))
}

func TestDueIsIdempotent(t *testing.T) {
	reminders := []string{"walk at 18:30"}
	first, _ := Due(reminders, at(18, 30, 1))
	second, _ := Due(reminders, at(18, 30, 40))
	assert.Equal(t, first, second)
}
