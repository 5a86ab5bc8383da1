package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/healthcoach/internal"
	"github.com/yourname/healthcoach/internal/aggregate"
	"github.com/yourname/healthcoach/internal/codec"
	"github.com/yourname/healthcoach/internal/goal"
	"github.com/yourname/healthcoach/internal/storage"
)

var now = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

func newCoach(t *testing.T) (*Coach, *storage.Store) {
	t.Helper()
	repo, err := storage.NewFileStorage(filepath.Join(t.TempDir(), "users.csv"), internal.NopLogger())
	require.NoError(t, err)
	st := storage.NewStore(repo, internal.NopLogger())
	t.Cleanup(func() { _ = st.Close() })
	return NewCoach(st, internal.NopLogger(), WithPicker(func(int) int { return 0 })), st
}

func withProfile(t *testing.T, c *Coach, id uint64, goal string) {
	t.Helper()
	_, err := c.SetProfile(context.Background(), id, now, []string{"Ana", "70", "175", goal})
	require.NoError(t, err)
}

func TestSetProfileCreatesThenUpdates(t *testing.T) {
	c, st := newCoach(t)
	ctx := context.Background()

	res, err := c.SetProfile(ctx, 1, now, []string{"Ana", "70", "175", "fitness"})
	require.NoError(t, err)
	assert.True(t, res.Created)

	_, err = c.LogWater(ctx, 1, now, []string{"500"})
	require.NoError(t, err)

	res, err = c.SetProfile(ctx, 1, now, []string{"Ana", "68.5", "175", "weight_loss"})
	require.NoError(t, err)
	assert.False(t, res.Created)

	rec, _, err := st.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 68.5, rec.WeightKg)
	assert.Equal(t, "weight_loss", rec.Goal)
	assert.Len(t, rec.Water, 1, "profile update keeps logs")
}

func TestSetProfileRejectsBadArgs(t *testing.T) {
	c, _ := newCoach(t)
	for _, args := range [][]string{
		nil,
		{"Ana", "70", "175"},
		{"Ana", "heavy", "175", "fitness"},
		{"Ana", "70", "-1", "fitness"},
	} {
		_, err := c.SetProfile(context.Background(), 1, now, args)
		assert.ErrorIs(t, err, internal.ErrInvalidArgument, "%v", args)
	}
}

func TestCommandsRequireProfile(t *testing.T) {
	c, _ := newCoach(t)
	ctx := context.Background()

	_, err := c.LogWater(ctx, 9, now, []string{"250"})
	assert.ErrorIs(t, err, internal.ErrNotFound)
	_, err = c.AddReminder(ctx, 9, now, []string{"walk", "at", "18:00"})
	assert.ErrorIs(t, err, internal.ErrNotFound)
	_, err = c.HealthSummary(ctx, 9, now)
	assert.ErrorIs(t, err, internal.ErrNotFound)
	_, err = c.HealthQuiz(ctx, 9, now)
	assert.ErrorIs(t, err, internal.ErrNotFound)
	_, err = c.ExportData(ctx, 9, now)
	assert.ErrorIs(t, err, internal.ErrNotFound)
}

func TestLogWaterTotalsAndNudge(t *testing.T) {
	c, _ := newCoach(t)
	ctx := context.Background()
	withProfile(t, c, 1, "fitness")

	res, err := c.LogWater(ctx, 1, now, []string{"1000"})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, res.TodayTotal)
	assert.True(t, res.Nudge)

	res, err = c.LogWater(ctx, 1, now.Add(time.Hour), []string{"600"})
	require.NoError(t, err)
	assert.Equal(t, 1600.0, res.TodayTotal)
	assert.False(t, res.Nudge)

	res, err = c.LogWater(ctx, 1, now.AddDate(0, 0, 1), []string{"200"})
	require.NoError(t, err)
	assert.Equal(t, 200.0, res.TodayTotal, "totals reset at the next day")
}

func TestLogArgumentValidation(t *testing.T) {
	c, _ := newCoach(t)
	ctx := context.Background()
	withProfile(t, c, 1, "fitness")

	cases := []struct {
		name string
		run  func() error
	}{
		{"water negative", func() error { _, err := c.LogWater(ctx, 1, now, []string{"-5"}); return err }},
		{"water decimal", func() error { _, err := c.LogWater(ctx, 1, now, []string{"2.5"}); return err }},
		{"sleep two dots", func() error { _, err := c.LogSleep(ctx, 1, now, []string{"7.5.1"}); return err }},
		{"sleep over a day", func() error { _, err := c.LogSleep(ctx, 1, now, []string{"25"}); return err }},
		{"calories no meal", func() error { _, err := c.LogCalories(ctx, 1, now, []string{"300"}); return err }},
		{"workout empty", func() error { _, err := c.LogWorkout(ctx, 1, now, nil); return err }},
		{"stress zero", func() error { _, err := c.LogStress(ctx, 1, now, []string{"0"}); return err }},
		{"stress six", func() error { _, err := c.LogStress(ctx, 1, now, []string{"6"}); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.run(), internal.ErrInvalidArgument)
		})
	}
}

func TestLogNudges(t *testing.T) {
	c, _ := newCoach(t)
	ctx := context.Background()
	withProfile(t, c, 1, "fitness")

	sleep, err := c.LogSleep(ctx, 1, now, []string{"6.5"})
	require.NoError(t, err)
	assert.True(t, sleep.Nudge)
	assert.Equal(t, 6.5, sleep.Entry.Amount)

	kcal, err := c.LogCalories(ctx, 1, now, []string{"2100", "big", "lunch"})
	require.NoError(t, err)
	assert.True(t, kcal.Nudge)
	assert.Equal(t, "big lunch", kcal.Entry.Extra)

	stress, err := c.LogStress(ctx, 1, now, []string{"3"})
	require.NoError(t, err)
	assert.False(t, stress.Nudge)

	workout, err := c.LogWorkout(ctx, 1, now, []string{"30min", "run;", "5:30", "pace"})
	require.NoError(t, err)
	assert.Equal(t, "30min run; 5:30 pace", workout.Entry.Text)
	assert.False(t, workout.Nudge)
}

func TestReminderAndDueChat(t *testing.T) {
	c, st := newCoach(t)
	ctx := context.Background()
	withProfile(t, c, 1, "fitness")

	r, err := c.AddReminder(ctx, 1, now, []string{"drink", "water", "at", "09:30"})
	require.NoError(t, err)
	assert.Equal(t, "drink water at 09:30", r.Reminder)

	res, err := c.Message(ctx, 1, now, "I have a headache")
	require.NoError(t, err)
	assert.True(t, res.Persisted)
	assert.Equal(t, TopicHeadache, res.Topic)
	require.Len(t, res.Due, 1)
	assert.Equal(t, "drink water at 09:30", res.Due[0].Text)

	res, err = c.Message(ctx, 1, now.Add(time.Minute), "hello")
	require.NoError(t, err)
	assert.Empty(t, res.Due)
	assert.Equal(t, generalAdvice, res.Advice)

	rec, _, err := st.Get(ctx, 1)
	require.NoError(t, err)
	assert.Contains(t, rec.Conversation, "User: I have a headache")
	assert.Contains(t, rec.Conversation, "Reminder: drink water at 09:30")
}

func TestMessageUnknownUserPersistsNothing(t *testing.T) {
	c, st := newCoach(t)
	ctx := context.Background()

	res, err := c.Message(ctx, 42, now, "any diet tips?")
	require.NoError(t, err)
	assert.False(t, res.Persisted)
	assert.Equal(t, TopicDiet, res.Topic)

	_, _, err = st.Get(ctx, 42)
	assert.ErrorIs(t, err, internal.ErrNotFound)
}

func TestQuizAnswer(t *testing.T) {
	c, _ := newCoach(t)
	ctx := context.Background()
	withProfile(t, c, 1, "fitness")

	q, err := c.HealthQuiz(ctx, 1, now)
	require.NoError(t, err)
	assert.Equal(t, QuizQuestion, q.Question)

	res, err := c.Message(ctx, 1, now, "8")
	require.NoError(t, err)
	require.NotNil(t, res.Quiz)
	assert.Equal(t, 8, res.Quiz.Hours)
	assert.True(t, res.Quiz.InRange)

	// the quiz is answered, so a second number is ordinary chat
	res, err = c.Message(ctx, 1, now, "5")
	require.NoError(t, err)
	assert.Nil(t, res.Quiz)

	_, err = c.HealthQuiz(ctx, 1, now)
	require.NoError(t, err)
	res, err = c.Message(ctx, 1, now, "5")
	require.NoError(t, err)
	require.NotNil(t, res.Quiz)
	assert.False(t, res.Quiz.InRange)
}

func TestWearableDataRoutesToChat(t *testing.T) {
	c, st := newCoach(t)
	ctx := context.Background()
	withProfile(t, c, 1, "fitness")

	res, err := c.WearableData(ctx, 1, now, []string{"8000", "72"})
	require.NoError(t, err)
	assert.True(t, res.Persisted)

	rec, _, err := st.Get(ctx, 1)
	require.NoError(t, err)
	assert.Contains(t, rec.Conversation, "User: Wearable data: 8000 steps, heart_rate 72 bpm")

	_, err = c.WearableData(ctx, 1, now, []string{"8000"})
	assert.ErrorIs(t, err, internal.ErrInvalidArgument)
}

func TestBMI(t *testing.T) {
	bmi, cat := BMI(70, 175)
	assert.InDelta(t, 22.86, bmi, 0.01)
	assert.Equal(t, "Normal", cat)

	_, cat = BMI(50, 175)
	assert.Equal(t, "Underweight", cat)
	_, cat = BMI(80, 175)
	assert.Equal(t, "Overweight", cat)
	_, cat = BMI(100, 175)
	assert.Equal(t, "Obese", cat)

	c, _ := newCoach(t)
	withProfile(t, c, 1, "fitness")
	res, err := c.BMI(context.Background(), 1, now)
	require.NoError(t, err)
	assert.Equal(t, "Normal", res.Category)
}

func TestProgressAndNotes(t *testing.T) {
	c, st := newCoach(t)
	ctx := context.Background()
	withProfile(t, c, 1, "weight_loss")

	p, err := c.Progress(ctx, 1, now)
	require.NoError(t, err)
	assert.Empty(t, p.Progress)

	_, err = c.UpdateProgress(ctx, 1, now, []string{"-2", "kg"})
	require.NoError(t, err)

	_, err = c.Feedback(ctx, 1, now, []string{"love", "it;", "thanks"})
	require.NoError(t, err)
	n, err := c.ReportIssue(ctx, 1, now, []string{"crash"})
	require.NoError(t, err)
	assert.Equal(t, "Issue: crash", n.Note)
	assert.True(t, n.Issue)

	rec, _, err := st.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "-2 kg", rec.Progress)
	assert.Equal(t, []string{"love it; thanks", "Issue: crash"}, rec.Feedback)

	g, err := c.GoalProgress(ctx, 1, now)
	require.NoError(t, err)
	assert.Equal(t, goal.KindWeightLoss, g.Kind)
	require.NotNil(t, g.WeightChangeKg)
	assert.Equal(t, -2.0, *g.WeightChangeKg)
}

func TestHealthSummaryAndTrend(t *testing.T) {
	c, _ := newCoach(t)
	ctx := context.Background()
	withProfile(t, c, 1, "fitness")

	_, err := c.LogWater(ctx, 1, now.AddDate(0, 0, -2), []string{"1000"})
	require.NoError(t, err)
	_, err = c.LogWater(ctx, 1, now, []string{"1200"})
	require.NoError(t, err)
	_, err = c.LogWater(ctx, 1, now.AddDate(0, 0, -30), []string{"9000"})
	require.NoError(t, err)
	_, err = c.LogWorkout(ctx, 1, now, []string{"yoga"})
	require.NoError(t, err)

	sum, err := c.HealthSummary(ctx, 1, now)
	require.NoError(t, err)
	assert.Equal(t, 1100.0, sum.Summary.AvgWaterPerDay)
	assert.Equal(t, 1, sum.Summary.WorkoutSessions)
	assert.InDelta(t, 22.86, sum.BMI, 0.01)

	tr, err := c.WeeklyTrend(ctx, 1, now)
	require.NoError(t, err)
	require.Len(t, tr.Trends, len(internal.Metrics))
	assert.Equal(t, internal.MetricWater, tr.Trends[0].Metric)
	assert.Equal(t, aggregate.Improving, tr.Trends[0].Trend)
	assert.Equal(t, aggregate.NoData, tr.Trends[1].Trend)
}

func TestExportData(t *testing.T) {
	c, _ := newCoach(t)
	ctx := context.Background()
	withProfile(t, c, 7, "fitness")
	_, err := c.LogCalories(ctx, 7, now, []string{"400", "soup"})
	require.NoError(t, err)

	res, err := c.ExportData(ctx, 7, now)
	require.NoError(t, err)
	assert.Equal(t, "health_data_7.csv", res.Filename)

	rows, err := csv.NewReader(bytes.NewReader(res.CSV)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, codec.Columns, rows[0])
	assert.Equal(t, "7", rows[1][0])
	assert.Equal(t, "2024-03-10:400:soup", rows[1][len(rows[1])-3])
}

func TestDispatch(t *testing.T) {
	c, _ := newCoach(t)
	ctx := context.Background()

	out, err := c.Dispatch(ctx, 1, now, "/start", nil)
	require.NoError(t, err)
	assert.IsType(t, HelpResult{}, out)

	out, err = c.Dispatch(ctx, 1, now, "PROFILE", []string{"Ana", "70", "175", "fitness"})
	require.NoError(t, err)
	assert.IsType(t, &ProfileResult{}, out)

	out, err = c.Dispatch(ctx, 1, now, "health_tip", nil)
	require.NoError(t, err)
	assert.Equal(t, TipResult{Tip: tips[0]}, out)

	_, err = c.Dispatch(ctx, 1, now, "teleport", nil)
	assert.ErrorIs(t, err, internal.ErrInvalidArgument)
}
