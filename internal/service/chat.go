package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yourname/healthcoach/internal"
	"github.com/yourname/healthcoach/internal/reminder"
)

const usageWearable = "/wearable_data <steps> <heart_rate>"

// HealthQuiz asks the sleep quiz and records the question in the transcript.
// A numeric reply to Message is treated as the answer while it is pending.
func (c *Coach) HealthQuiz(ctx context.Context, userID uint64, now time.Time) (*QuizResult, error) {
	_, err := c.store.Update(ctx, userID, func(rec *internal.UserRecord) error {
		rec.Conversation = appendTurns(rec.Conversation, "Bot: "+QuizQuestion)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &QuizResult{Question: QuizQuestion}, nil
}

// Message answers free text. For known users the exchange is appended to
// the transcript and any reminder due this minute is attached. Unknown users
// get advice only; nothing is stored for them.
func (c *Coach) Message(ctx context.Context, userID uint64, now time.Time, text string) (*ChatResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty message", internal.ErrInvalidArgument)
	}

	var res *ChatResult
	_, err := c.store.Update(ctx, userID, func(rec *internal.UserRecord) error {
		var reply string
		res, reply = c.respond(rec, now, text)
		rec.Conversation = appendTurns(rec.Conversation, "User: "+text, "Bot: "+reply)
		return nil
	})
	switch {
	case errors.Is(err, internal.ErrNotFound):
		topic, advice := Advise(text)
		return &ChatResult{Topic: topic, Advice: advice}, nil
	case err != nil:
		return nil, err
	}
	res.Persisted = true
	return res, nil
}

func (c *Coach) respond(rec *internal.UserRecord, now time.Time, text string) (*ChatResult, string) {
	if lastLine(rec.Conversation) == "Bot: "+QuizQuestion {
		if hours, err := strconv.Atoi(text); err == nil && hours >= 0 {
			q := &QuizAnswerResult{Hours: hours, InRange: hours >= 7 && hours <= 9}
			reply := fmt.Sprintf("You aim for %d hours of sleep. ", hours)
			if q.InRange {
				reply += "Great!"
			} else {
				reply += "Aim for 7-9 hours for optimal health."
			}
			return &ChatResult{Topic: TopicQuiz, Advice: reply, Quiz: q}, reply
		}
	}

	topic, advice := Advise(text)
	due, skipped := reminder.Due(rec.Reminders, now)
	if skipped > 0 {
		c.logger.Warnf("user %d has %d malformed reminders", rec.UserID, skipped)
	}
	reply := advice
	for _, r := range due {
		reply += "\nReminder: " + r.Text
	}
	return &ChatResult{Topic: topic, Advice: advice, Due: due, Skipped: skipped}, reply
}

// WearableData turns a steps and heart-rate reading into a chat message.
func (c *Coach) WearableData(ctx context.Context, userID uint64, now time.Time, args []string) (*ChatResult, error) {
	if len(args) < 2 {
		return nil, invalid(usageWearable, nil)
	}
	steps, err := parseWhole(args[0], usageWearable)
	if err != nil {
		return nil, err
	}
	hr, err := parseWhole(args[1], usageWearable)
	if err != nil {
		return nil, err
	}
	req := WearableRequest{Steps: steps, HeartRate: hr}
	if err := check(&req, usageWearable); err != nil {
		return nil, err
	}
	return c.Message(ctx, userID, now, fmt.Sprintf("Wearable data: %d steps, heart_rate %d bpm", req.Steps, req.HeartRate))
}
