package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/yourname/healthcoach/internal"
	"github.com/yourname/healthcoach/internal/codec"
	"github.com/yourname/healthcoach/internal/reminder"
)

const (
	usageProfile        = "/profile <name> <weight_kg> <height_cm> <goal>"
	usageRemind         = "/remind <task> at <HH:MM>"
	usageUpdateProgress = "/update_progress <progress>"
	usageFeedback       = "/feedback <message>"
	usageReportIssue    = "/report_issue <description>"
)

// SetProfile creates the user's record on first use and otherwise
// overwrites the profile fields, leaving logs untouched.
func (c *Coach) SetProfile(ctx context.Context, userID uint64, now time.Time, args []string) (*ProfileResult, error) {
	if len(args) < 4 {
		return nil, invalid(usageProfile, nil)
	}
	weight, err := parseFloatArg(args[1], usageProfile)
	if err != nil {
		return nil, err
	}
	height, err := parseFloatArg(args[2], usageProfile)
	if err != nil {
		return nil, err
	}
	req := ProfileRequest{Name: args[0], WeightKg: weight, HeightCm: height, Goal: args[3]}
	if err := check(&req, usageProfile); err != nil {
		return nil, err
	}

	res := &ProfileResult{Name: req.Name, WeightKg: req.WeightKg, HeightCm: req.HeightCm, Goal: req.Goal}
	_, err = c.store.UpdateOrCreate(ctx, userID, func(rec *internal.UserRecord) error {
		res.Created = rec.Name == "" && rec.Goal == ""
		rec.Name, rec.WeightKg, rec.HeightCm, rec.Goal = req.Name, req.WeightKg, req.HeightCm, req.Goal
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.logger.Infof("profile set for user %d (created=%t)", userID, res.Created)
	return res, nil
}

// AddReminder stores "<task> at <time>". The time is not checked here;
// malformed reminders are ignored when matching.
func (c *Coach) AddReminder(ctx context.Context, userID uint64, now time.Time, args []string) (*ReminderResult, error) {
	if len(args) < 2 {
		return nil, invalid(usageRemind, nil)
	}
	task := args[:len(args)-1]
	if len(task) > 0 && task[len(task)-1] == "at" {
		task = task[:len(task)-1]
	}
	req := ReminderRequest{Task: joinArgs(task), At: args[len(args)-1]}
	if err := check(&req, usageRemind); err != nil {
		return nil, err
	}

	text := reminder.Format(req.Task, req.At)
	_, err := c.store.Update(ctx, userID, func(rec *internal.UserRecord) error {
		rec.Reminders = append(rec.Reminders, text)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ReminderResult{Reminder: text}, nil
}

func (c *Coach) Progress(ctx context.Context, userID uint64, now time.Time) (*ProgressResult, error) {
	rec, _, err := c.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ProgressResult{Progress: rec.Progress}, nil
}

func (c *Coach) UpdateProgress(ctx context.Context, userID uint64, now time.Time, args []string) (*ProgressResult, error) {
	req := TextRequest{Text: joinArgs(args)}
	if err := check(&req, usageUpdateProgress); err != nil {
		return nil, err
	}
	_, err := c.store.Update(ctx, userID, func(rec *internal.UserRecord) error {
		rec.Progress = req.Text
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ProgressResult{Progress: req.Text, Updated: true}, nil
}

func (c *Coach) BMI(ctx context.Context, userID uint64, now time.Time) (*BMIResult, error) {
	rec, _, err := c.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rec.HeightCm <= 0 || rec.WeightKg <= 0 {
		return nil, fmt.Errorf("%w: profile has no weight or height, set it with %s", internal.ErrInvalidArgument, usageProfile)
	}
	bmi, category := BMI(rec.WeightKg, rec.HeightCm)
	return &BMIResult{BMI: bmi, Category: category}, nil
}

func (c *Coach) Feedback(ctx context.Context, userID uint64, now time.Time, args []string) (*NoteResult, error) {
	return c.addNote(ctx, userID, args, usageFeedback, "")
}

// ReportIssue files the text as feedback prefixed with "Issue: ".
func (c *Coach) ReportIssue(ctx context.Context, userID uint64, now time.Time, args []string) (*NoteResult, error) {
	return c.addNote(ctx, userID, args, usageReportIssue, "Issue: ")
}

func (c *Coach) addNote(ctx context.Context, userID uint64, args []string, usage, prefix string) (*NoteResult, error) {
	req := TextRequest{Text: joinArgs(args)}
	if err := check(&req, usage); err != nil {
		return nil, err
	}
	note := prefix + req.Text
	_, err := c.store.Update(ctx, userID, func(rec *internal.UserRecord) error {
		rec.Feedback = append(rec.Feedback, note)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &NoteResult{Note: note, Issue: prefix != ""}, nil
}

// ExportData renders the user's persisted row as a one-record CSV file.
func (c *Coach) ExportData(ctx context.Context, userID uint64, now time.Time) (*ExportResult, error) {
	row, err := c.store.Export(ctx, userID)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(codec.Columns)
	_ = w.Write(row.Values())
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("%w: export: %v", internal.ErrStorage, err)
	}
	return &ExportResult{
		Filename: fmt.Sprintf("health_data_%d.csv", userID),
		CSV:      buf.Bytes(),
	}, nil
}
