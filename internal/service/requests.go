package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yourname/healthcoach/internal"
)

var validate = validator.New()

type ProfileRequest struct {
	Name     string  `validate:"required"`
	WeightKg float64 `validate:"gt=0,lte=700"`
	HeightCm float64 `validate:"gt=0,lte=300"`
	Goal     string  `validate:"required"`
}

type ReminderRequest struct {
	Task string `validate:"required"`
	At   string `validate:"required"`
}

type WaterRequest struct {
	Ml int `validate:"gte=0"`
}

type SleepRequest struct {
	Hours float64 `validate:"gte=0,lte=24"`
}

type CaloriesRequest struct {
	Calories int    `validate:"gte=0"`
	Meal     string `validate:"required"`
}

type WorkoutRequest struct {
	Description string `validate:"required"`
}

type StressRequest struct {
	Level int `validate:"gte=1,lte=5"`
}

type WearableRequest struct {
	Steps     int `validate:"gte=0"`
	HeartRate int `validate:"gt=0,lte=300"`
}

type TextRequest struct {
	Text string `validate:"required"`
}

// check runs struct validation and reports failures as invalid arguments.
func check(req interface{}, usage string) error {
	if err := validate.Struct(req); err != nil {
		return invalid(usage, err)
	}
	return nil
}

func invalid(usage string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: usage: %s", internal.ErrInvalidArgument, usage)
	}
	return fmt.Errorf("%w: usage: %s: %v", internal.ErrInvalidArgument, usage, cause)
}

// parseWhole accepts plain digit strings only, so "+5", "-1" and "1e3" are rejected.
func parseWhole(arg, usage string) (int, error) {
	if arg == "" || strings.TrimLeft(arg, "0123456789") != "" {
		return 0, invalid(usage, fmt.Errorf("%q is not a whole number", arg))
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, invalid(usage, err)
	}
	return n, nil
}

// parseDecimal accepts digits with at most one decimal point.
func parseDecimal(arg, usage string) (float64, error) {
	if arg == "" || strings.Count(arg, ".") > 1 || strings.Trim(arg, "0123456789.") != "" || arg == "." {
		return 0, invalid(usage, fmt.Errorf("%q is not a number", arg))
	}
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, invalid(usage, err)
	}
	return v, nil
}

func parseFloatArg(arg, usage string) (float64, error) {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, invalid(usage, fmt.Errorf("%q is not a number", arg))
	}
	return v, nil
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
