// Package goal interprets a user's goal tag and free-text progress.
package goal

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yourname/healthcoach/internal"
	"github.com/yourname/healthcoach/internal/aggregate"
)

type Kind string

const (
	KindWeightLoss Kind = "weight_loss"
	KindFitness    Kind = "fitness"
	KindCustom     Kind = "custom"
)

const (
	WeightLossTip = "Aim for 0.5-1kg loss per week for healthy progress."
	FitnessTip    = "Aim for 3-5 workouts per week for fitness goals."
)

// Report is the structured outcome of a goal evaluation. Exactly one of
// the kind-specific sections is meaningful, selected by Kind.
type Report struct {
	Goal string `json:"goal"`
	Kind Kind   `json:"kind"`

	// weight loss
	WeightChangeKg *float64 `json:"weight_change_kg,omitempty"`
	NoValidData    bool     `json:"no_valid_data,omitempty"`

	// fitness
	WorkoutsLast7Days int `json:"workouts_last_7_days,omitempty"`

	Tip string `json:"tip,omitempty"`
}

func classify(goal string) Kind {
	switch strings.ToLower(strings.TrimSpace(goal)) {
	case "weight_loss", "lose_weight":
		return KindWeightLoss
	case "fitness", "get_fit":
		return KindFitness
	}
	return KindCustom
}

// Evaluate builds the report for rec as of now. It performs no I/O.
func Evaluate(rec *internal.UserRecord, now time.Time) Report {
	r := Report{Goal: rec.Goal, Kind: classify(rec.Goal)}
	switch r.Kind {
	case KindWeightLoss:
		if kg, ok := ParseKg(rec.Progress); ok {
			r.WeightChangeKg = &kg
			r.Tip = WeightLossTip
		} else {
			r.NoValidData = true
		}
	case KindFitness:
		start := aggregate.WindowStart(now, aggregate.DefaultWindowDays)
		r.WorkoutsLast7Days = len(aggregate.WindowEntries(rec.Workout, start))
		r.Tip = FitnessTip
	}
	return r
}

// ParseKg reads the number leading up to the first "kg" in progress, so
// "-2.3kg" and "-2.3 kg" parse while "lost 2kg" does not.
func ParseKg(progress string) (float64, bool) {
	lower := strings.ToLower(progress)
	i := strings.Index(lower, "kg")
	if i < 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(progress[:i]), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
