// Package reconcile converts between a log entry's denormalized display
// strings and the structured, per-kind field set the edit form works with,
// and applies a confirmed edit back onto the display representation without
// refetching from the tracker API. The positional parsing here is an
// isolated adapter: the display formats are produced upstream and these
// patterns must not leak into other packages.
package reconcile

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/fitweb/fitweb/internal/model"
)

// PlaceholderSymptom is the description the backend substitutes when a
// wellness entry has no symptom label. It is never treated as user input.
const PlaceholderSymptom = "Symptom Score"

var (
	leadingIntPattern = regexp.MustCompile(`^\s*(\d+)`)
	exercisePattern   = regexp.MustCompile(`^\s*(\d+)x(\d+)\s*@\s*([0-9]+(?:\.[0-9]+)?)`)
	decimalPattern    = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)
)

type MealFields struct {
	Timestamp   string `json:"timestamp"`
	Description string `json:"description"`
	Calories    int    `json:"calories"`
	ProteinG    int    `json:"protein_g"`
	CarbsG      int    `json:"carbs_g"`
	FatG        int    `json:"fat_g"`
}

type WorkoutFields struct {
	Timestamp               string `json:"timestamp"`
	Description             string `json:"description"`
	EstimatedCaloriesBurned int    `json:"estimated_calories_burned"`
}

type ExerciseFields struct {
	Timestamp    string  `json:"timestamp"`
	ExerciseName string  `json:"exercise_name"`
	Sets         int     `json:"sets"`
	Reps         int     `json:"reps"`
	WeightLbs    float64 `json:"weight_lbs"`
	Notes        string  `json:"notes"`
}

type WeightFields struct {
	Timestamp string  `json:"timestamp"`
	WeightLbs float64 `json:"weight_lbs"`
}

type WellnessFields struct {
	Timestamp    string `json:"timestamp"`
	SymptomScore int    `json:"symptom_score"`
	Symptom      string `json:"symptom"`
}

// Fields is the tagged union over the five editable field sets. Exactly the
// variant matching Kind is non-nil.
type Fields struct {
	Kind     model.EntryKind `json:"type"`
	Meal     *MealFields     `json:"meal,omitempty"`
	Workout  *WorkoutFields  `json:"workout,omitempty"`
	Exercise *ExerciseFields `json:"exercise,omitempty"`
	Weight   *WeightFields   `json:"weight,omitempty"`
	Wellness *WellnessFields `json:"wellness,omitempty"`
}

// Decompose extracts the editable field set from an entry's display strings.
// Numbers are pulled by fixed positional parsing; anything that does not
// match defaults to zero or empty rather than erroring.
func Decompose(e model.LogEntry) (Fields, error) {
	ts := FormatLocal(e.Timestamp)

	switch e.Type {
	case model.KindMeal:
		return Fields{Kind: e.Type, Meal: &MealFields{
			Timestamp:   ts,
			Description: e.Description,
			Calories:    leadingInt(e.Value),
			ProteinG:    intOrZero(e.Protein),
			CarbsG:      intOrZero(e.Carbs),
			FatG:        intOrZero(e.Fat),
		}}, nil

	case model.KindWorkout:
		return Fields{Kind: e.Type, Workout: &WorkoutFields{
			Timestamp:               ts,
			Description:             e.Description,
			EstimatedCaloriesBurned: leadingInt(e.Value),
		}}, nil

	case model.KindExercise:
		f := &ExerciseFields{Timestamp: ts, ExerciseName: e.Description}
		if m := exercisePattern.FindStringSubmatch(e.Value); m != nil {
			f.Sets, _ = strconv.Atoi(m[1])
			f.Reps, _ = strconv.Atoi(m[2])
			f.WeightLbs, _ = strconv.ParseFloat(m[3], 64)
		}
		// Notes are not reconstructable from the display string; the
		// field always starts blank.
		return Fields{Kind: e.Type, Exercise: f}, nil

	case model.KindWeight:
		f := &WeightFields{Timestamp: ts}
		if m := decimalPattern.FindString(e.Value); m != "" {
			f.WeightLbs, _ = strconv.ParseFloat(m, 64)
		}
		return Fields{Kind: e.Type, Weight: f}, nil

	case model.KindWellness:
		symptom := e.Description
		if symptom == PlaceholderSymptom {
			symptom = ""
		}
		return Fields{Kind: e.Type, Wellness: &WellnessFields{
			Timestamp:    ts,
			SymptomScore: leadingInt(e.Value),
			Symptom:      symptom,
		}}, nil
	}
	return Fields{}, fmt.Errorf("unknown log entry kind %q", e.Type)
}

// Recompose is the inverse of Decompose: it produces the patched entry to
// merge into the in-memory list after a confirmed save, so the displayed row
// updates from the submitted values with no refetch.
func Recompose(f Fields, e model.LogEntry) (model.LogEntry, error) {
	switch f.Kind {
	case model.KindMeal:
		if f.Meal == nil {
			return e, missingVariant(f.Kind)
		}
		ts, err := ToInstant(f.Meal.Timestamp)
		if err != nil {
			return e, err
		}
		e.Timestamp = ts
		e.Description = f.Meal.Description
		e.Value = fmt.Sprintf("%d kcal", f.Meal.Calories)
		e.Protein = intPtr(f.Meal.ProteinG)
		e.Carbs = intPtr(f.Meal.CarbsG)
		e.Fat = intPtr(f.Meal.FatG)
		return e, nil

	case model.KindWorkout:
		if f.Workout == nil {
			return e, missingVariant(f.Kind)
		}
		ts, err := ToInstant(f.Workout.Timestamp)
		if err != nil {
			return e, err
		}
		e.Timestamp = ts
		e.Description = f.Workout.Description
		e.Value = fmt.Sprintf("%d kcal burned", f.Workout.EstimatedCaloriesBurned)
		return e, nil

	case model.KindExercise:
		if f.Exercise == nil {
			return e, missingVariant(f.Kind)
		}
		ts, err := ToInstant(f.Exercise.Timestamp)
		if err != nil {
			return e, err
		}
		e.Timestamp = ts
		e.Description = f.Exercise.ExerciseName
		e.Value = fmt.Sprintf("%dx%d @ %s lbs", f.Exercise.Sets, f.Exercise.Reps, formatWeight(f.Exercise.WeightLbs))
		return e, nil

	case model.KindWeight:
		if f.Weight == nil {
			return e, missingVariant(f.Kind)
		}
		ts, err := ToInstant(f.Weight.Timestamp)
		if err != nil {
			return e, err
		}
		e.Timestamp = ts
		e.Description = "Weigh-In"
		e.Value = fmt.Sprintf("%s lbs", formatWeight(f.Weight.WeightLbs))
		return e, nil

	case model.KindWellness:
		if f.Wellness == nil {
			return e, missingVariant(f.Kind)
		}
		ts, err := ToInstant(f.Wellness.Timestamp)
		if err != nil {
			return e, err
		}
		e.Timestamp = ts
		e.Description = f.Wellness.Symptom
		if e.Description == "" {
			e.Description = PlaceholderSymptom
		}
		e.Value = fmt.Sprintf("%d/10", f.Wellness.SymptomScore)
		return e, nil
	}
	return e, fmt.Errorf("unknown log entry kind %q", f.Kind)
}

// UpdatePayload builds the structured body for the tracker API's
// PUT /log/{type}/{id}, with the floating timestamp converted back to an
// absolute instant.
func (f Fields) UpdatePayload() (any, error) {
	switch f.Kind {
	case model.KindMeal:
		if f.Meal == nil {
			return nil, missingVariant(f.Kind)
		}
		ts, err := ToInstant(f.Meal.Timestamp)
		if err != nil {
			return nil, err
		}
		out := *f.Meal
		out.Timestamp = ts
		return out, nil
	case model.KindWorkout:
		if f.Workout == nil {
			return nil, missingVariant(f.Kind)
		}
		ts, err := ToInstant(f.Workout.Timestamp)
		if err != nil {
			return nil, err
		}
		out := *f.Workout
		out.Timestamp = ts
		return out, nil
	case model.KindExercise:
		if f.Exercise == nil {
			return nil, missingVariant(f.Kind)
		}
		ts, err := ToInstant(f.Exercise.Timestamp)
		if err != nil {
			return nil, err
		}
		out := *f.Exercise
		out.Timestamp = ts
		return out, nil
	case model.KindWeight:
		if f.Weight == nil {
			return nil, missingVariant(f.Kind)
		}
		ts, err := ToInstant(f.Weight.Timestamp)
		if err != nil {
			return nil, err
		}
		out := *f.Weight
		out.Timestamp = ts
		return out, nil
	case model.KindWellness:
		if f.Wellness == nil {
			return nil, missingVariant(f.Kind)
		}
		ts, err := ToInstant(f.Wellness.Timestamp)
		if err != nil {
			return nil, err
		}
		out := *f.Wellness
		out.Timestamp = ts
		return out, nil
	}
	return nil, fmt.Errorf("unknown log entry kind %q", f.Kind)
}

func missingVariant(kind model.EntryKind) error {
	return fmt.Errorf("fields payload missing %q variant", kind)
}

func leadingInt(s string) int {
	m := leadingIntPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func intPtr(n int) *int {
	return &n
}

// formatWeight prints 200 as "200" and 202.5 as "202.5", matching the
// backend's number formatting in display values.
func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}
