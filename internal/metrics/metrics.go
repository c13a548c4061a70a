// Package metrics holds the pure data-shaping functions behind the dashboard
// views. Everything here is deterministic over already-fetched data: no
// network access, no hidden state, and malformed input degrades to zero
// values or omission instead of errors.
package metrics

import (
	"math"
	"time"

	"github.com/fitweb/fitweb/internal/model"
)

// MacroCalorieSplit decomposes a day's calories by macro for stacked charts.
type MacroCalorieSplit struct {
	ProteinKcal float64 `json:"protein_kcal"`
	CarbsKcal   float64 `json:"carbs_kcal"`
	FatKcal     float64 `json:"fat_kcal"`
}

// MacroCalories converts macro grams to calories: 4 kcal/g for protein and
// carbs, 9 kcal/g for fat.
func MacroCalories(proteinG, carbsG, fatG float64) MacroCalorieSplit {
	return MacroCalorieSplit{
		ProteinKcal: proteinG * 4,
		CarbsKcal:   carbsG * 4,
		FatKcal:     fatG * 9,
	}
}

// Epley1RM estimates a one-rep max from a single set using the Epley formula.
// Non-positive reps or weight yield 0; a true single returns the weight
// unrounded.
func Epley1RM(weightLbs float64, reps int) float64 {
	if reps <= 0 || weightLbs <= 0 {
		return 0
	}
	if reps == 1 {
		return weightLbs
	}
	return math.Round(weightLbs * (1 + float64(reps)/30))
}

// DayVolume is one chart-ready point for an exercise: all sets logged on one
// date merged into combined volume and the best estimated 1RM of the day.
type DayVolume struct {
	Date      string  `json:"date"`
	Volume    float64 `json:"volume"`
	Est1RM    float64 `json:"est_1rm"`
	TopWeight float64 `json:"top_weight_lbs"`
}

// MergeHistoryByDate groups history points by exact date string so multiple
// sets or sessions on the same day chart as a single point. Volume sums
// sets*reps*weight across the day; the day's 1RM is the max across sets, not
// the sum. Output preserves first-seen date order.
func MergeHistoryByDate(points []model.ExerciseHistoryPoint) []DayVolume {
	index := make(map[string]int, len(points))
	merged := make([]DayVolume, 0, len(points))

	for _, p := range points {
		i, ok := index[p.Date]
		if !ok {
			i = len(merged)
			index[p.Date] = i
			merged = append(merged, DayVolume{Date: p.Date})
		}
		merged[i].Volume += float64(p.Sets) * float64(p.Reps) * p.WeightLbs
		if est := Epley1RM(p.WeightLbs, p.Reps); est > merged[i].Est1RM {
			merged[i].Est1RM = est
		}
		if p.WeightLbs > merged[i].TopWeight {
			merged[i].TopWeight = p.WeightLbs
		}
	}
	return merged
}

// MealBucket aggregates the meals of one time-of-day slot.
type MealBucket struct {
	Label    string `json:"label"`
	Calories int    `json:"calories"`
	ProteinG int    `json:"protein_g"`
}

var bucketOrder = []string{"Morning", "Midday", "Afternoon", "Evening"}

// bucketLabel maps an hour to its slot with half-open boundaries:
// [0,11) Morning, [11,15) Midday, [15,18) Afternoon, [18,24) Evening.
func bucketLabel(hour int) string {
	switch {
	case hour < 11:
		return "Morning"
	case hour < 15:
		return "Midday"
	case hour < 18:
		return "Afternoon"
	default:
		return "Evening"
	}
}

// BucketMeals groups meals into time-of-day slots by the hour of their
// timestamp. Empty buckets are omitted and output order is always
// Morning, Midday, Afternoon, Evening regardless of input order. Meals with
// unparseable timestamps are skipped.
func BucketMeals(meals []model.MealDetail) []MealBucket {
	byLabel := make(map[string]*MealBucket, len(bucketOrder))

	for _, m := range meals {
		hour, ok := timestampHour(m.Timestamp)
		if !ok {
			continue
		}
		label := bucketLabel(hour)
		b, ok := byLabel[label]
		if !ok {
			b = &MealBucket{Label: label}
			byLabel[label] = b
		}
		b.Calories += m.Calories
		b.ProteinG += m.ProteinG
	}

	out := make([]MealBucket, 0, len(byLabel))
	for _, label := range bucketOrder {
		if b, ok := byLabel[label]; ok {
			out = append(out, *b)
		}
	}
	return out
}

// timestampHour reads the wall-clock hour as written in the timestamp,
// keeping whatever offset the backend stored.
func timestampHour(ts string) (int, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Hour(), true
		}
	}
	return 0, false
}

// BMI computes body mass index from pounds and a feet+inches height. The
// second return is false when either input is missing or total height is
// zero, in which case no value may be shown.
func BMI(weightLbs float64, heightFeet int, heightInches float64) (float64, bool) {
	totalInches := float64(heightFeet)*12 + heightInches
	if weightLbs <= 0 || totalInches <= 0 {
		return 0, false
	}
	return weightLbs / (totalInches * totalInches) * 703, true
}

// BMICategory maps a BMI value to its standard band.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

// GoalDelta compares actual intake against the daily calorie goal. Whether a
// surplus is good depends on direction: bulking treats diff >= 0 as on
// track, cutting/maintenance treats diff <= 0 as on track. The numeric diff
// is identical either way; only the classification flips.
type GoalDelta struct {
	Diff    float64 `json:"diff"`
	Good    bool    `json:"good"`
	Bulking bool    `json:"bulking"`
}

func ClassifyGoalDelta(actualIntake, dailyGoal float64, bulking bool) GoalDelta {
	diff := actualIntake - dailyGoal
	good := diff <= 0
	if bulking {
		good = diff >= 0
	}
	return GoalDelta{Diff: diff, Good: good, Bulking: bulking}
}

// IsBulking reports whether the user's target weight exceeds their current
// weight. Missing values mean cutting/maintenance.
func IsBulking(targetWeightLbs, currentWeightLbs *float64) bool {
	if targetWeightLbs == nil || currentWeightLbs == nil {
		return false
	}
	return *targetWeightLbs > *currentWeightLbs
}
