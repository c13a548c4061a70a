package metrics

import (
	"math"
	"testing"

	"github.com/fitweb/fitweb/internal/model"
)

func TestEpley1RM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		weight float64
		reps   int
		want   float64
	}{
		{"typical set", 200, 5, 233},
		{"true single returns weight unrounded", 202.5, 1, 202.5},
		{"zero reps", 200, 0, 0},
		{"negative reps", 200, -3, 0},
		{"zero weight", 0, 5, 0},
		{"high reps", 100, 10, 133},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Epley1RM(tt.weight, tt.reps)
			if got != tt.want {
				t.Fatalf("Epley1RM(%v, %d) = %v, want %v", tt.weight, tt.reps, got, tt.want)
			}
		})
	}
}

func TestMacroCalories(t *testing.T) {
	t.Parallel()

	got := MacroCalories(150, 200, 70)
	want := MacroCalorieSplit{ProteinKcal: 600, CarbsKcal: 800, FatKcal: 630}
	if got != want {
		t.Fatalf("MacroCalories = %+v, want %+v", got, want)
	}
}

func TestMergeHistoryByDate(t *testing.T) {
	t.Parallel()

	notes := "top set"
	points := []model.ExerciseHistoryPoint{
		{Date: "2026-01-05", Sets: 3, Reps: 5, WeightLbs: 185},
		{Date: "2026-01-05", Sets: 1, Reps: 5, WeightLbs: 250, Notes: &notes},
		{Date: "2026-01-08", Sets: 5, Reps: 5, WeightLbs: 190},
	}

	merged := MergeHistoryByDate(points)
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged days, got %d", len(merged))
	}

	day := merged[0]
	if day.Date != "2026-01-05" {
		t.Fatalf("expected first-seen order, got %q first", day.Date)
	}
	// 3*5*185 + 1*5*250 = 2775 + 1250
	if day.Volume != 4025 {
		t.Fatalf("day volume = %v, want 4025", day.Volume)
	}
	// Best single set estimate, not a sum: round(250*(1+5/30)) = 292.
	if day.Est1RM != 292 {
		t.Fatalf("day est 1rm = %v, want 292", day.Est1RM)
	}
	if day.TopWeight != 250 {
		t.Fatalf("day top weight = %v, want 250", day.TopWeight)
	}

	if merged[1].Date != "2026-01-08" || merged[1].Volume != 4750 {
		t.Fatalf("second day = %+v", merged[1])
	}
}

func TestMergeHistoryByDateEmpty(t *testing.T) {
	t.Parallel()

	if got := MergeHistoryByDate(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestBucketMeals(t *testing.T) {
	t.Parallel()

	meals := []model.MealDetail{
		{Description: "oatmeal", Calories: 400, ProteinG: 20, Timestamp: "2026-01-05T10:59:00-05:00"},
		{Description: "early lunch", Calories: 600, ProteinG: 40, Timestamp: "2026-01-05T11:00:00-05:00"},
		{Description: "late lunch", Calories: 300, ProteinG: 25, Timestamp: "2026-01-05T14:59:00-05:00"},
		{Description: "snack", Calories: 200, ProteinG: 10, Timestamp: "2026-01-05T15:00:00-05:00"},
		{Description: "pre dinner", Calories: 150, ProteinG: 5, Timestamp: "2026-01-05T17:59:00-05:00"},
		{Description: "dinner", Calories: 800, ProteinG: 50, Timestamp: "2026-01-05T18:00:00-05:00"},
		{Description: "late snack", Calories: 100, ProteinG: 8, Timestamp: "2026-01-05T23:30:00-05:00"},
	}

	buckets := BucketMeals(meals)
	want := []MealBucket{
		{Label: "Morning", Calories: 400, ProteinG: 20},
		{Label: "Midday", Calories: 900, ProteinG: 65},
		{Label: "Afternoon", Calories: 350, ProteinG: 15},
		{Label: "Evening", Calories: 900, ProteinG: 58},
	}
	if len(buckets) != len(want) {
		t.Fatalf("got %d buckets, want %d", len(buckets), len(want))
	}
	for i := range want {
		if buckets[i] != want[i] {
			t.Fatalf("bucket %d = %+v, want %+v", i, buckets[i], want[i])
		}
	}
}

func TestBucketMealsOmitsEmptyAndKeepsOrder(t *testing.T) {
	t.Parallel()

	meals := []model.MealDetail{
		{Calories: 700, ProteinG: 45, Timestamp: "2026-01-05T19:00:00-05:00"},
		{Calories: 400, ProteinG: 20, Timestamp: "2026-01-05T08:00:00-05:00"},
	}
	buckets := BucketMeals(meals)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	// Fixed order regardless of input order; empty slots absent.
	if buckets[0].Label != "Morning" || buckets[1].Label != "Evening" {
		t.Fatalf("bucket order = %q, %q", buckets[0].Label, buckets[1].Label)
	}
}

func TestBucketMealsSkipsUnparseableTimestamps(t *testing.T) {
	t.Parallel()

	meals := []model.MealDetail{
		{Calories: 500, Timestamp: "not a time"},
		{Calories: 300, ProteinG: 15, Timestamp: "2026-01-05T09:00:00-05:00"},
	}
	buckets := BucketMeals(meals)
	if len(buckets) != 1 || buckets[0].Calories != 300 {
		t.Fatalf("unexpected buckets: %+v", buckets)
	}
}

func TestBMI(t *testing.T) {
	t.Parallel()

	bmi, ok := BMI(170, 5, 11)
	if !ok {
		t.Fatal("expected defined bmi")
	}
	if math.Abs(bmi-23.71) > 0.01 {
		t.Fatalf("bmi = %v, want ~23.71", bmi)
	}
	if got := BMICategory(bmi); got != "Normal" {
		t.Fatalf("category = %q, want Normal", got)
	}

	bmi, ok = BMI(250, 5, 6)
	if !ok {
		t.Fatal("expected defined bmi")
	}
	if math.Abs(bmi-40.34) > 0.01 {
		t.Fatalf("bmi = %v, want ~40.34", bmi)
	}
	if got := BMICategory(bmi); got != "Obese" {
		t.Fatalf("category = %q, want Obese", got)
	}
}

func TestBMIUndefined(t *testing.T) {
	t.Parallel()

	if _, ok := BMI(0, 5, 11); ok {
		t.Fatal("zero weight must be undefined")
	}
	if _, ok := BMI(170, 0, 0); ok {
		t.Fatal("zero height must be undefined")
	}
}

func TestBMICategoryBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bmi  float64
		want string
	}{
		{18.4, "Underweight"},
		{18.5, "Normal"},
		{24.9, "Normal"},
		{25, "Overweight"},
		{29.9, "Overweight"},
		{30, "Obese"},
	}
	for _, tt := range tests {
		if got := BMICategory(tt.bmi); got != tt.want {
			t.Fatalf("BMICategory(%v) = %q, want %q", tt.bmi, got, tt.want)
		}
	}
}

func TestClassifyGoalDelta(t *testing.T) {
	t.Parallel()

	// Cutting: a surplus is off track.
	d := ClassifyGoalDelta(2400, 2200, false)
	if d.Diff != 200 || d.Good {
		t.Fatalf("cutting surplus: %+v", d)
	}
	d = ClassifyGoalDelta(2000, 2200, false)
	if d.Diff != -200 || !d.Good {
		t.Fatalf("cutting deficit: %+v", d)
	}

	// Bulking: the same surplus is on track.
	d = ClassifyGoalDelta(2400, 2200, true)
	if d.Diff != 200 || !d.Good {
		t.Fatalf("bulking surplus: %+v", d)
	}
	d = ClassifyGoalDelta(2000, 2200, true)
	if d.Good {
		t.Fatalf("bulking deficit should be off track: %+v", d)
	}

	// Exactly on goal is good in both directions.
	if d := ClassifyGoalDelta(2200, 2200, false); !d.Good {
		t.Fatalf("on-goal cutting: %+v", d)
	}
	if d := ClassifyGoalDelta(2200, 2200, true); !d.Good {
		t.Fatalf("on-goal bulking: %+v", d)
	}
}

func TestIsBulking(t *testing.T) {
	t.Parallel()

	target := 190.0
	current := 180.0
	if !IsBulking(&target, &current) {
		t.Fatal("target above current is bulking")
	}
	if IsBulking(&current, &target) {
		t.Fatal("target below current is cutting")
	}
	if IsBulking(nil, &current) || IsBulking(&target, nil) {
		t.Fatal("missing values default to cutting")
	}
}
