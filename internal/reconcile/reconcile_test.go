package reconcile

import (
	"testing"

	"github.com/fitweb/fitweb/internal/model"
)

func intp(n int) *int { return &n }

func TestDecomposeMeal(t *testing.T) {
	t.Parallel()

	e := model.LogEntry{
		ID:          "m1",
		Timestamp:   "2026-01-05T12:30:00-05:00",
		Type:        model.KindMeal,
		Description: "Chicken and rice",
		Value:       "650 kcal",
		Protein:     intp(45),
		Carbs:       intp(70),
		Fat:         intp(12),
	}

	f, err := Decompose(e)
	if err != nil {
		t.Fatalf("decompose: %v", err)
	}
	if f.Kind != model.KindMeal || f.Meal == nil {
		t.Fatalf("wrong variant: %+v", f)
	}
	m := f.Meal
	if m.Timestamp != "2026-01-05T12:30" {
		t.Fatalf("timestamp = %q", m.Timestamp)
	}
	if m.Description != "Chicken and rice" || m.Calories != 650 {
		t.Fatalf("meal fields = %+v", m)
	}
	if m.ProteinG != 45 || m.CarbsG != 70 || m.FatG != 12 {
		t.Fatalf("macros = %+v", m)
	}
}

func TestDecomposeMealMissingMacros(t *testing.T) {
	t.Parallel()

	e := model.LogEntry{Type: model.KindMeal, Timestamp: "2026-01-05T12:30:00-05:00", Value: "junk"}
	f, err := Decompose(e)
	if err != nil {
		t.Fatalf("decompose: %v", err)
	}
	if f.Meal.Calories != 0 || f.Meal.ProteinG != 0 {
		t.Fatalf("expected zero defaults, got %+v", f.Meal)
	}
}

func TestDecomposeWorkout(t *testing.T) {
	t.Parallel()

	e := model.LogEntry{
		Type:        model.KindWorkout,
		Timestamp:   "2026-01-05T18:00:00-05:00",
		Description: "Push day",
		Value:       "320 kcal burned",
	}
	f, err := Decompose(e)
	if err != nil {
		t.Fatalf("decompose: %v", err)
	}
	if f.Workout.EstimatedCaloriesBurned != 320 || f.Workout.Description != "Push day" {
		t.Fatalf("workout fields = %+v", f.Workout)
	}
}

func TestDecomposeExercise(t *testing.T) {
	t.Parallel()

	e := model.LogEntry{
		Type:        model.KindExercise,
		Timestamp:   "2026-01-05T18:10:00-05:00",
		Description: "Bench Press",
		Value:       "3x5 @ 202.5 lbs",
	}
	f, err := Decompose(e)
	if err != nil {
		t.Fatalf("decompose: %v", err)
	}
	ex := f.Exercise
	if ex.ExerciseName != "Bench Press" || ex.Sets != 3 || ex.Reps != 5 || ex.WeightLbs != 202.5 {
		t.Fatalf("exercise fields = %+v", ex)
	}
	// The display string carries no notes; the field starts blank.
	if ex.Notes != "" {
		t.Fatalf("notes = %q, want empty", ex.Notes)
	}
}

func TestDecomposeWeight(t *testing.T) {
	t.Parallel()

	e := model.LogEntry{
		Type:        model.KindWeight,
		Timestamp:   "2026-01-05T07:00:00-05:00",
		Description: "Weigh-In",
		Value:       "181.4 lbs",
	}
	f, err := Decompose(e)
	if err != nil {
		t.Fatalf("decompose: %v", err)
	}
	if f.Weight.WeightLbs != 181.4 {
		t.Fatalf("weight = %v", f.Weight.WeightLbs)
	}
}

func TestDecomposeWellnessPlaceholder(t *testing.T) {
	t.Parallel()

	e := model.LogEntry{
		Type:        model.KindWellness,
		Timestamp:   "2026-01-05T21:00:00-05:00",
		Description: PlaceholderSymptom,
		Value:       "7/10",
	}
	f, err := Decompose(e)
	if err != nil {
		t.Fatalf("decompose: %v", err)
	}
	// The placeholder label is backend filler, not user input.
	if f.Wellness.Symptom != "" {
		t.Fatalf("symptom = %q, want empty", f.Wellness.Symptom)
	}
	if f.Wellness.SymptomScore != 7 {
		t.Fatalf("score = %d", f.Wellness.SymptomScore)
	}
}

func TestDecomposeWellnessNamedSymptom(t *testing.T) {
	t.Parallel()

	e := model.LogEntry{
		Type:        model.KindWellness,
		Timestamp:   "2026-01-05T21:00:00-05:00",
		Description: "Headache",
		Value:       "4/10",
	}
	f, err := Decompose(e)
	if err != nil {
		t.Fatalf("decompose: %v", err)
	}
	if f.Wellness.Symptom != "Headache" || f.Wellness.SymptomScore != 4 {
		t.Fatalf("wellness fields = %+v", f.Wellness)
	}
}

func TestDecomposeUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := Decompose(model.LogEntry{Type: "nap"})
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestRecomposeMealRoundTrip(t *testing.T) {
	t.Parallel()

	orig := model.LogEntry{
		ID:          "m1",
		Timestamp:   "2026-01-05T12:30:00-05:00",
		Type:        model.KindMeal,
		Description: "Chicken and rice",
		Value:       "650 kcal",
		Protein:     intp(45),
		Carbs:       intp(70),
		Fat:         intp(12),
	}
	f, err := Decompose(orig)
	if err != nil {
		t.Fatalf("decompose: %v", err)
	}
	got, err := Recompose(f, orig)
	if err != nil {
		t.Fatalf("recompose: %v", err)
	}

	// An untouched edit round-trips the display strings byte for byte.
	if got.Description != orig.Description || got.Value != orig.Value {
		t.Fatalf("round trip changed display: %+v", got)
	}
	if got.Timestamp != orig.Timestamp {
		t.Fatalf("round trip changed timestamp: %q -> %q", orig.Timestamp, got.Timestamp)
	}
	if *got.Protein != 45 || *got.Carbs != 70 || *got.Fat != 12 {
		t.Fatalf("round trip changed macros: %+v", got)
	}
}

func TestRecomposeExerciseFormatsWeight(t *testing.T) {
	t.Parallel()

	f := Fields{Kind: model.KindExercise, Exercise: &ExerciseFields{
		Timestamp:    "2026-01-05T18:10",
		ExerciseName: "Squat",
		Sets:         5,
		Reps:         3,
		WeightLbs:    315,
	}}
	got, err := Recompose(f, model.LogEntry{ID: "e1", Type: model.KindExercise})
	if err != nil {
		t.Fatalf("recompose: %v", err)
	}
	if got.Value != "5x3 @ 315 lbs" {
		t.Fatalf("value = %q", got.Value)
	}

	f.Exercise.WeightLbs = 202.5
	got, err = Recompose(f, model.LogEntry{ID: "e1", Type: model.KindExercise})
	if err != nil {
		t.Fatalf("recompose: %v", err)
	}
	if got.Value != "5x3 @ 202.5 lbs" {
		t.Fatalf("value = %q", got.Value)
	}
}

func TestRecomposeWeightSetsDescription(t *testing.T) {
	t.Parallel()

	f := Fields{Kind: model.KindWeight, Weight: &WeightFields{
		Timestamp: "2026-01-05T07:00",
		WeightLbs: 180,
	}}
	got, err := Recompose(f, model.LogEntry{ID: "w1", Type: model.KindWeight, Description: "old"})
	if err != nil {
		t.Fatalf("recompose: %v", err)
	}
	if got.Description != "Weigh-In" || got.Value != "180 lbs" {
		t.Fatalf("weight row = %+v", got)
	}
}

func TestRecomposeWellnessRestoresPlaceholder(t *testing.T) {
	t.Parallel()

	f := Fields{Kind: model.KindWellness, Wellness: &WellnessFields{
		Timestamp:    "2026-01-05T21:00",
		SymptomScore: 6,
		Symptom:      "",
	}}
	got, err := Recompose(f, model.LogEntry{ID: "s1", Type: model.KindWellness})
	if err != nil {
		t.Fatalf("recompose: %v", err)
	}
	if got.Description != PlaceholderSymptom || got.Value != "6/10" {
		t.Fatalf("wellness row = %+v", got)
	}
}

func TestRecomposeWorkoutValue(t *testing.T) {
	t.Parallel()

	f := Fields{Kind: model.KindWorkout, Workout: &WorkoutFields{
		Timestamp:               "2026-01-05T18:00",
		Description:             "Pull day",
		EstimatedCaloriesBurned: 410,
	}}
	got, err := Recompose(f, model.LogEntry{ID: "w2", Type: model.KindWorkout})
	if err != nil {
		t.Fatalf("recompose: %v", err)
	}
	if got.Value != "410 kcal burned" {
		t.Fatalf("value = %q", got.Value)
	}
}

func TestRecomposeMissingVariant(t *testing.T) {
	t.Parallel()

	_, err := Recompose(Fields{Kind: model.KindMeal}, model.LogEntry{Type: model.KindMeal})
	if err == nil {
		t.Fatal("expected error for missing variant")
	}
}

func TestUpdatePayloadConvertsTimestamp(t *testing.T) {
	t.Parallel()

	f := Fields{Kind: model.KindMeal, Meal: &MealFields{
		Timestamp:   "2026-01-05T12:30",
		Description: "Lunch",
		Calories:    600,
		ProteinG:    40,
	}}
	payload, err := f.UpdatePayload()
	if err != nil {
		t.Fatalf("update payload: %v", err)
	}
	meal, ok := payload.(MealFields)
	if !ok {
		t.Fatalf("payload type %T", payload)
	}
	// January is standard time in New York.
	if meal.Timestamp != "2026-01-05T12:30:00-05:00" {
		t.Fatalf("timestamp = %q", meal.Timestamp)
	}
	if meal.Calories != 600 {
		t.Fatalf("payload = %+v", meal)
	}
}

func TestUpdatePayloadRejectsBadTimestamp(t *testing.T) {
	t.Parallel()

	f := Fields{Kind: model.KindWeight, Weight: &WeightFields{Timestamp: "yesterday", WeightLbs: 180}}
	_, err := f.UpdatePayload()
	if err == nil {
		t.Fatal("expected error for unparseable timestamp")
	}
}

func TestPendingDeletes(t *testing.T) {
	t.Parallel()

	p := NewPendingDeletes()

	p.Arm("s1", "a")
	if got := p.Armed("s1"); got != "a" {
		t.Fatalf("armed = %q", got)
	}

	// Arming a different row replaces the first.
	p.Arm("s1", "b")
	if p.Confirm("s1", "a") {
		t.Fatal("confirming a replaced arm must fail")
	}
	if !p.Confirm("s1", "b") {
		t.Fatal("confirming the armed entry must succeed")
	}
	// A confirm consumes the arm.
	if p.Confirm("s1", "b") {
		t.Fatal("second confirm must fail")
	}
}

func TestPendingDeletesClearIfOther(t *testing.T) {
	t.Parallel()

	p := NewPendingDeletes()
	p.Arm("s1", "a")

	// Touching the armed row keeps it armed.
	p.ClearIfOther("s1", "a")
	if p.Armed("s1") != "a" {
		t.Fatal("touching the armed row must not disarm")
	}

	// Activity on a different row disarms.
	p.ClearIfOther("s1", "b")
	if p.Armed("s1") != "" {
		t.Fatal("activity elsewhere must disarm")
	}
}

func TestPendingDeletesSessionsIsolated(t *testing.T) {
	t.Parallel()

	p := NewPendingDeletes()
	p.Arm("s1", "a")
	p.Arm("s2", "b")
	p.Clear("s1")
	if p.Armed("s2") != "b" {
		t.Fatal("clearing one session must not touch another")
	}
}

func TestEntryCachePatchAndRemove(t *testing.T) {
	t.Parallel()

	c := NewEntryCache()
	c.Prime("s1", []model.LogEntry{
		{ID: "a", Value: "650 kcal"},
		{ID: "b", Value: "7/10"},
	})

	if !c.Patch("s1", model.LogEntry{ID: "a", Value: "700 kcal"}) {
		t.Fatal("patch of cached row must succeed")
	}
	got, ok := c.Entry("s1", "a")
	if !ok || got.Value != "700 kcal" {
		t.Fatalf("patched entry = %+v, ok=%v", got, ok)
	}

	if c.Patch("s1", model.LogEntry{ID: "zzz"}) {
		t.Fatal("patch of unknown row must fail")
	}

	c.Remove("s1", "b")
	if _, ok := c.Entry("s1", "b"); ok {
		t.Fatal("removed entry still cached")
	}
	if got := c.Get("s1"); len(got) != 1 {
		t.Fatalf("cache size = %d, want 1", len(got))
	}
}

func TestEntryCacheCopiesOnRead(t *testing.T) {
	t.Parallel()

	c := NewEntryCache()
	c.Prime("s1", []model.LogEntry{{ID: "a", Value: "650 kcal"}})

	got := c.Get("s1")
	got[0].Value = "mutated"

	fresh, _ := c.Entry("s1", "a")
	if fresh.Value != "650 kcal" {
		t.Fatal("cache must not share backing array with callers")
	}
}

func TestEntryCacheDrop(t *testing.T) {
	t.Parallel()

	c := NewEntryCache()
	c.Prime("s1", []model.LogEntry{{ID: "a"}})
	c.Drop("s1")
	if c.Get("s1") != nil {
		t.Fatal("dropped session still cached")
	}
}
