package model

// Payload types for the tracker API's read endpoints. Field names mirror the
// upstream JSON exactly; optional numerics are pointers because the backend
// serializes missing data as null.

type KpiData struct {
	AvgDailyCalories int      `json:"avg_daily_calories"`
	AvgDailyProtein  int      `json:"avg_daily_protein"`
	CurrentWeight    *float64 `json:"current_weight"`
	CalorieBalance   int      `json:"calorie_balance"`
	AvgFatigue       *float64 `json:"avg_fatigue"`
	AvgPerformance   *float64 `json:"avg_performance"`
}

type DailyMeal struct {
	Date     string `json:"date"`
	Calories int    `json:"calories"`
	ProteinG int    `json:"protein_g"`
	CarbsG   int    `json:"carbs_g"`
	FatG     int    `json:"fat_g"`
}

type WeightEntry struct {
	Date      string  `json:"date"`
	WeightLbs float64 `json:"weight_lbs"`
}

type CalorieBalanceEntry struct {
	Date   string `json:"date"`
	Intake int    `json:"intake"`
	Burned int    `json:"burned"`
	Net    int    `json:"net"`
}

type WellnessPoint struct {
	Date         string `json:"date"`
	FatigueScore int    `json:"fatigue_score"`
}

type PerformancePoint struct {
	Date             string `json:"date"`
	PerformanceScore int    `json:"performance_score"`
}

type MealDetail struct {
	Description string `json:"description"`
	Calories    int    `json:"calories"`
	ProteinG    int    `json:"protein_g"`
	CarbsG      int    `json:"carbs_g"`
	FatG        int    `json:"fat_g"`
	Timestamp   string `json:"timestamp"`
}

type ExerciseDetail struct {
	ExerciseName string  `json:"exercise_name"`
	Sets         int     `json:"sets"`
	Reps         int     `json:"reps"`
	WeightLbs    float64 `json:"weight_lbs"`
	Notes        *string `json:"notes"`
}

type WorkoutSummary struct {
	Description    string `json:"description"`
	CaloriesBurned int    `json:"calories_burned"`
	Intensity      *int   `json:"intensity"`
}

// DailySnapshot is the server-side rollup for one calendar date. Read-only;
// the meals and exercises inside are denormalized views of the same events
// that also appear as LogEntry rows, with no shared primary key.
type DailySnapshot struct {
	Date        string           `json:"date"`
	Calories    int              `json:"calories"`
	ProteinG    int              `json:"protein_g"`
	CarbsG      int              `json:"carbs_g"`
	FatG        int              `json:"fat_g"`
	Meals       []MealDetail     `json:"meals"`
	Exercises   []ExerciseDetail `json:"exercises"`
	Workout     *WorkoutSummary  `json:"workout"`
	Performance *float64         `json:"performance"`
	Fatigue     *float64         `json:"fatigue"`
}

type ExerciseEntry struct {
	Date         string  `json:"date"`
	Timestamp    string  `json:"timestamp"`
	ExerciseName string  `json:"exercise_name"`
	Sets         int     `json:"sets"`
	Reps         int     `json:"reps"`
	WeightLbs    float64 `json:"weight_lbs"`
	Notes        *string `json:"notes"`
}

// ExerciseHistoryPoint is one logged set-group for a single exercise. Several
// points can share a date; they are merged client-side before charting.
type ExerciseHistoryPoint struct {
	Date      string  `json:"date"`
	Timestamp string  `json:"timestamp"`
	Sets      int     `json:"sets"`
	Reps      int     `json:"reps"`
	WeightLbs float64 `json:"weight_lbs"`
	Notes     *string `json:"notes"`
}

type ExercisePR struct {
	ExerciseName string  `json:"exercise_name"`
	WeightLbs    float64 `json:"weight_lbs"`
	Sets         int     `json:"sets"`
	Reps         int     `json:"reps"`
	Date         string  `json:"date"`
}

// Goals is mutated wholesale via PUT; unset means null, there are no
// partial-field semantics.
type Goals struct {
	CurrentWeightLbs *float64 `json:"current_weight_lbs"`
	HeightFeet       *int     `json:"height_feet"`
	HeightInches     *float64 `json:"height_inches"`
	TargetWeightLbs  *float64 `json:"target_weight_lbs"`
	DailyCalories    *int     `json:"daily_calories"`
	DailyProteinG    *int     `json:"daily_protein_g"`
	MaxCarbsG        *int     `json:"max_carbs_g"`
	MaxFatG          *int     `json:"max_fat_g"`
}
