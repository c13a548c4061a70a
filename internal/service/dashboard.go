package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/fitweb/fitweb/internal/metrics"
	"github.com/fitweb/fitweb/internal/model"
	"github.com/fitweb/fitweb/internal/upstream"
)

// Overview is the main dashboard payload: the four independent reads fetched
// in parallel and delivered together, so the page never renders a partial
// mix of ranges.
type Overview struct {
	Kpis           *model.KpiData              `json:"kpis"`
	Meals          []model.DailyMeal           `json:"meals"`
	Weight         []model.WeightEntry         `json:"weight"`
	CalorieBalance []model.CalorieBalanceEntry `json:"calorie_balance"`
}

// DailyView decorates the upstream daily snapshot with the derived
// aggregations the day detail page charts.
type DailyView struct {
	model.DailySnapshot
	MealBuckets   []metrics.MealBucket      `json:"meal_buckets"`
	MacroCalories metrics.MacroCalorieSplit `json:"macro_calories"`
}

// LiftingView is one exercise's progression with same-day sets merged into
// single chart points.
type LiftingView struct {
	ExerciseName string              `json:"exercise_name"`
	Points       []metrics.DayVolume `json:"points"`
}

// BMIReport carries the computed index, or Defined=false when height or
// weight is missing from the goals. An undefined BMI renders nothing.
type BMIReport struct {
	Defined  bool    `json:"defined"`
	BMI      float64 `json:"bmi,omitempty"`
	Category string  `json:"category,omitempty"`
}

// GoalDeltaReport compares average intake against the daily calorie goal.
// Defined is false when no goal is set.
type GoalDeltaReport struct {
	Defined   bool    `json:"defined"`
	AvgIntake float64 `json:"avg_intake,omitempty"`
	DailyGoal float64 `json:"daily_goal,omitempty"`
	metrics.GoalDelta
}

// DashboardService aggregates tracker API reads into view payloads. It holds
// no per-user state; everything is keyed by the caller's token.
type DashboardService struct {
	tracker *upstream.Client
}

func NewDashboardService(tracker *upstream.Client) *DashboardService {
	return &DashboardService{tracker: tracker}
}

// GetOverview fans out the four dashboard reads concurrently. Any failure
// cancels the rest and fails the whole view.
func (s *DashboardService) GetOverview(ctx context.Context, token, rng string) (*Overview, error) {
	var out Overview
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		kpis, err := s.tracker.Kpis(ctx, token, rng)
		if err != nil {
			return fmt.Errorf("fetch kpis: %w", err)
		}
		out.Kpis = kpis
		return nil
	})
	g.Go(func() error {
		meals, err := s.tracker.Meals(ctx, token, rng)
		if err != nil {
			return fmt.Errorf("fetch meals: %w", err)
		}
		out.Meals = meals
		return nil
	})
	g.Go(func() error {
		weight, err := s.tracker.Weight(ctx, token, rng)
		if err != nil {
			return fmt.Errorf("fetch weight: %w", err)
		}
		out.Weight = weight
		return nil
	})
	g.Go(func() error {
		balance, err := s.tracker.CalorieBalance(ctx, token, rng)
		if err != nil {
			return fmt.Errorf("fetch calorie balance: %w", err)
		}
		out.CalorieBalance = balance
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDaily fetches one date's snapshot and derives the time-of-day meal
// buckets and macro calorie split from it.
func (s *DashboardService) GetDaily(ctx context.Context, token, date string) (*DailyView, error) {
	snapshot, err := s.tracker.Daily(ctx, token, date)
	if err != nil {
		return nil, fmt.Errorf("fetch daily snapshot: %w", err)
	}

	return &DailyView{
		DailySnapshot: *snapshot,
		MealBuckets:   metrics.BucketMeals(snapshot.Meals),
		MacroCalories: metrics.MacroCalories(
			float64(snapshot.ProteinG),
			float64(snapshot.CarbsG),
			float64(snapshot.FatG),
		),
	}, nil
}

// GetLifting merges an exercise's history into per-day volume points.
func (s *DashboardService) GetLifting(ctx context.Context, token, name, rng string) (*LiftingView, error) {
	history, err := s.tracker.ExerciseHistory(ctx, token, name, rng)
	if err != nil {
		return nil, fmt.Errorf("fetch exercise history: %w", err)
	}
	return &LiftingView{
		ExerciseName: name,
		Points:       metrics.MergeHistoryByDate(history),
	}, nil
}

// GetBMI computes BMI from the stored goals. Missing height or weight makes
// the report undefined rather than zero.
func (s *DashboardService) GetBMI(ctx context.Context, token string) (*BMIReport, error) {
	goals, err := s.tracker.Goals(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetch goals: %w", err)
	}

	if goals.CurrentWeightLbs == nil || goals.HeightFeet == nil {
		return &BMIReport{}, nil
	}
	inches := 0.0
	if goals.HeightInches != nil {
		inches = *goals.HeightInches
	}
	bmi, ok := metrics.BMI(*goals.CurrentWeightLbs, *goals.HeightFeet, inches)
	if !ok {
		return &BMIReport{}, nil
	}
	return &BMIReport{Defined: true, BMI: bmi, Category: metrics.BMICategory(bmi)}, nil
}

// GetGoalDelta fetches goals and KPIs in parallel and classifies the calorie
// delta by goal direction.
func (s *DashboardService) GetGoalDelta(ctx context.Context, token, rng string) (*GoalDeltaReport, error) {
	var (
		goals *model.Goals
		kpis  *model.KpiData
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		goals, err = s.tracker.Goals(ctx, token)
		if err != nil {
			return fmt.Errorf("fetch goals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		kpis, err = s.tracker.Kpis(ctx, token, rng)
		if err != nil {
			return fmt.Errorf("fetch kpis: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if goals.DailyCalories == nil {
		return &GoalDeltaReport{}, nil
	}
	bulking := metrics.IsBulking(goals.TargetWeightLbs, goals.CurrentWeightLbs)
	intake := float64(kpis.AvgDailyCalories)
	goal := float64(*goals.DailyCalories)
	return &GoalDeltaReport{
		Defined:   true,
		AvgIntake: intake,
		DailyGoal: goal,
		GoalDelta: metrics.ClassifyGoalDelta(intake, goal, bulking),
	}, nil
}
