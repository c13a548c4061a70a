package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fitweb/fitweb/internal/model"
)

// Auth

type meResponse struct {
	User model.User `json:"user"`
}

// Me validates a bearer token and returns the identity behind it.
func (c *Client) Me(ctx context.Context, token string) (*model.User, error) {
	var out meResponse
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, token, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out.User, nil
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	SessionToken string     `json:"session_token"`
	User         model.User `json:"user"`
}

// VerifyToken exchanges the one-time token from the chat bot handoff for a
// long-lived session token. This is the only unauthenticated call.
func (c *Client) VerifyToken(ctx context.Context, oneTimeToken string) (string, *model.User, error) {
	var out verifyResponse
	err := c.do(ctx, http.MethodPost, "/auth/verify", nil, "", verifyRequest{Token: oneTimeToken}, &out)
	if err != nil {
		return "", nil, err
	}
	return out.SessionToken, &out.User, nil
}

// Dashboard reads

func (c *Client) Kpis(ctx context.Context, token, rng string) (*model.KpiData, error) {
	var out model.KpiData
	err := c.do(ctx, http.MethodGet, "/kpis", rangeQuery(rng), token, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Meals(ctx context.Context, token, rng string) ([]model.DailyMeal, error) {
	var out []model.DailyMeal
	err := c.do(ctx, http.MethodGet, "/meals", rangeQuery(rng), token, nil, &out)
	return out, err
}

func (c *Client) Weight(ctx context.Context, token, rng string) ([]model.WeightEntry, error) {
	var out []model.WeightEntry
	err := c.do(ctx, http.MethodGet, "/weight", rangeQuery(rng), token, nil, &out)
	return out, err
}

func (c *Client) CalorieBalance(ctx context.Context, token, rng string) ([]model.CalorieBalanceEntry, error) {
	var out []model.CalorieBalanceEntry
	err := c.do(ctx, http.MethodGet, "/calorie-balance", rangeQuery(rng), token, nil, &out)
	return out, err
}

func (c *Client) Wellness(ctx context.Context, token, rng string) ([]model.WellnessPoint, error) {
	var out []model.WellnessPoint
	err := c.do(ctx, http.MethodGet, "/wellness", rangeQuery(rng), token, nil, &out)
	return out, err
}

func (c *Client) Performance(ctx context.Context, token, rng string) ([]model.PerformancePoint, error) {
	var out []model.PerformancePoint
	err := c.do(ctx, http.MethodGet, "/performance", rangeQuery(rng), token, nil, &out)
	return out, err
}

func (c *Client) Dates(ctx context.Context, token, rng string) ([]string, error) {
	var out []string
	err := c.do(ctx, http.MethodGet, "/dates", rangeQuery(rng), token, nil, &out)
	return out, err
}

func (c *Client) Daily(ctx context.Context, token, date string) (*model.DailySnapshot, error) {
	var out model.DailySnapshot
	err := c.do(ctx, http.MethodGet, "/daily", url.Values{"date": {date}}, token, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) WorkoutSummary(ctx context.Context, token, date string) (*model.WorkoutSummary, error) {
	var out model.WorkoutSummary
	err := c.do(ctx, http.MethodGet, "/workout-summary", url.Values{"date": {date}}, token, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

// Summary fetches the AI-generated weekly summary. Strictly slower than the
// other reads; callers keep it on its own loading flag.
func (c *Client) Summary(ctx context.Context, token string) (string, error) {
	var out summaryResponse
	err := c.do(ctx, http.MethodGet, "/summary", nil, token, nil, &out)
	if err != nil {
		return "", err
	}
	return out.Summary, nil
}

// Log history

func (c *Client) LogHistory(ctx context.Context, token, rng, typ string) ([]model.LogEntry, error) {
	var out []model.LogEntry
	q := rangeQuery(rng)
	q.Set("type", typ)
	err := c.do(ctx, http.MethodGet, "/log-history", q, token, nil, &out)
	return out, err
}

// Lifting

func (c *Client) Exercises(ctx context.Context, token, rng string) ([]model.ExerciseEntry, error) {
	var out []model.ExerciseEntry
	err := c.do(ctx, http.MethodGet, "/exercises", rangeQuery(rng), token, nil, &out)
	return out, err
}

func (c *Client) ExerciseNames(ctx context.Context, token string) ([]string, error) {
	var out []string
	err := c.do(ctx, http.MethodGet, "/exercise-names", nil, token, nil, &out)
	return out, err
}

func (c *Client) ExerciseHistory(ctx context.Context, token, name, rng string) ([]model.ExerciseHistoryPoint, error) {
	var out []model.ExerciseHistoryPoint
	q := rangeQuery(rng)
	q.Set("name", name)
	err := c.do(ctx, http.MethodGet, "/exercise-history", q, token, nil, &out)
	return out, err
}

func (c *Client) ExercisePRs(ctx context.Context, token string) ([]model.ExercisePR, error) {
	var out []model.ExercisePR
	err := c.do(ctx, http.MethodGet, "/exercise-prs", nil, token, nil, &out)
	return out, err
}

// Goals

func (c *Client) Goals(ctx context.Context, token string) (*model.Goals, error) {
	var out model.Goals
	err := c.do(ctx, http.MethodGet, "/goals", nil, token, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateGoals(ctx context.Context, token string, goals *model.Goals) error {
	return c.do(ctx, http.MethodPut, "/goals", nil, token, goals, nil)
}

// Log entry mutation

func (c *Client) UpdateLog(ctx context.Context, token string, kind model.EntryKind, id string, payload any) error {
	return c.do(ctx, http.MethodPut, "/log/"+string(kind)+"/"+url.PathEscape(id), nil, token, payload, nil)
}

func (c *Client) DeleteLog(ctx context.Context, token string, kind model.EntryKind, id string) error {
	return c.do(ctx, http.MethodDelete, "/log/"+string(kind)+"/"+url.PathEscape(id), nil, token, nil, nil)
}
