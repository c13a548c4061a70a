package model

import "fmt"

// EntryKind tags the five log entry variants. The editable field set and the
// display-value format of an entry are fixed per kind.
type EntryKind string

const (
	KindMeal     EntryKind = "meal"
	KindWorkout  EntryKind = "workout"
	KindExercise EntryKind = "exercise"
	KindWeight   EntryKind = "weight"
	KindWellness EntryKind = "wellness"
)

// Kinds lists all entry kinds in the order the log history filter shows them.
var Kinds = []EntryKind{KindMeal, KindWorkout, KindExercise, KindWeight, KindWellness}

func ParseEntryKind(s string) (EntryKind, error) {
	switch EntryKind(s) {
	case KindMeal, KindWorkout, KindExercise, KindWeight, KindWellness:
		return EntryKind(s), nil
	}
	return "", fmt.Errorf("unknown log entry kind %q", s)
}

// LogEntry is one denormalized history row from the tracker API. Description
// and Value are pre-formatted display strings; the macro fields are only set
// for meals.
type LogEntry struct {
	ID          string    `json:"id"`
	Timestamp   string    `json:"timestamp"`
	Type        EntryKind `json:"type"`
	Description string    `json:"description"`
	Value       string    `json:"value"`
	Protein     *int      `json:"protein"`
	Carbs       *int      `json:"carbs"`
	Fat         *int      `json:"fat"`
}
