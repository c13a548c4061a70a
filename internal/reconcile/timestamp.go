package reconcile

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"
)

// ErrInvalidTimestamp marks a submitted edit timestamp that does not parse.
// It is client input error, not an upstream failure.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// Edit forms show timestamps as floating local time with no zone suffix.
// Converting back to an absolute instant uses exactly two fixed offsets for
// America/New_York, chosen by comparing the date's offset to the offsets
// observed in January and July of the same year. Transition-day edge cases
// are knowingly ignored: stored data was written with this same reduction
// and must keep round-tripping bit-for-bit.

const (
	localLayout   = "2006-01-02T15:04"
	instantLayout = "2006-01-02T15:04:05Z07:00"
	zoneName      = "America/New_York"
)

var (
	standardZone = time.FixedZone("EST", -5*60*60)
	daylightZone = time.FixedZone("EDT", -4*60*60)
)

func namedZone() *time.Location {
	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		// tzdata is compiled in via the blank import above.
		return standardZone
	}
	return loc
}

func zoneOffset(t time.Time) int {
	_, offset := t.Zone()
	return offset
}

func inDaylightTime(year int, month time.Month, day, hour, minute int) bool {
	loc := namedZone()
	jan := zoneOffset(time.Date(year, time.January, 1, 12, 0, 0, 0, loc))
	jul := zoneOffset(time.Date(year, time.July, 1, 12, 0, 0, 0, loc))
	standard := jan
	if jul < standard {
		standard = jul
	}
	return zoneOffset(time.Date(year, month, day, hour, minute, 0, 0, loc)) != standard
}

func parseInstant(ts string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", localLayout} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", ts)
}

// FormatLocal renders an absolute timestamp as the floating local form the
// edit form presents. Unparseable input yields an empty field.
func FormatLocal(ts string) string {
	t, err := parseInstant(ts)
	if err != nil {
		return ""
	}
	return t.In(namedZone()).Format(localLayout)
}

// ToInstant converts a floating local time back to an absolute instant in
// one of the two fixed offsets.
func ToInstant(local string) (string, error) {
	t, err := time.Parse(localLayout, local)
	if err != nil {
		return "", fmt.Errorf("parse local timestamp %q: %w", local, ErrInvalidTimestamp)
	}
	zone := standardZone
	if inDaylightTime(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute()) {
		zone = daylightZone
	}
	abs := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, zone)
	return abs.Format(instantLayout), nil
}
