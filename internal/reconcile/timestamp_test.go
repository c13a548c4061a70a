package reconcile

import "testing"

func TestFormatLocal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"winter instant", "2026-01-05T12:30:00-05:00", "2026-01-05T12:30"},
		{"summer instant", "2026-07-05T12:30:00-04:00", "2026-07-05T12:30"},
		{"utc converts to eastern", "2026-01-05T17:30:00Z", "2026-01-05T12:30"},
		{"unparseable yields empty", "not a time", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatLocal(tt.in); got != tt.want {
				t.Fatalf("FormatLocal(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToInstant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"january is standard time", "2026-01-05T12:30", "2026-01-05T12:30:00-05:00"},
		{"july is daylight time", "2026-07-05T12:30", "2026-07-05T12:30:00-04:00"},
		{"late december", "2026-12-24T08:15", "2026-12-24T08:15:00-05:00"},
		{"mid august evening", "2026-08-15T19:45", "2026-08-15T19:45:00-04:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ToInstant(tt.in)
			if err != nil {
				t.Fatalf("ToInstant(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ToInstant(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToInstantRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := ToInstant("soon")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestLocalRoundTrip(t *testing.T) {
	t.Parallel()

	// Format then convert back: the floating form is stable through the
	// two-offset reduction in both halves of the year.
	for _, instant := range []string{
		"2026-01-05T12:30:00-05:00",
		"2026-07-05T12:30:00-04:00",
	} {
		local := FormatLocal(instant)
		back, err := ToInstant(local)
		if err != nil {
			t.Fatalf("round trip %q: %v", instant, err)
		}
		if back != instant {
			t.Fatalf("round trip %q -> %q -> %q", instant, local, back)
		}
	}
}
