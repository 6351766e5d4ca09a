package date

import (
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestAddMonths_Clamping(t *testing.T) {
	testCases := []struct {
		name string
		from Date
		n    int
		want Date
	}{
		{"plain month", New(2025, time.March, 15), 1, New(2025, time.April, 15)},
		{"jan 31 clamps to feb 28", New(2025, time.January, 31), 1, New(2025, time.February, 28)},
		{"jan 31 clamps to feb 29 on leap year", New(2024, time.January, 31), 1, New(2024, time.February, 29)},
		{"march 31 clamps to april 30", New(2025, time.March, 31), 1, New(2025, time.April, 30)},
		{"across year boundary", New(2025, time.November, 30), 3, New(2026, time.February, 28)},
		{"backwards", New(2025, time.March, 31), -1, New(2025, time.February, 28)},
		{"backwards across year boundary", New(2025, time.January, 15), -2, New(2024, time.November, 15)},
		{"twelve months is a year", New(2025, time.June, 10), 12, New(2026, time.June, 10)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.AddMonths(tc.n); got != tc.want {
				t.Errorf("%s.AddMonths(%d) = %s, want %s", tc.from, tc.n, got, tc.want)
			}
		})
	}
}

func TestAddYears_LeapClamping(t *testing.T) {
	if got, want := New(2024, time.February, 29).AddYears(1), New(2025, time.February, 28); got != want {
		t.Errorf("AddYears(1) = %s, want %s", got, want)
	}
	if got, want := New(2024, time.February, 29).AddYears(4), New(2028, time.February, 29); got != want {
		t.Errorf("AddYears(4) = %s, want %s", got, want)
	}
}

func TestSub(t *testing.T) {
	a := New(2025, time.January, 1)
	b := New(2025, time.December, 31)
	if got := b.Sub(a); got != 364 {
		t.Errorf("Sub() = %d, want 364", got)
	}
	if got := a.Sub(b); got != -364 {
		t.Errorf("Sub() = %d, want -364", got)
	}
}

func TestDiff(t *testing.T) {
	testCases := []struct {
		name               string
		a, b               Date
		wantYears, wantMos int
	}{
		{"same day", New(2025, time.May, 10), New(2025, time.May, 10), 0, 0},
		{"just under a year", New(1990, time.May, 10), New(1991, time.May, 9), 0, 11},
		{"exactly 59.5 years", New(1966, time.January, 1), New(2025, time.July, 1), 59, 6},
		{"day of month not yet reached", New(1990, time.May, 10), New(2025, time.June, 9), 35, 0},
		{"b before a", New(2025, time.May, 10), New(2025, time.May, 9), 0, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			years, months := Diff(tc.a, tc.b)
			if years != tc.wantYears || months != tc.wantMos {
				t.Errorf("Diff(%s, %s) = %d years %d months, want %d years %d months",
					tc.a, tc.b, years, months, tc.wantYears, tc.wantMos)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	d, err := Parse("2025-7-1")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if d.String() != "2025-07-01" {
		t.Errorf("String() = %s, want 2025-07-01", d)
	}
	var u Date
	if err := u.UnmarshalText([]byte("2026-02-28")); err != nil {
		t.Fatalf("UnmarshalText() failed: %v", err)
	}
	if u != New(2026, time.February, 28) {
		t.Errorf("UnmarshalText() = %s", u)
	}
}
