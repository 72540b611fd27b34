package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseInterval(t *testing.T) {
	for _, s := range []string{"day", "yesterday", "week", "month", "year"} {
		if _, err := ParseInterval(s); err != nil {
			t.Fatalf("%q expected ok, got %v", s, err)
		}
	}
	for _, s := range []string{"", "today", "Day", "quarter"} {
		if _, err := ParseInterval(s); !errors.Is(err, ErrUnknownInterval) {
			t.Fatalf("%q expected ErrUnknownInterval, got %v", s, err)
		}
	}
}

func TestIntervalResolve(t *testing.T) {
	// Friday 2024-03-15, mid-afternoon
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.Local)

	cases := []struct {
		iv        Interval
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			IntervalDay,
			time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local),
			now,
		},
		{
			IntervalYesterday,
			time.Date(2024, 3, 14, 0, 0, 0, 0, time.Local),
			time.Date(2024, 3, 14, 23, 59, 59, 999999000, time.Local),
		},
		{
			IntervalWeek,
			time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local), // preceding Monday
			now,
		},
		{
			IntervalMonth,
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
			now,
		},
		{
			IntervalYear,
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
			now,
		},
	}
	for _, tc := range cases {
		t.Run(string(tc.iv), func(t *testing.T) {
			start, end, err := tc.iv.Resolve(now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !start.Equal(tc.wantStart) {
				t.Errorf("start = %v, want %v", start, tc.wantStart)
			}
			if !end.Equal(tc.wantEnd) {
				t.Errorf("end = %v, want %v", end, tc.wantEnd)
			}
		})
	}
}

func TestIntervalResolveWeekOnMonday(t *testing.T) {
	// On a Monday the week starts the same day.
	now := time.Date(2024, 3, 11, 9, 0, 0, 0, time.Local)
	start, _, err := IntervalWeek.Resolve(now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local)
	if !start.Equal(want) {
		t.Fatalf("start = %v, want %v", start, want)
	}
}

func TestIntervalResolveWeekOnSunday(t *testing.T) {
	// Sunday belongs to the week that started six days earlier.
	now := time.Date(2024, 3, 17, 22, 0, 0, 0, time.Local)
	start, _, err := IntervalWeek.Resolve(now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local)
	if !start.Equal(want) {
		t.Fatalf("start = %v, want %v", start, want)
	}
}

func TestIntervalResolveUnknown(t *testing.T) {
	if _, _, err := Interval("decade").Resolve(time.Now()); !errors.Is(err, ErrUnknownInterval) {
		t.Fatalf("expected ErrUnknownInterval, got %v", err)
	}
}
