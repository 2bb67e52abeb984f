package finance

import (
	"testing"
	"time"
)

func TestNextDueDate(t *testing.T) {
	jan20 := time.Date(2024, time.January, 20, 10, 30, 0, 0, time.UTC)
	cases := []struct {
		name string
		day  int
		now  time.Time
		want time.Time
	}{
		{
			"already passed this month rolls forward",
			15, jan20,
			time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			"still upcoming this month",
			25, jan20,
			time.Date(2024, time.January, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			"today rolls to next month",
			20, jan20,
			time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			"december rolls into january",
			10, time.Date(2023, time.December, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			"day 31 clamps to leap february",
			31, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			"day 31 clamps to non-leap february",
			31, time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			"day 31 in a 30-day month clamps then rolls correctly",
			31, time.Date(2024, time.April, 30, 12, 0, 0, 0, time.UTC),
			time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NextDueDate(tc.day, tc.now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("NextDueDate(%d, %v) = %v, want %v", tc.day, tc.now, got, tc.want)
			}
		})
	}
}

func TestNextDueDateRejectsBadDay(t *testing.T) {
	for _, day := range []int{0, -5, 32} {
		if _, err := NextDueDate(day, time.Now()); err == nil {
			t.Errorf("NextDueDate(%d) expected error, got nil", day)
		}
	}
}
