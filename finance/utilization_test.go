package finance

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestUtilization(t *testing.T) {
	cases := []struct {
		name  string
		cards []CardBalance
		want  float64
	}{
		{
			"single card half used",
			[]CardBalance{{Balance: d("500"), Limit: d("1000")}},
			50,
		},
		{
			"zero-limit card does not skew the aggregate",
			[]CardBalance{
				{Balance: d("500"), Limit: d("1000")},
				{Balance: d("0"), Limit: d("0")},
			},
			50,
		},
		{
			"total limit zero",
			[]CardBalance{{Balance: d("500"), Limit: d("0")}},
			0,
		},
		{"no cards", nil, 0},
		{
			"aggregate across cards",
			[]CardBalance{
				{Balance: d("300"), Limit: d("1000")},
				{Balance: d("700"), Limit: d("3000")},
			},
			25,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Utilization(tc.cards)
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Fatalf("utilization = %v, want a finite number", got)
			}
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("utilization = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAvailableCredit(t *testing.T) {
	cards := []CardBalance{
		{Balance: d("400"), Limit: d("1000")},
		{Balance: d("1200"), Limit: d("1000")}, // over limit, contributes nothing
	}
	if got := AvailableCredit(cards); !got.Equal(d("600")) {
		t.Errorf("available credit = %s, want 600", got)
	}
	if got := AvailableCredit(nil); !got.Equal(decimal.Zero) {
		t.Errorf("available credit = %s, want 0", got)
	}
}
