package finance

import "testing"

func TestBudgetProgress(t *testing.T) {
	cases := []struct {
		name       string
		allocation string
		threshold  float64
		spent      string
		wantPct    float64
		wantOver   bool
	}{
		{"under threshold", "1000", 80, "500", 50, false},
		{"at cap", "1000", 80, "1000", 100, true},
		{"overspent percent capped but flag uses uncapped ratio", "1000", 80, "1500", 100, true},
		{"exactly at threshold does not alert", "1000", 80, "800", 80, false},
		{"just over threshold alerts", "1000", 80, "801", 80.1, true},
		{"zero allocation", "0", 80, "500", 0, false},
		{"nothing spent", "1000", 80, "0", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := BudgetProgress(d(tc.allocation), tc.threshold, d(tc.spent))
			if diff := st.Percent - tc.wantPct; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("percent = %v, want %v", st.Percent, tc.wantPct)
			}
			if st.OverThreshold != tc.wantOver {
				t.Errorf("over threshold = %v, want %v", st.OverThreshold, tc.wantOver)
			}
		})
	}
}

func TestBudgetProgressRemaining(t *testing.T) {
	st := BudgetProgress(d("1000"), 80, d("250"))
	if !st.Remaining.Equal(d("750")) {
		t.Errorf("remaining = %s, want 750", st.Remaining)
	}
	over := BudgetProgress(d("1000"), 80, d("1100"))
	if !over.Remaining.Equal(d("-100")) {
		t.Errorf("remaining = %s, want -100", over.Remaining)
	}
}
