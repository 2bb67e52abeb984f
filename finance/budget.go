package finance

import "github.com/shopspring/decimal"

// BudgetStatus reports how far along a budget's monthly allocation is.
// Percent is capped at 100 for display; the over-threshold flag uses the
// uncapped ratio so a blown budget still alerts.
type BudgetStatus struct {
	Spent         decimal.Decimal `json:"spent"`
	Allocation    decimal.Decimal `json:"allocation"`
	Remaining     decimal.Decimal `json:"remaining"`
	Percent       float64         `json:"percent"`
	OverThreshold bool            `json:"over_threshold"`
}

// BudgetProgress computes spend progress against an allocation. A zero
// allocation yields 0% and never trips the threshold.
func BudgetProgress(allocation decimal.Decimal, thresholdPct float64, spent decimal.Decimal) BudgetStatus {
	st := BudgetStatus{
		Spent:      spent,
		Allocation: allocation,
		Remaining:  allocation.Sub(spent),
	}
	if !allocation.IsPositive() {
		return st
	}
	ratio, _ := spent.Div(allocation).Mul(decimal.NewFromInt(100)).Float64()
	st.Percent = ratio
	if st.Percent > 100 {
		st.Percent = 100
	}
	st.OverThreshold = ratio > thresholdPct
	return st
}
