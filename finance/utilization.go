package finance

import "github.com/shopspring/decimal"

// CardBalance is the balance/limit pair of one revolving credit account.
type CardBalance struct {
	Balance decimal.Decimal
	Limit   decimal.Decimal
}

// Utilization returns the aggregate credit utilization across all cards as
// a percentage: total balance over total limit. A zero total limit yields
// 0, never a division error.
func Utilization(cards []CardBalance) float64 {
	totalBalance := decimal.Zero
	totalLimit := decimal.Zero
	for _, c := range cards {
		totalBalance = totalBalance.Add(c.Balance)
		totalLimit = totalLimit.Add(c.Limit)
	}
	if totalLimit.IsZero() {
		return 0
	}
	pct, _ := totalBalance.Div(totalLimit).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

// AvailableCredit returns the total unused limit across all cards. Cards
// over their limit contribute zero rather than negative headroom.
func AvailableCredit(cards []CardBalance) decimal.Decimal {
	total := decimal.Zero
	for _, c := range cards {
		if headroom := c.Limit.Sub(c.Balance); headroom.IsPositive() {
			total = total.Add(headroom)
		}
	}
	return total
}
