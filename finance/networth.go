package finance

import "github.com/shopspring/decimal"

// Frequency normalization factors: how many of each pay period fit in one
// month. Weekly and biweekly use the conventional 4.33 / 2.17 multipliers.
var monthlyFactor = map[string]decimal.Decimal{
	"weekly":   decimal.NewFromFloat(4.33),
	"biweekly": decimal.NewFromFloat(2.17),
	"monthly":  decimal.NewFromInt(1),
}

// AssetValue is one asset's value and liquidity flag.
type AssetValue struct {
	Value  decimal.Decimal
	Liquid bool
}

// IncomeStream is one income source normalized by its pay frequency.
type IncomeStream struct {
	Amount    decimal.Decimal
	Frequency string // weekly, biweekly, monthly, yearly
}

// ExpenseItem is one expense; only recurring items count toward the
// monthly expense total.
type ExpenseItem struct {
	Amount    decimal.Decimal
	Recurring bool
}

// SnapshotInput collects the materialized records a net-worth snapshot is
// computed from. Debts carries every outstanding balance: cards, loans,
// and other liabilities.
type SnapshotInput struct {
	Assets   []AssetValue
	Debts    []decimal.Decimal
	Cards    []CardBalance
	Incomes  []IncomeStream
	Expenses []ExpenseItem
}

// NetWorthSummary is the aggregate view behind the dashboard.
type NetWorthSummary struct {
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	NetWorth         decimal.Decimal `json:"net_worth"`
	LiquidAssets     decimal.Decimal `json:"liquid_assets"`
	AvailableCredit  decimal.Decimal `json:"available_credit"`
	BuyingPower      decimal.Decimal `json:"buying_power"`
	Utilization      float64         `json:"credit_utilization"`
	MonthlyIncome    decimal.Decimal `json:"monthly_income"`
	MonthlyExpenses  decimal.Decimal `json:"monthly_expenses"`
	NetCashFlow      decimal.Decimal `json:"net_cash_flow"`
}

// Snapshot aggregates assets, debts, incomes, and expenses into the
// dashboard totals. Inputs are decimals parsed at the model boundary, so
// a missing or malformed source field is already zero here and no total
// can become NaN.
func Snapshot(in SnapshotInput) NetWorthSummary {
	var s NetWorthSummary
	s.TotalAssets = decimal.Zero
	s.TotalLiabilities = decimal.Zero
	s.LiquidAssets = decimal.Zero
	s.MonthlyIncome = decimal.Zero
	s.MonthlyExpenses = decimal.Zero

	for _, a := range in.Assets {
		s.TotalAssets = s.TotalAssets.Add(a.Value)
		if a.Liquid {
			s.LiquidAssets = s.LiquidAssets.Add(a.Value)
		}
	}
	for _, d := range in.Debts {
		s.TotalLiabilities = s.TotalLiabilities.Add(d)
	}
	s.NetWorth = s.TotalAssets.Sub(s.TotalLiabilities)

	s.AvailableCredit = AvailableCredit(in.Cards)
	s.BuyingPower = s.LiquidAssets.Add(s.AvailableCredit)
	s.Utilization = Utilization(in.Cards)

	for _, inc := range in.Incomes {
		s.MonthlyIncome = s.MonthlyIncome.Add(MonthlyAmount(inc.Amount, inc.Frequency))
	}
	for _, e := range in.Expenses {
		if e.Recurring {
			s.MonthlyExpenses = s.MonthlyExpenses.Add(e.Amount)
		}
	}
	s.NetCashFlow = s.MonthlyIncome.Sub(s.MonthlyExpenses)
	return s
}

// MonthlyAmount normalizes an amount paid at the given frequency to a
// per-month figure. Unknown frequencies contribute nothing.
func MonthlyAmount(amount decimal.Decimal, frequency string) decimal.Decimal {
	if f, ok := monthlyFactor[frequency]; ok {
		return amount.Mul(f)
	}
	if frequency == "yearly" {
		return amount.Div(decimal.NewFromInt(12))
	}
	return decimal.Zero
}
