package finance

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSnapshotNetWorth(t *testing.T) {
	in := SnapshotInput{
		Assets: []AssetValue{
			{Value: d("1000"), Liquid: true},
			{Value: d("500"), Liquid: false},
		},
		Debts: []decimal.Decimal{d("300")},
	}
	s := Snapshot(in)
	if !s.TotalAssets.Equal(d("1500")) {
		t.Errorf("total assets = %s, want 1500", s.TotalAssets)
	}
	if !s.TotalLiabilities.Equal(d("300")) {
		t.Errorf("total liabilities = %s, want 300", s.TotalLiabilities)
	}
	if !s.NetWorth.Equal(d("1200")) {
		t.Errorf("net worth = %s, want 1200", s.NetWorth)
	}
	if !s.LiquidAssets.Equal(d("1000")) {
		t.Errorf("liquid assets = %s, want 1000", s.LiquidAssets)
	}
}

func TestSnapshotBuyingPower(t *testing.T) {
	in := SnapshotInput{
		Assets: []AssetValue{{Value: d("2000"), Liquid: true}},
		Cards:  []CardBalance{{Balance: d("400"), Limit: d("1000")}},
	}
	s := Snapshot(in)
	if !s.AvailableCredit.Equal(d("600")) {
		t.Errorf("available credit = %s, want 600", s.AvailableCredit)
	}
	if !s.BuyingPower.Equal(d("2600")) {
		t.Errorf("buying power = %s, want 2600", s.BuyingPower)
	}
	if s.Utilization != 40 {
		t.Errorf("utilization = %v, want 40", s.Utilization)
	}
}

func TestMonthlyAmount(t *testing.T) {
	cases := []struct {
		amount    string
		frequency string
		want      string
	}{
		{"100", "weekly", "433"},
		{"100", "biweekly", "217"},
		{"100", "monthly", "100"},
		{"12000", "yearly", "1000"},
		{"100", "quarterly", "0"}, // unknown frequency contributes nothing
	}
	for _, tc := range cases {
		t.Run(tc.frequency, func(t *testing.T) {
			got := MonthlyAmount(d(tc.amount), tc.frequency)
			if !got.Equal(d(tc.want)) {
				t.Errorf("MonthlyAmount(%s, %s) = %s, want %s", tc.amount, tc.frequency, got, tc.want)
			}
		})
	}
}

func TestSnapshotCashFlow(t *testing.T) {
	in := SnapshotInput{
		Incomes: []IncomeStream{
			{Amount: d("1000"), Frequency: "monthly"},
			{Amount: d("12000"), Frequency: "yearly"},
		},
		Expenses: []ExpenseItem{
			{Amount: d("800"), Recurring: true},
			{Amount: d("5000"), Recurring: false}, // one-off, excluded
		},
	}
	s := Snapshot(in)
	if !s.MonthlyIncome.Equal(d("2000")) {
		t.Errorf("monthly income = %s, want 2000", s.MonthlyIncome)
	}
	if !s.MonthlyExpenses.Equal(d("800")) {
		t.Errorf("monthly expenses = %s, want 800", s.MonthlyExpenses)
	}
	if !s.NetCashFlow.Equal(d("1200")) {
		t.Errorf("net cash flow = %s, want 1200", s.NetCashFlow)
	}
}

func TestSnapshotEmptyInput(t *testing.T) {
	s := Snapshot(SnapshotInput{})
	if !s.NetWorth.IsZero() || !s.BuyingPower.IsZero() || !s.NetCashFlow.IsZero() {
		t.Errorf("empty snapshot has non-zero totals: %+v", s)
	}
}

func TestSnapshotIsIdempotent(t *testing.T) {
	in := SnapshotInput{
		Assets:   []AssetValue{{Value: d("750.25"), Liquid: true}},
		Debts:    []decimal.Decimal{d("120.75")},
		Cards:    []CardBalance{{Balance: d("50"), Limit: d("500")}},
		Incomes:  []IncomeStream{{Amount: d("900"), Frequency: "biweekly"}},
		Expenses: []ExpenseItem{{Amount: d("42.42"), Recurring: true}},
	}
	first := Snapshot(in)
	second := Snapshot(in)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("snapshot not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
}
