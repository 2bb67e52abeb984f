package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var testNow = time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestPayoffZeroBalance(t *testing.T) {
	res, err := Payoff(decimal.Zero, 24.99, d("100"), decimal.Zero, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != PayoffComplete {
		t.Errorf("outcome = %q, want %q", res.Outcome, PayoffComplete)
	}
	if res.Months != 0 {
		t.Errorf("months = %d, want 0", res.Months)
	}
	if !res.TotalInterest.IsZero() {
		t.Errorf("total interest = %s, want 0", res.TotalInterest)
	}
}

func TestPayoffZeroRateIsLinear(t *testing.T) {
	res, err := Payoff(d("1200"), 0, d("100"), decimal.Zero, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != PayoffComplete {
		t.Fatalf("outcome = %q, want %q", res.Outcome, PayoffComplete)
	}
	if res.Months != 12 {
		t.Errorf("months = %d, want 12", res.Months)
	}
	if !res.TotalInterest.IsZero() {
		t.Errorf("total interest = %s, want 0", res.TotalInterest)
	}
	if want := testNow.AddDate(0, 12, 0); !res.PayoffDate.Equal(want) {
		t.Errorf("payoff date = %v, want %v", res.PayoffDate, want)
	}
}

func TestPayoffFinalBalanceIsZero(t *testing.T) {
	res, err := Payoff(d("5000"), 19.99, d("250"), d("50"), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != PayoffComplete {
		t.Fatalf("outcome = %q, want %q", res.Outcome, PayoffComplete)
	}
	if res.Months < 1 {
		t.Errorf("months = %d, want >= 1", res.Months)
	}
	last := res.Schedule[len(res.Schedule)-1]
	if !last.Balance.IsZero() {
		t.Errorf("final balance = %s, want 0", last.Balance)
	}
	if !res.TotalInterest.IsPositive() {
		t.Errorf("total interest = %s, want > 0", res.TotalInterest)
	}
	if len(res.Schedule) != res.Months {
		t.Errorf("schedule has %d entries, want %d", len(res.Schedule), res.Months)
	}
}

func TestPayoffScheduleConserves(t *testing.T) {
	balance := d("3000")
	res, err := Payoff(balance, 15, d("150"), decimal.Zero, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	principal := decimal.Zero
	for _, e := range res.Schedule {
		if !e.Payment.Equal(e.Principal.Add(e.Interest)) {
			t.Fatalf("month %d: payment %s != principal %s + interest %s",
				e.Month, e.Payment, e.Principal, e.Interest)
		}
		principal = principal.Add(e.Principal)
	}
	if !principal.Equal(balance) {
		t.Errorf("total principal = %s, want %s", principal, balance)
	}
}

func TestPayoffInsufficientPayment(t *testing.T) {
	// 10000 at 24% accrues 200/month; a 150 payment never gains ground.
	res, err := Payoff(d("10000"), 24, d("150"), decimal.Zero, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != PayoffInsufficient {
		t.Errorf("outcome = %q, want %q", res.Outcome, PayoffInsufficient)
	}
	if res.PayoffDate != nil {
		t.Errorf("payoff date = %v, want nil", res.PayoffDate)
	}
}

func TestPayoffZeroPayment(t *testing.T) {
	res, err := Payoff(d("500"), 0, decimal.Zero, decimal.Zero, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != PayoffInsufficient {
		t.Errorf("outcome = %q, want %q", res.Outcome, PayoffInsufficient)
	}
}

func TestPayoffRejectsNegativeInputs(t *testing.T) {
	cases := []struct {
		name             string
		balance, payment decimal.Decimal
		rate             float64
	}{
		{"negative balance", d("-100"), d("50"), 10},
		{"negative payment", d("100"), d("-50"), 10},
		{"negative rate", d("100"), d("50"), -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Payoff(tc.balance, tc.rate, tc.payment, decimal.Zero, testNow); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestPayoffExtraPaymentShortensTerm(t *testing.T) {
	base, err := Payoff(d("8000"), 18, d("200"), decimal.Zero, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	faster, err := Payoff(d("8000"), 18, d("200"), d("100"), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if faster.Months >= base.Months {
		t.Errorf("with extra payment months = %d, want < %d", faster.Months, base.Months)
	}
	if !faster.TotalInterest.LessThan(base.TotalInterest) {
		t.Errorf("with extra payment interest = %s, want < %s", faster.TotalInterest, base.TotalInterest)
	}
}

func TestPayoffBeyondHorizon(t *testing.T) {
	// Interest on 10000 at 24% rounds to 200.00 a month, so the payment
	// retires a tenth of a cent of principal per month and the balance is
	// nowhere near zero after 100 years.
	res, err := Payoff(d("10000"), 24, d("200.001"), decimal.Zero, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != PayoffBeyondHorizon {
		t.Errorf("outcome = %q, want %q", res.Outcome, PayoffBeyondHorizon)
	}
	if res.PayoffDate != nil {
		t.Errorf("payoff date = %v, want nil", res.PayoffDate)
	}
}
