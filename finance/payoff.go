// Package finance holds the shared financial calculations behind the
// dashboard and projection endpoints. Every function is pure: inputs are
// already-materialized values, outputs are plain records, and no call does
// I/O or keeps state between invocations.
package finance

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// maxPayoffMonths caps the amortization loop at 100 years so a payment that
// never retires the balance cannot loop forever.
const maxPayoffMonths = 1200

// PayoffOutcome classifies how an amortization projection ended.
type PayoffOutcome string

const (
	// PayoffComplete means the balance reaches zero within the horizon.
	PayoffComplete PayoffOutcome = "paid_off"
	// PayoffInsufficient means a month's payment does not cover the
	// interest accrued that month, so the balance grows instead of
	// shrinking.
	PayoffInsufficient PayoffOutcome = "payment_insufficient"
	// PayoffBeyondHorizon means the balance is still positive after the
	// 1200-month cap.
	PayoffBeyondHorizon PayoffOutcome = "not_within_horizon"
)

// ScheduleEntry is one month of an amortization schedule.
type ScheduleEntry struct {
	Month     int             `json:"month"`
	Payment   decimal.Decimal `json:"payment"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Balance   decimal.Decimal `json:"balance"`
}

// PayoffResult is the projection for paying a balance down to zero.
type PayoffResult struct {
	Outcome       PayoffOutcome   `json:"outcome"`
	Months        int             `json:"months"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	PayoffDate    *time.Time      `json:"payoff_date,omitempty"`
	Schedule      []ScheduleEntry `json:"schedule"`
}

var errNegativeInput = errors.New("balance, payment, and extra payment must be non-negative")

// Payoff projects the month-by-month amortization of balance under the
// given annual percentage rate and monthly payment (plus optional extra
// payment). Interest accrues monthly at rate/100/12 and is rounded to
// cents; principal is clamped to the remaining balance on the final month.
//
// A payment that fails to cover a month's interest ends the projection
// immediately with PayoffInsufficient rather than returning a schedule for
// a debt that is actually growing.
func Payoff(balance decimal.Decimal, annualRatePct float64, payment, extra decimal.Decimal, now time.Time) (PayoffResult, error) {
	if balance.IsNegative() || payment.IsNegative() || extra.IsNegative() {
		return PayoffResult{}, errNegativeInput
	}
	if annualRatePct < 0 {
		return PayoffResult{}, errors.New("interest rate must be non-negative")
	}

	res := PayoffResult{
		Outcome:       PayoffComplete,
		TotalInterest: decimal.Zero,
		Schedule:      []ScheduleEntry{},
	}
	if balance.IsZero() {
		d := now
		res.PayoffDate = &d
		return res, nil
	}

	monthlyRate := decimal.NewFromFloat(annualRatePct / 100 / 12)
	totalPayment := payment.Add(extra)
	remaining := balance

	for remaining.IsPositive() {
		if res.Months >= maxPayoffMonths {
			res.Outcome = PayoffBeyondHorizon
			return res, nil
		}

		interest := remaining.Mul(monthlyRate).Round(2)
		principal := totalPayment.Sub(interest)
		if !principal.IsPositive() {
			res.Outcome = PayoffInsufficient
			return res, nil
		}
		if principal.GreaterThan(remaining) {
			principal = remaining
		}

		remaining = remaining.Sub(principal)
		res.Months++
		res.TotalInterest = res.TotalInterest.Add(interest)
		res.Schedule = append(res.Schedule, ScheduleEntry{
			Month:     res.Months,
			Payment:   principal.Add(interest),
			Principal: principal,
			Interest:  interest,
			Balance:   remaining,
		})
	}

	d := now.AddDate(0, res.Months, 0)
	res.PayoffDate = &d
	return res, nil
}
