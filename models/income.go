package models

import "time"

// Income represents a recurring income source.
type Income struct {
	ID          int       `json:"id"`
	UserID      string    `json:"-"`
	Source      string    `json:"source"`
	Amount      Money     `json:"amount"`
	Frequency   string    `json:"frequency"` // weekly, biweekly, monthly, yearly
	NextPayDate *string   `json:"next_pay_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IncomeInput is used for creating/updating incomes.
type IncomeInput struct {
	Source      string  `json:"source"`
	Amount      Money   `json:"amount"`
	Frequency   string  `json:"frequency"`
	NextPayDate *string `json:"next_pay_date"`
}

func (i *IncomeInput) Validate() string {
	if i.Source == "" {
		return "source is required"
	}
	if i.Amount.IsNegative() {
		return "amount must be non-negative"
	}
	switch i.Frequency {
	case "weekly", "biweekly", "monthly", "yearly":
	default:
		return "frequency must be one of: weekly, biweekly, monthly, yearly"
	}
	return ""
}
