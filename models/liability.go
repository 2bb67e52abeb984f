package models

import "time"

// Liability represents a non-installment debt or other obligation.
type Liability struct {
	ID               int       `json:"id"`
	UserID           string    `json:"-"`
	Name             string    `json:"name"`
	LiabilityType    string    `json:"liability_type"`
	CurrentBalance   Money     `json:"current_balance"`
	InterestRate     float64   `json:"interest_rate"`
	PaymentFrequency string    `json:"payment_frequency"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// LiabilityInput is used for creating/updating liabilities.
type LiabilityInput struct {
	Name             string  `json:"name"`
	LiabilityType    string  `json:"liability_type"`
	CurrentBalance   Money   `json:"current_balance"`
	InterestRate     float64 `json:"interest_rate"`
	PaymentFrequency string  `json:"payment_frequency"`
}

func (l *LiabilityInput) Validate() string {
	if l.Name == "" {
		return "name is required"
	}
	if l.LiabilityType == "" {
		return "liability_type is required"
	}
	if l.CurrentBalance.IsNegative() {
		return "current_balance must be non-negative"
	}
	if l.InterestRate < 0 {
		return "interest_rate must be non-negative"
	}
	switch l.PaymentFrequency {
	case "", "weekly", "biweekly", "monthly", "yearly":
	default:
		return "payment_frequency must be one of: weekly, biweekly, monthly, yearly"
	}
	return ""
}
