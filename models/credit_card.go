package models

import "time"

// CreditCard represents a revolving credit account.
type CreditCard struct {
	ID             int       `json:"id"`
	UserID         string    `json:"-"`
	Name           string    `json:"name"`
	Balance        Money     `json:"balance"`
	CreditLimit    Money     `json:"credit_limit"`
	InterestRate   float64   `json:"interest_rate"` // APR percent
	MinimumPayment Money     `json:"minimum_payment"`
	DueDate        int       `json:"due_date"` // day of month, 1-31
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	// Computed fields
	AvailableCredit Money      `json:"available_credit"`
	NextDueDate     *time.Time `json:"next_due_date,omitempty"`
}

// CreditCardInput is used for creating/updating credit cards.
type CreditCardInput struct {
	Name           string  `json:"name"`
	Balance        Money   `json:"balance"`
	CreditLimit    Money   `json:"credit_limit"`
	InterestRate   float64 `json:"interest_rate"`
	MinimumPayment Money   `json:"minimum_payment"`
	DueDate        int     `json:"due_date"`
}

func (c *CreditCardInput) Validate() string {
	if c.Name == "" {
		return "name is required"
	}
	if c.Balance.IsNegative() {
		return "balance must be non-negative"
	}
	if c.CreditLimit.IsNegative() {
		return "credit_limit must be non-negative"
	}
	if c.InterestRate < 0 {
		return "interest_rate must be non-negative"
	}
	if c.MinimumPayment.IsNegative() {
		return "minimum_payment must be non-negative"
	}
	if c.DueDate < 1 || c.DueDate > 31 {
		return "due_date must be between 1 and 31"
	}
	return ""
}
