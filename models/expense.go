package models

import "time"

// Expense represents a single expense, optionally recurring and optionally
// linked to the income it was paid from.
type Expense struct {
	ID            int       `json:"id"`
	UserID        string    `json:"-"`
	Description   string    `json:"description"`
	Amount        Money     `json:"amount"`
	Category      string    `json:"category"`
	ExpenseDate   *string   `json:"expense_date"`
	PaymentMethod *string   `json:"payment_method"`
	IsRecurring   bool      `json:"is_recurring"`
	IncomeID      *int      `json:"income_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	// Computed fields
	IncomeSource *string `json:"income_source,omitempty"`
}

// ExpenseInput is used for creating/updating expenses.
type ExpenseInput struct {
	Description   string  `json:"description"`
	Amount        Money   `json:"amount"`
	Category      string  `json:"category"`
	ExpenseDate   *string `json:"expense_date"`
	PaymentMethod *string `json:"payment_method"`
	IsRecurring   bool    `json:"is_recurring"`
	IncomeID      *int    `json:"income_id"`
}

func (e *ExpenseInput) Validate() string {
	if e.Description == "" {
		return "description is required"
	}
	if e.Amount.IsNegative() {
		return "amount must be non-negative"
	}
	if e.Category == "" {
		return "category is required"
	}
	if e.IncomeID != nil && *e.IncomeID <= 0 {
		return "income_id must be positive"
	}
	return ""
}
