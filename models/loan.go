package models

import "time"

// Loan represents an installment debt.
type Loan struct {
	ID             int       `json:"id"`
	UserID         string    `json:"-"`
	Name           string    `json:"name"`
	Balance        Money     `json:"balance"`
	OriginalAmount Money     `json:"original_amount"`
	InterestRate   float64   `json:"interest_rate"`
	MonthlyPayment Money     `json:"monthly_payment"`
	TermMonths     int       `json:"term_months"`
	DueDate        int       `json:"due_date"`
	LoanType       string    `json:"loan_type"` // personal, auto, student, mortgage, business
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	// Computed fields
	NextDueDate *time.Time `json:"next_due_date,omitempty"`
}

// LoanInput is used for creating/updating loans.
type LoanInput struct {
	Name           string  `json:"name"`
	Balance        Money   `json:"balance"`
	OriginalAmount Money   `json:"original_amount"`
	InterestRate   float64 `json:"interest_rate"`
	MonthlyPayment Money   `json:"monthly_payment"`
	TermMonths     int     `json:"term_months"`
	DueDate        int     `json:"due_date"`
	LoanType       string  `json:"loan_type"`
}

func (l *LoanInput) Validate() string {
	if l.Name == "" {
		return "name is required"
	}
	if l.Balance.IsNegative() {
		return "balance must be non-negative"
	}
	if l.OriginalAmount.IsNegative() {
		return "original_amount must be non-negative"
	}
	if l.InterestRate < 0 {
		return "interest_rate must be non-negative"
	}
	if l.MonthlyPayment.IsNegative() {
		return "monthly_payment must be non-negative"
	}
	if l.TermMonths < 0 {
		return "term_months must be non-negative"
	}
	if l.DueDate < 1 || l.DueDate > 31 {
		return "due_date must be between 1 and 31"
	}
	switch l.LoanType {
	case "personal", "auto", "student", "mortgage", "business":
	default:
		return "loan_type must be one of: personal, auto, student, mortgage, business"
	}
	return ""
}
