package models

import (
	"time"
)

// Budget represents a monthly spending allocation for a category.
type Budget struct {
	ID                int       `json:"id"`
	UserID            string    `json:"-"`
	Category          string    `json:"category"`
	MonthlyAllocation Money     `json:"monthly_allocation"`
	AlertThreshold    float64   `json:"alert_threshold"` // percent
	BudgetMonth       string    `json:"budget_month"`    // YYYY-MM
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// BudgetInput is used for creating/updating budgets.
type BudgetInput struct {
	Category          string  `json:"category"`
	MonthlyAllocation Money   `json:"monthly_allocation"`
	AlertThreshold    float64 `json:"alert_threshold"`
	BudgetMonth       string  `json:"budget_month"`
}

func (b *BudgetInput) Validate() string {
	if b.Category == "" {
		return "category is required"
	}
	if b.MonthlyAllocation.IsNegative() {
		return "monthly_allocation must be non-negative"
	}
	if b.AlertThreshold < 0 || b.AlertThreshold > 100 {
		return "alert_threshold must be between 0 and 100"
	}
	if b.BudgetMonth == "" {
		return "budget_month is required"
	}
	if _, err := time.Parse("2006-01", b.BudgetMonth); err != nil {
		return "budget_month must be in YYYY-MM format"
	}
	return ""
}
