package models

import "time"

// SavingsGoal represents a target amount the user is saving toward.
type SavingsGoal struct {
	ID                  int       `json:"id"`
	UserID              string    `json:"-"`
	Name                string    `json:"name"`
	TargetAmount        Money     `json:"target_amount"`
	CurrentAmount       Money     `json:"current_amount"`
	MonthlyContribution Money     `json:"monthly_contribution"`
	TargetDate          *string   `json:"target_date"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// SavingsGoalInput is used for creating/updating savings goals.
type SavingsGoalInput struct {
	Name                string  `json:"name"`
	TargetAmount        Money   `json:"target_amount"`
	CurrentAmount       Money   `json:"current_amount"`
	MonthlyContribution Money   `json:"monthly_contribution"`
	TargetDate          *string `json:"target_date"`
}

func (s *SavingsGoalInput) Validate() string {
	if s.Name == "" {
		return "name is required"
	}
	if s.TargetAmount.IsNegative() {
		return "target_amount must be non-negative"
	}
	if s.CurrentAmount.IsNegative() {
		return "current_amount must be non-negative"
	}
	if s.MonthlyContribution.IsNegative() {
		return "monthly_contribution must be non-negative"
	}
	return ""
}
