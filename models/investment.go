package models

import "time"

// Investment represents an investment account.
type Investment struct {
	ID                    int       `json:"id"`
	UserID                string    `json:"-"`
	AccountName           string    `json:"account_name"`
	AccountType           string    `json:"account_type"`
	Balance               Money     `json:"balance"`
	ContributionAmount    Money     `json:"contribution_amount"`
	ContributionFrequency string    `json:"contribution_frequency"`
	ExpectedReturn        float64   `json:"expected_return"` // annual percent
	RiskLevel             string    `json:"risk_level"`      // low, medium, high
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// InvestmentInput is used for creating/updating investments.
type InvestmentInput struct {
	AccountName           string  `json:"account_name"`
	AccountType           string  `json:"account_type"`
	Balance               Money   `json:"balance"`
	ContributionAmount    Money   `json:"contribution_amount"`
	ContributionFrequency string  `json:"contribution_frequency"`
	ExpectedReturn        float64 `json:"expected_return"`
	RiskLevel             string  `json:"risk_level"`
}

func (i *InvestmentInput) Validate() string {
	if i.AccountName == "" {
		return "account_name is required"
	}
	if i.AccountType == "" {
		return "account_type is required"
	}
	if i.Balance.IsNegative() {
		return "balance must be non-negative"
	}
	if i.ContributionAmount.IsNegative() {
		return "contribution_amount must be non-negative"
	}
	switch i.ContributionFrequency {
	case "", "weekly", "biweekly", "monthly", "yearly":
	default:
		return "contribution_frequency must be one of: weekly, biweekly, monthly, yearly"
	}
	switch i.RiskLevel {
	case "", "low", "medium", "high":
	default:
		return "risk_level must be one of: low, medium, high"
	}
	return ""
}
