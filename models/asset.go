package models

import "time"

// Asset represents something the user owns.
type Asset struct {
	ID           int       `json:"id"`
	UserID       string    `json:"-"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	CurrentValue Money     `json:"current_value"`
	IsLiquid     bool      `json:"is_liquid"`
	GrowthRate   *float64  `json:"growth_rate"` // annual percent, negative for depreciation
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AssetInput is used for creating/updating assets.
type AssetInput struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	CurrentValue Money    `json:"current_value"`
	IsLiquid     bool     `json:"is_liquid"`
	GrowthRate   *float64 `json:"growth_rate"`
}

func (a *AssetInput) Validate() string {
	if a.Name == "" {
		return "name is required"
	}
	if a.Category == "" {
		return "category is required"
	}
	if a.CurrentValue.IsNegative() {
		return "current_value must be non-negative"
	}
	return ""
}
