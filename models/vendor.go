package models

import "time"

// Vendor represents a supplier referenced by purchase orders.
type Vendor struct {
	ID        int       `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// Computed fields
	TotalOrdered Money `json:"total_ordered"`
}

// VendorInput is used for creating/updating vendors.
type VendorInput struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

func (v *VendorInput) Validate() string {
	if v.Name == "" {
		return "name is required"
	}
	return ""
}
