package models

import "time"

// PurchaseOrder represents a business purchase order with line items.
// The total is always computed from the items, never stored.
type PurchaseOrder struct {
	ID        int                 `json:"id"`
	UserID    string              `json:"-"`
	VendorID  *int                `json:"vendor_id"`
	Status    string              `json:"status"` // draft, ordered, received, cancelled
	OrderDate *string             `json:"order_date"`
	Notes     *string             `json:"notes"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	// Computed fields
	VendorName *string             `json:"vendor_name,omitempty"`
	Items      []PurchaseOrderItem `json:"items"`
	Total      Money               `json:"total"`
}

// PurchaseOrderItem is a single line on a purchase order.
type PurchaseOrderItem struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   Money  `json:"unit_price"`
	// Computed fields
	LineTotal Money `json:"line_total"`
}

// PurchaseOrderInput is used for creating/updating purchase orders,
// line items included.
type PurchaseOrderInput struct {
	VendorID  *int                     `json:"vendor_id"`
	Status    string                   `json:"status"`
	OrderDate *string                  `json:"order_date"`
	Notes     *string                  `json:"notes"`
	Items     []PurchaseOrderItemInput `json:"items"`
}

// PurchaseOrderItemInput is a single submitted line item.
type PurchaseOrderItemInput struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   Money  `json:"unit_price"`
}

func (p *PurchaseOrderInput) Validate() string {
	switch p.Status {
	case "", "draft", "ordered", "received", "cancelled":
	default:
		return "status must be one of: draft, ordered, received, cancelled"
	}
	if p.Status == "" {
		p.Status = "draft"
	}
	if p.VendorID != nil && *p.VendorID <= 0 {
		return "vendor_id must be positive"
	}
	for _, item := range p.Items {
		if item.Description == "" {
			return "item description is required"
		}
		if item.Quantity <= 0 {
			return "item quantity must be positive"
		}
		if item.UnitPrice.IsNegative() {
			return "item unit_price must be non-negative"
		}
	}
	return ""
}
