package models

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a fixed-point monetary amount. Clients send monetary fields as
// JSON numbers or numeric strings; anything missing or unparseable decodes
// as zero so aggregates never see NaN. Stored in SQLite as a decimal string.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{d}
}

func MoneyFromFloat(f float64) Money {
	return Money{decimal.NewFromFloat(f)}
}

// ParseMoney converts a raw string to Money, coercing empty or unparseable
// input to zero. This is the single "missing means zero" boundary.
func ParseMoney(s string) Money {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}
	}
	return Money{d}
}

func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// UnmarshalJSON accepts a number, a quoted numeric string, or null.
// Garbage coerces to zero rather than failing the whole request body.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		m.Decimal = decimal.Zero
		return nil
	}
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		m.Decimal = decimal.Zero
		return nil
	}
	m.Decimal = d
	return nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

func (m Money) Value() (driver.Value, error) {
	return m.Decimal.String(), nil
}

func (m *Money) Scan(value any) error {
	if value == nil {
		m.Decimal = decimal.Zero
		return nil
	}
	if err := m.Decimal.Scan(value); err != nil {
		return fmt.Errorf("scanning money value: %w", err)
	}
	return nil
}
