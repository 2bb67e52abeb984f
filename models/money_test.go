package models

import (
	"encoding/json"
	"testing"
)

func TestMoneyUnmarshalJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"number", `{"amount": 123.45}`, "123.45"},
		{"numeric string", `{"amount": "99.99"}`, "99.99"},
		{"integer", `{"amount": 500}`, "500"},
		{"null coerces to zero", `{"amount": null}`, "0"},
		{"empty string coerces to zero", `{"amount": ""}`, "0"},
		{"garbage coerces to zero", `{"amount": "twelve dollars"}`, "0"},
		{"missing field stays zero", `{}`, "0"},
		{"whitespace string coerces to zero", `{"amount": "  "}`, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var payload struct {
				Amount Money `json:"amount"`
			}
			if err := json.Unmarshal([]byte(tc.in), &payload); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if payload.Amount.String() != tc.want {
				t.Errorf("amount = %s, want %s", payload.Amount, tc.want)
			}
		})
	}
}

func TestMoneyMarshalJSON(t *testing.T) {
	// Emitted as a bare JSON number; trailing zeros are not preserved.
	out, err := json.Marshal(ParseMoney("1234.50"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "1234.5" {
		t.Errorf("marshal = %s, want 1234.5", out)
	}
	out, err = json.Marshal(ParseMoney("78.97"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "78.97" {
		t.Errorf("marshal = %s, want 78.97", out)
	}
}

func TestParseMoney(t *testing.T) {
	if got := ParseMoney("12.34"); got.String() != "12.34" {
		t.Errorf("ParseMoney(12.34) = %s", got)
	}
	if got := ParseMoney("not a number"); !got.IsZero() {
		t.Errorf("ParseMoney(garbage) = %s, want 0", got)
	}
	if got := ParseMoney(""); !got.IsZero() {
		t.Errorf("ParseMoney(empty) = %s, want 0", got)
	}
}

func TestMoneyScanValue(t *testing.T) {
	var m Money
	if err := m.Scan("42.42"); err != nil {
		t.Fatalf("scan: %v", err)
	}
	v, err := m.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != "42.42" {
		t.Errorf("value = %v, want 42.42", v)
	}

	if err := m.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if !m.IsZero() {
		t.Errorf("scan nil = %s, want 0", m)
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := ParseMoney("10.50")
	b := ParseMoney("2.25")
	if got := a.Add(b); got.String() != "12.75" {
		t.Errorf("add = %s, want 12.75", got)
	}
	if got := a.Sub(b); got.String() != "8.25" {
		t.Errorf("sub = %s, want 8.25", got)
	}
}
