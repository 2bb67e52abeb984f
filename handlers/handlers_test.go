package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack-app/fintrack/db"
	"github.com/fintrack-app/fintrack/derived"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if err := db.Migrate(database); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	DB = database
	Events = derived.NewBus()
	Dashboards = derived.NewCache(Events)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Auth(""))

		r.Get("/credit-cards", ListCreditCards)
		r.Post("/credit-cards", CreateCreditCard)
		r.Get("/credit-cards/{id}", GetCreditCard)
		r.Put("/credit-cards/{id}", UpdateCreditCard)
		r.Delete("/credit-cards/{id}", DeleteCreditCard)
		r.Get("/credit-cards/{id}/payoff", GetCreditCardPayoff)

		r.Post("/loans", CreateLoan)
		r.Get("/loans/{id}/payoff", GetLoanPayoff)

		r.Post("/incomes", CreateIncome)
		r.Post("/expenses", CreateExpense)
		r.Post("/assets", CreateAsset)

		r.Post("/budgets", CreateBudget)
		r.Get("/budgets/{id}/progress", GetBudgetProgress)

		r.Post("/vendors", CreateVendor)
		r.Get("/vendors/{id}", GetVendor)
		r.Post("/purchase-orders", CreatePurchaseOrder)
		r.Get("/purchase-orders/{id}", GetPurchaseOrder)
		r.Put("/purchase-orders/{id}", UpdatePurchaseOrder)

		r.Get("/dashboard", GetDashboard)
	})
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var envelope map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("%s %s: invalid response JSON: %v (body %q)", method, path, err, rec.Body.String())
	}
	return rec, envelope
}

func TestCreditCardCRUD(t *testing.T) {
	r := newTestRouter(t)

	rec, env := doJSON(t, r, "POST", "/api/v1/credit-cards",
		`{"name":"Visa","balance":500,"credit_limit":1000,"interest_rate":19.99,"minimum_payment":25,"due_date":15}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got %d, want 201: %v", rec.Code, env)
	}
	card := env["data"].(map[string]any)
	if card["available_credit"].(float64) != 500 {
		t.Errorf("available_credit = %v, want 500", card["available_credit"])
	}
	if card["next_due_date"] == nil {
		t.Error("next_due_date not computed")
	}

	rec, env = doJSON(t, r, "GET", "/api/v1/credit-cards", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: got %d", rec.Code)
	}
	if cards := env["data"].([]any); len(cards) != 1 {
		t.Fatalf("list: got %d cards, want 1", len(cards))
	}

	rec, _ = doJSON(t, r, "PUT", "/api/v1/credit-cards/999",
		`{"name":"Visa","balance":400,"credit_limit":1000,"interest_rate":19.99,"minimum_payment":25,"due_date":15}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("update missing: got %d, want 404", rec.Code)
	}

	rec, env = doJSON(t, r, "PUT", "/api/v1/credit-cards/1",
		`{"name":"Visa","balance":400,"credit_limit":1000,"interest_rate":19.99,"minimum_payment":25,"due_date":15}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: got %d: %v", rec.Code, env)
	}
	if got := env["data"].(map[string]any)["balance"].(float64); got != 400 {
		t.Errorf("updated balance = %v, want 400", got)
	}

	rec, _ = doJSON(t, r, "DELETE", "/api/v1/credit-cards/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: got %d", rec.Code)
	}
	rec, _ = doJSON(t, r, "GET", "/api/v1/credit-cards/1", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: got %d, want 404", rec.Code)
	}
}

func TestCreditCardValidation(t *testing.T) {
	r := newTestRouter(t)

	rec, env := doJSON(t, r, "POST", "/api/v1/credit-cards",
		`{"name":"","balance":500,"credit_limit":1000,"due_date":15}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rec.Code)
	}
	if msg := env["error"].(string); !strings.Contains(msg, "name") {
		t.Errorf("error = %q, want mention of name", msg)
	}

	rec, _ = doJSON(t, r, "POST", "/api/v1/credit-cards",
		`{"name":"Visa","balance":500,"credit_limit":1000,"due_date":32}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("due_date 32: got %d, want 400", rec.Code)
	}
}

func TestMalformedMoneyCoercesToZero(t *testing.T) {
	r := newTestRouter(t)

	// A garbage balance parses as zero rather than rejecting the request.
	rec, env := doJSON(t, r, "POST", "/api/v1/credit-cards",
		`{"name":"Visa","balance":"garbage","credit_limit":1000,"due_date":15}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("got %d, want 201: %v", rec.Code, env)
	}
	if got := env["data"].(map[string]any)["balance"].(float64); got != 0 {
		t.Errorf("balance = %v, want 0", got)
	}
}

func TestCreditCardPayoff(t *testing.T) {
	r := newTestRouter(t)

	doJSON(t, r, "POST", "/api/v1/credit-cards",
		`{"name":"Visa","balance":1200,"credit_limit":5000,"interest_rate":0,"minimum_payment":100,"due_date":1}`)

	rec, env := doJSON(t, r, "GET", "/api/v1/credit-cards/1/payoff", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("payoff: got %d: %v", rec.Code, env)
	}
	data := env["data"].(map[string]any)
	if data["outcome"] != "paid_off" {
		t.Errorf("outcome = %v, want paid_off", data["outcome"])
	}
	if months := data["months"].(float64); months != 12 {
		t.Errorf("months = %v, want 12", months)
	}

	// Extra payment shortens the projection.
	rec, env = doJSON(t, r, "GET", "/api/v1/credit-cards/1/payoff?extra=100", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("payoff extra: got %d", rec.Code)
	}
	if months := env["data"].(map[string]any)["months"].(float64); months != 6 {
		t.Errorf("months with extra = %v, want 6", months)
	}

	rec, _ = doJSON(t, r, "GET", "/api/v1/credit-cards/1/payoff?extra=-5", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative extra: got %d, want 400", rec.Code)
	}
	rec, _ = doJSON(t, r, "GET", "/api/v1/credit-cards/999/payoff", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing card: got %d, want 404", rec.Code)
	}
}

func TestLoanPayoffInsufficientPayment(t *testing.T) {
	r := newTestRouter(t)

	doJSON(t, r, "POST", "/api/v1/loans",
		`{"name":"Car","balance":10000,"original_amount":12000,"interest_rate":24,"monthly_payment":150,"term_months":60,"due_date":5,"loan_type":"auto"}`)

	rec, env := doJSON(t, r, "GET", "/api/v1/loans/1/payoff", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("payoff: got %d: %v", rec.Code, env)
	}
	// 10000 at 24% accrues 200/month interest; 150 never touches principal.
	if outcome := env["data"].(map[string]any)["outcome"]; outcome != "payment_insufficient" {
		t.Errorf("outcome = %v, want payment_insufficient", outcome)
	}
}

func TestBudgetProgress(t *testing.T) {
	r := newTestRouter(t)

	rec, env := doJSON(t, r, "POST", "/api/v1/budgets",
		`{"category":"groceries","monthly_allocation":400,"alert_threshold":80,"budget_month":"2026-08"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget: got %d: %v", rec.Code, env)
	}

	// Duplicate category+month rejected.
	rec, _ = doJSON(t, r, "POST", "/api/v1/budgets",
		`{"category":"groceries","monthly_allocation":500,"alert_threshold":80,"budget_month":"2026-08"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate budget: got %d, want 400", rec.Code)
	}

	doJSON(t, r, "POST", "/api/v1/expenses",
		`{"description":"weekly shop","amount":250,"category":"groceries","expense_date":"2026-08-10"}`)
	doJSON(t, r, "POST", "/api/v1/expenses",
		`{"description":"top-up","amount":100,"category":"groceries","expense_date":"2026-08-20"}`)
	// Different month, must not count.
	doJSON(t, r, "POST", "/api/v1/expenses",
		`{"description":"last month","amount":500,"category":"groceries","expense_date":"2026-07-10"}`)

	rec, env = doJSON(t, r, "GET", "/api/v1/budgets/1/progress", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("progress: got %d: %v", rec.Code, env)
	}
	data := env["data"].(map[string]any)
	if data["spent"] != "350" {
		t.Errorf("spent = %v, want 350", data["spent"])
	}
	if pct := data["percent"].(float64); pct != 87.5 {
		t.Errorf("percent = %v, want 87.5", pct)
	}
	if data["over_threshold"] != true {
		t.Error("over_threshold = false, want true at 87.5% of an 80% threshold")
	}
}

func TestPurchaseOrderItems(t *testing.T) {
	r := newTestRouter(t)

	rec, env := doJSON(t, r, "POST", "/api/v1/vendors", `{"name":"Acme Supplies"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create vendor: got %d: %v", rec.Code, env)
	}

	rec, env = doJSON(t, r, "POST", "/api/v1/purchase-orders",
		`{"vendor_id":1,"status":"ordered","order_date":"2026-08-15","items":[
			{"description":"widgets","quantity":3,"unit_price":"9.99"},
			{"description":"gadgets","quantity":2,"unit_price":"24.50"}
		]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create order: got %d: %v", rec.Code, env)
	}
	order := env["data"].(map[string]any)
	if order["total"].(float64) != 78.97 {
		t.Errorf("total = %v, want 78.97", order["total"])
	}
	if items := order["items"].([]any); len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if vn := order["vendor_name"]; vn != "Acme Supplies" {
		t.Errorf("vendor_name = %v, want Acme Supplies", vn)
	}

	// Replacing the items recomputes the total.
	rec, env = doJSON(t, r, "PUT", "/api/v1/purchase-orders/1",
		`{"vendor_id":1,"status":"received","order_date":"2026-08-15","items":[
			{"description":"widgets","quantity":1,"unit_price":"9.99"}
		]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update order: got %d: %v", rec.Code, env)
	}
	order = env["data"].(map[string]any)
	if order["total"].(float64) != 9.99 {
		t.Errorf("total after update = %v, want 9.99", order["total"])
	}

	// Vendor totals exclude nothing here; one non-cancelled order.
	rec, env = doJSON(t, r, "GET", "/api/v1/vendors/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get vendor: got %d", rec.Code)
	}
	if got := env["data"].(map[string]any)["total_ordered"].(float64); got != 9.99 {
		t.Errorf("total_ordered = %v, want 9.99", got)
	}

	rec, _ = doJSON(t, r, "POST", "/api/v1/purchase-orders",
		`{"vendor_id":42,"items":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown vendor: got %d, want 400", rec.Code)
	}
}

func TestDashboard(t *testing.T) {
	r := newTestRouter(t)

	doJSON(t, r, "POST", "/api/v1/assets",
		`{"name":"Checking","category":"cash","current_value":1000,"is_liquid":true}`)
	doJSON(t, r, "POST", "/api/v1/assets",
		`{"name":"Car","category":"vehicle","current_value":500}`)
	doJSON(t, r, "POST", "/api/v1/credit-cards",
		`{"name":"Visa","balance":300,"credit_limit":600,"minimum_payment":25,"due_date":10}`)
	doJSON(t, r, "POST", "/api/v1/incomes",
		`{"source":"Job","amount":12000,"frequency":"yearly"}`)

	rec, env := doJSON(t, r, "GET", "/api/v1/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard: got %d: %v", rec.Code, env)
	}
	data := env["data"].(map[string]any)
	summary := data["summary"].(map[string]any)

	if summary["total_assets"] != "1500" {
		t.Errorf("total_assets = %v, want 1500", summary["total_assets"])
	}
	if summary["net_worth"] != "1200" {
		t.Errorf("net_worth = %v, want 1200", summary["net_worth"])
	}
	if summary["liquid_assets"] != "1000" {
		t.Errorf("liquid_assets = %v, want 1000", summary["liquid_assets"])
	}
	if summary["available_credit"] != "300" {
		t.Errorf("available_credit = %v, want 300", summary["available_credit"])
	}
	if util := summary["credit_utilization"].(float64); util != 50 {
		t.Errorf("credit_utilization = %v, want 50", util)
	}
	if summary["monthly_income"] != "1000" {
		t.Errorf("monthly_income = %v, want 1000", summary["monthly_income"])
	}
	if dues := data["upcoming_dues"].([]any); len(dues) != 1 {
		t.Errorf("got %d upcoming dues, want 1", len(dues))
	}

	// A mutation invalidates the cached snapshot.
	doJSON(t, r, "POST", "/api/v1/assets",
		`{"name":"Savings","category":"cash","current_value":100,"is_liquid":true}`)

	rec, env = doJSON(t, r, "GET", "/api/v1/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard after mutation: got %d", rec.Code)
	}
	summary = env["data"].(map[string]any)["summary"].(map[string]any)
	if summary["total_assets"] != "1600" {
		t.Errorf("total_assets after mutation = %v, want 1600", summary["total_assets"])
	}
}

func TestAuthRejectsBadToken(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if err := db.Migrate(database); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	DB = database
	Events = nil
	Dashboards = nil

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Auth("test-secret"))
		r.Get("/credit-cards", ListCreditCards)
	})

	req := httptest.NewRequest("GET", "/api/v1/credit-cards", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: got %d, want 401", rec.Code)
	}

	req = httptest.NewRequest("GET", "/api/v1/credit-cards", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: got %d, want 401", rec.Code)
	}
}
