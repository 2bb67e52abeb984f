package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack-app/fintrack/finance"
	"github.com/fintrack-app/fintrack/models"
)

type dashboardData struct {
	Summary finance.NetWorthSummary `json:"summary"`

	TotalCreditCards  int `json:"total_credit_cards"`
	TotalLoans        int `json:"total_loans"`
	TotalIncomes      int `json:"total_incomes"`
	TotalExpenses     int `json:"total_expenses"`
	TotalAssets       int `json:"total_assets"`
	TotalInvestments  int `json:"total_investments"`
	TotalSavingsGoals int `json:"total_savings_goals"`

	UpcomingDues []upcomingDue    `json:"upcoming_dues"`
	Budgets      []budgetProgress `json:"budgets"`
	SavingsGoals []goalProgress   `json:"savings_goals"`
}

type upcomingDue struct {
	Name    string       `json:"name"`
	Kind    string       `json:"kind"` // credit_card or loan
	Payment models.Money `json:"payment"`
	DueDate time.Time    `json:"due_date"`
}

type budgetProgress struct {
	ID          int    `json:"id"`
	Category    string `json:"category"`
	BudgetMonth string `json:"budget_month"`
	finance.BudgetStatus
}

type goalProgress struct {
	ID      int          `json:"id"`
	Name    string       `json:"name"`
	Target  models.Money `json:"target_amount"`
	Current models.Money `json:"current_amount"`
	Percent float64      `json:"percent"`
}

// GetDashboard retrieves the financial overview for the user
// @Summary      Get dashboard
// @Description  Get net worth, cash flow, credit utilization, upcoming dues, and budget progress.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  Response{data=dashboardData}
// @Router       /dashboard [get]
// @Security     BearerAuth
func GetDashboard(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	if Dashboards != nil {
		if cached, ok := Dashboards.Get(user); ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	d, err := buildDashboard(user, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if Dashboards != nil {
		Dashboards.Set(user, d)
	}
	writeJSON(w, http.StatusOK, d)
}

func buildDashboard(user string, now time.Time) (dashboardData, error) {
	var d dashboardData
	var in finance.SnapshotInput

	// Credit cards feed utilization, debts, and upcoming dues.
	rows, err := DB.Query(`SELECT name, balance, credit_limit, minimum_payment, due_date FROM credit_cards WHERE user_id = ?`, user)
	if err != nil {
		return d, err
	}
	for rows.Next() {
		var name string
		var balance, limit, minPayment models.Money
		var dueDay int
		if err := rows.Scan(&name, &balance, &limit, &minPayment, &dueDay); err != nil {
			rows.Close()
			return d, err
		}
		d.TotalCreditCards++
		in.Cards = append(in.Cards, finance.CardBalance{Balance: balance.Decimal, Limit: limit.Decimal})
		in.Debts = append(in.Debts, balance.Decimal)
		if due, err := finance.NextDueDate(dueDay, now); err == nil {
			d.UpcomingDues = append(d.UpcomingDues, upcomingDue{Name: name, Kind: "credit_card", Payment: minPayment, DueDate: due})
		}
	}
	rows.Close()

	rows, err = DB.Query(`SELECT name, balance, monthly_payment, due_date FROM loans WHERE user_id = ?`, user)
	if err != nil {
		return d, err
	}
	for rows.Next() {
		var name string
		var balance, payment models.Money
		var dueDay int
		if err := rows.Scan(&name, &balance, &payment, &dueDay); err != nil {
			rows.Close()
			return d, err
		}
		d.TotalLoans++
		in.Debts = append(in.Debts, balance.Decimal)
		if due, err := finance.NextDueDate(dueDay, now); err == nil {
			d.UpcomingDues = append(d.UpcomingDues, upcomingDue{Name: name, Kind: "loan", Payment: payment, DueDate: due})
		}
	}
	rows.Close()

	rows, err = DB.Query(`SELECT current_balance FROM liabilities WHERE user_id = ?`, user)
	if err != nil {
		return d, err
	}
	for rows.Next() {
		var balance models.Money
		if err := rows.Scan(&balance); err != nil {
			rows.Close()
			return d, err
		}
		in.Debts = append(in.Debts, balance.Decimal)
	}
	rows.Close()

	rows, err = DB.Query(`SELECT current_value, is_liquid FROM assets WHERE user_id = ?`, user)
	if err != nil {
		return d, err
	}
	for rows.Next() {
		var value models.Money
		var liquid bool
		if err := rows.Scan(&value, &liquid); err != nil {
			rows.Close()
			return d, err
		}
		d.TotalAssets++
		in.Assets = append(in.Assets, finance.AssetValue{Value: value.Decimal, Liquid: liquid})
	}
	rows.Close()

	// Investment balances count as assets but never as liquid.
	rows, err = DB.Query(`SELECT balance FROM investments WHERE user_id = ?`, user)
	if err != nil {
		return d, err
	}
	for rows.Next() {
		var balance models.Money
		if err := rows.Scan(&balance); err != nil {
			rows.Close()
			return d, err
		}
		d.TotalInvestments++
		in.Assets = append(in.Assets, finance.AssetValue{Value: balance.Decimal})
	}
	rows.Close()

	rows, err = DB.Query(`SELECT amount, frequency FROM incomes WHERE user_id = ?`, user)
	if err != nil {
		return d, err
	}
	for rows.Next() {
		var amount models.Money
		var freq string
		if err := rows.Scan(&amount, &freq); err != nil {
			rows.Close()
			return d, err
		}
		d.TotalIncomes++
		in.Incomes = append(in.Incomes, finance.IncomeStream{Amount: amount.Decimal, Frequency: freq})
	}
	rows.Close()

	rows, err = DB.Query(`SELECT amount, is_recurring FROM expenses WHERE user_id = ?`, user)
	if err != nil {
		return d, err
	}
	for rows.Next() {
		var amount models.Money
		var recurring bool
		if err := rows.Scan(&amount, &recurring); err != nil {
			rows.Close()
			return d, err
		}
		d.TotalExpenses++
		in.Expenses = append(in.Expenses, finance.ExpenseItem{Amount: amount.Decimal, Recurring: recurring})
	}
	rows.Close()

	d.Summary = finance.Snapshot(in)

	sort.Slice(d.UpcomingDues, func(i, j int) bool {
		return d.UpcomingDues[i].DueDate.Before(d.UpcomingDues[j].DueDate)
	})
	if d.UpcomingDues == nil {
		d.UpcomingDues = []upcomingDue{}
	}

	// Current month's budgets with live spend.
	month := now.Format("2006-01")
	rows, err = DB.Query(`SELECT id, category, monthly_allocation, alert_threshold, budget_month
		FROM budgets WHERE user_id = ? AND budget_month = ? ORDER BY category`, user, month)
	if err != nil {
		return d, err
	}
	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.Category, &b.MonthlyAllocation, &b.AlertThreshold, &b.BudgetMonth); err != nil {
			rows.Close()
			return d, err
		}
		budgets = append(budgets, b)
	}
	rows.Close()

	d.Budgets = []budgetProgress{}
	for _, b := range budgets {
		spent, err := budgetSpend(user, b.Category, b.BudgetMonth)
		if err != nil {
			return d, err
		}
		d.Budgets = append(d.Budgets, budgetProgress{
			ID:           b.ID,
			Category:     b.Category,
			BudgetMonth:  b.BudgetMonth,
			BudgetStatus: finance.BudgetProgress(b.MonthlyAllocation.Decimal, b.AlertThreshold, spent.Decimal),
		})
	}

	rows, err = DB.Query(`SELECT id, name, target_amount, current_amount FROM savings_goals WHERE user_id = ? ORDER BY name`, user)
	if err != nil {
		return d, err
	}
	d.SavingsGoals = []goalProgress{}
	for rows.Next() {
		var g goalProgress
		if err := rows.Scan(&g.ID, &g.Name, &g.Target, &g.Current); err != nil {
			rows.Close()
			return d, err
		}
		d.TotalSavingsGoals++
		if g.Target.IsPositive() {
			g.Percent, _ = g.Current.Div(g.Target.Decimal).Mul(decimal.NewFromInt(100)).Float64()
			if g.Percent > 100 {
				g.Percent = 100
			}
		}
		d.SavingsGoals = append(d.SavingsGoals, g)
	}
	rows.Close()

	return d, nil
}
