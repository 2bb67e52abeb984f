package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack-app/fintrack/finance"
	"github.com/fintrack-app/fintrack/models"
)

const budgetSelectQuery = `SELECT id, user_id, category, monthly_allocation, alert_threshold, budget_month,
	created_at, updated_at FROM budgets`

func scanBudget(scanner interface{ Scan(...any) error }) (models.Budget, error) {
	var b models.Budget
	err := scanner.Scan(&b.ID, &b.UserID, &b.Category, &b.MonthlyAllocation, &b.AlertThreshold,
		&b.BudgetMonth, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func getBudgetByID(id int, user string) (models.Budget, error) {
	return scanBudget(DB.QueryRow(budgetSelectQuery+" WHERE id = ? AND user_id = ?", id, user))
}

// budgetSpend sums the user's expenses for a category in a YYYY-MM month.
func budgetSpend(user, category, month string) (models.Money, error) {
	var spent models.Money
	err := DB.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM expenses
		WHERE user_id = ? AND category = ? AND strftime('%Y-%m', expense_date) = ?`,
		user, category, month).Scan(&spent)
	return spent, err
}

// ListBudgets lists all budgets
// @Summary      List budgets
// @Description  Get all of the user's budgets, optionally filtered by month.
// @Tags         budgets
// @Produce      json
// @Param        month     query     string  false  "Filter by budget month (YYYY-MM)"
// @Param        category  query     string  false  "Filter by category"
// @Success      200  {object}  Response{data=[]models.Budget}
// @Router       /budgets [get]
// @Security     BearerAuth
func ListBudgets(w http.ResponseWriter, r *http.Request) {
	query := budgetSelectQuery
	conditions := []string{"user_id = ?"}
	args := []any{userID(r)}

	if month := r.URL.Query().Get("month"); month != "" {
		conditions = append(conditions, "budget_month = ?")
		args = append(args, month)
	}
	if category := r.URL.Query().Get("category"); category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, category)
	}
	query += " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY budget_month DESC, category"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		budgets = append(budgets, b)
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}
	writeJSON(w, http.StatusOK, budgets)
}

// GetBudget retrieves a single budget by ID
// @Summary      Get budget
// @Description  Get details of a specific budget.
// @Tags         budgets
// @Produce      json
// @Param        id   path      int  true  "Budget ID"
// @Success      200  {object}  Response{data=models.Budget}
// @Failure      404  {object}  Response{error=string}
// @Router       /budgets/{id} [get]
// @Security     BearerAuth
func GetBudget(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	b, err := getBudgetByID(id, userID(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "budget not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// GetBudgetProgress reports spend progress for a budget
// @Summary      Budget progress
// @Description  Get spend against allocation for a budget's category and month.
// @Tags         budgets
// @Produce      json
// @Param        id   path      int  true  "Budget ID"
// @Success      200  {object}  Response{data=finance.BudgetStatus}
// @Failure      404  {object}  Response{error=string}
// @Router       /budgets/{id}/progress [get]
// @Security     BearerAuth
func GetBudgetProgress(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	b, err := getBudgetByID(id, userID(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "budget not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	spent, err := budgetSpend(b.UserID, b.Category, b.BudgetMonth)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	status := finance.BudgetProgress(b.MonthlyAllocation.Decimal, b.AlertThreshold, spent.Decimal)
	writeJSON(w, http.StatusOK, status)
}

// CreateBudget creates a new budget
// @Summary      Create budget
// @Description  Create a budget for a category and month. One per category per month.
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        budget  body      models.BudgetInput  true  "Budget contents"
// @Success      201     {object}  Response{data=models.Budget}
// @Failure      400     {object}  Response{error=string}
// @Router       /budgets [post]
// @Security     BearerAuth
func CreateBudget(w http.ResponseWriter, r *http.Request) {
	var input models.BudgetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var id int
	err := DB.QueryRow(`INSERT INTO budgets (user_id, category, monthly_allocation, alert_threshold, budget_month)
		VALUES (?, ?, ?, ?, ?) RETURNING id`,
		userID(r), input.Category, input.MonthlyAllocation, input.AlertThreshold, input.BudgetMonth).Scan(&id)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			writeError(w, http.StatusBadRequest, "a budget for this category and month already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	b, err := getBudgetByID(id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created budget: "+err.Error())
		return
	}
	notifyChange(r, "budgets")
	writeJSON(w, http.StatusCreated, b)
}

// UpdateBudget updates an existing budget
// @Summary      Update budget
// @Description  Update details of an existing budget.
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        id      path      int                 true  "Budget ID"
// @Param        budget  body      models.BudgetInput  true  "Updated budget contents"
// @Success      200     {object}  Response{data=models.Budget}
// @Failure      400     {object}  Response{error=string}
// @Failure      404     {object}  Response{error=string}
// @Router       /budgets/{id} [put]
// @Security     BearerAuth
func UpdateBudget(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.BudgetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(`UPDATE budgets SET category = ?, monthly_allocation = ?, alert_threshold = ?,
		budget_month = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?`,
		input.Category, input.MonthlyAllocation, input.AlertThreshold, input.BudgetMonth, id, userID(r))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			writeError(w, http.StatusBadRequest, "a budget for this category and month already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "budget not found")
		return
	}

	b, err := getBudgetByID(id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated budget: "+err.Error())
		return
	}
	notifyChange(r, "budgets")
	writeJSON(w, http.StatusOK, b)
}

// DeleteBudget deletes a budget
// @Summary      Delete budget
// @Description  Remove a budget.
// @Tags         budgets
// @Produce      json
// @Param        id   path      int  true  "Budget ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /budgets/{id} [delete]
// @Security     BearerAuth
func DeleteBudget(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM budgets WHERE id = ? AND user_id = ?", id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "budget not found")
		return
	}
	notifyChange(r, "budgets")
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
