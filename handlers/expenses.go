package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack-app/fintrack/models"
)

const expenseSelectQuery = `SELECT e.id, e.user_id, e.description, e.amount, e.category, e.expense_date,
	e.payment_method, e.is_recurring, e.income_id, e.created_at, e.updated_at,
	i.source
	FROM expenses e
	LEFT JOIN incomes i ON e.income_id = i.id`

func scanExpense(scanner interface{ Scan(...any) error }) (models.Expense, error) {
	var e models.Expense
	err := scanner.Scan(&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Category, &e.ExpenseDate,
		&e.PaymentMethod, &e.IsRecurring, &e.IncomeID, &e.CreatedAt, &e.UpdatedAt, &e.IncomeSource)
	return e, err
}

func getExpenseByID(id int, user string) (models.Expense, error) {
	return scanExpense(DB.QueryRow(expenseSelectQuery+" WHERE e.id = ? AND e.user_id = ?", id, user))
}

// ListExpenses lists all expenses
// @Summary      List expenses
// @Description  Get the user's expenses, filterable by category, date range, and recurrence.
// @Tags         expenses
// @Produce      json
// @Param        category   query     string  false  "Filter by category"
// @Param        from       query     string  false  "Earliest expense date (YYYY-MM-DD)"
// @Param        to         query     string  false  "Latest expense date (YYYY-MM-DD)"
// @Param        recurring  query     bool    false  "Only recurring expenses"
// @Param        search     query     string  false  "Search by description"
// @Success      200  {object}  Response{data=[]models.Expense}
// @Router       /expenses [get]
// @Security     BearerAuth
func ListExpenses(w http.ResponseWriter, r *http.Request) {
	query := expenseSelectQuery
	conditions := []string{"e.user_id = ?"}
	args := []any{userID(r)}

	if c := r.URL.Query().Get("category"); c != "" {
		conditions = append(conditions, "e.category = ?")
		args = append(args, c)
	}
	if from := r.URL.Query().Get("from"); from != "" {
		conditions = append(conditions, "e.expense_date >= ?")
		args = append(args, from)
	}
	if to := r.URL.Query().Get("to"); to != "" {
		conditions = append(conditions, "e.expense_date <= ?")
		args = append(args, to)
	}
	if rec := r.URL.Query().Get("recurring"); rec == "true" {
		conditions = append(conditions, "e.is_recurring = 1")
	}
	if search := r.URL.Query().Get("search"); search != "" {
		conditions = append(conditions, "e.description LIKE ?")
		args = append(args, "%"+search+"%")
	}
	query += " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY e.expense_date DESC, e.created_at DESC"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		expenses = append(expenses, e)
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

// GetExpense retrieves a single expense by ID
// @Summary      Get expense
// @Description  Get details of a specific expense.
// @Tags         expenses
// @Produce      json
// @Param        id   path      int  true  "Expense ID"
// @Success      200  {object}  Response{data=models.Expense}
// @Failure      404  {object}  Response{error=string}
// @Router       /expenses/{id} [get]
// @Security     BearerAuth
func GetExpense(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	e, err := getExpenseByID(id, userID(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "expense not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// CreateExpense creates a new expense
// @Summary      Create expense
// @Description  Create a new expense record.
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        expense  body      models.ExpenseInput  true  "Expense contents"
// @Success      201      {object}  Response{data=models.Expense}
// @Failure      400      {object}  Response{error=string}
// @Router       /expenses [post]
// @Security     BearerAuth
func CreateExpense(w http.ResponseWriter, r *http.Request) {
	var input models.ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var id int
	err := DB.QueryRow(`INSERT INTO expenses (user_id, description, amount, category, expense_date, payment_method, is_recurring, income_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		userID(r), input.Description, input.Amount, input.Category, input.ExpenseDate,
		input.PaymentMethod, input.IsRecurring, input.IncomeID).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	e, err := getExpenseByID(id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created expense: "+err.Error())
		return
	}
	notifyChange(r, "expenses")
	writeJSON(w, http.StatusCreated, e)
}

// UpdateExpense updates an existing expense
// @Summary      Update expense
// @Description  Update details of an existing expense.
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Expense ID"
// @Param        expense  body      models.ExpenseInput  true  "Updated expense contents"
// @Success      200      {object}  Response{data=models.Expense}
// @Failure      400      {object}  Response{error=string}
// @Failure      404      {object}  Response{error=string}
// @Router       /expenses/{id} [put]
// @Security     BearerAuth
func UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(`UPDATE expenses SET description = ?, amount = ?, category = ?, expense_date = ?,
		payment_method = ?, is_recurring = ?, income_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?`,
		input.Description, input.Amount, input.Category, input.ExpenseDate,
		input.PaymentMethod, input.IsRecurring, input.IncomeID, id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}

	e, err := getExpenseByID(id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated expense: "+err.Error())
		return
	}
	notifyChange(r, "expenses")
	writeJSON(w, http.StatusOK, e)
}

// DeleteExpense deletes an expense
// @Summary      Delete expense
// @Description  Remove an expense.
// @Tags         expenses
// @Produce      json
// @Param        id   path      int  true  "Expense ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /expenses/{id} [delete]
// @Security     BearerAuth
func DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM expenses WHERE id = ? AND user_id = ?", id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	notifyChange(r, "expenses")
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
