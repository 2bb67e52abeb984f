package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack-app/fintrack/finance"
	"github.com/fintrack-app/fintrack/models"
)

const loanSelectQuery = `SELECT id, user_id, name, balance, original_amount, interest_rate,
	monthly_payment, term_months, due_date, loan_type, created_at, updated_at
	FROM loans`

func scanLoan(scanner interface{ Scan(...any) error }) (models.Loan, error) {
	var l models.Loan
	err := scanner.Scan(&l.ID, &l.UserID, &l.Name, &l.Balance, &l.OriginalAmount, &l.InterestRate,
		&l.MonthlyPayment, &l.TermMonths, &l.DueDate, &l.LoanType, &l.CreatedAt, &l.UpdatedAt)
	if err == nil {
		if due, derr := finance.NextDueDate(l.DueDate, time.Now()); derr == nil {
			l.NextDueDate = &due
		}
	}
	return l, err
}

func getLoanByID(id int, user string) (models.Loan, error) {
	return scanLoan(DB.QueryRow(loanSelectQuery+" WHERE id = ? AND user_id = ?", id, user))
}

// ListLoans lists all loans
// @Summary      List loans
// @Description  Get all of the user's loans.
// @Tags         loans
// @Produce      json
// @Param        loan_type  query     string  false  "Filter by loan type"
// @Param        search     query     string  false  "Search by name"
// @Success      200  {object}  Response{data=[]models.Loan}
// @Router       /loans [get]
// @Security     BearerAuth
func ListLoans(w http.ResponseWriter, r *http.Request) {
	query := loanSelectQuery
	conditions := []string{"user_id = ?"}
	args := []any{userID(r)}

	if t := r.URL.Query().Get("loan_type"); t != "" {
		conditions = append(conditions, "loan_type = ?")
		args = append(args, t)
	}
	if search := r.URL.Query().Get("search"); search != "" {
		conditions = append(conditions, "name LIKE ?")
		args = append(args, "%"+search+"%")
	}
	query += " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY name"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var loans []models.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		loans = append(loans, l)
	}
	if loans == nil {
		loans = []models.Loan{}
	}
	writeJSON(w, http.StatusOK, loans)
}

// GetLoan retrieves a single loan by ID
// @Summary      Get loan
// @Description  Get details of a specific loan.
// @Tags         loans
// @Produce      json
// @Param        id   path      int  true  "Loan ID"
// @Success      200  {object}  Response{data=models.Loan}
// @Failure      404  {object}  Response{error=string}
// @Router       /loans/{id} [get]
// @Security     BearerAuth
func GetLoan(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	l, err := getLoanByID(id, userID(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "loan not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// CreateLoan creates a new loan
// @Summary      Create loan
// @Description  Create a new loan record.
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        loan  body      models.LoanInput  true  "Loan contents"
// @Success      201   {object}  Response{data=models.Loan}
// @Failure      400   {object}  Response{error=string}
// @Router       /loans [post]
// @Security     BearerAuth
func CreateLoan(w http.ResponseWriter, r *http.Request) {
	var input models.LoanInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var id int
	err := DB.QueryRow(`INSERT INTO loans (user_id, name, balance, original_amount, interest_rate, monthly_payment, term_months, due_date, loan_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		userID(r), input.Name, input.Balance, input.OriginalAmount, input.InterestRate,
		input.MonthlyPayment, input.TermMonths, input.DueDate, input.LoanType).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	l, err := getLoanByID(id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created loan: "+err.Error())
		return
	}
	notifyChange(r, "loans")
	writeJSON(w, http.StatusCreated, l)
}

// UpdateLoan updates an existing loan
// @Summary      Update loan
// @Description  Update details of an existing loan.
// @Tags         loans
// @Accept       json
// @Produce      json
// @Param        id    path      int               true  "Loan ID"
// @Param        loan  body      models.LoanInput  true  "Updated loan contents"
// @Success      200   {object}  Response{data=models.Loan}
// @Failure      400   {object}  Response{error=string}
// @Failure      404   {object}  Response{error=string}
// @Router       /loans/{id} [put]
// @Security     BearerAuth
func UpdateLoan(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.LoanInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(`UPDATE loans SET name = ?, balance = ?, original_amount = ?, interest_rate = ?,
		monthly_payment = ?, term_months = ?, due_date = ?, loan_type = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?`,
		input.Name, input.Balance, input.OriginalAmount, input.InterestRate,
		input.MonthlyPayment, input.TermMonths, input.DueDate, input.LoanType, id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "loan not found")
		return
	}

	l, err := getLoanByID(id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated loan: "+err.Error())
		return
	}
	notifyChange(r, "loans")
	writeJSON(w, http.StatusOK, l)
}

// DeleteLoan deletes a loan
// @Summary      Delete loan
// @Description  Remove a loan.
// @Tags         loans
// @Produce      json
// @Param        id   path      int  true  "Loan ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /loans/{id} [delete]
// @Security     BearerAuth
func DeleteLoan(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM loans WHERE id = ? AND user_id = ?", id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "loan not found")
		return
	}
	notifyChange(r, "loans")
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
