package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack-app/fintrack/models"
)

const incomeSelectQuery = `SELECT id, user_id, source, amount, frequency, next_pay_date, created_at, updated_at
	FROM incomes`

func scanIncome(scanner interface{ Scan(...any) error }) (models.Income, error) {
	var i models.Income
	err := scanner.Scan(&i.ID, &i.UserID, &i.Source, &i.Amount, &i.Frequency, &i.NextPayDate, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

func getIncomeByID(id int, user string) (models.Income, error) {
	return scanIncome(DB.QueryRow(incomeSelectQuery+" WHERE id = ? AND user_id = ?", id, user))
}

// ListIncomes lists all income sources
// @Summary      List incomes
// @Description  Get all of the user's income sources.
// @Tags         incomes
// @Produce      json
// @Param        search  query     string  false  "Search by source"
// @Success      200  {object}  Response{data=[]models.Income}
// @Router       /incomes [get]
// @Security     BearerAuth
func ListIncomes(w http.ResponseWriter, r *http.Request) {
	query := incomeSelectQuery + " WHERE user_id = ?"
	args := []any{userID(r)}
	if search := r.URL.Query().Get("search"); search != "" {
		query += " AND source LIKE ?"
		args = append(args, "%"+search+"%")
	}
	query += " ORDER BY source"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var incomes []models.Income
	for rows.Next() {
		i, err := scanIncome(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		incomes = append(incomes, i)
	}
	if incomes == nil {
		incomes = []models.Income{}
	}
	writeJSON(w, http.StatusOK, incomes)
}

// GetIncome retrieves a single income source by ID
// @Summary      Get income
// @Description  Get details of a specific income source.
// @Tags         incomes
// @Produce      json
// @Param        id   path      int  true  "Income ID"
// @Success      200  {object}  Response{data=models.Income}
// @Failure      404  {object}  Response{error=string}
// @Router       /incomes/{id} [get]
// @Security     BearerAuth
func GetIncome(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	i, err := getIncomeByID(id, userID(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "income not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, i)
}

// CreateIncome creates a new income source
// @Summary      Create income
// @Description  Create a new income source.
// @Tags         incomes
// @Accept       json
// @Produce      json
// @Param        income  body      models.IncomeInput  true  "Income contents"
// @Success      201     {object}  Response{data=models.Income}
// @Failure      400     {object}  Response{error=string}
// @Router       /incomes [post]
// @Security     BearerAuth
func CreateIncome(w http.ResponseWriter, r *http.Request) {
	var input models.IncomeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var id int
	err := DB.QueryRow(`INSERT INTO incomes (user_id, source, amount, frequency, next_pay_date)
		VALUES (?, ?, ?, ?, ?) RETURNING id`,
		userID(r), input.Source, input.Amount, input.Frequency, input.NextPayDate).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	i, err := getIncomeByID(id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created income: "+err.Error())
		return
	}
	notifyChange(r, "incomes")
	writeJSON(w, http.StatusCreated, i)
}

// UpdateIncome updates an existing income source
// @Summary      Update income
// @Description  Update details of an existing income source.
// @Tags         incomes
// @Accept       json
// @Produce      json
// @Param        id      path      int                 true  "Income ID"
// @Param        income  body      models.IncomeInput  true  "Updated income contents"
// @Success      200     {object}  Response{data=models.Income}
// @Failure      400     {object}  Response{error=string}
// @Failure      404     {object}  Response{error=string}
// @Router       /incomes/{id} [put]
// @Security     BearerAuth
func UpdateIncome(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.IncomeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(`UPDATE incomes SET source = ?, amount = ?, frequency = ?, next_pay_date = ?,
		updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?`,
		input.Source, input.Amount, input.Frequency, input.NextPayDate, id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "income not found")
		return
	}

	i, err := getIncomeByID(id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated income: "+err.Error())
		return
	}
	notifyChange(r, "incomes")
	writeJSON(w, http.StatusOK, i)
}

// DeleteIncome deletes an income source
// @Summary      Delete income
// @Description  Remove an income source.
// @Tags         incomes
// @Produce      json
// @Param        id   path      int  true  "Income ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /incomes/{id} [delete]
// @Security     BearerAuth
func DeleteIncome(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM incomes WHERE id = ? AND user_id = ?", id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "income not found")
		return
	}
	notifyChange(r, "incomes")
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
