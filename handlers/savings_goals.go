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

const savingsGoalSelectQuery = `SELECT id, user_id, name, target_amount, current_amount, monthly_contribution,
	target_date, created_at, updated_at
	FROM savings_goals`

func scanSavingsGoal(scanner interface{ Scan(...any) error }) (models.SavingsGoal, error) {
	var s models.SavingsGoal
	err := scanner.Scan(&s.ID, &s.UserID, &s.Name, &s.TargetAmount, &s.CurrentAmount, &s.MonthlyContribution,
		&s.TargetDate, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func getSavingsGoalByID(id int, user string) (models.SavingsGoal, error) {
	return scanSavingsGoal(DB.QueryRow(savingsGoalSelectQuery+" WHERE id = ? AND user_id = ?", id, user))
}

// ListSavingsGoals lists all savings goals
// @Summary      List savings goals
// @Description  Get all of the user's savings goals.
// @Tags         savings-goals
// @Produce      json
// @Param        search  query     string  false  "Search by name"
// @Success      200  {object}  Response{data=[]models.SavingsGoal}
// @Router       /savings-goals [get]
// @Security     BearerAuth
func ListSavingsGoals(w http.ResponseWriter, r *http.Request) {
	query := savingsGoalSelectQuery + " WHERE user_id = ?"
	args := []any{userID(r)}
	if search := r.URL.Query().Get("search"); search != "" {
		query += " AND name LIKE ?"
		args = append(args, "%"+search+"%")
	}
	query += " ORDER BY name"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var goals []models.SavingsGoal
	for rows.Next() {
		s, err := scanSavingsGoal(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		goals = append(goals, s)
	}
	if goals == nil {
		goals = []models.SavingsGoal{}
	}
	writeJSON(w, http.StatusOK, goals)
}

// GetSavingsGoal retrieves a single savings goal by ID
// @Summary      Get savings goal
// @Description  Get details of a specific savings goal.
// @Tags         savings-goals
// @Produce      json
// @Param        id   path      int  true  "Savings goal ID"
// @Success      200  {object}  Response{data=models.SavingsGoal}
// @Failure      404  {object}  Response{error=string}
// @Router       /savings-goals/{id} [get]
// @Security     BearerAuth
func GetSavingsGoal(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	s, err := getSavingsGoalByID(id, userID(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "savings goal not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// CreateSavingsGoal creates a new savings goal
// @Summary      Create savings goal
// @Description  Create a new savings goal.
// @Tags         savings-goals
// @Accept       json
// @Produce      json
// @Param        goal  body      models.SavingsGoalInput  true  "Savings goal contents"
// @Success      201   {object}  Response{data=models.SavingsGoal}
// @Failure      400   {object}  Response{error=string}
// @Router       /savings-goals [post]
// @Security     BearerAuth
func CreateSavingsGoal(w http.ResponseWriter, r *http.Request) {
	var input models.SavingsGoalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var id int
	err := DB.QueryRow(`INSERT INTO savings_goals (user_id, name, target_amount, current_amount, monthly_contribution, target_date)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		userID(r), input.Name, input.TargetAmount, input.CurrentAmount, input.MonthlyContribution, input.TargetDate).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s, err := getSavingsGoalByID(id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created savings goal: "+err.Error())
		return
	}
	notifyChange(r, "savings_goals")
	writeJSON(w, http.StatusCreated, s)
}

// UpdateSavingsGoal updates an existing savings goal
// @Summary      Update savings goal
// @Description  Update details of an existing savings goal.
// @Tags         savings-goals
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "Savings goal ID"
// @Param        goal  body      models.SavingsGoalInput  true  "Updated savings goal contents"
// @Success      200   {object}  Response{data=models.SavingsGoal}
// @Failure      400   {object}  Response{error=string}
// @Failure      404   {object}  Response{error=string}
// @Router       /savings-goals/{id} [put]
// @Security     BearerAuth
func UpdateSavingsGoal(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.SavingsGoalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(`UPDATE savings_goals SET name = ?, target_amount = ?, current_amount = ?,
		monthly_contribution = ?, target_date = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?`,
		input.Name, input.TargetAmount, input.CurrentAmount, input.MonthlyContribution, input.TargetDate, id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "savings goal not found")
		return
	}

	s, err := getSavingsGoalByID(id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated savings goal: "+err.Error())
		return
	}
	notifyChange(r, "savings_goals")
	writeJSON(w, http.StatusOK, s)
}

// DeleteSavingsGoal deletes a savings goal
// @Summary      Delete savings goal
// @Description  Remove a savings goal.
// @Tags         savings-goals
// @Produce      json
// @Param        id   path      int  true  "Savings goal ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /savings-goals/{id} [delete]
// @Security     BearerAuth
func DeleteSavingsGoal(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM savings_goals WHERE id = ? AND user_id = ?", id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "savings goal not found")
		return
	}
	notifyChange(r, "savings_goals")
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
