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

const investmentSelectQuery = `SELECT id, user_id, account_name, account_type, balance, contribution_amount,
	contribution_frequency, expected_return, risk_level, created_at, updated_at
	FROM investments`

func scanInvestment(scanner interface{ Scan(...any) error }) (models.Investment, error) {
	var i models.Investment
	var freq, risk sql.NullString
	err := scanner.Scan(&i.ID, &i.UserID, &i.AccountName, &i.AccountType, &i.Balance, &i.ContributionAmount,
		&freq, &i.ExpectedReturn, &risk, &i.CreatedAt, &i.UpdatedAt)
	i.ContributionFrequency = freq.String
	i.RiskLevel = risk.String
	return i, err
}

func getInvestmentByID(id int, user string) (models.Investment, error) {
	return scanInvestment(DB.QueryRow(investmentSelectQuery+" WHERE id = ? AND user_id = ?", id, user))
}

// ListInvestments lists all investment accounts
// @Summary      List investments
// @Description  Get all of the user's investment accounts.
// @Tags         investments
// @Produce      json
// @Param        risk_level  query     string  false  "Filter by risk level"
// @Param        search      query     string  false  "Search by account name"
// @Success      200  {object}  Response{data=[]models.Investment}
// @Router       /investments [get]
// @Security     BearerAuth
func ListInvestments(w http.ResponseWriter, r *http.Request) {
	query := investmentSelectQuery
	conditions := []string{"user_id = ?"}
	args := []any{userID(r)}

	if rl := r.URL.Query().Get("risk_level"); rl != "" {
		conditions = append(conditions, "risk_level = ?")
		args = append(args, rl)
	}
	if search := r.URL.Query().Get("search"); search != "" {
		conditions = append(conditions, "account_name LIKE ?")
		args = append(args, "%"+search+"%")
	}
	query += " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY account_name"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var investments []models.Investment
	for rows.Next() {
		i, err := scanInvestment(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		investments = append(investments, i)
	}
	if investments == nil {
		investments = []models.Investment{}
	}
	writeJSON(w, http.StatusOK, investments)
}

// GetInvestment retrieves a single investment account by ID
// @Summary      Get investment
// @Description  Get details of a specific investment account.
// @Tags         investments
// @Produce      json
// @Param        id   path      int  true  "Investment ID"
// @Success      200  {object}  Response{data=models.Investment}
// @Failure      404  {object}  Response{error=string}
// @Router       /investments/{id} [get]
// @Security     BearerAuth
func GetInvestment(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	i, err := getInvestmentByID(id, userID(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "investment not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, i)
}

// CreateInvestment creates a new investment account
// @Summary      Create investment
// @Description  Create a new investment account record.
// @Tags         investments
// @Accept       json
// @Produce      json
// @Param        investment  body      models.InvestmentInput  true  "Investment contents"
// @Success      201         {object}  Response{data=models.Investment}
// @Failure      400         {object}  Response{error=string}
// @Router       /investments [post]
// @Security     BearerAuth
func CreateInvestment(w http.ResponseWriter, r *http.Request) {
	var input models.InvestmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var id int
	err := DB.QueryRow(`INSERT INTO investments (user_id, account_name, account_type, balance, contribution_amount, contribution_frequency, expected_return, risk_level)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		userID(r), input.AccountName, input.AccountType, input.Balance, input.ContributionAmount,
		input.ContributionFrequency, input.ExpectedReturn, input.RiskLevel).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	i, err := getInvestmentByID(id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created investment: "+err.Error())
		return
	}
	notifyChange(r, "investments")
	writeJSON(w, http.StatusCreated, i)
}

// UpdateInvestment updates an existing investment account
// @Summary      Update investment
// @Description  Update details of an existing investment account.
// @Tags         investments
// @Accept       json
// @Produce      json
// @Param        id          path      int                     true  "Investment ID"
// @Param        investment  body      models.InvestmentInput  true  "Updated investment contents"
// @Success      200         {object}  Response{data=models.Investment}
// @Failure      400         {object}  Response{error=string}
// @Failure      404         {object}  Response{error=string}
// @Router       /investments/{id} [put]
// @Security     BearerAuth
func UpdateInvestment(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.InvestmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(`UPDATE investments SET account_name = ?, account_type = ?, balance = ?,
		contribution_amount = ?, contribution_frequency = ?, expected_return = ?, risk_level = ?,
		updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?`,
		input.AccountName, input.AccountType, input.Balance, input.ContributionAmount,
		input.ContributionFrequency, input.ExpectedReturn, input.RiskLevel, id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "investment not found")
		return
	}

	i, err := getInvestmentByID(id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated investment: "+err.Error())
		return
	}
	notifyChange(r, "investments")
	writeJSON(w, http.StatusOK, i)
}

// DeleteInvestment deletes an investment account
// @Summary      Delete investment
// @Description  Remove an investment account.
// @Tags         investments
// @Produce      json
// @Param        id   path      int  true  "Investment ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /investments/{id} [delete]
// @Security     BearerAuth
func DeleteInvestment(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM investments WHERE id = ? AND user_id = ?", id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "investment not found")
		return
	}
	notifyChange(r, "investments")
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
