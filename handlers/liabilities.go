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

const liabilitySelectQuery = `SELECT id, user_id, name, liability_type, current_balance, interest_rate,
	payment_frequency, created_at, updated_at
	FROM liabilities`

func scanLiability(scanner interface{ Scan(...any) error }) (models.Liability, error) {
	var l models.Liability
	var freq sql.NullString
	err := scanner.Scan(&l.ID, &l.UserID, &l.Name, &l.LiabilityType, &l.CurrentBalance, &l.InterestRate,
		&freq, &l.CreatedAt, &l.UpdatedAt)
	l.PaymentFrequency = freq.String
	return l, err
}

func getLiabilityByID(id int, user string) (models.Liability, error) {
	return scanLiability(DB.QueryRow(liabilitySelectQuery+" WHERE id = ? AND user_id = ?", id, user))
}

// ListLiabilities lists all liabilities
// @Summary      List liabilities
// @Description  Get all of the user's liabilities.
// @Tags         liabilities
// @Produce      json
// @Param        search  query     string  false  "Search by name"
// @Success      200  {object}  Response{data=[]models.Liability}
// @Router       /liabilities [get]
// @Security     BearerAuth
func ListLiabilities(w http.ResponseWriter, r *http.Request) {
	query := liabilitySelectQuery + " WHERE user_id = ?"
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

	var liabilities []models.Liability
	for rows.Next() {
		l, err := scanLiability(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		liabilities = append(liabilities, l)
	}
	if liabilities == nil {
		liabilities = []models.Liability{}
	}
	writeJSON(w, http.StatusOK, liabilities)
}

// GetLiability retrieves a single liability by ID
// @Summary      Get liability
// @Description  Get details of a specific liability.
// @Tags         liabilities
// @Produce      json
// @Param        id   path      int  true  "Liability ID"
// @Success      200  {object}  Response{data=models.Liability}
// @Failure      404  {object}  Response{error=string}
// @Router       /liabilities/{id} [get]
// @Security     BearerAuth
func GetLiability(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	l, err := getLiabilityByID(id, userID(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "liability not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// CreateLiability creates a new liability
// @Summary      Create liability
// @Description  Create a new liability record.
// @Tags         liabilities
// @Accept       json
// @Produce      json
// @Param        liability  body      models.LiabilityInput  true  "Liability contents"
// @Success      201        {object}  Response{data=models.Liability}
// @Failure      400        {object}  Response{error=string}
// @Router       /liabilities [post]
// @Security     BearerAuth
func CreateLiability(w http.ResponseWriter, r *http.Request) {
	var input models.LiabilityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var id int
	err := DB.QueryRow(`INSERT INTO liabilities (user_id, name, liability_type, current_balance, interest_rate, payment_frequency)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		userID(r), input.Name, input.LiabilityType, input.CurrentBalance, input.InterestRate, input.PaymentFrequency).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	l, err := getLiabilityByID(id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created liability: "+err.Error())
		return
	}
	notifyChange(r, "liabilities")
	writeJSON(w, http.StatusCreated, l)
}

// UpdateLiability updates an existing liability
// @Summary      Update liability
// @Description  Update details of an existing liability.
// @Tags         liabilities
// @Accept       json
// @Produce      json
// @Param        id         path      int                    true  "Liability ID"
// @Param        liability  body      models.LiabilityInput  true  "Updated liability contents"
// @Success      200        {object}  Response{data=models.Liability}
// @Failure      400        {object}  Response{error=string}
// @Failure      404        {object}  Response{error=string}
// @Router       /liabilities/{id} [put]
// @Security     BearerAuth
func UpdateLiability(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.LiabilityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(`UPDATE liabilities SET name = ?, liability_type = ?, current_balance = ?,
		interest_rate = ?, payment_frequency = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?`,
		input.Name, input.LiabilityType, input.CurrentBalance, input.InterestRate, input.PaymentFrequency, id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "liability not found")
		return
	}

	l, err := getLiabilityByID(id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated liability: "+err.Error())
		return
	}
	notifyChange(r, "liabilities")
	writeJSON(w, http.StatusOK, l)
}

// DeleteLiability deletes a liability
// @Summary      Delete liability
// @Description  Remove a liability.
// @Tags         liabilities
// @Produce      json
// @Param        id   path      int  true  "Liability ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /liabilities/{id} [delete]
// @Security     BearerAuth
func DeleteLiability(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM liabilities WHERE id = ? AND user_id = ?", id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "liability not found")
		return
	}
	notifyChange(r, "liabilities")
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
