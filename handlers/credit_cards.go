package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack-app/fintrack/finance"
	"github.com/fintrack-app/fintrack/models"
)

const creditCardSelectQuery = `SELECT id, user_id, name, balance, credit_limit, interest_rate,
	minimum_payment, due_date, created_at, updated_at
	FROM credit_cards`

func scanCreditCard(scanner interface{ Scan(...any) error }) (models.CreditCard, error) {
	var c models.CreditCard
	err := scanner.Scan(&c.ID, &c.UserID, &c.Name, &c.Balance, &c.CreditLimit, &c.InterestRate,
		&c.MinimumPayment, &c.DueDate, &c.CreatedAt, &c.UpdatedAt)
	if err == nil {
		c.AvailableCredit = c.CreditLimit.Sub(c.Balance)
		if due, derr := finance.NextDueDate(c.DueDate, time.Now()); derr == nil {
			c.NextDueDate = &due
		}
	}
	return c, err
}

func getCreditCardByID(id int, user string) (models.CreditCard, error) {
	return scanCreditCard(DB.QueryRow(creditCardSelectQuery+" WHERE id = ? AND user_id = ?", id, user))
}

// ListCreditCards lists all credit cards
// @Summary      List credit cards
// @Description  Get all of the user's credit cards with available credit and next due date.
// @Tags         credit-cards
// @Produce      json
// @Param        search  query     string  false  "Search by name"
// @Success      200  {object}  Response{data=[]models.CreditCard}
// @Router       /credit-cards [get]
// @Security     BearerAuth
func ListCreditCards(w http.ResponseWriter, r *http.Request) {
	query := creditCardSelectQuery + " WHERE user_id = ?"
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

	var cards []models.CreditCard
	for rows.Next() {
		c, err := scanCreditCard(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		cards = append(cards, c)
	}
	if cards == nil {
		cards = []models.CreditCard{}
	}
	writeJSON(w, http.StatusOK, cards)
}

// GetCreditCard retrieves a single credit card by ID
// @Summary      Get credit card
// @Description  Get details of a specific credit card.
// @Tags         credit-cards
// @Produce      json
// @Param        id   path      int  true  "Credit card ID"
// @Success      200  {object}  Response{data=models.CreditCard}
// @Failure      404  {object}  Response{error=string}
// @Router       /credit-cards/{id} [get]
// @Security     BearerAuth
func GetCreditCard(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	c, err := getCreditCardByID(id, userID(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "credit card not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreateCreditCard creates a new credit card
// @Summary      Create credit card
// @Description  Create a new credit card record.
// @Tags         credit-cards
// @Accept       json
// @Produce      json
// @Param        card  body      models.CreditCardInput  true  "Credit card contents"
// @Success      201   {object}  Response{data=models.CreditCard}
// @Failure      400   {object}  Response{error=string}
// @Router       /credit-cards [post]
// @Security     BearerAuth
func CreateCreditCard(w http.ResponseWriter, r *http.Request) {
	var input models.CreditCardInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var id int
	err := DB.QueryRow(`INSERT INTO credit_cards (user_id, name, balance, credit_limit, interest_rate, minimum_payment, due_date)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		userID(r), input.Name, input.Balance, input.CreditLimit, input.InterestRate,
		input.MinimumPayment, input.DueDate).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	c, err := getCreditCardByID(id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created credit card: "+err.Error())
		return
	}
	notifyChange(r, "credit_cards")
	writeJSON(w, http.StatusCreated, c)
}

// UpdateCreditCard updates an existing credit card
// @Summary      Update credit card
// @Description  Update details of an existing credit card.
// @Tags         credit-cards
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "Credit card ID"
// @Param        card  body      models.CreditCardInput  true  "Updated credit card contents"
// @Success      200   {object}  Response{data=models.CreditCard}
// @Failure      400   {object}  Response{error=string}
// @Failure      404   {object}  Response{error=string}
// @Router       /credit-cards/{id} [put]
// @Security     BearerAuth
func UpdateCreditCard(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.CreditCardInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(`UPDATE credit_cards SET name = ?, balance = ?, credit_limit = ?, interest_rate = ?,
		minimum_payment = ?, due_date = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?`,
		input.Name, input.Balance, input.CreditLimit, input.InterestRate,
		input.MinimumPayment, input.DueDate, id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "credit card not found")
		return
	}

	c, err := getCreditCardByID(id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated credit card: "+err.Error())
		return
	}
	notifyChange(r, "credit_cards")
	writeJSON(w, http.StatusOK, c)
}

// DeleteCreditCard deletes a credit card
// @Summary      Delete credit card
// @Description  Remove a credit card.
// @Tags         credit-cards
// @Produce      json
// @Param        id   path      int  true  "Credit card ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /credit-cards/{id} [delete]
// @Security     BearerAuth
func DeleteCreditCard(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM credit_cards WHERE id = ? AND user_id = ?", id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "credit card not found")
		return
	}
	notifyChange(r, "credit_cards")
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
