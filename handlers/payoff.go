package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/fintrack-app/fintrack/finance"
)

// parseExtra reads the optional ?extra=N query parameter as a monthly
// extra payment. Missing or empty means zero.
func parseExtra(r *http.Request) (decimal.Decimal, error) {
	raw := r.URL.Query().Get("extra")
	if raw == "" {
		return decimal.Zero, nil
	}
	extra, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.New("extra must be a number")
	}
	if extra.IsNegative() {
		return decimal.Zero, errors.New("extra must be non-negative")
	}
	return extra, nil
}

// GetCreditCardPayoff projects the payoff schedule for a credit card
// @Summary      Credit card payoff projection
// @Description  Amortize the card balance at its minimum payment plus an optional extra.
// @Tags         credit-cards
// @Produce      json
// @Param        id     path      int     true   "Credit card ID"
// @Param        extra  query     number  false  "Extra monthly payment"
// @Success      200    {object}  Response{data=finance.PayoffResult}
// @Failure      400    {object}  Response{error=string}
// @Failure      404    {object}  Response{error=string}
// @Router       /credit-cards/{id}/payoff [get]
// @Security     BearerAuth
func GetCreditCardPayoff(w http.ResponseWriter, r *http.Request) {
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

	extra, err := parseExtra(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := finance.Payoff(c.Balance.Decimal, c.InterestRate, c.MinimumPayment.Decimal, extra, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetLoanPayoff projects the payoff schedule for a loan
// @Summary      Loan payoff projection
// @Description  Amortize the loan balance at its monthly payment plus an optional extra.
// @Tags         loans
// @Produce      json
// @Param        id     path      int     true   "Loan ID"
// @Param        extra  query     number  false  "Extra monthly payment"
// @Success      200    {object}  Response{data=finance.PayoffResult}
// @Failure      400    {object}  Response{error=string}
// @Failure      404    {object}  Response{error=string}
// @Router       /loans/{id}/payoff [get]
// @Security     BearerAuth
func GetLoanPayoff(w http.ResponseWriter, r *http.Request) {
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

	extra, err := parseExtra(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := finance.Payoff(l.Balance.Decimal, l.InterestRate, l.MonthlyPayment.Decimal, extra, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}
