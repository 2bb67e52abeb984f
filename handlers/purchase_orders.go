package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/fintrack-app/fintrack/models"
)

const purchaseOrderSelectQuery = `SELECT po.id, po.user_id, po.vendor_id, po.status, po.order_date, po.notes,
	po.created_at, po.updated_at, v.name AS vendor_name
	FROM purchase_orders po
	LEFT JOIN vendors v ON v.id = po.vendor_id`

func scanPurchaseOrder(scanner interface{ Scan(...any) error }) (models.PurchaseOrder, error) {
	var p models.PurchaseOrder
	err := scanner.Scan(&p.ID, &p.UserID, &p.VendorID, &p.Status, &p.OrderDate, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt, &p.VendorName)
	return p, err
}

// loadOrderItems attaches line items and the computed total to an order.
func loadOrderItems(p *models.PurchaseOrder) error {
	rows, err := DB.Query(`SELECT id, description, quantity, unit_price
		FROM purchase_order_items WHERE purchase_order_id = ? ORDER BY id`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	p.Items = []models.PurchaseOrderItem{}
	total := decimal.Zero
	for rows.Next() {
		var item models.PurchaseOrderItem
		if err := rows.Scan(&item.ID, &item.Description, &item.Quantity, &item.UnitPrice); err != nil {
			return err
		}
		item.LineTotal = models.Money{Decimal: item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))}
		total = total.Add(item.LineTotal.Decimal)
		p.Items = append(p.Items, item)
	}
	p.Total = models.Money{Decimal: total}
	return rows.Err()
}

func getPurchaseOrderByID(id int, user string) (models.PurchaseOrder, error) {
	p, err := scanPurchaseOrder(DB.QueryRow(purchaseOrderSelectQuery+" WHERE po.id = ? AND po.user_id = ?", id, user))
	if err != nil {
		return p, err
	}
	return p, loadOrderItems(&p)
}

// ListPurchaseOrders lists all purchase orders
// @Summary      List purchase orders
// @Description  Get all purchase orders with line items and computed totals.
// @Tags         purchase-orders
// @Produce      json
// @Param        status     query     string  false  "Filter by status"
// @Param        vendor_id  query     int     false  "Filter by vendor"
// @Success      200  {object}  Response{data=[]models.PurchaseOrder}
// @Router       /purchase-orders [get]
// @Security     BearerAuth
func ListPurchaseOrders(w http.ResponseWriter, r *http.Request) {
	query := purchaseOrderSelectQuery
	conditions := []string{"po.user_id = ?"}
	args := []any{userID(r)}

	if status := r.URL.Query().Get("status"); status != "" {
		conditions = append(conditions, "po.status = ?")
		args = append(args, status)
	}
	if vendor := r.URL.Query().Get("vendor_id"); vendor != "" {
		conditions = append(conditions, "po.vendor_id = ?")
		args = append(args, vendor)
	}
	query += " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY po.created_at DESC"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var orders []models.PurchaseOrder
	for rows.Next() {
		p, err := scanPurchaseOrder(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		orders = append(orders, p)
	}
	rows.Close()

	for i := range orders {
		if err := loadOrderItems(&orders[i]); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	if orders == nil {
		orders = []models.PurchaseOrder{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// GetPurchaseOrder retrieves a single purchase order by ID
// @Summary      Get purchase order
// @Description  Get a purchase order with its line items and computed total.
// @Tags         purchase-orders
// @Produce      json
// @Param        id   path      int  true  "Purchase order ID"
// @Success      200  {object}  Response{data=models.PurchaseOrder}
// @Failure      404  {object}  Response{error=string}
// @Router       /purchase-orders/{id} [get]
// @Security     BearerAuth
func GetPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	p, err := getPurchaseOrderByID(id, userID(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "purchase order not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreatePurchaseOrder creates a new purchase order with its line items
// @Summary      Create purchase order
// @Description  Create a purchase order and its line items in one transaction.
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        order  body      models.PurchaseOrderInput  true  "Purchase order contents"
// @Success      201    {object}  Response{data=models.PurchaseOrder}
// @Failure      400    {object}  Response{error=string}
// @Router       /purchase-orders [post]
// @Security     BearerAuth
func CreatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	var input models.PurchaseOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if input.VendorID != nil && !vendorExists(*input.VendorID, userID(r)) {
		writeError(w, http.StatusBadRequest, "vendor does not exist")
		return
	}

	tx, err := DB.Begin()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer tx.Rollback()

	var id int
	err = tx.QueryRow(`INSERT INTO purchase_orders (user_id, vendor_id, status, order_date, notes)
		VALUES (?, ?, ?, ?, ?) RETURNING id`,
		userID(r), input.VendorID, input.Status, input.OrderDate, input.Notes).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := insertOrderItems(tx, id, input.Items); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := tx.Commit(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	p, err := getPurchaseOrderByID(id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created purchase order: "+err.Error())
		return
	}
	notifyChange(r, "purchase_orders")
	writeJSON(w, http.StatusCreated, p)
}

// UpdatePurchaseOrder updates a purchase order, replacing its line items
// @Summary      Update purchase order
// @Description  Update a purchase order; the submitted items replace the existing ones.
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id     path      int                        true  "Purchase order ID"
// @Param        order  body      models.PurchaseOrderInput  true  "Updated purchase order contents"
// @Success      200    {object}  Response{data=models.PurchaseOrder}
// @Failure      400    {object}  Response{error=string}
// @Failure      404    {object}  Response{error=string}
// @Router       /purchase-orders/{id} [put]
// @Security     BearerAuth
func UpdatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.PurchaseOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if input.VendorID != nil && !vendorExists(*input.VendorID, userID(r)) {
		writeError(w, http.StatusBadRequest, "vendor does not exist")
		return
	}

	tx, err := DB.Begin()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE purchase_orders SET vendor_id = ?, status = ?, order_date = ?, notes = ?,
		updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?`,
		input.VendorID, input.Status, input.OrderDate, input.Notes, id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "purchase order not found")
		return
	}

	if _, err := tx.Exec("DELETE FROM purchase_order_items WHERE purchase_order_id = ?", id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := insertOrderItems(tx, id, input.Items); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := tx.Commit(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	p, err := getPurchaseOrderByID(id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated purchase order: "+err.Error())
		return
	}
	notifyChange(r, "purchase_orders")
	writeJSON(w, http.StatusOK, p)
}

// DeletePurchaseOrder deletes a purchase order and its line items
// @Summary      Delete purchase order
// @Description  Remove a purchase order; its line items are removed with it.
// @Tags         purchase-orders
// @Produce      json
// @Param        id   path      int  true  "Purchase order ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /purchase-orders/{id} [delete]
// @Security     BearerAuth
func DeletePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM purchase_orders WHERE id = ? AND user_id = ?", id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "purchase order not found")
		return
	}
	notifyChange(r, "purchase_orders")
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func vendorExists(id int, user string) bool {
	var n int
	if err := DB.QueryRow("SELECT COUNT(*) FROM vendors WHERE id = ? AND user_id = ?", id, user).Scan(&n); err != nil {
		return false
	}
	return n > 0
}

func insertOrderItems(tx *sql.Tx, orderID int, items []models.PurchaseOrderItemInput) error {
	for _, item := range items {
		_, err := tx.Exec(`INSERT INTO purchase_order_items (purchase_order_id, description, quantity, unit_price)
			VALUES (?, ?, ?, ?)`, orderID, item.Description, item.Quantity, item.UnitPrice)
		if err != nil {
			return err
		}
	}
	return nil
}
