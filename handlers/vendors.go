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

// total_ordered sums every non-cancelled order's line items for the vendor.
const vendorSelectQuery = `SELECT v.id, v.user_id, v.name, v.email, v.phone, v.created_at, v.updated_at,
	COALESCE((SELECT SUM(i.quantity * i.unit_price) FROM purchase_orders po
		JOIN purchase_order_items i ON i.purchase_order_id = po.id
		WHERE po.vendor_id = v.id AND po.status != 'cancelled'), 0) AS total_ordered
	FROM vendors v`

func scanVendor(scanner interface{ Scan(...any) error }) (models.Vendor, error) {
	var v models.Vendor
	err := scanner.Scan(&v.ID, &v.UserID, &v.Name, &v.Email, &v.Phone, &v.CreatedAt, &v.UpdatedAt, &v.TotalOrdered)
	return v, err
}

func getVendorByID(id int, user string) (models.Vendor, error) {
	return scanVendor(DB.QueryRow(vendorSelectQuery+" WHERE v.id = ? AND v.user_id = ?", id, user))
}

// ListVendors lists all vendors
// @Summary      List vendors
// @Description  Get all vendors with their total ordered amounts.
// @Tags         vendors
// @Produce      json
// @Param        search  query     string  false  "Search by name"
// @Success      200  {object}  Response{data=[]models.Vendor}
// @Router       /vendors [get]
// @Security     BearerAuth
func ListVendors(w http.ResponseWriter, r *http.Request) {
	query := vendorSelectQuery
	conditions := []string{"v.user_id = ?"}
	args := []any{userID(r)}

	if search := r.URL.Query().Get("search"); search != "" {
		conditions = append(conditions, "v.name LIKE ?")
		args = append(args, "%"+search+"%")
	}
	query += " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY v.name"

	rows, err := DB.Query(query, args...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var vendors []models.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		vendors = append(vendors, v)
	}
	if vendors == nil {
		vendors = []models.Vendor{}
	}
	writeJSON(w, http.StatusOK, vendors)
}

// GetVendor retrieves a single vendor by ID
// @Summary      Get vendor
// @Description  Get details of a specific vendor.
// @Tags         vendors
// @Produce      json
// @Param        id   path      int  true  "Vendor ID"
// @Success      200  {object}  Response{data=models.Vendor}
// @Failure      404  {object}  Response{error=string}
// @Router       /vendors/{id} [get]
// @Security     BearerAuth
func GetVendor(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	v, err := getVendorByID(id, userID(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "vendor not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// CreateVendor creates a new vendor
// @Summary      Create vendor
// @Description  Create a new vendor record.
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        vendor  body      models.VendorInput  true  "Vendor contents"
// @Success      201     {object}  Response{data=models.Vendor}
// @Failure      400     {object}  Response{error=string}
// @Router       /vendors [post]
// @Security     BearerAuth
func CreateVendor(w http.ResponseWriter, r *http.Request) {
	var input models.VendorInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var id int
	err := DB.QueryRow(`INSERT INTO vendors (user_id, name, email, phone) VALUES (?, ?, ?, ?) RETURNING id`,
		userID(r), input.Name, input.Email, input.Phone).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	v, err := getVendorByID(id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created vendor: "+err.Error())
		return
	}
	notifyChange(r, "vendors")
	writeJSON(w, http.StatusCreated, v)
}

// UpdateVendor updates an existing vendor
// @Summary      Update vendor
// @Description  Update details of an existing vendor.
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        id      path      int                 true  "Vendor ID"
// @Param        vendor  body      models.VendorInput  true  "Updated vendor contents"
// @Success      200     {object}  Response{data=models.Vendor}
// @Failure      400     {object}  Response{error=string}
// @Failure      404     {object}  Response{error=string}
// @Router       /vendors/{id} [put]
// @Security     BearerAuth
func UpdateVendor(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.VendorInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(`UPDATE vendors SET name = ?, email = ?, phone = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?`,
		input.Name, input.Email, input.Phone, id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "vendor not found")
		return
	}

	v, err := getVendorByID(id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated vendor: "+err.Error())
		return
	}
	notifyChange(r, "vendors")
	writeJSON(w, http.StatusOK, v)
}

// DeleteVendor deletes a vendor
// @Summary      Delete vendor
// @Description  Remove a vendor. Purchase orders referencing it keep their rows with vendor unset.
// @Tags         vendors
// @Produce      json
// @Param        id   path      int  true  "Vendor ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /vendors/{id} [delete]
// @Security     BearerAuth
func DeleteVendor(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM vendors WHERE id = ? AND user_id = ?", id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "vendor not found")
		return
	}
	notifyChange(r, "vendors")
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
