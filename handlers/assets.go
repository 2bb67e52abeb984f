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

const assetSelectQuery = `SELECT id, user_id, name, category, current_value, is_liquid, growth_rate, created_at, updated_at
	FROM assets`

func scanAsset(scanner interface{ Scan(...any) error }) (models.Asset, error) {
	var a models.Asset
	err := scanner.Scan(&a.ID, &a.UserID, &a.Name, &a.Category, &a.CurrentValue, &a.IsLiquid, &a.GrowthRate, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func getAssetByID(id int, user string) (models.Asset, error) {
	return scanAsset(DB.QueryRow(assetSelectQuery+" WHERE id = ? AND user_id = ?", id, user))
}

// ListAssets lists all assets
// @Summary      List assets
// @Description  Get all of the user's assets.
// @Tags         assets
// @Produce      json
// @Param        category  query     string  false  "Filter by category"
// @Param        liquid    query     bool    false  "Only liquid assets"
// @Param        search    query     string  false  "Search by name"
// @Success      200  {object}  Response{data=[]models.Asset}
// @Router       /assets [get]
// @Security     BearerAuth
func ListAssets(w http.ResponseWriter, r *http.Request) {
	query := assetSelectQuery
	conditions := []string{"user_id = ?"}
	args := []any{userID(r)}

	if c := r.URL.Query().Get("category"); c != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, c)
	}
	if r.URL.Query().Get("liquid") == "true" {
		conditions = append(conditions, "is_liquid = 1")
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

	var assets []models.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		assets = append(assets, a)
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	writeJSON(w, http.StatusOK, assets)
}

// GetAsset retrieves a single asset by ID
// @Summary      Get asset
// @Description  Get details of a specific asset.
// @Tags         assets
// @Produce      json
// @Param        id   path      int  true  "Asset ID"
// @Success      200  {object}  Response{data=models.Asset}
// @Failure      404  {object}  Response{error=string}
// @Router       /assets/{id} [get]
// @Security     BearerAuth
func GetAsset(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	a, err := getAssetByID(id, userID(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "asset not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// CreateAsset creates a new asset
// @Summary      Create asset
// @Description  Create a new asset record.
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        asset  body      models.AssetInput  true  "Asset contents"
// @Success      201    {object}  Response{data=models.Asset}
// @Failure      400    {object}  Response{error=string}
// @Router       /assets [post]
// @Security     BearerAuth
func CreateAsset(w http.ResponseWriter, r *http.Request) {
	var input models.AssetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var id int
	err := DB.QueryRow(`INSERT INTO assets (user_id, name, category, current_value, is_liquid, growth_rate)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		userID(r), input.Name, input.Category, input.CurrentValue, input.IsLiquid, input.GrowthRate).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	a, err := getAssetByID(id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created asset: "+err.Error())
		return
	}
	notifyChange(r, "assets")
	writeJSON(w, http.StatusCreated, a)
}

// UpdateAsset updates an existing asset
// @Summary      Update asset
// @Description  Update details of an existing asset.
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id     path      int                true  "Asset ID"
// @Param        asset  body      models.AssetInput  true  "Updated asset contents"
// @Success      200    {object}  Response{data=models.Asset}
// @Failure      400    {object}  Response{error=string}
// @Failure      404    {object}  Response{error=string}
// @Router       /assets/{id} [put]
// @Security     BearerAuth
func UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.AssetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(`UPDATE assets SET name = ?, category = ?, current_value = ?, is_liquid = ?,
		growth_rate = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?`,
		input.Name, input.Category, input.CurrentValue, input.IsLiquid, input.GrowthRate, id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "asset not found")
		return
	}

	a, err := getAssetByID(id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated asset: "+err.Error())
		return
	}
	notifyChange(r, "assets")
	writeJSON(w, http.StatusOK, a)
}

// DeleteAsset deletes an asset
// @Summary      Delete asset
// @Description  Remove an asset.
// @Tags         assets
// @Produce      json
// @Param        id   path      int  true  "Asset ID"
// @Success      200  {object}  Response{data=map[string]string}
// @Failure      404  {object}  Response{error=string}
// @Router       /assets/{id} [delete]
// @Security     BearerAuth
func DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM assets WHERE id = ? AND user_id = ?", id, userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "asset not found")
		return
	}
	notifyChange(r, "assets")
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
