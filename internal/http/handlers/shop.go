package handlers

import (
	"net/http"
	"strings"

	intconfig "rehabus/internal/config"
	"rehabus/internal/domain/models"

	"github.com/gin-gonic/gin"
)

type shopItemPayload struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
}

// GET /api/shop/items?q=
func GetShopItems(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))

	query := `
		SELECT id, name, COALESCE(description,''), COALESCE(price,0), COALESCE(stock,0)
		FROM shop_items`
	args := []any{}
	if q != "" {
		query += ` WHERE name LIKE ?`
		args = append(args, "%"+q+"%")
	}
	query += ` ORDER BY id`

	rows, err := intconfig.DB.Query(query, args...)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list items", err)
		return
	}
	defer rows.Close()

	list := []models.ShopItem{}
	for rows.Next() {
		var it models.ShopItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Stock); err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to scan item", err)
			return
		}
		list = append(list, it)
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/shop/items
func CreateShopItem(c *gin.Context) {
	var p shopItemPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	out, err := intconfig.DB.Exec(
		`INSERT INTO shop_items (name, description, price, stock) VALUES (?,?,?,?)`,
		p.Name, p.Description, p.Price, p.Stock,
	)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create item", err)
		return
	}
	id, _ := out.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/shop/items/:id
func UpdateShopItem(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var p shopItemPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	out, err := intconfig.DB.Exec(
		`UPDATE shop_items SET name=?, description=?, price=?, stock=? WHERE id=?`,
		p.Name, p.Description, p.Price, p.Stock, id,
	)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update item", err)
		return
	}
	if n, _ := out.RowsAffected(); n == 0 {
		RespondError(c, http.StatusNotFound, "item not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": id})
}

// DELETE /api/shop/items/:id
func DeleteShopItem(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	out, err := intconfig.DB.Exec(`DELETE FROM shop_items WHERE id=?`, id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete item", err)
		return
	}
	if n, _ := out.RowsAffected(); n == 0 {
		RespondError(c, http.StatusNotFound, "item not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// GET /api/zones returns the read-only administrative zones for the reservation form.
func GetZones(c *gin.Context) {
	rows, err := intconfig.DB.Query(`SELECT id, name FROM zones ORDER BY id`)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list zones", err)
		return
	}
	defer rows.Close()

	list := []models.Zone{}
	for rows.Next() {
		var z models.Zone
		if err := rows.Scan(&z.ID, &z.Name); err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to scan zone", err)
			return
		}
		list = append(list, z)
	}
	c.JSON(http.StatusOK, list)
}
