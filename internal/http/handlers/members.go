package handlers

import (
	"net/http"
	"strings"

	intconfig "rehabus/internal/config"
	"rehabus/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/members?q=
func GetMembers(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))

	query := `
		SELECT id, name, COALESCE(email,''), COALESCE(phone,''),
		       COALESCE(address,''), COALESCE(status,'')
		FROM members`
	args := []any{}
	if q != "" {
		query += ` WHERE (name LIKE ? OR email LIKE ? OR phone LIKE ?)`
		like := "%" + q + "%"
		args = append(args, like, like, like)
	}
	query += ` ORDER BY id DESC`

	rows, err := intconfig.DB.Query(query, args...)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list members", err)
		return
	}
	defer rows.Close()

	list := []models.Member{}
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Address, &m.Status); err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to scan member", err)
			return
		}
		list = append(list, m)
	}
	c.JSON(http.StatusOK, list)
}

type memberPayload struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Status  string `json:"status"`
}

// PUT /api/members/:id
func UpdateMember(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var p memberPayload
	if !BindJSONOrError(c, &p) {
		return
	}

	out, err := intconfig.DB.Exec(
		`UPDATE members SET name=?, email=?, phone=?, address=?, status=? WHERE id=?`,
		p.Name, p.Email, p.Phone, p.Address, p.Status, id,
	)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update member", err)
		return
	}
	if n, _ := out.RowsAffected(); n == 0 {
		RespondError(c, http.StatusNotFound, "member not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": id})
}

// DELETE /api/members/:id
func DeleteMember(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	out, err := intconfig.DB.Exec(`DELETE FROM members WHERE id=?`, id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete member", err)
		return
	}
	if n, _ := out.RowsAffected(); n == 0 {
		RespondError(c, http.StatusNotFound, "member not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
