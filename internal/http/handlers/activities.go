package handlers

import (
	"net/http"
	"strings"

	intconfig "rehabus/internal/config"
	"rehabus/internal/domain/models"
	"rehabus/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type activityPayload struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartsAt    string `json:"startsAt"`
	Capacity    int    `json:"capacity"`
}

// GET /api/activities?q=
func GetActivities(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))

	query := `
		SELECT id, title, COALESCE(description,''), COALESCE(location,''),
		       COALESCE(DATE_FORMAT(starts_at, '%Y-%m-%d %H:%i'),''), COALESCE(capacity,0)
		FROM activities`
	args := []any{}
	if q != "" {
		query += ` WHERE title LIKE ?`
		args = append(args, "%"+q+"%")
	}
	query += ` ORDER BY starts_at DESC`

	rows, err := intconfig.DB.Query(query, args...)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list activities", err)
		return
	}
	defer rows.Close()

	list := []models.Activity{}
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Location, &a.StartsAt, &a.Capacity); err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to scan activity", err)
			return
		}
		list = append(list, a)
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/activities
func CreateActivity(c *gin.Context) {
	var p activityPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	out, err := intconfig.DB.Exec(
		`INSERT INTO activities (title, description, location, starts_at, capacity) VALUES (?,?,?,?,?)`,
		p.Title, p.Description, p.Location, nullIfEmpty(p.StartsAt), p.Capacity,
	)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create activity", err)
		return
	}
	id, _ := out.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/activities/:id
func UpdateActivity(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var p activityPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	out, err := intconfig.DB.Exec(
		`UPDATE activities SET title=?, description=?, location=?, starts_at=?, capacity=? WHERE id=?`,
		p.Title, p.Description, p.Location, nullIfEmpty(p.StartsAt), p.Capacity, id,
	)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update activity", err)
		return
	}
	if n, _ := out.RowsAffected(); n == 0 {
		RespondError(c, http.StatusNotFound, "activity not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": id})
}

// DELETE /api/activities/:id
func DeleteActivity(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	out, err := intconfig.DB.Exec(`DELETE FROM activities WHERE id=?`, id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete activity", err)
		return
	}
	if n, _ := out.RowsAffected(); n == 0 {
		RespondError(c, http.StatusNotFound, "activity not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// POST /api/activities/:id/signup
func SignUpActivity(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	memberID := middleware.MemberID(c)
	if memberID == 0 {
		RespondError(c, http.StatusUnauthorized, "login required", nil)
		return
	}

	_, err := intconfig.DB.Exec(
		`INSERT INTO activity_signups (activity_id, member_id)
		 VALUES (?,?) ON DUPLICATE KEY UPDATE member_id=member_id`,
		id, memberID,
	)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to sign up", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity_id": id, "member_id": memberID})
}

// nullIfEmpty stores optional strings as NULL instead of ''.
func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
