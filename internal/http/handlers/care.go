package handlers

import (
	"net/http"
	"strings"

	intconfig "rehabus/internal/config"
	"rehabus/internal/domain/models"

	"github.com/gin-gonic/gin"
)

type careAppointmentPayload struct {
	MemberID    int64  `json:"memberId" binding:"required"`
	CaregiverID int64  `json:"caregiverId" binding:"required"`
	Date        string `json:"date" binding:"required"`
	TimeSlot    string `json:"timeSlot"`
	Note        string `json:"note"`
	Status      string `json:"status"`
}

// GET /api/care-appointments?member_id=&date=
func GetCareAppointments(c *gin.Context) {
	query := `
		SELECT id, member_id, caregiver_id,
		       COALESCE(DATE_FORMAT(visit_date, '%Y-%m-%d'),''),
		       COALESCE(time_slot,''), COALESCE(note,''), COALESCE(status,'')
		FROM care_appointments`
	clauses := []string{}
	args := []any{}
	if raw := strings.TrimSpace(c.Query("member_id")); raw != "" {
		clauses = append(clauses, "member_id=?")
		args = append(args, raw)
	}
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		clauses = append(clauses, "visit_date=?")
		args = append(args, raw)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY visit_date DESC, id DESC`

	rows, err := intconfig.DB.Query(query, args...)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list appointments", err)
		return
	}
	defer rows.Close()

	list := []models.CareAppointment{}
	for rows.Next() {
		var a models.CareAppointment
		if err := rows.Scan(&a.ID, &a.MemberID, &a.CaregiverID, &a.Date, &a.TimeSlot, &a.Note, &a.Status); err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to scan appointment", err)
			return
		}
		list = append(list, a)
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/care-appointments
func CreateCareAppointment(c *gin.Context) {
	var p careAppointmentPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	out, err := intconfig.DB.Exec(
		`INSERT INTO care_appointments (member_id, caregiver_id, visit_date, time_slot, note, status)
		 VALUES (?,?,?,?,?,?)`,
		p.MemberID, p.CaregiverID, p.Date, p.TimeSlot, p.Note, defaultStr(p.Status, "scheduled"),
	)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create appointment", err)
		return
	}
	id, _ := out.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/care-appointments/:id
func UpdateCareAppointment(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var p careAppointmentPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	out, err := intconfig.DB.Exec(
		`UPDATE care_appointments SET member_id=?, caregiver_id=?, visit_date=?, time_slot=?, note=?, status=? WHERE id=?`,
		p.MemberID, p.CaregiverID, p.Date, p.TimeSlot, p.Note, p.Status, id,
	)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update appointment", err)
		return
	}
	if n, _ := out.RowsAffected(); n == 0 {
		RespondError(c, http.StatusNotFound, "appointment not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": id})
}

// DELETE /api/care-appointments/:id
func DeleteCareAppointment(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	out, err := intconfig.DB.Exec(`DELETE FROM care_appointments WHERE id=?`, id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete appointment", err)
		return
	}
	if n, _ := out.RowsAffected(); n == 0 {
		RespondError(c, http.StatusNotFound, "appointment not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func defaultStr(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
