package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"rehabus/internal/domain/models"
	"rehabus/internal/http/middleware"
	"rehabus/internal/services"
	"rehabus/internal/utils"

	"github.com/gin-gonic/gin"
)

// ReservationHandler exposes the bus reservation engine over HTTP.
type ReservationHandler struct {
	Svc *services.ReservationService
	Loc *time.Location
}

type quoteRequest struct {
	OriginAddr string `json:"origin_addr"`
	DestAddr   string `json:"dest_addr"`
}

// POST /api/bus/reservations
func (h ReservationHandler) Create(c *gin.Context) {
	var req models.ReservationRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.MemberID == 0 {
		req.MemberID = middleware.MemberID(c)
	}

	res, err := h.Svc.Create(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "reservations", "create",
		"id="+strconv.FormatInt(res.ID, 10))
	c.JSON(http.StatusCreated, reservationJSON(res))
}

// PUT /api/bus/reservations/:id
func (h ReservationHandler) Update(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req models.ReservationRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	res, err := h.Svc.Update(id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservationJSON(res))
}

// PUT /api/bus/reservations/:id/cancel
func (h ReservationHandler) Cancel(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Cancel(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "reservations", "cancel",
		"id="+strconv.FormatInt(id, 10))
	c.JSON(http.StatusOK, gin.H{"status": "Cancelled"})
}

// PUT /api/bus/reservations/:id/complete
func (h ReservationHandler) Complete(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	res, err := h.Svc.Complete(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservationJSON(res))
}

// DELETE /api/bus/reservations/:id, correction use only.
func (h ReservationHandler) Delete(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// GET /api/bus/reservations/:id
func (h ReservationHandler) Get(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	res, err := h.Svc.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservationJSON(res))
}

// GET /api/bus/reservations?member_id=&origin_like=&dest_like=&pickup_minute=&pickup_date=
func (h ReservationHandler) List(c *gin.Context) {
	f := models.ReservationFilters{
		OriginLike: strings.TrimSpace(c.Query("origin_like")),
		DestLike:   strings.TrimSpace(c.Query("dest_like")),
	}
	if raw := strings.TrimSpace(c.Query("member_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid member_id", err)
			return
		}
		f.MemberID = id
	}
	if raw := strings.TrimSpace(c.Query("pickup_minute")); raw != "" {
		t, err := utils.ParseDateTime(raw, h.Loc)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid pickup_minute", err)
			return
		}
		minute := utils.TruncateToMinute(t, h.Loc)
		f.MinuteOf = &minute
	}
	if raw := strings.TrimSpace(c.Query("pickup_date")); raw != "" {
		t, err := utils.ParseDate(raw, h.Loc)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid pickup_date", err)
			return
		}
		day, _ := utils.DayBounds(t, h.Loc)
		f.DayOf = &day
	}

	list, err := h.Svc.Query(f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, v := range list {
		row := reservationJSON(v.Reservation)
		row["member_name"] = v.MemberName
		row["bus_code"] = v.BusCode
		row["bus_plate"] = v.BusPlate
		out = append(out, row)
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/bus/quote, stateless price estimate.
func (h ReservationHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	q, err := h.Svc.Quote(req.OriginAddr, req.DestAddr)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	// A nil quote means the provider could not price the trip; the client
	// shows "estimate unavailable" instead of an error page.
	c.JSON(http.StatusOK, gin.H{"quote": q})
}

// GET /api/bus/reservations/:id/receipt
func (h ReservationHandler) Receipt(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	svc := services.ReceiptService{
		Reservations: h.Svc.Reservations,
		RequestID:    middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.GenerateReceipt(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func reservationJSON(r models.Reservation) gin.H {
	out := gin.H{
		"id":          r.ID,
		"member_id":   r.MemberID,
		"bus_id":      r.BusID,
		"created_at":  utils.FormatDateTime(r.CreatedAt),
		"pickup_at":   utils.FormatDateTime(r.PickupAt),
		"status":      string(r.Status),
		"note":        r.Note,
		"origin_addr": r.OriginAddr,
		"dest_addr":   r.DestAddr,
	}
	if r.OriginZoneID != nil {
		out["origin_zone_id"] = *r.OriginZoneID
	}
	if r.DestZoneID != nil {
		out["dest_zone_id"] = *r.DestZoneID
	}
	if r.CompletedAt != nil {
		out["completed_at"] = utils.FormatDateTime(*r.CompletedAt)
	}
	if r.Fare != nil {
		out["fare"] = *r.Fare
	}
	if r.DistanceM != nil {
		out["distance_m"] = *r.DistanceM
	}
	if r.OriginLat != nil && r.OriginLng != nil {
		out["origin_lat"] = *r.OriginLat
		out["origin_lng"] = *r.OriginLng
	}
	if r.DestLat != nil && r.DestLng != nil {
		out["dest_lat"] = *r.DestLat
		out["dest_lng"] = *r.DestLng
	}
	return out
}
