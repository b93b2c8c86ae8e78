package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rehabus/internal/services"

	"github.com/gin-gonic/gin"
)

func TestListRejectsMalformedQueryParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := ReservationHandler{
		Svc: &services.ReservationService{},
		Loc: time.FixedZone("CST", 8*3600),
	}
	r := gin.New()
	r.GET("/api/bus/reservations", h.List)

	for _, target := range []string{
		"/api/bus/reservations?member_id=abc",
		"/api/bus/reservations?pickup_minute=soon",
		"/api/bus/reservations?pickup_date=tomorrow",
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, w.Code)
		}
	}
}
