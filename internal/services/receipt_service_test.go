package services

import (
	"testing"
	"time"

	"rehabus/internal/domain"
	"rehabus/internal/domain/models"
)

func TestReceiptServiceGenerate(t *testing.T) {
	fareVal := int64(54)
	distVal := int64(4321)
	loader := func(id int64) (models.ReservationView, error) {
		return models.ReservationView{
			Reservation: models.Reservation{
				ID:         id,
				MemberID:   7,
				BusID:      3,
				PickupAt:   time.Date(2026, 3, 2, 10, 15, 0, 0, testLoc),
				Fare:       &fareVal,
				Status:     domain.ReservationActive,
				OriginAddr: "origin st",
				DestAddr:   "dest rd",
				DistanceM:  &distVal,
			},
			MemberName: "Tester",
			BusCode:    "RB-03",
			BusPlate:   "ABC-1234",
		}, nil
	}

	svc := ReceiptService{Loader: loader}

	pdf, filename, err := svc.GenerateReceipt(42)
	if err != nil {
		t.Fatalf("GenerateReceipt returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("GenerateReceipt returned empty data")
	}
	if filename != "RECEIPT_42.pdf" {
		t.Errorf("filename = %q", filename)
	}
}
