package services

import (
	"bytes"
	"fmt"
	"strings"

	"rehabus/internal/domain/models"
	"rehabus/internal/repositories"
	"rehabus/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReceiptService renders a fare receipt PDF for a reservation.
type ReceiptService struct {
	Reservations repositories.ReservationRepository
	RequestID    string
	Loader       func(int64) (models.ReservationView, error)
}

func (s ReceiptService) GenerateReceipt(reservationID int64) ([]byte, string, error) {
	view, err := s.loadView(reservationID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "receipts", "generate_receipt", fmt.Sprintf("reservation_id=%d", reservationID))
	return buildReceiptPDF(view)
}

func (s ReceiptService) loadView(id int64) (models.ReservationView, error) {
	if s.Loader != nil {
		return s.Loader(id)
	}
	res, err := s.Reservations.GetByID(id)
	if err != nil {
		return models.ReservationView{}, err
	}
	return models.ReservationView{Reservation: res}, nil
}

func buildReceiptPDF(v models.ReservationView) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Fare Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "REHABILITATION BUS FARE RECEIPT")
	pdf.Ln(12)

	fare := "-"
	if v.Fare != nil {
		fare = utils.FormatNTD(*v.Fare)
	}
	distance := "-"
	if v.DistanceM != nil {
		distance = fmt.Sprintf("%d m", *v.DistanceM)
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Receipt No  : RCPT-%d", v.ID),
		fmt.Sprintf("Member      : %s", safe(v.MemberName, "-")),
		fmt.Sprintf("Bus         : %s (%s)", safe(v.BusCode, "-"), safe(v.BusPlate, "-")),
		fmt.Sprintf("Pickup      : %s", utils.FormatDateTime(v.PickupAt)),
		fmt.Sprintf("From        : %s", safe(v.OriginAddr, "-")),
		fmt.Sprintf("To          : %s", safe(v.DestAddr, "-")),
		fmt.Sprintf("Distance    : %s", distance),
		fmt.Sprintf("Fare        : %s", fare),
		fmt.Sprintf("Status      : %s", string(v.Status)),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "The fare shown is the reduced-mobility rate derived from the regional taxi tariff.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%d.pdf", v.ID)
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
