package services

import (
	"testing"
	"time"

	"rehabus/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSlotsOverlap(t *testing.T) {
	slot := 120 * time.Minute
	at := func(h int) time.Time {
		return time.Date(2026, 3, 2, h, 0, 0, 0, testLoc)
	}

	// [10:00,12:00) vs [11:00,13:00) overlap.
	if !SlotsOverlap(at(10), at(11), slot) {
		t.Error("10:00 and 11:00 should conflict with a 120-minute slot")
	}
	// [10:00,12:00) vs [12:00,14:00) are adjacent, not overlapping.
	if SlotsOverlap(at(10), at(12), slot) {
		t.Error("10:00 and 12:00 are adjacent and must not conflict")
	}
	if !SlotsOverlap(at(11), at(10), slot) {
		t.Error("overlap must be symmetric")
	}
	if !SlotsOverlap(at(10), at(10), slot) {
		t.Error("identical starts must conflict")
	}
}

func TestScheduleGuardIgnoresCancelledAndOtherBuses(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	guard := ScheduleGuard{
		Reservations: repositories.ReservationRepository{DB: db},
		Slot:         120 * time.Minute,
	}

	start := time.Date(2026, 3, 2, 11, 0, 0, 0, testLoc)
	// The query already narrows to same bus + non-cancelled; the guard only
	// sees candidate pickups.
	mock.ExpectQuery("SELECT pickup_at FROM bus_reservations").
		WithArgs(int64(3), start.Add(-120*time.Minute), start.Add(120*time.Minute), int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"pickup_at"}).
			AddRow(time.Date(2026, 3, 2, 10, 0, 0, 0, testLoc)))

	conflict, err := guard.HasConflict(3, start, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !conflict {
		t.Error("existing 10:00 booking should block an 11:00 pickup")
	}

	mock.ExpectQuery("SELECT pickup_at FROM bus_reservations").
		WillReturnRows(sqlmock.NewRows([]string{"pickup_at"}))

	conflict, err = guard.HasConflict(3, time.Date(2026, 3, 2, 12, 0, 0, 0, testLoc), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conflict {
		t.Error("empty window must not conflict")
	}
}
