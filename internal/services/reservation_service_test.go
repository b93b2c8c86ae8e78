package services

import (
	"testing"
	"time"

	"rehabus/internal/clock"
	"rehabus/internal/domain"
	"rehabus/internal/domain/models"
	"rehabus/internal/geo"
	"rehabus/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

type fakeResolver struct {
	result geo.Result
	err    error
	calls  int
}

func (f *fakeResolver) ResolveDistance(origin, destination string) (geo.Result, error) {
	f.calls++
	if f.err != nil {
		return geo.Result{}, f.err
	}
	return f.result, nil
}

var testLoc = time.FixedZone("CST", 8*3600)

func newTestService(t *testing.T, resolver *fakeResolver) (*ReservationService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := &ReservationService{
		Reservations: repositories.ReservationRepository{DB: db},
		Buses:        repositories.BusRepository{DB: db},
		Distance:     resolver,
		Clock:        clock.Fixed{T: time.Date(2026, 3, 1, 9, 30, 47, 0, testLoc)},
		Loc:          testLoc,
		SlotMinutes:  120,
	}
	return svc, mock
}

func busRows(status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "code", "plate_number", "seats", "wheelchair_seats", "status"}).
		AddRow(3, "RB-03", "ABC-1234", 8, 2, status)
}

func reservationRow(id int64, status string, pickup time.Time, fareVal, distVal int64) *sqlmock.Rows {
	cols := []string{
		"id", "member_id", "bus_id", "origin_zone_id", "dest_zone_id",
		"created_at", "pickup_at", "completed_at", "fare", "status",
		"note", "origin_addr", "dest_addr",
		"origin_lat", "origin_lng", "dest_lat", "dest_lng", "distance_m",
	}
	return sqlmock.NewRows(cols).AddRow(
		id, 7, 3, nil, nil,
		time.Date(2026, 2, 28, 12, 0, 0, 0, testLoc), pickup, nil, fareVal, status,
		"old note", "origin st", "dest rd",
		nil, nil, nil, nil, distVal,
	)
}

func TestCreateBlankDestinationFailsBeforeDistanceCall(t *testing.T) {
	resolver := &fakeResolver{result: geo.Result{Meters: 1000}}
	svc, _ := newTestService(t, resolver)

	_, err := svc.Create(models.ReservationRequest{
		MemberID:   7,
		BusID:      3,
		PickupAt:   "2026-03-02 10:15",
		OriginAddr: "origin st",
		DestAddr:   "   ",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
	if resolver.calls != 0 {
		t.Errorf("distance provider invoked %d times on blank destination", resolver.calls)
	}
}

func TestCreateMaintenanceBusConflictsBeforeDistance(t *testing.T) {
	for _, status := range []string{"maintenance", "MAINTENANCE", "Maintenance", "維修"} {
		resolver := &fakeResolver{result: geo.Result{Meters: 1000}}
		svc, mock := newTestService(t, resolver)

		mock.ExpectQuery("SELECT id, code, plate_number").WithArgs(int64(3)).
			WillReturnRows(busRows(status))

		_, err := svc.Create(models.ReservationRequest{
			MemberID:   7,
			BusID:      3,
			PickupAt:   "2026-03-02 10:15",
			OriginAddr: "origin st",
			DestAddr:   "dest rd",
		})
		if !domain.IsConflict(err) {
			t.Fatalf("status %q: want conflict, got %v", status, err)
		}
		if got := domain.ConflictReasonOf(err); got != domain.ConflictVehicleMaintenance {
			t.Errorf("status %q: conflict reason = %q", status, got)
		}
		if resolver.calls != 0 {
			t.Errorf("status %q: distance provider invoked for unavailable bus", status)
		}
	}
}

func TestCreatePersistsMinuteTruncatedPickupAndFare(t *testing.T) {
	resolver := &fakeResolver{result: geo.Result{Meters: 4321}}
	svc, mock := newTestService(t, resolver)

	wantPickup := time.Date(2026, 3, 2, 10, 15, 0, 0, testLoc)
	wantCreated := time.Date(2026, 3, 1, 9, 30, 0, 0, testLoc)

	mock.ExpectQuery("SELECT id, code, plate_number").WithArgs(int64(3)).
		WillReturnRows(busRows("active"))
	mock.ExpectQuery("SELECT pickup_at FROM bus_reservations").
		WillReturnRows(sqlmock.NewRows([]string{"pickup_at"}))
	mock.ExpectExec("INSERT INTO bus_reservations").
		WithArgs(
			int64(7), int64(3), nil, nil,
			wantCreated, wantPickup, wantPickup,
			// 4321 m: 13 extra blocks -> taxi 160 -> reduced 54.
			int64(54), "Active", "wheelchair ramp needed",
			"origin st", "dest rd",
			nil, nil, nil, nil, int64(4321),
		).
		WillReturnResult(sqlmock.NewResult(101, 1))

	res, err := svc.Create(models.ReservationRequest{
		MemberID:   7,
		BusID:      3,
		PickupAt:   "2026-03-02 10:15:47",
		OriginAddr: "origin st",
		DestAddr:   "dest rd",
		Note:       "wheelchair ramp needed",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ID != 101 {
		t.Errorf("id = %d, want 101", res.ID)
	}
	if !res.PickupAt.Equal(wantPickup) {
		t.Errorf("pickup = %v, want %v", res.PickupAt, wantPickup)
	}
	if res.Fare == nil || *res.Fare != 54 {
		t.Errorf("fare = %v, want 54", res.Fare)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateSlotConflict(t *testing.T) {
	resolver := &fakeResolver{result: geo.Result{Meters: 1000}}
	svc, mock := newTestService(t, resolver)

	mock.ExpectQuery("SELECT id, code, plate_number").WithArgs(int64(3)).
		WillReturnRows(busRows("active"))
	mock.ExpectQuery("SELECT pickup_at FROM bus_reservations").
		WillReturnRows(sqlmock.NewRows([]string{"pickup_at"}).
			AddRow(time.Date(2026, 3, 2, 9, 0, 0, 0, testLoc)))

	_, err := svc.Create(models.ReservationRequest{
		MemberID:   7,
		BusID:      3,
		PickupAt:   "2026-03-02 10:00",
		OriginAddr: "origin st",
		DestAddr:   "dest rd",
	})
	if !domain.IsConflict(err) {
		t.Fatalf("want conflict, got %v", err)
	}
	if got := domain.ConflictReasonOf(err); got != domain.ConflictSlotTaken {
		t.Errorf("conflict reason = %q, want slot_taken", got)
	}
}

func TestCreateReusesSlotFreedByCancellation(t *testing.T) {
	resolver := &fakeResolver{result: geo.Result{Meters: 1500}}
	svc, mock := newTestService(t, resolver)

	pickup := time.Date(2026, 3, 2, 10, 0, 0, 0, testLoc)
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, testLoc)

	// The cancelled booking on the same bus and minute is invisible to the
	// window query and holds no slot index entry, so the insert goes through.
	mock.ExpectQuery("SELECT id, code, plate_number").WithArgs(int64(3)).
		WillReturnRows(busRows("active"))
	mock.ExpectQuery("SELECT pickup_at FROM bus_reservations").
		WillReturnRows(sqlmock.NewRows([]string{"pickup_at"}))
	mock.ExpectExec("INSERT INTO bus_reservations").
		WithArgs(
			int64(7), int64(3), nil, nil,
			created, pickup, pickup,
			int64(34), "Active", "",
			"origin st", "dest rd",
			nil, nil, nil, nil, int64(1500),
		).
		WillReturnResult(sqlmock.NewResult(102, 1))

	res, err := svc.Create(models.ReservationRequest{
		MemberID:   7,
		BusID:      3,
		PickupAt:   "2026-03-02 10:00",
		OriginAddr: "origin st",
		DestAddr:   "dest rd",
	})
	if err != nil {
		t.Fatalf("re-booking a cancelled slot failed: %v", err)
	}
	if res.ID != 102 {
		t.Errorf("id = %d, want 102", res.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateUpstreamFailureAbortsBooking(t *testing.T) {
	resolver := &fakeResolver{err: domain.UpstreamError{Provider: "distance matrix"}}
	svc, mock := newTestService(t, resolver)

	mock.ExpectQuery("SELECT id, code, plate_number").WithArgs(int64(3)).
		WillReturnRows(busRows("active"))

	_, err := svc.Create(models.ReservationRequest{
		MemberID:   7,
		BusID:      3,
		PickupAt:   "2026-03-02 10:00",
		OriginAddr: "origin st",
		DestAddr:   "dest rd",
	})
	if !domain.IsUpstream(err) {
		t.Fatalf("want upstream error, got %v", err)
	}
}

func TestUpdateNoteOnlyKeepsFareAndSkipsProvider(t *testing.T) {
	resolver := &fakeResolver{result: geo.Result{Meters: 9999}}
	svc, mock := newTestService(t, resolver)

	pickup := time.Date(2026, 3, 2, 10, 0, 0, 0, testLoc)
	mock.ExpectQuery("SELECT id, member_id, bus_id").WithArgs(int64(55)).
		WillReturnRows(reservationRow(55, "Active", pickup, 54, 4321))
	mock.ExpectExec("UPDATE bus_reservations").
		WithArgs(
			nil, nil, pickup, pickup, int64(54), "bring oxygen tank",
			"origin st", "dest rd",
			nil, nil, nil, nil, int64(4321),
			int64(55),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := svc.Update(55, models.ReservationRequest{Note: "bring oxygen tank"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolver.calls != 0 {
		t.Errorf("distance provider invoked %d times for a note-only edit", resolver.calls)
	}
	if res.Fare == nil || *res.Fare != 54 {
		t.Errorf("fare changed on note-only edit: %v", res.Fare)
	}
	if res.DistanceM == nil || *res.DistanceM != 4321 {
		t.Errorf("distance changed on note-only edit: %v", res.DistanceM)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateAddressChangeRecomputesFare(t *testing.T) {
	resolver := &fakeResolver{result: geo.Result{Meters: 1500}}
	svc, mock := newTestService(t, resolver)

	pickup := time.Date(2026, 3, 2, 10, 0, 0, 0, testLoc)
	mock.ExpectQuery("SELECT id, member_id, bus_id").WithArgs(int64(55)).
		WillReturnRows(reservationRow(55, "Active", pickup, 54, 4321))
	mock.ExpectExec("UPDATE bus_reservations").
		WithArgs(
			nil, nil, pickup, pickup, int64(34), "old note",
			"origin st", "new dest ave",
			nil, nil, nil, nil, int64(1500),
			int64(55),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := svc.Update(55, models.ReservationRequest{DestAddr: "new dest ave"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolver.calls != 1 {
		t.Errorf("distance provider calls = %d, want 1", resolver.calls)
	}
	// 1500 m -> taxi 100 -> reduced 34.
	if res.Fare == nil || *res.Fare != 34 {
		t.Errorf("fare = %v, want 34", res.Fare)
	}
}

func TestUpdateFailedResolutionAbortsWholeUpdate(t *testing.T) {
	resolver := &fakeResolver{err: domain.UpstreamError{Provider: "geocode"}}
	svc, mock := newTestService(t, resolver)

	pickup := time.Date(2026, 3, 2, 10, 0, 0, 0, testLoc)
	mock.ExpectQuery("SELECT id, member_id, bus_id").WithArgs(int64(55)).
		WillReturnRows(reservationRow(55, "Active", pickup, 54, 4321))

	_, err := svc.Update(55, models.ReservationRequest{DestAddr: "new dest ave"})
	if !domain.IsUpstream(err) {
		t.Fatalf("want upstream error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("update must not persist after failed resolution: %v", err)
	}
}

func TestCancelNonActiveRejected(t *testing.T) {
	svc, mock := newTestService(t, &fakeResolver{})

	pickup := time.Date(2026, 3, 2, 10, 0, 0, 0, testLoc)
	mock.ExpectQuery("SELECT id, member_id, bus_id").WithArgs(int64(55)).
		WillReturnRows(reservationRow(55, "Cancelled", pickup, 54, 4321))

	err := svc.Cancel(55)
	if !domain.IsConflict(err) {
		t.Fatalf("want conflict, got %v", err)
	}
}

func TestCompleteStampsTimestamp(t *testing.T) {
	svc, mock := newTestService(t, &fakeResolver{})

	pickup := time.Date(2026, 3, 1, 8, 0, 0, 0, testLoc)
	mock.ExpectQuery("SELECT id, member_id, bus_id").WithArgs(int64(55)).
		WillReturnRows(reservationRow(55, "Active", pickup, 54, 4321))
	mock.ExpectExec("UPDATE bus_reservations SET status='Completed'").
		WithArgs(time.Date(2026, 3, 1, 9, 30, 0, 0, testLoc), int64(55)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := svc.Complete(55)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CompletedAt == nil || !res.CompletedAt.Equal(time.Date(2026, 3, 1, 9, 30, 0, 0, testLoc)) {
		t.Errorf("completedAt = %v", res.CompletedAt)
	}
	if res.Status != domain.ReservationCompleted {
		t.Errorf("status = %q", res.Status)
	}
}

func TestCompleteAlreadyCompletedRejected(t *testing.T) {
	svc, mock := newTestService(t, &fakeResolver{})

	pickup := time.Date(2026, 3, 1, 8, 0, 0, 0, testLoc)
	mock.ExpectQuery("SELECT id, member_id, bus_id").WithArgs(int64(55)).
		WillReturnRows(reservationRow(55, "Completed", pickup, 54, 4321))

	_, err := svc.Complete(55)
	if !domain.IsConflict(err) {
		t.Fatalf("want conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("complete must not re-stamp a finished reservation: %v", err)
	}
}

func TestQuoteComputesExactFares(t *testing.T) {
	resolver := &fakeResolver{result: geo.Result{Meters: 1500}}
	svc, _ := newTestService(t, resolver)

	q, err := svc.Quote("origin st", "dest rd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q == nil {
		t.Fatal("quote is nil")
	}
	if q.TaxiFare != 100 || q.ReducedFare != 34 {
		t.Errorf("fares = %d/%d, want 100/34", q.TaxiFare, q.ReducedFare)
	}
	if q.DistanceKm != 1.5 {
		t.Errorf("km = %v, want 1.5", q.DistanceKm)
	}
}

func TestQuoteUpstreamFailureReturnsEmpty(t *testing.T) {
	resolver := &fakeResolver{err: domain.UpstreamError{Provider: "distance matrix"}}
	svc, _ := newTestService(t, resolver)

	q, err := svc.Quote("origin st", "dest rd")
	if err != nil {
		t.Fatalf("quote must not raise on upstream failure, got %v", err)
	}
	if q != nil {
		t.Errorf("quote = %+v, want nil", q)
	}
}
