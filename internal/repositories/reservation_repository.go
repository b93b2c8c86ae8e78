package repositories

import (
	"database/sql"
	"errors"
	"time"

	intconfig "rehabus/internal/config"
	"rehabus/internal/domain"
	"rehabus/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

type ReservationRepository struct {
	DB *sql.DB
}

func (r ReservationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const reservationColumns = `id, member_id, bus_id, origin_zone_id, dest_zone_id,
       created_at, pickup_at, completed_at, fare, status,
       COALESCE(note,''), COALESCE(origin_addr,''), COALESCE(dest_addr,''),
       origin_lat, origin_lng, dest_lat, dest_lng, distance_m`

// Insert stores a new reservation and returns its id. active_pickup mirrors
// pickup_at so the row occupies its slot in the (bus_id, active_pickup)
// unique index; a duplicate-key error there is reported as a slot conflict so
// racing creates that both passed the advisory check still resolve safely.
func (r ReservationRepository) Insert(res models.Reservation) (int64, error) {
	query := `
		INSERT INTO bus_reservations
			(member_id, bus_id, origin_zone_id, dest_zone_id,
			 created_at, pickup_at, active_pickup, fare, status, note,
			 origin_addr, dest_addr, origin_lat, origin_lng, dest_lat, dest_lng, distance_m)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`

	out, err := r.db().Exec(query,
		res.MemberID,
		res.BusID,
		res.OriginZoneID,
		res.DestZoneID,
		res.CreatedAt,
		res.PickupAt,
		res.PickupAt,
		res.Fare,
		string(res.Status),
		res.Note,
		res.OriginAddr,
		res.DestAddr,
		res.OriginLat,
		res.OriginLng,
		res.DestLat,
		res.DestLng,
		res.DistanceM,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return 0, domain.ConflictError{Resource: "reservation", Reason: domain.ConflictSlotTaken, Msg: "time slot already booked", Err: err}
		}
		return 0, domain.InternalError{Err: err}
	}
	id, err := out.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}

func (r ReservationRepository) GetByID(id int64) (models.Reservation, error) {
	if id <= 0 {
		return models.Reservation{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}

	query := `SELECT ` + reservationColumns + ` FROM bus_reservations WHERE id=? LIMIT 1`
	res, err := scanReservation(r.db().QueryRow(query, id))
	if err == sql.ErrNoRows {
		return models.Reservation{}, domain.NotFoundError{Resource: "reservation"}
	}
	if err != nil {
		return models.Reservation{}, domain.InternalError{Err: err}
	}
	return res, nil
}

// Update rewrites the mutable reservation fields, including an optionally
// recomputed distance/fare pair. Only active reservations are updated, so
// active_pickup always tracks the new pickup time; a duplicate-key error on
// the slot index means a racing booking took the target minute first.
func (r ReservationRepository) Update(res models.Reservation) error {
	query := `
		UPDATE bus_reservations
		SET origin_zone_id=?, dest_zone_id=?, pickup_at=?, active_pickup=?, fare=?, note=?,
		    origin_addr=?, dest_addr=?,
		    origin_lat=?, origin_lng=?, dest_lat=?, dest_lng=?, distance_m=?
		WHERE id=?`

	out, err := r.db().Exec(query,
		res.OriginZoneID,
		res.DestZoneID,
		res.PickupAt,
		res.PickupAt,
		res.Fare,
		res.Note,
		res.OriginAddr,
		res.DestAddr,
		res.OriginLat,
		res.OriginLng,
		res.DestLat,
		res.DestLng,
		res.DistanceM,
		res.ID,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return domain.ConflictError{Resource: "reservation", Reason: domain.ConflictSlotTaken, Msg: "time slot already booked", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	if n, err := out.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "reservation"}
	}
	return nil
}

// ListActivePickups returns pickup times of non-cancelled reservations on
// the bus that could overlap a slot starting at start. excludeID skips the
// row being edited; pass 0 on create.
func (r ReservationRepository) ListActivePickups(busID int64, start time.Time, slot time.Duration, excludeID int64) ([]time.Time, error) {
	query := `
		SELECT pickup_at FROM bus_reservations
		WHERE bus_id=? AND status <> 'Cancelled'
		  AND pickup_at > ? AND pickup_at < ?
		  AND id <> ?`

	rows, err := r.db().Query(query, busID, start.Add(-slot), start.Add(slot), excludeID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	pickups := []time.Time{}
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		pickups = append(pickups, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return pickups, nil
}

// SetStatus performs a guarded status transition. Returns NotFound when the
// row is absent or no longer in the expected state. Cancelling clears
// active_pickup so the slot index entry is released for re-booking.
func (r ReservationRepository) SetStatus(id int64, from, to domain.ReservationStatus) error {
	query := `UPDATE bus_reservations SET status=? WHERE id=? AND status=?`
	if to == domain.ReservationCancelled {
		query = `UPDATE bus_reservations SET status=?, active_pickup=NULL WHERE id=? AND status=?`
	}
	out, err := r.db().Exec(query, string(to), id, string(from))
	if err != nil {
		return domain.InternalError{Err: err}
	}
	n, err := out.RowsAffected()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "reservation"}
	}
	return nil
}

// MarkCompleted stamps the completion time. Guarded on Active so completing
// an already-terminal reservation affects zero rows.
func (r ReservationRepository) MarkCompleted(id int64, completedAt time.Time) (int64, error) {
	out, err := r.db().Exec(
		`UPDATE bus_reservations SET status='Completed', completed_at=? WHERE id=? AND status='Active'`,
		completedAt, id,
	)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	n, err := out.RowsAffected()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return n, nil
}

// Delete removes a reservation row. Correction use only; normal lifecycle
// goes through cancel/complete.
func (r ReservationRepository) Delete(id int64) error {
	out, err := r.db().Exec(`DELETE FROM bus_reservations WHERE id=?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, err := out.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "reservation"}
	}
	return nil
}

// List returns reservations matching the filters, newest pickup first.
func (r ReservationRepository) List(f models.ReservationFilters) ([]models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM bus_reservations`
	where, args := reservationWhere(f, "")
	query += where + ` ORDER BY pickup_at DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	list := []models.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		list = append(list, res)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

// ListView returns the joined reservation+bus+member read model.
func (r ReservationRepository) ListView(f models.ReservationFilters) ([]models.ReservationView, error) {
	query := `
		SELECT r.id, r.member_id, r.bus_id, r.origin_zone_id, r.dest_zone_id,
		       r.created_at, r.pickup_at, r.completed_at, r.fare, r.status,
		       COALESCE(r.note,''), COALESCE(r.origin_addr,''), COALESCE(r.dest_addr,''),
		       r.origin_lat, r.origin_lng, r.dest_lat, r.dest_lng, r.distance_m,
		       COALESCE(m.name,''), COALESCE(b.code,''), COALESCE(b.plate_number,'')
		FROM bus_reservations r
		LEFT JOIN members m ON m.id = r.member_id
		LEFT JOIN buses b ON b.id = r.bus_id`
	where, args := reservationWhere(f, "r.")
	query += where + ` ORDER BY r.pickup_at DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	list := []models.ReservationView{}
	for rows.Next() {
		var v models.ReservationView
		var raw scannedReservation
		if err := rows.Scan(raw.targets(&v.Reservation, &v.MemberName, &v.BusCode, &v.BusPlate)...); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		raw.apply(&v.Reservation)
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

// reservationWhere builds the filter clause. The minute-precision window and
// the whole-day window are mutually exclusive; when both are supplied the
// minute filter wins (documented source behavior).
func reservationWhere(f models.ReservationFilters, prefix string) (string, []any) {
	clauses := []string{}
	args := []any{}

	if f.MemberID > 0 {
		clauses = append(clauses, prefix+"member_id=?")
		args = append(args, f.MemberID)
	}
	if f.OriginLike != "" {
		clauses = append(clauses, prefix+"origin_addr LIKE ?")
		args = append(args, "%"+f.OriginLike+"%")
	}
	if f.DestLike != "" {
		clauses = append(clauses, prefix+"dest_addr LIKE ?")
		args = append(args, "%"+f.DestLike+"%")
	}
	switch {
	case f.MinuteOf != nil:
		clauses = append(clauses, prefix+"pickup_at >= ? AND "+prefix+"pickup_at < ?")
		args = append(args, *f.MinuteOf, f.MinuteOf.Add(time.Minute))
	case f.DayOf != nil:
		clauses = append(clauses, prefix+"pickup_at >= ? AND "+prefix+"pickup_at < ?")
		args = append(args, *f.DayOf, f.DayOf.AddDate(0, 0, 1))
	}

	if len(clauses) == 0 {
		return "", args
	}
	where := " WHERE " + clauses[0]
	for _, c := range clauses[1:] {
		where += " AND " + c
	}
	return where, args
}

// scannedReservation holds nullable scan targets before conversion.
type scannedReservation struct {
	originZone, destZone sql.NullInt64
	completedAt          sql.NullTime
	fare, distance       sql.NullInt64
	status               string
	oLat, oLng           sql.NullFloat64
	dLat, dLng           sql.NullFloat64
}

func (s *scannedReservation) targets(res *models.Reservation, extra ...any) []any {
	t := []any{
		&res.ID, &res.MemberID, &res.BusID, &s.originZone, &s.destZone,
		&res.CreatedAt, &res.PickupAt, &s.completedAt, &s.fare, &s.status,
		&res.Note, &res.OriginAddr, &res.DestAddr,
		&s.oLat, &s.oLng, &s.dLat, &s.dLng, &s.distance,
	}
	return append(t, extra...)
}

func (s *scannedReservation) apply(res *models.Reservation) {
	res.Status = domain.ParseReservationStatus(s.status)
	if s.originZone.Valid {
		v := s.originZone.Int64
		res.OriginZoneID = &v
	}
	if s.destZone.Valid {
		v := s.destZone.Int64
		res.DestZoneID = &v
	}
	if s.completedAt.Valid {
		v := s.completedAt.Time
		res.CompletedAt = &v
	}
	if s.fare.Valid {
		v := s.fare.Int64
		res.Fare = &v
	}
	if s.distance.Valid {
		v := s.distance.Int64
		res.DistanceM = &v
	}
	if s.oLat.Valid {
		v := s.oLat.Float64
		res.OriginLat = &v
	}
	if s.oLng.Valid {
		v := s.oLng.Float64
		res.OriginLng = &v
	}
	if s.dLat.Valid {
		v := s.dLat.Float64
		res.DestLat = &v
	}
	if s.dLng.Valid {
		v := s.dLng.Float64
		res.DestLng = &v
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (models.Reservation, error) {
	var res models.Reservation
	var raw scannedReservation
	if err := row.Scan(raw.targets(&res)...); err != nil {
		return models.Reservation{}, err
	}
	raw.apply(&res)
	return res, nil
}
