package repositories

import (
	"database/sql"

	intconfig "rehabus/internal/config"
	"rehabus/internal/domain"
	"rehabus/internal/domain/models"
)

// BusRepository is the fleet read/write store. The reservation engine only
// ever reads from it; fleet management owns the writes.
type BusRepository struct {
	DB *sql.DB
}

func (r BusRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r BusRepository) FindByID(id int64) (models.Bus, error) {
	if id <= 0 {
		return models.Bus{}, domain.ValidationError{Field: "bus_id", Msg: "must be positive"}
	}

	query := `
		SELECT id, code, plate_number,
		       COALESCE(seats,0), COALESCE(wheelchair_seats,0), COALESCE(status,'')
		FROM buses WHERE id=? LIMIT 1`

	var b models.Bus
	err := r.db().QueryRow(query, id).Scan(
		&b.ID, &b.Code, &b.PlateNumber, &b.Seats, &b.WheelchairSeats, &b.Status,
	)
	if err == sql.ErrNoRows {
		return models.Bus{}, domain.NotFoundError{Resource: "bus"}
	}
	if err != nil {
		return models.Bus{}, domain.InternalError{Err: err}
	}
	return b, nil
}

func (r BusRepository) List() ([]models.Bus, error) {
	query := `
		SELECT id, code, plate_number,
		       COALESCE(seats,0), COALESCE(wheelchair_seats,0), COALESCE(status,'')
		FROM buses ORDER BY id`

	rows, err := r.db().Query(query)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	list := []models.Bus{}
	for rows.Next() {
		var b models.Bus
		if err := rows.Scan(&b.ID, &b.Code, &b.PlateNumber, &b.Seats, &b.WheelchairSeats, &b.Status); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

func (r BusRepository) Insert(p models.BusPayload) (int64, error) {
	out, err := r.db().Exec(
		`INSERT INTO buses (code, plate_number, seats, wheelchair_seats, status) VALUES (?,?,?,?,?)`,
		p.Code, p.PlateNumber, p.Seats, p.WheelchairSeats, p.Status,
	)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, err := out.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}

func (r BusRepository) Update(id int64, p models.BusPayload) error {
	out, err := r.db().Exec(
		`UPDATE buses SET code=?, plate_number=?, seats=?, wheelchair_seats=?, status=? WHERE id=?`,
		p.Code, p.PlateNumber, p.Seats, p.WheelchairSeats, p.Status, id,
	)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, err := out.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "bus"}
	}
	return nil
}

func (r BusRepository) Delete(id int64) error {
	out, err := r.db().Exec(`DELETE FROM buses WHERE id=?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, err := out.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "bus"}
	}
	return nil
}
