package repositories

import "database/sql"

// EnsureReservationSchema creates the reservation table when missing.
//
// active_pickup mirrors pickup_at while the reservation still occupies its
// slot and is set to NULL on cancellation. The unique key on
// (bus_id, active_pickup) is the second line of defense behind the advisory
// conflict check: a racing insert fails with a duplicate-key error that
// Insert maps to a slot conflict, while cancelled rows drop out of the index
// (NULLs never collide) so their minute can be booked again.
func EnsureReservationSchema(db *sql.DB) error {
	ddl := `
CREATE TABLE IF NOT EXISTS bus_reservations (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	member_id BIGINT NOT NULL,
	bus_id BIGINT NOT NULL,
	origin_zone_id BIGINT NULL,
	dest_zone_id BIGINT NULL,
	created_at DATETIME NOT NULL,
	pickup_at DATETIME NOT NULL,
	active_pickup DATETIME NULL,
	completed_at DATETIME NULL,
	fare INT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'Active',
	note TEXT,
	origin_addr VARCHAR(255) NOT NULL,
	dest_addr VARCHAR(255) NOT NULL,
	origin_lat DOUBLE NULL,
	origin_lng DOUBLE NULL,
	dest_lat DOUBLE NULL,
	dest_lng DOUBLE NULL,
	distance_m INT NULL,
	UNIQUE KEY uniq_bus_active (bus_id, active_pickup),
	KEY idx_member (member_id),
	KEY idx_bus_pickup (bus_id, pickup_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}
