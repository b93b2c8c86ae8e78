package services

import (
	"time"

	"rehabus/internal/repositories"
)

// SlotsOverlap reports whether two fixed-length windows [a, a+slot) and
// [b, b+slot) overlap. Adjacent windows do not.
func SlotsOverlap(a, b time.Time, slot time.Duration) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d < slot
}

// ScheduleGuard decides whether a candidate pickup collides with an existing
// booking on the same bus. Every booking occupies one fixed-length slot
// regardless of trip distance; cancelled reservations never block. The check
// is advisory only, so callers serialize it with the following insert.
type ScheduleGuard struct {
	Reservations repositories.ReservationRepository
	Slot         time.Duration
}

func (g ScheduleGuard) HasConflict(busID int64, start time.Time, excludeID int64) (bool, error) {
	pickups, err := g.Reservations.ListActivePickups(busID, start, g.Slot, excludeID)
	if err != nil {
		return false, err
	}
	for _, p := range pickups {
		if SlotsOverlap(start, p, g.Slot) {
			return true, nil
		}
	}
	return false, nil
}
