package domain

import "strings"

// ID is used across domain entities.
type ID int64

// ReservationStatus is the closed reservation state set.
type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "Active"
	ReservationCancelled ReservationStatus = "Cancelled"
	ReservationCompleted ReservationStatus = "Completed"
)

// Terminal reports whether no further transition is allowed.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationCancelled || s == ReservationCompleted
}

// ParseReservationStatus maps stored free-text onto the closed set.
// Unknown values fall back to Active rather than failing the row.
func ParseReservationStatus(raw string) ReservationStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "cancelled", "canceled":
		return ReservationCancelled
	case "completed", "done":
		return ReservationCompleted
	default:
		return ReservationActive
	}
}

// BusAvailability is the engine-side view of the free-text bus status column.
type BusAvailability string

const (
	BusAvailable   BusAvailability = "available"
	BusMaintenance BusAvailability = "maintenance"
)

// ParseBusAvailability matches the status string case-insensitively against
// "maintenance" and its localized equivalent; anything else is available.
func ParseBusAvailability(raw string) BusAvailability {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "maintenance" || s == "維修" || s == "維修中" {
		return BusMaintenance
	}
	return BusAvailable
}

// Pagination carries paging params and totals.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total,omitempty"`
}
