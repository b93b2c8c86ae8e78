package models

import (
	"time"

	"rehabus/internal/domain"
)

// Reservation is a rehabilitation-bus booking row.
type Reservation struct {
	ID           int64
	MemberID     int64
	BusID        int64
	OriginZoneID *int64
	DestZoneID   *int64
	CreatedAt    time.Time
	PickupAt     time.Time
	CompletedAt  *time.Time
	Fare         *int64
	Status       domain.ReservationStatus
	Note         string
	OriginAddr   string
	DestAddr     string
	OriginLat    *float64
	OriginLng    *float64
	DestLat      *float64
	DestLng      *float64
	DistanceM    *int64
}

// ReservationRequest carries client input for create and update.
type ReservationRequest struct {
	MemberID     int64  `json:"member_id"`
	BusID        int64  `json:"bus_id"`
	OriginZoneID *int64 `json:"origin_zone_id"`
	DestZoneID   *int64 `json:"dest_zone_id"`
	PickupAt     string `json:"pickup_at"` // "YYYY-MM-DD HH:MM" or with seconds
	OriginAddr   string `json:"origin_addr"`
	DestAddr     string `json:"dest_addr"`
	Note         string `json:"note"`
}

// ReservationFilters narrows the reservation listing.
// MinuteOf and DayOf are mutually exclusive; MinuteOf wins when both are set.
type ReservationFilters struct {
	MemberID   int64
	OriginLike string
	DestLike   string
	MinuteOf   *time.Time
	DayOf      *time.Time
}

// ReservationView joins reservation, bus and member for display.
type ReservationView struct {
	Reservation
	MemberName string
	BusCode    string
	BusPlate   string
}

// FareQuote is an ephemeral price estimate; never persisted.
type FareQuote struct {
	OriginAddr  string  `json:"origin_addr"`
	DestAddr    string  `json:"dest_addr"`
	DistanceM   int64   `json:"distance_m"`
	DistanceKm  float64 `json:"distance_km"`
	TaxiFare    int64   `json:"taxi_fare"`
	ReducedFare int64   `json:"reduced_fare"`
}
