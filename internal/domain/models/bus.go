package models

// Bus is a rehabilitation bus in the fleet.
// Status is free text owned by fleet management; the engine interprets it
// through domain.ParseBusAvailability.
type Bus struct {
	ID              int64  `json:"id"`
	Code            string `json:"code"`
	PlateNumber     string `json:"plateNumber"`
	Seats           int    `json:"seats"`
	WheelchairSeats int    `json:"wheelchairSeats"`
	Status          string `json:"status"`
}

// BusPayload is the write shape for fleet CRUD.
type BusPayload struct {
	Code            string `json:"code" binding:"required"`
	PlateNumber     string `json:"plateNumber" binding:"required"`
	Seats           int    `json:"seats"`
	WheelchairSeats int    `json:"wheelchairSeats"`
	Status          string `json:"status"`
}
