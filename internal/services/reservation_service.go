package services

import (
	"math"
	"sync"
	"time"

	"rehabus/internal/clock"
	"rehabus/internal/domain"
	"rehabus/internal/domain/models"
	"rehabus/internal/fare"
	"rehabus/internal/geo"
	"rehabus/internal/repositories"
	"rehabus/internal/utils"
)

// busLocker hands out one mutex per bus so the conflict check and the
// insert run as a unit against other creates for the same bus, while
// different buses never block each other.
type busLocker struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func (l *busLocker) get(busID int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = map[int64]*sync.Mutex{}
	}
	m, ok := l.locks[busID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[busID] = m
	}
	return m
}

// ReservationService orchestrates the rehabilitation-bus booking flow:
// validation, bus availability, distance resolution, fare derivation,
// schedule admission and persistence.
type ReservationService struct {
	Reservations repositories.ReservationRepository
	Buses        repositories.BusRepository
	Distance     geo.DistanceResolver
	Clock        clock.Clock
	Loc          *time.Location
	SlotMinutes  int

	locks busLocker
}

func (s *ReservationService) slot() time.Duration {
	if s.SlotMinutes <= 0 {
		return 120 * time.Minute
	}
	return time.Duration(s.SlotMinutes) * time.Minute
}

func (s *ReservationService) now() time.Time {
	return utils.TruncateToMinute(s.Clock.Now(), s.Loc)
}

func (s *ReservationService) guard() ScheduleGuard {
	return ScheduleGuard{Reservations: s.Reservations, Slot: s.slot()}
}

// Create admits and persists a new reservation.
func (s *ReservationService) Create(req models.ReservationRequest) (models.Reservation, error) {
	origin := utils.NormalizeAddress(req.OriginAddr)
	dest := utils.NormalizeAddress(req.DestAddr)
	if origin == "" {
		return models.Reservation{}, domain.ValidationError{Field: "origin_addr", Msg: "must not be blank"}
	}
	if dest == "" {
		return models.Reservation{}, domain.ValidationError{Field: "dest_addr", Msg: "must not be blank"}
	}

	pickup, err := utils.ParseDateTime(req.PickupAt, s.Loc)
	if err != nil {
		return models.Reservation{}, domain.ValidationError{Field: "pickup_at", Msg: "malformed time", Err: err}
	}
	pickup = utils.TruncateToMinute(pickup, s.Loc)

	bus, err := s.Buses.FindByID(req.BusID)
	if err != nil {
		return models.Reservation{}, err
	}
	if domain.ParseBusAvailability(bus.Status) == domain.BusMaintenance {
		return models.Reservation{}, domain.ConflictError{
			Resource: "bus",
			Reason:   domain.ConflictVehicleMaintenance,
			Msg:      "bus is under maintenance",
		}
	}

	dist, err := s.Distance.ResolveDistance(origin, dest)
	if err != nil {
		return models.Reservation{}, err
	}
	taxi := fare.TaxiFareFromMeters(dist.Meters)
	reduced := fare.ReducedFareFromTaxiFare(taxi)

	res := models.Reservation{
		MemberID:     req.MemberID,
		BusID:        req.BusID,
		OriginZoneID: req.OriginZoneID,
		DestZoneID:   req.DestZoneID,
		CreatedAt:    s.now(),
		PickupAt:     pickup,
		Fare:         &reduced,
		Status:       domain.ReservationActive,
		Note:         utils.TrimOrEmpty(req.Note),
		OriginAddr:   origin,
		DestAddr:     dest,
		OriginLat:    dist.OriginLat,
		OriginLng:    dist.OriginLng,
		DestLat:      dist.DestLat,
		DestLng:      dist.DestLng,
		DistanceM:    &dist.Meters,
	}

	// Check-then-insert must be atomic per bus.
	lock := s.locks.get(req.BusID)
	lock.Lock()
	defer lock.Unlock()

	conflict, err := s.guard().HasConflict(req.BusID, pickup, 0)
	if err != nil {
		return models.Reservation{}, err
	}
	if conflict {
		return models.Reservation{}, domain.ConflictError{
			Resource: "reservation",
			Reason:   domain.ConflictSlotTaken,
			Msg:      "time slot already booked",
		}
	}

	id, err := s.Reservations.Insert(res)
	if err != nil {
		return models.Reservation{}, err
	}
	res.ID = id
	return res, nil
}

// Update edits an active reservation. Distance and fare are recomputed only
// when an address actually changed; blank request fields fall back to the
// stored values.
func (s *ReservationService) Update(id int64, req models.ReservationRequest) (models.Reservation, error) {
	res, err := s.Reservations.GetByID(id)
	if err != nil {
		return models.Reservation{}, err
	}
	if res.Status.Terminal() {
		return models.Reservation{}, domain.ConflictError{
			Resource: "reservation",
			Reason:   domain.ConflictStateTerminal,
			Msg:      "reservation is " + string(res.Status),
		}
	}

	origin := utils.NormalizeAddress(req.OriginAddr)
	dest := utils.NormalizeAddress(req.DestAddr)
	if origin == "" {
		origin = res.OriginAddr
	}
	if dest == "" {
		dest = res.DestAddr
	}
	addressChanged := origin != res.OriginAddr || dest != res.DestAddr

	if note := utils.TrimOrEmpty(req.Note); note != "" {
		res.Note = note
	}
	if req.OriginZoneID != nil {
		res.OriginZoneID = req.OriginZoneID
	}
	if req.DestZoneID != nil {
		res.DestZoneID = req.DestZoneID
	}

	pickup := res.PickupAt
	if utils.TrimOrEmpty(req.PickupAt) != "" {
		pickup, err = utils.ParseDateTime(req.PickupAt, s.Loc)
		if err != nil {
			return models.Reservation{}, domain.ValidationError{Field: "pickup_at", Msg: "malformed time", Err: err}
		}
		pickup = utils.TruncateToMinute(pickup, s.Loc)
	}
	pickupChanged := !pickup.Equal(res.PickupAt)
	res.PickupAt = pickup

	if addressChanged {
		// A failed re-resolution fails the whole update; the stored fare
		// must never go stale against the stored addresses.
		dist, err := s.Distance.ResolveDistance(origin, dest)
		if err != nil {
			return models.Reservation{}, err
		}
		taxi := fare.TaxiFareFromMeters(dist.Meters)
		reduced := fare.ReducedFareFromTaxiFare(taxi)

		res.OriginAddr = origin
		res.DestAddr = dest
		res.DistanceM = &dist.Meters
		res.Fare = &reduced
		res.OriginLat = dist.OriginLat
		res.OriginLng = dist.OriginLng
		res.DestLat = dist.DestLat
		res.DestLng = dist.DestLng
	}

	lock := s.locks.get(res.BusID)
	lock.Lock()
	defer lock.Unlock()

	if pickupChanged {
		conflict, err := s.guard().HasConflict(res.BusID, pickup, id)
		if err != nil {
			return models.Reservation{}, err
		}
		if conflict {
			return models.Reservation{}, domain.ConflictError{
				Resource: "reservation",
				Reason:   domain.ConflictSlotTaken,
				Msg:      "time slot already booked",
			}
		}
	}

	if err := s.Reservations.Update(res); err != nil {
		return models.Reservation{}, err
	}
	return res, nil
}

// Cancel moves an active reservation to Cancelled.
func (s *ReservationService) Cancel(id int64) error {
	res, err := s.Reservations.GetByID(id)
	if err != nil {
		return err
	}
	if res.Status != domain.ReservationActive {
		return domain.ConflictError{
			Resource: "reservation",
			Reason:   domain.ConflictStateTerminal,
			Msg:      "reservation is " + string(res.Status),
		}
	}
	return s.Reservations.SetStatus(id, domain.ReservationActive, domain.ReservationCancelled)
}

// Complete stamps the completion time and moves the reservation to
// Completed. Completing an already-terminal reservation is rejected.
func (s *ReservationService) Complete(id int64) (models.Reservation, error) {
	res, err := s.Reservations.GetByID(id)
	if err != nil {
		return models.Reservation{}, err
	}
	if res.Status.Terminal() {
		return models.Reservation{}, domain.ConflictError{
			Resource: "reservation",
			Reason:   domain.ConflictStateTerminal,
			Msg:      "reservation is " + string(res.Status),
		}
	}

	completedAt := s.now()
	n, err := s.Reservations.MarkCompleted(id, completedAt)
	if err != nil {
		return models.Reservation{}, err
	}
	if n == 0 {
		// Lost a race against another terminal transition.
		return models.Reservation{}, domain.ConflictError{
			Resource: "reservation",
			Reason:   domain.ConflictStateTerminal,
			Msg:      "reservation already finished",
		}
	}
	res.Status = domain.ReservationCompleted
	res.CompletedAt = &completedAt
	return res, nil
}

// Query lists reservations through the joined read model.
func (s *ReservationService) Query(f models.ReservationFilters) ([]models.ReservationView, error) {
	return s.Reservations.ListView(f)
}

// Get returns a single reservation.
func (s *ReservationService) Get(id int64) (models.Reservation, error) {
	return s.Reservations.GetByID(id)
}

// Delete removes a reservation row for corrections.
func (s *ReservationService) Delete(id int64) error {
	return s.Reservations.Delete(id)
}

// Quote runs the distance/fare pipeline without touching the schedule or
// persisting anything. Distance-resolution failures yield a nil quote, not
// an error: this backs the try-before-you-book estimate.
func (s *ReservationService) Quote(originAddr, destAddr string) (*models.FareQuote, error) {
	origin := utils.NormalizeAddress(originAddr)
	dest := utils.NormalizeAddress(destAddr)
	if origin == "" {
		return nil, domain.ValidationError{Field: "origin_addr", Msg: "must not be blank"}
	}
	if dest == "" {
		return nil, domain.ValidationError{Field: "dest_addr", Msg: "must not be blank"}
	}

	dist, err := s.Distance.ResolveDistance(origin, dest)
	if err != nil {
		if domain.IsUpstream(err) {
			return nil, nil
		}
		return nil, err
	}

	taxi := fare.TaxiFareFromMeters(dist.Meters)
	return &models.FareQuote{
		OriginAddr:  origin,
		DestAddr:    dest,
		DistanceM:   dist.Meters,
		DistanceKm:  math.Round(float64(dist.Meters)/10) / 100,
		TaxiFare:    taxi,
		ReducedFare: fare.ReducedFareFromTaxiFare(taxi),
	}, nil
}
