package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"carbook/internal/booking"
	"carbook/internal/domain"
	"carbook/internal/domain/models"
	"carbook/internal/pricing"
	"carbook/internal/utils"
)

// ConfirmationPrefix is the customer-facing prefix kept from the legacy
// site; the suffix is drawn from a v4 UUID instead of a timestamp so rapid
// concurrent finalizations cannot collide.
const ConfirmationPrefix = "LT-"

// ReservationStore is what the finalizer needs from persistence.
// ReservationRepository satisfies it; tests plug in fakes.
type ReservationStore interface {
	Create(res models.Reservation) (int64, error)
	GetByID(id int64) (models.Reservation, error)
	ListByOwner(ownerID int64) ([]models.Reservation, error)
	FindByConfirmation(ownerID int64, confirmationNumber string) (models.Reservation, bool, error)
	FindUpcomingTrip(ownerID int64, date, clock, pickUp, dropOff string) (models.Reservation, bool, error)
	Update(id, ownerID int64, upd models.ReservationUpdate) error
	UpdateStatus(id, ownerID int64, status string) error
	Delete(id, ownerID int64) error
}

// FinalizeResult reports what happened to a finalize call. Duplicate is a
// success: the pre-existing reservation comes back unchanged.
type FinalizeResult struct {
	Reservation models.Reservation `json:"reservation"`
	Persisted   bool               `json:"persisted"`
	Duplicate   bool               `json:"duplicate"`
}

// ReservationService converts completed drafts into persisted reservations
// and owns the owner-facing reservation operations.
type ReservationService struct {
	Store           ReservationStore
	RequestID       string
	NewConfirmation func() string
	Now             func() time.Time

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewReservationService(store ReservationStore) *ReservationService {
	return &ReservationService{
		Store:           store,
		NewConfirmation: newConfirmationNumber,
		Now:             time.Now,
		inFlight:        map[string]bool{},
	}
}

func newConfirmationNumber() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return ConfirmationPrefix + strings.ToUpper(raw[:8])
}

// Finalize commits a completed draft for the given owner. Without an owner it
// still computes the reservation (for the receipt view) but persists nothing.
// priorConfirmation is the number issued by an earlier attempt for the same
// draft, if the client still holds one; it feeds the duplicate probe.
func (s *ReservationService) Finalize(draft booking.Draft, ownerID int64, priorConfirmation string) (FinalizeResult, error) {
	if err := draft.ReadyToFinalize(); err != nil {
		return FinalizeResult{}, err
	}

	confirmation := strings.TrimSpace(priorConfirmation)
	if confirmation == "" {
		confirmation = s.NewConfirmation()
	}

	now := s.Now()
	res := models.Reservation{
		OwnerID:            ownerID,
		ConfirmationNumber: confirmation,
		Trip:               draft.Trip,
		AddOns:             draft.AddOns,
		VehicleID:          draft.VehicleID,
		VehicleName:        draft.VehicleName,
		Fare:               *draft.Fare,
		PersonalInfo:       *draft.PersonalInfo,
		PaymentMethod:      draft.PaymentMethod,
		FinalTotal:         pricing.ApplyPaymentAdjustment(draft.Fare.Total, draft.PaymentMethod),
		Status:             models.ReservationUpcoming,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if ownerID <= 0 {
		// No authenticated owner: nothing is written, the computed
		// reservation only backs the receipt view until sign-in.
		return FinalizeResult{Reservation: res, Persisted: false}, nil
	}

	// In-process guard against double submits from the same process; the
	// store probes below cover retries that arrive after a reload.
	key := fmt.Sprintf("%d|%s", ownerID, draft.Fingerprint())
	s.mu.Lock()
	if s.inFlight[key] {
		s.mu.Unlock()
		return FinalizeResult{}, domain.ConflictError{Resource: "reservation", Msg: "finalization already in progress"}
	}
	s.inFlight[key] = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.inFlight, key)
		s.mu.Unlock()
	}()

	if existing, ok, err := s.Store.FindByConfirmation(ownerID, confirmation); err != nil {
		return FinalizeResult{}, err
	} else if ok {
		utils.LogEvent(s.RequestID, "reservation", "finalize", "duplicate confirmation "+confirmation+", skipping create")
		return FinalizeResult{Reservation: existing, Persisted: true, Duplicate: true}, nil
	}

	if existing, ok, err := s.Store.FindUpcomingTrip(ownerID, draft.Trip.Date, draft.Trip.Time, draft.Trip.PickUp, draft.Trip.DropOff); err != nil {
		return FinalizeResult{}, err
	} else if ok {
		utils.LogEvent(s.RequestID, "reservation", "finalize", "similar upcoming reservation exists, skipping create")
		return FinalizeResult{Reservation: existing, Persisted: true, Duplicate: true}, nil
	}

	id, err := s.Store.Create(res)
	if err != nil {
		// The draft stays intact with the caller; they may retry the same
		// finalize after a persistence failure.
		utils.LogEvent(s.RequestID, "reservation", "finalize", "create failed: "+err.Error())
		return FinalizeResult{}, err
	}
	res.ID = id
	utils.LogEvent(s.RequestID, "reservation", "finalize", "created "+confirmation)
	return FinalizeResult{Reservation: res, Persisted: true}, nil
}

func (s *ReservationService) List(ownerID int64) ([]models.Reservation, error) {
	if ownerID <= 0 {
		return nil, domain.UnauthorizedError{}
	}
	return s.Store.ListByOwner(ownerID)
}

func (s *ReservationService) Get(id, ownerID int64) (models.Reservation, error) {
	if ownerID <= 0 {
		return models.Reservation{}, domain.UnauthorizedError{}
	}
	res, err := s.Store.GetByID(id)
	if err != nil {
		return models.Reservation{}, err
	}
	if res.OwnerID != ownerID {
		return models.Reservation{}, domain.NotFoundError{Resource: "reservation"}
	}
	return res, nil
}

// Edit applies an owner's partial update to trip fields.
func (s *ReservationService) Edit(id, ownerID int64, upd models.ReservationUpdate) error {
	if ownerID <= 0 {
		return domain.UnauthorizedError{}
	}
	if upd.PassengerCount != nil && *upd.PassengerCount < 1 {
		return domain.ValidationError{Field: "passengerCount", Msg: "at least one passenger is required"}
	}
	if upd.LuggageCount != nil && *upd.LuggageCount < 0 {
		return domain.ValidationError{Field: "luggageCount", Msg: "luggage count cannot be negative"}
	}
	if upd.Date != nil {
		if _, err := utils.ParseDate(*upd.Date); err != nil {
			return domain.ValidationError{Field: "date", Msg: "invalid date", Err: err}
		}
	}
	return s.Store.Update(id, ownerID, upd)
}

// Cancel transitions upcoming -> cancelled; any other starting status is a
// conflict.
func (s *ReservationService) Cancel(id, ownerID int64) error {
	res, err := s.Get(id, ownerID)
	if err != nil {
		return err
	}
	if res.Status != models.ReservationUpcoming {
		return domain.ConflictError{Resource: "reservation", Msg: "only upcoming reservations can be cancelled"}
	}
	if err := s.Store.UpdateStatus(id, ownerID, models.ReservationCancelled); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "reservation", "cancel", fmt.Sprintf("id=%d", id))
	return nil
}

// Delete permanently removes an owner's reservation.
func (s *ReservationService) Delete(id, ownerID int64) error {
	if _, err := s.Get(id, ownerID); err != nil {
		return err
	}
	if err := s.Store.Delete(id, ownerID); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "reservation", "delete", fmt.Sprintf("id=%d", id))
	return nil
}
