package services

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"carbook/internal/booking"
	"carbook/internal/domain"
	"carbook/internal/domain/models"
	"carbook/internal/pricing"
)

// fakeStore is an in-memory ReservationStore for exercising the finalizer
// without a database.
type fakeStore struct {
	reservations []models.Reservation
	nextID       int64
	createErr    error
	createCalls  int
}

func (f *fakeStore) Create(res models.Reservation) (int64, error) {
	f.createCalls++
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	res.ID = f.nextID
	f.reservations = append(f.reservations, res)
	return res.ID, nil
}

func (f *fakeStore) GetByID(id int64) (models.Reservation, error) {
	for _, r := range f.reservations {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Reservation{}, domain.NotFoundError{Resource: "reservation"}
}

func (f *fakeStore) ListByOwner(ownerID int64) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) FindByConfirmation(ownerID int64, confirmationNumber string) (models.Reservation, bool, error) {
	for _, r := range f.reservations {
		if r.OwnerID == ownerID && r.ConfirmationNumber == confirmationNumber {
			return r, true, nil
		}
	}
	return models.Reservation{}, false, nil
}

func (f *fakeStore) FindUpcomingTrip(ownerID int64, date, clock, pickUp, dropOff string) (models.Reservation, bool, error) {
	for _, r := range f.reservations {
		if r.OwnerID == ownerID && r.Status == models.ReservationUpcoming &&
			r.Trip.Date == date && r.Trip.Time == clock &&
			r.Trip.PickUp == pickUp && r.Trip.DropOff == dropOff {
			return r, true, nil
		}
	}
	return models.Reservation{}, false, nil
}

func (f *fakeStore) Update(id, ownerID int64, upd models.ReservationUpdate) error {
	for i, r := range f.reservations {
		if r.ID == id && r.OwnerID == ownerID {
			if upd.Date != nil {
				f.reservations[i].Trip.Date = *upd.Date
			}
			if upd.PassengerCount != nil {
				f.reservations[i].Trip.PassengerCount = *upd.PassengerCount
			}
			return nil
		}
	}
	return domain.NotFoundError{Resource: "reservation"}
}

func (f *fakeStore) UpdateStatus(id, ownerID int64, status string) error {
	for i, r := range f.reservations {
		if r.ID == id && r.OwnerID == ownerID {
			f.reservations[i].Status = status
			return nil
		}
	}
	return domain.NotFoundError{Resource: "reservation"}
}

func (f *fakeStore) Delete(id, ownerID int64) error {
	for i, r := range f.reservations {
		if r.ID == id && r.OwnerID == ownerID {
			f.reservations = append(f.reservations[:i], f.reservations[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "reservation"}
}

func completedDraft(t *testing.T) booking.Draft {
	t.Helper()

	m := booking.NewMachine(pricing.NewCatalog(0))
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.Local)

	trip := models.TripRequest{
		Date:           "2026-01-11",
		Time:           "14:00",
		ServiceType:    models.ServiceRideToAirport,
		RideType:       models.RideOneWay,
		PickUp:         "45 School St, Boston",
		Airport:        "logan",
		PassengerCount: 2,
		LuggageCount:   3,
	}
	d, err := m.SubmitTrip(booking.NewDraft(), trip, models.AddOnSelection{}, now)
	if err != nil {
		t.Fatalf("SubmitTrip: %v", err)
	}
	d, err = m.ChooseVehicle(d, pricing.VehicleMinivan)
	if err != nil {
		t.Fatalf("ChooseVehicle: %v", err)
	}
	d, err = m.SubmitPersonalInfo(d, models.PersonalInfo{
		IsTraveler:    "yes",
		PassengerName: "Jordan Pierce",
		Email:         "jordan@example.com",
		Phone:         "6175551234",
	})
	if err != nil {
		t.Fatalf("SubmitPersonalInfo: %v", err)
	}
	d, err = m.ChoosePayment(d, models.PayCash)
	if err != nil {
		t.Fatalf("ChoosePayment: %v", err)
	}
	return d
}

func TestFinalizePersistsAndAdjustsTotal(t *testing.T) {
	store := &fakeStore{}
	svc := NewReservationService(store)
	draft := completedDraft(t)

	result, err := svc.Finalize(draft, 7, "")
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if !result.Persisted || result.Duplicate {
		t.Fatalf("unexpected result flags: %+v", result)
	}
	if !strings.HasPrefix(result.Reservation.ConfirmationNumber, ConfirmationPrefix) {
		t.Fatalf("confirmation %q missing prefix", result.Reservation.ConfirmationNumber)
	}
	// Minivan 111 total, cash 10% off, applied exactly once.
	if math.Abs(result.Reservation.FinalTotal-99.9) > 1e-9 {
		t.Fatalf("final total = %v, want 99.90", result.Reservation.FinalTotal)
	}
	if result.Reservation.Fare.Total != 111 {
		t.Fatalf("stored breakdown was mutated: %+v", result.Reservation.Fare)
	}
	if result.Reservation.Status != models.ReservationUpcoming {
		t.Fatalf("status = %q, want %q", result.Reservation.Status, models.ReservationUpcoming)
	}
	if store.createCalls != 1 || len(store.reservations) != 1 {
		t.Fatalf("create calls = %d, stored = %d", store.createCalls, len(store.reservations))
	}
}

func TestFinalizeDuplicateByConfirmation(t *testing.T) {
	store := &fakeStore{}
	svc := NewReservationService(store)
	draft := completedDraft(t)

	first, err := svc.Finalize(draft, 7, "")
	if err != nil {
		t.Fatalf("first Finalize: %v", err)
	}

	// The client retries still holding the confirmation number it was issued.
	second, err := svc.Finalize(draft, 7, first.Reservation.ConfirmationNumber)
	if err != nil {
		t.Fatalf("second Finalize: %v", err)
	}
	if !second.Duplicate {
		t.Fatal("retry with prior confirmation was not flagged duplicate")
	}
	if second.Reservation.ConfirmationNumber != first.Reservation.ConfirmationNumber {
		t.Fatalf("duplicate returned %q, want %q", second.Reservation.ConfirmationNumber, first.Reservation.ConfirmationNumber)
	}
	if store.createCalls != 1 {
		t.Fatalf("create called %d times, want 1", store.createCalls)
	}
}

func TestFinalizeDuplicateByUpcomingTrip(t *testing.T) {
	store := &fakeStore{}
	svc := NewReservationService(store)
	draft := completedDraft(t)

	first, err := svc.Finalize(draft, 7, "")
	if err != nil {
		t.Fatalf("first Finalize: %v", err)
	}

	// Retry without the confirmation number (fresh page, cleared storage).
	// The same upcoming trip must still be caught.
	second, err := svc.Finalize(draft, 7, "")
	if err != nil {
		t.Fatalf("second Finalize: %v", err)
	}
	if !second.Duplicate {
		t.Fatal("retry for same upcoming trip was not flagged duplicate")
	}
	if second.Reservation.ID != first.Reservation.ID {
		t.Fatalf("duplicate returned reservation %d, want %d", second.Reservation.ID, first.Reservation.ID)
	}
	if store.createCalls != 1 {
		t.Fatalf("create called %d times, want 1", store.createCalls)
	}
}

func TestFinalizeUnauthenticatedPersistsNothing(t *testing.T) {
	store := &fakeStore{}
	svc := NewReservationService(store)

	result, err := svc.Finalize(completedDraft(t), 0, "")
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if result.Persisted {
		t.Fatal("unauthenticated finalize claimed persistence")
	}
	if !strings.HasPrefix(result.Reservation.ConfirmationNumber, ConfirmationPrefix) {
		t.Fatalf("confirmation %q missing prefix", result.Reservation.ConfirmationNumber)
	}
	if store.createCalls != 0 || len(store.reservations) != 0 {
		t.Fatalf("store was touched: calls=%d stored=%d", store.createCalls, len(store.reservations))
	}
}

func TestFinalizeIncompleteDraft(t *testing.T) {
	svc := NewReservationService(&fakeStore{})

	if _, err := svc.Finalize(booking.NewDraft(), 7, ""); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFinalizeRetryAfterStoreFailure(t *testing.T) {
	store := &fakeStore{createErr: errors.New("db down")}
	svc := NewReservationService(store)
	draft := completedDraft(t)

	if _, err := svc.Finalize(draft, 7, ""); err == nil {
		t.Fatal("expected error from failing store")
	}
	if len(store.reservations) != 0 {
		t.Fatal("failed create left data behind")
	}

	// Store recovers, the same draft finalizes cleanly.
	store.createErr = nil
	result, err := svc.Finalize(draft, 7, "")
	if err != nil {
		t.Fatalf("retry Finalize: %v", err)
	}
	if !result.Persisted || result.Duplicate {
		t.Fatalf("unexpected result flags after retry: %+v", result)
	}
}

func TestCancelOnlyFromUpcoming(t *testing.T) {
	store := &fakeStore{}
	svc := NewReservationService(store)

	result, err := svc.Finalize(completedDraft(t), 7, "")
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	id := result.Reservation.ID

	if err := svc.Cancel(id, 7); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	got, err := svc.Get(id, 7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != models.ReservationCancelled {
		t.Fatalf("status = %q, want %q", got.Status, models.ReservationCancelled)
	}

	// Second cancel hits a non-upcoming reservation.
	if err := svc.Cancel(id, 7); !domain.IsConflict(err) {
		t.Fatalf("expected conflict on re-cancel, got %v", err)
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	store := &fakeStore{}
	svc := NewReservationService(store)

	result, err := svc.Finalize(completedDraft(t), 7, "")
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if _, err := svc.Get(result.Reservation.ID, 8); !domain.IsNotFound(err) {
		t.Fatalf("foreign owner got %v, want not-found", err)
	}
	if _, err := svc.Get(result.Reservation.ID, 0); !domain.IsUnauthorized(err) {
		t.Fatalf("anonymous caller got %v, want unauthorized", err)
	}
}

func TestEditValidatesUpdate(t *testing.T) {
	store := &fakeStore{}
	svc := NewReservationService(store)

	result, err := svc.Finalize(completedDraft(t), 7, "")
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	id := result.Reservation.ID

	zero := 0
	if err := svc.Edit(id, 7, models.ReservationUpdate{PassengerCount: &zero}); !domain.IsValidation(err) {
		t.Fatalf("zero passengers accepted: %v", err)
	}
	badDate := "tomorrow"
	if err := svc.Edit(id, 7, models.ReservationUpdate{Date: &badDate}); !domain.IsValidation(err) {
		t.Fatalf("malformed date accepted: %v", err)
	}

	four := 4
	goodDate := "2026-01-12"
	if err := svc.Edit(id, 7, models.ReservationUpdate{Date: &goodDate, PassengerCount: &four}); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	got, err := svc.Get(id, 7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Trip.Date != goodDate || got.Trip.PassengerCount != 4 {
		t.Fatalf("update not applied: %+v", got.Trip)
	}
}

func TestConfirmationNumberShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		conf := newConfirmationNumber()
		if !strings.HasPrefix(conf, ConfirmationPrefix) {
			t.Fatalf("confirmation %q missing prefix", conf)
		}
		suffix := strings.TrimPrefix(conf, ConfirmationPrefix)
		if len(suffix) != 8 {
			t.Fatalf("confirmation suffix %q not 8 chars", suffix)
		}
		if suffix != strings.ToUpper(suffix) {
			t.Fatalf("confirmation suffix %q not uppercase", suffix)
		}
		if seen[conf] {
			t.Fatalf("confirmation %q repeated", conf)
		}
		seen[conf] = true
	}
}
