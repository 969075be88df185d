package booking

import (
	"fmt"
	"strings"
	"time"

	"carbook/internal/domain"
	"carbook/internal/domain/models"
	"carbook/internal/pricing"
	"carbook/internal/utils"
)

// Step is the draft's position in the four-step reservation flow.
type Step string

const (
	StepTrip      Step = "trip"
	StepVehicle   Step = "vehicle"
	StepPersonal  Step = "personal"
	StepPayment   Step = "payment"
	StepFinalized Step = "finalized"
)

var stepOrder = map[Step]int{
	StepTrip:      1,
	StepVehicle:   2,
	StepPersonal:  3,
	StepPayment:   4,
	StepFinalized: 5,
}

// reachedAtLeast reports whether the draft already passed the given step.
func (s Step) reachedAtLeast(min Step) bool {
	return stepOrder[s] >= stepOrder[min]
}

// Draft accumulates booking fields across the steps. It is a flat
// JSON-serializable value with no cycles, so it survives a full page reload,
// and it is threaded explicitly through each transition instead of living in
// shared state. Fields past the current step may linger after backward
// navigation; the forward guards re-validate them before they count again.
type Draft struct {
	Step          Step                  `json:"step"`
	Trip          models.TripRequest    `json:"trip"`
	AddOns        models.AddOnSelection `json:"addOns"`
	VehicleID     string                `json:"vehicleId,omitempty"`
	VehicleName   string                `json:"vehicleName,omitempty"`
	Fare          *models.FareBreakdown `json:"fare,omitempty"`
	PersonalInfo  *models.PersonalInfo  `json:"personalInfo,omitempty"`
	PaymentMethod string                `json:"paymentMethod,omitempty"`
}

func NewDraft() Draft {
	return Draft{Step: StepTrip}
}

// Fingerprint identifies "the same trip" for duplicate-finalize guards.
func (d Draft) Fingerprint() string {
	return fmt.Sprintf("%s|%s|%s|%s", d.Trip.Date, d.Trip.Time, d.Trip.PickUp, d.Trip.DropOff)
}

// Machine applies validated transitions to a draft. Transitions take and
// return draft values; on error the caller's draft is untouched.
type Machine struct {
	catalog *pricing.Catalog
}

func NewMachine(catalog *pricing.Catalog) *Machine {
	return &Machine{catalog: catalog}
}

// SubmitTrip is the step-one gate. It can also be re-entered from any later
// pre-finalized step (backward navigation), in which case the whole trip is
// re-validated and the vehicle seed and fare are recomputed. Validation runs
// before any fare math; a failing guard never touches the calculator.
func (m *Machine) SubmitTrip(d Draft, trip models.TripRequest, addOns models.AddOnSelection, now time.Time) (Draft, error) {
	if d.Step == StepFinalized {
		return d, domain.ConflictError{Resource: "draft", Msg: "already finalized"}
	}

	trip.PickUp = utils.TrimOrEmpty(trip.PickUp)
	trip.DropOff = utils.TrimOrEmpty(pricing.ResolveDropOff(trip.ServiceType, trip.Airport, trip.DropOff))
	trip.Date = utils.TrimOrEmpty(trip.Date)
	trip.Time = utils.TrimOrEmpty(trip.Time)

	if err := validateTrip(trip, now); err != nil {
		return d, err
	}

	d.Trip = trip
	d.AddOns = addOns

	// Seed step two: recommended vehicle plus its breakdown. The user may
	// still override with any catalog vehicle.
	seed := m.catalog.RecommendVehicle(trip.PassengerCount, trip.LuggageCount)
	fare := m.catalog.ComputeFare(trip, seed)
	d.VehicleID = seed.ID
	d.VehicleName = seed.Name
	d.Fare = &fare
	d.Step = StepVehicle
	return d, nil
}

// ChooseVehicle confirms step two with the given catalog vehicle, recomputing
// the breakdown against it. Re-entry from later steps is allowed; reaching it
// from step one is not.
func (m *Machine) ChooseVehicle(d Draft, vehicleID string) (Draft, error) {
	if d.Step == StepFinalized {
		return d, domain.ConflictError{Resource: "draft", Msg: "already finalized"}
	}
	if !d.Step.reachedAtLeast(StepVehicle) {
		return d, domain.ValidationError{Field: "step", Msg: "trip details must be submitted first"}
	}

	vehicle, ok := m.catalog.Vehicle(vehicleID)
	if !ok {
		return d, domain.ValidationError{Field: "vehicleId", Msg: "unknown vehicle"}
	}

	fare := m.catalog.ComputeFare(d.Trip, vehicle)
	d.VehicleID = vehicle.ID
	d.VehicleName = vehicle.Name
	d.Fare = &fare
	d.Step = StepPersonal
	return d, nil
}

// SubmitPersonalInfo is the step-three gate: passenger name, email and phone
// are required and checked for shape.
func (m *Machine) SubmitPersonalInfo(d Draft, info models.PersonalInfo) (Draft, error) {
	if d.Step == StepFinalized {
		return d, domain.ConflictError{Resource: "draft", Msg: "already finalized"}
	}
	if !d.Step.reachedAtLeast(StepPersonal) {
		return d, domain.ValidationError{Field: "step", Msg: "a vehicle must be chosen first"}
	}
	if d.VehicleID == "" || d.Fare == nil {
		return d, domain.ValidationError{Field: "vehicleId", Msg: "a vehicle must be chosen first"}
	}

	info.PassengerName = utils.NormalizeSpace(info.PassengerName)
	info.Email = utils.TrimOrEmpty(info.Email)
	info.Phone = utils.NormalizePhone(info.Phone)

	if info.PassengerName == "" {
		return d, domain.ValidationError{Field: "passengerName", Msg: "passenger name is required"}
	}
	if !utils.ValidEmail(info.Email) {
		return d, domain.ValidationError{Field: "email", Msg: "a valid email is required"}
	}
	if !utils.ValidPhone(info.Phone) {
		return d, domain.ValidationError{Field: "phone", Msg: "a valid phone number is required"}
	}

	d.PersonalInfo = &info
	d.Step = StepPayment
	return d, nil
}

// ChoosePayment records the step-four selection. The draft stays in the
// payment step until the finalizer commits it; the payment adjustment itself
// is applied exactly once, at finalization.
func (m *Machine) ChoosePayment(d Draft, method string) (Draft, error) {
	if d.Step == StepFinalized {
		return d, domain.ConflictError{Resource: "draft", Msg: "already finalized"}
	}
	if !d.Step.reachedAtLeast(StepPayment) {
		return d, domain.ValidationError{Field: "step", Msg: "personal information must be submitted first"}
	}

	method = strings.ToLower(utils.TrimOrEmpty(method))
	if !models.ValidPaymentMethod(method) {
		return d, domain.ValidationError{Field: "paymentMethod", Msg: "unknown payment method"}
	}

	d.PaymentMethod = method
	return d, nil
}

// ReadyToFinalize re-checks every gate before the draft leaves the machine.
func (d Draft) ReadyToFinalize() error {
	if d.Step == StepFinalized {
		return domain.ConflictError{Resource: "draft", Msg: "already finalized"}
	}
	if !d.Step.reachedAtLeast(StepPayment) {
		return domain.ValidationError{Field: "step", Msg: "booking steps are incomplete"}
	}
	if d.VehicleID == "" || d.Fare == nil {
		return domain.ValidationError{Field: "vehicleId", Msg: "a vehicle must be chosen"}
	}
	if d.PersonalInfo == nil {
		return domain.ValidationError{Field: "personalInfo", Msg: "personal information is missing"}
	}
	if !models.ValidPaymentMethod(d.PaymentMethod) {
		return domain.ValidationError{Field: "paymentMethod", Msg: "a payment method must be chosen"}
	}
	return nil
}

func validateTrip(trip models.TripRequest, now time.Time) error {
	if trip.Date == "" {
		return domain.ValidationError{Field: "date", Msg: "date is required"}
	}
	if trip.Time == "" {
		return domain.ValidationError{Field: "time", Msg: "time is required"}
	}
	if trip.PickUp == "" {
		return domain.ValidationError{Field: "pickUp", Msg: "pick-up address is required"}
	}
	if trip.DropOff == "" {
		return domain.ValidationError{Field: "dropOff", Msg: "drop-off address is required"}
	}
	if !models.ValidServiceType(trip.ServiceType) {
		return domain.ValidationError{Field: "serviceType", Msg: "unknown service type"}
	}
	if !models.ValidRideType(trip.RideType) {
		return domain.ValidationError{Field: "rideType", Msg: "unknown ride type"}
	}
	if trip.PassengerCount < 1 {
		return domain.ValidationError{Field: "passengerCount", Msg: "at least one passenger is required"}
	}
	if trip.LuggageCount < 0 {
		return domain.ValidationError{Field: "luggageCount", Msg: "luggage count cannot be negative"}
	}

	when, err := utils.ParseTripDateTime(trip.Date, trip.Time)
	if err != nil {
		return domain.ValidationError{Field: "date", Msg: "invalid date or time", Err: err}
	}
	if when.Before(now) {
		return domain.ValidationError{Field: "date", Msg: "date and time must be in the future"}
	}
	return nil
}
