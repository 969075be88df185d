package models

import "time"

const (
	ReservationUpcoming  = "upcoming"
	ReservationCancelled = "cancelled"
)

// Reservation is the persisted snapshot of a finalized draft. Immutable once
// created except for status (upcoming -> cancelled), the owner-editable trip
// fields, and UpdatedAt.
type Reservation struct {
	ID                 int64          `json:"id"`
	OwnerID            int64          `json:"ownerId"`
	ConfirmationNumber string         `json:"confirmationNumber"`
	Trip               TripRequest    `json:"trip"`
	AddOns             AddOnSelection `json:"addOns"`
	VehicleID          string         `json:"vehicleId"`
	VehicleName        string         `json:"vehicleName"`
	Fare               FareBreakdown  `json:"fare"`
	PersonalInfo       PersonalInfo   `json:"personalInfo"`
	PaymentMethod      string         `json:"paymentMethod"`
	FinalTotal         float64        `json:"finalTotal"`
	Status             string         `json:"status"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

// ReservationUpdate supports PATCH-style edits via field presence.
type ReservationUpdate struct {
	Date           *string `json:"date"`
	Time           *string `json:"time"`
	PickUp         *string `json:"pickUp"`
	DropOff        *string `json:"dropOff"`
	PassengerCount *int    `json:"passengerCount"`
	LuggageCount   *int    `json:"luggageCount"`
}
