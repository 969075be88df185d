package models

// ServiceType values mirror the booking form options.
const (
	ServiceRideToAirport   = "ride-to-airport"
	ServiceRideFromAirport = "ride-from-airport"
	ServiceDoorToDoor      = "door-to-door"
	ServiceLongDistance    = "long-distance"
)

const (
	RideOneWay    = "one-way"
	RideRoundTrip = "round-trip"
)

// TripRequest holds the raw trip parameters entered at step one.
// Date is "YYYY-MM-DD" and Time is "HH:MM" local, the same flat strings the
// site stores between page loads.
type TripRequest struct {
	Date           string `json:"date"`
	Time           string `json:"time"`
	ServiceType    string `json:"serviceType"`
	RideType       string `json:"rideType"`
	PickUp         string `json:"pickUp"`
	DropOff        string `json:"dropOff"`
	Airport        string `json:"airport,omitempty"`
	PassengerCount int    `json:"passengerCount"`
	LuggageCount   int    `json:"luggageCount"`
}

func ValidServiceType(s string) bool {
	switch s {
	case ServiceRideToAirport, ServiceRideFromAirport, ServiceDoorToDoor, ServiceLongDistance:
		return true
	}
	return false
}

func ValidRideType(s string) bool {
	return s == RideOneWay || s == RideRoundTrip
}
