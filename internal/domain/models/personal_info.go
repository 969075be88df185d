package models

// PersonalInfo carries contact and travel details collected at step three.
type PersonalInfo struct {
	IsTraveler       string `json:"isTraveler"`
	PassengerName    string `json:"passengerName"`
	AirlineName      string `json:"airlineName,omitempty"`
	FlightNumber     string `json:"flightNumber,omitempty"`
	Email            string `json:"email"`
	PhoneCountryCode string `json:"phoneCountryCode"`
	Phone            string `json:"phone"`
	MailingAddress   string `json:"mailingAddress,omitempty"`
	SpecialNeeds     string `json:"specialNeeds,omitempty"`
}
