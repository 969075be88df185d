package models

// Vehicle is an immutable catalog entry.
type Vehicle struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	BaseFare          float64 `json:"baseFare"`
	MaxPassengers     int     `json:"maxPassengers"`
	FreeLuggage       int     `json:"freeLuggage"`
	ExtraLuggagePrice float64 `json:"extraLuggagePrice"`
}

// FareBreakdown is derived from a trip and a vehicle, never edited directly.
// Amounts keep full float precision; rounding happens only when rendered.
type FareBreakdown struct {
	EstimatedFare       float64 `json:"estimatedFare"`
	Gratuity            float64 `json:"gratuity"`
	TollTax             float64 `json:"tollTax"`
	NightCharges        float64 `json:"nightCharges"`
	ExtraLuggage        int     `json:"extraLuggage"`
	ExtraLuggageCharges float64 `json:"extraLuggageCharges"`
	Total               float64 `json:"total"`
}

// Payment methods and their total transforms.
const (
	PayCash    = "cash"
	PayCard    = "card"
	PayPaypal  = "paypal"
	PayZelle   = "zelle"
	PayCashApp = "cashapp"
	PayVenmo   = "venmo"
)

func ValidPaymentMethod(m string) bool {
	switch m {
	case PayCash, PayCard, PayPaypal, PayZelle, PayCashApp, PayVenmo:
		return true
	}
	return false
}
