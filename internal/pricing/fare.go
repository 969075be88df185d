package pricing

import (
	"carbook/internal/domain/models"
	"carbook/internal/utils"
)

// ComputeFare derives the itemized breakdown for a trip on a given vehicle.
// Pure and idempotent; the total is always the exact sum of its parts and
// amounts keep full precision until rendered.
func (c *Catalog) ComputeFare(trip models.TripRequest, vehicle models.Vehicle) models.FareBreakdown {
	estimatedFare := vehicle.BaseFare
	gratuity := estimatedFare * GratuityRate

	nightCharges := 0.0
	hour := utils.TripHour(trip.Time)
	if hour >= NightStartHour && hour < NightEndHour {
		nightCharges = NightCharge
	}

	extraLuggage := trip.LuggageCount - vehicle.FreeLuggage
	if extraLuggage < 0 {
		extraLuggage = 0
	}
	extraLuggageCharges := float64(extraLuggage) * vehicle.ExtraLuggagePrice

	return models.FareBreakdown{
		EstimatedFare:       estimatedFare,
		Gratuity:            gratuity,
		TollTax:             TollTax,
		NightCharges:        nightCharges,
		ExtraLuggage:        extraLuggage,
		ExtraLuggageCharges: extraLuggageCharges,
		Total:               estimatedFare + gratuity + TollTax + nightCharges + extraLuggageCharges,
	}
}

// ApplyPaymentAdjustment maps a payment method to its total transform:
// cash gets 10% off, paypal adds a 1% surcharge, everything else passes
// through. Callers must apply it at most once per reservation.
func ApplyPaymentAdjustment(total float64, method string) float64 {
	switch method {
	case models.PayCash:
		return total * 0.90
	case models.PayPaypal:
		return total * 1.01
	default:
		return total
	}
}

// AddOnTotal prices the chosen child seats and pets. Lines without a chosen
// type contribute nothing. Prices come from the catalog tables, not from
// whatever the client echoed back.
func (c *Catalog) AddOnTotal(sel models.AddOnSelection) float64 {
	total := 0.0
	for _, seat := range sel.ChildSeats {
		price := c.ChildSeatPrice(seat.Type)
		if price == 0 {
			continue
		}
		total += price * float64(lineQuantity(seat.Quantity))
	}
	for _, pet := range sel.Pets {
		price := c.PetPrice(pet.Type)
		if price == 0 {
			continue
		}
		total += price * float64(lineQuantity(pet.Quantity))
	}
	return total
}

// QuickEstimate is the landing-panel single-step estimator: flat base plus
// add-ons plus a per-luggage charge. It never feeds the four-step flow.
func (c *Catalog) QuickEstimate(luggageCount int, sel models.AddOnSelection) float64 {
	if luggageCount < 0 {
		luggageCount = 0
	}
	return EstimateBaseFare + c.AddOnTotal(sel) + float64(luggageCount)*EstimatePerLuggage
}

func lineQuantity(q int) int {
	if q <= 0 {
		return 1
	}
	return q
}
