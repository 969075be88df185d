package pricing

import "carbook/internal/domain/models"

// RecommendVehicle picks the default vehicle for step two, first match wins.
// The table only branches on passengerCount <= 2; anything above two
// passengers falls through to the 8-passenger minivan regardless of luggage
// (so 4 passengers with no luggage still get the largest vehicle). That is
// the documented behavior of the booking flow, kept as-is pending product
// review. The pick is advisory and the caller may override with any catalog
// vehicle.
func (c *Catalog) RecommendVehicle(passengerCount, luggageCount int) models.Vehicle {
	switch {
	case luggageCount <= 2 && passengerCount <= 2:
		return c.vehicles[0] // sedan
	case luggageCount <= 3 && passengerCount <= 2:
		return c.vehicles[2] // 6-passenger minivan
	case luggageCount <= 4 && passengerCount <= 2:
		return c.vehicles[1] // luxury SUV
	default:
		return c.vehicles[3] // 8-passenger luxury minivan
	}
}
