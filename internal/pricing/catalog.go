package pricing

import (
	"strings"

	"carbook/internal/domain/models"
)

// Static price tables for the car-service fleet. Lookup only, nothing here
// is recomputed at runtime.
const (
	TollTax     = 9.0
	NightCharge = 10.0

	// Night-charge window: pickup hour in [NightStartHour, NightEndHour).
	NightStartHour = 1
	NightEndHour   = 5

	GratuityRate = 0.20

	// Landing-panel quick estimator, separate from the four-step flow.
	EstimateBaseFare   = 50.0
	EstimatePerLuggage = 5.0

	DefaultPetDogPrice = 13.0
)

const (
	VehicleSedan   = "sedan"
	VehicleSUV     = "suv"
	VehicleMinivan = "minivan"
	VehicleRST     = "rst"
)

// Catalog bundles the fixed fleet and add-on tables. The dog price is the
// only configurable entry, pending the 13-vs-20 product decision.
type Catalog struct {
	vehicles   []models.Vehicle
	seatPrices map[string]float64
	petPrices  map[string]float64
}

func NewCatalog(petDogPrice float64) *Catalog {
	if petDogPrice <= 0 {
		petDogPrice = DefaultPetDogPrice
	}
	return &Catalog{
		vehicles: []models.Vehicle{
			{ID: VehicleSedan, Name: "2 Passenger Sedan", BaseFare: 60, MaxPassengers: 2, FreeLuggage: 2, ExtraLuggagePrice: 7},
			{ID: VehicleSUV, Name: "2 Passenger Luxury SUV", BaseFare: 105, MaxPassengers: 2, FreeLuggage: 4, ExtraLuggagePrice: 7},
			{ID: VehicleMinivan, Name: "6 Passenger MiniVan", BaseFare: 85, MaxPassengers: 6, FreeLuggage: 3, ExtraLuggagePrice: 7},
			{ID: VehicleRST, Name: "8 Passenger Luxury Minivan", BaseFare: 120, MaxPassengers: 8, FreeLuggage: 5, ExtraLuggagePrice: 7},
		},
		seatPrices: map[string]float64{
			models.SeatInfant:  13,
			models.SeatRegular: 13,
			models.SeatBooster: 9,
		},
		petPrices: map[string]float64{
			models.PetDog: petDogPrice,
			models.PetCat: 10,
		},
	}
}

// Vehicles returns the catalog in display order.
func (c *Catalog) Vehicles() []models.Vehicle {
	out := make([]models.Vehicle, len(c.vehicles))
	copy(out, c.vehicles)
	return out
}

func (c *Catalog) Vehicle(id string) (models.Vehicle, bool) {
	id = strings.TrimSpace(strings.ToLower(id))
	for _, v := range c.vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return models.Vehicle{}, false
}

func (c *Catalog) ChildSeatPrice(seatType string) float64 {
	return c.seatPrices[strings.TrimSpace(strings.ToLower(seatType))]
}

func (c *Catalog) PetPrice(petType string) float64 {
	return c.petPrices[strings.TrimSpace(strings.ToLower(petType))]
}

// Airport is a selectable drop-off for ride-to-airport trips.
type Airport struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var airports = []Airport{
	{Value: "logan", Label: "Boston Logan Airport (1 Harborside Drive, Boston, MA 02128)"},
	{Value: "manchester", Label: "Manchester-Boston Regional Airport (1 Airport Rd, Manchester, NH 03103)"},
}

func Airports() []Airport {
	out := make([]Airport, len(airports))
	copy(out, airports)
	return out
}

// ResolveDropOff expands a selected airport into its full label for
// ride-to-airport trips; otherwise the free-text drop-off wins.
func ResolveDropOff(serviceType, airport, dropOff string) string {
	if serviceType == models.ServiceRideToAirport && airport != "" {
		for _, a := range airports {
			if a.Value == airport {
				return a.Label
			}
		}
	}
	return dropOff
}
