package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carbook/internal/domain/models"
	"carbook/internal/pricing"
	"carbook/internal/utils"
)

// GET /api/catalog/vehicles
func GetVehicles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"vehicles": catalog.Vehicles()})
}

// GET /api/catalog/airports
func GetAirports(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"airports": pricing.Airports()})
}

// GET /api/catalog/addons
func GetAddOnPrices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"childSeats": gin.H{
			models.SeatInfant:  catalog.ChildSeatPrice(models.SeatInfant),
			models.SeatRegular: catalog.ChildSeatPrice(models.SeatRegular),
			models.SeatBooster: catalog.ChildSeatPrice(models.SeatBooster),
		},
		"pets": gin.H{
			models.PetDog: catalog.PetPrice(models.PetDog),
			models.PetCat: catalog.PetPrice(models.PetCat),
		},
	})
}

type estimateRequest struct {
	LuggageCount int                   `json:"luggageCount"`
	AddOns       models.AddOnSelection `json:"addOns"`
}

// POST /api/estimate implements the landing-panel quick estimator. It is a
// display-only figure; the four-step flow recomputes everything per vehicle.
func GetQuickEstimate(c *gin.Context) {
	var req estimateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	total := catalog.QuickEstimate(req.LuggageCount, req.AddOns)
	c.JSON(http.StatusOK, gin.H{
		"totalFare": utils.FormatMoney(total),
	})
}
