package handlers

import (
	"carbook/internal/booking"
	intconfig "carbook/internal/config"
	"carbook/internal/pricing"
	"carbook/internal/repositories"
	"carbook/internal/services"
)

// Package-level wiring, initialized once from main. Handlers stay plain
// functions the router can reference directly.
var (
	env       intconfig.Env
	catalog   *pricing.Catalog
	machine   *booking.Machine
	resSvc    *services.ReservationService
	draftRepo repositories.DraftRepository
)

// Configure wires the handler package against the loaded environment.
func Configure(e intconfig.Env) {
	env = e
	catalog = pricing.NewCatalog(e.PetDogPrice)
	machine = booking.NewMachine(catalog)
	resSvc = services.NewReservationService(repositories.ReservationRepository{})
	draftRepo = repositories.DraftRepository{}
}
