package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carbook/internal/booking"
	"carbook/internal/domain/models"
	"carbook/internal/http/middleware"
	"carbook/internal/pricing"
	"carbook/internal/utils"
)

// The draft travels with every request and comes back updated, so the flow
// works with or without an account. Signed-in users additionally get the
// draft snapshotted server-side after each successful transition.

type tripStepRequest struct {
	Draft  *booking.Draft        `json:"draft"`
	Trip   models.TripRequest    `json:"trip"`
	AddOns models.AddOnSelection `json:"addOns"`
}

// POST /api/booking/trip
func SubmitTripStep(c *gin.Context) {
	var req tripStepRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	draft := booking.NewDraft()
	if req.Draft != nil {
		draft = *req.Draft
	}

	updated, err := machine.SubmitTrip(draft, req.Trip, req.AddOns, time.Now())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	autosaveDraft(c, updated)

	c.JSON(http.StatusOK, gin.H{
		"draft":    updated,
		"vehicles": vehicleOptions(updated),
	})
}

type vehicleStepRequest struct {
	Draft     booking.Draft `json:"draft"`
	VehicleID string        `json:"vehicleId"`
}

// POST /api/booking/vehicle
func ChooseVehicleStep(c *gin.Context) {
	var req vehicleStepRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	updated, err := machine.ChooseVehicle(req.Draft, req.VehicleID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	autosaveDraft(c, updated)

	c.JSON(http.StatusOK, gin.H{"draft": updated})
}

type personalStepRequest struct {
	Draft        booking.Draft       `json:"draft"`
	PersonalInfo models.PersonalInfo `json:"personalInfo"`
}

// POST /api/booking/personal
func SubmitPersonalStep(c *gin.Context) {
	var req personalStepRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	updated, err := machine.SubmitPersonalInfo(req.Draft, req.PersonalInfo)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	autosaveDraft(c, updated)

	c.JSON(http.StatusOK, gin.H{
		"draft":          updated,
		"paymentOptions": paymentOptions(updated),
	})
}

type paymentStepRequest struct {
	Draft         booking.Draft `json:"draft"`
	PaymentMethod string        `json:"paymentMethod"`
}

// POST /api/booking/payment
func ChoosePaymentStep(c *gin.Context) {
	var req paymentStepRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	updated, err := machine.ChoosePayment(req.Draft, req.PaymentMethod)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	autosaveDraft(c, updated)

	c.JSON(http.StatusOK, gin.H{"draft": updated})
}

type finalizeRequest struct {
	Draft              booking.Draft `json:"draft"`
	ConfirmationNumber string        `json:"confirmationNumber"`
}

// POST /api/booking/finalize
func FinalizeBooking(c *gin.Context) {
	var req finalizeRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	rc := middleware.GetRequestContext(c)
	result, err := resSvc.Finalize(req.Draft, int64(rc.OwnerID), req.ConfirmationNumber)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if result.Persisted {
		// The committed draft is done; drop the server-side snapshot.
		_ = draftRepo.Delete(int64(rc.OwnerID))
	}

	status := http.StatusCreated
	if result.Duplicate || !result.Persisted {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// GET /api/booking/draft
func LoadDraft(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	draft, err := draftRepo.Load(int64(rc.OwnerID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// PUT /api/booking/draft
func SaveDraft(c *gin.Context) {
	var req struct {
		Draft booking.Draft `json:"draft"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}
	rc := middleware.GetRequestContext(c)
	if err := draftRepo.Save(int64(rc.OwnerID), req.Draft); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "draft saved"})
}

// DELETE /api/booking/draft
func DiscardDraft(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	if err := draftRepo.Delete(int64(rc.OwnerID)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "draft discarded"})
}

func autosaveDraft(c *gin.Context, draft booking.Draft) {
	rc := middleware.GetRequestContext(c)
	if !rc.Authenticated() {
		return
	}
	if err := draftRepo.Save(int64(rc.OwnerID), draft); err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "booking", "autosave", "draft save warning: "+err.Error())
	}
}

// vehicleOptions mirrors the step-two page: every catalog vehicle with its
// breakdown against the current trip, recommended one flagged.
func vehicleOptions(draft booking.Draft) []gin.H {
	out := make([]gin.H, 0, 4)
	for _, v := range catalog.Vehicles() {
		fare := catalog.ComputeFare(draft.Trip, v)
		out = append(out, gin.H{
			"vehicle":     v,
			"fare":        fare,
			"recommended": v.ID == draft.VehicleID,
		})
	}
	return out
}

// paymentOptions mirrors the step-four tiles: the would-be payable per
// method. Display only; the adjustment is applied once, at finalization.
func paymentOptions(draft booking.Draft) []gin.H {
	if draft.Fare == nil {
		return nil
	}
	methods := []string{models.PayCash, models.PayCard, models.PayPaypal, models.PayZelle, models.PayCashApp, models.PayVenmo}
	out := make([]gin.H, 0, len(methods))
	for _, m := range methods {
		out = append(out, gin.H{
			"method": m,
			"total":  utils.RoundMoney(pricing.ApplyPaymentAdjustment(draft.Fare.Total, m)),
		})
	}
	return out
}
