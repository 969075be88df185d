package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"carbook/internal/domain/models"
	"carbook/internal/http/middleware"
	"carbook/internal/repositories"
	"carbook/internal/services"
)

// GET /api/reservations
func ListReservations(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	list, err := resSvc.List(int64(rc.OwnerID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": list})
}

// GET /api/reservations/:id
func GetReservation(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	rc := middleware.GetRequestContext(c)
	res, err := resSvc.Get(id, int64(rc.OwnerID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": res})
}

// PUT /api/reservations/:id
func UpdateReservation(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	var upd models.ReservationUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}
	rc := middleware.GetRequestContext(c)
	if err := resSvc.Edit(id, int64(rc.OwnerID), upd); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservation updated"})
}

// PUT /api/reservations/:id/cancel
func CancelReservation(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	rc := middleware.GetRequestContext(c)
	if err := resSvc.Cancel(id, int64(rc.OwnerID)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservation cancelled"})
}

// DELETE /api/reservations/:id
func DeleteReservation(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	rc := middleware.GetRequestContext(c)
	if err := resSvc.Delete(id, int64(rc.OwnerID)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservation deleted"})
}

// GET /api/reservations/:id/receipt
func GetReservationReceipt(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	rc := middleware.GetRequestContext(c)
	svc := services.ReceiptService{
		Store:     repositories.ReservationRepository{},
		RequestID: middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.GenerateReceipt(id, int64(rc.OwnerID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func reservationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid reservation id", err)
		return 0, false
	}
	return id, true
}
