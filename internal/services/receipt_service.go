package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"carbook/internal/domain"
	"carbook/internal/domain/models"
	"carbook/internal/utils"
)

// ReceiptService renders the printable booking confirmation for a persisted
// reservation.
type ReceiptService struct {
	Store     ReservationStore
	RequestID string
	Loader    func(int64) (models.Reservation, error)
}

var paymentMethodNames = map[string]string{
	models.PayCash:    "Cash",
	models.PayCard:    "Credit/Debit Card",
	models.PayPaypal:  "PayPal",
	models.PayZelle:   "Zelle",
	models.PayCashApp: "CashApp",
	models.PayVenmo:   "Venmo",
}

func PaymentMethodName(method string) string {
	if name, ok := paymentMethodNames[method]; ok {
		return name
	}
	return "Not specified"
}

func (s ReceiptService) GenerateReceipt(id, ownerID int64) ([]byte, string, error) {
	res, err := s.loadReservation(id, ownerID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "receipt", "generate", fmt.Sprintf("reservation_id=%d", id))
	return buildReceiptPDF(res)
}

func (s ReceiptService) loadReservation(id, ownerID int64) (models.Reservation, error) {
	if s.Loader != nil {
		return s.Loader(id)
	}
	res, err := s.Store.GetByID(id)
	if err != nil {
		return models.Reservation{}, err
	}
	if ownerID > 0 && res.OwnerID != ownerID {
		return models.Reservation{}, domain.NotFoundError{Resource: "reservation"}
	}
	return res, nil
}

func buildReceiptPDF(res models.Reservation) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Confirmation", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING CONFIRMATION")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Confirmation : "+safe(res.ConfirmationNumber, "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Status       : "+safe(res.Status, "-"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Trip Details")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Date / Time   : %s %s", safe(res.Trip.Date, "-"), safe(res.Trip.Time, "-")),
		fmt.Sprintf("Service       : %s (%s)", safe(res.Trip.ServiceType, "-"), safe(res.Trip.RideType, "-")),
		fmt.Sprintf("Pick-Up       : %s", safe(res.Trip.PickUp, "-")),
		fmt.Sprintf("Drop-Off      : %s", safe(res.Trip.DropOff, "-")),
		fmt.Sprintf("Passengers    : %d", res.Trip.PassengerCount),
		fmt.Sprintf("Luggage       : %d", res.Trip.LuggageCount),
		fmt.Sprintf("Vehicle       : %s", safe(res.VehicleName, "-")),
		fmt.Sprintf("Passenger     : %s", safe(res.PersonalInfo.PassengerName, "-")),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Payment Summary")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	fare := []string{
		"Estimated Fare       : " + utils.FormatUSD(res.Fare.EstimatedFare),
		"Gratuity (20%)       : " + utils.FormatUSD(res.Fare.Gratuity),
		"Toll Tax             : " + utils.FormatUSD(res.Fare.TollTax),
	}
	if res.Fare.NightCharges > 0 {
		fare = append(fare, "Night Charges        : "+utils.FormatUSD(res.Fare.NightCharges))
	}
	if res.Fare.ExtraLuggage > 0 {
		fare = append(fare, fmt.Sprintf("Extra Luggage (%d)    : %s", res.Fare.ExtraLuggage, utils.FormatUSD(res.Fare.ExtraLuggageCharges)))
	}
	fare = append(fare,
		"Total Fare           : "+utils.FormatUSD(res.Fare.Total),
		"Payment Method       : "+PaymentMethodName(res.PaymentMethod),
		"Final Payable        : "+utils.FormatUSD(res.FinalTotal),
	)
	for _, l := range fare {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Thank you for choosing Boston Luxury Express! For any questions or changes, please contact us with your confirmation number.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%s.pdf", safeFilenamePart(res.ConfirmationNumber))
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func safeFilenamePart(s string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	out := replacer.Replace(strings.TrimSpace(s))
	if out == "" {
		return "receipt"
	}
	return out
}
