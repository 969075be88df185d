package repositories

import (
	"testing"
	"time"

	"carbook/internal/domain"
	"carbook/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var reservationTestColumns = []string{
	"id", "owner_id", "confirmation_number", "trip_date", "trip_time", "service_type", "ride_type",
	"pick_up", "drop_off", "passenger_count", "luggage_count", "vehicle_id", "vehicle_name",
	"fare_json", "addons_json", "personal_info_json", "payment_method", "final_total", "status",
	"created_at", "updated_at",
}

func reservationRow() *sqlmock.Rows {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(reservationTestColumns).AddRow(
		int64(5), int64(7), "LT-AB12CD34", "2026-01-11", "14:00", "ride-to-airport", "one-way",
		"45 School St, Boston", "Boston Logan Airport (1 Harborside Drive, Boston, MA 02128)", 2, 3, "minivan", "6 Passenger MiniVan",
		`{"estimatedFare":85,"gratuity":17,"tollTax":9,"nightCharges":0,"extraLuggage":0,"extraLuggageCharges":0,"total":111}`,
		`{}`,
		`{"isTraveler":"yes","passengerName":"Jordan Pierce","email":"jordan@example.com","phone":"6175551234"}`,
		"cash", 99.9, "upcoming", now, now,
	)
}

func TestReservationCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS reservations").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO reservations").
		WillReturnResult(sqlmock.NewResult(5, 1))

	repo := ReservationRepository{DB: db}
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	id, err := repo.Create(models.Reservation{
		OwnerID:            7,
		ConfirmationNumber: "LT-AB12CD34",
		Trip: models.TripRequest{
			Date: "2026-01-11", Time: "14:00",
			ServiceType: models.ServiceRideToAirport, RideType: models.RideOneWay,
			PickUp: "45 School St, Boston", DropOff: "Boston Logan Airport (1 Harborside Drive, Boston, MA 02128)",
			PassengerCount: 2, LuggageCount: 3,
		},
		VehicleID:     "minivan",
		VehicleName:   "6 Passenger MiniVan",
		Fare:          models.FareBreakdown{EstimatedFare: 85, Gratuity: 17, TollTax: 9, Total: 111},
		PersonalInfo:  models.PersonalInfo{PassengerName: "Jordan Pierce", Email: "jordan@example.com", Phone: "6175551234"},
		PaymentMethod: models.PayCash,
		FinalTotal:    99.9,
		Status:        models.ReservationUpcoming,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if id != 5 {
		t.Fatalf("id = %d, want 5", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindByConfirmation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM reservations").
		WithArgs(int64(7), "LT-AB12CD34").
		WillReturnRows(reservationRow())

	repo := ReservationRepository{DB: db}
	res, ok, err := repo.FindByConfirmation(7, "LT-AB12CD34")
	if err != nil {
		t.Fatalf("FindByConfirmation error: %v", err)
	}
	if !ok {
		t.Fatal("existing confirmation not found")
	}
	if res.ID != 5 || res.ConfirmationNumber != "LT-AB12CD34" {
		t.Fatalf("unexpected reservation: %+v", res)
	}
	if res.Fare.Total != 111 || res.PersonalInfo.PassengerName != "Jordan Pierce" {
		t.Fatalf("json columns not decoded: fare=%+v info=%+v", res.Fare, res.PersonalInfo)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindByConfirmationMiss(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM reservations").
		WithArgs(int64(7), "LT-UNKNOWN1").
		WillReturnRows(sqlmock.NewRows(reservationTestColumns))

	repo := ReservationRepository{DB: db}
	_, ok, err := repo.FindByConfirmation(7, "LT-UNKNOWN1")
	if err != nil {
		t.Fatalf("FindByConfirmation error: %v", err)
	}
	if ok {
		t.Fatal("missing confirmation reported as found")
	}
}

func TestFindUpcomingTripFiltersStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM reservations").
		WithArgs(int64(7), "2026-01-11", "14:00", "45 School St, Boston",
			"Boston Logan Airport (1 Harborside Drive, Boston, MA 02128)", models.ReservationUpcoming).
		WillReturnRows(reservationRow())

	repo := ReservationRepository{DB: db}
	res, ok, err := repo.FindUpcomingTrip(7, "2026-01-11", "14:00", "45 School St, Boston",
		"Boston Logan Airport (1 Harborside Drive, Boston, MA 02128)")
	if err != nil {
		t.Fatalf("FindUpcomingTrip error: %v", err)
	}
	if !ok || res.ID != 5 {
		t.Fatalf("upcoming trip not matched: ok=%v res=%+v", ok, res)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateBuildsPresenceSet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE reservations SET trip_date=\\?,passenger_count=\\?,updated_at=\\?").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := ReservationRepository{DB: db}
	date := "2026-01-12"
	four := 4
	if err := repo.Update(5, 7, models.ReservationUpdate{Date: &date, PassengerCount: &four}); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateRejectsEmptyPayload(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := ReservationRepository{DB: db}
	if err := repo.Update(5, 7, models.ReservationUpdate{}); !domain.IsValidation(err) {
		t.Fatalf("empty update got %v, want validation error", err)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE reservations SET status=\\?").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := ReservationRepository{DB: db}
	if err := repo.UpdateStatus(99, 7, models.ReservationCancelled); !domain.IsNotFound(err) {
		t.Fatalf("missing row got %v, want not-found", err)
	}
}

func TestDeleteScopedToOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM reservations WHERE id=\\? AND owner_id=\\?").
		WithArgs(int64(5), int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := ReservationRepository{DB: db}
	if err := repo.Delete(5, 8); !domain.IsNotFound(err) {
		t.Fatalf("foreign delete got %v, want not-found", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
