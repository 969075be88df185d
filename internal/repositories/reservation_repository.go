package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	intconfig "carbook/internal/config"
	"carbook/internal/domain"
	"carbook/internal/domain/models"
)

// ReservationRepository persists finalized reservations. The table is
// self-provisioned on first write so a fresh database works out of the box.
type ReservationRepository struct {
	DB *sql.DB
}

func (r ReservationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ReservationRepository) EnsureSchema() error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db not available")
	}
	ddl := `
CREATE TABLE IF NOT EXISTS reservations (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	owner_id BIGINT NOT NULL,
	confirmation_number VARCHAR(50) NOT NULL,
	trip_date VARCHAR(10) NOT NULL,
	trip_time VARCHAR(8) NOT NULL,
	service_type VARCHAR(50) NOT NULL,
	ride_type VARCHAR(20) NOT NULL,
	pick_up VARCHAR(500) NOT NULL,
	drop_off VARCHAR(500) NOT NULL,
	passenger_count INT NOT NULL,
	luggage_count INT NOT NULL,
	vehicle_id VARCHAR(30) NOT NULL,
	vehicle_name VARCHAR(100) NOT NULL,
	fare_json TEXT NOT NULL,
	addons_json TEXT NOT NULL,
	personal_info_json TEXT NOT NULL,
	payment_method VARCHAR(20) NOT NULL,
	final_total DECIMAL(10,2) NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'upcoming',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_owner_confirmation (owner_id, confirmation_number),
	KEY idx_owner (owner_id),
	KEY idx_owner_trip (owner_id, trip_date, trip_time)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}

const reservationColumns = `id, owner_id, confirmation_number, trip_date, trip_time, service_type, ride_type,
	pick_up, drop_off, passenger_count, luggage_count, vehicle_id, vehicle_name,
	fare_json, addons_json, personal_info_json, payment_method, final_total, status, created_at, updated_at`

func (r ReservationRepository) Create(res models.Reservation) (int64, error) {
	if err := r.EnsureSchema(); err != nil {
		return 0, domain.InternalError{Err: err}
	}

	fareJSON, err := json.Marshal(res.Fare)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	addOnsJSON, err := json.Marshal(res.AddOns)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	infoJSON, err := json.Marshal(res.PersonalInfo)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}

	out, err := r.db().Exec(`
		INSERT INTO reservations (
			owner_id, confirmation_number, trip_date, trip_time, service_type, ride_type,
			pick_up, drop_off, passenger_count, luggage_count, vehicle_id, vehicle_name,
			fare_json, addons_json, personal_info_json, payment_method, final_total, status,
			created_at, updated_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		res.OwnerID, res.ConfirmationNumber, res.Trip.Date, res.Trip.Time, res.Trip.ServiceType, res.Trip.RideType,
		res.Trip.PickUp, res.Trip.DropOff, res.Trip.PassengerCount, res.Trip.LuggageCount, res.VehicleID, res.VehicleName,
		string(fareJSON), string(addOnsJSON), string(infoJSON), res.PaymentMethod, res.FinalTotal, res.Status,
		res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, err := out.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}

func (r ReservationRepository) GetByID(id int64) (models.Reservation, error) {
	if id <= 0 {
		return models.Reservation{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	row := r.db().QueryRow(`SELECT `+reservationColumns+` FROM reservations WHERE id=? LIMIT 1`, id)
	res, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return models.Reservation{}, domain.NotFoundError{Resource: "reservation"}
	}
	return res, err
}

// ListByOwner returns the owner's reservations sorted by trip date and time.
func (r ReservationRepository) ListByOwner(ownerID int64) ([]models.Reservation, error) {
	rows, err := r.db().Query(`
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE owner_id=?
		ORDER BY trip_date ASC, trip_time ASC, id ASC`, ownerID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// FindByConfirmation is the first duplicate-finalize probe.
func (r ReservationRepository) FindByConfirmation(ownerID int64, confirmationNumber string) (models.Reservation, bool, error) {
	row := r.db().QueryRow(`
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE owner_id=? AND confirmation_number=?
		LIMIT 1`, ownerID, confirmationNumber)
	res, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return models.Reservation{}, false, nil
	}
	if err != nil {
		return models.Reservation{}, false, domain.InternalError{Err: err}
	}
	return res, true, nil
}

// FindUpcomingTrip is the second duplicate-finalize probe: same owner, same
// slot, still upcoming.
func (r ReservationRepository) FindUpcomingTrip(ownerID int64, date, clock, pickUp, dropOff string) (models.Reservation, bool, error) {
	row := r.db().QueryRow(`
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE owner_id=? AND trip_date=? AND trip_time=? AND pick_up=? AND drop_off=? AND status=?
		LIMIT 1`, ownerID, date, clock, pickUp, dropOff, models.ReservationUpcoming)
	res, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return models.Reservation{}, false, nil
	}
	if err != nil {
		return models.Reservation{}, false, domain.InternalError{Err: err}
	}
	return res, true, nil
}

// Update applies an owner-initiated partial edit by field presence.
func (r ReservationRepository) Update(id, ownerID int64, upd models.ReservationUpdate) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}

	sets := []string{}
	args := []any{}
	if upd.Date != nil {
		sets = append(sets, "trip_date=?")
		args = append(args, strings.TrimSpace(*upd.Date))
	}
	if upd.Time != nil {
		sets = append(sets, "trip_time=?")
		args = append(args, strings.TrimSpace(*upd.Time))
	}
	if upd.PickUp != nil {
		sets = append(sets, "pick_up=?")
		args = append(args, strings.TrimSpace(*upd.PickUp))
	}
	if upd.DropOff != nil {
		sets = append(sets, "drop_off=?")
		args = append(args, strings.TrimSpace(*upd.DropOff))
	}
	if upd.PassengerCount != nil {
		sets = append(sets, "passenger_count=?")
		args = append(args, *upd.PassengerCount)
	}
	if upd.LuggageCount != nil {
		sets = append(sets, "luggage_count=?")
		args = append(args, *upd.LuggageCount)
	}
	if len(sets) == 0 {
		return domain.ValidationError{Field: "body", Msg: "no editable fields in payload"}
	}
	sets = append(sets, "updated_at=?")
	args = append(args, time.Now())
	args = append(args, id, ownerID)

	out, err := r.db().Exec(`UPDATE reservations SET `+strings.Join(sets, ",")+` WHERE id=? AND owner_id=?`, args...)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return requireRow(out)
}

// UpdateStatus transitions status, used for upcoming -> cancelled.
func (r ReservationRepository) UpdateStatus(id, ownerID int64, status string) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	out, err := r.db().Exec(`UPDATE reservations SET status=?, updated_at=? WHERE id=? AND owner_id=?`,
		status, time.Now(), id, ownerID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return requireRow(out)
}

// Delete removes the reservation permanently.
func (r ReservationRepository) Delete(id, ownerID int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	out, err := r.db().Exec(`DELETE FROM reservations WHERE id=? AND owner_id=?`, id, ownerID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return requireRow(out)
}

func requireRow(out sql.Result) error {
	n, err := out.RowsAffected()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "reservation"}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (models.Reservation, error) {
	var res models.Reservation
	var fareJSON, addOnsJSON, pJSON string
	var createdAt, updatedAt time.Time
	err := row.Scan(
		&res.ID, &res.OwnerID, &res.ConfirmationNumber, &res.Trip.Date, &res.Trip.Time,
		&res.Trip.ServiceType, &res.Trip.RideType, &res.Trip.PickUp, &res.Trip.DropOff,
		&res.Trip.PassengerCount, &res.Trip.LuggageCount, &res.VehicleID, &res.VehicleName,
		&fareJSON, &addOnsJSON, &pJSON, &res.PaymentMethod, &res.FinalTotal, &res.Status,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return models.Reservation{}, err
	}
	if err := json.Unmarshal([]byte(fareJSON), &res.Fare); err != nil {
		return models.Reservation{}, err
	}
	if err := json.Unmarshal([]byte(addOnsJSON), &res.AddOns); err != nil {
		return models.Reservation{}, err
	}
	if err := json.Unmarshal([]byte(pJSON), &res.PersonalInfo); err != nil {
		return models.Reservation{}, err
	}
	res.CreatedAt = createdAt
	res.UpdatedAt = updatedAt
	return res, nil
}
