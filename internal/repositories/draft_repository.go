package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"carbook/internal/booking"
	intconfig "carbook/internal/config"
	"carbook/internal/domain"
)

// DraftRepository is the save/load pair that lets a signed-in user's
// in-progress draft survive a full page reload. One draft per owner; saving
// overwrites, finalizing or abandoning deletes.
type DraftRepository struct {
	DB *sql.DB
}

func (r DraftRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r DraftRepository) EnsureSchema() error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db not available")
	}
	ddl := `
CREATE TABLE IF NOT EXISTS booking_drafts (
	owner_id BIGINT PRIMARY KEY,
	payload TEXT NOT NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}

func (r DraftRepository) Save(ownerID int64, draft booking.Draft) error {
	if ownerID <= 0 {
		return domain.ValidationError{Field: "ownerId", Msg: "invalid owner"}
	}
	if err := r.EnsureSchema(); err != nil {
		return domain.InternalError{Err: err}
	}
	payload, err := json.Marshal(draft)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	_, err = r.db().Exec(`
		INSERT INTO booking_drafts (owner_id, payload, updated_at)
		VALUES (?,?,?)
		ON DUPLICATE KEY UPDATE payload=VALUES(payload), updated_at=VALUES(updated_at)`,
		ownerID, string(payload), time.Now())
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r DraftRepository) Load(ownerID int64) (booking.Draft, error) {
	if ownerID <= 0 {
		return booking.Draft{}, domain.ValidationError{Field: "ownerId", Msg: "invalid owner"}
	}
	var payload string
	err := r.db().QueryRow(`SELECT payload FROM booking_drafts WHERE owner_id=? LIMIT 1`, ownerID).Scan(&payload)
	if err == sql.ErrNoRows {
		return booking.Draft{}, domain.NotFoundError{Resource: "draft"}
	}
	if err != nil {
		return booking.Draft{}, domain.InternalError{Err: err}
	}
	var draft booking.Draft
	if err := json.Unmarshal([]byte(payload), &draft); err != nil {
		return booking.Draft{}, domain.InternalError{Err: err}
	}
	return draft, nil
}

func (r DraftRepository) Delete(ownerID int64) error {
	if ownerID <= 0 {
		return domain.ValidationError{Field: "ownerId", Msg: "invalid owner"}
	}
	if _, err := r.db().Exec(`DELETE FROM booking_drafts WHERE owner_id=?`, ownerID); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}
