package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"heaterbuddy/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	HeaterStateRowID = 1

	ensureStateSQL = `
		INSERT INTO heater_state (id, target_f, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`

	selectStateSQL = `
		SELECT id, target_f, current_f, is_on, has_sensor, updated_at
		FROM heater_state WHERE id=?
	`

	updateTargetSQL = `
		UPDATE heater_state SET target_f=?, updated_at=? WHERE id=?
	`

	updatePowerSQL = `
		UPDATE heater_state SET is_on=?, updated_at=? WHERE id=?
	`

	updateReadingSQL = `
		UPDATE heater_state SET current_f=?, has_sensor=1, updated_at=? WHERE id=?
	`
)

// utcOrNow returns t in UTC, or the current UTC time when t is zero.
func utcOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}

// Ensure creates the heater_state row with the given setpoint, powered off
// and without a reading. An existing row is left as is.
func (r *StateSQLite) Ensure(ctx context.Context, defaultTargetF int, at time.Time) error {
	if _, err := r.db.ExecContext(ctx, ensureStateSQL, HeaterStateRowID, defaultTargetF, utcOrNow(at)); err != nil {
		return fmt.Errorf("ensure heater state: %w", err)
	}
	return nil
}

// Load fetches the heater_state row. A missing row yields the zero state.
func (r *StateSQLite) Load(ctx context.Context) (models.HeaterState, error) {
	var s models.HeaterState
	err := r.db.QueryRowContext(ctx, selectStateSQL, HeaterStateRowID).Scan(
		&s.ID,
		&s.TargetF,
		&s.CurrentF,
		&s.IsOn,
		&s.HasSensor,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.HeaterState{}, nil
		}
		return models.HeaterState{}, fmt.Errorf("load heater state: %w", err)
	}
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}

// UpdateTarget stores a new setpoint without touching power or the reading.
func (r *StateSQLite) UpdateTarget(ctx context.Context, targetF int, at time.Time) error {
	return r.update(ctx, "update heater target", updateTargetSQL, targetF, utcOrNow(at), HeaterStateRowID)
}

// UpdatePower stores the power flag without touching the setpoint or the reading.
func (r *StateSQLite) UpdatePower(ctx context.Context, on bool, at time.Time) error {
	return r.update(ctx, "update heater power", updatePowerSQL, on, utcOrNow(at), HeaterStateRowID)
}

// UpdateReading stores a sensor reading without touching target or power.
func (r *StateSQLite) UpdateReading(ctx context.Context, currentF float64, at time.Time) error {
	return r.update(ctx, "update heater reading", updateReadingSQL, currentF, utcOrNow(at), HeaterStateRowID)
}

// update runs a single-row UPDATE. ErrNoState is returned when the row does
// not exist yet.
func (r *StateSQLite) update(ctx context.Context, op, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows: %w", op, err)
	}
	if n == 0 {
		return ErrNoState
	}
	return nil
}

// ErrNoState is returned when the heater_state row has not been created yet.
var ErrNoState = errors.New("heater state not initialized")
