package repository

import (
	"context"
	"database/sql"
	"time"

	"heaterbuddy/internal/models"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// StateRepo persists the single heater_state row. Each Update* statement
// writes only its own columns, so concurrent writers never overwrite each
// other's fields. Ensure must run before the first Update*.
type StateRepo interface {
	Ensure(ctx context.Context, defaultTargetF int, at time.Time) error
	Load(ctx context.Context) (models.HeaterState, error)
	UpdateTarget(ctx context.Context, targetF int, at time.Time) error
	UpdatePower(ctx context.Context, on bool, at time.Time) error
	UpdateReading(ctx context.Context, currentF float64, at time.Time) error
}

type EventRepo interface {
	Append(ctx context.Context, e models.HeaterEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.HeaterEvent, error)
}

type Repository struct {
	StateRepo StateRepo
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		StateRepo: NewStateSQLite(db),
		EventRepo: NewEventSQLite(db),
		Auth:      NewUserRepository(db),
	}
}
