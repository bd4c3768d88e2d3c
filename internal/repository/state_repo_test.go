package repository_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"heaterbuddy/internal/models"
	"heaterbuddy/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

func newStateRepo(t *testing.T) (*repository.StateSQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewStateSQLite(db), mock
}

func TestStateSQLite_Ensure_FillsUpdatedAtWhenZero(t *testing.T) {
	repo, mock := newStateRepo(t)

	isRecentUTC := argMatcher(func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		if !ok || tm.Location() != time.UTC {
			return false
		}
		now := time.Now().UTC()
		return !tm.Before(now.Add(-5*time.Second)) && !tm.After(now.Add(5*time.Second))
	})

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT(id) DO NOTHING")).
		WithArgs(1, 70, isRecentUTC).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Ensure(context.Background(), 70, time.Time{}); err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStateSQLite_Ensure_ExistingRowIsNotAnError(t *testing.T) {
	repo, mock := newStateRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO heater_state")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Ensure(context.Background(), 70, time.Now()); err != nil {
		t.Fatalf("Ensure() on existing row error = %v", err)
	}
}

func TestStateSQLite_Ensure_WrapsExecError(t *testing.T) {
	repo, mock := newStateRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO heater_state")).
		WillReturnError(errors.New("db down"))

	err := repo.Ensure(context.Background(), 70, time.Time{})
	if err == nil || !regexp.MustCompile("ensure heater state: db down").MatchString(err.Error()) {
		t.Fatalf("Ensure() expected wrapped error, got %v", err)
	}
}

func TestStateSQLite_UpdateTarget_ConvertsGivenTimeToUTC(t *testing.T) {
	repo, mock := newStateRepo(t)

	locTokyo, _ := time.LoadLocation("Asia/Tokyo")
	given := time.Date(2025, 4, 23, 12, 0, 0, 0, locTokyo)

	isExactUTC := argMatcher(func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		return ok && tm.Equal(given) && tm.Location() == time.UTC
	})

	mock.ExpectExec(regexp.QuoteMeta("UPDATE heater_state SET target_f=?, updated_at=? WHERE id=?")).
		WithArgs(65, isExactUTC, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateTarget(context.Background(), 65, given); err != nil {
		t.Fatalf("UpdateTarget() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStateSQLite_UpdatePower_OnlyTouchesPowerColumn(t *testing.T) {
	repo, mock := newStateRepo(t)
	at := time.Date(2025, 4, 23, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE heater_state SET is_on=?, updated_at=? WHERE id=?")).
		WithArgs(true, at, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePower(context.Background(), true, at); err != nil {
		t.Fatalf("UpdatePower() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStateSQLite_Updates_MissingRowAndExecErrors(t *testing.T) {
	at := time.Date(2025, 4, 23, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()

	tests := []struct {
		name    string
		run     func(r *repository.StateSQLite) error
		wantMsg string
	}{
		{"target", func(r *repository.StateSQLite) error { return r.UpdateTarget(ctx, 72, at) }, "update heater target: db down"},
		{"power", func(r *repository.StateSQLite) error { return r.UpdatePower(ctx, false, at) }, "update heater power: db down"},
	}
	for _, tt := range tests {
		t.Run(tt.name+" missing row", func(t *testing.T) {
			repo, mock := newStateRepo(t)
			mock.ExpectExec(regexp.QuoteMeta("UPDATE heater_state")).
				WillReturnResult(sqlmock.NewResult(0, 0))
			if err := tt.run(repo); !errors.Is(err, repository.ErrNoState) {
				t.Fatalf("expected ErrNoState, got %v", err)
			}
		})
		t.Run(tt.name+" exec error", func(t *testing.T) {
			repo, mock := newStateRepo(t)
			mock.ExpectExec(regexp.QuoteMeta("UPDATE heater_state")).
				WillReturnError(errors.New("db down"))
			if err := tt.run(repo); err == nil || err.Error() != tt.wantMsg {
				t.Fatalf("expected %q, got %v", tt.wantMsg, err)
			}
		})
	}
}

func TestStateSQLite_Load_NoRowsReturnsZeroState(t *testing.T) {
	repo, mock := newStateRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, target_f, current_f, is_on, has_sensor, updated_at")).
		WithArgs(1).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if got != (models.HeaterState{}) {
		t.Fatalf("Load() expected zero state, got %+v", got)
	}
}

func TestStateSQLite_Load_HappyPath(t *testing.T) {
	repo, mock := newStateRepo(t)

	locNY, _ := time.LoadLocation("America/New_York")
	nonUTC := time.Date(2025, 4, 23, 8, 30, 0, 0, locNY)

	rows := sqlmock.NewRows([]string{"id", "target_f", "current_f", "is_on", "has_sensor", "updated_at"}).
		AddRow(1, 72, 68.45, true, true, nonUTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, target_f, current_f, is_on, has_sensor, updated_at")).
		WithArgs(1).
		WillReturnRows(rows)

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if got.ID != 1 || got.TargetF != 72 || got.CurrentF != 68.45 || !got.IsOn || !got.HasSensor {
		t.Fatalf("Load() unexpected fields: %+v", got)
	}
	if got.UpdatedAt.Location() != time.UTC || !got.UpdatedAt.Equal(nonUTC) {
		t.Fatalf("Load() UpdatedAt not normalized: %v", got.UpdatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStateSQLite_UpdateReading(t *testing.T) {
	at := time.Date(2025, 4, 23, 10, 0, 0, 0, time.UTC)

	t.Run("updates sensor columns", func(t *testing.T) {
		repo, mock := newStateRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE heater_state SET current_f=?, has_sensor=1, updated_at=? WHERE id=?")).
			WithArgs(66.5, at, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.UpdateReading(context.Background(), 66.5, at); err != nil {
			t.Fatalf("UpdateReading() error = %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})

	t.Run("missing row reports ErrNoState", func(t *testing.T) {
		repo, mock := newStateRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE heater_state")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateReading(context.Background(), 66.5, at)
		if !errors.Is(err, repository.ErrNoState) {
			t.Fatalf("expected ErrNoState, got %v", err)
		}
	})
}

type argMatcher func(v driver.Value) bool

func (f argMatcher) Match(v driver.Value) bool { return f(v) }
