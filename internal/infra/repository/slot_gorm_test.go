package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	domain "github.com/PolishedStudio01/salon-scheduler/internal/domain/schedule"
	"github.com/PolishedStudio01/salon-scheduler/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

// The conflict check must lock the conflicting rows themselves; Postgres
// rejects FOR UPDATE combined with an aggregate.
func TestCreateSlot_ConflictQueryLocksRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSlotGormRepository(db)

	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	slot := &models.TimeSlot{
		MasterID:  1,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    string(domain.StatusAvailable),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "time_slots" WHERE master_id = \$1 AND start_time < \$2 AND end_time > \$3 FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "master_id", "status"}).
			AddRow(7, 1, string(domain.StatusAvailable)))
	mock.ExpectRollback()

	err := repo.CreateSlot(context.Background(), slot)

	var overlap *domain.OverlapError
	require.True(t, errors.As(err, &overlap), "err = %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSlot_NoConflictInserts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSlotGormRepository(db)

	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	slot := &models.TimeSlot{
		MasterID:  1,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    string(domain.StatusAvailable),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "time_slots" WHERE master_id = \$1 AND start_time < \$2 AND end_time > \$3 FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "time_slots"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	require.NoError(t, repo.CreateSlot(context.Background(), slot))
	require.Equal(t, uint(3), slot.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBlockSlot_GuardedUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSlotGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "time_slots" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.BlockSlot(context.Background(), 5, "vacation"))
	require.NoError(t, mock.ExpectationsWereMet())
}

// Zero rows affected means the slot left the available state since the
// caller read it; the block must report that, not overwrite.
func TestBlockSlot_LostRaceReportsUnavailable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSlotGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "time_slots" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "time_slots"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow(5, string(domain.StatusBooked)))

	err := repo.BlockSlot(context.Background(), 5, "vacation")

	var unavailable *domain.SlotUnavailableError
	require.True(t, errors.As(err, &unavailable), "err = %v", err)
	require.Equal(t, domain.StatusBooked, unavailable.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}
