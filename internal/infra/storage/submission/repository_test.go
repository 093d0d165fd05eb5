package submission

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

var testStartsAt = time.Date(2024, 6, 10, 11, 15, 0, 0, time.UTC)

func TestRepository_Reserve(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO submissions (idempotency_key,service_id,starts_at,status) VALUES ($1,$2,$3,$4) `+
			`ON CONFLICT (idempotency_key) DO UPDATE SET service_id = EXCLUDED.service_id, starts_at = EXCLUDED.starts_at, `+
			`created_at = NOW(), updated_at = NOW() `+
			`WHERE submissions.status = $5 AND submissions.updated_at < NOW() - make_interval(secs => $6)`)).
		WithArgs("key-1", int64(5), testStartsAt, "pending", "pending", float64(120)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Reserve(context.Background(), "key-1", 5, testStartsAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Reserve_StoresUTC(t *testing.T) {
	repo, mock := newMockRepository(t)
	repo.WithPendingTTL(30 * time.Second)

	msk := testStartsAt.In(time.FixedZone("MSK", 3*3600))

	mock.ExpectExec(`INSERT INTO submissions`).
		WithArgs("key-1", int64(5), testStartsAt, "pending", "pending", float64(30)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Reserve(context.Background(), "key-1", 5, msk))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Reserve_AlreadyExists(t *testing.T) {
	repo, mock := newMockRepository(t)

	// Свежий pending или completed: условие DO UPDATE не выполняется
	mock.ExpectExec(`INSERT INTO submissions`).
		WithArgs("key-1", int64(5), testStartsAt, "pending", "pending", float64(120)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Reserve(context.Background(), "key-1", 5, testStartsAt)
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Reserve_ExecError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`INSERT INTO submissions`).
		WillReturnError(errors.New("connection reset"))

	err := repo.Reserve(context.Background(), "key-1", 5, testStartsAt)
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestRepository_Get(t *testing.T) {
	repo, mock := newMockRepository(t)
	created := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"idempotency_key", "service_id", "starts_at", "status", "appointment_id", "created_at", "updated_at"}).
		AddRow("key-1", int64(5), testStartsAt, "completed", int64(42), created, created)

	mock.ExpectQuery(`SELECT idempotency_key, service_id, starts_at, status, appointment_id, created_at, updated_at FROM submissions WHERE idempotency_key = \$1`).
		WithArgs("key-1").
		WillReturnRows(rows)

	s, err := repo.Get(context.Background(), "key-1")
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionCompleted, s.Status)
	require.NotNil(t, s.AppointmentID)
	assert.Equal(t, int64(42), *s.AppointmentID)
	assert.True(t, s.IsCompleted())
	assert.Equal(t, testStartsAt, s.StartsAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get_Pending(t *testing.T) {
	repo, mock := newMockRepository(t)
	created := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"idempotency_key", "service_id", "starts_at", "status", "appointment_id", "created_at", "updated_at"}).
		AddRow("key-1", int64(5), nil, "pending", nil, created, created)

	mock.ExpectQuery(`SELECT .* FROM submissions`).WithArgs("key-1").WillReturnRows(rows)

	s, err := repo.Get(context.Background(), "key-1")
	require.NoError(t, err)
	assert.Nil(t, s.AppointmentID)
	assert.True(t, s.StartsAt.IsZero())
	assert.False(t, s.IsCompleted())
}

func TestRepository_Get_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT .* FROM submissions`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_Complete(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`UPDATE submissions SET status = \$1, appointment_id = \$2, updated_at = NOW\(\) WHERE idempotency_key = \$3`).
		WithArgs("completed", int64(42), "key-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Complete(context.Background(), "key-1", 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Complete_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`UPDATE submissions`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Complete(context.Background(), "key-1", 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_Release(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`DELETE FROM submissions WHERE idempotency_key = \$1 AND status = \$2`).
		WithArgs("key-1", "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Release(context.Background(), "key-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.Get(ctx, "key-1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Reserve(ctx, "key-1", 5, testStartsAt))
	assert.ErrorIs(t, repo.Reserve(ctx, "key-1", 5, testStartsAt), ErrAlreadyExists)

	s, err := repo.Get(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionPending, s.Status)

	// Незавершённая отправка снимается с резерва
	require.NoError(t, repo.Release(ctx, "key-1"))
	_, err = repo.Get(ctx, "key-1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Reserve(ctx, "key-1", 5, testStartsAt))
	require.NoError(t, repo.Complete(ctx, "key-1", 42))

	// Завершённая отправка остаётся в журнале
	require.NoError(t, repo.Release(ctx, "key-1"))
	s, err = repo.Get(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, s.IsCompleted())
	assert.Equal(t, int64(42), *s.AppointmentID)

	assert.ErrorIs(t, repo.Complete(ctx, "missing", 1), ErrNotFound)
}

func TestMemoryRepository_StalePendingIsTakenOver(t *testing.T) {
	now := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
	repo := NewMemoryRepository().WithPendingTTL(time.Minute)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Reserve(ctx, "key-1", 5, testStartsAt))

	now = now.Add(30 * time.Second)
	assert.ErrorIs(t, repo.Reserve(ctx, "key-1", 5, testStartsAt), ErrAlreadyExists)

	// Процесс упал, резерв не сняли
	now = now.Add(time.Minute)
	later := testStartsAt.Add(15 * time.Minute)
	require.NoError(t, repo.Reserve(ctx, "key-1", 5, later))

	s, err := repo.Get(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, later, s.StartsAt)

	// Завершённая отправка не перехватывается никогда
	require.NoError(t, repo.Complete(ctx, "key-1", 42))
	now = now.Add(time.Hour)
	assert.ErrorIs(t, repo.Reserve(ctx, "key-1", 5, later), ErrAlreadyExists)
}
