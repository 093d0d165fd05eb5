package submission

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
)

const table = "submissions"

// DefaultPendingTTL время, после которого незавершённый резерв считается брошенным
const DefaultPendingTTL = 2 * time.Minute

// Repository журнал отправок записей в PostgreSQL
type Repository struct {
	db         DBExecutor
	pendingTTL time.Duration
}

// NewRepository создает новый экземпляр журнала отправок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db, pendingTTL: DefaultPendingTTL}
}

// WithPendingTTL задаёт срок жизни незавершённого резерва
func (r *Repository) WithPendingTTL(ttl time.Duration) *Repository {
	r.pendingTTL = ttl
	return r
}

// Reserve резервирует ключ идемпотентности за услугой и моментом записи
// Повторный вызов с тем же ключом возвращает ErrAlreadyExists.
// Резерв в статусе pending старше pendingTTL перехватывается новым вызовом.
func (r *Repository) Reserve(ctx context.Context, key string, serviceID int64, startsAt time.Time) error {
	query, args, err := psqlbuilder.Insert(table).
		Columns("idempotency_key", "service_id", "starts_at", "status").
		Values(key, serviceID, startsAt.UTC(), string(domain.SubmissionPending)).
		Suffix(
			"ON CONFLICT (idempotency_key) DO UPDATE SET "+
				"service_id = EXCLUDED.service_id, starts_at = EXCLUDED.starts_at, "+
				"created_at = NOW(), updated_at = NOW() "+
				"WHERE "+table+".status = ? AND "+table+".updated_at < NOW() - make_interval(secs => ?)",
			string(domain.SubmissionPending), r.pendingTTL.Seconds(),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reserve - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reserve - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reserve - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAlreadyExists
	}

	return nil
}

// Get получает запись журнала по ключу
func (r *Repository) Get(ctx context.Context, key string) (*domain.Submission, error) {
	query, args, err := psqlbuilder.Select(
		"idempotency_key",
		"service_id",
		"starts_at",
		"status",
		"appointment_id",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"idempotency_key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		s             domain.Submission
		status        string
		startsAt      sql.NullTime
		appointmentID sql.NullInt64
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.Key,
		&s.ServiceID,
		&startsAt,
		&status,
		&appointmentID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: Get - scan: %v", ErrScanRow, err)
	}

	s.Status = domain.SubmissionStatus(status)
	if startsAt.Valid {
		s.StartsAt = startsAt.Time.UTC()
	}
	if appointmentID.Valid {
		id := appointmentID.Int64
		s.AppointmentID = &id
	}

	return &s, nil
}

// Complete отмечает отправку завершённой и сохраняет ID созданной записи
func (r *Repository) Complete(ctx context.Context, key string, appointmentID int64) error {
	query, args, err := psqlbuilder.Update(table).
		Set("status", string(domain.SubmissionCompleted)).
		Set("appointment_id", appointmentID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"idempotency_key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Complete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Complete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Release снимает резерв с незавершённой отправки
// Завершённые отправки не удаляются
func (r *Repository) Release(ctx context.Context, key string) error {
	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{
			"idempotency_key": key,
			"status":          string(domain.SubmissionPending),
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Release - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
