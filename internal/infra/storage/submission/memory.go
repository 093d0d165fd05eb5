package submission

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// MemoryRepository журнал отправок в памяти процесса
type MemoryRepository struct {
	mu         sync.Mutex
	items      map[string]domain.Submission
	now        func() time.Time
	pendingTTL time.Duration
}

// NewMemoryRepository создает журнал отправок в памяти
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items:      make(map[string]domain.Submission),
		now:        time.Now,
		pendingTTL: DefaultPendingTTL,
	}
}

// WithPendingTTL задаёт срок жизни незавершённого резерва
func (r *MemoryRepository) WithPendingTTL(ttl time.Duration) *MemoryRepository {
	r.pendingTTL = ttl
	return r
}

// Reserve резервирует ключ идемпотентности
// Брошенный резерв (pending старше pendingTTL) перехватывается
func (r *MemoryRepository) Reserve(_ context.Context, key string, serviceID int64, startsAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if s, ok := r.items[key]; ok {
		stale := s.Status == domain.SubmissionPending && now.Sub(s.UpdatedAt) > r.pendingTTL
		if !stale {
			return ErrAlreadyExists
		}
	}

	r.items[key] = domain.Submission{
		Key:       key,
		ServiceID: serviceID,
		StartsAt:  startsAt.UTC(),
		Status:    domain.SubmissionPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

// Get получает запись журнала по ключу
func (r *MemoryRepository) Get(_ context.Context, key string) (*domain.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

// Complete отмечает отправку завершённой
func (r *MemoryRepository) Complete(_ context.Context, key string, appointmentID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[key]
	if !ok {
		return ErrNotFound
	}

	id := appointmentID
	s.Status = domain.SubmissionCompleted
	s.AppointmentID = &id
	s.UpdatedAt = r.now()
	r.items[key] = s
	return nil
}

// Release снимает резерв с незавершённой отправки
func (r *MemoryRepository) Release(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.items[key]; ok && s.Status == domain.SubmissionPending {
		delete(r.items, key)
	}
	return nil
}
