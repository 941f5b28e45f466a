package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-TrainerScheduleService/internal/infra/storage/session"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/types"
)

// SessionRepository сессии в памяти, ошибки совпадают с Postgres репозиторием
type SessionRepository struct {
	store *Store
}

func NewSessionRepository(store *Store) *SessionRepository {
	return &SessionRepository{store: store}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextSessionID++
	now := r.store.now()

	s.ID = r.store.nextSessionID
	r.store.rememberSession(ctx, s.ID)
	s.Date = domain.DateOnly(s.Date)
	s.CreatedAt = now
	s.UpdatedAt = now

	r.store.sessions[s.ID] = copySession(s)
	return s, nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.sessions[id]
	if !ok {
		return nil, sessionRepo.ErrSessionNotFound
	}
	return copySession(s), nil
}

func (r *SessionRepository) GetByFilter(ctx context.Context, filter domain.SessionsFilter) ([]*domain.Session, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Session, 0)
	for _, s := range r.store.sessions {
		if filter.Matches(s) {
			result = append(result, copySession(s))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Start != b.Start {
			return a.Start.IsBefore(b.Start)
		}
		if a.End != b.End {
			return a.End.IsBefore(b.End)
		}
		return a.ID < b.ID
	})

	return result, nil
}

func (r *SessionRepository) Reschedule(ctx context.Context, id int64, date time.Time, start, end types.TimeString) error {
	return r.update(ctx, id, func(s *domain.Session) {
		s.Date = domain.DateOnly(date)
		s.Start = start
		s.End = end
	})
}

func (r *SessionRepository) UpdateStatus(ctx context.Context, id int64, status domain.SessionStatus) error {
	return r.update(ctx, id, func(s *domain.Session) {
		s.Status = status
	})
}

func (r *SessionRepository) Cancel(ctx context.Context, id int64, reason *string, cancelledAt time.Time) error {
	return r.update(ctx, id, func(s *domain.Session) {
		s.Status = domain.SessionCancelled
		s.CancellationReason = reason
		s.CancelledAt = &cancelledAt
	})
}

func (r *SessionRepository) update(ctx context.Context, id int64, apply func(s *domain.Session)) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s, ok := r.store.sessions[id]
	if !ok {
		return sessionRepo.ErrSessionNotFound
	}
	r.store.rememberSession(ctx, id)
	apply(s)
	s.UpdatedAt = r.store.now()
	return nil
}
