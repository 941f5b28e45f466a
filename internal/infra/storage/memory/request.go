package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	requestRepo "github.com/m04kA/SMC-TrainerScheduleService/internal/infra/storage/request"
)

// RequestRepository заявки клиентов в памяти
type RequestRepository struct {
	store *Store
}

func NewRequestRepository(store *Store) *RequestRepository {
	return &RequestRepository{store: store}
}

func (r *RequestRepository) Create(ctx context.Context, req *domain.SessionRequest) (*domain.SessionRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextRequestID++
	now := r.store.now()

	req.ID = r.store.nextRequestID
	r.store.rememberRequest(ctx, req.ID)
	req.RequestedDate = domain.DateOnly(req.RequestedDate)
	req.CreatedAt = now
	req.UpdatedAt = now

	r.store.requests[req.ID] = copyRequest(req)
	return req, nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*domain.SessionRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	req, ok := r.store.requests[id]
	if !ok {
		return nil, requestRepo.ErrRequestNotFound
	}
	return copyRequest(req), nil
}

func (r *RequestRepository) GetByTrainer(ctx context.Context, trainerID int64, status *domain.RequestStatus) ([]*domain.SessionRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.SessionRequest, 0)
	for _, req := range r.store.requests {
		if req.TrainerID != trainerID {
			continue
		}
		if status != nil && req.Status != *status {
			continue
		}
		result = append(result, copyRequest(req))
	}

	// Сначала новые
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID > result[j].ID
	})

	return result, nil
}

func (r *RequestRepository) MarkApproved(ctx context.Context, id int64, sessionID int64) error {
	return r.resolve(ctx, id, func(req *domain.SessionRequest) {
		req.Status = domain.RequestApproved
		req.SessionID = &sessionID
	})
}

func (r *RequestRepository) MarkDeclined(ctx context.Context, id int64, reason *string) error {
	return r.resolve(ctx, id, func(req *domain.SessionRequest) {
		req.Status = domain.RequestDeclined
		req.DeclineReason = reason
	})
}

func (r *RequestRepository) resolve(ctx context.Context, id int64, apply func(req *domain.SessionRequest)) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	req, ok := r.store.requests[id]
	if !ok || !req.IsPending() {
		return requestRepo.ErrRequestNotFound
	}
	r.store.rememberRequest(ctx, id)
	apply(req)
	req.UpdatedAt = r.store.now()
	return nil
}
