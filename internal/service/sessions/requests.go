package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	requestRepo "github.com/m04kA/SMC-TrainerScheduleService/internal/infra/storage/request"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions/models"
)

// CreateRequest создаёт заявку клиента на сессию
// Конфликты не проверяются: их проверяет тренер при одобрении
func (s *Service) CreateRequest(ctx context.Context, req *models.CreateRequestRequest) (*models.RequestResponse, error) {
	s.logger.Info("CreateRequest: client=%d, trainer=%d, date=%s, %s-%s",
		req.ClientID, req.TrainerID, req.Date.Format(domain.DateFormat), req.Start, req.End)

	start, end, err := validateCreateRequest(req)
	if err != nil {
		s.logger.Warn("CreateRequest: validation failed: %v", err)
		return nil, err
	}

	created, err := s.requestRepo.Create(ctx, &domain.SessionRequest{
		TrainerID:      req.TrainerID,
		ClientID:       req.ClientID,
		RequestedDate:  domain.DateOnly(req.Date),
		RequestedStart: start,
		RequestedEnd:   end,
		Status:         domain.RequestPending,
		Message:        req.Message,
	})
	if err != nil {
		s.logger.Error("CreateRequest: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateRequest - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateRequest: successfully created request id=%d", created.ID)
	return models.FromDomainRequest(created), nil
}

// ApproveRequest одобряет заявку: проверяет интервал и создаёт подтверждённую сессию
// Если вердикт содержит ошибки, возвращается *ValidationError и ничего не меняется
func (s *Service) ApproveRequest(ctx context.Context, trainerID, requestID int64) (*models.ApproveResult, error) {
	s.logger.Info("ApproveRequest: request id=%d by trainer=%d", requestID, trainerID)

	// Предварительное чтение: ранний 404 и имя клиента до блокировки
	pre, err := s.getOwnedRequest(ctx, "ApproveRequest", trainerID, requestID)
	if err != nil {
		return nil, err
	}
	name := s.clientName(ctx, pre.ClientID)

	var (
		approved *domain.SessionRequest
		session  *domain.Session
		verdict  *domain.ValidationVerdict
	)

	err = s.mutate(ctx, "approve", trainerID, func(txCtx context.Context, out *outcome) error {
		r, err := s.getOwnedRequest(txCtx, "ApproveRequest", trainerID, requestID)
		if err != nil {
			return err
		}

		if !r.IsPending() {
			s.logger.Warn("ApproveRequest: request id=%d is already %s", requestID, r.Status)
			return ErrRequestNotPending
		}

		verdict, err = s.validate(txCtx, trainerID, r.RequestedDate, r.RequestedStart, r.RequestedEnd, nil)
		if err != nil {
			s.logger.Warn("ApproveRequest: request id=%d rejected: %v", requestID, err)
			return err
		}

		created, err := s.sessionRepo.Create(txCtx, &domain.Session{
			TrainerID:  trainerID,
			ClientID:   r.ClientID,
			ClientName: name,
			Date:       r.RequestedDate,
			Start:      r.RequestedStart,
			End:        r.RequestedEnd,
			Status:     domain.SessionConfirmed,
			RequestID:  &r.ID,
		})
		if err != nil {
			s.logger.Error("ApproveRequest: failed to create session: %v", err)
			return fmt.Errorf("%w: ApproveRequest - create session: %v", ErrInternal, err)
		}

		if err := s.requestRepo.MarkApproved(txCtx, r.ID, created.ID); err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotPending
			}
			s.logger.Error("ApproveRequest: failed to mark request id=%d approved: %v", requestID, err)
			return fmt.Errorf("%w: ApproveRequest - mark approved: %v", ErrInternal, err)
		}

		r.Status = domain.RequestApproved
		r.SessionID = &created.ID
		approved, session = r, created

		out.days = []int{domain.DayOfWeekOf(r.RequestedDate)}
		n := domain.NewNotification(domain.NotificationApproved, trainerID, r.ClientID,
			fmt.Sprintf("Your session request for %s was approved", describe(r.RequestedDate, r.RequestedStart, r.RequestedEnd)),
			s.timeProvider.Now())
		n.SessionID = &created.ID
		n.RequestID = &r.ID
		out.notification = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ApproveRequest: request id=%d approved, session id=%d created", requestID, session.ID)
	return &models.ApproveResult{
		Request:  models.FromDomainRequest(approved),
		Session:  models.FromDomainSession(session),
		Warnings: models.WarningsOf(verdict),
	}, nil
}

// DeclineRequest отклоняет заявку; отклонение окончательное
func (s *Service) DeclineRequest(ctx context.Context, trainerID, requestID int64, reason *string) (*models.RequestResponse, error) {
	s.logger.Info("DeclineRequest: request id=%d by trainer=%d", requestID, trainerID)

	if err := validateReason(reason); err != nil {
		s.logger.Warn("DeclineRequest: validation failed: %v", err)
		return nil, err
	}

	var declined *domain.SessionRequest

	err := s.mutate(ctx, "decline", trainerID, func(txCtx context.Context, out *outcome) error {
		r, err := s.getOwnedRequest(txCtx, "DeclineRequest", trainerID, requestID)
		if err != nil {
			return err
		}

		if !r.IsPending() {
			s.logger.Warn("DeclineRequest: request id=%d is already %s", requestID, r.Status)
			return ErrRequestNotPending
		}

		if err := s.requestRepo.MarkDeclined(txCtx, r.ID, reason); err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotPending
			}
			s.logger.Error("DeclineRequest: failed to mark request id=%d declined: %v", requestID, err)
			return fmt.Errorf("%w: DeclineRequest - mark declined: %v", ErrInternal, err)
		}

		r.Status = domain.RequestDeclined
		r.DeclineReason = reason
		declined = r

		msg := fmt.Sprintf("Your session request for %s was declined", describe(r.RequestedDate, r.RequestedStart, r.RequestedEnd))
		if reason != nil && *reason != "" {
			msg += ": " + *reason
		}
		n := domain.NewNotification(domain.NotificationDeclined, trainerID, r.ClientID, msg, s.timeProvider.Now())
		n.RequestID = &r.ID
		out.notification = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("DeclineRequest: request id=%d declined", requestID)
	return models.FromDomainRequest(declined), nil
}
