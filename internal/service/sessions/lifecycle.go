package sessions

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions/models"
)

// CreateSession создаёт подтверждённую сессию от имени тренера (без заявки клиента)
func (s *Service) CreateSession(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionResult, error) {
	s.logger.Info("CreateSession: trainer=%d, client=%d, date=%s, %s-%s",
		req.TrainerID, req.ClientID, req.Date.Format(domain.DateFormat), req.Start, req.End)

	start, end, err := validateCreateSession(req)
	if err != nil {
		s.logger.Warn("CreateSession: validation failed: %v", err)
		return nil, err
	}

	name, err := s.knownClientName(ctx, req.ClientID)
	if err != nil {
		s.logger.Warn("CreateSession: client=%d: %v", req.ClientID, err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)

	var (
		created *domain.Session
		verdict *domain.ValidationVerdict
	)

	err = s.mutate(ctx, "create", req.TrainerID, func(txCtx context.Context, out *outcome) error {
		v, err := s.validate(txCtx, req.TrainerID, date, start, end, nil)
		if err != nil {
			s.logger.Warn("CreateSession: rejected: %v", err)
			return err
		}
		verdict = v

		session, err := s.sessionRepo.Create(txCtx, &domain.Session{
			TrainerID:  req.TrainerID,
			ClientID:   req.ClientID,
			ClientName: name,
			Date:       date,
			Start:      start,
			End:        end,
			Status:     domain.SessionConfirmed,
			Category:   req.Category,
			Location:   req.Location,
			Notes:      req.Notes,
		})
		if err != nil {
			s.logger.Error("CreateSession: repository error: %v", err)
			return fmt.Errorf("%w: CreateSession - repository error: %v", ErrInternal, err)
		}

		created = session
		out.days = []int{domain.DayOfWeekOf(date)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CreateSession: successfully created session id=%d", created.ID)
	return &models.SessionResult{
		Session:  models.FromDomainSession(created),
		Warnings: models.WarningsOf(verdict),
	}, nil
}

// CancelSession отменяет активную сессию; интервал освобождается при пересчёте
func (s *Service) CancelSession(ctx context.Context, trainerID, sessionID int64, reason *string) (*models.SessionResponse, error) {
	s.logger.Info("CancelSession: session id=%d by trainer=%d", sessionID, trainerID)

	if err := validateReason(reason); err != nil {
		s.logger.Warn("CancelSession: validation failed: %v", err)
		return nil, err
	}

	var cancelled *domain.Session

	err := s.mutate(ctx, "cancel", trainerID, func(txCtx context.Context, out *outcome) error {
		session, err := s.getOwnedSession(txCtx, "CancelSession", trainerID, sessionID)
		if err != nil {
			return err
		}

		if !session.CanBeCancelled() {
			s.logger.Warn("CancelSession: session id=%d cannot be cancelled, status=%s", sessionID, session.Status)
			return ErrCannotCancel
		}

		now := s.timeProvider.Now()
		if err := s.sessionRepo.Cancel(txCtx, sessionID, reason, now); err != nil {
			return s.mapSessionErr("CancelSession", sessionID, err)
		}

		session.Status = domain.SessionCancelled
		session.CancellationReason = reason
		session.CancelledAt = &now
		session.UpdatedAt = now
		cancelled = session

		out.days = []int{domain.DayOfWeekOf(session.Date)}
		msg := fmt.Sprintf("Your session on %s was cancelled", describe(session.Date, session.Start, session.End))
		if reason != nil && *reason != "" {
			msg += ": " + *reason
		}
		n := domain.NewNotification(domain.NotificationCancelled, trainerID, session.ClientID, msg, now)
		n.SessionID = &session.ID
		out.notification = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CancelSession: successfully cancelled session id=%d", sessionID)
	return models.FromDomainSession(cancelled), nil
}

// RescheduleSession переносит активную сессию на новые дату и время
// Новый интервал проверяется без учёта самой сессии; при ошибках прежние значения сохраняются
func (s *Service) RescheduleSession(ctx context.Context, req *models.RescheduleSessionRequest) (*models.SessionResult, error) {
	s.logger.Info("RescheduleSession: session id=%d by trainer=%d to %s %s-%s",
		req.SessionID, req.TrainerID, req.Date.Format(domain.DateFormat), req.Start, req.End)

	start, end, err := validateReschedule(req)
	if err != nil {
		s.logger.Warn("RescheduleSession: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)

	var (
		moved   *domain.Session
		verdict *domain.ValidationVerdict
	)

	err = s.mutate(ctx, "reschedule", req.TrainerID, func(txCtx context.Context, out *outcome) error {
		session, err := s.getOwnedSession(txCtx, "RescheduleSession", req.TrainerID, req.SessionID)
		if err != nil {
			return err
		}

		if !session.CanBeRescheduled() {
			s.logger.Warn("RescheduleSession: session id=%d cannot be rescheduled, status=%s", req.SessionID, session.Status)
			return ErrCannotReschedule
		}

		verdict, err = s.validate(txCtx, req.TrainerID, date, start, end, &session.ID)
		if err != nil {
			s.logger.Warn("RescheduleSession: session id=%d rejected: %v", req.SessionID, err)
			return err
		}

		if err := s.sessionRepo.Reschedule(txCtx, session.ID, date, start, end); err != nil {
			return s.mapSessionErr("RescheduleSession", req.SessionID, err)
		}

		previous := describe(session.Date, session.Start, session.End)
		oldDay := domain.DayOfWeekOf(session.Date)

		session.Date, session.Start, session.End = date, start, end
		session.UpdatedAt = s.timeProvider.Now()
		moved = session

		out.days = []int{oldDay, domain.DayOfWeekOf(date)}
		n := domain.NewNotification(domain.NotificationRescheduled, req.TrainerID, session.ClientID,
			fmt.Sprintf("Your session on %s was moved to %s", previous, describe(date, start, end)),
			session.UpdatedAt)
		n.SessionID = &session.ID
		out.notification = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("RescheduleSession: successfully rescheduled session id=%d", req.SessionID)
	return &models.SessionResult{
		Session:  models.FromDomainSession(moved),
		Warnings: models.WarningsOf(verdict),
	}, nil
}

// CompleteSession отмечает подтверждённую сессию проведённой
func (s *Service) CompleteSession(ctx context.Context, trainerID, sessionID int64) (*models.SessionResponse, error) {
	s.logger.Info("CompleteSession: session id=%d by trainer=%d", sessionID, trainerID)

	var completed *domain.Session

	err := s.mutate(ctx, "complete", trainerID, func(txCtx context.Context, out *outcome) error {
		session, err := s.getOwnedSession(txCtx, "CompleteSession", trainerID, sessionID)
		if err != nil {
			return err
		}

		if !session.CanBeCompleted() {
			s.logger.Warn("CompleteSession: session id=%d cannot be completed, status=%s", sessionID, session.Status)
			return ErrCannotComplete
		}

		if err := s.sessionRepo.UpdateStatus(txCtx, sessionID, domain.SessionCompleted); err != nil {
			return s.mapSessionErr("CompleteSession", sessionID, err)
		}

		session.Status = domain.SessionCompleted
		session.UpdatedAt = s.timeProvider.Now()
		completed = session

		out.days = []int{domain.DayOfWeekOf(session.Date)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CompleteSession: session id=%d completed", sessionID)
	return models.FromDomainSession(completed), nil
}
