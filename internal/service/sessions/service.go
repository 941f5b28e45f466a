package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	requestRepo "github.com/m04kA/SMC-TrainerScheduleService/internal/infra/storage/request"
	sessionRepo "github.com/m04kA/SMC-TrainerScheduleService/internal/infra/storage/session"
	userClient "github.com/m04kA/SMC-TrainerScheduleService/internal/integrations/userservice"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions/models"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/usecase/validate_session"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/tracing"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/types"
)

// Service жизненный цикл заявок и сессий тренера
//
// Все изменения расписания одного тренера выполняются по одному: под блокировкой
// тренера и в сериализуемой транзакции. Проверка конфликтов выполняется внутри
// той же транзакции, поэтому второе одобрение пересекающейся заявки видит первое.
// После фиксации доступность пересчитывается, клиенту отправляется уведомление.
type Service struct {
	sessionRepo  SessionRepository
	requestRepo  RequestRepository
	validator    Validator
	availability AvailabilityRefresher
	notifier     Notifier
	userClient   UserServiceClient
	txManager    TransactionManager
	locker       Locker
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewService создает новый экземпляр сервиса сессий
// notifier и userClient опциональны (nil - интеграция выключена)
func NewService(
	sessionRepo SessionRepository,
	requestRepo RequestRepository,
	validator Validator,
	availability AvailabilityRefresher,
	notifier Notifier,
	userClient UserServiceClient,
	txManager TransactionManager,
	locker Locker,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		sessionRepo:  sessionRepo,
		requestRepo:  requestRepo,
		validator:    validator,
		availability: availability,
		notifier:     notifier,
		userClient:   userClient,
		txManager:    txManager,
		locker:       locker,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetSession получает сессию тренера по ID
func (s *Service) GetSession(ctx context.Context, trainerID, sessionID int64) (*models.SessionResponse, error) {
	s.logger.Info("GetSession: fetching session id=%d for trainer=%d", sessionID, trainerID)

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, s.mapSessionErr("GetSession", sessionID, err)
	}

	if session.TrainerID != trainerID {
		s.logger.Warn("GetSession: session id=%d belongs to trainer=%d, not %d", sessionID, session.TrainerID, trainerID)
		return nil, ErrSessionNotFound
	}

	return models.FromDomainSession(session), nil
}

// ListSessions получает сессии тренера с фильтрацией по периоду и статусу
func (s *Service) ListSessions(ctx context.Context, req *models.ListSessionsRequest) (*models.SessionListResponse, error) {
	s.logger.Info("ListSessions: fetching sessions for trainer=%d, status=%v", req.TrainerID, req.Status)

	if req.TrainerID <= 0 {
		return nil, fmt.Errorf("%w: trainerID must be positive", ErrInvalidInput)
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListSessions: invalid filter for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sessions, err := s.sessionRepo.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListSessions: repository error for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: ListSessions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListSessions: successfully fetched %d sessions for trainer=%d", len(sessions), req.TrainerID)
	return models.FromDomainSessionList(sessions), nil
}

// ListRequests получает входящие заявки тренера, опционально по статусу
func (s *Service) ListRequests(ctx context.Context, trainerID int64, status *string) (*models.RequestListResponse, error) {
	s.logger.Info("ListRequests: fetching requests for trainer=%d, status=%v", trainerID, status)

	var domainStatus *domain.RequestStatus
	if status != nil {
		st, err := models.ToDomainRequestStatus(*status)
		if err != nil {
			s.logger.Warn("ListRequests: invalid status=%s for trainer=%d", *status, trainerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &st
	}

	requests, err := s.requestRepo.GetByTrainer(ctx, trainerID, domainStatus)
	if err != nil {
		s.logger.Error("ListRequests: repository error for trainer=%d: %v", trainerID, err)
		return nil, fmt.Errorf("%w: ListRequests - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListRequests: successfully fetched %d requests for trainer=%d", len(requests), trainerID)
	return models.FromDomainRequestList(requests), nil
}

// outcome последствия успешного изменения
type outcome struct {
	days         []int                // дни недели для пересчёта доступности
	notification *domain.Notification // уведомление клиенту
}

// mutate выполняет изменение под блокировкой тренера в сериализуемой транзакции,
// затем пересчитывает доступность и отправляет уведомление
func (s *Service) mutate(ctx context.Context, op string, trainerID int64, fn func(txCtx context.Context, out *outcome) error) error {
	ctx, span := tracing.Start(ctx, "sessions."+op)
	defer span.End()

	unlock := s.locker.Lock(trainerID)
	defer unlock()

	var out outcome
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// При повторе сериализуемой транзакции результат предыдущей попытки отбрасывается
		out = outcome{}
		return fn(txCtx, &out)
	})
	s.metrics.ObserveTransition(op, err)
	if err != nil {
		tracing.RecordError(span, err)
		return err
	}

	if len(out.days) > 0 {
		if err := s.availability.Refresh(ctx, trainerID, out.days...); err != nil {
			s.logger.Warn("%s: availability refresh failed for trainer=%d: %v", op, trainerID, err)
		}
	}

	if out.notification != nil {
		s.notify(ctx, out.notification)
	}

	return nil
}

// notify отправляет уведомление; ошибка отправки не влияет на результат операции
func (s *Service) notify(ctx context.Context, n *domain.Notification) {
	if s.notifier == nil {
		return
	}

	err := s.notifier.Notify(ctx, n)
	s.metrics.ObserveNotification(string(n.Kind), err)
	if err != nil {
		s.logger.Error("Notify: failed to send %s notification id=%s to client=%d: %v", n.Kind, n.ID, n.ClientID, err)
		return
	}
	s.logger.Info("Notify: sent %s notification id=%s to client=%d", n.Kind, n.ID, n.ClientID)
}

// validate запускает проверку конфликтов внутри текущей транзакции
func (s *Service) validate(
	ctx context.Context,
	trainerID int64,
	date time.Time,
	start, end types.TimeString,
	excludeSessionID *int64,
) (*domain.ValidationVerdict, error) {
	verdict, err := s.validator.Execute(ctx, &validate_session.Request{
		TrainerID:        trainerID,
		Date:             date,
		Start:            start,
		End:              end,
		ExcludeSessionID: excludeSessionID,
	})
	if err != nil {
		if errors.Is(err, validate_session.ErrInvalidTime) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTime, err)
		}
		if errors.Is(err, validate_session.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: validation: %v", ErrInternal, err)
	}

	if !verdict.IsValid {
		return verdict, &ValidationError{Verdict: verdict}
	}
	return verdict, nil
}

// clientName имя клиента из UserService с graceful degradation: при любой ошибке имя пустое
func (s *Service) clientName(ctx context.Context, clientID int64) string {
	if s.userClient == nil {
		return ""
	}

	name, err := s.userClient.GetClientName(ctx, clientID)
	if err != nil {
		s.logger.Warn("clientName: using fallback name for client=%d: %v", clientID, err)
		return ""
	}

	return name
}

// knownClientName как clientName, но неизвестный UserService клиент - ошибка
func (s *Service) knownClientName(ctx context.Context, clientID int64) (string, error) {
	if s.userClient == nil {
		return "", nil
	}

	name, err := s.userClient.GetClientName(ctx, clientID)
	if err != nil {
		if errors.Is(err, userClient.ErrClientNotFound) {
			return "", ErrClientNotFound
		}
		s.logger.Warn("knownClientName: using fallback name for client=%d: %v", clientID, err)
		return "", nil
	}

	return name, nil
}

// getOwnedSession получает сессию и проверяет, что она принадлежит тренеру
func (s *Service) getOwnedSession(ctx context.Context, op string, trainerID, sessionID int64) (*domain.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, s.mapSessionErr(op, sessionID, err)
	}

	// Чужая сессия неотличима от несуществующей
	if session.TrainerID != trainerID {
		s.logger.Warn("%s: session id=%d belongs to trainer=%d, not %d", op, sessionID, session.TrainerID, trainerID)
		return nil, ErrSessionNotFound
	}

	return session, nil
}

// getOwnedRequest получает заявку и проверяет, что она адресована тренеру
func (s *Service) getOwnedRequest(ctx context.Context, op string, trainerID, requestID int64) (*domain.SessionRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("%s: request id=%d not found", op, requestID)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("%s: repository error for request id=%d: %v", op, requestID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if req.TrainerID != trainerID {
		s.logger.Warn("%s: request id=%d belongs to trainer=%d, not %d", op, requestID, req.TrainerID, trainerID)
		return nil, ErrRequestNotFound
	}

	return req, nil
}

func (s *Service) mapSessionErr(op string, sessionID int64, err error) error {
	if errors.Is(err, sessionRepo.ErrSessionNotFound) {
		s.logger.Warn("%s: session id=%d not found", op, sessionID)
		return ErrSessionNotFound
	}
	s.logger.Error("%s: repository error for session id=%d: %v", op, sessionID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// describe "2024-01-02 10:00-11:00"
func describe(date time.Time, start, end types.TimeString) string {
	return fmt.Sprintf("%s %s-%s", date.Format(domain.DateFormat), start, end)
}
