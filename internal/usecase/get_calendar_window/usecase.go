package get_calendar_window

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/availability"
)

// UseCase проекция недельного шаблона и сессий на окно календаря
// Только чтение: ничего не изменяет
type UseCase struct {
	templateRepo TemplateRepository
	sessionRepo  SessionRepository
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	templateRepo TemplateRepository,
	sessionRepo SessionRepository,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		templateRepo: templateRepo,
		sessionRepo:  sessionRepo,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute строит окно: для каждой даты свободные и занятые подинтервалы на эту дату
// и сессии этой даты (pending, confirmed, completed)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCalendarWindow: trainer=%d, anchor=%s, mode=%s, nav=%s",
		req.TrainerID, req.Anchor.Format(domain.DateFormat), req.Mode, req.Nav)

	// 1. Валидация входных данных
	if req.TrainerID <= 0 {
		return nil, fmt.Errorf("%w: trainerID must be positive", ErrInvalidInput)
	}
	mode, err := parseMode(req.Mode)
	if err != nil {
		uc.logger.Warn("GetCalendarWindow: invalid mode=%s", req.Mode)
		return nil, err
	}
	if err := parseNav(req.Nav); err != nil {
		uc.logger.Warn("GetCalendarWindow: invalid nav=%s", req.Nav)
		return nil, err
	}

	// 2. Опорная дата и границы окна
	today := domain.DateOnly(uc.timeProvider.Now())
	anchor := today
	if !req.Anchor.IsZero() {
		anchor = domain.DateOnly(req.Anchor)
	}
	anchor = navigate(anchor, today, mode, req.Nav)
	from, to := bounds(anchor, mode)

	// 3. Шаблон всей недели и сессии окна
	template, err := uc.templateRepo.GetByTrainer(ctx, req.TrainerID)
	if err != nil {
		uc.logger.Error("GetCalendarWindow: failed to get template: %v", err)
		return nil, fmt.Errorf("%w: failed to get template: %v", ErrInternal, err)
	}

	sessions, err := uc.sessionRepo.GetByFilter(ctx, domain.SessionsFilter{
		TrainerID: req.TrainerID,
		StartDate: &from,
		EndDate:   &to,
		Statuses:  domain.CalendarStatuses,
	})
	if err != nil {
		uc.logger.Error("GetCalendarWindow: failed to get sessions: %v", err)
		return nil, fmt.Errorf("%w: failed to get sessions: %v", ErrInternal, err)
	}

	// 4. Проекция по датам
	started := time.Now()
	days := make([]domain.DayProjection, 0, 31)
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		slots, err := availability.ReconcileDate(template, sessions, date, nil)
		if err != nil {
			uc.logger.Error("GetCalendarWindow: reconciliation failed for %s: %v", date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: reconciliation failed: %v", ErrInternal, err)
		}

		days = append(days, domain.DayProjection{
			Date:      date,
			DayOfWeek: domain.DayOfWeekOf(date),
			Slots:     slots,
			Sessions:  sessionsOn(sessions, date),
		})
	}
	uc.metrics.ObserveReconciliation(string(mode), time.Since(started))

	uc.logger.Info("GetCalendarWindow: trainer=%d, %s..%s, %d sessions",
		req.TrainerID, from.Format(domain.DateFormat), to.Format(domain.DateFormat), len(sessions))

	return &Response{
		TrainerID:  req.TrainerID,
		Mode:       mode,
		Anchor:     anchor,
		From:       from,
		To:         to,
		PrevAnchor: shift(anchor, mode, -1),
		NextAnchor: shift(anchor, mode, 1),
		Days:       days,
	}, nil
}

func sessionsOn(sessions []*domain.Session, date time.Time) []*domain.Session {
	result := make([]*domain.Session, 0)
	for _, s := range sessions {
		if domain.SameDay(s.Date, date) {
			result = append(result, s)
		}
	}
	return result
}
