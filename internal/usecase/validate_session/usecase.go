package validate_session

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/availability"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/tracing"
)

// UseCase проверка предлагаемой сессии на конфликты
// Вызывается напрямую (эндпоинт validate) и внутри транзакций жизненного цикла сессий
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

// Execute возвращает вердикт: ошибки блокируют сессию, предупреждения нет
// Ошибка возвращается только для некорректного формата входа и внутренних сбоев
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.ValidationVerdict, error) {
	ctx, span := tracing.Start(ctx, "validate_session.Execute", trace.WithAttributes(
		attribute.Int64("trainer.id", req.TrainerID),
		attribute.String("session.date", req.Date.Format(domain.DateFormat)),
		attribute.String("session.start", req.Start.String()),
		attribute.String("session.end", req.End.String()),
	))
	defer span.End()

	uc.logger.Info("ValidateSession: trainer=%d, date=%s, %s-%s",
		req.TrainerID, req.Date.Format(domain.DateFormat), req.Start, req.End)

	// 1. Валидация формата
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidateSession: validation failed: %v", err)
		tracing.RecordError(span, err)
		return nil, err
	}

	verdict := domain.NewVerdict()
	proposed := domain.TimeInterval{Start: req.Start, End: req.End}

	// 2. Конец не позже начала: дальнейшие проверки бессмысленны
	if !req.End.IsAfter(req.Start) {
		verdict.AddError(msgEndBeforeStart)
		uc.finish(span, verdict)
		return verdict, nil
	}

	date := domain.DateOnly(req.Date)
	dayOfWeek := domain.DayOfWeekOf(date)

	// 3. Активные сессии на эту дату (внутри транзакции под FOR UPDATE)
	sessions, err := uc.sessionRepo.GetByFilter(ctx, domain.SessionsFilter{
		TrainerID:  req.TrainerID,
		StartDate:  &date,
		EndDate:    &date,
		ActiveOnly: true,
		ExcludeID:  req.ExcludeSessionID,
	})
	if err != nil {
		uc.logger.Error("ValidateSession: failed to get sessions: %v", err)
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("%w: failed to get sessions: %v", ErrInternal, err)
	}

	checkSessionConflicts(verdict, proposed, sessions)

	// 4. Доступность по шаблону с учётом сессий этой даты
	template, err := uc.templateRepo.GetByDay(ctx, req.TrainerID, dayOfWeek)
	if err != nil {
		uc.logger.Error("ValidateSession: failed to get template: %v", err)
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("%w: failed to get template: %v", ErrInternal, err)
	}

	reconciled, err := availability.ReconcileDate(template, sessions, date, req.ExcludeSessionID)
	if err != nil {
		uc.logger.Error("ValidateSession: reconciliation failed: %v", err)
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("%w: reconciliation failed: %v", ErrInternal, err)
	}

	checkAvailability(verdict, proposed, dayOfWeek, template, reconciled)

	// 5. Время в будущем и предупреждения
	now := uc.timeProvider.Now()
	checkTemporal(verdict, date, req.Start, now)
	addAdvisoryWarnings(verdict, date, req.Start, now)

	uc.finish(span, verdict)
	return verdict, nil
}

func (uc *UseCase) finish(span trace.Span, verdict *domain.ValidationVerdict) {
	uc.metrics.ObserveVerdict(verdict.IsValid)
	span.SetAttributes(
		attribute.Bool("verdict.valid", verdict.IsValid),
		attribute.Int("verdict.errors", len(verdict.Errors)),
		attribute.Int("verdict.warnings", len(verdict.Warnings)),
	)

	if verdict.IsValid {
		uc.logger.Info("ValidateSession: valid, %d warnings", len(verdict.Warnings))
		return
	}
	uc.logger.Info("ValidateSession: rejected: %v", verdict.Errors)
}

// startOf момент начала сессии в часовом поясе текущего времени
func startOf(date time.Time, start int, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), start/60, start%60, 0, 0, loc)
}
