package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/availability/models"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/types"
)

// Config настройки шаблона по умолчанию
type Config struct {
	DefaultDayStart string // начало дня, создаваемого переключателем, "09:00"
	DefaultDayEnd   string // конец дня, "17:00"
}

// Service недельный шаблон доступности тренера и его пересчёт с учётом сессий
type Service struct {
	templateRepo TemplateRepository
	sessionRepo  SessionRepository
	cache        SnapshotCache
	txManager    TransactionManager
	locker       Locker
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger

	defaultDay domain.TimeInterval
	group      singleflight.Group
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	templateRepo TemplateRepository,
	sessionRepo SessionRepository,
	cache SnapshotCache,
	txManager TransactionManager,
	locker Locker,
	metrics Metrics,
	logger Logger,
	cfg Config,
) (*Service, error) {
	if cfg.DefaultDayStart == "" {
		cfg.DefaultDayStart = domain.DefaultDayStart
	}
	if cfg.DefaultDayEnd == "" {
		cfg.DefaultDayEnd = domain.DefaultDayEnd
	}

	defaultDay, err := domain.NewTimeInterval(cfg.DefaultDayStart, cfg.DefaultDayEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: default working hours: %v", ErrInvalidInput, err)
	}

	return &Service{
		templateRepo: templateRepo,
		sessionRepo:  sessionRepo,
		cache:        cache,
		txManager:    txManager,
		locker:       locker,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
		defaultDay:   defaultDay,
	}, nil
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetTemplate возвращает шаблон тренера на всю неделю
func (s *Service) GetTemplate(ctx context.Context, trainerID int64) ([]domain.AvailabilitySlot, error) {
	if trainerID <= 0 {
		return nil, fmt.Errorf("%w: trainerID must be positive", ErrInvalidInput)
	}

	slots, err := s.templateRepo.GetByTrainer(ctx, trainerID)
	if err != nil {
		s.logger.Error("GetTemplate: repository error for trainer=%d: %v", trainerID, err)
		return nil, fmt.Errorf("%w: GetTemplate - repository error: %v", ErrInternal, err)
	}

	return slots, nil
}

// GetReconciledAvailability возвращает шаблон дня недели за вычетом активных сессий,
// назначенных на сегодня и позже в этот день недели
// Результат берётся из кэша, при промахе пересчитывается (одновременные промахи схлопываются)
func (s *Service) GetReconciledAvailability(ctx context.Context, trainerID int64, dayOfWeek int) ([]domain.AvailabilitySlot, error) {
	if err := validateTrainerDay(trainerID, dayOfWeek); err != nil {
		return nil, err
	}

	today := domain.DateOnly(s.timeProvider.Now())

	cached, ok, err := s.cache.Get(ctx, trainerID, dayOfWeek, today)
	switch {
	case err != nil:
		s.metrics.ObserveCache("error")
		s.logger.Warn("GetReconciledAvailability: cache read failed for trainer=%d, day=%d: %v", trainerID, dayOfWeek, err)
	case ok:
		s.metrics.ObserveCache("hit")
		return cached, nil
	default:
		s.metrics.ObserveCache("miss")
	}

	key := fmt.Sprintf("%d:%d:%s", trainerID, dayOfWeek, today.Format(domain.DateFormat))
	// Пересчёт общий для всех ожидающих: отмена первого вызывающего его не прерывает
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.recompute(shared, trainerID, dayOfWeek, today)
	})
	if err != nil {
		s.logger.Error("GetReconciledAvailability: failed for trainer=%d, day=%d: %v", trainerID, dayOfWeek, err)
		return nil, fmt.Errorf("%w: GetReconciledAvailability: %v", ErrInternal, err)
	}

	return v.([]domain.AvailabilitySlot), nil
}

// Refresh синхронно пересчитывает и кэширует указанные дни недели
// Вызывается явно после каждого изменения сессий или шаблона
func (s *Service) Refresh(ctx context.Context, trainerID int64, days ...int) error {
	today := domain.DateOnly(s.timeProvider.Now())

	seen := make(map[int]bool, len(days))
	var errs []error
	for _, day := range days {
		if seen[day] || domain.ValidateDayOfWeek(day) != nil {
			continue
		}
		seen[day] = true

		if _, err := s.recompute(ctx, trainerID, day, today); err != nil {
			s.logger.Error("Refresh: failed for trainer=%d, day=%d: %v", trainerID, day, err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// recompute полный пересчёт дня недели и запись в кэш
func (s *Service) recompute(ctx context.Context, trainerID int64, dayOfWeek int, today time.Time) ([]domain.AvailabilitySlot, error) {
	started := time.Now()

	template, err := s.templateRepo.GetByDay(ctx, trainerID, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}

	sessions, err := s.sessionRepo.GetByFilter(ctx, domain.SessionsFilter{
		TrainerID:  trainerID,
		StartDate:  &today,
		ActiveOnly: true,
		DayOfWeek:  &dayOfWeek,
	})
	if err != nil {
		return nil, fmt.Errorf("get sessions: %w", err)
	}

	slots, err := ReconcileDay(template, sessions)
	if err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}
	s.metrics.ObserveReconciliation("day", time.Since(started))

	if err := s.cache.Set(ctx, trainerID, dayOfWeek, today, slots); err != nil {
		s.metrics.ObserveCache("error")
		s.logger.Warn("recompute: cache write failed for trainer=%d, day=%d: %v", trainerID, dayOfWeek, err)
	}

	return slots, nil
}

// ToggleDayAvailability переключает день недели:
// - нет интервалов: создаётся один доступный интервал с рабочими часами по умолчанию
// - есть хотя бы один доступный: все становятся недоступными
// - все недоступны: все становятся доступными
func (s *Service) ToggleDayAvailability(ctx context.Context, trainerID int64, dayOfWeek int) ([]domain.AvailabilitySlot, error) {
	s.logger.Info("ToggleDayAvailability: trainer=%d, day=%d", trainerID, dayOfWeek)

	if err := validateTrainerDay(trainerID, dayOfWeek); err != nil {
		return nil, err
	}

	return s.mutateDay(ctx, "ToggleDayAvailability", trainerID, dayOfWeek, func(slots []domain.AvailabilitySlot) ([]domain.AvailabilitySlot, error) {
		if len(slots) == 0 {
			return []domain.AvailabilitySlot{{
				Start:       s.defaultDay.Start,
				End:         s.defaultDay.End,
				IsAvailable: true,
			}}, nil
		}

		makeAvailable := !HasAvailableTemplate(slots)
		for i := range slots {
			slots[i].IsAvailable = makeAvailable
		}

		// Ранее выключенные интервалы могли пересекаться между собой
		if err := checkNoOverlap(slots); err != nil {
			return nil, err
		}
		return slots, nil
	})
}

// UpsertTimeSlot добавляет интервал в день или заменяет интервал по индексу
// Доступный интервал не должен пересекаться с другими доступными интервалами дня
func (s *Service) UpsertTimeSlot(ctx context.Context, req *models.UpsertSlotRequest) ([]domain.AvailabilitySlot, error) {
	s.logger.Info("UpsertTimeSlot: trainer=%d, day=%d, %s-%s, available=%t",
		req.TrainerID, req.DayOfWeek, req.Start, req.End, req.IsAvailable)

	if err := validateTrainerDay(req.TrainerID, req.DayOfWeek); err != nil {
		return nil, err
	}

	interval, err := domain.NewTimeInterval(req.Start, req.End)
	if err != nil {
		s.logger.Warn("UpsertTimeSlot: invalid interval %s-%s: %v", req.Start, req.End, err)
		return nil, mapIntervalError(err)
	}

	return s.mutateDay(ctx, "UpsertTimeSlot", req.TrainerID, req.DayOfWeek, func(slots []domain.AvailabilitySlot) ([]domain.AvailabilitySlot, error) {
		if req.ReplaceIndex != nil {
			idx := *req.ReplaceIndex
			if idx < 0 || idx >= len(slots) {
				return nil, fmt.Errorf("%w: index %d, day has %d slots", ErrSlotIndexOutOfRange, idx, len(slots))
			}
			slots = append(slots[:idx:idx], slots[idx+1:]...)
		} else if len(slots) >= domain.MaxSlotsPerDay {
			return nil, fmt.Errorf("%w: max %d", ErrTooManySlots, domain.MaxSlotsPerDay)
		}

		candidate := domain.AvailabilitySlot{
			Start:       interval.Start,
			End:         interval.End,
			IsAvailable: req.IsAvailable,
		}

		if candidate.IsAvailable {
			for _, other := range slots {
				if other.IsAvailable && other.Interval().Overlaps(interval) {
					return nil, fmt.Errorf("%w: %s overlaps %s", ErrSlotOverlap, interval, other.Interval())
				}
			}
		}

		slots = append(slots, candidate)
		if err := sortByStart(slots); err != nil {
			return nil, err
		}
		return slots, nil
	})
}

// RemoveTimeSlot удаляет интервал дня по индексу
func (s *Service) RemoveTimeSlot(ctx context.Context, trainerID int64, dayOfWeek int, index int) ([]domain.AvailabilitySlot, error) {
	s.logger.Info("RemoveTimeSlot: trainer=%d, day=%d, index=%d", trainerID, dayOfWeek, index)

	if err := validateTrainerDay(trainerID, dayOfWeek); err != nil {
		return nil, err
	}

	return s.mutateDay(ctx, "RemoveTimeSlot", trainerID, dayOfWeek, func(slots []domain.AvailabilitySlot) ([]domain.AvailabilitySlot, error) {
		if index < 0 || index >= len(slots) {
			return nil, fmt.Errorf("%w: index %d, day has %d slots", ErrSlotIndexOutOfRange, index, len(slots))
		}
		return append(slots[:index:index], slots[index+1:]...), nil
	})
}

// mutateDay читает день, применяет изменение и атомарно заменяет день в одной транзакции,
// после фиксации пересчитывает доступность этого дня
func (s *Service) mutateDay(
	ctx context.Context,
	op string,
	trainerID int64,
	dayOfWeek int,
	apply func(slots []domain.AvailabilitySlot) ([]domain.AvailabilitySlot, error),
) ([]domain.AvailabilitySlot, error) {
	unlock := s.locker.Lock(trainerID)
	defer unlock()

	var result []domain.AvailabilitySlot

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.templateRepo.GetByDay(txCtx, trainerID, dayOfWeek)
		if err != nil {
			return fmt.Errorf("%w: %s - get day: %v", ErrInternal, op, err)
		}

		updated, err := apply(current)
		if err != nil {
			return err
		}

		saved, err := s.templateRepo.ReplaceDay(txCtx, trainerID, dayOfWeek, updated)
		if err != nil {
			return fmt.Errorf("%w: %s - replace day: %v", ErrInternal, op, err)
		}

		result = saved
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("%s: trainer=%d, day=%d: %v", op, trainerID, dayOfWeek, err)
		} else {
			s.logger.Warn("%s: rejected for trainer=%d, day=%d: %v", op, trainerID, dayOfWeek, err)
		}
		return nil, err
	}

	if err := s.Refresh(ctx, trainerID, dayOfWeek); err != nil {
		s.logger.Warn("%s: refresh after commit failed for trainer=%d: %v", op, trainerID, err)
	}

	s.logger.Info("%s: trainer=%d, day=%d now has %d slots", op, trainerID, dayOfWeek, len(result))
	return result, nil
}

func checkNoOverlap(slots []domain.AvailabilitySlot) error {
	for i := 0; i < len(slots); i++ {
		if !slots[i].IsAvailable {
			continue
		}
		for j := i + 1; j < len(slots); j++ {
			if slots[j].IsAvailable && slots[i].Interval().Overlaps(slots[j].Interval()) {
				return fmt.Errorf("%w: %s overlaps %s", ErrSlotOverlap, slots[i].Interval(), slots[j].Interval())
			}
		}
	}
	return nil
}

func validateTrainerDay(trainerID int64, dayOfWeek int) error {
	if trainerID <= 0 {
		return fmt.Errorf("%w: trainerID must be positive", ErrInvalidInput)
	}
	if err := domain.ValidateDayOfWeek(dayOfWeek); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func mapIntervalError(err error) error {
	if errors.Is(err, types.ErrInvalidFormat) {
		return fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
}
