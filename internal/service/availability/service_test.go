package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	cache "github.com/m04kA/SMC-TrainerScheduleService/internal/infra/cache/availability"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/availability/models"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/keymutex"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/logger"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/ptr"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	svc      *Service
	sessions *memory.SessionRepository
	cache    *cache.MemoryCache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	sessions := memory.NewSessionRepository(store)
	snapshots := cache.NewMemoryCache()

	svc, err := NewService(
		memory.NewAvailabilityRepository(store),
		sessions,
		snapshots,
		memory.NewTxManager(store),
		keymutex.New[int64](),
		metrics.New("test"),
		logger.NewNop(),
		Config{},
	)
	require.NoError(t, err)

	// Понедельник 2024-01-01, следующий вторник 2024-01-02
	svc.WithTimeProvider(fixedTime{now: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)})

	return &fixture{svc: svc, sessions: sessions, cache: snapshots}
}

func TestNewService_InvalidDefaultHours(t *testing.T) {
	_, err := NewService(nil, nil, nil, nil, nil, nil, logger.NewNop(), Config{DefaultDayStart: "18:00", DefaultDayEnd: "09:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestToggleDayAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Пустой день получает рабочие часы по умолчанию
	slots, err := f.svc.ToggleDayAvailability(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].Start.String())
	assert.Equal(t, "17:00", slots[0].End.String())
	assert.True(t, slots[0].IsAvailable)

	slots, err = f.svc.ToggleDayAvailability(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.False(t, slots[0].IsAvailable)

	slots, err = f.svc.ToggleDayAvailability(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].IsAvailable)

	template, err := f.svc.GetTemplate(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, template, 1)
}

func TestToggleDayAvailability_RejectsOverlapWhenEnabling(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.UpsertTimeSlot(ctx, &models.UpsertSlotRequest{TrainerID: 1, DayOfWeek: 3, Start: "09:00", End: "12:00"})
	require.NoError(t, err)
	_, err = f.svc.UpsertTimeSlot(ctx, &models.UpsertSlotRequest{TrainerID: 1, DayOfWeek: 3, Start: "11:00", End: "13:00"})
	require.NoError(t, err)

	_, err = f.svc.ToggleDayAvailability(ctx, 1, 3)
	assert.ErrorIs(t, err, ErrSlotOverlap)

	// Шаблон не изменился
	template, err := f.svc.GetTemplate(ctx, 1)
	require.NoError(t, err)
	require.Len(t, template, 2)
	assert.False(t, template[0].IsAvailable)
	assert.False(t, template[1].IsAvailable)
}

func TestToggleDayAvailability_InvalidDay(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ToggleDayAvailability(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpsertTimeSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.UpsertTimeSlot(ctx, &models.UpsertSlotRequest{TrainerID: 1, DayOfWeek: 2, Start: "13:00", End: "17:00", IsAvailable: true})
	require.NoError(t, err)

	slots, err := f.svc.UpsertTimeSlot(ctx, &models.UpsertSlotRequest{TrainerID: 1, DayOfWeek: 2, Start: "09:00", End: "12:00", IsAvailable: true})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "09:00", slots[0].Start.String())
	assert.Equal(t, "13:00", slots[1].Start.String())

	t.Run("overlapping available slot is rejected", func(t *testing.T) {
		_, err := f.svc.UpsertTimeSlot(ctx, &models.UpsertSlotRequest{TrainerID: 1, DayOfWeek: 2, Start: "11:00", End: "14:00", IsAvailable: true})
		assert.ErrorIs(t, err, ErrSlotOverlap)
	})

	t.Run("overlapping unavailable slot is accepted", func(t *testing.T) {
		slots, err := f.svc.UpsertTimeSlot(ctx, &models.UpsertSlotRequest{TrainerID: 1, DayOfWeek: 2, Start: "11:00", End: "14:00"})
		require.NoError(t, err)
		assert.Len(t, slots, 3)
	})

	t.Run("replace by index", func(t *testing.T) {
		slots, err := f.svc.UpsertTimeSlot(ctx, &models.UpsertSlotRequest{
			TrainerID: 1, DayOfWeek: 2, Start: "08:00", End: "12:00", IsAvailable: true, ReplaceIndex: ptr.Ptr(0),
		})
		require.NoError(t, err)
		require.Len(t, slots, 3)
		assert.Equal(t, "08:00", slots[0].Start.String())
	})

	t.Run("replace index out of range", func(t *testing.T) {
		_, err := f.svc.UpsertTimeSlot(ctx, &models.UpsertSlotRequest{
			TrainerID: 1, DayOfWeek: 2, Start: "08:00", End: "09:00", ReplaceIndex: ptr.Ptr(5),
		})
		assert.ErrorIs(t, err, ErrSlotIndexOutOfRange)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := f.svc.UpsertTimeSlot(ctx, &models.UpsertSlotRequest{TrainerID: 1, DayOfWeek: 2, Start: "12:00", End: "11:00"})
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("malformed time", func(t *testing.T) {
		_, err := f.svc.UpsertTimeSlot(ctx, &models.UpsertSlotRequest{TrainerID: 1, DayOfWeek: 2, Start: "9am", End: "11:00"})
		assert.ErrorIs(t, err, ErrInvalidTime)
	})
}

func TestRemoveTimeSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.UpsertTimeSlot(ctx, &models.UpsertSlotRequest{TrainerID: 1, DayOfWeek: 2, Start: "09:00", End: "12:00", IsAvailable: true})
	require.NoError(t, err)
	_, err = f.svc.UpsertTimeSlot(ctx, &models.UpsertSlotRequest{TrainerID: 1, DayOfWeek: 2, Start: "13:00", End: "17:00", IsAvailable: true})
	require.NoError(t, err)

	slots, err := f.svc.RemoveTimeSlot(ctx, 1, 2, 0)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "13:00", slots[0].Start.String())

	_, err = f.svc.RemoveTimeSlot(ctx, 1, 2, 1)
	assert.ErrorIs(t, err, ErrSlotIndexOutOfRange)
}

func TestGetReconciledAvailability_SessionSplitsAndCancellationFrees(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ToggleDayAvailability(ctx, 1, 2)
	require.NoError(t, err)

	booked, err := f.sessions.Create(ctx, &domain.Session{
		TrainerID: 1, ClientID: 10, Date: tuesday, Start: "10:00", End: "11:00", Status: domain.SessionConfirmed,
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.Refresh(ctx, 1, 2))

	slots, err := f.svc.GetReconciledAvailability(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "09:00-10:00", slots[0].Interval().String())
	assert.True(t, slots[0].IsFree())
	assert.Equal(t, "10:00-11:00", slots[1].Interval().String())
	assert.True(t, slots[1].IsBooked)
	require.NotNil(t, slots[1].SessionID)
	assert.Equal(t, booked.ID, *slots[1].SessionID)
	assert.Equal(t, "11:00-17:00", slots[2].Interval().String())

	require.NoError(t, f.sessions.UpdateStatus(ctx, booked.ID, domain.SessionCancelled))
	require.NoError(t, f.svc.Refresh(ctx, 1, 2))

	slots, err = f.svc.GetReconciledAvailability(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00-17:00", slots[0].Interval().String())
	assert.True(t, slots[0].IsFree())
}

func TestGetReconciledAvailability_ServedFromSnapshotUntilRefresh(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ToggleDayAvailability(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.Len())

	// Запись в обход сервиса не видна, пока не вызван Refresh
	_, err = f.sessions.Create(ctx, &domain.Session{
		TrainerID: 1, ClientID: 10, Date: tuesday, Start: "10:00", End: "11:00", Status: domain.SessionPending,
	})
	require.NoError(t, err)

	slots, err := f.svc.GetReconciledAvailability(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, slots, 1)

	require.NoError(t, f.svc.Refresh(ctx, 1, 2, 2))
	slots, err = f.svc.GetReconciledAvailability(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, slots, 3)
}

func TestGetReconciledAvailability_IgnoresPastDates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ToggleDayAvailability(ctx, 1, 2)
	require.NoError(t, err)

	_, err = f.sessions.Create(ctx, &domain.Session{
		TrainerID: 1, ClientID: 10, Date: tuesday.AddDate(0, 0, -7), Start: "10:00", End: "11:00", Status: domain.SessionConfirmed,
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.Refresh(ctx, 1, 2))

	slots, err := f.svc.GetReconciledAvailability(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].IsFree())
}

func TestGetReconciledAvailability_OrphanSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.sessions.Create(ctx, &domain.Session{
		TrainerID: 1, ClientID: 10, Date: tuesday, Start: "10:00", End: "11:00", Status: domain.SessionConfirmed,
	})
	require.NoError(t, err)

	slots, err := f.svc.GetReconciledAvailability(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.False(t, slots[0].IsAvailable)
	assert.True(t, slots[0].IsBooked)
	assert.Equal(t, 2, slots[0].DayOfWeek)
}

func TestGetReconciledAvailability_TodayWestOfUTC(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Вторник 2024-01-02 08:00 по Нью-Йорку
	est := time.FixedZone("EST", -5*60*60)
	f.svc.WithTimeProvider(fixedTime{now: time.Date(2024, 1, 2, 8, 0, 0, 0, est)})

	_, err := f.svc.ToggleDayAvailability(ctx, 1, 2)
	require.NoError(t, err)

	sessionDate, err := domain.ParseDate("2024-01-02")
	require.NoError(t, err)
	_, err = f.sessions.Create(ctx, &domain.Session{
		TrainerID: 1, ClientID: 10, Date: sessionDate, Start: "10:00", End: "11:00", Status: domain.SessionConfirmed,
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.Refresh(ctx, 1, 2))

	slots, err := f.svc.GetReconciledAvailability(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.True(t, slots[1].IsBooked)
}

// ctxTemplates шаблоны, учитывающие отмену контекста
type ctxTemplates struct {
	*memory.AvailabilityRepository
}

func (r ctxTemplates) GetByDay(ctx context.Context, trainerID int64, dayOfWeek int) ([]domain.AvailabilitySlot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.AvailabilityRepository.GetByDay(ctx, trainerID, dayOfWeek)
}

func TestGetReconciledAvailability_RecomputeIgnoresCallerCancellation(t *testing.T) {
	store := memory.NewStore()
	templates := memory.NewAvailabilityRepository(store)
	snapshots := cache.NewMemoryCache()

	_, err := templates.ReplaceDay(context.Background(), 1, 2, []domain.AvailabilitySlot{{Start: "09:00", End: "17:00", IsAvailable: true}})
	require.NoError(t, err)

	svc, err := NewService(
		ctxTemplates{templates},
		memory.NewSessionRepository(store),
		snapshots,
		memory.NewTxManager(store),
		keymutex.New[int64](),
		metrics.New("test"),
		logger.NewNop(),
		Config{},
	)
	require.NoError(t, err)
	svc.WithTimeProvider(fixedTime{now: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)})

	// Общий пересчёт завершается и попадает в кэш для остальных ожидающих
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slots, err := svc.GetReconciledAvailability(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, 1, snapshots.Len())
}
