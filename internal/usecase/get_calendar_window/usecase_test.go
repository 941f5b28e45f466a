package get_calendar_window

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/logger"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/metrics"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Среда 2024-01-03 10:00
var now = time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)

func newUseCase(t *testing.T) *UseCase {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	templates := memory.NewAvailabilityRepository(store)
	sessions := memory.NewSessionRepository(store)

	_, err := templates.ReplaceDay(ctx, 1, 2, []domain.AvailabilitySlot{{Start: "09:00", End: "17:00", IsAvailable: true}})
	require.NoError(t, err)

	for _, s := range []*domain.Session{
		{TrainerID: 1, ClientID: 10, Date: date(2024, 1, 2), Start: "10:00", End: "11:00", Status: domain.SessionConfirmed},
		{TrainerID: 1, ClientID: 11, Date: date(2024, 1, 2), Start: "12:00", End: "13:00", Status: domain.SessionCancelled},
		{TrainerID: 1, ClientID: 12, Date: date(2024, 1, 9), Start: "12:00", End: "13:00", Status: domain.SessionCompleted},
		{TrainerID: 2, ClientID: 10, Date: date(2024, 1, 2), Start: "09:00", End: "10:00", Status: domain.SessionConfirmed},
	} {
		_, err := sessions.Create(ctx, s)
		require.NoError(t, err)
	}

	return NewUseCase(templates, sessions, metrics.New("test"), logger.NewNop()).
		WithTimeProvider(fixedTime{now: now})
}

func TestExecute_Week(t *testing.T) {
	uc := newUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{TrainerID: 1, Anchor: date(2024, 1, 3)})
	require.NoError(t, err)

	assert.Equal(t, domain.CalendarWeek, resp.Mode)
	assert.Equal(t, date(2023, 12, 31), resp.From)
	assert.Equal(t, date(2024, 1, 6), resp.To)
	assert.Equal(t, date(2023, 12, 27), resp.PrevAnchor)
	assert.Equal(t, date(2024, 1, 10), resp.NextAnchor)
	require.Len(t, resp.Days, 7)

	for i, day := range resp.Days {
		assert.Equal(t, i, day.DayOfWeek)
	}

	tuesday := resp.Days[2]
	assert.Equal(t, date(2024, 1, 2), tuesday.Date)
	require.Len(t, tuesday.Slots, 3)
	assert.True(t, tuesday.Slots[1].IsBooked)
	require.Len(t, tuesday.Sessions, 1)
	assert.Equal(t, int64(10), tuesday.Sessions[0].ClientID)

	assert.Empty(t, resp.Days[3].Slots)
	assert.Empty(t, resp.Days[3].Sessions)
}

func TestExecute_WeekNavigation(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	next, err := uc.Execute(ctx, &Request{TrainerID: 1, Anchor: date(2024, 1, 3), Nav: domain.NavNext})
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 10), next.Anchor)
	assert.Equal(t, date(2024, 1, 7), next.From)

	// Завершённая сессия показывается, но не занимает интервал
	tuesday := next.Days[2]
	require.Len(t, tuesday.Sessions, 1)
	assert.Equal(t, domain.SessionCompleted, tuesday.Sessions[0].Status)
	require.Len(t, tuesday.Slots, 1)
	assert.True(t, tuesday.Slots[0].IsFree())

	prev, err := uc.Execute(ctx, &Request{TrainerID: 1, Anchor: date(2024, 1, 3), Nav: domain.NavPrevious})
	require.NoError(t, err)
	assert.Equal(t, date(2023, 12, 24), prev.From)

	today, err := uc.Execute(ctx, &Request{TrainerID: 1, Anchor: date(2024, 3, 15), Nav: domain.NavToday})
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 3), today.Anchor)

	// Без опорной даты используется сегодняшняя
	def, err := uc.Execute(ctx, &Request{TrainerID: 1})
	require.NoError(t, err)
	assert.Equal(t, date(2023, 12, 31), def.From)
}

func TestExecute_WeekStartsOnSundayAnchor(t *testing.T) {
	uc := newUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{TrainerID: 1, Anchor: date(2024, 1, 7)})
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 7), resp.From)
	assert.Equal(t, date(2024, 1, 13), resp.To)
}

func TestExecute_Month(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	resp, err := uc.Execute(ctx, &Request{TrainerID: 1, Anchor: date(2024, 2, 15), Mode: domain.CalendarMonth})
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 1), resp.From)
	assert.Equal(t, date(2024, 2, 29), resp.To)
	assert.Len(t, resp.Days, 29)
	assert.Equal(t, date(2024, 1, 1), resp.PrevAnchor)
	assert.Equal(t, date(2024, 3, 1), resp.NextAnchor)

	// 31 января + месяц = февраль, а не 2 марта
	next, err := uc.Execute(ctx, &Request{TrainerID: 1, Anchor: date(2024, 1, 31), Mode: domain.CalendarMonth, Nav: domain.NavNext})
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 1), next.From)

	jan, err := uc.Execute(ctx, &Request{TrainerID: 1, Anchor: date(2024, 1, 20), Mode: domain.CalendarMonth})
	require.NoError(t, err)
	require.Len(t, jan.Days, 31)
	assert.Len(t, jan.Days[1].Sessions, 1)
	assert.Len(t, jan.Days[8].Sessions, 1)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{TrainerID: 1, Mode: "year"})
	assert.ErrorIs(t, err, ErrInvalidMode)

	_, err = uc.Execute(ctx, &Request{TrainerID: 1, Nav: "back"})
	assert.ErrorIs(t, err, ErrInvalidNav)

	_, err = uc.Execute(ctx, &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_TodayWestOfUTC(t *testing.T) {
	// Вторник 2024-01-02 08:00 UTC-5: сессии сегодняшней даты попадают в окно
	est := time.FixedZone("EST", -5*60*60)
	uc := newUseCase(t).WithTimeProvider(fixedTime{now: time.Date(2024, 1, 2, 8, 0, 0, 0, est)})

	resp, err := uc.Execute(context.Background(), &Request{TrainerID: 1, Nav: domain.NavToday})
	require.NoError(t, err)

	assert.Equal(t, date(2023, 12, 31), resp.From)
	tuesday := resp.Days[2]
	assert.Equal(t, date(2024, 1, 2), tuesday.Date)
	require.Len(t, tuesday.Sessions, 1)
	require.Len(t, tuesday.Slots, 3)
	assert.True(t, tuesday.Slots[1].IsBooked)
}
