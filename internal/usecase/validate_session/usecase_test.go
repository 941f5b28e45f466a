package validate_session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/logger"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/types"
)

// Понедельник 2024-01-01 08:00
var now = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

var (
	tuesday  = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	thursday = time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type verdictCounter struct{ valid, invalid int }

func (c *verdictCounter) ObserveVerdict(isValid bool) {
	if isValid {
		c.valid++
		return
	}
	c.invalid++
}

type fixture struct {
	uc       *UseCase
	metrics  *verdictCounter
	booked   *domain.Session
	sessions *memory.SessionRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	templates := memory.NewAvailabilityRepository(store)
	sessions := memory.NewSessionRepository(store)

	_, err := templates.ReplaceDay(ctx, 1, 2, []domain.AvailabilitySlot{
		{Start: "05:00", End: "07:00", IsAvailable: true},
		{Start: "09:00", End: "17:00", IsAvailable: true},
	})
	require.NoError(t, err)
	_, err = templates.ReplaceDay(ctx, 1, 4, []domain.AvailabilitySlot{
		{Start: "09:00", End: "12:00", IsAvailable: true},
		{Start: "12:00", End: "15:00", IsAvailable: true},
	})
	require.NoError(t, err)
	_, err = templates.ReplaceDay(ctx, 1, 3, []domain.AvailabilitySlot{
		{Start: "09:00", End: "17:00", IsAvailable: false},
	})
	require.NoError(t, err)

	booked, err := sessions.Create(ctx, &domain.Session{
		TrainerID:  1,
		ClientID:   10,
		ClientName: "Anna",
		Date:       tuesday,
		Start:      "10:00",
		End:        "11:00",
		Status:     domain.SessionConfirmed,
	})
	require.NoError(t, err)

	counter := &verdictCounter{}
	uc := NewUseCase(templates, sessions, counter, logger.NewNop()).
		WithTimeProvider(fixedTime{now: now})

	return &fixture{uc: uc, metrics: counter, booked: booked, sessions: sessions}
}

func request(date time.Time, start, end string) *Request {
	return &Request{
		TrainerID: 1,
		Date:      date,
		Start:     types.TimeString(start),
		End:       types.TimeString(end),
	}
}

func TestExecute_DoubleBookingRejected(t *testing.T) {
	f := newFixture(t)

	verdict, err := f.uc.Execute(context.Background(), request(tuesday, "10:30", "11:30"))
	require.NoError(t, err)

	assert.False(t, verdict.IsValid)
	assert.Contains(t, verdict.Errors, "Conflicts with Anna's session 10:00-11:00")
	assert.Contains(t, verdict.Errors, msgOutsideAvailable)
	assert.Equal(t, 1, f.metrics.invalid)
}

func TestExecute_AdjacentSlotAccepted(t *testing.T) {
	f := newFixture(t)

	verdict, err := f.uc.Execute(context.Background(), request(tuesday, "11:00", "12:00"))
	require.NoError(t, err)

	assert.True(t, verdict.IsValid)
	assert.Empty(t, verdict.Errors)
	assert.Empty(t, verdict.Warnings)
	assert.Equal(t, 1, f.metrics.valid)
}

func TestExecute_ExcludedSessionDoesNotConflictWithItself(t *testing.T) {
	f := newFixture(t)

	req := request(tuesday, "10:30", "11:30")
	req.ExcludeSessionID = ptr.Ptr(f.booked.ID)

	verdict, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, verdict.IsValid, verdict.Errors)
}

func TestExecute_CancelledSessionDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sessions.UpdateStatus(context.Background(), f.booked.ID, domain.SessionCancelled))

	verdict, err := f.uc.Execute(context.Background(), request(tuesday, "10:00", "11:00"))
	require.NoError(t, err)
	assert.True(t, verdict.IsValid, verdict.Errors)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr string
	}{
		{
			name:    "end before start stops further checks",
			req:     request(tuesday, "11:00", "10:00"),
			wantErr: msgEndBeforeStart,
		},
		{
			name:    "end equals start",
			req:     request(tuesday, "11:00", "11:00"),
			wantErr: msgEndBeforeStart,
		},
		{
			name:    "no available template on that weekday",
			req:     request(tuesday.AddDate(0, 0, 1), "10:00", "11:00"),
			wantErr: "Trainer has no availability on Wednesday",
		},
		{
			name:    "weekday without any template",
			req:     request(tuesday.AddDate(0, 0, 4), "10:00", "11:00"),
			wantErr: "Trainer has no availability on Saturday",
		},
		{
			name:    "outside available hours",
			req:     request(tuesday, "16:30", "17:30"),
			wantErr: msgOutsideAvailable,
		},
		{
			name:    "spans a boundary between template intervals",
			req:     request(thursday, "11:00", "13:00"),
			wantErr: msgOutsideAvailable,
		},
		{
			name:    "in the past",
			req:     request(tuesday.AddDate(0, 0, -7), "12:00", "13:00"),
			wantErr: msgInThePast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			verdict, err := f.uc.Execute(context.Background(), tt.req)
			require.NoError(t, err)
			assert.False(t, verdict.IsValid)
			assert.Contains(t, verdict.Errors, tt.wantErr)
		})
	}
}

func TestExecute_EndBeforeStartHasSingleError(t *testing.T) {
	f := newFixture(t)

	verdict, err := f.uc.Execute(context.Background(), request(tuesday.AddDate(0, 0, -7), "11:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, []string{msgEndBeforeStart}, verdict.Errors)
}

func TestExecute_Warnings(t *testing.T) {
	t.Run("more than three months ahead", func(t *testing.T) {
		f := newFixture(t)

		verdict, err := f.uc.Execute(context.Background(), request(time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC), "12:00", "13:00"))
		require.NoError(t, err)
		assert.True(t, verdict.IsValid, verdict.Errors)
		assert.Equal(t, []string{"Session is more than 3 months in advance"}, verdict.Warnings)
	})

	t.Run("early start", func(t *testing.T) {
		f := newFixture(t)

		verdict, err := f.uc.Execute(context.Background(), request(tuesday, "05:00", "06:00"))
		require.NoError(t, err)
		assert.True(t, verdict.IsValid, verdict.Errors)
		assert.Equal(t, []string{"Session starts at 05:00, outside usual hours 06:00-22:00"}, verdict.Warnings)
	})
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request(tuesday, "9am", "11:00"))
	assert.ErrorIs(t, err, ErrInvalidTime)

	_, err = f.uc.Execute(ctx, request(tuesday, "10:00", "24:00"))
	assert.ErrorIs(t, err, ErrInvalidTime)

	req := request(tuesday, "10:00", "11:00")
	req.TrainerID = 0
	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Zero(t, f.metrics.valid+f.metrics.invalid)
}
