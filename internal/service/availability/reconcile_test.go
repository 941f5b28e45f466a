package availability

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/types"
)

var tuesday = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func slot(id int64, start, end string, available bool) domain.AvailabilitySlot {
	return domain.AvailabilitySlot{
		ID:          id,
		TrainerID:   1,
		DayOfWeek:   2,
		Start:       types.TimeString(start),
		End:         types.TimeString(end),
		IsAvailable: available,
	}
}

func session(id int64, start, end string, status domain.SessionStatus) *domain.Session {
	return &domain.Session{
		ID:        id,
		TrainerID: 1,
		ClientID:  100 + id,
		Date:      tuesday,
		Start:     types.TimeString(start),
		End:       types.TimeString(end),
		Status:    status,
	}
}

type part struct {
	start, end string
	booked     bool
}

func parts(slots []domain.AvailabilitySlot) []part {
	result := make([]part, len(slots))
	for i, s := range slots {
		result[i] = part{start: s.Start.String(), end: s.End.String(), booked: s.IsBooked}
	}
	return result
}

func TestReconcileDay(t *testing.T) {
	tests := []struct {
		name     string
		template []domain.AvailabilitySlot
		sessions []*domain.Session
		want     []part
	}{
		{
			name:     "no sessions keeps interval free",
			template: []domain.AvailabilitySlot{slot(1, "09:00", "17:00", true)},
			want:     []part{{"09:00", "17:00", false}},
		},
		{
			name:     "session in the middle",
			template: []domain.AvailabilitySlot{slot(1, "09:00", "17:00", true)},
			sessions: []*domain.Session{session(1, "10:00", "11:00", domain.SessionConfirmed)},
			want:     []part{{"09:00", "10:00", false}, {"10:00", "11:00", true}, {"11:00", "17:00", false}},
		},
		{
			name:     "session at the edges",
			template: []domain.AvailabilitySlot{slot(1, "09:00", "12:00", true)},
			sessions: []*domain.Session{
				session(1, "09:00", "10:00", domain.SessionConfirmed),
				session(2, "11:00", "12:00", domain.SessionPending),
			},
			want: []part{{"09:00", "10:00", true}, {"10:00", "11:00", false}, {"11:00", "12:00", true}},
		},
		{
			name:     "session sticking out is clipped",
			template: []domain.AvailabilitySlot{slot(1, "09:00", "12:00", true)},
			sessions: []*domain.Session{session(1, "11:30", "13:00", domain.SessionConfirmed)},
			want:     []part{{"09:00", "11:30", false}, {"11:30", "12:00", true}},
		},
		{
			name:     "overlapping sessions do not produce overlapping parts",
			template: []domain.AvailabilitySlot{slot(1, "09:00", "17:00", true)},
			sessions: []*domain.Session{
				session(2, "10:30", "12:00", domain.SessionConfirmed),
				session(1, "10:00", "11:00", domain.SessionConfirmed),
				session(3, "10:15", "10:45", domain.SessionPending),
			},
			want: []part{{"09:00", "10:00", false}, {"10:00", "11:00", true}, {"11:00", "12:00", true}, {"12:00", "17:00", false}},
		},
		{
			name:     "inactive sessions are ignored",
			template: []domain.AvailabilitySlot{slot(1, "09:00", "17:00", true)},
			sessions: []*domain.Session{
				session(1, "10:00", "11:00", domain.SessionCancelled),
				session(2, "12:00", "13:00", domain.SessionCompleted),
			},
			want: []part{{"09:00", "17:00", false}},
		},
		{
			name:     "unavailable slot passes through unsplit",
			template: []domain.AvailabilitySlot{slot(1, "09:00", "12:00", false), slot(2, "13:00", "17:00", true)},
			sessions: []*domain.Session{session(1, "13:00", "14:00", domain.SessionConfirmed)},
			want:     []part{{"09:00", "12:00", false}, {"13:00", "14:00", true}, {"14:00", "17:00", false}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReconcileDay(tt.template, tt.sessions)
			require.NoError(t, err)
			assert.Equal(t, tt.want, parts(got))
		})
	}
}

func TestReconcileDay_BookedPartsCarrySessionID(t *testing.T) {
	got, err := ReconcileDay(
		[]domain.AvailabilitySlot{slot(7, "09:00", "12:00", true)},
		[]*domain.Session{session(42, "10:00", "11:00", domain.SessionConfirmed)},
	)
	require.NoError(t, err)
	require.Len(t, got, 3)

	require.NotNil(t, got[1].SessionID)
	assert.Equal(t, int64(42), *got[1].SessionID)
	assert.Nil(t, got[0].SessionID)
	for _, s := range got {
		assert.Equal(t, int64(7), s.ID, "sub-intervals keep the template slot id")
	}
}

func TestReconcileDay_SessionOutsideTemplateIsRendered(t *testing.T) {
	got, err := ReconcileDay(
		[]domain.AvailabilitySlot{slot(1, "09:00", "12:00", true)},
		[]*domain.Session{session(5, "18:00", "19:00", domain.SessionConfirmed)},
	)
	require.NoError(t, err)
	require.Len(t, got, 2)

	orphan := got[1]
	assert.Equal(t, "18:00", orphan.Start.String())
	assert.True(t, orphan.IsBooked)
	assert.False(t, orphan.IsAvailable)
	assert.Equal(t, 2, orphan.DayOfWeek)
}

func TestReconcileDay_MalformedSession(t *testing.T) {
	_, err := ReconcileDay(
		[]domain.AvailabilitySlot{slot(1, "09:00", "12:00", true)},
		[]*domain.Session{session(1, "10", "11:00", domain.SessionConfirmed)},
	)
	assert.ErrorIs(t, err, types.ErrInvalidFormat)
}

// Свойства: подинтервалы каждого доступного интервала покрывают его целиком без
// наложений, а повторный запуск даёт тот же результат
func TestReconcileDay_PartitionAndIdempotence(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for iter := 0; iter < 200; iter++ {
		template := []domain.AvailabilitySlot{
			slot(1, "06:00", "11:00", true),
			slot(2, "12:00", "20:00", true),
		}

		sessions := make([]*domain.Session, 0)
		for i := 0; i < rng.Intn(8); i++ {
			start := 5*60 + rng.Intn(15*60)
			length := 15 + rng.Intn(180)
			end := min(start+length, types.MinutesPerDay-1)
			s, _ := types.FromMinutes(start)
			e, _ := types.FromMinutes(end)
			sessions = append(sessions, session(int64(i+1), s.String(), e.String(), domain.SessionConfirmed))
		}

		first, err := ReconcileDay(template, sessions)
		require.NoError(t, err)
		second, err := ReconcileDay(template, sessions)
		require.NoError(t, err)
		require.Equal(t, first, second)

		for _, tmpl := range template {
			ts, te, _ := tmpl.Interval().Bounds()
			cursor := ts
			for _, p := range first {
				if p.ID != tmpl.ID || !p.IsAvailable {
					continue
				}
				ps, pe, _ := p.Interval().Bounds()
				require.Equal(t, cursor, ps, "gap or overlap in template slot %d", tmpl.ID)
				require.Less(t, ps, pe)
				cursor = pe
			}
			require.Equal(t, te, cursor, "template slot %d not fully covered", tmpl.ID)
		}
	}
}

func TestReconcileDate(t *testing.T) {
	template := []domain.AvailabilitySlot{
		slot(1, "09:00", "17:00", true),
		{ID: 2, TrainerID: 1, DayOfWeek: 3, Start: "09:00", End: "12:00", IsAvailable: true},
	}
	own := session(1, "10:00", "11:00", domain.SessionConfirmed)
	nextWeek := session(2, "12:00", "13:00", domain.SessionConfirmed)
	nextWeek.Date = tuesday.AddDate(0, 0, 7)

	t.Run("only exact date and its weekday", func(t *testing.T) {
		got, err := ReconcileDate(template, []*domain.Session{own, nextWeek}, tuesday, nil)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "10:00-11:00", got[1].Interval().String())
		assert.True(t, got[1].IsBooked)
	})

	t.Run("excluded session frees its interval", func(t *testing.T) {
		got, err := ReconcileDate(template, []*domain.Session{own}, tuesday, &own.ID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].IsFree())
	})
}
