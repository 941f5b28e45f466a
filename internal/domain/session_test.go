package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TrainerScheduleService/pkg/ptr"
)

func TestSessionsFilter_Matches(t *testing.T) {
	tuesday := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	s := &Session{ID: 5, TrainerID: 1, Date: tuesday, Status: SessionConfirmed}

	tests := []struct {
		name   string
		filter SessionsFilter
		want   bool
	}{
		{name: "trainer only", filter: SessionsFilter{TrainerID: 1}, want: true},
		{name: "other trainer", filter: SessionsFilter{TrainerID: 2}, want: false},
		{name: "single date", filter: SessionsFilter{TrainerID: 1, StartDate: &tuesday, EndDate: &tuesday}, want: true},
		{name: "excluded", filter: SessionsFilter{TrainerID: 1, ExcludeID: ptr.Ptr(int64(5))}, want: false},
		{name: "weekday match", filter: SessionsFilter{TrainerID: 1, DayOfWeek: ptr.Ptr(2)}, want: true},
		{name: "weekday mismatch", filter: SessionsFilter{TrainerID: 1, DayOfWeek: ptr.Ptr(3)}, want: false},
		{name: "status list", filter: SessionsFilter{TrainerID: 1, Statuses: []SessionStatus{SessionCompleted}}, want: false},
		{name: "active only", filter: SessionsFilter{TrainerID: 1, ActiveOnly: true}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(s))
		})
	}
}

func TestSession_StatusRules(t *testing.T) {
	s := &Session{Status: SessionPending}
	assert.True(t, s.IsActive())
	assert.True(t, s.CanBeCancelled())
	assert.False(t, s.CanBeCompleted())

	s.Status = SessionCancelled
	assert.False(t, s.IsActive())
	assert.False(t, s.CanBeRescheduled())
}

func TestSession_DisplayClient(t *testing.T) {
	assert.Equal(t, "Anna", (&Session{ClientName: "Anna", ClientID: 3}).DisplayClient())
	assert.Equal(t, "client #3", (&Session{ClientID: 3}).DisplayClient())
}

func TestVerdict(t *testing.T) {
	v := NewVerdict()
	assert.True(t, v.IsValid)

	v.AddWarning("far in the future")
	assert.True(t, v.IsValid)

	v.AddError("conflict")
	assert.False(t, v.IsValid)
	assert.Equal(t, []string{"conflict"}, v.Errors)
}
