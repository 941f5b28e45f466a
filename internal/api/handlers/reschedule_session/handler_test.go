package reschedule_session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions/models"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/logger"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/types"
)

type stubService struct {
	result *models.SessionResult
	err    error

	got *models.RescheduleSessionRequest
}

func (s *stubService) RescheduleSession(_ context.Context, req *models.RescheduleSessionRequest) (*models.SessionResult, error) {
	s.got = req
	return s.result, s.err
}

func serve(t *testing.T, svc SessionService, sessionID, body string) *httptest.ResponseRecorder {
	t.Helper()

	router := mux.NewRouter()
	router.HandleFunc("/trainers/{trainerId}/sessions/{sessionId}/reschedule", NewHandler(svc, logger.NewNop()).Handle).
		Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/trainers/1/sessions/%s/reschedule", sessionID), strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"date":"2024-01-09","start":"14:00","end":"15:00"}`

func TestHandle_Rescheduled(t *testing.T) {
	svc := &stubService{result: &models.SessionResult{
		Session:  &models.SessionResponse{ID: 7, Date: "2024-01-09", Start: "14:00", End: "15:00"},
		Warnings: []string{},
	}}

	rec := serve(t, svc, "7", validBody)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(1), svc.got.TrainerID)
	assert.Equal(t, int64(7), svc.got.SessionID)
	assert.Equal(t, "14:00", svc.got.Start)
}

func TestHandle_ConflictReturnsVerdict(t *testing.T) {
	verdict := domain.NewVerdict()
	verdict.AddError("Outside of available hours on Tuesday")
	svc := &stubService{err: fmt.Errorf("reschedule: %w", &sessions.ValidationError{Verdict: verdict})}

	rec := serve(t, svc, "7", validBody)

	require.Equal(t, http.StatusConflict, rec.Code)
	var body models.VerdictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.IsValid)
	assert.Equal(t, []string{"Outside of available hours on Tuesday"}, body.Errors)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		body      string
		err       error
		want      int
	}{
		{name: "bad session id", sessionID: "abc", body: validBody, want: http.StatusBadRequest},
		{name: "malformed time", sessionID: "7", body: validBody, err: fmt.Errorf("%w: end: %v", sessions.ErrInvalidTime, types.ErrInvalidFormat), want: http.StatusBadRequest},
		{name: "not found", sessionID: "7", body: validBody, err: sessions.ErrSessionNotFound, want: http.StatusNotFound},
		{name: "already completed", sessionID: "7", body: validBody, err: sessions.ErrCannotReschedule, want: http.StatusConflict},
		{name: "internal", sessionID: "7", body: validBody, err: sessions.ErrInternal, want: http.StatusInternalServerError},
		{name: "bad date", sessionID: "7", body: `{"date":"tomorrow","start":"14:00","end":"15:00"}`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &stubService{err: tt.err}, tt.sessionID, tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
