package cancel_session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions/models"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/logger"
)

type stubService struct {
	err error

	gotReason *string
	called    bool
}

func (s *stubService) CancelSession(_ context.Context, _, sessionID int64, reason *string) (*models.SessionResponse, error) {
	s.called = true
	s.gotReason = reason
	if s.err != nil {
		return nil, s.err
	}
	return &models.SessionResponse{ID: sessionID, Status: "cancelled"}, nil
}

func serve(t *testing.T, svc SessionService, body string) *httptest.ResponseRecorder {
	t.Helper()

	router := mux.NewRouter()
	router.HandleFunc("/trainers/{trainerId}/sessions/{sessionId}/cancel", NewHandler(svc, logger.NewNop()).Handle).
		Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/trainers/1/sessions/7/cancel", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_EmptyBody(t *testing.T) {
	svc := &stubService{}

	rec := serve(t, svc, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.called)
	assert.Nil(t, svc.gotReason)
}

func TestHandle_WithReason(t *testing.T) {
	svc := &stubService{}

	rec := serve(t, svc, `{"reason":"client is ill"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotReason)
	assert.Equal(t, "client is ill", *svc.gotReason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		// Чужая сессия приходит из сервиса как ErrSessionNotFound
		{name: "missing or foreign session", err: sessions.ErrSessionNotFound, want: http.StatusNotFound},
		{name: "already cancelled", err: sessions.ErrCannotCancel, want: http.StatusConflict},
		{name: "reason too long", err: sessions.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "internal", err: sessions.ErrInternal, want: http.StatusInternalServerError},
		{name: "malformed body", body: `{"reason":`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &stubService{err: tt.err}, tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
