package validate_session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions/models"
	validateSession "github.com/m04kA/SMC-TrainerScheduleService/internal/usecase/validate_session"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/logger"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/metrics"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func newRouter(t *testing.T) *mux.Router {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	templates := memory.NewAvailabilityRepository(store)
	sessions := memory.NewSessionRepository(store)

	// Вторник: 09:00-17:00, сессия 10:00-11:00 на 2024-01-02
	_, err := templates.ReplaceDay(ctx, 1, 2, []domain.AvailabilitySlot{{Start: "09:00", End: "17:00", IsAvailable: true}})
	require.NoError(t, err)
	date, err := domain.ParseDate("2024-01-02")
	require.NoError(t, err)
	_, err = sessions.Create(ctx, &domain.Session{
		TrainerID: 1, ClientID: 10, ClientName: "Anna", Date: date, Start: "10:00", End: "11:00", Status: domain.SessionConfirmed,
	})
	require.NoError(t, err)

	uc := validateSession.NewUseCase(templates, sessions, metrics.New("test"), logger.NewNop()).
		WithTimeProvider(fixedTime{now: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)})

	router := mux.NewRouter()
	router.HandleFunc("/trainers/{trainerId}/sessions/validate", NewHandler(uc, logger.NewNop()).Handle).
		Methods(http.MethodPost)
	return router
}

func post(t *testing.T, router *mux.Router, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/trainers/1/sessions/validate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeVerdict(t *testing.T, rec *httptest.ResponseRecorder) models.VerdictResponse {
	t.Helper()

	var body models.VerdictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandle_FreeInterval(t *testing.T) {
	rec := post(t, newRouter(t), `{"date":"2024-01-02","start":"12:00","end":"13:00"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	verdict := decodeVerdict(t, rec)
	assert.True(t, verdict.IsValid)
	assert.Empty(t, verdict.Errors)
}

func TestHandle_ConflictIsStillOK(t *testing.T) {
	rec := post(t, newRouter(t), `{"date":"2024-01-02","start":"10:30","end":"11:30"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	verdict := decodeVerdict(t, rec)
	assert.False(t, verdict.IsValid)
	assert.NotEmpty(t, verdict.Errors)
}

func TestHandle_ExcludedSessionDoesNotConflict(t *testing.T) {
	rec := post(t, newRouter(t), `{"date":"2024-01-02","start":"10:30","end":"11:30","excludeSessionId":1}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeVerdict(t, rec).IsValid)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed start", body: `{"date":"2024-01-02","start":"25:00","end":"26:00"}`},
		{name: "missing end", body: `{"date":"2024-01-02","start":"10:00"}`},
		{name: "malformed date", body: `{"date":"2024/01/02","start":"10:00","end":"11:00"}`},
		{name: "non-positive exclude id", body: `{"date":"2024-01-02","start":"10:00","end":"11:00","excludeSessionId":0}`},
		{name: "not json", body: `date=2024-01-02`},
	}

	router := newRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, router, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
