package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerScheduleService/pkg/logger"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/ptr"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/internal/clients/10":
			_, _ = w.Write([]byte(`{"id":10,"first_name":"Anna","last_name":"Petrova"}`))
		case "/internal/clients/13":
			_, _ = w.Write([]byte(`{"id":13,"first_name":" ","nickname":"runner13"}`))
		case "/internal/clients/14":
			_, _ = w.Write([]byte(`{"id":99,"first_name":"Wrong"}`))
		case "/internal/clients/11":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetClientName(t *testing.T) {
	c := NewClient(newServer(t).URL, time.Second, logger.NewNop())
	ctx := context.Background()

	name, err := c.GetClientName(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "Anna Petrova", name)

	name, err = c.GetClientName(ctx, 13)
	require.NoError(t, err)
	assert.Equal(t, "runner13", name)

	_, err = c.GetClientName(ctx, 11)
	assert.ErrorIs(t, err, ErrClientNotFound)

	_, err = c.GetClientName(ctx, 12)
	assert.ErrorIs(t, err, ErrServiceDegraded)

	_, err = c.GetClientName(ctx, 14)
	assert.ErrorIs(t, err, ErrServiceDegraded)
	assert.ErrorContains(t, err, "asked for client 14")
}

func TestGetClientName_Unreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 100*time.Millisecond, logger.NewNop())

	_, err := c.GetClientName(context.Background(), 10)
	assert.ErrorIs(t, err, ErrServiceDegraded)
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		profile ClientProfile
		want    string
	}{
		{name: "first only", profile: ClientProfile{FirstName: "Anna"}, want: "Anna"},
		{name: "first and last", profile: ClientProfile{FirstName: "Anna", LastName: ptr.Ptr(" Petrova ")}, want: "Anna Petrova"},
		{name: "nickname fallback", profile: ClientProfile{Nickname: ptr.Ptr("runner")}, want: "runner"},
		{name: "empty", profile: ClientProfile{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.DisplayName())
		})
	}
}
