package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-TrainerScheduleService/pkg/tracing"
)

// maxErrorBody сколько байт тела ошибки попадает в текст ошибки
const maxErrorBody = 512

// Client справочник клиентов тренеров
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает клиент UserService с общим таймаутом на запрос
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetClientProfile GET /internal/clients/{clientId}
func (c *Client) GetClientProfile(ctx context.Context, clientID int64) (*ClientProfile, error) {
	ctx, span := tracing.Start(ctx, "userservice.GetClientProfile",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.Int64("client.id", clientID)),
	)
	defer span.End()

	url := fmt.Sprintf("%s/internal/clients/%d", c.baseURL, clientID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrClientNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		err := fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
		tracing.RecordError(span, err)
		return nil, err
	}

	var profile ClientProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidResponse, err)
	}
	if profile.ID != clientID {
		return nil, fmt.Errorf("%w: asked for client %d, got %d", ErrInvalidResponse, clientID, profile.ID)
	}

	return &profile, nil
}

// GetClientName имя клиента для сессий и сообщений о конфликтах
// ErrClientNotFound пробрасывается как есть, любые другие сбои
// оборачиваются в ErrServiceDegraded: сессия сохраняется без имени
func (c *Client) GetClientName(ctx context.Context, clientID int64) (string, error) {
	profile, err := c.GetClientProfile(ctx, clientID)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			c.log.Warn("GetClientName: client=%d not found", clientID)
			return "", err
		}

		c.log.Error("GetClientName: UserService unavailable for client=%d: %v", clientID, err)
		return "", fmt.Errorf("%w: client=%d: %v", ErrServiceDegraded, clientID, err)
	}

	return profile.DisplayName(), nil
}
