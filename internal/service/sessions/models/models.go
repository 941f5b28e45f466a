package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid status")
)

// Request модели

// CreateRequestRequest заявка клиента на сессию
type CreateRequestRequest struct {
	ClientID  int64     `json:"clientId"`
	TrainerID int64     `json:"trainerId"`
	Date      time.Time `json:"date"`
	Start     string    `json:"start"` // "10:00"
	End       string    `json:"end"`   // "11:00"
	Message   string    `json:"message,omitempty"`
}

// CreateSessionRequest сессия, созданная тренером напрямую
type CreateSessionRequest struct {
	TrainerID int64     `json:"trainerId"`
	ClientID  int64     `json:"clientId"`
	Date      time.Time `json:"date"`
	Start     string    `json:"start"`
	End       string    `json:"end"`
	Category  string    `json:"category,omitempty"`
	Location  string    `json:"location,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
}

// RescheduleSessionRequest перенос сессии
type RescheduleSessionRequest struct {
	TrainerID int64     `json:"trainerId"`
	SessionID int64     `json:"sessionId"`
	Date      time.Time `json:"date"`
	Start     string    `json:"start"`
	End       string    `json:"end"`
}

// ListSessionsRequest выборка сессий тренера
type ListSessionsRequest struct {
	TrainerID int64      `json:"trainerId"`
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
	Status    *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListSessionsRequest) ToDomainFilter() (domain.SessionsFilter, error) {
	filter := domain.SessionsFilter{
		TrainerID: r.TrainerID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.Status != nil {
		status, ok := domain.ParseSessionStatus(*r.Status)
		if !ok {
			return filter, ErrInvalidStatus
		}
		filter.Statuses = []domain.SessionStatus{status}
	}

	return filter, nil
}

// Response модели

// SessionResponse ответ с данными сессии
type SessionResponse struct {
	ID         int64   `json:"id"`
	TrainerID  int64   `json:"trainerId"`
	ClientID   int64   `json:"clientId"`
	ClientName string  `json:"clientName"`
	Date       string  `json:"date"`  // "2025-10-15"
	Start      string  `json:"start"` // "10:00"
	End        string  `json:"end"`   // "11:00"
	Status     string  `json:"status"`
	Category   string  `json:"category,omitempty"`
	Location   string  `json:"location,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	RequestID  *int64  `json:"requestId,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionListResponse ответ со списком сессий
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// SessionResult результат изменения сессии: сессия и предупреждения проверки
type SessionResult struct {
	Session  *SessionResponse `json:"session"`
	Warnings []string         `json:"warnings"`
}

// RequestResponse ответ с данными заявки
type RequestResponse struct {
	ID            int64     `json:"id"`
	TrainerID     int64     `json:"trainerId"`
	ClientID      int64     `json:"clientId"`
	Date          string    `json:"date"`
	Start         string    `json:"start"`
	End           string    `json:"end"`
	Status        string    `json:"status"`
	Message       string    `json:"message,omitempty"`
	DeclineReason *string   `json:"declineReason,omitempty"`
	SessionID     *int64    `json:"sessionId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// RequestListResponse ответ со списком заявок
type RequestListResponse struct {
	Requests []RequestResponse `json:"requests"`
}

// ApproveResult результат одобрения заявки
type ApproveResult struct {
	Request  *RequestResponse `json:"request"`
	Session  *SessionResponse `json:"session"`
	Warnings []string         `json:"warnings"`
}

// VerdictResponse вердикт проверки предлагаемой сессии
type VerdictResponse struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Методы конвертации

// FromDomainSession конвертирует domain модель в DTO
func FromDomainSession(s *domain.Session) *SessionResponse {
	if s == nil {
		return nil
	}

	resp := &SessionResponse{
		ID:                 s.ID,
		TrainerID:          s.TrainerID,
		ClientID:           s.ClientID,
		ClientName:         s.DisplayClient(),
		Date:               s.Date.Format(domain.DateFormat),
		Start:              s.Start.String(),
		End:                s.End.String(),
		Status:             string(s.Status),
		Category:           s.Category,
		Location:           s.Location,
		Notes:              s.Notes,
		RequestID:          s.RequestID,
		CancellationReason: s.CancellationReason,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if s.CancelledAt != nil {
		cancelledStr := s.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainSessionList конвертирует список domain моделей в DTO
func FromDomainSessionList(sessions []*domain.Session) *SessionListResponse {
	resp := &SessionListResponse{
		Sessions: make([]SessionResponse, 0, len(sessions)),
	}

	for _, s := range sessions {
		if sessionResp := FromDomainSession(s); sessionResp != nil {
			resp.Sessions = append(resp.Sessions, *sessionResp)
		}
	}

	return resp
}

// FromDomainRequest конвертирует domain модель заявки в DTO
func FromDomainRequest(r *domain.SessionRequest) *RequestResponse {
	if r == nil {
		return nil
	}

	return &RequestResponse{
		ID:            r.ID,
		TrainerID:     r.TrainerID,
		ClientID:      r.ClientID,
		Date:          r.RequestedDate.Format(domain.DateFormat),
		Start:         r.RequestedStart.String(),
		End:           r.RequestedEnd.String(),
		Status:        string(r.Status),
		Message:       r.Message,
		DeclineReason: r.DeclineReason,
		SessionID:     r.SessionID,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// FromDomainRequestList конвертирует список заявок в DTO
func FromDomainRequestList(requests []*domain.SessionRequest) *RequestListResponse {
	resp := &RequestListResponse{
		Requests: make([]RequestResponse, 0, len(requests)),
	}

	for _, r := range requests {
		if reqResp := FromDomainRequest(r); reqResp != nil {
			resp.Requests = append(resp.Requests, *reqResp)
		}
	}

	return resp
}

// FromDomainVerdict конвертирует вердикт в DTO
func FromDomainVerdict(v *domain.ValidationVerdict) *VerdictResponse {
	if v == nil {
		return &VerdictResponse{IsValid: true, Errors: []string{}, Warnings: []string{}}
	}

	resp := &VerdictResponse{
		IsValid:  v.IsValid,
		Errors:   v.Errors,
		Warnings: v.Warnings,
	}
	if resp.Errors == nil {
		resp.Errors = []string{}
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}
	return resp
}

// ToDomainRequestStatus конвертирует строку в domain.RequestStatus с валидацией
func ToDomainRequestStatus(status string) (domain.RequestStatus, error) {
	s, ok := domain.ParseRequestStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// WarningsOf предупреждения вердикта, никогда не nil
func WarningsOf(v *domain.ValidationVerdict) []string {
	if v == nil || v.Warnings == nil {
		return []string{}
	}
	return v.Warnings
}
