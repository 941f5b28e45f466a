package cancel_session

// CancelSessionRequest HTTP request model, тело необязательно
type CancelSessionRequest struct {
	Reason *string `json:"reason,omitempty"`
}
