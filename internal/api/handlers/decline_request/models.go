package decline_request

// DeclineRequestRequest HTTP request model, тело необязательно
type DeclineRequestRequest struct {
	Reason *string `json:"reason,omitempty"`
}
