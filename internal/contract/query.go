package contract

import "strings"

// QueryRequest is one caller turn. JSON names match the chat widget.
type QueryRequest struct {
	Query     string `json:"Query"`
	SessionID string `json:"SessionId"`
}

// Validate rejects blank fields before any side effect.
func (r QueryRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return &ValidationError{Code: ErrMissingQuery, Field: "Query", Message: "Missing Query!"}
	}
	if strings.TrimSpace(r.SessionID) == "" {
		return &ValidationError{Code: ErrMissingSessionID, Field: "SessionId", Message: "Missing SessionId!"}
	}
	return nil
}

// QueryResponse is the reply plus the session's merged fields.
type QueryResponse struct {
	Response       string  `json:"response"`
	SessionID      string  `json:"SessionId"`
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	MatchedTopicID *int    `json:"keyword_id"`
	Template       *string `json:"template"`
	// Degraded is set when the reply is the canned apology.
	Degraded bool `json:"degraded,omitempty"`
}

type ValidationErrorCode string

const (
	ErrMissingQuery     ValidationErrorCode = "MISSING_QUERY"
	ErrMissingSessionID ValidationErrorCode = "MISSING_SESSION_ID"
)

type ValidationError struct {
	Code    ValidationErrorCode
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrorResponse is the body returned for rejected requests.
type ErrorResponse struct {
	Error string `json:"error"`
}
