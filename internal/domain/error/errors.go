package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest      = 4000
	CodeAuthentication      = 4010
	CodeAuthorization       = 4030
	CodeInvalidGenerationID = 4001
	CodeInvalidOptions      = 4002
	CodeInvalidState        = 4090
	CodeRetryLimit          = 4290
	CodePaymentRequired     = 4020
	CodeMalformedEvent      = 4003
	CodeDuplicateOrder      = 4004
	CodeGenerationNotFound  = 4040
	CodeOrderNotFound       = 4041
	CodeUserNotFound        = 4042

	// 5xxx - Server errors
	CodeInternalServer  = 5000
	CodeDataIntegrity   = 5001
	CodeExternalService = 5020
	CodeConnection      = 5030
	CodePollTimeout     = 5040
)

// Base error types
var (
	// ErrAuthentication is returned when a webhook signature, token or provider session is invalid
	ErrAuthentication = errors.New("authentication failed")

	// ErrMalformedEvent is returned when a payment event lacks required metadata
	ErrMalformedEvent = errors.New("malformed payment event")

	// ErrDataIntegrity is returned when stored generation options fail re-validation
	ErrDataIntegrity = errors.New("stored generation data failed validation")

	// ErrExternalService is returned when the inference model or image host fails
	ErrExternalService = errors.New("external service failure")

	// ErrAuthorization is returned when the requester does not own the resource
	ErrAuthorization = errors.New("not authorized for this generation")

	// ErrInvalidState is returned when a generation is not in the status an action requires
	ErrInvalidState = errors.New("generation is not in a valid state for this action")

	// ErrRetryLimit is returned when a generation has used all of its retries
	ErrRetryLimit = errors.New("maximum retry attempts reached")

	// ErrPaymentRequired is returned when no paid order exists for a generation
	ErrPaymentRequired = errors.New("no paid order found for generation")

	// ErrConnection is returned by the polling client when the status endpoint cannot be reached
	ErrConnection = errors.New("lost connection to generation status")

	// ErrPollTimeout is returned when polling gave up after the maximum number of attempts
	ErrPollTimeout = errors.New("generation did not finish in time")

	// ErrGenerationNotFound is returned when the requested generation doesn't exist
	ErrGenerationNotFound = errors.New("generation not found")

	// ErrOrderNotFound is returned when no order matches the lookup
	ErrOrderNotFound = errors.New("order not found")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateOrder is returned when an order already exists for a payment intent
	ErrDuplicateOrder = errors.New("order for this payment intent already exists")

	// ErrInvalidGenerationID is returned when a generation id is missing or not a positive integer
	ErrInvalidGenerationID = errors.New("generation ID must be a positive integer")

	// ErrInvalidOptions is returned when submitted generation options are invalid
	ErrInvalidOptions = errors.New("invalid generation options")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrAuthentication):
		return CodeAuthentication
	case errors.Is(err, ErrAuthorization):
		return CodeAuthorization
	case errors.Is(err, ErrInvalidGenerationID):
		return CodeInvalidGenerationID
	case errors.Is(err, ErrInvalidOptions):
		return CodeInvalidOptions
	case errors.Is(err, ErrInvalidState):
		return CodeInvalidState
	case errors.Is(err, ErrRetryLimit):
		return CodeRetryLimit
	case errors.Is(err, ErrPaymentRequired):
		return CodePaymentRequired
	case errors.Is(err, ErrMalformedEvent):
		return CodeMalformedEvent
	case errors.Is(err, ErrDuplicateOrder):
		return CodeDuplicateOrder
	case errors.Is(err, ErrGenerationNotFound):
		return CodeGenerationNotFound
	case errors.Is(err, ErrOrderNotFound):
		return CodeOrderNotFound
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrDataIntegrity):
		return CodeDataIntegrity
	case errors.Is(err, ErrExternalService):
		return CodeExternalService
	case errors.Is(err, ErrConnection):
		return CodeConnection
	case errors.Is(err, ErrPollTimeout):
		return CodePollTimeout
	default:
		return CodeInternalServer
	}
}

// GenerationError describes a failure while executing a generation
type GenerationError struct {
	GenerationID uint64
	Stage        string
	Err          error
}

// Error implements the error interface for GenerationError
func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation %d failed at %s: %v", e.GenerationID, e.Stage, e.Err)
}

// Unwrap returns the underlying error
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *GenerationError) LogFields() map[string]any {
	return map[string]any{
		"error_type":    "generation_error",
		"generation_id": e.GenerationID,
		"stage":         e.Stage,
		"error":         e.Err.Error(),
		"error_code":    ErrorCode(e.Err),
	}
}

// NewGenerationError creates a detailed generation error
func NewGenerationError(generationID uint64, stage string, err error) error {
	return &GenerationError{
		GenerationID: generationID,
		Stage:        stage,
		Err:          err,
	}
}

// WebhookError describes a payment event that could not be applied
type WebhookError struct {
	EventID   string
	EventType string
	Reason    string
	Err       error
}

// Error implements the error interface for WebhookError
func (e *WebhookError) Error() string {
	return fmt.Sprintf("webhook event %s (%s): %s - %v", e.EventID, e.EventType, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *WebhookError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *WebhookError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "webhook_error",
		"event_id":   e.EventID,
		"event_type": e.EventType,
		"reason":     e.Reason,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewMalformedEventError creates a webhook error wrapping ErrMalformedEvent
func NewMalformedEventError(eventID, eventType, reason string) error {
	return &WebhookError{
		EventID:   eventID,
		EventType: eventType,
		Reason:    reason,
		Err:       ErrMalformedEvent,
	}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrGenerationNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsRetryRejection reports whether err is one of the retry precondition failures
func IsRetryRejection(err error) bool {
	return errors.Is(err, ErrAuthorization) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrRetryLimit) ||
		errors.Is(err, ErrPaymentRequired)
}
