package utils

import "fmt"

// Error kinds surfaced to clients in the "error" field.
const (
	KindBadMethod      = "BadMethod"
	KindBadInput       = "BadInput"
	KindConfiguration  = "ConfigurationError"
	KindProvider       = "ProviderError"
	KindResponseParse  = "ResponseParseError"
	KindResponseSchema = "ResponseSchemaError"
	KindProcessing     = "ProcessingError"
)

// rawExcerptLimit caps how much provider output is echoed back in error
// payloads and logs.
const rawExcerptLimit = 300

// AppError is an error with a specific HTTP status code and client-facing
// kind. The struct doubles as the wire shape of the error body.
type AppError struct {
	StatusCode int    `json:"-"`
	Kind       string `json:"error"`
	Message    string `json:"details,omitempty"`
	Raw        string `json:"raw,omitempty"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Kind + ": " + e.Message
	}
	return e.Kind
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError is the helper for building an AppError
func NewAppError(statusCode int, kind, message string) *AppError {
	return &AppError{StatusCode: statusCode, Kind: kind, Message: message}
}

// NewProviderError wraps a provider failure, keeping the cause for errors.As.
func NewProviderError(provider string, err error) *AppError {
	return &AppError{
		StatusCode: 500,
		Kind:       KindProvider,
		Message:    fmt.Sprintf("provider %s failed: %v", provider, err),
		Err:        err,
	}
}

// NewResponseParseError reports model output that is not syntactically valid
// JSON. An excerpt of the raw output rides along for debugging.
func NewResponseParseError(err error, raw string) *AppError {
	return &AppError{
		StatusCode: 500,
		Kind:       KindResponseParse,
		Message:    fmt.Sprintf("model output is not valid JSON: %v", err),
		Raw:        Truncate(raw, rawExcerptLimit),
		Err:        err,
	}
}

// NewResponseSchemaError reports model output that parsed as JSON but does
// not have the expected shape.
func NewResponseSchemaError(message, raw string) *AppError {
	return &AppError{
		StatusCode: 500,
		Kind:       KindResponseSchema,
		Message:    message,
		Raw:        Truncate(raw, rawExcerptLimit),
	}
}

// Truncate shortens s to at most n bytes for logs and error payloads.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
