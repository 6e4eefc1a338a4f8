package githubapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	gh "github.com/google/go-github/v66/github"
)

const (
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	apiErrorTemplateConstant                = "%s operation failed with status %d: %s"
	responseDecodingErrorTemplateConstant   = "%s response decoding failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	resourceNotFoundMessageConstant         = "resource not found"
	authenticationFailedMessageConstant     = "authentication failed"
	clientNotConfiguredMessageConstant      = "github api client not configured"
)

var (
	// ErrResourceNotFound matches APIError values carrying HTTP 404.
	ErrResourceNotFound = errors.New(resourceNotFoundMessageConstant)
	// ErrAuthenticationFailed matches APIError values carrying HTTP 401 or 403.
	ErrAuthenticationFailed = errors.New(authenticationFailedMessageConstant)
	// ErrClientNotConfigured indicates a method was called on a nil Client.
	ErrClientNotConfigured = errors.New(clientNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps transport-level failures that never produced an HTTP status.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// APIError reports a non-success HTTP status. Payload holds the response body as
// returned by the API so it can be shown to the user verbatim.
type APIError struct {
	Operation  OperationName
	StatusCode int
	Message    string
	Payload    string
}

// Error describes the API failure.
func (apiError APIError) Error() string {
	detail := apiError.Payload
	if len(detail) == 0 {
		detail = apiError.Message
	}
	if len(detail) == 0 {
		detail = http.StatusText(apiError.StatusCode)
	}
	return fmt.Sprintf(apiErrorTemplateConstant, apiError.Operation, apiError.StatusCode, detail)
}

// Is matches ErrResourceNotFound and ErrAuthenticationFailed by status code.
func (apiError APIError) Is(target error) bool {
	switch target {
	case ErrResourceNotFound:
		return apiError.StatusCode == http.StatusNotFound
	case ErrAuthenticationFailed:
		return apiError.StatusCode == http.StatusUnauthorized || apiError.StatusCode == http.StatusForbidden
	default:
		return false
	}
}

// ResponseDecodingError indicates a response body that could not be interpreted.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying decoding error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// newOperationFailure converts go-github failures into APIError when an HTTP
// status is available and into OperationError otherwise. Rate limit failures
// carry their own error types and are converted the same way.
func newOperationFailure(operation OperationName, response *gh.Response, cause error) error {
	var errorResponse *gh.ErrorResponse
	if errors.As(cause, &errorResponse) && errorResponse.Response != nil {
		return newResponseFailure(operation, errorResponse.Response, errorResponse.Message, errorResponsePayload(errorResponse))
	}

	var rateLimitError *gh.RateLimitError
	if errors.As(cause, &rateLimitError) && rateLimitError.Response != nil {
		return newResponseFailure(operation, rateLimitError.Response, rateLimitError.Message, messagePayload(rateLimitError.Message))
	}

	var abuseRateLimitError *gh.AbuseRateLimitError
	if errors.As(cause, &abuseRateLimitError) && abuseRateLimitError.Response != nil {
		return newResponseFailure(operation, abuseRateLimitError.Response, abuseRateLimitError.Message, messagePayload(abuseRateLimitError.Message))
	}

	if response != nil && response.Response != nil && !isSuccessStatus(response.StatusCode) {
		return APIError{
			Operation:  operation,
			StatusCode: response.StatusCode,
			Message:    errorMessage(cause),
			Payload:    readResponseBody(response.Response),
		}
	}

	return OperationError{Operation: operation, Cause: cause}
}

// newResponseFailure prefers the response body as returned by the API and falls
// back to fallbackPayload when the body is empty or unreadable.
func newResponseFailure(operation OperationName, httpResponse *http.Response, message string, fallbackPayload string) APIError {
	payload := readResponseBody(httpResponse)
	if len(payload) == 0 {
		payload = fallbackPayload
	}
	return APIError{
		Operation:  operation,
		StatusCode: httpResponse.StatusCode,
		Message:    message,
		Payload:    payload,
	}
}

func newUnexpectedStatusError(operation OperationName, response *gh.Response) error {
	statusCode := 0
	if response != nil && response.Response != nil {
		statusCode = response.StatusCode
	}
	return APIError{Operation: operation, StatusCode: statusCode, Message: http.StatusText(statusCode)}
}

// readResponseBody returns the trimmed body. go-github restores the body of
// failed responses after decoding it, so it can be read here.
func readResponseBody(httpResponse *http.Response) string {
	if httpResponse == nil || httpResponse.Body == nil {
		return ""
	}
	payload, readError := io.ReadAll(httpResponse.Body)
	if readError != nil {
		return ""
	}
	httpResponse.Body = io.NopCloser(bytes.NewReader(payload))
	return strings.TrimSpace(string(payload))
}

func errorResponsePayload(errorResponse *gh.ErrorResponse) string {
	fallbackPayload := struct {
		Message          string     `json:"message,omitempty"`
		Errors           []gh.Error `json:"errors,omitempty"`
		DocumentationURL string     `json:"documentation_url,omitempty"`
	}{
		Message:          errorResponse.Message,
		Errors:           errorResponse.Errors,
		DocumentationURL: errorResponse.DocumentationURL,
	}
	encodedPayload, encodingError := json.Marshal(fallbackPayload)
	if encodingError != nil {
		return errorResponse.Message
	}
	return string(encodedPayload)
}

func messagePayload(message string) string {
	if len(message) == 0 {
		return ""
	}
	encodedPayload, encodingError := json.Marshal(struct {
		Message string `json:"message"`
	}{Message: message})
	if encodingError != nil {
		return message
	}
	return string(encodedPayload)
}

func errorMessage(cause error) string {
	if cause == nil {
		return ""
	}
	return cause.Error()
}

func isSuccessStatus(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}
