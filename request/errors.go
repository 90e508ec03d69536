package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingHeaders is returned by APISend when the header map is nil or
	// empty.
	ErrMissingHeaders = errors.New("headers for the API request are missing")

	// ErrUnexpectedQueryParameters is returned when query parameters
	// accompany a non-GET method.
	ErrUnexpectedQueryParameters = errors.New("query parameters are only allowed with GET requests")

	// ErrInvalidPayload is returned when a POST payload is neither a
	// JSON-serializable value nor a string holding valid JSON.
	ErrInvalidPayload = errors.New("unexpected payload value")
)

// UnsupportedMethodError reports a method outside GET, POST and DELETE.
type UnsupportedMethodError struct {
	Method string
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("unsupported method %q", e.Method)
}

// invalidAPIKeyMessage is the fixed translation for 403 responses.
const invalidAPIKeyMessage = "factiva API key is invalid or inactive"

// HTTPError wraps a vendor failure response: the transport status code plus
// the vendor-supplied detail, when any was decodable.
type HTTPError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// IsInvalidAPIKey reports whether the error is the fixed 403 translation.
func (e *HTTPError) IsInvalidAPIKey() bool {
	return e.StatusCode == 403
}

// vendorErrorBody is the vendor's structured error payload shape.
type vendorErrorBody struct {
	Errors []struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// newHTTPError translates a failure response into an *HTTPError. A 403 maps
// to the fixed invalid-key message; a body carrying a structured errors array
// has every entry's title and detail concatenated; everything else becomes a
// generic unexpected-error message carrying status code and text.
func newHTTPError(statusCode int, status string, body []byte) *HTTPError {
	err := &HTTPError{StatusCode: statusCode, Status: status}

	if statusCode == 403 {
		err.Message = invalidAPIKeyMessage
		return err
	}

	var payload vendorErrorBody
	if jsonErr := json.Unmarshal(body, &payload); jsonErr == nil && len(payload.Errors) > 0 {
		parts := make([]string, 0, len(payload.Errors))
		for _, entry := range payload.Errors {
			parts = append(parts, fmt.Sprintf("%s: %s", entry.Title, entry.Detail))
		}
		err.Message = strings.Join(parts, ", ")
		return err
	}

	err.Message = fmt.Sprintf("unexpected API error: %s", status)
	return err
}
