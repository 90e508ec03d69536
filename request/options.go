package request

import "encoding/json"

// Mode selects how the response body is consumed.
type Mode int

const (
	// ModeBuffered reads the whole body into the Response.
	ModeBuffered Mode = iota
	// ModeStreamed writes the body incrementally to a destination file.
	ModeStreamed
)

// Options describes a single request to dispatch. A value is valid only when
// query parameters are absent or accompany a GET, and the public entry point
// additionally requires a non-empty header map.
type Options struct {
	// Method is one of GET, POST or DELETE, case-insensitive.
	Method string
	// URL is the full endpoint URL.
	URL string
	// Headers are sent verbatim. APISend requires at least one entry,
	// modeling the mandatory authentication headers.
	Headers map[string]string
	// Query parameters are appended to the URL. GET only.
	Query map[string]string
	// Payload is the POST body: a struct or map serialized as JSON, or a
	// string already holding JSON.
	Payload interface{}
	// Mode selects buffered or streamed response handling.
	Mode Mode
	// FileName is the streamed-mode destination path. Defaults to
	// DefaultStreamFileName.
	FileName string
}

// Response is the outcome of a dispatched request. In streamed mode Body is
// empty and the payload has been written to the destination file instead.
type Response struct {
	StatusCode int
	Status     string
	Headers    map[string]string
	Body       []byte
	DurationMs int64
}

// JSON unmarshals the buffered body into v.
func (r *Response) JSON(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}
