package httpop

import (
	"io"
	"mime"
	"net/http"
)

// ResponseHandler consumes a success-classified response. The base argument
// is the request URI with query string and fragment removed, suitable as a
// base for resolving relative references in the response content.
//
// TakesOwnership declares the handler's stream contract: when it returns
// true the dispatcher does not touch the response body after HandleResponse
// returns, and the handler (or whoever it handed the stream to) is solely
// responsible for closing it. When it returns false the dispatcher drains
// and closes the body itself.
type ResponseHandler interface {
	HandleResponse(base string, resp *http.Response) error
	TakesOwnership() bool
}

// HandlerFunc adapts a function to a ResponseHandler that leaves stream
// cleanup to the dispatcher.
type HandlerFunc func(base string, resp *http.Response) error

// HandleResponse calls f.
func (f HandlerFunc) HandleResponse(base string, resp *http.Response) error {
	return f(base, resp)
}

// TakesOwnership reports that the dispatcher retains the body stream.
func (f HandlerFunc) TakesOwnership() bool { return false }

type discardHandler struct{}

func (discardHandler) HandleResponse(string, *http.Response) error { return nil }
func (discardHandler) TakesOwnership() bool                        { return false }

// Discard is a handler that ignores the response; the dispatcher drains and
// closes the body.
var Discard ResponseHandler = discardHandler{}

// StringCapture reads the whole response body into memory as UTF-8 text and
// closes the stream before returning.
type StringCapture struct {
	value string
}

// HandleResponse reads and closes the response body.
func (h *StringCapture) HandleResponse(base string, resp *http.Response) error {
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}
	h.value = string(b)
	return nil
}

// TakesOwnership reports that the handler closed the stream itself.
func (h *StringCapture) TakesOwnership() bool { return true }

// Value returns the captured body text.
func (h *StringCapture) Value() string { return h.value }

// TypedStream is an open response body stream together with its declared
// content type. The receiver of a TypedStream owns it and must close it.
type TypedStream struct {
	io.ReadCloser
	contentType string
}

// NewTypedStream wraps an open stream with its content type.
func NewTypedStream(rc io.ReadCloser, contentType string) *TypedStream {
	return &TypedStream{ReadCloser: rc, contentType: contentType}
}

// ContentType returns the declared content type, including any parameters.
func (s *TypedStream) ContentType() string { return s.contentType }

// MediaType returns the content type without parameters, lowercased.
// It returns "" if the content type is absent or malformed.
func (s *TypedStream) MediaType() string {
	mt, _, err := mime.ParseMediaType(s.contentType)
	if err != nil {
		return ""
	}
	return mt
}

// StreamCapture hands ownership of the still-open response body to the
// caller as a TypedStream. The dispatcher does not close the stream; the
// caller must.
type StreamCapture struct {
	stream *TypedStream
}

// HandleResponse wraps the open body without reading it.
func (h *StreamCapture) HandleResponse(base string, resp *http.Response) error {
	h.stream = NewTypedStream(resp.Body, resp.Header.Get("Content-Type"))
	return nil
}

// TakesOwnership reports that the stream now belongs to the caller.
func (h *StreamCapture) TakesOwnership() bool { return true }

// Stream returns the captured stream, or nil if no response was handled.
func (h *StreamCapture) Stream() *TypedStream { return h.stream }
