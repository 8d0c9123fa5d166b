package httpop

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/rdfkit/httpkit/logger"
)

// seq numbers requests so the request and response log lines of one call can
// be correlated. It carries no guarantee beyond monotonic uniqueness.
var seq atomic.Uint64

// Options are the optional collaborators of an operation. The zero value is
// valid: a fresh client, no Accept header, no handler, and the process-wide
// default authenticator.
type Options struct {
	// Client executes the request. When nil a fresh client is constructed
	// for this call only and never pooled; a supplied client is caller-owned
	// and reused across calls.
	Client *http.Client

	// Accept is attached as the Accept header when non-empty.
	Accept string

	// Handler consumes the response on success classification. When nil the
	// response body is drained and discarded.
	Handler ResponseHandler

	// Authenticator overrides the process-wide default for this call. nil
	// means "use the default"; to send an explicitly unauthenticated request
	// the default itself must be nil (see SetDefaultAuthenticator).
	Authenticator Authenticator
}

// Do executes one HTTP operation. Every verb facade routes through here.
//
// The URL fragment is never sent on the wire. Responses with status >= 400
// become an *HTTPError carrying the code and reason phrase; the body is
// drained, not handed to the handler. A 3xx reaching this layer is
// unexpected (the transport follows redirects) and is logged as a warning
// and otherwise ignored. Any other status dispatches the response to the
// handler, if present, together with the base identifier (request URI minus
// query string and fragment).
//
// body, when non-nil, is closed before Do returns, on every path. Response
// entities are drained and closed unless the handler's TakesOwnership
// contract transfers the open stream to the caller. No retries are
// performed; a failed call fails once, fully.
func Do(ctx context.Context, method, rawURL string, body *Entity, opts *Options) error {
	defer body.Close()
	if opts == nil {
		opts = &Options{}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{}
	}

	id := seq.Add(1)
	lg := logger.WithComponent("httpop")

	requestURI := stripFragment(rawURL)
	lg.Debug(fmt.Sprintf("[%d] %s %s", id, method, requestURI))

	// The entity itself is the request body; its idempotent Close absorbs
	// both the transport's close and the deferred close above.
	var r io.Reader
	if body != nil {
		r = body
	}
	req, err := http.NewRequestWithContext(ctx, method, requestURI, r)
	if err != nil {
		return &ConfigError{Message: "invalid request URI", Err: err}
	}
	if body != nil {
		if body.ContentType != "" {
			req.Header.Set("Content-Type", body.ContentType)
		}
		if body.ContentEncoding != "" {
			req.Header.Set("Content-Encoding", body.ContentEncoding)
		}
		if body.ContentLength >= 0 {
			req.ContentLength = body.ContentLength
		}
	}
	if opts.Accept != "" {
		req.Header.Set("Accept", opts.Accept)
	}

	// Authenticators key off scheme and authority, so the original URL
	// (fragment included) is acceptable here.
	if err := applyAuthentication(ctx, req, rawURL, opts.Authenticator); err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}

	status := resp.StatusCode
	reason := reasonPhrase(resp)
	switch {
	case status >= 400:
		drainBody(resp)
		lg.Debug(fmt.Sprintf("[%d] %d %s", id, status, reason))
		return &HTTPError{StatusCode: status, Reason: reason}
	case status >= 300:
		// The transport already follows redirects, so a 3xx here is
		// unexpected. Warn and treat as a success with no handler dispatch.
		drainBody(resp)
		lg.Warn(fmt.Sprintf("[%d] not handled: %d %s", id, status, reason))
		return nil
	}

	lg.Debug(fmt.Sprintf("[%d] %d %s", id, status, reason))
	if opts.Handler == nil {
		drainBody(resp)
		return nil
	}
	handlerErr := opts.Handler.HandleResponse(baseIdentifier(requestURI), resp)
	if !opts.Handler.TakesOwnership() {
		// Cleanup errors never mask the handler's error.
		drainBody(resp)
	}
	return handlerErr
}

// stripFragment removes the fragment portion of a URL. Fragments are a
// client-side concept and are never sent to a server.
func stripFragment(rawURL string) string {
	if i := strings.IndexByte(rawURL, '#'); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}

// baseIdentifier derives the base for relative reference resolution from a
// request URI by removing the query string. Technically the query string is
// part of the base, but including it is unhelpful to content parsers.
func baseIdentifier(requestURI string) string {
	if i := strings.IndexByte(requestURI, '?'); i >= 0 {
		return requestURI[:i]
	}
	return requestURI
}

// reasonPhrase extracts the reason phrase from a response status line,
// falling back to the standard text for the code.
func reasonPhrase(resp *http.Response) string {
	s := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if s == "" {
		s = http.StatusText(resp.StatusCode)
	}
	return s
}

// drainBody consumes and closes a response body so the underlying connection
// can be reused. Failures here are best effort and intentionally dropped.
func drainBody(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
