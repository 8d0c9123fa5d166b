package httpop

import (
	"context"
	"io"
	"net/http"
)

// withHandler copies opts with the handler replaced, so capture facades do
// not mutate caller-owned options.
func withHandler(opts *Options, h ResponseHandler) *Options {
	var o Options
	if opts != nil {
		o = *opts
	}
	o.Handler = h
	return &o
}

// Get executes an HTTP GET, dispatching the response to opts.Handler.
// Responses with status >= 400 become an *HTTPError.
func Get(ctx context.Context, url string, opts *Options) error {
	return Do(ctx, http.MethodGet, url, nil, opts)
}

// GetString executes an HTTP GET and returns the response body as a string.
// A 404 is reported as absent (ok == false) rather than an error; any other
// status >= 400 is an *HTTPError. Any handler in opts is ignored.
func GetString(ctx context.Context, url string, opts *Options) (value string, ok bool, err error) {
	h := &StringCapture{}
	err = Do(ctx, http.MethodGet, url, nil, withHandler(opts, h))
	if IsNotFound(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return h.Value(), true, nil
}

// GetStream executes an HTTP GET and returns the open response body with its
// content type. The caller owns the stream and must close it. A 404 returns
// (nil, nil); any other status >= 400 is an *HTTPError. Any handler in opts
// is ignored.
func GetStream(ctx context.Context, url string, opts *Options) (*TypedStream, error) {
	h := &StreamCapture{}
	err := Do(ctx, http.MethodGet, url, nil, withHandler(opts, h))
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return h.Stream(), nil
}

// Post executes an HTTP POST with the given body entity. When opts carries
// no handler the response is drained and discarded (fire and forget).
func Post(ctx context.Context, url string, body *Entity, opts *Options) error {
	return Do(ctx, http.MethodPost, url, body, opts)
}

// PostString executes an HTTP POST with a text body.
func PostString(ctx context.Context, url, contentType, content string, opts *Options) error {
	return Post(ctx, url, NewStringEntity(content, contentType), opts)
}

// PostReader executes an HTTP POST reading length bytes of body from r.
// Pass length -1 when unknown.
func PostReader(ctx context.Context, url, contentType string, r io.Reader, length int64, opts *Options) error {
	return Post(ctx, url, NewReaderEntity(r, length, contentType), opts)
}

// PostForm executes an HTTP POST of form parameters, preserving pair order
// and duplicate names.
func PostForm(ctx context.Context, url string, params *Params, opts *Options) error {
	return Post(ctx, url, NewFormEntity(params), opts)
}

// PostFormStream executes an HTTP POST of form parameters and returns the
// open response body with its content type. The caller owns the stream and
// must close it. A 404 returns (nil, nil). Any handler in opts is ignored.
func PostFormStream(ctx context.Context, url string, params *Params, opts *Options) (*TypedStream, error) {
	h := &StreamCapture{}
	err := Do(ctx, http.MethodPost, url, NewFormEntity(params), withHandler(opts, h))
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return h.Stream(), nil
}

// Put executes an HTTP PUT with the given body entity. No meaningful
// response body is expected beyond the status.
func Put(ctx context.Context, url string, body *Entity, opts *Options) error {
	return Do(ctx, http.MethodPut, url, body, opts)
}

// PutString executes an HTTP PUT with a text body.
func PutString(ctx context.Context, url, contentType, content string, opts *Options) error {
	return Put(ctx, url, NewStringEntity(content, contentType), opts)
}

// PutReader executes an HTTP PUT reading length bytes of body from r.
func PutReader(ctx context.Context, url, contentType string, r io.Reader, length int64, opts *Options) error {
	return Put(ctx, url, NewReaderEntity(r, length, contentType), opts)
}

// Head executes an HTTP HEAD. By HTTP definition the response has no
// entity, so only status classification applies.
func Head(ctx context.Context, url string, opts *Options) error {
	return Do(ctx, http.MethodHead, url, nil, opts)
}

// Delete executes an HTTP DELETE with no request body. Servers that return
// a body on delete can be handled via opts.Handler.
func Delete(ctx context.Context, url string, opts *Options) error {
	return Do(ctx, http.MethodDelete, url, nil, opts)
}
