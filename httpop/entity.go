package httpop

import (
	"io"
	"strings"
	"sync"
)

// ContentTypeForm is the content type produced by NewFormEntity.
const ContentTypeForm = "application/x-www-form-urlencoded; charset=UTF-8"

// Entity is a request body together with its content metadata. Entities are
// single-use: the dispatcher consumes and closes them exactly once per call,
// on every exit path.
type Entity struct {
	// ContentType is sent as the Content-Type header when non-empty.
	ContentType string
	// ContentEncoding is sent as the Content-Encoding header when non-empty.
	ContentEncoding string
	// ContentLength is the body length in bytes, or -1 when unknown.
	ContentLength int64

	body      io.Reader
	closeOnce sync.Once
	closeErr  error
}

// NewStringEntity creates an entity from UTF-8 text. Go strings are UTF-8 by
// construction, so unlike platforms with configurable charsets this cannot
// fail.
func NewStringEntity(content, contentType string) *Entity {
	return &Entity{
		ContentType:     contentType,
		ContentEncoding: "UTF-8",
		ContentLength:   int64(len(content)),
		body:            strings.NewReader(content),
	}
}

// NewReaderEntity creates an entity reading length bytes from r. Pass -1 when
// the length is unknown; the request is then sent with chunked encoding.
func NewReaderEntity(r io.Reader, length int64, contentType string) *Entity {
	return &Entity{
		ContentType:   contentType,
		ContentLength: length,
		body:          r,
	}
}

// NewFormEntity creates an application/x-www-form-urlencoded entity from an
// ordered parameter list. Pair order and duplicate names are preserved.
func NewFormEntity(params *Params) *Entity {
	encoded := params.Encode()
	return &Entity{
		ContentType:   ContentTypeForm,
		ContentLength: int64(len(encoded)),
		body:          strings.NewReader(encoded),
	}
}

// Read reads from the underlying body. Entity implements io.ReadCloser so it
// can serve as a request body directly; the transport's close and the
// dispatcher's deferred close then collapse into one close of the underlying
// reader.
func (e *Entity) Read(p []byte) (int, error) {
	if e.body == nil {
		return 0, io.EOF
	}
	return e.body.Read(p)
}

// Close releases the underlying body. It is safe to call more than once;
// only the first call has effect.
func (e *Entity) Close() error {
	if e == nil {
		return nil
	}
	e.closeOnce.Do(func() {
		if c, ok := e.body.(io.Closer); ok {
			e.closeErr = c.Close()
		}
	})
	return e.closeErr
}
