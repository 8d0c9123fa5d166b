package httpop

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, "hello")
	}))
	defer srv.Close()

	got, ok, err := GetString(context.Background(), srv.URL+"/data", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true")
	}
	if got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestGetString_404IsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	got, ok, err := GetString(context.Background(), srv.URL+"/missing", nil)
	if err != nil {
		t.Fatalf("404 must not be an error here, got %v", err)
	}
	if ok || got != "" {
		t.Errorf("expected absent result, got %q ok=%v", got, ok)
	}
}

func TestGet_404IsError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	err := Get(context.Background(), srv.URL+"/missing", &Options{Handler: Discard})
	if !IsNotFound(err) {
		t.Fatalf("expected 404 error, got %v", err)
	}
}

func TestGetString_OtherErrorsPropagate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, _, err := GetString(context.Background(), srv.URL, nil)
	if !IsStatus(err, http.StatusInternalServerError) {
		t.Fatalf("expected 500 error, got %v", err)
	}
}

func TestGetStream(t *testing.T) {
	payload := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(payload)
	}))
	defer srv.Close()

	stream, err := GetStream(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stream == nil {
		t.Fatal("expected a stream")
	}
	defer stream.Close()

	if stream.ContentType() != "application/octet-stream" {
		t.Errorf("got content type %q, want %q", stream.ContentType(), "application/octet-stream")
	}
	got, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("reading caller-owned stream: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("got %v, want %v", got, payload)
	}
}

func TestGetStream_404IsNil(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	stream, err := GetStream(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("404 must not be an error here, got %v", err)
	}
	if stream != nil {
		stream.Close()
		t.Error("expected nil stream for 404")
	}
}

func TestPostString_FireAndForget(t *testing.T) {
	var gotBody, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := PostString(context.Background(), srv.URL+"/items", "application/json", `{"a":1}`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody != `{"a":1}` {
		t.Errorf("got body %q, want %q", gotBody, `{"a":1}`)
	}
	if gotType != "application/json" {
		t.Errorf("got content type %q, want %q", gotType, "application/json")
	}
}

func TestPostForm_PreservesOrderAndDuplicates(t *testing.T) {
	var gotBody, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotType = r.Header.Get("Content-Type")
	}))
	defer srv.Close()

	params := NewParams().Add("q", "x").Add("q", "y")
	if err := PostForm(context.Background(), srv.URL, params, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody != "q=x&q=y" {
		t.Errorf("got body %q, want %q", gotBody, "q=x&q=y")
	}
	if gotType != ContentTypeForm {
		t.Errorf("got content type %q, want %q", gotType, ContentTypeForm)
	}
}

func TestPostFormStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/sparql-results+json")
		io.WriteString(w, `{"head":{"vars":[]}}`)
	}))
	defer srv.Close()

	stream, err := PostFormStream(context.Background(), srv.URL, NewParams().Add("query", "ASK {}"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stream == nil {
		t.Fatal("expected a stream")
	}
	defer stream.Close()
	if stream.MediaType() != "application/sparql-results+json" {
		t.Errorf("got media type %q", stream.MediaType())
	}
}

func TestPostReader_UnknownLength(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
	}))
	defer srv.Close()

	err := PostReader(context.Background(), srv.URL, "text/plain", strings.NewReader("streamed"), -1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody != "streamed" {
		t.Errorf("got body %q, want %q", gotBody, "streamed")
	}
}

func TestPutString(t *testing.T) {
	var gotMethod, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := PutString(context.Background(), srv.URL+"/doc", "text/turtle", "<a> <b> <c> .", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("got method %q, want PUT", gotMethod)
	}
	if gotBody != "<a> <b> <c> ." {
		t.Errorf("got body %q", gotBody)
	}
}

func TestHead(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
	}))
	defer srv.Close()

	if err := Head(context.Background(), srv.URL, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodHead {
		t.Errorf("got method %q, want HEAD", gotMethod)
	}
}

func TestDelete_WithHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("got method %q, want DELETE", r.Method)
		}
		io.WriteString(w, "deleted")
	}))
	defer srv.Close()

	h := &StringCapture{}
	if err := Delete(context.Background(), srv.URL+"/doc", &Options{Handler: h}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Value() != "deleted" {
		t.Errorf("got %q, want %q", h.Value(), "deleted")
	}
}

func TestWithHandler_DoesNotMutateCallerOptions(t *testing.T) {
	opts := &Options{Accept: "text/plain"}
	o := withHandler(opts, Discard)
	if opts.Handler != nil {
		t.Error("caller options were mutated")
	}
	if o.Handler == nil || o.Accept != "text/plain" {
		t.Error("copy did not carry the handler and remaining fields")
	}
}
