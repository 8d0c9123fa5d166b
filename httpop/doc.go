// Package httpop provides simplified HTTP operations (GET, POST, PUT, HEAD,
// DELETE) for higher-level protocol clients such as SPARQL query and update
// clients. Simplified means only certain uses of HTTP are supported: one
// content-negotiated request per call, a pluggable response handler, and a
// pluggable authenticator. Applications with more complicated HTTP
// requirements should use net/http directly.
//
// Every operation flows through a single execution pipeline (Do) which
// strips URI fragments, attaches the Accept header, applies authentication,
// classifies the response status, dispatches the body to the handler, and
// guarantees that request bodies and response entities are released on every
// exit path.
//
// # Basic Usage
//
//	body, ok, err := httpop.GetString(ctx, "https://example.org/data", &httpop.Options{
//	    Accept: "text/turtle",
//	})
//
//	err = httpop.PostString(ctx, "https://example.org/items",
//	    "application/json", `{"a":1}`, nil)
//
// # Streaming
//
//	stream, err := httpop.GetStream(ctx, url, &httpop.Options{Accept: "application/n-triples"})
//	if err != nil { ... }
//	if stream != nil {
//	    defer stream.Close() // ownership of the open body is the caller's
//	    ...
//	}
//
// # Authentication
//
//	httpop.SetDefaultAuthenticator(&httpop.BasicAuthenticator{
//	    Username: "user",
//	    Password: "pass",
//	})
//
// A nil Options.Authenticator means "use the process-wide default"; pass
// SetDefaultAuthenticator(nil) to disable default authentication entirely.
package httpop
