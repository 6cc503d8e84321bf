// Package reqconf executes HTTP calls described by flat configuration
// strings of the form "key=value,key2=value2".
//
// The reserved "url" key sets the request target, "stream_mode"
// toggles response streaming, every "Header_<Name>" key becomes a
// request header, and the remaining keys set per-call properties like
// "timeout" or "basic_auth" through an explicit allow-list. A literal
// comma inside a value is escaped as `\,`:
//
//	resp, err := reqconf.Get(ctx, "url=https://api.test.com/items,Header_Accept=application/json")
//
// Structured (non-string) bodies are serialized to JSON and tagged
// with the matching content type; responses decode back via
// Response.JSON. Failures of the underlying client pass through
// unmodified, with 4xx/5xx codes wrapped as *ResponseError.
package reqconf

import "context"

// DefaultClient is the client used by the package-level verb
// functions. It carries the process-wide defaults only.
var DefaultClient = New()

// Get executes a GET request described by the configuration string
// using DefaultClient.
func Get(ctx context.Context, conf string) (Response, error) {
	return DefaultClient.Get(ctx, conf)
}

// Post executes a POST request described by the configuration string
// using DefaultClient.
func Post(ctx context.Context, conf string, body any) (Response, error) {
	return DefaultClient.Post(ctx, conf, body)
}

// Put executes a PUT request described by the configuration string
// using DefaultClient.
func Put(ctx context.Context, conf string, body any) (Response, error) {
	return DefaultClient.Put(ctx, conf, body)
}

// Delete executes a DELETE request described by the configuration
// string using DefaultClient.
func Delete(ctx context.Context, conf string, body any) (Response, error) {
	return DefaultClient.Delete(ctx, conf, body)
}
