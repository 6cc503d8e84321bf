package reqconf

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

// Response exposes the result of an executed call: raw body access,
// JSON decoding and introspection of the underlying client response.
type Response interface {
	Bytes() []byte
	Reader() io.Reader
	String() string
	JSON(v any) error
	StatusCode() int
	Headers() map[string]string
	Cookies() []*http.Cookie
	RequestURL() string
	Close() error
}

type ClientResponse struct {
	rawResp   *http.Response
	body      []byte
	streaming bool
}

// Bytes returns the response body. In streaming mode the first call
// drains and closes the live body; the result is cached.
func (r *ClientResponse) Bytes() []byte {
	if r == nil || r.rawResp == nil {
		return []byte{}
	}

	if r.streaming && r.body == nil {
		r.body, _ = io.ReadAll(r.rawResp.Body)
		_ = r.rawResp.Body.Close()
	}

	if r.body == nil {
		return []byte{}
	}

	return r.body
}

// Reader returns a reader over the response body. In streaming mode
// this is the live, undrained body and the caller owns Close.
func (r *ClientResponse) Reader() io.Reader {
	if r == nil || r.rawResp == nil {
		return bytes.NewReader([]byte{})
	}

	if r.streaming && r.body == nil {
		return r.rawResp.Body
	}

	return bytes.NewReader(r.body)
}

func (r *ClientResponse) String() string {
	return string(r.Bytes())
}

// JSON decodes the response body into v.
func (r *ClientResponse) JSON(v any) error {
	return json.Unmarshal(r.Bytes(), v)
}

func (r *ClientResponse) StatusCode() int {
	if r == nil || r.rawResp == nil {
		return 0
	}

	return r.rawResp.StatusCode
}

func (r *ClientResponse) Headers() map[string]string {
	headers := make(map[string]string)
	if r == nil || r.rawResp == nil {
		return headers
	}

	for key, values := range r.rawResp.Header {
		headers[key] = values[0]
	}
	return headers
}

func (r *ClientResponse) Cookies() []*http.Cookie {
	if r == nil || r.rawResp == nil {
		return nil
	}

	return r.rawResp.Cookies()
}

func (r *ClientResponse) RequestURL() string {
	if r == nil || r.rawResp == nil {
		return ""
	}

	return r.rawResp.Request.URL.String()
}

// Close releases the live body in streaming mode. Buffered responses
// are already closed by the client.
func (r *ClientResponse) Close() error {
	if r == nil || r.rawResp == nil {
		return nil
	}

	if r.streaming && r.body == nil {
		return r.rawResp.Body.Close()
	}

	return nil
}
