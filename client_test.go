package reqconf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const _testMsg = "test message"

func createTestServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch {
		case req.URL.Path == "/test" && req.Method == http.MethodGet:
			_, _ = fmt.Fprintf(w, `{"msg": "%s"}`, _testMsg)

		case req.URL.Path == "/echo":
			body, _ := io.ReadAll(req.Body)
			if contentType := req.Header.Get("Content-Type"); contentType != "" {
				w.Header().Set("Content-Type", contentType)
			}
			w.Header().Set("X-Echo-Method", req.Method)
			_, _ = w.Write(body)

		case req.URL.Path == "/headers" && req.Method == http.MethodGet:
			if req.Header.Get("X-Test") != "v1" || req.Header.Get("X-Test2") != "v2" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if req.Header.Get("Timeout") != "" || req.Header.Get("Header_X-Test") != "" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.WriteHeader(http.StatusOK)

		case req.URL.Path == "/basic-auth":
			user, pass, ok := req.BasicAuth()
			if !ok || user != "user" || pass != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.WriteHeader(http.StatusOK)

		case req.URL.Path == "/bearer-auth":
			if req.Header.Get("Authorization") != "Bearer xxx" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.WriteHeader(http.StatusOK)

		case req.URL.Path == "/slow":
			select {
			case <-time.After(time.Second * 10):
			case <-req.Context().Done():
			}
			w.WriteHeader(http.StatusRequestTimeout)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestClientGet(t *testing.T) {
	ts := createTestServer()
	defer ts.Close()

	c := New()
	resp, err := c.Get(context.Background(), "url="+ts.URL+"/test")
	if err != nil {
		t.Fatalf("expected no error, but got error '%v'", err)
	}

	var testResp struct {
		Msg string `json:"msg"`
	}
	if err = resp.JSON(&testResp); err != nil {
		t.Fatalf("expected no error during response unmarshalling, got '%v'", err)
	}

	if testResp.Msg != _testMsg {
		t.Errorf("expected response message %q, got %q", _testMsg, testResp.Msg)
	}
}

func TestClientVerbMethods(t *testing.T) {
	ts := createTestServer()
	defer ts.Close()

	c := New()
	conf := "url=" + ts.URL + "/echo"

	tests := []struct {
		method string
		callFn func() (Response, error)
	}{
		{method: http.MethodGet, callFn: func() (Response, error) { return c.Get(context.Background(), conf) }},
		{method: http.MethodPost, callFn: func() (Response, error) { return c.Post(context.Background(), conf, "payload") }},
		{method: http.MethodPut, callFn: func() (Response, error) { return c.Put(context.Background(), conf, "payload") }},
		{method: http.MethodDelete, callFn: func() (Response, error) { return c.Delete(context.Background(), conf, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			resp, err := tt.callFn()
			if err != nil {
				t.Fatalf("expected no error, got '%v'", err)
			}

			if echoed := resp.Headers()["X-Echo-Method"]; echoed != tt.method {
				t.Errorf("expected method %q to be executed, got %q", tt.method, echoed)
			}
		})
	}
}

func TestClientHeaderProjection(t *testing.T) {
	ts := createTestServer()
	defer ts.Close()

	c := New()
	resp, err := c.Get(context.Background(), "url="+ts.URL+"/headers,Header_X-Test=v1,Header_X-Test2=v2,timeout=5s")
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}

	if resp.StatusCode() != http.StatusOK {
		t.Errorf("expected header set to match exactly, got status %d", resp.StatusCode())
	}
}

func TestClientStructuredBody(t *testing.T) {
	ts := createTestServer()
	defer ts.Close()

	c := New()
	resp, err := c.Post(context.Background(), "url="+ts.URL+"/echo", map[string]any{"name": "widget", "count": 2})
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}

	if contentType := resp.Headers()["Content-Type"]; contentType != "application/json" {
		t.Errorf("expected structured body to be tagged as JSON, got %q", contentType)
	}

	var echoed struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if err = resp.JSON(&echoed); err != nil {
		t.Fatalf("expected no error during response unmarshalling, got '%v'", err)
	}

	if echoed.Name != "widget" || echoed.Count != 2 {
		t.Errorf("unexpected echoed body: %+v", echoed)
	}
}

func TestClientStringBodyPassthrough(t *testing.T) {
	ts := createTestServer()
	defer ts.Close()

	c := New()
	resp, err := c.Post(context.Background(), "url="+ts.URL+"/echo", "raw payload")
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}

	if contentType := resp.Headers()["Content-Type"]; contentType == "application/json" {
		t.Error("expected string body not to be tagged as JSON")
	}

	if resp.String() != "raw payload" {
		t.Errorf("expected body to pass through, got %q", resp.String())
	}
}

func TestClientResponseError(t *testing.T) {
	ts := createTestServer()
	defer ts.Close()

	c := New()
	resp, err := c.Get(context.Background(), "url="+ts.URL+"/missing")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}

	var respErr *ResponseError
	if !errors.As(err, &respErr) {
		t.Fatalf("expected *ResponseError, got '%v'", err)
	}

	if respErr.Code != http.StatusNotFound {
		t.Errorf("expected code %d, got %d", http.StatusNotFound, respErr.Code)
	}

	if resp.StatusCode() != http.StatusNotFound {
		t.Errorf("expected response to carry status %d, got %d", http.StatusNotFound, resp.StatusCode())
	}
}

func TestClientStrictConfig(t *testing.T) {
	ts := createTestServer()
	defer ts.Close()

	tests := []struct {
		name string
		conf string
	}{
		{name: "MalformedEntry", conf: "url=" + ts.URL + "/test,bogus"},
		{name: "UnknownProperty", conf: "url=" + ts.URL + "/test,not_a_property=1"},
		{name: "InvalidPropertyValue", conf: "url=" + ts.URL + "/test,timeout=soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(WithStrictConfig())
			if _, err := c.Get(context.Background(), tt.conf); err == nil {
				t.Error("expected strict mode to reject config")
			}
		})
	}
}

func TestClientLenientConfig(t *testing.T) {
	ts := createTestServer()
	defer ts.Close()

	c := New()
	resp, err := c.Get(context.Background(), "url="+ts.URL+"/test,bogus,not_a_property=1,timeout=soon")
	if err != nil {
		t.Fatalf("expected lenient mode to skip bad entries, got '%v'", err)
	}

	if resp.StatusCode() != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, resp.StatusCode())
	}
}

func TestClientTimeoutProperty(t *testing.T) {
	ts := createTestServer()
	defer ts.Close()

	c := New()
	_, err := c.Get(context.Background(), "url="+ts.URL+"/slow,timeout=100ms")
	if err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestClientStreamMode(t *testing.T) {
	ts := createTestServer()
	defer ts.Close()

	c := New()
	resp, err := c.Get(context.Background(), "url="+ts.URL+"/test,stream_mode=true")
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}
	defer func() { _ = resp.Close() }()

	data, err := io.ReadAll(resp.Reader())
	if err != nil {
		t.Fatalf("expected no error reading stream, got '%v'", err)
	}

	expected := fmt.Sprintf(`{"msg": "%s"}`, _testMsg)
	if string(data) != expected {
		t.Errorf("expected body %q, got %q", expected, string(data))
	}
}

func TestClientBasicAuthProperty(t *testing.T) {
	ts := createTestServer()
	defer ts.Close()

	c := New()
	resp, err := c.Get(context.Background(), "url="+ts.URL+"/basic-auth,basic_auth=user:secret")
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}

	if resp.StatusCode() != http.StatusOK {
		t.Errorf("expected credentials to be applied, got status %d", resp.StatusCode())
	}
}

func TestClientBearerTokenProperty(t *testing.T) {
	ts := createTestServer()
	defer ts.Close()

	c := New()
	resp, err := c.Get(context.Background(), "url="+ts.URL+"/bearer-auth,bearer_token=xxx")
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}

	if resp.StatusCode() != http.StatusOK {
		t.Errorf("expected token to be applied, got status %d", resp.StatusCode())
	}
}

func TestClientEmptyConfig(t *testing.T) {
	c := New()
	if _, err := c.Get(context.Background(), ""); err == nil {
		t.Error("expected error for config without url")
	}
}

func TestPackageLevelGet(t *testing.T) {
	ts := createTestServer()
	defer ts.Close()

	resp, err := Get(context.Background(), "url="+ts.URL+"/test")
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}

	if resp.StatusCode() != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, resp.StatusCode())
	}
}

// TestNetworkRoundTrip performs a real network call. Enabled by
// setting REQCONF_NETWORK_TESTS=true.
func TestNetworkRoundTrip(t *testing.T) {
	if !ProcessSettings().NetworkTests {
		t.Skip("network tests disabled, set REQCONF_NETWORK_TESTS=true to enable")
	}

	resp, err := Get(context.Background(), "url=https://httpbin.org/get,Header_Accept=application/json,timeout=30s")
	if err != nil {
		t.Fatalf("expected no error, got '%v'", err)
	}

	var decoded map[string]any
	if err = resp.JSON(&decoded); err != nil {
		t.Fatalf("expected JSON response, got '%v'", err)
	}
}
