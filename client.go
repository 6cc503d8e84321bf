package reqconf

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client executes HTTP calls described by configuration strings.
// It carries no state between calls; each call builds, uses and
// discards one request.
type Client struct {
	timeout          time.Duration
	transport        http.RoundTripper
	tlsConfig        *tls.Config
	strict           bool
	logger           zerolog.Logger
	preRequestHookFn PreRequestHookFn
}

// New creates a Client with the provided options applied over
// process-wide defaults.
func New(opts ...Option) *Client {
	settings := defaultClientSettings()
	for _, opt := range opts {
		opt(settings)
	}

	return &Client{
		timeout:          settings.timeout,
		transport:        settings.transport,
		tlsConfig:        settings.tlsConfig,
		strict:           settings.strict,
		logger:           settings.logger,
		preRequestHookFn: settings.preRequestHookFn,
	}
}

// Get executes a GET request described by the configuration string.
func (c *Client) Get(ctx context.Context, conf string) (Response, error) {
	return c.call(ctx, http.MethodGet, conf, nil)
}

// Post executes a POST request described by the configuration string.
// A non-string body is serialized to JSON.
func (c *Client) Post(ctx context.Context, conf string, body any) (Response, error) {
	return c.call(ctx, http.MethodPost, conf, body)
}

// Put executes a PUT request described by the configuration string.
// A non-string body is serialized to JSON.
func (c *Client) Put(ctx context.Context, conf string, body any) (Response, error) {
	return c.call(ctx, http.MethodPut, conf, body)
}

// Delete executes a DELETE request described by the configuration string.
func (c *Client) Delete(ctx context.Context, conf string, body any) (Response, error) {
	return c.call(ctx, http.MethodDelete, conf, body)
}

// callConfig holds per-call settings extracted from configuration
// properties.
type callConfig struct {
	timeout      time.Duration
	userAgent    string
	contentType  string
	accept       string
	basicUser    string
	basicPass    string
	hasBasicAuth bool
	bearerToken  string
	insecure     bool
	streamMode   bool
}

// propertySetters is the allow-list mapping configuration keys to
// call settings. Keys outside this table never mutate client state.
var propertySetters = map[string]func(*callConfig, string) error{
	PropTimeout: func(call *callConfig, value string) error {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid timeout value %q: %w", value, err)
		}

		call.timeout = timeout
		return nil
	},
	PropUserAgent: func(call *callConfig, value string) error {
		call.userAgent = value
		return nil
	},
	PropContentType: func(call *callConfig, value string) error {
		call.contentType = value
		return nil
	},
	PropAccept: func(call *callConfig, value string) error {
		call.accept = value
		return nil
	},
	PropBasicAuth: func(call *callConfig, value string) error {
		user, pass, found := strings.Cut(value, ":")
		if !found {
			return fmt.Errorf("invalid basic_auth value %q: expected 'user:password'", value)
		}

		call.basicUser, call.basicPass, call.hasBasicAuth = user, pass, true
		return nil
	},
	PropBearerToken: func(call *callConfig, value string) error {
		call.bearerToken = value
		return nil
	},
	PropInsecure: func(call *callConfig, value string) error {
		insecure, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid insecure value %q: %w", value, err)
		}

		call.insecure = insecure
		return nil
	},
	KeyStreamMode: func(call *callConfig, value string) error {
		stream, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid stream_mode value %q: %w", value, err)
		}

		call.streamMode = stream
		return nil
	},
}

func (c *Client) call(ctx context.Context, method, conf string, body any) (Response, error) {
	cfg, err := c.parse(conf)
	if err != nil {
		return nil, err
	}

	call, err := c.resolveCall(cfg)
	if err != nil {
		return nil, err
	}

	rb := NewRequest().
		ApplyConfig(cfg).
		SetMethod(method).
		SetBody(body).
		SetContext(ctx)

	if call.userAgent != "" {
		rb.SetHeader("User-Agent", call.userAgent)
	}
	if call.contentType != "" {
		rb.SetHeader("Content-Type", call.contentType)
	}
	if call.accept != "" {
		rb.SetHeader("Accept", call.accept)
	}
	req, err := rb.Build()
	if err != nil {
		return nil, err
	}

	if err = c.preRequestHookFn(req); err != nil {
		return nil, err
	}

	// A call timeout would cancel the live body once Do returns, so
	// stream_mode relies on the caller's context alone.
	if !call.streamMode {
		cancellableCtx, cancel := context.WithTimeout(req.Context(), call.timeout)
		defer cancel()
		req = req.WithContext(cancellableCtx)
	}

	resp, err := doRequest(c.httpClientFor(call), req, call.streamMode)

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode()).
		Err(err).
		Msg("request executed")

	return resp, err
}

func (c *Client) parse(conf string) (Config, error) {
	if !c.strict {
		return ParseConfig(conf), nil
	}

	cfg, err := ParseConfigStrict(conf)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config string: %w", err)
	}

	return cfg, nil
}

// resolveCall interprets property entries through the allow-list.
// Unknown keys and invalid values are skipped in lenient mode and
// rejected in strict mode.
func (c *Client) resolveCall(cfg Config) (callConfig, error) {
	call := callConfig{
		timeout:  c.timeout,
		insecure: ProcessSettings().Insecure,
	}

	for _, prop := range cfg.Properties() {
		setFn, ok := propertySetters[prop.Key]
		if !ok {
			if c.strict {
				return call, fmt.Errorf("unknown config property %q", prop.Key)
			}

			c.logger.Debug().Str("key", prop.Key).Msg("skipping unknown config property")
			continue
		}

		if err := setFn(&call, prop.Value); err != nil {
			if c.strict {
				return call, err
			}

			c.logger.Debug().Err(err).Str("key", prop.Key).Msg("skipping invalid config property")
		}
	}

	return call, nil
}

// httpClientFor assembles the http.Client executing one call: the
// configured transport, or the default TLS-capable one, wrapped with
// auth RoundTrippers when the config asks for them.
func (c *Client) httpClientFor(call callConfig) *http.Client {
	transport := c.transport
	if transport == nil {
		switch {
		case call.insecure:
			transport = InsecureTransport()
		case c.tlsConfig != nil:
			tr := DefaultTransport()
			tr.TLSClientConfig = c.tlsConfig
			transport = tr
		default:
			transport = DefaultTransport()
		}
	}

	if call.hasBasicAuth {
		transport = BuildBasicAuthTransport(call.basicUser, call.basicPass, transport)
	}
	if call.bearerToken != "" {
		transport = BuildBearerAuthTransport(call.bearerToken, transport)
	}

	return &http.Client{Transport: transport}
}

func doRequest(httpClient *http.Client, req *http.Request, stream bool) (r *ClientResponse, err error) {
	r = new(ClientResponse)
	r.streaming = stream

	r.rawResp, err = httpClient.Do(req)
	if err != nil {
		return r, err
	}

	if stream {
		if Is4xx(r.rawResp.StatusCode) || Is5xx(r.rawResp.StatusCode) {
			return r, newResponseError("got http response error code", r.rawResp.StatusCode)
		}

		return r, nil
	}

	defer func(body io.Closer) {
		closeErr := body.Close()
		if closeErr != nil {
			err = closeErr
		}
	}(r.rawResp.Body)

	r.body, err = io.ReadAll(r.rawResp.Body)
	if err != nil {
		return r, fmt.Errorf("failed to read response bytes: %w", err)
	}

	if Is4xx(r.rawResp.StatusCode) || Is5xx(r.rawResp.StatusCode) {
		return r, newResponseError("got http response error code", r.rawResp.StatusCode)
	}

	return r, nil
}
