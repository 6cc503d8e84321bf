package reqconf

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// RequestBuilder struct provides convenient interface
// for *http.Request instances construction.
type RequestBuilder struct {
	err error

	ctx                  context.Context
	url                  *url.URL
	method               string
	body                 any
	headers              map[string][]string
	queryParams          url.Values
	basicAuthCredentials *struct {
		user string
		pass string
	}
}

// NewRequest creates new RequestBuilder instance, which used for
// http.Request building.
func NewRequest() *RequestBuilder {
	return &RequestBuilder{
		headers:     make(map[string][]string),
		queryParams: make(url.Values),
	}
}

// ApplyConfig projects a parsed configuration onto the request being
// built: the reserved "url" entry becomes the target, every
// "Header_<Name>" entry becomes a header. Property entries are not
// consumed here; the client interprets those.
func (rb *RequestBuilder) ApplyConfig(cfg Config) *RequestBuilder {
	if target := cfg.URL(); target != "" {
		rb.SetURL(target)
	}

	return rb.SetHeaders(cfg.Headers())
}

// SetURL sets target URL for current request.
func (rb *RequestBuilder) SetURL(requestURL string) *RequestBuilder {
	rb.url, rb.err = parseURL(requestURL)
	return rb
}

// SetMethod sets method for current request.
func (rb *RequestBuilder) SetMethod(method string) *RequestBuilder {
	rb.method = method
	return rb
}

// SetBody method sets body for current request.
// Body can be a string, []byte or io.Reader; any other non-nil value
// is serialized to JSON on Build.
func (rb *RequestBuilder) SetBody(body any) *RequestBuilder {
	rb.body = body
	return rb
}

// SetContext sets context for current request. If provided context is nil,
// new one will be created with context.Background().
func (rb *RequestBuilder) SetContext(ctx context.Context) *RequestBuilder {
	rb.ctx = ctx
	return rb
}

// SetHeader sets header with provided key and value.
func (rb *RequestBuilder) SetHeader(key, value string) *RequestBuilder {
	if rb.headers == nil {
		rb.headers = make(map[string][]string)
	}

	rb.headers[key] = append(rb.headers[key], value)
	return rb
}

// SetHeaders creates and sets headers for each key/value pair in provided map.
func (rb *RequestBuilder) SetHeaders(headers map[string]string) *RequestBuilder {
	for key, value := range headers {
		rb.SetHeader(key, value)
	}

	return rb
}

// SetQueryString provides option to set query string parameters by passing
// raw string.
func (rb *RequestBuilder) SetQueryString(query string) *RequestBuilder {
	if rb.queryParams == nil {
		rb.queryParams = make(url.Values)
	}

	queryParams, err := url.ParseQuery(query)
	if err != nil {
		rb.err = fmt.Errorf("malformed query: %w", err)
		return rb
	}

	for key, values := range queryParams {
		for _, value := range values {
			rb.queryParams.Add(key, value)
		}
	}

	return rb
}

// SetQueryParam sets query parameter with following key and value.
func (rb *RequestBuilder) SetQueryParam(key, value string) *RequestBuilder {
	if strings.TrimSpace(key) == "" {
		return rb
	}

	if rb.queryParams == nil {
		rb.queryParams = make(url.Values)
	}

	rb.queryParams.Set(key, value)
	return rb
}

// SetQueryParams sets multiple query parameters by calling SetQueryParam for each
// key/value in map.
func (rb *RequestBuilder) SetQueryParams(params map[string]string) *RequestBuilder {
	if rb.queryParams == nil {
		rb.queryParams = make(url.Values, len(params))
	}

	for key, value := range params {
		rb.SetQueryParam(key, value)
	}

	return rb
}

// SetBasicAuth encodes and sets basic HTTP authentication credentials.
func (rb *RequestBuilder) SetBasicAuth(user, pass string) *RequestBuilder {
	rb.basicAuthCredentials = &struct {
		user string
		pass string
	}{
		user: user,
		pass: pass,
	}
	return rb
}

// Build composes *http.Request instance. If errors occurred during previous building steps,
// they will be returned.
func (rb *RequestBuilder) Build() (*http.Request, error) {
	if rb.err != nil {
		return nil, rb.err
	}
	if rb.url == nil {
		return nil, errors.New("request url is not set")
	}

	reqBody, isJSON, err := convertBodyToReader(rb.body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request body: %w", err)
	}

	reqURL := composeURL(rb.url, rb.queryParams)
	reqMethod := composeMethod(rb.method)

	reqCtx := rb.ctx
	if reqCtx == nil {
		reqCtx = context.Background()
	}

	req, err := http.NewRequestWithContext(reqCtx, reqMethod, reqURL, reqBody)
	if err != nil {
		return nil, err
	}

	if rb.basicAuthCredentials != nil {
		req.SetBasicAuth(rb.basicAuthCredentials.user, rb.basicAuthCredentials.pass)
	}

	for key, values := range rb.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	if isJSON && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	return req, nil
}

func composeURL(reqURL *url.URL, params url.Values) string {
	encodedQuery := params.Encode()
	if encodedQuery == "" {
		return reqURL.String()
	}

	if reqURL.RawQuery == "" {
		reqURL.RawQuery = encodedQuery
	} else {
		reqURL.RawQuery += "&" + encodedQuery
	}

	return reqURL.String()
}

func composeMethod(method string) string {
	if method == "" {
		return http.MethodGet
	}

	return strings.ToUpper(method)
}

func parseURL(requestURL string) (*url.URL, error) {
	if !IsValidURL(requestURL) {
		return nil, fmt.Errorf("invalid URL '%s'", requestURL)
	}

	return url.Parse(requestURL)
}
