package reqconf

import (
	"bytes"
	"encoding/json"
	"io"
	"net/url"
	"strings"
)

// convertBodyToReader turns the builder body into an io.Reader.
// Strings, byte slices and readers pass through untouched; any other
// non-nil value is treated as a structured value and marshaled to
// JSON, which is reported through the second return value so callers
// can tag the content type.
func convertBodyToReader(body any) (io.Reader, bool, error) {
	switch b := body.(type) {
	case nil:
		return nil, false, nil
	case string:
		return strings.NewReader(b), false, nil
	case []byte:
		return bytes.NewReader(b), false, nil
	case io.Reader:
		return b, false, nil
	default:
		reqBodyBytes, err := json.Marshal(b)
		if err != nil {
			return nil, false, err
		}

		return bytes.NewReader(reqBodyBytes), true, nil
	}
}

// Is1xx check whether provided status code is in range of 100 and 200.
func Is1xx(code int) bool {
	return code >= 100 && code < 200
}

// Is2xx check whether provided status code is in range of 200 and 300.
func Is2xx(code int) bool {
	return code >= 200 && code < 300
}

// Is3xx check whether provided status code is in range of 300 and 400.
func Is3xx(code int) bool {
	return code >= 300 && code < 400
}

// Is4xx check whether provided status code is in range of 400 and 500.
func Is4xx(code int) bool {
	return code >= 400 && code < 500
}

// Is5xx check whether provided status code is in range of 500 and 600.
func Is5xx(code int) bool {
	return code >= 500 && code < 600
}

// IsValidURL checks whether provided URL is valid or not.
func IsValidURL(rawURL string) bool {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false
	}

	if strings.TrimSpace(parsedURL.Host) == "" {
		return false
	}

	if len(strings.Split(parsedURL.Host, ".")) < 2 {
		return false
	}

	if strings.Contains(parsedURL.Host, "http:") || strings.Contains(parsedURL.Host, "https:") {
		return false
	}

	return true
}
