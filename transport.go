package reqconf

import (
	"crypto/tls"
	"net/http"
)

type basicAuthTransport struct {
	user     string
	password string
	next     http.RoundTripper
}

func (tr *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Authorization") == "" {
		req.SetBasicAuth(tr.user, tr.password)
	}

	return tr.next.RoundTrip(req)
}

// BuildBasicAuthTransport wraps next with a RoundTripper injecting
// basic auth credentials into requests carrying no Authorization
// header. Reached through the "basic_auth" configuration property.
func BuildBasicAuthTransport(user, password string, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = DefaultTransport()
	}

	return &basicAuthTransport{
		user:     user,
		password: password,
		next:     next,
	}
}

type bearerAuthTransport struct {
	token string
	next  http.RoundTripper
}

func (tr *bearerAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+tr.token)
	return tr.next.RoundTrip(req)
}

// BuildBearerAuthTransport wraps next with a RoundTripper setting a
// bearer token on every request. Reached through the "bearer_token"
// configuration property.
func BuildBearerAuthTransport(token string, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = DefaultTransport()
	}

	return &bearerAuthTransport{
		token: token,
		next:  next,
	}
}

// DefaultTransport clones http.DefaultTransport with pooled
// connections and a TLS handshake timeout. Secure schemes work out of
// the box; this is the transport installed when none is configured.
func DefaultTransport() *http.Transport {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.MaxConnsPerHost = _defaultConnsPerHost
	tr.MaxIdleConns = _defaultConnsPerHost
	tr.MaxIdleConnsPerHost = _defaultConnsPerHost
	tr.TLSHandshakeTimeout = _defaultTLSHandshakeTimeout

	return tr
}

// InsecureTransport is DefaultTransport with certificate verification
// disabled, for the "insecure=true" configuration property.
func InsecureTransport() *http.Transport {
	tr := DefaultTransport()
	tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec

	return tr
}
