package reqconf

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type clientSettings struct {
	timeout          time.Duration
	transport        http.RoundTripper
	tlsConfig        *tls.Config
	strict           bool
	logger           zerolog.Logger
	preRequestHookFn PreRequestHookFn
}

func defaultClientSettings() *clientSettings {
	return &clientSettings{
		timeout:          ProcessSettings().Timeout,
		logger:           zerolog.Nop(),
		preRequestHookFn: func(_ *http.Request) error { return nil },
	}
}

// Option is a function type used for altering client-scoped settings like
// timeout, transport, parsing strictness and others.
type Option func(settings *clientSettings)

// WithTimeout specifies timeout for requests being executed. If response wasn't
// received within specified timeout, all verb methods return
// context.DeadlineExceeded. A "timeout" configuration property overrides it
// per call.
func WithTimeout(timeout time.Duration) Option {
	return func(settings *clientSettings) {
		settings.timeout = timeout
	}
}

// WithTransport is used to change http.RoundTripper used.
func WithTransport(transport http.RoundTripper) Option {
	return func(settings *clientSettings) {
		if transport != nil {
			settings.transport = transport
		}
	}
}

// WithTLSConfig sets the TLS configuration installed on the default
// transport for secure schemes. Ignored when WithTransport is used.
func WithTLSConfig(tlsConfig *tls.Config) Option {
	return func(settings *clientSettings) {
		settings.tlsConfig = tlsConfig
	}
}

// WithStrictConfig makes the client reject configuration strings with
// malformed entries, unknown property keys or invalid property values
// instead of skipping them.
func WithStrictConfig() Option {
	return func(settings *clientSettings) {
		settings.strict = true
	}
}

// WithLogger sets logger used for debug output of request execution and
// skipped configuration entries. Logging is disabled by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(settings *clientSettings) {
		settings.logger = logger
	}
}

// PreRequestHookFn is function, which is called before request execution. If request execution must not take place,
// PreRequestHookFn must return non-nil error.
type PreRequestHookFn func(req *http.Request) error

// WithPreRequestHook set PreRequestHookFn compliant function.
func WithPreRequestHook(hookFn PreRequestHookFn) Option {
	return func(settings *clientSettings) {
		if hookFn != nil {
			settings.preRequestHookFn = hookFn
		}
	}
}
