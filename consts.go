package reqconf

import "time"

const (
	// KeyURL is the reserved configuration key holding the request target.
	KeyURL = "url"
	// KeyStreamMode is the reserved configuration key toggling response streaming.
	KeyStreamMode = "stream_mode"

	// HeaderKeyPrefix marks configuration keys projected into request headers:
	// "Header_X-Test=v" becomes the "X-Test: v" header.
	HeaderKeyPrefix = "Header_"

	PropTimeout     = "timeout"
	PropUserAgent   = "user_agent"
	PropContentType = "content_type"
	PropAccept      = "accept"
	PropBasicAuth   = "basic_auth"
	PropBearerToken = "bearer_token"
	PropInsecure    = "insecure"
)

const (
	DefaultRequestTimeout       = time.Minute
	_defaultTLSHandshakeTimeout = time.Minute
	_defaultConnsPerHost        = 100
)

const contentTypeJSON = "application/json"
