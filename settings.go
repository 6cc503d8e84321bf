package reqconf

import (
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Settings holds process-wide defaults, read once from REQCONF_*
// environment variables on first use.
type Settings struct {
	Timeout  time.Duration `envconfig:"TIMEOUT" default:"1m"`
	Insecure bool          `envconfig:"INSECURE"`

	// NetworkTests enables integration-style tests performing real
	// network calls. Not consulted on the request path.
	NetworkTests bool `envconfig:"NETWORK_TESTS"`
}

var (
	_settingsOnce sync.Once
	_settings     Settings
)

// ProcessSettings returns the process-wide settings. Unset or
// malformed variables fall back to defaults.
func ProcessSettings() Settings {
	_settingsOnce.Do(func() {
		_settings = Settings{Timeout: DefaultRequestTimeout}
		_ = envconfig.Process("reqconf", &_settings)
	})

	return _settings
}
