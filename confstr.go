package reqconf

import (
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Entry is a single key/value pair of a configuration string.
type Entry struct {
	Key   string
	Value string
}

// Config is an ordered sequence of configuration entries parsed from
// a flat "key=value,key2=value2" string. Duplicate keys are preserved
// in order; lookups resolve to the last occurrence.
type Config struct {
	entries []Entry
}

// ParseConfig parses a configuration string, splitting it on unescaped
// commas into "key=value" tokens. A comma preceded by a backslash is
// part of the value, not a separator. Tokens without '=' are dropped.
func ParseConfig(s string) Config {
	cfg, _ := parseConfig(s, false)
	return cfg
}

// ParseConfigStrict parses like ParseConfig, but instead of dropping
// malformed tokens it reports every one of them as a *ParseError,
// combined into a single error value.
func ParseConfigStrict(s string) (Config, error) {
	return parseConfig(s, true)
}

func parseConfig(s string, strict bool) (Config, error) {
	var (
		cfg    Config
		errs   *multierror.Error
		offset int
	)

	for _, token := range splitEntries(s) {
		key, value, found := cutEntry(token)
		if !found {
			if strict && token != "" {
				errs = multierror.Append(errs, newParseError(token, offset))
			}
			offset += len(token) + 1
			continue
		}

		cfg.entries = append(cfg.entries, Entry{Key: key, Value: UnescapeValue(value)})
		offset += len(token) + 1
	}

	return cfg, errs.ErrorOrNil()
}

// splitEntries splits s on separator commas only. The escape sequence
// `\,` is carried through verbatim for later unescaping.
func splitEntries(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens []string
		start  int
	)

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 < len(s) && s[i+1] == ',' {
				i++
			}
		case ',':
			tokens = append(tokens, s[start:i])
			start = i + 1
		}
	}

	return append(tokens, s[start:])
}

func cutEntry(token string) (key, value string, found bool) {
	sep := strings.IndexByte(token, '=')
	if sep < 0 {
		return "", "", false
	}

	return token[:sep], token[sep+1:], true
}

// Len returns the number of parsed entries, duplicates included.
func (c Config) Len() int {
	return len(c.entries)
}

// Entries returns all entries in their original order.
func (c Config) Entries() []Entry {
	return c.entries
}

// Get returns the value for key. On duplicate keys the later
// occurrence wins.
func (c Config) Get(key string) (string, bool) {
	for i := len(c.entries) - 1; i >= 0; i-- {
		if c.entries[i].Key == key {
			return c.entries[i].Value, true
		}
	}

	return "", false
}

// URL returns the value of the reserved "url" key.
func (c Config) URL() string {
	value, _ := c.Get(KeyURL)
	return value
}

// Headers collects every "Header_<Name>" entry into a header map with
// the prefix stripped. Later duplicates overwrite earlier ones.
func (c Config) Headers() map[string]string {
	headers := make(map[string]string)
	for _, entry := range c.entries {
		if name, ok := strings.CutPrefix(entry.Key, HeaderKeyPrefix); ok && name != "" {
			headers[name] = entry.Value
		}
	}

	return headers
}

// Properties returns the entries other than the "url" target and
// headers, in their original order. Duplicates are collapsed to the
// last occurrence.
func (c Config) Properties() []Entry {
	var (
		props []Entry
		seen  = make(map[string]int)
	)

	for _, entry := range c.entries {
		if entry.Key == KeyURL || strings.HasPrefix(entry.Key, HeaderKeyPrefix) {
			continue
		}

		if i, ok := seen[entry.Key]; ok {
			props[i] = entry
			continue
		}

		seen[entry.Key] = len(props)
		props = append(props, entry)
	}

	return props
}

// String serializes the configuration back into its flat form,
// escaping separator commas inside values. The result is parseable by
// ParseConfig.
func (c Config) String() string {
	var sb strings.Builder
	for i, entry := range c.entries {
		if i > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(entry.Key)
		sb.WriteByte('=')
		sb.WriteString(EscapeValue(entry.Value))
	}

	return sb.String()
}

// EscapeValue replaces every literal comma with the `\,` escape
// sequence. No other characters are escaped.
func EscapeValue(s string) string {
	return strings.ReplaceAll(s, ",", `\,`)
}

// UnescapeValue reverses EscapeValue.
func UnescapeValue(s string) string {
	return strings.ReplaceAll(s, `\,`, ",")
}
