package reqconf

import (
	"fmt"
	"io"
	"strings"

	"github.com/valyala/fasttemplate"
)

// Format substitutes every {name} placeholder in tmpl with the
// matching value from vars. A placeholder without a matching entry is
// an error; the result never contains placeholder markers.
func Format(tmpl string, vars map[string]string) (string, error) {
	return executeTemplate(tmpl, vars, func(s string) string { return s })
}

// FormatEscaped works like Format, but escapes separator commas in
// every substituted value, so the result is safe to feed back into
// ParseConfig. The template text itself is not escaped.
func FormatEscaped(tmpl string, vars map[string]string) (string, error) {
	return executeTemplate(tmpl, vars, EscapeValue)
}

func executeTemplate(tmpl string, vars map[string]string, mapFn func(string) string) (string, error) {
	t, err := fasttemplate.NewTemplate(tmpl, "{", "}")
	if err != nil {
		return "", fmt.Errorf("failed to compile template: %w", err)
	}

	var sb strings.Builder
	_, err = t.ExecuteFunc(&sb, func(w io.Writer, tag string) (int, error) {
		value, ok := vars[tag]
		if !ok {
			return 0, fmt.Errorf("no value for placeholder %q", tag)
		}

		return io.WriteString(w, mapFn(value))
	})
	if err != nil {
		return "", err
	}

	return sb.String(), nil
}
