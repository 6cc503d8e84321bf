package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hickar/reqconf"
)

var (
	flagStrict  bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "reqconf",
	Short: "curl-like client driven by flat configuration strings",
	Long: `reqconf executes HTTP requests described by flat configuration strings.

A configuration string is a comma-separated list of key=value entries:
the reserved "url" key sets the target, "Header_<Name>" entries become
request headers, and the remaining keys set per-call properties such as
"timeout" or "basic_auth". A literal comma inside a value is escaped
as '\,'.

Example:
  reqconf get 'url=https://api.test.com/items,Header_Accept=application/json'
  reqconf post 'url=https://api.test.com/items' '{"name":"widget"}'`,
}

func main() {
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict", false, "reject malformed or unknown configuration entries")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		verbCommand("get", "execute a GET request", false),
		verbCommand("post", "execute a POST request", true),
		verbCommand("put", "execute a PUT request", true),
		verbCommand("delete", "execute a DELETE request", true),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func verbCommand(verb, short string, hasBody bool) *cobra.Command {
	use := verb + " <config-string>"
	args := cobra.ExactArgs(1)
	if hasBody {
		use += " [body]"
		args = cobra.RangeArgs(1, 2)
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			var body any
			if len(args) > 1 {
				body = parseBody(args[1])
			}

			return run(cmd.Context(), verb, args[0], body)
		},
	}
}

// parseBody treats a valid JSON argument as a structured value, so the
// client tags it with the JSON content type; anything else is sent as
// a raw string.
func parseBody(arg string) any {
	var structured any
	if err := json.Unmarshal([]byte(arg), &structured); err == nil {
		return structured
	}

	return arg
}

func run(ctx context.Context, verb, conf string, body any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	opts := []reqconf.Option{
		reqconf.WithLogger(newLogger()),
	}
	if flagStrict {
		opts = append(opts, reqconf.WithStrictConfig())
	}

	client := reqconf.New(opts...)

	var (
		resp reqconf.Response
		err  error
	)

	switch verb {
	case "get":
		resp, err = client.Get(ctx, conf)
	case "post":
		resp, err = client.Post(ctx, conf, body)
	case "put":
		resp, err = client.Put(ctx, conf, body)
	case "delete":
		resp, err = client.Delete(ctx, conf, body)
	default:
		return fmt.Errorf("unsupported verb %q", verb)
	}

	var respErr *reqconf.ResponseError
	if err != nil && !errors.As(err, &respErr) {
		return err
	}

	printResponse(resp)
	if err != nil {
		os.Exit(1)
	}

	return nil
}

func printResponse(resp reqconf.Response) {
	fmt.Printf("%d %s\n", resp.StatusCode(), resp.RequestURL())
	for key, value := range resp.Headers() {
		fmt.Printf("%s: %s\n", key, value)
	}

	fmt.Println()
	fmt.Println(resp.String())
}

func newLogger() zerolog.Logger {
	if !flagVerbose {
		return zerolog.Nop()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
