package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"

	werrors "github.com/vango-dev/widgets/internal/errors"
	"github.com/vango-dev/widgets/pkg/dom"
	"github.com/vango-dev/widgets/pkg/middleware"
	"github.com/vango-dev/widgets/pkg/request"
)

func fetchCmd() *cobra.Command {
	var (
		method  string
		typ     string
		timeout time.Duration
		params  []string
		headers []string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "fetch URL",
		Short: "Run a request and print the decoded body",
		Long: `Run one request with the widgets request client.

JSON bodies are printed indented; text and documents are printed as is.
A failed request exits non-zero with the request error.

Examples:
  widgets fetch https://api.example.com/items
  widgets fetch -X post -p name=x https://api.example.com/items
  widgets fetch --type text --timeout 2s https://example.com`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form := url.Values{}
			for _, p := range params {
				k, v, ok := strings.Cut(p, "=")
				if !ok {
					return werrors.New("X001").WithDetailf("param %q is not key=value", p)
				}
				form.Add(k, v)
			}
			header := http.Header{}
			for _, h := range headers {
				k, v, ok := strings.Cut(h, ":")
				if !ok {
					return werrors.New("X001").WithDetailf("header %q is not Name: value", h)
				}
				header.Add(strings.TrimSpace(k), strings.TrimSpace(v))
			}

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			client := request.New(
				request.WithLogger(logger),
				request.WithMiddleware(middleware.Logging(logger), middleware.OpenTelemetry()),
			)

			opts := request.Options{URL: args[0], Timeout: timeout, Type: typ, Header: header}
			if len(form) > 0 {
				opts.Params = form
			}
			f, err := client.Request(cmd.Context(), method, opts, nil)
			if err != nil {
				return err
			}
			v, err := f.Await(cmd.Context())
			if err != nil {
				return err
			}
			return printValue(cmd, v)
		},
	}

	cmd.Flags().StringVarP(&method, "method", "X", "GET", "HTTP method")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "Response type: json, text, arraybuffer, blob or document")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Request timeout (default from req.tmo)")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Request parameter key=value (repeatable)")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Request header 'Name: value' (repeatable)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log each request")
	return cmd
}

func printValue(cmd *cobra.Command, v any) error {
	out := cmd.OutOrStdout()
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		fmt.Fprintln(out, x)
	case []byte:
		out.Write(x)
	case *dom.Document:
		return x.Render(out)
	default:
		data, err := json.MarshalIndent(x, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	}
	return nil
}
