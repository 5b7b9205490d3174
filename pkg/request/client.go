package request

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"sync"
	"time"

	werrors "github.com/vango-dev/widgets/internal/errors"
	"github.com/vango-dev/widgets/pkg/config"
	"github.com/vango-dev/widgets/pkg/dom"
	"github.com/vango-dev/widgets/pkg/urlparam"
)

// Middleware wraps the transport of a Client.
type Middleware func(next http.RoundTripper) http.RoundTripper

// Client issues calls. The zero value is not usable; create one with New.
type Client struct {
	http    *http.Client
	logger  *slog.Logger
	loop    *dom.Loop
	baseURL string
}

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	http       *http.Client
	middleware []Middleware
	logger     *slog.Logger
	loop       *dom.Loop
	baseURL    string
}

// WithHTTPClient sets the underlying client. Its Timeout is ignored in
// favour of the per-call timeout.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cfg *clientConfig) {
		cfg.http = c
	}
}

// WithMiddleware appends transport middleware. The first one added is the
// outermost.
func WithMiddleware(mw ...Middleware) ClientOption {
	return func(cfg *clientConfig) {
		cfg.middleware = append(cfg.middleware, mw...)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(cfg *clientConfig) {
		cfg.logger = logger
	}
}

// WithLoop makes futures deliver Then callbacks on loop.
func WithLoop(loop *dom.Loop) ClientOption {
	return func(cfg *clientConfig) {
		cfg.loop = loop
	}
}

// WithBaseURL resolves relative call URLs against base, the way a page
// resolves them against its location.
func WithBaseURL(base string) ClientOption {
	return func(cfg *clientConfig) {
		cfg.baseURL = base
	}
}

// New returns a client.
func New(opts ...ClientOption) *Client {
	cfg := clientConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	hc := &http.Client{}
	if cfg.http != nil {
		cp := *cfg.http
		hc = &cp
	}
	hc.Timeout = 0
	transport := hc.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	for i := len(cfg.middleware) - 1; i >= 0; i-- {
		transport = cfg.middleware[i](transport)
	}
	hc.Transport = transport

	return &Client{
		http:    hc,
		logger:  cfg.logger,
		loop:    cfg.loop,
		baseURL: cfg.baseURL,
	}
}

// Request starts a call. method is case-insensitive and defaults to GET.
// target is a URL string, an Options or an *Options; with a string target
// params supplies the payload, otherwise params is ignored.
//
// Caller errors (ErrMissingURL, ErrUnsupportedParams, ErrUnsupportedTarget
// and malformed URLs) are returned directly. Everything after validation is
// reported through the Future.
func (c *Client) Request(ctx context.Context, method string, target any, params any) (*Future, error) {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = http.MethodGet
	}

	var opts Options
	switch t := target.(type) {
	case string:
		opts = Options{URL: t, Params: params}
	case Options:
		opts = t
	case *Options:
		if t != nil {
			opts = *t
		}
	default:
		return nil, werrors.New("R003").WithDetailf("%T", target)
	}
	if opts.URL == "" {
		return nil, ErrMissingURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = config.Duration(config.KeyRequestTimeout, 0)
	}
	if opts.Type == "" {
		opts.Type = config.String(config.KeyRequestType, "")
	}

	req, err := c.build(ctx, method, opts)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := ctx, context.CancelFunc(func() {})
	if opts.Timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
	}
	req = req.WithContext(callCtx)

	f := newFuture(c.loop)
	go func() {
		defer cancel()
		v, err := c.do(ctx, callCtx, req, opts.Type)
		if err != nil {
			if hook := config.Hook(); hook != nil {
				hook(err)
			}
		}
		f.settle(v, err)
	}()
	return f, nil
}

func (c *Client) build(ctx context.Context, method string, opts Options) (*http.Request, error) {
	rawURL, err := urlparam.Resolve(c.baseURL, opts.URL)
	if err != nil {
		return nil, err
	}
	body, contentType, query, err := bodyOf(method, opts.Params)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		q := req.URL.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		req.URL.RawQuery = q.Encode()
	}
	for k, vs := range opts.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

func (c *Client) do(parent, callCtx context.Context, req *http.Request, typ string) (any, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.failure(parent, callCtx, req, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.failure(parent, callCtx, req, err)
	}

	c.logger.Debug("request finished",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if !success(resp.StatusCode) {
		return nil, newError(resp.StatusCode, statusText(resp), nil)
	}
	return decode(resp, body, typ)
}

// failure classifies a transport error: the caller cancelling ctx is an
// abort, the call's own deadline a timeout.
func (c *Client) failure(parent, callCtx context.Context, req *http.Request, err error) *Error {
	var rerr *Error
	switch {
	case parent.Err() != nil:
		rerr = newError(CodeAbort, "Abort", parent.Err())
	case errors.Is(callCtx.Err(), context.DeadlineExceeded):
		rerr = newError(CodeTimeout, "Timeout", err)
	default:
		rerr = newError(CodeTransport, err.Error(), err)
	}
	c.logger.Debug("request failed", "method", req.Method, "url", req.URL.String(), "code", rerr.Code)
	return rerr
}

func success(status int) bool {
	return status >= 200 && status < 300 || status == http.StatusNotModified
}

func statusText(resp *http.Response) string {
	if _, text, ok := strings.Cut(resp.Status, " "); ok && text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

// decode interprets a successful body according to typ.
func decode(resp *http.Response, body []byte, typ string) (any, error) {
	switch typ {
	case TypeJSON:
		var v any
		if len(body) == 0 || json.Unmarshal(body, &v) != nil {
			return nil, nil
		}
		return v, nil
	case TypeArrayBuffer, TypeBlob:
		return body, nil
	case TypeDocument:
		doc, err := dom.Parse(strings.NewReader(string(body)))
		if err != nil {
			return nil, newError(resp.StatusCode, err.Error(), err)
		}
		return doc, nil
	}
	if isJSON(resp.Header.Get("Content-Type")) {
		if len(body) == 0 {
			return nil, nil
		}
		var v any
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, newError(resp.StatusCode, err.Error(), err)
		}
		return v, nil
	}
	return string(body), nil
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "application/json"
}

// Load issues a GET.
func (c *Client) Load(ctx context.Context, target any, params any) (*Future, error) {
	return c.Request(ctx, http.MethodGet, target, params)
}

// Post issues a POST.
func (c *Client) Post(ctx context.Context, target any, params any) (*Future, error) {
	return c.Request(ctx, http.MethodPost, target, params)
}

var (
	defaultClient     *Client
	defaultClientOnce sync.Once
)

// DefaultClient returns the client used by the package-level functions.
// Its futures have no loop; Then callbacks run on the settling goroutine.
func DefaultClient() *Client {
	defaultClientOnce.Do(func() {
		defaultClient = New()
	})
	return defaultClient
}

// Do issues a call with the default client.
func Do(ctx context.Context, method string, target any, params any) (*Future, error) {
	return DefaultClient().Request(ctx, method, target, params)
}

// Load issues a GET with the default client.
func Load(ctx context.Context, target any, params any) (*Future, error) {
	return DefaultClient().Load(ctx, target, params)
}

// Post issues a POST with the default client.
func Post(ctx context.Context, target any, params any) (*Future, error) {
	return DefaultClient().Post(ctx, target, params)
}

// URLParam returns the query parameter name of rawURL, or "" when absent.
func URLParam(rawURL, name string) string {
	v, _ := urlparam.Get(rawURL, name)
	return v
}

// SetURLParam returns rawURL with the query parameter name set to value.
func SetURLParam(rawURL, name, value string) (string, error) {
	return urlparam.Set(rawURL, name, value)
}
