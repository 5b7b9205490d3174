package script

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/net/html"

	werrors "github.com/vango-dev/widgets/internal/errors"
	"github.com/vango-dev/widgets/pkg/dom"
	"github.com/vango-dev/widgets/pkg/middleware"
)

// Loader appends scripts to a document head.
type Loader struct {
	doc     *dom.Document
	fetcher Fetcher
	logger  *slog.Logger

	mu        sync.Mutex
	requested map[string]bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithFetcher replaces the default fetcher.
func WithFetcher(f Fetcher) Option {
	return func(l *Loader) {
		l.fetcher = f
	}
}

// WithLogger sets the logger used for load failures.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader returns a loader for doc. A nil doc uses dom.Default().
func NewLoader(doc *dom.Document, opts ...Option) *Loader {
	if doc == nil {
		doc = dom.Default()
	}
	l := &Loader{doc: doc, requested: make(map[string]bool)}
	for _, opt := range opts {
		opt(l)
	}
	if l.fetcher == nil {
		l.fetcher = DefaultFetcher()
	}
	if l.logger == nil {
		l.logger = doc.Logger()
	}
	return l
}

// Requested reports whether url has been passed to Load before.
func (l *Loader) Requested(url string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.requested[url]
}

type pending struct {
	url  string
	node *html.Node
	err  error
}

// Load adds a script element for each URL not seen before and waits until
// every new source has been fetched. The returned slice holds one error per
// failed script in argument order; it is empty when all loads succeeded.
func (l *Loader) Load(ctx context.Context, urls ...string) []error {
	errs := []error{}

	var batch []*pending
	l.mu.Lock()
	for _, u := range urls {
		if l.requested[u] {
			middleware.RecordScriptLoad("skipped")
			continue
		}
		l.requested[u] = true
		batch = append(batch, &pending{url: u})
	}
	l.mu.Unlock()
	if len(batch) == 0 {
		return errs
	}

	head := l.doc.Head()
	for _, p := range batch {
		p.node = dom.CreateElement("script")
		dom.SetAttr(p.node, "type", "text/javascript")
		if head != nil {
			head.AppendChild(p.node)
		}
		dom.SetAttr(p.node, "src", p.url)
	}

	var wg sync.WaitGroup
	for _, p := range batch {
		wg.Add(1)
		go func(p *pending) {
			defer wg.Done()
			if _, err := l.fetcher.Fetch(ctx, p.url); err != nil {
				p.err = werrors.New("S001").WithDetailf("%s", p.url).Wrap(err)
			}
		}(p)
	}
	wg.Wait()

	for _, p := range batch {
		if p.err != nil {
			l.logger.Error("script load failed", "url", p.url, "error", p.err)
			middleware.RecordScriptLoad("error")
			errs = append(errs, p.err)
			dom.Dispatch(p.node, dom.NewCustomEvent("error", p.err))
			continue
		}
		middleware.RecordScriptLoad("ok")
		dom.Dispatch(p.node, dom.NewEvent("load"))
	}
	return errs
}

var (
	defaultLoader     *Loader
	defaultLoaderOnce sync.Once
)

// DefaultLoader returns the loader bound to dom.Default().
func DefaultLoader() *Loader {
	defaultLoaderOnce.Do(func() {
		defaultLoader = NewLoader(nil)
	})
	return defaultLoader
}

// Load loads urls into the default document.
func Load(ctx context.Context, urls ...string) []error {
	return DefaultLoader().Load(ctx, urls...)
}
