package dev

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/widgets/internal/config"
	werrors "github.com/vango-dev/widgets/internal/errors"
	"github.com/vango-dev/widgets/pkg/dom"
	"github.com/vango-dev/widgets/pkg/middleware"
	"github.com/vango-dev/widgets/pkg/page"
	"github.com/vango-dev/widgets/pkg/script"
	"github.com/vango-dev/widgets/pkg/widget"
)

// ServerOptions configures the preview server.
type ServerOptions struct {
	// Config is the project configuration.
	Config *config.Config

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Registry is the widget registry pages are built from
	// (default: widget.DefaultRegistry()).
	Registry *widget.Registry

	// Metrics is where collectors are registered (default: a new registry).
	Metrics *prometheus.Registry

	// Fetcher verifies configured scripts (default: http, https and s3).
	Fetcher script.Fetcher

	// OnReload is called after a reload was broadcast.
	OnReload func(clients int)
}

// Server is the preview server.
type Server struct {
	config   *config.Config
	options  ServerOptions
	logger   *slog.Logger
	hub      *Hub
	watcher  *Watcher
	metrics  *prometheus.Registry
	router   chi.Router

	mu         sync.Mutex
	doc        *dom.Document
	frame      *page.Frame
	httpServer *http.Server
	running    bool
}

// NewServer creates a preview server and loads its document.
func NewServer(options ServerOptions) (*Server, error) {
	cfg := options.Config
	if cfg == nil {
		cfg = config.New()
	}
	s := &Server{
		config:  cfg,
		options: options,
		logger:  options.Logger,
		hub:     NewHub(),
		metrics: options.Metrics,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.metrics == nil {
		s.metrics = prometheus.NewRegistry()
	}
	if !cfg.Metrics.Disabled {
		middleware.Prometheus(
			middleware.WithNamespace(cfg.Metrics.Namespace),
			middleware.WithRegistry(s.metrics),
		)
	}

	s.watcher = NewWatcher(WatcherConfig{
		Paths:  cfg.WatchPaths(),
		Ignore: append(append([]string(nil), DefaultIgnore...), cfg.Serve.Ignore...),
	})
	s.watcher.OnChange(s.handleChanges)

	if err := s.load(context.Background()); err != nil {
		return nil, err
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

// Hub returns the event stream hub.
func (s *Server) Hub() *Hub { return s.hub }

// Frame returns the frame of the current document.
func (s *Server) Frame() *page.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Get("/", s.handleDocument)
	r.Get("/pages/{id}", s.handleShowPage)
	r.Get("/events", s.hub.HandleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics, promhttp.HandlerOpts{}))

	dir := s.config.Dir()
	if dir == "" {
		dir = "."
	}
	r.NotFound(assetHandler(dir))
	return r
}

// load reads the configured document, mounts a frame into its body, loads
// the configured scripts and shows the initial page. The previous
// document, if any, is replaced only when loading succeeds.
func (s *Server) load(ctx context.Context) error {
	doc, err := s.readDocument()
	if err != nil {
		return err
	}
	reg := s.options.Registry
	if reg == nil {
		reg = widget.DefaultRegistry()
	}

	frame := page.NewFrame(doc, page.WithRegistry(reg))
	frame.SetSheet(frame.Widget)
	widget.Wrap(doc, doc.Body()).Append(frame, "", nil)
	frame.On("change", func(e *dom.Event) {
		if c, ok := e.Detail.(page.Change); ok {
			s.hub.Broadcast(Message{Type: MessageChange, OldID: c.OldID, PageID: c.ID})
		}
	})

	if urls := s.config.Scripts.URLs; len(urls) > 0 {
		fetcher := s.options.Fetcher
		if fetcher == nil {
			h := script.HTTPFetcher{}
			fetcher = script.MuxFetcher{
				"http":  h,
				"https": h,
				"s3":    script.NewS3Fetcher(s.config.Scripts.S3Region, s.config.Scripts.S3Endpoint),
			}
		}
		loader := script.NewLoader(doc, script.WithFetcher(fetcher), script.WithLogger(s.logger))
		for _, err := range loader.Load(ctx, urls...) {
			s.logger.Warn("preview script", "error", err)
		}
	}

	if id := s.config.Serve.Page; id != "" {
		if err := frame.ShowPage(id, nil, false); err != nil {
			s.logger.Warn("initial page", "id", id, "error", err)
		}
	}

	s.mu.Lock()
	old := s.doc
	s.doc, s.frame = doc, frame
	s.mu.Unlock()

	go doc.Loop().Run(context.Background())
	if old != nil {
		dom.Release(old.Root())
		old.Loop().Close()
	}
	return nil
}

func (s *Server) readDocument() (*dom.Document, error) {
	path := s.config.DocumentPath()
	if path == "" {
		doc := dom.NewDocument(dom.WithLogger(s.logger))
		doc.SetTitle("widgets")
		return doc, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, werrors.New("C001").WithDetailf("cannot open document %s", path).Wrap(err)
	}
	defer f.Close()
	doc, err := dom.Parse(f, dom.WithLogger(s.logger))
	if err != nil {
		return nil, werrors.New("W006").WithDetailf("cannot parse %s", path).Wrap(err)
	}
	return doc, nil
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	s.mu.Lock()
	head := s.doc.Head()
	tag := dom.CreateElement("script")
	dom.SetTextContent(tag, ClientScript)
	head.AppendChild(tag)
	err := s.doc.Render(&buf)
	head.RemoveChild(tag)
	s.mu.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleShowPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	err := s.frame.ShowPage(id, r.URL.Query(), false)
	s.mu.Unlock()

	switch {
	case errors.Is(err, page.ErrUndefined):
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *Server) handleChanges(changes []Change) {
	reload := false
	for _, c := range changes {
		s.logger.Debug("file changed", "path", c.Path, "type", c.Type)
		if c.Type == ChangeDocument || c.Type == ChangeConfig {
			reload = true
		}
	}
	if reload {
		if err := s.reloadConfig(); err != nil {
			s.logger.Error("reload config", "error", err)
			s.hub.Broadcast(Message{Type: MessageError, Error: err.Error()})
			return
		}
		if err := s.load(context.Background()); err != nil {
			s.logger.Error("reload document", "error", err)
			s.hub.Broadcast(Message{Type: MessageError, Error: err.Error()})
			return
		}
	}
	s.hub.Broadcast(Message{Type: MessageReload, File: changes[0].Path})
	if s.options.OnReload != nil {
		s.options.OnReload(s.hub.ClientCount())
	}
}

func (s *Server) reloadConfig() error {
	path := s.config.Path()
	if path == "" {
		return nil
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Apply()
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
	return nil
}

// Start serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.httpServer = &http.Server{
		Addr:              s.config.ServeAddress(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Unlock()

	go func() {
		if err := s.watcher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("watcher stopped", "error", err)
		}
	}()

	s.logger.Info("preview running", "url", s.config.ServeURL())

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.Stop()
		return nil
	case err := <-errCh:
		s.Stop()
		return err
	}
}

// Stop stops the preview server.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false
	s.watcher.Stop()
	s.hub.Close()
	if s.doc != nil {
		s.doc.Loop().Close()
	}
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(ctx)
	}
}
