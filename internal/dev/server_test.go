package dev

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vango-dev/widgets/internal/config"
	"github.com/vango-dev/widgets/pkg/dom"
	"github.com/vango-dev/widgets/pkg/page"
	"github.com/vango-dev/widgets/pkg/widget"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	reg := widget.NewRegistry(dom.NewDocument())
	page.RegisterIn(reg, "home", func(doc *dom.Document) page.Page {
		p := page.NewBase(doc)
		p.SetText("welcome home")
		return p
	})

	cfg := config.New()
	cfg.Serve.Watch = []string{t.TempDir()}
	s, err := NewServer(ServerOptions{
		Config:   cfg,
		Registry: reg,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return s, srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestServer_Document(t *testing.T) {
	_, srv := newTestServer(t)
	code, body := get(t, srv.URL+"/")
	if code != http.StatusOK {
		t.Fatalf("GET / = %d", code)
	}
	if !strings.Contains(body, page.FrameClass) {
		t.Errorf("document should contain the frame:\n%s", body)
	}
	if !strings.Contains(body, "/events") {
		t.Error("document should include the event client script")
	}

	// The client script is only added to the rendered output.
	_, again := get(t, srv.URL+"/")
	if strings.Count(again, "/events") != 1 {
		t.Errorf("client script rendered %d times, want 1", strings.Count(again, "/events"))
	}
}

func TestServer_ShowPage(t *testing.T) {
	s, srv := newTestServer(t)
	conn := dialEvents(t, srv.URL+"/events")
	readMessage(t, conn)

	code, body := get(t, srv.URL+"/pages/home")
	if code != http.StatusOK || !strings.Contains(body, "welcome home") {
		t.Fatalf("GET /pages/home = %d:\n%s", code, body)
	}
	if cur := s.Frame().Current(); cur == nil || cur.AsWidget().ID() != "home" {
		t.Errorf("current page = %v, want home", cur)
	}

	msg := readMessage(t, conn)
	if msg.Type != MessageChange || msg.PageID != "home" || msg.OldID != "" {
		t.Errorf("event = %+v, want change to home", msg)
	}

	if code, _ := get(t, srv.URL+"/pages/missing"); code != http.StatusNotFound {
		t.Errorf("GET /pages/missing = %d, want 404", code)
	}
}

func TestServer_Metrics(t *testing.T) {
	_, srv := newTestServer(t)
	get(t, srv.URL+"/pages/home")

	code, body := get(t, srv.URL+"/metrics")
	if code != http.StatusOK {
		t.Fatalf("GET /metrics = %d", code)
	}
	if !strings.Contains(body, "widgets_page_changes_total 1") {
		t.Errorf("metrics missing page change count:\n%s", body)
	}
	if code, body := get(t, srv.URL+"/healthz"); code != http.StatusOK || body != "ok" {
		t.Errorf("GET /healthz = %d %q", code, body)
	}
}

func TestServer_HandleChanges(t *testing.T) {
	reloads := 0
	cfg := config.New()
	s, err := NewServer(ServerOptions{
		Config:   cfg,
		Registry: widget.NewRegistry(nil),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		OnReload: func(int) { reloads++ },
	})
	if err != nil {
		t.Fatal(err)
	}
	before := s.Frame()
	s.handleChanges([]Change{{Path: "site.css", Type: ChangeCSS}})
	if s.Frame() != before {
		t.Error("css change should not reload the document")
	}
	s.handleChanges([]Change{{Path: "index.html", Type: ChangeDocument}})
	if s.Frame() == before {
		t.Error("document change should rebuild the frame")
	}
	if reloads != 2 {
		t.Errorf("OnReload called %d times, want 2", reloads)
	}
}
