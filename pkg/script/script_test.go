package script

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/go-cmp/cmp"

	werrors "github.com/vango-dev/widgets/internal/errors"
	"github.com/vango-dev/widgets/pkg/dom"
)

func scriptServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/missing.js" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, "console.log(1)")
	}))
	t.Cleanup(srv.Close)
	return srv
}

func scriptSrcs(doc *dom.Document) []string {
	var out []string
	for _, n := range dom.Children(doc.Head()) {
		if n.Data == "script" {
			src, _ := dom.GetAttr(n, "src")
			out = append(out, src)
		}
	}
	return out
}

func TestLoader_Load(t *testing.T) {
	var hits atomic.Int32
	srv := scriptServer(t, &hits)
	doc := dom.NewDocument()
	l := NewLoader(doc, WithFetcher(HTTPFetcher{Client: srv.Client()}))
	ctx := context.Background()

	a, b := srv.URL+"/a.js", srv.URL+"/b.js"
	if errs := l.Load(ctx, a, b); len(errs) != 0 {
		t.Fatalf("Load() errors = %v, want none", errs)
	}
	if errs := l.Load(ctx, a); len(errs) != 0 {
		t.Fatalf("second Load() errors = %v, want none", errs)
	}

	if diff := cmp.Diff([]string{a, b}, scriptSrcs(doc)); diff != "" {
		t.Errorf("head scripts mismatch (-want +got):\n%s", diff)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("fetches = %d, want 2", got)
	}
	if !l.Requested(a) {
		t.Errorf("Requested(%q) = false, want true", a)
	}
	for _, n := range dom.Children(doc.Head()) {
		if n.Data != "script" {
			continue
		}
		if typ, _ := dom.GetAttr(n, "type"); typ != "text/javascript" {
			t.Errorf("script type = %q, want text/javascript", typ)
		}
	}
}

func TestLoader_Errors(t *testing.T) {
	var hits atomic.Int32
	srv := scriptServer(t, &hits)
	doc := dom.NewDocument()
	l := NewLoader(doc, WithFetcher(HTTPFetcher{Client: srv.Client()}))
	ctx := context.Background()

	missing := srv.URL + "/missing.js"
	errs := l.Load(ctx, srv.URL+"/ok.js", missing)
	if len(errs) != 1 {
		t.Fatalf("Load() returned %d errors, want 1", len(errs))
	}
	if !errors.Is(errs[0], werrors.New("S001")) {
		t.Errorf("error = %v, want S001", errs[0])
	}
	if !strings.Contains(errs[0].Error(), "404") {
		t.Errorf("error = %q, want it to mention the status", errs[0])
	}

	// A failed URL is not retried.
	if errs := l.Load(ctx, missing); len(errs) != 0 {
		t.Errorf("reload of failed URL errors = %v, want none", errs)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("fetches = %d, want 2", got)
	}
}

func TestLoader_Events(t *testing.T) {
	fail := errors.New("boom")
	l := NewLoader(dom.NewDocument(), WithFetcher(FetcherFunc(func(ctx context.Context, u string) ([]byte, error) {
		if u == "bad.js" {
			return nil, fail
		}
		return nil, nil
	})))

	var loaded, failed []string
	head := l.doc.Head()
	dom.AddEventListener(head, "load", func(e *dom.Event) {
		src, _ := dom.GetAttr(e.Target, "src")
		loaded = append(loaded, src)
	})
	dom.AddEventListener(head, "error", func(e *dom.Event) {
		src, _ := dom.GetAttr(e.Target, "src")
		failed = append(failed, src)
		if err, _ := e.Detail.(error); !errors.Is(err, fail) {
			t.Errorf("error detail = %v, want wrapped %v", e.Detail, fail)
		}
	})
	t.Cleanup(func() { dom.Release(head) })

	errs := l.Load(context.Background(), "good.js", "bad.js")
	if len(errs) != 1 {
		t.Fatalf("Load() returned %d errors, want 1", len(errs))
	}
	if diff := cmp.Diff([]string{"good.js"}, loaded); diff != "" {
		t.Errorf("load events mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"bad.js"}, failed); diff != "" {
		t.Errorf("error events mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_Empty(t *testing.T) {
	l := NewLoader(dom.NewDocument())
	errs := l.Load(context.Background())
	if errs == nil || len(errs) != 0 {
		t.Errorf("Load() = %#v, want empty non-nil slice", errs)
	}
}

type fakeS3 struct {
	bucket, key string
	body        string
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestS3Fetcher(t *testing.T) {
	fake := &fakeS3{body: "var x = 1"}
	f := &S3Fetcher{Client: fake}
	got, err := f.Fetch(context.Background(), "s3://assets/js/app.js")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(got) != "var x = 1" {
		t.Errorf("Fetch() = %q, want %q", got, "var x = 1")
	}
	if fake.bucket != "assets" || fake.key != "js/app.js" {
		t.Errorf("GetObject(%q, %q), want (assets, js/app.js)", fake.bucket, fake.key)
	}
}

func TestParseS3URL(t *testing.T) {
	tests := []struct {
		in          string
		bucket, key string
		wantErr     bool
	}{
		{"s3://b/k.js", "b", "k.js", false},
		{"s3://b/dir/k.js", "b", "dir/k.js", false},
		{"s3://b/", "", "", true},
		{"https://b/k.js", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			bucket, key, err := parseS3URL(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseS3URL(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if bucket != tt.bucket || key != tt.key {
				t.Errorf("parseS3URL(%q) = (%q, %q), want (%q, %q)", tt.in, bucket, key, tt.bucket, tt.key)
			}
		})
	}
}

func TestMuxFetcher(t *testing.T) {
	m := MuxFetcher{
		"mem": FetcherFunc(func(ctx context.Context, u string) ([]byte, error) { return []byte(u), nil }),
	}
	got, err := m.Fetch(context.Background(), "MEM://x")
	if err != nil || string(got) != "MEM://x" {
		t.Errorf("Fetch(MEM://x) = %q, %v", got, err)
	}
	if _, err := m.Fetch(context.Background(), "ftp://x"); !errors.Is(err, werrors.New("S002")) {
		t.Errorf("Fetch(ftp://x) error = %v, want S002", err)
	}
}

func TestNewS3Fetcher(t *testing.T) {
	f := NewS3Fetcher("eu-west-1", "http://localhost:9000")
	if _, ok := f.Client.(*s3.Client); !ok {
		t.Errorf("Client = %T, want *s3.Client", f.Client)
	}
}
