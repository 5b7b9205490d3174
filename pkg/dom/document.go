package dom

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const blankPage = "<!DOCTYPE html><html><head></head><body></body></html>"

// Document is an HTML tree plus the loop its events run on.
type Document struct {
	root   *html.Node
	loop   *Loop
	logger *slog.Logger
}

// Option configures a Document.
type Option func(*Document)

// WithLoop sets the loop used for scheduled work.
func WithLoop(l *Loop) Option {
	return func(d *Document) {
		d.loop = l
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) {
		d.logger = logger
	}
}

// NewDocument returns an empty document with head and body elements.
func NewDocument(opts ...Option) *Document {
	d, err := Parse(strings.NewReader(blankPage), opts...)
	if err != nil {
		// The blank page is a constant; parsing it cannot fail.
		panic(err)
	}
	return d
}

// Parse reads a complete HTML document.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	d := &Document{root: root}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	if d.loop == nil {
		d.loop = NewLoop(WithLoopLogger(d.logger))
	}
	return d, nil
}

var (
	defaultDoc     *Document
	defaultDocOnce sync.Once
)

// Default returns the process-wide document, created on first use. Its loop
// is not started; callers that use delayed dispatch or loop-bound callbacks
// must run it.
func Default() *Document {
	defaultDocOnce.Do(func() {
		defaultDoc = NewDocument()
	})
	return defaultDoc
}

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// Loop returns the loop scheduled work runs on.
func (d *Document) Loop() *Loop { return d.loop }

// Logger returns the document logger.
func (d *Document) Logger() *slog.Logger { return d.logger }

// DocumentElement returns the <html> element.
func (d *Document) DocumentElement() *html.Node {
	return FirstElementChild(d.root)
}

// Head returns the <head> element.
func (d *Document) Head() *html.Node {
	return findTag(d.root, atom.Head)
}

// Body returns the <body> element.
func (d *Document) Body() *html.Node {
	return findTag(d.root, atom.Body)
}

// Title returns the text of the first <title> element.
func (d *Document) Title() string {
	if n := findTag(d.root, atom.Title); n != nil {
		return strings.TrimSpace(TextContent(n))
	}
	return ""
}

// SetTitle replaces the text of the <title> element, creating it in the
// head if needed.
func (d *Document) SetTitle(title string) {
	n := findTag(d.root, atom.Title)
	if n == nil {
		head := d.Head()
		if head == nil {
			return
		}
		n = CreateElement("title")
		head.AppendChild(n)
	}
	SetTextContent(n, title)
}

// GetElementByID returns the first element whose id attribute is id.
func (d *Document) GetElementByID(id string) *html.Node {
	if id == "" {
		return nil
	}
	var found *html.Node
	walkElements(d.root, func(n *html.Node) bool {
		if v, ok := GetAttr(n, "id"); ok && v == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, returning "" on error.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		d.logger.Error("render document", "error", err)
		return ""
	}
	return buf.String()
}

// CreateElement returns a detached element. Tag names are lower-cased as
// they are for HTML documents.
func CreateElement(tag string) *html.Node {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// CreateText returns a detached text node.
func CreateText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func findTag(root *html.Node, a atom.Atom) *html.Node {
	var found *html.Node
	walkElements(root, func(n *html.Node) bool {
		if n.DataAtom == a {
			found = n
			return false
		}
		return true
	})
	return found
}

// walkElements visits element descendants of n in document order until fn
// returns false.
func walkElements(n *html.Node, fn func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && !fn(c) {
			return false
		}
		if !walkElements(c, fn) {
			return false
		}
	}
	return true
}
