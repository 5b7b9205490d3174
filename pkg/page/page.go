package page

import (
	"github.com/vango-dev/widgets/pkg/dom"
	"github.com/vango-dev/widgets/pkg/widget"
)

// PageClass is the class of the default page element.
const PageClass = "__CSS-page"

// Page is a widget shown by a Frame.
type Page interface {
	widget.Element

	// OnInit runs once, when the page is added to a frame.
	OnInit()

	// OnShow runs after the page became visible.
	OnShow(params any)

	// OnHide runs after the page was hidden.
	OnHide(params any)

	// Title is appended to the document title in history entries.
	Title() string
}

// Base is a page with no behaviour. Embed it to implement only the hooks
// a page needs.
type Base struct {
	*widget.Widget
	title string
}

// NewBase returns a page backed by a div.__CSS-page element.
func NewBase(doc *dom.Document) *Base {
	return &Base{Widget: widget.New(doc, "div", PageClass)}
}

// OnInit does nothing.
func (b *Base) OnInit() {}

// OnShow does nothing.
func (b *Base) OnShow(any) {}

// OnHide does nothing.
func (b *Base) OnHide(any) {}

// Title returns the title set with SetTitle.
func (b *Base) Title() string { return b.title }

// SetTitle sets the page title.
func (b *Base) SetTitle(title string) *Base {
	b.title = title
	return b
}

// Register binds ids in the default widget registry to a page constructor.
// Frames construct unknown pages from it.
func Register(ids string, ctor func(doc *dom.Document) Page) widget.Factory {
	return RegisterIn(widget.DefaultRegistry(), ids, ctor)
}

// RegisterIn is Register for a specific registry.
func RegisterIn(r *widget.Registry, ids string, ctor func(doc *dom.Document) Page) widget.Factory {
	if ctor == nil {
		return nil
	}
	return r.RegisterType(ids, func(doc *dom.Document) widget.Element {
		return ctor(doc)
	})
}

func init() {
	Register("page", func(doc *dom.Document) Page { return NewBase(doc) })
	widget.RegisterType("frame", func(doc *dom.Document) widget.Element { return NewFrame(doc) })
}
