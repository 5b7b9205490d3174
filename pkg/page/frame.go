package page

import (
	"sort"

	werrors "github.com/vango-dev/widgets/internal/errors"
	"github.com/vango-dev/widgets/pkg/dom"
	"github.com/vango-dev/widgets/pkg/middleware"
	"github.com/vango-dev/widgets/pkg/urlparam"
	"github.com/vango-dev/widgets/pkg/util"
	"github.com/vango-dev/widgets/pkg/widget"
)

// FrameClass is the class of the frame element.
const FrameClass = "__CSS-frame"

// PageParam is the query parameter carrying the current page id.
const PageParam = "p"

var (
	// ErrNoSheet is returned when a page is added to a frame without a sheet.
	ErrNoSheet = werrors.New("P001")

	// ErrUndefined is returned by ShowPage for an id that is neither added
	// nor registered.
	ErrUndefined = werrors.New("P002")

	// ErrNotPage is returned when a registered widget does not implement Page.
	ErrNotPage = werrors.New("P003")
)

// Change is the detail of the "change" event a frame dispatches after
// showing a page. OldID is empty for the first page.
type Change struct {
	OldID string
	ID    string
}

// State is the history state recorded by ShowPage.
type State struct {
	PageID string
}

// Frame hosts pages in a sheet and shows one at a time.
type Frame struct {
	*widget.Widget

	sheet    *widget.Widget
	pages    map[string]Page
	current  Page
	history  *urlparam.History
	registry *widget.Registry
}

// FrameOption configures a Frame.
type FrameOption func(*Frame)

// WithHistory sets the history ShowPage records entries in.
func WithHistory(h *urlparam.History) FrameOption {
	return func(f *Frame) {
		f.history = h
	}
}

// WithRegistry sets the registry unknown pages are built from.
func WithRegistry(r *widget.Registry) FrameOption {
	return func(f *Frame) {
		f.registry = r
	}
}

// NewFrame returns a frame backed by a div.__CSS-frame element. The frame
// has no sheet until SetSheet is called.
func NewFrame(doc *dom.Document, opts ...FrameOption) *Frame {
	f := &Frame{Widget: widget.New(doc, "div", FrameClass)}
	for _, opt := range opts {
		opt(f)
	}
	if f.history == nil {
		f.history = urlparam.NewHistory("/")
	}
	if f.registry == nil {
		f.registry = widget.DefaultRegistry()
	}
	return f
}

// Sheet returns the element pages are appended to.
func (f *Frame) Sheet() *widget.Widget { return f.sheet }

// SetSheet sets the element pages are appended to. It may be the frame
// itself.
func (f *Frame) SetSheet(sheet *widget.Widget) *Frame {
	f.sheet = sheet
	return f
}

// History returns the frame history.
func (f *Frame) History() *urlparam.History { return f.history }

// Current returns the page shown last, or nil.
func (f *Frame) Current() Page { return f.current }

// AddPage appends p to the sheet and runs its OnInit hook. A page without
// an id gets one from util.NextID("page").
func (f *Frame) AddPage(p Page) (Page, error) {
	if p == nil || p.AsWidget() == nil {
		return nil, nil
	}
	if !f.sheet.IsValid() {
		return nil, ErrNoSheet
	}
	w := p.AsWidget()
	id := w.ID()
	if id == "" {
		id = util.NextID("page")
		w.SetID(id)
	}
	f.sheet.Append(p, "", nil)
	if f.pages == nil {
		f.pages = make(map[string]Page)
	}
	f.pages[id] = p
	p.OnInit()
	return p, nil
}

// Page returns the page added under id.
func (f *Frame) Page(id string) (Page, bool) {
	p, ok := f.pages[id]
	return p, ok
}

// PageIDs returns the ids of all added pages, sorted.
func (f *Frame) PageIDs() []string {
	ids := make([]string, 0, len(f.pages))
	for id := range f.pages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RemovePage detaches the page added under id and returns it.
func (f *Frame) RemovePage(id string) Page {
	p, ok := f.pages[id]
	if !ok {
		return nil
	}
	delete(f.pages, id)
	p.AsWidget().Offline()
	if f.current == p {
		f.current = nil
	}
	return p
}

// RemoveAllPages detaches every page.
func (f *Frame) RemoveAllPages() {
	for _, p := range f.pages {
		p.AsWidget().Offline()
	}
	f.pages = nil
	f.current = nil
}

// ShowPage shows the page with the given id. A page not yet added is built
// from the registry, given id and added. The previous page is hidden and
// its OnHide hook runs with params, then the new page is shown and OnShow
// runs. Unless noPush is set, a history entry is pushed when the current
// entry does not already belong to the page. The "change" event is
// dispatched on the next loop turn.
func (f *Frame) ShowPage(id string, params any, noPush bool) error {
	p, ok := f.pages[id]
	if !ok {
		if !f.sheet.IsValid() {
			return ErrNoSheet
		}
		var err error
		if p, err = f.construct(id); err != nil {
			f.Document().Logger().Error("page undefined", "id", id, "error", err)
			return err
		}
		if _, err := f.AddPage(p); err != nil {
			return err
		}
	}

	old := f.current
	oldID := ""
	if old != nil {
		oldID = old.AsWidget().ID()
		old.AsWidget().Hide()
		old.OnHide(params)
	}
	f.current = p
	p.AsWidget().Show()
	p.OnShow(params)

	if !noPush {
		if st, ok := f.history.State().(State); !ok || st.PageID != id {
			f.push(p, id)
		}
	}

	middleware.RecordPageChange()
	f.Dispatch("change", Change{OldID: oldID, ID: id}, 0)
	return nil
}

func (f *Frame) construct(id string) (Page, error) {
	factory, ok := f.registry.Lookup(id)
	if !ok {
		return nil, werrors.New("P002").WithDetailf("no page is registered under %q", id)
	}
	e := factory("")
	p, ok := e.(Page)
	if !ok || p.AsWidget() == nil {
		return nil, werrors.New("P003").WithDetailf("%q built %T", id, e)
	}
	if p.AsWidget().ID() == "" {
		p.AsWidget().SetID(id)
	}
	return p, nil
}

func (f *Frame) push(p Page, id string) {
	u, err := urlparam.Set(f.history.URL(), PageParam, id)
	if err != nil {
		f.Document().Logger().Warn("page url", "id", id, "error", err)
		return
	}
	title := f.Document().Title()
	if t := p.Title(); t != "" {
		title += "-" + t
	}
	f.history.Push(State{PageID: id}, title, u)
}

// Back steps the history back and shows the page recorded there without
// pushing a new entry. It reports false at the start of the history or
// when the entry names no page.
func (f *Frame) Back(params any) bool {
	e, ok := f.history.Back()
	return ok && f.restore(e, params)
}

// Forward is Back in the other direction.
func (f *Frame) Forward(params any) bool {
	e, ok := f.history.Forward()
	return ok && f.restore(e, params)
}

func (f *Frame) restore(e urlparam.Entry, params any) bool {
	id := ""
	if st, ok := e.State.(State); ok {
		id = st.PageID
	} else if v, ok := urlparam.Get(e.URL, PageParam); ok {
		id = v
	}
	if id == "" {
		return false
	}
	return f.ShowPage(id, params, true) == nil
}
