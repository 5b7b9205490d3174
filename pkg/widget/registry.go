package widget

import (
	"sort"
	"sync"

	"github.com/vango-dev/widgets/pkg/dom"
	"github.com/vango-dev/widgets/pkg/util"
)

// Factory builds a widget for a registered tag. class is the initial class
// requested by the caller; factories may ignore it.
type Factory func(class string) Element

// Registry maps tag names to factories. Tags are case-sensitive. A tag is
// never removed; registering it again replaces its factory.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	doc       *dom.Document
	factories map[string]Factory
}

// NewRegistry returns an empty registry whose fallback widgets and typed
// factories use doc (dom.Default() when nil).
func NewRegistry(doc *dom.Document) *Registry {
	if doc == nil {
		doc = dom.Default()
	}
	return &Registry{
		doc:       doc,
		factories: make(map[string]Factory),
	}
}

// Document returns the document the registry builds widgets for.
func (r *Registry) Document() *dom.Document { return r.doc }

// Register binds every tag in tags, a whitespace, comma or semicolon
// separated list, to f and returns f. A nil f is ignored.
func (r *Registry) Register(tags string, f Factory) Factory {
	if f == nil {
		return nil
	}
	names := util.Split(tags)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range names {
		r.factories[t] = f
	}
	return f
}

// RegisterType binds tags to a constructor that builds one new instance of
// a widget type per call. The requested class is ignored; the type sets up
// its own element.
func (r *Registry) RegisterType(tags string, ctor func(doc *dom.Document) Element) Factory {
	if ctor == nil {
		return nil
	}
	return r.Register(tags, func(string) Element {
		return ctor(r.doc)
	})
}

// Lookup returns the factory registered for tag.
func (r *Registry) Lookup(tag string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[tag]
	return f, ok
}

// Construct builds a widget for tag with the registered factory. When tag
// has no factory it is used as a plain element name instead; element names
// are lowercased, so the result's Tag equals tag up to case.
func (r *Registry) Construct(tag, class string) Element {
	if f, ok := r.Lookup(tag); ok {
		if e := f(class); e != nil && e.AsWidget() != nil {
			return e
		}
	}
	return New(r.doc, tag, class)
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for t := range r.factories {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry, bound to
// dom.Default().
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(dom.Default())
	})
	return defaultRegistry
}

// Register binds tags to f in the default registry.
func Register(tags string, f Factory) Factory {
	return DefaultRegistry().Register(tags, f)
}

// RegisterType binds tags to a typed constructor in the default registry.
func RegisterType(tags string, ctor func(doc *dom.Document) Element) Factory {
	return DefaultRegistry().RegisterType(tags, ctor)
}

// Lookup returns the factory for tag in the default registry.
func Lookup(tag string) (Factory, bool) {
	return DefaultRegistry().Lookup(tag)
}

// Construct builds tag with the default registry.
func Construct(tag, class string) Element {
	return DefaultRegistry().Construct(tag, class)
}
