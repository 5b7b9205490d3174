package el

import "github.com/vango-dev/widgets/pkg/widget"

func Div(args ...any) *widget.Widget      { return El("div", args...) }
func Span(args ...any) *widget.Widget     { return El("span", args...) }
func P(args ...any) *widget.Widget        { return El("p", args...) }
func A(args ...any) *widget.Widget        { return El("a", args...) }
func H1(args ...any) *widget.Widget       { return El("h1", args...) }
func H2(args ...any) *widget.Widget       { return El("h2", args...) }
func H3(args ...any) *widget.Widget       { return El("h3", args...) }
func Section(args ...any) *widget.Widget  { return El("section", args...) }
func Article(args ...any) *widget.Widget  { return El("article", args...) }
func Header(args ...any) *widget.Widget   { return El("header", args...) }
func Footer(args ...any) *widget.Widget   { return El("footer", args...) }
func Nav(args ...any) *widget.Widget      { return El("nav", args...) }
func Ul(args ...any) *widget.Widget       { return El("ul", args...) }
func Ol(args ...any) *widget.Widget       { return El("ol", args...) }
func Li(args ...any) *widget.Widget       { return El("li", args...) }
func Table(args ...any) *widget.Widget    { return El("table", args...) }
func Tr(args ...any) *widget.Widget       { return El("tr", args...) }
func Td(args ...any) *widget.Widget       { return El("td", args...) }
func Th(args ...any) *widget.Widget       { return El("th", args...) }
func Form(args ...any) *widget.Widget     { return El("form", args...) }
func Label(args ...any) *widget.Widget    { return El("label", args...) }
func Input(args ...any) *widget.Widget    { return El("input", args...) }
func Textarea(args ...any) *widget.Widget { return El("textarea", args...) }
func Select(args ...any) *widget.Widget   { return El("select", args...) }
func Option(args ...any) *widget.Widget   { return El("option", args...) }
func Button(args ...any) *widget.Widget   { return El("button", args...) }
func Img(args ...any) *widget.Widget      { return El("img", args...) }
