package widget

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/vango-dev/widgets/pkg/dom"
)

func parse(t *testing.T, body string) *dom.Document {
	t.Helper()
	d, err := dom.Parse(strings.NewReader("<html><body>" + body + "</body></html>"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return d
}

func byID(t *testing.T, d *dom.Document, id string) *Widget {
	t.Helper()
	n := d.GetElementByID(id)
	if n == nil {
		t.Fatalf("no element #%s", id)
	}
	return Wrap(d, n)
}

func TestNew(t *testing.T) {
	d := dom.NewDocument()

	t.Run("Tag", func(t *testing.T) {
		w := New(d, "section", "a b")
		if !w.IsValid() || w.Tag() != "section" {
			t.Errorf("Tag() = %q, valid %v", w.Tag(), w.IsValid())
		}
		if w.Class() != "a b" {
			t.Errorf("Class() = %q, want %q", w.Class(), "a b")
		}
		if !w.IsOffline() {
			t.Error("new element should be offline")
		}
	})

	t.Run("Node", func(t *testing.T) {
		n := dom.CreateElement("p")
		w := New(d, n, "")
		if w.Node() != n {
			t.Error("New(node) should wrap the same node")
		}
		if New(d, w, "").Node() != n {
			t.Error("New(widget) should share the node")
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, in := range []any{nil, 42, "", "  ", &html.Node{Type: html.TextNode}} {
			if w := New(d, in, "x"); w.IsValid() {
				t.Errorf("New(%v) should be invalid", in)
			}
		}
	})

	t.Run("DefaultDocument", func(t *testing.T) {
		if New(nil, "div", "").Document() != dom.Default() {
			t.Error("nil document should fall back to dom.Default()")
		}
	})
}

func TestInvalidWidgetIsSafe(t *testing.T) {
	w := New(dom.NewDocument(), nil, "")

	w.SetAttr("a", "1").SetID("x").SetClass("c").MClass("a", "b").
		SetStyle("color", "red").SetText("t").SetVal("v").Show().Hide().
		Empty().Offline().Remove().Append("p", "", nil).AppendTo(nil).
		On("click", nil).Listen("click", func(*dom.Event) {}).Grid(GridSpec{Gap: "1px"})

	if w.Tag() != "" || w.ID() != "" || w.Text() != "" || w.HTML() != "" || w.Val() != "" {
		t.Error("getters on an invalid widget should return zero values")
	}
	if w.HasClass("c") || w.ToggleClass("c") || w.IsOffline() {
		t.Error("class queries on an invalid widget should be false")
	}
	if err := w.SetHTML("<p></p>"); !errors.Is(err, ErrInvalidState) {
		t.Errorf("SetHTML() error = %v, want ErrInvalidState", err)
	}
	if err := w.Insert(dom.BeforeEnd, New(nil, "p", "")); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Insert() error = %v, want ErrInvalidState", err)
	}
	if w.Query("p").IsValid() || w.Nearby(Parent, Count(1)).IsValid() || w.Child(0).IsValid() {
		t.Error("queries on an invalid widget should be invalid")
	}
	if w.Choice("p", "on", MatchFunc(func(*html.Node) bool { return true })) != 0 {
		t.Error("Choice on an invalid widget should match nothing")
	}
	if w.FindIndex(nil) != -1 {
		t.Error("FindIndex on an invalid widget should be -1")
	}
	w.Dispatch("x", nil, Now)
}

func TestAttributes(t *testing.T) {
	w := New(dom.NewDocument(), "input", "")

	w.SetAttr("type", "text").SetAttr("size", 12)
	if v, _ := w.Attr("size"); v != "12" {
		t.Errorf("Attr(size) = %q, want 12", v)
	}

	w.SetAttr("type", nil)
	if _, ok := w.Attr("type"); ok {
		t.Error("SetAttr(nil) should remove the attribute")
	}

	var missing *string
	w.SetAttr("size", missing)
	if _, ok := w.Attr("size"); ok {
		t.Error("SetAttr(nil *string) should remove the attribute")
	}

	empty := ""
	w.SetAttr("placeholder", &empty)
	if v, ok := w.Attr("placeholder"); !ok || v != "" {
		t.Errorf("SetAttr(&\"\") = %q, %v; want present and empty", v, ok)
	}

	w.SetAttrs(map[string]any{"name": "q", "placeholder": nil})
	if v, _ := w.Attr("name"); v != "q" {
		t.Errorf("Attr(name) = %q", v)
	}
	if _, ok := w.Attr("placeholder"); ok {
		t.Error("SetAttrs nil entry should remove")
	}

	w.SetID("").SetID("field")
	if w.ID() != "field" {
		t.Errorf("ID() = %q, want field", w.ID())
	}

	w.SetData("userId", 7).SetData("empty", nil)
	if got, _ := w.Attr("data-user-id"); got != "7" {
		t.Errorf("data-user-id = %q", got)
	}
	if w.Data("userId") != "7" {
		t.Errorf("Data(userId) = %q", w.Data("userId"))
	}
	if v, ok := w.Attr("data-empty"); !ok || v != "" {
		t.Errorf("SetData(nil) = %q, %v; want empty", v, ok)
	}
}

func TestContent(t *testing.T) {
	d := dom.NewDocument()
	w := New(d, "div", "")

	if err := w.SetHTML("<b>bold</b> text"); err != nil {
		t.Fatal(err)
	}
	if w.Text() != "bold text" {
		t.Errorf("Text() = %q", w.Text())
	}

	if err := w.SafeHTML(`<a href="/x" onclick="evil()">link</a><script>evil()</script>`); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(w.HTML(), "script") || strings.Contains(w.HTML(), "onclick") {
		t.Errorf("SafeHTML kept unsafe markup: %s", w.HTML())
	}

	w.Content("a", New(d, "i", ""), dom.CreateElement("u"), 3)
	if got := w.HTML(); got != "a<i></i><u></u>" {
		t.Errorf("Content HTML = %q", got)
	}

	w.SetText("<x>")
	if w.HTML() != "&lt;x&gt;" {
		t.Errorf("SetText HTML = %q", w.HTML())
	}
}

func TestAppend(t *testing.T) {
	d := dom.NewDocument()
	list := New(d, "ul", "")

	list.Append("li", "first, item", "<b>one</b>").
		Append("li", "", func(li *Widget) { li.SetText("two") }).
		Append(New(d, "li", "x"), "y", nil).
		Append("", "", nil)

	kids := list.Children("")
	if len(kids) != 3 {
		t.Fatalf("children = %d, want 3", len(kids))
	}
	if kids[0].Class() != "first item" || kids[0].HTML() != "<b>one</b>" {
		t.Errorf("first = %q / %q", kids[0].Class(), kids[0].HTML())
	}
	if kids[1].Text() != "two" {
		t.Errorf("second text = %q", kids[1].Text())
	}
	if kids[2].Class() != "x y" {
		t.Errorf("third class = %q", kids[2].Class())
	}

	box := New(d, "div", "").AppendTo(d.Body())
	list.AppendTo(box)
	if list.IsOffline() || list.Nearby(Parent, Count(1)).Node() != box.Node() {
		t.Error("AppendTo did not attach")
	}
	box.AppendTo(list)
	if box.Node().Parent != d.Body() {
		t.Error("AppendTo into a descendant should be refused")
	}
}

func TestSetNodeAndOffline(t *testing.T) {
	d := parse(t, `<div id="p"><i id="old"></i></div>`)
	w := byID(t, d, "old")
	repl := dom.CreateElement("b")

	w.SetNode(repl)
	if w.Node() != repl || repl.Parent != d.GetElementByID("p") {
		t.Error("SetNode should replace in place")
	}

	w.Offline()
	if !w.IsOffline() || !w.IsValid() {
		t.Error("Offline should detach but stay valid")
	}

	w.AppendTo(d.GetElementByID("p")).SetNode(nil)
	if w.IsValid() || dom.FirstElementChild(d.GetElementByID("p")) != nil {
		t.Error("SetNode(nil) should detach and invalidate")
	}
}

func TestInsert(t *testing.T) {
	t.Run("AttachedTarget", func(t *testing.T) {
		d := parse(t, `<div id="p"><span id="t"></span></div>`)
		other := New(d, "em", "")
		if err := byID(t, d, "t").Insert(dom.BeforeBegin, other); err != nil {
			t.Fatal(err)
		}
		if byID(t, d, "p").FindIndex(other) != 0 {
			t.Error("other should be first")
		}
	})

	t.Run("DetachedTargetInnerPosition", func(t *testing.T) {
		d := dom.NewDocument()
		w := New(d, "div", "")
		other := New(d, "p", "")
		if err := w.Insert(dom.BeforeEnd, other); err != nil {
			t.Fatal(err)
		}
		if w.Child(0).Node() != other.Node() {
			t.Error("inner insert should work without a parent")
		}
	})

	t.Run("DetachedTargetUsesOtherSide", func(t *testing.T) {
		d := parse(t, `<div id="p"><span id="o"></span></div>`)
		o := byID(t, d, "o")

		before := New(d, "b", "")
		if err := before.Insert(dom.BeforeBegin, o); err != nil {
			t.Fatal(err)
		}
		after := New(d, "i", "")
		if err := after.Insert(dom.AfterEnd, o); err != nil {
			t.Fatal(err)
		}
		var tags []string
		for _, c := range byID(t, d, "p").Children("") {
			tags = append(tags, c.Tag())
		}
		if got := strings.Join(tags, ","); got != "i,span,b" {
			t.Errorf("children = %s, want i,span,b", got)
		}
	})

	t.Run("NoParentAnywhere", func(t *testing.T) {
		d := dom.NewDocument()
		w := New(d, "div", "")
		err := w.Insert(dom.BeforeBegin, New(d, "p", ""))
		if !errors.Is(err, ErrNoParent) {
			t.Errorf("Insert() error = %v, want ErrNoParent", err)
		}
		if err == nil || !strings.Contains(err.Error(), "no parent") {
			t.Errorf("error text = %v", err)
		}
	})
}

func TestStyleAndClass(t *testing.T) {
	w := New(dom.NewDocument(), "div", "a")

	w.SetStyle("backgroundColor", "red").SetStyles(map[string]string{"width": "10px"})
	if w.Style("background-color") != "red" || w.Style("width") != "10px" {
		t.Errorf("style = %q", w.Style("background-color"))
	}

	w.MClass("b, c;d", "a c")
	if w.Class() != "b d" {
		t.Errorf("MClass = %q, want %q", w.Class(), "b d")
	}
	if !w.ToggleClassForce("x", true) || !w.HasClass("x") {
		t.Error("ToggleClassForce(true)")
	}
	if w.ToggleClass("x") || w.HasClass("x") {
		t.Error("ToggleClass should remove x")
	}

	w.Hide()
	if !w.IsHidden() {
		t.Error("Hide should set the hidden class")
	}
	w.Show()
	if w.IsHidden() {
		t.Error("Show should clear the hidden class")
	}

	w.Grid(GridSpec{Cols: "1fr 1fr", ColAuto: "min-content", Gap: "4px"})
	if !w.HasClass(GridClass) {
		t.Error("Grid should add the grid class")
	}
	if w.Style("grid-template-columns") != "1fr 1fr" || w.Style("grid-auto-columns") != "min-content" || w.Style("gap") != "4px" {
		t.Errorf("grid style = %v", dom.Style(w.Node()))
	}
	if w.Style("grid-template-rows") != "" {
		t.Error("empty grid fields should be left alone")
	}
}

func TestVal(t *testing.T) {
	d := parse(t, `
		<input id="in" value="a">
		<textarea id="ta">body</textarea>
		<select id="sel"><option value="1">One</option><option selected>Two</option></select>
		<ul><li id="li" value="3"></li></ul>
		<div id="div"></div>`)

	tests := []struct {
		id   string
		want string
		set  string
	}{
		{"in", "a", "b"},
		{"ta", "body", "changed"},
		{"sel", "Two", "1"},
		{"li", "3", "4"},
		{"div", "", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			w := byID(t, d, tt.id)
			if got := w.Val(); got != tt.want {
				t.Errorf("Val() = %q, want %q", got, tt.want)
			}
			w.SetVal(tt.set)
			if got := w.Val(); got != tt.set {
				t.Errorf("Val() after SetVal = %q, want %q", got, tt.set)
			}
			w.SetVal(nil)
			if got := w.Val(); got != tt.set {
				t.Errorf("SetVal(nil) changed value to %q", got)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	d := parse(t, `<input id="a" data-id="name" value="bob"><input id="b" value="x">`)
	data := map[string]any{}
	if !byID(t, d, "a").Validate(data) || !byID(t, d, "b").Validate(data) {
		t.Error("Validate should accept")
	}
	if len(data) != 1 || data["name"] != "bob" {
		t.Errorf("data = %v", data)
	}
	if !byID(t, d, "a").Validate(nil) {
		t.Error("Validate(nil) should accept")
	}
}

func TestRemoveReleasesListeners(t *testing.T) {
	d := parse(t, `<div id="p"><button id="b"></button></div>`)
	b := byID(t, d, "b")
	b.Listen("click", func(*dom.Event) {})
	b.Remove()
	if !b.IsOffline() {
		t.Error("Remove should detach")
	}
	if dom.ListenerCount(b.Node(), "click") != 0 {
		t.Error("Remove should drop listeners")
	}
}
