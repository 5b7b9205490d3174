package widget

import (
	"fmt"
	"strings"
	"testing"

	"golang.org/x/net/html"
	"pgregory.net/rapid"

	"github.com/vango-dev/widgets/pkg/dom"
)

const tabs = `<ul id="tabs">
	<li id="t1" class="tab on"></li>
	<li id="t2" class="tab"></li>
	<li id="t3" class="tab"><span class="tab" id="inner"></span></li>
</ul>`

func classesOf(t *testing.T, d *dom.Document, ids ...string) string {
	t.Helper()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id + "=" + byID(t, d, id).Class()
	}
	return strings.Join(out, " ")
}

func TestChoice(t *testing.T) {
	tests := []struct {
		name    string
		class   string
		matcher func(d *dom.Document) Matcher
		count   int
		want    string
	}{
		{
			name:    "Selector",
			class:   "on",
			matcher: func(*dom.Document) Matcher { return MatchSelector("#t2") },
			count:   1,
			want:    "t1=tab t2=tab on t3=tab inner=tab",
		},
		{
			name:    "Node",
			class:   "on",
			matcher: func(d *dom.Document) Matcher { return MatchNode(d.GetElementByID("t3")) },
			count:   1,
			want:    "t1=tab t2=tab t3=tab on inner=tab",
		},
		{
			name:    "Widget",
			class:   "on",
			matcher: func(d *dom.Document) Matcher { return MatchWidget(Wrap(d, d.GetElementByID("inner"))) },
			count:   1,
			want:    "t1=tab t2=tab t3=tab inner=tab on",
		},
		{
			name:  "FuncInverted",
			class: "!on",
			matcher: func(*dom.Document) Matcher {
				return MatchFunc(func(n *html.Node) bool { return n.Data == "li" })
			},
			count: 3,
			want:  "t1=tab t2=tab t3=tab inner=tab on",
		},
		{
			name:    "NoMatch",
			class:   "on",
			matcher: func(*dom.Document) Matcher { return MatchSelector("#none") },
			count:   0,
			want:    "t1=tab t2=tab t3=tab inner=tab",
		},
		{
			name:    "NilMatcher",
			class:   "!off",
			matcher: func(*dom.Document) Matcher { return nil },
			count:   0,
			want:    "t1=tab on off t2=tab off t3=tab off inner=tab off",
		},
		{
			name:    "CountOnly",
			class:   "",
			matcher: func(*dom.Document) Matcher { return MatchSelector(".on") },
			count:   1,
			want:    "t1=tab on t2=tab t3=tab inner=tab",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := parse(t, tabs)
			ul := byID(t, d, "tabs")
			got := ul.Choice(".tab", tt.class, tt.matcher(d))
			if got != tt.count {
				t.Errorf("Choice() = %d, want %d", got, tt.count)
			}
			if classes := classesOf(t, d, "t1", "t2", "t3", "inner"); classes != tt.want {
				t.Errorf("classes = %q, want %q", classes, tt.want)
			}
		})
	}
}

// The descendant list is fixed before relabelling, so a selector on the
// class being changed still visits every original match exactly once.
func TestChoiceMaterialisesMatches(t *testing.T) {
	d := parse(t, tabs)
	ul := byID(t, d, "tabs")
	got := ul.Choice(".on, .tab", "on", MatchFunc(func(*html.Node) bool { return false }))
	if got != 0 {
		t.Errorf("Choice() = %d, want 0", got)
	}
	if ul.Query(".on").IsValid() {
		t.Error("every match should lose the class")
	}
}

func TestChoiceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		flags := rapid.SliceOfN(rapid.Bool(), 1, 20).Draw(t, "flags")
		picks := rapid.SliceOfN(rapid.Bool(), len(flags), len(flags)).Draw(t, "picks")
		invert := rapid.Bool().Draw(t, "invert")

		var b strings.Builder
		b.WriteString(`<div id="root">`)
		for i, on := range flags {
			class := "item"
			if on {
				class += " flag"
			}
			fmt.Fprintf(&b, `<p id="i%d" class="%s"></p>`, i, class)
		}
		b.WriteString(`<p id="other" class="flag"></p></div>`)

		d, err := dom.Parse(strings.NewReader(b.String()))
		if err != nil {
			t.Fatal(err)
		}
		root := Wrap(d, d.GetElementByID("root"))
		picked := map[*html.Node]bool{}
		want := 0
		for i, p := range picks {
			if p {
				picked[d.GetElementByID(fmt.Sprintf("i%d", i))] = true
				want++
			}
		}

		class := "flag"
		if invert {
			class = "!flag"
		}
		got := root.Choice(".item", class, MatchFunc(func(n *html.Node) bool { return picked[n] }))
		if got != want {
			t.Fatalf("Choice() = %d, want %d", got, want)
		}

		flagged := 0
		for i := range flags {
			n := d.GetElementByID(fmt.Sprintf("i%d", i))
			has := dom.Classes(n).Contains("flag")
			if has != (picked[n] != invert) {
				t.Fatalf("i%d flag = %v, picked %v, invert %v", i, has, picked[n], invert)
			}
			if has {
				flagged++
			}
		}
		wantFlagged := want
		if invert {
			wantFlagged = len(flags) - want
		}
		if flagged != wantFlagged {
			t.Fatalf("flagged = %d, want %d", flagged, wantFlagged)
		}
		if !dom.Classes(d.GetElementByID("other")).Contains("flag") {
			t.Fatal("elements outside the selector must be untouched")
		}
	})
}
