package widget

import (
	"context"
	"testing"
	"time"

	"github.com/vango-dev/widgets/pkg/dom"
)

func TestOnReplacesHandler(t *testing.T) {
	d := parse(t, `<button id="b"></button>`)
	b := byID(t, d, "b")
	defer b.Remove()

	calls := ""
	b.On("click", func(*dom.Event) { calls += "1" })
	b.On("click", func(*dom.Event) { calls += "2" })
	b.Dispatch("click", nil, Now)
	if calls != "2" {
		t.Errorf("calls = %q, want 2", calls)
	}

	b.On("click", nil)
	b.Dispatch("click", nil, Now)
	if calls != "2" {
		t.Errorf("cleared handler still ran: %q", calls)
	}
}

func TestListenAndOnAll(t *testing.T) {
	d := parse(t, `<ul id="l"><li id="a"></li><li id="b"></li></ul>`)
	l := byID(t, d, "l")
	defer l.Remove()

	var hits []string
	l.ListenAll("li", "pick", func(e *dom.Event) {
		v, _ := dom.GetAttr(e.CurrentTarget, "id")
		hits = append(hits, v)
	})
	l.OnAll("li", "pick", func(*dom.Event) { hits = append(hits, "on") })
	l.Listen("pick", func(*dom.Event) { hits = append(hits, "list") })

	byID(t, d, "b").Dispatch("pick", nil, Now)
	want := []string{"on", "b", "list"}
	if len(hits) != len(want) {
		t.Fatalf("hits = %v, want %v", hits, want)
	}
	for i := range want {
		if hits[i] != want[i] {
			t.Errorf("hits = %v, want %v", hits, want)
			break
		}
	}
}

func TestDispatchSync(t *testing.T) {
	d := parse(t, `<div id="outer"><p id="p"></p></div>`)
	outer := byID(t, d, "outer")
	defer outer.Remove()

	var got *dom.Event
	outer.Listen("change", func(e *dom.Event) {
		got = e
		e.PreventDefault()
	})

	e := byID(t, d, "p").Dispatch("change", map[string]string{"id": "x"}, Now)
	if got != e {
		t.Fatal("listener on the ancestor should see the event")
	}
	if !e.IsCustom() || e.Detail.(map[string]string)["id"] != "x" {
		t.Errorf("custom detail = %v", e.Detail)
	}
	if !e.Bubbles || !e.Cancelable || !e.DefaultPrevented() {
		t.Errorf("event flags = %+v", e)
	}

	plain := byID(t, d, "p").Dispatch("change", nil, Now)
	if plain.IsCustom() {
		t.Error("nil detail should make a plain event")
	}
}

func TestDispatchDelayed(t *testing.T) {
	d := parse(t, `<div id="w"></div>`)
	w := byID(t, d, "w")
	defer w.Remove()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go d.Loop().Run(ctx)
	defer d.Loop().Close()

	fired := make(chan *dom.Event, 1)
	w.Listen("later", func(e *dom.Event) { fired <- e })

	e := w.Dispatch("later", 1, 0)
	select {
	case got := <-fired:
		if got != e {
			t.Error("delayed dispatch delivered a different event")
		}
	case <-ctx.Done():
		t.Fatal("delayed event never fired")
	}
}
