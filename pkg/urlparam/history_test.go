package urlparam

import "testing"

func TestHistoryPushReplace(t *testing.T) {
	h := NewHistory("/")
	h.Push("a", "A", "/?p=a")
	h.Push("b", "B", "/?p=b")

	if h.Len() != 3 || h.URL() != "/?p=b" || h.State() != "b" {
		t.Fatalf("after pushes: len %d, url %q", h.Len(), h.URL())
	}

	h.Replace("c", "C", "/?p=c")
	if h.Len() != 3 || h.Current().Title != "C" {
		t.Errorf("Replace should keep length, got %d / %q", h.Len(), h.Current().Title)
	}
}

func TestHistoryNavigation(t *testing.T) {
	h := NewHistory("/")
	h.Push(nil, "", "/1")
	h.Push(nil, "", "/2")

	if e, ok := h.Back(); !ok || e.URL != "/1" {
		t.Errorf("Back() = %q, %v", e.URL, ok)
	}
	if e, ok := h.Forward(); !ok || e.URL != "/2" {
		t.Errorf("Forward() = %q, %v", e.URL, ok)
	}
	if _, ok := h.Forward(); ok {
		t.Error("Forward at the end should fail")
	}
	if _, ok := h.Go(-5); ok {
		t.Error("Go past the start should fail")
	}

	h.Go(-2)
	h.Push(nil, "", "/fork")
	if h.Len() != 2 || h.URL() != "/fork" {
		t.Errorf("push after back should drop forward entries: len %d", h.Len())
	}
}

func TestHistorySubscribe(t *testing.T) {
	h := NewHistory("/")
	var got []string
	h.Subscribe(func(e Entry, mode URLMode) {
		got = append(got, mode.String()+" "+e.URL)
	})
	h.Subscribe(nil)

	h.Push(nil, "", "/a")
	h.Replace(nil, "", "/b")

	if len(got) != 2 || got[0] != "push /a" || got[1] != "replace /b" {
		t.Errorf("events = %v", got)
	}
}
