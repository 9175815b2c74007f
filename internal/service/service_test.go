package service

import "testing"

type recordingListener struct {
	NopListener[int]

	id     string
	events *[]string
}

func (l *recordingListener) ProcessAdd(v int)    { *l.events = append(*l.events, l.id+"-add") }
func (l *recordingListener) ProcessUpdate(v int) { *l.events = append(*l.events, l.id+"-update") }

func TestCachePutGet(t *testing.T) {
	c := NewCache[string, int]()

	if _, ok := c.Get("a"); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	c.Put("a", 1)
	c.Put("a", 2)
	c.Put("b", 3)

	if v, ok := c.Get("a"); !ok || v != 2 {
		t.Fatalf("upsert mismatch! should be 2 but got %d (ok=%v)", v, ok)
	}
	if c.Len() != 2 {
		t.Fatalf("len mismatch! should be 2 but got %d", c.Len())
	}
}

func TestFanOutOrder(t *testing.T) {
	c := NewCache[string, int]()
	var events []string
	c.AddListener(&recordingListener{id: "first", events: &events})
	c.AddListener(&recordingListener{id: "second", events: &events})
	c.AddListener(nil)

	c.FanAdd(1)
	c.FanUpdate(2)

	expected := []string{"first-add", "second-add", "first-update", "second-update"}
	if len(events) != len(expected) {
		t.Fatalf("event count mismatch! should be %d but got %d", len(expected), len(events))
	}
	for i, e := range expected {
		if events[i] != e {
			t.Fatalf("order mismatch at %d! should be %s but got %s", i, e, events[i])
		}
	}
}

func TestNopListenerSilent(t *testing.T) {
	c := NewCache[string, int]()
	c.AddListener(NopListener[int]{})
	c.FanAdd(1)
	c.FanUpdate(1)
	c.FanRemove(1)
}
