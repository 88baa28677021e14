package core

import (
	"testing"
	"time"
)

func TestInputTracksState(t *testing.T) {
	in := NewInput()
	in.Handle(EventMouseButton{Button: MouseLeft, Down: true})
	in.Handle(EventMouseMove{X: 10, Y: 20})
	in.Handle(EventMouseMove{X: 15, Y: 18})

	if !in.IsButtonDown(MouseLeft) || in.IsButtonDown(MouseRight) {
		t.Error("button state wrong")
	}
	if x, y := in.Mouse(); x != 15 || y != 18 {
		t.Errorf("Mouse = (%v, %v)", x, y)
	}
	if x, y := in.PrevMouse(); x != 10 || y != 20 {
		t.Errorf("PrevMouse = (%v, %v)", x, y)
	}

	in.Handle(EventMouseButton{Button: MouseLeft, Down: false})
	if in.IsButtonDown(MouseLeft) {
		t.Error("release not tracked")
	}
}

func TestKeyDigit(t *testing.T) {
	tests := []struct {
		k    Key
		n    int
		isOK bool
	}{
		{Key1, 1, true},
		{Key5, 5, true},
		{Key9, 9, true},
		{KeySpace, 0, false},
		{KeyUnknown, 0, false},
	}
	for _, tt := range tests {
		if n, ok := tt.k.Digit(); n != tt.n || ok != tt.isOK {
			t.Errorf("Key(%d).Digit() = %d, %v", tt.k, n, ok)
		}
	}
}

type recordLayer struct {
	name    string
	consume bool
	log     *[]string
}

func (l *recordLayer) OnAttach(e *Engine)                { *l.log = append(*l.log, "attach "+l.name) }
func (l *recordLayer) OnDetach(e *Engine)                { *l.log = append(*l.log, "detach "+l.name) }
func (l *recordLayer) OnUpdate(e *Engine, dt float64)    {}
func (l *recordLayer) OnRender(e *Engine, alpha float64) {}
func (l *recordLayer) OnEvent(e *Engine, ev Event) bool {
	*l.log = append(*l.log, "event "+l.name)
	return l.consume
}

func TestDispatchTopDownUntilHandled(t *testing.T) {
	var log []string
	e := &Engine{Input: NewInput()}
	e.PushLayer(&recordLayer{name: "bottom", log: &log})
	e.PushLayer(&recordLayer{name: "middle", consume: true, log: &log})
	e.PushLayer(&recordLayer{name: "top", log: &log})

	e.Dispatch(EventMouseButton{Button: MouseRight, Down: true})

	want := []string{"attach bottom", "attach middle", "attach top", "event top", "event middle"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
	if !e.Input.IsButtonDown(MouseRight) {
		t.Error("Dispatch did not update input")
	}
	if e.Layers.Len() != 3 {
		t.Errorf("Len = %d", e.Layers.Len())
	}
}

func TestLayerStackPopOrder(t *testing.T) {
	var log []string
	var ls LayerStack
	ls.Push(&recordLayer{name: "a", log: &log})
	ls.Push(&recordLayer{name: "b", log: &log})

	l, ok := ls.Pop()
	if !ok || l.(*recordLayer).name != "b" {
		t.Fatalf("Pop = %v, %v", l, ok)
	}
	ls.Pop()
	if _, ok := ls.Pop(); ok {
		t.Error("Pop on empty stack")
	}
}

func TestUptimeReadsClock(t *testing.T) {
	c := NewManualClock(time.Unix(50, 0))
	e := &Engine{Clock: c, start: c.Now()}
	c.Advance(3 * time.Second)
	if got := e.Uptime(); got != 3*time.Second {
		t.Errorf("Uptime = %v, want 3s", got)
	}
}

func TestManualClock(t *testing.T) {
	start := time.Unix(100, 0)
	c := NewManualClock(start)
	if !c.Now().Equal(start) {
		t.Fatal("start time")
	}
	c.Advance(250 * time.Millisecond)
	if got := c.Now().Sub(start); got != 250*time.Millisecond {
		t.Errorf("advanced %v", got)
	}
	c.Set(start)
	if !c.Now().Equal(start) {
		t.Error("Set")
	}
	var _ Clock = SystemClock{}
}
