package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/hubastard/fractalgrove/engine/core"
)

var buttonMap = []struct {
	mask tcell.ButtonMask
	btn  core.MouseButton
}{
	{tcell.Button1, core.MouseLeft},
	{tcell.Button2, core.MouseRight},
	{tcell.Button3, core.MouseMiddle},
}

// Translator turns tcell events into engine events. Terminals report button
// state, not transitions, so the last mask is kept to synthesize presses and
// releases. Positions are mapped to the center of the cell's pixel pair.
//
// Terminals cannot tell Ctrl+digit from a digit, so Alt+digit stands in for it.
type Translator struct {
	buttons  tcell.ButtonMask
	x, y     int
	havePrev bool
}

func (t *Translator) Translate(ev tcell.Event) []core.Event {
	switch e := ev.(type) {
	case *tcell.EventResize:
		w, h := PixelSize(e.Size())
		return []core.Event{core.EventResize{W: w, H: h}}
	case *tcell.EventMouse:
		return t.mouse(e)
	case *tcell.EventKey:
		return translateKey(e)
	}
	return nil
}

func (t *Translator) mouse(e *tcell.EventMouse) []core.Event {
	var out []core.Event
	x, y := e.Position()
	if !t.havePrev || x != t.x || y != t.y {
		out = append(out, core.EventMouseMove{X: float64(x) + 0.5, Y: float64(2*y) + 1})
		t.x, t.y, t.havePrev = x, y, true
	}

	mods := translateMods(e.Modifiers())
	btns := e.Buttons()
	for _, b := range buttonMap {
		was, is := t.buttons&b.mask != 0, btns&b.mask != 0
		if was != is {
			out = append(out, core.EventMouseButton{Button: b.btn, Down: is, Mods: mods})
		}
	}
	t.buttons = btns & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	if btns&tcell.WheelUp != 0 {
		out = append(out, core.EventScroll{Yoff: 1})
	}
	if btns&tcell.WheelDown != 0 {
		out = append(out, core.EventScroll{Yoff: -1})
	}
	return out
}

func translateKey(e *tcell.EventKey) []core.Event {
	mods := translateMods(e.Modifiers())
	switch e.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return []core.Event{core.EventKey{Key: core.KeyEscape, Down: true}}
	case tcell.KeyCtrlP:
		return []core.Event{core.EventKey{Key: core.KeyP, Down: true, Mods: core.ModCtrl}}
	case tcell.KeyRune:
	default:
		return nil
	}

	r := e.Rune()
	if mods&core.ModAlt != 0 && r >= '1' && r <= '9' {
		return []core.Event{core.EventKey{Key: core.Key1 + core.Key(r-'1'), Down: true, Mods: core.ModCtrl}}
	}
	if r == 's' || r == 'S' {
		return []core.Event{core.EventKey{Key: core.KeyS, Down: true}}
	}
	return []core.Event{core.EventChar{Rune: r}}
}

func translateMods(m tcell.ModMask) core.Mod {
	var out core.Mod
	if m&tcell.ModShift != 0 {
		out |= core.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= core.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= core.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		out |= core.ModSuper
	}
	return out
}
