package core

// Input tracks button and pointer state from the event stream.
// The previous pointer position is kept so drag handlers can see both ends of a move.
type Input struct {
	buttons        map[MouseButton]bool
	mouseX, mouseY float64
	prevX, prevY   float64
}

func NewInput() *Input {
	return &Input{buttons: map[MouseButton]bool{}}
}

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventMouseButton:
		in.buttons[e.Button] = e.Down
	case EventMouseMove:
		in.prevX, in.prevY = in.mouseX, in.mouseY
		in.mouseX, in.mouseY = e.X, e.Y
	}
}

func (in *Input) IsButtonDown(b MouseButton) bool { return in.buttons[b] }
func (in *Input) Mouse() (float64, float64)       { return in.mouseX, in.mouseY }
func (in *Input) PrevMouse() (float64, float64)   { return in.prevX, in.prevY }

