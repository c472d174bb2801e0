package scene

// InputKind is a screen-space gesture.
type InputKind int

const (
	LeftClick InputKind = iota
	MouseMove
	RightClick
)

func (k InputKind) String() string {
	switch k {
	case LeftClick:
		return "left_click"
	case MouseMove:
		return "mouse_move"
	case RightClick:
		return "right_click"
	}
	return "unknown"
}

// InputAction receives the map cell a gesture happened at.
type InputAction func(cx, cy int)

// InputHandler keeps exactly one action per gesture kind.
type InputHandler struct {
	actions map[InputKind]InputAction
}

func NewInputHandler() *InputHandler {
	return &InputHandler{actions: make(map[InputKind]InputAction)}
}

// SetInputAction registers fn for kind, replacing any earlier action.
func (h *InputHandler) SetInputAction(kind InputKind, fn InputAction) {
	if fn == nil {
		delete(h.actions, kind)
		return
	}
	h.actions[kind] = fn
}

func (h *InputHandler) RemoveInputAction(kind InputKind) {
	delete(h.actions, kind)
}

// Dispatch calls the action for kind and reports whether one was set.
func (h *InputHandler) Dispatch(kind InputKind, cx, cy int) bool {
	fn, ok := h.actions[kind]
	if !ok {
		return false
	}
	fn(cx, cy)
	return true
}
