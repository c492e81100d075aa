package search

// Key is a keyboard input relevant to a result list.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyEnter
	KeyEscape
)

// ParseKey maps DOM key names to Keys.
func ParseKey(name string) Key {
	switch name {
	case "ArrowUp", "up":
		return KeyUp
	case "ArrowDown", "down":
		return KeyDown
	case "Enter", "enter":
		return KeyEnter
	case "Escape", "Esc", "escape":
		return KeyEscape
	}
	return KeyNone
}

// Intent is what the UI should do after a key press.
type Intent int

const (
	IntentNone Intent = iota
	IntentMove
	IntentSelect
	IntentClear
)

// Navigator tracks the highlighted row of a result list. Movement wraps
// around at both ends. Active is -1 when no row is highlighted.
type Navigator struct {
	count  int
	active int
}

// NewNavigator returns a navigator over count rows with nothing highlighted.
func NewNavigator(count int) *Navigator {
	return &Navigator{count: count, active: -1}
}

// Active returns the highlighted row, or -1.
func (n *Navigator) Active() int {
	return n.active
}

// SetActive highlights row i; out-of-range values clear the highlight.
func (n *Navigator) SetActive(i int) {
	if i < 0 || i >= n.count {
		n.active = -1
		return
	}
	n.active = i
}

// Reset replaces the row count and clears the highlight.
func (n *Navigator) Reset(count int) {
	n.count = count
	n.active = -1
}

// Handle applies a key press.
func (n *Navigator) Handle(k Key) Intent {
	switch k {
	case KeyDown:
		if n.count == 0 {
			return IntentNone
		}
		n.active = (n.active + 1) % n.count
		return IntentMove
	case KeyUp:
		if n.count == 0 {
			return IntentNone
		}
		if n.active <= 0 {
			n.active = n.count - 1
		} else {
			n.active--
		}
		return IntentMove
	case KeyEnter:
		if n.active < 0 {
			return IntentNone
		}
		return IntentSelect
	case KeyEscape:
		n.Reset(0)
		return IntentClear
	}
	return IntentNone
}
