package window

// Key identifies a keyboard key. The set is intentionally small and can grow
// as input handling is added.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	Key1
	Key2
	Key3
)

// EventKind discriminates Event.
type EventKind int

const (
	EventKeyDown EventKind = iota
	EventKeyUp
	EventResize
)

// Event is one input or window event. Key is set for key events; Width and
// Height are set for resize events and carry the new backing size.
type Event struct {
	Kind   EventKind
	Key    Key
	Width  int
	Height int
}
