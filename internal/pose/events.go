package pose

import "github.com/Faultbox/holoframe/pkg/math"

// PointerEventType identifies a pointer interaction on the frame.
type PointerEventType int

const (
	PointerSelect PointerEventType = iota
	PointerMove
	PointerUnselect
)

func (t PointerEventType) String() string {
	switch t {
	case PointerSelect:
		return "select"
	case PointerMove:
		return "move"
	case PointerUnselect:
		return "unselect"
	default:
		return "unknown"
	}
}

// PointerEvent describes one pointer interaction.
type PointerEvent struct {
	Type     PointerEventType
	Position math.Vec3
}

// UnselectSource delivers "deselected" notifications. OnUnselect returns a
// function that removes the handler.
type UnselectSource interface {
	OnUnselect(handler func(PointerEvent)) (remove func())
}

// PointableEvents fans pointer events out to registered handlers. Handlers
// run in registration order.
type PointableEvents struct {
	nextID   int
	selected []handler
	released []handler
}

type handler struct {
	id int
	fn func(PointerEvent)
}

// NewPointableEvents creates an empty event source.
func NewPointableEvents() *PointableEvents {
	return &PointableEvents{}
}

// OnSelect registers a handler for select events.
func (e *PointableEvents) OnSelect(fn func(PointerEvent)) func() {
	return e.add(&e.selected, fn)
}

// OnUnselect registers a handler for unselect events.
func (e *PointableEvents) OnUnselect(fn func(PointerEvent)) func() {
	return e.add(&e.released, fn)
}

// Select dispatches a select event.
func (e *PointableEvents) Select(ev PointerEvent) {
	ev.Type = PointerSelect
	dispatch(e.selected, ev)
}

// Unselect dispatches an unselect event.
func (e *PointableEvents) Unselect(ev PointerEvent) {
	ev.Type = PointerUnselect
	dispatch(e.released, ev)
}

func (e *PointableEvents) add(list *[]handler, fn func(PointerEvent)) func() {
	id := e.nextID
	e.nextID++
	*list = append(*list, handler{id: id, fn: fn})
	return func() {
		for i, h := range *list {
			if h.id == id {
				*list = append((*list)[:i:i], (*list)[i+1:]...)
				return
			}
		}
	}
}

func dispatch(list []handler, ev PointerEvent) {
	// Copy so a handler may unregister itself mid-dispatch
	for _, h := range append([]handler(nil), list...) {
		h.fn(ev)
	}
}
