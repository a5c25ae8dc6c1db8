package disclosure

import "slices"

// PointerEvent is a pointer press at a screen cell.
type PointerEvent struct {
	X, Y int
}

// Listener reacts to pointer presses dispatched by a Document.
type Listener func(PointerEvent)

// Handle identifies a registered listener.
type Handle uint64

type registration struct {
	handle Handle
	fn     Listener
}

// Document is the page-level pointer source shared by every popup on a
// screen. Listeners run in the capture phase: the owner dispatches each press
// here before routing it to the component under the pointer.
//
// A Document is not safe for concurrent use.
type Document struct {
	next      Handle
	listeners []registration
}

// NewDocument returns a document with no listeners.
func NewDocument() *Document {
	return &Document{}
}

// AddListener registers fn and returns the handle used to remove it.
func (d *Document) AddListener(fn Listener) Handle {
	d.next++
	d.listeners = append(d.listeners, registration{handle: d.next, fn: fn})
	return d.next
}

// RemoveListener unregisters h. Unknown handles are ignored.
func (d *Document) RemoveListener(h Handle) {
	d.listeners = slices.DeleteFunc(d.listeners, func(r registration) bool { return r.handle == h })
}

// ListenerCount returns the number of registered listeners.
func (d *Document) ListenerCount() int {
	return len(d.listeners)
}

// Dispatch delivers ev to every listener registered when the dispatch began.
// Listeners removed by an earlier listener during the same dispatch are
// skipped.
func (d *Document) Dispatch(ev PointerEvent) {
	snapshot := slices.Clone(d.listeners)
	for _, r := range snapshot {
		if !d.registered(r.handle) {
			continue
		}
		r.fn(ev)
	}
}

func (d *Document) registered(h Handle) bool {
	return slices.ContainsFunc(d.listeners, func(r registration) bool { return r.handle == h })
}
