package nav

import "sort"

// EventKind identifies a viewport event the navigator listens to.
type EventKind int

const (
	EventScroll EventKind = iota
	EventResize
)

func (k EventKind) String() string {
	switch k {
	case EventScroll:
		return "scroll"
	case EventResize:
		return "resize"
	}
	return "unknown"
}

// Event is delivered to registered listeners.
type Event struct {
	Kind     EventKind
	Offset   float64
	Viewport Viewport
	// Layout is the fresh measurement taken for a resize, nil otherwise.
	Layout *Layout
}

// Listener handles a dispatched event.
type Listener func(Event)

type registration struct {
	id    int
	kind  EventKind
	owner string
	fn    Listener
}

// Dispatcher is a per-instance listener registry. Strategies register on
// activation and remove everything they own on teardown.
type Dispatcher struct {
	nextID int
	regs   map[int]registration
}

// NewDispatcher creates an empty registry.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{regs: make(map[int]registration)}
}

// Add registers fn for kind and returns its id.
func (d *Dispatcher) Add(kind EventKind, owner string, fn Listener) int {
	d.nextID++
	d.regs[d.nextID] = registration{id: d.nextID, kind: kind, owner: owner, fn: fn}
	return d.nextID
}

// Remove unregisters a listener. Unknown ids are ignored.
func (d *Dispatcher) Remove(id int) {
	delete(d.regs, id)
}

// RemoveOwner unregisters every listener registered by owner and returns
// how many were removed.
func (d *Dispatcher) RemoveOwner(owner string) int {
	n := 0
	for id, r := range d.regs {
		if r.owner == owner {
			delete(d.regs, id)
			n++
		}
	}
	return n
}

// Count returns the number of listeners registered for kind.
func (d *Dispatcher) Count(kind EventKind) int {
	n := 0
	for _, r := range d.regs {
		if r.kind == kind {
			n++
		}
	}
	return n
}

// Owners lists the distinct owners with at least one listener.
func (d *Dispatcher) Owners() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range d.regs {
		if !seen[r.owner] {
			seen[r.owner] = true
			out = append(out, r.owner)
		}
	}
	sort.Strings(out)
	return out
}

// Dispatch calls every listener for the event kind in registration order.
// Listeners may remove registrations while dispatching.
func (d *Dispatcher) Dispatch(ev Event) {
	ids := make([]int, 0, len(d.regs))
	for id, r := range d.regs {
		if r.kind == ev.Kind {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	for _, id := range ids {
		r, ok := d.regs[id]
		if !ok {
			continue
		}
		r.fn(ev)
	}
}
