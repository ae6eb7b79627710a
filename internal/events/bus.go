package events

import "sync"

// Handler receives a dispatched event.
type Handler func(Event)

// Emitter is the publishing side of the bus.
type Emitter interface {
	Emit(Event)
}

// Subscription identifies a registered handler for Off.
type Subscription struct {
	id   uint64
	kind Kind
	all  bool
}

type entry struct {
	id       uint64
	group    Group
	anyGroup bool
	handler  Handler
}

// Bus dispatches events synchronously, in subscription order, to handlers
// registered by kind and to wildcard handlers. Handlers are not isolated: a
// panic aborts the rest of the dispatch and propagates to Emit's caller.
type Bus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[Kind][]entry
	wildcard []entry
}

// New returns an empty Bus.
func New() *Bus {
	return &Bus{handlers: make(map[Kind][]entry)}
}

// On subscribes h to every event of kind, whatever its group.
func (b *Bus) On(kind Kind, h Handler) Subscription {
	return b.add(kind, entry{anyGroup: true, handler: h})
}

// OnGroup subscribes h to events of kind emitted by one form group.
func (b *Bus) OnGroup(kind Kind, group Group, h Handler) Subscription {
	return b.add(kind, entry{group: group, handler: h})
}

// OnAll subscribes h to every event.
func (b *Bus) OnAll(h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.wildcard = append(b.wildcard, entry{id: b.nextID, anyGroup: true, handler: h})
	return Subscription{id: b.nextID, all: true}
}

func (b *Bus) add(kind Kind, e entry) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	e.id = b.nextID
	b.handlers[kind] = append(b.handlers[kind], e)
	return Subscription{id: e.id, kind: kind}
}

// Off removes a subscription. Removing twice is a no-op.
func (b *Bus) Off(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sub.all {
		b.wildcard = without(b.wildcard, sub.id)
		return
	}
	rest := without(b.handlers[sub.kind], sub.id)
	if len(rest) == 0 {
		delete(b.handlers, sub.kind)
		return
	}
	b.handlers[sub.kind] = rest
}

func without(entries []entry, id uint64) []entry {
	out := make([]entry, 0, len(entries))
	for _, e := range entries {
		if e.id != id {
			out = append(out, e)
		}
	}
	return out
}

// Emit delivers ev to every matching handler. The subscriber list is
// snapshotted first, so handlers may subscribe or emit reentrantly.
func (b *Bus) Emit(ev Event) {
	for _, h := range b.matching(ev) {
		h(ev)
	}
}

func (b *Bus) matching(ev Event) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	byKind := b.handlers[ev.Kind]
	out := make([]Handler, 0, len(byKind)+len(b.wildcard))
	i, j := 0, 0
	// Both lists are ordered by id; merge them to keep subscription order.
	for i < len(byKind) || j < len(b.wildcard) {
		if j >= len(b.wildcard) || (i < len(byKind) && byKind[i].id < b.wildcard[j].id) {
			if e := byKind[i]; e.anyGroup || e.group == ev.Group {
				out = append(out, e.handler)
			}
			i++
			continue
		}
		out = append(out, b.wildcard[j].handler)
		j++
	}
	return out
}
