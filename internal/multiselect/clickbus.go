// SPDX-License-Identifier: GPL-3.0-or-later
package multiselect

// Click is a pointer press in host screen cells
type Click struct {
	X, Y int
}

// Rect is a screen rectangle; Max is exclusive
type Rect struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Contains reports whether the point lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}

// ClickBus fans every click in the host program out to its listeners.
// It is owned by the host and used from the host's event loop only.
type ClickBus struct {
	nextID    int
	listeners map[int]func(Click)
	order     []int
}

// NewClickBus creates an empty bus
func NewClickBus() *ClickBus {
	return &ClickBus{listeners: make(map[int]func(Click))}
}

// Subscription is the handle returned by Subscribe
type Subscription struct {
	bus *ClickBus
	id  int
}

// Subscribe registers fn for every published click
func (b *ClickBus) Subscribe(fn func(Click)) *Subscription {
	b.nextID++
	id := b.nextID
	b.listeners[id] = fn
	b.order = append(b.order, id)
	return &Subscription{bus: b, id: id}
}

// Cancel removes the listener. Calling it more than once is harmless.
func (s *Subscription) Cancel() {
	if s == nil || s.bus == nil {
		return
	}
	b := s.bus
	s.bus = nil

	delete(b.listeners, s.id)
	for i, id := range b.order {
		if id == s.id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Active reports whether the subscription is still registered
func (s *Subscription) Active() bool {
	return s != nil && s.bus != nil
}

// Publish delivers c to every listener in subscription order. Listeners
// removed during delivery are skipped.
func (b *ClickBus) Publish(c Click) {
	ids := append([]int(nil), b.order...)
	for _, id := range ids {
		if fn, ok := b.listeners[id]; ok {
			fn(c)
		}
	}
}

// Len returns the number of live listeners
func (b *ClickBus) Len() int {
	return len(b.listeners)
}
