package dotfield

// Listener receives the host events the background reacts to.
type Listener interface {
	PointerMoved(x, y float64)
	Resized(w, h float64)
}

// Listeners is a host-side subscriber set. The zero value is ready to use.
type Listeners struct {
	subs map[uint64]Listener
	next uint64
}

// Add subscribes l and returns a func that unsubscribes it. The returned
// func is safe to call more than once.
func (ls *Listeners) Add(l Listener) (remove func()) {
	if ls.subs == nil {
		ls.subs = make(map[uint64]Listener)
	}
	ls.next++
	key := ls.next
	ls.subs[key] = l
	return func() { delete(ls.subs, key) }
}

// Len returns the number of subscribers.
func (ls *Listeners) Len() int {
	return len(ls.subs)
}

// PointerMoved forwards a pointer event to every subscriber.
func (ls *Listeners) PointerMoved(x, y float64) {
	for _, l := range ls.subs {
		l.PointerMoved(x, y)
	}
}

// Resized forwards a resize event to every subscriber.
func (ls *Listeners) Resized(w, h float64) {
	for _, l := range ls.subs {
		l.Resized(w, h)
	}
}
