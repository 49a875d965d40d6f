package dotfield

// FrameID identifies one frame request. Zero is never issued.
type FrameID uint64

// FrameQueue is a single-slot next-frame scheduler: at most one callback is
// pending, a new Request replaces it, and Tick runs it once. A callback that
// wants to keep animating requests again while it runs. Hosts call Tick once
// per display refresh.
type FrameQueue struct {
	last    FrameID
	pending FrameID
	fn      func()
}

// Request schedules fn for the next Tick and returns its ID.
func (q *FrameQueue) Request(fn func()) FrameID {
	q.last++
	q.pending = q.last
	q.fn = fn
	return q.last
}

// Cancel drops the pending callback if id still names it.
func (q *FrameQueue) Cancel(id FrameID) {
	if id != 0 && id == q.pending {
		q.pending = 0
		q.fn = nil
	}
}

// Pending reports whether a callback is waiting.
func (q *FrameQueue) Pending() bool {
	return q.fn != nil
}

// Tick runs the pending callback, if any, and reports whether it did.
func (q *FrameQueue) Tick() bool {
	fn := q.fn
	if fn == nil {
		return false
	}
	q.pending = 0
	q.fn = nil
	fn()
	return true
}
