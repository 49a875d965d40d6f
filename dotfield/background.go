package dotfield

import (
	"image/color"
	"io"
	"log"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"
)

// State is the mount state of a Background.
type State int

const (
	Inactive State = iota
	Active
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	default:
		return "inactive"
	}
}

// Host is what a Background mounts onto: a drawing surface, its size, a
// next-frame queue and a source of pointer and resize events.
type Host interface {
	// Surface returns the drawing surface, or false if there is none yet.
	Surface() (Surface, bool)
	Size() (w, h float64)
	Frames() *FrameQueue
	// Listen subscribes l to pointer and resize events until remove is
	// called.
	Listen(l Listener) (remove func())
}

// Background drives a Field on a Host while mounted. Each mount gets its
// own Field and session ID; unmounting cancels the pending frame and drops
// the event subscription, so two loops never run at once.
type Background struct {
	logger  *log.Logger
	theme   Theme
	fade    *Fade
	session *session
}

type session struct {
	id       uuid.UUID
	owner    *Background
	host     Host
	surface  Surface
	field    *Field
	frame    FrameID
	unlisten func()
}

// NewBackground returns an inactive background in theme t. A nil logger
// discards log output.
func NewBackground(t Theme, logger *log.Logger) *Background {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Background{
		logger: logger,
		theme:  t,
		fade:   NewFade(t.Background()),
	}
}

// Mount starts animating on host, unmounting any previous session first,
// and draws the first frame before returning. If the host has no surface
// the background stays inactive.
func (b *Background) Mount(host Host) {
	b.mount(host, PointerSentinel)
}

// mount starts a session with the pointer at pointer.
func (b *Background) mount(host Host, pointer r2.Vec) {
	b.Unmount()

	surface, ok := host.Surface()
	if !ok || surface == nil {
		b.logger.Printf("dotfield: no surface, staying inactive")
		return
	}

	s := &session{
		id:      uuid.New(),
		owner:   b,
		host:    host,
		surface: surface,
		field:   NewField(),
	}
	s.field.RebuildGrid(host.Size())
	s.field.OnPointerMove(pointer.X, pointer.Y)
	s.unlisten = host.Listen(s)
	b.session = s

	w, h := host.Size()
	b.logger.Printf("dotfield: mounted session %s (%.0fx%.0f, %d particles, %s theme)",
		s.id, w, h, s.field.Len(), b.theme)

	s.tick()
}

// Unmount stops the animation. It is a no-op when inactive.
func (b *Background) Unmount() {
	s := b.session
	if s == nil {
		return
	}
	b.session = nil
	s.host.Frames().Cancel(s.frame)
	s.frame = 0
	if s.unlisten != nil {
		s.unlisten()
		s.unlisten = nil
	}
	b.logger.Printf("dotfield: unmounted session %s", s.id)
}

// SetTheme switches the dot colour. An active background is remounted on
// the same host, which rebuilds the grid but keeps the pointer where it
// was. The page colour eases towards the new theme over the next frames.
func (b *Background) SetTheme(t Theme) {
	if t == b.theme {
		return
	}
	b.theme = t
	b.fade.Retarget(t.Background())

	if s := b.session; s != nil {
		b.mount(s.host, s.field.PointerPosition())
	}
}

// Toggle flips between light and dark.
func (b *Background) Toggle() {
	b.SetTheme(b.theme.Toggle())
}

// State reports whether a session is running.
func (b *Background) State() State {
	if b.session == nil {
		return Inactive
	}
	return Active
}

// Theme returns the current theme.
func (b *Background) Theme() Theme {
	return b.theme
}

// Page returns the page colour hosts paint behind the dots. It lags
// Theme().Background() while a theme change fades in.
func (b *Background) Page() color.NRGBA {
	return b.fade.Color()
}

// Field returns the active session's field, or nil when inactive.
func (b *Background) Field() *Field {
	if b.session == nil {
		return nil
	}
	return b.session.field
}

// SessionID returns the active session's ID, or uuid.Nil when inactive.
// The ID labels log lines and the debug overlay; it plays no part in
// deciding whether a queued frame is stale.
func (b *Background) SessionID() uuid.UUID {
	if b.session == nil {
		return uuid.Nil
	}
	return b.session.id
}

func (s *session) current() bool {
	return s.owner.session == s
}

func (s *session) request() {
	s.frame = s.host.Frames().Request(s.tick)
}

func (s *session) tick() {
	if !s.current() {
		return
	}
	s.owner.fade.Step()
	s.field.AdvanceFrame()
	s.field.Render(s.surface, s.owner.theme)
	s.request()
}

func (s *session) PointerMoved(x, y float64) {
	if s.current() {
		s.field.OnPointerMove(x, y)
	}
}

func (s *session) Resized(w, h float64) {
	if s.current() {
		s.field.RebuildGrid(w, h)
	}
}
