// Package term hosts a dotfield.Background in a terminal, drawing dots as
// braille glyphs and following the mouse.
package term

import (
	"context"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/dotfield/dotfield"
)

// FrameInterval is the redraw period, about 60 frames per second.
const FrameInterval = 16 * time.Millisecond

// Config sets up a Terminal.
type Config struct {
	Theme  dotfield.Theme
	Logger *log.Logger
	// OnTheme is called after the user toggles the theme.
	OnTheme func(dotfield.Theme)
}

// Terminal implements dotfield.Host on a tcell screen. The caller owns the
// screen: it must be initialised before NewTerminal and finalised after Run.
type Terminal struct {
	cfg     Config
	screen  tcell.Screen
	bg      *dotfield.Background
	surface *brailleSurface

	frames    dotfield.FrameQueue
	listeners dotfield.Listeners
}

// NewTerminal wraps an initialised screen.
func NewTerminal(screen tcell.Screen, cfg Config) *Terminal {
	cols, rows := screen.Size()
	return &Terminal{
		cfg:     cfg,
		screen:  screen,
		bg:      dotfield.NewBackground(cfg.Theme, cfg.Logger),
		surface: newBrailleSurface(cols, rows),
	}
}

// Background returns the hosted background.
func (t *Terminal) Background() *dotfield.Background {
	return t.bg
}

func (t *Terminal) Surface() (dotfield.Surface, bool) {
	return t.surface, t.surface.cols > 0 && t.surface.rows > 0
}

func (t *Terminal) Size() (float64, float64) {
	return float64(t.surface.cols * CellWidth), float64(t.surface.rows * CellHeight)
}

func (t *Terminal) Frames() *dotfield.FrameQueue {
	return &t.frames
}

func (t *Terminal) Listen(l dotfield.Listener) func() {
	return t.listeners.Add(l)
}

// Run mounts the background and redraws until ctx is done or the user
// quits.
func (t *Terminal) Run(ctx context.Context) error {
	t.screen.EnableMouse(tcell.MouseMotionEvents)
	t.screen.HideCursor()
	defer t.screen.DisableMouse()

	t.bg.Mount(t)
	defer t.bg.Unmount()
	t.show()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !t.handle(ev) {
				return nil
			}
		case <-ticker.C:
			t.frame()
		}
	}
}

// frame runs the pending frame callback and shows the result.
func (t *Terminal) frame() {
	if t.frames.Tick() {
		t.show()
	}
}

func (t *Terminal) show() {
	t.surface.flush(t.screen, t.bg.Page())
	t.screen.Show()
}

// handle applies one event and reports whether to keep running.
func (t *Terminal) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 't':
			t.bg.Toggle()
			if t.cfg.OnTheme != nil {
				t.cfg.OnTheme(t.bg.Theme())
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		t.listeners.PointerMoved(cellCentre(x, y))

	case *tcell.EventResize:
		cols, rows := ev.Size()
		t.screen.Sync()
		t.surface.resize(cols, rows)
		if t.bg.State() == dotfield.Inactive {
			t.bg.Mount(t)
			t.show()
		} else {
			t.listeners.Resized(t.Size())
		}
	}
	return true
}

// cellCentre converts a cell position to surface units.
func cellCentre(col, row int) (float64, float64) {
	return float64(col*CellWidth + CellWidth/2), float64(row*CellHeight + CellHeight/2)
}
