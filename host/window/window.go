// Package window hosts a dotfield.Background in an ebiten window.
package window

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/dotfield/dotfield"
)

// Config sets up a window Game.
type Config struct {
	Title  string
	Width  int
	Height int
	Theme  dotfield.Theme
	Logger *log.Logger
	// OnTheme is called after the user toggles the theme.
	OnTheme func(dotfield.Theme)
	// Overlay, when set, is driven alongside the background.
	Overlay Overlay
}

// Overlay is a UI layer drawn over the dots that may claim the pointer.
// Update receives the host's theme toggle so overlay controls save the
// choice the same way the keyboard does.
type Overlay interface {
	Update(bg *dotfield.Background, toggle func())
	Draw(screen *ebiten.Image)
	Layout(w, h int)
	WantsPointer() bool
}

// Game implements ebiten.Game and dotfield.Host. The background mounts on
// the first Draw, once ebiten has a screen to draw on. Outside Draw the
// surface has no image and drawing to it is a no-op.
type Game struct {
	cfg Config
	bg  *dotfield.Background

	frames    dotfield.FrameQueue
	listeners dotfield.Listeners
	surface   *screenSurface

	width, height int
	cursorX       int
	cursorY       int
	cursorSeen    bool
	attached      bool
}

// NewGame returns a game ready for ebiten.RunGame.
func NewGame(cfg Config) *Game {
	g := &Game{cfg: cfg, width: cfg.Width, height: cfg.Height}
	g.bg = dotfield.NewBackground(cfg.Theme, cfg.Logger)
	g.surface = &screenSurface{page: func() color.Color { return g.bg.Page() }}
	return g
}

// Run opens the window and blocks until it closes.
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(g)
	g.bg.Unmount()
	return err
}

// Background returns the hosted background.
func (g *Game) Background() *dotfield.Background {
	return g.bg
}

func (g *Game) Surface() (dotfield.Surface, bool) {
	return g.surface, g.attached
}

func (g *Game) Size() (float64, float64) {
	return float64(g.width), float64(g.height)
}

func (g *Game) Frames() *dotfield.FrameQueue {
	return &g.frames
}

func (g *Game) Listen(l dotfield.Listener) func() {
	return g.listeners.Add(l)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.toggleTheme()
	}

	x, y := ebiten.CursorPosition()
	if !g.cursorSeen || x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY, g.cursorSeen = x, y, true
		if g.cfg.Overlay == nil || !g.cfg.Overlay.WantsPointer() {
			g.listeners.PointerMoved(float64(x), float64(y))
		}
	}

	g.updateOverlay()
	return nil
}

// toggleTheme flips the theme and reports the new one to OnTheme.
func (g *Game) toggleTheme() {
	g.bg.Toggle()
	if g.cfg.OnTheme != nil {
		g.cfg.OnTheme(g.bg.Theme())
	}
}

func (g *Game) updateOverlay() {
	if g.cfg.Overlay != nil {
		g.cfg.Overlay.Update(g.bg, g.toggleTheme)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.img = screen
	defer func() { g.surface.img = nil }()

	if !g.attached {
		g.attached = true
		g.bg.Mount(g)
	} else {
		g.frames.Tick()
	}

	if g.cfg.Overlay != nil {
		g.cfg.Overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.listeners.Resized(float64(outsideWidth), float64(outsideHeight))
	}
	if g.cfg.Overlay != nil {
		g.cfg.Overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
