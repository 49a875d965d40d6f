// Package snapshot renders a dot field headlessly to a PNG.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/plus3/dotfield/dotfield"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"gonum.org/v1/gonum/spatial/r2"
)

var ErrEmptyImage = errors.New("snapshot: width and height must be positive")

// Options describe one snapshot.
type Options struct {
	Width, Height int
	Theme         dotfield.Theme
	// Pointer is where the pointer rests while frames run. Nil leaves it
	// at the sentinel so every dot is at rest.
	Pointer *r2.Vec
	// Frames is how many frames to run after the mount frame, before
	// capturing; at least one.
	Frames  int
	Caption string
	Logger  *log.Logger
}

// Render runs the field and returns the final frame.
func Render(opts Options) (image.Image, error) {
	dc, err := render(opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// WritePNG renders and encodes to w.
func WritePNG(w io.Writer, opts Options) error {
	dc, err := render(opts)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SavePNG renders and writes to path.
func SavePNG(path string, opts Options) error {
	dc, err := render(opts)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func render(opts Options) (*gg.Context, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, ErrEmptyImage
	}

	host := &host{
		w:       float64(opts.Width),
		h:       float64(opts.Height),
		surface: &surface{dc: gg.NewContext(opts.Width, opts.Height), page: opts.Theme.Background()},
	}
	bg := dotfield.NewBackground(opts.Theme, opts.Logger)
	bg.Mount(host)
	defer bg.Unmount()

	if opts.Pointer != nil {
		host.listeners.PointerMoved(opts.Pointer.X, opts.Pointer.Y)
	}
	for range max(opts.Frames, 1) {
		host.frames.Tick()
	}

	if opts.Caption != "" {
		if err := caption(host.surface.dc, opts.Caption, opts.Theme); err != nil {
			return nil, err
		}
	}
	return host.surface.dc, nil
}

var monoFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(gomono.TTF)
})

func caption(dc *gg.Context, text string, t dotfield.Theme) error {
	f, err := monoFont()
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	const fontSize = 12.0
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	ink := t.Color()
	ink.A = 0xc0
	dc.SetColor(ink)
	dc.DrawString(text, fontSize, float64(dc.Height())-fontSize)
	return nil
}

type surface struct {
	dc   *gg.Context
	page color.Color
}

func (s *surface) Clear() {
	s.dc.SetColor(s.page)
	s.dc.Clear()
}

func (s *surface) FillCircle(x, y, r float64, c color.Color) {
	s.dc.DrawCircle(x, y, r)
	s.dc.SetColor(c)
	s.dc.Fill()
}

// host is a dotfield.Host whose frames advance only when asked.
type host struct {
	w, h      float64
	surface   *surface
	frames    dotfield.FrameQueue
	listeners dotfield.Listeners
}

func (h *host) Surface() (dotfield.Surface, bool) { return h.surface, true }
func (h *host) Size() (float64, float64) { return h.w, h.h }
func (h *host) Frames() *dotfield.FrameQueue { return &h.frames }
func (h *host) Listen(l dotfield.Listener) func() { return h.listeners.Add(l) }
