package window

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/dotfield/dotfield"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resizeRecorder struct {
	sizes [][2]float64
}

func (r *resizeRecorder) PointerMoved(x, y float64) {}
func (r *resizeRecorder) Resized(w, h float64) {
	r.sizes = append(r.sizes, [2]float64{w, h})
}

func TestGameHostBeforeFirstDraw(t *testing.T) {
	g := NewGame(Config{Title: "test", Width: 640, Height: 480, Theme: dotfield.Dark})

	_, ok := g.Surface()
	assert.False(t, ok)

	w, h := g.Size()
	assert.Equal(t, 640.0, w)
	assert.Equal(t, 480.0, h)
	assert.Equal(t, dotfield.Inactive, g.Background().State())

	g.Background().Mount(g)
	assert.Equal(t, dotfield.Inactive, g.Background().State())
	assert.False(t, g.Frames().Pending())
}

func TestGameLayoutEmitsResizeOnChange(t *testing.T) {
	g := NewGame(Config{Width: 640, Height: 480})
	rec := &resizeRecorder{}
	remove := g.Listen(rec)

	ow, oh := g.Layout(640, 480)
	assert.Equal(t, 640, ow)
	assert.Equal(t, 480, oh)
	assert.Empty(t, rec.sizes)

	g.Layout(800, 600)
	g.Layout(800, 600)
	require.Len(t, rec.sizes, 1)
	assert.Equal(t, [2]float64{800, 600}, rec.sizes[0])

	remove()
	g.Layout(100, 100)
	assert.Len(t, rec.sizes, 1)
}

func TestScreenSurfaceWithoutImage(t *testing.T) {
	s := &screenSurface{}
	assert.NotPanics(t, func() {
		s.Clear()
		s.FillCircle(1, 1, 1, dotfield.Dark.Color())
	})
}

type toggleOverlay struct {
	pressed bool
}

func (o *toggleOverlay) Update(bg *dotfield.Background, toggle func()) {
	if o.pressed {
		o.pressed = false
		toggle()
	}
}

func (o *toggleOverlay) Draw(screen *ebiten.Image) {}
func (o *toggleOverlay) Layout(w, h int) {}
func (o *toggleOverlay) WantsPointer() bool { return false }

func TestOverlayToggleSavesTheme(t *testing.T) {
	var saved []dotfield.Theme
	overlay := &toggleOverlay{}
	g := NewGame(Config{
		Width:   240,
		Height:  240,
		Theme:   dotfield.Light,
		Overlay: overlay,
		OnTheme: func(th dotfield.Theme) { saved = append(saved, th) },
	})

	g.attached = true
	g.Background().Mount(g)
	require.Equal(t, dotfield.Active, g.Background().State())

	g.updateOverlay()
	assert.Empty(t, saved)

	overlay.pressed = true
	g.updateOverlay()
	assert.Equal(t, dotfield.Dark, g.Background().Theme())
	assert.Equal(t, []dotfield.Theme{dotfield.Dark}, saved)
	assert.Equal(t, dotfield.Active, g.Background().State())

	g.toggleTheme()
	assert.Equal(t, []dotfield.Theme{dotfield.Dark, dotfield.Light}, saved)
}

func TestScreenSurfacePagesFollowFade(t *testing.T) {
	g := NewGame(Config{Width: 48, Height: 48, Theme: dotfield.Light})
	assert.Equal(t, dotfield.Light.Background(), g.surface.page())

	g.attached = true
	g.Background().Mount(g)
	g.toggleTheme()
	for range 300 {
		g.frames.Tick()
	}
	assert.Equal(t, dotfield.Dark.Background(), g.surface.page())
}
