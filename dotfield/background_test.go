package dotfield_test

import (
	"bytes"
	"log"
	"testing"

	"github.com/google/uuid"
	"github.com/plus3/dotfield/dotfield"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func newHost() *fakeHost {
	return &fakeHost{surface: &recordingSurface{}, w: 100, h: 100}
}

func TestMountWithoutSurfaceStaysInactive(t *testing.T) {
	var buf bytes.Buffer
	bg := dotfield.NewBackground(dotfield.Light, log.New(&buf, "", 0))
	host := &fakeHost{w: 100, h: 100}

	bg.Mount(host)

	assert.Equal(t, dotfield.Inactive, bg.State())
	assert.False(t, host.frames.Pending())
	assert.Zero(t, host.listeners.Len())
	assert.Nil(t, bg.Field())
	assert.Equal(t, uuid.Nil, bg.SessionID())
	assert.Contains(t, buf.String(), "no surface")
}

func TestMountStartsLoop(t *testing.T) {
	bg := dotfield.NewBackground(dotfield.Dark, nil)
	host := newHost()

	bg.Mount(host)
	require.Equal(t, dotfield.Active, bg.State())
	assert.NotEqual(t, uuid.Nil, bg.SessionID())
	assert.Equal(t, 25, bg.Field().Len())
	assert.True(t, host.frames.Pending())
	assert.Equal(t, 1, host.listeners.Len())

	surface := host.surface.(*recordingSurface)
	assert.Equal(t, 1, surface.clears)
	assert.Len(t, surface.circles, 25)
	for i := 2; i <= 4; i++ {
		require.True(t, host.frames.Tick())
		assert.Equal(t, i, surface.clears)
		assert.Len(t, surface.circles, 25)
		assert.True(t, host.frames.Pending())
	}
	assert.Equal(t, dotfield.Dark.Color(), surface.circles[0].C)
}

func TestHostEventsReachField(t *testing.T) {
	bg := dotfield.NewBackground(dotfield.Light, nil)
	host := newHost()
	bg.Mount(host)

	host.listeners.PointerMoved(0, 0)
	assert.Equal(t, r2.Vec{}, bg.Field().PointerPosition())

	host.frames.Tick()
	corner := particleAt(t, bg.Field(), r2.Vec{})
	assert.InDelta(t, -dotfield.Strength, corner.Position.X, 1e-9)

	host.listeners.Resized(48, 24)
	assert.Equal(t, 2, bg.Field().Len())
	for _, p := range bg.Field().Particles() {
		assert.Equal(t, p.Origin, p.Position)
	}
}

func TestUnmountCancelsLoop(t *testing.T) {
	var buf bytes.Buffer
	bg := dotfield.NewBackground(dotfield.Light, log.New(&buf, "", 0))
	host := newHost()
	bg.Mount(host)
	id := bg.SessionID()

	bg.Unmount()
	assert.Equal(t, dotfield.Inactive, bg.State())
	assert.False(t, host.frames.Pending())
	assert.False(t, host.frames.Tick())
	assert.Zero(t, host.listeners.Len())
	assert.Contains(t, buf.String(), "unmounted session "+id.String())

	assert.NotPanics(t, bg.Unmount)
	assert.Equal(t, 1, host.surface.(*recordingSurface).clears)
}

func TestRemountNeverOverlaps(t *testing.T) {
	bg := dotfield.NewBackground(dotfield.Light, nil)
	host := newHost()

	bg.Mount(host)
	first := bg.SessionID()
	bg.Mount(host)
	second := bg.SessionID()

	assert.NotEqual(t, first, second)
	assert.Equal(t, 1, host.listeners.Len())

	surface := host.surface.(*recordingSurface)
	assert.Equal(t, 2, surface.clears)
	host.frames.Tick()
	assert.Equal(t, 3, surface.clears)
	host.frames.Tick()
	assert.Equal(t, 4, surface.clears)
}

func TestMountOnNewHostReleasesOld(t *testing.T) {
	bg := dotfield.NewBackground(dotfield.Light, nil)
	a, b := newHost(), newHost()

	bg.Mount(a)
	bg.Mount(b)

	assert.False(t, a.frames.Pending())
	assert.Zero(t, a.listeners.Len())
	assert.True(t, b.frames.Pending())
	assert.Equal(t, 1, b.listeners.Len())
}

func TestSetThemeRemounts(t *testing.T) {
	bg := dotfield.NewBackground(dotfield.Light, nil)
	host := newHost()
	bg.Mount(host)
	host.listeners.PointerMoved(10, 10)
	host.frames.Tick()
	before := bg.SessionID()

	bg.SetTheme(dotfield.Dark)

	assert.Equal(t, dotfield.Dark, bg.Theme())
	assert.Equal(t, dotfield.Active, bg.State())
	assert.NotEqual(t, before, bg.SessionID())
	assert.Equal(t, r2.Vec{X: 10, Y: 10}, bg.Field().PointerPosition())
	assert.Equal(t, 1, host.listeners.Len())
	corner := particleAt(t, bg.Field(), r2.Vec{})
	assert.NotEqual(t, corner.Origin, corner.Position)

	same := bg.SessionID()
	bg.SetTheme(dotfield.Dark)
	assert.Equal(t, same, bg.SessionID())
}

func TestSetThemeWhileInactive(t *testing.T) {
	bg := dotfield.NewBackground(dotfield.Light, nil)
	bg.Toggle()
	assert.Equal(t, dotfield.Dark, bg.Theme())
	assert.Equal(t, dotfield.Inactive, bg.State())
}

func TestThemeFadesPage(t *testing.T) {
	bg := dotfield.NewBackground(dotfield.Light, nil)
	host := newHost()
	bg.Mount(host)
	assert.Equal(t, dotfield.Light.Background(), bg.Page())

	bg.Toggle()
	surface := host.surface.(*recordingSurface)
	for _, c := range surface.circles {
		assert.Equal(t, dotfield.Dark.Color(), c.C)
	}
	assert.NotEqual(t, dotfield.Dark.Background(), bg.Page())

	for range 300 {
		host.frames.Tick()
	}
	for _, c := range surface.circles {
		assert.Equal(t, dotfield.Dark.Color(), c.C)
	}
	assert.Equal(t, dotfield.Dark.Background(), bg.Page())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "inactive", dotfield.Inactive.String())
	assert.Equal(t, "active", dotfield.Active.String())
}
