package dotfield

import (
	"image/color"
	"math"

	"github.com/charmbracelet/harmonica"
)

// Fade spring parameters. Critically damped so colours never overshoot.
const (
	FadeFPS       = 60
	FadeFrequency = 15.0
	FadeDamping   = 1.0
)

// Fade eases the page colour between themes, one Step per frame. Dots
// switch colour at once; only the page behind them transitions.
type Fade struct {
	spring harmonica.Spring
	pos    [4]float64
	vel    [4]float64
	target [4]float64
}

// NewFade starts settled on c.
func NewFade(c color.NRGBA) *Fade {
	f := &Fade{spring: harmonica.NewSpring(harmonica.FPS(FadeFPS), FadeFrequency, FadeDamping)}
	f.target = channels(c)
	f.pos = f.target
	return f
}

// Retarget starts easing towards c from the current colour.
func (f *Fade) Retarget(c color.NRGBA) {
	f.target = channels(c)
}

// Step advances the spring one frame and returns the new colour.
func (f *Fade) Step() color.NRGBA {
	if f.Settled() {
		return f.Color()
	}

	done := true
	for i := range f.pos {
		f.pos[i], f.vel[i] = f.spring.Update(f.pos[i], f.vel[i], f.target[i])
		if math.Abs(f.pos[i]-f.target[i]) >= 0.5 || math.Abs(f.vel[i]) >= 0.5 {
			done = false
		}
	}
	if done {
		f.pos = f.target
		f.vel = [4]float64{}
	}
	return f.Color()
}

// Color returns the current colour.
func (f *Fade) Color() color.NRGBA {
	return color.NRGBA{
		R: channel(f.pos[0]),
		G: channel(f.pos[1]),
		B: channel(f.pos[2]),
		A: channel(f.pos[3]),
	}
}

// Settled reports whether the colour has reached its target.
func (f *Fade) Settled() bool {
	return f.pos == f.target && f.vel == [4]float64{}
}

func channels(c color.NRGBA) [4]float64 {
	return [4]float64{float64(c.R), float64(c.G), float64(c.B), float64(c.A)}
}

func channel(v float64) uint8 {
	return uint8(math.Round(max(0, min(255, v))))
}
