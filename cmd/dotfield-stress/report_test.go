package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/dotfield/dotfield"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)
	assert.Equal(t, 3*time.Millisecond, s.P99)

	empty := Stats{}
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestPercentileEmpirical(t *testing.T) {
	samples := make([]time.Duration, 100)
	for i := range samples {
		samples[len(samples)-1-i] = time.Duration(i+1) * time.Millisecond
	}

	assert.Equal(t, 99*time.Millisecond, percentile(samples, 0.99))
	assert.Equal(t, 50*time.Millisecond, percentile(samples, 0.5))
	assert.Equal(t, 100*time.Millisecond, percentile(samples, 1))
	assert.Equal(t, 100*time.Millisecond, samples[0])
	assert.Zero(t, percentile(nil, 0.99))
}

func TestFrameXYsBuckets(t *testing.T) {
	samples := make([]time.Duration, 10)
	for i := range samples {
		samples[i] = time.Duration(i+1) * time.Millisecond
	}

	pts := frameXYs(samples, 5)
	require.Len(t, pts, 5)
	assert.Equal(t, 0.0, pts[0].X)
	assert.Equal(t, 1.5, pts[0].Y)
	assert.Equal(t, 8.0, pts[4].X)
	assert.Equal(t, 9.5, pts[4].Y)

	assert.Len(t, frameXYs(samples, 100), 10)
}

func TestSweepStaysInViewport(t *testing.T) {
	for frame := range int64(1000) {
		x, y := sweep(frame, 640, 480)
		assert.GreaterOrEqual(t, x, 0.0)
		assert.LessOrEqual(t, x, 640.0)
		assert.GreaterOrEqual(t, y, 0.0)
		assert.LessOrEqual(t, y, 480.0)
	}
}

func TestReportGenerateAndPlot(t *testing.T) {
	field := dotfield.NewField()
	field.RebuildGrid(100, 100)
	field.AdvanceFrame()
	field.Render(&discardSurface{}, dotfield.Light)

	r := &Report{
		Duration:    time.Second,
		Width:       100,
		Height:      100,
		Particles:   field.Len(),
		TotalFrames: 60,
		TotalTime:   time.Second,
		AdvanceTime: Stats{Samples: []time.Duration{time.Millisecond, 2 * time.Millisecond}},
		RenderTime:  Stats{Samples: []time.Duration{time.Millisecond}},
		Schedulers:  field.Stats(),
	}
	r.AdvanceTime.Finalize()
	r.RenderTime.Finalize()

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "**Particles:** 25")
	assert.Contains(t, out, "60.0 fps")
	assert.Contains(t, out, "| DisplaceSystem | 1 |")

	path := filepath.Join(t.TempDir(), "frames.png")
	require.NoError(t, r.Plot(path))
	assert.FileExists(t, path)
}
