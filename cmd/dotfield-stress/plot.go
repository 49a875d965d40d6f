package main

import (
	"fmt"
	"image/color"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// maxPlotPoints caps the chart so long runs stay readable; samples are
// averaged into buckets beyond that.
const maxPlotPoints = 2000

// Plot writes a line chart of per-frame advance and render times.
func (r *Report) Plot(path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Frame time, %d particles", r.Particles)
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Time (ms)"

	series := []struct {
		name   string
		stats  Stats
		colour color.Color
	}{
		{"advance", r.AdvanceTime, color.RGBA{R: 31, G: 119, B: 180, A: 255}},
		{"render", r.RenderTime, color.RGBA{R: 255, G: 127, B: 14, A: 255}},
	}

	for _, s := range series {
		if len(s.stats.Samples) == 0 {
			continue
		}
		line, err := plotter.NewLine(frameXYs(s.stats.Samples, maxPlotPoints))
		if err != nil {
			return err
		}
		line.Color = s.colour
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}
	p.Add(plotter.NewGrid())

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}

// frameXYs converts samples to milliseconds, averaging into at most limit
// buckets.
func frameXYs(samples []time.Duration, limit int) plotter.XYs {
	bucket := max(1, (len(samples)+limit-1)/limit)
	pts := make(plotter.XYs, 0, len(samples)/bucket+1)
	for start := 0; start < len(samples); start += bucket {
		end := min(start+bucket, len(samples))
		var sum time.Duration
		for _, d := range samples[start:end] {
			sum += d
		}
		avg := sum / time.Duration(end-start)
		pts = append(pts, plotter.XY{
			X: float64(start),
			Y: float64(avg) / float64(time.Millisecond),
		})
	}
	return pts
}

// percentile returns the empirical q-quantile of samples.
func percentile(samples []time.Duration, q float64) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	ms := make([]float64, len(samples))
	for i, d := range samples {
		ms[i] = float64(d) / float64(time.Millisecond)
	}
	slices.Sort(ms)
	return time.Duration(stat.Quantile(q, stat.Empirical, ms, nil) * float64(time.Millisecond))
}
