package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/plus3/dotfield/dotfield"
)

// discardSurface counts draw calls without rasterising anything.
type discardSurface struct {
	circles int
}

func (s *discardSurface) Clear() {}

func (s *discardSurface) FillCircle(x, y, r float64, c color.Color) {
	s.circles++
}

// sweep moves the pointer on a Lissajous path that covers the viewport.
func sweep(frame int64, w, h float64) (float64, float64) {
	t := float64(frame) / 60
	return w/2 + w/2*math.Sin(1.3*t), h/2 + h/2*math.Sin(1.7*t)
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	width := flag.Float64("width", 3840, "Viewport width in surface units.")
	height := flag.Float64("height", 2160, "Viewport height in surface units.")
	plotPath := flag.String("plot", "", "If set, write a frame-time chart PNG to this path.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting dot field stress test...")

	field := dotfield.NewField()
	field.RebuildGrid(*width, *height)
	log.Printf("Built %.0fx%.0f grid with %d particles.\n", *width, *height, field.Len())

	report := &Report{
		Duration:       *duration,
		Width:          *width,
		Height:         *height,
		Particles:      field.Len(),
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	surface := &discardSurface{}
	startTime := time.Now()
	var frames int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			field.OnPointerMove(sweep(frames, *width, *height))

			advanceStart := time.Now()
			field.AdvanceFrame()
			report.AdvanceTime.Samples = append(report.AdvanceTime.Samples, time.Since(advanceStart))

			renderStart := time.Now()
			field.Render(surface, dotfield.Dark)
			report.RenderTime.Samples = append(report.RenderTime.Samples, time.Since(renderStart))

			frames++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalFrames = frames
	report.DotsDrawn = surface.circles
	report.AdvanceTime.Finalize()
	report.RenderTime.Finalize()
	report.Schedulers = field.Stats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	if *plotPath != "" {
		if err := report.Plot(*plotPath); err != nil {
			log.Fatalf("Failed to write plot: %v", err)
		}
		log.Printf("Wrote frame-time chart to %s\n", *plotPath)
	}

	log.Println("Stress test complete.")
}
