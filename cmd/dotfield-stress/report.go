package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/dotfield/ecs"
)

type Report struct {
	// Configuration
	Duration  time.Duration
	Width     float64
	Height    float64
	Particles int

	// Results
	TotalFrames    int64
	TotalTime      time.Duration
	DotsDrawn      int
	AdvanceTime    Stats
	RenderTime     Stats
	Schedulers     []*ecs.SchedulerStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
	s.P99 = percentile(s.Samples, 0.99)
}

// FPS is the frame rate the run sustained.
func (r *Report) FPS() float64 {
	if r.TotalTime <= 0 {
		return 0
	}
	return float64(r.TotalFrames) / r.TotalTime.Seconds()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Dot Field Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Viewport:** {{printf "%.0f" .Width}}x{{printf "%.0f" .Height}}
- **Particles:** {{.Particles}}

## Performance Results
- **Total Frames:** {{.TotalFrames}} ({{printf "%.1f" .FPS}} fps)
- **Total Test Time:** {{.TotalTime}}
- **Dots Drawn:** {{.DotsDrawn}}
- **Advance Time (Frame):**
  - **Avg:** {{.AdvanceTime.Avg}}
  - **Min:** {{.AdvanceTime.Min}}
  - **Max:** {{.AdvanceTime.Max}}
  - **P99:** {{.AdvanceTime.P99}}
- **Render Time (Frame):**
  - **Avg:** {{.RenderTime.Avg}}
  - **Min:** {{.RenderTime.Min}}
  - **Max:** {{.RenderTime.Max}}
  - **P99:** {{.RenderTime.P99}}

## Systems
| System | Runs | Avg | Max |
|---|---|---|---|
{{range .Schedulers}}{{range .Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parsing report template: %w", err)
	}

	return tmpl.Execute(w, r)
}
