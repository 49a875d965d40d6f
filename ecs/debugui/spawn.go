package debugui

import "github.com/plus3/dotfield/ecs"

// SpawnPerformanceWindow adds a performance window entity to ui. source is
// called every frame for the storage to summarise and its scheduler stats;
// a nil storage hides the window.
func SpawnPerformanceWindow(ui *ecs.Storage, source func() (*ecs.Storage, []*ecs.SchedulerStats)) *PerformanceStatsComponent {
	stats := NewPerformanceStatsComponent(120)
	timer := NewFrameTimer()
	ui.Spawn(ImguiItem{
		Render: func() {
			stats.Record(timer.GetDeltaTime())
			storage, schedulers := source()
			if storage == nil {
				return
			}
			stats.Render(storage, schedulers)
		},
	})
	return &stats
}
