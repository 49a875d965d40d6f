package debugui_test

import (
	"testing"

	"github.com/plus3/dotfield/ecs"
	"github.com/plus3/dotfield/ecs/debugui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformanceStatsHistory(t *testing.T) {
	stats := debugui.NewPerformanceStatsComponent(4)
	assert.Zero(t, stats.AverageFrameTime())

	stats.Record(0.004)
	stats.Record(0.008)
	assert.InDelta(t, 3.0, stats.AverageFrameTime(), 1e-4)

	for range 4 {
		stats.Record(0.010)
	}
	assert.InDelta(t, 10.0, stats.AverageFrameTime(), 1e-4)
}

func TestPerformanceStatsEmptyHistory(t *testing.T) {
	for _, n := range []int{0, -3} {
		stats := debugui.NewPerformanceStatsComponent(n)
		assert.Zero(t, stats.AverageFrameTime())
		assert.NotPanics(t, func() { stats.Record(0.005) })
		assert.InDelta(t, 5.0, stats.AverageFrameTime(), 1e-4)
		stats.Record(0.007)
		assert.InDelta(t, 7.0, stats.AverageFrameTime(), 1e-4)
	}
}

func TestSpawnPerformanceWindow(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	debugui.Register(registry)
	ui := ecs.NewStorage(registry)

	calls := 0
	debugui.SpawnPerformanceWindow(ui, func() (*ecs.Storage, []*ecs.SchedulerStats) {
		calls++
		return nil, nil
	})

	items := ecs.NewQuery[struct{ *debugui.ImguiItem }](ui)
	items.Execute()
	require.Equal(t, 1, items.Len())

	for item := range items.Values() {
		require.NotNil(t, item.ImguiItem.Render)
		item.ImguiItem.Render()
	}
	assert.Equal(t, 1, calls)
}

func TestFrameTimer(t *testing.T) {
	timer := debugui.NewFrameTimer()
	assert.GreaterOrEqual(t, timer.GetDeltaTime(), float32(0))
}
