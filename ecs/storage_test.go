package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/dotfield/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
	}{
		{0, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d", tt.archetypeId, tt.index), func(t *testing.T) {
			id := ecs.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, id.ArchetypeId())
			assert.Equal(t, tt.index, id.Index())
		})
	}
}

func TestSpawnAndRead(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1, Y: 2}, &Velocity{DX: 3, DY: 4}, Score(7))
	require.True(t, storage.Alive(id))

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, Position{X: 1, Y: 2}, *pos)

	vel := ecs.ReadComponent[Velocity](storage, id)
	require.NotNil(t, vel)
	assert.Equal(t, Velocity{DX: 3, DY: 4}, *vel)

	score := ecs.ReadComponent[Score](storage, id)
	require.NotNil(t, score)
	assert.Equal(t, Score(7), *score)

	assert.Nil(t, ecs.ReadComponent[Health](storage, id))
	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Health]()))
}

func TestComponentOrderDoesNotMatter(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{}, Velocity{})
	b := storage.Spawn(Velocity{}, Position{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotEqual(t, a.Index(), b.Index())
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(struct{ Unregistered int }{}) })
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
}

func TestDeleteReusesSlots(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 1})
	second := storage.Spawn(Position{X: 2})
	storage.Delete(first)

	assert.False(t, storage.Alive(first))
	assert.True(t, storage.Alive(second))
	assert.Nil(t, ecs.ReadComponent[Position](storage, first))

	third := storage.Spawn(Position{X: 3})
	assert.Equal(t, first, third, "freed slot should be reused")
	assert.Equal(t, 2, storage.EntityCount())
}

func TestPointersStableAcrossGrowth(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 42})
	pos := ecs.ReadComponent[Position](storage, id)

	for i := 0; i < 1000; i++ {
		storage.Spawn(Position{X: float32(i)})
	}

	pos.Y = 9
	assert.Equal(t, float32(9), ecs.ReadComponent[Position](storage, id).Y)
	assert.Equal(t, float32(42), ecs.ReadComponent[Position](storage, id).X)
}

func TestAddRemoveComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 5, Y: 6})
	moved := storage.AddComponent(id, Velocity{DX: 1})

	require.NotEqual(t, id.ArchetypeId(), moved.ArchetypeId())
	assert.False(t, storage.Alive(id))
	assert.Equal(t, Position{X: 5, Y: 6}, *ecs.ReadComponent[Position](storage, moved))
	assert.Equal(t, Velocity{DX: 1}, *ecs.ReadComponent[Velocity](storage, moved))

	back := storage.RemoveComponent(moved, reflect.TypeFor[Velocity]())
	assert.Equal(t, id.ArchetypeId(), back.ArchetypeId())
	assert.Equal(t, Position{X: 5, Y: 6}, *ecs.ReadComponent[Position](storage, back))
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, back))

	gone := storage.RemoveComponent(back, reflect.TypeFor[Position]())
	assert.Equal(t, ecs.EntityId(0), gone)
	assert.Equal(t, 0, storage.EntityCount())
}

func TestCompact(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var ids []ecs.EntityId
	for i := 0; i < 10; i++ {
		ids = append(ids, storage.Spawn(Position{X: float32(i)}))
	}
	for i := 0; i < 10; i += 2 {
		storage.Delete(ids[i])
	}

	storage.Compact()

	archetype := storage.GetArchetype(Position{})
	require.NotNil(t, archetype)
	assert.Equal(t, 5, archetype.Len())

	var xs []float32
	for id := range archetype.Iter() {
		xs = append(xs, ecs.ReadComponent[Position](storage, id).X)
	}
	assert.Equal(t, []float32{1, 3, 5, 7, 9}, xs, "compaction keeps relative order")
	assert.True(t, storage.Alive(ecs.NewEntityId(archetype.ID(), 4)))
	assert.False(t, storage.Alive(ecs.NewEntityId(archetype.ID(), 5)))
}

func TestSingletons(t *testing.T) {
	type Config struct {
		Gravity float64
	}

	storage := ecs.NewStorage(newTestRegistry())

	var cfg *Config
	assert.False(t, storage.ReadSingleton(&cfg))

	storage.AddSingleton(Config{Gravity: 9.8})
	require.True(t, storage.ReadSingleton(&cfg))
	assert.Equal(t, 9.8, cfg.Gravity)

	accessor := ecs.NewSingleton[Config](storage)
	accessor.Get().Gravity = 1.6
	assert.Equal(t, 1.6, cfg.Gravity, "accessors share one instance")

	storage.AddSingleton(Config{Gravity: 3.7})
	assert.Equal(t, 3.7, accessor.Get().Gravity, "replacement is visible through existing accessors")

	assert.Panics(t, func() { storage.ReadSingleton(cfg) })
}

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{})
	storage.Spawn(Position{})
	storage.Spawn(Position{}, Velocity{})
	storage.AddSingleton(Name{Value: "world"})

	stats := storage.CollectStats()
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 1, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.Name"}, stats.SingletonTypes)

	require.Len(t, stats.ArchetypeBreakdown, 2)
	assert.Equal(t, []string{"ecs_test.Position"}, stats.ArchetypeBreakdown[0].ComponentTypes)
	assert.Equal(t, 2, stats.ArchetypeBreakdown[0].EntityCount)
	assert.Equal(t, 1, stats.ArchetypeBreakdown[1].EntityCount)
}
