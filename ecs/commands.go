package ecs

import "reflect"

// Commands buffers structural changes made while systems run. They are
// applied in a fixed order (deletes, removes, adds, spawns, defers) once the
// frame's last system has returned, so queries never see a half-built frame.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	adds    []pendingAdd
	removes []pendingRemove
	defers  []func()
}

type pendingAdd struct {
	entity    EntityId
	component any
}

type pendingRemove struct {
	entity   EntityId
	compType reflect.Type
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues a new entity.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity removal.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues attaching component to entity.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, pendingAdd{entity: entity, component: component})
}

// RemoveComponent queues detaching compType from entity.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, pendingRemove{entity: entity, compType: compType})
}

// Defer queues fn to run after every structural change of the flush.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies every queued operation to storage and empties the buffer.
// Adds and removes aimed at an entity deleted in the same flush are dropped.
func (c *Commands) Flush(storage *Storage) {
	deleted := make(map[EntityId]bool, len(c.deletes))
	for _, id := range c.deletes {
		storage.Delete(id)
		deleted[id] = true
	}

	for _, cmd := range c.removes {
		if !deleted[cmd.entity] {
			storage.RemoveComponent(cmd.entity, cmd.compType)
		}
	}

	for _, cmd := range c.adds {
		if !deleted[cmd.entity] {
			storage.AddComponent(cmd.entity, cmd.component)
		}
	}

	for _, components := range c.spawns {
		storage.Spawn(components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	clear(c.adds)
	clear(c.defers)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
