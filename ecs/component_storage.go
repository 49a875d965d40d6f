package ecs

import (
	"iter"
	"reflect"
)

// componentColumn is the type-erased view of one component column inside an
// archetype. Slot indices are shared by every column of the same archetype.
type componentColumn interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Compact() map[int]int
	Iter() iter.Seq[int]
}

// ComponentRegistry maps component types to column factories. Every Storage
// owns exactly one registry; components must be registered before they are
// spawned.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentColumn
}

// NewComponentRegistry returns an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentColumn),
	}
}

// RegisterComponent makes T usable as an entity component in r.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() componentColumn {
		return &blockColumn[T]{}
	}
}

// Registered reports whether t has a column factory.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) componentColumn {
	factory, ok := r.factories[t]
	if !ok {
		panic("component type " + t.String() + " not registered")
	}
	return factory()
}

const blockSize = 64

// blockColumn stores values of T in fixed-size blocks so that pointers handed
// out by Get stay valid while the column grows.
type blockColumn[T any] struct {
	blocks    []*[blockSize]T
	filled    []*[blockSize]bool
	freeSlots []int
	next      int
	live      int
}

func (c *blockColumn[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		return -1
	}

	var index int
	if n := len(c.freeSlots); n > 0 {
		index = c.freeSlots[n-1]
		c.freeSlots = c.freeSlots[:n-1]
	} else {
		index = c.next
		c.next++
		if index/blockSize >= len(c.blocks) {
			c.blocks = append(c.blocks, new([blockSize]T))
			c.filled = append(c.filled, new([blockSize]bool))
		}
	}

	block, slot := index/blockSize, index%blockSize
	c.blocks[block][slot] = value
	c.filled[block][slot] = true
	c.live++
	return index
}

func (c *blockColumn[T]) Get(index int) any {
	if !c.Has(index) {
		return nil
	}
	return &c.blocks[index/blockSize][index%blockSize]
}

func (c *blockColumn[T]) Has(index int) bool {
	if index < 0 || index >= c.next {
		return false
	}
	return c.filled[index/blockSize][index%blockSize]
}

func (c *blockColumn[T]) Delete(index int) {
	if !c.Has(index) {
		return
	}
	block, slot := index/blockSize, index%blockSize
	var zero T
	c.blocks[block][slot] = zero
	c.filled[block][slot] = false
	c.freeSlots = append(c.freeSlots, index)
	c.live--
}

func (c *blockColumn[T]) Len() int {
	return c.live
}

// Compact packs live values to the front, preserving their relative order,
// and returns the old->new index mapping.
func (c *blockColumn[T]) Compact() map[int]int {
	moved := make(map[int]int, c.live)
	write := 0
	for read := 0; read < c.next; read++ {
		if !c.filled[read/blockSize][read%blockSize] {
			continue
		}
		moved[read] = write
		if read != write {
			c.blocks[write/blockSize][write%blockSize] = c.blocks[read/blockSize][read%blockSize]
			c.filled[write/blockSize][write%blockSize] = true
		}
		write++
	}

	var zero T
	for i := write; i < c.next; i++ {
		c.blocks[i/blockSize][i%blockSize] = zero
		c.filled[i/blockSize][i%blockSize] = false
	}

	keep := (write + blockSize - 1) / blockSize
	c.blocks = c.blocks[:keep]
	c.filled = c.filled[:keep]
	c.freeSlots = c.freeSlots[:0]
	c.next = write
	return moved
}

func (c *blockColumn[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.next; i++ {
			if !c.filled[i/blockSize][i%blockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
