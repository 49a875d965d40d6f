package ecs

import (
	"reflect"
	"slices"
	"sort"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype holds every entity that has exactly one particular set of
// component types, one column per type.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []componentColumn
}

// NewArchetype creates an archetype for the given sorted types.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]componentColumn, len(types)),
	}
	for i, typ := range types {
		a.columns[i] = registry.newColumn(typ)
	}
	return a
}

// Spawn appends one entity and returns its slot index. components may be
// given in any order and as values or pointers.
func (a *Archetype) Spawn(components []any) uint32 {
	slot := -1
	for _, comp := range components {
		idx := a.columnIndex(componentType(comp))
		if idx < 0 {
			panic("component " + componentType(comp).String() + " is not part of this archetype")
		}
		slot = a.columns[idx].Append(comp)
	}
	return uint32(slot)
}

// GetComponent returns a *T for the entity's component of type compType, or
// nil if the slot is empty or the archetype lacks that type.
func (a *Archetype) GetComponent(index uint32, compType reflect.Type) any {
	idx := a.columnIndex(compType)
	if idx < 0 {
		return nil
	}
	return a.columns[idx].Get(int(index))
}

// Delete empties the slot. Other entities keep their indices.
func (a *Archetype) Delete(index uint32) {
	for _, column := range a.columns {
		column.Delete(int(index))
	}
}

// Has reports whether the slot currently holds an entity.
func (a *Archetype) Has(index uint32) bool {
	return len(a.columns) > 0 && a.columns[0].Has(int(index))
}

// HasComponent reports whether the archetype includes compType.
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's hash identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the archetype's sorted component types.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

// Compact removes the holes left by deletions. Entity IDs handed out before
// a compaction are invalid afterwards.
func (a *Archetype) Compact() {
	for _, column := range a.columns {
		column.Compact()
	}
}

// Iter yields the ID of every live entity in slot order.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for index := range a.columns[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}

func (a *Archetype) columnIndex(t reflect.Type) int {
	for i, typ := range a.types {
		if typ == t {
			return i
		}
	}
	return -1
}

// componentType returns the value type of a component given as T or *T.
func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func sortTypes(types []reflect.Type) {
	sort.Sort(byTypeName(types))
}
