package ecs

import (
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage owns every archetype and singleton of one ECS world.
type Storage struct {
	archetypes *intmap.Map[uint32, *Archetype]
	registry   *ComponentRegistry
	singletons map[reflect.Type]*singletonEntry
}

type singletonEntry struct {
	value   reflect.Value // *T
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty world backed by registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: intmap.New[uint32, *Archetype](16),
		registry:   registry,
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry this storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Spawn creates an entity with the given components.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetype := s.archetypeFor(types)
	return NewEntityId(archetype.id, archetype.Spawn(components))
}

// Delete removes the entity. Unknown IDs are ignored.
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.archetypes.Get(id.ArchetypeId()); ok {
		archetype.Delete(id.Index())
	}
}

// Alive reports whether id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	return ok && archetype.Has(id.Index())
}

// AddComponent moves the entity into the archetype that also includes
// component and returns its new ID.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	old, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok || !old.Has(id.Index()) {
		return 0
	}

	compType := componentType(component)
	components := make([]any, 0, len(old.types)+1)
	for _, typ := range old.types {
		if typ == compType {
			continue
		}
		components = append(components, old.GetComponent(id.Index(), typ))
	}
	components = append(components, component)

	return s.move(old, id, components)
}

// RemoveComponent moves the entity into the archetype without compType and
// returns its new ID. Removing the last component deletes the entity and
// returns 0.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	old, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok || !old.Has(id.Index()) {
		return 0
	}

	components := make([]any, 0, len(old.types))
	for _, typ := range old.types {
		if typ != compType {
			components = append(components, old.GetComponent(id.Index(), typ))
		}
	}

	if len(components) == 0 {
		old.Delete(id.Index())
		return 0
	}
	return s.move(old, id, components)
}

// move spawns the entity's new shape before emptying the old slot; the
// component pointers read from old stay valid until then.
func (s *Storage) move(old *Archetype, id EntityId, components []any) EntityId {
	newId := s.Spawn(components...)
	old.Delete(id.Index())
	return newId
}

// GetComponent returns a *T for the entity's component, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent reports whether the entity's archetype includes compType.
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	return ok && archetype.HasComponent(compType)
}

// GetArchetype returns the archetype for exactly these component types, if
// one exists.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	archetype, _ := s.archetypes.Get(hashTypesToUint32(extractComponentTypes(components)))
	return archetype
}

// Compact compacts every archetype. Outstanding EntityIds become invalid.
func (s *Storage) Compact() {
	s.archetypes.ForEach(func(_ uint32, archetype *Archetype) bool {
		archetype.Compact()
		return true
	})
}

// EntityCount returns the number of live entities across all archetypes.
func (s *Storage) EntityCount() int {
	total := 0
	s.archetypes.ForEach(func(_ uint32, archetype *Archetype) bool {
		total += archetype.Len()
		return true
	})
	return total
}

func (s *Storage) archetypeCount() int {
	return s.archetypes.Len()
}

func (s *Storage) eachArchetype(fn func(*Archetype) bool) {
	s.archetypes.ForEach(func(_ uint32, archetype *Archetype) bool {
		return fn(archetype)
	})
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypesToUint32(types)
	archetype, ok := s.archetypes.Get(id)
	if !ok {
		archetype = NewArchetype(id, types, s.registry)
		s.archetypes.Put(id, archetype)
	}
	return archetype
}

// AddSingleton stores value as the world's single instance of its type,
// replacing any previous one. Existing Singleton accessors see the new
// value.
func (s *Storage) AddSingleton(value any) {
	s.putSingleton(reflect.ValueOf(value))
}

func (s *Storage) putSingleton(value reflect.Value) {
	t := value.Type()
	if entry, ok := s.singletons[t]; ok {
		entry.value.Elem().Set(value)
		return
	}
	ptr := reflect.New(t)
	ptr.Elem().Set(value)
	s.singletons[t] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// ReadSingleton points *target at the stored singleton of type T. target
// must be a **T. Returns false if no such singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	out := reflect.ValueOf(target)
	if out.Kind() != reflect.Ptr || out.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}
	entry := s.getSingletonEntry(out.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	out.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// extractComponentTypes returns the sorted value types of components.
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)
		switch t.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		types = append(types, t)
	}
	sortTypes(types)
	return types
}

// hashTypesToUint32 is FNV-1a over the runtime type pointers of a sorted
// type list.
func hashTypesToUint32(types []reflect.Type) uint32 {
	const prime uint32 = 16777619
	var h uint32 = 2166136261

	for _, t := range types {
		ptr := uintptr(dataPointer(t))
		val := uint32(ptr)
		if unsafe.Sizeof(ptr) == 8 {
			val ^= uint32(uint64(ptr) >> 32)
		}
		h ^= val
		h *= prime
	}
	return h
}

// ComponentReader is satisfied by Storage.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's *T, or nil.
func ReadComponent[T any](reader ComponentReader, id EntityId) *T {
	comp, _ := reader.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return comp
}
