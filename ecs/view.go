package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View matches entities against a struct shape. Every pointer field of T
// names a component; embedded pointer fields are required, named ones may be
// tagged `ecs:"optional"`. A field of type EntityId, embedded or named,
// receives the matched entity's ID.
type View[T any] struct {
	storage  *Storage
	types    []reflect.Type
	optional []bool
	offsets  []uintptr

	idOffset uintptr
	hasId    bool
}

// NewView builds a view for T over storage. It panics if T is not a valid
// view struct.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idOffset = field.Offset
			v.hasId = true
			continue
		}
		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or EntityId")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" {
			if tag != "optional" {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			optional = !field.Anonymous
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, optional)
		v.offsets = append(v.offsets, field.Offset)
	}
	return v
}

// Fill populates *out for id. It returns false if the entity is gone or lacks
// a required component.
func (v *View[T]) Fill(id EntityId, out *T) bool {
	archetype, ok := v.storage.archetypes.Get(id.ArchetypeId())
	if !ok || !archetype.Has(id.Index()) {
		return false
	}
	return v.populate(unsafe.Pointer(out), archetype, int(id.Index()), v.columnIndices(archetype))
}

// Get returns the filled view for id, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var out T
	if !v.Fill(id, &out) {
		return nil
	}
	return &out
}

// Iter yields every matching entity.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		v.storage.eachArchetype(func(archetype *Archetype) bool {
			if !v.matches(archetype) {
				return true
			}
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return false
				}
			}
			return true
		})
	}
}

// Values yields every matching view struct.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}

// Spawn creates an entity from the non-nil component fields of data.
func (v *View[T]) Spawn(data T) EntityId {
	base := unsafe.Pointer(&data)
	components := make([]any, 0, len(v.types))
	for i, typ := range v.types {
		ptr := *(*unsafe.Pointer)(unsafe.Add(base, v.offsets[i]))
		if ptr == nil {
			if !v.optional[i] {
				panic("required component is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(typ, ptr).Interface())
	}
	return v.storage.Spawn(components...)
}

func (v *View[T]) matches(archetype *Archetype) bool {
	for i, typ := range v.types {
		if !v.optional[i] && !archetype.HasComponent(typ) {
			return false
		}
	}
	return true
}

func (v *View[T]) columnIndices(archetype *Archetype) []int {
	indices := make([]int, len(v.types))
	for i, typ := range v.types {
		indices[i] = archetype.columnIndex(typ)
	}
	return indices
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		if len(archetype.columns) == 0 {
			return
		}
		indices := v.columnIndices(archetype)

		var item T
		for index := range archetype.columns[0].Iter() {
			if !v.populate(unsafe.Pointer(&item), archetype, index, indices) {
				continue
			}
			if !yield(NewEntityId(archetype.id, uint32(index)), item) {
				return
			}
		}
	}
}

func (v *View[T]) populate(out unsafe.Pointer, archetype *Archetype, index int, indices []int) bool {
	if v.hasId {
		*(*EntityId)(unsafe.Add(out, v.idOffset)) = NewEntityId(archetype.id, uint32(index))
	}

	for i, column := range indices {
		field := (*unsafe.Pointer)(unsafe.Add(out, v.offsets[i]))

		var comp any
		if column >= 0 {
			comp = archetype.columns[column].Get(index)
		}
		if comp == nil {
			if !v.optional[i] {
				return false
			}
			*field = nil
			continue
		}
		*field = dataPointer(comp)
	}
	return true
}
