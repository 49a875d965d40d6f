package ecs

import "iter"

// Query is a View with per-frame caching. Execute snapshots the matching
// entities; Iter and Values then replay that snapshot. The Scheduler calls
// Execute on a system's queries right before the system runs.
type Query[T any] struct {
	view    *View[T]
	storage *Storage

	archetypes     []*Archetype
	archetypesSeen int

	ids   []EntityId
	items []T
	valid bool
}

// NewQuery creates a query over storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage and drops any cached state.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.archetypes = nil
	q.archetypesSeen = -1
	q.valid = false
}

// Execute rebuilds the snapshot from current storage contents.
func (q *Query[T]) Execute() {
	if n := q.storage.archetypeCount(); n != q.archetypesSeen {
		q.archetypes = q.archetypes[:0]
		q.storage.eachArchetype(func(archetype *Archetype) bool {
			if q.view.matches(archetype) {
				q.archetypes = append(q.archetypes, archetype)
			}
			return true
		})
		q.archetypesSeen = n
	}

	q.ids = q.ids[:0]
	q.items = q.items[:0]
	for _, archetype := range q.archetypes {
		for id, item := range q.view.iterArchetype(archetype) {
			q.ids = append(q.ids, id)
			q.items = append(q.items, item)
		}
	}
	q.valid = true
}

// Len returns the size of the current snapshot.
func (q *Query[T]) Len() int {
	return len(q.items)
}

// Iter replays the snapshot. Panics if Execute has never run.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.valid {
		panic("Query.Iter() called before Query.Execute()")
	}
	return func(yield func(EntityId, T) bool) {
		for i := range q.items {
			if !yield(q.ids[i], q.items[i]) {
				return
			}
		}
	}
}

// Values replays the snapshot without IDs. Panics if Execute has never run.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.valid {
		panic("Query.Values() called before Query.Execute()")
	}
	return func(yield func(T) bool) {
		for i := range q.items {
			if !yield(q.items[i]) {
				return
			}
		}
	}
}
