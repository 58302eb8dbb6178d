package ecs

import (
	"iter"
)

// Query wraps a View and caches the list of matching archetypes. The cache is refreshed
// whenever the storage gains a new archetype, so a Query can be held across frames.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int
}

// NewQuery creates a new Query with archetype-level caching.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
}

func (q *Query[T]) archetypes() []*Archetype {
	if q.storage == nil {
		panic("Query used before Init")
	}

	if count := len(q.storage.archetypes); count != q.lastArchetypeCount {
		q.cachedArchetypes = q.cachedArchetypes[:0]
		for _, archetype := range q.storage.sortedArchetypes() {
			if q.view.matchesArchetype(archetype) {
				q.cachedArchetypes = append(q.cachedArchetypes, archetype)
			}
		}
		q.lastArchetypeCount = count
	}
	return q.cachedArchetypes
}

// Iter returns an iterator over entity IDs and component data.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range q.archetypes() {
			if !q.view.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

// Values returns an iterator over component data only.
func (q *Query[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range q.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}

// Single returns the first matching entity. It is meant for queries that match exactly one
// entity, such as the player's hand.
func (q *Query[T]) Single() (T, bool) {
	for item := range q.Values() {
		return item, true
	}
	var zero T
	return zero, false
}

// Get returns the view struct for a specific entity, or nil if it does not match.
func (q *Query[T]) Get(id EntityId) *T {
	return q.view.Get(id)
}

// GetRef returns the view struct for the referenced entity, or nil.
func (q *Query[T]) GetRef(ref *EntityRef) *T {
	return q.view.GetRef(ref)
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	n := 0
	for range q.Iter() {
		n++
	}
	return n
}
