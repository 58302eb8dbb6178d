package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton is a system field giving direct access to a value stored once per Storage
// rather than per entity, such as game state or the physics world.
type Singleton[T any] struct {
	storage *Storage
	ptr     unsafe.Pointer
	typ     reflect.Type
}

// NewSingleton returns an accessor for T, adding the value to the storage first if it is
// missing. The optional initializer is only used in that case; otherwise the zero value is
// stored.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.getSingletonEntry(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(&value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the accessor to a storage. The Scheduler calls it during registration.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.typ = reflect.TypeFor[T]()
	s.refresh()
}

// Get returns the stored value, or nil if it has not been added. A value added after
// the accessor was bound is picked up on the next call.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.refresh()
	}
	return (*T)(s.ptr)
}

// Set overwrites the stored value, adding it if missing. Pointers returned by Get stay
// valid.
func (s *Singleton[T]) Set(value T) {
	if current := s.Get(); current != nil {
		*current = value
		return
	}
	s.storage.AddSingleton(&value)
	s.refresh()
}

func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) refresh() {
	if s.storage == nil {
		return
	}
	s.ptr = nil
	if entry := s.storage.getSingletonEntry(s.typ); entry != nil {
		s.ptr = entry.dataPtr
	}
}
