package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent worlds (for example one per test) to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// iComponentStorage is the type-erased view of one component column in an archetype.
type iComponentStorage interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Compact() map[int]int
	Iter() iter.Seq[int]
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
}

// IsRegistered reports whether a component type has been registered.
func (r *ComponentRegistry) IsRegistered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

// getFactory returns the factory function for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const (
	genericBlockSize = 64
)

// genericComponentStorage stores components of a specific type `T` in fixed-size blocks,
// so pointers handed out by Get stay valid while new components are appended.
type genericComponentStorage[T any] struct {
	blocks    []*[genericBlockSize]T
	filled    [][genericBlockSize]bool
	freeSlots []int
	nextIndex int
}

func locate(index int) (int, int) {
	return index / genericBlockSize, index % genericBlockSize
}

// Append adds a component to storage and returns its index.
func (cs *genericComponentStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
	}

	block, slot := locate(index)
	for block >= len(cs.blocks) {
		cs.blocks = append(cs.blocks, new([genericBlockSize]T))
		cs.filled = append(cs.filled, [genericBlockSize]bool{})
	}

	cs.blocks[block][slot] = value
	cs.filled[block][slot] = true
	return index
}

// Get returns a pointer to the component at the given index, or nil if the slot is empty.
func (cs *genericComponentStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	block, slot := locate(index)
	return &cs.blocks[block][slot]
}

// Delete marks a component slot as empty and zeroes it so referenced memory can be collected.
func (cs *genericComponentStorage[T]) Delete(index int) {
	if !cs.Has(index) {
		return
	}
	block, slot := locate(index)
	var zero T
	cs.filled[block][slot] = false
	cs.blocks[block][slot] = zero
	cs.freeSlots = append(cs.freeSlots, index)
}

// Has checks if a component exists at the given index.
func (cs *genericComponentStorage[T]) Has(index int) bool {
	if index < 0 {
		return false
	}
	block, slot := locate(index)
	if block >= len(cs.filled) {
		return false
	}
	return cs.filled[block][slot]
}

// Len returns the number of live components.
func (cs *genericComponentStorage[T]) Len() int {
	return cs.nextIndex - len(cs.freeSlots)
}

// Compact moves live components to the front of storage and returns the old->new index mapping.
func (cs *genericComponentStorage[T]) Compact() map[int]int {
	indexMap := make(map[int]int)

	live := cs.Len()
	if live == 0 {
		cs.blocks = nil
		cs.filled = nil
		cs.freeSlots = nil
		cs.nextIndex = 0
		return indexMap
	}

	numBlocks := (live + genericBlockSize - 1) / genericBlockSize
	blocks := make([]*[genericBlockSize]T, numBlocks)
	filled := make([][genericBlockSize]bool, numBlocks)
	for i := range blocks {
		blocks[i] = new([genericBlockSize]T)
	}

	write := 0
	for read := range cs.Iter() {
		rb, rs := locate(read)
		wb, ws := locate(write)
		blocks[wb][ws] = cs.blocks[rb][rs]
		filled[wb][ws] = true
		indexMap[read] = write
		write++
	}

	cs.blocks = blocks
	cs.filled = filled
	cs.freeSlots = nil
	cs.nextIndex = write
	return indexMap
}

// Iter yields the indices of all live components in ascending order.
func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			block, slot := locate(i)
			if block >= len(cs.filled) || !cs.filled[block][slot] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
