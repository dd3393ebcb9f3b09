package ecs

import (
	"iter"
	"reflect"

	"github.com/kamstrup/intmap"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent worlds to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentColumn
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentColumn),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be used.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() componentColumn {
		return &column[T]{
			index: intmap.New[EntityId, int](64),
		}
	}
}

// componentColumn is the type-erased storage of one component type.
type componentColumn interface {
	set(id EntityId, item any) bool
	remove(id EntityId) bool
	get(id EntityId) any
	len() int
	ids() iter.Seq[EntityId]
}

const columnBlockSize = 64

// column stores components of type T in fixed-size blocks so that pointers
// handed out by get stay valid while other entities are added. The intmap
// index maps an entity to its slot.
type column[T any] struct {
	blocks []*[columnBlockSize]T
	owners []EntityId
	free   []int
	index  *intmap.Map[EntityId, int]
	count  int
}

func (c *column[T]) set(id EntityId, item any) bool {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return false
	}

	if slot, ok := c.index.Get(id); ok {
		c.blocks[slot/columnBlockSize][slot%columnBlockSize] = value
		return true
	}

	var slot int
	if n := len(c.free); n > 0 {
		slot = c.free[n-1]
		c.free = c.free[:n-1]
		c.owners[slot] = id
	} else {
		slot = len(c.owners)
		c.owners = append(c.owners, id)
		if slot/columnBlockSize >= len(c.blocks) {
			c.blocks = append(c.blocks, new([columnBlockSize]T))
		}
	}

	c.blocks[slot/columnBlockSize][slot%columnBlockSize] = value
	c.index.Put(id, slot)
	c.count++
	return true
}

func (c *column[T]) remove(id EntityId) bool {
	slot, ok := c.index.Get(id)
	if !ok {
		return false
	}

	var zero T
	c.blocks[slot/columnBlockSize][slot%columnBlockSize] = zero
	c.owners[slot] = 0
	c.free = append(c.free, slot)
	c.index.Del(id)
	c.count--
	return true
}

// get returns a *T for the entity, or nil.
func (c *column[T]) get(id EntityId) any {
	slot, ok := c.index.Get(id)
	if !ok {
		return nil
	}
	return &c.blocks[slot/columnBlockSize][slot%columnBlockSize]
}

func (c *column[T]) len() int {
	return c.count
}

// ids yields owners in slot order.
func (c *column[T]) ids() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for i := 0; i < len(c.owners); i++ {
			if c.owners[i] == 0 {
				continue
			}
			if !yield(c.owners[i]) {
				return
			}
		}
	}
}
