package ecs

import (
	"reflect"
	"sort"
)

// Storage is the main ECS storage: entities, their component columns and the
// singleton components that belong to no entity.
type Storage struct {
	registry    *ComponentRegistry
	columns     map[reflect.Type]componentColumn
	generations []uint32
	alive       []bool
	free        []uint32
	entityCount int
	singletons  map[reflect.Type]any
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		columns:    make(map[reflect.Type]componentColumn),
		singletons: make(map[reflect.Type]any),
	}
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	id := s.allocate()
	for _, comp := range components {
		s.put(id, comp)
	}
	return id
}

func (s *Storage) allocate() EntityId {
	var slot uint32
	if n := len(s.free); n > 0 {
		slot = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		slot = uint32(len(s.generations))
		s.generations = append(s.generations, 0)
		s.alive = append(s.alive, false)
	}

	s.generations[slot]++
	s.alive[slot] = true
	s.entityCount++
	return NewEntityId(slot, s.generations[slot])
}

func (s *Storage) put(id EntityId, component any) {
	compType := componentType(component)

	col, ok := s.columns[compType]
	if !ok {
		factory, registered := s.registry.factories[compType]
		if !registered {
			panic("component type " + compType.String() + " not registered")
		}
		col = factory()
		s.columns[compType] = col
	}
	col.set(id, component)
}

// Alive reports whether id names an entity that has not been deleted.
func (s *Storage) Alive(id EntityId) bool {
	slot := id.Slot()
	if int(slot) >= len(s.generations) {
		return false
	}
	return s.alive[slot] && s.generations[slot] == id.Generation()
}

// Delete removes all data related to the entity ID. Stale IDs are ignored.
func (s *Storage) Delete(id EntityId) bool {
	if !s.Alive(id) {
		return false
	}

	for _, col := range s.columns {
		col.remove(id)
	}

	slot := id.Slot()
	s.alive[slot] = false
	s.free = append(s.free, slot)
	s.entityCount--
	return true
}

// AddComponent attaches a component to a live entity, replacing any existing
// component of the same type.
func (s *Storage) AddComponent(id EntityId, component any) bool {
	if !s.Alive(id) {
		return false
	}
	s.put(id, component)
	return true
}

// RemoveComponent detaches a component type from an entity. An entity left
// without components is deleted.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) bool {
	if !s.Alive(id) {
		return false
	}

	col, ok := s.columns[compType]
	if !ok || !col.remove(id) {
		return false
	}

	for _, other := range s.columns {
		if other.get(id) != nil {
			return true
		}
	}
	s.Delete(id)
	return true
}

// GetComponent returns a pointer to the component for the given entity ID and
// component type, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	if !s.Alive(id) {
		return nil
	}
	col, ok := s.columns[compType]
	if !ok {
		return nil
	}
	return col.get(id)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	return s.GetComponent(id, compType) != nil
}

// Count returns the number of live entities.
func (s *Storage) Count() int {
	return s.entityCount
}

// AddSingleton stores value as the singleton of its type. An existing singleton
// is overwritten in place so pointers already handed out stay current.
func (s *Storage) AddSingleton(value any) {
	t := componentType(value)
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if existing, ok := s.singletons[t]; ok {
		reflect.ValueOf(existing).Elem().Set(v)
		return
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(v)
	s.singletons[t] = ptr.Interface()
}

// ReadSingleton sets *target to the stored singleton. target must be a
// pointer to a pointer, e.g. var cfg *Config; storage.ReadSingleton(&cfg).
func (s *Storage) ReadSingleton(target any) bool {
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Ptr || tv.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}

	ptr, ok := s.singletons[tv.Elem().Type().Elem()]
	if !ok {
		return false
	}
	tv.Elem().Set(reflect.ValueOf(ptr))
	return true
}

func (s *Storage) getSingleton(t reflect.Type) any {
	return s.singletons[t]
}

// StorageStats summarises the contents of a Storage.
type StorageStats struct {
	EntityCount    int
	Components     []ComponentStats
	SingletonTypes []string
}

type ComponentStats struct {
	Type  string
	Count int
}

// CollectStats gathers entity, component and singleton counts sorted by type name.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{EntityCount: s.entityCount}

	for t, col := range s.columns {
		if col.len() == 0 {
			continue
		}
		stats.Components = append(stats.Components, ComponentStats{Type: t.String(), Count: col.len()})
	}
	sort.Slice(stats.Components, func(i, j int) bool {
		return stats.Components[i].Type < stats.Components[j].Type
	})

	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}

// componentType returns the value type of a component, dereferencing pointers.
func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType == nil {
		panic("component cannot be nil")
	}
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	// Components can be structs or primitives (int, string, etc.)
	// But not pointers, maps, channels, or functions (those aren't value types)
	switch compType.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions")
	}
	return compType
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's component of type T, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
