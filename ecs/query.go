package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// iface represents the internal memory layout of an interface{}.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

var entityIdType = reflect.TypeFor[EntityId]()

// Query iterates entities that carry a combination of components.
//
// T must be a struct whose fields are pointers to component types. Embedded
// fields are always required; named fields may be tagged `ecs:"optional"` and
// are nil when missing. A field of type EntityId (usually embedded) receives
// the entity's ID.
type Query[T any] struct {
	storage  *Storage
	fields   []queryField
	idOffset uintptr
	hasId    bool
}

type queryField struct {
	compType reflect.Type
	offset   uintptr
	optional bool
}

// NewQuery creates a Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to a storage and parses T.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("Query type parameter must be a struct")
	}

	q.storage = storage
	q.fields = q.fields[:0]
	q.hasId = false

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			q.hasId = true
			q.idOffset = field.Offset
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("Query struct fields must be pointer types: " + field.Name)
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" {
			if tag != "optional" || field.Anonymous {
				panic("invalid ecs tag value: \"" + tag + "\" on " + field.Name)
			}
			optional = true
		}

		q.fields = append(q.fields, queryField{
			compType: field.Type.Elem(),
			offset:   field.Offset,
			optional: optional,
		})
	}
}

// Fill populates ptr with the components of id. It returns false if the entity
// is dead or missing a required component.
func (q *Query[T]) Fill(id EntityId, ptr *T) bool {
	if !q.storage.Alive(id) {
		return false
	}

	// Write the field pointers directly to avoid reflection in the hot path.
	base := unsafe.Pointer(ptr)
	for _, f := range q.fields {
		fieldPtr := unsafe.Add(base, f.offset)

		var comp any
		if col, ok := q.storage.columns[f.compType]; ok {
			comp = col.get(id)
		}

		if comp == nil {
			if !f.optional {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&comp)).data
	}

	if q.hasId {
		*(*EntityId)(unsafe.Add(base, q.idOffset)) = id
	}
	return true
}

// Get returns the populated view of id, or nil.
func (q *Query[T]) Get(id EntityId) *T {
	var result T
	if !q.Fill(id, &result) {
		return nil
	}
	return &result
}

// driver picks the smallest required column to walk. ok is false when a
// required component has never been stored, meaning nothing can match.
func (q *Query[T]) driver() (componentColumn, bool) {
	var best componentColumn
	for _, f := range q.fields {
		if f.optional {
			continue
		}
		col, ok := q.storage.columns[f.compType]
		if !ok {
			return nil, false
		}
		if best == nil || col.len() < best.len() {
			best = col
		}
	}
	return best, best != nil
}

// Iter returns an iterator over matching entities. Structural changes made to
// the storage during iteration should go through Commands.
func (q *Query[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		if q.storage == nil {
			panic("Query.Iter() called on an uninitialized query")
		}

		col, ok := q.driver()
		if !ok {
			return
		}

		var result T
		for id := range col.ids() {
			if !q.Fill(id, &result) {
				continue
			}
			if !yield(result) {
				return
			}
		}
	}
}

// First returns the first matching entity.
func (q *Query[T]) First() (T, bool) {
	for item := range q.Iter() {
		return item, true
	}
	var zero T
	return zero, false
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	n := 0
	for range q.Iter() {
		n++
	}
	return n
}
