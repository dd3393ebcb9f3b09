package ecs

// EntityId encodes a generation (upper 32 bits) and a slot index (lower 32 bits).
// Generations start at 1, so the zero EntityId never names a live entity.
type EntityId uint64

// NewEntityId creates an EntityId from a slot index and generation
func NewEntityId(slot uint32, generation uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(slot))
}

// Slot extracts the slot index from the entity ID
func (e EntityId) Slot() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the generation from the entity ID
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}
