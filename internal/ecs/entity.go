package ecs

// EntityID uniquely identifies an entity in the world. IDs are never reused.
type EntityID uint64

// NilEntity is the zero value. No valid entity has this ID.
const NilEntity EntityID = 0
