package ecs

import "errors"

var (
	// ErrDuplicateComponent indicates a component name was defined twice in one registry.
	ErrDuplicateComponent = errors.New("ecs: component already defined")
	// ErrTooManyComponents indicates the registry ran out of mask bits.
	ErrTooManyComponents = errors.New("ecs: too many component types")
	// ErrMissingComponent signals access to a component the entity was not built with.
	ErrMissingComponent = errors.New("ecs: entity is missing component")
	// ErrComponentType signals typed access with the wrong state type.
	ErrComponentType = errors.New("ecs: component state has unexpected type")
	// ErrHookNotImplemented is returned when a system is dispatched an entity
	// but never overrode OnEntity.
	ErrHookNotImplemented = errors.New("ecs: system does not implement OnEntity")
	// ErrEntityInserted indicates an entity was added to a world twice.
	ErrEntityInserted = errors.New("ecs: entity already inserted")
	// ErrTickInProgress indicates a structural mutation attempted during a sweep.
	ErrTickInProgress = errors.New("ecs: world is mid-tick")
	// ErrNilEntity is returned when AddEntities is given a nil entity.
	ErrNilEntity = errors.New("ecs: nil entity")
	// ErrUnsafeTemplate indicates a component template holding state that
	// cannot be copied per entity (channels, functions, unsafe pointers).
	ErrUnsafeTemplate = errors.New("ecs: component template cannot be copied")
	// ErrNilSystem is returned when a system factory yields nil.
	ErrNilSystem = errors.New("ecs: system factory returned nil")
)
