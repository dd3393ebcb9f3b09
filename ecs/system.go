package ecs

// System represents a behavior that operates on entities with specific components.
// User-defined systems implement this interface and can include Query and
// Singleton fields, which the Scheduler binds on registration, as well as
// custom state fields that persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// storageBinder is implemented by Query and Singleton fields.
type storageBinder interface {
	Init(storage *Storage)
}
