package ecs

import "unsafe"

// iface mirrors the runtime layout of an interface value so that the data
// word of an `any` holding a *T can be read without reflection.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

func dataPointer(v any) unsafe.Pointer {
	return (*iface)(unsafe.Pointer(&v)).data
}
