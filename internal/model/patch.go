package model

// Patch is a tagged optional value for partial updates. The zero value means
// "leave the field unchanged", which keeps "clear this field" (Set with a
// nil pointer value) distinct from "don't touch it".
type Patch[T any] struct {
	value T
	set   bool
}

// Set returns a Patch carrying v.
func Set[T any](v T) Patch[T] {
	return Patch[T]{value: v, set: true}
}

// Get returns the carried value and whether the patch was set.
func (p Patch[T]) Get() (T, bool) {
	return p.value, p.set
}

// IsSet reports whether the patch carries a value.
func (p Patch[T]) IsSet() bool {
	return p.set
}
