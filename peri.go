package resgen

// Scope tags the borrow scope of a ScopedPeri. Implementations are zero-size
// marker types; the tag only participates in type checking.
type Scope interface {
	scope()
}

// Static is the broadest scope: the handle may be held for the lifetime of
// the program.
type Static struct{}

func (Static) scope() {}

// Bound is embedded by user-defined scope tags that narrow how long a handle
// may be held relative to the container it was extracted from.
//
//	type Boot struct{ resgen.Bound }
type Bound struct{}

func (Bound) scope() {}

// Peri is an exclusive handle to one hardware resource of type T.
// Handles are moved out of a peripherals container by generated extractors;
// copying a handle after extraction is a caller error.
type Peri[T any] struct {
	p T
}

// NewPeri wraps p into an ownership handle.
func NewPeri[T any](p T) Peri[T] {
	return Peri[T]{p: p}
}

// Peripheral returns the wrapped resource.
func (h Peri[T]) Peripheral() T {
	return h.p
}

// ScopedPeri is a Peri whose ownership is additionally tagged with scope S.
type ScopedPeri[S Scope, T any] struct {
	p T
}

// NewScopedPeri wraps p into a handle scoped by S.
func NewScopedPeri[S Scope, T any](p T) ScopedPeri[S, T] {
	return ScopedPeri[S, T]{p: p}
}

// Peripheral returns the wrapped resource.
func (h ScopedPeri[S, T]) Peripheral() T {
	return h.p
}

// Unscoped drops the scope tag.
func (h ScopedPeri[S, T]) Unscoped() Peri[T] {
	return Peri[T]{p: h.p}
}

// Take moves the handle out of *src, leaving the zero value behind.
func Take[H any](src *H) H {
	h := *src
	var zero H
	*src = zero
	return h
}
