package model

// State classifies an optional field in the canonical model. The three states
// let rendering logic distinguish "this source can never carry the field"
// from "the source carried it and it was empty".
type State uint8

const (
	// NotApplicable means the detected variant never supplies this field.
	NotApplicable State = iota
	// Empty means the variant supplies the field and nothing was detected.
	Empty
	// Present means the field carries data.
	Present
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case NotApplicable:
		return "not-applicable"
	case Empty:
		return "empty"
	case Present:
		return "present"
	default:
		return "invalid"
	}
}

// Opt is a three-state optional value. The zero value is NotApplicable.
type Opt[T any] struct {
	state State
	value T
}

// NA returns a not-applicable-for-this-mode marker.
func NA[T any]() Opt[T] {
	return Opt[T]{state: NotApplicable}
}

// EmptyOf returns a present-but-empty marker.
func EmptyOf[T any]() Opt[T] {
	return Opt[T]{state: Empty}
}

// Of returns a present value.
func Of[T any](v T) Opt[T] {
	return Opt[T]{state: Present, value: v}
}

// OfSlice returns a present value for non-empty slices and a
// present-but-empty marker otherwise.
func OfSlice[E any](v []E) Opt[[]E] {
	if len(v) == 0 {
		return EmptyOf[[]E]()
	}
	return Of(v)
}

// State reports which of the three states the optional is in.
func (o Opt[T]) State() State { return o.state }

// Applicable reports whether the source variant supplies this field at all.
func (o Opt[T]) Applicable() bool { return o.state != NotApplicable }

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.value, o.state == Present
}

// Value returns the value, which is the zero value unless Present.
func (o Opt[T]) Value() T { return o.value }
