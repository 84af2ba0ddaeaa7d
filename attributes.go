// SPDX-License-Identifier: GPL-3.0-or-later

package sockopts

import (
	"context"

	"github.com/bassosimone/runtimex"
)

// FilterState is a read-only snapshot of request-scoped attributes.
//
// Lookup returns the value stored under name and whether it is present.
// Implementations must hold at most one value per name, and lookups must be
// repeatable and free of side effects. Callers should not use Lookup directly
// but rather [AttributeKey.Get], which also checks the value type.
type FilterState interface {
	Lookup(name string) (any, bool)
}

// AttributeKey is a well-known, typed name for a [FilterState] value.
//
// The zero value is not usable; construct using [NewAttributeKey].
type AttributeKey[T any] struct {
	name string
}

// NewAttributeKey returns an [AttributeKey] for values of type T.
//
// Names are process-wide: two keys sharing a name must share T.
func NewAttributeKey[T any](name string) AttributeKey[T] {
	runtimex.Assert(name != "")
	return AttributeKey[T]{name: name}
}

// Name returns the key name.
func (k AttributeKey[T]) Name() string {
	return k.name
}

// Value binds value to this key, for use with [NewAttributes].
func (k AttributeKey[T]) Value(value T) Attribute {
	return Attribute{name: k.name, value: value}
}

// Get returns the value stored under this key, if present.
//
// A nil state behaves like an empty one. This method panics if the stored
// value does not have type T, which is a programming error.
func (k AttributeKey[T]) Get(state FilterState) (T, bool) {
	var zero T
	if state == nil {
		return zero, false
	}
	raw, found := state.Lookup(k.name)
	if !found {
		return zero, false
	}
	value, ok := raw.(T)
	runtimex.Assert(ok)
	return value, true
}

// Attribute is a value bound to a key name. Create using [AttributeKey.Value].
type Attribute struct {
	name  string
	value any
}

// Attributes is an immutable, map-backed [FilterState].
//
// A nil *Attributes is a valid, empty [FilterState].
type Attributes struct {
	values map[string]any
}

var _ FilterState = &Attributes{}

// NewAttributes returns [*Attributes] containing the given values.
//
// When more than one value has the same name, the last one wins.
func NewAttributes(values ...Attribute) *Attributes {
	attrs := &Attributes{values: make(map[string]any, len(values))}
	for _, entry := range values {
		attrs.values[entry.name] = entry.value
	}
	return attrs
}

// Lookup implements [FilterState].
func (a *Attributes) Lookup(name string) (any, bool) {
	if a == nil {
		return nil, false
	}
	value, found := a.values[name]
	return value, found
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.values)
}

// emptyAttributes is returned by [FilterStateFromContext] when no state was attached.
var emptyAttributes = NewAttributes()

type filterStateContextKey struct{}

// ContextWithFilterState returns a child context carrying state.
//
// A nil state leaves the context unchanged.
func ContextWithFilterState(ctx context.Context, state FilterState) context.Context {
	if state == nil {
		return ctx
	}
	return context.WithValue(ctx, filterStateContextKey{}, state)
}

// FilterStateFromContext returns the [FilterState] attached to ctx, or an
// empty one when none was attached.
func FilterStateFromContext(ctx context.Context) FilterState {
	if state, ok := ctx.Value(filterStateContextKey{}).(FilterState); ok {
		return state
	}
	return emptyAttributes
}
