// SPDX-License-Identifier: GPL-3.0-or-later

package sockopts

import "context"

// Func is a generic operation that accepts an input and returns a result.
//
// Both [*Resolver] and [*PoolKeyFunc] implement Func so that callers may
// chain resolution and key computation with [Compose2].
type Func[A, B any] interface {
	Call(ctx context.Context, input A) (B, error)
}

// FuncAdapter wraps a function as a [Func] implementation.
type FuncAdapter[A, B any] func(ctx context.Context, input A) (B, error)

// Call implements [Func].
func (f FuncAdapter[A, B]) Call(ctx context.Context, input A) (B, error) {
	return f(ctx, input)
}
