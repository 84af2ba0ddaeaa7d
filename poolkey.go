// SPDX-License-Identifier: GPL-3.0-or-later

package sockopts

import "context"

// NewPoolKeyFunc returns a new [*PoolKeyFunc] computing keys for factory.
func NewPoolKeyFunc(factory TransportSocketFactory) *PoolKeyFunc {
	return &PoolKeyFunc{Factory: factory}
}

// PoolKeyFunc computes the connection pool hash key of [*StaticOptions].
//
// The input is the result of [*Resolver]. A nil input yields a nil key, which
// means no override: pooled connections using default settings match.
type PoolKeyFunc struct {
	// Factory is the [TransportSocketFactory] that will consume the options.
	//
	// Set by [NewPoolKeyFunc] to the user-provided factory.
	Factory TransportSocketFactory
}

var _ Func[*StaticOptions, []byte] = &PoolKeyFunc{}

// Call implements [Func].
func (op *PoolKeyFunc) Call(ctx context.Context, opts *StaticOptions) ([]byte, error) {
	if opts == nil {
		return nil, nil
	}
	return opts.HashKey(nil, op.Factory), nil
}
