// SPDX-License-Identifier: GPL-3.0-or-later

package sockopts

// TransportSocketFactory is the consumer of [TransportSocketOptions].
type TransportSocketFactory interface {
	// UsesProxyProtocolOptions returns whether sockets created by this
	// factory read [TransportSocketOptions.ProxyProtocolOptions].
	UsesProxyProtocolOptions() bool
}

// TransportSocketFactoryFunc adapts a function to [TransportSocketFactory].
type TransportSocketFactoryFunc func() bool

var _ TransportSocketFactory = TransportSocketFactoryFunc(nil)

// UsesProxyProtocolOptions implements [TransportSocketFactory].
func (f TransportSocketFactoryFunc) UsesProxyProtocolOptions() bool {
	return f()
}
