// SPDX-License-Identifier: GPL-3.0-or-later

package sockopts

import "slices"

// TransportSocketOptions contains the per-connection overrides for an
// upstream transport socket.
//
// Implementations are immutable. Slices and pointers returned by the
// accessors are shared views that callers must not modify.
type TransportSocketOptions interface {
	// ServerNameOverride returns the SNI to present and whether it is set.
	ServerNameOverride() (string, bool)

	// VerifySubjectAltNameListOverride returns additional SAN patterns
	// the peer certificate must satisfy.
	VerifySubjectAltNameListOverride() []string

	// ApplicationProtocolListOverride returns the primary ALPN list.
	ApplicationProtocolListOverride() []string

	// ApplicationProtocolFallback returns the ALPN list to use when no
	// other ALPN list is configured.
	ApplicationProtocolFallback() []string

	// ProxyProtocolOptions returns the proxy protocol data or nil.
	ProxyProtocolOptions() *ProxyProtocolData

	// DownstreamTargetPort returns the downstream target port and whether it is set.
	DownstreamTargetPort() (string, bool)

	// HashKey appends the pool hash key contribution of these options for
	// the given factory to key and returns the extended slice.
	HashKey(key []byte, factory TransportSocketFactory) []byte
}

// Overrides contains the fields used to construct [*StaticOptions].
//
// Empty strings and empty slices mean "not set".
type Overrides struct {
	ServerName                  string
	SubjectAltNames             []string
	ApplicationProtocols        []string
	ApplicationProtocolFallback []string
	ProxyProtocol               *ProxyProtocolData
	DownstreamTargetPort        string
}

// StaticOptions is the immutable [TransportSocketOptions] built by [Resolve]
// and [NewStaticOptions].
//
// A nil *StaticOptions behaves as options with no field set.
type StaticOptions struct {
	serverName           string
	subjectAltNames      []string
	alpn                 []string
	alpnFallback         []string
	proxyProtocol        *ProxyProtocolData
	downstreamTargetPort string
}

var _ TransportSocketOptions = &StaticOptions{}

// NewStaticOptions returns new [*StaticOptions] holding a copy of o.
func NewStaticOptions(o Overrides) *StaticOptions {
	opts := &StaticOptions{
		serverName:           o.ServerName,
		subjectAltNames:      cloneNonEmpty(o.SubjectAltNames),
		alpn:                 cloneNonEmpty(o.ApplicationProtocols),
		alpnFallback:         cloneNonEmpty(o.ApplicationProtocolFallback),
		downstreamTargetPort: o.DownstreamTargetPort,
	}
	if o.ProxyProtocol != nil {
		opts.proxyProtocol = o.ProxyProtocol.clone()
	}
	return opts
}

func cloneNonEmpty(values []string) []string {
	if len(values) <= 0 {
		return nil
	}
	return slices.Clone(values)
}

// ServerNameOverride implements [TransportSocketOptions].
func (o *StaticOptions) ServerNameOverride() (string, bool) {
	if o == nil {
		return "", false
	}
	return o.serverName, o.serverName != ""
}

// VerifySubjectAltNameListOverride implements [TransportSocketOptions].
func (o *StaticOptions) VerifySubjectAltNameListOverride() []string {
	if o == nil {
		return nil
	}
	return o.subjectAltNames
}

// ApplicationProtocolListOverride implements [TransportSocketOptions].
func (o *StaticOptions) ApplicationProtocolListOverride() []string {
	if o == nil {
		return nil
	}
	return o.alpn
}

// ApplicationProtocolFallback implements [TransportSocketOptions].
func (o *StaticOptions) ApplicationProtocolFallback() []string {
	if o == nil {
		return nil
	}
	return o.alpnFallback
}

// ProxyProtocolOptions implements [TransportSocketOptions].
func (o *StaticOptions) ProxyProtocolOptions() *ProxyProtocolData {
	if o == nil {
		return nil
	}
	return o.proxyProtocol
}

// DownstreamTargetPort implements [TransportSocketOptions].
func (o *StaticOptions) DownstreamTargetPort() (string, bool) {
	if o == nil {
		return "", false
	}
	return o.downstreamTargetPort, o.downstreamTargetPort != ""
}

// HashKey implements [TransportSocketOptions].
func (o *StaticOptions) HashKey(key []byte, factory TransportSocketFactory) []byte {
	return AppendHashKey(key, o, factory.UsesProxyProtocolOptions())
}

// ALPNDecoratingOptions forces an ALPN fallback list on top of other
// [TransportSocketOptions], to which it delegates all the other fields.
//
// Construct using [NewALPNDecoratingOptions].
type ALPNDecoratingOptions struct {
	fallback []string
	inner    TransportSocketOptions
}

var _ TransportSocketOptions = &ALPNDecoratingOptions{}

// NewALPNDecoratingOptions returns new [*ALPNDecoratingOptions].
//
// The fallback argument is copied. The inner argument may be nil, in which
// case every other field is unset.
func NewALPNDecoratingOptions(fallback []string, inner TransportSocketOptions) *ALPNDecoratingOptions {
	if inner == nil {
		inner = (*StaticOptions)(nil)
	}
	return &ALPNDecoratingOptions{fallback: cloneNonEmpty(fallback), inner: inner}
}

// ServerNameOverride implements [TransportSocketOptions].
func (o *ALPNDecoratingOptions) ServerNameOverride() (string, bool) {
	return o.inner.ServerNameOverride()
}

// VerifySubjectAltNameListOverride implements [TransportSocketOptions].
func (o *ALPNDecoratingOptions) VerifySubjectAltNameListOverride() []string {
	return o.inner.VerifySubjectAltNameListOverride()
}

// ApplicationProtocolListOverride implements [TransportSocketOptions].
func (o *ALPNDecoratingOptions) ApplicationProtocolListOverride() []string {
	return o.inner.ApplicationProtocolListOverride()
}

// ApplicationProtocolFallback implements [TransportSocketOptions].
//
// This method returns the forced fallback list, ignoring the inner options.
func (o *ALPNDecoratingOptions) ApplicationProtocolFallback() []string {
	return o.fallback
}

// ProxyProtocolOptions implements [TransportSocketOptions].
func (o *ALPNDecoratingOptions) ProxyProtocolOptions() *ProxyProtocolData {
	return o.inner.ProxyProtocolOptions()
}

// DownstreamTargetPort implements [TransportSocketOptions].
func (o *ALPNDecoratingOptions) DownstreamTargetPort() (string, bool) {
	return o.inner.DownstreamTargetPort()
}

// HashKey implements [TransportSocketOptions].
func (o *ALPNDecoratingOptions) HashKey(key []byte, factory TransportSocketFactory) []byte {
	return AppendHashKey(key, o, factory.UsesProxyProtocolOptions())
}
