// SPDX-License-Identifier: GPL-3.0-or-later

package sockopts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStaticOptions(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		pp := newProxyProtocolData()
		opts := NewStaticOptions(Overrides{
			ServerName:                  "example.com",
			SubjectAltNames:             []string{"san"},
			ApplicationProtocols:        []string{"h2"},
			ApplicationProtocolFallback: []string{"http/1.1"},
			ProxyProtocol:               &pp,
			DownstreamTargetPort:        "443",
		})

		name, ok := opts.ServerNameOverride()
		assert.True(t, ok)
		assert.Equal(t, "example.com", name)
		assert.Equal(t, []string{"san"}, opts.VerifySubjectAltNameListOverride())
		assert.Equal(t, []string{"h2"}, opts.ApplicationProtocolListOverride())
		assert.Equal(t, []string{"http/1.1"}, opts.ApplicationProtocolFallback())
		require.NotNil(t, opts.ProxyProtocolOptions())
		assert.Equal(t, pp, *opts.ProxyProtocolOptions())
		port, ok := opts.DownstreamTargetPort()
		assert.True(t, ok)
		assert.Equal(t, "443", port)
	})

	t.Run("unset fields", func(t *testing.T) {
		opts := NewStaticOptions(Overrides{})

		_, ok := opts.ServerNameOverride()
		assert.False(t, ok)
		assert.Empty(t, opts.VerifySubjectAltNameListOverride())
		assert.Empty(t, opts.ApplicationProtocolListOverride())
		assert.Empty(t, opts.ApplicationProtocolFallback())
		assert.Nil(t, opts.ProxyProtocolOptions())
		_, ok = opts.DownstreamTargetPort()
		assert.False(t, ok)
	})

	t.Run("inputs are copied", func(t *testing.T) {
		alpn := []string{"h2"}
		pp := ProxyProtocolData{TLVs: []ProxyProtocolTLV{{Type: 0xE0, Value: []byte{1}}}}
		opts := NewStaticOptions(Overrides{ApplicationProtocols: alpn, ProxyProtocol: &pp})

		alpn[0] = "mutated"
		pp.TLVs[0].Value[0] = 2

		assert.Equal(t, []string{"h2"}, opts.ApplicationProtocolListOverride())
		assert.Equal(t, []byte{1}, opts.ProxyProtocolOptions().TLVs[0].Value)
	})

	t.Run("nil options behave as empty", func(t *testing.T) {
		var opts *StaticOptions

		_, ok := opts.ServerNameOverride()
		assert.False(t, ok)
		assert.Nil(t, opts.ApplicationProtocolListOverride())
		assert.Nil(t, opts.ProxyProtocolOptions())
		assert.Empty(t, opts.HashKey(nil, usesProxyProtocol))
	})
}

func TestStaticOptionsHashKey(t *testing.T) {
	pp := newProxyProtocolData()
	opts := NewStaticOptions(Overrides{ServerName: "example.com", ProxyProtocol: &pp})

	assert.Equal(t, AppendHashKey(nil, opts, false), opts.HashKey(nil, ignoresProxyProtocol))
	assert.Equal(t, AppendHashKey(nil, opts, true), opts.HashKey(nil, usesProxyProtocol))
}

func TestALPNDecoratingOptions(t *testing.T) {
	pp := newProxyProtocolData()
	inner := NewStaticOptions(Overrides{
		ServerName:                  "example.com",
		SubjectAltNames:             []string{"san"},
		ApplicationProtocols:        []string{"h2"},
		ApplicationProtocolFallback: []string{"ignored"},
		ProxyProtocol:               &pp,
		DownstreamTargetPort:        "443",
	})

	t.Run("delegates all fields but the fallback", func(t *testing.T) {
		opts := NewALPNDecoratingOptions([]string{"http/1.1"}, inner)

		name, ok := opts.ServerNameOverride()
		assert.True(t, ok)
		assert.Equal(t, "example.com", name)
		assert.Equal(t, []string{"san"}, opts.VerifySubjectAltNameListOverride())
		assert.Equal(t, []string{"h2"}, opts.ApplicationProtocolListOverride())
		assert.Equal(t, []string{"http/1.1"}, opts.ApplicationProtocolFallback())
		assert.Same(t, inner.ProxyProtocolOptions(), opts.ProxyProtocolOptions())
		port, ok := opts.DownstreamTargetPort()
		assert.True(t, ok)
		assert.Equal(t, "443", port)
	})

	t.Run("nil inner", func(t *testing.T) {
		opts := NewALPNDecoratingOptions([]string{"h2"}, nil)

		_, ok := opts.ServerNameOverride()
		assert.False(t, ok)
		assert.Empty(t, opts.ApplicationProtocolListOverride())
		assert.Nil(t, opts.ProxyProtocolOptions())
		assert.Equal(t, []string{"h2"}, opts.ApplicationProtocolFallback())
	})

	t.Run("hashes like equivalent static options", func(t *testing.T) {
		decorated := NewALPNDecoratingOptions([]string{"http/1.1"}, inner)
		equivalent := NewStaticOptions(Overrides{
			ServerName:                  "example.com",
			SubjectAltNames:             []string{"san"},
			ApplicationProtocols:        []string{"h2"},
			ApplicationProtocolFallback: []string{"http/1.1"},
			ProxyProtocol:               &pp,
		})

		for _, factory := range []TransportSocketFactory{usesProxyProtocol, ignoresProxyProtocol} {
			assert.Equal(t, equivalent.HashKey(nil, factory), decorated.HashKey(nil, factory))
		}
	})
}
