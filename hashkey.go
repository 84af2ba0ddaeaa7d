// SPDX-License-Identifier: GPL-3.0-or-later

package sockopts

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// CaseInsensitiveHash returns the 64-bit xxHash of s with ASCII letters
// folded to lower case.
func CaseInsensitiveHash(s string) uint64 {
	var (
		digest xxhash.Digest
		buf    [64]byte
	)
	digest.Reset()
	for len(s) > 0 {
		n := copy(buf[:], s)
		for idx := range n {
			if c := buf[idx]; 'A' <= c && c <= 'Z' {
				buf[idx] = c + ('a' - 'A')
			}
		}
		digest.Write(buf[:n])
		s = s[n:]
	}
	return digest.Sum64()
}

// AppendHashKey appends the pool hash key contribution of opts to key and
// returns the extended slice.
//
// Each set field contributes the [CaseInsensitiveHash] of its strings, in
// this order: server name, subject alt names, ALPN list, ALPN fallback, and
// finally the proxy protocol data, which only contributes when
// proxyProtocolRelevant is true. The downstream target port never contributes.
//
// A nil opts leaves key unchanged.
func AppendHashKey(key []byte, opts TransportSocketOptions, proxyProtocolRelevant bool) []byte {
	if opts == nil {
		return key
	}
	if name, ok := opts.ServerNameOverride(); ok {
		key = appendStringHash(key, name)
	}
	for _, san := range opts.VerifySubjectAltNameListOverride() {
		key = appendStringHash(key, san)
	}
	for _, protocol := range opts.ApplicationProtocolListOverride() {
		key = appendStringHash(key, protocol)
	}
	for _, protocol := range opts.ApplicationProtocolFallback() {
		key = appendStringHash(key, protocol)
	}
	// A factory that never reads proxy protocol data must not have its
	// connections partitioned by it.
	if pp := opts.ProxyProtocolOptions(); pp != nil && proxyProtocolRelevant {
		key = appendStringHash(key, pp.AsStringForHash())
	}
	return key
}

func appendStringHash(key []byte, s string) []byte {
	return binary.NativeEndian.AppendUint64(key, CaseInsensitiveHash(s))
}
