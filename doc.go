// SPDX-License-Identifier: GPL-3.0-or-later

// Package sockopts derives per-connection transport socket options from
// request-scoped state and computes connection-pool hash keys from them.
//
// # Core Abstractions
//
// A [FilterState] is a read-only snapshot of request-scoped attributes. Values
// are stored and retrieved through typed keys created with [NewAttributeKey]:
//
//	var Weight = sockopts.NewAttributeKey[float64]("example.weight")
//	state := sockopts.NewAttributes(Weight.Value(1.25))
//	w, ok := Weight.Get(state)
//
// The package defines well-known keys for the attributes that influence the
// upstream transport socket: [UpstreamServerNameKey], [ApplicationProtocolsKey],
// [UpstreamSubjectAltNamesKey], [ProxyProtocolKey] and [DownstreamTargetPortKey].
//
// [TransportSocketOptions] is the immutable set of overrides applied when
// establishing one upstream connection. [*StaticOptions] is the concrete
// value built by [Resolve] and [NewStaticOptions]; [*ALPNDecoratingOptions]
// forces an ALPN fallback list on top of another options value.
//
// # Resolution
//
// [Resolve] (or [*Resolver] when structured logging is needed) probes every
// well-known key. When none is present it returns nil: callers branch on nil
// to take the cheap default path and skip hashing entirely.
//
// # Hash Keys
//
// Every [TransportSocketOptions] implementation hashes with [AppendHashKey],
// so equivalent options always produce byte-identical keys. Each contribution
// is the [CaseInsensitiveHash] of a string appended in native byte order:
//
//  1. server name override
//  2. each subject alt name, in order
//  3. each primary ALPN protocol, in order
//  4. each fallback ALPN protocol, in order
//  5. the proxy protocol descriptor, only when the consuming
//     [TransportSocketFactory] uses proxy protocol options
//
// The downstream target port is carried for upstream selection and never
// contributes to the key. An empty list and an absent field are
// indistinguishable in the key. Keys are process-local: never persist them.
//
// # Consumers
//
// [*TLSSocketFactory] applies options to a [*tls.Config]. [*ProxyProtocolSocketFactory]
// renders proxy protocol headers. [*PoolKeyFunc] computes the key for a given
// factory and composes with [*Resolver] through [Compose2]; use [FuncAdapter]
// to lift ad-hoc steps, such as extracting the [FilterState] of a request.
//
// # Observability
//
// Components support structured logging via [SLogger] (compatible with [log/slog]).
// By default, logging is disabled. Resolution and TLS overrides are logged at
// [slog.LevelDebug]; proxy protocol header rendering at [slog.LevelInfo]. Use
// [NewSpanID] to correlate the events of one connection attempt.
//
// # Concurrency
//
// All operations are synchronous and hold no shared mutable state. They may be
// invoked concurrently on distinct snapshots and key buffers.
package sockopts
