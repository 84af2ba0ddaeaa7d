// SPDX-License-Identifier: GPL-3.0-or-later

package sockopts

import (
	"context"
	"log/slog"
	"time"
)

// NewResolver returns a new [*Resolver].
//
// The cfg argument contains the common configuration for sockopts components.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewResolver(cfg *Config, logger SLogger) *Resolver {
	return &Resolver{
		Logger:  logger,
		TimeNow: cfg.TimeNow,
	}
}

// Resolver builds [*StaticOptions] from a [FilterState].
//
// All fields are safe to modify after construction but before first use.
// Fields must not be mutated concurrently with calls to [Resolve].
type Resolver struct {
	// Logger is the [SLogger] to use (configurable for testing or custom logging).
	//
	// Set by [NewResolver] to the user-provided logger.
	Logger SLogger

	// TimeNow is the function to get the current time (configurable for testing).
	//
	// Set by [NewResolver] from [Config.TimeNow].
	TimeNow func() time.Time
}

var _ Func[FilterState, *StaticOptions] = &Resolver{}

// defaultResolver is used by the package-level [Resolve].
var defaultResolver = &Resolver{Logger: DefaultSLogger(), TimeNow: time.Now}

// Resolve is like [*Resolver.Resolve] but does not log.
func Resolve(state FilterState) *StaticOptions {
	return defaultResolver.Resolve(state)
}

// Resolve probes state for every well-known key and returns the resulting
// [*StaticOptions], or nil when none of the keys is present.
//
// The state is only read during this call and never retained.
func (r *Resolver) Resolve(state FilterState) *StaticOptions {
	var (
		overrides Overrides
		needed    bool
	)

	if value, ok := UpstreamServerNameKey.Get(state); ok {
		overrides.ServerName = value
		needed = true
	}

	if value, ok := ApplicationProtocolsKey.Get(state); ok {
		overrides.ApplicationProtocols = value
		needed = true
	}

	if value, ok := DownstreamTargetPortKey.Get(state); ok {
		overrides.DownstreamTargetPort = value
		needed = true
	}

	if value, ok := UpstreamSubjectAltNamesKey.Get(state); ok {
		overrides.SubjectAltNames = value
		needed = true
	}

	if value, ok := ProxyProtocolKey.Get(state); ok {
		overrides.ProxyProtocol = &value
		needed = true
	}

	r.logResolve(needed, &overrides)
	if !needed {
		return nil
	}
	return NewStaticOptions(overrides)
}

// Call implements [Func].
//
// This method never fails and ignores the context.
func (r *Resolver) Call(ctx context.Context, state FilterState) (*StaticOptions, error) {
	return r.Resolve(state), nil
}

func (r *Resolver) logResolve(needed bool, overrides *Overrides) {
	if _, discard := r.Logger.(discardSLogger); discard {
		return
	}
	var proxyProtocol string
	if overrides.ProxyProtocol != nil {
		proxyProtocol = overrides.ProxyProtocol.AsStringForHash()
	}
	r.Logger.Debug(
		"transportSocketOptionsResolve",
		slog.Any("alpn", overrides.ApplicationProtocols),
		slog.String("downstreamTargetPort", overrides.DownstreamTargetPort),
		slog.Bool("overrideNeeded", needed),
		slog.String("proxyProtocol", proxyProtocol),
		slog.String("serverName", overrides.ServerName),
		slog.Any("subjectAltNames", overrides.SubjectAltNames),
		slog.Time("t", r.TimeNow()),
	)
}
