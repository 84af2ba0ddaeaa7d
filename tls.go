// SPDX-License-Identifier: GPL-3.0-or-later

package sockopts

import (
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/bassosimone/runtimex"
)

var (
	// ErrNoPeerCertificate indicates that the peer presented no certificate.
	ErrNoPeerCertificate = errors.New("sockopts: no peer certificate")

	// ErrSubjectAltNameMismatch indicates that the peer certificate matches
	// none of the subject alt name overrides.
	ErrSubjectAltNameMismatch = errors.New("sockopts: peer certificate matches no subject alt name override")
)

// NewTLSSocketFactory returns a new [*TLSSocketFactory] using the given [*tls.Config].
//
// The cfg argument contains the common configuration for sockopts components.
//
// The tlsConfig argument is the base TLS configuration, which is never modified.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewTLSSocketFactory(cfg *Config, tlsConfig *tls.Config, logger SLogger) *TLSSocketFactory {
	runtimex.Assert(tlsConfig != nil)
	return &TLSSocketFactory{
		Config:  tlsConfig,
		Logger:  logger,
		TimeNow: cfg.TimeNow,
	}
}

// TLSSocketFactory applies [TransportSocketOptions] to a base [*tls.Config].
//
// All fields are safe to modify after construction but before first use.
// Fields must not be mutated concurrently with calls to [TLSConfig].
type TLSSocketFactory struct {
	// Config contains the base [*tls.Config] configuration.
	//
	// Set by [NewTLSSocketFactory] to the user-provided [*tls.Config] pointer.
	Config *tls.Config

	// Logger is the [SLogger] to use (configurable for testing or custom logging).
	//
	// Set by [NewTLSSocketFactory] to the user-provided logger.
	Logger SLogger

	// TimeNow is the function to get the current time (configurable for testing).
	//
	// Set by [NewTLSSocketFactory] from [Config.TimeNow].
	TimeNow func() time.Time
}

var _ TransportSocketFactory = &TLSSocketFactory{}

// UsesProxyProtocolOptions implements [TransportSocketFactory].
//
// This method returns false: TLS sockets never send proxy protocol headers.
func (f *TLSSocketFactory) UsesProxyProtocolOptions() bool {
	return false
}

// TLSConfig returns a clone of the base [*tls.Config] with opts applied.
//
// The server name override replaces ServerName. The primary ALPN list replaces
// NextProtos; otherwise, the fallback list is used when the base config has
// no NextProtos. A non-empty subject alt name list installs a VerifyConnection
// hook, run after any existing hook, requiring the leaf certificate to be
// valid for at least one of the listed names.
func (f *TLSSocketFactory) TLSConfig(opts TransportSocketOptions) *tls.Config {
	runtimex.Assert(f.Config != nil)
	config := f.Config.Clone()
	if opts == nil {
		return config
	}

	if name, ok := opts.ServerNameOverride(); ok {
		config.ServerName = name
	}

	if alpn := opts.ApplicationProtocolListOverride(); len(alpn) > 0 {
		config.NextProtos = slices.Clone(alpn)
	} else if fallback := opts.ApplicationProtocolFallback(); len(fallback) > 0 && len(config.NextProtos) <= 0 {
		config.NextProtos = slices.Clone(fallback)
	}

	sans := opts.VerifySubjectAltNameListOverride()
	if len(sans) > 0 {
		config.VerifyConnection = verifySubjectAltNames(config.VerifyConnection, slices.Clone(sans))
	}

	f.logConfigOverride(config, sans)
	return config
}

func verifySubjectAltNames(
	next func(tls.ConnectionState) error, sans []string) func(tls.ConnectionState) error {
	return func(state tls.ConnectionState) error {
		if next != nil {
			if err := next(state); err != nil {
				return err
			}
		}
		if len(state.PeerCertificates) <= 0 {
			return ErrNoPeerCertificate
		}
		leaf := state.PeerCertificates[0]
		for _, san := range sans {
			if leaf.VerifyHostname(san) == nil {
				return nil
			}
		}
		return fmt.Errorf("%w: %v", ErrSubjectAltNameMismatch, sans)
	}
}

func (f *TLSSocketFactory) logConfigOverride(config *tls.Config, sans []string) {
	f.Logger.Debug(
		"tlsConfigOverride",
		slog.Time("t", f.TimeNow()),
		slog.Any("tlsOfferedProtocols", config.NextProtos),
		slog.String("tlsServerName", config.ServerName),
		slog.Bool("tlsSkipVerify", config.InsecureSkipVerify),
		slog.Any("tlsVerifySubjectAltNames", sans),
	)
}
