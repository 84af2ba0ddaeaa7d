// SPDX-License-Identifier: GPL-3.0-or-later

package sockopts

import (
	"log/slog"
	"time"

	"github.com/bassosimone/runtimex"
)

// NewProxyProtocolSocketFactory returns a new [*ProxyProtocolSocketFactory].
//
// The cfg argument contains the common configuration for sockopts components.
//
// The version argument is the proxy protocol version (1 or 2).
//
// The logger argument is the [SLogger] to use for structured logging.
func NewProxyProtocolSocketFactory(cfg *Config, version byte, logger SLogger) *ProxyProtocolSocketFactory {
	runtimex.Assert(version == 1 || version == 2)
	return &ProxyProtocolSocketFactory{
		ErrClassifier: cfg.ErrClassifier,
		Logger:        logger,
		TimeNow:       cfg.TimeNow,
		Version:       version,
	}
}

// ProxyProtocolSocketFactory renders the proxy protocol header carried by
// [TransportSocketOptions].
//
// Because it reads the proxy protocol data, connections keyed for this
// factory are partitioned by that data.
//
// All fields are safe to modify after construction but before first use.
// Fields must not be mutated concurrently with calls to [Header].
type ProxyProtocolSocketFactory struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewProxyProtocolSocketFactory] from [Config.ErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] to use (configurable for testing or custom logging).
	//
	// Set by [NewProxyProtocolSocketFactory] to the user-provided logger.
	Logger SLogger

	// TimeNow is the function to get the current time (configurable for testing).
	//
	// Set by [NewProxyProtocolSocketFactory] from [Config.TimeNow].
	TimeNow func() time.Time

	// Version is the proxy protocol version (1 or 2). Other values panic.
	//
	// Set by [NewProxyProtocolSocketFactory] to the user-provided value.
	Version byte
}

var _ TransportSocketFactory = &ProxyProtocolSocketFactory{}

// UsesProxyProtocolOptions implements [TransportSocketFactory].
func (f *ProxyProtocolSocketFactory) UsesProxyProtocolOptions() bool {
	return true
}

// Header returns the serialized proxy protocol header for opts.
//
// Returns nil and no error when opts carries no proxy protocol data.
func (f *ProxyProtocolSocketFactory) Header(opts TransportSocketOptions) ([]byte, error) {
	if opts == nil {
		return nil, nil
	}
	data := opts.ProxyProtocolOptions()
	if data == nil {
		return nil, nil
	}
	t0 := f.TimeNow()
	raw, err := f.format(data)
	f.logHeaderDone(t0, data, raw, err)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (f *ProxyProtocolSocketFactory) format(data *ProxyProtocolData) ([]byte, error) {
	runtimex.Assert(f.Version == 1 || f.Version == 2)
	header, err := data.Header(f.Version)
	if err != nil {
		return nil, err
	}
	return header.Format()
}

func (f *ProxyProtocolSocketFactory) logHeaderDone(
	t0 time.Time, data *ProxyProtocolData, raw []byte, err error) {
	f.Logger.Info(
		"proxyProtocolHeaderDone",
		slog.Any("err", err),
		slog.String("errClass", f.ErrClassifier.Classify(err)),
		slog.String("proxyProtocolDestinationAddr", addrPortOrNull(data.DestinationAddr)),
		slog.Int("proxyProtocolHeaderSize", len(raw)),
		slog.String("proxyProtocolSourceAddr", addrPortOrNull(data.SourceAddr)),
		slog.Int("proxyProtocolVersion", int(f.Version)),
		slog.Time("t0", t0),
		slog.Time("t", f.TimeNow()),
	)
}
