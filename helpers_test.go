// SPDX-License-Identifier: GPL-3.0-or-later

package sockopts

import (
	"context"
	"log/slog"
	"net/netip"

	"github.com/bassosimone/slogstub"
)

// newCapturingLogger returns a logger that captures all log records into the
// returned slice. The caller can inspect the slice after exercising the code
// under test to verify which events were emitted.
func newCapturingLogger() (*slog.Logger, *[]slog.Record) {
	var records []slog.Record
	handler := &slogstub.FuncHandler{
		EnabledFunc: func(ctx context.Context, level slog.Level) bool {
			return true
		},
		HandleFunc: func(ctx context.Context, record slog.Record) error {
			records = append(records, record)
			return nil
		},
	}
	return slog.New(handler), &records
}

// recordAttr returns the value of the attribute with the given key.
func recordAttr(record slog.Record, key string) (value slog.Value, found bool) {
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == key {
			value, found = attr.Value, true
			return false
		}
		return true
	})
	return
}

// newProxyProtocolData returns IPv4 [ProxyProtocolData] without TLVs.
func newProxyProtocolData() ProxyProtocolData {
	return ProxyProtocolData{
		SourceAddr:      netip.MustParseAddrPort("192.0.2.1:40000"),
		DestinationAddr: netip.MustParseAddrPort("198.51.100.7:443"),
	}
}

// usesProxyProtocol and ignoresProxyProtocol are minimal factories.
var (
	usesProxyProtocol    = TransportSocketFactoryFunc(func() bool { return true })
	ignoresProxyProtocol = TransportSocketFactoryFunc(func() bool { return false })
)
