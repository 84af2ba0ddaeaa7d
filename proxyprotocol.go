// SPDX-License-Identifier: GPL-3.0-or-later

package sockopts

import (
	"encoding/hex"
	"errors"
	"net"
	"net/netip"
	"slices"
	"strconv"
	"strings"

	"github.com/pires/go-proxyproto"
)

// ProxyProtocolTLV is a proxy protocol v2 type-length-value extension.
type ProxyProtocolTLV struct {
	Type  byte
	Value []byte
}

// ProxyProtocolData contains the proxy protocol header fields to send upstream.
//
// An invalid (zero) address means the address is unknown.
type ProxyProtocolData struct {
	// SourceAddr is the original client address.
	SourceAddr netip.AddrPort

	// DestinationAddr is the original destination address.
	DestinationAddr netip.AddrPort

	// TLVs contains optional extensions, which require version 2 headers.
	TLVs []ProxyProtocolTLV
}

// ErrProxyProtocolTLVRequiresV2 indicates that TLVs cannot be sent using a version 1 header.
var ErrProxyProtocolTLVRequiresV2 = errors.New("sockopts: proxy protocol TLVs require version 2")

// clone returns a deep copy of the data.
func (d *ProxyProtocolData) clone() *ProxyProtocolData {
	out := &ProxyProtocolData{
		SourceAddr:      d.SourceAddr,
		DestinationAddr: d.DestinationAddr,
	}
	if len(d.TLVs) > 0 {
		out.TLVs = make([]ProxyProtocolTLV, 0, len(d.TLVs))
		for _, tlv := range d.TLVs {
			out.TLVs = append(out.TLVs, ProxyProtocolTLV{Type: tlv.Type, Value: slices.Clone(tlv.Value)})
		}
	}
	return out
}

// AsStringForHash returns the canonical rendering used by [AppendHashKey].
//
// The format is the source address, the destination address (each "null" when
// unknown), and then each TLV as type:hexvalue, separated by spaces.
func (d *ProxyProtocolData) AsStringForHash() string {
	var sb strings.Builder
	sb.WriteString(addrPortOrNull(d.SourceAddr))
	sb.WriteByte(' ')
	sb.WriteString(addrPortOrNull(d.DestinationAddr))
	for _, tlv := range d.TLVs {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(int(tlv.Type)))
		sb.WriteByte(':')
		sb.WriteString(hex.EncodeToString(tlv.Value))
	}
	return sb.String()
}

func addrPortOrNull(ap netip.AddrPort) string {
	if !ap.IsValid() {
		return "null"
	}
	return ap.String()
}

// Header builds the [*proxyproto.Header] to send upstream using the given
// protocol version (1 or 2).
//
// When either address is unknown, the header uses the LOCAL command.
func (d *ProxyProtocolData) Header(version byte) (*proxyproto.Header, error) {
	var src, dst net.Addr
	if d.SourceAddr.IsValid() && d.DestinationAddr.IsValid() {
		src = net.TCPAddrFromAddrPort(unmapAddrPort(d.SourceAddr))
		dst = net.TCPAddrFromAddrPort(unmapAddrPort(d.DestinationAddr))
	}
	header := proxyproto.HeaderProxyFromAddrs(version, src, dst)
	if len(d.TLVs) <= 0 {
		return header, nil
	}
	if header.Version != 2 {
		return nil, ErrProxyProtocolTLVRequiresV2
	}
	tlvs := make([]proxyproto.TLV, 0, len(d.TLVs))
	for _, tlv := range d.TLVs {
		tlvs = append(tlvs, proxyproto.TLV{Type: proxyproto.PP2Type(tlv.Type), Value: tlv.Value})
	}
	if err := header.SetTLVs(tlvs); err != nil {
		return nil, err
	}
	return header, nil
}

func unmapAddrPort(ap netip.AddrPort) netip.AddrPort {
	return netip.AddrPortFrom(ap.Addr().Unmap(), ap.Port())
}
