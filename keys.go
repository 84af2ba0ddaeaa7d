// SPDX-License-Identifier: GPL-3.0-or-later

package sockopts

var (
	// UpstreamServerNameKey holds the SNI to present upstream, overriding
	// any statically configured server name.
	UpstreamServerNameKey = NewAttributeKey[string]("network.upstream_server_name")

	// ApplicationProtocolsKey holds the ALPN protocols to offer upstream.
	ApplicationProtocolsKey = NewAttributeKey[[]string]("network.application_protocols")

	// UpstreamSubjectAltNamesKey holds additional SAN patterns the upstream
	// peer certificate must satisfy.
	UpstreamSubjectAltNamesKey = NewAttributeKey[[]string]("network.upstream_subject_alt_names")

	// ProxyProtocolKey holds the proxy protocol header fields to send upstream.
	ProxyProtocolKey = NewAttributeKey[ProxyProtocolData]("network.proxy_protocol_options")

	// DownstreamTargetPortKey holds the port the downstream connection targeted.
	DownstreamTargetPortKey = NewAttributeKey[string]("network.downstream_target_port")
)
