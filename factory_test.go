// SPDX-License-Identifier: GPL-3.0-or-later

package sockopts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransportSocketFactoryFunc(t *testing.T) {
	assert.True(t, usesProxyProtocol.UsesProxyProtocolOptions())
	assert.False(t, ignoresProxyProtocol.UsesProxyProtocolOptions())
}
