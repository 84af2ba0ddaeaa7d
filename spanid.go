// SPDX-License-Identifier: GPL-3.0-or-later

package sockopts

import (
	"github.com/bassosimone/runtimex"
	"github.com/google/uuid"
)

// NewSpanID returns a UUIDv7 identifying a connection attempt.
//
// Attach it to the logger with [*slog.Logger.With] so that the resolution,
// TLS override, and proxy protocol events of one upstream connection attempt
// share the same spanID.
//
// This function panics if the system random number generator fails,
// which should only happen under extraordinary circumstances.
func NewSpanID() string {
	return runtimex.PanicOnError1(uuid.NewV7()).String()
}
