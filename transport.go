// SPDX-License-Identifier: Apache-2.0

package sunpci

import "unsafe"

// DefaultDevicePath is the conventional sunpci device node.
const DefaultDevicePath = "/dev/sunpci0"

// DeviceTransport carries one protocol request to the driver. It is
// the single boundary where control leaves safe Go code; everything
// above it operates on ordinary in-memory records. Implementations
// must execute Call synchronously: the argument record is only valid
// for the duration of the call.
type DeviceTransport interface {
	Call(req uint32, arg unsafe.Pointer) error
	Close() error
}
