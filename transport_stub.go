// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package sunpci

import "os"

// The driver only exists on Linux; elsewhere the device node can never
// be present.
func openTransport(path string) (DeviceTransport, error) {
	return nil, os.ErrNotExist
}
