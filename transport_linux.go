// SPDX-License-Identifier: Apache-2.0

//go:build linux

package sunpci

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

type ioctlTransport struct {
	f *os.File
}

func openTransport(path string) (DeviceTransport, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return &ioctlTransport{f: f}, nil
}

func (t *ioctlTransport) Call(req uint32, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, t.f.Fd(), uintptr(req), uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func (t *ioctlTransport) Close() error {
	return t.f.Close()
}
