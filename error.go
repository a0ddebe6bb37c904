// SPDX-License-Identifier: Apache-2.0

package sunpci

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	ErrDeviceUnavailable = errors.New("device node not present; driver not loaded")
	ErrPermissionDenied  = errors.New("access to device node denied")
	ErrSessionConflict   = errors.New("session state conflict")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrProtocolViolation = errors.New("driver returned a malformed record")
)

// DeviceError is a classified failure of one client call. Errno keeps
// the driver's original code so UI layers can log the low-level cause.
type DeviceError struct {
	Op    string
	Cause error
	Errno syscall.Errno
}

func (e *DeviceError) Error() string {
	if e.Errno != 0 {
		return fmt.Sprintf("%s: %s (errno %d)", e.Op, e.Cause.Error(), int(e.Errno))
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Cause.Error())
}

func (e *DeviceError) Unwrap() error { return e.Cause }

func IsDeviceUnavailableErr(err error) bool { return isDeviceErr(err, ErrDeviceUnavailable) }
func IsPermissionDeniedErr(err error) bool  { return isDeviceErr(err, ErrPermissionDenied) }
func IsSessionConflictErr(err error) bool   { return isDeviceErr(err, ErrSessionConflict) }
func IsInvalidConfigErr(err error) bool     { return isDeviceErr(err, ErrInvalidConfig) }
func IsProtocolViolationErr(err error) bool { return isDeviceErr(err, ErrProtocolViolation) }

func isDeviceErr(err, target error) bool {
	if errors.Is(err, target) {
		return true
	}
	var e *DeviceError
	if errors.As(err, &e) {
		return errors.Is(e.Cause, target)
	}
	return false
}

// TransportError is an unclassified driver failure: the ioctl itself
// failed with a code the client does not map to a higher-level cause.
type TransportError struct {
	Op    string
	Errno syscall.Errno
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %s (errno %d)", e.Op, e.Errno.Error(), int(e.Errno))
}

func (e *TransportError) Unwrap() error { return e.Errno }

func IsTransportErr(err error) bool {
	var e *TransportError
	return errors.As(err, &e)
}
