// SPDX-License-Identifier: Apache-2.0

// Package sunpci is the host-side control client for the sunpci
// co-processor card driver. It opens the privileged device node and
// issues typed protocol calls against it: session lifecycle, display,
// virtual storage, input injection, clipboard, filesystem redirection,
// network, and audio.
//
// The card is single-user (one display, one keyboard/mouse, one drive
// set), so only one Client should be active system-wide at a time.
// That is a usage contract, not an enforced lock: callers must
// serialize session lifecycle operations themselves.
package sunpci

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"
	"unsafe"

	"github.com/sunpci/go-sunpci/internal/devproto"
)

// MaxFloppyImageSize bounds floppy image files. The largest real
// format is 2.88M, so anything past 3M cannot be a floppy.
const MaxFloppyImageSize = 3 * 1024 * 1024

// MaxClipboardSize is the most clipboard data one call can transfer.
const MaxClipboardSize = devproto.MAX_CLIPBOARD

// IsDriverLoaded reports whether the device node exists at the
// conventional path.
func IsDriverLoaded() bool {
	_, err := os.Stat(DefaultDevicePath)
	return err == nil
}

// Client issues protocol calls over one open device handle. Calls are
// synchronous and stateless: nothing is cached between invocations.
type Client struct {
	t DeviceTransport
}

// Open acquires a handle to the driver at [DefaultDevicePath].
func Open() (*Client, error) {
	return OpenPath(DefaultDevicePath)
}

// OpenPath acquires a handle to the driver at the given device node.
// A missing node reports [ErrDeviceUnavailable] and insufficient
// access rights report [ErrPermissionDenied]; the two need different
// remediation (load the driver vs. fix udev group membership).
func OpenPath(path string) (*Client, error) {
	t, err := openTransport(path)
	if err != nil {
		op := "open " + path
		switch {
		case os.IsNotExist(err):
			return nil, &DeviceError{Op: op, Cause: ErrDeviceUnavailable}
		case os.IsPermission(err):
			return nil, &DeviceError{Op: op, Cause: ErrPermissionDenied}
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Client{t: t}, nil
}

// NewClient wraps an existing transport. Useful for tests.
func NewClient(t DeviceTransport) *Client {
	return &Client{t: t}
}

func (c *Client) Close() error {
	return c.t.Close()
}

func (c *Client) call(op string, req uint32, arg unsafe.Pointer) error {
	err := c.t.Call(req, arg)
	if err == nil {
		return nil
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return &TransportError{Op: op, Errno: errno}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// classify upgrades a TransportError to a DeviceError when the errno
// has a known higher-level meaning for this operation. The original
// code is preserved either way.
func classify(err error, causes map[syscall.Errno]error) error {
	var te *TransportError
	if errors.As(err, &te) {
		if cause, ok := causes[te.Errno]; ok {
			return &DeviceError{Op: te.Op, Cause: cause, Errno: te.Errno}
		}
	}
	return err
}

func putPath(op string, dst []byte, path string) error {
	if len(path) >= devproto.MAX_PATH {
		return fmt.Errorf("%s: path exceeds %d bytes: %w",
			op, devproto.MAX_PATH-1, ErrInvalidConfig)
	}
	devproto.PutString(dst, path)
	return nil
}

// GetVersion returns the loaded driver's version.
func (c *Client) GetVersion() (Version, error) {
	var rec devproto.Version
	if err := c.call("get version", devproto.ReqGetVersion, unsafe.Pointer(&rec)); err != nil {
		return Version{}, err
	}
	return Version{Major: rec.Major, Minor: rec.Minor, Patch: rec.Patch}, nil
}

// GetStatus returns a snapshot of the current session.
func (c *Client) GetStatus() (SessionStatus, error) {
	var rec devproto.Status
	if err := c.call("get status", devproto.ReqGetStatus, unsafe.Pointer(&rec)); err != nil {
		return SessionStatus{}, err
	}
	return SessionStatus{
		State:        SessionState(rec.State),
		CPUUsage:     float64(rec.CPUUsage) / 100,
		MemoryUsed:   rec.MemoryUsed(),
		Uptime:       time.Duration(rec.UptimeNS()),
		DiskActivity: rec.DiskActivity,
		RxPackets:    rec.NetworkRxPackets,
		TxPackets:    rec.NetworkTxPackets,
	}, nil
}

// StartSession boots the guest with the given configuration. Starting
// while a session is already running reports [ErrSessionConflict].
func (c *Client) StartSession(cfg SessionConfig) error {
	const op = "start session"
	if cfg.MemoryMB < 1 || cfg.MemoryMB > 256 {
		return fmt.Errorf("%s: memory %d MB outside 1-256: %w",
			op, cfg.MemoryMB, ErrInvalidConfig)
	}

	var rec devproto.SessionConfig
	rec.MemoryMB = cfg.MemoryMB
	rec.Flags = uint32(cfg.Flags)
	if err := putPath(op, rec.PrimaryDisk[:], cfg.PrimaryDisk); err != nil {
		return err
	}
	if err := putPath(op, rec.SecondaryDisk[:], cfg.SecondaryDisk); err != nil {
		return err
	}
	if err := putPath(op, rec.BIOSPath[:], cfg.BIOSPath); err != nil {
		return err
	}

	err := c.call(op, devproto.ReqStartSession, unsafe.Pointer(&rec))
	return classify(err, map[syscall.Errno]error{
		syscall.EBUSY:  ErrSessionConflict,
		syscall.EINVAL: ErrInvalidConfig,
	})
}

// StopSession shuts the guest down. Stopping a session that is not
// running reports [ErrSessionConflict], not a no-op.
func (c *Client) StopSession() error {
	err := c.call("stop session", devproto.ReqStopSession, nil)
	return classify(err, map[syscall.Errno]error{
		syscall.EINVAL: ErrSessionConflict,
	})
}

// ResetSession warm-reboots the guest (Ctrl+Alt+Del at the hardware
// level). Resetting a non-running session reports [ErrSessionConflict].
func (c *Client) ResetSession() error {
	err := c.call("reset session", devproto.ReqResetSession, nil)
	return classify(err, map[syscall.Errno]error{
		syscall.EINVAL: ErrSessionConflict,
	})
}

// GetDisplay returns the guest's current video mode.
func (c *Client) GetDisplay() (DisplayInfo, error) {
	var rec devproto.DisplayInfo
	if err := c.call("get display", devproto.ReqGetDisplay, unsafe.Pointer(&rec)); err != nil {
		return DisplayInfo{}, err
	}
	return DisplayInfo{
		Width:      rec.Width,
		Height:     rec.Height,
		ColorDepth: rec.ColorDepth,
		Graphics:   rec.Mode == 1,
		TextCols:   rec.TextCols,
		TextRows:   rec.TextRows,
	}, nil
}

// SetDisplay configures host-side presentation.
func (c *Client) SetDisplay(cfg DisplayConfig) error {
	rec := devproto.DisplayConfig{
		ScaleMode:   uint32(cfg.ScaleMode),
		ScaleFactor: cfg.ScaleFactor,
		Flags:       uint32(cfg.Flags),
	}
	return c.call("set display", devproto.ReqSetDisplay, unsafe.Pointer(&rec))
}

// GetFramebuffer locates the guest framebuffer for mapping.
func (c *Client) GetFramebuffer() (FramebufferInfo, error) {
	var rec devproto.FramebufferInfo
	if err := c.call("get framebuffer", devproto.ReqGetFramebuffer, unsafe.Pointer(&rec)); err != nil {
		return FramebufferInfo{}, err
	}
	return FramebufferInfo{
		PhysAddr: rec.PhysAddr(),
		Size:     rec.Size(),
		Stride:   rec.Stride,
		Format:   PixelFormat(rec.Format),
	}, nil
}

// MountDisk attaches a hard-disk image to slot 0 (C:) or 1 (D:).
// Whether mounting over an occupied slot replaces or fails is the
// driver's policy; the client forwards and surfaces its verdict.
func (c *Client) MountDisk(slot uint32, path string, readonly bool) error {
	const op = "mount disk"
	var rec devproto.DiskMount
	rec.Slot = slot
	if readonly {
		rec.Flags = devproto.DISK_FLAG_READONLY
	}
	if err := putPath(op, rec.Path[:], path); err != nil {
		return err
	}
	return c.call(op, devproto.ReqMountDisk, unsafe.Pointer(&rec))
}

// UnmountDisk detaches the image in the given slot.
func (c *Client) UnmountDisk(slot uint32) error {
	rec := devproto.DiskSlot{Slot: slot}
	return c.call("unmount disk", devproto.ReqUnmountDisk, unsafe.Pointer(&rec))
}

// MountCDROM attaches an ISO image to the virtual optical drive. The
// path must exist; a missing file fails before any transport call.
func (c *Client) MountCDROM(path string) error {
	const op = "mount cdrom"
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%s: %s: %w", op, path, ErrInvalidConfig)
	}
	var rec devproto.PathRecord
	if err := putPath(op, rec.Path[:], path); err != nil {
		return err
	}
	return c.call(op, devproto.ReqMountCDROM, unsafe.Pointer(&rec))
}

// EjectCDROM detaches the mounted ISO, if any.
func (c *Client) EjectCDROM() error {
	return c.call("eject cdrom", devproto.ReqEjectCDROM, nil)
}

// MountFloppy attaches a floppy image to drive 0 (A:) or 1 (B:).
// The file must exist and be small enough to be a floppy image.
func (c *Client) MountFloppy(drive uint32, path string) error {
	const op = "mount floppy"
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", op, path, ErrInvalidConfig)
	}
	if fi.Size() > MaxFloppyImageSize {
		return fmt.Errorf("%s: %s is %d bytes, too large for a floppy image: %w",
			op, path, fi.Size(), ErrInvalidConfig)
	}
	var rec devproto.FloppyMount
	rec.Drive = drive
	if err := putPath(op, rec.Path[:], path); err != nil {
		return err
	}
	return c.call(op, devproto.ReqMountFloppy, unsafe.Pointer(&rec))
}

// EjectFloppy detaches the image in the given drive.
func (c *Client) EjectFloppy(drive uint32) error {
	rec := devproto.FloppySlot{Drive: drive}
	return c.call("eject floppy", devproto.ReqEjectFloppy, unsafe.Pointer(&rec))
}

// SendKeyEvent injects one keyboard transition into the guest.
func (c *Client) SendKeyEvent(ev KeyEvent) error {
	rec := devproto.KeyEvent{Scancode: ev.Scancode, Flags: uint32(ev.Flags)}
	return c.call("keyboard event", devproto.ReqKeyboardEvent, unsafe.Pointer(&rec))
}

// SendMouseEvent injects one mouse movement into the guest.
func (c *Client) SendMouseEvent(ev MouseEvent) error {
	rec := devproto.MouseEvent{
		DX: ev.DX, DY: ev.DY, DZ: ev.DZ,
		Buttons: uint32(ev.Buttons),
	}
	return c.call("mouse event", devproto.ReqMouseEvent, unsafe.Pointer(&rec))
}

// SetClipboard pushes text to the guest clipboard, truncated to
// [MaxClipboardSize].
func (c *Client) SetClipboard(text string) error {
	var rec devproto.Clipboard
	n := len(text)
	if n > len(rec.Data) {
		n = len(rec.Data)
	}
	copy(rec.Data[:], text[:n])
	rec.Length = uint32(n)
	rec.Format = devproto.CLIPBOARD_FORMAT_TEXT
	return c.call("set clipboard", devproto.ReqSetClipboard, unsafe.Pointer(&rec))
}

// Clipboard pulls the guest clipboard contents. A reported length
// beyond the record's capacity is a protocol violation, never read
// past.
func (c *Client) Clipboard() (string, error) {
	const op = "get clipboard"
	var rec devproto.Clipboard
	if err := c.call(op, devproto.ReqGetClipboard, unsafe.Pointer(&rec)); err != nil {
		return "", err
	}
	if int(rec.Length) > len(rec.Data) {
		return "", fmt.Errorf("%s: length %d exceeds %d-byte buffer: %w",
			op, rec.Length, len(rec.Data), ErrProtocolViolation)
	}
	return string(rec.Data[:rec.Length]), nil
}

// AddDriveMapping redirects a guest drive letter (E: through Z:) to a
// host directory.
func (c *Client) AddDriveMapping(letter byte, path string, readonly bool) error {
	const op = "add drive mapping"
	if letter < 'E' || letter > 'Z' {
		return fmt.Errorf("%s: letter %q outside E-Z: %w", op, letter, ErrInvalidConfig)
	}
	var rec devproto.DriveMapping
	rec.Letter = letter
	if readonly {
		rec.Flags = devproto.DRIVE_FLAG_READONLY
	}
	if err := putPath(op, rec.Path[:], path); err != nil {
		return err
	}
	return c.call(op, devproto.ReqAddDriveMap, unsafe.Pointer(&rec))
}

// RemoveDriveMapping drops the redirection for a guest drive letter.
func (c *Client) RemoveDriveMapping(letter byte) error {
	const op = "remove drive mapping"
	if letter < 'E' || letter > 'Z' {
		return fmt.Errorf("%s: letter %q outside E-Z: %w", op, letter, ErrInvalidConfig)
	}
	rec := devproto.DriveLetter{Letter: letter}
	return c.call(op, devproto.ReqRemoveDriveMap, unsafe.Pointer(&rec))
}

// SetNetwork configures the emulated network adapter.
func (c *Client) SetNetwork(cfg NetworkConfig) error {
	const op = "set network"
	if len(cfg.Interface) >= len(devproto.NetworkConfig{}.Interface) {
		return fmt.Errorf("%s: interface name too long: %w", op, ErrInvalidConfig)
	}
	var rec devproto.NetworkConfig
	rec.Flags = uint32(cfg.Flags)
	devproto.PutString(rec.Interface[:], cfg.Interface)
	rec.MACAddress = cfg.MACAddress
	return c.call(op, devproto.ReqSetNetwork, unsafe.Pointer(&rec))
}

// Network returns adapter status and counters.
func (c *Client) Network() (NetworkStatus, error) {
	var rec devproto.NetworkStatus
	if err := c.call("get network", devproto.ReqGetNetwork, unsafe.Pointer(&rec)); err != nil {
		return NetworkStatus{}, err
	}
	return NetworkStatus{
		Flags:     NetworkFlags(rec.Flags),
		RxPackets: rec.RxPackets,
		TxPackets: rec.TxPackets,
		RxBytes:   rec.RxBytes(),
		TxBytes:   rec.TxBytes(),
	}, nil
}

// GetAudioFormat returns the guest's current sample format.
func (c *Client) GetAudioFormat() (AudioFormat, error) {
	var rec devproto.AudioFormat
	if err := c.call("get audio format", devproto.ReqGetAudioFormat, unsafe.Pointer(&rec)); err != nil {
		return AudioFormat{}, err
	}
	return AudioFormat{
		SampleRate:    rec.SampleRate,
		Flags:         AudioFormatFlags(rec.Format),
		Channels:      rec.Channels,
		BitsPerSample: rec.BitsPerSample,
	}, nil
}

// GetAudioStatus returns playback state and buffer occupancy.
func (c *Client) GetAudioStatus() (AudioStatus, error) {
	var rec devproto.AudioStatus
	if err := c.call("get audio status", devproto.ReqGetAudioStatus, unsafe.Pointer(&rec)); err != nil {
		return AudioStatus{}, err
	}
	return AudioStatus{
		Flags:           AudioStatusFlags(rec.Flags),
		SampleRate:      rec.SampleRate,
		Format:          AudioFormatFlags(rec.Format),
		BufferAvailable: rec.BufferAvailable,
		SamplesPlayed:   rec.SamplesPlayed(),
		Underruns:       rec.Underruns,
	}, nil
}

// GetAudioVolume returns current output volume.
func (c *Client) GetAudioVolume() (AudioVolume, error) {
	var rec devproto.AudioVolume
	if err := c.call("get audio volume", devproto.ReqGetAudioVolume, unsafe.Pointer(&rec)); err != nil {
		return AudioVolume{}, err
	}
	return AudioVolume{Left: rec.Left, Right: rec.Right, Muted: rec.Muted != 0}, nil
}

// SetAudioVolume sets per-channel output volume.
func (c *Client) SetAudioVolume(vol AudioVolume) error {
	rec := devproto.AudioVolume{Left: vol.Left, Right: vol.Right}
	if vol.Muted {
		rec.Muted = 1
	}
	return c.call("set audio volume", devproto.ReqSetAudioVolume, unsafe.Pointer(&rec))
}

// ReadAudio drains up to maxBytes of guest audio output, capped at
// one transfer's worth.
func (c *Client) ReadAudio(maxBytes int) ([]byte, error) {
	const op = "read audio"
	var rec devproto.AudioBuffer
	if maxBytes <= 0 || maxBytes > len(rec.Data) {
		maxBytes = len(rec.Data)
	}
	rec.Size = uint32(maxBytes)
	if err := c.call(op, devproto.ReqReadAudio, unsafe.Pointer(&rec)); err != nil {
		return nil, err
	}
	if int(rec.Size) > maxBytes {
		return nil, fmt.Errorf("%s: driver reported %d bytes for a %d-byte request: %w",
			op, rec.Size, maxBytes, ErrProtocolViolation)
	}
	out := make([]byte, rec.Size)
	copy(out, rec.Data[:rec.Size])
	return out, nil
}
