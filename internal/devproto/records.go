// SPDX-License-Identifier: Apache-2.0

package devproto

import (
	"bytes"
	"fmt"
)

// Join64 reassembles a lo/hi split counter.
func Join64(lo, hi uint32) uint64 {
	return uint64(hi)<<32 | uint64(lo)
}

// Split64 produces the lo/hi pair for a 64-bit counter.
func Split64(v uint64) (lo, hi uint32) {
	return uint32(v), uint32(v >> 32)
}

// PutString copies s into a fixed buffer, truncating so that the final
// byte is always a NUL terminator.
func PutString(dst []byte, s string) {
	n := len(s)
	if n > len(dst)-1 {
		n = len(dst) - 1
	}
	copy(dst, s[:n])
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}

// FieldString reads a NUL-terminated string back out of a fixed buffer.
// A buffer with no NUL means the driver wrote past the record's capacity;
// that is a protocol violation, not a string.
func FieldString(b []byte) (string, error) {
	i := bytes.IndexByte(b, 0)
	if i < 0 {
		return "", fmt.Errorf("field of %d bytes is not NUL-terminated", len(b))
	}
	return string(b[:i]), nil
}

// Version is the driver version record (GET_VERSION).
type Version struct {
	Major uint32
	Minor uint32
	Patch uint32
}

// Status is the session status record (GET_STATUS).
type Status struct {
	State            uint32
	CPUUsage         uint32 // percent * 100 (0-10000)
	MemoryUsedLo     uint32
	MemoryUsedHi     uint32
	UptimeNSLo       uint32
	UptimeNSHi       uint32
	DiskActivity     uint32 // bitmap of active drives
	NetworkRxPackets uint32
	NetworkTxPackets uint32
	Pad              uint32 // pad to 8-byte alignment
}

func (s *Status) MemoryUsed() uint64 { return Join64(s.MemoryUsedLo, s.MemoryUsedHi) }
func (s *Status) UptimeNS() uint64   { return Join64(s.UptimeNSLo, s.UptimeNSHi) }

// SessionConfig is the START_SESSION argument.
type SessionConfig struct {
	MemoryMB      uint32
	Flags         uint32
	PrimaryDisk   [MAX_PATH]byte
	SecondaryDisk [MAX_PATH]byte
	BIOSPath      [MAX_PATH]byte
}

// DisplayInfo is the guest display state record (GET_DISPLAY).
type DisplayInfo struct {
	Width      uint32
	Height     uint32
	ColorDepth uint32 // 1, 2, 4, 8, 15, 16, 24, 32
	Mode       uint32 // 0=text, 1=graphics
	TextCols   uint32
	TextRows   uint32
}

// DisplayConfig is the host presentation record (SET_DISPLAY).
type DisplayConfig struct {
	ScaleMode   uint32 // 0=none, 1=fit, 2=integer
	ScaleFactor uint32
	Flags       uint32
}

// FramebufferInfo describes the guest framebuffer mapping
// (GET_FRAMEBUFFER).
type FramebufferInfo struct {
	PhysAddrLo uint32
	PhysAddrHi uint32
	SizeLo     uint32
	SizeHi     uint32
	Stride     uint32 // bytes per row
	Format     uint32 // PIXEL_FORMAT_*
}

func (f *FramebufferInfo) PhysAddr() uint64 { return Join64(f.PhysAddrLo, f.PhysAddrHi) }
func (f *FramebufferInfo) Size() uint64     { return Join64(f.SizeLo, f.SizeHi) }

// DiskMount is the MOUNT_DISK argument.
type DiskMount struct {
	Slot  uint32 // 0=primary, 1=secondary
	Flags uint32
	Path  [MAX_PATH]byte
}

// DiskSlot is the UNMOUNT_DISK argument.
type DiskSlot struct {
	Slot uint32
}

// PathRecord carries a bare path (MOUNT_CDROM).
type PathRecord struct {
	Path [MAX_PATH]byte
}

// FloppyMount is the MOUNT_FLOPPY argument.
type FloppyMount struct {
	Drive uint32 // 0=A, 1=B
	Flags uint32
	Path  [MAX_PATH]byte
}

// FloppySlot is the EJECT_FLOPPY argument.
type FloppySlot struct {
	Drive uint32
}

// KeyEvent is the KEYBOARD_EVENT argument (XT scancodes).
type KeyEvent struct {
	Scancode uint32
	Flags    uint32
}

// MouseEvent is the MOUSE_EVENT argument.
type MouseEvent struct {
	DX      int32
	DY      int32
	DZ      int32 // wheel
	Buttons uint32
}

// Clipboard is the SET_CLIPBOARD / GET_CLIPBOARD payload.
type Clipboard struct {
	Length uint32
	Format uint32
	Data   [MAX_CLIPBOARD]byte
}

// DriveMapping is the ADD_DRIVE_MAP argument.
type DriveMapping struct {
	Letter   uint8 // 'E' through 'Z'
	Flags    uint8
	Reserved uint16
	Path     [MAX_PATH]byte
}

// DriveLetter is the REMOVE_DRIVE_MAP argument.
type DriveLetter struct {
	Letter uint8
	Pad    [3]byte
}

// NetworkConfig is the SET_NETWORK argument.
type NetworkConfig struct {
	Flags      uint32
	Interface  [32]byte
	MACAddress [6]byte
	Reserved   uint16
}

// NetworkStatus is the GET_NETWORK result. The byte counters are lo/hi
// split like every other 64-bit field so the record is the same width
// on 32-bit and 64-bit kernels.
type NetworkStatus struct {
	Flags     uint32
	RxPackets uint32
	TxPackets uint32
	Pad       uint32
	RxBytesLo uint32
	RxBytesHi uint32
	TxBytesLo uint32
	TxBytesHi uint32
}

func (n *NetworkStatus) RxBytes() uint64 { return Join64(n.RxBytesLo, n.RxBytesHi) }
func (n *NetworkStatus) TxBytes() uint64 { return Join64(n.TxBytesLo, n.TxBytesHi) }

// AudioFormat is the GET_AUDIO_FORMAT result.
type AudioFormat struct {
	SampleRate    uint32 // Hz
	Format        uint32 // AUDIO_FMT_*
	Channels      uint32
	BitsPerSample uint32 // 8 or 16
}

func (a *AudioFormat) BytesPerSample() uint32 {
	return (a.BitsPerSample / 8) * a.Channels
}

func (a *AudioFormat) BytesPerSecond() uint32 {
	return a.SampleRate * a.BytesPerSample()
}

// AudioVolume is the SET/GET_AUDIO_VOLUME record.
type AudioVolume struct {
	Left     uint8 // 0-255
	Right    uint8 // 0-255
	Muted    uint8
	Reserved uint8
}

// AudioStatus is the GET_AUDIO_STATUS result.
type AudioStatus struct {
	Flags           uint32 // AUDIO_STATUS_*
	SampleRate      uint32
	Format          uint32
	BufferAvailable uint32 // bytes ready to read
	SamplesPlayedLo uint32
	SamplesPlayedHi uint32
	Underruns       uint32
	Reserved        uint32
}

func (a *AudioStatus) SamplesPlayed() uint64 {
	return Join64(a.SamplesPlayedLo, a.SamplesPlayedHi)
}

// AudioBuffer is the READ_AUDIO argument. Size is the requested byte
// count going in and the transferred byte count coming back.
type AudioBuffer struct {
	Size     uint32
	Reserved uint32
	Data     [MAX_AUDIO_BUFFER]byte
}
