// SPDX-License-Identifier: Apache-2.0

package sunpci

import (
	"time"

	"github.com/sunpci/go-sunpci/internal/devproto"
)

// SessionState is the coarse lifecycle state the driver reports.
type SessionState uint32

const (
	SessionStopped  SessionState = SessionState(devproto.STATE_STOPPED)
	SessionStarting SessionState = SessionState(devproto.STATE_STARTING)
	SessionRunning  SessionState = SessionState(devproto.STATE_RUNNING)
	SessionStopping SessionState = SessionState(devproto.STATE_STOPPING)
	SessionFailed   SessionState = SessionState(devproto.STATE_ERROR)
)

func (s SessionState) String() string {
	switch s {
	case SessionStopped:
		return "stopped"
	case SessionStarting:
		return "starting"
	case SessionRunning:
		return "running"
	case SessionStopping:
		return "stopping"
	case SessionFailed:
		return "error"
	}
	return "unknown"
}

// SessionFlags select optional session features. Each bit is
// independently settable.
type SessionFlags uint32

const (
	SessionFlagNetworkEnabled   SessionFlags = SessionFlags(devproto.FLAG_NETWORK_ENABLED)
	SessionFlagClipboardEnabled SessionFlags = SessionFlags(devproto.FLAG_CLIPBOARD_ENABLED)
	SessionFlagClipboardToHost  SessionFlags = SessionFlags(devproto.FLAG_CLIPBOARD_TO_HOST)
	SessionFlagClipboardToGuest SessionFlags = SessionFlags(devproto.FLAG_CLIPBOARD_TO_GUEST)
)

// Version identifies the loaded driver.
type Version struct {
	Major uint32
	Minor uint32
	Patch uint32
}

// SessionStatus is a point-in-time snapshot of the guest session.
type SessionStatus struct {
	State        SessionState
	CPUUsage     float64 // percent
	MemoryUsed   uint64  // bytes
	Uptime       time.Duration
	DiskActivity uint32 // bitmap of drives with I/O in flight
	RxPackets    uint32
	TxPackets    uint32
}

// SessionConfig describes a session to start. Paths longer than the
// protocol's 255-byte limit are rejected before any transport call.
type SessionConfig struct {
	MemoryMB      uint32
	Flags         SessionFlags
	PrimaryDisk   string
	SecondaryDisk string
	BIOSPath      string
}

// DisplayInfo is the guest's current video state.
type DisplayInfo struct {
	Width      uint32
	Height     uint32
	ColorDepth uint32
	Graphics   bool
	TextCols   uint32
	TextRows   uint32
}

// ScaleMode selects how the guest display is presented on the host.
type ScaleMode uint32

const (
	ScaleNone ScaleMode = iota
	ScaleFit
	ScaleInteger
)

// DisplayFlags adjust host-side presentation.
type DisplayFlags uint32

const (
	DisplayFlagMaintainAspect DisplayFlags = DisplayFlags(devproto.DISPLAY_FLAG_MAINTAIN_ASPECT)
	DisplayFlagScanlines      DisplayFlags = DisplayFlags(devproto.DISPLAY_FLAG_SCANLINES)
)

// DisplayConfig is the host presentation configuration.
type DisplayConfig struct {
	ScaleMode   ScaleMode
	ScaleFactor uint32
	Flags       DisplayFlags
}

// PixelFormat describes the guest framebuffer's pixel encoding.
type PixelFormat uint32

const (
	PixelFormatIndexed8 PixelFormat = PixelFormat(devproto.PIXEL_FORMAT_INDEXED8)
	PixelFormatRGB565   PixelFormat = PixelFormat(devproto.PIXEL_FORMAT_RGB565)
	PixelFormatRGB888   PixelFormat = PixelFormat(devproto.PIXEL_FORMAT_RGB888)
	PixelFormatXRGB8888 PixelFormat = PixelFormat(devproto.PIXEL_FORMAT_XRGB8888)
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatIndexed8:
		return "indexed8"
	case PixelFormatRGB565:
		return "rgb565"
	case PixelFormatRGB888:
		return "rgb888"
	case PixelFormatXRGB8888:
		return "xrgb8888"
	}
	return "unknown"
}

// FramebufferInfo locates the guest framebuffer for mmap by a renderer.
// Exactly one active mapping per process should exist; the session
// owner passes this handle to the renderer explicitly.
type FramebufferInfo struct {
	PhysAddr uint64
	Size     uint64
	Stride   uint32
	Format   PixelFormat
}

// KeyFlags qualify a keyboard event.
type KeyFlags uint32

const (
	KeyFlagPressed  KeyFlags = KeyFlags(devproto.KEY_FLAG_PRESSED)
	KeyFlagExtended KeyFlags = KeyFlags(devproto.KEY_FLAG_EXTENDED)
)

// KeyEvent is one XT-scancode keyboard transition.
type KeyEvent struct {
	Scancode uint32
	Flags    KeyFlags
}

// MouseButtons is the pressed-button bitmap.
type MouseButtons uint32

const (
	MouseButtonLeft   MouseButtons = MouseButtons(devproto.MOUSE_BUTTON_LEFT)
	MouseButtonRight  MouseButtons = MouseButtons(devproto.MOUSE_BUTTON_RIGHT)
	MouseButtonMiddle MouseButtons = MouseButtons(devproto.MOUSE_BUTTON_MIDDLE)
)

// MouseEvent is one relative mouse movement plus button state.
type MouseEvent struct {
	DX, DY, DZ int32
	Buttons    MouseButtons
}

// NetworkFlags configure the emulated adapter.
type NetworkFlags uint32

const (
	NetworkFlagEnabled     NetworkFlags = NetworkFlags(devproto.NET_FLAG_ENABLED)
	NetworkFlagPromiscuous NetworkFlags = NetworkFlags(devproto.NET_FLAG_PROMISCUOUS)
	NetworkFlagLinkUp      NetworkFlags = NetworkFlags(devproto.NET_FLAG_LINK_UP)
)

// NetworkConfig binds the emulated adapter to a host interface.
type NetworkConfig struct {
	Flags      NetworkFlags
	Interface  string
	MACAddress [6]byte
}

// NetworkStatus reports adapter counters.
type NetworkStatus struct {
	Flags     NetworkFlags
	RxPackets uint32
	TxPackets uint32
	RxBytes   uint64
	TxBytes   uint64
}

// AudioFormatFlags describe the sample encoding.
type AudioFormatFlags uint32

const (
	AudioFormat16Bit  AudioFormatFlags = AudioFormatFlags(devproto.AUDIO_FMT_16BIT)
	AudioFormatStereo AudioFormatFlags = AudioFormatFlags(devproto.AUDIO_FMT_STEREO)
	AudioFormatSigned AudioFormatFlags = AudioFormatFlags(devproto.AUDIO_FMT_SIGNED)
)

// AudioFormat is the guest's current sample format.
type AudioFormat struct {
	SampleRate    uint32
	Flags         AudioFormatFlags
	Channels      uint32
	BitsPerSample uint32
}

// BytesPerSecond is the playback data rate for this format.
func (a AudioFormat) BytesPerSecond() uint32 {
	return a.SampleRate * (a.BitsPerSample / 8) * a.Channels
}

// AudioVolume is per-channel output volume.
type AudioVolume struct {
	Left  uint8
	Right uint8
	Muted bool
}

// AudioStatusFlags report audio subsystem state.
type AudioStatusFlags uint32

const (
	AudioStatusPlaying   AudioStatusFlags = AudioStatusFlags(devproto.AUDIO_STATUS_PLAYING)
	AudioStatusAvailable AudioStatusFlags = AudioStatusFlags(devproto.AUDIO_STATUS_AVAILABLE)
	AudioStatusMuted     AudioStatusFlags = AudioStatusFlags(devproto.AUDIO_STATUS_MUTED)
)

// AudioStatus reports playback progress and buffer occupancy.
type AudioStatus struct {
	Flags           AudioStatusFlags
	SampleRate      uint32
	Format          AudioFormatFlags
	BufferAvailable uint32
	SamplesPlayed   uint64
	Underruns       uint32
}

func (a AudioStatus) Playing() bool   { return a.Flags&AudioStatusPlaying != 0 }
func (a AudioStatus) Available() bool { return a.Flags&AudioStatusAvailable != 0 }
func (a AudioStatus) Muted() bool     { return a.Flags&AudioStatusMuted != 0 }
