// SPDX-License-Identifier: Apache-2.0

// Package devproto mirrors the sunpci kernel driver's ioctl interface:
// command numbers, request encodings, and the fixed-layout records that
// cross the host/driver boundary. Record layouts must match the driver
// byte for byte on both 32-bit and 64-bit builds, which is why every
// 64-bit counter is carried as a lo/hi pair of 32-bit fields.
package devproto

import "unsafe"

// IOC_MAGIC selects the sunpci ioctl namespace ('S').
const IOC_MAGIC = 'S'

const (
	// MAX_PATH is the capacity of every fixed path buffer, including
	// the terminating NUL.
	MAX_PATH = 256

	// MAX_CLIPBOARD is the clipboard payload capacity. It must fit in
	// a single ioctl argument (~8KB ceiling).
	MAX_CLIPBOARD = 4096

	// MAX_AUDIO_BUFFER is the most audio data one READ_AUDIO call
	// can transfer.
	MAX_AUDIO_BUFFER = 16384

	// MAX_DRIVE_MAPS bounds filesystem redirection mappings (E: to Z:).
	MAX_DRIVE_MAPS = 24
)

// Command numbers, partitioned by subsystem with gaps for growth.
const (
	CMD_GET_VERSION   uint8 = 0
	CMD_GET_STATUS    uint8 = 1
	CMD_START_SESSION uint8 = 2
	CMD_STOP_SESSION  uint8 = 3
	CMD_RESET_SESSION uint8 = 4

	CMD_GET_DISPLAY     uint8 = 10
	CMD_SET_DISPLAY     uint8 = 11
	CMD_GET_FRAMEBUFFER uint8 = 12

	CMD_MOUNT_DISK   uint8 = 20
	CMD_UNMOUNT_DISK uint8 = 21
	CMD_MOUNT_CDROM  uint8 = 22
	CMD_EJECT_CDROM  uint8 = 23
	CMD_MOUNT_FLOPPY uint8 = 24
	CMD_EJECT_FLOPPY uint8 = 25

	CMD_KEYBOARD_EVENT uint8 = 30
	CMD_MOUSE_EVENT    uint8 = 31

	CMD_SET_CLIPBOARD uint8 = 40
	CMD_GET_CLIPBOARD uint8 = 41

	CMD_ADD_DRIVE_MAP    uint8 = 50
	CMD_REMOVE_DRIVE_MAP uint8 = 51

	CMD_SET_NETWORK uint8 = 60
	CMD_GET_NETWORK uint8 = 61

	CMD_GET_AUDIO_FORMAT uint8 = 70
	CMD_SET_AUDIO_VOLUME uint8 = 71
	CMD_GET_AUDIO_VOLUME uint8 = 72
	CMD_GET_AUDIO_STATUS uint8 = 73
	CMD_READ_AUDIO       uint8 = 74
)

// Session states reported in Status.State.
const (
	STATE_STOPPED  uint32 = 0
	STATE_STARTING uint32 = 1
	STATE_RUNNING  uint32 = 2
	STATE_STOPPING uint32 = 3
	STATE_ERROR    uint32 = 4
)

// Session configuration flag bits.
const (
	FLAG_NETWORK_ENABLED   uint32 = 1 << 0
	FLAG_CLIPBOARD_ENABLED uint32 = 1 << 1
	FLAG_CLIPBOARD_TO_HOST uint32 = 1 << 2
	FLAG_CLIPBOARD_TO_GUEST uint32 = 1 << 3
)

// Display configuration flag bits.
const (
	DISPLAY_FLAG_MAINTAIN_ASPECT uint32 = 1 << 0
	DISPLAY_FLAG_SCANLINES       uint32 = 1 << 1
)

// Framebuffer pixel formats.
const (
	PIXEL_FORMAT_INDEXED8 uint32 = 0
	PIXEL_FORMAT_RGB565   uint32 = 1
	PIXEL_FORMAT_RGB888   uint32 = 2
	PIXEL_FORMAT_XRGB8888 uint32 = 3
)

// Disk mount flag bits.
const (
	DISK_FLAG_READONLY uint32 = 1 << 0
	DISK_FLAG_CREATE   uint32 = 1 << 1
)

// Keyboard event flag bits.
const (
	KEY_FLAG_PRESSED  uint32 = 1 << 0
	KEY_FLAG_EXTENDED uint32 = 1 << 1
)

// Mouse button bits.
const (
	MOUSE_BUTTON_LEFT   uint32 = 1 << 0
	MOUSE_BUTTON_RIGHT  uint32 = 1 << 1
	MOUSE_BUTTON_MIDDLE uint32 = 1 << 2
)

// Clipboard payload formats.
const (
	CLIPBOARD_FORMAT_TEXT    uint32 = 0
	CLIPBOARD_FORMAT_UNICODE uint32 = 1
)

// Drive mapping flag bits.
const (
	DRIVE_FLAG_READONLY uint8 = 1 << 0
	DRIVE_FLAG_HIDDEN   uint8 = 1 << 1
)

// Network flag bits.
const (
	NET_FLAG_ENABLED     uint32 = 1 << 0
	NET_FLAG_PROMISCUOUS uint32 = 1 << 1
	NET_FLAG_LINK_UP     uint32 = 1 << 2
)

// Audio sample format flag bits.
const (
	AUDIO_FMT_16BIT  uint32 = 1 << 0
	AUDIO_FMT_STEREO uint32 = 1 << 1
	AUDIO_FMT_SIGNED uint32 = 1 << 2
)

// Audio status flag bits.
const (
	AUDIO_STATUS_PLAYING   uint32 = 1 << 0
	AUDIO_STATUS_AVAILABLE uint32 = 1 << 1
	AUDIO_STATUS_MUTED     uint32 = 1 << 2
)

// Linux ioctl request encoding: nr in bits 0-7, type in 8-15, argument
// size in 16-29, direction in 30-31.
const (
	iocNrBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNrShift   = 0
	iocTypeShift = iocNrShift + iocNrBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocNone  = 0
	iocWrite = 1
	iocRead  = 2
)

func ioc(dir, nr uint8, size uintptr) uint32 {
	return uint32(dir)<<iocDirShift |
		uint32(IOC_MAGIC)<<iocTypeShift |
		uint32(size)<<iocSizeShift |
		uint32(nr)<<iocNrShift
}

// IO encodes an argumentless request, IOR/IOW/IOWR a read, write, or
// bidirectional request of the given argument size.
func IO(nr uint8) uint32                 { return ioc(iocNone, nr, 0) }
func IOR(nr uint8, size uintptr) uint32  { return ioc(iocRead, nr, size) }
func IOW(nr uint8, size uintptr) uint32  { return ioc(iocWrite, nr, size) }
func IOWR(nr uint8, size uintptr) uint32 { return ioc(iocRead|iocWrite, nr, size) }

// Request numbers as the driver's ioctl switch expects them.
var (
	ReqGetVersion   = IOR(CMD_GET_VERSION, unsafe.Sizeof(Version{}))
	ReqGetStatus    = IOR(CMD_GET_STATUS, unsafe.Sizeof(Status{}))
	ReqStartSession = IOW(CMD_START_SESSION, unsafe.Sizeof(SessionConfig{}))
	ReqStopSession  = IO(CMD_STOP_SESSION)
	ReqResetSession = IO(CMD_RESET_SESSION)

	ReqGetDisplay     = IOR(CMD_GET_DISPLAY, unsafe.Sizeof(DisplayInfo{}))
	ReqSetDisplay     = IOW(CMD_SET_DISPLAY, unsafe.Sizeof(DisplayConfig{}))
	ReqGetFramebuffer = IOR(CMD_GET_FRAMEBUFFER, unsafe.Sizeof(FramebufferInfo{}))

	ReqMountDisk   = IOW(CMD_MOUNT_DISK, unsafe.Sizeof(DiskMount{}))
	ReqUnmountDisk = IOW(CMD_UNMOUNT_DISK, unsafe.Sizeof(DiskSlot{}))
	ReqMountCDROM  = IOW(CMD_MOUNT_CDROM, unsafe.Sizeof(PathRecord{}))
	ReqEjectCDROM  = IO(CMD_EJECT_CDROM)
	ReqMountFloppy = IOW(CMD_MOUNT_FLOPPY, unsafe.Sizeof(FloppyMount{}))
	ReqEjectFloppy = IOW(CMD_EJECT_FLOPPY, unsafe.Sizeof(FloppySlot{}))

	ReqKeyboardEvent = IOW(CMD_KEYBOARD_EVENT, unsafe.Sizeof(KeyEvent{}))
	ReqMouseEvent    = IOW(CMD_MOUSE_EVENT, unsafe.Sizeof(MouseEvent{}))

	ReqSetClipboard = IOW(CMD_SET_CLIPBOARD, unsafe.Sizeof(Clipboard{}))
	ReqGetClipboard = IOR(CMD_GET_CLIPBOARD, unsafe.Sizeof(Clipboard{}))

	ReqAddDriveMap    = IOW(CMD_ADD_DRIVE_MAP, unsafe.Sizeof(DriveMapping{}))
	ReqRemoveDriveMap = IOW(CMD_REMOVE_DRIVE_MAP, unsafe.Sizeof(DriveLetter{}))

	ReqSetNetwork = IOW(CMD_SET_NETWORK, unsafe.Sizeof(NetworkConfig{}))
	ReqGetNetwork = IOR(CMD_GET_NETWORK, unsafe.Sizeof(NetworkStatus{}))

	ReqGetAudioFormat = IOR(CMD_GET_AUDIO_FORMAT, unsafe.Sizeof(AudioFormat{}))
	ReqSetAudioVolume = IOW(CMD_SET_AUDIO_VOLUME, unsafe.Sizeof(AudioVolume{}))
	ReqGetAudioVolume = IOR(CMD_GET_AUDIO_VOLUME, unsafe.Sizeof(AudioVolume{}))
	ReqGetAudioStatus = IOR(CMD_GET_AUDIO_STATUS, unsafe.Sizeof(AudioStatus{}))
	ReqReadAudio      = IOWR(CMD_READ_AUDIO, unsafe.Sizeof(AudioBuffer{}))
)
