// SPDX-License-Identifier: Apache-2.0

// Package scsi models the SCSI-2/MMC-2 command surface of a virtual
// CD-ROM drive backed by an ISO image file.
//
// The package has two layers. The lower layer is vocabulary: opcodes,
// status codes, the sense key/ASC/ASCQ taxonomy, and builders for the
// fixed response records (INQUIRY, READ CAPACITY, READ TOC) whose
// byte layouts guest firmware parses bit-for-bit. The upper layer is
// [Drive], a host-side dispatcher that evaluates CDBs against a
// mounted image and produces standards-correct results, including
// sense data for every failure path.
package scsi

// Command opcodes (SPC-2 / MMC-2) a CD-ROM device is expected to
// answer.
const (
	CmdTestUnitReady      uint8 = 0x00
	CmdRequestSense       uint8 = 0x03
	CmdInquiry            uint8 = 0x12
	CmdModeSense6         uint8 = 0x1A
	CmdPreventAllowRemove uint8 = 0x1E
	CmdReadCapacity       uint8 = 0x25
	CmdRead10             uint8 = 0x28
	CmdSeek10             uint8 = 0x2B
	CmdReadTOC            uint8 = 0x43
	CmdGetConfiguration   uint8 = 0x46
	CmdGetEventStatus     uint8 = 0x4A
	CmdReadDiscInfo       uint8 = 0x51
	CmdModeSense10        uint8 = 0x5A
	CmdReportKey          uint8 = 0xA4
	CmdRead12             uint8 = 0xA8
	CmdMechanismStatus    uint8 = 0xBD
	CmdReadCD             uint8 = 0xBE
)

// Status codes returned with a command response.
const (
	StatusGood                uint8 = 0x00
	StatusCheckCondition      uint8 = 0x02
	StatusConditionMet        uint8 = 0x04
	StatusBusy                uint8 = 0x08
	StatusReservationConflict uint8 = 0x18
	StatusTaskSetFull         uint8 = 0x28
	StatusACAActive           uint8 = 0x30
	StatusTaskAborted         uint8 = 0x40
)

// Sense keys: the error class reported in fixed-format sense data.
const (
	SenseNone           uint8 = 0x00
	SenseRecoveredError uint8 = 0x01
	SenseNotReady       uint8 = 0x02
	SenseMediumError    uint8 = 0x03
	SenseHardwareError  uint8 = 0x04
	SenseIllegalRequest uint8 = 0x05
	SenseUnitAttention  uint8 = 0x06
	SenseDataProtect    uint8 = 0x07
	SenseBlankCheck     uint8 = 0x08
	SenseAbortedCommand uint8 = 0x0B
)

// Additional sense codes.
const (
	ASCNoAdditionalSense    uint8 = 0x00
	ASCLUNNotReady          uint8 = 0x04
	ASCUnrecoveredReadError uint8 = 0x11
	ASCInvalidCommand       uint8 = 0x20
	ASCLBAOutOfRange        uint8 = 0x21
	ASCInvalidFieldInCDB    uint8 = 0x24
	ASCMediumMayHaveChanged uint8 = 0x28
	ASCPowerOnReset         uint8 = 0x29
	ASCParametersChanged    uint8 = 0x2A
	ASCMediumNotPresent     uint8 = 0x3A
)

// Additional sense code qualifiers.
const (
	ASCQNone             uint8 = 0x00
	ASCQBecomingReady    uint8 = 0x01
	ASCQTrayClosed       uint8 = 0x01
	ASCQTrayOpen         uint8 = 0x02
	ASCQPowerOnOccurred  uint8 = 0x00
	ASCQBusResetOccurred uint8 = 0x02
)

// Peripheral device types for INQUIRY byte 0.
const (
	DeviceTypeDisk    uint8 = 0x00
	DeviceTypeTape    uint8 = 0x01
	DeviceTypeCDROM   uint8 = 0x05
	DeviceTypeOptical uint8 = 0x07
	DeviceTypeChanger uint8 = 0x08
)

// Mode page codes for MODE SENSE.
const (
	PageErrorRecovery      uint8 = 0x01
	PageCDDeviceParameters uint8 = 0x0D
	PageCDAudioControl     uint8 = 0x0E
	PagePowerCondition     uint8 = 0x1A
	PageCapabilities       uint8 = 0x2A
	PageAll                uint8 = 0x3F
)

// SectorSize is the Mode-1 data sector size; SectorSizeRaw includes
// sync, header and EDC/ECC.
const (
	SectorSize    uint32 = 2048
	SectorSizeRaw uint32 = 2352
)
