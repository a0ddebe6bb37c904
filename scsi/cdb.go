// SPDX-License-Identifier: Apache-2.0

package scsi

import "encoding/binary"

// CDB field extraction. Offsets are opcode-layout specific and
// big-endian per SCSI-2; guest firmware builds these bit-for-bit, so
// the offsets here are normative. Short CDBs extract as zero rather
// than panicking: the dispatcher rejects them before the value is
// trusted.

// Read10LBA extracts the logical block address from a 10-byte CDB
// (bytes 2-5).
func Read10LBA(cdb []byte) uint32 {
	if len(cdb) < 6 {
		return 0
	}
	return binary.BigEndian.Uint32(cdb[2:6])
}

// Read10Length extracts the transfer length in blocks from a 10-byte
// CDB (bytes 7-8).
func Read10Length(cdb []byte) uint16 {
	if len(cdb) < 9 {
		return 0
	}
	return binary.BigEndian.Uint16(cdb[7:9])
}

// Read12Length extracts the transfer length in blocks from a 12-byte
// CDB (bytes 6-9).
func Read12Length(cdb []byte) uint32 {
	if len(cdb) < 10 {
		return 0
	}
	return binary.BigEndian.Uint32(cdb[6:10])
}

// AllocLength extracts the single-byte allocation length used by
// INQUIRY, REQUEST SENSE and MODE SENSE(6) (byte 4).
func AllocLength(cdb []byte) uint8 {
	if len(cdb) < 5 {
		return 0
	}
	return cdb[4]
}

// AllocLength16 extracts the two-byte big-endian allocation length
// used by 10-byte CDBs (bytes 7-8).
func AllocLength16(cdb []byte) uint16 {
	if len(cdb) < 9 {
		return 0
	}
	return binary.BigEndian.Uint16(cdb[7:9])
}

// ModeSensePageCode extracts the page code from a MODE SENSE CDB
// (byte 2, low 6 bits).
func ModeSensePageCode(cdb []byte) uint8 {
	if len(cdb) < 3 {
		return 0
	}
	return cdb[2] & 0x3F
}
