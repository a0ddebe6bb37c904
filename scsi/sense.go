// SPDX-License-Identifier: Apache-2.0

package scsi

// SenseData is the 18-byte fixed-format sense record (response code
// 0x70) produced whenever a command cannot complete as GOOD.
type SenseData struct {
	ResponseCode     uint8
	Obsolete         uint8
	Key              uint8 // sense key, flags in the high nibble
	Information      [4]byte
	AdditionalLength uint8 // always 10 for fixed format
	CommandSpecific  [4]byte
	ASC              uint8
	ASCQ             uint8
	FRUC             uint8
	KeySpecific      [3]byte
}

// SenseSize is the serialized size of fixed-format sense data.
const SenseSize = 18

// NewSense builds a current-error sense record for the given triple.
func NewSense(key, asc, ascq uint8) SenseData {
	return SenseData{
		ResponseCode:     0x70,
		Key:              key,
		AdditionalLength: 10,
		ASC:              asc,
		ASCQ:             ascq,
	}
}

// NoSense is the "no error" record: key 0, ASC/ASCQ 0.
func NoSense() SenseData {
	return NewSense(SenseNone, ASCNoAdditionalSense, ASCQNone)
}

// MediumNotPresent reports NOT READY for a drive with no mounted
// image.
func MediumNotPresent() SenseData {
	return NewSense(SenseNotReady, ASCMediumNotPresent, ASCQTrayClosed)
}

// MediumChanged is the one-shot UNIT ATTENTION raised after media is
// inserted or removed.
func MediumChanged() SenseData {
	return NewSense(SenseUnitAttention, ASCMediumMayHaveChanged, ASCQNone)
}

// InvalidCommand reports an opcode the drive does not implement.
func InvalidCommand() SenseData {
	return NewSense(SenseIllegalRequest, ASCInvalidCommand, ASCQNone)
}

// InvalidField reports a CDB whose opcode is known but whose fields
// request something unsupported.
func InvalidField() SenseData {
	return NewSense(SenseIllegalRequest, ASCInvalidFieldInCDB, ASCQNone)
}

// LBAOutOfRange reports a read or seek past the end of the medium.
func LBAOutOfRange() SenseData {
	return NewSense(SenseIllegalRequest, ASCLBAOutOfRange, ASCQNone)
}

// ReadError reports an unrecovered error reading the backing image.
func ReadError() SenseData {
	return NewSense(SenseMediumError, ASCUnrecoveredReadError, ASCQNone)
}

// Bytes serializes the record in wire order.
func (s SenseData) Bytes() [SenseSize]byte {
	var buf [SenseSize]byte
	buf[0] = s.ResponseCode
	buf[1] = s.Obsolete
	buf[2] = s.Key
	copy(buf[3:7], s.Information[:])
	buf[7] = s.AdditionalLength
	copy(buf[8:12], s.CommandSpecific[:])
	buf[12] = s.ASC
	buf[13] = s.ASCQ
	buf[14] = s.FRUC
	copy(buf[15:18], s.KeySpecific[:])
	return buf
}
