// SPDX-License-Identifier: Apache-2.0

package scsi

import "encoding/binary"

// InquirySize is the standard INQUIRY response size.
const InquirySize = 36

// InquiryData is the standard 36-byte INQUIRY response. The identity
// strings are space-padded to their exact field widths; firmware
// compares them byte-for-byte.
type InquiryData struct {
	Peripheral       uint8 // qualifier and device type
	RMB              uint8 // removable media bit
	Version          uint8
	ResponseFormat   uint8
	AdditionalLength uint8
	Flags            [3]byte
	Vendor           [8]byte
	Product          [16]byte
	Revision         [4]byte
}

// NewInquiry builds the response for the virtual CD-ROM drive.
func NewInquiry() InquiryData {
	d := InquiryData{
		Peripheral:       DeviceTypeCDROM,
		RMB:              0x80,
		Version:          0x02, // SCSI-2
		ResponseFormat:   0x02,
		AdditionalLength: InquirySize - 5,
	}
	padCopy(d.Vendor[:], "SUN")
	padCopy(d.Product[:], "Virtual CDROM")
	padCopy(d.Revision[:], "1.0")
	return d
}

// InquiryWithIdentity overrides the vendor/product/revision strings,
// truncating long inputs and space-padding short ones.
func InquiryWithIdentity(vendor, product, revision string) InquiryData {
	d := NewInquiry()
	padCopy(d.Vendor[:], vendor)
	padCopy(d.Product[:], product)
	padCopy(d.Revision[:], revision)
	return d
}

func padCopy(dst []byte, s string) {
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = ' '
	}
}

// Bytes serializes the record in wire order.
func (d InquiryData) Bytes() [InquirySize]byte {
	var buf [InquirySize]byte
	buf[0] = d.Peripheral
	buf[1] = d.RMB
	buf[2] = d.Version
	buf[3] = d.ResponseFormat
	buf[4] = d.AdditionalLength
	copy(buf[5:8], d.Flags[:])
	copy(buf[8:16], d.Vendor[:])
	copy(buf[16:32], d.Product[:])
	copy(buf[32:36], d.Revision[:])
	return buf
}

// ReadCapacitySize is the READ CAPACITY response size.
const ReadCapacitySize = 8

// ReadCapacity builds the 8-byte response: last valid LBA followed by
// block length, both big-endian.
func ReadCapacity(totalSectors, sectorSize uint32) [ReadCapacitySize]byte {
	var buf [ReadCapacitySize]byte
	lastLBA := uint32(0)
	if totalSectors > 0 {
		lastLBA = totalSectors - 1
	}
	binary.BigEndian.PutUint32(buf[0:4], lastLBA)
	binary.BigEndian.PutUint32(buf[4:8], sectorSize)
	return buf
}

// SimpleTOCSize is the response size for a single-track data disc TOC:
// 4-byte header plus two 8-byte track descriptors.
const SimpleTOCSize = 20

// SimpleTOC builds the READ TOC response for a single-track data disc:
// track 1 starting at LBA 0 and a lead-out at the total sector count.
// The header's data length excludes its own two bytes.
func SimpleTOC(totalSectors uint32) [SimpleTOCSize]byte {
	var buf [SimpleTOCSize]byte
	binary.BigEndian.PutUint16(buf[0:2], SimpleTOCSize-2)
	buf[2] = 1 // first track
	buf[3] = 1 // last track

	// Track 1: ADR=1 (Q sub-channel), control=4 (data track).
	buf[5] = 0x14
	buf[6] = 1
	binary.BigEndian.PutUint32(buf[8:12], 0)

	// Lead-out.
	buf[13] = 0x14
	buf[14] = 0xAA
	binary.BigEndian.PutUint32(buf[16:20], totalSectors)
	return buf
}
