// SPDX-License-Identifier: Apache-2.0

package scsi

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRead10CDBVector(t *testing.T) {
	cdb := []byte{0x28, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00}
	if got := Read10LBA(cdb); got != 0x00010000 {
		t.Errorf("Read10LBA = %#x, want 0x00010000", got)
	}
	if got := Read10Length(cdb); got != 0x0010 {
		t.Errorf("Read10Length = %#x, want 0x0010", got)
	}
}

func TestCDBExtractionShortInput(t *testing.T) {
	for _, cdb := range [][]byte{nil, {0x28}, {0x28, 0, 0, 0}} {
		if got := Read10LBA(cdb); got != 0 {
			t.Errorf("Read10LBA(%d bytes) = %d, want 0", len(cdb), got)
		}
		if got := Read10Length(cdb); got != 0 {
			t.Errorf("Read10Length(%d bytes) = %d, want 0", len(cdb), got)
		}
		if got := AllocLength(cdb); got != 0 {
			t.Errorf("AllocLength(%d bytes) = %d, want 0", len(cdb), got)
		}
	}
}

func TestModeSensePageCodeMasksHighBits(t *testing.T) {
	// DBD and PC bits must not leak into the page code.
	cdb := []byte{CmdModeSense6, 0x00, 0xEA, 0x00, 0xFF, 0x00}
	if got := ModeSensePageCode(cdb); got != 0x2A {
		t.Errorf("ModeSensePageCode = %#x, want 0x2A", got)
	}
}

func TestSenseDataLayout(t *testing.T) {
	s := MediumNotPresent()
	buf := s.Bytes()
	if len(buf) != SenseSize {
		t.Fatalf("sense size = %d, want %d", len(buf), SenseSize)
	}
	if buf[0] != 0x70 {
		t.Errorf("response code = %#x, want 0x70", buf[0])
	}
	if buf[2] != SenseNotReady {
		t.Errorf("sense key = %#x, want %#x", buf[2], SenseNotReady)
	}
	if buf[7] != 10 {
		t.Errorf("additional length = %d, want 10", buf[7])
	}
	if buf[12] != ASCMediumNotPresent || buf[13] != ASCQTrayClosed {
		t.Errorf("asc/ascq = %#x/%#x, want %#x/%#x",
			buf[12], buf[13], ASCMediumNotPresent, ASCQTrayClosed)
	}
}

func TestSenseTriples(t *testing.T) {
	tests := []struct {
		name           string
		sense          SenseData
		key, asc, ascq uint8
	}{
		{"no sense", NoSense(), SenseNone, 0x00, 0x00},
		{"medium not present", MediumNotPresent(), SenseNotReady, 0x3A, 0x01},
		{"medium changed", MediumChanged(), SenseUnitAttention, 0x28, 0x00},
		{"invalid command", InvalidCommand(), SenseIllegalRequest, 0x20, 0x00},
		{"invalid field", InvalidField(), SenseIllegalRequest, 0x24, 0x00},
		{"lba out of range", LBAOutOfRange(), SenseIllegalRequest, 0x21, 0x00},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.sense.Key != tt.key || tt.sense.ASC != tt.asc || tt.sense.ASCQ != tt.ascq {
				t.Errorf("triple = %#x/%#x/%#x, want %#x/%#x/%#x",
					tt.sense.Key, tt.sense.ASC, tt.sense.ASCQ,
					tt.key, tt.asc, tt.ascq)
			}
		})
	}
}

func TestInquiryLayout(t *testing.T) {
	buf := NewInquiry().Bytes()
	if buf[0] != DeviceTypeCDROM {
		t.Errorf("peripheral = %#x, want %#x", buf[0], DeviceTypeCDROM)
	}
	if buf[1] != 0x80 {
		t.Errorf("rmb = %#x, want 0x80", buf[1])
	}
	if buf[4] != 31 {
		t.Errorf("additional length = %d, want 31", buf[4])
	}
	if got := string(buf[8:16]); got != "SUN     " {
		t.Errorf("vendor = %q", got)
	}
	if got := string(buf[16:32]); got != "Virtual CDROM   " {
		t.Errorf("product = %q", got)
	}
	if got := string(buf[32:36]); got != "1.0 " {
		t.Errorf("revision = %q", got)
	}
}

func TestInquiryIdentityPadding(t *testing.T) {
	d := InquiryWithIdentity("RISING", "Virtual CDROM", "2.0")
	if got := string(d.Vendor[:]); got != "RISING  " {
		t.Errorf("vendor = %q", got)
	}
	if got := string(d.Product[:]); got != "Virtual CDROM   " {
		t.Errorf("product = %q", got)
	}
	if got := string(d.Revision[:]); got != "2.0 " {
		t.Errorf("revision = %q", got)
	}

	// Oversized inputs truncate to the field width.
	long := InquiryWithIdentity(
		"AVERYLONGVENDOR", "an implausibly long product string", "10.0.1")
	if got := string(long.Vendor[:]); got != "AVERYLON" {
		t.Errorf("truncated vendor = %q", got)
	}
	if len(long.Revision) != 4 {
		t.Errorf("revision width = %d, want 4", len(long.Revision))
	}
}

func TestReadCapacityLayout(t *testing.T) {
	buf := ReadCapacity(333000, SectorSize)
	if got := binary.BigEndian.Uint32(buf[0:4]); got != 332999 {
		t.Errorf("last LBA = %d, want 332999", got)
	}
	if got := binary.BigEndian.Uint32(buf[4:8]); got != 2048 {
		t.Errorf("block length = %d, want 2048", got)
	}

	// An empty disc must not wrap around.
	empty := ReadCapacity(0, SectorSize)
	if got := binary.BigEndian.Uint32(empty[0:4]); got != 0 {
		t.Errorf("empty disc last LBA = %d, want 0", got)
	}
}

func TestSimpleTOCLayout(t *testing.T) {
	const totalSectors = 333000
	buf := SimpleTOC(totalSectors)

	if got := binary.BigEndian.Uint16(buf[0:2]); got != 18 {
		t.Errorf("data length = %d, want 18", got)
	}
	if buf[2] != 1 || buf[3] != 1 {
		t.Errorf("first/last track = %d/%d, want 1/1", buf[2], buf[3])
	}
	if buf[5] != 0x14 || buf[6] != 1 {
		t.Errorf("track 1 adr/ctrl=%#x number=%d, want 0x14/1", buf[5], buf[6])
	}
	if got := binary.BigEndian.Uint32(buf[8:12]); got != 0 {
		t.Errorf("track 1 start = %d, want 0", got)
	}
	if buf[14] != 0xAA {
		t.Errorf("lead-out track = %#x, want 0xAA", buf[14])
	}
	if got := binary.BigEndian.Uint32(buf[16:20]); got != totalSectors {
		t.Errorf("lead-out start = %d, want %d", got, totalSectors)
	}
}

func TestResultStatus(t *testing.T) {
	if got := Good([]byte{1}).Status(); got != StatusGood {
		t.Errorf("Good status = %#x", got)
	}
	if got := GoodNoData().Status(); got != StatusGood {
		t.Errorf("GoodNoData status = %#x", got)
	}
	if got := CheckCondition(InvalidCommand()).Status(); got != StatusCheckCondition {
		t.Errorf("CheckCondition status = %#x", got)
	}

	if _, ok := Good(nil).Sense(); ok {
		t.Error("Good result reports sense")
	}
	sense, ok := CheckCondition(LBAOutOfRange()).Sense()
	if !ok {
		t.Fatal("CheckCondition result reports no sense")
	}
	if diff := cmp.Diff(LBAOutOfRange(), sense); diff != "" {
		t.Errorf("sense mismatch (-want +got):\n%s", diff)
	}
}

func TestTrim(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	if got := trim(data, 2); !bytes.Equal(got, []byte{1, 2}) {
		t.Errorf("trim to 2 = %v", got)
	}
	if got := trim(data, 100); !bytes.Equal(got, data) {
		t.Errorf("trim past end = %v", got)
	}
	if got := trim(data, 0); len(got) != 0 {
		t.Errorf("trim to 0 = %v", got)
	}
}
