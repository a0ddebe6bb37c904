// SPDX-License-Identifier: Apache-2.0

package diskimage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGeometryThresholds(t *testing.T) {
	tests := []struct {
		sizeMB    uint32
		wantHeads uint8
	}{
		{10, 16},
		{33, 16},
		{100, 16},
		{504, 16},
		{520, 32},
		{1008, 32},
		{2016, 64},
		{2050, 128},
		{4032, 128},
		{8000, 255},
	}
	for _, tt := range tests {
		geo := GeometryForSize(tt.sizeMB)
		if geo.Heads != tt.wantHeads {
			t.Errorf("GeometryForSize(%d).Heads = %d, want %d", tt.sizeMB, geo.Heads, tt.wantHeads)
		}
		if geo.SectorsPerTrack != 63 {
			t.Errorf("GeometryForSize(%d).SectorsPerTrack = %d, want 63", tt.sizeMB, geo.SectorsPerTrack)
		}
		if geo.Cylinders > MaxCylinders {
			t.Errorf("GeometryForSize(%d).Cylinders = %d, exceeds %d", tt.sizeMB, geo.Cylinders, MaxCylinders)
		}
		if geo.TotalBytes() > uint64(tt.sizeMB)*1024*1024 {
			t.Errorf("GeometryForSize(%d) addresses %d bytes, more than requested", tt.sizeMB, geo.TotalBytes())
		}
	}
}

func TestGeometryRederivationIsStable(t *testing.T) {
	// Geometry derived from the created file's size must not exceed
	// the creation geometry by more than cylinder rounding.
	for _, sizeMB := range []uint32{10, 33, 100, 520, 2050} {
		created := GeometryForSize(sizeMB)
		rederived := GeometryForSize(uint32(created.TotalBytes() / (1024 * 1024)))
		if rederived.Heads != created.Heads {
			t.Errorf("size %d MB: heads changed %d -> %d", sizeMB, created.Heads, rederived.Heads)
		}
		if rederived.Cylinders > created.Cylinders {
			t.Errorf("size %d MB: cylinders grew %d -> %d", sizeMB, created.Cylinders, rederived.Cylinders)
		}
	}
}

func TestCreateReadHeaderRoundTrip(t *testing.T) {
	tests := []struct {
		sizeMB   uint32
		wantType string
	}{
		{10, "FAT12"},
		{32, "FAT12"},
		{33, "FAT16"},
		{100, "FAT16"},
		{520, "FAT16"},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "disk.img")
		if err := Create(path, tt.sizeMB, 2); err != nil {
			t.Fatalf("Create(%d MB): %v", tt.sizeMB, err)
		}

		info, err := ReadHeader(path)
		if err != nil {
			t.Fatalf("ReadHeader(%d MB): %v", tt.sizeMB, err)
		}
		want := Info{
			Valid:         true,
			SizeMB:        uint32(GeometryForSize(tt.sizeMB).TotalBytes() / (1024 * 1024)),
			Revision:      2,
			Geometry:      GeometryForSize(tt.sizeMB),
			TotalSectors:  GeometryForSize(tt.sizeMB).TotalSectors(),
			Bootable:      true,
			PartitionType: tt.wantType,
		}
		if diff := cmp.Diff(want, info); diff != "" {
			t.Errorf("%d MB header mismatch (-want +got):\n%s", tt.sizeMB, diff)
		}
	}
}

func TestCreateFileSizeMatchesGeometry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")
	if err := Create(path, 100, 2); err != nil {
		t.Fatal(err)
	}
	st, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	want := int64(GeometryForSize(100).TotalBytes())
	if st.Size() != want {
		t.Errorf("file size = %d, want %d", st.Size(), want)
	}
}

func TestCreateIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.img")
	b := filepath.Join(dir, "b.img")
	if err := Create(a, 33, 2); err != nil {
		t.Fatal(err)
	}
	if err := Create(b, 33, 2); err != nil {
		t.Fatal(err)
	}

	// The MBR and boot-sector region must match byte for byte.
	bufA := readRegion(t, a, 0, 64*SectorSize)
	bufB := readRegion(t, b, 0, 64*SectorSize)
	if !bytes.Equal(bufA, bufB) {
		t.Error("identical inputs produced different image prefixes")
	}
}

func TestReadHeaderIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")
	if err := Create(path, 33, 1); err != nil {
		t.Fatal(err)
	}
	first, err := ReadHeader(path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ReadHeader(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("parse not idempotent (-first +second):\n%s", diff)
	}
}

func TestMBRLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")
	if err := Create(path, 100, 3); err != nil {
		t.Fatal(err)
	}
	mbr := readRegion(t, path, 0, SectorSize)
	geo := GeometryForSize(100)

	if got := string(mbr[12:16]); got != "ICPS" { // "SPCI" stored little-endian
		t.Errorf("magic bytes = %q", got)
	}
	if mbr[16] != 3 {
		t.Errorf("revision = %d, want 3", mbr[16])
	}
	if mbr[20] != geo.Heads || mbr[21] != 63 {
		t.Errorf("geometry bytes = %d/%d, want %d/63", mbr[20], mbr[21], geo.Heads)
	}
	if mbr[510] != 0x55 || mbr[511] != 0xAA {
		t.Errorf("signature = %#x %#x", mbr[510], mbr[511])
	}

	part := mbr[0x1BE : 0x1BE+16]
	if part[0] != 0x80 {
		t.Errorf("boot flag = %#x, want 0x80", part[0])
	}
	if part[4] != 0x06 {
		t.Errorf("partition type = %#x, want FAT16", part[4])
	}
}

func TestBootSectorLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")
	if err := Create(path, 33, 2); err != nil {
		t.Fatal(err)
	}
	// Boot sector sits at the partition start, one track in.
	bs := readRegion(t, path, 63*SectorSize, SectorSize)

	if bs[0] != 0xEB || bs[1] != 0x3C || bs[2] != 0x90 {
		t.Errorf("jump = % x", bs[0:3])
	}
	if got := string(bs[3:11]); got != "SUNPCI  " {
		t.Errorf("oem name = %q", got)
	}
	if bs[13] != 4 {
		t.Errorf("sectors per cluster = %d, want 4 for 33 MB", bs[13])
	}
	if bs[21] != 0xF8 {
		t.Errorf("media descriptor = %#x, want 0xF8", bs[21])
	}
	if bs[38] != 0x29 {
		t.Errorf("extended boot signature = %#x, want 0x29", bs[38])
	}
	if got := string(bs[43:54]); got != "NO NAME    " {
		t.Errorf("volume label = %q", got)
	}
	if bs[510] != 0x55 || bs[511] != 0xAA {
		t.Errorf("signature = %#x %#x", bs[510], bs[511])
	}

	// The FAT seed follows immediately after the reserved sector.
	fat := readRegion(t, path, 64*SectorSize, 4)
	if !bytes.Equal(fat, []byte{0xF8, 0xFF, 0xFF, 0xFF}) {
		t.Errorf("fat seed = % x", fat)
	}
}

func TestReadHeaderForeignImage(t *testing.T) {
	// A plain image with a boot signature but no vendor magic still
	// reports geometry, just not validity.
	path := filepath.Join(t.TempDir(), "foreign.img")
	buf := make([]byte, 10*1024*1024)
	buf[510], buf[511] = 0x55, 0xAA
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := ReadHeader(path)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if info.Valid {
		t.Error("foreign image reported as vendor-formatted")
	}
	if info.Geometry.Heads != 16 {
		t.Errorf("derived heads = %d, want 16 for 10 MB", info.Geometry.Heads)
	}
	if info.TotalSectors != uint64(len(buf))/SectorSize {
		t.Errorf("total sectors = %d, want %d", info.TotalSectors, len(buf)/SectorSize)
	}
}

func TestReadHeaderRejectsBadSignature(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.img")
	if err := os.WriteFile(path, make([]byte, 4096), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ReadHeader(path)
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want FormatError", err)
	}
}

func TestCreateRejectsZeroSize(t *testing.T) {
	err := Create(filepath.Join(t.TempDir(), "zero.img"), 0, 1)
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want FormatError", err)
	}
}

func readRegion(t *testing.T, path string, off int64, n int) []byte {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	buf := make([]byte, n)
	if _, err := f.ReadAt(buf, off); err != nil {
		t.Fatal(err)
	}
	return buf
}
