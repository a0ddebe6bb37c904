// SPDX-License-Identifier: Apache-2.0

package diskimage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Magic identifies a sunpci-formatted image: "SPCI" stored
// little-endian at offset 12 of the MBR.
const Magic uint32 = 0x53504349

// MBR field offsets. These are load-bearing for guest BIOS and DOS
// compatibility and must not move between revisions.
const (
	offMagic          = 12
	offRevision       = 16
	offRevisionMinor  = 17
	offCylinders      = 18
	offHeads          = 20
	offSectorsPerTrk  = 21
	offTotalSectors   = 22
	offPartitionTable = 0x1BE
	offSignature      = 510
)

// fixedSerial keeps image synthesis byte-for-byte deterministic for
// identical inputs. The guest never checks it.
const fixedSerial uint32 = 0x12345678

// FormatError reports a failed synthesis or an unreadable header. A
// failed Create leaves the target file in an undefined state; callers
// should delete it.
type FormatError struct {
	Path  string
	Cause error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("disk image %s: %v", e.Path, e.Cause)
}

func (e *FormatError) Unwrap() error { return e.Cause }

// Create synthesizes a new image file of the given capacity: MBR with
// vendor header and one active FAT partition, FAT boot sector, two
// initialized FAT copies, an empty root directory, then a sparse
// extension to the full geometry-derived size. Capacities of at most
// 32 MB get a FAT12 partition, larger ones FAT16.
func Create(path string, sizeMB uint32, revision uint8) error {
	if sizeMB == 0 {
		return &FormatError{Path: path, Cause: fmt.Errorf("capacity must be at least 1 MB")}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &FormatError{Path: path, Cause: err}
		}
	}

	geo := GeometryForSize(sizeMB)
	f, err := os.Create(path)
	if err != nil {
		return &FormatError{Path: path, Cause: err}
	}
	if err := writeImage(f, sizeMB, revision, geo); err != nil {
		f.Close()
		return &FormatError{Path: path, Cause: err}
	}
	if err := f.Close(); err != nil {
		return &FormatError{Path: path, Cause: err}
	}
	return nil
}

func writeImage(f *os.File, sizeMB uint32, revision uint8, geo Geometry) error {
	totalSectors := uint32(geo.TotalSectors())
	partStart := uint32(geo.SectorsPerTrack) // first track is reserved
	partSectors := totalSectors - partStart

	if _, err := f.Write(buildMBR(sizeMB, revision, geo, partStart, partSectors)); err != nil {
		return err
	}

	// The partition body begins one track in; everything from the
	// boot sector on is laid down sequentially from there.
	if _, err := f.Seek(int64(partStart)*SectorSize, io.SeekStart); err != nil {
		return err
	}
	boot, sectorsPerFAT := buildBootSector(sizeMB, geo, partStart, partSectors)
	if _, err := f.Write(boot); err != nil {
		return err
	}

	// Both FAT copies start with the fixed-disk end-of-chain seed.
	fat := make([]byte, int(sectorsPerFAT)*SectorSize)
	fat[0], fat[1], fat[2], fat[3] = 0xF8, 0xFF, 0xFF, 0xFF
	if _, err := f.Write(fat); err != nil {
		return err
	}
	if _, err := f.Write(fat); err != nil {
		return err
	}

	// Empty root directory: 512 entries of 32 bytes.
	if _, err := f.Write(make([]byte, 512*32)); err != nil {
		return err
	}

	// Sparse-extend to the full geometry size.
	return f.Truncate(int64(geo.TotalBytes()))
}

func buildMBR(sizeMB uint32, revision uint8, geo Geometry, partStart, partSectors uint32) []byte {
	mbr := make([]byte, SectorSize)

	binary.LittleEndian.PutUint32(mbr[offMagic:], Magic)
	mbr[offRevision] = revision
	mbr[offRevisionMinor] = 0
	binary.LittleEndian.PutUint16(mbr[offCylinders:], geo.Cylinders)
	mbr[offHeads] = geo.Heads
	mbr[offSectorsPerTrk] = geo.SectorsPerTrack
	binary.LittleEndian.PutUint32(mbr[offTotalSectors:], uint32(geo.TotalSectors()))

	part := mbr[offPartitionTable : offPartitionTable+16]
	part[0] = 0x80 // active
	// CHS start: cylinder 0, head 1, sector 1 (just past the MBR
	// track's first sector).
	part[1] = 1
	part[2] = 1
	part[3] = 0
	part[4] = partitionType(sizeMB)

	endCyl := geo.Cylinders - 1
	if endCyl > 1023 {
		endCyl = 1023
	}
	part[5] = geo.Heads - 1
	part[6] = geo.SectorsPerTrack&0x3F | uint8(endCyl>>8&0x03)<<6
	part[7] = uint8(endCyl)

	binary.LittleEndian.PutUint32(part[8:], partStart)
	binary.LittleEndian.PutUint32(part[12:], partSectors)

	mbr[offSignature] = 0x55
	mbr[offSignature+1] = 0xAA
	return mbr
}

func partitionType(sizeMB uint32) uint8 {
	if sizeMB > 32 {
		return 0x06 // FAT16
	}
	return 0x01 // FAT12
}

// buildBootSector lays out the FAT boot sector for the partition and
// returns it with the computed sectors-per-FAT.
func buildBootSector(sizeMB uint32, geo Geometry, partStart, partSectors uint32) ([]byte, uint16) {
	bs := make([]byte, SectorSize)

	// x86 jump over the BPB.
	bs[0], bs[1], bs[2] = 0xEB, 0x3C, 0x90
	copy(bs[3:11], "SUNPCI  ")

	binary.LittleEndian.PutUint16(bs[11:], 512) // bytes per sector
	sectorsPerCluster := uint8(4)
	if sizeMB > 256 {
		sectorsPerCluster = 8
	}
	bs[13] = sectorsPerCluster
	binary.LittleEndian.PutUint16(bs[14:], 1)   // reserved sectors
	bs[16] = 2                                  // FAT copies
	binary.LittleEndian.PutUint16(bs[17:], 512) // root entries

	if partSectors <= 65535 {
		binary.LittleEndian.PutUint16(bs[19:], uint16(partSectors))
	} else {
		binary.LittleEndian.PutUint32(bs[32:], partSectors)
	}

	bs[21] = 0xF8 // media descriptor, fixed disk

	sectorsPerFAT := uint16(partSectors/uint32(sectorsPerCluster)*2/512 + 1)
	binary.LittleEndian.PutUint16(bs[22:], sectorsPerFAT)

	binary.LittleEndian.PutUint16(bs[24:], uint16(geo.SectorsPerTrack))
	binary.LittleEndian.PutUint16(bs[26:], uint16(geo.Heads))
	binary.LittleEndian.PutUint32(bs[28:], partStart) // hidden sectors

	bs[36] = 0x80 // BIOS drive number
	bs[38] = 0x29 // extended boot signature
	binary.LittleEndian.PutUint32(bs[39:], fixedSerial)
	copy(bs[43:54], "NO NAME    ")
	copy(bs[54:62], "FAT16   ")

	bs[offSignature] = 0x55
	bs[offSignature+1] = 0xAA
	return bs, sectorsPerFAT
}
