// SPDX-License-Identifier: Apache-2.0

package diskimage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Info is the parsed view of an image file's header. Valid reports
// whether the vendor magic was present; a foreign image without it
// still gets usable geometry, derived from the file's size.
type Info struct {
	Valid         bool
	SizeMB        uint32
	Revision      uint8
	Geometry      Geometry
	TotalSectors  uint64
	Bootable      bool
	PartitionType string
}

var partitionTypeNames = map[uint8]string{
	0x00: "Empty",
	0x01: "FAT12",
	0x04: "FAT16 (<32MB)",
	0x05: "Extended",
	0x06: "FAT16",
	0x07: "NTFS/HPFS",
	0x0B: "FAT32",
	0x0C: "FAT32 (LBA)",
	0x0E: "FAT16 (LBA)",
	0x0F: "Extended (LBA)",
	0x82: "Linux Swap",
	0x83: "Linux",
}

// ReadHeader parses an image file's MBR. A missing 0x55AA signature
// is a format error; a missing vendor magic is not, it just marks the
// image as foreign. Parsing has no side effects and is idempotent.
func ReadHeader(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, &FormatError{Path: path, Cause: err}
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return Info{}, &FormatError{Path: path, Cause: err}
	}
	fileSize := uint64(st.Size())

	mbr := make([]byte, SectorSize)
	if _, err := io.ReadFull(f, mbr); err != nil {
		return Info{}, &FormatError{Path: path, Cause: fmt.Errorf("reading MBR: %w", err)}
	}
	if mbr[offSignature] != 0x55 || mbr[offSignature+1] != 0xAA {
		return Info{}, &FormatError{Path: path, Cause: fmt.Errorf("invalid MBR signature")}
	}

	info := Info{
		SizeMB: uint32(fileSize / (1024 * 1024)),
		Valid:  binary.LittleEndian.Uint32(mbr[offMagic:]) == Magic,
	}
	if info.Valid {
		info.Revision = mbr[offRevision]
		info.Geometry = Geometry{
			Cylinders:       binary.LittleEndian.Uint16(mbr[offCylinders:]),
			Heads:           mbr[offHeads],
			SectorsPerTrack: mbr[offSectorsPerTrk],
		}
		info.TotalSectors = uint64(binary.LittleEndian.Uint32(mbr[offTotalSectors:]))
	} else {
		info.Geometry = GeometryForSize(info.SizeMB)
		info.TotalSectors = fileSize / SectorSize
	}
	if info.TotalSectors == 0 {
		info.TotalSectors = fileSize / SectorSize
	}

	part := mbr[offPartitionTable : offPartitionTable+16]
	info.Bootable = part[0] == 0x80
	name, ok := partitionTypeNames[part[4]]
	if !ok {
		name = "Unknown"
	}
	info.PartitionType = name
	return info, nil
}
