// SPDX-License-Identifier: Apache-2.0

// Package diskimage creates and inspects virtual hard-disk image
// files for the sunpci guest. A created image carries a vendor magic
// in its MBR, a CHS geometry block, one active FAT partition, and
// freshly initialized FAT tables, so DOS-class guest firmware
// recognizes it as a formattable fixed disk without further setup.
package diskimage

// SectorSize is the fixed disk sector size.
const SectorSize = 512

// MaxCylinders is the classic CHS addressing limit.
const MaxCylinders = 1024

// Geometry is a CHS triple. Cylinders*Heads*SectorsPerTrack*512 is
// the image's byte size.
type Geometry struct {
	Cylinders       uint16
	Heads           uint8
	SectorsPerTrack uint8
}

// GeometryForSize derives the geometry for a requested capacity in
// whole megabytes. Heads scale with capacity so the cylinder count
// stays within the CHS limit; sectors per track is always 63. The
// choice is deterministic, so re-deriving geometry from a file's size
// reproduces the geometry it was created with, up to cylinder
// rounding.
func GeometryForSize(sizeMB uint32) Geometry {
	var heads uint8
	switch {
	case sizeMB <= 504:
		heads = 16
	case sizeMB <= 1008:
		heads = 32
	case sizeMB <= 2016:
		heads = 64
	case sizeMB <= 4032:
		heads = 128
	default:
		heads = 255
	}

	const spt = 63
	totalSectors := uint64(sizeMB) * 1024 * 1024 / SectorSize
	cylinders := totalSectors / (uint64(heads) * spt)
	if cylinders > MaxCylinders {
		cylinders = MaxCylinders
	}
	return Geometry{
		Cylinders:       uint16(cylinders),
		Heads:           heads,
		SectorsPerTrack: spt,
	}
}

// TotalSectors returns the sector count the geometry addresses.
func (g Geometry) TotalSectors() uint64 {
	return uint64(g.Cylinders) * uint64(g.Heads) * uint64(g.SectorsPerTrack)
}

// TotalBytes returns the byte size the geometry addresses.
func (g Geometry) TotalBytes() uint64 {
	return g.TotalSectors() * SectorSize
}
