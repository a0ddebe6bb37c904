// SPDX-License-Identifier: Apache-2.0

package scsi

import (
	"encoding/binary"
	"io"
	"sync"

	"github.com/sunpci/go-sunpci/internal/span"
)

// Drive evaluates CDBs against a file-backed virtual optical disc.
//
// The drive holds three pieces of state across commands: the mounted
// medium, the sense data of the most recent failure (for REQUEST
// SENSE), and a pending unit attention raised by media changes. The
// attention is one-shot: it fails exactly one command from the
// initiator and is cleared by being reported. INQUIRY and REQUEST
// SENSE are exempt, as SCSI-2 requires.
//
// A Drive is safe for use from multiple goroutines, though the device
// it models is single-initiator.
type Drive struct {
	mu        sync.Mutex
	media     io.ReaderAt
	sectors   uint32
	attention bool
	locked    bool
	lastSense SenseData
	inquiry   InquiryData
}

// NewDrive returns an empty drive with the default identity.
func NewDrive() *Drive {
	return &Drive{
		inquiry:   NewInquiry(),
		lastSense: NoSense(),
	}
}

// SetIdentity overrides the INQUIRY vendor/product/revision strings.
func (d *Drive) SetIdentity(vendor, product, revision string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inquiry = InquiryWithIdentity(vendor, product, revision)
}

// Insert mounts an image. A trailing partial sector still counts as a
// readable sector. Raises unit attention.
func (d *Drive) Insert(media io.ReaderAt, size int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.media = media
	d.sectors = uint32((size + int64(SectorSize) - 1) / int64(SectorSize))
	d.attention = true
}

// Eject unmounts the image, if any. Raises unit attention so the
// initiator learns the medium went away.
func (d *Drive) Eject() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.media = nil
	d.sectors = 0
	d.attention = true
}

// Present reports whether a medium is mounted.
func (d *Drive) Present() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.media != nil
}

// Locked reports whether medium removal is prevented.
func (d *Drive) Locked() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.locked
}

// Handle executes one CDB and returns its outcome. A failed command's
// sense data is retained for the next REQUEST SENSE.
func (d *Drive) Handle(cdb []byte) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(cdb) == 0 {
		return d.fail(InvalidCommand())
	}

	// INQUIRY and REQUEST SENSE answer regardless of pending
	// conditions.
	switch cdb[0] {
	case CmdInquiry:
		return d.doInquiry(cdb)
	case CmdRequestSense:
		return d.doRequestSense(cdb)
	}

	if d.attention {
		d.attention = false
		return d.fail(MediumChanged())
	}

	switch cdb[0] {
	case CmdTestUnitReady:
		if d.media == nil {
			return d.fail(MediumNotPresent())
		}
		return d.ok(GoodNoData())
	case CmdPreventAllowRemove:
		if len(cdb) >= 5 {
			d.locked = cdb[4]&0x01 != 0
		}
		return d.ok(GoodNoData())
	case CmdModeSense6:
		return d.doModeSense(cdb, false)
	case CmdModeSense10:
		return d.doModeSense(cdb, true)
	case CmdReadCapacity:
		if d.media == nil {
			return d.fail(MediumNotPresent())
		}
		buf := ReadCapacity(d.sectors, SectorSize)
		return d.ok(Good(buf[:]))
	case CmdRead10:
		return d.doRead(cdb, Read10LBA(cdb), uint32(Read10Length(cdb)))
	case CmdRead12:
		return d.doRead(cdb, Read10LBA(cdb), Read12Length(cdb))
	case CmdSeek10:
		return d.doSeek(cdb)
	case CmdReadTOC:
		if d.media == nil {
			return d.fail(MediumNotPresent())
		}
		toc := SimpleTOC(d.sectors)
		return d.ok(Good(trim(toc[:], int(AllocLength16(cdb)))))
	case CmdGetConfiguration:
		return d.doGetConfiguration(cdb)
	case CmdGetEventStatus:
		return d.doEventStatus(cdb)
	case CmdReadDiscInfo:
		if d.media == nil {
			return d.fail(MediumNotPresent())
		}
		return d.ok(Good(trim(discInformation(), int(AllocLength16(cdb)))))
	case CmdMechanismStatus:
		return d.doMechanismStatus(cdb)
	case CmdReadCD:
		return d.doReadCD(cdb)
	case CmdReportKey:
		// No copy protection scheme on a virtual disc.
		return d.fail(InvalidField())
	}
	return d.fail(InvalidCommand())
}

// ok clears the retained sense on any successful command.
func (d *Drive) ok(r Result) Result {
	d.lastSense = NoSense()
	return r
}

func (d *Drive) fail(sense SenseData) Result {
	d.lastSense = sense
	return CheckCondition(sense)
}

func (d *Drive) doInquiry(cdb []byte) Result {
	buf := d.inquiry.Bytes()
	return Good(trim(buf[:], int(AllocLength(cdb))))
}

// doRequestSense reports and consumes the retained sense. It never
// fails and never clears a pending unit attention: the attention must
// be delivered through a normal command.
func (d *Drive) doRequestSense(cdb []byte) Result {
	buf := d.lastSense.Bytes()
	d.lastSense = NoSense()
	return Good(trim(buf[:], int(AllocLength(cdb))))
}

// maxReadBlocks bounds a single transfer. READ(12) and READ CD carry
// 24- and 32-bit lengths far beyond any real host buffer; a larger
// request is an illegal field, never a short read.
const maxReadBlocks = 0xFFFF

func (d *Drive) doRead(cdb []byte, lba, blocks uint32) Result {
	if d.media == nil {
		return d.fail(MediumNotPresent())
	}
	if blocks == 0 {
		return d.ok(GoodNoData())
	}
	if blocks > maxReadBlocks {
		return d.fail(InvalidField())
	}
	want := span.Span[uint64]{
		Start: uint64(lba),
		End:   uint64(lba) + uint64(blocks),
	}
	disc := span.Span[uint64]{Start: 0, End: uint64(d.sectors)}
	if !disc.Contains(want) {
		// Out of range is a hard error, never a short read.
		return d.fail(LBAOutOfRange())
	}
	buf := make([]byte, int64(blocks)*int64(SectorSize))
	if _, err := d.media.ReadAt(buf, int64(lba)*int64(SectorSize)); err != nil && err != io.EOF {
		return d.fail(ReadError())
	}
	return d.ok(Good(buf))
}

func (d *Drive) doSeek(cdb []byte) Result {
	if d.media == nil {
		return d.fail(MediumNotPresent())
	}
	if lba := Read10LBA(cdb); lba >= d.sectors {
		return d.fail(LBAOutOfRange())
	}
	// Nothing to position on a file-backed disc.
	return d.ok(GoodNoData())
}

func (d *Drive) doModeSense(cdb []byte, tenByte bool) Result {
	page := ModeSensePageCode(cdb)
	switch page {
	case PageErrorRecovery, PageCapabilities, PageAll:
	default:
		return d.fail(InvalidField())
	}

	var body []byte
	if page == PageErrorRecovery || page == PageAll {
		body = append(body, errorRecoveryPage()...)
	}
	if page == PageCapabilities || page == PageAll {
		body = append(body, capabilitiesPage()...)
	}

	var buf []byte
	var alloc int
	if tenByte {
		// 8-byte header, mode data length excludes its own two
		// bytes.
		buf = make([]byte, 8, 8+len(body))
		binary.BigEndian.PutUint16(buf[0:2], uint16(6+len(body)))
		buf = append(buf, body...)
		alloc = int(AllocLength16(cdb))
	} else {
		// 4-byte header, mode data length excludes its own byte.
		buf = make([]byte, 4, 4+len(body))
		buf[0] = uint8(3 + len(body))
		buf = append(buf, body...)
		alloc = int(AllocLength(cdb))
	}
	return d.ok(Good(trim(buf, alloc)))
}

func (d *Drive) doGetConfiguration(cdb []byte) Result {
	// Feature header only: data length, reserved, current profile.
	// An empty drive has no current profile.
	buf := make([]byte, 8)
	binary.BigEndian.PutUint32(buf[0:4], 4)
	if d.media != nil {
		binary.BigEndian.PutUint16(buf[6:8], profileCDROM)
	}
	return d.ok(Good(trim(buf, int(AllocLength16(cdb)))))
}

func (d *Drive) doEventStatus(cdb []byte) Result {
	// Media class event. The event itself reports presence; the
	// change edge is delivered via unit attention instead.
	buf := make([]byte, 8)
	binary.BigEndian.PutUint16(buf[0:2], 6)
	buf[2] = eventClassMedia
	buf[3] = 1 << eventClassMedia // supported classes
	if d.media != nil {
		buf[5] = mediaStatusPresent
	}
	return d.ok(Good(trim(buf, int(AllocLength16(cdb)))))
}

func (d *Drive) doMechanismStatus(cdb []byte) Result {
	// Idle tray-type changer-less mechanism, all zeroes.
	buf := make([]byte, 8)
	alloc := 0
	if len(cdb) >= 10 {
		alloc = int(binary.BigEndian.Uint16(cdb[8:10]))
	}
	return d.ok(Good(trim(buf, alloc)))
}

func (d *Drive) doReadCD(cdb []byte) Result {
	if len(cdb) < 12 {
		return d.fail(InvalidField())
	}
	// Only cooked Mode-1 user data (main channel selection 0x10);
	// raw 2352-byte sectors are not synthesized from an ISO.
	if cdb[9] != 0x10 {
		return d.fail(InvalidField())
	}
	lba := Read10LBA(cdb)
	blocks := uint32(cdb[6])<<16 | uint32(cdb[7])<<8 | uint32(cdb[8])
	return d.doRead(cdb, lba, blocks)
}

const (
	profileCDROM       uint16 = 0x0008
	eventClassMedia    uint8  = 0x04
	mediaStatusPresent uint8  = 0x02
)

// discInformation is the READ DISC INFORMATION response for a
// finalized single-session data disc.
func discInformation() []byte {
	buf := make([]byte, 34)
	binary.BigEndian.PutUint16(buf[0:2], 32)
	buf[2] = 0x0E // non-erasable, last session complete, disc complete
	buf[3] = 1    // first track
	buf[4] = 1    // sessions (LSB)
	buf[5] = 1    // first track in last session (LSB)
	buf[6] = 1    // last track in last session (LSB)
	buf[8] = 0x00 // CD-DA or CD-ROM disc
	return buf
}

// errorRecoveryPage is mode page 0x01 with retries disabled; there is
// nothing to retry against a host file.
func errorRecoveryPage() []byte {
	return []byte{PageErrorRecovery, 10, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
}

// capabilitiesPage is mode page 0x2A advertising a bare read-only
// CD-ROM mechanism.
func capabilitiesPage() []byte {
	buf := make([]byte, 20)
	buf[0] = PageCapabilities
	buf[1] = 18
	buf[2] = 0x01 // reads CD-R
	buf[4] = 0x01 // audio play absent, multisession read
	buf[6] = 0x28 // tray loader, eject
	binary.BigEndian.PutUint16(buf[8:10], 706)  // 4x max speed, kB/s
	binary.BigEndian.PutUint16(buf[14:16], 706) // 4x current speed
	return buf
}

// trim applies an allocation length: the initiator never receives
// more bytes than it asked for and never fewer than exist.
func trim(data []byte, alloc int) []byte {
	if alloc >= 0 && alloc < len(data) {
		return data[:alloc]
	}
	return data
}
