// Package model defines the in-memory object tree shared by the plugin
// binary decoder and the text reader/writer: records, groups, fields and
// form identifiers, independent of either external representation.
package model

import (
	"fmt"
)

// Tag is a 4-byte record, group, or field type tag such as "TES4" or
// "EDID". Tags are always printable ASCII in a well-formed plugin.
type Tag [4]byte

// ParseTag builds a Tag from a 4-byte slice.
func ParseTag(b []byte) Tag {
	var t Tag
	copy(t[:], b)
	return t
}

func (t Tag) String() string {
	return string(t[:])
}

// GRUPTag is the fixed tag carried by every group record.
var GRUPTag = Tag{'G', 'R', 'U', 'P'}

// FormID is a plugin-local or resolved form identifier. Values are kept
// exactly as they occur in the binary stream; no load-order remapping is
// performed anywhere in this module.
type FormID uint32

func (f FormID) String() string {
	return fmt.Sprintf("%08X", uint32(f))
}

// GroupType distinguishes the ten group flavors carried in a GRUP
// record's header, controlling both the label's meaning and the text
// writer's group-qualifier grammar.
type GroupType int32

const (
	GroupTop                       GroupType = 0
	GroupWorldChildren             GroupType = 1
	GroupInteriorCellBlock         GroupType = 2
	GroupInteriorCellSubBlock      GroupType = 3
	GroupExteriorCellBlock         GroupType = 4
	GroupExteriorCellSubBlock      GroupType = 5
	GroupCellChildren              GroupType = 6
	GroupTopicChildren             GroupType = 7
	GroupCellPersistentChildren    GroupType = 8
	GroupCellTemporaryChildren     GroupType = 9
)

// Node is implemented by Record and Group, the two kinds of entry a
// Group's Children slice (and a Document's top-level slice) may hold.
type Node interface {
	node()
}

// Field is one on-disk field belonging to a Record: a 4-byte type tag
// plus its raw, still-undecoded payload bytes. Schema-driven decoding
// into typed values happens in the text package, not here; Field keeps
// the object tree usable even for record types the schema registry does
// not recognize.
type Field struct {
	Type Tag
	Data []byte
}

// Record is a single plugin record: header metadata plus an ordered list
// of fields. Compression is a property of the on-disk encoding, not of
// this in-memory form — by the time a Record exists, Fields always holds
// the decompressed field stream; whether the source encoded it compressed
// is recoverable from Flags (IsCompressed) so the binary encoder can
// reproduce it without a second source of truth.
type Record struct {
	Type       Tag
	Flags      uint32
	Timestamp  uint16
	VersionCtl uint16
	FormID     FormID
	Version    uint16
	Unknown    uint16
	Fields     []Field
}

func (*Record) node() {}

// RecordFlagCompressed is the bit in Record.Flags marking a compressed
// record body. "Compressed" is a normal named flag bit like any other
// (schema.Common carries it), so it round-trips through the text format
// the same way Deleted or Is Marker does.
const RecordFlagCompressed uint32 = 0x00040000

// RecordFlagDeleted marks a record logically removed but still present
// on disk.
const RecordFlagDeleted uint32 = 0x00000020

// IsCompressed reports whether Flags has the compressed bit set.
func (r *Record) IsCompressed() bool {
	return r.Flags&RecordFlagCompressed != 0
}

// Group is a GRUP record: a typed container whose Label's meaning
// depends on Kind. Timestamp/VersionCtl/Version/Unknown mirror a
// Record's trailing header fields byte-for-byte — GrupRecord's header
// has the identical 8-byte shape in that position, even though the
// text format never renders them for a group.
type Group struct {
	Kind       GroupType
	Label      [4]byte // raw 4 bytes; interpretation (FormID, grid cell, decimal block) depends on Kind
	Timestamp  uint16
	VersionCtl uint16
	Version    uint16
	Unknown    uint16
	Children   []Node
}

func (*Group) node() {}

// LabelFormID interprets Label as a little-endian form id, valid for
// GroupWorldChildren, GroupCellChildren, GroupCellPersistentChildren,
// GroupCellTemporaryChildren and GroupTopicChildren.
func (g *Group) LabelFormID() FormID {
	return FormID(uint32(g.Label[0]) | uint32(g.Label[1])<<8 | uint32(g.Label[2])<<16 | uint32(g.Label[3])<<24)
}

// LabelGrid interprets Label as a signed (x, y) exterior cell grid
// coordinate pair, valid for GroupExteriorCellBlock/SubBlock.
func (g *Group) LabelGrid() (x, y int16) {
	x = int16(uint16(g.Label[0]) | uint16(g.Label[1])<<8)
	y = int16(uint16(g.Label[2]) | uint16(g.Label[3])<<8)
	return x, y
}

// LabelBlock interprets Label as a single little-endian int32 block
// number, valid for GroupInteriorCellBlock/SubBlock.
func (g *Group) LabelBlock() int32 {
	return int32(uint32(g.Label[0]) | uint32(g.Label[1])<<8 | uint32(g.Label[2])<<16 | uint32(g.Label[3])<<24)
}

// LabelTag interprets Label as a 4-byte record type tag, valid for
// GroupTop.
func (g *Group) LabelTag() Tag {
	return Tag(g.Label)
}

// Document is the top-level parsed form of a plugin: an ordered list of
// top-level nodes (always Groups in a well-formed plugin save for the
// mandatory leading TES4 record) plus the header record kept separately
// for convenient access.
type Document struct {
	Header *Record
	Nodes  []Node
}
