// Package endian provides the byte order engine the binary codecs are
// written against.
//
// It combines encoding/binary's ByteOrder and AppendByteOrder interfaces
// into a single EndianEngine so arena.Writer and arena.Reader can take
// one parameter instead of two. The plugin format is always
// little-endian on disk, so GetLittleEndianEngine is the only
// constructor.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from
// encoding/binary into a single interface for convenient byte order
// operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the byte
// order every multi-byte integer in the plugin format uses.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
