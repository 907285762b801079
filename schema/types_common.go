package schema

import "math"

// The constructors below mirror the original tool's extern Type_*
// globals (typeinfo.hpp/.cpp): a small set of ready-made Type values
// used directly as FieldSchema.Type in most record definitions, with
// Struct/Enum/Filter built ad hoc per record.

var (
	ZString             = Type{Kind: KindZString}
	LString             = Type{Kind: KindLString}
	WString             = Type{Kind: KindWString}
	ByteArray           = Type{Kind: KindByteArray}
	ByteArrayCompressed = Type{Kind: KindByteArrayCompressed}
	ByteArrayRLE        = Type{Kind: KindByteArrayRLE}
	FormIDType          = Type{Kind: KindFormID, Size: 4}
	FormIDArray         = Type{Kind: KindFormIDArray}
	Bool                = Type{Kind: KindBool, Size: 1}
	VMAD                = Type{Kind: KindVMAD}
	Vector3             = Type{Kind: KindVector3, Size: 12}

	Int8   = Type{Kind: KindInteger, Size: 1, Signed: true}
	Int16  = Type{Kind: KindInteger, Size: 2, Signed: true}
	Int32  = Type{Kind: KindInteger, Size: 4, Signed: true}
	Int64  = Type{Kind: KindInteger, Size: 8, Signed: true}
	Uint8  = Type{Kind: KindInteger, Size: 1, Signed: false}
	Uint16 = Type{Kind: KindInteger, Size: 2, Signed: false}
	Uint32 = Type{Kind: KindInteger, Size: 4, Signed: false}
	Uint64 = Type{Kind: KindInteger, Size: 8, Signed: false}

	Float32 = Type{Kind: KindFloat, Size: 4}
	Float64 = Type{Kind: KindFloat, Size: 8}
)

// ByteArrayFixed declares a fixed-width hex-dumped byte array of size n.
func ByteArrayFixed(n int) Type {
	return Type{Kind: KindByteArrayFixed, Size: n}
}

// Member builds one named StructField, the analog of the sf_* struct
// member constructors.
func Member(name string, t Type) StructField {
	return StructField{Name: name, Type: t}
}

// ConstMember is a Constant struct member; constants render nothing and
// carry no name in text.
func ConstMember(t Type) StructField {
	return StructField{Type: t}
}

// ConstU64/ConstU32/ConstU16/ConstU8/ConstF32 build Constant-kind Types
// whose decoded bytes must equal a fixed value — the embedded filler
// fields the original format pads many structs with.
func ConstU64(v uint64) Type {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return Type{Kind: KindConstant, Size: 8, ConstantValue: b}
}

func ConstU32(v uint32) Type {
	return Type{Kind: KindConstant, Size: 4, ConstantValue: []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}}
}

func ConstU16(v uint16) Type {
	return Type{Kind: KindConstant, Size: 2, ConstantValue: []byte{byte(v), byte(v >> 8)}}
}

func ConstU8(v uint8) Type {
	return Type{Kind: KindConstant, Size: 1, ConstantValue: []byte{v}}
}

func ConstI8(v int8) Type {
	return ConstU8(uint8(v))
}

func ConstF32(v float32) Type {
	bits := math.Float32bits(v)
	return Type{Kind: KindConstant, Size: 4, ConstantValue: []byte{byte(bits), byte(bits >> 8), byte(bits >> 16), byte(bits >> 24)}}
}

// ConstBytes builds a Constant filler of exactly the given bytes, for
// values that aren't a whole number of words.
func ConstBytes(b ...byte) Type {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Type{Kind: KindConstant, Size: len(cp), ConstantValue: cp}
}

// ConstArrayU32 builds a Constant filler of n repeated uint32 words.
func ConstArrayU32(v uint32, n int) Type {
	b := make([]byte, 0, 4*n)
	for i := 0; i < n; i++ {
		b = append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}
	return Type{Kind: KindConstant, Size: 4 * n, ConstantValue: b}
}

// Enum builds a non-flags enum: the value is written as its matching
// entry's name, or decimal when no entry matches.
func Enum(size int, values ...EnumValue) Type {
	return Type{Kind: KindEnum, Size: size, EnumValues: values}
}

// EnumFlags builds a bitmask enum rendered as "+ Name" lines plus a
// trailing "+ %X" residue.
func EnumFlags(size int, values ...EnumValue) Type {
	return Type{Kind: KindEnum, Size: size, EnumValues: values, EnumIsFlags: true}
}

// EV builds one EnumValue entry.
func EV(value uint64, name string) EnumValue {
	return EnumValue{Name: name, Value: value}
}

// Struct builds a compound Type from named sub-fields, total byte width
// size (checked against the sum of member sizes when encoding and
// decoding, matching the original's offset==size assertion).
func Struct(size int, fields ...StructField) Type {
	return Type{Kind: KindStruct, Size: size, StructFields: fields}
}

// Filter wraps an inner field, masking its integer value to
// (raw & mask) >> shift before display and restoring it as
// (value << shift) & mask on write — CELL's XCLC cell flags are the worked example, keeping only
// the low four bits unless the caller asked to preserve junk.
func Filter(inner Type, mask uint64, shift uint) Type {
	return Type{Kind: KindFilter, Size: inner.Size, StructFields: []StructField{{Type: inner}}, FilterMask: mask, FilterShift: shift}
}
