// Package schema is the type-driven record/field registry: a static
// table mapping (record tag, field tag) to the rule that decodes and
// encodes that field's bytes, modeled on the original tool's typeinfo
// table (RECORD/rf_*/sf_* macros) and its closed TypeKind enumeration.
package schema

import "fmt"

// Kind is the closed enumeration of field value shapes the plugin
// format's fields can hold. Every Type value carries exactly one Kind,
// and the text writer/reader and binary codec both switch on it.
type Kind int

const (
	KindZString Kind = iota
	KindLString
	KindWString
	KindByteArray
	KindByteArrayFixed
	KindByteArrayCompressed
	KindByteArrayRLE
	KindInteger
	KindFloat
	KindFormID
	KindFormIDArray
	KindBool
	KindStruct
	KindEnum
	KindConstant
	KindFilter
	KindVector3
	KindVMAD
)

func (k Kind) String() string {
	switch k {
	case KindZString:
		return "ZString"
	case KindLString:
		return "LString"
	case KindWString:
		return "WString"
	case KindByteArray:
		return "ByteArray"
	case KindByteArrayFixed:
		return "ByteArrayFixed"
	case KindByteArrayCompressed:
		return "ByteArrayCompressed"
	case KindByteArrayRLE:
		return "ByteArrayRLE"
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindFormID:
		return "FormID"
	case KindFormIDArray:
		return "FormIDArray"
	case KindBool:
		return "Bool"
	case KindStruct:
		return "Struct"
	case KindEnum:
		return "Enum"
	case KindConstant:
		return "Constant"
	case KindFilter:
		return "Filter"
	case KindVector3:
		return "Vector3"
	case KindVMAD:
		return "VMAD"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// EnumValue names one legal value (or, in flags mode, one legal bit) of
// an Enum-kind Type.
type EnumValue struct {
	Name  string
	Value uint64
}

// Type describes how to interpret one leaf value. It is a closed
// tagged union: exactly the fields relevant to Kind are populated.
// Struct and Filter additionally carry nested StructFields so that
// compound shapes compose out of leaf Types the same way the original
// tool's TypeStruct/TypeFilter did.
type Type struct {
	Kind Kind

	// Size is the on-disk byte width for ByteArrayFixed, Integer,
	// Float, Struct, and Constant.
	Size int

	// Signed distinguishes int* from uint* for KindInteger.
	Signed bool

	// Enum/EnumFlags values, in schema declaration order.
	EnumValues []EnumValue
	// EnumIsFlags selects bitwise "+ Name" residue formatting instead of
	// exact single-value name matching.
	EnumIsFlags bool

	// ConstantValue is the exact byte sequence a Constant-kind field
	// must decode to; mismatches are errs.ErrConstantMismatch.
	ConstantValue []byte

	// StructFields lists the named sub-fields of a Struct, or the
	// single wrapped field of a Filter (len 1, the field's Name is
	// ignored by the writer), in on-disk order.
	StructFields []StructField

	// FilterMask and FilterShift describe a Filter's reversible
	// transform on its wrapped integer field: on read, the raw value is
	// masked and shifted down before display; on write, it is shifted up
	// and masked again, so bits outside the mask come back as zero. The
	// text package's preserve-junk option skips both steps and passes the
	// raw value through verbatim.
	FilterMask  uint64
	FilterShift uint
}

// StructField is one named member of a Struct or Filter Type.
type StructField struct {
	Name string
	Type Type
}
