package schema

import "github.com/tesrec/plugin2text/internal/hash"

// FieldSchema is one entry in a Record's field list: either a single
// on-disk field with a value Type, or a subrecord — an ordered run of
// sibling on-disk fields that always appear consecutively (TES4's
// MAST/DATA pairs). A subrecord's Constant members are real fields in
// the binary stream but are never rendered to text; the text reader
// re-synthesizes them from the schema.
type FieldSchema struct {
	Tag       [4]byte
	Comment   string
	Subrecord bool
	Type      Type          // valid when !Subrecord
	Fields    []FieldSchema // valid when Subrecord; members must not themselves be Subrecords
}

// Leaf builds a single-field FieldSchema entry.
func Leaf(tag string, comment string, t Type) FieldSchema {
	var fs FieldSchema
	copy(fs.Tag[:], tag)
	fs.Comment = comment
	fs.Type = t
	return fs
}

// Sub builds a subrecord FieldSchema from its member fields, in the
// order they occur on disk. The subrecord is looked up by its first
// member's tag.
func Sub(fields ...FieldSchema) FieldSchema {
	var fs FieldSchema
	fs.Tag = fields[0].Tag
	fs.Comment = fields[0].Comment
	fs.Subrecord = true
	fs.Fields = fields
	return fs
}

// FlagBit names one bit of a record's flag word for text rendering.
type FlagBit struct {
	Mask uint32
	Name string
}

// Record is the schema for one record type tag: a human comment for the
// record header line, its field list (with Common's fields implicitly
// available to every record, mirroring the original's Record_Common
// base), and its named flag bits.
type Record struct {
	Tag     [4]byte
	Comment string
	Fields  []FieldSchema
	Flags   []FlagBit
}

// Registry resolves a record type tag to its Record schema, keyed by
// the tag's xxHash64 so every probe is a single uint64 map lookup.
type Registry struct {
	records map[uint64]*Record
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[uint64]*Record)}
}

// Register adds a Record schema, keyed by its Tag.
func (r *Registry) Register(rec *Record) {
	r.records[hash.Tag(rec.Tag)] = rec
}

// Lookup finds the Record schema for tag, if any is registered. A
// caller encountering false should fall back to an opaque field list
// rather than error — unknown record types are expected, not malformed
// input.
func (r *Registry) Lookup(tag [4]byte) (*Record, bool) {
	rec, ok := r.records[hash.Tag(tag)]
	return rec, ok
}

// FieldSchema resolves one field tag within rec's declared fields,
// falling back to Common's fields, matching Record_Common's role as a
// base every concrete record inherits. A subrecord matches on its
// first member's tag only; later member tags resolve to nothing, the
// same way get_field_def behaves in the original table.
func (rec *Record) FieldSchema(tag [4]byte) (FieldSchema, bool) {
	for _, f := range rec.Fields {
		if f.Tag == tag {
			return f, true
		}
	}
	if rec != Common {
		return Common.FieldSchema(tag)
	}
	return FieldSchema{}, false
}

// FlagNames renders flags against rec's (plus Common's) named bits in
// declaration order, clearing matched bits and returning the residue —
// mirrors write_flags's two-pass loop in the original text writer.
func (rec *Record) FlagNames(flags uint32) (names []string, residue uint32) {
	residue = flags
	defs := rec.Flags
	if rec != Common {
		defs = append(append([]FlagBit{}, rec.Flags...), Common.Flags...)
	}
	for _, fb := range defs {
		if residue&fb.Mask == fb.Mask && fb.Mask != 0 {
			names = append(names, fb.Name)
			residue &^= fb.Mask
		}
	}
	return names, residue
}

// FlagMask looks up the bitmask for a named flag bit, searching rec's
// flags first, then Common's.
func (rec *Record) FlagMask(name string) (uint32, bool) {
	for _, fb := range rec.Flags {
		if fb.Name == name {
			return fb.Mask, true
		}
	}
	if rec != Common {
		return Common.FlagMask(name)
	}
	return 0, false
}
