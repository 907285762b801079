// Package errs defines the sentinel errors returned throughout plugin2text.
//
// Callers should compare against these values with errors.Is; internal
// call sites wrap them with fmt.Errorf("...: %w", ErrX) to attach the
// offending offset, tag, or record id.
package errs

import "errors"

var (
	// ErrTruncated is returned when a buffer ends before a length-prefixed
	// or fixed-size structure it describes has been fully read.
	ErrTruncated = errors.New("plugin2text: buffer truncated")

	// ErrOversizedField is returned when a field's declared size exceeds
	// the remaining bytes in its enclosing record or the arena's capacity.
	ErrOversizedField = errors.New("plugin2text: field size exceeds available data")

	// ErrBadMagic is returned when a text header, group, record, field or
	// timestamp line is malformed, or a VMAD block carries an unsupported
	// version, object format or property type.
	ErrBadMagic = errors.New("plugin2text: invalid record tag")

	// ErrBadIndent is returned by the text reader when a line's
	// indentation does not match the indent protocol's expectations.
	ErrBadIndent = errors.New("plugin2text: unexpected indentation")

	// ErrBadFlagHex is returned when a "+ %X" flag residue line fails to
	// parse as hexadecimal, or a named flag does not match any bit
	// defined for the enclosing record or field.
	ErrBadFlagHex = errors.New("plugin2text: invalid flag value")

	// ErrBadValue is returned when a value line fails to parse as the
	// schema's kind: a malformed integer, float, boolean, or form id.
	ErrBadValue = errors.New("plugin2text: invalid value literal")

	// ErrDuplicateFormID is returned when two sibling records inside a
	// CellPersistentChildren or CellTemporaryChildren group share the
	// same form id.
	ErrDuplicateFormID = errors.New("plugin2text: duplicate form id in group")

	// ErrCompression wraps failures from the deflate codec, both
	// compressing a record body and inflating one.
	ErrCompression = errors.New("plugin2text: compression failure")

	// ErrNestedCompression names a compressed record nested inside another
	// compressed record's scope; no code path in this module returns it.
	ErrNestedCompression = errors.New("plugin2text: nested compressed record")

	// ErrSubrecordExhausted is returned when a schema's subrecord fields
	// are consumed before the subrecord's declared byte span ends, or the
	// span ends mid-field.
	ErrSubrecordExhausted = errors.New("plugin2text: subrecord field span mismatch")

	// ErrConstantMismatch is returned when a Constant-kind field's decoded
	// value does not equal the value the schema declares it must hold.
	ErrConstantMismatch = errors.New("plugin2text: constant field value mismatch")

	// ErrLocalizedString is reserved for a real localized-string-table
	// implementation (.strings/.dlstrings/.ilstrings), which this module
	// does not have; LString decodes like ZString instead. See DESIGN.md
	// Open Question (a).
	ErrLocalizedString = errors.New("plugin2text: localized strings are not supported")

	// ErrUnknownRecordType names a record whose 4-byte tag has no entry in
	// the schema registry. No code path in this module returns it: unknown
	// records are carried through with their fields as opaque byte arrays.
	ErrUnknownRecordType = errors.New("plugin2text: unknown record type")

	// ErrUnknownGroupLabel is returned when a Top group's label cannot be
	// inferred from its first child while parsing text.
	ErrUnknownGroupLabel = errors.New("plugin2text: cannot infer group label")

	// ErrInvalidString is returned when string bytes contain characters
	// outside the format's printable-ASCII contract.
	ErrInvalidString = errors.New("plugin2text: invalid string bytes")

	// ErrRLEOverflow is returned when a ByteArrayRLE escape sequence
	// requests a run length exceeding the format's single-escape maximum.
	ErrRLEOverflow = errors.New("plugin2text: byte array RLE run too long")
)
