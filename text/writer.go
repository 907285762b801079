package text

import (
	"fmt"

	"github.com/tesrec/plugin2text/errs"
	"github.com/tesrec/plugin2text/model"
	"github.com/tesrec/plugin2text/schema"
)

// headerLine1 and headerLine2 are the two fixed lines every text
// document begins with.
const (
	headerLine1 = "plugin2text version 1.00"
	headerLine2 = "---"
)

// Encode renders a model.Document as indented text.
func Encode(doc *model.Document, reg *schema.Registry, opts ...Option) (string, error) {
	o := newOptions(opts)
	w := &writer{}
	w.line(0, "%s", headerLine1)
	w.line(0, "%s", headerLine2)
	for _, n := range doc.Nodes {
		if err := writeNode(w, 0, n, reg, o); err != nil {
			return "", err
		}
	}
	return w.String(), nil
}

func writeNode(w *writer, indent int, n model.Node, reg *schema.Registry, o *Options) error {
	switch v := n.(type) {
	case *model.Group:
		return writeGroup(w, indent, v, reg, o)
	case *model.Record:
		return writeRecord(w, indent, v, reg, o)
	default:
		return fmt.Errorf("text: unknown node type %T", n)
	}
}

func groupKindName(k model.GroupType) string {
	switch k {
	case model.GroupTop:
		return "Top"
	case model.GroupWorldChildren:
		return "World"
	case model.GroupInteriorCellBlock:
		return "Interior Block"
	case model.GroupInteriorCellSubBlock:
		return "Interior Sub-Block"
	case model.GroupExteriorCellBlock:
		return "Exterior"
	case model.GroupExteriorCellSubBlock:
		return "Exterior Sub-Block"
	case model.GroupCellChildren:
		return "Cell"
	case model.GroupTopicChildren:
		return "Topic"
	case model.GroupCellPersistentChildren:
		return "Persistent"
	case model.GroupCellTemporaryChildren:
		return "Temporary"
	}
	return ""
}

// writeGroup emits a GRUP header line and its children one indent
// deeper. A Top group's label is never written: the reader re-infers it
// from the group's first child, so the text stays free of redundant
// state that could drift from the records it describes.
func writeGroup(w *writer, indent int, g *model.Group, reg *schema.Registry, o *Options) error {
	header := "GRUP"
	if g.Kind != model.GroupTop {
		name := groupKindName(g.Kind)
		if name == "" {
			return fmt.Errorf("%w: group type %d", errs.ErrBadMagic, g.Kind)
		}
		header += " - " + name
		switch g.Kind {
		case model.GroupExteriorCellBlock, model.GroupExteriorCellSubBlock:
			x, y := g.LabelGrid()
			header += fmt.Sprintf(" (%d; %d)", x, y)
		case model.GroupInteriorCellBlock, model.GroupInteriorCellSubBlock:
			header += fmt.Sprintf(" %d", g.LabelBlock())
		default:
			header += fmt.Sprintf(" [%08X]", uint32(g.LabelFormID()))
		}
	}
	w.line(indent, "%s", header)

	writeTimestamp(w, indent+1, g.Timestamp, o)
	writeUnknown(w, indent+1, g.Unknown)

	for _, c := range g.Children {
		if err := writeNode(w, indent+1, c, reg, o); err != nil {
			return err
		}
	}
	return nil
}

func writeTimestamp(w *writer, indent int, ts uint16, o *Options) {
	if ts == 0 || !o.exportTimestamp {
		return
	}
	y := (ts >> 9) & 0x7F
	m := (ts >> 5) & 0xF
	d := ts & 0x1F
	w.line(indent, "%d %s 20%d", d, monthName(int(m)), y)
}

func writeUnknown(w *writer, indent int, unknown uint16) {
	if unknown != 0 {
		w.line(indent, "Unknown = %X", unknown)
	}
}

func monthName(m int) string {
	names := [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	if m < 1 || m > 12 {
		return "Jan"
	}
	return names[m-1]
}

func writeRecord(w *writer, indent int, rec *model.Record, reg *schema.Registry, o *Options) error {
	header := fmt.Sprintf("%s [%08X]", rec.Type, uint32(rec.FormID))
	if rec.Version != 44 {
		header += fmt.Sprintf(",v%d", rec.Version)
	}

	schemaRec, known := reg.Lookup(rec.Type)
	if known && schemaRec.Comment != "" {
		header += " - " + schemaRec.Comment
	}
	w.line(indent, "%s", header)

	writeTimestamp(w, indent+1, rec.Timestamp, o)
	writeUnknown(w, indent+1, rec.Unknown)

	flagRec := schemaRec
	if !known {
		flagRec = schema.Common
	}
	names, residue := flagRec.FlagNames(rec.Flags)
	for _, n := range names {
		w.line(indent+1, "+ %s", n)
	}
	if residue != 0 {
		w.line(indent+1, "+ %X", residue)
	}

	for i := 0; i < len(rec.Fields); {
		var fs schema.FieldSchema
		var hasSchema bool
		if known {
			fs, hasSchema = schemaRec.FieldSchema(rec.Fields[i].Type)
		} else {
			fs, hasSchema = schema.Common.FieldSchema(rec.Fields[i].Type)
		}

		if hasSchema && fs.Subrecord {
			n, err := writeSubrecord(w, indent+1, rec, fs, rec.Fields[i:], o)
			if err != nil {
				return err
			}
			i += n
			continue
		}

		if err := writeField(w, indent+1, rec, fs, hasSchema, rec.Fields[i], o); err != nil {
			return err
		}
		i++
	}
	return nil
}

// writeSubrecord emits a run of consecutive sibling fields described by
// one subrecord schema, skipping its Constant members (their bytes are
// re-synthesized from the schema on decode). Returns how many on-disk
// fields it consumed.
func writeSubrecord(w *writer, indent int, rec *model.Record, sub schema.FieldSchema, fields []model.Field, o *Options) (int, error) {
	if len(fields) < len(sub.Fields) {
		return 0, fmt.Errorf("%w: record %s ends inside %s run", errs.ErrSubrecordExhausted, rec.Type, sub.Tag)
	}
	for i, member := range sub.Fields {
		f := fields[i]
		if f.Type != (model.Tag(member.Tag)) {
			return 0, fmt.Errorf("%w: expected %s, found %s", errs.ErrSubrecordExhausted, model.Tag(member.Tag), f.Type)
		}
		if member.Type.Kind == schema.KindConstant {
			if !bytesEqual(f.Data, member.Type.ConstantValue) {
				return 0, fmt.Errorf("%w: field %s", errs.ErrConstantMismatch, f.Type)
			}
			continue
		}
		if err := writeField(w, indent, rec, member, true, f, o); err != nil {
			return 0, err
		}
	}
	return len(sub.Fields), nil
}

// writeField emits one field: its tag line (with the schema comment
// when there is one) and its value one indent deeper. Fields without a
// schema entry fall back to an opaque hex dump.
func writeField(w *writer, indent int, rec *model.Record, fs schema.FieldSchema, hasSchema bool, f model.Field, o *Options) error {
	t := schema.ByteArray
	if hasSchema {
		t = fs.Type
	}

	header := f.Type.String()
	if hasSchema && fs.Comment != "" {
		header += " - " + fs.Comment
	}
	w.line(indent, "%s", header)

	if err := writeValue(w, indent+1, t, f.Data, rec.Type, o); err != nil {
		return fmt.Errorf("record %s field %s: %w", rec.Type, f.Type, err)
	}
	return nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
