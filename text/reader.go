package text

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tesrec/plugin2text/arena"
	"github.com/tesrec/plugin2text/errs"
	"github.com/tesrec/plugin2text/model"
	"github.com/tesrec/plugin2text/schema"
)

// Decode parses indented text back into a model.Document.
func Decode(src string, reg *schema.Registry, opts ...Option) (*model.Document, error) {
	o := newOptions(opts)
	sc := newLineScanner(src)

	if err := expectHeader(sc); err != nil {
		return nil, err
	}

	doc := &model.Document{}
	for {
		cont, err := sc.tryContinueCurrentIndent(0)
		if err != nil {
			return nil, err
		}
		if !cont {
			break
		}
		if peek, ok := peekRest(sc, 0); ok && peek == "" {
			sc.expectLine(0)
			continue
		}
		node, err := readNode(sc, 0, reg, o)
		if err != nil {
			return nil, err
		}
		doc.Nodes = append(doc.Nodes, node)
		if rec, ok := node.(*model.Record); ok && rec.Type == (model.Tag{'T', 'E', 'S', '4'}) && doc.Header == nil {
			doc.Header = rec
		}
	}
	return doc, nil
}

// expectHeader consumes the two fixed lines every text document begins
// with, the reader's AwaitHeader state.
func expectHeader(sc *lineScanner) error {
	l1, err := sc.expectLine(0)
	if err != nil {
		return fmt.Errorf("%w: missing header", errs.ErrBadMagic)
	}
	if l1 != headerLine1 {
		return fmt.Errorf("%w: unexpected header line %q", errs.ErrBadMagic, l1)
	}
	l2, err := sc.expectLine(0)
	if err != nil {
		return fmt.Errorf("%w: missing header separator", errs.ErrBadMagic)
	}
	if l2 != headerLine2 {
		return fmt.Errorf("%w: unexpected header separator %q", errs.ErrBadMagic, l2)
	}
	return nil
}

func readNode(sc *lineScanner, indent int, reg *schema.Registry, o *Options) (model.Node, error) {
	line, err := sc.expectLine(indent)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(line, "GRUP") {
		return readGroup(sc, indent, line[4:], reg, o)
	}
	return readRecord(sc, indent, line, reg, o)
}

// groupKindNames resolves a GRUP header's kind name; longer names are
// listed before their prefixes so "Exterior Sub-Block" is never taken
// for "Exterior".
var groupKindNames = []struct {
	name string
	kind model.GroupType
}{
	{"World", model.GroupWorldChildren},
	{"Interior Sub-Block", model.GroupInteriorCellSubBlock},
	{"Interior Block", model.GroupInteriorCellBlock},
	{"Exterior Sub-Block", model.GroupExteriorCellSubBlock},
	{"Exterior", model.GroupExteriorCellBlock},
	{"Cell", model.GroupCellChildren},
	{"Topic", model.GroupTopicChildren},
	{"Persistent", model.GroupCellPersistentChildren},
	{"Temporary", model.GroupCellTemporaryChildren},
}

func readGroup(sc *lineScanner, indent int, rest string, reg *schema.Registry, o *Options) (*model.Group, error) {
	g := &model.Group{Kind: model.GroupTop}

	if qualified, ok := strings.CutPrefix(rest, " - "); ok {
		matched := false
		for _, entry := range groupKindNames {
			if tail, ok := strings.CutPrefix(qualified, entry.name); ok {
				g.Kind = entry.kind
				matched = true
				qualified = tail
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("%w: group kind %q", errs.ErrBadMagic, qualified)
		}

		switch g.Kind {
		case model.GroupInteriorCellBlock, model.GroupInteriorCellSubBlock:
			n, err := strconv.ParseInt(strings.TrimPrefix(qualified, " "), 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: block number %q", errs.ErrBadMagic, qualified)
			}
			setLabelU32(g, uint32(int32(n)))
		case model.GroupExteriorCellBlock, model.GroupExteriorCellSubBlock:
			var x, y int
			if _, err := fmt.Sscanf(qualified, " (%d; %d)", &x, &y); err != nil {
				return nil, fmt.Errorf("%w: grid %q", errs.ErrBadMagic, qualified)
			}
			g.Label[0] = byte(uint16(x))
			g.Label[1] = byte(uint16(x) >> 8)
			g.Label[2] = byte(uint16(y))
			g.Label[3] = byte(uint16(y) >> 8)
		default:
			v, err := parseFormID(strings.TrimPrefix(qualified, " "))
			if err != nil {
				return nil, err
			}
			setLabelU32(g, v)
		}
	} else if rest != "" {
		return nil, fmt.Errorf("%w: group header %q", errs.ErrBadMagic, "GRUP"+rest)
	}

	var err error
	g.Timestamp, err = readTimestampLine(sc, indent+1)
	if err != nil {
		return nil, err
	}
	g.Unknown, err = readUnknownLine(sc, indent+1)
	if err != nil {
		return nil, err
	}

	for {
		cont, err := sc.tryContinueCurrentIndent(indent + 1)
		if err != nil {
			return nil, err
		}
		if !cont {
			break
		}
		child, err := readNode(sc, indent+1, reg, o)
		if err != nil {
			return nil, err
		}
		g.Children = append(g.Children, child)

		if g.Kind == model.GroupTop {
			if err := inferTopLabel(g, child); err != nil {
				return nil, err
			}
		}
	}

	if g.Kind == model.GroupTop && g.Label == ([4]byte{}) {
		return nil, fmt.Errorf("%w: empty Top group", errs.ErrUnknownGroupLabel)
	}
	return g, nil
}

// inferTopLabel is the Top group's label state machine: the label is
// never written to text, so it is reconstructed from the children as
// they arrive. A record child fixes the label to its type tag (every
// later record must carry the same tag); a nested InteriorCellBlock
// group forces CELL and a WorldChildren group forces WRLD.
func inferTopLabel(g *model.Group, child model.Node) error {
	switch c := child.(type) {
	case *model.Group:
		if g.Label != ([4]byte{}) {
			return nil
		}
		switch c.Kind {
		case model.GroupInteriorCellBlock:
			copy(g.Label[:], "CELL")
		case model.GroupWorldChildren:
			copy(g.Label[:], "WRLD")
		default:
			return fmt.Errorf("%w: nested group kind %d", errs.ErrUnknownGroupLabel, c.Kind)
		}
	case *model.Record:
		if g.Label == ([4]byte{}) {
			g.Label = [4]byte(c.Type)
		} else if g.Label != [4]byte(c.Type) {
			return fmt.Errorf("%w: %s in %s group", errs.ErrUnknownGroupLabel, c.Type, model.Tag(g.Label))
		}
	}
	return nil
}

func setLabelU32(g *model.Group, v uint32) {
	g.Label[0] = byte(v)
	g.Label[1] = byte(v >> 8)
	g.Label[2] = byte(v >> 16)
	g.Label[3] = byte(v >> 24)
}

func readRecord(sc *lineScanner, indent int, line string, reg *schema.Registry, o *Options) (*model.Record, error) {
	if len(line) < 4 {
		return nil, fmt.Errorf("%w: record header %q", errs.ErrBadMagic, line)
	}
	rec := &model.Record{Version: 44}
	copy(rec.Type[:], line[:4])
	rest := line[4:]

	if !strings.HasPrefix(rest, " [") || len(rest) < 11 || rest[10] != ']' {
		return nil, fmt.Errorf("%w: record header %q", errs.ErrBadMagic, line)
	}
	fid, err := strconv.ParseUint(rest[2:10], 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: form id in %q", errs.ErrBadMagic, line)
	}
	rec.FormID = model.FormID(fid)
	rest = rest[11:]

	if tail, ok := strings.CutPrefix(rest, ",v"); ok {
		num := tail
		if idx := strings.Index(tail, " "); idx >= 0 {
			num = tail[:idx]
			tail = tail[idx:]
		} else {
			tail = ""
		}
		v, err := strconv.ParseUint(num, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: version in %q", errs.ErrBadMagic, line)
		}
		rec.Version = uint16(v)
		rest = tail
	}
	if rest != "" && !strings.HasPrefix(rest, " - ") {
		return nil, fmt.Errorf("%w: record header %q", errs.ErrBadMagic, line)
	}

	rec.Timestamp, err = readTimestampLine(sc, indent+1)
	if err != nil {
		return nil, err
	}
	rec.Unknown, err = readUnknownLine(sc, indent+1)
	if err != nil {
		return nil, err
	}

	schemaRec, known := reg.Lookup(rec.Type)
	flagRec := schemaRec
	if !known {
		flagRec = schema.Common
	}
	rec.Flags, err = readRecordFlags(sc, indent+1, flagRec)
	if err != nil {
		return nil, err
	}

	for {
		cont, err := sc.tryContinueCurrentIndent(indent + 1)
		if err != nil {
			return nil, err
		}
		if !cont {
			break
		}
		fields, err := readFieldRun(sc, indent+1, rec.Type, flagRec, o)
		if err != nil {
			return nil, err
		}
		rec.Fields = append(rec.Fields, fields...)
	}
	return rec, nil
}

// readTimestampLine consumes an optional "21 Mar 2020" line; a line is
// only treated as a timestamp when its first character is a nonzero
// digit, which no tag, flag, or Unknown line starts with.
func readTimestampLine(sc *lineScanner, indent int) (uint16, error) {
	peek, ok := peekRest(sc, indent)
	if !ok || len(peek) == 0 || peek[0] < '1' || peek[0] > '9' {
		return 0, nil
	}
	line, err := sc.expectLine(indent)
	if err != nil {
		return 0, err
	}
	var d, y int
	var mon string
	if _, err := fmt.Sscanf(line, "%d %3s 20%d", &d, &mon, &y); err != nil {
		return 0, fmt.Errorf("%w: timestamp %q", errs.ErrBadMagic, line)
	}
	m := monthIndex(mon)
	if m == 0 {
		return 0, fmt.Errorf("%w: month %q", errs.ErrBadMagic, mon)
	}
	return uint16((y&0x7F)<<9 | (m&0xF)<<5 | (d & 0x1F)), nil
}

func monthIndex(name string) int {
	names := [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	for i, n := range names {
		if n == name {
			return i + 1
		}
	}
	return 0
}

func readUnknownLine(sc *lineScanner, indent int) (uint16, error) {
	peek, ok := peekRest(sc, indent)
	if !ok || !strings.HasPrefix(peek, "Unknown = ") {
		return 0, nil
	}
	line, _ := sc.expectLine(indent)
	v, err := strconv.ParseUint(strings.TrimPrefix(line, "Unknown = "), 16, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errs.ErrBadFlagHex, line)
	}
	return uint16(v), nil
}

// readRecordFlags consumes the run of "+ " lines under a record header.
// Names are resolved against the record's own flag table, then
// Common's; anything else must parse as a hex residue.
func readRecordFlags(sc *lineScanner, indent int, flagRec *schema.Record) (uint32, error) {
	var flags uint32
	for {
		cont, err := sc.tryContinueCurrentIndent(indent)
		if err != nil {
			return 0, err
		}
		if !cont {
			break
		}
		peek, _ := peekRest(sc, indent)
		if !strings.HasPrefix(peek, "+ ") {
			break
		}
		line, err := sc.expectLine(indent)
		if err != nil {
			return 0, err
		}
		name := strings.TrimPrefix(line, "+ ")
		if mask, ok := flagRec.FlagMask(name); ok {
			flags |= mask
			continue
		}
		v, err := strconv.ParseUint(name, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: flag %q", errs.ErrBadFlagHex, name)
		}
		flags |= uint32(v)
	}
	return flags, nil
}

// readFieldRun reads one field line — or, when the tag opens a
// subrecord schema, the whole run of sibling fields it describes,
// synthesizing the Constant members the text never carries.
func readFieldRun(sc *lineScanner, indent int, recType model.Tag, schemaRec *schema.Record, o *Options) ([]model.Field, error) {
	line, err := sc.expectLine(indent)
	if err != nil {
		return nil, err
	}
	tag, err := fieldTag(line)
	if err != nil {
		return nil, err
	}

	fs, hasSchema := schemaRec.FieldSchema(tag)

	if hasSchema && fs.Subrecord {
		fields := make([]model.Field, 0, len(fs.Fields))
		for i, member := range fs.Fields {
			if member.Type.Kind == schema.KindConstant {
				fields = append(fields, model.Field{Type: model.Tag(member.Tag), Data: member.Type.ConstantValue})
				continue
			}
			if i > 0 {
				memberLine, err := sc.expectLine(indent)
				if err != nil {
					return nil, err
				}
				memberTag, err := fieldTag(memberLine)
				if err != nil {
					return nil, err
				}
				if memberTag != member.Tag {
					return nil, fmt.Errorf("%w: expected %s, got %s", errs.ErrSubrecordExhausted, model.Tag(member.Tag), model.Tag(memberTag))
				}
			}
			f, err := readFieldValue(sc, indent+1, recType, member.Tag, member.Type, o)
			if err != nil {
				return nil, err
			}
			fields = append(fields, f)
		}
		return fields, nil
	}

	t := schema.ByteArray
	if hasSchema {
		t = fs.Type
	}
	f, err := readFieldValue(sc, indent+1, recType, tag, t, o)
	if err != nil {
		return nil, err
	}
	return []model.Field{f}, nil
}

func readFieldValue(sc *lineScanner, indent int, recType model.Tag, tag [4]byte, t schema.Type, o *Options) (model.Field, error) {
	out := arena.NewWriter(64)
	if err := readValue(sc, indent, t, out, recType, o); err != nil {
		return model.Field{}, fmt.Errorf("record %s field %s: %w", recType, model.Tag(tag), err)
	}
	if out.Len() > 0xFFFF {
		return model.Field{}, fmt.Errorf("%w: field %s is %d bytes", errs.ErrOversizedField, model.Tag(tag), out.Len())
	}
	return model.Field{Type: model.Tag(tag), Data: out.Bytes()}, nil
}

// fieldTag extracts the 4-character tag a field line starts with; the
// rest of the line is the schema comment, which carries no data.
func fieldTag(line string) ([4]byte, error) {
	var tag [4]byte
	if len(line) < 4 || (len(line) > 4 && !strings.HasPrefix(line[4:], " - ")) {
		return tag, fmt.Errorf("%w: field line %q", errs.ErrBadMagic, line)
	}
	copy(tag[:], line[:4])
	return tag, nil
}

// peekRest returns the line at indent without consuming it, or ok=false
// if the scanner is exhausted or not at that indent.
func peekRest(sc *lineScanner, indent int) (string, bool) {
	if sc.done() || sc.peekIndent() != indent {
		return "", false
	}
	line := sc.lines[sc.pos]
	return line[2*indent:], true
}
