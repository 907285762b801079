package text

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/tesrec/plugin2text/arena"
	"github.com/tesrec/plugin2text/compress"
	"github.com/tesrec/plugin2text/errs"
	"github.com/tesrec/plugin2text/model"
	"github.com/tesrec/plugin2text/schema"
)

// readValue parses one field payload at the value indent, the exact
// inverse of writeValue, appending the reconstructed bytes to out.
func readValue(sc *lineScanner, indent int, t schema.Type, out *arena.Writer, recType model.Tag, o *Options) error {
	switch t.Kind {
	case schema.KindZString, schema.KindLString:
		s, err := readString(sc, indent)
		if err != nil {
			return err
		}
		out.WriteBytes([]byte(s))
		out.WriteUint8(0)
		return nil

	case schema.KindWString:
		s, err := readString(sc, indent)
		if err != nil {
			return err
		}
		if len(s) > 0xFFFF {
			return fmt.Errorf("%w: wstring of %d bytes", errs.ErrOversizedField, len(s))
		}
		out.WriteUint16(uint16(len(s)))
		out.WriteBytes([]byte(s))
		return nil

	case schema.KindByteArray:
		line, err := sc.expectLine(indent)
		if err != nil {
			return err
		}
		data, err := hexDecodeStrict(line)
		if err != nil {
			return err
		}
		out.WriteBytes(data)
		return nil

	case schema.KindByteArrayFixed:
		line, err := sc.expectLine(indent)
		if err != nil {
			return err
		}
		data, err := hexDecodeStrict(line)
		if err != nil {
			return err
		}
		if len(data) != t.Size {
			return fmt.Errorf("%w: fixed byte array is %d bytes, want %d", errs.ErrOversizedField, len(data), t.Size)
		}
		out.WriteBytes(data)
		return nil

	case schema.KindByteArrayRLE:
		line, err := sc.expectLine(indent)
		if err != nil {
			return err
		}
		data, err := rleDecode(line)
		if err != nil {
			return err
		}
		out.WriteBytes(data)
		return nil

	case schema.KindByteArrayCompressed:
		line, err := sc.expectLine(indent)
		if err != nil {
			return err
		}
		compressed, err := base64.StdEncoding.DecodeString(line)
		if err != nil {
			return fmt.Errorf("%w: %v", errs.ErrCompression, err)
		}
		data, err := compress.Shared().DecompressAll(compressed)
		if err != nil {
			return err
		}
		out.WriteBytes(data)
		return nil

	case schema.KindInteger:
		line, err := sc.expectLine(indent)
		if err != nil {
			return err
		}
		if t.Signed {
			v, err := strconv.ParseInt(line, 10, 64)
			if err != nil {
				return fmt.Errorf("%w: integer %q", errs.ErrBadValue, line)
			}
			writeUintN(out, uint64(v), t.Size)
		} else {
			v, err := strconv.ParseUint(line, 10, 64)
			if err != nil {
				return fmt.Errorf("%w: integer %q", errs.ErrBadValue, line)
			}
			writeUintN(out, v, t.Size)
		}
		return nil

	case schema.KindFloat:
		line, err := sc.expectLine(indent)
		if err != nil {
			return err
		}
		if t.Size == 8 {
			v, err := strconv.ParseFloat(line, 64)
			if err != nil {
				return fmt.Errorf("%w: float %q", errs.ErrBadValue, line)
			}
			writeUintN(out, float64ToBits(v), 8)
		} else {
			v, err := strconv.ParseFloat(line, 32)
			if err != nil {
				return fmt.Errorf("%w: float %q", errs.ErrBadValue, line)
			}
			writeUintN(out, uint64(float32ToBits(float32(v))), 4)
		}
		return nil

	case schema.KindBool:
		line, err := sc.expectLine(indent)
		if err != nil {
			return err
		}
		switch line {
		case "True":
			out.WriteUint8(1)
		case "False":
			out.WriteUint8(0)
		default:
			return fmt.Errorf("%w: bool %q", errs.ErrBadValue, line)
		}
		return nil

	case schema.KindFormID:
		line, err := sc.expectLine(indent)
		if err != nil {
			return err
		}
		v, err := parseFormID(line)
		if err != nil {
			return err
		}
		out.WriteUint32(v)
		return nil

	case schema.KindFormIDArray:
		for {
			cont, err := sc.tryContinueCurrentIndent(indent)
			if err != nil {
				return err
			}
			if !cont {
				break
			}
			line, err := sc.expectLine(indent)
			if err != nil {
				return err
			}
			if line == "" {
				continue
			}
			v, err := parseFormID(line)
			if err != nil {
				return err
			}
			out.WriteUint32(v)
		}
		return nil

	case schema.KindEnum:
		return readEnum(sc, indent, t, out)

	case schema.KindStruct:
		return readStruct(sc, indent, t, out, recType, o)

	case schema.KindConstant:
		out.WriteBytes(t.ConstantValue)
		return nil

	case schema.KindFilter:
		// The inner value is staged on out itself and rolled back once
		// its integer form is in hand, the LIFO scratch discipline the
		// arena's Checkpoint/Reset pair exists for.
		inner := t.StructFields[0].Type
		mark := out.Checkpoint()
		if err := readValue(sc, indent, inner, out, recType, o); err != nil {
			return err
		}
		v := uintN(out.Bytes()[int(mark):], inner.Size)
		out.Reset(mark)
		if !o.preserveJunk {
			v = (v << t.FilterShift) & t.FilterMask
		}
		writeUintN(out, v, inner.Size)
		return nil

	case schema.KindVector3:
		for i := 0; i < 3; i++ {
			line, err := sc.expectLine(indent)
			if err != nil {
				return err
			}
			v, err := strconv.ParseFloat(line, 32)
			if err != nil {
				return fmt.Errorf("%w: float %q", errs.ErrBadValue, line)
			}
			writeUintN(out, uint64(float32ToBits(float32(v))), 4)
		}
		return nil

	case schema.KindVMAD:
		d, err := readVMAD(sc, indent, recType)
		if err != nil {
			return err
		}
		out.WriteBytes(d)
		return nil

	default:
		return fmt.Errorf("text: unhandled type kind %s", t.Kind)
	}
}

func readEnum(sc *lineScanner, indent int, t schema.Type, out *arena.Writer) error {
	if !t.EnumIsFlags {
		line, err := sc.expectLine(indent)
		if err != nil {
			return err
		}
		for _, ev := range t.EnumValues {
			if ev.Name == line {
				writeUintN(out, ev.Value, t.Size)
				return nil
			}
		}
		v, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: enum value %q", errs.ErrBadValue, line)
		}
		writeUintN(out, v, t.Size)
		return nil
	}

	var v uint64
	for {
		cont, err := sc.tryContinueCurrentIndent(indent)
		if err != nil {
			return err
		}
		if !cont {
			break
		}
		line, err := sc.expectLine(indent)
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}
		name, ok := strings.CutPrefix(line, "+ ")
		if !ok {
			return fmt.Errorf("%w: flag line %q", errs.ErrBadValue, line)
		}
		mask, err := flagValue(t.EnumValues, name)
		if err != nil {
			return err
		}
		v |= mask
	}
	writeUintN(out, v, t.Size)
	return nil
}

// flagValue resolves one "+ " flag line's remainder against the named
// bits, accepting an uppercase hex residue for unnamed bits — hex is
// only tried when the text matches no name, same as the original's
// name-first scan.
func flagValue(values []schema.EnumValue, name string) (uint64, error) {
	for _, ev := range values {
		if ev.Name == name {
			return ev.Value, nil
		}
	}
	v, err := strconv.ParseUint(name, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: flag %q", errs.ErrBadFlagHex, name)
	}
	return v, nil
}

func readStruct(sc *lineScanner, indent int, t schema.Type, out *arena.Writer, recType model.Tag, o *Options) error {
	start := out.Len()
	for _, m := range t.StructFields {
		if m.Type.Kind == schema.KindConstant {
			out.WriteBytes(m.Type.ConstantValue)
			continue
		}
		line, err := sc.expectLine(indent)
		if err != nil {
			return err
		}
		if line != m.Name {
			return fmt.Errorf("%w: expected struct member %q, got %q", errs.ErrSubrecordExhausted, m.Name, line)
		}
		if err := readValue(sc, indent+1, m.Type, out, recType, o); err != nil {
			return err
		}
	}
	if t.Size != 0 && out.Len()-start != t.Size {
		return fmt.Errorf("%w: struct decoded to %d bytes, want %d", errs.ErrSubrecordExhausted, out.Len()-start, t.Size)
	}
	return nil
}

// readString parses a quoted single-line string or a triple-quoted
// block, the inverse of writeString. Block content lines are consumed
// raw: they sit at the value indent and may legitimately begin with a
// literal space.
func readString(sc *lineScanner, indent int) (string, error) {
	line, err := sc.expectLine(indent)
	if err != nil {
		return "", err
	}

	if line == `"""` {
		var lines []string
		for {
			raw, err := sc.rawLine(indent)
			if err != nil {
				return "", err
			}
			if raw == `"""` {
				return strings.Join(lines, "\n"), nil
			}
			lines = append(lines, strings.ReplaceAll(raw, `\"`, `"`))
		}
	}

	if len(line) < 2 || line[0] != '"' || line[len(line)-1] != '"' {
		return "", fmt.Errorf("%w: string %q", errs.ErrInvalidString, line)
	}
	return line[1 : len(line)-1], nil
}

func parseFormID(line string) (uint32, error) {
	if len(line) != 10 || line[0] != '[' || line[9] != ']' {
		return 0, fmt.Errorf("%w: form id %q", errs.ErrBadValue, line)
	}
	v, err := strconv.ParseUint(line[1:9], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: form id %q", errs.ErrBadValue, line)
	}
	return uint32(v), nil
}

func writeUintN(out *arena.Writer, v uint64, n int) {
	out.WriteUint(v, n)
}
