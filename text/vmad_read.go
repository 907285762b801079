package text

import (
	"fmt"
	"strconv"

	"github.com/tesrec/plugin2text/errs"
	"github.com/tesrec/plugin2text/model"
	"github.com/tesrec/plugin2text/vmad"
)

// readVMAD parses a VMAD custom-block tree back into binary field
// bytes. It rebuilds a vmad.Data and re-encodes it rather than writing
// bytes as it goes: the script and property counts precede their
// entries on disk, and the text form carries no counts at all.
func readVMAD(sc *lineScanner, indent int, recType model.Tag) ([]byte, error) {
	d := &vmad.Data{}

	ver, err := readCustomInt(sc, indent, "Version")
	if err != nil {
		return nil, err
	}
	d.Version = int16(ver)
	if d.Version < 2 || d.Version > 5 {
		return nil, fmt.Errorf("%w: vmad version %d", errs.ErrBadMagic, d.Version)
	}

	objFmt, err := readCustomInt(sc, indent, "Object Format")
	if err != nil {
		return nil, err
	}
	d.ObjectFormat = int16(objFmt)
	if d.ObjectFormat != 2 {
		return nil, fmt.Errorf("%w: vmad object format %d", errs.ErrBadMagic, d.ObjectFormat)
	}

	for {
		ok, err := tryBlock(sc, indent, "Script")
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		s, err := readVMADScript(sc, indent+1, d.Version)
		if err != nil {
			return nil, err
		}
		d.Scripts = append(d.Scripts, *s)
	}

	switch vmadKind(recType) {
	case vmad.RecordInfo:
		if peek, ok := peekRest(sc, indent); ok && peek == "Fragment Script File Name" {
			d.HasInfoTail = true
			d.FragmentFile, err = readCustomString(sc, indent, "Fragment Script File Name")
			if err != nil {
				return nil, err
			}
			d.StartFrag, err = readVMADInfoFragment(sc, indent, "Start Fragment")
			if err != nil {
				return nil, err
			}
			d.EndFrag, err = readVMADInfoFragment(sc, indent, "End Fragment")
			if err != nil {
				return nil, err
			}
		}
	case vmad.RecordQuest:
		if peek, ok := peekRest(sc, indent); ok && peek == "File Name" {
			d.HasQuestTail = true
			d.QuestFile, err = readCustomString(sc, indent, "File Name")
			if err != nil {
				return nil, err
			}
			for {
				ok, err := tryBlock(sc, indent, "Fragment")
				if err != nil {
					return nil, err
				}
				if !ok {
					break
				}
				frag, err := readVMADQuestFragment(sc, indent+1)
				if err != nil {
					return nil, err
				}
				d.QuestFragments = append(d.QuestFragments, *frag)
			}
			for {
				ok, err := tryBlock(sc, indent, "Alias")
				if err != nil {
					return nil, err
				}
				if !ok {
					break
				}
				a, err := readVMADAlias(sc, indent+1, d)
				if err != nil {
					return nil, err
				}
				d.Aliases = append(d.Aliases, *a)
			}
		}
	}

	return vmad.Encode(d), nil
}

func readVMADScript(sc *lineScanner, indent int, ver int16) (*vmad.Script, error) {
	name, err := readCustomString(sc, indent, "Name")
	if err != nil {
		return nil, err
	}
	s := &vmad.Script{Name: name}

	if ver >= 4 {
		status, err := readCustomInt(sc, indent, "Status")
		if err != nil {
			return nil, err
		}
		s.Status = uint8(status)
	}

	for {
		ok, err := tryBlock(sc, indent, "Property")
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		p, err := readVMADProperty(sc, indent+1, ver)
		if err != nil {
			return nil, err
		}
		s.Properties = append(s.Properties, *p)
	}
	return s, nil
}

func readVMADProperty(sc *lineScanner, indent int, ver int16) (*vmad.Property, error) {
	name, err := readCustomString(sc, indent, "Name")
	if err != nil {
		return nil, err
	}
	p := &vmad.Property{Name: name}

	if ver >= 4 {
		status, err := readCustomInt(sc, indent, "Status")
		if err != nil {
			return nil, err
		}
		p.Status = uint8(status)
	}

	label, err := sc.expectLine(indent)
	if err != nil {
		return nil, err
	}

	switch label {
	case "Object":
		p.Type = vmad.PropertyObject
		p.Object, err = readVMADObjectBody(sc, indent+1)
	case "String":
		p.Type = vmad.PropertyString
		p.String, err = readString(sc, indent+1)
	case "Int":
		p.Type = vmad.PropertyInt
		var v int64
		v, err = readIntLine(sc, indent+1)
		p.Int = int32(v)
	case "Float":
		p.Type = vmad.PropertyFloat
		p.Float, err = readFloatLine(sc, indent+1)
	case "Bool":
		p.Type = vmad.PropertyBool
		p.Bool, err = readBoolLine(sc, indent+1)
	case "Object[]":
		p.Type = vmad.PropertyObjectArray
		for {
			var ok bool
			ok, err = tryBlock(sc, indent+1, "Object")
			if err != nil || !ok {
				break
			}
			var o vmad.ObjectRef
			o, err = readVMADObjectBody(sc, indent+2)
			if err != nil {
				break
			}
			p.ObjectArray = append(p.ObjectArray, o)
		}
	case "String[]":
		p.Type = vmad.PropertyStringArray
		for {
			var ok bool
			ok, err = tryBlock(sc, indent+1, "String")
			if err != nil || !ok {
				break
			}
			var v string
			v, err = readString(sc, indent+2)
			if err != nil {
				break
			}
			p.StringArray = append(p.StringArray, v)
		}
	case "Int[]":
		p.Type = vmad.PropertyIntArray
		for {
			var ok bool
			ok, err = tryBlock(sc, indent+1, "Int")
			if err != nil || !ok {
				break
			}
			var v int64
			v, err = readIntLine(sc, indent+2)
			if err != nil {
				break
			}
			p.IntArray = append(p.IntArray, int32(v))
		}
	case "Float[]":
		p.Type = vmad.PropertyFloatArray
		for {
			var ok bool
			ok, err = tryBlock(sc, indent+1, "Float")
			if err != nil || !ok {
				break
			}
			var v float32
			v, err = readFloatLine(sc, indent+2)
			if err != nil {
				break
			}
			p.FloatArray = append(p.FloatArray, v)
		}
	case "Bool[]":
		p.Type = vmad.PropertyBoolArray
		for {
			var ok bool
			ok, err = tryBlock(sc, indent+1, "Bool")
			if err != nil || !ok {
				break
			}
			var v bool
			v, err = readBoolLine(sc, indent+2)
			if err != nil {
				break
			}
			p.BoolArray = append(p.BoolArray, v)
		}
	default:
		return nil, fmt.Errorf("%w: papyrus property value %q", errs.ErrBadMagic, label)
	}

	if err != nil {
		return nil, err
	}
	return p, nil
}

// readVMADObjectBody reads the two custom fields inside an Object
// block whose header line the caller already consumed.
func readVMADObjectBody(sc *lineScanner, indent int) (vmad.ObjectRef, error) {
	var o vmad.ObjectRef
	if err := expectCustomLine(sc, indent, "Form ID"); err != nil {
		return o, err
	}
	line, err := sc.expectLine(indent + 1)
	if err != nil {
		return o, err
	}
	v, err := parseFormID(line)
	if err != nil {
		return o, err
	}
	o.FormID = v

	alias, err := readCustomInt(sc, indent, "Alias")
	if err != nil {
		return o, err
	}
	o.Alias = uint16(alias)
	return o, nil
}

func readVMADInfoFragment(sc *lineScanner, indent int, name string) (*vmad.Fragment, error) {
	ok, err := tryBlock(sc, indent, name)
	if err != nil || !ok {
		return nil, err
	}
	f := &vmad.Fragment{}
	f.ScriptName, err = readCustomString(sc, indent+1, "Script Name")
	if err != nil {
		return nil, err
	}
	f.FragmentName, err = readCustomString(sc, indent+1, "Fragment Name")
	if err != nil {
		return nil, err
	}
	return f, nil
}

func readVMADQuestFragment(sc *lineScanner, indent int) (*vmad.QuestFragment, error) {
	f := &vmad.QuestFragment{}

	idx, err := readCustomInt(sc, indent, "Index")
	if err != nil {
		return nil, err
	}
	f.Index = uint16(idx)

	logEntry, err := readCustomInt(sc, indent, "Log Entry")
	if err != nil {
		return nil, err
	}
	f.LogEntry = uint32(logEntry)

	f.ScriptName, err = readCustomString(sc, indent, "Script Name")
	if err != nil {
		return nil, err
	}
	f.FunctionName, err = readCustomString(sc, indent, "Function Name")
	if err != nil {
		return nil, err
	}
	return f, nil
}

// readVMADAlias reads one QUST alias block. The alias's own
// version/object-format pair is not rendered to text; it always repeats
// the enclosing header's, so the reader re-synthesizes it from there.
func readVMADAlias(sc *lineScanner, indent int, d *vmad.Data) (*vmad.Alias, error) {
	a := &vmad.Alias{
		Version:      uint16(d.Version),
		ObjectFormat: uint16(d.ObjectFormat),
	}

	if err := expectCustomLine(sc, indent, "Object"); err != nil {
		return nil, err
	}
	obj, err := readVMADObjectBody(sc, indent+1)
	if err != nil {
		return nil, err
	}
	a.Object = obj

	for {
		ok, err := tryBlock(sc, indent, "Script")
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		s, err := readVMADScript(sc, indent+1, d.Version)
		if err != nil {
			return nil, err
		}
		a.Scripts = append(a.Scripts, *s)
	}
	return a, nil
}

// tryBlock consumes a bare block-header line at indent when its text
// matches name, the peek-and-accept primitive custom blocks parse with.
func tryBlock(sc *lineScanner, indent int, name string) (bool, error) {
	cont, err := sc.tryContinueCurrentIndent(indent)
	if err != nil || !cont {
		return false, err
	}
	peek, _ := peekRest(sc, indent)
	if peek != name {
		return false, nil
	}
	_, err = sc.expectLine(indent)
	return true, err
}

func expectCustomLine(sc *lineScanner, indent int, name string) error {
	line, err := sc.expectLine(indent)
	if err != nil {
		return err
	}
	if line != name {
		return fmt.Errorf("%w: expected %q, got %q", errs.ErrBadMagic, name, line)
	}
	return nil
}

func readCustomInt(sc *lineScanner, indent int, name string) (int64, error) {
	if err := expectCustomLine(sc, indent, name); err != nil {
		return 0, err
	}
	return readIntLine(sc, indent+1)
}

func readCustomString(sc *lineScanner, indent int, name string) (string, error) {
	if err := expectCustomLine(sc, indent, name); err != nil {
		return "", err
	}
	return readString(sc, indent+1)
}

func readIntLine(sc *lineScanner, indent int) (int64, error) {
	line, err := sc.expectLine(indent)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: integer %q", errs.ErrBadValue, line)
	}
	return v, nil
}

func readFloatLine(sc *lineScanner, indent int) (float32, error) {
	line, err := sc.expectLine(indent)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(line, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: float %q", errs.ErrBadValue, line)
	}
	return float32(v), nil
}

func readBoolLine(sc *lineScanner, indent int) (bool, error) {
	line, err := sc.expectLine(indent)
	if err != nil {
		return false, err
	}
	switch line {
	case "True":
		return true, nil
	case "False":
		return false, nil
	}
	return false, fmt.Errorf("%w: bool %q", errs.ErrBadValue, line)
}
