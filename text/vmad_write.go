package text

import (
	"fmt"

	"github.com/tesrec/plugin2text/model"
	"github.com/tesrec/plugin2text/vmad"
)

// VMAD renders as nested custom blocks: a block is a bare header line
// with its contents one indent deeper, and a custom field is a bare
// name line with its value one indent deeper. Property values are
// labeled by their own property-type name — Int and Float would render
// identically for a whole-numbered float, so the type name is what
// lets the reader pick the right kind back.

func vmadKind(recType model.Tag) vmad.RecordKind {
	switch recType {
	case model.Tag{'I', 'N', 'F', 'O'}:
		return vmad.RecordInfo
	case model.Tag{'Q', 'U', 'S', 'T'}:
		return vmad.RecordQuest
	}
	return vmad.RecordOther
}

func propertyTypeName(t vmad.PropertyType) string {
	switch t {
	case vmad.PropertyObject:
		return "Object"
	case vmad.PropertyString:
		return "String"
	case vmad.PropertyInt:
		return "Int"
	case vmad.PropertyFloat:
		return "Float"
	case vmad.PropertyBool:
		return "Bool"
	case vmad.PropertyObjectArray:
		return "Object[]"
	case vmad.PropertyStringArray:
		return "String[]"
	case vmad.PropertyIntArray:
		return "Int[]"
	case vmad.PropertyFloatArray:
		return "Float[]"
	case vmad.PropertyBoolArray:
		return "Bool[]"
	}
	return ""
}

func writeVMAD(w *writer, indent int, recType model.Tag, data []byte) error {
	d, err := vmad.Decode(data, vmadKind(recType))
	if err != nil {
		return err
	}

	writeCustomInt(w, indent, "Version", int64(d.Version))
	writeCustomInt(w, indent, "Object Format", int64(d.ObjectFormat))

	if err := writeVMADScripts(w, indent, d.Scripts, d.Version); err != nil {
		return err
	}

	if d.HasInfoTail {
		if err := writeCustomString(w, indent, "Fragment Script File Name", d.FragmentFile); err != nil {
			return err
		}
		if d.StartFrag != nil {
			if err := writeVMADInfoFragment(w, indent, "Start Fragment", *d.StartFrag); err != nil {
				return err
			}
		}
		if d.EndFrag != nil {
			if err := writeVMADInfoFragment(w, indent, "End Fragment", *d.EndFrag); err != nil {
				return err
			}
		}
	} else if d.HasQuestTail {
		if err := writeCustomString(w, indent, "File Name", d.QuestFile); err != nil {
			return err
		}
		for _, frag := range d.QuestFragments {
			w.line(indent, "Fragment")
			writeCustomInt(w, indent+1, "Index", int64(frag.Index))
			writeCustomInt(w, indent+1, "Log Entry", int64(frag.LogEntry))
			if err := writeCustomString(w, indent+1, "Script Name", frag.ScriptName); err != nil {
				return err
			}
			if err := writeCustomString(w, indent+1, "Function Name", frag.FunctionName); err != nil {
				return err
			}
		}
		for _, a := range d.Aliases {
			w.line(indent, "Alias")
			writeVMADObject(w, indent+1, a.Object)
			if err := writeVMADScripts(w, indent+1, a.Scripts, d.Version); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeVMADScripts(w *writer, indent int, scripts []vmad.Script, ver int16) error {
	for _, s := range scripts {
		w.line(indent, "Script")
		if err := writeCustomString(w, indent+1, "Name", s.Name); err != nil {
			return err
		}
		if ver >= 4 {
			writeCustomInt(w, indent+1, "Status", int64(s.Status))
		}
		for _, p := range s.Properties {
			w.line(indent+1, "Property")
			if err := writeCustomString(w, indent+2, "Name", p.Name); err != nil {
				return err
			}
			if ver >= 4 {
				writeCustomInt(w, indent+2, "Status", int64(p.Status))
			}
			if err := writeVMADPropertyValue(w, indent+2, p); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeVMADPropertyValue(w *writer, indent int, p vmad.Property) error {
	name := propertyTypeName(p.Type)
	switch p.Type {
	case vmad.PropertyObject:
		writeVMADObject(w, indent, p.Object)
	case vmad.PropertyString:
		return writeCustomString(w, indent, name, p.String)
	case vmad.PropertyInt:
		writeCustomInt(w, indent, name, int64(p.Int))
	case vmad.PropertyFloat:
		w.line(indent, "%s", name)
		w.line(indent+1, "%s", formatFloat(p.Float))
	case vmad.PropertyBool:
		writeCustomBool(w, indent, name, p.Bool)
	case vmad.PropertyObjectArray:
		w.line(indent, "%s", name)
		for _, o := range p.ObjectArray {
			writeVMADObject(w, indent+1, o)
		}
	case vmad.PropertyStringArray:
		w.line(indent, "%s", name)
		for _, v := range p.StringArray {
			if err := writeCustomString(w, indent+1, "String", v); err != nil {
				return err
			}
		}
	case vmad.PropertyIntArray:
		w.line(indent, "%s", name)
		for _, v := range p.IntArray {
			writeCustomInt(w, indent+1, "Int", int64(v))
		}
	case vmad.PropertyFloatArray:
		w.line(indent, "%s", name)
		for _, v := range p.FloatArray {
			w.line(indent+1, "Float")
			w.line(indent+2, "%s", formatFloat(v))
		}
	case vmad.PropertyBoolArray:
		w.line(indent, "%s", name)
		for _, v := range p.BoolArray {
			writeCustomBool(w, indent+1, "Bool", v)
		}
	default:
		return fmt.Errorf("text: unhandled papyrus property type %d", p.Type)
	}
	return nil
}

func writeVMADObject(w *writer, indent int, o vmad.ObjectRef) {
	w.line(indent, "Object")
	w.line(indent+1, "Form ID")
	w.line(indent+2, "[%08X]", o.FormID)
	writeCustomInt(w, indent+1, "Alias", int64(o.Alias))
}

func writeVMADInfoFragment(w *writer, indent int, name string, f vmad.Fragment) error {
	w.line(indent, "%s", name)
	if err := writeCustomString(w, indent+1, "Script Name", f.ScriptName); err != nil {
		return err
	}
	return writeCustomString(w, indent+1, "Fragment Name", f.FragmentName)
}

func writeCustomInt(w *writer, indent int, name string, v int64) {
	w.line(indent, "%s", name)
	w.line(indent+1, "%d", v)
}

func writeCustomBool(w *writer, indent int, name string, v bool) {
	w.line(indent, "%s", name)
	if v {
		w.line(indent+1, "True")
	} else {
		w.line(indent+1, "False")
	}
}

func writeCustomString(w *writer, indent int, name string, s string) error {
	w.line(indent, "%s", name)
	return writeString(w, indent+1, s)
}
