// Package vmad decodes and encodes VMAD ("virtual machine attached
// data"), the sub-format attaching Papyrus script instances and
// properties to a record, plus the record-type-conditional tails INFO
// and QUST append to it for dialogue and quest fragments.
package vmad

import (
	"fmt"

	"github.com/tesrec/plugin2text/arena"
	"github.com/tesrec/plugin2text/errs"
)

// PropertyType is a Papyrus property's value kind.
type PropertyType uint8

const (
	PropertyObject      PropertyType = 1
	PropertyString      PropertyType = 2
	PropertyInt         PropertyType = 3
	PropertyFloat       PropertyType = 4
	PropertyBool        PropertyType = 5
	PropertyObjectArray PropertyType = 11
	PropertyStringArray PropertyType = 12
	PropertyIntArray    PropertyType = 13
	PropertyFloatArray  PropertyType = 14
	PropertyBoolArray   PropertyType = 15
)

// Property is one Papyrus property attached to a Script.
type Property struct {
	Name   string
	Type   PropertyType
	Status uint8

	Object      ObjectRef
	String      string
	Int         int32
	Float       float32
	Bool        bool
	ObjectArray []ObjectRef
	StringArray []string
	IntArray    []int32
	FloatArray  []float32
	BoolArray   []bool
}

// ObjectRef is a Papyrus Object-typed property value in the V2 object
// format: a form reference plus an alias index.
type ObjectRef struct {
	FormID uint32
	Alias  uint16
}

// Script is one Papyrus script instance attached to the record.
type Script struct {
	Name       string
	Status     uint8
	Properties []Property
}

// Fragment is one INFO dialogue fragment (Start/End).
type Fragment struct {
	ScriptName   string
	FragmentName string
}

// QuestFragment is one QUST stage fragment.
type QuestFragment struct {
	Index       uint16
	LogEntry    uint32
	ScriptName  string
	FunctionName string
}

// Alias is one QUST alias entry. Version and ObjectFormat repeat the
// enclosing header's pair; the text form does not render them and the
// reader re-synthesizes them from the header.
type Alias struct {
	Object       ObjectRef
	Version      uint16
	ObjectFormat uint16
	Scripts      []Script
}

// Data is a fully decoded VMAD field, including whichever
// record-type-conditional tail applies.
type Data struct {
	Version      int16
	ObjectFormat int16
	Scripts      []Script

	// INFO tail
	HasInfoTail  bool
	FragmentFile string
	StartFrag    *Fragment
	EndFrag      *Fragment

	// QUST tail
	HasQuestTail    bool
	QuestFile       string
	QuestFragments  []QuestFragment
	Aliases         []Alias
}

// RecordKind selects which conditional tail, if any, Decode/Encode
// should expect — the text package passes this in based on the
// enclosing record's type tag, since VMAD's own bytes don't self-
// describe it.
type RecordKind int

const (
	RecordOther RecordKind = iota
	RecordInfo
	RecordQuest
)

// Decode parses raw VMAD field bytes.
func Decode(data []byte, kind RecordKind) (*Data, error) {
	r := arena.NewReader(data)
	d := &Data{}

	ver, err := r.Int16()
	if err != nil {
		return nil, fmt.Errorf("vmad version: %w", err)
	}
	d.Version = ver

	objFmt, err := r.Int16()
	if err != nil {
		return nil, fmt.Errorf("vmad object format: %w", err)
	}
	d.ObjectFormat = objFmt

	scriptCount, err := r.Uint16()
	if err != nil {
		return nil, fmt.Errorf("vmad script count: %w", err)
	}

	for i := uint16(0); i < scriptCount; i++ {
		s, err := decodeScript(r, ver)
		if err != nil {
			return nil, err
		}
		d.Scripts = append(d.Scripts, *s)
	}

	if r.Done() {
		return d, nil
	}

	switch kind {
	case RecordInfo:
		if err := decodeInfoTail(r, d); err != nil {
			return nil, err
		}
	case RecordQuest:
		if err := decodeQuestTail(r, d); err != nil {
			return nil, err
		}
	}

	if !r.Done() {
		return nil, fmt.Errorf("%w: %d trailing vmad bytes", errs.ErrOversizedField, r.Remaining())
	}
	return d, nil
}

func decodeString(r *arena.Reader) (string, error) {
	return r.WString()
}

// decodeScript reads one Papyrus script instance. The Status byte is only
// present starting at VMAD version 4 (esp_to_text.cpp/text_to_esp.cpp both
// gate it on header->version >= 4); ver is the enclosing Data.Version.
func decodeScript(r *arena.Reader, ver int16) (*Script, error) {
	name, err := decodeString(r)
	if err != nil {
		return nil, fmt.Errorf("vmad script name: %w", err)
	}
	s := &Script{Name: name}
	if ver >= 4 {
		status, err := r.Uint8()
		if err != nil {
			return nil, err
		}
		s.Status = status
	}
	propCount, err := r.Uint16()
	if err != nil {
		return nil, err
	}

	for i := uint16(0); i < propCount; i++ {
		p, err := decodeProperty(r, ver)
		if err != nil {
			return nil, err
		}
		s.Properties = append(s.Properties, *p)
	}
	return s, nil
}

func decodeObjectRef(r *arena.Reader) (ObjectRef, error) {
	var o ObjectRef
	formID, err := r.Uint32()
	if err != nil {
		return o, err
	}
	alias, err := r.Uint16()
	if err != nil {
		return o, err
	}
	return ObjectRef{FormID: formID, Alias: alias}, nil
}

func decodeProperty(r *arena.Reader, ver int16) (*Property, error) {
	name, err := decodeString(r)
	if err != nil {
		return nil, fmt.Errorf("vmad property name: %w", err)
	}
	typ, err := r.Uint8()
	if err != nil {
		return nil, err
	}

	p := &Property{Name: name, Type: PropertyType(typ)}
	if ver >= 4 {
		status, err := r.Uint8()
		if err != nil {
			return nil, err
		}
		p.Status = status
	}

	switch p.Type {
	case PropertyObject:
		p.Object, err = decodeObjectRef(r)
	case PropertyString:
		p.String, err = decodeString(r)
	case PropertyInt:
		p.Int, err = r.Int32()
	case PropertyFloat:
		var f float32
		f, err = r.Float32()
		p.Float = f
	case PropertyBool:
		var b uint8
		b, err = r.Uint8()
		p.Bool = b != 0
	case PropertyObjectArray:
		var count uint32
		count, err = r.Uint32()
		if err == nil {
			for i := uint32(0); i < count && err == nil; i++ {
				var o ObjectRef
				o, err = decodeObjectRef(r)
				p.ObjectArray = append(p.ObjectArray, o)
			}
		}
	case PropertyStringArray:
		var count uint32
		count, err = r.Uint32()
		if err == nil {
			for i := uint32(0); i < count && err == nil; i++ {
				var s string
				s, err = decodeString(r)
				p.StringArray = append(p.StringArray, s)
			}
		}
	case PropertyIntArray:
		var count uint32
		count, err = r.Uint32()
		if err == nil {
			for i := uint32(0); i < count && err == nil; i++ {
				var v int32
				v, err = r.Int32()
				p.IntArray = append(p.IntArray, v)
			}
		}
	case PropertyFloatArray:
		var count uint32
		count, err = r.Uint32()
		if err == nil {
			for i := uint32(0); i < count && err == nil; i++ {
				var v float32
				v, err = r.Float32()
				p.FloatArray = append(p.FloatArray, v)
			}
		}
	case PropertyBoolArray:
		var count uint32
		count, err = r.Uint32()
		if err == nil {
			for i := uint32(0); i < count && err == nil; i++ {
				var v uint8
				v, err = r.Uint8()
				p.BoolArray = append(p.BoolArray, v != 0)
			}
		}
	default:
		return nil, fmt.Errorf("%w: unknown papyrus property type %d", errs.ErrBadMagic, typ)
	}

	if err != nil {
		return nil, fmt.Errorf("vmad property %q value: %w", name, err)
	}
	return p, nil
}

// tailVersion is the constant u8 both record-specific tails begin
// with.
const tailVersion = 2

func decodeInfoTail(r *arena.Reader, d *Data) error {
	d.HasInfoTail = true

	version, err := r.Uint8()
	if err != nil {
		return fmt.Errorf("vmad info tail version: %w", err)
	}
	if version != tailVersion {
		return fmt.Errorf("%w: info tail version %d", errs.ErrConstantMismatch, version)
	}

	flags, err := r.Uint8()
	if err != nil {
		return fmt.Errorf("vmad info fragment flags: %w", err)
	}

	file, err := decodeString(r)
	if err != nil {
		return fmt.Errorf("vmad fragment file: %w", err)
	}
	d.FragmentFile = file

	if flags&0x1 != 0 {
		start, err := decodeFragment(r)
		if err != nil {
			return err
		}
		d.StartFrag = start
	}
	if flags&0x2 != 0 {
		end, err := decodeFragment(r)
		if err != nil {
			return err
		}
		d.EndFrag = end
	}
	return nil
}

// fragmentVersion is the constant u8 each INFO fragment begins with
// (spec.md §4.2: "fragment = { u8 = 1; wstring script_name; wstring
// fragment_name }").
const fragmentVersion = 1

func decodeFragment(r *arena.Reader) (*Fragment, error) {
	version, err := r.Uint8()
	if err != nil {
		return nil, fmt.Errorf("vmad fragment version: %w", err)
	}
	if version != fragmentVersion {
		return nil, fmt.Errorf("%w: fragment version %d", errs.ErrConstantMismatch, version)
	}
	scriptName, err := decodeString(r)
	if err != nil {
		return nil, err
	}
	fragName, err := decodeString(r)
	if err != nil {
		return nil, err
	}
	return &Fragment{ScriptName: scriptName, FragmentName: fragName}, nil
}

func decodeQuestTail(r *arena.Reader, d *Data) error {
	d.HasQuestTail = true

	version, err := r.Uint8()
	if err != nil {
		return fmt.Errorf("vmad quest tail version: %w", err)
	}
	if version != tailVersion {
		return fmt.Errorf("%w: quest tail version %d", errs.ErrConstantMismatch, version)
	}

	fragCount, err := r.Uint16()
	if err != nil {
		return err
	}

	file, err := decodeString(r)
	if err != nil {
		return fmt.Errorf("vmad quest file: %w", err)
	}
	d.QuestFile = file
	for i := uint16(0); i < fragCount; i++ {
		idx, err := r.Uint16()
		if err != nil {
			return err
		}
		if _, err := r.Uint16(); err != nil { // write_constant<uint16_t>(0) padding
			return err
		}
		logEntry, err := r.Uint32()
		if err != nil {
			return err
		}
		if _, err := r.Uint8(); err != nil { // write_constant<uint8_t>(1)
			return err
		}
		scriptName, err := decodeString(r)
		if err != nil {
			return err
		}
		funcName, err := decodeString(r)
		if err != nil {
			return err
		}
		d.QuestFragments = append(d.QuestFragments, QuestFragment{
			Index: idx, LogEntry: logEntry, ScriptName: scriptName, FunctionName: funcName,
		})
	}

	aliasCount, err := r.Uint16()
	if err != nil {
		return err
	}
	for i := uint16(0); i < aliasCount; i++ {
		obj, err := decodeObjectRef(r)
		if err != nil {
			return err
		}
		ver, err := r.Uint16()
		if err != nil {
			return err
		}
		objFmt, err := r.Uint16()
		if err != nil {
			return err
		}
		scriptCount, err := r.Uint16()
		if err != nil {
			return err
		}
		a := Alias{Object: obj, Version: ver, ObjectFormat: objFmt}
		for j := uint16(0); j < scriptCount; j++ {
			s, err := decodeScript(r, d.Version)
			if err != nil {
				return err
			}
			a.Scripts = append(a.Scripts, *s)
		}
		d.Aliases = append(d.Aliases, a)
	}

	return nil
}

// Encode serializes Data back to VMAD field bytes.
func Encode(d *Data) []byte {
	w := arena.NewWriter(256)
	w.WriteInt16(d.Version)
	w.WriteInt16(d.ObjectFormat)
	w.WriteUint16(uint16(len(d.Scripts)))
	for _, s := range d.Scripts {
		encodeScript(w, s, d.Version)
	}

	if d.HasInfoTail {
		var flags uint8
		if d.StartFrag != nil {
			flags |= 0x1
		}
		if d.EndFrag != nil {
			flags |= 0x2
		}
		w.WriteUint8(tailVersion)
		w.WriteUint8(flags)
		encodeString(w, d.FragmentFile)
		if d.StartFrag != nil {
			encodeFragment(w, *d.StartFrag)
		}
		if d.EndFrag != nil {
			encodeFragment(w, *d.EndFrag)
		}
	} else if d.HasQuestTail {
		w.WriteUint8(tailVersion)
		w.WriteUint16(uint16(len(d.QuestFragments)))
		encodeString(w, d.QuestFile)
		for _, f := range d.QuestFragments {
			w.WriteUint16(f.Index)
			w.WriteUint16(0)
			w.WriteUint32(f.LogEntry)
			w.WriteUint8(1)
			encodeString(w, f.ScriptName)
			encodeString(w, f.FunctionName)
		}
		w.WriteUint16(uint16(len(d.Aliases)))
		for _, a := range d.Aliases {
			encodeObjectRef(w, a.Object)
			w.WriteUint16(a.Version)
			w.WriteUint16(a.ObjectFormat)
			w.WriteUint16(uint16(len(a.Scripts)))
			for _, s := range a.Scripts {
				encodeScript(w, s, d.Version)
			}
		}
	}

	return w.Bytes()
}

func encodeString(w *arena.Writer, s string) {
	w.WriteUint16(uint16(len(s)))
	w.WriteBytes([]byte(s))
}

func encodeObjectRef(w *arena.Writer, o ObjectRef) {
	w.WriteUint32(o.FormID)
	w.WriteUint16(o.Alias)
}

func encodeFragment(w *arena.Writer, f Fragment) {
	w.WriteUint8(fragmentVersion)
	encodeString(w, f.ScriptName)
	encodeString(w, f.FragmentName)
}

func encodeScript(w *arena.Writer, s Script, ver int16) {
	encodeString(w, s.Name)
	if ver >= 4 {
		w.WriteUint8(s.Status)
	}
	w.WriteUint16(uint16(len(s.Properties)))
	for _, p := range s.Properties {
		encodeProperty(w, p, ver)
	}
}

func encodeProperty(w *arena.Writer, p Property, ver int16) {
	encodeString(w, p.Name)
	w.WriteUint8(uint8(p.Type))
	if ver >= 4 {
		w.WriteUint8(p.Status)
	}

	switch p.Type {
	case PropertyObject:
		encodeObjectRef(w, p.Object)
	case PropertyString:
		encodeString(w, p.String)
	case PropertyInt:
		w.WriteInt32(p.Int)
	case PropertyFloat:
		w.WriteFloat32(p.Float)
	case PropertyBool:
		b := uint8(0)
		if p.Bool {
			b = 1
		}
		w.WriteUint8(b)
	case PropertyObjectArray:
		w.WriteUint32(uint32(len(p.ObjectArray)))
		for _, o := range p.ObjectArray {
			encodeObjectRef(w, o)
		}
	case PropertyStringArray:
		w.WriteUint32(uint32(len(p.StringArray)))
		for _, s := range p.StringArray {
			encodeString(w, s)
		}
	case PropertyIntArray:
		w.WriteUint32(uint32(len(p.IntArray)))
		for _, v := range p.IntArray {
			w.WriteInt32(v)
		}
	case PropertyFloatArray:
		w.WriteUint32(uint32(len(p.FloatArray)))
		for _, v := range p.FloatArray {
			w.WriteFloat32(v)
		}
	case PropertyBoolArray:
		w.WriteUint32(uint32(len(p.BoolArray)))
		for _, v := range p.BoolArray {
			b := uint8(0)
			if v {
				b = 1
			}
			w.WriteUint8(b)
		}
	}
}
