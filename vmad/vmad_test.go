package vmad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesrec/plugin2text/arena"
)

func TestRoundTripSimpleScript(t *testing.T) {
	d := &Data{
		Version:      5,
		ObjectFormat: 2,
		Scripts: []Script{
			{
				Name:   "MyQuestScript",
				Status: 1,
				Properties: []Property{
					{Name: "TargetRef", Type: PropertyObject, Status: 1, Object: ObjectRef{FormID: 0x00012345, Alias: 3}},
					{Name: "Greeting", Type: PropertyString, Status: 1, String: "hello"},
					{Name: "Count", Type: PropertyInt, Status: 1, Int: -7},
					{Name: "Ratio", Type: PropertyFloat, Status: 1, Float: 0.5},
					{Name: "Flag", Type: PropertyBool, Status: 1, Bool: true},
					{Name: "Refs", Type: PropertyObjectArray, Status: 1, ObjectArray: []ObjectRef{{FormID: 1, Alias: 0}, {FormID: 2, Alias: 1}}},
					{Name: "Names", Type: PropertyStringArray, Status: 1, StringArray: []string{"a", "bb"}},
					{Name: "Ints", Type: PropertyIntArray, Status: 1, IntArray: []int32{1, 2, 3}},
					{Name: "Floats", Type: PropertyFloatArray, Status: 1, FloatArray: []float32{1.5, -2.5}},
					{Name: "Bools", Type: PropertyBoolArray, Status: 1, BoolArray: []bool{true, false, true}},
				},
			},
		},
	}

	encoded := Encode(d)
	got, err := Decode(encoded, RecordOther)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestRoundTripVersionBelow4OmitsStatus(t *testing.T) {
	d := &Data{
		Version:      2,
		ObjectFormat: 2,
		Scripts: []Script{
			{Name: "Script", Properties: []Property{
				{Name: "Prop", Type: PropertyInt, Int: 42},
			}},
		},
	}
	encoded := Encode(d)
	got, err := Decode(encoded, RecordOther)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestRoundTripInfoTailBothFragments(t *testing.T) {
	d := &Data{
		Version:      5,
		ObjectFormat: 2,
		HasInfoTail:  true,
		FragmentFile: "TIF__000001.pex",
		StartFrag:    &Fragment{ScriptName: "TIF__000001", FragmentName: "Fragment_0"},
		EndFrag:      &Fragment{ScriptName: "TIF__000001", FragmentName: "Fragment_1"},
	}
	encoded := Encode(d)
	got, err := Decode(encoded, RecordInfo)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestRoundTripInfoTailStartOnly(t *testing.T) {
	d := &Data{
		Version:      5,
		ObjectFormat: 2,
		HasInfoTail:  true,
		FragmentFile: "TIF__000002.pex",
		StartFrag:    &Fragment{ScriptName: "TIF__000002", FragmentName: "Fragment_0"},
	}
	encoded := Encode(d)
	got, err := Decode(encoded, RecordInfo)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestInfoTailRejectsBadVersionMarker(t *testing.T) {
	d := &Data{Version: 5, ObjectFormat: 2, HasInfoTail: true, FragmentFile: "x"}
	encoded := Encode(d)
	// Corrupt the tail's constant version byte: 2 bytes version + 2 bytes
	// object format + 2 bytes script count precede it.
	encoded[6] = 0x09
	_, err := Decode(encoded, RecordInfo)
	require.Error(t, err)
}

func TestRoundTripQuestTail(t *testing.T) {
	d := &Data{
		Version:      5,
		ObjectFormat: 2,
		HasQuestTail: true,
		QuestFile:    "MyQuest.psc",
		QuestFragments: []QuestFragment{
			{Index: 10, LogEntry: 0x01020304, ScriptName: "MyQuest", FunctionName: "Fragment_10"},
			{Index: 20, LogEntry: 0, ScriptName: "MyQuest", FunctionName: "Fragment_20"},
		},
		Aliases: []Alias{
			{
				Object:       ObjectRef{FormID: 0x00054321},
				Version:      5,
				ObjectFormat: 2,
				Scripts: []Script{
					{Name: "AliasScript", Status: 1, Properties: []Property{
						{Name: "P", Type: PropertyInt, Status: 1, Int: 1},
					}},
				},
			},
		},
	}
	encoded := Encode(d)
	got, err := Decode(encoded, RecordQuest)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestDecodeRejectsUnknownPropertyType(t *testing.T) {
	w := arena.NewWriter(64)
	w.WriteInt16(5)
	w.WriteInt16(2)
	w.WriteUint16(1) // one script
	encodeString(w, "S")
	w.WriteUint8(1)  // status (version >= 4)
	w.WriteUint16(1) // one property
	encodeString(w, "P")
	w.WriteUint8(99) // unknown property type
	w.WriteUint8(1)  // status

	_, err := Decode(w.Bytes(), RecordOther)
	require.Error(t, err)
}
