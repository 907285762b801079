package text

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesrec/plugin2text/arena"
	"github.com/tesrec/plugin2text/model"
	"github.com/tesrec/plugin2text/plugin"
	"github.com/tesrec/plugin2text/schema"
	"github.com/tesrec/plugin2text/vmad"
)

func buildTES4() *model.Record {
	hedr := arena.NewWriter(12)
	hedr.WriteFloat32(1.7)
	hedr.WriteInt32(1)
	hedr.WriteUint32(0x00000800)

	return &model.Record{
		Type:    model.Tag{'T', 'E', 'S', '4'},
		Version: 44,
		Fields: []model.Field{
			{Type: model.Tag{'H', 'E', 'D', 'R'}, Data: hedr.Bytes()},
			{Type: model.Tag{'M', 'A', 'S', 'T'}, Data: []byte("Skyrim.esm\x00")},
			{Type: model.Tag{'D', 'A', 'T', 'A'}, Data: make([]byte, 8)},
			{Type: model.Tag{'C', 'N', 'A', 'M'}, Data: []byte("Test Author\x00")},
			{Type: model.Tag{'S', 'N', 'A', 'M'}, Data: []byte("Test Description\x00")},
		},
	}
}

// buildWeaponData assembles a 100-byte DNAM payload with every Constant
// filler holding its required value.
func buildWeaponData() []byte {
	w := arena.NewWriter(100)
	w.WriteUint8(1)        // Animation Type
	w.WriteInt8(0)         // Unknown 0
	w.WriteInt16(0)        // Unknown 1
	w.WriteFloat32(1.0)    // Speed
	w.WriteFloat32(1.25)   // Reach
	w.WriteUint16(0)       // Flags
	w.WriteUint16(0)       // Flags?
	w.WriteFloat32(0)      // Sight FOV
	w.WriteUint32(0)       // filler
	w.WriteUint8(0)        // VATS to hit
	w.WriteInt8(-1)        // filler
	w.WriteUint8(1)        // Projectiles
	w.WriteInt8(0)         // Embedded Weapon
	w.WriteFloat32(500)    // Min Range
	w.WriteFloat32(2000)   // Max Range
	w.WriteUint32(0)       // filler
	w.WriteUint32(0)       // Flags 2
	w.WriteFloat32(1.0)    // filler
	w.WriteFloat32(0)      // Unknown
	w.WriteFloat32(0.5)    // Rumble Left
	w.WriteFloat32(0.5)    // Rumble Right
	w.WriteFloat32(0.33)   // Rumble Duration
	w.WriteUint32(0)       // filler x3
	w.WriteUint32(0)
	w.WriteUint32(0)
	w.WriteInt32(5) // Skill
	w.WriteUint32(0) // filler x2
	w.WriteUint32(0)
	w.WriteInt32(3)  // Resist
	w.WriteUint32(0) // filler
	w.WriteFloat32(0.75) // Stagger
	return w.Bytes()
}

func buildWeapon() *model.Record {
	etyp := arena.NewWriter(4)
	etyp.WriteUint32(0x00001234)

	data := arena.NewWriter(10)
	data.WriteInt32(25)
	data.WriteFloat32(12.5)
	data.WriteInt16(8)

	vnam := arena.NewWriter(4)
	vnam.WriteInt32(2)

	return &model.Record{
		Type:    model.Tag{'W', 'E', 'A', 'P'},
		FormID:  model.FormID(0x01000801),
		Version: 44,
		Fields: []model.Field{
			{Type: model.Tag{'E', 'T', 'Y', 'P'}, Data: etyp.Bytes()},
			{Type: model.Tag{'D', 'E', 'S', 'C'}, Data: []byte("A legendary blade\x00")},
			{Type: model.Tag{'D', 'A', 'T', 'A'}, Data: data.Bytes()},
			{Type: model.Tag{'D', 'N', 'A', 'M'}, Data: buildWeaponData()},
			{Type: model.Tag{'V', 'N', 'A', 'M'}, Data: vnam.Bytes()},
		},
	}
}

func buildDocument() *model.Document {
	tes4 := buildTES4()
	weap := buildWeapon()
	return &model.Document{
		Header: tes4,
		Nodes: []model.Node{
			tes4,
			&model.Group{
				Kind:  model.GroupTop,
				Label: [4]byte{'W', 'E', 'A', 'P'},
				Children: []model.Node{
					weap,
				},
			},
		},
	}
}

func roundTripText(t *testing.T, doc *model.Document, opts ...Option) (string, *model.Document) {
	t.Helper()
	reg := schema.Default()

	out, err := Encode(doc, reg, opts...)
	require.NoError(t, err)

	decoded, err := Decode(out, reg, opts...)
	require.NoError(t, err)

	reEncoded, err := Encode(decoded, reg, opts...)
	require.NoError(t, err)
	require.Equal(t, out, reEncoded, "text must be idempotent")

	return out, decoded
}

func TestTextRoundTripWeapon(t *testing.T) {
	doc := buildDocument()
	out, decoded := roundTripText(t, doc)

	assert.True(t, strings.HasPrefix(out, headerLine1+"\n"+headerLine2+"\n"))
	assert.Contains(t, out, "TES4 [00000000] - File Header\n")
	assert.Contains(t, out, "WEAP [01000801] - Weapon\n")
	assert.NotContains(t, out, "Constant")

	// The MAST/DATA pair renders only its Master File member; the DATA
	// filler is re-synthesized on decode.
	assert.Contains(t, out, "MAST - Master File\n")
	assert.NotContains(t, out, "DATA - Unused")
	tes4 := decoded.Header
	require.NotNil(t, tes4)
	require.Equal(t, model.Tag{'D', 'A', 'T', 'A'}, tes4.Fields[2].Type)
	assert.Equal(t, make([]byte, 8), tes4.Fields[2].Data)

	// Binary round trip through the same tree bit-equals the original.
	weapIn := doc.Nodes[1].(*model.Group).Children[0].(*model.Record)
	weapOut := decoded.Nodes[1].(*model.Group).Children[0].(*model.Record)
	assert.Equal(t, weapIn.Fields, weapOut.Fields)
}

func TestPluginAndTextRoundTripAgree(t *testing.T) {
	doc := buildDocument()
	reg := schema.Default()

	textOut, err := Encode(doc, reg)
	require.NoError(t, err)

	binOut, err := plugin.Encode(context.Background(), doc)
	require.NoError(t, err)

	redecoded, err := plugin.Decode(context.Background(), binOut)
	require.NoError(t, err)

	textOut2, err := Encode(redecoded, reg)
	require.NoError(t, err)
	assert.Equal(t, textOut, textOut2)

	fromText, err := Decode(textOut, reg)
	require.NoError(t, err)
	binOut2, err := plugin.Encode(context.Background(), fromText)
	require.NoError(t, err)
	assert.Equal(t, binOut, binOut2)
}

func TestTopGroupLabelInferredFromChild(t *testing.T) {
	doc := buildDocument()
	out, decoded := roundTripText(t, doc)

	// A Top group's header line carries no label.
	assert.Contains(t, out, "\nGRUP\n")

	g := decoded.Nodes[1].(*model.Group)
	assert.Equal(t, [4]byte{'W', 'E', 'A', 'P'}, g.Label)
}

func TestRecordVersionClause(t *testing.T) {
	rec := buildWeapon()
	rec.Version = 43
	doc := &model.Document{Nodes: []model.Node{rec}}

	out, decoded := roundTripText(t, doc)
	assert.Contains(t, out, "WEAP [01000801],v43 - Weapon\n")
	assert.Equal(t, uint16(43), decoded.Nodes[0].(*model.Record).Version)
}

func TestTimestampExport(t *testing.T) {
	rec := buildWeapon()
	// 21 Mar 2020: year-2000 in bits [15:9], month in [8:5], day in [4:0].
	rec.Timestamp = uint16(20<<9 | 3<<5 | 21)
	doc := &model.Document{Nodes: []model.Node{rec}}

	out, decoded := roundTripText(t, doc, WithExportTimestamp())
	assert.Contains(t, out, "\n  21 Mar 2020\n")
	assert.Equal(t, rec.Timestamp, decoded.Nodes[0].(*model.Record).Timestamp)

	// Without the option the line is absent and the timestamp is lost.
	plain, err := Encode(doc, schema.Default())
	require.NoError(t, err)
	assert.NotContains(t, plain, "21 Mar 2020")
}

func TestZeroTimestampNeverPrinted(t *testing.T) {
	rec := buildWeapon()
	rec.Timestamp = 0
	doc := &model.Document{Nodes: []model.Node{rec}}
	out, err := Encode(doc, schema.Default(), WithExportTimestamp())
	require.NoError(t, err)
	for _, m := range []string{"Jan", "Feb", "Mar"} {
		assert.NotContains(t, out, m)
	}
}

func TestRecordFlagsNamedAndResidue(t *testing.T) {
	rec := buildWeapon()
	rec.Flags = 0x20 | 0x40000 | 0x10000000
	doc := &model.Document{Nodes: []model.Node{rec}}

	out, decoded := roundTripText(t, doc)
	assert.Contains(t, out, "\n  + Deleted\n")
	assert.Contains(t, out, "\n  + Compressed\n")
	assert.Contains(t, out, "\n  + 10000000\n")
	assert.Equal(t, rec.Flags, decoded.Nodes[0].(*model.Record).Flags)
}

func TestMultilineStringRoundTrip(t *testing.T) {
	body := "She said \"no\".\nThen she left."
	rec := &model.Record{
		Type:   model.Tag{'I', 'N', 'F', 'O'},
		FormID: 5,
		Fields: []model.Field{
			{Type: model.Tag{'N', 'A', 'M', '1'}, Data: append([]byte(body), 0)},
		},
	}
	doc := &model.Document{Nodes: []model.Node{rec}}

	out, decoded := roundTripText(t, doc)
	assert.Contains(t, out, `"""`)
	assert.Contains(t, out, `\"no\"`)
	assert.Equal(t, append([]byte(body), 0), decoded.Nodes[0].(*model.Record).Fields[0].Data)
}

func TestUnknownRecordAndFieldPreserved(t *testing.T) {
	rec := &model.Record{
		Type:   model.Tag{'Z', 'Z', 'Z', 'Z'},
		FormID: 9,
		Fields: []model.Field{
			{Type: model.Tag{'A', 'B', 'C', 'D'}, Data: []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01}},
			{Type: model.Tag{'E', 'F', 'G', 'H'}, Data: []byte{}},
		},
	}
	doc := &model.Document{Nodes: []model.Node{rec}}

	out, decoded := roundTripText(t, doc)
	assert.Contains(t, out, "deadbeef01")

	got := decoded.Nodes[0].(*model.Record)
	assert.Equal(t, rec.Fields[0].Data, got.Fields[0].Data)
	assert.Empty(t, got.Fields[1].Data)
}

func TestFilterMasksJunkUnlessPreserved(t *testing.T) {
	xclc := arena.NewWriter(12)
	xclc.WriteInt32(3)
	xclc.WriteInt32(-4)
	xclc.WriteUint32(0xABCD0005) // junk in the high bits, flags 0x5

	rec := &model.Record{
		Type:   model.Tag{'C', 'E', 'L', 'L'},
		FormID: 7,
		Fields: []model.Field{
			{Type: model.Tag{'X', 'C', 'L', 'C'}, Data: xclc.Bytes()},
		},
	}
	doc := &model.Document{Nodes: []model.Node{rec}}

	_, decoded := roundTripText(t, doc)
	got := decoded.Nodes[0].(*model.Record).Fields[0].Data
	assert.Equal(t, uint32(0x00000005), le32(got[8:12]), "junk bits cleared")

	_, preserved := roundTripText(t, doc, WithPreserveJunk())
	got = preserved.Nodes[0].(*model.Record).Fields[0].Data
	assert.Equal(t, uint32(0xABCD0005), le32(got[8:12]), "junk bits kept verbatim")
}

func TestCompressedFieldRoundTrip(t *testing.T) {
	tvdt := make([]byte, 684)
	for i := range tvdt {
		tvdt[i] = byte(i % 11)
	}
	rec := &model.Record{
		Type:   model.Tag{'C', 'E', 'L', 'L'},
		Flags:  model.RecordFlagCompressed,
		FormID: 3,
		Fields: []model.Field{
			{Type: model.Tag{'T', 'V', 'D', 'T'}, Data: tvdt},
		},
	}
	doc := &model.Document{Nodes: []model.Node{rec}}

	out, decoded := roundTripText(t, doc)
	assert.Contains(t, out, "+ Compressed")

	got := decoded.Nodes[0].(*model.Record)
	require.True(t, got.IsCompressed())
	assert.Equal(t, tvdt, got.Fields[0].Data)

	// Through the binary side both deflate layers stay stable.
	bin, err := plugin.Encode(context.Background(), decoded)
	require.NoError(t, err)
	back, err := plugin.Decode(context.Background(), bin)
	require.NoError(t, err)
	assert.Equal(t, tvdt, back.Nodes[0].(*model.Record).Fields[0].Data)
}

func TestVMADInfoFragmentsRoundTrip(t *testing.T) {
	d := &vmad.Data{
		Version:      5,
		ObjectFormat: 2,
		Scripts: []vmad.Script{
			{
				Name:   "TIF__01000D62",
				Status: 1,
				Properties: []vmad.Property{
					{Name: "Target", Type: vmad.PropertyObject, Status: 1, Object: vmad.ObjectRef{FormID: 0x00012345, Alias: 2}},
					{Name: "Counts", Type: vmad.PropertyIntArray, Status: 1, IntArray: []int32{1, -2, 3}},
				},
			},
		},
		HasInfoTail:  true,
		FragmentFile: "TIF__01000D62",
		StartFrag:    &vmad.Fragment{ScriptName: "TIF__01000D62", FragmentName: "Fragment_0"},
		EndFrag:      &vmad.Fragment{ScriptName: "TIF__01000D62", FragmentName: "Fragment_1"},
	}

	rec := &model.Record{
		Type:   model.Tag{'I', 'N', 'F', 'O'},
		FormID: 0x01000D62,
		Fields: []model.Field{
			{Type: model.Tag{'V', 'M', 'A', 'D'}, Data: vmad.Encode(d)},
		},
	}
	doc := &model.Document{Nodes: []model.Node{rec}}

	out, decoded := roundTripText(t, doc)
	assert.Contains(t, out, "Start Fragment")
	assert.Contains(t, out, "End Fragment")
	assert.Contains(t, out, "Int[]")

	got := decoded.Nodes[0].(*model.Record)
	assert.Equal(t, rec.Fields[0].Data, got.Fields[0].Data)
}

func TestVMADQuestTailRoundTrip(t *testing.T) {
	d := &vmad.Data{
		Version:      5,
		ObjectFormat: 2,
		HasQuestTail: true,
		QuestFile:    "QF_MyQuest_01000D63",
		QuestFragments: []vmad.QuestFragment{
			{Index: 10, LogEntry: 0x01020304, ScriptName: "QF_MyQuest_01000D63", FunctionName: "Fragment_10"},
		},
		Aliases: []vmad.Alias{
			{
				Object:       vmad.ObjectRef{FormID: 0x00054321, Alias: 1},
				Version:      5,
				ObjectFormat: 2,
				Scripts: []vmad.Script{
					{Name: "AliasScript", Status: 1},
				},
			},
		},
	}

	rec := &model.Record{
		Type:   model.Tag{'Q', 'U', 'S', 'T'},
		FormID: 0x01000D63,
		Fields: []model.Field{
			{Type: model.Tag{'V', 'M', 'A', 'D'}, Data: vmad.Encode(d)},
		},
	}
	doc := &model.Document{Nodes: []model.Node{rec}}

	_, decoded := roundTripText(t, doc)
	got := decoded.Nodes[0].(*model.Record)
	assert.Equal(t, rec.Fields[0].Data, got.Fields[0].Data)
}

func TestGroupQualifiersRoundTrip(t *testing.T) {
	cellRec := func(id model.FormID) *model.Record {
		return &model.Record{Type: model.Tag{'R', 'E', 'F', 'R'}, FormID: id}
	}
	doc := &model.Document{Nodes: []model.Node{
		&model.Group{
			Kind:  model.GroupTop,
			Label: [4]byte{'C', 'E', 'L', 'L'},
			Children: []model.Node{
				&model.Group{
					Kind:  model.GroupInteriorCellBlock,
					Label: [4]byte{3, 0, 0, 0},
					Children: []model.Node{
						&model.Group{
							Kind:  model.GroupInteriorCellSubBlock,
							Label: [4]byte{7, 0, 0, 0},
							Children: []model.Node{
								&model.Record{Type: model.Tag{'C', 'E', 'L', 'L'}, FormID: 0xAB},
								&model.Group{
									Kind:  model.GroupCellChildren,
									Label: [4]byte{0xAB, 0, 0, 0},
									Children: []model.Node{
										&model.Group{
											Kind:     model.GroupCellTemporaryChildren,
											Label:    [4]byte{0xAB, 0, 0, 0},
											Children: []model.Node{cellRec(0x10), cellRec(0x11)},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}}

	out, decoded := roundTripText(t, doc)
	assert.Contains(t, out, "GRUP - Interior Block 3\n")
	assert.Contains(t, out, "GRUP - Interior Sub-Block 7\n")
	assert.Contains(t, out, "GRUP - Cell [000000AB]\n")
	assert.Contains(t, out, "GRUP - Temporary [000000AB]\n")

	top := decoded.Nodes[0].(*model.Group)
	assert.Equal(t, [4]byte{'C', 'E', 'L', 'L'}, top.Label)
}

func TestEmptyStringFieldsRoundTrip(t *testing.T) {
	rec := buildWeapon()
	rec.Fields = append(rec.Fields, model.Field{Type: model.Tag{'E', 'D', 'I', 'D'}, Data: []byte{0}})
	doc := &model.Document{Nodes: []model.Node{rec}}

	out, decoded := roundTripText(t, doc)
	assert.Contains(t, out, `""`)
	got := decoded.Nodes[0].(*model.Record)
	assert.Equal(t, []byte{0}, got.Fields[len(got.Fields)-1].Data)
}
