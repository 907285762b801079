package plugin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesrec/plugin2text/model"
)

func TestRoundTripSingleRecord(t *testing.T) {
	doc := &model.Document{
		Nodes: []model.Node{
			&model.Record{
				Type:    model.Tag{'T', 'E', 'S', '4'},
				Flags:   0,
				FormID:  0,
				Version: 44,
				Fields: []model.Field{
					{Type: model.Tag{'H', 'E', 'D', 'R'}, Data: []byte{0, 0, 128, 63, 1, 0, 0, 0, 0, 0, 0, 0}},
					{Type: model.Tag{'C', 'N', 'A', 'M'}, Data: []byte("Author\x00")},
				},
			},
		},
	}

	encoded, err := Encode(context.Background(), doc)
	require.NoError(t, err)

	got, err := Decode(context.Background(), encoded)
	require.NoError(t, err)

	require.Len(t, got.Nodes, 1)
	rec, ok := got.Nodes[0].(*model.Record)
	require.True(t, ok)
	assert.Equal(t, doc.Nodes[0].(*model.Record).Fields, rec.Fields)
	assert.Equal(t, doc.Nodes[0].(*model.Record).Type, rec.Type)
}

func TestRoundTripGroupWithChildren(t *testing.T) {
	doc := &model.Document{
		Nodes: []model.Node{
			&model.Group{
				Kind:  model.GroupTop,
				Label: [4]byte{'W', 'E', 'A', 'P'},
				Children: []model.Node{
					&model.Record{Type: model.Tag{'W', 'E', 'A', 'P'}, FormID: 0x01000001, Fields: []model.Field{
						{Type: model.Tag{'E', 'D', 'I', 'D'}, Data: []byte("TestWeapon\x00")},
					}},
					&model.Record{Type: model.Tag{'W', 'E', 'A', 'P'}, FormID: 0x01000002, Fields: []model.Field{
						{Type: model.Tag{'E', 'D', 'I', 'D'}, Data: []byte("TestWeapon2\x00")},
					}},
				},
			},
		},
	}

	encoded, err := Encode(context.Background(), doc)
	require.NoError(t, err)

	got, err := Decode(context.Background(), encoded)
	require.NoError(t, err)

	require.Len(t, got.Nodes, 1)
	g, ok := got.Nodes[0].(*model.Group)
	require.True(t, ok)
	require.Len(t, g.Children, 2)
	assert.Equal(t, model.FormID(0x01000001), g.Children[0].(*model.Record).FormID)
	assert.Equal(t, model.FormID(0x01000002), g.Children[1].(*model.Record).FormID)
}

func TestRoundTripCompressedRecord(t *testing.T) {
	longField := make([]byte, 512)
	for i := range longField {
		longField[i] = byte(i % 7)
	}

	doc := &model.Document{
		Nodes: []model.Node{
			&model.Record{
				Type:   model.Tag{'C', 'E', 'L', 'L'},
				Flags:  model.RecordFlagCompressed,
				FormID: 0x02000001,
				Fields: []model.Field{
					{Type: model.Tag{'T', 'V', 'D', 'T'}, Data: longField},
				},
			},
		},
	}

	encoded, err := Encode(context.Background(), doc)
	require.NoError(t, err)

	got, err := Decode(context.Background(), encoded)
	require.NoError(t, err)

	rec := got.Nodes[0].(*model.Record)
	require.True(t, rec.IsCompressed())
	assert.Equal(t, longField, rec.Fields[0].Data)

	// Re-encoding the decoded document must reproduce the exact bytes,
	// including a stable compressed-size prefix.
	reEncoded, err := Encode(context.Background(), got)
	require.NoError(t, err)
	assert.Equal(t, encoded, reEncoded)
}

func TestCellChildrenSortedByFormID(t *testing.T) {
	children := []model.Node{
		&model.Record{Type: model.Tag{'R', 'E', 'F', 'R'}, FormID: 0x03},
		&model.Record{Type: model.Tag{'R', 'E', 'F', 'R'}, FormID: 0x01},
		&model.Record{Type: model.Tag{'R', 'E', 'F', 'R'}, FormID: 0x02},
	}
	doc := &model.Document{
		Nodes: []model.Node{
			&model.Group{Kind: model.GroupCellTemporaryChildren, Children: children},
		},
	}
	encoded, err := Encode(context.Background(), doc)
	require.NoError(t, err)

	got, err := Decode(context.Background(), encoded)
	require.NoError(t, err)

	g := got.Nodes[0].(*model.Group)
	require.Len(t, g.Children, 3)
	assert.Equal(t, model.FormID(0x01), g.Children[0].(*model.Record).FormID)
	assert.Equal(t, model.FormID(0x02), g.Children[1].(*model.Record).FormID)
	assert.Equal(t, model.FormID(0x03), g.Children[2].(*model.Record).FormID)
}

func TestCellChildrenDuplicateFormIDRejected(t *testing.T) {
	children := []model.Node{
		&model.Record{Type: model.Tag{'R', 'E', 'F', 'R'}, FormID: 0x01},
		&model.Record{Type: model.Tag{'R', 'E', 'F', 'R'}, FormID: 0x01},
	}
	doc := &model.Document{
		Nodes: []model.Node{
			&model.Group{Kind: model.GroupCellPersistentChildren, Children: children},
		},
	}
	encoded, err := Encode(context.Background(), doc)
	require.NoError(t, err)

	_, err = Decode(context.Background(), encoded)
	require.Error(t, err)
}

func TestPreserveRecordOrderSkipsSort(t *testing.T) {
	children := []model.Node{
		&model.Record{Type: model.Tag{'R', 'E', 'F', 'R'}, FormID: 0x03},
		&model.Record{Type: model.Tag{'R', 'E', 'F', 'R'}, FormID: 0x01},
	}
	doc := &model.Document{
		Nodes: []model.Node{
			&model.Group{Kind: model.GroupCellTemporaryChildren, Children: children},
		},
	}
	encoded, err := Encode(context.Background(), doc)
	require.NoError(t, err)

	got, err := Decode(context.Background(), encoded, WithPreserveRecordOrder())
	require.NoError(t, err)

	g := got.Nodes[0].(*model.Group)
	assert.Equal(t, model.FormID(0x03), g.Children[0].(*model.Record).FormID)
	assert.Equal(t, model.FormID(0x01), g.Children[1].(*model.Record).FormID)
}

func TestDecodeRejectsZeroUncompressedSize(t *testing.T) {
	doc := &model.Document{
		Nodes: []model.Node{
			&model.Record{
				Type:   model.Tag{'C', 'E', 'L', 'L'},
				Flags:  model.RecordFlagCompressed,
				FormID: 1,
				Fields: []model.Field{{Type: model.Tag{'T', 'V', 'D', 'T'}, Data: []byte{1, 2, 3, 4}}},
			},
		},
	}
	encoded, err := Encode(context.Background(), doc)
	require.NoError(t, err)

	// Corrupt the uncompressed-size prefix (first 4 bytes of the
	// compressed body, immediately after the 24-byte record header) to
	// zero.
	for i := 0; i < 4; i++ {
		encoded[recordHeaderSize+i] = 0
	}

	_, err = Decode(context.Background(), encoded)
	require.Error(t, err)
}
