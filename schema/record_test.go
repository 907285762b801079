package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookupKnownAndUnknown(t *testing.T) {
	reg := Default()

	rec, ok := reg.Lookup([4]byte{'W', 'E', 'A', 'P'})
	require.True(t, ok)
	assert.Equal(t, "Weapon", rec.Comment)

	_, ok = reg.Lookup([4]byte{'X', 'X', 'X', 'X'})
	assert.False(t, ok)
}

func TestFieldSchemaFallsBackToCommon(t *testing.T) {
	fs, ok := WEAP.FieldSchema([4]byte{'E', 'D', 'I', 'D'})
	require.True(t, ok)
	assert.Equal(t, "Editor ID", fs.Comment)

	fs, ok = WEAP.FieldSchema([4]byte{'D', 'N', 'A', 'M'})
	require.True(t, ok)
	assert.Equal(t, KindStruct, fs.Type.Kind)

	_, ok = WEAP.FieldSchema([4]byte{'Z', 'Z', 'Z', 'Z'})
	assert.False(t, ok)
}

func TestSubrecordMatchesFirstMemberTagOnly(t *testing.T) {
	fs, ok := TES4.FieldSchema([4]byte{'M', 'A', 'S', 'T'})
	require.True(t, ok)
	require.True(t, fs.Subrecord)
	require.Len(t, fs.Fields, 2)
	assert.Equal(t, KindConstant, fs.Fields[1].Type.Kind)

	// The DATA member's tag is not independently addressable.
	_, ok = TES4.FieldSchema([4]byte{'D', 'A', 'T', 'A'})
	assert.False(t, ok)
}

func TestFlagNamesAndResidue(t *testing.T) {
	names, residue := CELL.FlagNames(0x400 | 0x40000 | 0x10000000)
	assert.Equal(t, []string{"Persistent", "Compressed"}, names)
	assert.Equal(t, uint32(0x10000000), residue)
}

func TestFlagMaskLooksUpOwnThenCommon(t *testing.T) {
	mask, ok := CELL.FlagMask("Persistent")
	require.True(t, ok)
	assert.Equal(t, uint32(0x400), mask)

	mask, ok = CELL.FlagMask("Compressed")
	require.True(t, ok)
	assert.Equal(t, uint32(0x40000), mask)

	_, ok = CELL.FlagMask("No Such Flag")
	assert.False(t, ok)
}

func TestStructSizesMatchMemberSum(t *testing.T) {
	for _, rec := range []*Record{TES4, WEAP, QUST, CELL, NPC, INFO, REFR, WRLD, LAND} {
		for _, fs := range rec.Fields {
			if fs.Subrecord || fs.Type.Kind != KindStruct {
				continue
			}
			sum := 0
			for _, m := range fs.Type.StructFields {
				require.Greater(t, m.Type.Size, 0, "%s.%s member %q has no size", rec.Tag, fs.Tag, m.Name)
				sum += m.Type.Size
			}
			assert.Equal(t, fs.Type.Size, sum, "%s.%s", rec.Tag, fs.Tag)
		}
	}
}
