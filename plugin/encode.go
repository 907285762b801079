package plugin

import (
	"context"
	"fmt"

	"github.com/tesrec/plugin2text/arena"
	"github.com/tesrec/plugin2text/compress"
	"github.com/tesrec/plugin2text/model"
)

// Encode serializes a model.Document back to plugin binary bytes. A
// single scratch writer stages each record's field stream before it is
// framed (and, for compressed records, deflated) into the output;
// checkpoint/reset keeps the scratch's allocation live across records.
func Encode(ctx context.Context, doc *model.Document, opts ...Option) ([]byte, error) {
	w := arena.NewWriter(1 << 20)
	scratch := arena.NewWriter(1 << 16)
	for _, n := range doc.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := encodeNode(w, scratch, n); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

func encodeNode(w, scratch *arena.Writer, n model.Node) error {
	switch v := n.(type) {
	case *model.Group:
		return encodeGroup(w, scratch, v)
	case *model.Record:
		return encodeRecord(w, scratch, v)
	default:
		return fmt.Errorf("plugin: unknown node type %T", n)
	}
}

// Header fields are patched by offset into w.Bytes(), re-sliced fresh at
// patch time rather than through a slice captured at Advance time:
// intervening writes can grow and reallocate the writer's backing array,
// which would leave an earlier slice pointing at discarded memory.

func encodeGroup(w, scratch *arena.Writer, g *model.Group) error {
	headerOff := w.Len()
	w.Advance(recordHeaderSize)
	bodyStart := w.Len()

	for _, c := range g.Children {
		if err := encodeNode(w, scratch, c); err != nil {
			return err
		}
	}

	groupSize := uint32(recordHeaderSize + (w.Len() - bodyStart))
	hdr := w.Bytes()[headerOff : headerOff+recordHeaderSize]
	copy(hdr[0:4], model.GRUPTag[:])
	putLE32(hdr[4:8], groupSize)
	copy(hdr[8:12], g.Label[:])
	putLE32(hdr[12:16], uint32(int32(g.Kind)))
	putLE16(hdr[16:18], g.Timestamp)
	putLE16(hdr[18:20], g.VersionCtl)
	putLE16(hdr[20:22], g.Version)
	putLE16(hdr[22:24], g.Unknown)

	return nil
}

func encodeRecord(w, scratch *arena.Writer, rec *model.Record) error {
	mark := scratch.Checkpoint()
	defer scratch.Reset(mark)

	for _, f := range rec.Fields {
		fhdr := scratch.Advance(6)
		copy(fhdr[0:4], f.Type[:])
		putLE16(fhdr[4:6], uint16(len(f.Data)))
		scratch.WriteBytes(f.Data)
	}
	bodyBytes := scratch.Bytes()[int(mark):]

	headerOff := w.Len()
	w.Advance(recordHeaderSize)

	dataSize := uint32(len(bodyBytes))
	if rec.IsCompressed() {
		compressed, err := compress.Shared().Compress(bodyBytes)
		if err != nil {
			return fmt.Errorf("record %s: %w", rec.FormID, err)
		}
		sizePrefix := w.Advance(4)
		putLE32(sizePrefix, uint32(len(bodyBytes)))
		w.WriteBytes(compressed)
		dataSize = uint32(4 + len(compressed))
	} else {
		w.WriteBytes(bodyBytes)
	}

	hdr := w.Bytes()[headerOff : headerOff+recordHeaderSize]
	copy(hdr[0:4], rec.Type[:])
	putLE32(hdr[4:8], dataSize)
	putLE32(hdr[8:12], rec.Flags)
	putLE32(hdr[12:16], uint32(rec.FormID))
	putLE16(hdr[16:18], rec.Timestamp)
	putLE16(hdr[18:20], rec.VersionCtl)
	putLE16(hdr[20:22], rec.Version)
	putLE16(hdr[22:24], rec.Unknown)

	return nil
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func putLE16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}
