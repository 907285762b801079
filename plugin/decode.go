// Package plugin decodes and encodes the binary .esp/.esm/.esl container
// format: a flat stream of records and GRUP groups, grounded on the
// original tool's esp_parser.cpp (process_record/process_field).
package plugin

import (
	"context"
	"fmt"
	"sort"

	"github.com/tesrec/plugin2text/arena"
	"github.com/tesrec/plugin2text/compress"
	"github.com/tesrec/plugin2text/errs"
	"github.com/tesrec/plugin2text/model"
)

const recordHeaderSize = 24

// Decode parses a complete plugin file's bytes into a model.Document.
func Decode(ctx context.Context, data []byte, opts ...Option) (*model.Document, error) {
	o := newOptions(opts)
	r := arena.NewReader(data)

	doc := &model.Document{}
	for !r.Done() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		node, err := decodeNode(ctx, r, o)
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

func decodeNode(ctx context.Context, r *arena.Reader, o *Options) (model.Node, error) {
	tagBytes, err := r.Peek(4)
	if err != nil {
		return nil, err
	}
	tag := model.ParseTag(tagBytes)

	if tag == model.GRUPTag {
		return decodeGroup(ctx, r, o)
	}
	return decodeRecord(r)
}

func decodeGroup(ctx context.Context, r *arena.Reader, o *Options) (*model.Group, error) {
	hdr, err := r.Advance(recordHeaderSize)
	if err != nil {
		return nil, fmt.Errorf("group header: %w", err)
	}

	groupSize := le32(hdr[4:8])
	var label [4]byte
	copy(label[:], hdr[8:12])
	groupType := int32(le32(hdr[12:16]))

	g := &model.Group{
		Kind:       model.GroupType(groupType),
		Label:      label,
		Timestamp:  le16(hdr[16:18]),
		VersionCtl: le16(hdr[18:20]),
		Version:    le16(hdr[20:22]),
		Unknown:    le16(hdr[22:24]),
	}

	bodyLen := int(groupSize) - recordHeaderSize
	if bodyLen < 0 {
		return nil, fmt.Errorf("%w: group size smaller than header", errs.ErrTruncated)
	}
	bodyEnd := r.Pos() + bodyLen

	for r.Pos() < bodyEnd {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		child, err := decodeNode(ctx, r, o)
		if err != nil {
			return nil, err
		}
		g.Children = append(g.Children, child)
	}
	if r.Pos() != bodyEnd {
		return nil, fmt.Errorf("%w: group children overrun declared size", errs.ErrOversizedField)
	}

	switch g.Kind {
	case model.GroupCellPersistentChildren, model.GroupCellTemporaryChildren:
		if !o.preserveRecordOrder {
			if err := sortAndCheckDuplicates(g.Children); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

func sortAndCheckDuplicates(children []model.Node) error {
	recs := make([]*model.Record, 0, len(children))
	slots := make([]int, 0, len(children))
	for i, c := range children {
		rec, ok := c.(*model.Record)
		if !ok {
			continue
		}
		recs = append(recs, rec)
		slots = append(slots, i)
	}

	sort.Slice(recs, func(i, j int) bool { return recs[i].FormID < recs[j].FormID })

	for i := 1; i < len(recs); i++ {
		if recs[i].FormID == recs[i-1].FormID {
			return fmt.Errorf("%w: %s", errs.ErrDuplicateFormID, recs[i].FormID)
		}
	}

	for i, rec := range recs {
		children[slots[i]] = rec
	}
	return nil
}

func decodeRecord(r *arena.Reader) (*model.Record, error) {
	hdr, err := r.Advance(recordHeaderSize)
	if err != nil {
		return nil, fmt.Errorf("record header: %w", err)
	}

	rec := &model.Record{
		Type:       model.ParseTag(hdr[0:4]),
		Flags:      le32(hdr[8:12]),
		FormID:     model.FormID(le32(hdr[12:16])),
		Timestamp:  uint16(le16(hdr[16:18])),
		VersionCtl: uint16(le16(hdr[18:20])),
		Version:    uint16(le16(hdr[20:22])),
		Unknown:    uint16(le16(hdr[22:24])),
	}
	dataSize := le32(hdr[4:8])

	var body []byte
	if rec.IsCompressed() {
		raw, err := r.Advance(int(dataSize))
		if err != nil {
			return nil, fmt.Errorf("compressed record body: %w", err)
		}
		if len(raw) < 4 {
			return nil, fmt.Errorf("%w: compressed record missing size prefix", errs.ErrTruncated)
		}
		uncompressedSize := int(le32(raw[0:4]))
		if uncompressedSize == 0 {
			return nil, fmt.Errorf("%w: record %s declares zero uncompressed size", errs.ErrCompression, rec.FormID)
		}
		inflated, err := compress.Shared().Decompress(raw[4:], uncompressedSize)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", rec.FormID, err)
		}
		body = inflated
	} else {
		body, err = r.Advance(int(dataSize))
		if err != nil {
			return nil, fmt.Errorf("record body: %w", err)
		}
	}

	fr := arena.NewReader(body)
	for !fr.Done() {
		fhdr, err := fr.Advance(6)
		if err != nil {
			return nil, fmt.Errorf("field header: %w", err)
		}
		size := le16(fhdr[4:6])
		fdata, err := fr.Advance(int(size))
		if err != nil {
			return nil, fmt.Errorf("%w: field %s", errs.ErrOversizedField, model.ParseTag(fhdr[0:4]))
		}
		rec.Fields = append(rec.Fields, model.Field{Type: model.ParseTag(fhdr[0:4]), Data: fdata})
	}

	return rec, nil
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func le16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}
