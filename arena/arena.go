// Package arena provides a bump-allocated scratch buffer with
// checkpoint/reset support, plus cursor-based sequential readers and
// writers over it and over plain byte slices.
//
// It is the Go analog of the original tool's virtual-memory bump
// allocator (a single large reserved region, advanced by a cursor,
// never individually freed): a Buffer grows by append, and
// Checkpoint/Reset give LIFO-discipline scratch reuse — the binary
// encoder stages every record's field stream on one shared scratch
// writer before framing or deflating it, and the text reader stages a
// filtered field's raw value in place before masking it.
package arena

const defaultSize = 64 * 1024

// Buffer is a growable byte buffer intended for scratch use: inflate
// targets, compression staging, and other transient byte spans that
// don't need to outlive the operation that produced them.
type Buffer struct {
	b []byte
}

// New creates a Buffer with the given initial capacity.
func New(initialCap int) *Buffer {
	if initialCap <= 0 {
		initialCap = defaultSize
	}
	return &Buffer{b: make([]byte, 0, initialCap)}
}

// Len returns the number of bytes currently held.
func (a *Buffer) Len() int { return len(a.b) }

// Bytes returns the buffer's current contents. The slice is only valid
// until the next Grow/Reset/Checkpoint-rollback that reallocates.
func (a *Buffer) Bytes() []byte { return a.b }

// Checkpoint marks the current length so a later Reset can roll back to
// it, discarding everything appended since. Checkpoints nest in LIFO
// order: an inner Checkpoint/Reset pair must be fully resolved before an
// outer one rolls back past it.
type Checkpoint int

// Checkpoint returns a mark that Reset can later roll back to.
func (a *Buffer) Checkpoint() Checkpoint { return Checkpoint(len(a.b)) }

// Reset truncates the buffer back to a previously taken Checkpoint,
// retaining the underlying allocation for reuse.
func (a *Buffer) Reset(c Checkpoint) { a.b = a.b[:int(c)] }

// Grow appends n zeroed bytes and returns a slice over them.
func (a *Buffer) Grow(n int) []byte {
	start := len(a.b)
	if cap(a.b)-start < n {
		grown := make([]byte, start, growTo(cap(a.b), start+n))
		copy(grown, a.b)
		a.b = grown
	}
	a.b = a.b[:start+n]
	for i := start; i < start+n; i++ {
		a.b[i] = 0
	}
	return a.b[start : start+n]
}

// Append copies data onto the end of the buffer and returns the slice it
// now occupies.
func (a *Buffer) Append(data []byte) []byte {
	dst := a.Grow(len(data))
	copy(dst, data)
	return dst
}

func growTo(curCap, need int) int {
	if curCap == 0 {
		curCap = defaultSize
	}
	for curCap < need {
		if curCap < 4*defaultSize {
			curCap += defaultSize
		} else {
			curCap += curCap / 4
		}
	}
	return curCap
}
