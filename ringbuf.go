package bytebuf

import (
	"errors"
	"io"
)

var (
	_ io.Reader = (*RingBuf)(nil)
	_ io.Writer = (*RingBuf)(nil)
)

var (
	// ErrEmptyBacking is returned by FromBacking when the supplied slice
	// cannot hold the sentinel slot.
	ErrEmptyBacking = errors.New("bytebuf: backing slice must hold at least one byte")

	// ErrInvalidDiscard is returned by Discard when the count is negative or
	// exceeds the number of buffered bytes.
	ErrInvalidDiscard = errors.New("bytebuf: discard count out of range")
)

// RingBuf is a fixed-capacity byte buffer connected end-to-end. The backing
// region is one byte longer than the capacity so that full and empty states
// are distinguishable from the cursors alone.
//
// A RingBuf is not safe for concurrent use; wrap it in external
// synchronization (or use Pipe) when sharing it between goroutines.
type RingBuf struct {
	data     []byte
	readPos  int
	writePos int
}

// New creates an empty ring buffer that can hold up to capacity bytes.
// A negative capacity is treated as zero; a zero-capacity buffer accepts
// every write but never stores anything.
func New(capacity int) *RingBuf {
	if capacity < 0 {
		capacity = 0
	}
	return &RingBuf{data: make([]byte, capacity+1)}
}

// FromBacking creates a ring buffer that uses backing as its region directly,
// without copying. One slot is reserved as the sentinel, so the capacity is
// len(backing)-1 and the buffer starts empty. The caller must not touch
// backing afterwards. An empty slice is rejected with ErrEmptyBacking.
func FromBacking(backing []byte) (*RingBuf, error) {
	if len(backing) == 0 {
		return nil, ErrEmptyBacking
	}
	return &RingBuf{data: backing}, nil
}

// FromBytes creates a ring buffer that starts full, holding exactly the given
// bytes in order. The capacity equals len(data); the slice is extended by one
// sentinel byte and adopted as the backing region.
func FromBytes(data []byte) *RingBuf {
	n := len(data)
	return &RingBuf{
		data:     append(data, 0),
		writePos: n,
	}
}

// Capacity returns the number of bytes the ring buffer can hold.
func (r *RingBuf) Capacity() int {
	return len(r.data) - 1
}

// Len returns the number of buffered bytes, between 0 and Capacity.
func (r *RingBuf) Len() int {
	if r.readPos > r.writePos {
		return len(r.data) - r.readPos + r.writePos
	}
	return r.writePos - r.readPos
}

// IsEmpty reports whether the ring buffer holds no bytes.
func (r *RingBuf) IsEmpty() bool {
	return r.readPos == r.writePos
}

// Clear discards all buffered bytes by resetting both cursors. The region is
// not zeroed.
func (r *RingBuf) Clear() {
	r.readPos = 0
	r.writePos = 0
}

// Discard drops count bytes from the front of the buffer without copying
// them out. The read cursor can't move past the write cursor: if count is
// negative or exceeds Len, Discard returns ErrInvalidDiscard and leaves the
// buffer untouched.
func (r *RingBuf) Discard(count int) error {
	if count < 0 || count > r.Len() {
		return ErrInvalidDiscard
	}
	r.readPos = (r.readPos + count) % len(r.data)
	return nil
}

// Peek copies up to len(dst) buffered bytes into dst without advancing the
// read cursor and returns the number of bytes copied. It returns 0 when the
// buffer is empty or dst has zero length.
func (r *RingBuf) Peek(dst []byte) int {
	toRead := min(r.Len(), len(dst))
	if toRead == 0 {
		return 0
	}

	untilEnd := len(r.data) - r.readPos
	if untilEnd < toRead {
		copy(dst[:untilEnd], r.data[r.readPos:])
		copy(dst[untilEnd:toRead], r.data[:toRead-untilEnd])
	} else {
		copy(dst[:toRead], r.data[r.readPos:r.readPos+toRead])
	}

	return toRead
}

// Read drains up to len(p) buffered bytes into p. It implements io.Reader,
// with one deviation: an empty buffer yields (0, nil) rather than io.EOF,
// since a later Write can refill it. The error is always nil.
func (r *RingBuf) Read(p []byte) (int, error) {
	n := r.Peek(p)
	r.readPos = (r.readPos + n) % len(r.data)
	return n, nil
}

// Write copies up to len(p) bytes from p into the buffer and advances the
// write cursor. It implements io.Writer, with one deviation: a short count
// signals that the buffer reached capacity, not a failure. The error is
// always nil; callers must check the returned count.
func (r *RingBuf) Write(p []byte) (int, error) {
	toWrite := min(r.Capacity()-r.Len(), len(p))
	if toWrite == 0 {
		return 0, nil
	}

	untilEnd := len(r.data) - r.writePos
	if untilEnd < toWrite {
		copy(r.data[r.writePos:], p[:untilEnd])
		copy(r.data[:toWrite-untilEnd], p[untilEnd:toWrite])
		r.writePos = toWrite - untilEnd
	} else {
		copy(r.data[r.writePos:r.writePos+toWrite], p[:toWrite])
		r.writePos = (r.writePos + toWrite) % len(r.data)
	}

	return toWrite, nil
}

// Flush implements the writer flush contract. The buffer has no downstream,
// so Flush always succeeds.
func (r *RingBuf) Flush() error {
	return nil
}
