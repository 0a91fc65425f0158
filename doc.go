package bytebuf

// Package bytebuf provides a fixed-capacity circular byte buffer with stream
// semantics. A RingBuf is a single contiguous region traversed by a read and a
// write cursor, so pipelines can stage bytes between a producer and a consumer
// without per-operation allocation. The package also offers a blocking pipe
// that wraps a RingBuf for handing bytes between two goroutines.
