package executor

import "sync"

const (
	maxStdoutBytes = 1 << 20
	maxStderrBytes = 256 * 1024
)

// boundedBuffer is a size-capped, mutex-guarded output sink. The guard
// matters for timed-out examples: the abandoned worker goroutine may still
// be writing while the runner snapshots partial output.
type boundedBuffer struct {
	mu  sync.Mutex
	buf []byte
	max int
}

func newBoundedBuffer(max int) *boundedBuffer {
	return &boundedBuffer{max: max}
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if remain := b.max - len(b.buf); remain > 0 {
		if len(p) > remain {
			b.buf = append(b.buf, p[:remain]...)
		} else {
			b.buf = append(b.buf, p...)
		}
	}
	return len(p), nil
}

func (b *boundedBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.buf)
}

func (b *boundedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}

// StringFrom returns the bytes written since a previous Len checkpoint.
func (b *boundedBuffer) StringFrom(offset int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if offset >= len(b.buf) {
		return ""
	}
	return string(b.buf[offset:])
}
