package compression

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/klauspost/compress/gzip"
)

// GzipCompression implements ports.Compression for gzip. Multi-member
// streams decode to the concatenation of their members.
type GzipCompression struct {
	mu      sync.RWMutex
	closed  bool
	maxSize uint64
}

// ErrDecodedSizeExceeded is returned when a gzip input decodes past its limit.
var ErrDecodedSizeExceeded = errors.New("compression: decoded size limit exceeded")

// NewGzipCompression returns a gzip codec whose decoded output is capped at
// maxSize bytes. Zero selects DefaultMaxDecodedSize.
func NewGzipCompression(maxSize uint64) *GzipCompression {
	if maxSize == 0 {
		maxSize = DefaultMaxDecodedSize
	}
	if maxSize >= math.MaxInt64 {
		maxSize = math.MaxInt64 - 1
	}
	return &GzipCompression{maxSize: maxSize}
}

func (g *GzipCompression) Compress(data []byte) ([]byte, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.closed {
		return nil, ErrClosed
	}

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress returns the decoded contents. The reader rejects a member
// whose trailer CRC or size does not match what was decoded.
func (g *GzipCompression) Decompress(data []byte) ([]byte, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.closed {
		return nil, ErrClosed
	}

	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decompression failed: %w", err)
	}
	defer r.Close()

	// One byte past the limit tells an exact fit apart from an overflow.
	decompressed, err := io.ReadAll(io.LimitReader(r, int64(g.maxSize)+1))
	if err != nil {
		return nil, fmt.Errorf("decompression failed: %w", err)
	}
	if uint64(len(decompressed)) > g.maxSize {
		return nil, fmt.Errorf("decompression failed: %w", ErrDecodedSizeExceeded)
	}

	return decompressed, nil
}

func (g *GzipCompression) Name() string {
	return string(Gzip)
}

func (g *GzipCompression) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.closed = true
	return nil
}
