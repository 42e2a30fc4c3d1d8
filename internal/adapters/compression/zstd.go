// Package compression decodes compressed inputs so their contents can be
// checksummed. zstd and gzip are supported.
package compression

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

type Options struct {
	Level              uint8
	DecoderConcurrency uint8
	MaxDecodedSize     uint64 // 0 means DefaultMaxDecodedSize
}

// ZstdCompression implements ports.Compression using zstd.
// Compress always emits a zstd frame so its output round-trips through Decompress.
type ZstdCompression struct {
	closed  bool
	mu      sync.RWMutex  // Protects concurrent access to compression state
	decoder *zstd.Decoder // Thread-safe decoder instance for decompression
	encoder *zstd.Encoder // Thread-safe encoder instance for compression
}

// Compression levels map onto zstd.EncoderLevel.
const (
	FastestLevel uint8 = 1 // zstd.SpeedFastest
	DefaultLevel uint8 = 2 // zstd.SpeedDefault
	BestLevel    uint8 = 4 // zstd.SpeedBestCompression
)

var ErrClosed = errors.New("compression: codec closed")

// NewZstdCompression creates a new zstd compression instance with the specified level.
// The compression level must be between FastestLevel (1) and BestLevel (4).
// A zero DecoderConcurrency lets zstd pick one decoder per CPU. Frames that
// decode past MaxDecodedSize are rejected with zstd.ErrDecoderSizeExceeded.
func NewZstdCompression(opts Options) (*ZstdCompression, error) {
	if opts.Level < FastestLevel || opts.Level > BestLevel {
		return nil, fmt.Errorf("compression level must be between %d and %d, got %d", FastestLevel, BestLevel, opts.Level)
	}

	encoder, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderLevel(zstd.EncoderLevel(opts.Level)),
		zstd.WithZeroFrames(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create encoder: %w", err)
	}

	maxSize := opts.MaxDecodedSize
	if maxSize == 0 {
		maxSize = DefaultMaxDecodedSize
	}

	decoder, err := zstd.NewReader(
		nil,
		zstd.WithDecoderConcurrency(int(opts.DecoderConcurrency)),
		zstd.WithDecoderMaxMemory(maxSize),
	)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}

// Compress encodes data as a single zstd frame.
// The operation is thread-safe and can be called concurrently.
func (z *ZstdCompression) Compress(data []byte) ([]byte, error) {
	z.mu.RLock()
	defer z.mu.RUnlock()

	if z.closed {
		return nil, ErrClosed
	}

	return z.encoder.EncodeAll(data, nil), nil
}

// Decompress restores the original data from its compressed form.
// The operation is thread-safe and can be called concurrently.
//
// Returns an error if:
// - The input data is not valid zstd compressed data
// - Decompression fails for any other reason
func (z *ZstdCompression) Decompress(data []byte) ([]byte, error) {
	z.mu.RLock()
	defer z.mu.RUnlock()

	if z.closed {
		return nil, ErrClosed
	}

	decompressed, err := z.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompression failed: %w", err)
	}

	return decompressed, nil
}

func (z *ZstdCompression) Name() string {
	return string(Zstd)
}

// Close releases the encoder and decoder. Calling it again is a no-op.
func (z *ZstdCompression) Close() error {
	z.mu.Lock()
	defer z.mu.Unlock()

	if z.closed {
		return nil
	}
	z.closed = true

	if err := z.encoder.Close(); err != nil {
		return fmt.Errorf("error closing encoder : %w", err)
	}

	z.decoder.Close()
	return nil
}
