package compression

import (
	"fmt"
	"math"
	"runtime"

	"github.com/iamNilotpal/crc/internal/core/domain"
	"github.com/iamNilotpal/crc/internal/core/ports"
	"github.com/iamNilotpal/crc/pkg/errors"
)

const (
	// None leaves input bytes untouched.
	None domain.CompressionCodec = "none"

	// Zstd decodes zstd frames.
	Zstd domain.CompressionCodec = "zstd"

	// Gzip decodes gzip members. The gzip trailer carries its own
	// CRC-32/ISO-HDLC, which the decoder checks.
	Gzip domain.CompressionCodec = "gzip"
)

// DefaultMaxDecodedSize bounds how large one decoded input may grow in memory.
const DefaultMaxDecodedSize uint64 = 512 * 1024 * 1024 // 512MB

// Returns CompressionOptions that leave input untouched.
func DefaultOptions() *domain.CompressionOptions {
	return &domain.CompressionOptions{
		Codec:              None,
		Level:              DefaultLevel,
		DecoderConcurrency: MaxDecoderConcurrency(),
		MaxDecodedSize:     DefaultMaxDecodedSize,
	}
}

// MaxDecoderConcurrency is the CPU count, capped to what fits the option field.
func MaxDecoderConcurrency() uint8 {
	return clampConcurrency(runtime.NumCPU())
}

func clampConcurrency(n int) uint8 {
	if n > math.MaxUint8 {
		return math.MaxUint8
	}
	if n < 1 {
		return 1
	}
	return uint8(n)
}

// Checks if the compression options are valid and returns an error if any option
// is outside acceptable bounds.
func Validate(input *domain.CompressionOptions) error {
	switch input.Codec {
	case None, Zstd, Gzip:
	default:
		return errors.NewValidationError(
			"codec", input.Codec, fmt.Errorf("unsupported compression codec: %q", input.Codec),
		)
	}

	if input.Level < FastestLevel || input.Level > BestLevel {
		return errors.NewValidationError(
			"level", input.Level,
			fmt.Errorf("compression level must be between %d and %d, got %d", FastestLevel, BestLevel, input.Level),
		)
	}

	if limit := MaxDecoderConcurrency(); input.DecoderConcurrency > limit {
		return errors.NewValidationError(
			"decoderConcurrency", input.DecoderConcurrency,
			fmt.Errorf("decoder concurrency must be between 0 and %d, got %d", limit, input.DecoderConcurrency),
		)
	}

	return nil
}

// New returns the codec selected by opts, or nil for None.
func New(opts *domain.CompressionOptions) (ports.Compression, error) {
	if opts == nil {
		return nil, nil
	}

	if err := Validate(opts); err != nil {
		return nil, err
	}

	switch opts.Codec {
	case Zstd:
		z, err := NewZstdCompression(Options{
			Level:              opts.Level,
			DecoderConcurrency: opts.DecoderConcurrency,
			MaxDecodedSize:     opts.MaxDecodedSize,
		})
		if err != nil {
			return nil, err
		}
		return z, nil
	case Gzip:
		return NewGzipCompression(opts.MaxDecodedSize), nil
	default:
		return nil, nil
	}
}
