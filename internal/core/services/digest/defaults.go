package digest

import (
	"go.uber.org/zap"

	"github.com/iamNilotpal/crc/internal/adapters/checksum"
	"github.com/iamNilotpal/crc/internal/adapters/compression"
	"github.com/iamNilotpal/crc/internal/core/domain"
)

const (
	DefaultBufferSize = 1024 * 1024 // 1MB

	DefaultMinBufferSize = 4096             // 4KB
	DefaultMaxBufferSize = 64 * 1024 * 1024 // 64MB
)

func prepareDefaults(opts *domain.DigestOptions) *domain.DigestOptions {
	if opts.BufferSize == 0 {
		opts.BufferSize = DefaultBufferSize
	}

	if opts.ChecksumOptions == nil {
		opts.ChecksumOptions = checksum.DefaultOptions()
	} else if opts.ChecksumOptions.Custom == nil && opts.ChecksumOptions.Algorithm == "" {
		opts.ChecksumOptions.Algorithm = checksum.CRC32ISOHDLC
	}

	if opts.CompressionOptions == nil {
		opts.CompressionOptions = compression.DefaultOptions()
	} else {
		if opts.CompressionOptions.Codec == "" {
			opts.CompressionOptions.Codec = compression.None
		}
		if opts.CompressionOptions.Level == 0 {
			opts.CompressionOptions.Level = compression.DefaultLevel
		}
		if opts.CompressionOptions.MaxDecodedSize == 0 {
			opts.CompressionOptions.MaxDecodedSize = compression.DefaultMaxDecodedSize
		}
	}

	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}

	return opts
}
