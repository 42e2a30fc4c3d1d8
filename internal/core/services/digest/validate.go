package digest

import (
	"fmt"

	"github.com/iamNilotpal/crc/internal/adapters/checksum"
	"github.com/iamNilotpal/crc/internal/adapters/compression"
	"github.com/iamNilotpal/crc/internal/core/domain"
	"github.com/iamNilotpal/crc/pkg/errors"
)

// Validate checks opts after defaults have been applied.
func Validate(opts *domain.DigestOptions) error {
	if err := validateBufferSize(opts.BufferSize); err != nil {
		return err
	}

	if opts.Timeout < 0 {
		return errors.NewValidationError(
			"timeout", opts.Timeout, fmt.Errorf("timeout must not be negative, got %s", opts.Timeout),
		)
	}

	if err := checksum.Validate(opts.ChecksumOptions); err != nil {
		return err
	}

	return compression.Validate(opts.CompressionOptions)
}

func validateBufferSize(size uint32) error {
	if size < DefaultMinBufferSize {
		return errors.NewValidationError(
			"bufferSize", size, fmt.Errorf("buffer size must be at least 4KB (4096 bytes), got %d bytes", size),
		)
	}

	if size > DefaultMaxBufferSize {
		return errors.NewValidationError(
			"bufferSize", size, fmt.Errorf("buffer size must not exceed 64MB (67108864 bytes), got %d bytes", size),
		)
	}

	return nil
}
