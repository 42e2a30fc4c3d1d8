package checksum

import (
	"fmt"

	"github.com/iamNilotpal/crc/internal/core/domain"
	"github.com/iamNilotpal/crc/internal/core/ports"
	"github.com/iamNilotpal/crc/pkg/errors"
)

const (
	// CRC32ISOHDLC is CRC-32 as used by Ethernet, ZIP, PNG and gzip.
	CRC32ISOHDLC domain.ChecksumAlgorithm = "crc32-iso-hdlc"

	// CRC32Castagnoli is CRC-32C, for protocols that checksum some fields with it.
	CRC32Castagnoli domain.ChecksumAlgorithm = "crc32-castagnoli"
)

// Algorithms lists the built-in algorithms, default first.
var Algorithms = []domain.ChecksumAlgorithm{CRC32ISOHDLC, CRC32Castagnoli}

// Returns recommended checksum settings.
func DefaultOptions() *domain.ChecksumOptions {
	return &domain.ChecksumOptions{Algorithm: CRC32ISOHDLC}
}

func Validate(input *domain.ChecksumOptions) error {
	if input.Custom == nil {
		switch input.Algorithm {
		case CRC32ISOHDLC, CRC32Castagnoli:
		default:
			return errors.NewValidationError(
				"algorithm", input.Algorithm, fmt.Errorf("unsupported checksum algorithm: %q", input.Algorithm),
			)
		}
	}
	return nil
}

// New returns the checksum engine selected by opts. A nil opts selects the default.
func New(opts *domain.ChecksumOptions) (ports.Checksum, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if opts.Custom != nil {
		return opts.Custom, nil
	}

	if err := Validate(opts); err != nil {
		return nil, err
	}

	switch opts.Algorithm {
	case CRC32Castagnoli:
		return NewCRC32Castagnoli(), nil
	default:
		return NewCRC32ISOHDLC(), nil
	}
}
