package domain

import (
	"github.com/iamNilotpal/crc/internal/core/ports"
)

// ChecksumAlgorithm represents supported checksum algorithms
type ChecksumAlgorithm string

// ChecksumOptions selects the checksum engine.
type ChecksumOptions struct {
	// Algorithm specifies which checksum algorithm to use.
	// Defaults to CRC32ISOHDLC if not specified.
	Algorithm ChecksumAlgorithm

	// Custom allows using a custom ports.Checksum implementation.
	// If provided, it takes precedence over Algorithm.
	Custom ports.Checksum
}
