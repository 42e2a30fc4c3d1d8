// Package domain defines the core types and configurations for checksumming inputs.
package domain

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DigestOptions configures the digest service.
type DigestOptions struct {
	// BufferSize is the initial capacity of pooled read buffers.
	// Files larger than this still load, the buffer just grows and is not pooled.
	// Must be between 4KB and 64MB.
	//
	// Default: 1MB
	BufferSize uint32

	// Timeout bounds a single Sum or Verify call. Zero means no limit
	// beyond the caller's context.
	Timeout time.Duration

	ChecksumOptions    *ChecksumOptions
	CompressionOptions *CompressionOptions

	Logger *zap.SugaredLogger
}

// Digest is the checksum of one input.
type Digest struct {
	Path      string            `json:"path"`
	Algorithm ChecksumAlgorithm `json:"algorithm"`
	Sum       uint32            `json:"sum"`
	Size      int               `json:"size"` // decoded bytes checksummed
}

// Hex formats the checksum as eight lowercase hex digits.
func (d *Digest) Hex() string {
	return fmt.Sprintf("%08x", d.Sum)
}

// Verification is the outcome of comparing a Digest against an expected value.
// A mismatch is a result, not an error.
type Verification struct {
	Digest
	Expected uint32 `json:"expected"`
	Match    bool   `json:"match"`
}
