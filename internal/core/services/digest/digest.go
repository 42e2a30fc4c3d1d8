// Package digest checksums whole files, optionally decoding them first.
package digest

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/iamNilotpal/crc/internal/adapters/checksum"
	"github.com/iamNilotpal/crc/internal/adapters/compression"
	"github.com/iamNilotpal/crc/internal/core/domain"
	"github.com/iamNilotpal/crc/internal/core/ports"
	cerrors "github.com/iamNilotpal/crc/pkg/errors"
	"github.com/iamNilotpal/crc/pkg/fs"
	"github.com/iamNilotpal/crc/pkg/pool"
	"github.com/iamNilotpal/crc/pkg/system"
)

// Service computes and verifies checksums of files. It is safe for concurrent use.
type Service struct {
	options *domain.DigestOptions
	log     *zap.SugaredLogger

	checksum ports.Checksum
	codec    ports.Compression // nil when inputs are not compressed
	files    ports.FileReader
	buffers  *pool.BufferPool
}

// New builds a Service from opts. A nil opts uses the defaults: CRC-32/ISO-HDLC
// over the raw file contents.
func New(opts *domain.DigestOptions) (*Service, error) {
	return NewWithFileReader(opts, fs.NewLocalFileSystem())
}

// NewWithFileReader is New with a custom file source.
func NewWithFileReader(opts *domain.DigestOptions, files ports.FileReader) (*Service, error) {
	if opts == nil {
		opts = &domain.DigestOptions{}
	}
	opts = prepareDefaults(opts)

	if err := Validate(opts); err != nil {
		return nil, err
	}

	sum, err := checksum.New(opts.ChecksumOptions)
	if err != nil {
		return nil, err
	}

	codec, err := compression.New(opts.CompressionOptions)
	if err != nil {
		return nil, cerrors.NewDigestError(cerrors.ErrorCompression, "init", "", err)
	}

	opts.Logger.Debugw(
		"digest service ready",
		"algorithm", sum.Name(),
		"codec", opts.CompressionOptions.Codec,
		"bufferSize", opts.BufferSize,
	)

	return &Service{
		options:  opts,
		log:      opts.Logger,
		checksum: sum,
		codec:    codec,
		files:    files,
		buffers:  pool.NewBufferPool(int(opts.BufferSize)),
	}, nil
}

// Algorithm returns the name of the checksum algorithm in use.
func (s *Service) Algorithm() domain.ChecksumAlgorithm {
	return domain.ChecksumAlgorithm(s.checksum.Name())
}

// Sum returns the checksum of the (decoded) contents of path.
func (s *Service) Sum(ctx context.Context, path string) (*domain.Digest, error) {
	var digest *domain.Digest
	err := s.load(ctx, path, func(data []byte) {
		digest = &domain.Digest{
			Path:      path,
			Algorithm: s.Algorithm(),
			Sum:       s.checksum.Calculate(data),
			Size:      len(data),
		}
	})
	if err != nil {
		return nil, err
	}

	s.log.Debugw("checksum computed", "path", path, "sum", digest.Hex(), "size", digest.Size)
	return digest, nil
}

// Verify compares the checksum of path against expected. A mismatch is
// reported through Verification.Match, never as an error.
func (s *Service) Verify(ctx context.Context, path string, expected uint32) (*domain.Verification, error) {
	var result *domain.Verification
	err := s.load(ctx, path, func(data []byte) {
		// Only recompute to report the actual value on mismatch.
		match := s.checksum.Verify(data, expected)
		sum := expected
		if !match {
			sum = s.checksum.Calculate(data)
		}

		result = &domain.Verification{
			Digest: domain.Digest{
				Path:      path,
				Algorithm: s.Algorithm(),
				Sum:       sum,
				Size:      len(data),
			},
			Expected: expected,
			Match:    match,
		}
	})
	if err != nil {
		return nil, err
	}

	if !result.Match {
		s.log.Warnw(
			"checksum mismatch",
			"path", path,
			"expected", fmt.Sprintf("%08x", expected),
			"actual", result.Hex(),
		)
	}

	return result, nil
}

// Close releases the decoder, if any.
func (s *Service) Close(ctx context.Context) error {
	if s.codec == nil {
		return nil
	}

	return system.RunWithContext(ctx, func(context.Context) error {
		return s.codec.Close()
	})
}

// load reads path into a pooled buffer, decodes it and hands the bytes to fn.
// The slice passed to fn is only valid during the call.
func (s *Service) load(ctx context.Context, path string, fn func(data []byte)) error {
	if s.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.options.Timeout)
		defer cancel()
	}

	if err := ctx.Err(); err != nil {
		return cerrors.NewDigestError(cerrors.ErrorCanceled, "read", path, err)
	}

	buf := s.buffers.Get()
	defer s.buffers.Put(buf)

	if err := s.files.ReadInto(path, buf); err != nil {
		return cerrors.NewDigestError(cerrors.ErrorStorage, "read", path, err)
	}

	if err := ctx.Err(); err != nil {
		return cerrors.NewDigestError(cerrors.ErrorCanceled, "read", path, err)
	}

	data := buf.Bytes()
	if s.codec != nil {
		decoded, err := s.codec.Decompress(data)
		if err != nil {
			return cerrors.NewDigestError(cerrors.ErrorCompression, "decompress", path, err)
		}
		data = decoded
	}

	fn(data)
	return nil
}

// IsNotFound reports whether err was caused by a missing input file.
func IsNotFound(err error) bool {
	de := cerrors.AsDigestError(err)
	return de != nil && de.Category == cerrors.ErrorStorage && errors.Is(de.Err, os.ErrNotExist)
}
