package digest

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/iamNilotpal/crc/internal/adapters/checksum"
	"github.com/iamNilotpal/crc/internal/adapters/compression"
	"github.com/iamNilotpal/crc/internal/core/domain"
	cerrors "github.com/iamNilotpal/crc/pkg/errors"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func newService(t *testing.T, opts *domain.DigestOptions) *Service {
	t.Helper()
	if opts == nil {
		opts = &domain.DigestOptions{}
	}
	opts.Logger = zaptest.NewLogger(t).Sugar()

	s, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}

func TestSum(t *testing.T) {
	s := newService(t, nil)
	assert.Equal(t, checksum.CRC32ISOHDLC, s.Algorithm())

	d, err := s.Sum(context.Background(), writeFile(t, "check.txt", []byte("123456789")))
	require.NoError(t, err)
	assert.Equal(t, uint32(0xCBF43926), d.Sum)
	assert.Equal(t, "cbf43926", d.Hex())
	assert.Equal(t, 9, d.Size)
	assert.Equal(t, checksum.CRC32ISOHDLC, d.Algorithm)
}

func TestSumEmptyFile(t *testing.T) {
	s := newService(t, nil)

	d, err := s.Sum(context.Background(), writeFile(t, "empty", nil))
	require.NoError(t, err)
	assert.Equal(t, uint32(0), d.Sum)
	assert.Equal(t, "00000000", d.Hex())
}

func TestSumLargerThanBuffer(t *testing.T) {
	s := newService(t, &domain.DigestOptions{BufferSize: DefaultMinBufferSize})

	data := bytes.Repeat([]byte{0xA5}, 3*DefaultMinBufferSize+17)
	path := writeFile(t, "big.bin", data)

	first, err := s.Sum(context.Background(), path)
	require.NoError(t, err)
	second, err := s.Sum(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first.Sum, second.Sum)
	assert.Equal(t, len(data), first.Size)
}

func TestSumCastagnoli(t *testing.T) {
	s := newService(t, &domain.DigestOptions{
		ChecksumOptions: &domain.ChecksumOptions{Algorithm: checksum.CRC32Castagnoli},
	})

	d, err := s.Sum(context.Background(), writeFile(t, "check.txt", []byte("123456789")))
	require.NoError(t, err)
	assert.Equal(t, uint32(0xE3069283), d.Sum)
}

func TestVerify(t *testing.T) {
	s := newService(t, nil)
	path := writeFile(t, "data", []byte("test data"))

	d, err := s.Sum(context.Background(), path)
	require.NoError(t, err)

	ok, err := s.Verify(context.Background(), path, d.Sum)
	require.NoError(t, err)
	assert.True(t, ok.Match)
	assert.Equal(t, d.Sum, ok.Sum)

	bad, err := s.Verify(context.Background(), path, d.Sum+1)
	require.NoError(t, err, "a mismatch is not an error")
	assert.False(t, bad.Match)
	assert.Equal(t, d.Sum+1, bad.Expected)
	assert.Equal(t, d.Sum, bad.Sum)
}

func TestVerifyCompressedInputs(t *testing.T) {
	payload := bytes.Repeat([]byte("event-stream frame "), 64)

	for _, codec := range []domain.CompressionCodec{compression.Zstd, compression.Gzip} {
		t.Run(string(codec), func(t *testing.T) {
			encoder, err := compression.New(&domain.CompressionOptions{Codec: codec, Level: compression.DefaultLevel})
			require.NoError(t, err)
			encoded, err := encoder.Compress(payload)
			require.NoError(t, err)
			require.NoError(t, encoder.Close())

			s := newService(t, &domain.DigestOptions{
				CompressionOptions: &domain.CompressionOptions{Codec: codec},
			})

			raw := newService(t, nil)
			want, err := raw.Sum(context.Background(), writeFile(t, "plain", payload))
			require.NoError(t, err)

			got, err := s.Verify(context.Background(), writeFile(t, "encoded", encoded), want.Sum)
			require.NoError(t, err)
			assert.True(t, got.Match)
			assert.Equal(t, len(payload), got.Size)
		})
	}
}

func TestSumCorruptCompressedInput(t *testing.T) {
	s := newService(t, &domain.DigestOptions{
		CompressionOptions: &domain.CompressionOptions{Codec: compression.Zstd},
	})

	_, err := s.Sum(context.Background(), writeFile(t, "junk.zst", []byte("not zstd at all")))
	require.Error(t, err)

	de := cerrors.AsDigestError(err)
	require.NotNil(t, de)
	assert.Equal(t, cerrors.ErrorCompression, de.Category)
	assert.False(t, de.IsRetryAble())
}

func TestSumDecodedSizeLimit(t *testing.T) {
	encoder := compression.NewGzipCompression(0)
	bomb, err := encoder.Compress(make([]byte, 1<<20))
	require.NoError(t, err)

	s := newService(t, &domain.DigestOptions{
		CompressionOptions: &domain.CompressionOptions{Codec: compression.Gzip, MaxDecodedSize: 4096},
	})

	_, err = s.Sum(context.Background(), writeFile(t, "bomb.gz", bomb))
	require.Error(t, err)
	assert.ErrorIs(t, err, compression.ErrDecodedSizeExceeded)

	de := cerrors.AsDigestError(err)
	require.NotNil(t, de)
	assert.Equal(t, cerrors.ErrorCompression, de.Category)
}

func TestSumMissingFile(t *testing.T) {
	s := newService(t, nil)

	_, err := s.Sum(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSumCancelled(t *testing.T) {
	s := newService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Sum(ctx, writeFile(t, "data", []byte("x")))
	require.ErrorIs(t, err, context.Canceled)

	de := cerrors.AsDigestError(err)
	require.NotNil(t, de)
	assert.Equal(t, cerrors.ErrorCanceled, de.Category)
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name  string
		opts  *domain.DigestOptions
		field string
	}{
		{"buffer too small", &domain.DigestOptions{BufferSize: 1024}, "bufferSize"},
		{"buffer too large", &domain.DigestOptions{BufferSize: DefaultMaxBufferSize + 1}, "bufferSize"},
		{"negative timeout", &domain.DigestOptions{Timeout: -1}, "timeout"},
		{"bad algorithm", &domain.DigestOptions{ChecksumOptions: &domain.ChecksumOptions{Algorithm: "crc32-bzip2"}}, "algorithm"},
		{"bad codec", &domain.DigestOptions{CompressionOptions: &domain.CompressionOptions{Codec: "brotli"}}, "codec"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			require.Error(t, err)

			ve := cerrors.AsValidationError(err)
			require.NotNil(t, ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

type memFiles map[string][]byte

func (m memFiles) ReadInto(path string, buf *bytes.Buffer) error {
	data, ok := m[path]
	if !ok {
		return os.ErrNotExist
	}
	_, err := buf.Write(data)
	return err
}

func TestNewWithFileReader(t *testing.T) {
	s, err := NewWithFileReader(nil, memFiles{"frame": []byte("123456789")})
	require.NoError(t, err)

	v, err := s.Verify(context.Background(), "frame", 0xCBF43926)
	require.NoError(t, err)
	assert.True(t, v.Match)

	_, err = s.Sum(context.Background(), "absent")
	assert.True(t, IsNotFound(err))
}
