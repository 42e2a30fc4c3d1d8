package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/crc/internal/adapters/checksum"
	"github.com/iamNilotpal/crc/internal/adapters/compression"
	"github.com/iamNilotpal/crc/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	opts := cfg.DigestOptions()
	assert.Equal(t, checksum.CRC32ISOHDLC, opts.ChecksumOptions.Algorithm)
	assert.Equal(t, compression.None, opts.CompressionOptions.Codec)
	assert.Equal(t, uint32(1024*1024), opts.BufferSize)
	assert.Equal(t, compression.DefaultMaxDecodedSize, opts.CompressionOptions.MaxDecodedSize)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
checksum:
  algorithm: crc32-castagnoli
input:
  decompress: gzip
  timeout: 5s
  exclude: [".git"]
  max_decoded_size: 4096
log:
  level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "crc32-castagnoli", cfg.Checksum.Algorithm)
	assert.Equal(t, "gzip", cfg.Input.Decompress)
	assert.Equal(t, 5*time.Second, cfg.Input.Timeout)
	assert.Equal(t, []string{".git"}, cfg.Input.Exclude)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, uint64(4096), cfg.DigestOptions().CompressionOptions.MaxDecodedSize)
	// Not in the file, so the default survives.
	assert.Equal(t, uint32(1024*1024), cfg.Input.BufferSize)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"algorithm", "checksum:\n  algorithm: crc32-bzip2\n", "algorithm"},
		{"codec", "input:\n  decompress: brotli\n", "input.decompress"},
		{"timeout", "input:\n  timeout: -1s\n", "input.timeout"},
		{"log level", "log:\n  level: loud\n", "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)

			ve := errors.AsValidationError(err)
			require.NotNil(t, ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	de := errors.AsDigestError(err)
	require.NotNil(t, de)
	assert.Equal(t, errors.ErrorConfig, de.Category)

	_, err = LoadConfig(writeConfig(t, "checksum: [not, a, map"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrorConfig, errors.AsDigestError(err).Category)
}
