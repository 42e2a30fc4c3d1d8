package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iamNilotpal/crc/internal/adapters/checksum"
	"github.com/iamNilotpal/crc/internal/adapters/compression"
	"github.com/iamNilotpal/crc/internal/core/domain"
	"github.com/iamNilotpal/crc/pkg/errors"
)

type Config struct {
	Checksum ChecksumConfig `yaml:"checksum"`
	Input    InputConfig    `yaml:"input"`
	Log      LogConfig      `yaml:"log"`
}

type ChecksumConfig struct {
	Algorithm string `yaml:"algorithm"` // crc32-iso-hdlc or crc32-castagnoli
}

// Holds settings for how input files are loaded.
type InputConfig struct {
	Decompress string        `yaml:"decompress"`  // none, zstd or gzip
	BufferSize uint32        `yaml:"buffer_size"` // Initial read buffer size
	Timeout    time.Duration `yaml:"timeout"`     // Per-file limit, 0 for none
	Exclude    []string      `yaml:"exclude"`     // Path fragments skipped when walking directories

	// Upper bound on the decoded size of one compressed file.
	MaxDecodedSize uint64 `yaml:"max_decoded_size"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Returns a Config struct with reasonable default values.
func DefaultConfig() *Config {
	return &Config{
		Checksum: ChecksumConfig{Algorithm: string(checksum.CRC32ISOHDLC)},
		Input: InputConfig{
			Decompress: string(compression.None),
			BufferSize:     1024 * 1024, // 1MB
			MaxDecodedSize: compression.DefaultMaxDecodedSize,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Loads configuration from a YAML file. Keys missing from the file keep
// their DefaultConfig values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.NewDigestError(errors.ErrorConfig, "read config", filename, err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.NewDigestError(errors.ErrorConfig, "parse config", filename, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func (c *Config) Validate() error {
	if err := checksum.Validate(c.ChecksumOptions()); err != nil {
		return err
	}

	switch domain.CompressionCodec(c.Input.Decompress) {
	case compression.None, compression.Zstd, compression.Gzip:
	default:
		return errors.NewValidationError(
			"input.decompress", c.Input.Decompress, fmt.Errorf("unsupported codec %q", c.Input.Decompress),
		)
	}

	if c.Input.Timeout < 0 {
		return errors.NewValidationError("input.timeout", c.Input.Timeout, fmt.Errorf("timeout must not be negative"))
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.NewValidationError("log.level", c.Log.Level, fmt.Errorf("unknown log level %q", c.Log.Level))
	}

	return nil
}

func (c *Config) ChecksumOptions() *domain.ChecksumOptions {
	return &domain.ChecksumOptions{Algorithm: domain.ChecksumAlgorithm(c.Checksum.Algorithm)}
}

// DigestOptions maps the configuration onto the digest service options.
func (c *Config) DigestOptions() *domain.DigestOptions {
	return &domain.DigestOptions{
		BufferSize:      c.Input.BufferSize,
		Timeout:         c.Input.Timeout,
		ChecksumOptions: c.ChecksumOptions(),
		CompressionOptions: &domain.CompressionOptions{
			Codec:          domain.CompressionCodec(c.Input.Decompress),
			Level:          compression.DefaultLevel,
			MaxDecodedSize: c.Input.MaxDecodedSize,
		},
	}
}
