package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/iamNilotpal/crc/config"
	"github.com/iamNilotpal/crc/internal/core/services/digest"
	"github.com/iamNilotpal/crc/pkg/errors"
	"github.com/iamNilotpal/crc/pkg/logger"
)

const serviceName = "crc"

// state holds what Before builds for the subcommands.
type state struct {
	cfg    *config.Config
	log    *zap.SugaredLogger
	digest *digest.Service
}

func newApp(stdout, stderr io.Writer) *cli.App {
	st := &state{}

	return &cli.App{
		Name:      serviceName,
		Usage:     "Compute and verify CRC-32/ISO-HDLC checksums of files",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Path to YAML config file", EnvVars: []string{"CRC_CONFIG"}},
			&cli.StringFlag{Name: "algorithm", Aliases: []string{"a"}, Usage: "crc32-iso-hdlc or crc32-castagnoli", EnvVars: []string{"CRC_ALGORITHM"}},
			&cli.StringFlag{Name: "decompress", Aliases: []string{"d"}, Usage: "Decode inputs first: none, zstd or gzip", EnvVars: []string{"CRC_DECOMPRESS"}},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error", EnvVars: []string{"CRC_LOG_LEVEL"}},
		},
		Commands: []*cli.Command{
			sumCmd(st),
			verifyCmd(st),
		},
		Before: st.setup,
		After:  st.teardown,
	}
}

func (st *state) setup(c *cli.Context) error {
	cfg := config.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		cfg = loaded
	}

	if c.IsSet("algorithm") {
		cfg.Checksum.Algorithm = c.String("algorithm")
	}
	if c.IsSet("decompress") {
		cfg.Input.Decompress = c.String("decompress")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	log, err := logger.NewWithLevel(serviceName, cfg.Log.Level)
	if err != nil {
		return usageError(err)
	}

	opts := cfg.DigestOptions()
	opts.Logger = log

	svc, err := digest.New(opts)
	if err != nil {
		return usageError(err)
	}

	st.cfg, st.log, st.digest = cfg, log, svc
	return nil
}

func (st *state) teardown(c *cli.Context) error {
	if st.digest != nil {
		if err := st.digest.Close(context.Background()); err != nil {
			st.log.Warnw("error closing digest service", "error", err)
		}
	}
	if st.log != nil {
		// Sync on stderr returns EINVAL on some platforms; nothing to act on.
		_ = st.log.Sync()
	}
	return nil
}

// usageError maps bad flag or config values to exit code 2 and leaves
// everything else to main.
func usageError(err error) error {
	if errors.IsValidationError(err) {
		return cli.Exit(err.Error(), 2)
	}
	return err
}

// logFailure logs a per-file failure. Failures that may succeed on a rerun,
// such as I/O errors or timeouts, are warnings; the rest are errors.
func logFailure(log *zap.SugaredLogger, msg, path string, err error) {
	if de := errors.AsDigestError(err); de != nil && de.IsRetryAble() {
		log.Warnw(msg, "path", path, "retryable", true, "error", err)
		return
	}
	log.Errorw(msg, "path", path, "error", err)
}

// parseChecksum parses eight or fewer hex digits, with an optional 0x prefix.
func parseChecksum(s string) (uint32, error) {
	hex := strings.TrimSpace(s)
	hex = strings.TrimPrefix(strings.TrimPrefix(hex, "0x"), "0X")
	if hex == "" || len(hex) > 8 {
		return 0, fmt.Errorf("invalid checksum %q: want up to 8 hex digits", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid checksum %q: %w", s, err)
	}
	return uint32(v), nil
}
