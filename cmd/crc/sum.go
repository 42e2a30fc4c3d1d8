package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/iamNilotpal/crc/internal/core/domain"
	"github.com/iamNilotpal/crc/internal/serialize"
	"github.com/iamNilotpal/crc/pkg/fs"
)

type jsonDigest struct {
	*domain.Digest
	Hex string `json:"hex"`
}

func sumCmd(st *state) *cli.Command {
	return &cli.Command{
		Name:      "sum",
		Usage:     "Print the checksum of each file",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "recursive", Aliases: []string{"r"}, Usage: "Walk directories"},
			&cli.BoolFlag{Name: "json", Usage: "Print one JSON object per file"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("sum: at least one FILE is required", 2)
			}

			paths, err := expandPaths(c.Args().Slice(), c.Bool("recursive"), st.cfg.Input.Exclude)
			if err != nil {
				return err
			}

			failed := 0
			for _, path := range paths {
				d, err := st.digest.Sum(c.Context, path)
				if err != nil {
					logFailure(st.log, "checksum failed", path, err)
					failed++
					continue
				}
				if c.Bool("json") {
					if err := serialize.WriteJSONLine(c.App.Writer, jsonDigest{Digest: d, Hex: d.Hex()}); err != nil {
						return err
					}
					continue
				}
				fmt.Fprintf(c.App.Writer, "%s  %s\n", d.Hex(), path)
			}

			if failed > 0 {
				return cli.Exit(fmt.Sprintf("sum: %d of %d files failed", failed, len(paths)), 1)
			}
			return nil
		},
	}
}

// expandPaths replaces directories with the files beneath them when recursive is set.
func expandPaths(args []string, recursive bool, exclude []string) ([]string, error) {
	lfs := fs.NewLocalFileSystem()
	paths := make([]string, 0, len(args))

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() || !recursive {
			// Missing files are reported by the digest service.
			paths = append(paths, arg)
			continue
		}

		files, err := lfs.ListFiles(arg, exclude)
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", arg, err)
		}
		paths = append(paths, files...)
	}

	return paths, nil
}
