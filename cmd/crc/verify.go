package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

func verifyCmd(st *state) *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Check files against expected checksums",
		ArgsUsage: "FILE",
		Description: "Either pass --expected with a single FILE, or --manifest with\n" +
			"lines of \"<checksum>  <path>\" as printed by the sum command.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "expected", Aliases: []string{"e"}, Usage: "Expected checksum in hex"},
			&cli.StringFlag{Name: "manifest", Aliases: []string{"m"}, Usage: "File of checksums to verify"},
		},
		Action: func(c *cli.Context) error {
			var entries []manifestEntry

			if c.IsSet("manifest") && (c.IsSet("expected") || c.NArg() > 0) {
				return cli.Exit("verify: --manifest cannot be combined with --expected or FILE arguments", 2)
			}

			switch {
			case c.IsSet("manifest"):
				loaded, err := readManifest(c.String("manifest"))
				if err != nil {
					return cli.Exit(err.Error(), 2)
				}
				entries = loaded
			case c.IsSet("expected") && c.NArg() == 1:
				expected, err := parseChecksum(c.String("expected"))
				if err != nil {
					return cli.Exit(err.Error(), 2)
				}
				entries = []manifestEntry{{path: c.Args().First(), expected: expected}}
			default:
				return cli.Exit("verify: need --expected HEX FILE or --manifest FILE", 2)
			}

			mismatched, failed := 0, 0
			for _, entry := range entries {
				v, err := st.digest.Verify(c.Context, entry.path, entry.expected)
				if err != nil {
					logFailure(st.log, "verification failed", entry.path, err)
					fmt.Fprintf(c.App.Writer, "%s: FAILED open or read\n", entry.path)
					failed++
					continue
				}

				if v.Match {
					fmt.Fprintf(c.App.Writer, "%s: OK\n", entry.path)
				} else {
					fmt.Fprintf(c.App.Writer, "%s: MISMATCH (got %s, want %08x)\n", entry.path, v.Hex(), entry.expected)
					mismatched++
				}
			}

			if mismatched > 0 || failed > 0 {
				return cli.Exit(
					fmt.Sprintf("verify: %d mismatched, %d unreadable of %d", mismatched, failed, len(entries)), 1,
				)
			}
			return nil
		},
	}
}

const blanks = " \t"

type manifestEntry struct {
	path     string
	expected uint32
}

// readManifest parses "<hex>  <path>" lines. The checksum ends at the first
// space or tab; the path is the rest of the line after that run of blanks,
// trailing spaces included. Blank lines and lines starting with # are skipped.
func readManifest(path string) ([]manifestEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening manifest: %w", err)
	}
	defer file.Close()

	var entries []manifestEntry
	scanner := bufio.NewScanner(file)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimLeft(strings.TrimSuffix(scanner.Text(), "\r"), blanks)
		if strings.TrimRight(text, blanks) == "" || strings.HasPrefix(text, "#") {
			continue
		}

		var sum, target string
		if i := strings.IndexAny(text, blanks); i > 0 {
			sum, target = text[:i], strings.TrimLeft(text[i:], blanks)
		}
		if target == "" {
			return nil, fmt.Errorf("manifest %s:%d: want \"<checksum>  <path>\"", path, line)
		}

		expected, err := parseChecksum(sum)
		if err != nil {
			return nil, fmt.Errorf("manifest %s:%d: %w", path, line, err)
		}
		entries = append(entries, manifestEntry{path: target, expected: expected})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading manifest: %w", err)
	}
	return entries, nil
}
