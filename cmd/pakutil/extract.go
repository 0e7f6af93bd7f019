package main

import (
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/meigma/pak"
	pakhttp "github.com/meigma/pak/http"
)

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "extract one entry from a package file",
		ArgsUsage: "PACKAGE|URL",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "offset", Usage: "entry offset in the package", Required: true},
			&cli.Uint64Flag{Name: "size", Usage: "decompressed entry size", Required: true},
			&cli.Uint64Flag{Name: "csize", Usage: "on-disk size of a compressed entry (0 if stored)"},
			&cli.StringFlag{
				Name:    "compression",
				EnvVars: []string{"PAK_COMPRESSION"},
				Value:   "none",
				Usage:   "compression kind: none, zlib or brotli",
			},
			&cli.BoolFlag{Name: "encrypted", Usage: "entry is stored under cipher A"},
			&cli.StringFlag{Name: "name", Usage: "logical file name; selects markup decoding by extension"},
			&cli.Uint64Flag{
				Name:    "max-size",
				EnvVars: []string{"PAK_MAX_SIZE"},
				Value:   pak.DefaultMaxFileSize,
				Usage:   "maximum entry size in bytes (0 disables the limit)",
			},
			&cli.StringFlag{
				Name:    "mirror",
				EnvVars: []string{"PAK_MIRROR"},
				Usage:   "base URL of a package mirror; PACKAGE is resolved against it",
			},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (default stdout)"},
		},
		Action: runExtract,
	}
}

func runExtract(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.ShowCommandHelp(c, c.Command.Name)
	}
	kind, ok := pak.ParseCompression(c.String("compression"))
	if !ok {
		return fmt.Errorf("unknown compression %q", c.String("compression"))
	}

	path := c.Args().First()
	name := c.String("name")
	if name == "" {
		name = filepath.Base(path)
	}
	rec := pak.Record{
		Path:           path,
		Name:           name,
		Offset:         c.Uint64("offset"),
		Size:           c.Uint64("size"),
		CompressedSize: c.Uint64("csize"),
		Compression:    kind,
		Encrypted:      c.Bool("encrypted"),
	}

	logger := newLogger(c)
	opts := []pak.Option{pak.WithLogger(logger), pak.WithMaxFileSize(c.Uint64("max-size"))}
	if mirror := c.String("mirror"); mirror != "" || pakhttp.IsURL(path) {
		opts = append(opts, pak.WithOpener(pakhttp.Opener(mirror)))
	}
	e := pak.New(opts...)
	defer e.Close()

	p, err := e.Extract(rec)
	if err != nil {
		return err
	}
	if p.Degraded {
		logger.Warn("payload is zero-filled", "name", rec.Name)
	}

	out, closeOut, err := output(c.String("out"))
	if err != nil {
		return err
	}
	if _, err := out.Write(p.Data); err != nil {
		closeOut()
		return fmt.Errorf("write output: %w", err)
	}
	return closeOut()
}
