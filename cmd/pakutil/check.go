package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/meigma/pak/integrity"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "check tile files for truncation and corruption",
		ArgsUsage: "FILE.til...",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "workers",
				EnvVars: []string{"PAK_WORKERS"},
				Usage:   "files checked in parallel (0 = GOMAXPROCS)",
			},
		},
		Action: runCheck,
	}
}

// tileID returns the id encoded in a "<id>.til" file name.
func tileID(path string) (int, error) {
	base := filepath.Base(path)
	id, err := strconv.Atoi(strings.TrimSuffix(base, filepath.Ext(base)))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s: file name is not a tile id", path)
	}
	return id, nil
}

func runCheck(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.ShowCommandHelp(c, c.Command.Name)
	}

	paths := make(map[int]string, c.NArg())
	ids := make([]int, 0, c.NArg())
	for _, p := range c.Args().Slice() {
		id, err := tileID(p)
		if err != nil {
			return err
		}
		paths[id] = p
		ids = append(ids, id)
	}

	checker := integrity.NewChecker(func(id int) ([]byte, error) {
		return os.ReadFile(paths[id])
	}, integrity.WithWorkers(c.Int("workers")), integrity.WithLogger(newLogger(c)))

	bad, err := checker.CheckAll(c.Context, ids)
	if err != nil {
		return err
	}
	for _, r := range bad {
		fmt.Fprintf(c.App.Writer, "%s\tframes=%d\tsize=%d\tcorrupted_from=%d\t%s\t%s\n",
			paths[r.TileID], r.FrameCount, r.Size, r.CorruptedFrom, r.Digest, r.Cause)
	}
	if len(bad) > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d tiles are corrupt", len(bad), len(paths)), 2)
	}
	return nil
}
