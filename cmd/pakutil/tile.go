package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/meigma/pak/tile"
)

func tileCommand() *cli.Command {
	return &cli.Command{
		Name:      "tile",
		Usage:     "decode one frame of a tile file to PNG",
		ArgsUsage: "FILE.til",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "frame", Aliases: []string{"f"}, Usage: "frame index"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output PNG (default stdout)"},
		},
		Action: runTile,
	}
}

func runTile(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.ShowCommandHelp(c, c.Command.Name)
	}
	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return err
	}
	fs, err := tile.Parse(data)
	if err != nil {
		return err
	}
	index := c.Int("frame")
	frame, ok := fs.Frame(index)
	if !ok {
		return fmt.Errorf("frame %d out of range: tile has %d frames", index, fs.Len())
	}
	pf, err := tile.DecodeFrame(frame)
	if err != nil {
		return err
	}
	newLogger(c).Debug("decoded frame",
		"frame", index, "family", pf.Family.String(), "width", pf.Width, "height", pf.Height, "pixels", pf.Coverage())
	if pf.Width == 0 || pf.Height == 0 {
		return fmt.Errorf("frame %d has no pixels to encode", index)
	}

	out, closeOut, err := output(c.String("out"))
	if err != nil {
		return err
	}
	if err := png.Encode(out, pf); err != nil {
		closeOut()
		return fmt.Errorf("encode png: %w", err)
	}
	return closeOut()
}
