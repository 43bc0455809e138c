// tdattool is a CLI utility for inspecting generated terrain tile buffers.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/Faultbox/terragen/pkg/formats"
	"github.com/Faultbox/terragen/pkg/palette"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "dump":
		cmdDump(args)
	case "heights", "map":
		cmdHeights(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tdattool - terrain tile buffer utility

Usage:
  tdattool <command> [options]

Commands:
  info <tdata.bin>              Show tile count, extents and height range
  dump <tdata.bin>              Print tiles as text (-n limits output)
  heights <tdata.bin>           Draw the height field as characters

Examples:
  tdattool info ../Data/tdata.bin
  tdattool dump -n 20 ../Data/tdata.bin
  tdattool heights ../Data/tdata.bin`)
}

func load(path string) []formats.Tile {
	tiles, err := formats.ParseTilesFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return tiles
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: tdattool info <tdata.bin>")
		os.Exit(1)
	}

	tiles := load(args[0])
	writeInfo(os.Stdout, args[0], formats.Summarize(tiles))
}

func writeInfo(w io.Writer, path string, stats formats.TileStats) {
	fmt.Fprintf(w, "File:    %s\n", path)
	fmt.Fprintf(w, "Tiles:   %d (%d bytes)\n", stats.Count, stats.Count*formats.TileRecordSize)
	fmt.Fprintf(w, "Extents: %dx%d\n", stats.Width, stats.Height)
	if int(stats.Width)*int(stats.Height) != stats.Count {
		fmt.Fprintln(w, "         (grid is not fully covered)")
	}
	fmt.Fprintf(w, "Height:  %.3f .. %.3f\n", stats.MinHeight, stats.MaxHeight)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tiles by texture:")

	type uvStat struct {
		uv    palette.UV
		count int
	}
	var uvs []uvStat
	for uv, count := range stats.ByUV {
		uvs = append(uvs, uvStat{uv, count})
	}
	sort.Slice(uvs, func(i, j int) bool {
		return uvs[i].count > uvs[j].count
	})

	for _, s := range uvs {
		name := palette.Lookup(s.uv)
		if name == "" {
			name = "(unknown)"
		}
		fmt.Fprintf(w, "  %-14s %-22s %d\n", name, s.uv, s.count)
	}
}

func cmdDump(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	limit := fs.Int("n", 0, "Limit output to N tiles (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: tdattool dump [-n N] <tdata.bin>")
		os.Exit(1)
	}

	tiles := load(fs.Arg(0))
	for i, t := range tiles {
		if *limit > 0 && i >= *limit {
			fmt.Fprintf(os.Stderr, "\n(showing first %d of %d tiles)\n", *limit, len(tiles))
			break
		}
		fmt.Printf("%6d  x=%-5d y=%-5d uv=%s h=%.3f\n", i, t.X, t.Y, t.UV, t.Height)
	}
}

func cmdHeights(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: tdattool heights <tdata.bin>")
		os.Exit(1)
	}

	tiles := load(args[0])
	fmt.Print(renderHeights(tiles))
}

// heightRamp maps increasing height to denser characters.
const heightRamp = " .:-=+*#%@"

// renderHeights draws one character per tile, rows by y.
func renderHeights(tiles []formats.Tile) string {
	stats := formats.Summarize(tiles)
	if stats.Count == 0 {
		return ""
	}

	w, h := int(stats.Width), int(stats.Height)
	grid := make([]byte, w*h)
	for i := range grid {
		grid[i] = ' '
	}

	span := stats.MaxHeight - stats.MinHeight
	for _, t := range tiles {
		if t.X < 0 || t.Y < 0 {
			continue
		}
		level := 0
		if span > 0 {
			level = int((t.Height - stats.MinHeight) / span * float32(len(heightRamp)-1))
		}
		grid[int(t.Y)*w+int(t.X)] = heightRamp[level]
	}

	var sb strings.Builder
	for y := range h {
		sb.Write(grid[y*w : (y+1)*w])
		sb.WriteByte('\n')
	}
	return sb.String()
}
