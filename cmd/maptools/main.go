package main

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"noisekit/internal/heightmap"
	"noisekit/internal/random"
	"noisekit/internal/render"
)

const defaultWater = 0.35

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "stats":
		if len(args) < 1 || len(args) > 2 {
			fmt.Fprintln(os.Stderr, "Usage: maptools stats <file.hmap> [water-level]")
			os.Exit(1)
		}
		os.Exit(runStats(args[0], optFloat(args, 1, defaultWater)))
	case "viz":
		if len(args) < 1 || len(args) > 2 {
			fmt.Fprintln(os.Stderr, "Usage: maptools viz <file.hmap> [columns]")
			os.Exit(1)
		}
		os.Exit(runViz(args[0], int(optFloat(args, 1, 80))))
	case "png":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "Usage: maptools png <file.hmap> <out.png>")
			os.Exit(1)
		}
		os.Exit(runPNG(args[0], args[1]))
	case "convert":
		if len(args) != 3 {
			fmt.Fprintln(os.Stderr, "Usage: maptools convert <in.hmap> <out.hmap> <none|snappy|lz4>")
			os.Exit(1)
		}
		os.Exit(runConvert(args[0], args[1], args[2]))
	case "roll":
		if len(args) < 1 || len(args) > 2 {
			fmt.Fprintln(os.Stderr, "Usage: maptools roll <dice> [count]")
			os.Exit(1)
		}
		os.Exit(runRoll(args[0], int(optFloat(args, 1, 1))))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: maptools <command> <args>

Commands:
  stats   <file.hmap> [water]    Show height range, histogram and land %
  viz     <file.hmap> [columns]  Render heightmap as truecolor half blocks
  png     <file.hmap> <out.png>  Export heightmap as PNG
  convert <in> <out> <codec>     Re-encode with none, snappy or lz4
  roll    <dice> [count]         Roll a dice expression such as 3d6+2`)
}

func optFloat(args []string, i int, def float64) float64 {
	if i >= len(args) {
		return def
	}
	v, err := strconv.ParseFloat(args[i], 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %q is not a number\n", args[i])
		os.Exit(1)
	}
	return v
}

func load(path string) (*heightmap.HeightMap, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, false
	}
	hm, err := heightmap.Decode(bytes.NewReader(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
		return nil, false
	}
	return hm, true
}

// --- stats ---

type summary struct {
	lo, hi    float32
	histogram [10]int
	land      int
	island    bool
	meanSlope float64
}

func summarize(hm *heightmap.HeightMap, water float32) summary {
	s := summary{island: !hm.HasLandOnBorder(water)}
	s.lo, s.hi = hm.MinMax()
	s.land = hm.CountCells(math.Nextafter32(water, math.MaxFloat32), s.hi)

	span := s.hi - s.lo
	var slopes float64
	for y := 0; y < hm.Height(); y++ {
		for x := 0; x < hm.Width(); x++ {
			bin := 0
			if span > 0 {
				bin = min(int((hm.Value(x, y)-s.lo)/span*10), 9)
			}
			s.histogram[bin]++
			slopes += float64(hm.Slope(x, y))
		}
	}
	s.meanSlope = slopes / float64(hm.Width()*hm.Height())
	return s
}

func runStats(path string, water float64) int {
	hm, ok := load(path)
	if !ok {
		return 1
	}
	s := summarize(hm, float32(water))
	total := hm.Width() * hm.Height()

	fmt.Printf("%s (%dx%d = %d cells)\n\n", path, hm.Width(), hm.Height(), total)
	fmt.Printf("Range: [%.4f, %.4f]\n\n", s.lo, s.hi)
	step := (s.hi - s.lo) / 10
	for i, c := range s.histogram {
		pct := float64(c) / float64(total) * 100
		bar := strings.Repeat("█", int(pct/2))
		fmt.Printf("  %7.3f %6d (%5.1f%%) %s\n", s.lo+step*float32(i), c, pct, bar)
	}
	fmt.Printf("\nLand above %.2f: %d/%d (%.1f%%)\n", water, s.land, total, float64(s.land)/float64(total)*100)
	fmt.Printf("Island:     %v\n", s.island)
	fmt.Printf("Mean slope: %.4f rad\n", s.meanSlope)
	return 0
}

// --- viz ---

// resample scales hm to the given width, keeping the aspect ratio.
func resample(hm *heightmap.HeightMap, width int) *heightmap.HeightMap {
	width = max(width, 1)
	height := max(hm.Height()*width/hm.Width(), 1)
	out := heightmap.New(width, height)
	sx := float32(hm.Width()) / float32(width)
	sy := float32(hm.Height()) / float32(height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out.SetValue(x, y, hm.InterpolatedValue(float32(x)*sx, float32(y)*sy))
		}
	}
	return out
}

func runViz(path string, columns int) int {
	hm, ok := load(path)
	if !ok {
		return 1
	}
	lo, hi := hm.MinMax()
	fmt.Printf("%s (%dx%d, range [%.3f, %.3f])\n", path, hm.Width(), hm.Height(), lo, hi)

	view := resample(hm, min(columns, hm.Width()))
	view.Normalize(0, 1)
	fmt.Print(render.Lines(view, render.Terrain(defaultWater)))
	return 0
}

// --- png ---

func runPNG(in, out string) int {
	hm, ok := load(in)
	if !ok {
		return 1
	}
	hm.Normalize(0, 1)

	f, err := os.Create(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer f.Close()
	if err := render.EncodePNG(f, hm, render.Terrain(defaultWater)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Wrote %s (%dx%d)\n", out, hm.Width(), hm.Height())
	return 0
}

// --- convert ---

func runConvert(in, out, codec string) int {
	c, err := heightmap.ParseCompression(codec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	hm, ok := load(in)
	if !ok {
		return 1
	}

	var buf bytes.Buffer
	if err := heightmap.Encode(&buf, hm, c); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Wrote %s (%d bytes, %s)\n", out, buf.Len(), c)
	return 0
}

// --- roll ---

func runRoll(expr string, count int) int {
	d, err := random.ParseDice(expr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	rng := random.NewMT()
	rolls := make([]string, max(count, 1))
	for i := range rolls {
		rolls[i] = strconv.Itoa(int(d.Roll(rng)))
	}
	fmt.Printf("%s: %s\n", d, strings.Join(rolls, " "))
	return 0
}
