package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"noisekit/internal/config"
	"noisekit/internal/heightmap"
	"noisekit/internal/logger"
	"noisekit/internal/random"
	"noisekit/internal/render"
)

// jsonMap is the on-disk map format.
type jsonMap struct {
	Name    string              `json:"name"`
	Width   int                 `json:"width"`
	Height  int                 `json:"height"`
	Seed    uint32              `json:"seed"`
	Preset  string              `json:"preset"`
	Spawn   jsonSpawn           `json:"spawn"`
	Tiles   [][]int             `json:"tiles"`
	Legend  map[string]jsonTile `json:"legend"`
	Portals []interface{}       `json:"portals"`
}

type jsonSpawn struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type jsonTile struct {
	Char     string `json:"char"`
	Fg       string `json:"fg"`
	Walkable bool   `json:"walkable"`
	Name     string `json:"name"`
}

var legend = map[string]jsonTile{
	"0":  {Char: ".", Fg: "green", Walkable: true, Name: "grass"},
	"1":  {Char: "~", Fg: "blue", Walkable: false, Name: "water"},
	"2":  {Char: "T", Fg: "green", Walkable: false, Name: "tree"},
	"3":  {Char: "#", Fg: "gray", Walkable: false, Name: "wall"},
	"4":  {Char: "*", Fg: "bright_red", Walkable: true, Name: "flowers"},
	"5":  {Char: ".", Fg: "yellow", Walkable: true, Name: "path"},
	"6":  {Char: "~", Fg: "yellow", Walkable: true, Name: "sand"},
	"7":  {Char: ";", Fg: "bright_green", Walkable: true, Name: "tall_grass"},
	"8":  {Char: "▒", Fg: "gray", Walkable: false, Name: "rock"},
	"9":  {Char: "~", Fg: "cyan", Walkable: true, Name: "shallow_water"},
	"10": {Char: ".", Fg: "yellow", Walkable: true, Name: "dirt"},
	"11": {Char: "=", Fg: "yellow", Walkable: true, Name: "bridge"},
}

func main() {
	presetPath := flag.String("preset", "", "preset file (default: built-in preset)")
	presetName := flag.String("preset-name", "", "preset name inside the file")
	seed := flag.Int64("seed", -1, "random seed (-1 = preset seed, 0 = random)")
	size := flag.String("size", "100x80", "map size as WxH")
	name := flag.String("name", "Wilderness", "map name")
	out := flag.String("out", "", "output file (default: stdout)")
	pngOut := flag.String("png", "", "also write the elevation as a PNG")
	binOut := flag.String("bin", "", "also write the elevation heightmap")
	compress := flag.String("compress", "snappy", "heightmap compression: none, snappy or lz4")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	if err := logger.Setup("console", *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := logger.Component("mapgen")

	w, h, err := parseSize(*size)
	if err != nil {
		log.Fatal().Err(err).Msg("size")
	}
	compression, err := heightmap.ParseCompression(*compress)
	if err != nil {
		log.Fatal().Err(err).Msg("compress")
	}

	preset := config.Default()
	if *presetPath != "" {
		if preset, err = config.Load(*presetPath, *presetName); err != nil {
			log.Fatal().Err(err).Msg("load preset")
		}
	}

	s := resolveSeed(*seed, preset.Seed)
	log.Info().
		Int("width", w).Int("height", h).
		Str("preset", preset.Name).
		Uint32("seed", s).
		Msgf("Generating wilderness map %q", *name)

	l := buildLayers(preset, w, h, s)
	wd := &wilderness{
		grid:       newTileGrid(w, h),
		layers:     l,
		waterLevel: preset.WaterLevel,
		rng:        random.NewMTFromSeed(s + 100).Rand(),
		log:        log,
	}
	spawn := wd.generate()
	log.Info().Int("x", spawn.x).Int("y", spawn.y).Msg("spawn")

	m := jsonMap{
		Name:    *name,
		Width:   w,
		Height:  h,
		Seed:    s,
		Preset:  preset.Name,
		Spawn:   jsonSpawn{X: spawn.x, Y: spawn.y},
		Tiles:   wd.grid.rows(),
		Legend:  legend,
		Portals: []interface{}{},
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("marshal map")
	}
	data = append(data, '\n')

	if *out == "" {
		os.Stdout.Write(data)
	} else {
		if err := os.WriteFile(*out, data, 0644); err != nil {
			log.Fatal().Err(err).Msg("write map")
		}
		log.Info().Str("file", *out).Int("bytes", len(data)).Msg("wrote map")
	}

	if *pngOut != "" {
		if err := writePNG(*pngOut, l.elevation, preset.WaterLevel); err != nil {
			log.Fatal().Err(err).Msg("write png")
		}
		log.Info().Str("file", *pngOut).Msg("wrote png")
	}
	if *binOut != "" {
		n, err := writeHeightmap(*binOut, l.elevation, compression)
		if err != nil {
			log.Fatal().Err(err).Msg("write heightmap")
		}
		log.Info().Str("file", *binOut).Int("bytes", n).Stringer("compression", compression).Msg("wrote heightmap")
	}

	printDistribution(wd.grid)
}

// resolveSeed maps the -seed flag: negative keeps the preset seed, zero
// draws one from the clock.
func resolveSeed(flagSeed int64, presetSeed uint32) uint32 {
	switch {
	case flagSeed < 0:
		return presetSeed
	case flagSeed == 0:
		return random.NewMT().Uint32()
	}
	return uint32(flagSeed)
}

func parseSize(s string) (int, int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (expected WxH)", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w < 10 {
		return 0, 0, fmt.Errorf("invalid width %q (minimum 10)", parts[0])
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h < 10 {
		return 0, 0, fmt.Errorf("invalid height %q (minimum 10)", parts[1])
	}
	return w, h, nil
}

func writePNG(path string, hm *heightmap.HeightMap, waterLevel float32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.EncodePNG(f, hm, render.Terrain(waterLevel)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeHeightmap(path string, hm *heightmap.HeightMap, c heightmap.Compression) (int, error) {
	var buf bytes.Buffer
	if err := heightmap.Encode(&buf, hm, c); err != nil {
		return 0, err
	}
	return buf.Len(), os.WriteFile(path, buf.Bytes(), 0644)
}

func printDistribution(g *tileGrid) {
	counts := g.counts()
	total := g.w * g.h
	fmt.Fprintf(os.Stderr, "\nTile distribution:\n")
	for i, c := range counts {
		if c > 0 {
			fmt.Fprintf(os.Stderr, "  %-15s %5d (%5.1f%%)\n", tileNames[i], c, float64(c)/float64(total)*100)
		}
	}
}
