// Package config loads noise presets from JSON. A file holds either a single
// preset object or {"presets": [...]} from which one is picked by name.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"noisekit/internal/noise"
	"noisekit/internal/random"
)

// Mode selects how a sampler is queried.
type Mode string

const (
	ModeFlat       Mode = "flat"
	ModeFBM        Mode = "fbm"
	ModeTurbulence Mode = "turbulence"
)

var modes = []Mode{ModeFlat, ModeFBM, ModeTurbulence}

// Next returns the mode after m, wrapping around.
func (m Mode) Next() Mode {
	for i, mm := range modes {
		if mm == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return modes[0]
}

// Sample queries s at f in mode m.
func (m Mode) Sample(s noise.Sampler, f []float32, octaves float32) float32 {
	switch m {
	case ModeFlat:
		return s.Flat(f)
	case ModeTurbulence:
		return s.Turbulence(f, octaves)
	default:
		return s.FBM(f, octaves)
	}
}

// Preset describes a noise source and the terrain built from it.
type Preset struct {
	Name       string  `json:"name"`
	Algorithm  string  `json:"algorithm"`
	RNG        string  `json:"rng"`
	Seed       uint32  `json:"seed"`
	Dimensions int     `json:"dimensions"`
	Lacunarity float32 `json:"lacunarity"`
	Octaves    float32 `json:"octaves"`
	Mode       Mode    `json:"mode"`
	// Scale is how many noise units span the map width.
	Scale float32 `json:"scale"`

	// Terrain shaping, all optional.
	Roughness    float32 `json:"roughness"`
	ErosionDrops int     `json:"erosionDrops"`
	Hills        string  `json:"hills"`
	WaterLevel   float32 `json:"waterLevel"`
}

const (
	defaultAlgorithm = "simplex"
	defaultRNG       = "mt"
	defaultDims      = 2
	defaultOctaves   = 4
	defaultScale     = 4
	defaultWater     = 0.35
)

var (
	ErrPresetNotFound = errors.New("preset not found")
	ErrInvalidJSON    = errors.New("invalid JSON")
)

// Default returns the preset used when no file is given.
func Default() Preset {
	p := Preset{Name: "default"}
	p.applyDefaults()
	return p
}

func (p *Preset) applyDefaults() {
	if p.Algorithm == "" {
		p.Algorithm = defaultAlgorithm
	}
	if p.RNG == "" {
		p.RNG = defaultRNG
	}
	if p.Dimensions == 0 {
		p.Dimensions = defaultDims
	}
	if p.Lacunarity == 0 {
		p.Lacunarity = noise.DefaultLacunarity
	}
	if p.Octaves == 0 {
		p.Octaves = defaultOctaves
	}
	if p.Mode == "" {
		p.Mode = ModeFBM
	}
	if p.Scale == 0 {
		p.Scale = defaultScale
	}
	if p.WaterLevel == 0 {
		p.WaterLevel = defaultWater
	}
}

// Validate reports the first field out of range.
func (p Preset) Validate() error {
	switch p.Algorithm {
	case "perlin", "simplex":
	case "wavelet":
		if p.Dimensions > 3 {
			return fmt.Errorf("preset %q: wavelet supports at most 3 dimensions, got %d", p.Name, p.Dimensions)
		}
	default:
		return fmt.Errorf("preset %q: unknown algorithm %q", p.Name, p.Algorithm)
	}
	switch p.RNG {
	case "mt", "cmwc":
	default:
		return fmt.Errorf("preset %q: unknown rng %q", p.Name, p.RNG)
	}
	if p.Dimensions < 1 || p.Dimensions > noise.MaxDimensions {
		return fmt.Errorf("preset %q: dimensions %d outside [1, %d]", p.Name, p.Dimensions, noise.MaxDimensions)
	}
	if !(p.Lacunarity > 0) {
		return fmt.Errorf("preset %q: lacunarity must be positive, got %v", p.Name, p.Lacunarity)
	}
	if !(p.Octaves >= 0 && p.Octaves <= noise.MaxOctaves) {
		return fmt.Errorf("preset %q: octaves %v outside [0, %d]", p.Name, p.Octaves, noise.MaxOctaves)
	}
	switch p.Mode {
	case ModeFlat, ModeFBM, ModeTurbulence:
	default:
		return fmt.Errorf("preset %q: unknown mode %q", p.Name, p.Mode)
	}
	if !(p.Scale > 0) {
		return fmt.Errorf("preset %q: scale must be positive, got %v", p.Name, p.Scale)
	}
	if p.Roughness < 0 || p.Roughness > 1 {
		return fmt.Errorf("preset %q: roughness %v outside [0, 1]", p.Name, p.Roughness)
	}
	if p.ErosionDrops < 0 {
		return fmt.Errorf("preset %q: negative erosion drops", p.Name)
	}
	if p.Hills != "" {
		if _, err := random.ParseDice(p.Hills); err != nil {
			return fmt.Errorf("preset %q: hills: %w", p.Name, err)
		}
	}
	return nil
}

// Parse decodes a preset from data. With a non-empty name the document must
// hold a "presets" array containing an entry with that name; with an empty
// name the first array entry, or the document itself, is used.
func Parse(data []byte, name string) (Preset, error) {
	if !gjson.ValidBytes(data) {
		return Preset{}, ErrInvalidJSON
	}

	raw, err := selectPreset(data, name)
	if err != nil {
		return Preset{}, err
	}

	var p Preset
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Preset{}, fmt.Errorf("decode preset: %w", err)
	}
	if p.Name == "" {
		p.Name = name
	}
	p.applyDefaults()
	if err := p.Validate(); err != nil {
		return Preset{}, err
	}
	return p, nil
}

func selectPreset(data []byte, name string) (string, error) {
	list := gjson.GetBytes(data, "presets")
	if !list.Exists() {
		if name != "" && gjson.GetBytes(data, "name").String() != name {
			return "", fmt.Errorf("%w: %q", ErrPresetNotFound, name)
		}
		return string(data), nil
	}
	if !list.IsArray() {
		return "", fmt.Errorf("presets: want an array, got %s", list.Type)
	}

	var raw string
	list.ForEach(func(_, v gjson.Result) bool {
		if name == "" || v.Get("name").String() == name {
			raw = v.Raw
			return false
		}
		return true
	})
	if raw == "" {
		if name == "" {
			return "", fmt.Errorf("%w: empty presets array", ErrPresetNotFound)
		}
		return "", fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	return raw, nil
}

// Names lists the preset names in a {"presets": [...]} document.
func Names(data []byte) []string {
	var names []string
	for _, v := range gjson.GetBytes(data, "presets.#.name").Array() {
		names = append(names, v.String())
	}
	return names
}

// Load reads path and parses the named preset from it.
func Load(path, name string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("read preset file: %w", err)
	}
	p, err := Parse(data, name)
	if err != nil {
		return Preset{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
