package random

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Dice is a parsed dice expression such as "5*3d6+2".
type Dice struct {
	rolls      int32
	faces      int32
	multiplier float32
	offset     float32
}

// ParseDice parses [mul('*'|'x')]<rolls>('d'|'D')<faces>[('+'|'-')offset].
//
// Numeric fields that fail to parse become 0; only a missing 'd' separator
// is reported as an error.
func ParseDice(s string) (Dice, error) {
	d := Dice{multiplier: 1}
	rest := s

	if i := strings.IndexAny(rest, "*x"); i >= 0 {
		d.multiplier = parseFloat32(rest[:i])
		rest = rest[i+1:]
	}

	i := strings.IndexAny(rest, "dD")
	if i < 0 {
		return Dice{}, fmt.Errorf("dice %q: missing 'd' separator", s)
	}
	d.rolls = parseInt32(rest[:i])
	rest = rest[i+1:]

	if j := strings.IndexAny(rest, "+-"); j >= 0 {
		d.faces = parseInt32(rest[:j])
		d.offset = parseFloat32(rest[j:])
	} else {
		d.faces = parseInt32(rest)
	}
	return d, nil
}

// NewDice is ParseDice for expressions known to be well formed. It panics
// when the 'd' separator is missing.
func NewDice(s string) Dice {
	d, err := ParseDice(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Rolls returns the number of dice thrown.
func (d Dice) Rolls() int32 { return d.rolls }

// Faces returns the number of faces per die.
func (d Dice) Faces() int32 { return d.faces }

// Multiplier returns the factor applied after the offset.
func (d Dice) Multiplier() float32 { return d.multiplier }

// Offset returns the value added to the sum of the dice.
func (d Dice) Offset() float32 { return d.offset }

func (d Dice) String() string {
	var sb strings.Builder
	if d.multiplier != 1 {
		sb.WriteString(strconv.FormatFloat(float64(d.multiplier), 'g', -1, 32))
		sb.WriteByte('*')
	}
	fmt.Fprintf(&sb, "%dd%d", d.rolls, d.faces)
	if d.offset != 0 {
		if d.offset > 0 {
			sb.WriteByte('+')
		}
		sb.WriteString(strconv.FormatFloat(float64(d.offset), 'g', -1, 32))
	}
	return sb.String()
}

// Roll throws the dice: each die is rng.Int32(1, faces), the offset is added
// to the sum and the total is multiplied and truncated toward zero.
func (d Dice) Roll(rng Rng) int32 {
	var sum int32
	for i := int32(0); i < d.rolls; i++ {
		sum += rng.Int32(1, d.faces)
	}
	return truncInt32((float32(sum) + d.offset) * d.multiplier)
}

// SingleRoll parses s and rolls it once. Keep a Dice around when rolling the
// same expression repeatedly.
func SingleRoll(rng Rng, s string) int32 {
	return NewDice(s).Roll(rng)
}

func parseFloat32(s string) float32 {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return float32(v)
}

func parseInt32(s string) int32 {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0
	}
	return int32(v)
}

// truncInt32 truncates toward zero and saturates; NaN becomes 0.
func truncInt32(f float32) int32 {
	switch {
	case math.IsNaN(float64(f)):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int32(f)
}
