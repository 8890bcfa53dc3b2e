package heightmap

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// Compression selects how the height payload is stored.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionSnappy
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionSnappy:
		return "snappy"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression maps "none", "snappy" or "lz4" to a Compression.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "", "none", "raw":
		return CompressionNone, nil
	case "snappy":
		return CompressionSnappy, nil
	case "lz4":
		return CompressionLZ4, nil
	}
	return 0, fmt.Errorf("unknown compression %q", s)
}

var magic = [4]byte{'H', 'M', 'A', 'P'}

const (
	formatVersion = 1

	// maxCells bounds decoded maps to 64M cells.
	maxCells = 1 << 26
)

var (
	ErrBadMagic   = errors.New("heightmap: not a heightmap stream")
	ErrBadVersion = errors.New("heightmap: unsupported format version")

	ErrPayloadTooLarge = errors.New("heightmap: payload larger than its map")
)

// header is written little-endian ahead of the payload.
type header struct {
	Magic       [4]byte
	Version     uint8
	Compression Compression
	Width       uint32
	Height      uint32
	PayloadLen  uint32
}

// Encode writes hm to w. When compression does not shrink the payload the
// heights are stored raw and the header says so.
func Encode(w io.Writer, hm *HeightMap, c Compression) error {
	raw := make([]byte, 4*len(hm.values))
	for i, v := range hm.values {
		binary.LittleEndian.PutUint32(raw[4*i:], math.Float32bits(v))
	}

	payload, used, err := compress(raw, c)
	if err != nil {
		return fmt.Errorf("compress %s: %w", c, err)
	}

	h := header{
		Magic:       magic,
		Version:     formatVersion,
		Compression: used,
		Width:       uint32(hm.width),
		Height:      uint32(hm.height),
		PayloadLen:  uint32(len(payload)),
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

func compress(raw []byte, c Compression) ([]byte, Compression, error) {
	switch c {
	case CompressionNone:
		return raw, CompressionNone, nil
	case CompressionSnappy:
		out := snappy.Encode(nil, raw)
		if len(out) >= len(raw) {
			return raw, CompressionNone, nil
		}
		return out, CompressionSnappy, nil
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(raw)))
		ht := make([]int, 1<<16)
		n, err := lz4.CompressBlock(raw, buf, ht)
		if err != nil {
			return nil, 0, err
		}
		// Was compression worth it?
		if n == 0 || n >= len(raw) {
			return raw, CompressionNone, nil
		}
		return buf[:n], CompressionLZ4, nil
	}
	return nil, 0, fmt.Errorf("unknown compression %d", uint8(c))
}

// Decode reads a map written by Encode.
func Decode(r io.Reader) (*HeightMap, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if h.Magic != magic {
		return nil, ErrBadMagic
	}
	if h.Version != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, h.Version)
	}
	cells := uint64(h.Width) * uint64(h.Height)
	if h.Width == 0 || h.Height == 0 || cells > maxCells {
		return nil, fmt.Errorf("heightmap: invalid size %dx%d", h.Width, h.Height)
	}

	limit, err := maxPayload(h.Compression, int(cells)*4)
	if err != nil {
		return nil, err
	}
	if int(h.PayloadLen) > limit {
		return nil, fmt.Errorf("%w: %d bytes, at most %d for %s", ErrPayloadTooLarge, h.PayloadLen, limit, h.Compression)
	}

	payload := make([]byte, h.PayloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}

	raw, err := decompress(payload, h.Compression, int(cells)*4)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", h.Compression, err)
	}
	if len(raw) != int(cells)*4 {
		return nil, fmt.Errorf("heightmap: payload holds %d bytes, want %d", len(raw), cells*4)
	}

	hm := New(int(h.Width), int(h.Height))
	for i := range hm.values {
		hm.values[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	return hm, nil
}

// maxPayload is the largest payload c can produce for size raw bytes.
func maxPayload(c Compression, size int) (int, error) {
	switch c {
	case CompressionNone:
		return size, nil
	case CompressionSnappy:
		return snappy.MaxEncodedLen(size), nil
	case CompressionLZ4:
		return lz4.CompressBlockBound(size), nil
	}
	return 0, fmt.Errorf("heightmap: unknown compression %d", uint8(c))
}

func decompress(payload []byte, c Compression, size int) ([]byte, error) {
	switch c {
	case CompressionNone:
		return payload, nil
	case CompressionSnappy:
		return snappy.Decode(nil, payload)
	case CompressionLZ4:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, err
		}
		return out[:n], nil
	}
	return nil, fmt.Errorf("unknown compression %d", uint8(c))
}

// MarshalBinary encodes hm with snappy compression.
func (hm *HeightMap) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hm, CompressionSnappy); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary replaces hm with the decoded map.
func (hm *HeightMap) UnmarshalBinary(data []byte) error {
	dec, err := Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*hm = *dec
	return nil
}
