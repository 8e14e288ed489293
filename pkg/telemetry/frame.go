package telemetry

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/sigurn/crc16"
)

// Gesture frame layout.
const (
	FrameMagic   uint16 = 0xAA55
	FrameVersion byte   = 0x01
	Fingers             = 5
	// FrameSize is the encoded size of a frame.
	FrameSize = 2 + 1 + 4 + Fingers*2*2 + 2

	crcOffset = FrameSize - 2
)

var (
	// ErrFrameMagic indicates the bytes don't start with FrameMagic.
	ErrFrameMagic = errors.New("bad frame magic")
	// ErrFrameCRC indicates the checksum doesn't match.
	ErrFrameCRC = errors.New("frame checksum mismatch")
	// ErrFrameVersion indicates an unsupported frame version.
	ErrFrameVersion = errors.New("unsupported frame version")
	// ErrShortFrame indicates fewer than FrameSize bytes.
	ErrShortFrame = errors.New("short frame")
)

var crcTable = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

// FrameChecksum computes the frame CRC over data.
func FrameChecksum(data []byte) uint16 {
	return crc16.Checksum(data, crcTable)
}

// Frame is a gesture sample: roll and pitch of each finger.
type Frame struct {
	Version     byte           `json:"version"`
	TimestampMS uint32         `json:"ts_ms"`
	Roll        [Fingers]int16 `json:"roll"`
	Pitch       [Fingers]int16 `json:"pitch"`
}

// FrameHeader names the values returned by Frame.Fields.
var FrameHeader = []string{
	"TimestampMS",
	"Roll0", "Pitch0", "Roll1", "Pitch1", "Roll2", "Pitch2",
	"Roll3", "Pitch3", "Roll4", "Pitch4",
}

// Centidegrees converts an angle in degrees, clamped to ±limit, the way
// the firmware does: NaN and infinities become 0, fractions truncate.
func Centidegrees(deg, limit float64) int16 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	deg = math.Max(-limit, math.Min(limit, deg))
	cd := math.Trunc(deg * 100)
	switch {
	case cd > math.MaxInt16:
		return math.MaxInt16
	case cd < math.MinInt16:
		return math.MinInt16
	}
	return int16(cd)
}

// NewFrame builds a frame from angles in degrees. Roll is limited to
// ±180° and pitch to ±90°.
func NewFrame(tsMS uint32, roll, pitch [Fingers]float64) *Frame {
	f := &Frame{Version: FrameVersion, TimestampMS: tsMS}
	for i := 0; i < Fingers; i++ {
		f.Roll[i] = Centidegrees(roll[i], 180)
		f.Pitch[i] = Centidegrees(pitch[i], 90)
	}
	return f
}

// RollDegrees returns the roll of finger i in degrees.
func (f *Frame) RollDegrees(i int) float64 {
	return float64(f.Roll[i]) / 100
}

// PitchDegrees returns the pitch of finger i in degrees.
func (f *Frame) PitchDegrees(i int) float64 {
	return float64(f.Pitch[i]) / 100
}

// Fields formats the frame as timestamp followed by roll/pitch pairs
// in degrees.
func (f *Frame) Fields() []string {
	fields := make([]string, 0, len(FrameHeader))
	fields = append(fields, strconv.FormatUint(uint64(f.TimestampMS), 10))
	for i := 0; i < Fingers; i++ {
		fields = append(fields,
			strconv.FormatFloat(f.RollDegrees(i), 'f', 2, 64),
			strconv.FormatFloat(f.PitchDegrees(i), 'f', 2, 64))
	}
	return fields
}

// Bytes returns encoded bytes for sending.
func (f *Frame) Bytes() []byte {
	b := make([]byte, FrameSize)
	binary.LittleEndian.PutUint16(b, FrameMagic)
	b[2] = f.Version
	binary.LittleEndian.PutUint32(b[3:], f.TimestampMS)
	for i := 0; i < Fingers; i++ {
		binary.LittleEndian.PutUint16(b[7+i*4:], uint16(f.Roll[i]))
		binary.LittleEndian.PutUint16(b[9+i*4:], uint16(f.Pitch[i]))
	}
	binary.LittleEndian.PutUint16(b[crcOffset:], FrameChecksum(b[2:crcOffset]))
	return b
}

// WriteTo writes encoded bytes.
func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.Bytes())
	return int64(n), err
}

// DecodeFrame decodes the first FrameSize bytes of data.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < FrameSize {
		return nil, ErrShortFrame
	}
	if binary.LittleEndian.Uint16(data) != FrameMagic {
		return nil, ErrFrameMagic
	}
	if sum, expect := FrameChecksum(data[2:crcOffset]), binary.LittleEndian.Uint16(data[crcOffset:]); sum != expect {
		return nil, fmt.Errorf("%w: got %04x, expect %04x", ErrFrameCRC, sum, expect)
	}
	f := &Frame{Version: data[2], TimestampMS: binary.LittleEndian.Uint32(data[3:])}
	if f.Version != FrameVersion {
		return nil, fmt.Errorf("%w: %d", ErrFrameVersion, f.Version)
	}
	for i := 0; i < Fingers; i++ {
		f.Roll[i] = int16(binary.LittleEndian.Uint16(data[7+i*4:]))
		f.Pitch[i] = int16(binary.LittleEndian.Uint16(data[9+i*4:]))
	}
	return f, nil
}

// FrameReader extracts frames from a byte stream. It resynchronizes on
// the magic after noise or a corrupted frame.
type FrameReader struct {
	br *bufio.Reader

	// Discarded counts bytes skipped while searching for a frame.
	Discarded int
	// Corrupted counts frames rejected by DecodeFrame.
	Corrupted int
}

// NewFrameReader creates a FrameReader.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{br: bufio.NewReader(r)}
}

// Next returns the next valid frame. A stream ending inside a frame
// returns io.ErrUnexpectedEOF, otherwise the reader's error.
func (r *FrameReader) Next() (*Frame, error) {
	magicLo, magicHi := byte(FrameMagic&0xFF), byte(FrameMagic>>8)
	for {
		b, err := r.br.ReadByte()
		if err != nil {
			return nil, err
		}
		if b != magicLo {
			r.Discarded++
			continue
		}
		next, err := r.br.Peek(FrameSize - 1)
		if len(next) == 0 || next[0] != magicHi {
			r.Discarded++
			if len(next) == 0 && err != nil {
				return nil, err
			}
			continue
		}
		if len(next) < FrameSize-1 {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		f, err := DecodeFrame(append([]byte{b}, next...))
		if err != nil {
			r.Corrupted++
			continue
		}
		r.br.Discard(FrameSize - 1)
		return f, nil
	}
}
