package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"math"

	"github.com/Lulu110106/projet-Rpaint/internal/geom"
)

// Frame layout, big-endian throughout:
//
//	[4B payload length][4B CRC-32C of payload][payload]
//
// where the payload is [1B version][1B tag][body]. The checksum lets the
// receive path throw away corrupt datagrams without applying anything.
const (
	Version     = 1
	headerSize  = 8
	maxElements = 1 << 20
)

// ErrBadFrame covers every way a frame can fail to parse: truncation, a
// checksum mismatch, an unknown version or tag, or trailing garbage.
var ErrBadFrame = errors.New("wire: malformed frame")

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Encode frames a message for broadcast.
func Encode(msg Message) []byte {
	payload := []byte{Version, msg.tag()}
	payload = appendBody(payload, msg)

	frame := make([]byte, headerSize, headerSize+len(payload))
	binary.BigEndian.PutUint32(frame[0:4], uint32(len(payload)))
	binary.BigEndian.PutUint32(frame[4:8], crc32.Checksum(payload, castagnoli))
	return append(frame, payload...)
}

// Decode parses one frame produced by Encode. Anything unacceptable returns
// an error wrapping ErrBadFrame; the caller is expected to drop the datagram.
func Decode(data []byte) (Message, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrBadFrame, len(data))
	}
	payloadLen := binary.BigEndian.Uint32(data[0:4])
	payload := data[headerSize:]
	if uint32(len(payload)) != payloadLen {
		return nil, fmt.Errorf("%w: length field %d, payload %d", ErrBadFrame, payloadLen, len(payload))
	}
	if sum := crc32.Checksum(payload, castagnoli); sum != binary.BigEndian.Uint32(data[4:8]) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrBadFrame)
	}
	if len(payload) < 2 {
		return nil, fmt.Errorf("%w: payload too short", ErrBadFrame)
	}
	if payload[0] != Version {
		return nil, fmt.Errorf("%w: version %d", ErrBadFrame, payload[0])
	}

	r := &reader{buf: payload, off: 2}
	var msg Message
	switch payload[1] {
	case tagDrawLine:
		msg = DrawLine{Points: r.points(), Color: r.u32(), Width: r.f32()}
	case tagDelete:
		msg = Delete{Indices: r.indices()}
	case tagModify:
		n := r.count()
		msg = Modify{Indices: r.nIndices(n), Colors: r.nU32(n), Widths: r.nF32(n)}
	case tagMove:
		msg = Move{Indices: r.indices(), DeltaX: r.f32(), DeltaY: r.f32()}
	case tagClear:
		msg = Clear{}
	case tagSync:
		msg = Sync{LinesData: r.str()}
	default:
		return nil, fmt.Errorf("%w: tag %d", ErrBadFrame, payload[1])
	}
	if r.err != nil {
		return nil, r.err
	}
	if r.off != len(payload) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrBadFrame, len(payload)-r.off)
	}
	return msg, nil
}

func appendBody(b []byte, msg Message) []byte {
	switch m := msg.(type) {
	case DrawLine:
		b = appendU32(b, uint32(len(m.Points)))
		for _, p := range m.Points {
			b = appendF32(b, p.X)
			b = appendF32(b, p.Y)
		}
		b = appendU32(b, m.Color)
		b = appendF32(b, m.Width)
	case Delete:
		b = appendIndices(b, m.Indices)
	case Modify:
		b = appendIndices(b, m.Indices)
		for _, c := range m.Colors {
			b = appendU32(b, c)
		}
		for _, w := range m.Widths {
			b = appendF32(b, w)
		}
	case Move:
		b = appendIndices(b, m.Indices)
		b = appendF32(b, m.DeltaX)
		b = appendF32(b, m.DeltaY)
	case Clear:
	case Sync:
		b = appendU32(b, uint32(len(m.LinesData)))
		b = append(b, m.LinesData...)
	}
	return b
}

func appendU32(b []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(b, v)
}

func appendF32(b []byte, v float32) []byte {
	return binary.BigEndian.AppendUint32(b, math.Float32bits(v))
}

func appendIndices(b []byte, indices []int) []byte {
	b = appendU32(b, uint32(len(indices)))
	for _, i := range indices {
		b = appendU32(b, uint32(i))
	}
	return b
}

// reader walks a payload with a sticky error, so decode paths read without
// checking after every field.
type reader struct {
	buf []byte
	off int
	err error
}

func (r *reader) fail(format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: "+format, append([]any{ErrBadFrame}, args...)...)
	}
}

func (r *reader) u32() uint32 {
	if r.err != nil {
		return 0
	}
	if r.off+4 > len(r.buf) {
		r.fail("truncated at offset %d", r.off)
		return 0
	}
	v := binary.BigEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

func (r *reader) f32() float32 {
	return math.Float32frombits(r.u32())
}

// count reads an element count and rejects anything the remaining bytes
// cannot possibly hold, so garbage never triggers a huge allocation.
func (r *reader) count() int {
	n := r.u32()
	if r.err != nil {
		return 0
	}
	if n > maxElements || int(n) > (len(r.buf)-r.off)/4 {
		r.fail("count %d exceeds payload", n)
		return 0
	}
	return int(n)
}

func (r *reader) points() []geom.Point {
	n := r.u32()
	if r.err != nil {
		return nil
	}
	if n > maxElements || int(n) > (len(r.buf)-r.off)/8 {
		r.fail("point count %d exceeds payload", n)
		return nil
	}
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i].X = r.f32()
		pts[i].Y = r.f32()
	}
	return pts
}

func (r *reader) indices() []int {
	return r.nIndices(r.count())
}

func (r *reader) nIndices(n int) []int {
	if r.err != nil {
		return nil
	}
	out := make([]int, n)
	for i := range out {
		out[i] = int(r.u32())
	}
	return out
}

func (r *reader) nU32(n int) []uint32 {
	if r.err != nil {
		return nil
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = r.u32()
	}
	return out
}

func (r *reader) nF32(n int) []float32 {
	if r.err != nil {
		return nil
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = r.f32()
	}
	return out
}

func (r *reader) str() string {
	n := r.u32()
	if r.err != nil {
		return ""
	}
	// Compare before converting so a huge length cannot wrap negative on
	// 32-bit platforms and slip past the bound.
	if uint64(n) > uint64(len(r.buf)-r.off) {
		r.fail("string length %d exceeds payload", n)
		return ""
	}
	s := string(r.buf[r.off : r.off+int(n)])
	r.off += int(n)
	return s
}
