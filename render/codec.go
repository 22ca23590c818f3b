package render

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/soypat/xtal"
	"github.com/soypat/xtal/scatter"
)

const (
	magic = "XTALREF1"

	// size of a single encoded reflector.
	recordSize      = 3*2 + 3*8
	recordsInBuffer = 1 << 8
)

// header defines the reflector file header.
type header struct {
	Magic [8]byte
	Count uint32
	Kind  scatter.Kind
}

// CreateReflectors writes r to a new file at path in the format of WriteReflectors.
func CreateReflectors(path string, r *xtal.Reflectors) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	err = WriteReflectors(fp, r)
	if err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

// WriteReflectors writes the reflectors of r to w in little endian binary:
// an 8 byte magic, the reflector count as uint32 and the scattering kind as
// uint8 followed by h,k,l as int16 and spacing, intensity and normalized
// intensity as float64 per reflector.
func WriteReflectors(w io.Writer, r *xtal.Reflectors) error {
	if r == nil || r.Len() == 0 {
		return errEmpty
	}
	if uint64(r.Len()) > math.MaxUint32 {
		return fmt.Errorf("too many reflectors to encode: %d", r.Len())
	}
	h := header{Count: uint32(r.Len()), Kind: r.Kind()}
	copy(h.Magic[:], magic)
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return err
	}
	var (
		buf [recordSize * recordsInBuffer]byte
		n   int
	)
	for _, refl := range r.All() {
		if err := putReflector(buf[n*recordSize:], refl); err != nil {
			return err
		}
		n++
		if n == recordsInBuffer {
			if _, err := w.Write(buf[:]); err != nil {
				return err
			}
			n = 0
		}
	}
	_, err := w.Write(buf[:n*recordSize])
	return err
}

// ReadReflectors reads a reflector list written by WriteReflectors. The
// list keeps the order it was written in.
func ReadReflectors(r io.Reader) (list []xtal.Reflector, kind scatter.Kind, readErr error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, 0, errors.New("encountered EOF while reading reflector header")
		}
		return nil, 0, errors.New("reflector header read failed: " + err.Error())
	}
	if string(h.Magic[:]) != magic {
		return nil, 0, errBadMagic
	}
	if h.Kind != scatter.XRay && h.Kind != scatter.Electron {
		return nil, 0, fmt.Errorf("unknown scattering kind %d in header", h.Kind)
	}
	if h.Count == 0 {
		return nil, 0, errors.New("reflector header indicates 0 reflectors present")
	}
	var (
		buf [recordSize]byte
		i   int
	)
	defer func() {
		if readErr != nil {
			readErr = fmt.Errorf("%d/%d reflectors read: %w", i, h.Count, readErr)
		}
	}()
	list = make([]xtal.Reflector, 0, min(h.Count, 1<<16))
	for i = 0; i < int(h.Count); i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, 0, err
		}
		refl, err := getReflector(buf[:])
		if err != nil {
			return nil, 0, err
		}
		list = append(list, refl)
	}
	return list, h.Kind, nil
}

func putReflector(b []byte, r xtal.Reflector) error {
	_ = b[recordSize-1] // early bounds check
	for i, v := range [3]int{r.H, r.K, r.L} {
		if v < math.MinInt16 || v > math.MaxInt16 {
			return fmt.Errorf("plane %v index out of int16 range", r.Plane)
		}
		binary.LittleEndian.PutUint16(b[2*i:], uint16(int16(v)))
	}
	binary.LittleEndian.PutUint64(b[6:], math.Float64bits(r.Spacing))
	binary.LittleEndian.PutUint64(b[14:], math.Float64bits(r.Intensity))
	binary.LittleEndian.PutUint64(b[22:], math.Float64bits(r.NormalizedIntensity))
	return nil
}

func getReflector(b []byte) (r xtal.Reflector, err error) {
	_ = b[recordSize-1] // early bounds check
	r.H = int(int16(binary.LittleEndian.Uint16(b)))
	r.K = int(int16(binary.LittleEndian.Uint16(b[2:])))
	r.L = int(int16(binary.LittleEndian.Uint16(b[4:])))
	r.Spacing = math.Float64frombits(binary.LittleEndian.Uint64(b[6:]))
	r.Intensity = math.Float64frombits(binary.LittleEndian.Uint64(b[14:]))
	r.NormalizedIntensity = math.Float64frombits(binary.LittleEndian.Uint64(b[22:]))
	switch {
	case r.IsZero():
		return r, fmt.Errorf("%w: zero plane", errBadRecord)
	case badFloat(r.Spacing) || r.Spacing <= 0:
		return r, fmt.Errorf("%w: %v spacing %g", errBadRecord, r.Plane, r.Spacing)
	case badFloat(r.Intensity) || r.Intensity < 0:
		return r, fmt.Errorf("%w: %v intensity %g", errBadRecord, r.Plane, r.Intensity)
	case badFloat(r.NormalizedIntensity) || r.NormalizedIntensity < 0 || r.NormalizedIntensity > 1:
		return r, fmt.Errorf("%w: %v normalized intensity %g", errBadRecord, r.Plane, r.NormalizedIntensity)
	}
	return r, nil
}

func badFloat(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}
