package scatter

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"
)

// Coefficients of one fit domain. Gaussian fits use
//
//	f(s) = Σ A[i]·exp(-B[i]·s²) + C
//
// while the X-ray high range stores polynomial coefficients in A:
//
//	f(s) = exp(A[0] + A[1]·s + A[2]·s² + A[3]·s³)
type Coefficients struct {
	A, B [5]float64
	C    float64
}

// Fit holds the coefficients of one element for both s domains.
type Fit struct {
	Low     Coefficients
	High    Coefficients
	HasHigh bool
}

// Table provides fits by atomic number.
type Table interface {
	Fit(z int) (Fit, bool)
}

// MapTable is a Table backed by a map.
type MapTable map[int]Fit

func (t MapTable) Fit(z int) (Fit, bool) {
	f, ok := t[z]
	return f, ok
}

func gaussianSum(c Coefficients, s float64) float64 {
	s2 := s * s
	f := c.C
	for i := range c.A {
		if c.A[i] != 0 {
			f += c.A[i] * math.Exp(-c.B[i]*s2)
		}
	}
	return f
}

func expPolynomial(c Coefficients, s float64) float64 {
	return math.Exp(c.A[0] + s*(c.A[1]+s*(c.A[2]+s*c.A[3])))
}

// csvFields is z, range, a1..a5, b1..b5, c.
const csvFields = 13

// ParseCSV reads a coefficient table. Each record is
//
//	z,range,a1,a2,a3,a4,a5,b1,b2,b3,b4,b5,c
//
// where range is "low" (s < 2) or "high" (2 <= s < 6). Lines starting
// with '#' and a header record whose first field is "z" are skipped.
// Every element needs a low record; high records are optional.
func ParseCSV(r io.Reader) (MapTable, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = csvFields
	table := make(MapTable)
	seenLow := make(map[int]bool)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(rec[0], "z") {
			continue
		}
		line, _ := cr.FieldPos(0)
		z, err := strconv.Atoi(rec[0])
		if err != nil || z < 1 || z > MaxAtomicNumber {
			return nil, fmt.Errorf("scatter: line %d: bad atomic number %q", line, rec[0])
		}
		var c Coefficients
		vals := make([]float64, csvFields-2)
		for i, field := range rec[2:] {
			vals[i], err = strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("scatter: line %d: %w", line, err)
			}
		}
		copy(c.A[:], vals[0:5])
		copy(c.B[:], vals[5:10])
		c.C = vals[10]
		fit := table[z]
		switch strings.ToLower(rec[1]) {
		case "low":
			if seenLow[z] {
				return nil, fmt.Errorf("scatter: line %d: duplicate low range for Z=%d", line, z)
			}
			seenLow[z] = true
			fit.Low = c
		case "high":
			if fit.HasHigh {
				return nil, fmt.Errorf("scatter: line %d: duplicate high range for Z=%d", line, z)
			}
			fit.High = c
			fit.HasHigh = true
		default:
			return nil, fmt.Errorf("scatter: line %d: range must be low or high, got %q", line, rec[1])
		}
		table[z] = fit
	}
	for z := range table {
		if !seenLow[z] {
			return nil, fmt.Errorf("scatter: Z=%d has no low range fit", z)
		}
	}
	return table, nil
}

//go:embed data/xray.csv
var xrayCSV []byte

var defaultXRay = sync.OnceValue(func() MapTable {
	t, err := ParseCSV(bytes.NewReader(xrayCSV))
	if err != nil {
		panic(err)
	}
	return t
})

// DefaultXRay returns the embedded X-ray table: Cromer-Mann low range fits
// (International Tables for Crystallography Vol. C, Table 6.1.1.4) for a
// selection of common elements. It has no high range fits so evaluation
// beyond s = 2 extrapolates. The returned map must not be modified.
func DefaultXRay() MapTable { return defaultXRay() }
