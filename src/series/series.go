// Package series loads and writes the real/generated price time-series file.
//
// File format, one sample per line, no header:
//
//	<real_price>,<generated_price>,<unix_timestamp_seconds>
//
// Loading is fail-fast: the first malformed line aborts the whole file.
package series

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultFile is the data file the viewer reads from the working directory.
const DefaultFile = "data.txt"

const fieldsPerLine = 3

// Range accepted for timestamps: 0001-01-01 .. 9999-12-31 UTC.
const (
	minUnixSeconds = -62135596800
	maxUnixSeconds = 253402300799
)

var (
	ErrFieldCount = errors.New("expected 3 comma-separated fields")
	ErrNumber     = errors.New("field is not a number")
	ErrTimestamp  = errors.New("timestamp out of range")
)

// ParseError reports the offending line of a failed load.
type ParseError struct {
	Line int // 1-based
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Sample is one parsed line.
type Sample struct {
	Timestamp time.Time
	Real      float64
	Generated float64
}

// Series holds the three aligned sequences in file order. It is not modified after load.
type Series struct {
	Timestamps []time.Time
	Real       []float64
	Generated  []float64
}

func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Timestamps)
}

// At returns sample i.
func (s *Series) At(i int) Sample {
	return Sample{Timestamp: s.Timestamps[i], Real: s.Real[i], Generated: s.Generated[i]}
}

// Suffix returns the last n samples as a Series sharing the backing arrays.
// n is clamped to [0, Len()].
func (s *Series) Suffix(n int) *Series {
	total := s.Len()
	if n < 0 {
		n = 0
	}
	if n > total {
		n = total
	}
	from := total - n
	return &Series{
		Timestamps: s.Timestamps[from:],
		Real:       s.Real[from:],
		Generated:  s.Generated[from:],
	}
}

func (s *Series) append(smp Sample) {
	s.Timestamps = append(s.Timestamps, smp.Timestamp)
	s.Real = append(s.Real, smp.Real)
	s.Generated = append(s.Generated, smp.Generated)
}

// Load reads and parses the file at path.
func Load(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()
	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

// Parse reads samples from r until EOF.
func Parse(r io.Reader) (*Series, error) {
	out := &Series{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		smp, err := ParseLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Err: err}
		}
		out.append(smp)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	return out, nil
}

// ParseLine parses "<real>,<generated>,<unix seconds>".
func ParseLine(line string) (Sample, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != fieldsPerLine {
		return Sample{}, fmt.Errorf("%w: got %d", ErrFieldCount, len(parts))
	}
	var vals [fieldsPerLine]float64
	for i, p := range parts {
		v, err := parseNumber(strings.TrimSpace(p))
		if err != nil {
			return Sample{}, fmt.Errorf("%w: field %d %q", ErrNumber, i+1, p)
		}
		vals[i] = v
	}
	ts, err := unixToLocal(vals[2])
	if err != nil {
		return Sample{}, err
	}
	return Sample{Timestamp: ts, Real: vals[0], Generated: vals[1]}, nil
}

// parseNumber accepts decimal floats with optional sign and exponent, inf/nan spellings, and
// underscores between digits ("1_000.5"). Hex floats ("0x1p4") are rejected.
func parseNumber(tok string) (float64, error) {
	if strings.ContainsAny(tok, "xX") {
		return 0, strconv.ErrSyntax
	}
	if strings.Contains(tok, "_") {
		for i := 0; i < len(tok); i++ {
			if tok[i] == '_' && (i == 0 || i == len(tok)-1 || !isDigit(tok[i-1]) || !isDigit(tok[i+1])) {
				return 0, strconv.ErrSyntax
			}
		}
		tok = strings.ReplaceAll(tok, "_", "")
	}
	return strconv.ParseFloat(tok, 64)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// unixToLocal converts fractional epoch seconds to local time.
func unixToLocal(v float64) (time.Time, error) {
	if math.IsNaN(v) || v < minUnixSeconds || v > maxUnixSeconds {
		return time.Time{}, fmt.Errorf("%w: %v", ErrTimestamp, v)
	}
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).Local(), nil
}
