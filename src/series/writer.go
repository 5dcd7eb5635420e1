package series

import (
	"bufio"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// Writer appends samples in the file format understood by Parse.
// Prices are written with two fixed decimals, timestamps as epoch seconds.
type Writer struct {
	w *bufio.Writer
	n int
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write encodes one sample. Output is buffered until Flush.
func (w *Writer) Write(s Sample) error {
	line := FormatLine(s)
	if _, err := w.w.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("write sample %d: %w", w.n+1, err)
	}
	w.n++
	return nil
}

// Count returns the number of samples written so far.
func (w *Writer) Count() int { return w.n }

func (w *Writer) Flush() error { return w.w.Flush() }

// FormatLine renders s without a trailing newline.
func FormatLine(s Sample) string {
	rp := decimal.NewFromFloat(s.Real).StringFixed(2)
	gp := decimal.NewFromFloat(s.Generated).StringFixed(2)
	ts := decimal.NewFromInt(s.Timestamp.UnixNano()).Shift(-9)
	return rp + "," + gp + "," + ts.String()
}
