// Package hist persists stage output to append-only text files, one
// timestamped row per event.
package hist

import (
	"bufio"
	"os"
	"strings"
	"time"

	"github.com/yanun0323/errors"
)

const timestampLayout = "01/02/2006 15:04:05"

// LineWriter appends timestamped comma-separated rows to one output file.
type LineWriter struct {
	file *os.File
	buf  *bufio.Writer
	now  func() time.Time
}

// NewLineWriter opens (truncating) the output file and writes the header
// row. now may be nil for wall-clock time.
func NewLineWriter(path, header string, now func() time.Time) (*LineWriter, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "open output file")
	}
	if now == nil {
		now = time.Now
	}

	w := &LineWriter{
		file: file,
		buf:  bufio.NewWriterSize(file, 64*1024),
		now:  now,
	}
	if header != "" {
		if _, err := w.buf.WriteString(header + "\n"); err != nil {
			_ = file.Close()
			return nil, errors.Wrap(err, "write header")
		}
	}
	return w, nil
}

// Append writes one row prefixed with the current local timestamp.
func (w *LineWriter) Append(fields ...string) error {
	if _, err := w.buf.WriteString(w.now().Format(timestampLayout)); err != nil {
		return err
	}
	if _, err := w.buf.WriteString("," + strings.Join(fields, ",") + "\n"); err != nil {
		return err
	}
	return nil
}

// Close flushes buffered rows and closes the file.
func (w *LineWriter) Close() error {
	if err := w.buf.Flush(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}
