package transcript

import (
	"io"

	"github.com/cockroachdb/errors"
)

// chunkSize is how many bytes are read per backward step.
const chunkSize = 64 << 10

// errStop ends a backward scan early.
var errStop = errors.New("stop scan")

// lineFunc receives lines newest first. line is nil when the line exceeded
// the size cap. Returning errStop ends the scan without error.
type lineFunc func(line []byte) error

// scanBackward reports the last window lines of r, newest first, reading at
// most chunkSize bytes at a time from the end. A final newline terminates the
// last line and does not start an empty one.
func scanBackward(r io.ReaderAt, size int64, window, maxLine int, fn lineFunc) error {
	if size == 0 || window <= 0 {
		return nil
	}

	lineEnd := size

	last := make([]byte, 1)
	if _, err := r.ReadAt(last, size-1); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "failed to read transcript tail")
	}

	if last[0] == '\n' {
		lineEnd = size - 1
	}

	seen := 0
	chunk := make([]byte, chunkSize)

	emit := func(start, end int64) error {
		seen++

		if end-start > int64(maxLine) {
			return fn(nil)
		}

		line := make([]byte, end-start)
		if _, err := r.ReadAt(line, start); err != nil && !errors.Is(err, io.EOF) {
			return errors.Wrap(err, "failed to read transcript line")
		}

		return fn(line)
	}

	for pos := lineEnd; ; {
		if pos == 0 {
			return ignoreStop(emit(0, lineEnd))
		}

		n := min(int64(chunkSize), pos)
		base := pos - n

		if _, err := r.ReadAt(chunk[:n], base); err != nil && !errors.Is(err, io.EOF) {
			return errors.Wrap(err, "failed to read transcript chunk")
		}

		for i := n - 1; i >= 0; i-- {
			if chunk[i] != '\n' {
				continue
			}

			if err := emit(base+i+1, lineEnd); err != nil {
				return ignoreStop(err)
			}

			if seen >= window {
				return nil
			}

			lineEnd = base + i
		}

		pos = base
	}
}

func ignoreStop(err error) error {
	if errors.Is(err, errStop) {
		return nil
	}

	return err
}
