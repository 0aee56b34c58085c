package session

import (
	"bufio"
	"context"
	"io"
)

// LineReader delivers operator input one line at a time. A single reader must
// be shared between the session-selection prompt and the labeling loop so no
// buffered input is lost between them.
type LineReader struct {
	lines <-chan string
}

// NewLineReader starts consuming r line by line.
func NewLineReader(r io.Reader) *LineReader {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			ch <- scanner.Text()
		}
	}()
	return &LineReader{lines: ch}
}

// Next blocks until a line arrives, the input ends, or ctx is done. The
// second return is false when no further input will come.
func (lr *LineReader) Next(ctx context.Context) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-lr.lines:
		return line, ok
	}
}
