package dtm

import (
	"bytes"
	"io"
)

// lineCounter は通過したバイトのうち改行の数を数える io.Reader です
type lineCounter struct {
	r     io.Reader
	lines int
}

func newLineCounter(r io.Reader) *lineCounter {
	return &lineCounter{r: r}
}

// Read は io.Reader を実装します
func (lc *lineCounter) Read(p []byte) (int, error) {
	n, err := lc.r.Read(p)
	lc.lines += bytes.Count(p[:n], []byte{'\n'})
	return n, err
}

// Lines はこれまでに通過した改行の数を返します
func (lc *lineCounter) Lines() int {
	return lc.lines
}
