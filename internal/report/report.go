// Package report writes search results as one large pattern file with a
// band per category.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"mad-cat/internal/category"
	"mad-cat/internal/search"
)

// DefaultPitch is the spacing between neighbouring results in cells.
const DefaultPitch = 100

// Options controls the layout of a report.
type Options struct {
	Pitch int
	// Full writes every result instead of the top of each category.
	Full bool
	// Header lines are written as #C comments.
	Header []string
}

// sheet is a sparse set of live cells on an unbounded plane.
type sheet struct {
	rows map[int][]int
	w, h int
}

func newSheet() *sheet { return &sheet{rows: make(map[int][]int)} }

func (s *sheet) set(x, y int) {
	s.rows[y] = append(s.rows[y], x)
	s.w = max(s.w, x+1)
	s.h = max(s.h, y+1)
}

// place copies the results side by side along band row.
func (s *sheet) place(results []*search.Result, row, pitch int) {
	for col, r := range results {
		g := r.Init.Normalized()
		for _, c := range g.Cells() {
			s.set(col*pitch+c[0], row*pitch+c[1])
		}
	}
}

// Write lays out every category as one band of results.
func Write(w io.Writer, cs *category.Categories, opts Options) error {
	if opts.Pitch <= 0 {
		opts.Pitch = DefaultPitch
	}
	s := newSheet()
	for row, c := range cs.List() {
		results := c.Results
		if !opts.Full {
			results = cs.Top(c)
		}
		s.place(results, row, opts.Pitch)
	}

	bw := bufio.NewWriter(w)
	for _, line := range opts.Header {
		fmt.Fprintf(bw, "#C %s\n", line)
	}
	fmt.Fprintf(bw, "x = %d, y = %d, rule = B3/S23\n", s.w, s.h)
	s.encode(bw)
	return bw.Flush()
}

// WriteFile writes a report to path.
func WriteFile(path string, cs *category.Categories, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := Write(f, cs, opts); err != nil {
		f.Close()
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return f.Close()
}

// encode writes the sheet in run-length form, wrapping lines at 70
// characters.
func (s *sheet) encode(w *bufio.Writer) {
	lw := &lineWriter{w: w}
	pendingRows := 0
	for y := 0; y < s.h; y++ {
		xs := s.rows[y]
		if len(xs) == 0 {
			pendingRows++
			continue
		}
		if pendingRows > 0 {
			lw.run(pendingRows, '$')
			pendingRows = 0
		}
		sort.Ints(xs)
		x := 0
		for i := 0; i < len(xs); {
			if xs[i] < x {
				i++
				continue
			}
			start := xs[i]
			end := start
			for i < len(xs) && xs[i] <= end+1 {
				end = max(end, xs[i])
				i++
			}
			lw.run(start-x, 'b')
			lw.run(end-start+1, 'o')
			x = end + 1
		}
		pendingRows = 1
	}
	lw.token("!")
	w.WriteByte('\n')
}

type lineWriter struct {
	w   *bufio.Writer
	col int
}

func (l *lineWriter) run(n int, c byte) {
	if n <= 0 {
		return
	}
	tok := string(c)
	if n > 1 {
		tok = strconv.Itoa(n) + tok
	}
	l.token(tok)
}

func (l *lineWriter) token(tok string) {
	if l.col+len(tok) > 70 {
		l.w.WriteByte('\n')
		l.col = 0
	}
	l.w.WriteString(tok)
	l.col += len(tok)
}
