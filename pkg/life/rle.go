package life

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedRLE reports run-length text that cannot be decoded.
var ErrMalformedRLE = errors.New("malformed rle")

// Parse decodes run-length text (b = dead, o = live, $ = end of row, ! = end)
// and places its top-left corner at the origin. Header lines starting with
// "x" and comment lines starting with "#" are skipped. Coordinates wrap on
// the torus.
func Parse(rle string) (Grid, error) {
	return ParseAt(rle, 0, 0)
}

// ParseAt decodes run-length text with its top-left corner at (dx, dy).
func ParseAt(rle string, dx, dy int) (Grid, error) {
	g := Empty()
	var body strings.Builder
	for _, line := range strings.Split(rle, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "x") {
			continue
		}
		body.WriteString(line)
	}

	x, y, count := 0, 0, 0
	for _, c := range body.String() {
		switch {
		case c >= '0' && c <= '9':
			count = count*10 + int(c-'0')
			if count > 1<<20 {
				return Empty(), fmt.Errorf("%w: run length too large", ErrMalformedRLE)
			}
		case c == 'b' || c == '.':
			x += max(count, 1)
			count = 0
		case c == 'o' || c == 'A':
			n := max(count, 1)
			for i := 0; i < n && i < N; i++ {
				g.Set(dx+x+i, dy+y)
			}
			x += n
			count = 0
		case c == '$':
			y += max(count, 1)
			x = 0
			count = 0
		case c == '!':
			if count != 0 {
				return Empty(), fmt.Errorf("%w: dangling count before '!'", ErrMalformedRLE)
			}
			return g, nil
		case c == ' ' || c == '\t' || c == '\r':
		default:
			return Empty(), fmt.Errorf("%w: unexpected %q", ErrMalformedRLE, c)
		}
	}
	if count != 0 {
		return Empty(), fmt.Errorf("%w: dangling count", ErrMalformedRLE)
	}
	return g, nil
}

// ParseOrEmpty decodes run-length text, returning an empty grid on error.
func ParseOrEmpty(rle string) Grid {
	g, err := Parse(rle)
	if err != nil {
		return Empty()
	}
	return g
}

// MustParse decodes run-length text and panics on error. Intended for
// package-level pattern literals.
func MustParse(rle string) Grid {
	g, err := Parse(rle)
	if err != nil {
		panic(err)
	}
	return g
}

func writeRun(sb *strings.Builder, n int, c byte) {
	if n <= 0 {
		return
	}
	if n > 1 {
		sb.WriteString(strconv.Itoa(n))
	}
	sb.WriteByte(c)
}

// RLE encodes the grid as run-length text, starting at the top-left corner
// of its bounding box. Trailing dead cells of a row are omitted and runs of
// empty rows are folded into a counted '$'.
func (g *Grid) RLE() string {
	x0, y0, w, h := g.XYBounds()
	if w == 0 {
		return "!"
	}
	var sb strings.Builder
	pendingRows := 0
	for j := 0; j < h; j++ {
		row := g.rows[wrap(y0+j)]
		if row == 0 {
			pendingRows++
			continue
		}
		if j > 0 {
			writeRun(&sb, pendingRows+1, '$')
		}
		pendingRows = 0

		run, alive := 0, false
		last := -1
		for i := 0; i < w; i++ {
			if row&(1<<uint(wrap(x0+i))) != 0 {
				last = i
			}
		}
		for i := 0; i <= last; i++ {
			cell := row&(1<<uint(wrap(x0+i))) != 0
			if cell != alive && run > 0 {
				writeRun(&sb, run, runChar(alive))
				run = 0
			}
			alive = cell
			run++
		}
		writeRun(&sb, run, runChar(alive))
	}
	sb.WriteByte('!')
	return sb.String()
}

func runChar(alive bool) byte {
	if alive {
		return 'o'
	}
	return 'b'
}

// String renders the bounding box as rows of '.' and 'O'.
func (g Grid) String() string {
	x0, y0, w, h := g.XYBounds()
	var sb strings.Builder
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			if g.Get(x0+i, y0+j) {
				sb.WriteByte('O')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
