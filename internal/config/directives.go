package config

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// ParseDirectives decodes the line-oriented directive format on top of the
// defaults. Blank lines and lines starting with '#' are ignored.
//
//	pat <rle> [x y]
//	cat <rle> <maxAbsence> <anchorX> <anchorY> <sym> [forbidden <rle> <x> <y>]...
//	max-gen <n>
//	num-catalyst <k>
//	stable-interval <n>
//	search-area <x> <y> <w> <h>
//	start-gen <n>
//	last-gen <n>
//	fit-in-width-height <w> <h>
//	max-category-size <n>
//	cat-delta <n>
//	filter <gen|g1-g2> <rle> <x> <y>
//	symmetry <group>
//	output <path>
//	full-report <path>
//	workers <n>
func ParseDirectives(text string) (Search, error) {
	s := DefaultSearch()
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		p := &lineParser{fields: fields[1:]}
		switch fields[0] {
		case "pat":
			s.Pattern.RLE = p.str()
			if p.remaining() >= 2 {
				s.Pattern.X = p.int()
				s.Pattern.Y = p.int()
			}
		case "cat":
			c := Catalyst{
				RLE:        p.str(),
				MaxAbsence: p.int(),
				AnchorX:    p.int(),
				AnchorY:    p.int(),
				Symmetry:   p.str(),
			}
			for p.err == nil && p.remaining() > 0 {
				if kw := p.str(); kw != "forbidden" {
					p.fail(fmt.Errorf("expected 'forbidden', got %q", kw))
					break
				}
				c.Forbidden = append(c.Forbidden, Forbidden{RLE: p.str(), X: p.int(), Y: p.int()})
			}
			s.Catalysts = append(s.Catalysts, c)
		case "max-gen":
			s.MaxGen = p.int()
		case "num-catalyst":
			s.NumCatalysts = p.int()
		case "stable-interval":
			s.StableInterval = p.int()
		case "search-area":
			s.Area = Area{X: p.int(), Y: p.int(), W: p.int(), H: p.int()}
		case "start-gen":
			s.StartGen = p.int()
		case "last-gen":
			s.LastGen = p.int()
		case "fit-in-width-height":
			s.MaxWidth = p.int()
			s.MaxHeight = p.int()
		case "max-category-size":
			s.MaxCategorySize = p.int()
		case "cat-delta":
			s.CatDelta = p.int()
		case "filter":
			f := Filter{}
			f.FromGen, f.ToGen = p.genRange()
			f.RLE = p.str()
			f.X = p.int()
			f.Y = p.int()
			s.Filters = append(s.Filters, f)
		case "symmetry":
			s.Symmetry = p.str()
		case "output":
			s.Output = p.str()
		case "full-report":
			s.FullReport = p.str()
		case "workers":
			s.Workers = p.int()
		default:
			return Search{}, fmt.Errorf("line %d: %w %q", lineNo, ErrUnknownDirective, fields[0])
		}
		if p.err == nil && p.remaining() > 0 {
			p.fail(fmt.Errorf("unexpected trailing arguments %v", p.fields[p.pos:]))
		}
		if p.err != nil {
			return Search{}, fmt.Errorf("line %d (%s): %w", lineNo, fields[0], p.err)
		}
	}
	if err := sc.Err(); err != nil {
		return Search{}, fmt.Errorf("scan directives: %w", err)
	}
	return s, nil
}

// lineParser consumes directive arguments, remembering the first error.
type lineParser struct {
	fields []string
	pos    int
	err    error
}

func (p *lineParser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *lineParser) remaining() int { return len(p.fields) - p.pos }

func (p *lineParser) str() string {
	if p.err != nil {
		return ""
	}
	if p.pos >= len(p.fields) {
		p.fail(fmt.Errorf("missing argument %d", p.pos+1))
		return ""
	}
	v := p.fields[p.pos]
	p.pos++
	return v
}

func (p *lineParser) int() int {
	v := p.str()
	if p.err != nil {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(fmt.Errorf("argument %d: %w", p.pos, err))
		return 0
	}
	return n
}

// genRange parses "g" or "g1-g2".
func (p *lineParser) genRange() (int, int) {
	v := p.str()
	if p.err != nil {
		return 0, 0
	}
	from, to, isRange := strings.Cut(v, "-")
	a, err := strconv.Atoi(from)
	if err != nil {
		p.fail(fmt.Errorf("generation %q: %w", v, err))
		return 0, 0
	}
	if !isRange {
		return a, a
	}
	b, err := strconv.Atoi(to)
	if err != nil {
		p.fail(fmt.Errorf("generation %q: %w", v, err))
		return 0, 0
	}
	return a, b
}
