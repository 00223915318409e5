package ui

import (
	"testing"

	"mad-cat/internal/core"
	simlife "mad-cat/internal/sims/life"
)

type bareSim struct{}

func (bareSim) Name() string    { return "bare" }
func (bareSim) Size() core.Size { return core.Size{W: 1, H: 1} }
func (bareSim) Reset(int64)     {}
func (bareSim) Step()           {}
func (bareSim) Cells() []uint8  { return []uint8{0} }

func TestStatusLine(t *testing.T) {
	if got := StatusLine(bareSim{}, false); got != "bare" {
		t.Fatalf("bare sim status %q", got)
	}

	l := simlife.New(simlife.FromMap(map[string]string{"rle": "o$o$o!", "catalysts": "4b2o$4b2o!"}))
	l.Reset(0)
	l.Step()
	want := "life  gen 1  pop 7  catalysts ok  paused"
	if got := StatusLine(l, true); got != want {
		t.Fatalf("status %q, want %q", got, want)
	}
}
