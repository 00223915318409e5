package search

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mad-cat/internal/catalyst"
	"mad-cat/internal/config"
	"mad-cat/pkg/life"
)

func testTable(t *testing.T) *catalyst.Table {
	t.Helper()
	cats, err := catalyst.Build([]config.Catalyst{
		{RLE: "2o$2o!", MaxAbsence: config.Unlimited, Symmetry: "."},
		{RLE: "b2o$o2bo$b2o!", MaxAbsence: config.Unlimited, Symmetry: "*"},
	})
	if err != nil {
		t.Fatal(err)
	}
	bg := catalyst.NewBackground(life.MustParse("bo$2bo$3o!"), 40)
	tab, err := catalyst.NewTable(context.Background(), cats, bg, catalyst.TableOptions{
		Area:    config.Area{X: 3, Y: 3, W: 7, H: 7},
		MaxGen:  40,
		Workers: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	return tab
}

func placementKey(ps []Placement) string {
	return fmt.Sprint(ps)
}

func enumerate(tab *catalyst.Table, opts EnumeratorOptions) []string {
	var out []string
	en := NewEnumerator(tab, opts)
	for en.Next() {
		out = append(out, placementKey(en.Configuration().Placements))
	}
	return out
}

// oracle checks every combination of distinct valid entries directly.
func oracle(tab *catalyst.Table, opts EnumeratorOptions) []string {
	var valid []*catalyst.Entry
	for r := 0; r < tab.Len(); r++ {
		e := tab.At(r)
		if e.Valid() && e.Act >= opts.StartGen {
			valid = append(valid, e)
		}
	}
	// Latest key first, the order slots are filled in.
	sort.Slice(valid, func(i, j int) bool { return valid[j].Less(valid[i]) })

	var out []string
	pick := make([]*catalyst.Entry, 0, opts.Slots)
	var rec func(from int)
	rec = func(from int) {
		if len(pick) == opts.Slots {
			if ok(pick, opts) {
				ps := make([]Placement, len(pick))
				for i, e := range pick {
					ps[i] = Placement{Type: e.Type, X: e.X, Y: e.Y}
				}
				out = append(out, placementKey(ps))
			}
			return
		}
		for i := from; i < len(valid); i++ {
			pick = append(pick, valid[i])
			rec(i + 1)
			pick = pick[:len(pick)-1]
		}
	}
	rec(0)
	return out
}

func ok(pick []*catalyst.Entry, opts EnumeratorOptions) bool {
	if pick[len(pick)-1].Act > opts.LastGen {
		return false
	}
	minX, minY, maxX, maxY := pick[0].MinX, pick[0].MinY, pick[0].MaxX, pick[0].MaxY
	cum := pick[0].Grid
	for _, e := range pick[1:] {
		minX, minY = min(minX, e.MinX), min(minY, e.MinY)
		maxX, maxY = max(maxX, e.MaxX), max(maxY, e.MaxY)
		zone := cum.ZOI()
		if !e.Grid.AreDisjoint(&zone) {
			return false
		}
		cum.Join(&e.Grid)
		if !cum.IsStill() {
			return false
		}
	}
	if opts.MaxWidth > 0 && maxX-minX+1 > opts.MaxWidth {
		return false
	}
	if opts.MaxHeight > 0 && maxY-minY+1 > opts.MaxHeight {
		return false
	}
	return true
}

func TestEnumeratorMatchesOracle(t *testing.T) {
	tab := testTable(t)
	cases := []EnumeratorOptions{
		{Slots: 1, LastGen: 40},
		{Slots: 2, LastGen: 40},
		{Slots: 2, StartGen: 5, LastGen: 12},
		{Slots: 2, LastGen: 40, MaxWidth: 6, MaxHeight: 7},
		{Slots: 3, LastGen: 40},
	}
	for _, opts := range cases {
		got := enumerate(tab, opts)
		want := oracle(tab, opts)

		seen := map[string]bool{}
		for _, k := range got {
			if seen[k] {
				t.Fatalf("%+v: configuration %s visited twice", opts, k)
			}
			seen[k] = true
		}
		sort.Strings(got)
		sort.Strings(want)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%+v: enumeration mismatch (-want +got):\n%s", opts, diff)
		}
		if opts.Slots == 1 && len(got) == 0 {
			t.Fatal("expected at least one single-catalyst configuration")
		}
	}
}

func TestEnumeratorCanonicalOrder(t *testing.T) {
	tab := testTable(t)
	en := NewEnumerator(tab, EnumeratorOptions{Slots: 2, LastGen: 40})
	n := 0
	for en.Next() {
		c := en.Configuration()
		if !c.Entries[1].Less(c.Entries[0]) {
			t.Fatalf("slot keys not decreasing: %v", c.Placements)
		}
		if c.MinActivation != c.Entries[1].Act {
			t.Fatalf("min activation %d, want %d", c.MinActivation, c.Entries[1].Act)
		}
		want := life.Union(c.Entries[0].Grid, c.Entries[1].Grid)
		if !c.Catalysts.Equal(&want) {
			t.Fatal("joined catalysts differ from the union of the slots")
		}
		n++
	}
	if n == 0 {
		t.Fatal("no two-catalyst configurations")
	}
	if !en.Done() || en.Next() {
		t.Fatal("exhausted enumerator must stay done")
	}
}
