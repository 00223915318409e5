package render

import "testing"

func TestFillPaletteRGBA(t *testing.T) {
	buf := make([]byte, 12)
	fillPaletteRGBA(buf, []uint8{2, 0, 9}, LifePalette)
	if buf[0] != 90 || buf[1] != 170 || buf[2] != 255 {
		t.Fatalf("catalyst colour %v", buf[:4])
	}
	// Values past the palette clamp to its last colour.
	if buf[8] != 230 || buf[9] != 60 {
		t.Fatalf("clamped colour %v", buf[8:])
	}

	fillPaletteRGBA(buf, []uint8{1, 1, 1}, nil)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("empty palette should clear, byte %d = %d", i, b)
		}
	}
}

func TestMonoPaletteHidesCatalysts(t *testing.T) {
	buf := make([]byte, 16)
	fillPaletteRGBA(buf, []uint8{0, 1, 2, 3}, MonoPalette)
	want := []byte{0, 255, 255, 0}
	for i, w := range want {
		if buf[i*4] != w {
			t.Fatalf("cell value %d drawn as %d, want %d", i, buf[i*4], w)
		}
	}
}
