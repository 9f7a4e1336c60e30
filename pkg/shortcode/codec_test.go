package shortcode

import "testing"

func TestDecodeDecimalAllZeros(t *testing.T) {
	b := make([]byte, 5)
	d, ok := DecodeDecimal(b)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	want := Decimal{1000, 1000, 1000}
	if d != want {
		t.Fatalf("got %v, want %v", d, want)
	}
}

func TestDecodeDecimalAllOnes(t *testing.T) {
	b := make([]byte, 5)
	for i := range b {
		b[i] = 0xFF
	}
	d, ok := DecodeDecimal(b)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	want := Decimal{9191, 9191, 9191}
	if d != want {
		t.Fatalf("got %v, want %v", d, want)
	}
}

func TestDecodeDecimalTooShort(t *testing.T) {
	if _, ok := DecodeDecimal(make([]byte, 4)); ok {
		t.Fatalf("expected ok=false for 4-byte input")
	}
}

func TestDecodeDecimalRangeSweep(t *testing.T) {
	// A full sweep over 5 bytes is too large, so this sweeps the first and
	// last byte in strides of 17 and 23 with the middle bytes held fixed.
	for b0 := 0; b0 < 256; b0 += 17 {
		for b4 := 0; b4 < 256; b4 += 23 {
			b := []byte{byte(b0), 0x55, 0xAA, 0x33, byte(b4)}
			d, ok := DecodeDecimal(b)
			if !ok {
				t.Fatalf("expected ok=true")
			}
			for i, v := range d {
				if v < 1000 || v > 9191 {
					t.Fatalf("d[%d] = %d out of range [1000, 9191] for input %v", i, v, b)
				}
			}
		}
	}
}

func TestDecodeEmojiIndicesAllZeros(t *testing.T) {
	b := make([]byte, 6)
	indices, ok := DecodeEmojiIndices(b)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	for i, v := range indices {
		if v != 0 {
			t.Fatalf("indices[%d] = %d, want 0", i, v)
		}
	}
}

func TestDecodeEmojiIndicesAllOnes(t *testing.T) {
	b := make([]byte, 6)
	for i := range b {
		b[i] = 0xFF
	}
	indices, ok := DecodeEmojiIndices(b)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	for i, v := range indices {
		if v != 63 {
			t.Fatalf("indices[%d] = %d, want 63", i, v)
		}
	}
}

func TestDecodeEmojiIndicesTooShort(t *testing.T) {
	if _, ok := DecodeEmojiIndices(make([]byte, 5)); ok {
		t.Fatalf("expected ok=false for 5-byte input")
	}
}

func TestDecodeEmojiIndicesInRange(t *testing.T) {
	for b0 := 0; b0 < 256; b0 += 13 {
		for b5 := 0; b5 < 256; b5 += 29 {
			b := []byte{byte(b0), 0x12, 0x34, 0x56, 0x78, byte(b5)}
			indices, ok := DecodeEmojiIndices(b)
			if !ok {
				t.Fatalf("expected ok=true")
			}
			if len(indices) != 7 {
				t.Fatalf("expected 7 indices, got %d", len(indices))
			}
			for i, v := range indices {
				if v < 0 || v > 63 {
					t.Fatalf("indices[%d] = %d out of [0, 63] for input %v", i, v, b)
				}
			}
		}
	}
}

func TestDecodeEmojiResolvesTable(t *testing.T) {
	b := make([]byte, 6)
	emoji, ok := DecodeEmoji(b, DefaultEmojiTable)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	for i, e := range emoji {
		if e != DefaultEmojiTable[0] {
			t.Fatalf("emoji[%d] = %+v, want table[0]", i, e)
		}
	}
}

func TestDecimalStringFormatsFourDigits(t *testing.T) {
	d := Decimal{1000, 4567, 9191}
	if got, want := d.String(), "1000 4567 9191"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
