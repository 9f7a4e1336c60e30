// Package shortcode turns the raw bytes derived by the SAS engine into the
// human-comparable representations two people read aloud or compare on
// screen: three 4-digit decimal numbers, or seven emoji.
package shortcode

import "fmt"

// Emoji is one entry of the short-authentication-string emoji set: an
// index in [0, 63], the emoji glyph, and its spoken name.
type Emoji struct {
	Index int
	Value string
	Name  string
}

// Decimal is the three-number decimal representation of a short code.
// Each number is in [1000, 9191].
type Decimal [3]int

// Strings renders the decimal representation as three 4-digit strings.
func (d Decimal) Strings() [3]string {
	return [3]string{
		fmt.Sprintf("%04d", d[0]),
		fmt.Sprintf("%04d", d[1]),
		fmt.Sprintf("%04d", d[2]),
	}
}

// String renders the decimal representation space-separated, e.g. "1000 4567 9191".
func (d Decimal) String() string {
	s := d.Strings()
	return s[0] + " " + s[1] + " " + s[2]
}

// DecodeDecimal computes the three decimal numbers from the first 5 bytes
// of a SAS-engine-derived buffer. It reports ok=false if fewer than 5
// bytes are available; this is not an error, just the absence of a
// representation.
func DecodeDecimal(b []byte) (d Decimal, ok bool) {
	if len(b) < 5 {
		return Decimal{}, false
	}

	b0, b1, b2, b3, b4 := int(b[0]), int(b[1]), int(b[2]), int(b[3]), int(b[4])

	d[0] = ((b0 << 5) | (b1 >> 3)) + 1000
	d[1] = (((b1 & 0x07) << 10) | (b2 << 2) | (b3 >> 6)) + 1000
	d[2] = (((b3 & 0x3F) << 7) | (b4 >> 1)) + 1000

	return d, true
}

// DecodeEmojiIndices computes the seven 6-bit emoji indices from the first
// 6 bytes of a SAS-engine-derived buffer. It reports ok=false if fewer
// than 6 bytes are available.
func DecodeEmojiIndices(b []byte) (indices [7]int, ok bool) {
	if len(b) < 6 {
		return [7]int{}, false
	}

	b0, b1, b2, b3, b4, b5 := int(b[0]), int(b[1]), int(b[2]), int(b[3]), int(b[4]), int(b[5])

	indices[0] = (b0 & 0xFC) >> 2
	indices[1] = ((b0 & 0x03) << 4) | ((b1 & 0xF0) >> 4)
	indices[2] = ((b1 & 0x0F) << 2) | ((b2 & 0xC0) >> 6)
	indices[3] = b2 & 0x3F
	indices[4] = (b3 & 0xFC) >> 2
	indices[5] = ((b3 & 0x03) << 4) | ((b4 & 0xF0) >> 4)
	indices[6] = ((b4 & 0x0F) << 2) | ((b5 & 0xC0) >> 6)

	return indices, true
}

// DecodeEmoji computes the seven emoji for a SAS-engine-derived buffer,
// resolving each 6-bit index against table. It reports ok=false under the
// same condition as DecodeEmojiIndices.
func DecodeEmoji(b []byte, table [64]Emoji) (emoji [7]Emoji, ok bool) {
	indices, ok := DecodeEmojiIndices(b)
	if !ok {
		return [7]Emoji{}, false
	}
	for i, idx := range indices {
		emoji[i] = table[idx]
	}
	return emoji, true
}
