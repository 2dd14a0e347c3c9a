package stream

import (
	"unicode/utf8"

	dw "github.com/mattn/go-runewidth"
)

// Stats accumulates per-instance counters across calls. The pane layer
// uses Cells to pre-size render buffers and Replacements to surface lossy
// conversions to the user. Counters reset together with the rest of the
// instance state when the active encoding changes.
type Stats struct {
	// TextBytes counts input bytes classified as plain text.
	TextBytes int
	// ControlBytes counts bytes passed through inside control sequences.
	ControlBytes int
	// Chars counts characters that crossed the codec.
	Chars int
	// Cells counts the display cells those characters occupy; wide CJK
	// characters count as two.
	Cells int
	// Replacements counts characters substituted during conversion,
	// on either side.
	Replacements int
}

// noteText records one converted text span. text must be valid UTF-8:
// for the encoder it is the source span, for the decoder the decoded
// output.
func (s *Stats) noteText(text []byte) {
	s.Chars += utf8.RuneCount(text)
	s.Cells += dw.StringWidth(string(text))
}
