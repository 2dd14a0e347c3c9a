// Package stream implements the two directions of pane transcoding as
// escape-aware streaming filters: Encoder turns the session's UTF-8 input
// into the pane's legacy encoding, Decoder turns the far end's legacy
// output back into UTF-8. Both share one run splitter that brackets
// control sequences so their bytes are never fed through a codec, and
// both carry partial units across arbitrarily chunked calls.
package stream

import (
	"bytes"

	"github.com/hnimtadd/termcodec/logger"
	"github.com/hnimtadd/termcodec/transcode/ansi"
	"github.com/hnimtadd/termcodec/transcode/codec"
	"github.com/hnimtadd/termcodec/transcode/escape"
)

// textProcessor converts one plain-text run for its direction, appending
// to out and returning it. Implementations own the partial-unit carry;
// reset drops the carry and the counters when the encoding changes.
type textProcessor interface {
	run(enc codec.Encoding, text []byte, out []byte) []byte
	reset()
}

// filter is the recognizer-driven run splitter shared by Encoder and
// Decoder. It owns the escape accumulator: once a sequence starts, its
// bytes are held until the terminator arrives and are then emitted whole.
// An unterminated sequence is held across calls indefinitely, so the
// accumulator is unbounded on pathological input; that is the documented
// trade for never splitting a sequence.
type filter struct {
	active codec.Encoding
	primed bool
	state  escape.State
	seq    []byte
	proc   textProcessor
	stats  *Stats
	logger logger.Logger
}

func (f *filter) apply(enc codec.Encoding, data []byte) []byte {
	if !f.primed || f.active != enc {
		// A changed encoding invalidates the carried partial unit, and
		// conservatively also any half-seen control sequence.
		f.primed = true
		f.active = enc
		f.state = escape.StateGround
		f.seq = f.seq[:0]
		f.proc.reset()
	}
	if !enc.Legacy() {
		// Already UTF-8 on both sides; nothing to buffer.
		return bytes.Clone(data)
	}

	out := make([]byte, 0, len(data))
	textStart := 0

	for i := 0; i < len(data); i++ {
		c := data[i]

		if f.state == escape.StateGround {
			if !escape.Starts(c) {
				// still plain text, tracked by run index
				continue
			}
			if i > textStart {
				f.stats.TextBytes += i - textStart
				out = f.proc.run(enc, data[textStart:i], out)
			}
			f.logger.Debug("control sequence start", "introducer", ansi.String(c))
			f.seq = append(f.seq[:0], c)
			f.state = escape.Enter(c)
			textStart = i + 1
			continue
		}

		f.seq = append(f.seq, c)
		f.state = escape.Next(f.state, c)
		if f.state == escape.StateGround {
			out = append(out, f.seq...)
			f.stats.ControlBytes += len(f.seq)
			f.seq = f.seq[:0]
			textStart = i + 1
		}
	}

	if f.state == escape.StateGround && textStart < len(data) {
		f.stats.TextBytes += len(data) - textStart
		out = f.proc.run(enc, data[textStart:], out)
	}

	return out
}
