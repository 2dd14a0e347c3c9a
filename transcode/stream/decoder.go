package stream

import (
	"bytes"
	"unicode/utf8"

	"github.com/hnimtadd/termcodec/logger"
	"github.com/hnimtadd/termcodec/transcode/codec"
	"github.com/hnimtadd/termcodec/transcode/utils"
)

// Decoder converts legacy-encoded bytes arriving from the far end into
// UTF-8 for the terminal model. Control sequences pass through verbatim.
// One Decoder serves one pane's inbound direction for the lifetime of the
// pane; calls on one instance must be serialized.
type Decoder struct {
	f     filter
	runs  legacyRuns
	stats Stats
}

func NewDecoder(log logger.Logger) *Decoder {
	if log == nil {
		log = logger.DefaultLogger
	}
	d := &Decoder{}
	d.runs = legacyRuns{stats: &d.stats, logger: log}
	d.f = filter{proc: &d.runs, stats: &d.stats, logger: log}
	return d
}

// Decode pushes one chunk through the transcoder and returns UTF-8 bytes.
// The chunk may end anywhere, including in the middle of a multi-byte
// character or a control sequence; the remainder is carried into the next
// call. Passing a different enc than the previous call resets all carried
// state first.
func (d *Decoder) Decode(enc codec.Encoding, data []byte) []byte {
	return d.f.apply(enc, data)
}

// Stats returns the counters accumulated since creation or the last
// encoding change.
func (d *Decoder) Stats() Stats {
	return d.stats
}

// Buffered returns how many trailing encoded bytes are carried toward the
// next call.
func (d *Decoder) Buffered() int {
	return len(d.runs.pending)
}

// legacyRuns is the inbound text-run strategy. Legacy multi-byte
// encodings are not self-synchronizing, so a chunk boundary can land
// anywhere inside a unit: the run is decoded by probing candidate prefix
// lengths from the full buffer down to len-MaxUnitLen and accepting the
// longest one that decodes cleanly. Searching top-down consumes the most
// bytes without ever stranding a later byte as spuriously invalid, and
// the window bound keeps the probe O(1) per call.
type legacyRuns struct {
	// pending holds trailing bytes that did not yet form a complete unit.
	// Steady-state it never exceeds MaxUnitLen; anything longer is forced
	// through the lossy fallback to guarantee progress.
	pending []byte
	stats   *Stats
	logger  logger.Logger
}

func (p *legacyRuns) reset() {
	p.pending = p.pending[:0]
	*p.stats = Stats{}
}

func (p *legacyRuns) run(enc codec.Encoding, text, out []byte) []byte {
	utils.Assert(len(text) > 0)

	buf := make([]byte, 0, len(p.pending)+len(text))
	buf = append(buf, p.pending...)
	buf = append(buf, text...)
	p.pending = p.pending[:0]

	low := max(1, len(buf)-codec.MaxUnitLen)
	for split := len(buf); split >= low; split-- {
		decoded, ok := codec.DecodeStrict(enc, buf[:split])
		if !ok {
			continue
		}
		out = append(out, decoded...)
		p.stats.noteText(decoded)
		p.pending = append(p.pending, buf[split:]...)
		utils.Assert(len(p.pending) <= codec.MaxUnitLen)
		return out
	}

	if len(buf) <= codec.MaxUnitLen {
		// No clean prefix yet; assume the unit completes in a later chunk.
		p.pending = append(p.pending, buf...)
		return out
	}

	// The buffer outgrew every unit the encoding defines without ever
	// decoding cleanly, so it contains garbage. Trade fidelity for
	// progress: decode the lot with replacement characters.
	decoded, hadErrors := codec.Decode(enc, buf)
	if hadErrors {
		p.logger.Warn("lossy fallback decode",
			"encoding", enc, "bytes", len(buf))
	}
	out = append(out, decoded...)
	p.stats.noteText(decoded)
	p.stats.Replacements += bytes.Count(decoded, []byte(string(utf8.RuneError)))
	return out
}
