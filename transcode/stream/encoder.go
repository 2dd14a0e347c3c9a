package stream

import (
	"unicode/utf8"

	"github.com/hnimtadd/termcodec/logger"
	"github.com/hnimtadd/termcodec/transcode/codec"
	"github.com/hnimtadd/termcodec/transcode/utils"
)

// Encoder converts the session's UTF-8 input bytes into the pane's legacy
// encoding before they are written to the far end. Control sequences pass
// through verbatim. One Encoder serves one pane's outbound direction for
// the lifetime of the pane; calls on one instance must be serialized.
type Encoder struct {
	f     filter
	runs  utf8Runs
	stats Stats
}

func NewEncoder(log logger.Logger) *Encoder {
	if log == nil {
		log = logger.DefaultLogger
	}
	e := &Encoder{}
	e.runs = utf8Runs{stats: &e.stats, logger: log}
	e.f = filter{proc: &e.runs, stats: &e.stats, logger: log}
	return e
}

// Encode pushes one chunk through the transcoder and returns the bytes to
// send to the far end. The chunk may end anywhere, including in the middle
// of a UTF-8 character or a control sequence; the remainder is carried
// into the next call. Passing a different enc than the previous call
// resets all carried state first.
func (e *Encoder) Encode(enc codec.Encoding, data []byte) []byte {
	return e.f.apply(enc, data)
}

// Stats returns the counters accumulated since creation or the last
// encoding change.
func (e *Encoder) Stats() Stats {
	return e.stats
}

// Buffered returns how many partial-character bytes are carried toward
// the next call. At teardown a non-zero value means the stream ended
// mid-character.
func (e *Encoder) Buffered() int {
	return len(e.runs.pending)
}

// utf8Runs is the outbound text-run strategy: validate the run as UTF-8
// from the front, push the valid stretches through the codec, buffer an
// incomplete trailing character and replace definitely-invalid bytes
// with '?'.
type utf8Runs struct {
	// pending holds 0-3 bytes of an incomplete trailing UTF-8 character;
	// a character is at most 4 bytes, so one more chunk always resolves it.
	pending []byte
	stats   *Stats
	logger  logger.Logger
}

func (p *utf8Runs) reset() {
	p.pending = p.pending[:0]
	*p.stats = Stats{}
}

func (p *utf8Runs) run(enc codec.Encoding, text, out []byte) []byte {
	utils.Assert(len(text) > 0)

	buf := text
	if len(p.pending) > 0 {
		buf = make([]byte, 0, len(p.pending)+len(text))
		buf = append(buf, p.pending...)
		buf = append(buf, text...)
		p.pending = p.pending[:0]
	}

	for len(buf) > 0 {
		valid, invalid := splitValidUTF8(buf)
		if valid > 0 {
			encoded, replaced := codec.EncodeLossy(enc, buf[:valid])
			out = append(out, encoded...)
			p.stats.noteText(buf[:valid])
			p.stats.Replacements += replaced
			if replaced > 0 {
				p.logger.Debug("replaced unencodable characters with '?'",
					"encoding", enc, "count", replaced)
			}
			buf = buf[valid:]
		}
		if len(buf) == 0 {
			break
		}
		if invalid == 0 {
			// Incomplete trailing character; wait for more bytes.
			p.pending = append(p.pending[:0], buf...)
			utils.Assert(len(p.pending) < utf8.UTFMax)
			break
		}
		out = append(out, '?')
		p.stats.Replacements++
		p.logger.Debug("replaced invalid UTF-8 input with '?'", "bytes", invalid)
		buf = buf[invalid:]
	}

	return out
}

// splitValidUTF8 returns the length of the longest valid UTF-8 prefix of
// b and, if the remainder starts with undecodable bytes, how many of them
// to skip. invalid == 0 with valid < len(b) means the remainder is an
// incomplete trailing character that more input could still complete.
func splitValidUTF8(b []byte) (valid, invalid int) {
	i := 0
	for i < len(b) {
		if b[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			if !utf8.FullRune(b[i:]) {
				return i, 0
			}
			return i, 1
		}
		i += size
	}
	return i, 0
}
