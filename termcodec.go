// Package termcodec converts a pane's byte streams between the terminal's
// internal UTF-8 representation and a legacy multi-byte encoding spoken by
// the far end, without disturbing escape sequences.
package termcodec

import (
	"bytes"
	"runtime/debug"

	"github.com/hnimtadd/termcodec/logger"
	"github.com/hnimtadd/termcodec/transcode/codec"
	"github.com/hnimtadd/termcodec/transcode/stream"
)

// Pane owns the two transcoding directions of one pane. The active
// encoding is supplied by the pane's configuration on every call; Pane
// does not persist or select it. Calls on one Pane must be serialized,
// distinct Panes are fully independent.
type Pane struct {
	// outbound: session UTF-8 input -> far end
	encoder *stream.Encoder

	// inbound: far end output -> session UTF-8
	decoder *stream.Decoder

	logger logger.Logger
}

type Options struct {
	Logger logger.Logger
}

func NewPane(opts Options) *Pane {
	log := opts.Logger
	if log == nil {
		log = logger.DefaultLogger
	}
	return &Pane{
		encoder: stream.NewEncoder(log),
		decoder: stream.NewDecoder(log),
		logger:  log,
	}
}

// EncodeInput converts operator/application input from UTF-8 into enc
// before it is written to the far end. This sits on the interactive path,
// so it must keep the stream flowing no matter what: a panic here is
// downgraded to verbatim passthrough of the chunk.
func (p *Pane) EncodeInput(enc codec.Encoding, data []byte) (out []byte) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("panic in EncodeInput, passing chunk through",
				"panic", r, "stack", string(debug.Stack()))
			out = bytes.Clone(data)
		}
	}()
	return p.encoder.Encode(enc, data)
}

// DecodeOutput converts far-end output from enc into UTF-8 for the
// terminal model. Same degradation contract as EncodeInput.
func (p *Pane) DecodeOutput(enc codec.Encoding, data []byte) (out []byte) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("panic in DecodeOutput, passing chunk through",
				"panic", r, "stack", string(debug.Stack()))
			out = bytes.Clone(data)
		}
	}()
	return p.decoder.Decode(enc, data)
}

// DecodeString converts a complete, already-buffered byte sequence (for
// example a file path reported by the far end) to a UTF-8 string, without
// streaming state or escape awareness.
func (p *Pane) DecodeString(enc codec.Encoding, raw []byte) string {
	return codec.DecodeString(enc, raw)
}

// InputStats returns the outbound direction's counters.
func (p *Pane) InputStats() stream.Stats {
	return p.encoder.Stats()
}

// OutputStats returns the inbound direction's counters.
func (p *Pane) OutputStats() stream.Stats {
	return p.decoder.Stats()
}
