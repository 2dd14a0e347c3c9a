package termcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hnimtadd/termcodec/transcode/codec"
)

func TestPaneRoundTrip(t *testing.T) {
	pane := NewPane(Options{})

	sent := pane.EncodeInput(codec.Gbk, []byte("ls 文档\r"))
	received := pane.DecodeOutput(codec.Gbk, sent)
	assert.Equal(t, "ls 文档\r", string(received))
}

func TestPaneUtf8Passthrough(t *testing.T) {
	pane := NewPane(Options{})
	data := []byte("plain \x1b[1mbold\x1b[0m")

	assert.Equal(t, data, pane.EncodeInput(codec.Utf8, data))
	assert.Equal(t, data, pane.DecodeOutput(codec.Utf8, data))
}

func TestPaneDirectionsAreIndependent(t *testing.T) {
	pane := NewPane(Options{})

	// park the outbound direction mid-character
	out := pane.EncodeInput(codec.Gbk, []byte{0xE4})
	assert.Empty(t, out)

	// the inbound direction is unaffected
	in := pane.DecodeOutput(codec.Gbk, []byte{0xC4, 0xE3})
	assert.Equal(t, "你", string(in))

	// and the parked character still completes
	out = pane.EncodeInput(codec.Gbk, []byte{0xBD, 0xA0})
	assert.Equal(t, []byte{0xC4, 0xE3}, out)
}

func TestPaneDecodeString(t *testing.T) {
	pane := NewPane(Options{})

	assert.Equal(t, "hello世界",
		pane.DecodeString(codec.Utf8, []byte("hello世界")))
	assert.Equal(t, "你好",
		pane.DecodeString(codec.Gbk, []byte{0xC4, 0xE3, 0xBA, 0xC3}))
}

func TestPaneStats(t *testing.T) {
	pane := NewPane(Options{})

	pane.DecodeOutput(codec.Gbk, []byte{0xC4, 0xE3, 0xBA, 0xC3})
	stats := pane.OutputStats()
	assert.Equal(t, 2, stats.Chars)
	assert.Equal(t, 4, stats.Cells)

	pane.EncodeInput(codec.Gbk, []byte("🚀"))
	assert.Equal(t, 1, pane.InputStats().Replacements)
}
