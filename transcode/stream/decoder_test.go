package stream

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hnimtadd/termcodec/transcode/codec"
)

func TestDecodeUtf8Passthrough(t *testing.T) {
	dec := NewDecoder(nil)
	data := []byte("hello world\x1b[31m\xff\xfe")
	assert.Equal(t, data, dec.Decode(codec.Utf8, data))
}

func TestDecodeGbkChinese(t *testing.T) {
	dec := NewDecoder(nil)
	out := dec.Decode(codec.Gbk, []byte{0xC4, 0xE3, 0xBA, 0xC3})
	assert.Equal(t, []byte("你好"), out)
}

func TestDecodeSequencePassthrough(t *testing.T) {
	tcs := []struct {
		name string
		data []byte
	}{
		{"csi cursor position", []byte("\x1b[1;2H")},
		{"csi 8-bit introducer", []byte{0x9b, '3', '1', 'm'}},
		{"osc title bel", []byte("\x1b]0;my title\x07")},
		{"osc title st", []byte("\x1b]0;my title\x1b\\")},
		{"dcs st", []byte("\x1bPsome data\x1b\\")},
		{"two-byte escape", []byte("\x1bM")},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			dec := NewDecoder(nil)
			assert.Equal(t, tc.data, dec.Decode(codec.Gbk, tc.data))
		})
	}
}

func TestDecodeMixedTextAndSequence(t *testing.T) {
	// GBK "你" + ESC[0m + GBK "好"
	dec := NewDecoder(nil)
	data := []byte{0xC4, 0xE3}
	data = append(data, []byte("\x1b[0m")...)
	data = append(data, 0xBA, 0xC3)

	expected := []byte("你")
	expected = append(expected, []byte("\x1b[0m")...)
	expected = append(expected, []byte("好")...)

	assert.Equal(t, expected, dec.Decode(codec.Gbk, data))
}

func TestDecodeSplitCharacterAcrossCalls(t *testing.T) {
	dec := NewDecoder(nil)

	out := dec.Decode(codec.Gbk, []byte{0xC4})
	assert.Empty(t, out, "incomplete character must be buffered")
	assert.Equal(t, 1, dec.Buffered())

	out = dec.Decode(codec.Gbk, []byte{0xE3})
	assert.Equal(t, []byte("你"), out)
	assert.Zero(t, dec.Buffered())
}

func TestDecodeSequenceSplitAcrossCalls(t *testing.T) {
	dec := NewDecoder(nil)

	out := dec.Decode(codec.Gbk, []byte("\x1b]0;ti"))
	assert.Empty(t, out)

	out = dec.Decode(codec.Gbk, []byte("tle\x07"))
	assert.Equal(t, []byte("\x1b]0;title\x07"), out)
}

func TestDecodeEncodingSwitchResetsState(t *testing.T) {
	dec := NewDecoder(nil)

	out := dec.Decode(codec.Gbk, []byte{0xC4}) // first byte of "你"
	assert.Empty(t, out)

	// the stale lead byte must not leak into the new encoding
	out = dec.Decode(codec.Utf8, []byte("hello"))
	assert.Equal(t, []byte("hello"), out)
	assert.Zero(t, dec.Buffered())

	out = dec.Decode(codec.EucKr, []byte{0xC7, 0xD1})
	assert.Equal(t, []byte("한"), out)
}

func TestDecodeLossyFallbackMakesProgress(t *testing.T) {
	// Invalid lead bytes can never decode cleanly; once the carry
	// outgrows the longest unit the decoder must emit replacements
	// rather than buffer forever.
	dec := NewDecoder(nil)

	var out []byte
	for i := 0; i < 5; i++ {
		out = append(out, dec.Decode(codec.Gbk, []byte{0xFF})...)
	}
	assert.Contains(t, string(out), "�")
	assert.Zero(t, dec.Buffered())
	assert.NotZero(t, dec.Stats().Replacements)
}

func TestDecodeEmptyInput(t *testing.T) {
	dec := NewDecoder(nil)
	assert.Empty(t, dec.Decode(codec.Gbk, nil))
	assert.Empty(t, dec.Decode(codec.Gbk, []byte{}))
}

func TestDecodeStats(t *testing.T) {
	dec := NewDecoder(nil)
	data := []byte{0xC4, 0xE3, 0xBA, 0xC3} // 你好
	data = append(data, []byte("\x1b[1;2H")...)
	data = append(data, 'o', 'k')

	dec.Decode(codec.Gbk, data)

	stats := dec.Stats()
	assert.Equal(t, 6, stats.TextBytes)
	assert.Equal(t, 6, stats.ControlBytes)
	assert.Equal(t, 4, stats.Chars)
	assert.Equal(t, 6, stats.Cells)
}

// feed pushes data through process in fixed-size chunks, concatenating
// the outputs.
func feed(process func([]byte) []byte, data []byte, size int) []byte {
	out := []byte{}
	for start := 0; start < len(data); start += size {
		end := min(start+size, len(data))
		out = append(out, process(data[start:end])...)
	}
	return out
}

func TestRoundTripAllEncodingsChunked(t *testing.T) {
	tcs := []struct {
		name     string
		encoding codec.Encoding
		text     string
	}{
		{"gbk", codec.Gbk, "你好世界"},
		{"gb18030", codec.Gb18030, "你好, 世界, and ascii"},
		{"big5", codec.Big5, "中文測試"},
		{"euc-kr", codec.EucKr, "한국어"},
		{"shift_jis", codec.ShiftJis, "日本語テスト"},
		{"with sequences", codec.Gbk, "你\x1b[31m好\x1b]0;t\x07世"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			for _, chunk := range []int{1, 2, 3, 7, len(tc.text)} {
				enc := NewEncoder(nil)
				dec := NewDecoder(nil)

				encoded := feed(func(b []byte) []byte {
					return enc.Encode(tc.encoding, b)
				}, []byte(tc.text), chunk)

				decoded := feed(func(b []byte) []byte {
					return dec.Decode(tc.encoding, b)
				}, encoded, chunk)

				assert.Equal(t, tc.text, string(decoded),
					"chunk size %d", chunk)
				assert.Zero(t, enc.Buffered())
				assert.Zero(t, dec.Buffered())
			}
		})
	}
}

func TestLifetimeConcatenationEquivalence(t *testing.T) {
	// Splitting the same stream differently must never change the
	// concatenated output.
	data := []byte{0xC4, 0xE3}
	data = append(data, []byte("\x1b[0;31mred\x1b[0m")...)
	data = append(data, 0xBA, 0xC3, 0xCA, 0xC0)

	whole := NewDecoder(nil)
	reference := whole.Decode(codec.Gbk, data)

	for _, chunk := range []int{1, 2, 3, 5} {
		dec := NewDecoder(nil)
		out := feed(func(b []byte) []byte {
			return dec.Decode(codec.Gbk, b)
		}, data, chunk)
		assert.Equal(t, reference, out, "chunk size %d", chunk)
	}

	assert.False(t, strings.Contains(string(reference), "�"))
}
