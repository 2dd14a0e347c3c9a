package codec

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies the text encoding a pane speaks with its far end.
// The set is closed: adding an encoding means adding a constant here and
// wiring it into charsets below. Utf8 is the distinguished "no legacy
// encoding" value and turns both transcoding directions into passthrough.
type Encoding uint8

const (
	Utf8 Encoding = iota
	Gbk
	Gb18030
	Big5
	EucKr
	ShiftJis
)

// MaxUnitLen is the longest encoded unit across all supported legacy
// encodings: GB18030 uses up to four bytes per character, the others at
// most two. This bounds the decoder's trailing-byte carry and its
// clean-prefix lookback window.
const MaxUnitLen = 4

var names = map[Encoding]string{
	Utf8:     "utf-8",
	Gbk:      "gbk",
	Gb18030:  "gb18030",
	Big5:     "big5",
	EucKr:    "euc-kr",
	ShiftJis: "shift_jis",
}

func (e Encoding) String() string {
	if name, ok := names[e]; ok {
		return name
	}
	return "unknown"
}

// ParseEncoding maps a configuration label to an Encoding. Labels are the
// canonical lowercase names returned by String.
func ParseEncoding(name string) (Encoding, bool) {
	for e, n := range names {
		if n == name {
			return e, true
		}
	}
	return Utf8, false
}

// Legacy reports whether e requires conversion at all.
func (e Encoding) Legacy() bool {
	return e != Utf8
}

var charsets = map[Encoding]encoding.Encoding{
	Utf8:     unicode.UTF8,
	Gbk:      simplifiedchinese.GBK,
	Gb18030:  simplifiedchinese.GB18030,
	Big5:     traditionalchinese.Big5,
	EucKr:    korean.EUCKR,
	ShiftJis: japanese.ShiftJIS,
}

func (e Encoding) charset() encoding.Encoding {
	if cs, ok := charsets[e]; ok {
		return cs
	}
	return unicode.UTF8
}
