// Package codec adapts the golang.org/x/text encoding tables to the three
// operations the streaming transcoder needs: a lossy decode that always
// succeeds, a strict decode that refuses invalid or incomplete input, and
// a lossy encode that substitutes '?' for unencodable characters.
//
// The byte-level conversion tables themselves live entirely in x/text;
// nothing here knows what a GBK lead byte looks like.
package codec

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// replacement is the UTF-8 encoding of U+FFFD, which the x/text decoders
// substitute for undecodable bytes.
var replacement = []byte(string(utf8.RuneError))

// Decode converts src from encoding e to UTF-8, substituting U+FFFD for
// any byte that cannot be decoded. It always produces output; hadErrors
// reports whether any substitution happened. For Utf8 this is a lossy
// UTF-8 clean-up pass.
func Decode(e Encoding, src []byte) (out []byte, hadErrors bool) {
	decoded, err := e.charset().NewDecoder().Bytes(src)
	if err != nil {
		// The x/text decoders replace rather than fail; this path is
		// unreachable with the charsets wired above, but the contract is
		// "always produce output", so degrade instead of propagating.
		return bytes.ToValidUTF8(src, replacement), true
	}
	return decoded, bytes.Contains(decoded, replacement)
}

// DecodeStrict converts src from encoding e to UTF-8 and reports whether
// every byte decoded cleanly. Invalid bytes and incomplete trailing units
// both fail. The streaming decoder uses this to probe candidate prefix
// lengths around a chunk boundary.
//
// Detection rides on the decoders' U+FFFD substitution, so GB18030 input
// that genuinely encodes U+FFFD is conservatively rejected here; callers
// fall back to Decode, which yields the identical text.
func DecodeStrict(e Encoding, src []byte) ([]byte, bool) {
	if !e.Legacy() {
		if !utf8.Valid(src) {
			return nil, false
		}
		return bytes.Clone(src), true
	}
	decoded, err := e.charset().NewDecoder().Bytes(src)
	if err != nil || bytes.Contains(decoded, replacement) {
		return nil, false
	}
	return decoded, true
}

// EncodeLossy converts the valid UTF-8 text to encoding e. Characters the
// encoding cannot represent are replaced with a single '?' byte each;
// replaced reports how many. Utf8 returns the text unchanged.
func EncodeLossy(e Encoding, text []byte) (out []byte, replaced int) {
	if !e.Legacy() {
		return bytes.Clone(text), 0
	}
	enc := e.charset().NewEncoder()
	out = make([]byte, 0, len(text))
	dst := make([]byte, len(text)*2+16)
	for len(text) > 0 {
		nDst, nSrc, err := enc.Transform(dst, text, true)
		out = append(out, dst[:nDst]...)
		text = text[nSrc:]
		if err == nil {
			break
		}
		if err == transform.ErrShortDst {
			continue
		}
		// Unencodable rune (or, defensively, ill-formed input that
		// slipped past the caller's validation): drop exactly one rune,
		// emit the replacement marker and resynchronize.
		_, size := utf8.DecodeRune(text)
		if size == 0 {
			break
		}
		out = append(out, '?')
		replaced++
		text = text[size:]
		enc.Reset()
	}
	return out, replaced
}

// DecodeString is the one-shot, non-streaming decode used for complete
// buffers such as filesystem paths reported by the far end. It never
// fails: valid UTF-8 is returned unchanged regardless of e, anything else
// is decoded lossily with e (or cleaned up as UTF-8 when e is Utf8).
//
// No control-sequence awareness applies here; a path has no escape bytes
// worth preserving and a best-effort string always beats an error.
func DecodeString(e Encoding, raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, _ := Decode(e, raw)
	return string(decoded)
}
