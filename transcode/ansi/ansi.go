package ansi

import "fmt"

// The C0 control characters the transcoder has to know about. Only the
// bytes that delimit control sequences matter here; everything else is
// plain text from our point of view and flows through the codec.
type c0 struct {
	BEL uint8 // BEL is the bell character (Caret: ^G, Char: \a). Terminates OSC.
	ESC uint8 // ESC is the Escape character (Caret: ^[). Introduces sequences.
}

var C0 = c0{
	BEL: 0x07,
	ESC: 0x1b,
}

// CSI is the 8-bit single-byte Control Sequence Introducer (C1). It is
// equivalent to ESC [ and enters the CSI body directly.
//
// see https://vt100.net/docs/vt510-rm/chapter4.html for the C1 set.
const CSI uint8 = 0x9b

// table is a map of ANSI control characters to their names.
// any unsupported ansi characters will have hex value key.
var table = map[uint8]string{
	0x00:   "NUL", // Null
	0x01:   "SOH", // Start of Heading
	0x02:   "STX", // Start of Text
	0x03:   "ETX", // End of Text
	0x04:   "EOT", // End of Transmission
	0x05:   "ENQ", // Enquiry
	0x06:   "ACK", // Acknowledge
	C0.BEL: "BEL", // Bell
	0x08:   "BS",  // Backspace
	0x09:   "HT",  // Horizontal Tab
	0x0A:   "LF",  // Line Feed
	0x0B:   "VT",  // Vertical Tab
	0x0C:   "FF",  // Form Feed
	0x0D:   "CR",  // Carriage Return
	0x0E:   "SO",  // Shift Out
	0x0F:   "SI",  // Shift In
	0x10:   "DLE", // Data Link Escape
	0x11:   "DC1", // Device Control 1
	0x12:   "DC2", // Device Control 2
	0x13:   "DC3", // Device Control 3
	0x14:   "DC4", // Device Control 4
	0x15:   "NAK", // Negative Acknowledge
	0x16:   "SYN", // Synchronous Idle
	0x17:   "ETB", // End of Transmission Block
	0x18:   "CAN", // Cancel
	0x19:   "EM",  // End of Medium
	0x1A:   "SUB", // Substitute
	C0.ESC: "ESC", // Escape
	0x1C:   "FS",  // File Separator
	0x1D:   "GS",  // Group Separator
	0x1E:   "RS",  // Record Separator
	0x1F:   "US",  // Unit Separator
	0x7F:   "DEL", // Delete
	CSI:    "CSI", // 8-bit Control Sequence Introducer
}

func String(val uint8) string {
	if name, ok := table[val]; ok {
		return fmt.Sprintf("%s (0x%02X)", name, val)
	}
	return fmt.Sprintf("0x%02X (%q)", val, rune(val))
}
