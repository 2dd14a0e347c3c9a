// Package escape recognizes the boundaries of terminal control sequences
// in a byte stream.
//
// This is deliberately not a full VT-series parser (see vt100.net's
// dec_ansi_parser for what that looks like): the transcoder never
// interprets a sequence, it only needs to know where one starts and ends
// so that the bytes in between are never fed through a text codec. Seven
// states are enough to bracket the two/three-byte escapes and the CSI,
// OSC and DCS string families.
package escape

import "github.com/hnimtadd/termcodec/transcode/ansi"

// State for the recognizer state machine. Ground means "plain text";
// every other state means "inside an unterminated control sequence".
type State uint8

const (
	StateGround State = iota
	StateEscape
	StateCSI
	StateOSC
	StateOSCEsc
	StateDCS
	StateDCSEsc
)

var stateNames = map[State]string{
	StateGround: "ground",
	StateEscape: "escape",
	StateCSI:    "csi",
	StateOSC:    "osc",
	StateOSCEsc: "osc-esc",
	StateDCS:    "dcs",
	StateDCSEsc: "dcs-esc",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Starts reports whether c begins a control sequence when the recognizer
// is in ground state. Ground-state bytes are otherwise never fed to Next;
// they are plain text and the caller tracks them by run index.
func Starts(c uint8) bool {
	return c == ansi.C0.ESC || c == ansi.CSI
}

// Enter returns the state entered by the introducer byte c. The 8-bit CSI
// introducer skips the escape state and opens the CSI body directly.
func Enter(c uint8) State {
	if c == ansi.CSI {
		return StateCSI
	}
	return StateEscape
}

// Next consumes the next byte c and returns the new state. Pure function,
// shared by both transcoding directions.
func Next(s State, c uint8) State {
	switch s {
	case StateGround:
		return StateGround

	case StateEscape:
		switch {
		case c == '[':
			return StateCSI
		case c == ']':
			return StateOSC
		case c == 'P':
			return StateDCS
		case c >= 0x40 && c <= 0x7E:
			// two-byte escape completed
			return StateGround
		default:
			// intermediate byte of a multi-byte escape
			return StateEscape
		}

	case StateCSI:
		if c >= 0x40 && c <= 0x7E {
			// final byte
			return StateGround
		}
		return StateCSI

	case StateOSC:
		switch c {
		case ansi.C0.BEL:
			return StateGround
		case ansi.C0.ESC:
			return StateOSCEsc
		default:
			return StateOSC
		}

	case StateOSCEsc:
		if c == '\\' {
			// ST received
			return StateGround
		}
		// The ESC was not a string terminator; the body continues. The
		// byte is not re-examined as a new introducer: the recognizer is
		// single-byte-lookahead.
		return StateOSC

	case StateDCS:
		if c == ansi.C0.ESC {
			return StateDCSEsc
		}
		return StateDCS

	case StateDCSEsc:
		if c == '\\' {
			return StateGround
		}
		return StateDCS

	default:
		return StateGround
	}
}
