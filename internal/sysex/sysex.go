// Package sysex implements the OpenDeck SysEx wire codec: frame parsing,
// response rendering, and the 7-bit/14-bit value packing rules shared by
// every block (Global, Button, Encoder, Analog, Led).
package sysex

import "fmt"

// Manufacturer triple fixed by the protocol, following the F0 delimiter.
var ManufacturerID = [3]byte{0x00, 0x53, 0x43}

const (
	sysexStart = 0xF0
	sysexEnd   = 0xF7
)

// MessageStatus is the error taxonomy carried as wire data on a
// handshake-shaped response frame, never as a Go error.
type MessageStatus uint8

const (
	StatusResponse             MessageStatus = 0x01
	StatusStatusError          MessageStatus = 0x02
	StatusHandshakeError       MessageStatus = 0x03
	StatusWishError            MessageStatus = 0x04
	StatusAmountError          MessageStatus = 0x05
	StatusBlockError           MessageStatus = 0x06
	StatusSectionError         MessageStatus = 0x07
	StatusPartError            MessageStatus = 0x08
	StatusIndexError           MessageStatus = 0x09
	StatusNewValueError        MessageStatus = 0x0A
	StatusMessageLengthError   MessageStatus = 0x0B
	StatusWriteError           MessageStatus = 0x0C
	StatusNotSupportedError    MessageStatus = 0x0D
	StatusReadError            MessageStatus = 0x0E
	StatusUARTAllocationError  MessageStatus = 0x80
)

func (s MessageStatus) String() string {
	switch s {
	case StatusResponse:
		return "Response"
	case StatusStatusError:
		return "StatusError"
	case StatusHandshakeError:
		return "HandshakeError"
	case StatusWishError:
		return "WishError"
	case StatusAmountError:
		return "AmountError"
	case StatusBlockError:
		return "BlockError"
	case StatusSectionError:
		return "SectionError"
	case StatusPartError:
		return "PartError"
	case StatusIndexError:
		return "IndexError"
	case StatusNewValueError:
		return "NewValueError"
	case StatusMessageLengthError:
		return "MessageLengthError"
	case StatusWriteError:
		return "WriteError"
	case StatusNotSupportedError:
		return "NotSupportedError"
	case StatusReadError:
		return "ReadError"
	case StatusUARTAllocationError:
		return "UARTAllocationError"
	default:
		return fmt.Sprintf("MessageStatus(0x%02X)", uint8(s))
	}
}

// Wish is the request verb: read, write, or bulk-dump a value.
type Wish uint8

const (
	WishGet    Wish = 0
	WishSet    Wish = 1
	WishBackup Wish = 2
)

// AmountKind distinguishes a single-value exchange from a bulk "all
// components" exchange.
type AmountKind uint8

const (
	AmountSingle AmountKind = 0
	AmountAll    AmountKind = 1
)

// Sub-index carried in PART when Kind is AmountAll: the original protocol
// overloads one byte as a tristate (request-all / data / final ack); this
// module keeps the request/ack distinction explicit rather than matching on
// magic numbers at every call site.
const (
	PartAllStart uint8 = 0x7E
	PartAllAck   uint8 = 0x7F
)

// Amount bundles AMOUNT and its PART sub-index.
type Amount struct {
	Kind AmountKind
	Part uint8
}

// Block identifies which section of the config tree a request addresses.
type Block uint8

const (
	BlockGlobal      Block = 0
	BlockButton      Block = 1
	BlockEncoder     Block = 2
	BlockAnalog      Block = 3
	BlockLed         Block = 4
	BlockDisplay     Block = 5
	BlockTouchscreen Block = 6
)

// SpecialRequestCode selects the function of a special (non-configuration)
// request frame.
type SpecialRequestCode uint8

const (
	SpecialHandshake                       SpecialRequestCode = 0x01
	SpecialValueSize                        SpecialRequestCode = 0x02
	SpecialValuesPerMessage                 SpecialRequestCode = 0x03
	SpecialFirmwareVersion                  SpecialRequestCode = 0x56
	SpecialHardwareUID                      SpecialRequestCode = 0x42
	SpecialFirmwareVersionAndHardwareUUID   SpecialRequestCode = 0x43
	SpecialNrOfSupportedComponents          SpecialRequestCode = 0x4D
	SpecialReboot                           SpecialRequestCode = 0x7F
	SpecialBootloaderMode                   SpecialRequestCode = 0x55
	SpecialFactoryReset                     SpecialRequestCode = 0x44
	SpecialNrOfSupportedPresets             SpecialRequestCode = 0x50
	SpecialBootloaderSupport                SpecialRequestCode = 0x51
	SpecialBackup                           SpecialRequestCode = 0x1B
)

// ValueSize selects the on-the-wire encoding of a 14-bit logical value:
// one 7-bit byte (OneByte, values 0..127 only) or two bytes carrying the
// full 14-bit range (TwoBytes). The config tree always uses TwoBytes; the
// codec supports both because the protocol defines both.
type ValueSize uint8

const (
	OneByte  ValueSize = 0
	TwoBytes ValueSize = 1
)

// PackValue encodes a 16-bit logical value per the selected ValueSize.
// OneByte truncates to 7 bits (the caller is expected to only use it for
// values that fit); TwoBytes is the canonical 14-bit carrier.
func PackValue(v uint16, vs ValueSize) []byte {
	if vs == OneByte {
		return []byte{byte(v & 0x7F)}
	}
	hi := byte(v >> 8)
	lo := byte(v)
	h := ((hi << 1) & 0x7F) | ((lo >> 7) & 1)
	l := lo & 0x7F
	return []byte{h, l}
}

// UnpackValue is the inverse of PackValue; n reports how many bytes were
// consumed from b.
func UnpackValue(b []byte, vs ValueSize) (v uint16, n int, err error) {
	if vs == OneByte {
		if len(b) < 1 {
			return 0, 0, fmt.Errorf("sysex: need 1 byte for OneByte value, got %d", len(b))
		}
		return uint16(b[0] & 0x7F), 1, nil
	}
	if len(b) < 2 {
		return 0, 0, fmt.Errorf("sysex: need 2 bytes for TwoBytes value, got %d", len(b))
	}
	h, l := b[0], b[1]
	hi := h >> 1
	lo := l | ((h & 1) << 7)
	return (uint16(hi) << 8) | uint16(lo), 2, nil
}

// ValueWidth reports how many wire bytes PackValue produces for vs.
func ValueWidth(vs ValueSize) int {
	if vs == OneByte {
		return 1
	}
	return 2
}

// ChannelOrAll is the tagged MIDI-channel selector used by every event
// generator: a single channel, every channel, or no channel at all.
type ChannelOrAll struct {
	all  bool
	none bool
	ch   uint8 // valid 0..15 when neither all nor none
}

// All constructs the "every channel" selector.
func All() ChannelOrAll { return ChannelOrAll{all: true} }

// None constructs the "no channel" selector.
func None() ChannelOrAll { return ChannelOrAll{none: true} }

// Channel constructs a selector for a single channel 0..15.
func Channel(c uint8) ChannelOrAll { return ChannelOrAll{ch: c % 16} }

// IsAll reports whether the selector denotes every channel.
func (c ChannelOrAll) IsAll() bool { return c.all }

// IsNone reports whether the selector denotes no channel.
func (c ChannelOrAll) IsNone() bool { return c.none }

// Single returns the selected channel and true, or (0, false) if the
// selector is All or None.
func (c ChannelOrAll) Single() (uint8, bool) {
	if c.all || c.none {
		return 0, false
	}
	return c.ch, true
}

// ChannelOrAllFromWire decodes the wire mapping: 0 -> None, 1..16 ->
// Channel(n-1), >16 -> All.
func ChannelOrAllFromWire(v uint16) ChannelOrAll {
	switch {
	case v == 0:
		return None()
	case v <= 16:
		return Channel(uint8(v - 1))
	default:
		return All()
	}
}

// Wire is the inverse of ChannelOrAllFromWire: None -> 0, Channel(c) ->
// c+1, All -> 17.
func (c ChannelOrAll) Wire() uint16 {
	switch {
	case c.none:
		return 0
	case c.all:
		return 17
	default:
		return uint16(c.ch) + 1
	}
}
