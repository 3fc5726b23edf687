package sysex

import "fmt"

// RequestKind distinguishes a special (handshake/reboot/...) request from a
// configuration (get/set/backup) request.
type RequestKind uint8

const (
	RequestSpecial RequestKind = iota
	RequestConfiguration
)

// Request is a parsed incoming frame. Only the fields relevant to Kind are
// meaningful; this mirrors the protocol's own tagged-union shape (§9
// "sum-typed protocol values") without needing a full visitor interface for
// two variants.
type Request struct {
	Kind    RequestKind
	Special SpecialRequestCode

	Wish    Wish
	Amount  Amount
	Block   Block
	Section uint8
	Index   uint16
	Values  []uint16
}

// ParseError reports why a frame failed to parse. Silent set means the
// frame was structurally malformed (wrong length, bad delimiters, wrong
// manufacturer ID) and must be dropped silently per §7; otherwise Status
// is a protocol-level error that must be echoed back on a handshake frame.
type ParseError struct {
	Status  MessageStatus
	Silent  bool
	Message string
}

func (e *ParseError) Error() string {
	if e.Silent {
		return "sysex: malformed frame: " + e.Message
	}
	return fmt.Sprintf("sysex: %s: %s", e.Status, e.Message)
}

func silentErr(format string, args ...any) error {
	return &ParseError{Silent: true, Message: fmt.Sprintf(format, args...)}
}

func statusErr(status MessageStatus, format string, args ...any) error {
	return &ParseError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// Parse decodes a single SysEx frame (including its F0/F7 delimiters) into
// a Request. vs selects how INDEX and VALUES are packed; the config tree
// always parses with TwoBytes.
func Parse(frame []byte, vs ValueSize) (Request, error) {
	if len(frame) < 8 {
		return Request{}, silentErr("frame too short (%d bytes)", len(frame))
	}
	if frame[0] != sysexStart || frame[len(frame)-1] != sysexEnd {
		return Request{}, silentErr("missing SysEx delimiters")
	}
	if frame[1] != ManufacturerID[0] || frame[2] != ManufacturerID[1] || frame[3] != ManufacturerID[2] {
		return Request{}, silentErr("unrecognised manufacturer ID")
	}

	status := MessageStatus(frame[4])
	if status != 0 {
		return Request{}, statusErr(StatusStatusError, "STATUS byte %d is not a request (0)", status)
	}

	// A special-request frame is exactly 8 bytes: F0 00 53 43 STATUS 00 CODE F7.
	if len(frame) == 8 {
		return Request{
			Kind:    RequestSpecial,
			Special: SpecialRequestCode(frame[6]),
		}, nil
	}

	part := frame[5]
	wish := Wish(frame[6])
	if wish != WishGet && wish != WishSet && wish != WishBackup {
		return Request{}, statusErr(StatusWishError, "unknown WISH %d", wish)
	}
	amountKind := AmountKind(frame[7])
	if amountKind != AmountSingle && amountKind != AmountAll {
		return Request{}, statusErr(StatusAmountError, "unknown AMOUNT %d", amountKind)
	}

	if len(frame) < 10 {
		return Request{}, statusErr(StatusMessageLengthError, "frame too short for BLOCK/SECTION")
	}
	block := Block(frame[8])
	if block > BlockTouchscreen {
		return Request{}, statusErr(StatusBlockError, "unknown BLOCK %d", block)
	}
	section := frame[9]

	width := ValueWidth(vs)
	cursor := 10
	if len(frame)-1-cursor < width {
		return Request{}, statusErr(StatusMessageLengthError, "frame too short for INDEX")
	}
	index, n, err := UnpackValue(frame[cursor:len(frame)-1], vs)
	if err != nil {
		return Request{}, statusErr(StatusMessageLengthError, "%s", err)
	}
	cursor += n

	var values []uint16
	remaining := frame[cursor : len(frame)-1]
	for len(remaining) >= width {
		v, n, err := UnpackValue(remaining, vs)
		if err != nil {
			break
		}
		values = append(values, v)
		remaining = remaining[n:]
	}

	return Request{
		Kind:    RequestConfiguration,
		Wish:    wish,
		Amount:  Amount{Kind: amountKind, Part: part},
		Block:   block,
		Section: section,
		Index:   index,
		Values:  values,
	}, nil
}

// RenderConfiguration builds a configuration-plane response frame.
func RenderConfiguration(status MessageStatus, wish Wish, amount Amount, block Block, section uint8, index uint16, values []uint16, vs ValueSize) []byte {
	buf := []byte{sysexStart, ManufacturerID[0], ManufacturerID[1], ManufacturerID[2], byte(status), amount.Part, byte(wish), byte(amount.Kind), byte(block), section}
	buf = append(buf, PackValue(index, vs)...)
	for _, v := range values {
		buf = append(buf, PackValue(v, vs)...)
	}
	buf = append(buf, sysexEnd)
	return buf
}

// RenderSpecial builds an 8-byte special-response frame carrying code.
func RenderSpecial(status MessageStatus, code SpecialRequestCode) []byte {
	return []byte{sysexStart, ManufacturerID[0], ManufacturerID[1], ManufacturerID[2], byte(status), 0x00, byte(code), sysexEnd}
}

// RenderSpecialPayload builds a special-response frame carrying code
// followed by raw payload bytes (e.g. a firmware version triple, a packed
// hardware UID, or a values-per-message count) ahead of the closing
// delimiter.
func RenderSpecialPayload(status MessageStatus, code SpecialRequestCode, payload []byte) []byte {
	buf := []byte{sysexStart, ManufacturerID[0], ManufacturerID[1], ManufacturerID[2], byte(status), 0x00, byte(code)}
	buf = append(buf, payload...)
	buf = append(buf, sysexEnd)
	return buf
}

// RenderHandshakeError builds the handshake-shaped error response used to
// report any parse failure that carries a MessageStatus (§7).
func RenderHandshakeError(status MessageStatus) []byte {
	return RenderSpecial(status, SpecialHandshake)
}
