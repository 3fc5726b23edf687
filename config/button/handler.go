package button

import (
	"errors"

	"github.com/doismellburning/opendeckd/internal/chanexpand"
	"github.com/doismellburning/opendeckd/internal/midimsg"
)

// ErrBufferOverflow is returned by Messages.Next when buf is too small for
// the next message; the generator's progress is left unchanged so the
// caller can retry with a larger buffer.
var ErrBufferOverflow = errors.New("button: buffer too small for message")

// Action is a hardware press or release event.
type Action uint8

const (
	Pressed Action = iota
	Released
)

// status is the on/off state a latching or momentary button maps an
// Action to, before message-type dispatch.
type status uint8

const (
	statusOff status = iota
	statusOn
	statusNone
)

func (b *Button) latch(action Action) status {
	if b.Type == Momentary {
		if action == Pressed {
			return statusOn
		}
		return statusOff
	}
	// Latching: press toggles, release is silent.
	if action == Released {
		return statusNone
	}
	b.State.LatchOn = !b.State.LatchOn
	if b.State.LatchOn {
		return statusOn
	}
	return statusOff
}

func incrMidiID(id uint8) uint8 {
	if id >= 127 {
		return 0
	}
	return id + 1
}

func decrMidiID(id uint8) uint8 {
	if id == 0 {
		return 127
	}
	return id - 1
}

// multiValueIncReset walks step*base upward from base, resetting to base
// once the product would exceed 127.
func (b *Button) multiValueIncReset() uint8 {
	b.State.Step++
	result := uint16(b.State.Step) * uint16(b.Value)
	if result > 127 {
		b.State.Step = 1
		return b.Value
	}
	return uint8(result)
}

// multiValueIncDec is the ping-pong counterpart: step climbs by one per
// press until step*base would exceed 127, then the direction flips and
// step retreats by two before resuming its new direction.
func (b *Button) multiValueIncDec() uint8 {
	if b.State.StepDown {
		if b.State.Step <= 1 {
			b.State.Step = 2
			b.State.StepDown = false
			return uint8(uint16(b.State.Step) * uint16(b.Value))
		}
		b.State.Step--
		return uint8(uint16(b.State.Step) * uint16(b.Value))
	}

	b.State.Step++
	result := uint16(b.State.Step) * uint16(b.Value)
	if result > 127 {
		b.State.StepDown = true
		b.State.Step -= 2
		result = uint16(b.State.Step) * uint16(b.Value)
	}
	return uint8(result)
}

// emission is the message this press/release produced, before channel
// expansion; emit is false when the message type produces nothing (e.g.
// Released on a Pressed-only type).
type emission struct {
	emit    bool
	build   func(channel uint8) []byte
	dropsCh bool // never set: messages with no channel nibble (MMC, system real-time) are repeated per selected channel like the rest
}

// Messages is the lazy, channel-expanding iterator over the MIDI messages
// one button press/release produces (§4.3, §9 "lazy iterators holding a
// mutable borrow").
type Messages struct {
	em             emission
	walker         *chanexpand.Messages
	done           bool
	havePending    bool
	pendingChannel uint8
}

// Handle computes the messages a press/release action produces. The
// button's mutable state (latch flag, multi-value step) advances exactly
// once per call, before channel expansion replicates the resulting bytes
// across every selected channel.
func (b *Button) Handle(action Action) *Messages {
	em := b.dispatch(action)
	if !em.emit {
		return &Messages{done: true}
	}
	return &Messages{em: em, walker: chanexpand.New(b.Channel, 1)}
}

func (b *Button) dispatch(action Action) emission {
	pressedOnly := func(build func(channel uint8) []byte) emission {
		if action != Pressed {
			return emission{}
		}
		return emission{emit: true, build: build}
	}

	switch b.MessageType {
	case Notes:
		st := b.latch(action)
		if st == statusNone {
			return emission{}
		}
		value := b.Value
		if st == statusOff {
			value = 0
		}
		id := b.MidiID
		return emission{emit: true, build: func(ch uint8) []byte { return midimsg.NoteOn(ch, id, value) }}
	case NoteOffOnly:
		id, value := b.MidiID, b.Value
		return pressedOnly(func(ch uint8) []byte { return midimsg.NoteOff(ch, id, value) })
	case ProgramChange:
		id := b.MidiID
		return pressedOnly(func(ch uint8) []byte { return midimsg.ProgramChange(ch, id) })
	case ProgramChangeIncr:
		if action != Pressed {
			return emission{}
		}
		b.MidiID = incrMidiID(b.MidiID)
		id := b.MidiID
		return emission{emit: true, build: func(ch uint8) []byte { return midimsg.ProgramChange(ch, id) }}
	case ProgramChangeDecr:
		if action != Pressed {
			return emission{}
		}
		b.MidiID = decrMidiID(b.MidiID)
		id := b.MidiID
		return emission{emit: true, build: func(ch uint8) []byte { return midimsg.ProgramChange(ch, id) }}
	case ControlChange:
		id, value := b.MidiID, b.Value
		return pressedOnly(func(ch uint8) []byte { return midimsg.ControlChange(ch, id, value) })
	case ControlChangeWithReset:
		st := b.latch(action)
		if st == statusNone {
			return emission{}
		}
		value := b.Value
		if st == statusOff {
			value = 0
		}
		id := b.MidiID
		return emission{emit: true, build: func(ch uint8) []byte { return midimsg.ControlChange(ch, id, value) }}
	case ControlChangeWithValue0:
		id := b.MidiID
		return pressedOnly(func(ch uint8) []byte { return midimsg.ControlChange(ch, id, 0) })
	case MMCStop:
		id := b.MidiID
		return pressedOnly(func(uint8) []byte { return midimsg.MMCSysEx(id, midimsg.MMCStop) })
	case MMCPlay:
		id := b.MidiID
		return pressedOnly(func(uint8) []byte { return midimsg.MMCSysEx(id, midimsg.MMCPlay) })
	case MMCRecord:
		id := b.MidiID
		return pressedOnly(func(uint8) []byte { return midimsg.MMCSysEx(id, midimsg.MMCRecord) })
	case MMCPause:
		id := b.MidiID
		return pressedOnly(func(uint8) []byte { return midimsg.MMCSysEx(id, midimsg.MMCPause) })
	case RealTimeClock:
		return pressedOnly(func(uint8) []byte { return midimsg.SystemRealTime(midimsg.RealTimeClock) })
	case RealTimeStart:
		return pressedOnly(func(uint8) []byte { return midimsg.SystemRealTime(midimsg.RealTimeStart) })
	case RealTimeContinue:
		return pressedOnly(func(uint8) []byte { return midimsg.SystemRealTime(midimsg.RealTimeContinue) })
	case RealTimeStop:
		return pressedOnly(func(uint8) []byte { return midimsg.SystemRealTime(midimsg.RealTimeStop) })
	case RealTimeActiveSensing:
		return pressedOnly(func(uint8) []byte { return midimsg.SystemRealTime(midimsg.RealTimeActiveSensing) })
	case RealTimeSystemReset:
		return pressedOnly(func(uint8) []byte { return midimsg.SystemRealTime(midimsg.RealTimeSystemReset) })
	case MultiValueIncNote:
		if action != Pressed {
			return emission{}
		}
		value := b.multiValueIncReset()
		id := b.MidiID
		return emission{emit: true, build: func(ch uint8) []byte { return midimsg.NoteOn(ch, id, value) }}
	case MultiValueIncCC:
		if action != Pressed {
			return emission{}
		}
		value := b.multiValueIncReset()
		id := b.MidiID
		return emission{emit: true, build: func(ch uint8) []byte { return midimsg.ControlChange(ch, id, value) }}
	case MultiValueDecNote:
		if action != Pressed {
			return emission{}
		}
		value := b.multiValueIncDec()
		id := b.MidiID
		return emission{emit: true, build: func(ch uint8) []byte { return midimsg.NoteOn(ch, id, value) }}
	case MultiValueDecCC:
		if action != Pressed {
			return emission{}
		}
		value := b.multiValueIncDec()
		id := b.MidiID
		return emission{emit: true, build: func(ch uint8) []byte { return midimsg.ControlChange(ch, id, value) }}
	case OpenDeckPresetChange, Reserved, NoMessage, ProgramChangeOffsetIncr, ProgramChangeOffsetDecr, BPMIncr, BPMDecr:
		return emission{}
	default:
		return emission{}
	}
}

// Next writes the next message into buf, returning the number of bytes
// written. ok is false once the generator is exhausted; err is
// ErrBufferOverflow if buf was too small (the generator's cursor is not
// advanced in that case, so the same message can be retried).
func (m *Messages) Next(buf []byte) (n int, ok bool, err error) {
	if m.done {
		return 0, false, nil
	}
	if !m.havePending {
		channel, _, more := m.walker.Next()
		if !more {
			m.done = true
			return 0, false, nil
		}
		m.pendingChannel = channel
		m.havePending = true
	}
	data := m.em.build(m.pendingChannel)
	if len(buf) < len(data) {
		return 0, false, ErrBufferOverflow
	}
	m.havePending = false
	return copy(buf, data), true, nil
}
