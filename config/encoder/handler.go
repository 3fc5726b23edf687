package encoder

import (
	"errors"

	"github.com/doismellburning/opendeckd/internal/chanexpand"
	"github.com/doismellburning/opendeckd/internal/midimsg"
)

// ErrBufferOverflow is returned by Messages.Next when buf is too small;
// the generator's cursor is left unchanged.
var ErrBufferOverflow = errors.New("encoder: buffer too small for message")

// Direction is the hardware rotation direction reported for a single
// pulse.
type Direction uint8

const (
	CW  Direction = 0
	CCW Direction = 1
)

func (d Direction) flip() Direction {
	if d == CW {
		return CCW
	}
	return CW
}

// pulseCountReached accumulates one pulse and reports whether enough
// pulses have landed to emit a step, resetting the accumulator when it
// has (§4.5).
func (e *Encoder) pulseCountReached() bool {
	e.State.PulseCount++
	threshold := e.PulsesPerStep
	if threshold == 0 {
		threshold = 1
	}
	if e.State.PulseCount >= threshold {
		e.State.PulseCount = 0
		return true
	}
	return false
}

// increment nudges the accumulated value by one step in direction and
// clamps it into [LowerLimit, UpperLimit].
func (e *Encoder) increment(direction Direction) {
	delta := int32(1)
	if direction == CCW {
		delta = -1
	}

	lower, upper := int32(e.LowerLimit), int32(e.UpperLimit)
	if lower > upper {
		lower, upper = upper, lower
	}

	next := int32(e.State.Value) + delta
	switch {
	case next < lower:
		next = lower
	case next > upper:
		next = upper
	}
	e.State.Value = uint16(next)
}

func nrOfMessages(mt MessageType) uint8 {
	if mt == ControlChange14bit {
		return 2
	}
	return 1
}

// Messages is the lazy, channel-expanding iterator producing the MIDI
// messages a single encoder tick yields.
type Messages struct {
	encoder        *Encoder
	direction      Direction
	walker         *chanexpand.Messages
	done           bool
	havePending    bool
	pendingChannel uint8
	pendingIndex   uint8
}

// Handle accumulates one hardware pulse in direction and returns the
// generator for any resulting messages. Inversion flips the reported
// direction before it reaches the dispatch logic below.
func (e *Encoder) Handle(direction Direction) *Messages {
	if !e.Enabled {
		return &Messages{done: true}
	}

	if e.Inverted {
		direction = direction.flip()
	}

	if !e.pulseCountReached() {
		return &Messages{done: true}
	}

	switch e.MessageType {
	case ControlChange7Fh01h, ControlChange3Fh41h, ControlChange41h01h,
		ControlChange, PitchBend, ControlChange14bit:
		// Active types, handled below.
	default:
		// ProgramChange, PresetChange, NRPN7, NRPN14, BPM, and all
		// note-based variants generate no event from this handler.
		return &Messages{done: true}
	}

	if e.MessageType == ControlChange || e.MessageType == PitchBend || e.MessageType == ControlChange14bit {
		e.increment(direction)
	}

	n := nrOfMessages(e.MessageType)
	return &Messages{
		encoder:   e,
		direction: direction,
		walker:    chanexpand.New(e.Channel, n),
	}
}

func (m *Messages) build(channel, index uint8) []byte {
	e := m.encoder
	switch e.MessageType {
	case ControlChange7Fh01h:
		if m.direction == CW {
			return midimsg.ControlChange(channel, uint8(e.MidiID), 1)
		}
		return midimsg.ControlChange(channel, uint8(e.MidiID), 0x7F)
	case ControlChange3Fh41h:
		if m.direction == CW {
			return midimsg.ControlChange(channel, uint8(e.MidiID), 0x3F)
		}
		return midimsg.ControlChange(channel, uint8(e.MidiID), 0x41)
	case ControlChange41h01h:
		if m.direction == CW {
			return midimsg.ControlChange(channel, uint8(e.MidiID), 0x41)
		}
		return midimsg.ControlChange(channel, uint8(e.MidiID), 1)
	case ControlChange:
		return midimsg.ControlChange(channel, uint8(e.MidiID), uint8(e.State.Value&0x7F))
	case PitchBend:
		return midimsg.PitchBend(channel, e.State.Value)
	case ControlChange14bit:
		hr := chanexpand.NewHiRes(e.State.Value)
		value, id := hr.ControlChange(index, e.MidiID)
		return midimsg.ControlChange(channel, id, value)
	default:
		return nil
	}
}

// Next writes the next message into buf. See button.Messages.Next for the
// exact (n, ok, err) contract.
func (m *Messages) Next(buf []byte) (n int, ok bool, err error) {
	if m.done {
		return 0, false, nil
	}
	if !m.havePending {
		channel, index, more := m.walker.Next()
		if !more {
			m.done = true
			return 0, false, nil
		}
		m.pendingChannel, m.pendingIndex = channel, index
		m.havePending = true
	}
	data := m.build(m.pendingChannel, m.pendingIndex)
	if len(buf) < len(data) {
		return 0, false, ErrBufferOverflow
	}
	m.havePending = false
	return copy(buf, data), true, nil
}
