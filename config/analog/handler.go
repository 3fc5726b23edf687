package analog

import (
	"errors"

	"github.com/doismellburning/opendeckd/internal/chanexpand"
	"github.com/doismellburning/opendeckd/internal/midimsg"
)

// ErrBufferOverflow is returned by Messages.Next when buf is too small;
// the generator's cursor is left unchanged.
var ErrBufferOverflow = errors.New("analog: buffer too small for message")

func nrOfMessages(mt MessageType) uint8 {
	switch mt {
	case Button:
		return 0
	case CC7, PitchBend, Note, FSR:
		return 1
	case CC14:
		return 2
	case NRPN7:
		return 3
	case NRPN14:
		return 4
	default:
		return 0
	}
}

// Messages is the lazy, channel-expanding iterator producing the MIDI
// messages a single scaled ADC reading yields (§4.4).
type Messages struct {
	analog         *Analog
	value          uint16
	walker         *chanexpand.Messages
	done           bool
	havePending    bool
	pendingChannel uint8
	pendingIndex   uint8
}

// Handle scales raw and returns the generator for the resulting messages.
func (a *Analog) Handle(raw uint16) *Messages {
	if !a.Enabled {
		return &Messages{done: true}
	}
	value := a.Scale(raw)
	n := nrOfMessages(a.MessageType)
	if n == 0 {
		return &Messages{done: true}
	}
	return &Messages{analog: a, value: value, walker: chanexpand.New(a.Channel, n)}
}

func (m *Messages) build(channel, index uint8) []byte {
	a := m.analog
	switch a.MessageType {
	case CC7:
		return midimsg.ControlChange(channel, uint8(a.MidiID), uint8(m.value&0x7F))
	case CC14:
		hr := chanexpand.NewHiRes(m.value)
		value, id := hr.ControlChange(index, a.MidiID)
		return midimsg.ControlChange(channel, id, value)
	case PitchBend:
		return midimsg.PitchBend(channel, m.value)
	case Note, FSR:
		return midimsg.NoteOn(channel, uint8(a.MidiID), uint8(m.value&0x7F))
	case NRPN7:
		idLSB := uint8(a.MidiID & 0x7F)
		idMSB := uint8((a.MidiID >> 7) & 0x7F)
		valueLSB := uint8(m.value & 0x7F)
		switch index {
		case 0:
			return midimsg.ControlChange(channel, 98, idLSB)
		case 1:
			return midimsg.ControlChange(channel, 99, idMSB)
		default:
			return midimsg.ControlChange(channel, 38, valueLSB)
		}
	case NRPN14:
		idLSB := uint8(a.MidiID & 0x7F)
		idMSB := uint8((a.MidiID >> 7) & 0x7F)
		valueLSB := uint8(m.value & 0x7F)
		valueMSB := uint8((m.value >> 7) & 0x7F)
		switch index {
		case 0:
			return midimsg.ControlChange(channel, 98, idLSB)
		case 1:
			return midimsg.ControlChange(channel, 99, idMSB)
		case 2:
			return midimsg.ControlChange(channel, 38, valueLSB)
		default:
			return midimsg.ControlChange(channel, 6, valueMSB)
		}
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
