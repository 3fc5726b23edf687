// Package button implements the button configuration record, its section
// codec, and its event generator (§4.3).
package button

import "github.com/doismellburning/opendeckd/internal/sysex"

// Type selects whether the button latches or follows the raw press state.
type Type uint8

const (
	Momentary Type = 0
	Latching  Type = 1
)

// MessageType enumerates the 29 wire-ordinal button behaviours (§6).
type MessageType uint8

const (
	Notes                     MessageType = 0x00
	ProgramChange              MessageType = 0x01
	ControlChange              MessageType = 0x02
	ControlChangeWithReset     MessageType = 0x03
	MMCStop                    MessageType = 0x04
	MMCPlay                    MessageType = 0x05
	MMCRecord                  MessageType = 0x06
	MMCPause                   MessageType = 0x07
	RealTimeClock              MessageType = 0x08
	RealTimeStart              MessageType = 0x09
	RealTimeContinue           MessageType = 0x0A
	RealTimeStop               MessageType = 0x0B
	RealTimeActiveSensing      MessageType = 0x0C
	RealTimeSystemReset        MessageType = 0x0D
	ProgramChangeIncr          MessageType = 0x0E
	ProgramChangeDecr          MessageType = 0x0F
	NoMessage                  MessageType = 0x10
	OpenDeckPresetChange       MessageType = 0x11
	MultiValueIncNote          MessageType = 0x12
	MultiValueDecNote          MessageType = 0x13
	MultiValueIncCC            MessageType = 0x14
	MultiValueDecCC            MessageType = 0x15
	NoteOffOnly                MessageType = 0x16
	ControlChangeWithValue0    MessageType = 0x17
	Reserved                   MessageType = 0x18
	ProgramChangeOffsetIncr    MessageType = 0x19
	ProgramChangeOffsetDecr    MessageType = 0x1A
	BPMIncr                    MessageType = 0x1B
	BPMDecr                    MessageType = 0x1C
)

// SectionID identifies one of the five wire sections of a Button record.
type SectionID uint8

const (
	SectionType        SectionID = 0
	SectionMessageType SectionID = 1
	SectionMidiID      SectionID = 2
	SectionValue       SectionID = 3
	SectionChannel     SectionID = 4
)

// State is the mutable runtime state the event generator advances.
type State struct {
	LatchOn  bool
	Step     uint8
	StepDown bool
}

// Button is one configured button slot.
type Button struct {
	Type        Type
	MessageType MessageType
	MidiID      uint8
	Value       uint8
	Channel     sysex.ChannelOrAll
	State       State
}

// New constructs a default button whose MIDI id equals its preset index.
func New(index uint8) Button {
	return Button{
		Type:        Momentary,
		MessageType: Notes,
		MidiID:      index,
		Value:       1,
	}
}

// Set writes the value of the named section, per the §6 decode convention
// (bool fields decode as value > 0).
func (b *Button) Set(id SectionID, value uint16) {
	switch id {
	case SectionType:
		b.Type = Type(value)
	case SectionMessageType:
		b.MessageType = MessageType(value)
	case SectionMidiID:
		b.MidiID = uint8(value)
	case SectionValue:
		b.Value = uint8(value)
	case SectionChannel:
		b.Channel = sysex.ChannelOrAllFromWire(value)
	}
}

// Get reads the raw wire value of the named section.
func (b *Button) Get(id SectionID) uint16 {
	switch id {
	case SectionType:
		return uint16(b.Type)
	case SectionMessageType:
		return uint16(b.MessageType)
	case SectionMidiID:
		return uint16(b.MidiID)
	case SectionValue:
		return uint16(b.Value)
	case SectionChannel:
		return b.Channel.Wire()
	}
	return 0
}
