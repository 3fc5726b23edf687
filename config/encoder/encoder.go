// Package encoder implements the rotary encoder configuration record, its
// section codec, and its pulse-accumulating event generator (§4.5).
package encoder

import "github.com/doismellburning/opendeckd/internal/sysex"

// MessageType enumerates the fifteen encoder message behaviours (§6).
type MessageType uint8

const (
	ControlChange7Fh01h                        MessageType = 0x0
	ControlChange3Fh41h                        MessageType = 0x1
	ControlChange41h01h                        MessageType = 0x2
	ProgramChange                              MessageType = 0x3
	ControlChange                              MessageType = 0x4
	PresetChange                               MessageType = 0x5
	PitchBend                                  MessageType = 0x6
	NRPN7                                      MessageType = 0x7
	NRPN14                                     MessageType = 0x8
	ControlChange14bit                         MessageType = 0x9
	BPM                                        MessageType = 0xA
	SingleNoteWithVariableValue                MessageType = 0xB
	SingleNoteWithFixedValueBothDirections      MessageType = 0xC
	SingleNoteWithFixedValueOneDirection0OtherDirection MessageType = 0xD
	TwoNoteWithFixedValueBothDirections         MessageType = 0xE
)

// Acceleration enumerates the four pulse-to-step acceleration curves.
// The reference misspells this enum ("Accelleration"); the name here is
// corrected but the wire ordinals are unchanged.
type Acceleration uint8

const (
	AccelerationNone   Acceleration = 0
	AccelerationSlow   Acceleration = 1
	AccelerationMedium Acceleration = 2
	AccelerationFast   Acceleration = 3
)

// SectionID identifies one wire section of an Encoder record.
type SectionID uint8

const (
	SectionEnabled        SectionID = 0x0
	SectionInvertState    SectionID = 0x1
	SectionMessageType    SectionID = 0x2
	SectionMidiIDLSB      SectionID = 0x3
	SectionChannel        SectionID = 0x4
	SectionPulsesPerStep  SectionID = 0x5
	SectionAcceleration   SectionID = 0x6
	SectionMidiIDMSB      SectionID = 0x7
	SectionRemoteSync     SectionID = 0x8
	SectionLowerLimit     SectionID = 0x9
	SectionUpperLimit     SectionID = 0xA
	SectionRepeatedValue  SectionID = 0xB
	SectionSecondMidiID   SectionID = 0xC
)

// State is the encoder's runtime accumulator, distinct from its
// configuration (§4.5).
type State struct {
	PulseCount uint8
	Value      uint16
}

// Encoder is one configured rotary encoder slot.
type Encoder struct {
	Enabled        bool
	Inverted       bool
	MessageType    MessageType
	MidiID         uint16
	Channel        sysex.ChannelOrAll
	PulsesPerStep  uint8
	Acceleration   Acceleration
	RemoteSync     bool
	LowerLimit     uint16
	UpperLimit     uint16
	RepeatedValue  bool
	SecondMidiID   uint16
	State          State
}

// New constructs a default encoder whose MIDI id equals its preset
// index, disabled until explicitly configured, with four pulses per step
// and a 0..127 range, matching the reference's defaults.
func New(index uint16) Encoder {
	return Encoder{
		Enabled:       false,
		MessageType:   ControlChange,
		MidiID:        index,
		PulsesPerStep: 4,
		LowerLimit:    0,
		UpperLimit:    127,
	}
}

func boolToWire(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

// Set writes the value of the named section.
func (e *Encoder) Set(id SectionID, value uint16) {
	switch id {
	case SectionEnabled:
		e.Enabled = value > 0
	case SectionInvertState:
		e.Inverted = value > 0
	case SectionMessageType:
		e.MessageType = MessageType(value)
	case SectionMidiIDLSB:
		e.MidiID = value
	case SectionChannel:
		e.Channel = sysex.ChannelOrAllFromWire(value)
	case SectionPulsesPerStep:
		e.PulsesPerStep = uint8(value)
	case SectionAcceleration:
		e.Acceleration = Acceleration(value)
	case SectionRemoteSync:
		e.RemoteSync = value > 0
	case SectionLowerLimit:
		e.LowerLimit = value
	case SectionUpperLimit:
		e.UpperLimit = value
	case SectionRepeatedValue:
		e.RepeatedValue = value > 0
	case SectionSecondMidiID:
		e.SecondMidiID = value
	}
}

// Get reads the raw wire value of the named section. SectionMidiIDMSB is
// unreachable in normal TwoBytes operation and always reads zero.
func (e *Encoder) Get(id SectionID) uint16 {
	switch id {
	case SectionEnabled:
		return boolToWire(e.Enabled)
	case SectionInvertState:
		return boolToWire(e.Inverted)
	case SectionMessageType:
		return uint16(e.MessageType)
	case SectionMidiIDLSB:
		return e.MidiID
	case SectionChannel:
		return e.Channel.Wire()
	case SectionPulsesPerStep:
		return uint16(e.PulsesPerStep)
	case SectionAcceleration:
		return uint16(e.Acceleration)
	case SectionRemoteSync:
		return boolToWire(e.RemoteSync)
	case SectionLowerLimit:
		return e.LowerLimit
	case SectionUpperLimit:
		return e.UpperLimit
	case SectionRepeatedValue:
		return boolToWire(e.RepeatedValue)
	case SectionSecondMidiID:
		return e.SecondMidiID
	}
	return 0
}
