// Package analog implements the analog (potentiometer/FSR) configuration
// record, its section codec, its ADC scaling pipeline, and its event
// generator (§4.4).
package analog

import "github.com/doismellburning/opendeckd/internal/sysex"

// MessageType enumerates the eight analog message behaviours (§6).
type MessageType uint8

const (
	CC7       MessageType = 0
	Note      MessageType = 1
	FSR       MessageType = 2
	Button    MessageType = 3
	NRPN7     MessageType = 4
	NRPN14    MessageType = 5
	PitchBend MessageType = 6
	CC14      MessageType = 7
)

// SectionID identifies one wire section of an Analog record. The MSB
// slots (4, 6, 8) are reserved for the OneByte protocol and are never
// used by this module, which always encodes with TwoBytes.
type SectionID uint8

const (
	SectionEnabled          SectionID = 0
	SectionInvertState      SectionID = 1
	SectionMessageType      SectionID = 2
	SectionMidiIDLSB        SectionID = 3
	SectionLowerCCLimitLSB  SectionID = 5
	SectionUpperCCLimitLSB  SectionID = 7
	SectionChannel          SectionID = 9
	SectionLowerADCOffset   SectionID = 0xA
	SectionUpperADCOffset   SectionID = 0xB
)

// Analog is one configured analog input slot.
type Analog struct {
	Enabled        bool
	Inverted       bool
	MessageType    MessageType
	MidiID         uint16
	LowerLimit     uint16
	UpperLimit     uint16
	Channel        sysex.ChannelOrAll
	LowerADCOffset uint8 // percent, 0..100
	UpperADCOffset uint8 // percent, 0..100
}

// New constructs a default-enabled analog input whose MIDI id equals its
// preset index, with full-range limits and no ADC trim.
func New(index uint16) Analog {
	return Analog{
		Enabled:    true,
		MessageType: CC7,
		MidiID:     index,
		LowerLimit: 0,
		UpperLimit: 127,
	}
}

// Set writes the value of the named section.
func (a *Analog) Set(id SectionID, value uint16) {
	switch id {
	case SectionEnabled:
		a.Enabled = value > 0
	case SectionInvertState:
		a.Inverted = value > 0
	case SectionMessageType:
		a.MessageType = MessageType(value)
	case SectionMidiIDLSB:
		a.MidiID = value
	case SectionLowerCCLimitLSB:
		a.LowerLimit = value
	case SectionUpperCCLimitLSB:
		a.UpperLimit = value
	case SectionChannel:
		a.Channel = sysex.ChannelOrAllFromWire(value)
	case SectionLowerADCOffset:
		a.LowerADCOffset = uint8(value)
	case SectionUpperADCOffset:
		a.UpperADCOffset = uint8(value)
	}
}

// Get reads the raw wire value of the named section.
func (a *Analog) Get(id SectionID) uint16 {
	switch id {
	case SectionEnabled:
		return boolToWire(a.Enabled)
	case SectionInvertState:
		return boolToWire(a.Inverted)
	case SectionMessageType:
		return uint16(a.MessageType)
	case SectionMidiIDLSB:
		return a.MidiID
	case SectionLowerCCLimitLSB:
		return a.LowerLimit
	case SectionUpperCCLimitLSB:
		return a.UpperLimit
	case SectionChannel:
		return a.Channel.Wire()
	case SectionLowerADCOffset:
		return uint16(a.LowerADCOffset)
	case SectionUpperADCOffset:
		return uint16(a.UpperADCOffset)
	}
	return 0
}

func boolToWire(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

// Scale runs the three-stage ADC pipeline (invert, offset-trim, linear
// scale) on a raw 0..4095 reading. Implemented with integer arithmetic
// through an int64 accumulator to avoid overflow on 4095*upper_limit,
// matching the reference's endpoint behaviour exactly (§8, §9(a)).
func (a *Analog) Scale(raw uint16) uint16 {
	const adcMax = 4095

	input := int64(raw)
	if a.Inverted {
		input = adcMax - input
	}

	lowerLimit, upperLimit := int64(a.LowerLimit), int64(a.UpperLimit)
	if lowerLimit > upperLimit {
		lowerLimit, upperLimit = upperLimit, lowerLimit
	}

	lowerOffset, upperOffset := int64(a.LowerADCOffset), int64(a.UpperADCOffset)
	min := adcMax * lowerOffset / 100
	max := adcMax - adcMax*upperOffset/100

	switch {
	case input < min:
		return uint16(lowerLimit)
	case input > max:
		return uint16(upperLimit)
	case max == min:
		return uint16(lowerLimit)
	default:
		scaled := lowerLimit + (input-min)*(upperLimit-lowerLimit)/(max-min)
		return uint16(scaled)
	}
}
