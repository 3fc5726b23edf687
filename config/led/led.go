// Package led implements the LED configuration record and its section
// codec. LEDs are configuration-plane only: there is no hardware event
// generator, since an LED is driven by incoming MIDI, not by a local
// input (§4, §6).
package led

import "github.com/doismellburning/opendeckd/internal/sysex"

// Color enumerates the eight fixed LED colours.
type Color uint8

const (
	Off     Color = 0
	Red     Color = 1
	Green   Color = 2
	Yellow  Color = 3
	Blue    Color = 4
	Magenta Color = 5
	Cyan    Color = 6
	White   Color = 7
)

// ControlType enumerates how an LED responds to incoming MIDI.
type ControlType uint8

const (
	MidiInNoteSingleValue ControlType = 0
	LocalNoteSingleValue  ControlType = 1
	MidiInCCSingleValue   ControlType = 2
	LocalCCSingleValue    ControlType = 3
	ProgramChange         ControlType = 4
	PresetChange          ControlType = 5
	MidiInNoteMultiValue  ControlType = 6
	LocalNoteMultiValue   ControlType = 7
	MidiInCCMultiValue    ControlType = 8
	LocalCCMultiValue     ControlType = 9
	Static                ControlType = 10
)

// SectionID identifies one wire section of an LED record. Global is
// accepted on the wire but carries no per-LED state and is a no-op on
// both Set and Get.
type SectionID uint8

const (
	SectionColorTesting    SectionID = 0
	SectionBlinkTesting    SectionID = 1
	SectionGlobal          SectionID = 2
	SectionActivationID    SectionID = 3
	SectionRGBEnabled      SectionID = 4
	SectionControlType     SectionID = 5
	SectionActivationValue SectionID = 6
	SectionChannel         SectionID = 7
)

// LED is one configured LED slot.
type LED struct {
	ColorTesting    bool
	BlinkTesting    bool
	ActivationID    uint16
	ActivationValue uint16
	RGBEnabled      bool
	ControlType     ControlType
	Channel         sysex.ChannelOrAll
}

// New constructs a default LED whose activation id equals its preset
// index, responding to incoming note messages.
func New(index uint16) LED {
	return LED{
		ActivationID: index,
		ControlType:  MidiInNoteSingleValue,
		RGBEnabled:   true,
	}
}

func boolToWire(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

// Set writes the value of the named section.
func (l *LED) Set(id SectionID, value uint16) {
	switch id {
	case SectionColorTesting:
		l.ColorTesting = value > 0
	case SectionBlinkTesting:
		l.BlinkTesting = value > 0
	case SectionActivationID:
		l.ActivationID = value
	case SectionRGBEnabled:
		l.RGBEnabled = value > 0
	case SectionControlType:
		l.ControlType = ControlType(value)
	case SectionActivationValue:
		l.ActivationValue = value
	case SectionChannel:
		l.Channel = sysex.ChannelOrAllFromWire(value)
	}
}

// Get reads the raw wire value of the named section.
func (l *LED) Get(id SectionID) uint16 {
	switch id {
	case SectionColorTesting:
		return boolToWire(l.ColorTesting)
	case SectionBlinkTesting:
		return boolToWire(l.BlinkTesting)
	case SectionActivationID:
		return l.ActivationID
	case SectionRGBEnabled:
		return boolToWire(l.RGBEnabled)
	case SectionControlType:
		return uint16(l.ControlType)
	case SectionActivationValue:
		return l.ActivationValue
	case SectionChannel:
		return l.Channel.Wire()
	}
	return 0
}
