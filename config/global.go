package config

// MidiKey selects one of the six global MIDI settings addressed by a
// Global(Midi(key, value)) request (§4.2).
type MidiKey uint8

const (
	MidiUseGlobalChannel  MidiKey = 0
	MidiGlobalChannel     MidiKey = 1
	MidiStandardNoteOff   MidiKey = 2
	MidiDinMidi           MidiKey = 3
	MidiBleMidi           MidiKey = 4
	MidiUSBToUSBThrough   MidiKey = 5
)

// GlobalMidi holds the device-wide MIDI settings.
type GlobalMidi struct {
	UseGlobalChannel bool
	GlobalChannel    uint8
	StandardNoteOff  bool
	DinMidi          bool
	BleMidi          bool
	USBToUSBThrough  bool
}

func boolToWire(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

// Set writes the value of the named MIDI setting.
func (m *GlobalMidi) Set(key MidiKey, value uint16) {
	switch key {
	case MidiUseGlobalChannel:
		m.UseGlobalChannel = value > 0
	case MidiGlobalChannel:
		m.GlobalChannel = uint8(value)
	case MidiStandardNoteOff:
		m.StandardNoteOff = value > 0
	case MidiDinMidi:
		m.DinMidi = value > 0
	case MidiBleMidi:
		m.BleMidi = value > 0
	case MidiUSBToUSBThrough:
		m.USBToUSBThrough = value > 0
	}
}

// Get reads the raw wire value of the named MIDI setting.
func (m *GlobalMidi) Get(key MidiKey) uint16 {
	switch key {
	case MidiUseGlobalChannel:
		return boolToWire(m.UseGlobalChannel)
	case MidiGlobalChannel:
		return uint16(m.GlobalChannel)
	case MidiStandardNoteOff:
		return boolToWire(m.StandardNoteOff)
	case MidiDinMidi:
		return boolToWire(m.DinMidi)
	case MidiBleMidi:
		return boolToWire(m.BleMidi)
	case MidiUSBToUSBThrough:
		return boolToWire(m.USBToUSBThrough)
	}
	return 0
}

// PresetKey selects one of the four global preset settings addressed by
// a Global(Presets(index, value)) request (§4.2).
type PresetKey uint8

const (
	PresetActive            PresetKey = 0
	PresetPreservation       PresetKey = 1
	PresetForceValueRefresh  PresetKey = 2
	PresetEnableMidiChange   PresetKey = 3
)

// GlobalPreset holds the device-wide preset-switching settings.
type GlobalPreset struct {
	ActiveIndex       uint8
	PreservePreset    bool
	ForceValueRefresh bool
	EnableMidiChange  bool
}

// Set writes the value of the named preset setting. Setting Active
// switches which preset subsequent event methods operate on. The index
// is stored as given, without clamping to the tree's preset capacity;
// Config.ActivePreset clamps it when reading.
func (p *GlobalPreset) Set(key PresetKey, value uint16) {
	switch key {
	case PresetActive:
		p.ActiveIndex = uint8(value)
	case PresetPreservation:
		p.PreservePreset = value > 0
	case PresetForceValueRefresh:
		p.ForceValueRefresh = value > 0
	case PresetEnableMidiChange:
		p.EnableMidiChange = value > 0
	}
}

// Get reads the raw wire value of the named preset setting.
func (p *GlobalPreset) Get(key PresetKey) uint16 {
	switch key {
	case PresetActive:
		return uint16(p.ActiveIndex)
	case PresetPreservation:
		return boolToWire(p.PreservePreset)
	case PresetForceValueRefresh:
		return boolToWire(p.ForceValueRefresh)
	case PresetEnableMidiChange:
		return boolToWire(p.EnableMidiChange)
	}
	return 0
}
