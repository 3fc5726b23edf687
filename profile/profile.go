// Package profile loads an optional YAML device profile: default field
// values for a preset's components plus the device identity reported
// over the special-request plane. This is pure ambient convenience
// around construction — it never reaches into the process_sysex/handle_*
// mutation boundary once the tree is built.
package profile

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/doismellburning/opendeckd/config"
	"github.com/doismellburning/opendeckd/config/analog"
	"github.com/doismellburning/opendeckd/config/button"
	"github.com/doismellburning/opendeckd/config/encoder"
	"github.com/doismellburning/opendeckd/config/led"
	"github.com/doismellburning/opendeckd/internal/sysex"
)

// SearchLocations is tried in order by Load when called with an empty
// path, mirroring the teacher's own multi-location config search.
var SearchLocations = []string{
	"opendeck.yaml",
	"data/opendeck.yaml",
	"../data/opendeck.yaml",
	"/usr/local/share/opendeckd/opendeck.yaml",
	"/usr/share/opendeckd/opendeck.yaml",
}

// Identity is the device identity reported over the special-request
// plane (firmware version triple and hardware UID).
type Identity struct {
	Major       uint8  `yaml:"major"`
	Minor       uint8  `yaml:"minor"`
	Revision    uint8  `yaml:"revision"`
	HardwareUID uint32 `yaml:"hardwareUID"`
}

// ButtonDefault overrides the index-identity default a Button is
// constructed with.
type ButtonDefault struct {
	MessageType uint8 `yaml:"messageType"`
	MidiID      uint8 `yaml:"midiID"`
	Channel     uint8 `yaml:"channel"`
}

// AnalogDefault overrides the index-identity default an Analog is
// constructed with.
type AnalogDefault struct {
	Enabled     bool   `yaml:"enabled"`
	MessageType uint8  `yaml:"messageType"`
	MidiID      uint16 `yaml:"midiID"`
	LowerLimit  uint16 `yaml:"lowerLimit"`
	UpperLimit  uint16 `yaml:"upperLimit"`
}

// EncoderDefault overrides the index-identity default an Encoder is
// constructed with.
type EncoderDefault struct {
	Enabled       bool   `yaml:"enabled"`
	MessageType   uint8  `yaml:"messageType"`
	PulsesPerStep uint8  `yaml:"pulsesPerStep"`
	LowerLimit    uint16 `yaml:"lowerLimit"`
	UpperLimit    uint16 `yaml:"upperLimit"`
}

// LEDDefault overrides the index-identity default an LED is constructed
// with.
type LEDDefault struct {
	ControlType uint8 `yaml:"controlType"`
	RGBEnabled  bool  `yaml:"rgbEnabled"`
}

// Profile is the document shape a device profile YAML file is parsed
// into. Every section is optional; an absent section leaves the
// corresponding components at their plain index-identity defaults.
type Profile struct {
	Identity Identity               `yaml:"identity"`
	Presets  int                    `yaml:"presets"`
	Buttons  map[int]ButtonDefault  `yaml:"buttons"`
	Analogs  map[int]AnalogDefault  `yaml:"analogs"`
	Encoders map[int]EncoderDefault `yaml:"encoders"`
	LEDs     map[int]LEDDefault     `yaml:"leds"`
}

// Load reads and parses a device profile from path. If path is empty,
// Load tries each of SearchLocations in turn and returns the first one
// found; ErrNotFound is returned if none exist.
func Load(path string) (*Profile, error) {
	data, foundAt, err := read(path)
	if err != nil {
		return nil, err
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("profile: parsing %s: %w", foundAt, err)
	}
	return &p, nil
}

// ErrNotFound is returned by Load when no profile file could be located.
var ErrNotFound = fmt.Errorf("profile: no device profile found in any search location")

func read(path string) (data []byte, foundAt string, err error) {
	if path != "" {
		data, err = os.ReadFile(path)
		return data, path, err
	}

	for _, candidate := range SearchLocations {
		f, openErr := os.Open(candidate)
		if openErr != nil {
			continue
		}
		data, err = io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, candidate, err
		}
		return data, candidate, nil
	}

	return nil, "", ErrNotFound
}

// Apply seeds cfg's components with this profile's overrides. It does
// not touch cfg's firmware version or hardware UID; a caller that wants
// Identity applied sets those fields itself. Apply only edits components
// already present; it never resizes anything.
func (p *Profile) Apply(cfg *config.Config) {
	for _, preset := range cfg.Presets {
		for i, def := range p.Buttons {
			if i < 0 || i >= len(preset.Buttons) {
				log.Warn("profile: button index out of range, skipping", "index", i)
				continue
			}
			b := &preset.Buttons[i]
			b.MessageType = button.MessageType(def.MessageType)
			b.MidiID = def.MidiID
			b.Channel = sysex.ChannelOrAllFromWire(uint16(def.Channel))
		}
		for i, def := range p.Analogs {
			if i < 0 || i >= len(preset.Analogs) {
				log.Warn("profile: analog index out of range, skipping", "index", i)
				continue
			}
			a := &preset.Analogs[i]
			a.Enabled = def.Enabled
			a.MessageType = analog.MessageType(def.MessageType)
			a.MidiID = def.MidiID
			a.LowerLimit = def.LowerLimit
			a.UpperLimit = def.UpperLimit
		}
		for i, def := range p.Encoders {
			if i < 0 || i >= len(preset.Encoders) {
				log.Warn("profile: encoder index out of range, skipping", "index", i)
				continue
			}
			e := &preset.Encoders[i]
			e.Enabled = def.Enabled
			e.MessageType = encoder.MessageType(def.MessageType)
			e.PulsesPerStep = def.PulsesPerStep
			e.LowerLimit = def.LowerLimit
			e.UpperLimit = def.UpperLimit
		}
		for i, def := range p.LEDs {
			if i < 0 || i >= len(preset.LEDs) {
				log.Warn("profile: LED index out of range, skipping", "index", i)
				continue
			}
			l := &preset.LEDs[i]
			l.RGBEnabled = def.RGBEnabled
			l.ControlType = led.ControlType(def.ControlType)
		}
	}
}
