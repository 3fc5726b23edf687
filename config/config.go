package config

import (
	"github.com/doismellburning/opendeckd/config/analog"
	"github.com/doismellburning/opendeckd/config/button"
	"github.com/doismellburning/opendeckd/config/encoder"
	"github.com/doismellburning/opendeckd/config/led"
)

// FirmwareVersion is the major.minor.revision triple reported by the
// FirmwareVersion special request.
type FirmwareVersion struct {
	Major    uint8
	Minor    uint8
	Revision uint8
}

// Callbacks bundles the two true side effects the tree can trigger. Both
// are void and not expected to return: a host that implements Reboot by
// actually resetting never reaches the call after it.
type Callbacks struct {
	Reboot     func()
	Bootloader func()
}

// Config is the configuration tree root: global settings, a fixed-size
// preset vector, firmware identity, and the reboot/bootloader callbacks.
// Capacities are fixed at construction and never resized (§3).
type Config struct {
	Midi    GlobalMidi
	Preset  GlobalPreset
	Presets []Preset

	Firmware    FirmwareVersion
	HardwareUID uint32

	callbacks Callbacks
}

// Capacities bundles the five compile-time-fixed vector sizes: P presets,
// each with B buttons, A analogs, E encoders, and L LEDs.
type Capacities struct {
	Presets  int
	Buttons  int
	Analogs  int
	Encoders int
	LEDs     int
}

// New builds a configuration tree with the given capacities, firmware
// identity, hardware UID, and callbacks. Every preset slot is
// pre-populated with default-constructed, index-seeded components.
func New(capacities Capacities, fw FirmwareVersion, hardwareUID uint32, cb Callbacks) *Config {
	presets := make([]Preset, capacities.Presets)
	for i := range presets {
		presets[i] = NewPreset(capacities.Buttons, capacities.Analogs, capacities.Encoders, capacities.LEDs)
	}
	return &Config{
		Presets:     presets,
		Firmware:    fw,
		HardwareUID: hardwareUID,
		callbacks:   cb,
	}
}

// ActivePreset returns the preset currently selected by Global.Preset's
// ActiveIndex, clamped to the tree's preset capacity. The global section
// setter (§4.2) stores ActiveIndex unclamped, so the clamp happens here,
// on the single read path every event method shares.
func (c *Config) ActivePreset() *Preset {
	idx := int(c.Preset.ActiveIndex)
	if idx >= len(c.Presets) {
		idx = len(c.Presets) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return &c.Presets[idx]
}

// Button returns the button at index in the active preset, or nil if
// index is out of range (§3 invariant: out-of-range component indices are
// a silent skip, never an error).
func (c *Config) Button(index int) *button.Button {
	p := c.ActivePreset()
	if index < 0 || index >= len(p.Buttons) {
		return nil
	}
	return &p.Buttons[index]
}

// Analog returns the analog input at index in the active preset, or nil
// if index is out of range.
func (c *Config) Analog(index int) *analog.Analog {
	p := c.ActivePreset()
	if index < 0 || index >= len(p.Analogs) {
		return nil
	}
	return &p.Analogs[index]
}

// Encoder returns the encoder at index in the active preset, or nil if
// index is out of range.
func (c *Config) Encoder(index int) *encoder.Encoder {
	p := c.ActivePreset()
	if index < 0 || index >= len(p.Encoders) {
		return nil
	}
	return &p.Encoders[index]
}

// LED returns the LED at index in the active preset, or nil if index is
// out of range.
func (c *Config) LED(index int) *led.LED {
	p := c.ActivePreset()
	if index < 0 || index >= len(p.LEDs) {
		return nil
	}
	return &p.LEDs[index]
}

// Reboot invokes the host's reboot callback, if one was supplied.
func (c *Config) Reboot() {
	if c.callbacks.Reboot != nil {
		c.callbacks.Reboot()
	}
}

// Bootloader invokes the host's bootloader-entry callback, if one was
// supplied.
func (c *Config) Bootloader() {
	if c.callbacks.Bootloader != nil {
		c.callbacks.Bootloader()
	}
}

// FactoryReset restores every preset's components to their
// index-identity defaults in place.
func (c *Config) FactoryReset() {
	for i := range c.Presets {
		c.Presets[i].Reset()
	}
}

// ComponentCounts reports the fixed per-preset capacities, used to
// answer the NrOfSupportedComponents special request.
type ComponentCounts struct {
	Buttons  int
	Analogs  int
	Encoders int
	LEDs     int
}

// Counts reports the per-preset component capacities.
func (c *Config) Counts() ComponentCounts {
	if len(c.Presets) == 0 {
		return ComponentCounts{}
	}
	p := &c.Presets[0]
	return ComponentCounts{
		Buttons:  len(p.Buttons),
		Analogs:  len(p.Analogs),
		Encoders: len(p.Encoders),
		LEDs:     len(p.LEDs),
	}
}
