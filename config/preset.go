// Package config implements the configuration tree root: global
// settings, the fixed-size preset vector, and the per-preset component
// vectors (§3).
package config

import (
	"github.com/doismellburning/opendeckd/config/analog"
	"github.com/doismellburning/opendeckd/config/button"
	"github.com/doismellburning/opendeckd/config/encoder"
	"github.com/doismellburning/opendeckd/config/led"
)

// Preset is one fixed-size, ordered collection of component vectors.
// Capacities are fixed at construction and never resized.
type Preset struct {
	Buttons  []button.Button
	Analogs  []analog.Analog
	Encoders []encoder.Encoder
	LEDs     []led.LED
}

// NewPreset builds a preset with b buttons, a analogs, e encoders, and
// l LEDs, each pre-populated with its default-constructed, index-seeded
// component.
func NewPreset(b, a, e, l int) Preset {
	p := Preset{
		Buttons:  make([]button.Button, b),
		Analogs:  make([]analog.Analog, a),
		Encoders: make([]encoder.Encoder, e),
		LEDs:     make([]led.LED, l),
	}
	for i := range p.Buttons {
		p.Buttons[i] = button.New(uint8(i))
	}
	for i := range p.Analogs {
		p.Analogs[i] = analog.New(uint16(i))
	}
	for i := range p.Encoders {
		p.Encoders[i] = encoder.New(uint16(i))
	}
	for i := range p.LEDs {
		p.LEDs[i] = led.New(uint16(i))
	}
	return p
}

// Reset restores every component in the preset to its index-identity
// default in place, without touching the slices' backing arrays (§5's
// no-reallocation invariant, exercised by the FactoryReset special
// request).
func (p *Preset) Reset() {
	for i := range p.Buttons {
		p.Buttons[i] = button.New(uint8(i))
	}
	for i := range p.Analogs {
		p.Analogs[i] = analog.New(uint16(i))
	}
	for i := range p.Encoders {
		p.Encoders[i] = encoder.New(uint16(i))
	}
	for i := range p.LEDs {
		p.LEDs[i] = led.New(uint16(i))
	}
}
