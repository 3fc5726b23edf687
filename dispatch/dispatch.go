// Package dispatch implements the SysEx request router: it parses
// incoming frames, mutates or reads the configuration tree, and renders
// responses in the exact wire-compatible form (§4, §5). It also exposes
// the three hardware event entry points that translate a button press,
// analog reading, or encoder pulse into MIDI messages.
package dispatch

import (
	"github.com/charmbracelet/log"

	"github.com/doismellburning/opendeckd/config"
	"github.com/doismellburning/opendeckd/config/analog"
	"github.com/doismellburning/opendeckd/config/button"
	"github.com/doismellburning/opendeckd/config/encoder"
	"github.com/doismellburning/opendeckd/config/led"
	"github.com/doismellburning/opendeckd/internal/sysex"
)

// valuesPerMessage is the values-per-message count reported by the
// ValuesPerMessage special request. A Get All response is not split
// across frames: processComponent packs one value per component into a
// single data frame, so a block with more than valuesPerMessage
// components yields a frame carrying more values than this.
const valuesPerMessage = 32

// MessageSource is the common shape of every event generator's lazy
// output: button.Messages, analog.Messages, and encoder.Messages all
// satisfy it.
type MessageSource = interface {
	Next(buf []byte) (n int, ok bool, err error)
}

// Dispatcher routes parsed SysEx requests against a configuration tree
// and renders responses.
type Dispatcher struct {
	cfg     *config.Config
	enabled bool
	logger  *log.Logger
}

// New wraps cfg in a Dispatcher. A nil logger falls back to the default
// package logger.
func New(cfg *config.Config, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{cfg: cfg, logger: logger}
}

// ProcessSysex parses one incoming frame and returns the response frames
// it produces (zero, one, or two — a Get All exchange yields a data
// frame followed by a final ACK frame).
func (d *Dispatcher) ProcessSysex(frame []byte) [][]byte {
	req, err := sysex.Parse(frame, sysex.TwoBytes)
	if err != nil {
		if pe, ok := err.(*sysex.ParseError); ok && !pe.Silent {
			d.logger.Warn("rejecting sysex request", "status", pe.Status, "err", pe.Message)
			return [][]byte{sysex.RenderHandshakeError(pe.Status)}
		}
		d.logger.Debug("dropping malformed sysex frame", "err", err)
		return nil
	}

	switch req.Kind {
	case sysex.RequestSpecial:
		return d.dispatchSpecial(req.Special)
	case sysex.RequestConfiguration:
		return d.dispatchConfiguration(req)
	default:
		return nil
	}
}

func (d *Dispatcher) dispatchSpecial(code sysex.SpecialRequestCode) [][]byte {
	switch code {
	case sysex.SpecialBootloaderMode:
		d.cfg.Bootloader()
		return nil
	case sysex.SpecialReboot:
		d.cfg.Reboot()
		return nil
	case sysex.SpecialHandshake:
		d.enabled = true
		return [][]byte{sysex.RenderSpecial(sysex.StatusResponse, sysex.SpecialHandshake)}
	case sysex.SpecialValueSize:
		return [][]byte{sysex.RenderSpecialPayload(sysex.StatusResponse, code, []byte{byte(sysex.TwoBytes)})}
	case sysex.SpecialValuesPerMessage:
		return [][]byte{sysex.RenderSpecialPayload(sysex.StatusResponse, code, []byte{valuesPerMessage})}
	case sysex.SpecialFirmwareVersion:
		return [][]byte{sysex.RenderSpecialPayload(sysex.StatusResponse, code, d.firmwareBytes())}
	case sysex.SpecialHardwareUID:
		return [][]byte{sysex.RenderSpecialPayload(sysex.StatusResponse, code, d.hardwareUIDBytes())}
	case sysex.SpecialFirmwareVersionAndHardwareUUID:
		payload := append(d.firmwareBytes(), d.hardwareUIDBytes()...)
		return [][]byte{sysex.RenderSpecialPayload(sysex.StatusResponse, code, payload)}
	case sysex.SpecialNrOfSupportedComponents:
		counts := d.cfg.Counts()
		payload := append(append(append(
			sysex.PackValue(uint16(counts.Buttons), sysex.TwoBytes),
			sysex.PackValue(uint16(counts.Analogs), sysex.TwoBytes)...),
			sysex.PackValue(uint16(counts.Encoders), sysex.TwoBytes)...),
			sysex.PackValue(uint16(counts.LEDs), sysex.TwoBytes)...)
		return [][]byte{sysex.RenderSpecialPayload(sysex.StatusResponse, code, payload)}
	case sysex.SpecialNrOfSupportedPresets:
		return [][]byte{sysex.RenderSpecialPayload(sysex.StatusResponse, code, []byte{byte(len(d.cfg.Presets))})}
	case sysex.SpecialBootloaderSupport:
		return [][]byte{sysex.RenderSpecialPayload(sysex.StatusResponse, code, []byte{1})}
	case sysex.SpecialFactoryReset:
		d.cfg.FactoryReset()
		return [][]byte{sysex.RenderSpecial(sysex.StatusResponse, sysex.SpecialHandshake)}
	default:
		d.logger.Debug("unhandled special request", "code", code)
		return nil
	}
}

func (d *Dispatcher) firmwareBytes() []byte {
	fw := d.cfg.Firmware
	return []byte{fw.Major, fw.Minor, fw.Revision}
}

func (d *Dispatcher) hardwareUIDBytes() []byte {
	uid := d.cfg.HardwareUID
	return []byte{byte(uid >> 24), byte(uid >> 16), byte(uid >> 8), byte(uid)}
}

func (d *Dispatcher) dispatchConfiguration(req sysex.Request) [][]byte {
	values, forAmount := d.processConfig(req.Wish, req.Amount, req.Block, req.Section, req.Index, req.Values)

	response := sysex.RenderConfiguration(sysex.StatusResponse, req.Wish, forAmount, req.Block, req.Section, req.Index, values, sysex.TwoBytes)
	out := [][]byte{response}

	if req.Amount.Kind == sysex.AmountAll && req.Amount.Part == sysex.PartAllStart {
		ack := sysex.RenderConfiguration(sysex.StatusResponse, req.Wish, sysex.Amount{Kind: sysex.AmountAll, Part: sysex.PartAllAck}, req.Block, req.Section, req.Index, nil, sysex.TwoBytes)
		out = append(out, ack)
	}

	return out
}

// processConfig mutates or reads the config tree for one parsed request,
// returning the values to render and the AMOUNT to echo (an All request
// collapses to Part 0 once answered, per the reference).
func (d *Dispatcher) processConfig(wish sysex.Wish, amount sysex.Amount, block sysex.Block, section uint8, index uint16, newValues []uint16) ([]uint16, sysex.Amount) {
	var values []uint16
	forAmount := amount

	preset := d.cfg.ActivePreset()
	value := uint16(0)
	if len(newValues) > 0 {
		value = newValues[0]
	}

	switch block {
	case sysex.BlockGlobal:
		values = d.processGlobal(wish, section, index, value)
	case sysex.BlockButton:
		values, forAmount = processComponent(wish, amount, section, index, value, preset.Buttons,
			func(b *button.Button, s uint8, v uint16) { b.Set(button.SectionID(s), v) },
			func(b *button.Button, s uint8) uint16 { return b.Get(button.SectionID(s)) })
	case sysex.BlockEncoder:
		values, forAmount = processComponent(wish, amount, section, index, value, preset.Encoders,
			func(e *encoder.Encoder, s uint8, v uint16) { e.Set(encoder.SectionID(s), v) },
			func(e *encoder.Encoder, s uint8) uint16 { return e.Get(encoder.SectionID(s)) })
	case sysex.BlockAnalog:
		values, forAmount = processComponent(wish, amount, section, index, value, preset.Analogs,
			func(a *analog.Analog, s uint8, v uint16) { a.Set(analog.SectionID(s), v) },
			func(a *analog.Analog, s uint8) uint16 { return a.Get(analog.SectionID(s)) })
	case sysex.BlockLed:
		values, forAmount = processComponent(wish, amount, section, index, value, preset.LEDs,
			func(l *led.LED, s uint8, v uint16) { l.Set(led.SectionID(s), v) },
			func(l *led.LED, s uint8) uint16 { return l.Get(led.SectionID(s)) })
	case sysex.BlockDisplay, sysex.BlockTouchscreen:
		// Accepted but carry no stored state in the core.
	}

	return values, forAmount
}

// processComponent implements the Set/Get/Backup fan-out shared by
// every component block: Set mutates the one named index (silently
// skipping an out-of-range index); Get/Backup on Single reads that one
// index, while on All it reads every component in index order and
// collapses the response AMOUNT to Part 0.
func processComponent[T any](
	wish sysex.Wish, amount sysex.Amount, section uint8, index uint16, value uint16,
	components []T,
	set func(*T, uint8, uint16),
	get func(*T, uint8) uint16,
) ([]uint16, sysex.Amount) {
	switch wish {
	case sysex.WishSet:
		if int(index) < len(components) {
			set(&components[index], section, value)
		}
		return nil, amount
	default: // WishGet, WishBackup
		if amount.Kind == sysex.AmountSingle {
			if int(index) >= len(components) {
				return nil, amount
			}
			return []uint16{get(&components[index], section)}, amount
		}
		values := make([]uint16, 0, len(components))
		for i := range components {
			values = append(values, get(&components[i], section))
		}
		return values, sysex.Amount{Kind: sysex.AmountAll, Part: 0}
	}
}

func (d *Dispatcher) processGlobal(wish sysex.Wish, section uint8, index uint16, value uint16) []uint16 {
	// Global addresses two disjoint sub-sections, distinguished by the
	// wire SECTION: 0 selects Midi(key), 1 selects Presets(key), and the
	// wire INDEX carries the key. This
	// mirrors the original's own GlobalSection tagged union, collapsed
	// to a single numeric discriminant since Go has no sum type to
	// pattern-match on here.
	const (
		globalMidi    = 0
		globalPresets = 1
	)

	switch section {
	case globalMidi:
		key := config.MidiKey(index)
		if wish == sysex.WishSet {
			d.cfg.Midi.Set(key, value)
			return nil
		}
		return []uint16{d.cfg.Midi.Get(key)}
	case globalPresets:
		key := config.PresetKey(index)
		if wish == sysex.WishSet {
			d.cfg.Preset.Set(key, value)
			return nil
		}
		return []uint16{d.cfg.Preset.Get(key)}
	default:
		return nil
	}
}

// HandleButton translates a hardware button action for the component at
// index in the active preset into the lazy MIDI message stream it
// yields, or nil if index is out of range.
func (d *Dispatcher) HandleButton(index int, action button.Action) MessageSource {
	b := d.cfg.Button(index)
	if b == nil {
		return nil
	}
	return b.Handle(action)
}

// HandleAnalog translates a raw ADC reading for the analog input at
// index in the active preset into the lazy MIDI message stream it
// yields, or nil if index is out of range.
func (d *Dispatcher) HandleAnalog(index int, raw uint16) MessageSource {
	a := d.cfg.Analog(index)
	if a == nil {
		return nil
	}
	return a.Handle(raw)
}

// HandleEncoder translates a hardware pulse for the encoder at index in
// the active preset into the lazy MIDI message stream it yields, or nil
// if index is out of range.
func (d *Dispatcher) HandleEncoder(index int, direction encoder.Direction) MessageSource {
	e := d.cfg.Encoder(index)
	if e == nil {
		return nil
	}
	return e.Handle(direction)
}
