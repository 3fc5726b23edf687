// Package backup implements the lazy configuration backup walk (§4.6): a
// restartable-from-start-only iterator that yields one rendered SysEx
// frame per call, bracketed by opening and closing Special(Backup)
// marker frames, covering every preset's Global(Presets) selector
// followed by its buttons, encoders, analogs, and LEDs in that order.
package backup

import (
	"github.com/doismellburning/opendeckd/config"
	"github.com/doismellburning/opendeckd/config/analog"
	"github.com/doismellburning/opendeckd/config/button"
	"github.com/doismellburning/opendeckd/config/encoder"
	"github.com/doismellburning/opendeckd/config/led"
	"github.com/doismellburning/opendeckd/internal/sysex"
)

// state names the iterator's position in the bracketed walk.
type state uint8

const (
	stateOpening state = iota
	statePresetSelector
	stateButtons
	stateEncoders
	stateAnalogs
	stateLEDs
	stateClosing
	stateDone
)

// Iterator walks an entire configuration tree's backup, one rendered
// frame per Next call. It is restartable only by constructing a new
// Iterator with New: there is no rewind.
type Iterator struct {
	cfg *config.Config
	st  state

	presetIndex int

	buttonIdx  int
	buttonIt   *button.BackupIterator
	encoderIdx int
	encoderIt  *encoder.BackupIterator
	analogIdx  int
	analogIt   *analog.BackupIterator
	ledIdx     int
	ledIt      *led.BackupIterator
}

// New starts a fresh backup walk over cfg.
func New(cfg *config.Config) *Iterator {
	return &Iterator{cfg: cfg, st: stateOpening}
}

// Next renders and returns the next frame of the walk, returning ok=false
// once the walk is complete (after the closing marker has been
// returned).
func (it *Iterator) Next() (frame []byte, ok bool) {
	switch it.st {
	case stateOpening:
		it.st = statePresetSelector
		return sysex.RenderSpecial(sysex.StatusResponse, sysex.SpecialBackup), true

	case statePresetSelector:
		if it.presetIndex >= len(it.cfg.Presets) {
			it.st = stateClosing
			return it.Next()
		}
		it.st = stateButtons
		it.buttonIt = nil
		frame = sysex.RenderConfiguration(
			sysex.StatusResponse, sysex.WishSet, sysex.Amount{Kind: sysex.AmountSingle},
			sysex.BlockGlobal, 1, uint16(config.PresetActive), []uint16{uint16(it.presetIndex)}, sysex.TwoBytes,
		)
		return frame, true

	case stateButtons:
		preset := &it.cfg.Presets[it.presetIndex]
		if it.buttonIt == nil {
			if it.buttonIdx >= len(preset.Buttons) {
				it.st = stateEncoders
				it.encoderIt = nil
				return it.Next()
			}
			it.buttonIt = button.NewBackupIterator(uint16(it.buttonIdx))
		}
		section, value, more := it.buttonIt.Next(&preset.Buttons[it.buttonIdx])
		if !more {
			it.buttonIdx++
			it.buttonIt = nil
			return it.Next()
		}
		return renderComponent(sysex.BlockButton, uint8(section), uint16(it.buttonIdx), value), true

	case stateEncoders:
		preset := &it.cfg.Presets[it.presetIndex]
		if it.encoderIt == nil {
			if it.encoderIdx >= len(preset.Encoders) {
				it.st = stateAnalogs
				it.analogIt = nil
				return it.Next()
			}
			it.encoderIt = encoder.NewBackupIterator(uint16(it.encoderIdx))
		}
		section, value, more := it.encoderIt.Next(&preset.Encoders[it.encoderIdx])
		if !more {
			it.encoderIdx++
			it.encoderIt = nil
			return it.Next()
		}
		return renderComponent(sysex.BlockEncoder, uint8(section), uint16(it.encoderIdx), value), true

	case stateAnalogs:
		preset := &it.cfg.Presets[it.presetIndex]
		if it.analogIt == nil {
			if it.analogIdx >= len(preset.Analogs) {
				it.st = stateLEDs
				it.ledIt = nil
				return it.Next()
			}
			it.analogIt = analog.NewBackupIterator(uint16(it.analogIdx))
		}
		section, value, more := it.analogIt.Next(&preset.Analogs[it.analogIdx])
		if !more {
			it.analogIdx++
			it.analogIt = nil
			return it.Next()
		}
		return renderComponent(sysex.BlockAnalog, uint8(section), uint16(it.analogIdx), value), true

	case stateLEDs:
		preset := &it.cfg.Presets[it.presetIndex]
		if it.ledIt == nil {
			if it.ledIdx >= len(preset.LEDs) {
				it.presetIndex++
				it.buttonIdx, it.encoderIdx, it.analogIdx, it.ledIdx = 0, 0, 0, 0
				it.st = statePresetSelector
				return it.Next()
			}
			it.ledIt = led.NewBackupIterator(uint16(it.ledIdx))
		}
		section, value, more := it.ledIt.Next(&preset.LEDs[it.ledIdx])
		if !more {
			it.ledIdx++
			it.ledIt = nil
			return it.Next()
		}
		return renderComponent(sysex.BlockLed, uint8(section), uint16(it.ledIdx), value), true

	case stateClosing:
		it.st = stateDone
		return sysex.RenderSpecial(sysex.StatusResponse, sysex.SpecialBackup), true

	default:
		return nil, false
	}
}

func renderComponent(block sysex.Block, section uint8, index uint16, value uint16) []byte {
	return sysex.RenderConfiguration(
		sysex.StatusResponse, sysex.WishSet, sysex.Amount{Kind: sysex.AmountSingle},
		block, section, index, []uint16{value}, sysex.TwoBytes,
	)
}

// All drains the iterator into a slice; convenience for hosts that want
// the whole backup at once rather than pumping Next in a loop.
func All(cfg *config.Config) [][]byte {
	it := New(cfg)
	var frames [][]byte
	for {
		frame, ok := it.Next()
		if !ok {
			return frames
		}
		frames = append(frames, frame)
	}
}
