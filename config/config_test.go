package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrePopulatesIndexSeededComponents(t *testing.T) {
	c := New(Capacities{Presets: 2, Buttons: 4, Analogs: 2, Encoders: 2, LEDs: 2},
		FirmwareVersion{Major: 1}, 0xDEADBEEF, Callbacks{})

	require.Len(t, c.Presets, 2)
	require.Len(t, c.Presets[0].Buttons, 4)
	assert.Equal(t, uint8(3), c.Presets[0].Buttons[3].MidiID)
	assert.Equal(t, uint16(1), c.Presets[1].Analogs[1].MidiID)
}

func TestActivePresetSwitchesOnGlobalPresetActive(t *testing.T) {
	c := New(Capacities{Presets: 3, Buttons: 1, Analogs: 0, Encoders: 0, LEDs: 0},
		FirmwareVersion{}, 0, Callbacks{})

	c.Preset.Set(PresetActive, 2)
	assert.Same(t, &c.Presets[2], c.ActivePreset())
}

func TestOutOfRangeComponentIndexReturnsNil(t *testing.T) {
	c := New(Capacities{Presets: 1, Buttons: 2, Analogs: 0, Encoders: 0, LEDs: 0},
		FirmwareVersion{}, 0, Callbacks{})

	assert.Nil(t, c.Button(5))
	assert.NotNil(t, c.Button(0))
}

func TestRebootCallbackInvoked(t *testing.T) {
	called := false
	c := New(Capacities{Presets: 1}, FirmwareVersion{}, 0, Callbacks{
		Reboot: func() { called = true },
	})
	c.Reboot()
	assert.True(t, called)
}
