package backup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doismellburning/opendeckd/config"
	"github.com/doismellburning/opendeckd/internal/sysex"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return config.New(
		config.Capacities{Presets: 2, Buttons: 2, Analogs: 1, Encoders: 1, LEDs: 1},
		config.FirmwareVersion{Major: 1},
		0,
		config.Callbacks{},
	)
}

func TestWalkIsBracketedByBackupMarkers(t *testing.T) {
	frames := All(newTestConfig(t))
	require.NotEmpty(t, frames)

	assert.Equal(t, sysex.RenderSpecial(sysex.StatusResponse, sysex.SpecialBackup), frames[0])
	assert.Equal(t, sysex.RenderSpecial(sysex.StatusResponse, sysex.SpecialBackup), frames[len(frames)-1])
}

func TestWalkOrdersPresetSelectorThenComponentKinds(t *testing.T) {
	frames := All(newTestConfig(t))

	parsed := make([]sysex.Request, 0, len(frames)-2)
	for _, f := range frames[1 : len(frames)-1] {
		// Parse only accepts request frames, so rewrite STATUS to 0 first.
		req, err := sysex.Parse(append([]byte{0xF0, 0x00, 0x53, 0x43, 0x00}, f[5:]...), sysex.TwoBytes)
		require.NoError(t, err)
		parsed = append(parsed, req)
	}

	require.NotEmpty(t, parsed)
	assert.Equal(t, sysex.BlockGlobal, parsed[0].Block)

	// The first preset's two buttons must precede its one encoder, which
	// must precede its one analog, which must precede its one LED.
	var sawEncoder, sawAnalog, sawLED bool
	buttonsSeen := 0
	for _, req := range parsed[1:] {
		switch req.Block {
		case sysex.BlockButton:
			assert.False(t, sawEncoder || sawAnalog || sawLED, "button frame seen after a later component kind")
			buttonsSeen++
		case sysex.BlockEncoder:
			sawEncoder = true
			assert.False(t, sawAnalog || sawLED)
		case sysex.BlockAnalog:
			sawAnalog = true
			assert.False(t, sawLED)
		case sysex.BlockLed:
			sawLED = true
		case sysex.BlockGlobal:
			// A new preset's selector frame resets the ordering watch.
			sawEncoder, sawAnalog, sawLED = false, false, false
		}
	}
	assert.Equal(t, 2*2*5, buttonsSeen) // two presets x two buttons x five sections
}

func TestWalkEmitsOnePresetSelectorPerPreset(t *testing.T) {
	frames := All(newTestConfig(t))

	selectors := 0
	for _, f := range frames[1 : len(frames)-1] {
		req, err := sysex.Parse(append([]byte{0xF0, 0x00, 0x53, 0x43, 0x00}, f[5:]...), sysex.TwoBytes)
		require.NoError(t, err)
		if req.Block == sysex.BlockGlobal {
			selectors++
		}
	}
	assert.Equal(t, 2, selectors)
}

func TestWalkIsExhausted(t *testing.T) {
	it := New(newTestConfig(t))
	for {
		_, ok := it.Next()
		if !ok {
			break
		}
	}
	_, ok := it.Next()
	assert.False(t, ok)
}
