package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doismellburning/opendeckd/config"
)

const sampleYAML = `
identity:
  major: 2
  minor: 1
  revision: 0
  hardwareUID: 99

buttons:
  0:
    messageType: 2
    midiID: 60
    channel: 3

analogs:
  0:
    enabled: true
    midiID: 10
    lowerLimit: 0
    upperLimit: 100

encoders:
  0:
    enabled: true
    pulsesPerStep: 2
    lowerLimit: 0
    upperLimit: 63

leds:
  0:
    rgbEnabled: false
    controlType: 3
`

func writeTempProfile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "opendeck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParsesIdentityAndDefaults(t *testing.T) {
	path := writeTempProfile(t, sampleYAML)

	p, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint8(2), p.Identity.Major)
	assert.Equal(t, uint32(99), p.Identity.HardwareUID)
	assert.Equal(t, uint8(60), p.Buttons[0].MidiID)
}

func TestLoadMissingPathReturnsNotFound(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(cwd) }()
	require.NoError(t, os.Chdir(dir))

	_, err = Load("")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplySeedsComponentsFromProfile(t *testing.T) {
	path := writeTempProfile(t, sampleYAML)
	p, err := Load(path)
	require.NoError(t, err)

	cfg := config.New(
		config.Capacities{Presets: 1, Buttons: 1, Analogs: 1, Encoders: 1, LEDs: 1},
		config.FirmwareVersion{},
		0,
		config.Callbacks{},
	)
	p.Apply(cfg)

	assert.Equal(t, uint8(60), cfg.Presets[0].Buttons[0].MidiID)
	assert.True(t, cfg.Presets[0].Analogs[0].Enabled)
	assert.Equal(t, uint16(10), cfg.Presets[0].Analogs[0].MidiID)
	assert.Equal(t, uint8(2), cfg.Presets[0].Encoders[0].PulsesPerStep)
	assert.False(t, cfg.Presets[0].LEDs[0].RGBEnabled)
}

func TestApplyOutOfRangeIndexIsSkipped(t *testing.T) {
	p := &Profile{Buttons: map[int]ButtonDefault{5: {MidiID: 1}}}
	cfg := config.New(
		config.Capacities{Presets: 1, Buttons: 1},
		config.FirmwareVersion{},
		0,
		config.Callbacks{},
	)

	assert.NotPanics(t, func() { p.Apply(cfg) })
	assert.Equal(t, uint8(0), cfg.Presets[0].Buttons[0].MidiID)
}
