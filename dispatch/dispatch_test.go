package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doismellburning/opendeckd/config"
	"github.com/doismellburning/opendeckd/config/button"
	"github.com/doismellburning/opendeckd/internal/sysex"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return config.New(
		config.Capacities{Presets: 1, Buttons: 4, Analogs: 2, Encoders: 2, LEDs: 2},
		config.FirmwareVersion{Major: 1, Minor: 0, Revision: 0},
		12345,
		config.Callbacks{},
	)
}

// asRequest rewrites a response frame's STATUS byte to 0 so that
// sysex.Parse, which only accepts request frames, can decode it.
func asRequest(frame []byte) []byte {
	return append([]byte{0xF0, 0x00, 0x53, 0x43, 0x00}, frame[5:]...)
}

func TestHandshake(t *testing.T) {
	d := New(newTestConfig(t), nil)
	request := []byte{0xF0, 0x00, 0x53, 0x43, 0x00, 0x00, 0x01, 0xF7}
	responses := d.ProcessSysex(request)

	require.Len(t, responses, 1)
	assert.Equal(t, []byte{0xF0, 0x00, 0x53, 0x43, 0x01, 0x00, 0x01, 0xF7}, responses[0])
}

func TestGetSingleReturnsOneValue(t *testing.T) {
	d := New(newTestConfig(t), nil)
	// Analog 0's MidiIdLSB section, Get Single.
	request := []byte{0xF0, 0x00, 0x53, 0x43, 0x00, 0x00, 0x00, 0x00, 0x03, 0x03, 0x00, 0x00, 0xF7}
	responses := d.ProcessSysex(request)

	require.Len(t, responses, 1)
	req, err := sysex.Parse(asRequest(responses[0]), sysex.TwoBytes)
	require.NoError(t, err)
	assert.Equal(t, sysex.WishGet, req.Wish)
	require.Len(t, req.Values, 1)
	assert.Equal(t, uint16(0), req.Values[0])
}

func TestSetThenGetRoundTrips(t *testing.T) {
	d := New(newTestConfig(t), nil)
	// Set button 0's MidiID (section 2) to 42.
	setReq := sysex.RenderConfiguration(0, sysex.WishSet, sysex.Amount{Kind: sysex.AmountSingle}, sysex.BlockButton, 2, 0, []uint16{42}, sysex.TwoBytes)
	responses := d.ProcessSysex(setReq)
	require.Len(t, responses, 1)

	getReq := sysex.RenderConfiguration(0, sysex.WishGet, sysex.Amount{Kind: sysex.AmountSingle}, sysex.BlockButton, 2, 0, nil, sysex.TwoBytes)
	responses = d.ProcessSysex(getReq)
	require.Len(t, responses, 1)

	parsed, err := sysex.Parse(asRequest(responses[0]), sysex.TwoBytes)
	require.NoError(t, err)
	require.Len(t, parsed.Values, 1)
	assert.Equal(t, uint16(42), parsed.Values[0])
}

func TestGetAllEmitsDataFrameThenAck(t *testing.T) {
	d := New(newTestConfig(t), nil)
	req := sysex.RenderConfiguration(0, sysex.WishGet, sysex.Amount{Kind: sysex.AmountAll, Part: sysex.PartAllStart}, sysex.BlockButton, uint8(button.SectionMidiID), 0, nil, sysex.TwoBytes)
	responses := d.ProcessSysex(req)

	require.Len(t, responses, 2)

	data, err := sysex.Parse(asRequest(responses[0]), sysex.TwoBytes)
	require.NoError(t, err)
	assert.Equal(t, sysex.AmountAll, data.Amount.Kind)
	assert.Equal(t, uint8(0), data.Amount.Part)
	assert.Len(t, data.Values, 4) // four buttons in this config

	ack, err := sysex.Parse(asRequest(responses[1]), sysex.TwoBytes)
	require.NoError(t, err)
	assert.Equal(t, sysex.PartAllAck, ack.Amount.Part)
	assert.Empty(t, ack.Values)
}

func TestOutOfRangeIndexIsSilentOnSet(t *testing.T) {
	d := New(newTestConfig(t), nil)
	req := sysex.RenderConfiguration(0, sysex.WishSet, sysex.Amount{Kind: sysex.AmountSingle}, sysex.BlockButton, 2, 99, []uint16{5}, sysex.TwoBytes)
	responses := d.ProcessSysex(req)
	require.Len(t, responses, 1)
	// Nothing panics and a plain echo comes back; the underlying config is untouched.
}

func TestHandleButtonOutOfRangeReturnsNil(t *testing.T) {
	d := New(newTestConfig(t), nil)
	assert.Nil(t, d.HandleButton(99, button.Pressed))
}

func TestHandleButtonProducesMessages(t *testing.T) {
	cfg := newTestConfig(t)
	d := New(cfg, nil)

	src := d.HandleButton(0, button.Pressed)
	require.NotNil(t, src)

	buf := make([]byte, 8)
	n, ok, err := src.Next(buf)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte{0x90, 0x00, 0x01}, buf[:n])
}

func TestFactoryResetRestoresDefaults(t *testing.T) {
	cfg := newTestConfig(t)
	d := New(cfg, nil)

	cfg.Presets[0].Buttons[0].MidiID = 99

	req := []byte{0xF0, 0x00, 0x53, 0x43, 0x00, 0x00, 0x44, 0xF7}
	responses := d.ProcessSysex(req)
	require.Len(t, responses, 1)

	assert.Equal(t, uint8(0), cfg.Presets[0].Buttons[0].MidiID)
}

func TestFirmwareVersionSpecialResponse(t *testing.T) {
	d := New(newTestConfig(t), nil)
	req := []byte{0xF0, 0x00, 0x53, 0x43, 0x00, 0x00, 0x56, 0xF7}
	responses := d.ProcessSysex(req)
	require.Len(t, responses, 1)
	assert.Equal(t, []byte{0xF0, 0x00, 0x53, 0x43, 0x01, 0x00, 0x56, 1, 0, 0, 0xF7}, responses[0])
}
