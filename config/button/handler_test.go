package button

import (
	"testing"

	"github.com/doismellburning/opendeckd/internal/sysex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextMessage(t *testing.T, m *Messages) ([]byte, bool) {
	t.Helper()
	buf := make([]byte, 8)
	n, ok, err := m.Next(buf)
	require.NoError(t, err)
	if !ok {
		return nil, false
	}
	return buf[:n], true
}

func TestLatchingButtonScenario(t *testing.T) {
	b := New(3)
	b.Type = Latching
	b.MessageType = Notes
	b.MidiID = 3
	b.Value = 0x7F
	b.Channel = sysex.Channel(0)

	data, ok := nextMessage(t, b.Handle(Pressed))
	require.True(t, ok)
	assert.Equal(t, []byte{0x90, 0x03, 0x7F}, data)

	data, ok = nextMessage(t, b.Handle(Pressed))
	require.True(t, ok)
	assert.Equal(t, []byte{0x90, 0x03, 0x00}, data)

	data, ok = nextMessage(t, b.Handle(Pressed))
	require.True(t, ok)
	assert.Equal(t, []byte{0x90, 0x03, 0x7F}, data)

	_, ok = nextMessage(t, b.Handle(Released))
	assert.False(t, ok)
}

func TestMomentaryNotes(t *testing.T) {
	b := New(0)
	b.MidiID = 10
	b.Value = 100

	data, ok := nextMessage(t, b.Handle(Pressed))
	require.True(t, ok)
	assert.Equal(t, []byte{0x90, 10, 100}, data)

	data, ok = nextMessage(t, b.Handle(Released))
	require.True(t, ok)
	assert.Equal(t, []byte{0x90, 10, 0}, data)
}

func TestProgramChangeIncrWraps(t *testing.T) {
	b := New(0)
	b.MessageType = ProgramChangeIncr
	b.MidiID = 127

	data, ok := nextMessage(t, b.Handle(Pressed))
	require.True(t, ok)
	assert.Equal(t, []byte{0xC0, 0}, data)
	assert.Equal(t, uint8(0), b.MidiID)
}

func TestAllChannelsExpandsToSixteenMessages(t *testing.T) {
	b := New(0)
	b.MidiID = 1
	b.Value = 1
	b.Channel = sysex.All()

	m := b.Handle(Pressed)
	for ch := uint8(0); ch < 16; ch++ {
		data, ok := nextMessage(t, m)
		require.True(t, ok)
		assert.Equal(t, byte(0x90|ch), data[0])
	}
	_, ok := nextMessage(t, m)
	assert.False(t, ok)
}

func TestNoMessageTypeEmitsNothing(t *testing.T) {
	b := New(0)
	b.MessageType = NoMessage
	_, ok := nextMessage(t, b.Handle(Pressed))
	assert.False(t, ok)
}

func TestMultiValueIncResetNote(t *testing.T) {
	b := New(3)
	b.MessageType = MultiValueIncNote
	b.MidiID = 3
	b.Value = 50

	want := []uint8{50, 100, 50, 100, 50}
	for _, v := range want {
		data, ok := nextMessage(t, b.Handle(Pressed))
		require.True(t, ok)
		assert.Equal(t, []byte{0x90, 0x03, v}, data)
	}
}

func TestMultiValueIncResetCC(t *testing.T) {
	b := New(3)
	b.MessageType = MultiValueIncCC
	b.MidiID = 3
	b.Value = 40

	want := []uint8{40, 80, 120, 40, 80}
	for _, v := range want {
		data, ok := nextMessage(t, b.Handle(Pressed))
		require.True(t, ok)
		assert.Equal(t, []byte{0xB0, 0x03, v}, data)
	}
}

func TestMultiValueIncDecNote(t *testing.T) {
	b := New(3)
	b.MessageType = MultiValueDecNote
	b.MidiID = 3
	b.Value = 50

	want := []uint8{50, 100, 50, 100, 50}
	for _, v := range want {
		data, ok := nextMessage(t, b.Handle(Pressed))
		require.True(t, ok)
		assert.Equal(t, []byte{0x90, 0x03, v}, data)
	}
}

func TestMultiValueIncDecCC(t *testing.T) {
	b := New(3)
	b.MessageType = MultiValueDecCC
	b.MidiID = 3
	b.Value = 40

	want := []uint8{40, 80, 120, 80, 40, 80}
	for _, v := range want {
		data, ok := nextMessage(t, b.Handle(Pressed))
		require.True(t, ok)
		assert.Equal(t, []byte{0xB0, 0x03, v}, data)
	}
}

func TestBufferOverflowDoesNotAdvance(t *testing.T) {
	b := New(0)
	b.MidiID = 5
	b.Value = 9
	m := b.Handle(Pressed)

	tiny := make([]byte, 1)
	_, _, err := m.Next(tiny)
	assert.ErrorIs(t, err, ErrBufferOverflow)

	big := make([]byte, 8)
	n, ok, err := m.Next(big)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte{0x90, 5, 9}, big[:n])
}
