package analog

import (
	"testing"

	"github.com/doismellburning/opendeckd/internal/sysex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectMessages(t *testing.T, m *Messages) [][]byte {
	t.Helper()
	var out [][]byte
	buf := make([]byte, 8)
	for {
		n, ok, err := m.Next(buf)
		require.NoError(t, err)
		if !ok {
			return out
		}
		msg := make([]byte, n)
		copy(msg, buf[:n])
		out = append(out, msg)
	}
}

func TestScaleEndpointsAndOffsetFixtures(t *testing.T) {
	a := New(0)
	a.LowerLimit, a.UpperLimit = 0, 99
	a.LowerADCOffset, a.UpperADCOffset = 10, 10

	assert.Equal(t, uint16(0), a.Scale(0))
	assert.Equal(t, uint16(0), a.Scale(409))
	assert.Equal(t, uint16(99), a.Scale(4095))
	assert.Equal(t, uint16(99), a.Scale(3686))
	assert.Equal(t, uint16(49), a.Scale(2047))
}

func TestScaleNoOffsetEndpoints(t *testing.T) {
	a := New(0)
	a.LowerLimit, a.UpperLimit = 0, 99
	assert.Equal(t, uint16(0), a.Scale(0))
	assert.Equal(t, uint16(99), a.Scale(4095))
	assert.Equal(t, uint16(2), a.Scale(100))
}

func TestAnalogCC7Scenario(t *testing.T) {
	a := New(3)
	a.MidiID = 3
	a.Channel = sysex.Channel(1)
	a.LowerLimit, a.UpperLimit = 0, 99

	msgs := collectMessages(t, a.Handle(100))
	require.Len(t, msgs, 1)
	assert.Equal(t, []byte{0xB1, 0x03, 0x02}, msgs[0])
}

func TestAnalogNRPN14Scenario(t *testing.T) {
	a := New(0)
	a.MessageType = NRPN14
	a.MidiID = 1624
	a.Channel = sysex.Channel(0)
	a.LowerLimit, a.UpperLimit = 0, 8234

	msgs := collectMessages(t, a.Handle(4095))
	require.Len(t, msgs, 4)
	assert.Equal(t, []byte{0xB0, 0x62, 0x58}, msgs[0])
	assert.Equal(t, []byte{0xB0, 0x63, 0x0C}, msgs[1])
	assert.Equal(t, []byte{0xB0, 0x26, 0x2A}, msgs[2])
	assert.Equal(t, []byte{0xB0, 0x06, 0x40}, msgs[3])
}

func TestButtonMessageTypeEmitsNothing(t *testing.T) {
	a := New(0)
	a.MessageType = Button
	msgs := collectMessages(t, a.Handle(2000))
	assert.Empty(t, msgs)
}

func TestAnalogAllChannelsExpandsCC7(t *testing.T) {
	a := New(0)
	a.Channel = sysex.All()
	a.LowerLimit, a.UpperLimit = 0, 127

	msgs := collectMessages(t, a.Handle(4095))
	require.Len(t, msgs, 16)
	for ch := uint8(0); ch < 16; ch++ {
		assert.Equal(t, byte(0xB0|ch), msgs[ch][0])
	}
}
