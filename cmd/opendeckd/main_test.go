package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doismellburning/opendeckd/config"
	"github.com/doismellburning/opendeckd/dispatch"
)

// fakeConn replays a fixed sequence of reads and records every write,
// then reports io.EOF to end the serveSysex loop.
type fakeConn struct {
	reads   [][]byte
	written [][]byte
}

func (c *fakeConn) Read(p []byte) (int, error) {
	if len(c.reads) == 0 {
		return 0, io.EOF
	}
	chunk := c.reads[0]
	c.reads = c.reads[1:]
	return copy(p, chunk), nil
}

func (c *fakeConn) Write(p []byte) (int, error) {
	c.written = append(c.written, append([]byte(nil), p...))
	return len(p), nil
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return config.New(
		config.Capacities{Presets: 1, Buttons: 1, Analogs: 1, Encoders: 1, LEDs: 1},
		config.FirmwareVersion{Major: 1},
		0,
		config.Callbacks{},
	)
}

func TestServeSysexDispatchesACompleteFrame(t *testing.T) {
	conn := &fakeConn{reads: [][]byte{
		{0xF0, 0x00, 0x53, 0x43, 0x00, 0x00, 0x01, 0xF7},
	}}
	d := dispatch.New(newTestConfig(t), nil)

	serveSysex(conn, d)

	require.Len(t, conn.written, 1)
	assert.Equal(t, []byte{0xF0, 0x00, 0x53, 0x43, 0x01, 0x00, 0x01, 0xF7}, conn.written[0])
}

func TestServeSysexHandlesFrameSplitAcrossReads(t *testing.T) {
	conn := &fakeConn{reads: [][]byte{
		{0xF0, 0x00, 0x53},
		{0x43, 0x00, 0x00, 0x01, 0xF7},
	}}
	d := dispatch.New(newTestConfig(t), nil)

	serveSysex(conn, d)

	require.Len(t, conn.written, 1)
	assert.Equal(t, []byte{0xF0, 0x00, 0x53, 0x43, 0x01, 0x00, 0x01, 0xF7}, conn.written[0])
}

func TestServeSysexIgnoresBytesBeforeFirstStart(t *testing.T) {
	conn := &fakeConn{reads: [][]byte{
		{0x00, 0x00, 0xF0, 0x00, 0x53, 0x43, 0x00, 0x00, 0x01, 0xF7},
	}}
	d := dispatch.New(newTestConfig(t), nil)

	serveSysex(conn, d)

	require.Len(t, conn.written, 1)
}
