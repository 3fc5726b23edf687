// Package chanexpand implements the channel-expansion and 14-bit-split
// helpers shared by every event generator (button, analog, encoder): how a
// ChannelOrAll selector turns one logical event into a sequence of
// per-channel MIDI messages, and how a 14-bit value splits across two
// 7-bit Control Change messages.
package chanexpand

import "github.com/doismellburning/opendeckd/internal/sysex"

// Messages walks the (channel, message-index) pairs a single logical event
// produces: for ChannelOrAll.All, every channel 0..15 in order, each
// emitting nrOfMessages messages; for a single channel (or None, which
// behaves like channel 0), just nrOfMessages messages on that one channel.
type Messages struct {
	allChannels   bool
	singleChannel uint8
	nrOfMessages  uint8
	channel       uint8
	index         uint8
	done          bool
}

// New builds a Messages walker. nrOfMessages of 0 is treated as 1 so the
// walker always terminates after producing at least one (channel, index)
// pair per channel.
func New(c sysex.ChannelOrAll, nrOfMessages uint8) *Messages {
	if nrOfMessages == 0 {
		nrOfMessages = 1
	}
	m := &Messages{nrOfMessages: nrOfMessages}
	if c.IsAll() {
		m.allChannels = true
		return m
	}
	if ch, ok := c.Single(); ok {
		m.singleChannel = ch
	}
	return m
}

// Next returns the next (channel, messageIndex) pair, or ok=false once the
// walk is complete.
func (m *Messages) Next() (channel uint8, index uint8, ok bool) {
	if m.done {
		return 0, 0, false
	}
	if !m.allChannels {
		channel, index = m.singleChannel, m.index
		m.index++
		if m.index >= m.nrOfMessages {
			m.done = true
		}
		return channel, index, true
	}

	channel, index = m.channel, m.index
	m.index++
	if m.index >= m.nrOfMessages {
		m.index = 0
		m.channel++
		if m.channel >= 16 {
			m.done = true
		}
	}
	return channel, index, true
}

// HiRes splits a 14-bit value across two Control Change messages, as used
// by analog/encoder CC14 and by 14-bit encoder accumulators.
type HiRes struct {
	value uint16
}

// NewHiRes wraps a 14-bit logical value for splitting.
func NewHiRes(v uint16) HiRes { return HiRes{value: v} }

// MSB returns the high 7 bits of the value.
func (h HiRes) MSB() uint8 { return uint8((h.value >> 7) & 0x7F) }

// LSB returns the low 7 bits of the value.
func (h HiRes) LSB() uint8 { return uint8(h.value & 0x7F) }

// ControlChange returns the (value, controlID) pair for message index of a
// two-message CC14 split: index 0 carries the MSB on the base id, index 1
// carries the LSB on id+32.
func (h HiRes) ControlChange(index uint8, id uint16) (value uint8, controlID uint8) {
	if index == 0 {
		return h.MSB(), uint8(id & 0x7F)
	}
	return h.LSB(), uint8((id + 32) & 0x7F)
}
