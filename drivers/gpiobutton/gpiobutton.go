// Package gpiobutton adapts a GPIO line into the hardware-event entry
// point a Dispatcher exposes: each falling/rising edge on the watched
// line becomes a button.Pressed/button.Released call.
package gpiobutton

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/warthog618/go-gpiocdev"

	"github.com/doismellburning/opendeckd/config/button"
)

// Emitter is the subset of dispatch.Dispatcher a Watcher needs: produce
// the MIDI messages for one button action and drain them.
type Emitter interface {
	HandleButton(index int, action button.Action) interface {
		Next(buf []byte) (n int, ok bool, err error)
	}
}

// Sink receives the rendered MIDI bytes for each button action, e.g. a
// serial transport's Write.
type Sink func(msg []byte) error

// Watcher owns one requested GPIO line and forwards its edges to an
// Emitter, writing every resulting MIDI message to a Sink.
type Watcher struct {
	line   *gpiocdev.Line
	index  int
	sink   Sink
	source Emitter
}

// Watch requests offset on chipName as an input line with both-edge
// detection, and wires its transitions to index in source. The line is
// pulled up, and a falling edge (the button grounding the line) reads as
// Pressed.
func Watch(chipName string, offset int, index int, source Emitter, sink Sink) (*Watcher, error) {
	w := &Watcher{index: index, sink: sink, source: source}

	line, err := gpiocdev.RequestLine(
		chipName, offset,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(w.handle),
	)
	if err != nil {
		return nil, fmt.Errorf("gpiobutton: requesting %s:%d: %w", chipName, offset, err)
	}
	w.line = line
	return w, nil
}

func (w *Watcher) handle(evt gpiocdev.LineEvent) {
	action := button.Released
	if evt.Type == gpiocdev.LineEventFallingEdge {
		action = button.Pressed
	}

	msgs := w.source.HandleButton(w.index, action)
	if msgs == nil {
		return
	}

	buf := make([]byte, 8)
	for {
		n, ok, err := msgs.Next(buf)
		if err != nil {
			log.Error("gpiobutton: rendering message", "index", w.index, "err", err)
			return
		}
		if !ok {
			return
		}
		if err := w.sink(buf[:n]); err != nil {
			log.Error("gpiobutton: writing message", "index", w.index, "err", err)
			return
		}
	}
}

// Close releases the underlying GPIO line.
func (w *Watcher) Close() error {
	return w.line.Close()
}
