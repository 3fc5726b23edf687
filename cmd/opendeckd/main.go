// Command opendeckd is a demo host: it opens a serial transport, feeds
// incoming bytes to a Dispatcher as SysEx frames, and writes back
// whatever response frames come out. It exists to show how the core
// config/dispatch/backup/profile packages wire together; a real
// integration owns its own transport and event sources.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/term"
	"github.com/spf13/pflag"

	"github.com/doismellburning/opendeckd/backup"
	"github.com/doismellburning/opendeckd/config"
	"github.com/doismellburning/opendeckd/dispatch"
	"github.com/doismellburning/opendeckd/profile"
)

func main() {
	var (
		devicename  = pflag.StringP("device", "d", "/dev/ttyACM0", "Serial device to read SysEx frames from")
		baud        = pflag.IntP("baud", "b", 0, "Serial speed, 0 to leave the port's current setting alone")
		profilePath = pflag.StringP("profile", "p", "", "Device profile YAML path; searched if omitted")
		presets     = pflag.IntP("presets", "n", 1, "Number of presets to allocate")
		buttons     = pflag.IntP("buttons", "B", 16, "Buttons per preset")
		analogs     = pflag.IntP("analogs", "A", 8, "Analog inputs per preset")
		encoders    = pflag.IntP("encoders", "E", 4, "Encoders per preset")
		leds        = pflag.IntP("leds", "L", 16, "LEDs per preset")
		dumpBackup  = pflag.Bool("dump-backup", false, "Print the full configuration backup and exit")
		help        = pflag.Bool("help", false, "Display help text")
	)

	pflag.Usage = func() {
		log.Error("usage: opendeckd [options]")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		return
	}

	cfg := config.New(
		config.Capacities{Presets: *presets, Buttons: *buttons, Analogs: *analogs, Encoders: *encoders, LEDs: *leds},
		config.FirmwareVersion{Major: 1, Minor: 0, Revision: 0},
		0,
		config.Callbacks{
			Reboot:     func() { log.Warn("reboot requested; no-op in this demo host") },
			Bootloader: func() { log.Warn("bootloader entry requested; no-op in this demo host") },
		},
	)

	if p, err := profile.Load(*profilePath); err != nil {
		if *profilePath != "" {
			log.Fatal("loading device profile", "path", *profilePath, "err", err)
		}
		log.Info("no device profile found, using index-identity defaults")
	} else {
		p.Apply(cfg)
		cfg.HardwareUID = p.Identity.HardwareUID
		cfg.Firmware = config.FirmwareVersion{Major: p.Identity.Major, Minor: p.Identity.Minor, Revision: p.Identity.Revision}
		log.Info("loaded device profile", "path", *profilePath)
	}

	if *dumpBackup {
		for _, frame := range backup.All(cfg) {
			os.Stdout.Write(frame)
		}
		return
	}

	d := dispatch.New(cfg, log.Default())

	fd, err := term.Open(*devicename, term.RawMode)
	if err != nil {
		log.Fatal("opening serial port", "device", *devicename, "err", err)
	}
	defer fd.Close()

	if *baud != 0 {
		if err := fd.SetSpeed(*baud); err != nil {
			log.Fatal("setting serial speed", "baud", *baud, "err", err)
		}
	}

	serveSysex(fd, d)
}

// sysexReader is the subset of *term.Term serveSysex depends on, so it
// can be exercised with a fake in tests.
type sysexReader interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// serveSysex reads raw bytes off conn, accumulates one F0..F7 frame at a
// time, and feeds each complete frame to the dispatcher, writing back
// every response frame it yields.
func serveSysex(conn sysexReader, d *dispatch.Dispatcher) {
	const sysexStart, sysexEnd = 0xF0, 0xF7

	var frame []byte
	buf := make([]byte, 256)

	for {
		n, err := conn.Read(buf)
		if err != nil {
			log.Error("reading serial port", "err", err)
			return
		}

		for _, b := range buf[:n] {
			switch {
			case b == sysexStart:
				frame = []byte{b}
			case frame != nil:
				frame = append(frame, b)
				if b == sysexEnd {
					for _, response := range d.ProcessSysex(frame) {
						if _, err := conn.Write(response); err != nil {
							log.Error("writing serial port", "err", err)
							return
						}
					}
					frame = nil
				}
			}
		}
	}
}
