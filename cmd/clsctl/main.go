// clsctl drives a Digilent PmodCLS character LCD from a YAML config file.
//
// Usage:
//
//	clsctl [-config cls.yaml] [-debug] <command>
//
// Commands:
//
//	show      program configured custom chars and write configured lines
//	clear     clear the display
//	scroll N  scroll the visible window N columns right (negative: left)
//	persist   save the configured display mode and working table to EEPROM
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/pmodcls"
	"periph.io/x/devices/v3/pmodcls/escape"
	"periph.io/x/devices/v3/pmodcls/internal/config"
	"periph.io/x/host/v3"
)

var (
	configPath = flag.String("config", "cls.yaml", "Path to the YAML config")
	debug      = flag.Bool("debug", false, "Log every command sent to the bus")
)

func main() {
	flag.Parse()
	logger := newLogger(*debug)

	if err := run(logger, flag.Args()); err != nil {
		logger.Fatal().Err(err).Msg("clsctl failed")
	}
}

func newLogger(debug bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).With().Timestamp().Str("app", "clsctl").Logger()
	if !debug {
		logger = logger.Level(zerolog.InfoLevel)
	}
	return logger
}

func run(logger zerolog.Logger, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command given (show, clear, scroll, persist)")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("host init: %w", err)
	}

	port, err := spireg.Open(cfg.Port)
	if err != nil {
		return fmt.Errorf("open spi port %q: %w", cfg.Port, err)
	}
	defer port.Close()

	dev, err := pmodcls.NewSPI(port, &pmodcls.Opts{
		Hz:     physic.Frequency(cfg.ClockHz) * physic.Hertz,
		Logger: &logger,
	})
	if err != nil {
		return err
	}

	switch args[0] {
	case "show":
		return show(dev, cfg)
	case "clear":
		return dev.DisplayClear()
	case "scroll":
		if len(args) < 2 {
			return fmt.Errorf("scroll needs a column count")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("scroll count %q: %w", args[1], err)
		}
		if n < 0 {
			return dev.Scroll(false, -n)
		}
		return dev.Scroll(true, n)
	case "persist":
		return persist(dev, cfg)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// show programs the configured custom characters, then clears the display
// and writes the configured lines.
func show(dev *pmodcls.Dev, cfg *config.Config) error {
	if err := dev.DisplaySet(true, cfg.Backlight); err != nil {
		return err
	}
	if err := dev.DisplayMode(cfg.Wrap16); err != nil {
		return err
	}
	for _, ch := range cfg.Chars {
		var rows [8]byte
		for i, r := range ch.Rows {
			rows[i] = byte(r)
		}
		if err := dev.DefineChar(rows, ch.Slot); err != nil {
			return fmt.Errorf("define char slot %d: %w", ch.Slot, err)
		}
	}
	if err := dev.DisplayClear(); err != nil {
		return err
	}
	for _, l := range cfg.Lines {
		if err := dev.WriteStringAt(l.Row, l.Col, l.Text); err != nil {
			return fmt.Errorf("write line at %d,%d: %w", l.Row, l.Col, err)
		}
	}
	return nil
}

// persist stores the configured display mode and the working character table
// in the controller's EEPROM so they survive power cycles.
func persist(dev *pmodcls.Dev, cfg *config.Config) error {
	if err := dev.EEPROMWriteEnable(); err != nil {
		return err
	}
	mode := escape.Wrap40
	if cfg.Wrap16 {
		mode = escape.Wrap16
	}
	if err := dev.SaveDisplayModeToEEPROM(mode); err != nil {
		return err
	}
	if len(cfg.Chars) > 0 {
		if err := dev.SaveTableToEEPROM(3); err != nil {
			return err
		}
	}
	return nil
}
