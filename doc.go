// Package pmodcls controls a Digilent PmodCLS serial character LCD via SPI.
//
// The PmodCLS is a 16x2 character LCD module with an on-board controller
// that accepts ANSI-style escape sequences over SPI, TWI or UART. This
// driver speaks the SPI flavor: a point-to-point, write-only link with no
// acknowledgement or read-back from the module.
//
// # Display Characteristics
//
// - 3 addressable rows of 40 characters each (rows 0-2, columns 0-39)
// - Visible window wraps at 16 or 40 characters (selectable display mode)
// - Horizontal scrolling of the visible window
// - 8 user-definable 5x8 characters in a RAM working table
// - 4 character tables, persistable to on-board EEPROM
// - Power-on settings (baud rate, cursor mode, display mode, comm mode)
// persistable to EEPROM
//
// # Hardware Connection
//
// Connect the PmodCLS to your system via SPI (J1 connector, jumpers set to
// SPI mode):
//
//	Module Pin → System Pin
//	GND        → GND
//	VCC        → 3.3V
//	SCK        → SPI Clock (SCLK)
//	MOSI       → SPI Data (MOSI)
//	SS         → SPI Chip Select
//
// The SPI clock must not exceed 625kHz; the driver defaults to that maximum
// but does not clamp a caller-provided frequency.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/pmodcls"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open SPI port
//		p, _ := spireg.Open("")
//
//		// Create device
//		dev, _ := pmodcls.NewSPI(p, nil)
//		defer dev.Halt()
//
//		dev.DisplaySet(true, true)
//		dev.DisplayClear()
//		dev.WriteStringAt(0, 0, "HELLO")
//	}
//
// # Command Protocol
//
// Every operation maps to one escape sequence of the form
//
//	ESC '[' <param-digits>... <opcode>
//
// built by the escape subpackage. Operand validation happens before any
// byte touches the bus: an out-of-range row, column, table index or mode
// returns the matching sentinel error (escape.ErrRowRange and friends) and
// sends nothing. Composite operations such as DefineChar chain their
// sequences into a single buffer so the wire sees them in one exchange.
//
// # Error Handling
//
// Operand errors are the escape package sentinels; transport-class failures
// (pmodcls.ErrNotInitialized, pmodcls.ErrHalted, wrapped SPI errors) are a
// separate family. An operation never returns nil when the underlying write
// failed. The protocol is fire-and-forget: there are no retries and the
// driver keeps no model of the device state.
//
// # Custom Characters
//
//	heart := [8]byte{0x00, 0x0A, 0x1F, 0x1F, 0x0E, 0x04, 0x00, 0x00}
//	dev.DefineChar(heart, 0)
//	dev.DisplayCustomChars([]byte{0}, 0, 15)
//
// Each row byte uses the low 5 bits, top row first. Defined glyphs live in
// character table 3 (the RAM working table) and can be copied to EEPROM
// with SaveTableToEEPROM after EEPROMWriteEnable.
//
// # Reference Manual
//
// For the full escape sequence table and timing, see the Digilent PmodCLS
// reference manual:
// https://digilent.com/reference/pmod/pmodcls/reference-manual
package pmodcls
