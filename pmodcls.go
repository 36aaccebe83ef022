// Package pmodcls controls a Digilent PmodCLS serial character LCD via SPI.
//
// The PmodCLS is driven by ANSI-style escape sequences; this package encodes
// them through the escape subpackage and ships them over a write-only SPI
// link. See the package documentation in doc.go for wiring and usage.
package pmodcls

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/pmodcls/escape"
)

// MaxSpeed is the highest SPI clock the CLS controller accepts.
const MaxSpeed = 625 * physic.KiloHertz

// Opts is the configuration for the PmodCLS display.
type Opts struct {
	// Hz is the SPI clock. Defaults to MaxSpeed. The driver does not clamp
	// the value; respecting the hardware maximum is the caller's concern.
	Hz physic.Frequency

	// Mode is the SPI clock mode. The controller uses Mode0 (the default).
	Mode spi.Mode

	// Logger, if non-nil, receives every sent command at debug level and
	// every transport failure at error level. There is no acknowledgement
	// from the device, so this is the only visibility into the bus.
	Logger *zerolog.Logger
}

// Transport-class errors, distinct from the operand range errors returned
// by the escape package.
var (
	ErrNotInitialized = errors.New("pmodcls: not initialized")
	ErrHalted         = errors.New("pmodcls: halted")
)

// Dev is the device handle for the PmodCLS display.
//
// The driver is stateless between calls: it tracks no cursor, display or
// EEPROM state and makes no correctness claim beyond "the bytes were
// transmitted or the transport reported failure". The zero Dev is valid but
// uninitialized; every operation on it returns ErrNotInitialized.
type Dev struct {
	mu     sync.Mutex // one full command write is the critical section
	c      conn.Conn
	log    zerolog.Logger
	halted bool
}

// NewSPI creates a new PmodCLS device connected via SPI.
//
// The port is configured for opts.Hz (default 625kHz, the controller
// maximum), opts.Mode (Mode0 by default) and 8-bit transfers. opts can be
// nil to use defaults.
func NewSPI(p spi.Port, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	hz := opts.Hz
	if hz == 0 {
		hz = MaxSpeed
	}
	c, err := p.Connect(hz, opts.Mode, 8)
	if err != nil {
		return nil, fmt.Errorf("pmodcls: spi connect: %w", err)
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &Dev{c: c, log: log}, nil
}

// send writes one finished command buffer through the SPI handle. One write
// per operation, no retries, no read-back.
func (d *Dev) send(name string, b []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return ErrHalted
	}
	if d.c == nil {
		d.log.Error().Str("cmd", name).Msg("spi not initialized")
		return ErrNotInitialized
	}
	if err := d.c.Tx(b, nil); err != nil {
		d.log.Error().Err(err).Str("cmd", name).Msg("spi write failed")
		return fmt.Errorf("pmodcls: %s: %w", name, err)
	}
	d.log.Debug().Str("cmd", name).Hex("tx", b).Msg("command sent")
	return nil
}

// DisplaySet turns the display and the backlight on or off.
func (d *Dev) DisplaySet(display, backlight bool) error {
	return d.send("display_set", escape.DisplaySet(display, backlight))
}

// CursorModeSet shows or hides the cursor and enables blinking.
func (d *Dev) CursorModeSet(visible, blink bool) error {
	return d.send("cursor_mode_set", escape.CursorModeSet(visible, blink))
}

// DisplayClear clears the display and returns the cursor home.
func (d *Dev) DisplayClear() error {
	return d.send("display_clear", escape.DisplayClear())
}

// SetPosition moves the cursor to (row, col). row is 0-2, col is 0-39.
func (d *Dev) SetPosition(row, col int) error {
	b, err := escape.Position(row, col)
	if err != nil {
		return err
	}
	return d.send("set_position", b)
}

// WriteStringAt writes text starting at (row, col). The text is truncated so
// that col plus the printed length never exceeds the 40-character line;
// truncation is not an error.
func (d *Dev) WriteStringAt(row, col int, text string) error {
	b, err := escape.WriteAt(row, col, text)
	if err != nil {
		return err
	}
	return d.send("write_string_at", b)
}

// Scroll shifts the visible window by cols columns (0-39), right when right
// is true, left otherwise. The controller requires the 16-character wrap
// mode for scrolling; the driver sets it as part of the same write.
func (d *Dev) Scroll(right bool, cols int) error {
	b, err := escape.Scroll(right, cols)
	if err != nil {
		return err
	}
	return d.send("scroll", b)
}

// SaveCursor stores the current cursor position in the controller.
func (d *Dev) SaveCursor() error {
	return d.send("save_cursor", escape.SaveCursor())
}

// RestoreCursor moves the cursor back to the stored position.
func (d *Dev) RestoreCursor() error {
	return d.send("restore_cursor", escape.RestoreCursor())
}

// DisplayMode selects the wrap width: 16 characters when wrap16 is true,
// 40 otherwise.
func (d *Dev) DisplayMode(wrap16 bool) error {
	return d.send("display_mode", escape.DisplayMode(wrap16))
}

// EraseInLine erases part of the current line. mode is one of
// escape.EraseToEnd, escape.EraseFromStart or escape.EraseWholeLine.
func (d *Dev) EraseInLine(mode int) error {
	b, err := escape.EraseInLine(mode)
	if err != nil {
		return err
	}
	return d.send("erase_in_line", b)
}

// EraseChars erases count characters starting at the cursor position.
func (d *Dev) EraseChars(count byte) error {
	return d.send("erase_chars", escape.EraseChars(count))
}

// Reset power-cycles the display controller.
func (d *Dev) Reset() error {
	return d.send("reset", escape.Reset())
}

// SaveTWIAddress stores a new TWI (I²C) address in EEPROM.
func (d *Dev) SaveTWIAddress(addr byte) error {
	return d.send("save_twi_address", escape.SaveTWIAddress(addr))
}

// SaveBaudRate stores a baud rate table entry (0-6) in EEPROM.
func (d *Dev) SaveBaudRate(value int) error {
	b, err := escape.SaveBaudRate(value)
	if err != nil {
		return err
	}
	return d.send("save_baud_rate", b)
}

// ProgramCharTable loads character table (0-3) into the LCD.
func (d *Dev) ProgramCharTable(table int) error {
	b, err := escape.ProgramCharTable(table)
	if err != nil {
		return err
	}
	return d.send("program_char_table", b)
}

// SaveTableToEEPROM copies the RAM character table into EEPROM table (0-3).
// EEPROM writes must be enabled first, see EEPROMWriteEnable.
func (d *Dev) SaveTableToEEPROM(table int) error {
	b, err := escape.SaveTableToEEPROM(table)
	if err != nil {
		return err
	}
	return d.send("save_table_to_eeprom", b)
}

// LoadTableFromEEPROM loads EEPROM character table (0-3) into RAM.
func (d *Dev) LoadTableFromEEPROM(table int) error {
	b, err := escape.LoadTableFromEEPROM(table)
	if err != nil {
		return err
	}
	return d.send("load_table_from_eeprom", b)
}

// SaveCommMode stores the communication mode (escape.CommSPI, escape.CommTWI
// or escape.CommUART) in EEPROM.
func (d *Dev) SaveCommMode(sel int) error {
	b, err := escape.SaveCommMode(sel)
	if err != nil {
		return err
	}
	return d.send("save_comm_mode", b)
}

// EEPROMWriteEnable unlocks EEPROM writes for the save operations.
func (d *Dev) EEPROMWriteEnable() error {
	return d.send("eeprom_write_enable", escape.EEPROMWriteEnable())
}

// SaveCursorModeToEEPROM stores the power-on cursor mode (0-2) in EEPROM.
func (d *Dev) SaveCursorModeToEEPROM(mode int) error {
	b, err := escape.SaveCursorMode(mode)
	if err != nil {
		return err
	}
	return d.send("save_cursor_mode", b)
}

// SaveDisplayModeToEEPROM stores the power-on wrap mode (escape.Wrap16 or
// escape.Wrap40) in EEPROM.
func (d *Dev) SaveDisplayModeToEEPROM(mode int) error {
	b, err := escape.SaveDisplayMode(mode)
	if err != nil {
		return err
	}
	return d.send("save_display_mode", b)
}

// DefineChar programs a user-defined character into slot (0-7). rows holds
// the eight 5-bit pixel rows, top first. The RAM working table is programmed
// in the same write so the glyph is usable immediately.
func (d *Dev) DefineChar(rows [8]byte, slot int) error {
	b, err := escape.DefineChar(rows, slot)
	if err != nil {
		return err
	}
	return d.send("define_char", b)
}

// DisplayCustomChars prints user-defined glyphs at (row, col). Each byte in
// slots is a character slot code as programmed with DefineChar.
func (d *Dev) DisplayCustomChars(slots []byte, row, col int) error {
	b, err := escape.DisplayChars(slots, row, col)
	if err != nil {
		return err
	}
	return d.send("display_custom_chars", b)
}

// Halt turns the display and backlight off.
// After calling Halt, the device will not accept further commands until a
// new Dev is created.
func (d *Dev) Halt() error {
	if err := d.send("halt", escape.DisplaySet(false, false)); err != nil {
		return err
	}
	d.mu.Lock()
	d.halted = true
	d.mu.Unlock()
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("pmodcls.Dev{%dx%d}", escape.LineWidth, escape.MaxRow+1)
}

var _ conn.Resource = &Dev{}
