package escape

import (
	"errors"
	"strconv"
)

// Escape sequence preamble.
const (
	esc     = 0x1B
	bracket = 0x5B // '['
)

// Command is the single terminating opcode byte that selects which operation
// the preceding parameter bytes apply to. The value of each constant is the
// literal byte placed on the wire.
type Command byte

const (
	CmdCursorPos         Command = 'H'
	CmdCursorSave        Command = 's'
	CmdCursorRestore     Command = 'u'
	CmdDisplayClear      Command = 'j'
	CmdEraseInLine       Command = 'K'
	CmdEraseField        Command = 'N'
	CmdScrollLeft        Command = '@'
	CmdScrollRight       Command = 'A'
	CmdReset             Command = '*'
	CmdDisplayEnable     Command = 'e'
	CmdDisplayMode       Command = 'h'
	CmdCursorMode        Command = 'c'
	CmdSaveTWIAddr       Command = 'a'
	CmdSaveBaudRate      Command = 'b'
	CmdProgramTable      Command = 'p'
	CmdSaveToEEPROM      Command = 't'
	CmdLoadFromEEPROM    Command = 'l'
	CmdDefineChar        Command = 'd'
	CmdSaveCommMode      Command = 'm'
	CmdEEPROMWriteEnable Command = 'w'
	CmdSaveCursorMode    Command = 'n'
	CmdSaveDisplayMode   Command = 'o'
)

var commandNames = map[Command]string{
	CmdCursorPos:         "cursor-position",
	CmdCursorSave:        "cursor-save",
	CmdCursorRestore:     "cursor-restore",
	CmdDisplayClear:      "display-clear",
	CmdEraseInLine:       "erase-in-line",
	CmdEraseField:        "erase-field",
	CmdScrollLeft:        "scroll-left",
	CmdScrollRight:       "scroll-right",
	CmdReset:             "reset",
	CmdDisplayEnable:     "display-enable",
	CmdDisplayMode:       "display-mode",
	CmdCursorMode:        "cursor-mode",
	CmdSaveTWIAddr:       "save-twi-address",
	CmdSaveBaudRate:      "save-baud-rate",
	CmdProgramTable:      "program-character-table",
	CmdSaveToEEPROM:      "save-ram-to-eeprom",
	CmdLoadFromEEPROM:    "load-eeprom-to-ram",
	CmdDefineChar:        "define-character",
	CmdSaveCommMode:      "save-comm-mode",
	CmdEEPROMWriteEnable: "eeprom-write-enable",
	CmdSaveCursorMode:    "save-cursor-mode",
	CmdSaveDisplayMode:   "save-display-mode",
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return "escape.Command(" + strconv.Itoa(int(c)) + ")"
}

// Display geometry. The controller addresses 3 rows of 40 characters; the
// visible window wraps at 16 or 40 columns depending on the display mode.
const (
	MaxRow    = 2
	MaxCol    = 39
	LineWidth = 40
)

// Custom character slots available in the working character table.
const MaxCharSlot = 7

// Erase modes for EraseInLine.
const (
	EraseToEnd     = 0 // cursor to end of line
	EraseFromStart = 1 // start of line to cursor
	EraseWholeLine = 2
)

// Communication mode selectors for SaveCommMode.
const (
	CommSPI  = 0
	CommTWI  = 1
	CommUART = 2
)

// Cursor modes for SaveCursorMode.
const (
	CursorOff   = 0
	CursorOn    = 1
	CursorBlink = 2
)

// Display wrap modes for SaveDisplayMode.
const (
	Wrap16 = 0
	Wrap40 = 1
)

// Operand range errors. Success is a nil error; compare with errors.Is.
var (
	ErrRowRange    = errors.New("escape: row out of range (0-2)")
	ErrColRange    = errors.New("escape: column out of range (0-39)")
	ErrEraseOption = errors.New("escape: erase mode out of range (0-2)")
	ErrBaudRate    = errors.New("escape: baud rate value out of range (0-6)")
	ErrTableIndex  = errors.New("escape: character table out of range (0-3)")
	ErrCommMode    = errors.New("escape: comm mode out of range (0-2)")
	ErrCursorMode  = errors.New("escape: cursor mode out of range (0-2)")
	ErrDisplayMode = errors.New("escape: display mode out of range (0-1)")
	ErrCharSlot    = errors.New("escape: character slot out of range (0-7)")
)

// sequence assembles preamble + parameter bytes + opcode.
func sequence(op Command, params ...byte) []byte {
	b := make([]byte, 0, len(params)+3)
	b = append(b, esc, bracket)
	b = append(b, params...)
	return append(b, byte(op))
}

func digit(v int) byte {
	return '0' + byte(v)
}

// columnDigits splits a column index into its tens and ones ASCII digits.
// Columns are always two digits on the wire, even below 10.
func columnDigits(col int) (tens, ones byte) {
	return digit(col / 10), digit(col % 10)
}

func checkRowCol(row, col int) error {
	if row < 0 || row > MaxRow {
		return ErrRowRange
	}
	if col < 0 || col > MaxCol {
		return ErrColRange
	}
	return nil
}

// Position encodes a cursor move to (row, col):
// ESC [ <row> ';' <tens> <ones> H.
func Position(row, col int) ([]byte, error) {
	if err := checkRowCol(row, col); err != nil {
		return nil, err
	}
	tens, ones := columnDigits(col)
	return sequence(CmdCursorPos, digit(row), ';', tens, ones), nil
}

// WriteAt encodes a cursor move to (row, col) followed by the text bytes,
// chained in one buffer. Text is truncated so that col plus the printed
// length never exceeds the 40-character line; truncation is not an error.
func WriteAt(row, col int, text string) ([]byte, error) {
	if err := checkRowCol(row, col); err != nil {
		return nil, err
	}
	if col+len(text) > LineWidth {
		text = text[:LineWidth-col]
	}
	tens, ones := columnDigits(col)
	b := sequence(CmdCursorPos, digit(row), ';', tens, ones)
	return append(b, text...), nil
}

// Scroll encodes a horizontal scroll of the visible window by cols columns.
// The controller requires the 16-character wrap mode to be in effect before
// scrolling, so a wrap-16 display-mode command is chained ahead of the
// scroll command in the same buffer.
func Scroll(right bool, cols int) ([]byte, error) {
	if cols < 0 || cols > MaxCol {
		return nil, ErrColRange
	}
	op := CmdScrollLeft
	if right {
		op = CmdScrollRight
	}
	tens, ones := columnDigits(cols)
	b := sequence(CmdDisplayMode, digit(Wrap16))
	return append(b, sequence(op, tens, ones)...), nil
}

// DisplaySet encodes the display/backlight enable command. The parameter
// digit packs the two switches: backlight into bit 1, display into bit 0.
func DisplaySet(display, backlight bool) []byte {
	v := 0
	if display {
		v |= 1
	}
	if backlight {
		v |= 2
	}
	return sequence(CmdDisplayEnable, digit(v))
}

// CursorModeSet encodes the cursor visibility command. Blink only applies
// when the cursor is visible.
func CursorModeSet(visible, blink bool) []byte {
	v := CursorOff
	switch {
	case visible && blink:
		v = CursorBlink
	case visible:
		v = CursorOn
	}
	return sequence(CmdCursorMode, digit(v))
}

// DisplayClear encodes the clear-and-home command. It carries no parameter.
func DisplayClear() []byte {
	return sequence(CmdDisplayClear)
}

// SaveCursor encodes the save-cursor-position command.
func SaveCursor() []byte {
	return sequence(CmdCursorSave, '0')
}

// RestoreCursor encodes the restore-cursor-position command.
func RestoreCursor() []byte {
	return sequence(CmdCursorRestore, '0')
}

// DisplayMode encodes the wrap-width command: wrap at 16 characters when
// wrap16 is true, at 40 otherwise.
func DisplayMode(wrap16 bool) []byte {
	v := Wrap40
	if wrap16 {
		v = Wrap16
	}
	return sequence(CmdDisplayMode, digit(v))
}

// EraseInLine encodes a partial line erase. mode is one of EraseToEnd,
// EraseFromStart or EraseWholeLine.
func EraseInLine(mode int) ([]byte, error) {
	if mode < 0 || mode > EraseWholeLine {
		return nil, ErrEraseOption
	}
	return sequence(CmdEraseInLine, digit(mode)), nil
}

// EraseChars encodes an erase of count characters starting at the cursor.
// The count is sent as decimal ASCII digits.
func EraseChars(count byte) []byte {
	return sequence(CmdEraseField, decimal(count)...)
}

// Reset encodes the device reset (power cycle) command.
func Reset() []byte {
	return sequence(CmdReset, '0')
}

// SaveTWIAddress encodes the save-TWI-address-to-EEPROM command. The address
// is sent as decimal ASCII digits.
func SaveTWIAddress(addr byte) []byte {
	return sequence(CmdSaveTWIAddr, decimal(addr)...)
}

// SaveBaudRate encodes the save-baud-rate-to-EEPROM command. value selects
// an entry of the controller's baud rate table (0-6).
func SaveBaudRate(value int) ([]byte, error) {
	if value < 0 || value > 6 {
		return nil, ErrBaudRate
	}
	return sequence(CmdSaveBaudRate, digit(value)), nil
}

// ProgramCharTable encodes the command that loads character table (0-3) into
// the LCD. Table 3 is the RAM working table holding user-defined characters.
func ProgramCharTable(table int) ([]byte, error) {
	if table < 0 || table > 3 {
		return nil, ErrTableIndex
	}
	return sequence(CmdProgramTable, digit(table)), nil
}

// SaveTableToEEPROM encodes the command that copies the RAM character table
// into EEPROM slot table (0-3).
func SaveTableToEEPROM(table int) ([]byte, error) {
	if table < 0 || table > 3 {
		return nil, ErrTableIndex
	}
	return sequence(CmdSaveToEEPROM, digit(table)), nil
}

// LoadTableFromEEPROM encodes the command that loads EEPROM character table
// (0-3) into RAM.
func LoadTableFromEEPROM(table int) ([]byte, error) {
	if table < 0 || table > 3 {
		return nil, ErrTableIndex
	}
	return sequence(CmdLoadFromEEPROM, digit(table)), nil
}

// SaveCommMode encodes the save-communication-mode-to-EEPROM command. sel is
// one of CommSPI, CommTWI or CommUART.
func SaveCommMode(sel int) ([]byte, error) {
	if sel < 0 || sel > CommUART {
		return nil, ErrCommMode
	}
	return sequence(CmdSaveCommMode, digit(sel)), nil
}

// EEPROMWriteEnable encodes the command that unlocks EEPROM writes. It must
// precede any of the save-to-EEPROM commands.
func EEPROMWriteEnable() []byte {
	return sequence(CmdEEPROMWriteEnable, '0')
}

// SaveCursorMode encodes the save-cursor-mode-to-EEPROM command. mode is one
// of CursorOff, CursorOn or CursorBlink.
func SaveCursorMode(mode int) ([]byte, error) {
	if mode < 0 || mode > CursorBlink {
		return nil, ErrCursorMode
	}
	return sequence(CmdSaveCursorMode, digit(mode)), nil
}

// SaveDisplayMode encodes the save-display-mode-to-EEPROM command. mode is
// Wrap16 or Wrap40.
func SaveDisplayMode(mode int) ([]byte, error) {
	if mode < 0 || mode > Wrap40 {
		return nil, ErrDisplayMode
	}
	return sequence(CmdSaveDisplayMode, digit(mode)), nil
}

// DefineChar encodes a user-defined character: the eight row bytes rendered
// as "0xNN;" hexadecimal text tokens, the slot digit and the define opcode,
// chained with a second sequence that programs the RAM working table so the
// new glyph becomes usable immediately.
func DefineChar(rows [8]byte, slot int) ([]byte, error) {
	if slot < 0 || slot > MaxCharSlot {
		return nil, ErrCharSlot
	}
	b := make([]byte, 0, 52)
	b = append(b, esc, bracket)
	for _, r := range rows {
		b = appendHexToken(b, r)
	}
	b = append(b, digit(slot), byte(CmdDefineChar))
	return append(b, sequence(CmdProgramTable, '3')...), nil
}

// DisplayChars encodes a cursor move to (row, col) followed by the raw slot
// code bytes, which the controller renders as the matching user-defined
// glyphs.
func DisplayChars(slots []byte, row, col int) ([]byte, error) {
	if err := checkRowCol(row, col); err != nil {
		return nil, err
	}
	tens, ones := columnDigits(col)
	b := sequence(CmdCursorPos, digit(row), ';', tens, ones)
	return append(b, slots...), nil
}

const hexUpper = "0123456789ABCDEF"

// appendHexToken appends one "0xNN;" token for a character row byte.
func appendHexToken(b []byte, v byte) []byte {
	return append(b, '0', 'x', hexUpper[v>>4], hexUpper[v&0x0F], ';')
}

func decimal(v byte) []byte {
	return strconv.AppendUint(nil, uint64(v), 10)
}
