package escape

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func TestCommandTable(t *testing.T) {
	// The protocol table, byte for byte.
	want := map[Command]byte{
		CmdCursorPos:         0x48,
		CmdCursorSave:        0x73,
		CmdCursorRestore:     0x75,
		CmdDisplayClear:      0x6A,
		CmdEraseInLine:       0x4B,
		CmdEraseField:        0x4E,
		CmdScrollLeft:        0x40,
		CmdScrollRight:       0x41,
		CmdReset:             0x2A,
		CmdDisplayEnable:     0x65,
		CmdDisplayMode:       0x68,
		CmdCursorMode:        0x63,
		CmdSaveTWIAddr:       0x61,
		CmdSaveBaudRate:      0x62,
		CmdProgramTable:      0x70,
		CmdSaveToEEPROM:      0x74,
		CmdLoadFromEEPROM:    0x6C,
		CmdDefineChar:        0x64,
		CmdSaveCommMode:      0x6D,
		CmdEEPROMWriteEnable: 0x77,
		CmdSaveCursorMode:    0x6E,
		CmdSaveDisplayMode:   0x6F,
	}
	for cmd, b := range want {
		if byte(cmd) != b {
			t.Errorf("%v = 0x%02X, want 0x%02X", cmd, byte(cmd), b)
		}
	}
	if len(commandNames) != len(want) {
		t.Errorf("command name table has %d entries, want %d", len(commandNames), len(want))
	}
}

func TestCommandString(t *testing.T) {
	if got := CmdCursorPos.String(); got != "cursor-position" {
		t.Errorf("CmdCursorPos.String() = %q, want %q", got, "cursor-position")
	}
	if got := Command(0xFF).String(); got != "escape.Command(255)" {
		t.Errorf("Command(0xFF).String() = %q, want %q", got, "escape.Command(255)")
	}
}

func TestPositionAllValid(t *testing.T) {
	for row := 0; row <= MaxRow; row++ {
		for col := 0; col <= MaxCol; col++ {
			got, err := Position(row, col)
			if err != nil {
				t.Fatalf("Position(%d, %d) error: %v", row, col, err)
			}
			want := []byte{0x1B, '[', byte('0' + row), ';', byte('0' + col/10), byte('0' + col%10), 'H'}
			if !bytes.Equal(got, want) {
				t.Errorf("Position(%d, %d) = % X, want % X", row, col, got, want)
			}
		}
	}
}

func TestPositionRange(t *testing.T) {
	tests := []struct {
		row, col int
		want     error
	}{
		{-1, 0, ErrRowRange},
		{3, 0, ErrRowRange},
		{0, -1, ErrColRange},
		{0, 40, ErrColRange},
		{2, 100, ErrColRange},
		// Row is checked before column.
		{5, 100, ErrRowRange},
		{-1, -1, ErrRowRange},
	}
	for _, tt := range tests {
		got, err := Position(tt.row, tt.col)
		if !errors.Is(err, tt.want) {
			t.Errorf("Position(%d, %d) error = %v, want %v", tt.row, tt.col, err, tt.want)
		}
		if got != nil {
			t.Errorf("Position(%d, %d) emitted % X, want no bytes", tt.row, tt.col, got)
		}
	}
}

func TestWriteAt(t *testing.T) {
	tests := []struct {
		name     string
		row, col int
		text     string
		want     []byte
		wantErr  error
	}{
		{
			"plain",
			0, 0, "HI",
			[]byte{0x1B, '[', '0', ';', '0', '0', 'H', 'H', 'I'},
			nil,
		},
		{
			"two digit column",
			1, 12, "A",
			[]byte{0x1B, '[', '1', ';', '1', '2', 'H', 'A'},
			nil,
		},
		{
			"truncated at line end",
			0, 38, "HELLO",
			[]byte{0x1B, '[', '0', ';', '3', '8', 'H', 'H', 'E'},
			nil,
		},
		{
			"exactly fits",
			2, 35, "ABCDE",
			[]byte{0x1B, '[', '2', ';', '3', '5', 'H', 'A', 'B', 'C', 'D', 'E'},
			nil,
		},
		{
			"last column drops all but one",
			0, 39, "XYZ",
			[]byte{0x1B, '[', '0', ';', '3', '9', 'H', 'X'},
			nil,
		},
		{"row out of range", 3, 0, "HI", nil, ErrRowRange},
		{"column out of range", 0, 40, "HI", nil, ErrColRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WriteAt(tt.row, tt.col, tt.text)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("WriteAt error = %v, want %v", err, tt.wantErr)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("WriteAt = % X, want % X", got, tt.want)
			}
		})
	}
}

func TestDisplaySet(t *testing.T) {
	tests := []struct {
		display, backlight bool
		digit              byte
	}{
		{false, false, '0'},
		{true, false, '1'},
		{false, true, '2'},
		{true, true, '3'},
	}
	for _, tt := range tests {
		want := []byte{0x1B, '[', tt.digit, 'e'}
		if got := DisplaySet(tt.display, tt.backlight); !bytes.Equal(got, want) {
			t.Errorf("DisplaySet(%v, %v) = % X, want % X", tt.display, tt.backlight, got, want)
		}
	}
}

func TestCursorModeSet(t *testing.T) {
	tests := []struct {
		visible, blink bool
		digit          byte
	}{
		{false, false, '0'},
		{false, true, '0'}, // blink without cursor is still off
		{true, false, '1'},
		{true, true, '2'},
	}
	for _, tt := range tests {
		want := []byte{0x1B, '[', tt.digit, 'c'}
		if got := CursorModeSet(tt.visible, tt.blink); !bytes.Equal(got, want) {
			t.Errorf("CursorModeSet(%v, %v) = % X, want % X", tt.visible, tt.blink, got, want)
		}
	}
}

func TestParameterlessCommands(t *testing.T) {
	tests := []struct {
		name string
		got  []byte
		want []byte
	}{
		{"DisplayClear", DisplayClear(), []byte{0x1B, '[', 'j'}},
		{"SaveCursor", SaveCursor(), []byte{0x1B, '[', '0', 's'}},
		{"RestoreCursor", RestoreCursor(), []byte{0x1B, '[', '0', 'u'}},
		{"Reset", Reset(), []byte{0x1B, '[', '0', '*'}},
		{"EEPROMWriteEnable", EEPROMWriteEnable(), []byte{0x1B, '[', '0', 'w'}},
	}
	for _, tt := range tests {
		if !bytes.Equal(tt.got, tt.want) {
			t.Errorf("%s = % X, want % X", tt.name, tt.got, tt.want)
		}
	}
}

func TestDisplayMode(t *testing.T) {
	if got, want := DisplayMode(true), []byte{0x1B, '[', '0', 'h'}; !bytes.Equal(got, want) {
		t.Errorf("DisplayMode(true) = % X, want % X", got, want)
	}
	if got, want := DisplayMode(false), []byte{0x1B, '[', '1', 'h'}; !bytes.Equal(got, want) {
		t.Errorf("DisplayMode(false) = % X, want % X", got, want)
	}
}

func TestScroll(t *testing.T) {
	// Wrap-16 mode must be set ahead of the scroll command, in one buffer.
	got, err := Scroll(true, 5)
	if err != nil {
		t.Fatalf("Scroll error: %v", err)
	}
	want := []byte{0x1B, '[', '0', 'h', 0x1B, '[', '0', '5', 'A'}
	if !bytes.Equal(got, want) {
		t.Errorf("Scroll(right, 5) = % X, want % X", got, want)
	}

	got, err = Scroll(false, 24)
	if err != nil {
		t.Fatalf("Scroll error: %v", err)
	}
	want = []byte{0x1B, '[', '0', 'h', 0x1B, '[', '2', '4', '@'}
	if !bytes.Equal(got, want) {
		t.Errorf("Scroll(left, 24) = % X, want % X", got, want)
	}

	if _, err := Scroll(true, 40); !errors.Is(err, ErrColRange) {
		t.Errorf("Scroll(right, 40) error = %v, want %v", err, ErrColRange)
	}
	if _, err := Scroll(false, -1); !errors.Is(err, ErrColRange) {
		t.Errorf("Scroll(left, -1) error = %v, want %v", err, ErrColRange)
	}
}

func TestEraseInLine(t *testing.T) {
	for mode := EraseToEnd; mode <= EraseWholeLine; mode++ {
		got, err := EraseInLine(mode)
		if err != nil {
			t.Fatalf("EraseInLine(%d) error: %v", mode, err)
		}
		want := []byte{0x1B, '[', byte('0' + mode), 'K'}
		if !bytes.Equal(got, want) {
			t.Errorf("EraseInLine(%d) = % X, want % X", mode, got, want)
		}
	}
	if _, err := EraseInLine(3); !errors.Is(err, ErrEraseOption) {
		t.Errorf("EraseInLine(3) error = %v, want %v", err, ErrEraseOption)
	}
	if _, err := EraseInLine(-1); !errors.Is(err, ErrEraseOption) {
		t.Errorf("EraseInLine(-1) error = %v, want %v", err, ErrEraseOption)
	}
}

func TestEraseChars(t *testing.T) {
	if got, want := EraseChars(4), []byte{0x1B, '[', '4', 'N'}; !bytes.Equal(got, want) {
		t.Errorf("EraseChars(4) = % X, want % X", got, want)
	}
	if got, want := EraseChars(12), []byte{0x1B, '[', '1', '2', 'N'}; !bytes.Equal(got, want) {
		t.Errorf("EraseChars(12) = % X, want % X", got, want)
	}
}

func TestSaveTWIAddress(t *testing.T) {
	if got, want := SaveTWIAddress(72), []byte{0x1B, '[', '7', '2', 'a'}; !bytes.Equal(got, want) {
		t.Errorf("SaveTWIAddress(72) = % X, want % X", got, want)
	}
}

func TestEEPROMRangeChecks(t *testing.T) {
	tests := []struct {
		name string
		f    func(int) ([]byte, error)
		max  int
		op   byte
		want error
	}{
		{"SaveBaudRate", SaveBaudRate, 6, 'b', ErrBaudRate},
		{"ProgramCharTable", ProgramCharTable, 3, 'p', ErrTableIndex},
		{"SaveTableToEEPROM", SaveTableToEEPROM, 3, 't', ErrTableIndex},
		{"LoadTableFromEEPROM", LoadTableFromEEPROM, 3, 'l', ErrTableIndex},
		{"SaveCommMode", SaveCommMode, 2, 'm', ErrCommMode},
		{"SaveCursorMode", SaveCursorMode, 2, 'n', ErrCursorMode},
		{"SaveDisplayMode", SaveDisplayMode, 1, 'o', ErrDisplayMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for v := 0; v <= tt.max; v++ {
				got, err := tt.f(v)
				if err != nil {
					t.Fatalf("%s(%d) error: %v", tt.name, v, err)
				}
				want := []byte{0x1B, '[', byte('0' + v), tt.op}
				if !bytes.Equal(got, want) {
					t.Errorf("%s(%d) = % X, want % X", tt.name, v, got, want)
				}
			}
			for _, v := range []int{-1, tt.max + 1} {
				got, err := tt.f(v)
				if !errors.Is(err, tt.want) {
					t.Errorf("%s(%d) error = %v, want %v", tt.name, v, err, tt.want)
				}
				if got != nil {
					t.Errorf("%s(%d) emitted % X, want no bytes", tt.name, v, got)
				}
			}
		})
	}
}

func TestDefineChar(t *testing.T) {
	rows := [8]byte{0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F}
	got, err := DefineChar(rows, 0)
	if err != nil {
		t.Fatalf("DefineChar error: %v", err)
	}
	want := append([]byte{0x1B, '['}, []byte("0x1F;0x1F;0x1F;0x1F;0x1F;0x1F;0x1F;0x1F;")...)
	want = append(want, '0', 'd', 0x1B, '[', '3', 'p')
	if !bytes.Equal(got, want) {
		t.Errorf("DefineChar = % X, want % X", got, want)
	}
}

func TestDefineCharPayloadTokens(t *testing.T) {
	rows := [8]byte{0x00, 0x0A, 0x1F, 0x1F, 0x0E, 0x04, 0x00, 0x00} // heart
	got, err := DefineChar(rows, 5)
	if err != nil {
		t.Fatalf("DefineChar error: %v", err)
	}
	payload := "0x00;0x0A;0x1F;0x1F;0x0E;0x04;0x00;0x00;"
	want := append([]byte{0x1B, '['}, payload...)
	want = append(want, '5', 'd', 0x1B, '[', '3', 'p')
	if !bytes.Equal(got, want) {
		t.Errorf("DefineChar = %q, want %q", got, want)
	}
}

func TestDefineCharSlotRange(t *testing.T) {
	var rows [8]byte
	for _, slot := range []int{-1, 8} {
		got, err := DefineChar(rows, slot)
		if !errors.Is(err, ErrCharSlot) {
			t.Errorf("DefineChar(slot=%d) error = %v, want %v", slot, err, ErrCharSlot)
		}
		if got != nil {
			t.Errorf("DefineChar(slot=%d) emitted bytes", slot)
		}
	}
}

func TestDisplayChars(t *testing.T) {
	got, err := DisplayChars([]byte{0, 1, 2}, 1, 8)
	if err != nil {
		t.Fatalf("DisplayChars error: %v", err)
	}
	want := []byte{0x1B, '[', '1', ';', '0', '8', 'H', 0, 1, 2}
	if !bytes.Equal(got, want) {
		t.Errorf("DisplayChars = % X, want % X", got, want)
	}

	if _, err := DisplayChars([]byte{0}, 3, 0); !errors.Is(err, ErrRowRange) {
		t.Errorf("DisplayChars row error = %v, want %v", err, ErrRowRange)
	}
	if _, err := DisplayChars([]byte{0}, 0, 41); !errors.Is(err, ErrColRange) {
		t.Errorf("DisplayChars col error = %v, want %v", err, ErrColRange)
	}
}

func TestEncodingIsPure(t *testing.T) {
	// Same operands, byte-identical output both times.
	encoders := []func() ([]byte, error){
		func() ([]byte, error) { return Position(2, 17) },
		func() ([]byte, error) { return WriteAt(1, 30, "0123456789ABC") },
		func() ([]byte, error) { return Scroll(false, 9) },
		func() ([]byte, error) { return DefineChar([8]byte{1, 2, 3, 4, 5, 6, 7, 8}, 7) },
		func() ([]byte, error) { return SaveBaudRate(6) },
	}
	for i, enc := range encoders {
		a, err := enc()
		if err != nil {
			t.Fatalf("encoder %d error: %v", i, err)
		}
		b, err := enc()
		if err != nil {
			t.Fatalf("encoder %d error: %v", i, err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("encoder %d is not idempotent: % X vs % X", i, a, b)
		}
	}
}

func TestHexToken(t *testing.T) {
	for _, v := range []byte{0x00, 0x0F, 0x10, 0x7B, 0xFF} {
		got := string(appendHexToken(nil, v))
		want := fmt.Sprintf("0x%02X;", v)
		if got != want {
			t.Errorf("appendHexToken(0x%02X) = %q, want %q", v, got, want)
		}
	}
}
